package migrations

import (
	"context"
	"fmt"

	"github.com/tubeguard/tubeguard/internal/database/types"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		models := []any{
			(*types.CategoryRecord)(nil),
			(*types.VideoRecord)(nil),
			(*types.AuthorRecord)(nil),
			(*types.CommentRecord)(nil),
			(*types.CommentAnalysisRecord)(nil),
		}

		for _, model := range models {
			_, err := db.NewCreateTable().
				Model(model).
				IfNotExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to create table %T: %w", model, err)
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		// Down migration - drop all tables in dependency order
		models := []any{
			(*types.CommentAnalysisRecord)(nil),
			(*types.CommentRecord)(nil),
			(*types.AuthorRecord)(nil),
			(*types.VideoRecord)(nil),
			(*types.CategoryRecord)(nil),
		}

		for _, model := range models {
			_, err := db.NewDropTable().
				Model(model).
				IfExists().
				Cascade().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to drop table %T: %w", model, err)
			}
		}

		return nil
	})
}
