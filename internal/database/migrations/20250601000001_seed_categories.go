package migrations

import (
	"context"
	"fmt"

	"github.com/tubeguard/tubeguard/internal/database/types"
	"github.com/tubeguard/tubeguard/internal/database/types/enum"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		values := enum.CommentCategoryValues()
		categories := make([]*types.CategoryRecord, 0, len(values))
		for _, category := range values {
			categories = append(categories, &types.CategoryRecord{
				ID:    category.ID(),
				Name:  category.String(),
				Label: category.Label(),
			})
		}

		_, err := db.NewInsert().
			Model(&categories).
			On("CONFLICT (id) DO UPDATE").
			Set("name = EXCLUDED.name").
			Set("label = EXCLUDED.label").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to seed categories: %w", err)
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewDelete().
			Model((*types.CategoryRecord)(nil)).
			Where("TRUE").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to remove categories: %w", err)
		}

		return nil
	})
}
