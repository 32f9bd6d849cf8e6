package models

import (
	"context"
	"fmt"
	"time"

	"github.com/tubeguard/tubeguard/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// AuthorModel handles database operations for comment authors.
type AuthorModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewAuthor creates a new author model.
func NewAuthor(db *bun.DB, logger *zap.Logger) *AuthorModel {
	return &AuthorModel{
		db:     db,
		logger: logger.Named("db_author"),
	}
}

// UpsertAuthorsWithTx inserts authors or refreshes their display name and avatar.
// Author ids must be unique within the slice.
func (r *AuthorModel) UpsertAuthorsWithTx(ctx context.Context, tx bun.IDB, authors []*types.AuthorRecord) error {
	if len(authors) == 0 {
		return nil
	}

	now := time.Now()
	for _, author := range authors {
		author.UpdatedAt = now
	}

	_, err := tx.NewInsert().
		Model(&authors).
		On("CONFLICT (id) DO UPDATE").
		Set("display_name = EXCLUDED.display_name").
		Set("profile_image = EXCLUDED.profile_image").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert %d authors: %w", len(authors), err)
	}

	return nil
}
