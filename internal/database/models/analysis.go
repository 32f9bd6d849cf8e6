package models

import (
	"context"
	"fmt"
	"time"

	"github.com/tubeguard/tubeguard/internal/database/dbretry"
	"github.com/tubeguard/tubeguard/internal/database/types"
	"github.com/tubeguard/tubeguard/internal/database/types/enum"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// AnalysisModel handles database operations for comment classifications.
type AnalysisModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewAnalysis creates a new analysis model.
func NewAnalysis(db *bun.DB, logger *zap.Logger) *AnalysisModel {
	return &AnalysisModel{
		db:     db,
		logger: logger.Named("db_analysis"),
	}
}

// UpsertAnalysesWithTx stores one classification per comment, replacing an earlier one.
func (r *AnalysisModel) UpsertAnalysesWithTx(
	ctx context.Context, tx bun.IDB, analyses []*types.CommentAnalysisRecord,
) error {
	if len(analyses) == 0 {
		return nil
	}

	now := time.Now()
	for _, analysis := range analyses {
		analysis.AnalyzedAt = now
	}

	_, err := tx.NewInsert().
		Model(&analyses).
		On("CONFLICT (comment_id) DO UPDATE").
		Set("category_id = EXCLUDED.category_id").
		Set("reason = EXCLUDED.reason").
		Set("origin = EXCLUDED.origin").
		Set("confidence = EXCLUDED.confidence").
		Set("analyzed_at = EXCLUDED.analyzed_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert %d analyses: %w", len(analyses), err)
	}

	return nil
}

// GetFlaggedComments lists every analyzed comment in the given categories, oldest analysis first.
// An empty category list selects risky and spam comments.
func (r *AnalysisModel) GetFlaggedComments(
	ctx context.Context, categories []enum.CommentCategory,
) ([]*types.FlaggedComment, error) {
	if len(categories) == 0 {
		categories = []enum.CommentCategory{enum.CommentCategoryRisky, enum.CommentCategorySpam}
	}

	ids := make([]int, len(categories))
	for i, category := range categories {
		ids[i] = category.ID()
	}

	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.FlaggedComment, error) {
		var comments []*types.FlaggedComment

		err := r.db.NewSelect().
			TableExpr("comment_analyses AS ca").
			ColumnExpr("c.author_id, c.video_id").
			ColumnExpr("ca.category_id, COALESCE(ca.reason, '') AS reason, ca.origin, ca.confidence").
			Join("JOIN comments AS c ON c.id = ca.comment_id").
			Where("ca.category_id IN (?)", bun.In(ids)).
			OrderExpr("ca.analyzed_at ASC, ca.id ASC").
			Scan(ctx, &comments)
		if err != nil {
			return nil, fmt.Errorf("failed to get flagged comments: %w", err)
		}

		return comments, nil
	})
}
