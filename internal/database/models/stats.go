package models

import (
	"context"
	"fmt"

	"github.com/tubeguard/tubeguard/internal/database/dbretry"
	"github.com/tubeguard/tubeguard/internal/database/types"
	"github.com/tubeguard/tubeguard/internal/database/types/enum"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// StatsModel handles database operations for statistics.
type StatsModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewStats creates a new StatsModel.
func NewStats(db *bun.DB, logger *zap.Logger) *StatsModel {
	return &StatsModel{
		db:     db,
		logger: logger.Named("db_stats"),
	}
}

// GetDashboardStats counts every stored classification per category.
func (r *StatsModel) GetDashboardStats(ctx context.Context) (*types.DashboardStats, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.DashboardStats, error) {
		var stats types.DashboardStats

		err := r.countQuery().Scan(ctx, &stats)
		if err != nil {
			return nil, fmt.Errorf("failed to get dashboard stats: %w", err)
		}

		return &stats, nil
	})
}

// GetVideoStats counts the stored classifications of one video per category.
func (r *StatsModel) GetVideoStats(ctx context.Context, videoID string) (*types.DashboardStats, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.DashboardStats, error) {
		var stats types.DashboardStats

		err := r.countQuery().
			Join("JOIN comments AS c ON c.id = ca.comment_id").
			Where("c.video_id = ?", videoID).
			Scan(ctx, &stats)
		if err != nil {
			return nil, fmt.Errorf("failed to get stats for video %s: %w", videoID, err)
		}

		return &stats, nil
	})
}

// countQuery selects the total and per-category counts over comment_analyses.
func (r *StatsModel) countQuery() *bun.SelectQuery {
	return r.db.NewSelect().
		TableExpr("comment_analyses AS ca").
		ColumnExpr("COUNT(*) AS total").
		ColumnExpr("COUNT(*) FILTER (WHERE ca.category_id = ?) AS normal", enum.CommentCategoryNormal.ID()).
		ColumnExpr("COUNT(*) FILTER (WHERE ca.category_id = ?) AS risky", enum.CommentCategoryRisky.ID()).
		ColumnExpr("COUNT(*) FILTER (WHERE ca.category_id = ?) AS spam", enum.CommentCategorySpam.ID())
}
