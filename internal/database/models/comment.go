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

// DefaultCommentLimit bounds comment listings when the caller gives no limit.
const DefaultCommentLimit = 100

// CommentModel handles database operations for comments.
type CommentModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewComment creates a new comment model.
func NewComment(db *bun.DB, logger *zap.Logger) *CommentModel {
	return &CommentModel{
		db:     db,
		logger: logger.Named("db_comment"),
	}
}

// UpsertCommentsWithTx inserts comments keyed by their platform id, refreshing text and likes
// on conflict. The generated row ids are written back into the records.
func (r *CommentModel) UpsertCommentsWithTx(ctx context.Context, tx bun.IDB, comments []*types.CommentRecord) error {
	if len(comments) == 0 {
		return nil
	}

	_, err := tx.NewInsert().
		Model(&comments).
		On("CONFLICT (comment_id) DO UPDATE").
		Set("content = EXCLUDED.content").
		Set("like_count = EXCLUDED.like_count").
		Set("reply_count = EXCLUDED.reply_count").
		Returning("id").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert %d comments: %w", len(comments), err)
	}

	return nil
}

// GetVideoComments lists stored comments of a video with their analysis, newest first.
// A nil category lists every category. A non-positive limit uses DefaultCommentLimit.
func (r *CommentModel) GetVideoComments(
	ctx context.Context, videoID string, category *enum.CommentCategory, limit int,
) ([]*types.StoredComment, error) {
	if limit <= 0 {
		limit = DefaultCommentLimit
	}

	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.StoredComment, error) {
		comments := make([]*types.StoredComment, 0)

		query := r.db.NewSelect().
			TableExpr("comments AS c").
			ColumnExpr("c.comment_id, c.content, c.like_count, c.published_at").
			ColumnExpr("a.display_name AS author_name, COALESCE(a.profile_image, '') AS author_image").
			ColumnExpr("ca.category_id, COALESCE(ca.reason, '') AS reason, ca.confidence, ca.analyzed_at").
			Join("JOIN authors AS a ON a.id = c.author_id").
			Join("JOIN comment_analyses AS ca ON ca.comment_id = c.id").
			Where("c.video_id = ?", videoID)

		if category != nil {
			query = query.Where("ca.category_id = ?", category.ID())
		}

		err := query.
			OrderExpr("c.published_at DESC, c.id DESC").
			Limit(limit).
			Scan(ctx, &comments)
		if err != nil {
			return nil, fmt.Errorf("failed to get comments for video %s: %w", videoID, err)
		}

		return comments, nil
	})
}
