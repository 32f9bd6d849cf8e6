package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tubeguard/tubeguard/internal/database/dbretry"
	"github.com/tubeguard/tubeguard/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ErrVideoNotStored is returned when a video has never been analyzed.
var ErrVideoNotStored = errors.New("video not stored")

// VideoModel handles database operations for videos.
type VideoModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewVideo creates a new video model.
func NewVideo(db *bun.DB, logger *zap.Logger) *VideoModel {
	return &VideoModel{
		db:     db,
		logger: logger.Named("db_video"),
	}
}

// UpsertVideoWithTx inserts a video or refreshes its title and counters.
func (r *VideoModel) UpsertVideoWithTx(ctx context.Context, tx bun.IDB, video *types.VideoRecord) error {
	video.UpdatedAt = time.Now()

	_, err := tx.NewInsert().
		Model(video).
		On("CONFLICT (id) DO UPDATE").
		Set("title = EXCLUDED.title").
		Set("channel_name = EXCLUDED.channel_name").
		Set("view_count = EXCLUDED.view_count").
		Set("like_count = EXCLUDED.like_count").
		Set("comment_count = EXCLUDED.comment_count").
		Set("thumbnail_url = EXCLUDED.thumbnail_url").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert video %s: %w", video.ID, err)
	}

	return nil
}

// GetVideo retrieves a stored video by its id.
func (r *VideoModel) GetVideo(ctx context.Context, videoID string) (*types.VideoRecord, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.VideoRecord, error) {
		var video types.VideoRecord

		err := r.db.NewSelect().
			Model(&video).
			Where("id = ?", videoID).
			Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrVideoNotStored, videoID)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get video %s: %w", videoID, err)
		}

		return &video, nil
	})
}
