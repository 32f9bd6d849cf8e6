package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewRaw(`
			-- Comment listing per video
			CREATE INDEX IF NOT EXISTS idx_comments_video_published
			ON comments (video_id, published_at DESC, id DESC);

			CREATE INDEX IF NOT EXISTS idx_comments_author
			ON comments (author_id);

			-- Category counts
			CREATE INDEX IF NOT EXISTS idx_comment_analyses_category
			ON comment_analyses (category_id);

			ALTER TABLE comments
			ADD CONSTRAINT fk_comments_video
			FOREIGN KEY (video_id) REFERENCES videos (id) ON DELETE CASCADE;

			ALTER TABLE comments
			ADD CONSTRAINT fk_comments_author
			FOREIGN KEY (author_id) REFERENCES authors (id);

			ALTER TABLE comment_analyses
			ADD CONSTRAINT fk_comment_analyses_comment
			FOREIGN KEY (comment_id) REFERENCES comments (id) ON DELETE CASCADE;

			ALTER TABLE comment_analyses
			ADD CONSTRAINT fk_comment_analyses_category
			FOREIGN KEY (category_id) REFERENCES categories (id);
		`).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create indexes and foreign keys: %w", err)
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewRaw(`
			ALTER TABLE comment_analyses DROP CONSTRAINT IF EXISTS fk_comment_analyses_category;
			ALTER TABLE comment_analyses DROP CONSTRAINT IF EXISTS fk_comment_analyses_comment;
			ALTER TABLE comments DROP CONSTRAINT IF EXISTS fk_comments_author;
			ALTER TABLE comments DROP CONSTRAINT IF EXISTS fk_comments_video;

			DROP INDEX IF EXISTS idx_comment_analyses_category;
			DROP INDEX IF EXISTS idx_comments_author;
			DROP INDEX IF EXISTS idx_comments_video_published;
		`).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to drop indexes and foreign keys: %w", err)
		}

		return nil
	})
}
