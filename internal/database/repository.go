package database

import (
	"github.com/tubeguard/tubeguard/internal/database/models"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// Repository provides access to all database models.
type Repository struct {
	video    *models.VideoModel
	author   *models.AuthorModel
	comment  *models.CommentModel
	analysis *models.AnalysisModel
	stats    *models.StatsModel
}

// NewRepository creates a new repository instance with all models.
func NewRepository(db *bun.DB, logger *zap.Logger) *Repository {
	return &Repository{
		video:    models.NewVideo(db, logger),
		author:   models.NewAuthor(db, logger),
		comment:  models.NewComment(db, logger),
		analysis: models.NewAnalysis(db, logger),
		stats:    models.NewStats(db, logger),
	}
}

// Video returns the video model repository.
func (r *Repository) Video() *models.VideoModel {
	return r.video
}

// Author returns the author model repository.
func (r *Repository) Author() *models.AuthorModel {
	return r.author
}

// Comment returns the comment model repository.
func (r *Repository) Comment() *models.CommentModel {
	return r.comment
}

// Analysis returns the comment analysis model repository.
func (r *Repository) Analysis() *models.AnalysisModel {
	return r.analysis
}

// Stats returns the stats model repository.
func (r *Repository) Stats() *models.StatsModel {
	return r.stats
}
