package database

import (
	"github.com/tubeguard/tubeguard/internal/database/service"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// Service provides access to all business logic services.
type Service struct {
	comment *service.CommentService
}

// NewService creates a new service instance with all services.
func NewService(db *bun.DB, repository *Repository, logger *zap.Logger) *Service {
	return &Service{
		comment: service.NewComment(
			db,
			repository.Video(),
			repository.Author(),
			repository.Comment(),
			repository.Analysis(),
			logger,
		),
	}
}

// Comment returns the comment service.
func (s *Service) Comment() *service.CommentService {
	return s.comment
}
