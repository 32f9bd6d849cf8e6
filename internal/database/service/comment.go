package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tubeguard/tubeguard/internal/database/dbretry"
	"github.com/tubeguard/tubeguard/internal/database/models"
	"github.com/tubeguard/tubeguard/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ErrMissingVideo is returned when comments are saved without their video.
var ErrMissingVideo = errors.New("video is required")

// CommentService handles persistence of analyzed videos and their comments.
type CommentService struct {
	db       *bun.DB
	video    *models.VideoModel
	author   *models.AuthorModel
	comment  *models.CommentModel
	analysis *models.AnalysisModel
	logger   *zap.Logger
}

// NewComment creates a new comment service.
func NewComment(
	db *bun.DB,
	video *models.VideoModel,
	author *models.AuthorModel,
	comment *models.CommentModel,
	analysis *models.AnalysisModel,
	logger *zap.Logger,
) *CommentService {
	return &CommentService{
		db:       db,
		video:    video,
		author:   author,
		comment:  comment,
		analysis: analysis,
		logger:   logger.Named("comment_service"),
	}
}

// SaveVideoWithComments stores a video, its comment authors, comments and classifications
// in one transaction. Unclassified comments are stored without an analysis row.
func (s *CommentService) SaveVideoWithComments(
	ctx context.Context, video *types.Video, comments []*types.Comment,
) (types.SaveStats, error) {
	if video == nil || video.ID == "" {
		return types.SaveStats{}, ErrMissingVideo
	}

	batch := NewSaveBatch(video, comments)

	var stats types.SaveStats
	err := dbretry.Transaction(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		if err := s.video.UpsertVideoWithTx(ctx, tx, batch.Video); err != nil {
			return err
		}

		if err := s.author.UpsertAuthorsWithTx(ctx, tx, batch.Authors); err != nil {
			return err
		}

		if err := s.comment.UpsertCommentsWithTx(ctx, tx, batch.Comments); err != nil {
			return err
		}

		analyses := batch.Analyses()
		if err := s.analysis.UpsertAnalysesWithTx(ctx, tx, analyses); err != nil {
			return err
		}

		stats = types.SaveStats{
			Authors:  len(batch.Authors),
			Comments: len(batch.Comments),
			Analyses: len(analyses),
		}
		return nil
	})
	if err != nil {
		return types.SaveStats{}, fmt.Errorf("failed to save video %s: %w", video.ID, err)
	}

	s.logger.Debug("Saved video with comments",
		zap.String("videoID", video.ID),
		zap.Int("authors", stats.Authors),
		zap.Int("comments", stats.Comments),
		zap.Int("analyses", stats.Analyses))

	return stats, nil
}

// SaveBatch holds the rows written for one analyzed video.
type SaveBatch struct {
	Video    *types.VideoRecord
	Authors  []*types.AuthorRecord
	Comments []*types.CommentRecord

	// sources pairs each comment row with the comment it was built from.
	sources []*types.Comment
}

// NewSaveBatch builds deduplicated rows for a video and its comments.
// Authors and comments are unique by id; the last occurrence of a comment wins.
func NewSaveBatch(video *types.Video, comments []*types.Comment) *SaveBatch {
	batch := &SaveBatch{
		Video:    types.NewVideoRecord(video),
		Authors:  make([]*types.AuthorRecord, 0, len(comments)),
		Comments: make([]*types.CommentRecord, 0, len(comments)),
		sources:  make([]*types.Comment, 0, len(comments)),
	}

	authorIndex := make(map[string]int, len(comments))
	commentIndex := make(map[string]int, len(comments))

	for _, comment := range comments {
		if comment == nil || comment.ID == "" {
			continue
		}

		author := types.NewAuthorRecord(comment)
		if i, ok := authorIndex[author.ID]; ok {
			batch.Authors[i] = author
		} else {
			authorIndex[author.ID] = len(batch.Authors)
			batch.Authors = append(batch.Authors, author)
		}

		row := types.NewCommentRecord(video.ID, comment)
		if i, ok := commentIndex[row.CommentID]; ok {
			batch.Comments[i] = row
			batch.sources[i] = comment
		} else {
			commentIndex[row.CommentID] = len(batch.Comments)
			batch.Comments = append(batch.Comments, row)
			batch.sources = append(batch.sources, comment)
		}
	}

	return batch
}

// Analyses builds analysis rows for classified comments once comment row ids are known.
func (b *SaveBatch) Analyses() []*types.CommentAnalysisRecord {
	analyses := make([]*types.CommentAnalysisRecord, 0, len(b.Comments))
	for i, row := range b.Comments {
		source := b.sources[i]
		if row.ID == 0 || !source.Category.IsValid() {
			continue
		}
		analyses = append(analyses, types.NewCommentAnalysisRecord(row.ID, source))
	}
	return analyses
}
