package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/tubeguard/tubeguard/internal/database/models"
	"github.com/tubeguard/tubeguard/internal/database/types"
	"github.com/tubeguard/tubeguard/internal/database/types/enum"
	"github.com/tubeguard/tubeguard/internal/rest/convert"
	"github.com/tubeguard/tubeguard/internal/rest/middleware/logging"
	restTypes "github.com/tubeguard/tubeguard/internal/rest/types"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// VideoReader reads stored video metadata.
type VideoReader interface {
	GetVideo(ctx context.Context, videoID string) (*types.VideoRecord, error)
}

// CommentLister lists stored comments of a video.
type CommentLister interface {
	GetVideoComments(
		ctx context.Context, videoID string, category *enum.CommentCategory, limit int,
	) ([]*types.StoredComment, error)
}

// VideoHandler handles stored video endpoints.
type VideoHandler struct {
	videos   VideoReader
	comments CommentLister
	logger   *zap.Logger
}

// NewVideoHandler creates a new video handler.
func NewVideoHandler(videos VideoReader, comments CommentLister, logger *zap.Logger) *VideoHandler {
	return &VideoHandler{
		videos:   videos,
		comments: comments,
		logger:   logger.Named("video_handler"),
	}
}

// GetVideo returns the stored metadata of an analyzed video.
func (h *VideoHandler) GetVideo(w http.ResponseWriter, req bunrouter.Request) error {
	videoID := req.Param("id")

	video, err := h.videos.GetVideo(req.Context(), videoID)
	if err != nil {
		if errors.Is(err, models.ErrVideoNotStored) {
			return writeError(w, http.StatusNotFound, "video has not been analyzed")
		}

		h.logger.Error("Failed to get video",
			zap.String("requestID", logging.FromRequestID(req.Context())),
			zap.String("videoID", videoID),
			zap.Error(err))
		return writeError(w, http.StatusInternalServerError, "failed to get video")
	}

	return bunrouter.JSON(w, convert.VideoRecord(video))
}

// GetVideoComments lists stored comments of a video, optionally filtered by category.
func (h *VideoHandler) GetVideoComments(w http.ResponseWriter, req bunrouter.Request) error {
	videoID := req.Param("id")
	query := req.URL.Query()

	var category *enum.CommentCategory
	if rawCategory := query.Get("category"); rawCategory != "" {
		parsed, ok := enum.ParseCommentCategory(rawCategory)
		if !ok {
			return writeError(w, http.StatusBadRequest, "category must be one of normal, risky, spam")
		}
		category = &parsed
	}

	limit := 0
	if rawLimit := query.Get("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed <= 0 {
			return writeError(w, http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = min(parsed, MaxResultsLimit)
	}

	stored, err := h.comments.GetVideoComments(req.Context(), videoID, category, limit)
	if err != nil {
		h.logger.Error("Failed to get video comments",
			zap.String("requestID", logging.FromRequestID(req.Context())),
			zap.String("videoID", videoID),
			zap.Error(err))
		return writeError(w, http.StatusInternalServerError, "failed to get comments")
	}

	comments := make([]*restTypes.Comment, 0, len(stored))
	for _, comment := range stored {
		comments = append(comments, convert.StoredComment(comment))
	}

	return bunrouter.JSON(w, restTypes.VideoCommentsResponse{
		VideoID:  videoID,
		Comments: comments,
	})
}
