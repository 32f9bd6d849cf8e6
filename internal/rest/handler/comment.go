package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/tubeguard/tubeguard/internal/database/types"
	"github.com/tubeguard/tubeguard/internal/rest/convert"
	"github.com/tubeguard/tubeguard/internal/rest/middleware/logging"
	"github.com/tubeguard/tubeguard/internal/youtube/fetcher"
	"github.com/tubeguard/tubeguard/pkg/utils"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// MaxResultsLimit caps the number of comments one request may analyze.
const MaxResultsLimit = 500

// Analyzer runs the comment analysis pipeline for a video URL.
type Analyzer interface {
	AnalyzeVideo(ctx context.Context, rawURL string, maxResults int) (*types.VideoAnalysis, error)
}

// CommentHandler handles comment analysis endpoints.
type CommentHandler struct {
	analyzer Analyzer
	logger   *zap.Logger
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(analyzer Analyzer, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{
		analyzer: analyzer,
		logger:   logger.Named("comment_handler"),
	}
}

// AnalyzeComments fetches and classifies the comments of the video given by the url query parameter.
// The optional max parameter limits how many comments are analyzed.
func (h *CommentHandler) AnalyzeComments(w http.ResponseWriter, req bunrouter.Request) error {
	query := req.URL.Query()

	rawURL := query.Get("url")
	if rawURL == "" {
		return writeError(w, http.StatusBadRequest, "url parameter is required")
	}

	maxResults := 0
	if rawMax := query.Get("max"); rawMax != "" {
		parsed, err := strconv.Atoi(rawMax)
		if err != nil || parsed <= 0 {
			return writeError(w, http.StatusBadRequest, "max must be a positive integer")
		}
		maxResults = min(parsed, MaxResultsLimit)
	}

	analysis, err := h.analyzer.AnalyzeVideo(req.Context(), rawURL, maxResults)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrInvalidVideoURL):
			return writeError(w, http.StatusBadRequest, "invalid YouTube video URL")
		case errors.Is(err, fetcher.ErrVideoNotFound):
			return writeError(w, http.StatusNotFound, "video not found")
		case errors.Is(err, fetcher.ErrCommentsDisabled):
			return writeError(w, http.StatusUnprocessableEntity, "comments are disabled for this video")
		default:
			h.logger.Error("Failed to analyze video",
				zap.String("requestID", logging.FromRequestID(req.Context())),
				zap.String("url", rawURL),
				zap.Error(err))
			return writeError(w, http.StatusInternalServerError, "failed to analyze comments")
		}
	}

	return bunrouter.JSON(w, convert.Analysis(analysis))
}
