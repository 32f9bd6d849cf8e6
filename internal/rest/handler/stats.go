package handler

import (
	"context"
	"net/http"

	"github.com/tubeguard/tubeguard/internal/database/types"
	"github.com/tubeguard/tubeguard/internal/rest/convert"
	"github.com/tubeguard/tubeguard/internal/rest/middleware/logging"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// StatsReader reads stored category counts.
type StatsReader interface {
	GetDashboardStats(ctx context.Context) (*types.DashboardStats, error)
	GetVideoStats(ctx context.Context, videoID string) (*types.DashboardStats, error)
}

// StatsHandler handles dashboard statistics endpoints.
type StatsHandler struct {
	stats  StatsReader
	logger *zap.Logger
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(stats StatsReader, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		stats:  stats,
		logger: logger.Named("stats_handler"),
	}
}

// GetStats returns category counts over every stored comment.
func (h *StatsHandler) GetStats(w http.ResponseWriter, req bunrouter.Request) error {
	stats, err := h.stats.GetDashboardStats(req.Context())
	if err != nil {
		h.logger.Error("Failed to get dashboard stats",
			zap.String("requestID", logging.FromRequestID(req.Context())),
			zap.Error(err))
		return writeError(w, http.StatusInternalServerError, "failed to get stats")
	}

	return bunrouter.JSON(w, convert.DashboardStats(stats))
}

// GetVideoStats returns category counts over the stored comments of one video.
func (h *StatsHandler) GetVideoStats(w http.ResponseWriter, req bunrouter.Request) error {
	videoID := req.Param("id")

	stats, err := h.stats.GetVideoStats(req.Context(), videoID)
	if err != nil {
		h.logger.Error("Failed to get video stats",
			zap.String("requestID", logging.FromRequestID(req.Context())),
			zap.String("videoID", videoID),
			zap.Error(err))
		return writeError(w, http.StatusInternalServerError, "failed to get stats")
	}

	return bunrouter.JSON(w, convert.DashboardStats(stats))
}
