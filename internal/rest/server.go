package rest

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
	"github.com/tubeguard/tubeguard/internal/rest/handler"
	"github.com/tubeguard/tubeguard/internal/rest/middleware/logging"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// Dependencies are the collaborators served by the REST API.
type Dependencies struct {
	Analyzer handler.Analyzer
	Stats    handler.StatsReader
	Videos   handler.VideoReader
	Comments handler.CommentLister
}

// Server implements the REST API service.
type Server struct {
	commentHandler *handler.CommentHandler
	statsHandler   *handler.StatsHandler
	videoHandler   *handler.VideoHandler
}

// NewServer creates a new REST API server.
func NewServer(deps Dependencies, logger *zap.Logger) http.Handler {
	server := &Server{
		commentHandler: handler.NewCommentHandler(deps.Analyzer, logger),
		statsHandler:   handler.NewStatsHandler(deps.Stats, logger),
		videoHandler:   handler.NewVideoHandler(deps.Videos, deps.Comments, logger),
	}

	loggingMiddleware := logging.New(logger)

	router := bunrouter.New()

	router.GET("/healthz", func(w http.ResponseWriter, _ bunrouter.Request) error {
		return bunrouter.JSON(w, bunrouter.H{"status": "ok"})
	})

	router.Use(loggingMiddleware.AsRESTMiddleware).WithGroup("/v1", func(g *bunrouter.Group) {
		g.GET("/comments", server.commentHandler.AnalyzeComments)
		g.GET("/stats", server.statsHandler.GetStats)
		g.GET("/videos/:id", server.videoHandler.GetVideo)
		g.GET("/videos/:id/stats", server.statsHandler.GetVideoStats)
		g.GET("/videos/:id/comments", server.videoHandler.GetVideoComments)
	})

	// Add gzip compression
	return gzhttp.GzipHandler(router)
}
