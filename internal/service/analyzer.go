package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/pool"
	"github.com/tubeguard/tubeguard/internal/database/types"
	"github.com/tubeguard/tubeguard/internal/youtube/checker"
	"github.com/tubeguard/tubeguard/pkg/utils"
	"go.uber.org/zap"
)

// DefaultMaxResults is the number of comments analyzed when the caller gives no limit.
const DefaultMaxResults = 50

// CommentSource fetches the top-level comments of a video.
type CommentSource interface {
	FetchComments(ctx context.Context, videoID string, maxResults int) ([]*types.Comment, error)
}

// VideoSource fetches the metadata of a video.
type VideoSource interface {
	FetchVideo(ctx context.Context, videoID string) (*types.Video, error)
}

// CommentClassifier assigns a category to every comment.
type CommentClassifier interface {
	ClassifyComments(ctx context.Context, comments []*types.Comment) []*types.Comment
}

// AnalysisStore persists analyzed videos.
type AnalysisStore interface {
	SaveVideoWithComments(ctx context.Context, video *types.Video, comments []*types.Comment) (types.SaveStats, error)
}

// AnalysisCache keeps recent analyses.
type AnalysisCache interface {
	Get(ctx context.Context, videoID string, maxResults int) (*types.VideoAnalysis, bool, error)
	Set(ctx context.Context, maxResults int, analysis *types.VideoAnalysis) error
}

// Analyzer runs the full analysis of one video: fetch, classify, summarize, persist.
type Analyzer struct {
	comments   CommentSource
	videos     VideoSource
	classifier CommentClassifier
	store      AnalysisStore
	cache      AnalysisCache
	maxResults int
	logger     *zap.Logger
}

// Option configures optional collaborators of the Analyzer.
type Option func(*Analyzer)

// WithStore persists every analysis to the given store.
func WithStore(store AnalysisStore) Option {
	return func(a *Analyzer) { a.store = store }
}

// WithCache serves repeated analyses from the given cache.
func WithCache(cache AnalysisCache) Option {
	return func(a *Analyzer) { a.cache = cache }
}

// WithMaxResults sets the comment limit used when a request gives none.
func WithMaxResults(maxResults int) Option {
	return func(a *Analyzer) {
		if maxResults > 0 {
			a.maxResults = maxResults
		}
	}
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(
	comments CommentSource,
	videos VideoSource,
	classifier CommentClassifier,
	logger *zap.Logger,
	opts ...Option,
) *Analyzer {
	a := &Analyzer{
		comments:   comments,
		videos:     videos,
		classifier: classifier,
		maxResults: DefaultMaxResults,
		logger:     logger.Named("analyzer"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeVideo analyzes up to maxResults comments of the video at rawURL.
// A non-positive maxResults uses the configured default. Only an invalid URL or a failed
// comment fetch is returned as an error; metadata, persistence and cache failures are logged.
func (a *Analyzer) AnalyzeVideo(ctx context.Context, rawURL string, maxResults int) (*types.VideoAnalysis, error) {
	videoID, err := utils.ExtractVideoIDFromURL(rawURL)
	if err != nil {
		return nil, err
	}

	if maxResults <= 0 {
		maxResults = a.maxResults
	}

	logger := a.logger.With(zap.String("videoID", videoID), zap.Int("maxResults", maxResults))

	if a.cache != nil {
		cached, found, err := a.cache.Get(ctx, videoID, maxResults)
		if err != nil {
			logger.Warn("Failed to read analysis cache", zap.Error(err))
		} else if found {
			logger.Debug("Serving cached analysis")
			return cached, nil
		}
	}

	video, comments, err := a.fetch(ctx, logger, videoID, maxResults)
	if err != nil {
		return nil, err
	}

	comments = a.classifier.ClassifyComments(ctx, comments)

	analysis := &types.VideoAnalysis{
		Video:      video,
		Summary:    checker.Summarize(comments),
		Comments:   comments,
		AnalyzedAt: time.Now().UTC(),
	}

	if a.store != nil {
		stats, err := a.store.SaveVideoWithComments(ctx, video, comments)
		if err != nil {
			logger.Error("Failed to save analysis", zap.Error(err))
		} else {
			logger.Info("Saved analysis",
				zap.Int("authors", stats.Authors),
				zap.Int("comments", stats.Comments),
				zap.Int("analyses", stats.Analyses))
		}
	}

	if a.cache != nil {
		if err := a.cache.Set(ctx, maxResults, analysis); err != nil {
			logger.Warn("Failed to cache analysis", zap.Error(err))
		}
	}

	logger.Info("Analyzed video",
		zap.Int("total", analysis.Summary.Total),
		zap.Int("normal", analysis.Summary.Normal),
		zap.Int("risky", analysis.Summary.Risky),
		zap.Int("spam", analysis.Summary.Spam))

	return analysis, nil
}

// fetch retrieves video metadata and comments concurrently.
func (a *Analyzer) fetch(
	ctx context.Context, logger *zap.Logger, videoID string, maxResults int,
) (*types.Video, []*types.Comment, error) {
	var (
		video    *types.Video
		comments []*types.Comment
	)

	p := pool.New().WithContext(ctx)

	p.Go(func(ctx context.Context) error {
		v, err := a.videos.FetchVideo(ctx, videoID)
		if err != nil {
			logger.Warn("Failed to fetch video metadata, continuing without it", zap.Error(err))
			return nil
		}
		video = v
		return nil
	})

	p.Go(func(ctx context.Context) error {
		c, err := a.comments.FetchComments(ctx, videoID, maxResults)
		if err != nil {
			return err
		}
		comments = c
		return nil
	})

	if err := p.Wait(); err != nil {
		return nil, nil, fmt.Errorf("failed to fetch comments: %w", err)
	}

	if video == nil {
		video = &types.Video{ID: videoID}
	}

	return video, comments, nil
}
