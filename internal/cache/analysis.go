package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/rueidis"
	"github.com/tubeguard/tubeguard/internal/database/types"
	"go.uber.org/zap"
)

// AnalysisKeyPrefix identifies cached video analyses in Redis.
const AnalysisKeyPrefix = "analysis:"

// AnalysisCache stores finished video analyses so repeated requests skip the pipeline.
type AnalysisCache struct {
	client rueidis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewAnalysisCache creates an analysis cache whose entries expire after ttl.
func NewAnalysisCache(client rueidis.Client, ttl time.Duration, logger *zap.Logger) *AnalysisCache {
	return &AnalysisCache{
		client: client,
		ttl:    ttl,
		logger: logger.Named("analysis_cache"),
	}
}

// Key builds the cache key of an analysis limited to maxResults comments.
func Key(videoID string, maxResults int) string {
	return AnalysisKeyPrefix + videoID + ":" + strconv.Itoa(maxResults)
}

// Get retrieves a cached analysis.
// Returns the analysis and true if found, or nil and false if not cached.
func (c *AnalysisCache) Get(ctx context.Context, videoID string, maxResults int) (*types.VideoAnalysis, bool, error) {
	key := Key(videoID, maxResults)

	data, err := c.client.Do(ctx, c.client.B().Get().Key(key).Build()).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get cached analysis %s: %w", key, err)
	}

	var analysis types.VideoAnalysis
	if err := sonic.Unmarshal(data, &analysis); err != nil {
		c.logger.Warn("Discarding unreadable cached analysis", zap.String("key", key), zap.Error(err))
		return nil, false, nil
	}

	c.logger.Debug("Retrieved analysis from cache", zap.String("key", key))

	return &analysis, true, nil
}

// Set stores an analysis until the cache TTL passes.
func (c *AnalysisCache) Set(ctx context.Context, maxResults int, analysis *types.VideoAnalysis) error {
	if analysis == nil || analysis.Video == nil {
		return nil
	}

	key := Key(analysis.Video.ID, maxResults)

	data, err := sonic.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to encode analysis %s: %w", key, err)
	}

	err = c.client.Do(ctx, c.client.B().Set().Key(key).Value(rueidis.BinaryString(data)).Ex(c.ttl).Build()).Error()
	if err != nil {
		return fmt.Errorf("failed to cache analysis %s: %w", key, err)
	}

	c.logger.Debug("Stored analysis in cache", zap.String("key", key), zap.Duration("ttl", c.ttl))

	return nil
}
