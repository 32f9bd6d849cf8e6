package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/tubeguard/tubeguard/internal/database/types"
	"github.com/tubeguard/tubeguard/pkg/utils"
	"go.uber.org/zap"
	"google.golang.org/api/youtube/v3"
)

// VideoFetcher handles retrieval of video metadata.
type VideoFetcher struct {
	svc     *youtube.Service
	timeout time.Duration
	logger  *zap.Logger
}

// NewVideoFetcher creates a VideoFetcher.
func NewVideoFetcher(svc *youtube.Service, timeout time.Duration, logger *zap.Logger) *VideoFetcher {
	return &VideoFetcher{
		svc:     svc,
		timeout: timeout,
		logger:  logger.Named("video_fetcher"),
	}
}

// FetchVideo retrieves the snippet and statistics of a video.
func (f *VideoFetcher) FetchVideo(ctx context.Context, videoID string) (*types.Video, error) {
	resp, err := utils.WithRetry(ctx, func() (*youtube.VideoListResponse, error) {
		callCtx, cancel := context.WithTimeout(ctx, f.timeout)
		defer cancel()

		resp, err := f.svc.Videos.List([]string{"snippet", "statistics"}).Id(videoID).Context(callCtx).Do()
		if err != nil {
			return nil, classifyAPIError(err)
		}
		return resp, nil
	}, utils.GetYouTubeRetryOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video %s: %w", videoID, err)
	}

	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		return nil, fmt.Errorf("%w: %s", ErrVideoNotFound, videoID)
	}

	item := resp.Items[0]
	snippet := item.Snippet

	video := &types.Video{
		ID:           videoID,
		Title:        snippet.Title,
		ChannelName:  snippet.ChannelTitle,
		ChannelID:    snippet.ChannelId,
		PublishedAt:  snippet.PublishedAt,
		Description:  snippet.Description,
		ThumbnailURL: bestThumbnail(snippet.Thumbnails),
	}

	if stats := item.Statistics; stats != nil {
		video.ViewCount = stats.ViewCount
		video.LikeCount = stats.LikeCount
		video.CommentCount = stats.CommentCount
	}

	f.logger.Debug("Fetched video", zap.String("videoID", videoID), zap.String("title", video.Title))

	return video, nil
}

// bestThumbnail prefers the high, then medium, then default thumbnail.
func bestThumbnail(thumbnails *youtube.ThumbnailDetails) string {
	if thumbnails == nil {
		return ""
	}

	for _, t := range []*youtube.Thumbnail{thumbnails.High, thumbnails.Medium, thumbnails.Default} {
		if t != nil && t.Url != "" {
			return t.Url
		}
	}

	return ""
}
