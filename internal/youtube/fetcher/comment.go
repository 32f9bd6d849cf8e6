package fetcher

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/tubeguard/tubeguard/internal/database/types"
	"github.com/tubeguard/tubeguard/pkg/utils"
	"go.uber.org/zap"
	"google.golang.org/api/youtube/v3"
)

// MaxPageSize is the largest page the commentThreads endpoint returns.
const MaxPageSize = 50

// CommentFetcher handles retrieval of top-level comments of a video.
type CommentFetcher struct {
	svc     *youtube.Service
	timeout time.Duration
	logger  *zap.Logger
}

// NewCommentFetcher creates a CommentFetcher.
func NewCommentFetcher(svc *youtube.Service, timeout time.Duration, logger *zap.Logger) *CommentFetcher {
	return &CommentFetcher{
		svc:     svc,
		timeout: timeout,
		logger:  logger.Named("comment_fetcher"),
	}
}

// FetchComments pages through the comment threads of a video until maxResults comments are collected.
func (f *CommentFetcher) FetchComments(ctx context.Context, videoID string, maxResults int) ([]*types.Comment, error) {
	if maxResults <= 0 {
		return []*types.Comment{}, nil
	}

	comments := make([]*types.Comment, 0, maxResults)
	pageToken := ""
	pages := 0

	for len(comments) < maxResults {
		resp, err := utils.WithRetry(ctx, func() (*youtube.CommentThreadListResponse, error) {
			return f.fetchPage(ctx, videoID, pageToken, min(MaxPageSize, maxResults-len(comments)))
		}, utils.GetYouTubeRetryOptions())
		if err != nil {
			return nil, fmt.Errorf("failed to fetch comments for video %s: %w", videoID, err)
		}
		pages++

		for _, thread := range resp.Items {
			if comment := convertThread(thread); comment != nil {
				comments = append(comments, comment)
				if len(comments) >= maxResults {
					break
				}
			}
		}

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	f.logger.Debug("Fetched comments",
		zap.String("videoID", videoID),
		zap.Int("count", len(comments)),
		zap.Int("pages", pages))

	return comments, nil
}

// fetchPage requests one page of comment threads.
func (f *CommentFetcher) fetchPage(
	ctx context.Context, videoID, pageToken string, pageSize int,
) (*youtube.CommentThreadListResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	call := f.svc.CommentThreads.List([]string{"snippet"}).
		VideoId(videoID).
		MaxResults(int64(pageSize)).
		TextFormat("plainText").
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, classifyAPIError(err)
	}

	return resp, nil
}

// convertThread maps a comment thread onto the pipeline comment.
func convertThread(thread *youtube.CommentThread) *types.Comment {
	if thread == nil || thread.Snippet == nil || thread.Snippet.TopLevelComment == nil {
		return nil
	}

	top := thread.Snippet.TopLevelComment
	snippet := top.Snippet
	if snippet == nil {
		return nil
	}

	authorID := ""
	if snippet.AuthorChannelId != nil {
		authorID = snippet.AuthorChannelId.Value
	}
	if authorID == "" {
		authorID = AnonymousAuthorID(snippet.AuthorDisplayName)
	}

	return &types.Comment{
		ID:          top.Id,
		AuthorID:    authorID,
		AuthorName:  snippet.AuthorDisplayName,
		AuthorImage: snippet.AuthorProfileImageUrl,
		Text:        snippet.TextDisplay,
		LikeCount:   uint64(max(snippet.LikeCount, 0)),
		ReplyCount:  uint64(max(thread.Snippet.TotalReplyCount, 0)),
		PublishedAt: snippet.PublishedAt,
	}
}

// AnonymousAuthorID derives a stable author id from a display name.
func AnonymousAuthorID(displayName string) string {
	sum := md5.Sum([]byte(displayName))
	return hex.EncodeToString(sum[:])
}
