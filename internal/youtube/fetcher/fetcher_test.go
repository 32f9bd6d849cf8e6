package fetcher_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tubeguard/tubeguard/internal/setup/config"
	"github.com/tubeguard/tubeguard/internal/youtube/fetcher"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

func newTestService(t *testing.T, handler http.Handler) *youtube.Service {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := fetcher.NewService(context.Background(), &config.YouTube{APIKey: "test-key"},
		option.WithEndpoint(server.URL+"/"))
	require.NoError(t, err)

	return svc
}

const commentPage1 = `{
  "nextPageToken": "page-2",
  "items": [
    {"snippet": {"totalReplyCount": 2, "topLevelComment": {"id": "c1", "snippet": {
      "authorDisplayName": "alice", "authorProfileImageUrl": "https://img/a",
      "authorChannelId": {"value": "UC-alice"}, "textDisplay": "first", "likeCount": 5,
      "publishedAt": "2025-01-01T00:00:00Z"}}}},
    {"snippet": {"topLevelComment": {"id": "c2", "snippet": {
      "authorDisplayName": "bob", "textDisplay": "second", "likeCount": 0,
      "publishedAt": "2025-01-02T00:00:00Z"}}}}
  ]
}`

const commentPage2 = `{
  "items": [
    {"snippet": {"topLevelComment": {"id": "c3", "snippet": {
      "authorDisplayName": "carol", "authorChannelId": {"value": "UC-carol"},
      "textDisplay": "third", "likeCount": 1, "publishedAt": "2025-01-03T00:00:00Z"}}}}
  ]
}`

func commentHandler(t *testing.T, requests *atomic.Int32) http.HandlerFunc {
	t.Helper()

	return func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		assert.Equal(t, "/youtube/v3/commentThreads", r.URL.Path)
		assert.Equal(t, "vid12345678", r.URL.Query().Get("videoId"))
		assert.Equal(t, "plainText", r.URL.Query().Get("textFormat"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("pageToken") == "page-2" {
			_, _ = w.Write([]byte(commentPage2))
			return
		}
		_, _ = w.Write([]byte(commentPage1))
	}
}

func TestFetchComments(t *testing.T) {
	t.Parallel()

	t.Run("follows pages", func(t *testing.T) {
		t.Parallel()

		var requests atomic.Int32
		svc := newTestService(t, commentHandler(t, &requests))
		f := fetcher.NewCommentFetcher(svc, 5*time.Second, zap.NewNop())

		comments, err := f.FetchComments(context.Background(), "vid12345678", 10)
		require.NoError(t, err)
		require.Len(t, comments, 3)
		assert.Equal(t, int32(2), requests.Load())

		assert.Equal(t, "c1", comments[0].ID)
		assert.Equal(t, "UC-alice", comments[0].AuthorID)
		assert.Equal(t, "alice", comments[0].AuthorName)
		assert.Equal(t, "https://img/a", comments[0].AuthorImage)
		assert.Equal(t, "first", comments[0].Text)
		assert.Equal(t, uint64(5), comments[0].LikeCount)
		assert.Equal(t, uint64(2), comments[0].ReplyCount)
		assert.Equal(t, "2025-01-01T00:00:00Z", comments[0].PublishedAt)

		assert.Equal(t, fetcher.AnonymousAuthorID("bob"), comments[1].AuthorID)
		assert.Equal(t, "c3", comments[2].ID)
	})

	t.Run("stops at max results", func(t *testing.T) {
		t.Parallel()

		var requests atomic.Int32
		svc := newTestService(t, commentHandler(t, &requests))
		f := fetcher.NewCommentFetcher(svc, 5*time.Second, zap.NewNop())

		comments, err := f.FetchComments(context.Background(), "vid12345678", 1)
		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Equal(t, "c1", comments[0].ID)
		assert.Equal(t, int32(1), requests.Load())
	})

	t.Run("zero max results", func(t *testing.T) {
		t.Parallel()

		var requests atomic.Int32
		svc := newTestService(t, commentHandler(t, &requests))
		f := fetcher.NewCommentFetcher(svc, 5*time.Second, zap.NewNop())

		comments, err := f.FetchComments(context.Background(), "vid12345678", 0)
		require.NoError(t, err)
		assert.Empty(t, comments)
		assert.Zero(t, requests.Load())
	})

	t.Run("comments disabled", func(t *testing.T) {
		t.Parallel()

		var requests atomic.Int32
		svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			requests.Add(1)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":{"code":403,"message":"disabled",` +
				`"errors":[{"reason":"commentsDisabled","message":"disabled"}]}}`))
		}))
		f := fetcher.NewCommentFetcher(svc, 5*time.Second, zap.NewNop())

		_, err := f.FetchComments(context.Background(), "vid12345678", 10)
		require.ErrorIs(t, err, fetcher.ErrCommentsDisabled)
		assert.Equal(t, int32(1), requests.Load())
	})

	t.Run("retries server errors", func(t *testing.T) {
		t.Parallel()

		var requests atomic.Int32
		svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if requests.Add(1) == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":{"code":500,"message":"backend"}}`))
				return
			}
			_, _ = w.Write([]byte(commentPage2))
		}))
		f := fetcher.NewCommentFetcher(svc, 5*time.Second, zap.NewNop())

		comments, err := f.FetchComments(context.Background(), "vid12345678", 10)
		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Equal(t, int32(2), requests.Load())
	})
}

func TestFetchVideo(t *testing.T) {
	t.Parallel()

	t.Run("maps snippet and statistics", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/youtube/v3/videos", r.URL.Path)
			assert.Equal(t, "vid12345678", r.URL.Query().Get("id"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"items":[{"id":"vid12345678",
				"snippet":{"title":"Title","channelTitle":"Channel","channelId":"UC1",
				"publishedAt":"2025-01-01T00:00:00Z","description":"desc",
				"thumbnails":{"default":{"url":"https://img/default"},"medium":{"url":"https://img/medium"}}},
				"statistics":{"viewCount":"100","likeCount":"10","commentCount":"3"}}]}`))
		}))
		f := fetcher.NewVideoFetcher(svc, 5*time.Second, zap.NewNop())

		video, err := f.FetchVideo(context.Background(), "vid12345678")
		require.NoError(t, err)
		assert.Equal(t, "vid12345678", video.ID)
		assert.Equal(t, "Title", video.Title)
		assert.Equal(t, "Channel", video.ChannelName)
		assert.Equal(t, "UC1", video.ChannelID)
		assert.Equal(t, "desc", video.Description)
		assert.Equal(t, "https://img/medium", video.ThumbnailURL)
		assert.Equal(t, uint64(100), video.ViewCount)
		assert.Equal(t, uint64(10), video.LikeCount)
		assert.Equal(t, uint64(3), video.CommentCount)
	})

	t.Run("no items", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"items":[]}`))
		}))
		f := fetcher.NewVideoFetcher(svc, 5*time.Second, zap.NewNop())

		_, err := f.FetchVideo(context.Background(), "vid12345678")
		require.ErrorIs(t, err, fetcher.ErrVideoNotFound)
	})
}

func TestAnonymousAuthorID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "900150983cd24fb0d6963f7d28e17f72", fetcher.AnonymousAuthorID("abc"))
	assert.Equal(t, fetcher.AnonymousAuthorID("bob"), fetcher.AnonymousAuthorID("bob"))
}
