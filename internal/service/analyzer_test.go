package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tubeguard/tubeguard/internal/ai"
	"github.com/tubeguard/tubeguard/internal/database/types"
	"github.com/tubeguard/tubeguard/internal/database/types/enum"
	"github.com/tubeguard/tubeguard/internal/service"
	"github.com/tubeguard/tubeguard/internal/youtube/checker"
	"github.com/tubeguard/tubeguard/pkg/utils"
	"go.uber.org/zap"
)

var errBackend = errors.New("backend unavailable")

type fakeComments struct {
	comments []*types.Comment
	err      error
	calls    int
	max      int
	mu       sync.Mutex
}

func (f *fakeComments) FetchComments(_ context.Context, _ string, maxResults int) ([]*types.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.max = maxResults
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*types.Comment, len(f.comments))
	for i, c := range f.comments {
		copied := *c
		out[i] = &copied
	}
	return out, nil
}

type fakeVideos struct {
	err error
}

func (f *fakeVideos) FetchVideo(_ context.Context, videoID string) (*types.Video, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &types.Video{ID: videoID, Title: "Title"}, nil
}

type fakeStore struct {
	err   error
	saved []*types.Comment
	video *types.Video
}

func (f *fakeStore) SaveVideoWithComments(
	_ context.Context, video *types.Video, comments []*types.Comment,
) (types.SaveStats, error) {
	if f.err != nil {
		return types.SaveStats{}, f.err
	}
	f.video = video
	f.saved = comments
	return types.SaveStats{Comments: len(comments), Analyses: len(comments)}, nil
}

type fakeCache struct {
	entries map[string]*types.VideoAnalysis
	getErr  error
}

func (f *fakeCache) key(videoID string, maxResults int) string {
	return fmt.Sprintf("%s:%d", videoID, maxResults)
}

func (f *fakeCache) Get(_ context.Context, videoID string, maxResults int) (*types.VideoAnalysis, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	analysis, ok := f.entries[f.key(videoID, maxResults)]
	return analysis, ok, nil
}

func (f *fakeCache) Set(_ context.Context, maxResults int, analysis *types.VideoAnalysis) error {
	f.entries[f.key(analysis.Video.ID, maxResults)] = analysis
	return nil
}

// remoteRisky answers every remote item with the risky label.
type remoteRisky struct{}

func (remoteRisky) ClassifyBatch(_ context.Context, texts []string) ([]ai.RawVerdict, error) {
	verdicts := make([]ai.RawVerdict, len(texts))
	for i := range texts {
		verdicts[i] = ai.RawVerdict{Index: i + 1, Category: utils.Ptr("위험"), Reason: "공격적 표현"}
	}
	return verdicts, nil
}

func sampleComments() []*types.Comment {
	return []*types.Comment{
		{ID: "c1", AuthorID: "a1", Text: "https://spam.example 카톡 문의"},
		{ID: "c2", AuthorID: "a2", Text: "영상 최고예요 감사합니다"},
		{ID: "c3", AuthorID: "a3", Text: "이 사람 진짜 왜 이러는지 모르겠네"},
	}
}

func newAnalyzer(comments *fakeComments, videos *fakeVideos, opts ...service.Option) *service.Analyzer {
	classifier := checker.NewCommentChecker(checker.DefaultFilterBank(), remoteRisky{}, 50, zap.NewNop())
	return service.NewAnalyzer(comments, videos, classifier, zap.NewNop(), opts...)
}

func TestAnalyzeVideo(t *testing.T) {
	t.Parallel()

	comments := &fakeComments{comments: sampleComments()}
	store := &fakeStore{}
	analyzer := newAnalyzer(comments, &fakeVideos{}, service.WithStore(store), service.WithMaxResults(20))

	analysis, err := analyzer.AnalyzeVideo(t.Context(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ", 0)
	require.NoError(t, err)

	assert.Equal(t, 20, comments.max)
	assert.Equal(t, "dQw4w9WgXcQ", analysis.Video.ID)
	assert.Equal(t, "Title", analysis.Video.Title)
	assert.Equal(t, types.Summary{Total: 3, Normal: 1, Risky: 1, Spam: 1}, analysis.Summary)
	assert.False(t, analysis.AnalyzedAt.IsZero())

	require.Len(t, analysis.Comments, 3)
	assert.Equal(t, enum.CommentCategorySpam, analysis.Comments[0].Category)
	assert.Equal(t, enum.AnalysisOriginLocal, analysis.Comments[0].Origin)
	assert.Equal(t, enum.CommentCategoryNormal, analysis.Comments[1].Category)
	assert.Equal(t, enum.CommentCategoryRisky, analysis.Comments[2].Category)
	assert.Equal(t, enum.AnalysisOriginRemote, analysis.Comments[2].Origin)

	require.Len(t, store.saved, 3)
	assert.Equal(t, "dQw4w9WgXcQ", store.video.ID)
}

func TestAnalyzeVideoInvalidURL(t *testing.T) {
	t.Parallel()

	comments := &fakeComments{comments: sampleComments()}
	analyzer := newAnalyzer(comments, &fakeVideos{})

	_, err := analyzer.AnalyzeVideo(t.Context(), "https://example.com/not-a-video", 10)
	require.ErrorIs(t, err, utils.ErrInvalidVideoURL)
	assert.Zero(t, comments.calls)
}

func TestAnalyzeVideoFetchFailures(t *testing.T) {
	t.Parallel()

	t.Run("comment fetch failure is returned", func(t *testing.T) {
		t.Parallel()

		analyzer := newAnalyzer(&fakeComments{err: errBackend}, &fakeVideos{})

		_, err := analyzer.AnalyzeVideo(t.Context(), "dQw4w9WgXcQ", 10)
		require.ErrorIs(t, err, errBackend)
	})

	t.Run("metadata failure falls back to the bare video", func(t *testing.T) {
		t.Parallel()

		analyzer := newAnalyzer(&fakeComments{comments: sampleComments()}, &fakeVideos{err: errBackend})

		analysis, err := analyzer.AnalyzeVideo(t.Context(), "dQw4w9WgXcQ", 10)
		require.NoError(t, err)
		assert.Equal(t, &types.Video{ID: "dQw4w9WgXcQ"}, analysis.Video)
		assert.Equal(t, 3, analysis.Summary.Total)
	})

	t.Run("store failure does not fail the analysis", func(t *testing.T) {
		t.Parallel()

		analyzer := newAnalyzer(&fakeComments{comments: sampleComments()}, &fakeVideos{},
			service.WithStore(&fakeStore{err: errBackend}))

		analysis, err := analyzer.AnalyzeVideo(t.Context(), "dQw4w9WgXcQ", 10)
		require.NoError(t, err)
		assert.Equal(t, 3, analysis.Summary.Total)
	})
}

func TestAnalyzeVideoCache(t *testing.T) {
	t.Parallel()

	t.Run("second request is served from cache", func(t *testing.T) {
		t.Parallel()

		comments := &fakeComments{comments: sampleComments()}
		analyzer := newAnalyzer(comments, &fakeVideos{},
			service.WithCache(&fakeCache{entries: map[string]*types.VideoAnalysis{}}))

		first, err := analyzer.AnalyzeVideo(t.Context(), "dQw4w9WgXcQ", 5)
		require.NoError(t, err)

		second, err := analyzer.AnalyzeVideo(t.Context(), "https://youtu.be/dQw4w9WgXcQ", 5)
		require.NoError(t, err)

		assert.Same(t, first, second)
		assert.Equal(t, 1, comments.calls)
	})

	t.Run("cache read failure runs the pipeline", func(t *testing.T) {
		t.Parallel()

		comments := &fakeComments{comments: sampleComments()}
		analyzer := newAnalyzer(comments, &fakeVideos{},
			service.WithCache(&fakeCache{entries: map[string]*types.VideoAnalysis{}, getErr: errBackend}))

		_, err := analyzer.AnalyzeVideo(t.Context(), "dQw4w9WgXcQ", 5)
		require.NoError(t, err)
		assert.Equal(t, 1, comments.calls)
	})
}
