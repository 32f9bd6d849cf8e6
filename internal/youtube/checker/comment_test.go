package checker_test

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tubeguard/tubeguard/internal/ai"
	"github.com/tubeguard/tubeguard/internal/database/types"
	"github.com/tubeguard/tubeguard/internal/database/types/enum"
	"github.com/tubeguard/tubeguard/internal/youtube/checker"
	"github.com/tubeguard/tubeguard/pkg/utils"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var errUpstream = errors.New("upstream unavailable")

// fakeClassifier records every batch it receives and answers through respond.
type fakeClassifier struct {
	mu      sync.Mutex
	batches [][]string
	respond func(call int, texts []string) ([]ai.RawVerdict, error)
}

func (f *fakeClassifier) ClassifyBatch(_ context.Context, texts []string) ([]ai.RawVerdict, error) {
	f.mu.Lock()
	call := len(f.batches)
	f.batches = append(f.batches, append([]string{}, texts...))
	f.mu.Unlock()

	return f.respond(call, texts)
}

func (f *fakeClassifier) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.batches)
}

// allAs answers every text with the same label.
func allAs(label string) func(int, []string) ([]ai.RawVerdict, error) {
	return func(_ int, texts []string) ([]ai.RawVerdict, error) {
		verdicts := make([]ai.RawVerdict, len(texts))
		for i := range texts {
			verdicts[i] = ai.RawVerdict{Index: i + 1, Category: utils.Ptr(label), Reason: "model reason"}
		}
		return verdicts, nil
	}
}

func newComments(texts ...string) []*types.Comment {
	comments := make([]*types.Comment, len(texts))
	for i, text := range texts {
		comments[i] = &types.Comment{ID: "c" + strconv.Itoa(i), Text: text}
	}
	return comments
}

func newChecker(classifier ai.BatchClassifier, maxBatch int) *checker.CommentChecker {
	return checker.NewCommentChecker(checker.DefaultFilterBank(), classifier, maxBatch, zap.NewNop())
}

func TestClassifyCommentsMixed(t *testing.T) {
	t.Parallel()

	fake := &fakeClassifier{respond: func(_ int, texts []string) ([]ai.RawVerdict, error) {
		return []ai.RawVerdict{
			{Index: 2, Category: utils.Ptr("위험"), Reason: "인신공격"},
			{Index: 1, Category: utils.Ptr("정상"), Reason: "질문"},
		}, nil
	}}

	// Comments 0, 2 and 4 are decided locally
	comments := newComments(
		"씨발 뭐야",
		"이거 어디서 샀어요?",
		"https://spam.example",
		"너 진짜 한심하다",
		"👍",
	)

	out := newChecker(fake, 50).ClassifyComments(t.Context(), comments)

	require.Len(t, out, 5)
	for i := range comments {
		assert.Same(t, comments[i], out[i])
	}

	assert.Equal(t, [][]string{{"이거 어디서 샀어요?", "너 진짜 한심하다"}}, fake.batches)

	assert.Equal(t, enum.CommentCategoryRisky, out[0].Category)
	assert.Equal(t, enum.AnalysisOriginLocal, out[0].Origin)

	assert.Equal(t, enum.CommentCategoryNormal, out[1].Category)
	assert.Equal(t, "질문", out[1].Reason)
	assert.Equal(t, enum.AnalysisOriginRemote, out[1].Origin)
	assert.InDelta(t, 0.8, out[1].Confidence, 1e-9)

	assert.Equal(t, enum.CommentCategorySpam, out[2].Category)
	assert.Equal(t, enum.CommentCategoryRisky, out[3].Category)
	assert.Equal(t, "인신공격", out[3].Reason)
	assert.Equal(t, enum.CommentCategoryNormal, out[4].Category)

	assert.Equal(t, types.Summary{Total: 5, Normal: 2, Risky: 2, Spam: 1}, checker.Summarize(out))
}

func TestClassifyCommentsAllLocalSkipsRemote(t *testing.T) {
	t.Parallel()

	fake := &fakeClassifier{respond: allAs("정상")}
	out := newChecker(fake, 50).ClassifyComments(t.Context(), newComments("씨발", "010-1234-5678", "😂"))

	assert.Equal(t, 0, fake.calls())
	for _, c := range out {
		assert.Equal(t, enum.AnalysisOriginLocal, c.Origin)
	}
}

func TestClassifyCommentsEmpty(t *testing.T) {
	t.Parallel()

	fake := &fakeClassifier{respond: allAs("정상")}
	out := newChecker(fake, 50).ClassifyComments(t.Context(), nil)

	assert.Empty(t, out)
	assert.Equal(t, 0, fake.calls())
	assert.Equal(t, types.Summary{}, checker.Summarize(out))
}

func TestClassifyCommentsRemoteFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		respond func(int, []string) ([]ai.RawVerdict, error)
	}{
		{
			name: "transport error",
			respond: func(int, []string) ([]ai.RawVerdict, error) {
				return nil, errUpstream
			},
		},
		{
			name: "parse error",
			respond: func(int, []string) ([]ai.RawVerdict, error) {
				return nil, &ai.BatchParseError{Reply: "nope"}
			},
		},
		{
			name: "panic",
			respond: func(int, []string) ([]ai.RawVerdict, error) {
				panic("boom")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fake := &fakeClassifier{respond: tt.respond}
			out := newChecker(fake, 50).ClassifyComments(t.Context(), newComments("편집이 아쉽네요", "씨발", "다음 영상 언제 나와요"))

			require.Len(t, out, 3)
			for _, i := range []int{0, 2} {
				assert.Equal(t, enum.CommentCategoryRisky, out[i].Category)
				assert.Equal(t, checker.ReasonError, out[i].Reason)
				assert.Equal(t, enum.AnalysisOriginFallback, out[i].Origin)
				assert.InDelta(t, 0.0, out[i].Confidence, 1e-9)
			}

			// Local decisions are untouched by the failure
			assert.Equal(t, checker.ReasonProfanity, out[1].Reason)
		})
	}
}

func TestClassifyCommentsIncompleteReply(t *testing.T) {
	t.Parallel()

	fake := &fakeClassifier{respond: func(int, []string) ([]ai.RawVerdict, error) {
		return []ai.RawVerdict{
			{Index: 1, Category: utils.Ptr("spam"), Reason: "first"},
			{Index: 1, Category: utils.Ptr("normal"), Reason: "duplicate"},
			{Index: 9, Category: utils.Ptr("normal"), Reason: "out of range"},
			{Index: 0, Category: utils.Ptr("normal"), Reason: "zero"},
			{Index: 3, Category: utils.Ptr("증오"), Reason: "차별"},
		}, nil
	}}

	out := newChecker(fake, 50).ClassifyComments(t.Context(), newComments("하나", "둘이요", "셋입니다"))

	assert.Equal(t, enum.CommentCategorySpam, out[0].Category)
	assert.Equal(t, "first", out[0].Reason)

	assert.Equal(t, enum.CommentCategoryRisky, out[1].Category)
	assert.Equal(t, checker.ReasonMissing, out[1].Reason)

	assert.Equal(t, enum.CommentCategoryRisky, out[2].Category)
	assert.Equal(t, `unrecognized category "증오" replaced with risky: 차별`, out[2].Reason)
	assert.Equal(t, enum.AnalysisOriginRemote, out[2].Origin)
}

func TestClassifyCommentsChunking(t *testing.T) {
	t.Parallel()

	fake := &fakeClassifier{respond: func(call int, texts []string) ([]ai.RawVerdict, error) {
		if call == 1 {
			return nil, errUpstream
		}
		return allAs("normal")(call, texts)
	}}

	texts := make([]string, 7)
	for i := range texts {
		texts[i] = "의견 " + strconv.Itoa(i) + "번"
	}

	out := newChecker(fake, 3).ClassifyComments(t.Context(), newComments(texts...))

	require.Equal(t, 3, fake.calls())
	assert.Len(t, fake.batches[0], 3)
	assert.Len(t, fake.batches[1], 3)
	assert.Len(t, fake.batches[2], 1)
	assert.Equal(t, texts[6], fake.batches[2][0])

	for i, c := range out {
		if i >= 3 && i < 6 {
			assert.Equal(t, checker.ReasonError, c.Reason, "comment %d", i)
			continue
		}
		assert.Equal(t, enum.CommentCategoryNormal, c.Category, "comment %d", i)
	}
}

func TestClassifyCommentsCancelledContext(t *testing.T) {
	t.Parallel()

	fake := &fakeClassifier{respond: allAs("normal")}

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	out := newChecker(fake, 50).ClassifyComments(ctx, newComments("편집이 아쉽네요"))

	assert.Equal(t, 0, fake.calls())
	assert.Equal(t, checker.ReasonError, out[0].Reason)
	assert.Equal(t, enum.AnalysisOriginFallback, out[0].Origin)
}

func TestClassifyText(t *testing.T) {
	t.Parallel()

	fake := &fakeClassifier{respond: allAs("위험")}
	result := newChecker(fake, 50).ClassifyText(t.Context(), "너 정말 별로다")

	assert.Equal(t, enum.CommentCategoryRisky, result.Category)
	assert.Equal(t, "model reason", result.Reason)
	assert.Equal(t, enum.AnalysisOriginRemote, result.Origin)
}

func TestClassifyCommentsTelegramAdIsLocal(t *testing.T) {
	t.Parallel()

	fake := &fakeClassifier{respond: allAs("정상")}
	out := newChecker(fake, 50).ClassifyComments(t.Context(), newComments("문의 텔레그램 @abc"))

	assert.Equal(t, 0, fake.calls())
	require.Len(t, out, 1)
	assert.Equal(t, enum.CommentCategorySpam, out[0].Category)
	assert.Equal(t, checker.ReasonAdvertisement, out[0].Reason)
	assert.Equal(t, enum.AnalysisOriginLocal, out[0].Origin)
}

func TestClassifyCommentsLogsLocalCount(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	fake := &fakeClassifier{respond: allAs("정상")}
	c := checker.NewCommentChecker(checker.DefaultFilterBank(), fake, 50, zap.New(core))

	comments := []*types.Comment{
		nil,
		{ID: "a", Text: "👍"},
		nil,
		{ID: "b", Text: "편집이 조금 아쉽네요"},
	}
	out := c.ClassifyComments(t.Context(), comments)
	require.Len(t, out, 4)

	entries := logs.FilterMessage("Classified comments").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.EqualValues(t, 4, fields["total"])
	assert.EqualValues(t, 1, fields["local"])
	assert.EqualValues(t, 1, fields["remote"])
}
