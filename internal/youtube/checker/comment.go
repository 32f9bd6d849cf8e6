package checker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tubeguard/tubeguard/internal/ai"
	"github.com/tubeguard/tubeguard/internal/database/types"
	"github.com/tubeguard/tubeguard/internal/database/types/enum"
	"github.com/tubeguard/tubeguard/pkg/utils"
	"go.uber.org/zap"
)

// DefaultMaxBatchSize is the number of comments sent per remote request when none is configured.
const DefaultMaxBatchSize = 50

// CommentChecker classifies comments with the local filters first and the remote classifier second.
// Remote failures never surface as errors; affected comments are marked risky instead.
type CommentChecker struct {
	filters      *FilterBank
	classifier   ai.BatchClassifier
	maxBatchSize int
	logger       *zap.Logger
}

// NewCommentChecker creates a CommentChecker.
func NewCommentChecker(
	filters *FilterBank, classifier ai.BatchClassifier, maxBatchSize int, logger *zap.Logger,
) *CommentChecker {
	if maxBatchSize <= 0 {
		maxBatchSize = DefaultMaxBatchSize
	}

	return &CommentChecker{
		filters:      filters,
		classifier:   classifier,
		maxBatchSize: maxBatchSize,
		logger:       logger.Named("comment_checker"),
	}
}

// ClassifyComments sets category, reason, origin and confidence on every comment.
// The returned slice is the input slice with the same length and order.
func (c *CommentChecker) ClassifyComments(ctx context.Context, comments []*types.Comment) []*types.Comment {
	logger := c.logger.With(zap.String("runID", uuid.NewString()))

	// Local filters decide what they can
	pending := make([]*types.Comment, 0, len(comments))
	localCount := 0
	for _, comment := range comments {
		if comment == nil {
			continue
		}

		if result, ok := c.filters.Classify(comment.Text); ok {
			comment.Apply(result)
			localCount++
			continue
		}

		pending = append(pending, comment)
	}

	// Remaining comments go to the remote classifier in consecutive chunks
	for start := 0; start < len(pending); start += c.maxBatchSize {
		end := min(start+c.maxBatchSize, len(pending))
		c.classifyChunk(ctx, logger, pending[start:end])
	}

	logger.Info("Classified comments",
		zap.Int("total", len(comments)),
		zap.Int("local", localCount),
		zap.Int("remote", len(pending)))

	return comments
}

// ClassifyText classifies a single text through the same pipeline.
func (c *CommentChecker) ClassifyText(ctx context.Context, text string) types.ClassificationResult {
	comment := &types.Comment{Text: text}
	c.ClassifyComments(ctx, []*types.Comment{comment})

	return types.ClassificationResult{
		Category:   comment.Category,
		Reason:     comment.Reason,
		Origin:     comment.Origin,
		Confidence: comment.Confidence,
	}
}

// classifyChunk sends one request and pairs verdicts back by their 1-based index.
func (c *CommentChecker) classifyChunk(ctx context.Context, logger *zap.Logger, chunk []*types.Comment) {
	texts := make([]string, len(chunk))
	for i, comment := range chunk {
		texts[i] = comment.Text
	}

	start := time.Now()

	verdicts, err := c.safeClassify(ctx, texts)
	if err != nil {
		logger.Warn("Remote classification failed, marking chunk as risky",
			zap.Error(err),
			zap.Int("size", len(chunk)),
			zap.Duration("duration", time.Since(start)))

		fallback := types.NewClassificationResult(enum.CommentCategoryRisky, ReasonError, enum.AnalysisOriginFallback)
		for _, comment := range chunk {
			comment.Apply(fallback)
		}

		return
	}

	assigned := make([]bool, len(chunk))
	for _, verdict := range verdicts {
		if verdict.Index < 1 || verdict.Index > len(chunk) {
			logger.Warn("Ignoring verdict with out of range index",
				zap.Int("index", verdict.Index),
				zap.Int("size", len(chunk)))
			continue
		}

		pos := verdict.Index - 1
		if assigned[pos] {
			logger.Warn("Ignoring duplicate verdict", zap.Int("index", verdict.Index))
			continue
		}

		category, reason, substituted := NormalizeVerdict(verdict.Category, verdict.Reason)
		if substituted {
			logger.Warn("Replaced unrecognized category",
				zap.Int("index", verdict.Index),
				zap.String("reason", reason))
		}

		chunk[pos].Apply(types.NewClassificationResult(category, reason, enum.AnalysisOriginRemote))
		assigned[pos] = true
	}

	missing := 0
	for pos, ok := range assigned {
		if ok {
			continue
		}

		chunk[pos].Apply(types.NewClassificationResult(enum.CommentCategoryRisky, ReasonMissing, enum.AnalysisOriginFallback))
		missing++
	}

	if missing > 0 {
		logger.Warn("Remote reply did not cover every comment",
			zap.Int("missing", missing),
			zap.Int("size", len(chunk)))
	}

	logger.Debug("Classified chunk",
		zap.Int("size", len(chunk)),
		zap.Int("verdicts", len(verdicts)),
		zap.String("first", utils.TruncateRunes(texts[0], 40)),
		zap.Duration("duration", time.Since(start)))
}

// safeClassify calls the classifier and converts a panic into an error.
func (c *CommentChecker) safeClassify(ctx context.Context, texts []string) (verdicts []ai.RawVerdict, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			verdicts = nil
			err = fmt.Errorf("%w: %v", ErrClassifierPanic, r)
		}
	}()

	return c.classifier.ClassifyBatch(ctx, texts)
}

// Summarize counts classified comments per category.
func Summarize(comments []*types.Comment) types.Summary {
	var summary types.Summary
	for _, comment := range comments {
		if comment == nil {
			continue
		}
		summary.Add(comment.Category)
	}
	return summary
}
