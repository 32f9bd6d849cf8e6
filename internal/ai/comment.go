package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/tdewolff/minify/v2"
	"github.com/tubeguard/tubeguard/internal/ai/client"
	"github.com/tubeguard/tubeguard/internal/setup/config"
	"go.uber.org/zap"
)

// CommentAnalyzer classifies comment batches with an OpenAI-compatible chat model.
type CommentAnalyzer struct {
	chat    client.ChatCompletions
	minify  *minify.M
	logger  *zap.Logger
	model   string
	timeout time.Duration
}

// NewCommentAnalyzer creates a CommentAnalyzer.
func NewCommentAnalyzer(chat client.ChatCompletions, cfg *config.AI, logger *zap.Logger) *CommentAnalyzer {
	return &CommentAnalyzer{
		chat:    chat,
		minify:  newMinifier(),
		logger:  logger.Named("ai_comment"),
		model:   cfg.Model,
		timeout: cfg.RequestTimeoutDuration(),
	}
}

// ClassifyBatch sends every text in one request and returns the parsed verdicts.
func (a *CommentAnalyzer) ClassifyBatch(ctx context.Context, texts []string) ([]RawVerdict, error) {
	if len(texts) == 0 {
		return []RawVerdict{}, nil
	}

	prompt, err := buildUserPrompt(a.minify, texts)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(CommentSystemPrompt),
			openai.UserMessage(prompt),
		},
		Model:       a.model,
		Temperature: openai.Float(0.0),
	}

	start := time.Now()

	resp, err := a.chat.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("classification request failed: %w", err)
	}

	if resp == nil || len(resp.Choices) == 0 {
		return nil, &BatchParseError{Err: client.ErrEmptyResponse}
	}

	verdicts, err := ParseBatchReply(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("Classified comment batch",
		zap.String("model", a.model),
		zap.Int("texts", len(texts)),
		zap.Int("verdicts", len(verdicts)),
		zap.Duration("duration", time.Since(start)))

	return verdicts, nil
}
