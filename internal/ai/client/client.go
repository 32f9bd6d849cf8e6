package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/sony/gobreaker"
	"github.com/tubeguard/tubeguard/internal/setup/config"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

var (
	// ErrContentBlocked is returned when the provider refuses to answer because of its safety filters.
	ErrContentBlocked = errors.New("content blocked by AI safety filters")
	// ErrResponseTruncated is returned when the reply hit the token limit.
	ErrResponseTruncated = errors.New("response truncated by token limit")
	// ErrEmptyResponse is returned when the provider answered without any choice.
	ErrEmptyResponse = errors.New("empty response from AI provider")
	// ErrCircuitOpen is returned while the circuit breaker rejects requests.
	ErrCircuitOpen = errors.New("AI circuit breaker is open")
)

// AIClient implements the Client interface over an OpenAI-compatible API.
// It never retries; callers decide how to degrade.
type AIClient struct {
	client    *openai.Client
	breaker   *gobreaker.CircuitBreaker
	semaphore *semaphore.Weighted
	logger    *zap.Logger
}

// NewClient creates a new AIClient.
func NewClient(cfg *config.AI, breakerCfg *config.CircuitBreaker, logger *zap.Logger, opts ...option.RequestOption) *AIClient {
	requestOptions := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(cfg.RequestTimeoutDuration()),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		requestOptions = append(requestOptions, option.WithBaseURL(cfg.BaseURL))
	}
	requestOptions = append(requestOptions, opts...)

	client := openai.NewClient(requestOptions...)

	return &AIClient{
		client:    &client,
		breaker:   NewBreaker("openai", breakerCfg, logger),
		semaphore: semaphore.NewWeighted(max(cfg.MaxConcurrent, 1)),
		logger:    logger.Named("ai_client"),
	}
}

// NewBreaker creates the circuit breaker guarding an AI provider.
func NewBreaker(name string, cfg *config.CircuitBreaker, logger *zap.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    time.Duration(cfg.Interval) * time.Millisecond,
		Timeout:     time.Duration(cfg.Timeout) * time.Millisecond,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 10 && failureRatio >= 0.6
		},
		IsSuccessful: func(err error) bool {
			// Callers giving up is not a provider failure
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
}

// Chat returns a ChatCompletions implementation.
func (c *AIClient) Chat() ChatCompletions {
	return &chatCompletions{client: c}
}

// chatCompletions implements the ChatCompletions interface.
type chatCompletions struct {
	client *AIClient
}

// New makes a single chat completion request.
func (c *chatCompletions) New(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	params.SetExtraFields(NewExtraFieldsSettings().ForModel(params.Model).Build())

	if err := c.client.semaphore.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("failed to acquire semaphore: %w", err)
	}
	defer c.client.semaphore.Release(1)

	result, err := c.client.breaker.Execute(func() (any, error) {
		resp, err := c.client.client.Chat.Completions.New(ctx, params)
		if err != nil {
			return nil, err
		}
		if bl := c.checkBlockReasons(resp, params.Model); bl != nil {
			return nil, bl
		}
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %w", ErrCircuitOpen, err)
		}

		c.client.logger.Warn("Failed to make request",
			zap.String("model", params.Model),
			zap.Error(err))
		return nil, err
	}

	return result.(*openai.ChatCompletion), nil
}

// checkBlockReasons checks if the response was blocked or cut short.
func (c *chatCompletions) checkBlockReasons(resp *openai.ChatCompletion, model string) error {
	if resp == nil || len(resp.Choices) == 0 {
		c.client.logger.Warn("Received empty choices", zap.String("model", model))
		return ErrEmptyResponse
	}

	finishReason := resp.Choices[0].FinishReason
	switch finishReason {
	case "stop", "":
		return nil
	case "length":
		return ErrResponseTruncated
	case "content_filter":
		c.client.logger.Warn("Content blocked",
			zap.String("model", model),
			zap.String("finishReason", finishReason))
		return ErrContentBlocked
	default:
		c.client.logger.Warn("Unknown finish reason",
			zap.String("model", model),
			zap.String("finishReason", finishReason))
		return nil
	}
}
