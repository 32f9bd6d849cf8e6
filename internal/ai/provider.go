package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/tubeguard/tubeguard/internal/ai/client"
	"github.com/tubeguard/tubeguard/internal/setup/config"
	"go.uber.org/zap"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// ErrUnknownProvider is returned for an unsupported ai.provider value.
var ErrUnknownProvider = errors.New("unknown AI provider")

// NewBatchClassifier builds the classifier selected by cfg.Provider.
// The returned closer releases provider resources and is never nil.
func NewBatchClassifier(
	ctx context.Context, cfg *config.AI, breakerCfg *config.CircuitBreaker, logger *zap.Logger,
) (BatchClassifier, func() error, error) {
	switch cfg.Provider {
	case ProviderOpenAI, "":
		aiClient := client.NewClient(cfg, breakerCfg, logger)
		return NewCommentAnalyzer(aiClient.Chat(), cfg, logger), func() error { return nil }, nil
	case ProviderGemini:
		analyzer, err := NewGeminiAnalyzer(ctx, cfg, breakerCfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return analyzer, analyzer.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}
}
