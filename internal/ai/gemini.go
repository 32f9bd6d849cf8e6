package ai

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/sony/gobreaker"
	"github.com/tdewolff/minify/v2"
	"github.com/tubeguard/tubeguard/internal/ai/client"
	"github.com/tubeguard/tubeguard/internal/setup/config"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
	"google.golang.org/api/option"
)

// ErrEmptyGeminiResponse is returned when Gemini answered without text.
var ErrEmptyGeminiResponse = errors.New("empty response from gemini")

// GeminiAnalyzer classifies comment batches with a Gemini model.
type GeminiAnalyzer struct {
	genAIClient *genai.Client
	model       *genai.GenerativeModel
	breaker     *gobreaker.CircuitBreaker
	analysisSem *semaphore.Weighted
	minify      *minify.M
	logger      *zap.Logger
	modelName   string
	timeout     time.Duration
}

// NewGeminiAnalyzer creates a GeminiAnalyzer.
func NewGeminiAnalyzer(
	ctx context.Context, cfg *config.AI, breakerCfg *config.CircuitBreaker, logger *zap.Logger, opts ...option.ClientOption,
) (*GeminiAnalyzer, error) {
	genAIClient, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(cfg.GeminiAPIKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := genAIClient.GenerativeModel(cfg.GeminiModel)
	model.SystemInstruction = genai.NewUserContent(genai.Text(CommentSystemPrompt))
	model.ResponseMIMEType = ApplicationJSON
	model.SetTemperature(0)
	model.SafetySettings = geminiSafetySettings()

	return &GeminiAnalyzer{
		genAIClient: genAIClient,
		model:       model,
		breaker:     client.NewBreaker("gemini", breakerCfg, logger),
		analysisSem: semaphore.NewWeighted(max(cfg.MaxConcurrent, 1)),
		minify:      newMinifier(),
		logger:      logger.Named("ai_gemini"),
		modelName:   cfg.GeminiModel,
		timeout:     cfg.RequestTimeoutDuration(),
	}, nil
}

// ClassifyBatch sends every text in one request and returns the parsed verdicts.
func (a *GeminiAnalyzer) ClassifyBatch(ctx context.Context, texts []string) ([]RawVerdict, error) {
	if len(texts) == 0 {
		return []RawVerdict{}, nil
	}

	prompt, err := buildUserPrompt(a.minify, texts)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	if err := a.analysisSem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("failed to acquire semaphore: %w", err)
	}
	defer a.analysisSem.Release(1)

	result, err := a.breaker.Execute(func() (any, error) {
		resp, err := a.model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			var blocked *genai.BlockedError
			if errors.As(err, &blocked) {
				return nil, fmt.Errorf("%w: %w", client.ErrContentBlocked, err)
			}
			return nil, err
		}
		return ResponseText(resp)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %w", client.ErrCircuitOpen, err)
		}
		return nil, fmt.Errorf("gemini classification request failed: %w", err)
	}

	verdicts, err := ParseBatchReply(result.(string))
	if err != nil {
		return nil, err
	}

	a.logger.Debug("Classified comment batch",
		zap.String("model", a.modelName),
		zap.Int("texts", len(texts)),
		zap.Int("verdicts", len(verdicts)))

	return verdicts, nil
}

// Close releases the Gemini client.
func (a *GeminiAnalyzer) Close() error {
	return a.genAIClient.Close()
}

// ResponseText joins the text parts of the first candidate.
func ResponseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", ErrEmptyGeminiResponse
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", client.ErrContentBlocked
	}
	if candidate.Content == nil {
		return "", ErrEmptyGeminiResponse
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	if b.Len() == 0 {
		return "", ErrEmptyGeminiResponse
	}

	return b.String(), nil
}

// geminiSafetySettings converts the shared relaxed thresholds into Gemini settings.
func geminiSafetySettings() []*genai.SafetySetting {
	categories := map[string]genai.HarmCategory{
		"HARM_CATEGORY_HARASSMENT":        genai.HarmCategoryHarassment,
		"HARM_CATEGORY_HATE_SPEECH":       genai.HarmCategoryHateSpeech,
		"HARM_CATEGORY_SEXUALLY_EXPLICIT": genai.HarmCategorySexuallyExplicit,
		"HARM_CATEGORY_DANGEROUS_CONTENT": genai.HarmCategoryDangerousContent,
	}
	thresholds := map[string]genai.HarmBlockThreshold{
		"BLOCK_NONE":             genai.HarmBlockNone,
		"BLOCK_ONLY_HIGH":        genai.HarmBlockOnlyHigh,
		"BLOCK_MEDIUM_AND_ABOVE": genai.HarmBlockMediumAndAbove,
		"BLOCK_LOW_AND_ABOVE":    genai.HarmBlockLowAndAbove,
	}

	shared := client.GeminiSafetySettings()
	names := slices.Sorted(maps.Keys(shared))

	settings := make([]*genai.SafetySetting, 0, len(names))
	for _, name := range names {
		category, ok := categories[name]
		if !ok {
			continue
		}
		threshold, ok := thresholds[shared[name]]
		if !ok {
			threshold = genai.HarmBlockUnspecified
		}
		settings = append(settings, &genai.SafetySetting{
			Category:  category,
			Threshold: threshold,
		})
	}

	return settings
}
