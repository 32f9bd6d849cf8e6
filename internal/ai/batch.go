package ai

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/json"
	"github.com/tubeguard/tubeguard/pkg/utils"
)

// maxParseAttempts bounds how many closing brackets are tried when the reply has trailing text.
const maxParseAttempts = 8

var errNoArray = errors.New("no JSON array found in reply")

// newMinifier creates a minifier for JSON payloads.
func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc(ApplicationJSON, json.Minify)
	return m
}

// NewBatchItems tags each text with its 1-based index. Runs of spaces are
// collapsed to save tokens; line breaks are kept.
func NewBatchItems(texts []string) []BatchItem {
	items := make([]BatchItem, len(texts))
	for i, text := range texts {
		items[i] = BatchItem{Index: i + 1, Text: utils.CompressWhitespacePreserveNewlines(text)}
	}
	return items
}

// buildUserPrompt renders the batch items into the user prompt.
func buildUserPrompt(m *minify.M, texts []string) (string, error) {
	itemsJSON, err := sonic.Marshal(NewBatchItems(texts))
	if err != nil {
		return "", fmt.Errorf("failed to encode batch items: %w", err)
	}

	// Minify JSON to reduce token usage
	itemsJSON, err = m.Bytes(ApplicationJSON, itemsJSON)
	if err != nil {
		return "", fmt.Errorf("failed to minify batch items: %w", err)
	}

	return fmt.Sprintf(CommentUserPrompt, itemsJSON), nil
}

// wireVerdict is the loosely typed shape of one reply entry.
type wireVerdict struct {
	Index    any `json:"index"`
	Category any `json:"category"`
	Reason   any `json:"reason"`
}

// ParseBatchReply extracts the verdict array from a model reply.
// Prose and code fences around the array are ignored.
func ParseBatchReply(reply string) ([]RawVerdict, error) {
	start := strings.Index(reply, "[")
	end := strings.LastIndex(reply, "]")
	if start == -1 || end <= start {
		return nil, &BatchParseError{Reply: reply, Err: errNoArray}
	}

	var (
		wire    []wireVerdict
		lastErr error
	)

	// Walk back over closing brackets so trailing bracketed prose does not break decoding
	for attempt := 0; attempt < maxParseAttempts && end > start; attempt++ {
		wire = nil
		lastErr = sonic.UnmarshalString(reply[start:end+1], &wire)
		if lastErr == nil {
			break
		}

		end = strings.LastIndex(reply[:end], "]")
	}

	if lastErr != nil {
		return nil, &BatchParseError{Reply: reply, Err: lastErr}
	}

	verdicts := make([]RawVerdict, 0, len(wire))
	for _, w := range wire {
		verdicts = append(verdicts, RawVerdict{
			Index:    toIndex(w.Index),
			Category: toLabel(w.Category),
			Reason:   toReason(w.Reason),
		})
	}

	return verdicts, nil
}

// toIndex accepts numeric and numeric string indexes. Anything else maps to 0.
func toIndex(v any) int {
	switch t := v.(type) {
	case float64:
		if t != float64(int(t)) {
			return 0
		}
		return int(t)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func toLabel(v any) *string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return &t
	default:
		s := fmt.Sprint(t)
		return &s
	}
}

func toReason(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
