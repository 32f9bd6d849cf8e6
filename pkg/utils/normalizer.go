package utils

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// TextNormalizer folds text into a canonical form for keyword matching.
// It is safe for concurrent use.
type TextNormalizer struct {
	pool sync.Pool
}

// NewTextNormalizer creates a new TextNormalizer instance.
func NewTextNormalizer() *TextNormalizer {
	return &TextNormalizer{
		pool: sync.Pool{
			New: func() any {
				return transform.Chain(
					norm.NFKD,                          // Decompose with compatibility decomposition
					runes.Remove(runes.In(unicode.Mn)), // Remove non-spacing marks
					runes.Map(unicode.ToLower),         // Convert to lowercase before normalization
					norm.NFKC,                          // Normalize with compatibility composition
				)
			},
		},
	}
}

// Normalize cleans up text using the normalizer.
// Returns empty string if normalization fails or input is empty.
func (n *TextNormalizer) Normalize(s string) string {
	s = CompressWhitespacePreserveNewlines(s)
	if s == "" {
		return ""
	}

	t := n.pool.Get().(transform.Transformer)
	defer n.pool.Put(t)

	t.Reset()
	result, _, err := transform.String(t, s)
	if err != nil {
		return ""
	}

	return result
}

// Contains checks if substr exists within s using the normalizer.
// Empty strings return false.
func (n *TextNormalizer) Contains(s, substr string) bool {
	if s == "" || substr == "" {
		return false
	}

	normalizedS := n.Normalize(s)
	normalizedSubstr := n.Normalize(substr)

	if normalizedS == "" || normalizedSubstr == "" {
		return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
	}

	return strings.Contains(normalizedS, normalizedSubstr)
}

// ContainsAny reports whether the normalized text contains any of the normalized keywords.
// Keywords are expected to be normalized already.
func (n *TextNormalizer) ContainsAny(normalizedText string, normalizedKeywords []string) bool {
	if normalizedText == "" {
		return false
	}

	for _, keyword := range normalizedKeywords {
		if keyword != "" && strings.Contains(normalizedText, keyword) {
			return true
		}
	}

	return false
}

// NormalizeAll normalizes every entry and drops the ones that end up empty.
func (n *TextNormalizer) NormalizeAll(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		if normalized := n.Normalize(v); normalized != "" {
			result = append(result, normalized)
		}
	}
	return result
}
