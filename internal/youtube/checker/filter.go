package checker

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/tubeguard/tubeguard/internal/database/types"
	"github.com/tubeguard/tubeguard/internal/database/types/enum"
	"github.com/tubeguard/tubeguard/internal/setup/config"
	"github.com/tubeguard/tubeguard/pkg/utils"
)

const (
	// emojiMaxRunes is the longest trimmed text treated as a bare emoji reaction.
	emojiMaxRunes = 3
	// positiveMinRunes is the shortest trimmed text a positive keyword can pass.
	positiveMinRunes = 5
)

var (
	defaultProfanityPatterns = []string{
		`씨\s*발`, `ㅅ\s*ㅂ`, `병\s*신`, `ㅂ\s*ㅅ`, `좆`, `미\s*친`,
		`지\s*랄`, `개\s*새끼`, `염병`, `꺼\s*져`, `죽\s*어`,
	}
	defaultAdPatterns = []string{
		`https?://\S+`, `www\.\S+`, `\d{2,4}-\d{3,4}-\d{4}`, `010-?\d{4}-?\d{4}`,
		`카톡\s*문의`, `텔레그램`, `인스타\s*@`,
	}
	defaultNegativeKeywords = []string{"죽", "꺼져", "싫어", "최악", "쓰레기", "혐오", "무식"}
	defaultPositiveKeywords = []string{"ㅋㅋㅋ", "ㅎㅎㅎ", "좋아", "귀여워", "최고", "감사", "응원", "👍", "❤️"}
)

// keywordSet holds keywords in their configured form and in normalized form.
// NFKC composes compatibility jamo ("ㅋㅋㅋㅠ" becomes "ㅋㅋ큐"), so both forms are scanned.
type keywordSet struct {
	raw        []string
	normalized []string
}

func newKeywordSet(normalizer *utils.TextNormalizer, defaults, extra []string) keywordSet {
	raw := make([]string, 0, len(defaults)+len(extra))
	for _, k := range append(append([]string{}, defaults...), extra...) {
		if k != "" {
			raw = append(raw, k)
		}
	}
	return keywordSet{raw: raw, normalized: normalizer.NormalizeAll(raw)}
}

// matches reports whether the trimmed text or its normalized form contains any keyword.
func (k keywordSet) matches(normalizer *utils.TextNormalizer, trimmed, normalized string) bool {
	for _, keyword := range k.raw {
		if strings.Contains(trimmed, keyword) {
			return true
		}
	}
	return normalizer.ContainsAny(normalized, k.normalized)
}

// FilterBank decides obvious comments locally before any remote call.
// It is read-only after construction and safe for concurrent use.
type FilterBank struct {
	profanity  []*regexp.Regexp
	ads        []*regexp.Regexp
	negative   keywordSet
	positive   keywordSet
	normalizer *utils.TextNormalizer
}

// NewFilterBank builds the built-in filters extended with the configured additions.
func NewFilterBank(extra config.Filter) (*FilterBank, error) {
	profanity, err := compilePatterns(defaultProfanityPatterns, extra.ProfanityPatterns)
	if err != nil {
		return nil, fmt.Errorf("invalid profanity pattern: %w", err)
	}

	ads, err := compilePatterns(defaultAdPatterns, extra.AdPatterns)
	if err != nil {
		return nil, fmt.Errorf("invalid advertisement pattern: %w", err)
	}

	normalizer := utils.NewTextNormalizer()

	return &FilterBank{
		profanity:  profanity,
		ads:        ads,
		negative:   newKeywordSet(normalizer, defaultNegativeKeywords, extra.NegativeKeywords),
		positive:   newKeywordSet(normalizer, defaultPositiveKeywords, extra.PositiveKeywords),
		normalizer: normalizer,
	}, nil
}

// DefaultFilterBank returns a filter bank with only the built-in filters.
func DefaultFilterBank() *FilterBank {
	bank, err := NewFilterBank(config.Filter{})
	if err != nil {
		panic(err) // built-in patterns always compile
	}
	return bank
}

// Classify runs the profanity, advertisement and fast-pass filters in order.
// The bool is false when the text must go to the remote classifier.
func (f *FilterBank) Classify(text string) (types.ClassificationResult, bool) {
	if matchesAny(f.profanity, text) {
		return types.NewClassificationResult(enum.CommentCategoryRisky, ReasonProfanity, enum.AnalysisOriginLocal), true
	}

	if matchesAny(f.ads, text) {
		return types.NewClassificationResult(enum.CommentCategorySpam, ReasonAdvertisement, enum.AnalysisOriginLocal), true
	}

	return f.fastPass(text)
}

// fastPass passes bare emoji reactions and longer positive comments without negative keywords.
func (f *FilterBank) fastPass(text string) (types.ClassificationResult, bool) {
	trimmed := strings.TrimSpace(text)
	length := utils.RuneLength(trimmed)

	if length <= emojiMaxRunes && !hasLetterOrDigit(trimmed) {
		return types.NewClassificationResult(enum.CommentCategoryNormal, ReasonEmoji, enum.AnalysisOriginLocal), true
	}

	normalized := f.normalizer.Normalize(trimmed)
	if f.negative.matches(f.normalizer, trimmed, normalized) {
		return types.ClassificationResult{}, false
	}

	if length >= positiveMinRunes && f.positive.matches(f.normalizer, trimmed, normalized) {
		return types.NewClassificationResult(enum.CommentCategoryNormal, ReasonPositive, enum.AnalysisOriginLocal), true
	}

	return types.ClassificationResult{}, false
}

func compilePatterns(defaults, extra []string) ([]*regexp.Regexp, error) {
	patterns := make([]*regexp.Regexp, 0, len(defaults)+len(extra))
	for _, p := range append(append([]string{}, defaults...), extra...) {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", p, err)
		}
		patterns = append(patterns, re)
	}
	return patterns, nil
}

func matchesAny(patterns []*regexp.Regexp, text string) bool {
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

func hasLetterOrDigit(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}
