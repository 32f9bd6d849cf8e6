package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	"github.com/tailscale/hujson"
)

// FilterListFile is the optional JSONC file extending the local filters.
const FilterListFile = "filters.jsonc"

// FilterList is the content of filters.jsonc.
type FilterList struct {
	ProfanityPatterns []string `json:"profanityPatterns"`
	AdPatterns        []string `json:"adPatterns"`
	NegativeKeywords  []string `json:"negativeKeywords"`
	PositiveKeywords  []string `json:"positiveKeywords"`
}

// LoadFilterList loads filters.jsonc from configDir.
// A missing file yields an empty list.
func LoadFilterList(configDir string) (*FilterList, error) {
	data, err := os.ReadFile(filepath.Join(configDir, FilterListFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &FilterList{}, nil
		}
		return nil, fmt.Errorf("failed to read filter list: %w", err)
	}

	// Parse JSONC
	standardJSON, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("failed to standardize JSONC: %w", err)
	}

	var list FilterList
	if err := sonic.Unmarshal(standardJSON, &list); err != nil {
		return nil, fmt.Errorf("failed to parse filter list JSON: %w", err)
	}

	return &list, nil
}

// Merge returns the config filter section extended with the list entries.
func (l *FilterList) Merge(f Filter) Filter {
	if l == nil {
		return f
	}

	return Filter{
		ProfanityPatterns: append(append([]string{}, f.ProfanityPatterns...), l.ProfanityPatterns...),
		AdPatterns:        append(append([]string{}, f.AdPatterns...), l.AdPatterns...),
		NegativeKeywords:  append(append([]string{}, f.NegativeKeywords...), l.NegativeKeywords...),
		PositiveKeywords:  append(append([]string{}, f.PositiveKeywords...), l.PositiveKeywords...),
	}
}
