package enum

import (
	"errors"
	"fmt"
)

// ErrInvalidAnalysisOrigin is returned when decoding an unknown origin tag.
var ErrInvalidAnalysisOrigin = errors.New("invalid analysis origin")

// AnalysisOrigin records which path of the pipeline produced a classification.
type AnalysisOrigin int

const (
	// AnalysisOriginLocal indicates a local pattern filter decided the category.
	AnalysisOriginLocal AnalysisOrigin = iota + 1
	// AnalysisOriginRemote indicates the remote model decided the category.
	AnalysisOriginRemote
	// AnalysisOriginFallback indicates the remote path failed and the fail-safe category was applied.
	AnalysisOriginFallback
)

// String returns the origin tag.
func (o AnalysisOrigin) String() string {
	switch o {
	case AnalysisOriginLocal:
		return "local"
	case AnalysisOriginRemote:
		return "remote"
	case AnalysisOriginFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// DefaultConfidence returns the confidence recorded for results of this origin.
func (o AnalysisOrigin) DefaultConfidence() float64 {
	switch o {
	case AnalysisOriginLocal:
		return 1.0
	case AnalysisOriginRemote:
		return 0.8
	default:
		return 0.0
	}
}

// MarshalText encodes the origin as its tag.
func (o AnalysisOrigin) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText decodes an origin tag.
func (o *AnalysisOrigin) UnmarshalText(text []byte) error {
	for _, origin := range []AnalysisOrigin{AnalysisOriginLocal, AnalysisOriginRemote, AnalysisOriginFallback} {
		if origin.String() == string(text) {
			*o = origin
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidAnalysisOrigin, text)
}
