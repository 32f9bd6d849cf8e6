package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tubeguard/tubeguard/internal/database/types"
	"github.com/tubeguard/tubeguard/internal/database/types/enum"
)

func TestSummaryAdd(t *testing.T) {
	t.Parallel()

	var s types.Summary
	for _, c := range []enum.CommentCategory{
		enum.CommentCategoryNormal,
		enum.CommentCategoryRisky,
		enum.CommentCategoryRisky,
		enum.CommentCategorySpam,
	} {
		s.Add(c)
	}

	assert.Equal(t, types.Summary{Total: 4, Normal: 1, Risky: 2, Spam: 1}, s)
}

func TestNewClassificationResultConfidence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		origin enum.AnalysisOrigin
		want   float64
	}{
		{enum.AnalysisOriginLocal, 1.0},
		{enum.AnalysisOriginRemote, 0.8},
		{enum.AnalysisOriginFallback, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.origin.String(), func(t *testing.T) {
			t.Parallel()

			r := types.NewClassificationResult(enum.CommentCategoryRisky, "x", tt.origin)
			assert.InDelta(t, tt.want, r.Confidence, 1e-9)
		})
	}
}
