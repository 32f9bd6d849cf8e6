package checker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tubeguard/tubeguard/internal/database/types/enum"
	"github.com/tubeguard/tubeguard/internal/youtube/checker"
	"github.com/tubeguard/tubeguard/pkg/utils"
)

func TestNormalizeVerdict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		label           *string
		reason          string
		wantCategory    enum.CommentCategory
		wantReason      string
		wantSubstituted bool
	}{
		{
			name:         "korean label passes",
			label:        utils.Ptr("스팸"),
			reason:       "홍보 링크",
			wantCategory: enum.CommentCategorySpam,
			wantReason:   "홍보 링크",
		},
		{
			name:         "english label with spaces passes",
			label:        utils.Ptr(" normal "),
			reason:       "question",
			wantCategory: enum.CommentCategoryNormal,
			wantReason:   "question",
		},
		{
			name:         "reason whitespace collapsed",
			label:        utils.Ptr("risky"),
			reason:       " 욕설\n  포함 ",
			wantCategory: enum.CommentCategoryRisky,
			wantReason:   "욕설 포함",
		},
		{
			name:         "empty reason gets default",
			label:        utils.Ptr("위험"),
			reason:       "  ",
			wantCategory: enum.CommentCategoryRisky,
			wantReason:   checker.ReasonDefaultAI,
		},
		{
			name:            "unknown label",
			label:           utils.Ptr("혐오"),
			reason:          "차별 발언",
			wantCategory:    enum.CommentCategoryRisky,
			wantReason:      `unrecognized category "혐오" replaced with risky: 차별 발언`,
			wantSubstituted: true,
		},
		{
			name:            "unknown label without reason",
			label:           utils.Ptr("hate"),
			wantCategory:    enum.CommentCategoryRisky,
			wantReason:      `unrecognized category "hate" replaced with risky`,
			wantSubstituted: true,
		},
		{
			name:            "template echoed back",
			label:           utils.Ptr("정상|위험|스팸"),
			wantCategory:    enum.CommentCategoryRisky,
			wantReason:      `unrecognized category "정상|위험|스팸" replaced with risky`,
			wantSubstituted: true,
		},
		{
			name:            "missing label",
			label:           nil,
			reason:          "모름",
			wantCategory:    enum.CommentCategoryRisky,
			wantReason:      "unrecognized category <missing> replaced with risky: 모름",
			wantSubstituted: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			category, reason, substituted := checker.NormalizeVerdict(tt.label, tt.reason)
			assert.Equal(t, tt.wantCategory, category)
			assert.Equal(t, tt.wantReason, reason)
			assert.Equal(t, tt.wantSubstituted, substituted)
			assert.True(t, category.IsValid())
		})
	}
}
