package enum_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tubeguard/tubeguard/internal/database/types/enum"
)

func TestParseCommentCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  enum.CommentCategory
		ok    bool
	}{
		{name: "english normal", input: "normal", want: enum.CommentCategoryNormal, ok: true},
		{name: "korean risky", input: "위험", want: enum.CommentCategoryRisky, ok: true},
		{name: "korean spam with spaces", input: "  스팸 ", want: enum.CommentCategorySpam, ok: true},
		{name: "unknown korean label", input: "증오", ok: false},
		{name: "pipe separated template", input: "정상|위험|스팸", ok: false},
		{name: "case sensitive", input: "Normal", ok: false},
		{name: "empty", input: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := enum.ParseCommentCategory(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCommentCategoryIDs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, enum.CommentCategoryNormal.ID())
	assert.Equal(t, 2, enum.CommentCategoryRisky.ID())
	assert.Equal(t, 3, enum.CommentCategorySpam.ID())

	for _, c := range enum.CommentCategoryValues() {
		back, err := enum.CommentCategoryFromID(c.ID())
		require.NoError(t, err)
		assert.Equal(t, c, back)
	}

	_, err := enum.CommentCategoryFromID(0)
	require.ErrorIs(t, err, enum.ErrInvalidCommentCategory)
	assert.False(t, enum.CommentCategory(0).IsValid())
}

func TestCommentCategoryJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(enum.CommentCategoryRisky)
	require.NoError(t, err)
	assert.JSONEq(t, `"risky"`, string(data))

	var c enum.CommentCategory
	require.NoError(t, json.Unmarshal([]byte(`"스팸"`), &c))
	assert.Equal(t, enum.CommentCategorySpam, c)

	require.Error(t, json.Unmarshal([]byte(`"hate"`), &c))

	_, err = json.Marshal(enum.CommentCategory(7))
	require.Error(t, err)
}
