package types_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tubeguard/tubeguard/internal/database/types"
	"github.com/tubeguard/tubeguard/internal/database/types/enum"
)

func TestNewVideoRecord(t *testing.T) {
	t.Parallel()

	record := types.NewVideoRecord(&types.Video{
		ID:           "vid12345678",
		Title:        "Title",
		ChannelName:  "Channel",
		ViewCount:    math.MaxUint64,
		LikeCount:    10,
		CommentCount: 3,
		ThumbnailURL: "https://img/high",
	})

	assert.Equal(t, "vid12345678", record.ID)
	assert.Equal(t, "Title", record.Title)
	assert.Equal(t, int64(math.MaxInt64), record.ViewCount)
	assert.Equal(t, int64(10), record.LikeCount)
	assert.Equal(t, int64(3), record.CommentCount)
	assert.Equal(t, "https://img/high", record.ThumbnailURL)
}

func TestCommentRecords(t *testing.T) {
	t.Parallel()

	comment := &types.Comment{
		ID:          "c1",
		AuthorID:    "UC-alice",
		AuthorName:  "alice",
		AuthorImage: "https://img/a",
		Text:        "hello",
		LikeCount:   4,
		ReplyCount:  1,
		PublishedAt: "2025-01-01T00:00:00Z",
	}
	comment.Apply(types.NewClassificationResult(enum.CommentCategorySpam, "광고/홍보 의심", enum.AnalysisOriginLocal))

	author := types.NewAuthorRecord(comment)
	assert.Equal(t, "UC-alice", author.ID)
	assert.Equal(t, "alice", author.DisplayName)
	assert.Equal(t, "https://img/a", author.ProfileImage)

	row := types.NewCommentRecord("vid12345678", comment)
	assert.Equal(t, "c1", row.CommentID)
	assert.Equal(t, "vid12345678", row.VideoID)
	assert.Equal(t, "hello", row.Content)
	assert.Equal(t, int64(4), row.LikeCount)
	assert.Equal(t, int64(1), row.ReplyCount)

	analysis := types.NewCommentAnalysisRecord(7, comment)
	assert.Equal(t, int64(7), analysis.CommentID)
	assert.Equal(t, 3, analysis.CategoryID)
	assert.Equal(t, "local", analysis.Origin)
	assert.InDelta(t, 1.0, analysis.Confidence, 1e-9)
}
