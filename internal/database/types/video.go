package types

import (
	"time"

	"github.com/uptrace/bun"
)

// Video is the metadata of a YouTube video whose comments are analyzed.
type Video struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ChannelName  string `json:"channelName"`
	ChannelID    string `json:"channelId"`
	ViewCount    uint64 `json:"viewCount"`
	LikeCount    uint64 `json:"likeCount"`
	CommentCount uint64 `json:"commentCount"`
	PublishedAt  string `json:"publishedAt"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// VideoAnalysis is the full result of analyzing one video.
type VideoAnalysis struct {
	Video      *Video     `json:"video"`
	Summary    Summary    `json:"summary"`
	Comments   []*Comment `json:"comments"`
	AnalyzedAt time.Time  `json:"analyzedAt"`
}

// VideoRecord is a stored video row.
type VideoRecord struct {
	bun.BaseModel `bun:"table:videos,alias:v"`

	ID           string    `bun:",pk"`
	Title        string    `bun:",notnull"`
	ChannelName  string    `bun:",nullzero"`
	ChannelID    string    `bun:",nullzero"`
	ViewCount    int64     `bun:",notnull,default:0"`
	LikeCount    int64     `bun:",notnull,default:0"`
	CommentCount int64     `bun:",notnull,default:0"`
	PublishedAt  string    `bun:",nullzero"`
	Description  string    `bun:",nullzero"`
	ThumbnailURL string    `bun:",nullzero"`
	CreatedAt    time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
