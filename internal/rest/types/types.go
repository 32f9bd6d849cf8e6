package types

import "time"

// Category is the moderation label of a comment as exposed by the API.
type Category string

const (
	CategoryNormal Category = "normal"
	CategoryRisky  Category = "risky"
	CategorySpam   Category = "spam"
)

// Video represents the metadata of an analyzed video.
type Video struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ChannelName  string `json:"channelName"`
	ChannelID    string `json:"channelId"`
	ViewCount    uint64 `json:"viewCount"`
	LikeCount    uint64 `json:"likeCount"`
	CommentCount uint64 `json:"commentCount"`
	PublishedAt  string `json:"publishedAt"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// Summary represents per-category comment counts.
type Summary struct {
	Total  int `json:"total"`
	Normal int `json:"normal"`
	Risky  int `json:"risky"`
	Spam   int `json:"spam"`
}

// Comment represents a classified comment.
type Comment struct {
	ID            string    `json:"id"`
	Author        string    `json:"author"`
	AuthorImage   string    `json:"authorImage,omitempty"`
	Text          string    `json:"text"`
	LikeCount     uint64    `json:"likeCount"`
	PublishedAt   string    `json:"publishedAt"`
	Category      Category  `json:"category"`
	CategoryLabel string    `json:"categoryLabel"`
	Reason        string    `json:"reason"`
	Origin        string    `json:"origin,omitempty"`
	Confidence    float64   `json:"confidence"`
	AnalyzedAt    time.Time `json:"analyzedAt,omitzero"`
}

// AnalyzeResponse represents the response for the analyze comments endpoint.
type AnalyzeResponse struct {
	Video      *Video     `json:"video"`
	Summary    Summary    `json:"summary"`
	Comments   []*Comment `json:"comments"`
	AnalyzedAt time.Time  `json:"analyzedAt"`
}

// VideoCommentsResponse represents the response for the stored comments endpoint.
type VideoCommentsResponse struct {
	VideoID  string     `json:"videoId"`
	Comments []*Comment `json:"comments"`
}

// ErrorResponse represents an error returned by the API.
type ErrorResponse struct {
	Error string `json:"error"`
}
