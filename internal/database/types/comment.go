package types

import (
	"time"

	"github.com/tubeguard/tubeguard/internal/database/types/enum"
	"github.com/uptrace/bun"
)

// Comment is a single top-level comment moving through the moderation pipeline.
// Category is unset until the pipeline classifies the comment.
type Comment struct {
	ID          string               `json:"id"`
	AuthorID    string               `json:"authorId"`
	AuthorName  string               `json:"authorName"`
	AuthorImage string               `json:"authorImage"`
	Text        string               `json:"text"`
	LikeCount   uint64               `json:"likeCount"`
	ReplyCount  uint64               `json:"replyCount"`
	PublishedAt string               `json:"publishedAt"`
	Category    enum.CommentCategory `json:"category"`
	Reason      string               `json:"reason"`
	Origin      enum.AnalysisOrigin  `json:"origin"`
	Confidence  float64              `json:"confidence"`
}

// Apply records a classification result on the comment.
func (c *Comment) Apply(result ClassificationResult) {
	c.Category = result.Category
	c.Reason = result.Reason
	c.Origin = result.Origin
	c.Confidence = result.Confidence
}

// ClassificationResult is the outcome of classifying one comment.
type ClassificationResult struct {
	Category   enum.CommentCategory
	Reason     string
	Origin     enum.AnalysisOrigin
	Confidence float64
}

// NewClassificationResult builds a result with the default confidence for its origin.
func NewClassificationResult(
	category enum.CommentCategory, reason string, origin enum.AnalysisOrigin,
) ClassificationResult {
	return ClassificationResult{
		Category:   category,
		Reason:     reason,
		Origin:     origin,
		Confidence: origin.DefaultConfidence(),
	}
}

// AuthorRecord is a comment author row.
type AuthorRecord struct {
	bun.BaseModel `bun:"table:authors,alias:a"`

	ID           string    `bun:",pk"`       // YouTube channel id or display name hash
	DisplayName  string    `bun:",notnull"`  // Name shown on the comment
	ProfileImage string    `bun:",nullzero"` // Avatar URL
	CreatedAt    time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

// CommentRecord is a stored comment row.
type CommentRecord struct {
	bun.BaseModel `bun:"table:comments,alias:c"`

	ID          int64     `bun:",pk,autoincrement"`
	CommentID   string    `bun:",unique,notnull"` // YouTube comment id
	VideoID     string    `bun:",notnull"`
	AuthorID    string    `bun:",notnull"`
	Content     string    `bun:",notnull"`
	LikeCount   int64     `bun:",notnull,default:0"`
	ReplyCount  int64     `bun:",notnull,default:0"`
	PublishedAt string    `bun:",nullzero"`
	CreatedAt   time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

// CommentAnalysisRecord is the stored classification for one comment.
type CommentAnalysisRecord struct {
	bun.BaseModel `bun:"table:comment_analyses,alias:ca"`

	ID         int64     `bun:",pk,autoincrement"`
	CommentID  int64     `bun:",unique,notnull"` // References comments.id
	CategoryID int       `bun:",notnull"`
	Reason     string    `bun:",nullzero"`
	Origin     string    `bun:",notnull"`
	Confidence float64   `bun:",notnull"`
	AnalyzedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

// CategoryRecord is a row of the categories lookup table.
type CategoryRecord struct {
	bun.BaseModel `bun:"table:categories,alias:cat"`

	ID    int    `bun:",pk"`
	Name  string `bun:",unique,notnull"`
	Label string `bun:",notnull"`
}

// StoredComment is a stored comment joined with its author and analysis.
type StoredComment struct {
	CommentID   string               `bun:"comment_id"   json:"id"`
	AuthorName  string               `bun:"author_name"  json:"authorName"`
	AuthorImage string               `bun:"author_image" json:"authorImage"`
	Content     string               `bun:"content"      json:"text"`
	LikeCount   int64                `bun:"like_count"   json:"likeCount"`
	PublishedAt string               `bun:"published_at" json:"publishedAt"`
	Category    enum.CommentCategory `bun:"category_id"  json:"category"`
	Reason      string               `bun:"reason"       json:"reason"`
	Confidence  float64              `bun:"confidence"   json:"confidence"`
	AnalyzedAt  time.Time            `bun:"analyzed_at"  json:"analyzedAt"`
}

// FlaggedComment is a stored comment whose analysis landed outside the normal category.
type FlaggedComment struct {
	AuthorID   string               `bun:"author_id"`
	VideoID    string               `bun:"video_id"`
	Category   enum.CommentCategory `bun:"category_id"`
	Reason     string               `bun:"reason"`
	Origin     string               `bun:"origin"`
	Confidence float64              `bun:"confidence"`
}
