package types

import "math"

// NewVideoRecord converts fetched video metadata into its row.
func NewVideoRecord(video *Video) *VideoRecord {
	return &VideoRecord{
		ID:           video.ID,
		Title:        video.Title,
		ChannelName:  video.ChannelName,
		ChannelID:    video.ChannelID,
		ViewCount:    clampInt64(video.ViewCount),
		LikeCount:    clampInt64(video.LikeCount),
		CommentCount: clampInt64(video.CommentCount),
		PublishedAt:  video.PublishedAt,
		Description:  video.Description,
		ThumbnailURL: video.ThumbnailURL,
	}
}

// NewAuthorRecord extracts the author row of a comment.
func NewAuthorRecord(comment *Comment) *AuthorRecord {
	return &AuthorRecord{
		ID:           comment.AuthorID,
		DisplayName:  comment.AuthorName,
		ProfileImage: comment.AuthorImage,
	}
}

// NewCommentRecord converts a comment into its row under the given video.
func NewCommentRecord(videoID string, comment *Comment) *CommentRecord {
	return &CommentRecord{
		CommentID:   comment.ID,
		VideoID:     videoID,
		AuthorID:    comment.AuthorID,
		Content:     comment.Text,
		LikeCount:   clampInt64(comment.LikeCount),
		ReplyCount:  clampInt64(comment.ReplyCount),
		PublishedAt: comment.PublishedAt,
	}
}

// NewCommentAnalysisRecord converts the classification of a comment into its row.
// rowID is the generated id of the stored comment.
func NewCommentAnalysisRecord(rowID int64, comment *Comment) *CommentAnalysisRecord {
	return &CommentAnalysisRecord{
		CommentID:  rowID,
		CategoryID: comment.Category.ID(),
		Reason:     comment.Reason,
		Origin:     comment.Origin.String(),
		Confidence: comment.Confidence,
	}
}

func clampInt64(v uint64) int64 {
	if v > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v)
}
