package convert

import (
	"github.com/tubeguard/tubeguard/internal/database/types"
	"github.com/tubeguard/tubeguard/internal/database/types/enum"
	restTypes "github.com/tubeguard/tubeguard/internal/rest/types"
)

// Category converts a comment category to its REST API label.
func Category(category enum.CommentCategory) restTypes.Category {
	switch category {
	case enum.CommentCategoryNormal:
		return restTypes.CategoryNormal
	case enum.CommentCategorySpam:
		return restTypes.CategorySpam
	default:
		return restTypes.CategoryRisky
	}
}

// Video converts video metadata to REST API video.
func Video(video *types.Video) *restTypes.Video {
	if video == nil {
		return nil
	}

	return &restTypes.Video{
		ID:           video.ID,
		Title:        video.Title,
		ChannelName:  video.ChannelName,
		ChannelID:    video.ChannelID,
		ViewCount:    video.ViewCount,
		LikeCount:    video.LikeCount,
		CommentCount: video.CommentCount,
		PublishedAt:  video.PublishedAt,
		ThumbnailURL: video.ThumbnailURL,
	}
}

// VideoRecord converts a stored video row to REST API video.
func VideoRecord(video *types.VideoRecord) *restTypes.Video {
	if video == nil {
		return nil
	}

	return &restTypes.Video{
		ID:           video.ID,
		Title:        video.Title,
		ChannelName:  video.ChannelName,
		ChannelID:    video.ChannelID,
		ViewCount:    uint64(max(video.ViewCount, 0)),
		LikeCount:    uint64(max(video.LikeCount, 0)),
		CommentCount: uint64(max(video.CommentCount, 0)),
		PublishedAt:  video.PublishedAt,
		ThumbnailURL: video.ThumbnailURL,
	}
}

// Summary converts category counts to REST API summary.
func Summary(summary types.Summary) restTypes.Summary {
	return restTypes.Summary{
		Total:  summary.Total,
		Normal: summary.Normal,
		Risky:  summary.Risky,
		Spam:   summary.Spam,
	}
}

// DashboardStats converts stored category counts to REST API summary.
func DashboardStats(stats *types.DashboardStats) restTypes.Summary {
	if stats == nil {
		return restTypes.Summary{}
	}

	return restTypes.Summary{
		Total:  stats.Total,
		Normal: stats.Normal,
		Risky:  stats.Risky,
		Spam:   stats.Spam,
	}
}

// Comment converts a classified comment to REST API comment.
func Comment(comment *types.Comment) *restTypes.Comment {
	return &restTypes.Comment{
		ID:            comment.ID,
		Author:        comment.AuthorName,
		AuthorImage:   comment.AuthorImage,
		Text:          comment.Text,
		LikeCount:     comment.LikeCount,
		PublishedAt:   comment.PublishedAt,
		Category:      Category(comment.Category),
		CategoryLabel: comment.Category.Label(),
		Reason:        comment.Reason,
		Origin:        comment.Origin.String(),
		Confidence:    comment.Confidence,
	}
}

// StoredComment converts a stored comment to REST API comment.
func StoredComment(comment *types.StoredComment) *restTypes.Comment {
	return &restTypes.Comment{
		ID:            comment.CommentID,
		Author:        comment.AuthorName,
		AuthorImage:   comment.AuthorImage,
		Text:          comment.Content,
		LikeCount:     uint64(max(comment.LikeCount, 0)),
		PublishedAt:   comment.PublishedAt,
		Category:      Category(comment.Category),
		CategoryLabel: comment.Category.Label(),
		Reason:        comment.Reason,
		Confidence:    comment.Confidence,
		AnalyzedAt:    comment.AnalyzedAt,
	}
}

// Analysis converts a video analysis to the analyze endpoint response.
func Analysis(analysis *types.VideoAnalysis) *restTypes.AnalyzeResponse {
	comments := make([]*restTypes.Comment, 0, len(analysis.Comments))
	for _, comment := range analysis.Comments {
		if comment == nil {
			continue
		}
		comments = append(comments, Comment(comment))
	}

	return &restTypes.AnalyzeResponse{
		Video:      Video(analysis.Video),
		Summary:    Summary(analysis.Summary),
		Comments:   comments,
		AnalyzedAt: analysis.AnalyzedAt,
	}
}
