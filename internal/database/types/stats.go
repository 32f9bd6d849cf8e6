package types

import "github.com/tubeguard/tubeguard/internal/database/types/enum"

// Summary holds per-category counts over a set of classified comments.
type Summary struct {
	Total  int `json:"total"`
	Normal int `json:"normal"`
	Risky  int `json:"risky"`
	Spam   int `json:"spam"`
}

// Add counts one comment of the given category.
func (s *Summary) Add(category enum.CommentCategory) {
	s.Total++
	switch category {
	case enum.CommentCategoryNormal:
		s.Normal++
	case enum.CommentCategoryRisky:
		s.Risky++
	case enum.CommentCategorySpam:
		s.Spam++
	}
}

// DashboardStats holds per-category counts over every stored comment.
type DashboardStats struct {
	Total  int `bun:"total"  json:"total"`
	Normal int `bun:"normal" json:"normal"`
	Risky  int `bun:"risky"  json:"risky"`
	Spam   int `bun:"spam"   json:"spam"`
}

// SaveStats reports what a persistence run wrote.
type SaveStats struct {
	Authors  int `json:"authors"`
	Comments int `json:"comments"`
	Analyses int `json:"analyses"`
}
