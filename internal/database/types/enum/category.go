package enum

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidCommentCategory is returned when a value cannot be mapped to a comment category.
var ErrInvalidCommentCategory = errors.New("invalid comment category")

// CommentCategory is the moderation label assigned to a comment.
// The numeric value doubles as the category_id stored in the categories table.
type CommentCategory int

const (
	// CommentCategoryNormal indicates ordinary opinions, questions, jokes and positive reactions.
	CommentCategoryNormal CommentCategory = iota + 1
	// CommentCategoryRisky indicates profanity, hate speech, personal attacks or violent remarks.
	CommentCategoryRisky
	// CommentCategorySpam indicates product promotion, external links, contact details or flooding.
	CommentCategorySpam
)

// commentCategoryLabels maps each category to its English and Korean labels.
var commentCategoryLabels = map[CommentCategory][2]string{
	CommentCategoryNormal: {"normal", "정상"},
	CommentCategoryRisky:  {"risky", "위험"},
	CommentCategorySpam:   {"spam", "스팸"},
}

// CommentCategoryValues returns every valid category in persistence order.
func CommentCategoryValues() []CommentCategory {
	return []CommentCategory{CommentCategoryNormal, CommentCategoryRisky, CommentCategorySpam}
}

// IsValid reports whether the category is one of the three allowed labels.
func (c CommentCategory) IsValid() bool {
	_, ok := commentCategoryLabels[c]
	return ok
}

// String returns the English label.
func (c CommentCategory) String() string {
	if labels, ok := commentCategoryLabels[c]; ok {
		return labels[0]
	}
	return fmt.Sprintf("CommentCategory(%d)", int(c))
}

// Label returns the Korean label used in prompts and the dashboard.
func (c CommentCategory) Label() string {
	if labels, ok := commentCategoryLabels[c]; ok {
		return labels[1]
	}
	return ""
}

// ID returns the persisted category_id.
func (c CommentCategory) ID() int {
	return int(c)
}

// ParseCommentCategory maps an English or Korean label to a category.
// Only exact labels are accepted, surrounding whitespace aside.
func ParseCommentCategory(s string) (CommentCategory, bool) {
	s = strings.TrimSpace(s)
	for category, labels := range commentCategoryLabels {
		if s == labels[0] || s == labels[1] {
			return category, true
		}
	}
	return 0, false
}

// CommentCategoryFromID maps a persisted category_id back to a category.
func CommentCategoryFromID(id int) (CommentCategory, error) {
	c := CommentCategory(id)
	if !c.IsValid() {
		return 0, fmt.Errorf("%w: id %d", ErrInvalidCommentCategory, id)
	}
	return c, nil
}

// MarshalJSON encodes the category as its English label.
func (c CommentCategory) MarshalJSON() ([]byte, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCommentCategory, int(c))
	}
	return []byte(strconv.Quote(c.String())), nil
}

// UnmarshalJSON decodes a category from its English or Korean label.
func (c *CommentCategory) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidCommentCategory, data)
	}

	parsed, ok := ParseCommentCategory(s)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidCommentCategory, s)
	}

	*c = parsed
	return nil
}
