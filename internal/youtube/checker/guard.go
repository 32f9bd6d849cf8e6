package checker

import (
	"fmt"

	"github.com/tubeguard/tubeguard/internal/database/types/enum"
	"github.com/tubeguard/tubeguard/pkg/utils"
)

// NormalizeVerdict maps a raw model label onto the three allowed categories.
// Unknown or missing labels become risky and the returned bool reports the substitution.
func NormalizeVerdict(rawLabel *string, rawReason string) (enum.CommentCategory, string, bool) {
	rawReason = utils.CompressAllWhitespace(rawReason)

	if rawLabel != nil {
		if category, ok := enum.ParseCommentCategory(*rawLabel); ok {
			if rawReason == "" {
				return category, ReasonDefaultAI, false
			}
			return category, rawReason, false
		}
	}

	shown := "<missing>"
	if rawLabel != nil {
		shown = fmt.Sprintf("%q", *rawLabel)
	}

	reason := fmt.Sprintf("unrecognized category %s replaced with risky", shown)
	if rawReason != "" {
		reason += ": " + rawReason
	}

	return enum.CommentCategoryRisky, reason, true
}
