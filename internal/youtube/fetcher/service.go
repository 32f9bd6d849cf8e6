package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/tubeguard/tubeguard/internal/setup/config"
	"github.com/tubeguard/tubeguard/pkg/utils"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

var (
	// ErrVideoNotFound is returned when the video does not exist or is private.
	ErrVideoNotFound = errors.New("video not found")
	// ErrCommentsDisabled is returned when the video does not allow comments.
	ErrCommentsDisabled = errors.New("comments are disabled for this video")
)

// NewService creates a YouTube Data API client.
func NewService(ctx context.Context, cfg *config.YouTube, opts ...option.ClientOption) (*youtube.Service, error) {
	svc, err := youtube.NewService(ctx, append([]option.ClientOption{option.WithAPIKey(cfg.APIKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}
	return svc, nil
}

// classifyAPIError marks errors that retrying cannot fix as permanent.
func classifyAPIError(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	switch {
	case apiErr.Code == http.StatusTooManyRequests, apiErr.Code >= http.StatusInternalServerError:
		return err
	case apiErr.Code == http.StatusNotFound:
		return utils.Permanent(fmt.Errorf("%w: %w", ErrVideoNotFound, err))
	case apiErr.Code == http.StatusForbidden && hasReason(apiErr, "commentsDisabled"):
		return utils.Permanent(fmt.Errorf("%w: %w", ErrCommentsDisabled, err))
	default:
		return utils.Permanent(err)
	}
}

func hasReason(apiErr *googleapi.Error, reason string) bool {
	for _, item := range apiErr.Errors {
		if item.Reason == reason {
			return true
		}
	}
	return false
}
