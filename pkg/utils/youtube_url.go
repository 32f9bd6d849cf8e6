package utils

import (
	"errors"
	"regexp"
	"strings"
)

var (
	videoURLPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)[?&]v=([A-Za-z0-9_-]{11})`),
		regexp.MustCompile(`(?i)youtu\.be/([A-Za-z0-9_-]{11})`),
		regexp.MustCompile(`(?i)youtube(?:-nocookie)?\.com/(?:shorts|embed|live|v)/([A-Za-z0-9_-]{11})`),
	}
	bareVideoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

	ErrInvalidVideoURL = errors.New("invalid YouTube video URL format")
)

// ExtractVideoIDFromURL extracts the 11 character video ID from a YouTube URL.
// Supported forms are watch?v=, youtu.be/, shorts/, embed/ and a bare video ID.
func ExtractVideoIDFromURL(url string) (string, error) {
	input := strings.TrimSpace(url)
	if input == "" {
		return "", ErrInvalidVideoURL
	}

	if bareVideoIDPattern.MatchString(input) {
		return input, nil
	}

	for _, pattern := range videoURLPatterns {
		if matches := pattern.FindStringSubmatch(input); len(matches) == 2 {
			return matches[1], nil
		}
	}

	return "", ErrInvalidVideoURL
}

// IsYouTubeVideoURL checks if the given string contains a recognizable YouTube video reference.
func IsYouTubeVideoURL(input string) bool {
	_, err := ExtractVideoIDFromURL(input)
	return err == nil
}
