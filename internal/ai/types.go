package ai

import (
	"context"
	"errors"
	"fmt"
)

const (
	// ApplicationJSON is the MIME type for JSON content.
	ApplicationJSON = "application/json"
)

// ErrBatchParse is matched by every reply that could not be turned into verdicts.
var ErrBatchParse = errors.New("failed to parse classification reply")

// BatchClassifier sends a batch of comment texts to a remote model in one request.
// Implementations do not retry.
type BatchClassifier interface {
	ClassifyBatch(ctx context.Context, texts []string) ([]RawVerdict, error)
}

// BatchItem is one comment text tagged with its 1-based position in the request.
type BatchItem struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// RawVerdict is one unvalidated entry of the model reply.
// Category is nil when the model omitted it or sent null.
type RawVerdict struct {
	Index    int
	Category *string
	Reason   string
}

// BatchParseError reports a reply that held no decodable verdict array.
type BatchParseError struct {
	Reply string
	Err   error
}

func (e *BatchParseError) Error() string {
	if e.Err == nil {
		return ErrBatchParse.Error()
	}
	return fmt.Sprintf("%s: %v", ErrBatchParse.Error(), e.Err)
}

func (e *BatchParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrBatchParse}
	}
	return []error{ErrBatchParse, e.Err}
}
