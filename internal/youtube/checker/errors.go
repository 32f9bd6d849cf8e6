package checker

import "errors"

// ErrClassifierPanic wraps a panic raised inside a classifier.
var ErrClassifierPanic = errors.New("classifier panicked")
