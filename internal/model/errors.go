package model

import "errors"

// Sentinel errors surfaced to the user as notices. Both are recoverable:
// the widget stays interactive after either.
var (
	// ErrValidation marks rejected input (empty label/topic, out-of-range weight).
	ErrValidation = errors.New("validation failed")

	// ErrInsufficientItems marks a decide attempt without the required minimum
	// of eligible items, whether the registry is empty, a category is missing,
	// or the fairness filter removed every candidate.
	ErrInsufficientItems = errors.New("not enough items to decide")
)
