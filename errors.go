package solin

import "errors"

// Sentinel errors classifying every recoverable failure the core reports.
// Callers branch with errors.Is; the wrapped message carries the detail.
var (
	// ErrNotFound marks a missing category or entry.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks a rejected input: a non-positive amount, an empty
	// description, a field outside the edit whitelist, an unknown mode.
	ErrValidation = errors.New("invalid")

	// ErrNoObject is reported by Extract when the text contains no balanced
	// top-level object at all.
	ErrNoObject = errors.New("no object found")

	// ErrMalformedObject is reported by Extract when a balanced span was
	// found but is not valid JSON.
	ErrMalformedObject = errors.New("malformed object")

	// ErrUnresolved means the intent pipeline produced no usable action.
	// The caller reports "could not understand" and prompts again.
	ErrUnresolved = errors.New("could not resolve intent")
)
