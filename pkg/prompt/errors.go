package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrNoChoices is returned for a select field without values.
	ErrNoChoices = errors.New("prompt: select has no choices")
)
