package catalog

import "errors"

// ErrInvalid indicates a malformed category, mode, or question field.
// Rejected before any state mutation.
var ErrInvalid = errors.New("invalid input")
