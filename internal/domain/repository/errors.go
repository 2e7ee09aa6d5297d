package repository

import "errors"

// Sentinel errors shared by all repository implementations. Services map
// them onto the API error taxonomy; store-specific errors never leave the
// infrastructure layer in any other form.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)
