package tracker

import "errors"

// Sentinel errors for the two caller-distinguishable failure
// categories. Storage errors are returned wrapped but unclassified;
// callers may retry those. Empty query results are not errors at all.
var (
	// ErrValidation marks a malformed payload rejected before any write.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a lookup of a specific row that does not exist.
	ErrNotFound = errors.New("not found")
)
