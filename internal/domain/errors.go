package domain

import "errors"

var (
	// ErrNotOwner is returned when a mutating call does not come from the registry owner
	ErrNotOwner = errors.New("caller is not the owner")

	// ErrNotFound is returned when revising metadata that was never registered
	ErrNotFound = errors.New("metadata not found")

	// ErrInvalidURI is returned when an image or token URI is empty or too long
	ErrInvalidURI = errors.New("invalid uri")

	// ErrAlreadyExists is returned when registering metadata for a token id that already has a record
	ErrAlreadyExists = errors.New("metadata already exists")

	// ErrInvalidTokenID is returned when a token id is not positive
	ErrInvalidTokenID = errors.New("invalid token id")

	// ErrInvalidStringLength is returned when a name or description is out of bounds
	ErrInvalidStringLength = errors.New("invalid string length")

	// ErrInvalidAttributes is returned when the attribute list or one of its entries is out of bounds
	ErrInvalidAttributes = errors.New("invalid attributes")

	// ErrBatchTooLarge is returned when a bulk registration carries more than MAX_BULK_RECORDS records
	ErrBatchTooLarge = errors.New("batch too large")
)

// IsValidationError reports whether err is one of the input validation kinds
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidTokenID) ||
		errors.Is(err, ErrInvalidURI) ||
		errors.Is(err, ErrInvalidStringLength) ||
		errors.Is(err, ErrInvalidAttributes) ||
		errors.Is(err, ErrBatchTooLarge)
}
