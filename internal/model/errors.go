package model

import "errors"

// Validation failures: bad or missing required input.
var (
	ErrInvalidRegion       = errors.New("invalid region")
	ErrCompanyNameRequired = errors.New("company name required")
	ErrDetailsRequired     = errors.New("communication details required")
	ErrFilenameRequired    = errors.New("filename required")
	ErrExtensionNotAllowed = errors.New("file extension not allowed")
)

// Not-found failures: a referenced row does not exist.
var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrFileNotFound     = errors.New("file not found")
)

// Capacity and storage failures.
var (
	// ErrFileTooLarge is returned when an upload exceeds the configured
	// maximum size.
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")

	// ErrBlobMissing is returned when a customer_files row exists but its
	// blob cannot be read from the storage medium. The row-to-blob link is
	// only weakly enforced, so this is a normal failure, never a crash.
	ErrBlobMissing = errors.New("file content missing on storage medium")
)

// IsValidation reports whether err belongs to the validation group, so
// handlers can map it to a 400 without enumerating sentinels themselves.
func IsValidation(err error) bool {
	for _, v := range []error{
		ErrInvalidRegion,
		ErrCompanyNameRequired,
		ErrDetailsRequired,
		ErrFilenameRequired,
		ErrExtensionNotAllowed,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err belongs to the not-found group.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCustomerNotFound) || errors.Is(err, ErrFileNotFound)
}
