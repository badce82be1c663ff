package core

// errors.go defines the error taxonomy the web layer maps onto HTTP status
// categories. Structural and load errors are client problems (bad request);
// missing records and missing stored files are not-found; anything else is
// unexpected and must never be echoed to the client verbatim.

import "errors"

// Not-found errors.
var (
	// ErrRecordNotFound means no file record exists for the requested ID.
	ErrRecordNotFound = errors.New("file not found")

	// ErrStoredFileMissing means the record exists but its file is gone
	// from storage.
	ErrStoredFileMissing = errors.New("file not found on server")
)

// Upload validation errors.
var (
	ErrNoFile          = errors.New("no file provided")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrFileTooLarge    = errors.New("file size exceeds limit")
)

// badRequestErrors lists every error class caused by client input.
// Structural validation, load failures, and upload validation all land here.
var badRequestErrors = []error{
	ErrEmptyTable,
	ErrTooManyColumns,
	ErrTooManyRows,
	ErrDuplicateColumnNames,
	ErrFileEmpty,
	ErrNoDecodableEncoding,
	ErrMalformedCSV,
	ErrNoFile,
	ErrInvalidFileType,
	ErrFileTooLarge,
}

// IsBadRequest reports whether err was caused by client input and should be
// surfaced as a 400 with its message intact.
func IsBadRequest(err error) bool {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err refers to a missing record or stored file.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRecordNotFound) || errors.Is(err, ErrStoredFileMissing)
}
