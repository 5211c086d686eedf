package files

import "errors"

// Common errors
var (
	ErrFileNotFound      = errors.New("file not found")
	ErrFileEmpty         = errors.New("file is empty")
	ErrFileTooLarge      = errors.New("file exceeds maximum allowed size")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrQuotaExceeded     = errors.New("storage quota exceeded")
	ErrFileInUse         = errors.New("file is referenced by existing jobs")
)
