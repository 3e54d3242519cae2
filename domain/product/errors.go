package product

import "errors"

// DataValidationError signals malformed input or an illegal state
// transition, such as updating a product that was never persisted.
// Storage engine failures on writes are also reported through it, with the
// engine error available via Unwrap.
type DataValidationError struct {
	Message string
	Err     error
}

func (e *DataValidationError) Error() string {
	return e.Message
}

func (e *DataValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(msg string) *DataValidationError {
	return &DataValidationError{Message: msg}
}

// IsValidationError reports whether err is, or wraps, a DataValidationError.
func IsValidationError(err error) bool {
	var ve *DataValidationError
	return errors.As(err, &ve)
}
