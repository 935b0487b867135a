package fraud

import "fmt"

// ValidationError reports unusable request input. Handlers map it to a 400
// with a generic message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// ModelError reports a classifier failure. Model identifies which of the two
// classifiers failed.
type ModelError struct {
	Model string
	Err   error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("%s classifier: %v", e.Model, e.Err)
}

func (e *ModelError) Unwrap() error { return e.Err }

// StorageError reports a store failure other than the absorbed uniqueness
// conflict on insert.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
