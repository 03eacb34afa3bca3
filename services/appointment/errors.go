package appointment

import "errors"

// ErrInvalidPayload is the single validation failure reported to clients; which field
// failed is deliberately not exposed.
var ErrInvalidPayload = errors.New("invalid appointment payload")

// StorageError wraps a failure to persist an appointment.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return "failed to create appointment: " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
