package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
)

// BackendUnavailableError covers network failures and responses that could
// not be read at all. Callers surface a generic message and log the cause.
type BackendUnavailableError struct {
	Op    string
	Cause error
}

func (e *BackendUnavailableError) Error() string {
	return fmt.Sprintf("commerce backend unavailable during %s: %v", e.Op, e.Cause)
}

func (e *BackendUnavailableError) Unwrap() error {
	return e.Cause
}

// BackendRejectedError is a non-2xx response with a body: the backend
// answered and said no.
type BackendRejectedError struct {
	Op     string
	Status int
	Body   []byte
}

func (e *BackendRejectedError) Error() string {
	return fmt.Sprintf("commerce backend rejected %s: status %d", e.Op, e.Status)
}

// Details returns the parsed error body when it is JSON, else the raw text.
func (e *BackendRejectedError) Details() interface{} {
	var parsed interface{}
	if err := json.Unmarshal(e.Body, &parsed); err == nil {
		return parsed
	}
	return string(e.Body)
}

// ErrorField digs the conventional "error" string out of the body, if any.
func (e *BackendRejectedError) ErrorField() string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(e.Body, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		return body.Message
	}
	return ""
}

func IsBackendUnavailable(err error) bool {
	var unavailable *BackendUnavailableError
	return errors.As(err, &unavailable)
}

func AsBackendRejected(err error) (*BackendRejectedError, bool) {
	var rejected *BackendRejectedError
	if errors.As(err, &rejected) {
		return rejected, true
	}
	return nil, false
}

// RetryableBackendError reports whether a failed call is worth repeating:
// the backend being unreachable or a 5xx. Rejections carrying business
// meaning (4xx) never are.
func RetryableBackendError(err error) bool {
	if IsBackendUnavailable(err) {
		return true
	}
	if rejected, ok := AsBackendRejected(err); ok {
		return rejected.Status >= 500
	}
	return false
}
