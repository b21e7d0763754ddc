package api

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/ljxowen/movie-recommender/internal/shared/models"
)

// GenericLabel is used for statuses the descriptor did not register.
const GenericLabel = "Generic Error"

var (
	// ErrInvalidArgument is wrapped by errors for arguments rejected before any request is sent.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrCanceled is returned by Call.Wait after Cancel.
	ErrCanceled = errors.New("call canceled")
)

// Error is a non-2xx response.
type Error struct {
	Operation string
	Method    string
	URL       string
	Status    int
	Label     string
	// Classified is true when Label came from the descriptor.
	Classified bool
	Body       []byte
	// Detail is the parsed field-level failure list of a 422 response.
	Detail []models.ValidationError
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s %s: %d %s", e.Operation, e.Method, e.URL, e.Status, e.Label)
}

func newError(d Descriptor, u string, status int, body []byte) *Error {
	e := &Error{
		Operation: d.Operation,
		Method:    d.Method,
		URL:       u,
		Status:    status,
		Label:     GenericLabel,
		Body:      body,
	}
	if label, ok := d.Errors[status]; ok {
		e.Label = label
		e.Classified = true
	}
	if status == 422 {
		var v models.HTTPValidationError
		if err := json.Unmarshal(body, &v); err == nil {
			e.Detail = v.Detail
		}
	}
	return e
}

// TransportError is a failure without an HTTP response: DNS, refused
// connection, timeout, or cancellation of the request context.
type TransportError struct {
	Operation string
	Method    string
	URL       string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", e.Operation, e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError means a 2xx body did not match the declared type.
type DecodeError struct {
	Operation string
	Status    int
	Body      []byte
	Err       error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decode %d response: %v", e.Operation, e.Status, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsStatus reports whether err is an *Error with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// ValidationErrors returns the detail list of a 422 failure.
func ValidationErrors(err error) ([]models.ValidationError, bool) {
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Status != 422 {
		return nil, false
	}
	return apiErr.Detail, true
}
