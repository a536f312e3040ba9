package libgaroon

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedEvent matches any *MalformedEventError
	ErrMalformedEvent = errors.New("malformed event")

	// ErrPaginationProtocol matches any *PaginationProtocolError
	ErrPaginationProtocol = errors.New("pagination protocol violation")

	// ErrNotFound matches any *NotFoundError
	ErrNotFound = errors.New("not found")

	// ErrNoUpcomingEvent is returned when no event starts after the reference time
	ErrNoUpcomingEvent = &NotFoundError{What: "upcoming event"}
)

// TransportError is returned when an API request fails at the HTTP level:
// the request could not be sent, redirects looped, or the status was not 2xx.
type TransportError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: API request failed with status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s %s: request failed: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MalformedEventError reports an API payload that does not match the event schema.
type MalformedEventError struct {
	Field  string
	Reason string
}

func (e *MalformedEventError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("malformed event: %s", e.Reason)
	}
	return fmt.Sprintf("malformed event: %s: %s", e.Field, e.Reason)
}

func (e *MalformedEventError) Is(target error) bool {
	return target == ErrMalformedEvent
}

// PaginationProtocolError is returned when the server reports more pages
// but returns an empty page, which would otherwise never terminate.
type PaginationProtocolError struct {
	Offset int
}

func (e *PaginationProtocolError) Error() string {
	return fmt.Sprintf("pagination protocol violation: empty page with hasNext at offset %d", e.Offset)
}

func (e *PaginationProtocolError) Is(target error) bool {
	return target == ErrPaginationProtocol
}

// NotFoundError is a semantic empty result, distinct from a transport failure.
type NotFoundError struct {
	What string
}

func (e *NotFoundError) Error() string {
	return e.What + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func missingField(field string) error {
	return &MalformedEventError{Field: field, Reason: "required field is missing"}
}
