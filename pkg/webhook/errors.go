package webhook

import (
	"errors"
	"fmt"
)

// ErrNoContent is returned by the transport when the API answers with
// HTTP 204. Delete operations translate it to success; every other
// operation surfaces it to the caller unchanged.
var ErrNoContent = errors.New("no content")

// BadStatusError is returned when the API answers with a status code
// outside of 200 and 204.
type BadStatusError struct {
	Code int
}

func (e *BadStatusError) Error() string {
	return fmt.Sprintf("bad status: %d", e.Code)
}

// UnknownError is returned for local failures unrelated to a status code,
// such as a failed connection or an unreadable response body.
type UnknownError struct {
	Reason string
	Err    error
}

func (e *UnknownError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unknown: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("unknown: %s", e.Reason)
}

func (e *UnknownError) Unwrap() error {
	return e.Err
}

// ParseError is returned when a successfully received response body does
// not match the expected schema.
type ParseError struct {
	Context string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("bad parse: %s", e.Context)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// TooBigError is returned when local validation rejects an outbound
// payload before any request is made.
type TooBigError struct {
	Field string
	Size  int
	Max   int
}

func (e *TooBigError) Error() string {
	return fmt.Sprintf("%s exceeded max character count, %d of %d", e.Field, e.Size, e.Max)
}
