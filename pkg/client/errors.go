package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// StatusError reports a non-success HTTP response. It carries the status
// code and the raw body so callers can distinguish transport failures from
// payload-shape failures.
type StatusError struct {
	StatusCode int
	// Status is the HTTP status line, e.g. "404 Not Found".
	Status string
	// Message is the server-provided error message, when the body parsed
	// as the standard error payload.
	Message string
	// Body is the raw response body as received.
	Body []byte
}

func (e *StatusError) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("http %d: %s", e.StatusCode, msg)
}

// DecodeError reports a response body that was received but could not be
// turned into the expected typed result, either because parsing failed or
// because a required field was empty. Body holds the raw text for diagnosis.
type DecodeError struct {
	Message string
	Body    []byte
	cause   error
}

func (e *DecodeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("decode response: %s: %v", e.Message, e.cause)
	}
	return "decode response: " + e.Message
}

func (e *DecodeError) Unwrap() error { return e.cause }

// InvalidRequestError reports a required parameter that is missing or
// malformed. It is returned before any network call is issued.
type InvalidRequestError struct {
	Field  string
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid request: %s: %s", e.Field, e.Reason)
}

// AsStatusError reports whether err is (or wraps) a StatusError.
func AsStatusError(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// AsDecodeError reports whether err is (or wraps) a DecodeError.
func AsDecodeError(err error) (*DecodeError, bool) {
	var de *DecodeError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// IsInvalidRequest reports whether err is a client-side validation failure.
func IsInvalidRequest(err error) bool {
	var ie *InvalidRequestError
	return errors.As(err, &ie)
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	se, ok := AsStatusError(err)
	return ok && se.StatusCode == http.StatusNotFound
}
