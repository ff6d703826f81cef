// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package hsdsclient

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// StatusCodePrefix begins the code of every error caused by a
// non-success HTTP status; the numeric status follows, as in
// "H00.404".
const StatusCodePrefix = "H00."

// DecodeFailureCode is the code of errors raised when a successful
// response body cannot be decoded.
const DecodeFailureCode = "H01"

// ErrNoBaseURL is returned when creating a client without a base
// address.
var ErrNoBaseURL = errors.New("hsdsclient: no base URL")

// ErrBadBaseURL is wrapped by errors describing a base address that
// is not an absolute http or https URL.
var ErrBadBaseURL = errors.New("hsdsclient: invalid base URL")

// ErrAbsoluteURL is returned from the dispatcher if a request path
// is an absolute URL rather than one relative to the base address.
var ErrAbsoluteURL = errors.New("hsdsclient: request path must be relative")

// ErrUnboundPlaceholder is returned from URL building if a path
// template names a placeholder that has no value.
type ErrUnboundPlaceholder struct {
	Name string
}

func (e ErrUnboundPlaceholder) Error() string {
	return fmt.Sprintf("hsdsclient: no value for path placeholder %q", e.Name)
}

// Error is returned for every failure the server or the client's
// decoder reports about an otherwise completed request.
type Error struct {
	// Code is StatusCodePrefix followed by the HTTP status, or
	// DecodeFailureCode.
	Code string

	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Message is a human-readable description.
	Message string

	// Body holds the response body text for status errors.
	Body string

	// Err is the underlying decoding error, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Code + ": " + e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// newStatusError builds the error for a non-success response whose
// body has already been read.
func newStatusError(statusCode int, body string) *Error {
	message := fmt.Sprintf("The HTTP status code of the response was not expected (%d).", statusCode)
	if strings.TrimSpace(body) != "" {
		message = fmt.Sprintf("The HTTP status code of the response was not expected (%d): %s", statusCode, body)
	}
	return &Error{
		Code:       StatusCodePrefix + strconv.Itoa(statusCode),
		StatusCode: statusCode,
		Message:    message,
		Body:       body,
	}
}

func newDecodeError(statusCode int, err error) *Error {
	return &Error{
		Code:       DecodeFailureCode,
		StatusCode: statusCode,
		Message:    "Response data could not be deserialized",
		Err:        err,
	}
}

// StatusCode returns the HTTP status of a status error.  The second
// result is false if err is not one.
func StatusCode(err error) (int, bool) {
	var e *Error
	if errors.As(err, &e) && strings.HasPrefix(e.Code, StatusCodePrefix) {
		return e.StatusCode, true
	}
	return 0, false
}

// IsNotFound reports whether err is a 404 Not Found status error.
func IsNotFound(err error) bool {
	code, ok := StatusCode(err)
	return ok && code == http.StatusNotFound
}

// IsDecodeError reports whether err came from decoding a successful
// response.
func IsDecodeError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == DecodeFailureCode
}

func firstError(e1, e2 error) error {
	if e1 != nil {
		return e1
	}
	return e2
}
