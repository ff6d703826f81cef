// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package hsdsfake

import (
	"net/http"
)

// errorStatus describes errors that correspond to specific HTTP
// status codes.
type errorStatus interface {
	HTTPStatus() int
}

// errNotFound is returned when a domain, object, link, attribute or
// ACL does not exist.
type errNotFound struct {
	What string
}

func (e errNotFound) Error() string {
	return "No such " + e.What
}

func (e errNotFound) HTTPStatus() int {
	return http.StatusNotFound
}

// errConflict is returned when creating something that already
// exists.
type errConflict struct {
	Text string
}

func (e errConflict) Error() string {
	return e.Text
}

func (e errConflict) HTTPStatus() int {
	return http.StatusConflict
}

// errBadRequest is returned for malformed parameters or bodies.
type errBadRequest struct {
	Text string
}

func (e errBadRequest) Error() string {
	return e.Text
}

func (e errBadRequest) HTTPStatus() int {
	return http.StatusBadRequest
}

// errNotImplemented is returned for valid requests this server does
// not support.
type errNotImplemented struct {
	Text string
}

func (e errNotImplemented) Error() string {
	return e.Text
}

func (e errNotImplemented) HTTPStatus() int {
	return http.StatusNotImplemented
}

// errMethodNotAllowed is returned if a resource has no handler for a
// request method.
type errMethodNotAllowed struct {
	Method string
}

func (e errMethodNotAllowed) Error() string {
	return "Method " + e.Method + " not allowed"
}

func (e errMethodNotAllowed) HTTPStatus() int {
	return http.StatusMethodNotAllowed
}

// statusOf returns the HTTP status for err.
func statusOf(err error) int {
	if s, ok := err.(errorStatus); ok {
		return s.HTTPStatus()
	}
	return http.StatusInternalServerError
}
