package models

import (
	"github.com/cockroachdb/errors"
)

// Base errors, each rendered with its own http status code.
var (
	// ErrBadRequest is rendered with the http status code 400
	ErrBadRequest = errors.New("bad request")

	// ErrUnauthenticated is rendered with the http status code 401
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden is rendered with the http status code 403
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is rendered with the http status code 404
	ErrNotFound = errors.New("not found")

	// ErrConflict is rendered with the http status code 409
	ErrConflict = errors.New("conflict")
)

// BadRequest returns a user facing error that matches ErrBadRequest.
func BadRequest(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrBadRequest)
}

func Forbidden(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrForbidden)
}

func NotFound(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrNotFound)
}

func Unauthenticated(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrUnauthenticated)
}

func Conflict(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrConflict)
}
