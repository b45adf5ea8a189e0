// Package apperr defines the error classes surfaced by the HTTP layer.
//
// Lower layers mark their errors with one of the sentinels below using
// errors.Mark, so the original cause (and its stack) is kept for logging
// while handlers only need errors.Is to pick a status code.
package apperr

import (
	"net/http"

	"github.com/cockroachdb/errors"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrDuplicateKey        = errors.New("duplicate key")
	ErrNotFound            = errors.New("not found")
	ErrUnsatisfiableFilter = errors.New("unsatisfiable filter")
	ErrUnparseableQuery    = errors.New("unparseable query")
	ErrStoreFailure        = errors.New("store failure")
)

// Invalidf returns an ErrInvalidInput carrying a caller-facing message.
func Invalidf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrInvalidInput)
}

// Store wraps a driver error as ErrStoreFailure.
func Store(err error, op string) error {
	if err == nil {
		return nil
	}
	return errors.Mark(errors.Wrap(err, op), ErrStoreFailure)
}

// Status maps an error to the HTTP status it should be reported with.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrUnparseableQuery):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateKey):
		return http.StatusConflict
	case errors.Is(err, ErrUnsatisfiableFilter):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the caller-facing message for err. Store failures and
// unclassified errors collapse to a generic message.
func Message(err error) string {
	if Status(err) == http.StatusInternalServerError {
		return "Server error"
	}
	return err.Error()
}
