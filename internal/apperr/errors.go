package apperr

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidPattern reports a malformed regex query. Only possible in
	// regex mode; literal queries are escaped and always compile.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrReadFailure reports a note that became unreadable during a search
	// sweep. The sweep aborts; partial results are never returned.
	ErrReadFailure = errors.New("read failure")
)
