package artifacts

import "errors"

var (
	// ErrNotFound indicates the artifact does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden indicates the artifact belongs to another user.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidOutcome indicates an outcome outside the reportable set.
	ErrInvalidOutcome = errors.New("invalid outcome")
)
