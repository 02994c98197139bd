package document

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidDocument indicates the document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrItemNotFound indicates no entity with the given id exists in the collection.
	ErrItemNotFound = errors.New("item not found")

	// ErrUnknownCollection indicates the collection name is not editable.
	ErrUnknownCollection = errors.New("unknown collection")

	// ErrUnknownField indicates a patch named a field the document does not have.
	ErrUnknownField = errors.New("unknown field")
)

// ValidationError lists every problem found in a document.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid document: " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidDocument
}
