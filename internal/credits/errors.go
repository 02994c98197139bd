package credits

import "errors"

var (
	// ErrInsufficientCredits indicates the balance cannot cover the requested amount.
	ErrInsufficientCredits = errors.New("insufficient credits")
	// ErrUnavailable indicates the balance collaborator could not be reached or answered badly.
	ErrUnavailable = errors.New("balance service unavailable")
)
