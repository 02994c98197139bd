package session

import (
	"errors"
	"time"

	"resume-studio/internal/document"
	"resume-studio/internal/preview"
)

// ErrNotFound indicates no session exists for the principal.
var ErrNotFound = errors.New("session not found")

// Session is one principal's editor state: the document and how it is being viewed.
type Session struct {
	ID        string            `json:"id"`
	Principal string            `json:"principal"`
	Document  document.Document `json:"document"`
	Language  string            `json:"language"`
	View      preview.State     `json:"view"`
	// Paused is the view the user keeps seeing while an export holds View at the neutral capture state.
	Paused    *preview.State    `json:"paused,omitempty"`
	UpdatedAt time.Time         `json:"updatedAt"`
}
