package assist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"resume-studio/internal/document"
	"resume-studio/internal/session"
	"resume-studio/internal/shared/metrics"
	"resume-studio/internal/shared/telemetry"
)

var (
	// ErrUnavailable indicates no writer is configured.
	ErrUnavailable = errors.New("assist unavailable")

	// ErrFailed indicates the writer failed; the document was left unchanged.
	ErrFailed = errors.New("assist failed")

	// ErrNothingToImprove indicates the targeted text is empty.
	ErrNothingToImprove = errors.New("nothing to improve")
)

// Sessions is the part of the session service assist needs.
type Sessions interface {
	Get(ctx context.Context, principal string) (session.Session, error)
	UpdateDocument(ctx context.Context, principal string, fn func(document.Document) (document.Document, error)) (session.Session, error)
}

// Service applies generated text to session documents.
type Service struct {
	Sessions Sessions
	Writer   Writer
}

// NewService constructs a Service. A nil writer makes every operation return ErrUnavailable.
func NewService(sessions Sessions, w Writer) *Service {
	return &Service{Sessions: sessions, Writer: w}
}

// Summary writes a professional summary into personalInfo.summary.
func (s *Service) Summary(ctx context.Context, principal string) (session.Session, error) {
	if s.Writer == nil {
		return session.Session{}, ErrUnavailable
	}
	sess, err := s.Sessions.Get(ctx, principal)
	if err != nil {
		return session.Session{}, err
	}
	text, err := s.Writer.GenerateSummary(ctx, sess.Document, sess.Language)
	if err != nil {
		return session.Session{}, s.failed("summary", principal, err)
	}
	return s.Sessions.UpdateDocument(ctx, principal, func(doc document.Document) (document.Document, error) {
		out := doc.Clone()
		out.PersonalInfo.Summary = text
		return out, nil
	})
}

// ImproveDescription rewrites one experience description.
func (s *Service) ImproveDescription(ctx context.Context, principal, experienceID string) (session.Session, error) {
	if s.Writer == nil {
		return session.Session{}, ErrUnavailable
	}
	sess, err := s.Sessions.Get(ctx, principal)
	if err != nil {
		return session.Session{}, err
	}
	var target *document.Experience
	for i := range sess.Document.Experiences {
		if sess.Document.Experiences[i].ID == experienceID {
			target = &sess.Document.Experiences[i]
			break
		}
	}
	if target == nil {
		return session.Session{}, fmt.Errorf("%w: %s", document.ErrItemNotFound, experienceID)
	}
	if strings.TrimSpace(target.Description) == "" {
		return session.Session{}, ErrNothingToImprove
	}
	role := target.Title
	if role == "" {
		role = sess.Document.PersonalInfo.Role
	}
	text, err := s.Writer.ImproveDescription(ctx, target.Description, role, sess.Language)
	if err != nil {
		return session.Session{}, s.failed("description", principal, err)
	}
	return s.Sessions.UpdateDocument(ctx, principal, func(doc document.Document) (document.Document, error) {
		out := doc.Clone()
		for i := range out.Experiences {
			if out.Experiences[i].ID == experienceID {
				out.Experiences[i].Description = text
				return out, nil
			}
		}
		return doc, fmt.Errorf("%w: %s", document.ErrItemNotFound, experienceID)
	})
}

// CoverLetter writes the cover letter body.
func (s *Service) CoverLetter(ctx context.Context, principal string) (session.Session, error) {
	if s.Writer == nil {
		return session.Session{}, ErrUnavailable
	}
	sess, err := s.Sessions.Get(ctx, principal)
	if err != nil {
		return session.Session{}, err
	}
	text, err := s.Writer.GenerateCoverLetter(ctx, sess.Document, sess.Language)
	if err != nil {
		return session.Session{}, s.failed("cover_letter", principal, err)
	}
	return s.Sessions.UpdateDocument(ctx, principal, func(doc document.Document) (document.Document, error) {
		out := doc.Clone()
		out.CoverLetter.Body = text
		return out, nil
	})
}

func (s *Service) failed(op, principal string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	metrics.IncAssistFailed()
	telemetry.Warn("assist.failed", map[string]any{
		"op":      op,
		"user_id": principal,
		"error":   err,
	})
	return fmt.Errorf("%w: %v", ErrFailed, err)
}
