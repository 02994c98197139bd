package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"resume-studio/internal/document"
	"resume-studio/internal/preview"
	"resume-studio/internal/render"
	"resume-studio/internal/shared/telemetry"
)

// Licenser reports whether a principal's previews are unwatermarked.
type Licenser interface {
	Licensed(ctx context.Context, userID string) (bool, error)
}

// Service owns editor sessions: one per principal.
type Service struct {
	Store    Store
	Licenser Licenser
	Now      func() time.Time
}

// NewService constructs a Service. lic may be nil, in which case every session is unlicensed.
func NewService(store Store, lic Licenser) *Service {
	return &Service{Store: store, Licenser: lic, Now: time.Now}
}

func (s *Service) licensed(ctx context.Context, principal string) bool {
	if s.Licenser == nil {
		return false
	}
	ok, err := s.Licenser.Licensed(ctx, principal)
	if err != nil {
		telemetry.Warn("session.license_lookup_failed", map[string]any{
			"user_id": principal,
			"error":   err,
		})
		return false
	}
	return ok
}

func (s *Service) newSession(ctx context.Context, principal string) Session {
	return Session{
		ID:        uuid.NewString(),
		Principal: principal,
		Document:  document.Default(),
		Language:  render.LabelsFor().Lang,
		View:      preview.DefaultState(s.licensed(ctx, principal)),
	}
}

// update applies fn to the principal's session, creating it first when absent.
func (s *Service) update(ctx context.Context, principal string, fn func(*Session) error) (Session, error) {
	var fresh *Session
	// The license lookup may be remote, so a new session is prepared outside the store's update.
	if _, err := s.Store.Get(ctx, principal); errors.Is(err, ErrNotFound) {
		sess := s.newSession(ctx, principal)
		fresh = &sess
	} else if err != nil {
		return Session{}, err
	}
	return s.Store.Update(ctx, principal, func(cur *Session, found bool) error {
		if !found {
			if fresh == nil {
				sess := s.newSession(ctx, principal)
				fresh = &sess
			}
			*cur = *fresh
		}
		if err := fn(cur); err != nil {
			return err
		}
		cur.UpdatedAt = s.Now().UTC()
		return nil
	})
}

// Get returns the principal's session, creating it with the sample document when absent.
func (s *Service) Get(ctx context.Context, principal string) (Session, error) {
	sess, err := s.Store.Get(ctx, principal)
	if err == nil {
		return sess, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Session{}, err
	}
	return s.update(ctx, principal, func(*Session) error { return nil })
}

// Snapshot implements preview.Source. The watermark always follows the current license, and
// during an export the user's own view is served rather than the capture state.
func (s *Service) Snapshot(ctx context.Context, principal string) (preview.Snapshot, error) {
	sess, err := s.Get(ctx, principal)
	if err != nil {
		return preview.Snapshot{}, err
	}
	state := sess.visible()
	state.Watermark = !s.licensed(ctx, principal)
	return preview.Snapshot{Document: sess.Document, Language: sess.Language, State: state}, nil
}

// SetZoom implements preview.Source. While an export is capturing, the zoom is recorded on the
// paused view and applied when the capture ends.
func (s *Service) SetZoom(ctx context.Context, principal string, zoom float64) (preview.State, error) {
	sess, err := s.update(ctx, principal, func(cur *Session) error {
		if cur.Paused != nil {
			cur.Paused.Zoom = preview.ClampZoom(zoom)
			return nil
		}
		cur.View.Zoom = preview.ClampZoom(zoom)
		return nil
	})
	if err != nil {
		return preview.State{}, err
	}
	return sess.visible(), nil
}

func (sess Session) visible() preview.State {
	if sess.Paused != nil {
		return *sess.Paused
	}
	return sess.View
}

// States returns the presentation-state handle of one session.
func (s *Service) States(principal string) preview.StateStore {
	return stateStore{svc: s, principal: principal}
}

type stateStore struct {
	svc       *Service
	principal string
}

func (st stateStore) LoadState(ctx context.Context) (preview.State, error) {
	sess, err := st.svc.Get(ctx, st.principal)
	if err != nil {
		return preview.State{}, err
	}
	return sess.View, nil
}

// SaveState switching to the neutral state pauses the current view; any other state ends the
// pause, keeping zoom changes made in between.
func (st stateStore) SaveState(ctx context.Context, state preview.State) error {
	_, err := st.svc.Store.Update(ctx, st.principal, func(cur *Session, found bool) error {
		if !found {
			return ErrNotFound
		}
		if state == preview.Neutral() {
			if cur.Paused == nil {
				paused := cur.View
				cur.Paused = &paused
			}
		} else if cur.Paused != nil {
			state.Zoom = cur.Paused.Zoom
			cur.Paused = nil
		}
		cur.View = state
		return nil
	})
	return err
}

// ReplaceDocument validates a whole document body and installs it.
func (s *Service) ReplaceDocument(ctx context.Context, principal string, raw []byte) (Session, error) {
	if err := document.ValidateJSON(raw); err != nil {
		return Session{}, err
	}
	var doc document.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Session{}, &document.ValidationError{Problems: []string{err.Error()}}
	}
	document.AssignIDs(&doc)
	if err := doc.Validate(); err != nil {
		return Session{}, err
	}
	return s.update(ctx, principal, func(cur *Session) error {
		cur.Document = doc
		return nil
	})
}

// PatchDocument replaces the named top-level fields wholesale.
func (s *Service) PatchDocument(ctx context.Context, principal string, patch map[string]json.RawMessage) (Session, error) {
	return s.UpdateDocument(ctx, principal, func(doc document.Document) (document.Document, error) {
		return document.ReplaceFields(doc, patch)
	})
}

// UpdateDocument applies fn to the session document and keeps the result only when it validates.
func (s *Service) UpdateDocument(ctx context.Context, principal string, fn func(document.Document) (document.Document, error)) (Session, error) {
	return s.update(ctx, principal, func(cur *Session) error {
		next, err := fn(cur.Document)
		if err != nil {
			return err
		}
		if err := next.Validate(); err != nil {
			return err
		}
		cur.Document = next
		return nil
	})
}

// AddItem appends an empty entity to a collection and returns its id.
func (s *Service) AddItem(ctx context.Context, principal string, c document.Collection) (Session, string, error) {
	var id string
	sess, err := s.UpdateDocument(ctx, principal, func(doc document.Document) (document.Document, error) {
		out, newID, err := document.AddItem(doc, c)
		id = newID
		return out, err
	})
	if err != nil {
		return Session{}, "", err
	}
	return sess, id, nil
}

// RemoveItem deletes an entity from a collection.
func (s *Service) RemoveItem(ctx context.Context, principal string, c document.Collection, id string) (Session, error) {
	return s.UpdateDocument(ctx, principal, func(doc document.Document) (document.Document, error) {
		return document.RemoveItem(doc, c, id)
	})
}

// MoveItem shifts an entity within its collection.
func (s *Service) MoveItem(ctx context.Context, principal string, c document.Collection, id string, delta int) (Session, error) {
	return s.UpdateDocument(ctx, principal, func(doc document.Document) (document.Document, error) {
		return document.MoveItem(doc, c, id, delta)
	})
}

// MoveSection shifts a section key within the section order.
func (s *Service) MoveSection(ctx context.Context, principal, key string, delta int) (Session, error) {
	return s.UpdateDocument(ctx, principal, func(doc document.Document) (document.Document, error) {
		return document.MoveSection(doc, key, delta)
	})
}

// SetLanguage switches the label language. Unsupported tags resolve to the closest pack.
func (s *Service) SetLanguage(ctx context.Context, principal, lang string) (Session, error) {
	if lang == "" {
		return Session{}, fmt.Errorf("%w: language is required", document.ErrInvalidDocument)
	}
	resolved := render.LabelsFor(lang).Lang
	return s.update(ctx, principal, func(cur *Session) error {
		cur.Language = resolved
		return nil
	})
}

// Reset discards the session; the next access starts from the sample document.
func (s *Service) Reset(ctx context.Context, principal string) error {
	return s.Store.Delete(ctx, principal)
}
