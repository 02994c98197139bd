package export

import (
	"context"
	"sync"

	"resume-studio/internal/preview"
)

// CaptureContext holds the presentation state that was in effect before a capture.
// Restore puts it back exactly once, whatever happened in between.
type CaptureContext struct {
	store    preview.StateStore
	previous preview.State
	capture  preview.State
	once     sync.Once
	err      error
}

// BeginCapture records the current state and switches the surface to the neutral capture state.
func BeginCapture(ctx context.Context, store preview.StateStore) (*CaptureContext, error) {
	prev, err := store.LoadState(ctx)
	if err != nil {
		return nil, err
	}
	cc := &CaptureContext{store: store, previous: prev, capture: preview.Neutral()}
	if err := store.SaveState(ctx, cc.capture); err != nil {
		// Best effort: a partial write must not leave the surface neutral.
		_ = cc.Restore(ctx)
		return nil, err
	}
	return cc, nil
}

// State is the state the page is composed in for the capture. Later writes to the
// store do not change it.
func (cc *CaptureContext) State() preview.State {
	return cc.capture
}

// Previous is the state that Restore writes back.
func (cc *CaptureContext) Previous() preview.State {
	return cc.previous
}

// Restore writes the recorded state back. Later calls return the first result.
// Cancellation of ctx does not prevent the write.
func (cc *CaptureContext) Restore(ctx context.Context) error {
	cc.once.Do(func() {
		cc.err = cc.store.SaveState(context.WithoutCancel(ctx), cc.previous)
	})
	return cc.err
}
