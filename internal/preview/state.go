package preview

import (
	"context"
	"math"
)

const (
	MinZoom     = 0.3
	MaxZoom     = 1.5
	ZoomStep    = 0.1
	DefaultZoom = 0.5
	// A4MinHeight keeps the surface at least one page tall while letting it grow.
	A4MinHeight = "297mm"
)

// State is the presentation state of one session's page surface. It never affects the document.
type State struct {
	Zoom      float64 `json:"zoom"`
	Watermark bool    `json:"watermark"`
	MinHeight string  `json:"minHeight"`
}

// DefaultState is the state a new session starts with.
func DefaultState(licensed bool) State {
	return State{Zoom: DefaultZoom, Watermark: !licensed, MinHeight: A4MinHeight}
}

// Neutral is the state the surface is captured in: unscaled, no watermark, no height constraint.
func Neutral() State {
	return State{Zoom: 1}
}

// ClampZoom keeps z within [MinZoom, MaxZoom], rounded to one decimal.
func ClampZoom(z float64) float64 {
	if math.IsNaN(z) || z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return math.Round(z*10) / 10
}

// StateStore reads and writes the presentation state of one session.
type StateStore interface {
	LoadState(ctx context.Context) (State, error)
	SaveState(ctx context.Context, s State) error
}
