package export

import (
	"context"
	"fmt"
	"image"
	"time"

	"resume-studio/internal/shared/metrics"
	"resume-studio/internal/shared/telemetry"
)

// RasterOptions controls surface capture.
type RasterOptions struct {
	// WidthPx is the CSS viewport width: 210mm at 96dpi.
	WidthPx int
	// Scale is the device pixel ratio of the capture.
	Scale float64
}

// DefaultRasterOptions captures A4 width at twice the CSS resolution.
func DefaultRasterOptions() RasterOptions {
	return RasterOptions{WidthPx: 794, Scale: 2}
}

// Rasterizer captures the page surface of an HTML document as an image.
type Rasterizer interface {
	Rasterize(ctx context.Context, html string, opts RasterOptions) (image.Image, error)
}

// RetryingRasterizer retries failed captures with exponential backoff.
type RetryingRasterizer struct {
	Next     Rasterizer
	Attempts int
	Backoff  time.Duration
	sleep    func(ctx context.Context, d time.Duration) error
}

// WithRetry wraps r with 3 attempts and a 1s initial backoff.
func WithRetry(r Rasterizer) *RetryingRasterizer {
	return &RetryingRasterizer{Next: r, Attempts: 3, Backoff: time.Second}
}

func (r *RetryingRasterizer) Rasterize(ctx context.Context, html string, opts RasterOptions) (image.Image, error) {
	attempts := r.Attempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := r.sleep
	if sleep == nil {
		sleep = sleepContext
	}
	backoff := r.Backoff
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		img, err := r.Next.Rasterize(ctx, html, opts)
		if err == nil {
			return img, nil
		}
		lastErr = err
		if ctx.Err() != nil || attempt == attempts {
			break
		}
		metrics.IncRasterizeRetry()
		telemetry.Warn("export.rasterize_retry", map[string]any{
			"attempt":    attempt,
			"backoff_ms": backoff.Milliseconds(),
			"error":      err,
		})
		if err := sleep(ctx, backoff); err != nil {
			return nil, err
		}
		backoff *= 2
	}
	return nil, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
