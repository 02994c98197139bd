package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"resume-studio/internal/preview"
)

// ChromeRasterizer captures the page surface with headless Chrome.
type ChromeRasterizer struct {
	ExecPath string
	Timeout  time.Duration
}

// NewChromeRasterizer constructs a ChromeRasterizer. An empty execPath uses the browser on PATH.
func NewChromeRasterizer(execPath string, timeout time.Duration) *ChromeRasterizer {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ChromeRasterizer{ExecPath: execPath, Timeout: timeout}
}

func (r *ChromeRasterizer) Rasterize(ctx context.Context, html string, opts RasterOptions) (image.Image, error) {
	if opts.WidthPx <= 0 {
		opts = DefaultRasterOptions()
	}
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(opts.WidthPx, 1123),
	)
	if r.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(r.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()
	runCtx, cancel := context.WithTimeout(browserCtx, r.Timeout)
	defer cancel()

	tmpDir, err := os.MkdirTemp("", "resume-export-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)
	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o600); err != nil {
		return nil, err
	}

	selector := "#" + preview.SurfaceID
	var (
		fontsReady bool
		height     float64
		shot       []byte
	)
	err = chromedp.Run(runCtx,
		emulation.SetDeviceMetricsOverride(int64(opts.WidthPx), 1123, 1, false),
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady(selector, chromedp.ByQuery),
		chromedp.Evaluate(`document.fonts.ready.then(() => true)`, &fontsReady, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
		chromedp.Evaluate(fmt.Sprintf(`document.querySelector(%q).scrollHeight`, selector), &height),
		chromedp.ActionFunc(func(ctx context.Context) error {
			h := int64(math.Ceil(height))
			if h < 1 {
				h = 1
			}
			return emulation.SetDeviceMetricsOverride(int64(opts.WidthPx), h, 1, false).Do(ctx)
		}),
		chromedp.ScreenshotScale(selector, opts.Scale, &shot, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("chrome capture: %w", err)
	}
	img, err := png.Decode(bytes.NewReader(shot))
	if err != nil {
		return nil, fmt.Errorf("decode capture: %w", err)
	}
	return img, nil
}

var _ Rasterizer = (*ChromeRasterizer)(nil)
