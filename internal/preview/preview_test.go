package preview_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-studio/internal/document"
	"resume-studio/internal/preview"
	"resume-studio/internal/render"
)

func TestClampZoom(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0.1, 0.3},
		{0.3, 0.3},
		{0.54, 0.5},
		{1.26, 1.3},
		{2, 1.5},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, preview.ClampZoom(tc.in), 1e-9, "in=%v", tc.in)
	}
}

func TestDefaultStateFollowsLicense(t *testing.T) {
	assert.True(t, preview.DefaultState(false).Watermark)
	assert.False(t, preview.DefaultState(true).Watermark)
	assert.Equal(t, 0.5, preview.DefaultState(true).Zoom)
	assert.Equal(t, preview.State{Zoom: 1}, preview.Neutral())
}

func composeDefault(t *testing.T, state preview.State) *preview.Page {
	t.Helper()
	tree := render.DefaultRegistry().Render(document.Default(), render.LabelsFor("en"))
	return preview.Compose(tree, state, preview.Watermark{}, "en")
}

func TestComposeWatermarkOverlay(t *testing.T) {
	page := composeDefault(t, preview.State{Zoom: 1, Watermark: true, MinHeight: preview.A4MinHeight})
	surface := page.Surface()
	require.NotNil(t, surface)

	last := surface.Children[len(surface.Children)-1]
	assert.Equal(t, "watermark", last.Key)
	assert.Equal(t, "none", last.Style["pointer-events"])
	assert.Equal(t, "10", last.Style["z-index"])
	assert.Contains(t, last.TextContent(), preview.DefaultWatermarkText)
	assert.Equal(t, "297mm", surface.Style["min-height"])
	assert.Equal(t, "auto", surface.Style["height"])
}

func TestComposeNeutralHasNoOverlayOrScale(t *testing.T) {
	page := composeDefault(t, preview.Neutral())
	assert.Nil(t, page.Root.Find("watermark"))
	assert.Empty(t, page.Root.Style["transform"])
	assert.Empty(t, page.Surface().Style["min-height"])

	out, err := page.HTML()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<!doctype html>"))
	assert.Contains(t, out, `id="cv-surface"`)
	assert.Contains(t, out, "@page { size: A4; margin: 0 }")
	assert.NotContains(t, out, preview.DefaultWatermarkText)
}

func TestZoomLeavesSurfaceGeometry(t *testing.T) {
	unscaled := composeDefault(t, preview.State{Zoom: 1, MinHeight: preview.A4MinHeight})
	scaled := composeDefault(t, preview.State{Zoom: 0.7, MinHeight: preview.A4MinHeight})

	assert.Equal(t, "scale(0.7)", scaled.Root.Style["transform"])
	assert.Equal(t, unscaled.Surface().Style, scaled.Surface().Style)
}

type fakeSource struct {
	snap preview.Snapshot
}

func (f *fakeSource) Snapshot(context.Context, string) (preview.Snapshot, error) {
	return f.snap, nil
}

func (f *fakeSource) SetZoom(_ context.Context, _ string, z float64) (preview.State, error) {
	f.snap.State.Zoom = preview.ClampZoom(z)
	return f.snap.State, nil
}

func newRouter(src preview.Source) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := preview.NewHandler(src, render.DefaultRegistry(), preview.Watermark{Text: "Draft"})
	h.Now = func() time.Time { return time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC) }
	h.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestPreviewHandlerServesHTML(t *testing.T) {
	src := &fakeSource{snap: preview.Snapshot{Document: document.Default(), Language: "fr", State: preview.DefaultState(false)}}
	router := newRouter(src)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/preview?kind=cover_letter", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, `lang="fr"`)
	assert.Contains(t, body, "16 octobre 2026")
	assert.Contains(t, body, "Draft")
}

func TestPreviewHandlerRejectsUnknownKind(t *testing.T) {
	router := newRouter(&fakeSource{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/preview?kind=poster", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestZoomHandlerClamps(t *testing.T) {
	src := &fakeSource{snap: preview.Snapshot{Document: document.Default(), State: preview.DefaultState(true)}}
	router := newRouter(src)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/v1/preview/zoom", strings.NewReader(`{"zoom":4}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"zoom":1.5,"watermark":false,"minHeight":"297mm"}`, rec.Body.String())
}
