package preview

import (
	"bytes"
	"html/template"
	"strconv"
	"strings"
	"time"

	"resume-studio/internal/document"
	"resume-studio/internal/render"
)

// SurfaceID is the DOM id of the element that is captured on export.
const SurfaceID = "cv-surface"

// DefaultWatermarkText is shown on unlicensed previews.
const DefaultWatermarkText = "BaraCV Preview"

// Kind selects the sub-document to render.
type Kind string

const (
	KindResume      Kind = "resume"
	KindCoverLetter Kind = "cover_letter"
)

// ParseKind maps a query value to a Kind; empty means resume.
func ParseKind(raw string) (Kind, bool) {
	switch Kind(strings.TrimSpace(raw)) {
	case "", KindResume:
		return KindResume, true
	case KindCoverLetter:
		return KindCoverLetter, true
	}
	return "", false
}

// Watermark configures the overlay drawn on unlicensed previews.
type Watermark struct {
	Text string
}

// Build renders the requested sub-document.
func Build(reg *render.Registry, doc document.Document, labels render.Labels, kind Kind, now time.Time) *render.Tree {
	if kind == KindCoverLetter {
		return render.CoverLetter(doc, labels, now)
	}
	return reg.Render(doc, labels)
}

// Page is a composed, printable preview.
type Page struct {
	Title string
	Lang  string
	// Root holds the zoom wrapper with the surface inside.
	Root *render.Node
}

// Surface returns the captured element.
func (p *Page) Surface() *render.Node {
	return p.Root.Find("surface")
}

// Compose wraps tree in the page surface and applies state. Zoom is applied to an outer wrapper so
// the surface keeps its intrinsic geometry.
func Compose(tree *render.Tree, state State, wm Watermark, lang string) *Page {
	surfaceStyle := render.Style{
		"position":         "relative",
		"width":            "210mm",
		"height":           "auto",
		"margin":           "0 auto",
		"box-sizing":       "border-box",
		"background-color": tree.Theme.Background,
	}
	if state.MinHeight != "" {
		surfaceStyle["min-height"] = state.MinHeight
	}
	surface := render.El("div", surfaceStyle, tree.Root()).Attr("id", SurfaceID).Keyed("surface")
	if state.Watermark {
		surface.Children = append(surface.Children, overlay(wm))
	}

	wrapStyle := render.Style{}
	if z := state.Zoom; z > 0 && z != 1 {
		wrapStyle["transform"] = "scale(" + strconv.FormatFloat(z, 'f', -1, 64) + ")"
		wrapStyle["transform-origin"] = "top center"
	}
	return &Page{
		Title: "Preview",
		Lang:  lang,
		Root:  render.El("div", wrapStyle, surface).Keyed("zoom"),
	}
}

func overlay(wm Watermark) *render.Node {
	text := wm.Text
	if strings.TrimSpace(text) == "" {
		text = DefaultWatermarkText
	}
	layer := render.El("div", render.Style{
		"position":       "absolute",
		"inset":          "0",
		"overflow":       "hidden",
		"pointer-events": "none",
		"user-select":    "none",
		"z-index":        "10",
		"opacity":        "0.15",
	})
	for row := 0; row < 6; row++ {
		line := render.El("div", render.Style{
			"display":     "flex",
			"gap":         "48px",
			"margin-top":  strconv.Itoa(row*160) + "px",
			"white-space": "nowrap",
		})
		for col := 0; col < 3; col++ {
			line.Children = append(line.Children, render.Txt("span", text, render.Style{
				"display":          "inline-block",
				"font-size":        "36px",
				"font-weight":      "900",
				"letter-spacing":   "0.1em",
				"color":            "#1f2937",
				"transform":        "rotate(-30deg)",
				"transform-origin": "center",
			}))
		}
		layer.Children = append(layer.Children, line)
	}
	return layer.Keyed("watermark")
}

var pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<link rel="stylesheet" href="https://fonts.googleapis.com/css2?family=Inter:wght@300;400;500;600;700;800&family=Playfair+Display:ital@0;1&family=Poppins:wght@400;500;600;700;800&display=swap">
<style>
@page { size: A4; margin: 0 }
html, body { margin: 0; padding: 0 }
body { -webkit-print-color-adjust: exact; print-color-adjust: exact }
* { box-sizing: border-box }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// HTML returns the complete HTML document for the page.
func (p *Page) HTML() (string, error) {
	var body strings.Builder
	if err := render.WriteHTML(&body, p.Root); err != nil {
		return "", err
	}
	lang := p.Lang
	if lang == "" {
		lang = "en"
	}
	var out bytes.Buffer
	err := pageTemplate.Execute(&out, struct {
		Lang  string
		Title string
		Body  template.HTML
	}{Lang: lang, Title: p.Title, Body: template.HTML(body.String())})
	if err != nil {
		return "", err
	}
	return out.String(), nil
}
