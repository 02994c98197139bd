package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// DefaultJPEGQuality is the compression quality of each page raster.
const DefaultJPEGQuality = 92

// Placement records where a strip was drawn.
type Placement struct {
	Page     int
	WidthMM  float64
	HeightMM float64
}

// Assembler builds an A4 PDF from a capture and its page plan.
type Assembler struct {
	Quality int
	Title   string
}

// Assemble draws one strip per page at full page width from the top-left corner, over the background color.
func (a Assembler) Assemble(img image.Image, plan Plan, background string) ([]byte, []Placement, error) {
	if plan.Pages() == 0 {
		return nil, nil, fmt.Errorf("%w: empty capture", ErrAssemble)
	}
	quality := a.Quality
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	bg := parseHexColor(background)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("resume-studio", true)
	if a.Title != "" {
		pdf.SetTitle(a.Title, true)
	}

	placements := make([]Placement, 0, plan.Pages())
	for _, s := range plan.Strips {
		strip := stripImage(img, plan.Width, s, bg)
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, strip, &jpeg.Options{Quality: quality}); err != nil {
			return nil, nil, fmt.Errorf("%w: encode page %d: %v", ErrAssemble, s.Index+1, err)
		}

		pdf.AddPage()
		pdf.SetFillColor(int(bg.R), int(bg.G), int(bg.B))
		pdf.Rect(0, 0, A4WidthMM, A4HeightMM, "F")

		name := "page-" + strconv.Itoa(s.Index)
		opts := gofpdf.ImageOptions{ImageType: "JPG"}
		pdf.RegisterImageOptionsReader(name, opts, &buf)
		h := plan.StripHeightMM(s)
		pdf.ImageOptions(name, 0, 0, A4WidthMM, h, false, opts, 0, "")
		placements = append(placements, Placement{Page: s.Index + 1, WidthMM: A4WidthMM, HeightMM: h})
	}
	if err := pdf.Error(); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrAssemble, err)
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrAssemble, err)
	}
	return out.Bytes(), placements, nil
}

// stripImage cuts one page strip out of the capture, laid over the background so transparent
// regions print in the page color.
func stripImage(img image.Image, width int, s Strip, bg color.RGBA) *image.RGBA {
	bounds := img.Bounds()
	strip := image.NewRGBA(image.Rect(0, 0, width, s.Height))
	draw.Draw(strip, strip.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)
	draw.Draw(strip, strip.Bounds(), img, image.Pt(bounds.Min.X, bounds.Min.Y+s.SourceY), draw.Over)
	return strip
}

// parseHexColor reads #rgb or #rrggbb, defaulting to white.
func parseHexColor(s string) color.RGBA {
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 && len(s) != 8 {
		return white
	}
	v, err := strconv.ParseUint(s[:6], 16, 32)
	if err != nil {
		return white
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}
