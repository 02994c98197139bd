package export

import "math"

// A4 geometry in millimetres.
const (
	A4WidthMM  = 210.0
	A4HeightMM = 297.0
)

// Strip is one page-sized horizontal band of the captured image.
type Strip struct {
	Index   int
	SourceY int
	Height  int
}

// Plan slices a capture of Width×Height pixels into A4-proportioned strips.
type Plan struct {
	Width      int
	Height     int
	PageHeight int
	Strips     []Strip
}

// Pages is the number of pages the plan produces.
func (p Plan) Pages() int {
	return len(p.Strips)
}

// Paginate computes the page plan for a capture. The strip heights always sum to height.
func Paginate(width, height int) Plan {
	plan := Plan{Width: width, Height: height}
	if width <= 0 || height <= 0 {
		return plan
	}
	plan.PageHeight = int(math.Round(float64(width) * A4HeightMM / A4WidthMM))
	total := int(math.Ceil(float64(height) / float64(plan.PageHeight)))
	for i := 0; i < total; i++ {
		y := i * plan.PageHeight
		h := plan.PageHeight
		if rest := height - y; rest < h {
			h = rest
		}
		if h <= 0 {
			continue
		}
		plan.Strips = append(plan.Strips, Strip{Index: i, SourceY: y, Height: h})
	}
	return plan
}

// StripHeightMM is the printed height of a strip placed at full page width.
func (p Plan) StripHeightMM(s Strip) float64 {
	return A4WidthMM * float64(s.Height) / float64(p.Width)
}
