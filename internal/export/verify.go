package export

import (
	"bytes"
	"fmt"
	"math"

	"github.com/ledongthuc/pdf"
)

// A4 in PDF points.
const (
	a4WidthPt  = 595.28
	a4HeightPt = 841.89
	pageTolPt  = 1.0
)

// Verify checks that the PDF has wantPages pages and every page is A4 portrait.
func Verify(data []byte, wantPages int) error {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("%w: open pdf: %v", ErrVerify, err)
	}
	if got := r.NumPage(); got != wantPages {
		return fmt.Errorf("%w: got %d pages, want %d", ErrVerify, got, wantPages)
	}
	for i := 1; i <= wantPages; i++ {
		box := inherited(r.Page(i).V, "MediaBox")
		if box.Len() != 4 {
			return fmt.Errorf("%w: page %d has no media box", ErrVerify, i)
		}
		w := box.Index(2).Float64() - box.Index(0).Float64()
		h := box.Index(3).Float64() - box.Index(1).Float64()
		if math.Abs(w-a4WidthPt) > pageTolPt || math.Abs(h-a4HeightPt) > pageTolPt {
			return fmt.Errorf("%w: page %d is %.2fx%.2fpt, want A4 portrait", ErrVerify, i, w, h)
		}
	}
	return nil
}

// inherited looks up a page attribute, walking up the page tree when the page does not set it.
func inherited(v pdf.Value, key string) pdf.Value {
	for depth := 0; depth < 32 && !v.IsNull(); depth++ {
		if got := v.Key(key); !got.IsNull() {
			return got
		}
		v = v.Key("Parent")
	}
	return pdf.Value{}
}
