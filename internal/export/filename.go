package export

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"resume-studio/internal/preview"
)

// DefaultFilenamePrefix starts every exported file name.
const DefaultFilenamePrefix = "BaraCV"

// SafeName folds accents away and replaces every rune outside [A-Za-z0-9] with '_'.
func SafeName(fullName string) string {
	// Chains carry buffers, so each call builds its own.
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(stripMarks, strings.TrimSpace(fullName))
	if err != nil {
		folded = fullName
	}
	var b strings.Builder
	for _, r := range folded {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "Document"
	}
	return b.String()
}

// Filename builds <prefix>_<SafeName>_<Resume|Cover_Letter>.pdf.
func Filename(prefix, fullName string, kind preview.Kind) string {
	if prefix == "" {
		prefix = DefaultFilenamePrefix
	}
	suffix := "Resume"
	if kind == preview.KindCoverLetter {
		suffix = "Cover_Letter"
	}
	return prefix + "_" + SafeName(fullName) + "_" + suffix + ".pdf"
}
