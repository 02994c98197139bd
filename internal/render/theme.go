package render

import (
	"strings"

	"resume-studio/internal/document"
)

// Default palettes per template. A document theme overrides them field by field.
var (
	emeraldPalette = document.Theme{Primary: "#059669", Accent: "#064e3b", Background: "#ffffff", Text: "#374151"}
	slatePalette   = document.Theme{Primary: "#334155", Accent: "#0f172a", Background: "#ffffff", Text: "#374151"}
	inkPalette     = document.Theme{Primary: "#6b7280", Accent: "#111827", Background: "#ffffff", Text: "#1f2937"}
	navyPalette    = document.Theme{Primary: "#1d4ed8", Accent: "#1e293b", Background: "#f8fafc", Text: "#334155"}
	bluePalette    = document.Theme{Primary: "#2563eb", Accent: "#1e3a8a", Background: "#ffffff", Text: "#374151"}
)

// ResolveTheme fills every empty field of t from def.
func ResolveTheme(t *document.Theme, def document.Theme) document.Theme {
	if t == nil {
		return def
	}
	out := def
	if v := strings.TrimSpace(t.Primary); v != "" {
		out.Primary = v
	}
	if v := strings.TrimSpace(t.Accent); v != "" {
		out.Accent = v
	}
	if v := strings.TrimSpace(t.Background); v != "" {
		out.Background = v
	}
	if v := strings.TrimSpace(t.Text); v != "" {
		out.Text = v
	}
	return out
}

// tint appends a two-digit alpha to a #rrggbb color. Other forms are returned unchanged.
func tint(color, alpha string) string {
	if len(color) == 7 && strings.HasPrefix(color, "#") {
		return color + alpha
	}
	return color
}

// paletteFor returns the default palette of template t.
func paletteFor(t document.Template) document.Theme {
	switch t {
	case document.TemplateClassic:
		return slatePalette
	case document.TemplateMinimal:
		return inkPalette
	case document.TemplateProfessional:
		return navyPalette
	case document.TemplateCreative:
		return bluePalette
	}
	return emeraldPalette
}
