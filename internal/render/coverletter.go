package render

import (
	"strings"
	"time"

	"resume-studio/internal/document"
)

// CoverLetter renders the cover letter sub-document in a single column. The header follows the
// resume template; date is passed in so rendering stays pure.
func CoverLetter(doc document.Document, labels Labels, date time.Time) *Tree {
	template := doc.Template
	if !template.Valid() {
		template = document.TemplateModern
	}
	theme := ResolveTheme(doc.Theme, paletteFor(template))
	font := "'Inter', 'Helvetica Neue', Arial, sans-serif"
	if template == document.TemplateClassic {
		font = "Georgia, 'Times New Roman', serif"
	}

	letter := doc.CoverLetter
	body := letter.Body
	if strings.TrimSpace(body) == "" {
		body = labels.CoverLetterPlaceholder
	}
	var hiring string
	if strings.TrimSpace(letter.JobTitle) != "" {
		hiring = labels.HiringFor + " " + strings.TrimSpace(letter.JobTitle)
	}

	blocks := []*Node{
		letterHeader(template, doc.PersonalInfo, theme),
		Txt("div", labels.FormatDate(date), Style{"margin-bottom": "32px", "color": "#374151"}).Keyed("date"),
		El("div", Style{"margin-bottom": "32px", "line-height": "1.6", "color": "#1f2937"},
			optional("div", letter.RecipientName, Style{"font-weight": "700"}),
			optional("div", hiring, nil).Keyed("hiring"),
			optional("div", letter.CompanyName, Style{"font-weight": "700"}),
		).Keyed("recipient"),
		Txt("div", body, Style{
			"white-space": "pre-wrap",
			"text-align":  "justify",
			"font-size":   "15px",
			"line-height": "1.75",
			"color":       "#1f2937",
		}).Keyed("body"),
	}
	return &Tree{
		Template: template,
		Theme:    theme,
		Font:     font,
		Columns: []Column{{
			Region: RegionSingle,
			Width:  "100%",
			Style:  Style{"padding": "25mm"},
			Blocks: blocks,
		}},
	}
}

func letterHeader(t document.Template, info document.PersonalInfo, theme document.Theme) *Node {
	contacts := contactValues(info, "email", "phone", "location")
	switch t {
	case document.TemplateMinimal:
		return El("header", Style{"margin-bottom": "64px", "padding-bottom": "24px", "border-bottom": "1px solid #111827"},
			Txt("h1", strings.ToUpper(info.FullName), Style{
				"font-size":      "48px",
				"font-weight":    "900",
				"letter-spacing": "-0.05em",
				"margin":         "0 0 8px 0",
				"color":          theme.Accent,
			}),
			optional("div", strings.Join(contacts, " • "), Style{"font-size": "14px", "font-weight": "500", "color": theme.Primary}).Keyed("contacts"),
		).Keyed("header")
	case document.TemplateClassic:
		return El("header", Style{
			"text-align":     "center",
			"margin-bottom":  "48px",
			"padding-bottom": "32px",
			"border-bottom":  "4px solid " + theme.Primary,
		},
			Txt("h1", strings.ToUpper(info.FullName), Style{"font-size": "36px", "font-weight": "700", "margin": "0 0 8px 0", "color": theme.Accent}),
			optional("div", strings.Join(contacts, " • "), Style{"font-size": "14px", "font-style": "italic", "color": theme.Primary}).Keyed("contacts"),
		).Keyed("header")
	}
	row := El("div", Style{"display": "flex", "flex-wrap": "wrap", "gap": "16px", "font-size": "14px", "margin-top": "8px"})
	for i, c := range contacts {
		row.Children = append(row.Children, Txt("span", c, nil).Keyed(itemKey(i)))
	}
	if len(row.Children) == 0 {
		row = nil
	}
	return El("header", Style{"margin-bottom": "48px"},
		Txt("h1", strings.ToUpper(info.FullName), Style{"font-size": "36px", "font-weight": "700", "margin": "0 0 8px 0", "color": theme.Accent}),
		optional("div", info.Role, Style{"font-size": "14px", "font-weight": "500", "color": theme.Primary}),
		row.Keyed("contacts"),
		El("hr", Style{"margin": "24px 0 0 0", "border": "0", "border-top": "2px solid " + theme.Primary}),
	).Keyed("header")
}
