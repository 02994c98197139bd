package render

import (
	"strings"

	"resume-studio/internal/document"
)

// Minimal is the single-column template laid out as label/content rows.
type Minimal struct{}

var minimalLayout = singleColumn()

func (Minimal) Name() document.Template { return document.TemplateMinimal }

func (Minimal) Layout() Layout { return minimalLayout }

func (Minimal) Render(doc document.Document, labels Labels) *Tree {
	v := minimalView{doc: doc, labels: labels, theme: ResolveTheme(doc.Theme, inkPalette)}
	fixed := map[Region][]*Node{
		RegionSingle: {v.header(), v.summary()},
	}
	placed := Dispatch(minimalLayout, doc.SectionOrder, v.section)
	styles := map[Region]Style{
		RegionSingle: {"padding": "56px 64px", "gap": "26px"},
	}
	return &Tree{
		Template: document.TemplateMinimal,
		Theme:    v.theme,
		Font:     "'Helvetica Neue', Helvetica, Arial, sans-serif",
		Columns:  columns(minimalLayout, fixed, placed, styles),
	}
}

type minimalView struct {
	doc    document.Document
	labels Labels
	theme  document.Theme
}

var minimalRow = Style{
	"display":               "grid",
	"grid-template-columns": "100px 1fr",
	"column-gap":            "24px",
}

func (v minimalView) label(title string) *Node {
	return Txt("h2", strings.ToLower(title), Style{
		"font-size":   "12px",
		"font-weight": "600",
		"margin":      "2px 0 0 0",
		"color":       v.theme.Primary,
	})
}

// cell groups content, returning nil when there is none.
func cell(children ...*Node) *Node {
	n := El("div", Style{"display": "flex", "flex-direction": "column", "gap": "12px"}, children...)
	if len(n.Children) == 0 {
		return nil
	}
	return n
}

func (v minimalView) header() *Node {
	info := v.doc.PersonalInfo
	first, rest := splitName(info.FullName)
	return El("header", Style{"margin-bottom": "16px"},
		El("h1", Style{"font-size": "40px", "margin": "0", "line-height": "1.1", "color": v.theme.Accent},
			optional("span", first, Style{"font-weight": "300"}),
			optional("span", rest, Style{"font-weight": "800", "margin-left": "10px"}),
		),
		optional("div", info.Role, Style{"font-size": "14px", "margin-top": "8px", "color": v.theme.Primary}),
		optional("div", strings.Join(contactValues(info, "email", "phone", "location"), "   "), Style{
			"font-size":  "12px",
			"margin-top": "12px",
		}).Keyed("contacts"),
	).Keyed("header")
}

func splitName(full string) (string, string) {
	full = strings.TrimSpace(full)
	if i := strings.IndexByte(full, ' '); i > 0 {
		return full[:i], strings.TrimSpace(full[i+1:])
	}
	return full, ""
}

func (v minimalView) summary() *Node {
	if !hasSummary(v.doc.PersonalInfo) {
		return nil
	}
	return El("div", minimalRow,
		v.label(v.labels.About),
		prose(v.doc.PersonalInfo.Summary, Style{"font-size": "13px", "line-height": "1.6", "margin": "0"}),
	).Keyed("summary")
}

func (v minimalView) section(key document.SectionKey) *Node {
	label := v.label(v.labels.Section(key))
	switch key {
	case document.SectionExperience:
		var entries []*Node
		for _, e := range v.doc.Experiences {
			entries = append(entries, El("div", nil,
				Txt("h3", e.Title, Style{"font-size": "14px", "font-weight": "700", "margin": "0"}),
				optional("div", joinNonBlank(", ", e.Company, e.Location), Style{"font-size": "12px"}),
				optional("div", dateRange(e.StartDate, e.EndDate), Style{"font-size": "11px", "color": v.theme.Primary}),
				prose(e.Description, Style{"font-size": "12px", "line-height": "1.55", "margin": "6px 0 0 0"}),
			).Keyed(entryKey(e.ID)))
		}
		return section(key, minimalRow, label, cell(entries...))
	case document.SectionEducation:
		var entries []*Node
		for _, e := range v.doc.Education {
			entries = append(entries, El("div", nil,
				Txt("h3", e.School, Style{"font-size": "13px", "font-weight": "700", "margin": "0"}),
				optional("div", e.Degree, Style{"font-size": "12px"}),
				optional("div", dateRange(e.StartDate, e.EndDate), Style{"font-size": "11px", "color": v.theme.Primary}),
			).Keyed(entryKey(e.ID)))
		}
		return section(key, minimalRow, label, cell(entries...))
	case document.SectionSkills:
		return section(key, minimalRow, label, optional("p", strings.Join(nonBlank(v.doc.Skills), ", "), Style{"font-size": "12px", "margin": "0"}))
	case document.SectionInterests:
		return section(key, minimalRow, label, optional("p", strings.Join(nonBlank(v.doc.Interests), ", "), Style{"font-size": "12px", "margin": "0"}))
	case document.SectionCourses:
		return section(key, minimalRow, label, bullets(nonBlank(v.doc.Courses),
			Style{"list-style": "none", "margin": "0", "padding": "0", "font-size": "12px"},
			Style{"margin-bottom": "4px"}))
	case document.SectionLanguages:
		var rows []*Node
		for _, l := range v.doc.Languages {
			rows = append(rows, El("div", Style{"display": "flex", "gap": "12px", "align-items": "center", "font-size": "12px"},
				Txt("span", l.Language, Style{"min-width": "90px"}),
				dots(l.Proficiency, v.theme.Accent, "#e5e7eb"),
			).Keyed(entryKey(l.ID)))
		}
		return section(key, minimalRow, label, cell(rows...))
	case document.SectionAchievements:
		var entries []*Node
		for _, a := range v.doc.Achievements {
			entries = append(entries, El("div", nil,
				Txt("h3", a.Title, Style{"font-size": "12px", "font-weight": "700", "margin": "0"}),
				prose(a.Description, Style{"font-size": "12px", "margin": "2px 0 0 0"}),
			).Keyed(entryKey(a.ID)))
		}
		return section(key, minimalRow, label, cell(entries...))
	}
	return nil
}
