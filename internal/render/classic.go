package render

import (
	"fmt"
	"strings"

	"resume-studio/internal/document"
)

// Classic is the single-column serif template.
type Classic struct{}

var classicLayout = singleColumn()

func (Classic) Name() document.Template { return document.TemplateClassic }

func (Classic) Layout() Layout { return classicLayout }

func (Classic) Render(doc document.Document, labels Labels) *Tree {
	v := classicView{doc: doc, labels: labels, theme: ResolveTheme(doc.Theme, slatePalette)}
	fixed := map[Region][]*Node{
		RegionSingle: {v.header(), v.summary()},
	}
	placed := Dispatch(classicLayout, doc.SectionOrder, v.section)
	styles := map[Region]Style{
		RegionSingle: {"padding": "48px 56px", "gap": "22px"},
	}
	return &Tree{
		Template: document.TemplateClassic,
		Theme:    v.theme,
		Font:     "Georgia, 'Times New Roman', serif",
		Columns:  columns(classicLayout, fixed, placed, styles),
	}
}

type classicView struct {
	doc    document.Document
	labels Labels
	theme  document.Theme
}

func (v classicView) header() *Node {
	info := v.doc.PersonalInfo
	contacts := contactValues(info, "email", "phone", "linkedin", "location")
	return El("header", Style{
		"text-align":     "center",
		"padding-bottom": "18px",
		"border-bottom":  "2px solid " + v.theme.Primary,
	},
		Txt("h1", info.FullName, Style{
			"font-size":      "32px",
			"font-weight":    "700",
			"letter-spacing": "0.04em",
			"margin":         "0",
			"color":          v.theme.Accent,
		}),
		optional("div", info.Role, Style{"font-size": "15px", "font-style": "italic", "margin-top": "6px", "color": v.theme.Primary}),
		optional("div", strings.Join(contacts, " • "), Style{"font-size": "12px", "margin-top": "10px"}).Keyed("contacts"),
	).Keyed("header")
}

func (v classicView) summary() *Node {
	if !hasSummary(v.doc.PersonalInfo) {
		return nil
	}
	quoted := "“" + strings.TrimSpace(v.doc.PersonalInfo.Summary) + "”"
	return prose(quoted, Style{
		"font-style":  "italic",
		"text-align":  "center",
		"font-size":   "13px",
		"line-height": "1.6",
		"margin":      "0 32px",
	}).Keyed("summary")
}

func (v classicView) heading(title string) *Node {
	return Txt("h2", strings.ToUpper(title), Style{
		"font-size":      "14px",
		"letter-spacing": "0.15em",
		"margin":         "0 0 10px 0",
		"padding-bottom": "4px",
		"border-bottom":  "1px solid " + tint(v.theme.Primary, "66"),
		"color":          v.theme.Accent,
	})
}

func (v classicView) section(key document.SectionKey) *Node {
	title := v.heading(v.labels.Section(key))
	switch key {
	case document.SectionExperience:
		var entries []*Node
		for _, e := range v.doc.Experiences {
			entries = append(entries, El("div", Style{"margin-bottom": "14px"},
				El("div", Style{"display": "flex", "justify-content": "space-between"},
					Txt("h3", joinNonBlank(", ", e.Title, e.Company), Style{"font-size": "14px", "margin": "0"}),
					optional("span", dateRange(e.StartDate, e.EndDate), Style{"font-size": "12px", "font-style": "italic"}),
				),
				optional("div", e.Location, Style{"font-size": "12px", "font-style": "italic", "color": "#6b7280"}),
				prose(e.Description, Style{"font-size": "13px", "line-height": "1.55", "margin": "6px 0 0 0"}),
			).Keyed(entryKey(e.ID)))
		}
		return section(key, nil, title, entries...)
	case document.SectionEducation:
		var entries []*Node
		for _, e := range v.doc.Education {
			entries = append(entries, El("div", Style{"display": "flex", "justify-content": "space-between", "margin-bottom": "8px"},
				El("div", nil,
					Txt("h3", e.School, Style{"font-size": "14px", "margin": "0"}),
					optional("div", e.Degree, Style{"font-size": "13px", "font-style": "italic"}),
				),
				optional("span", dateRange(e.StartDate, e.EndDate), Style{"font-size": "12px"}),
			).Keyed(entryKey(e.ID)))
		}
		return section(key, nil, title, entries...)
	case document.SectionSkills:
		return section(key, nil, title, optional("p", strings.Join(nonBlank(v.doc.Skills), " • "), Style{"font-size": "13px", "margin": "0"}))
	case document.SectionInterests:
		return section(key, nil, title, optional("p", strings.Join(nonBlank(v.doc.Interests), " • "), Style{"font-size": "13px", "margin": "0"}))
	case document.SectionLanguages:
		var rows []*Node
		for _, l := range v.doc.Languages {
			rows = append(rows, El("div", Style{"display": "flex", "justify-content": "space-between", "font-size": "13px"},
				Txt("span", l.Language, Style{"font-weight": "700"}),
				Txt("span", fmt.Sprintf("%s %d/5", v.labels.Level, clampProficiency(l.Proficiency)), Style{"font-style": "italic"}),
			).Keyed(entryKey(l.ID)))
		}
		return section(key, nil, title, rows...)
	case document.SectionAchievements:
		var entries []*Node
		for _, a := range v.doc.Achievements {
			entries = append(entries, El("div", Style{"margin-bottom": "8px"},
				Txt("h3", a.Title, Style{"font-size": "13px", "margin": "0"}),
				prose(a.Description, Style{"font-size": "13px", "margin": "2px 0 0 0"}),
			).Keyed(entryKey(a.ID)))
		}
		return section(key, nil, title, entries...)
	case document.SectionCourses:
		return section(key, nil, title, bullets(nonBlank(v.doc.Courses),
			Style{"display": "grid", "grid-template-columns": "1fr 1fr", "column-gap": "24px", "margin": "0", "padding-left": "18px", "font-size": "13px"},
			nil))
	}
	return nil
}
