package render

import (
	"strings"

	"resume-studio/internal/document"
)

// Professional is the main/sidebar template with a full-width header.
type Professional struct{}

var professionalLayout = mainSidebar("65%", "35%")

func (Professional) Name() document.Template { return document.TemplateProfessional }

func (Professional) Layout() Layout { return professionalLayout }

func (Professional) Render(doc document.Document, labels Labels) *Tree {
	v := professionalView{doc: doc, labels: labels, theme: ResolveTheme(doc.Theme, navyPalette)}
	fixed := map[Region][]*Node{
		RegionMain: {v.summary()},
	}
	placed := Dispatch(professionalLayout, doc.SectionOrder, v.section)
	styles := map[Region]Style{
		RegionMain:    {"padding": "40px 32px 40px 40px", "gap": "26px"},
		RegionSidebar: {"padding": "32px", "gap": "24px", "border-left": "1px solid #f1f5f9", "background-color": v.theme.Background},
	}
	return &Tree{
		Template: document.TemplateProfessional,
		Theme:    v.theme,
		Font:     "'Inter', Arial, sans-serif",
		Header:   v.header(),
		Columns:  columns(professionalLayout, fixed, placed, styles),
	}
}

type professionalView struct {
	doc    document.Document
	labels Labels
	theme  document.Theme
}

func (v professionalView) header() *Node {
	info := v.doc.PersonalInfo
	contacts := El("div", Style{"display": "flex", "flex-wrap": "wrap", "gap": "8px 20px", "font-size": "12px"})
	for i, val := range contactValues(info, "email", "phone", "linkedin", "location") {
		contacts.Children = append(contacts.Children, El("span", Style{"display": "flex", "align-items": "center", "gap": "6px"},
			El("span", Style{"width": "6px", "height": "6px", "border-radius": "50%", "background-color": v.theme.Primary}),
			Txt("span", val, Style{"max-width": "220px", "overflow": "hidden", "text-overflow": "ellipsis"}),
		).Keyed(itemKey(i)))
	}
	if len(contacts.Children) == 0 {
		contacts = nil
	}
	return El("header", Style{
		"padding":       "40px 40px 28px 40px",
		"border-bottom": "4px solid " + v.theme.Primary,
	},
		Txt("h1", strings.ToUpper(info.FullName), Style{
			"font-size":   "36px",
			"font-weight": "700",
			"margin":      "0 0 8px 0",
			"color":       v.theme.Accent,
		}),
		optional("div", info.Role, Style{"font-size": "19px", "font-weight": "500", "margin-bottom": "14px", "color": v.theme.Primary}),
		contacts.Keyed("contacts"),
	).Keyed("header")
}

func (v professionalView) heading(title string) *Node {
	return Txt("h2", strings.ToUpper(title), Style{
		"font-size":      "14px",
		"font-weight":    "700",
		"letter-spacing": "0.1em",
		"margin":         "0 0 12px 0",
		"padding-bottom": "6px",
		"border-bottom":  "2px solid " + tint(v.theme.Primary, "33"),
		"color":          v.theme.Accent,
	})
}

func (v professionalView) summary() *Node {
	if !hasSummary(v.doc.PersonalInfo) {
		return nil
	}
	return El("div", nil,
		v.heading(v.labels.Summary),
		prose(v.doc.PersonalInfo.Summary, Style{"font-size": "13px", "line-height": "1.6", "margin": "0"}),
	).Keyed("summary")
}

func (v professionalView) section(key document.SectionKey) *Node {
	title := v.heading(v.labels.Section(key))
	switch key {
	case document.SectionExperience:
		var entries []*Node
		for _, e := range v.doc.Experiences {
			entries = append(entries, El("div", Style{"margin-bottom": "16px"},
				El("div", Style{"display": "flex", "justify-content": "space-between", "align-items": "baseline"},
					Txt("h3", e.Title, Style{"font-size": "15px", "font-weight": "700", "margin": "0", "color": v.theme.Primary}),
					optional("span", dateRange(e.StartDate, e.EndDate), Style{"font-size": "11px", "color": "#64748b"}),
				),
				optional("div", joinNonBlank(" | ", e.Company, e.Location), Style{"font-size": "13px", "font-weight": "600", "margin-bottom": "6px"}),
				prose(e.Description, Style{
					"font-size":    "12px",
					"line-height":  "1.55",
					"margin":       "0",
					"padding-left": "8px",
					"border-left":  "2px solid " + v.theme.Primary,
				}),
			).Keyed(entryKey(e.ID)))
		}
		return section(key, nil, title, entries...)
	case document.SectionEducation:
		var entries []*Node
		for _, e := range v.doc.Education {
			entries = append(entries, El("div", Style{"margin-bottom": "10px"},
				Txt("h3", e.School, Style{"font-size": "14px", "font-weight": "700", "margin": "0", "color": v.theme.Accent}),
				optional("div", e.Degree, Style{"font-size": "13px", "font-weight": "500", "color": v.theme.Primary}),
				optional("div", dateRange(e.StartDate, e.EndDate), Style{"font-size": "11px", "color": "#64748b"}),
			).Keyed(entryKey(e.ID)))
		}
		return section(key, nil, title, entries...)
	case document.SectionSkills:
		return section(key, nil, title, pills(nonBlank(v.doc.Skills), Style{
			"padding":          "2px 8px",
			"border-radius":    "4px",
			"font-size":        "10px",
			"font-weight":      "500",
			"border":           "1px solid " + tint(v.theme.Primary, "33"),
			"background-color": tint(v.theme.Primary, "0D"),
			"color":            v.theme.Primary,
		}))
	case document.SectionLanguages:
		var rows []*Node
		for _, l := range v.doc.Languages {
			rows = append(rows, El("div", Style{"margin-bottom": "8px"},
				Txt("div", l.Language, Style{"font-size": "12px", "font-weight": "600", "margin-bottom": "4px"}),
				bar(l.Proficiency, v.theme.Primary, "#e2e8f0"),
			).Keyed(entryKey(l.ID)))
		}
		return section(key, nil, title, rows...)
	case document.SectionAchievements:
		var entries []*Node
		for _, a := range v.doc.Achievements {
			entries = append(entries, El("div", Style{"position": "relative", "padding-left": "16px", "margin-bottom": "10px"},
				Txt("span", "★", Style{"position": "absolute", "left": "0", "top": "0", "font-size": "11px", "color": v.theme.Primary}),
				Txt("h3", a.Title, Style{"font-size": "12px", "font-weight": "700", "margin": "0"}),
				prose(a.Description, Style{"font-size": "11px", "margin": "2px 0 0 0", "color": "#64748b"}),
			).Keyed(entryKey(a.ID)))
		}
		return section(key, nil, title, entries...)
	case document.SectionCourses:
		return section(key, nil, title, bullets(nonBlank(v.doc.Courses),
			Style{"margin": "0", "padding-left": "16px", "font-size": "12px"},
			Style{"margin-bottom": "4px"}))
	case document.SectionInterests:
		return section(key, nil, title, pills(nonBlank(v.doc.Interests), Style{
			"padding":       "2px 8px",
			"border-radius": "4px",
			"font-size":     "11px",
			"border":        "1px solid #e2e8f0",
		}))
	}
	return nil
}
