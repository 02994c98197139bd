package render

import (
	"strings"

	"resume-studio/internal/document"
)

// Modern is the two-column template with a profile column on the left.
type Modern struct{}

var modernLayout = Layout{
	Columns: []ColumnSpec{
		{Region: RegionLeft, Width: "35%"},
		{Region: RegionRight, Width: "65%"},
	},
	Regions: map[document.SectionKey]Region{
		document.SectionAchievements: RegionLeft,
		document.SectionCourses:      RegionLeft,
		document.SectionInterests:    RegionLeft,
		document.SectionExperience:   RegionRight,
		document.SectionEducation:    RegionRight,
		document.SectionSkills:       RegionRight,
		document.SectionLanguages:    RegionRight,
	},
}

func (Modern) Name() document.Template { return document.TemplateModern }

func (Modern) Layout() Layout { return modernLayout }

func (Modern) Render(doc document.Document, labels Labels) *Tree {
	v := modernView{doc: doc, labels: labels, theme: ResolveTheme(doc.Theme, emeraldPalette)}

	fixed := map[Region][]*Node{
		RegionLeft:  {v.avatar(), v.contacts(), v.summary()},
		RegionRight: {v.header()},
	}
	placed := Dispatch(modernLayout, doc.SectionOrder, v.section)
	styles := map[Region]Style{
		RegionLeft: {
			"padding":      "32px 24px 32px 32px",
			"gap":          "28px",
			"border-right": "1px solid #f3f4f6",
		},
		RegionRight: {
			"padding": "48px 32px 32px 24px",
			"gap":     "28px",
		},
	}
	return &Tree{
		Template: document.TemplateModern,
		Theme:    v.theme,
		Font:     "'Inter', 'Helvetica Neue', Arial, sans-serif",
		Columns:  columns(modernLayout, fixed, placed, styles),
	}
}

type modernView struct {
	doc    document.Document
	labels Labels
	theme  document.Theme
}

func (v modernView) heading(title string) *Node {
	return El("div", Style{"display": "flex", "align-items": "center", "gap": "8px", "margin-bottom": "12px"},
		El("span", Style{"width": "24px", "height": "3px", "background-color": v.theme.Primary}),
		Txt("h2", strings.ToUpper(title), Style{
			"font-size":      "13px",
			"letter-spacing": "0.12em",
			"font-weight":    "700",
			"color":          v.theme.Accent,
			"margin":         "0",
		}),
	)
}

func (v modernView) avatar() *Node {
	img := photo(v.doc.PersonalInfo.PhotoURL, "136px", "4px solid #ffffff")
	if img == nil {
		img = El("div", Style{
			"width":            "136px",
			"height":           "136px",
			"border-radius":    "50%",
			"background-color": "#e5e7eb",
		}).Keyed("photo")
	}
	blob := El("div", Style{
		"position":         "absolute",
		"inset":            "-12px",
		"border-radius":    "50%",
		"background-color": tint(v.theme.Primary, "1A"),
	})
	return El("div", Style{"position": "relative", "margin": "0 auto"}, blob,
		El("div", Style{"position": "relative"}, img))
}

func (v modernView) contacts() *Node {
	info := v.doc.PersonalInfo
	values := contactValues(info, "email", "phone", "linkedin", "location")
	if len(values) == 0 {
		return nil
	}
	list := El("div", Style{"display": "flex", "flex-direction": "column", "gap": "6px", "font-size": "12px"})
	for i, val := range values {
		list.Children = append(list.Children, Txt("div", val, Style{"word-break": "break-all"}).Keyed(itemKey(i)))
	}
	return El("div", nil, v.heading(v.labels.Contact), list).Keyed("contacts")
}

func (v modernView) summary() *Node {
	if !hasSummary(v.doc.PersonalInfo) {
		return nil
	}
	return El("div", nil,
		v.heading(v.labels.Summary),
		prose(v.doc.PersonalInfo.Summary, Style{"font-size": "12px", "line-height": "1.6", "margin": "0"}),
	).Keyed("summary")
}

func (v modernView) header() *Node {
	info := v.doc.PersonalInfo
	return El("header", Style{"margin-bottom": "8px"},
		Txt("h1", strings.ToUpper(info.FullName), Style{
			"font-size":      "34px",
			"font-weight":    "800",
			"letter-spacing": "0.02em",
			"color":          v.theme.Accent,
			"margin":         "0 0 10px 0",
		}),
		optional("span", info.Role, Style{
			"display":          "inline-block",
			"padding":          "4px 14px",
			"border-radius":    "999px",
			"font-size":        "12px",
			"font-weight":      "600",
			"color":            "#ffffff",
			"background-color": v.theme.Primary,
		}),
	).Keyed("header")
}

func (v modernView) section(key document.SectionKey) *Node {
	title := v.heading(v.labels.Section(key))
	switch key {
	case document.SectionExperience:
		var entries []*Node
		for _, e := range v.doc.Experiences {
			entries = append(entries, El("div", Style{"margin-bottom": "14px"},
				El("div", Style{"display": "flex", "justify-content": "space-between", "gap": "8px"},
					Txt("h3", e.Title, Style{"font-size": "14px", "font-weight": "700", "margin": "0"}),
					optional("span", dateRange(e.StartDate, e.EndDate), Style{"font-size": "11px", "color": v.theme.Primary, "white-space": "nowrap"}),
				),
				optional("div", joinNonBlank(" • ", e.Company, e.Location), Style{"font-size": "12px", "font-weight": "600", "color": "#6b7280"}),
				prose(e.Description, Style{"font-size": "12px", "line-height": "1.55", "margin": "6px 0 0 0"}),
			).Keyed(entryKey(e.ID)))
		}
		return section(key, nil, title, entries...)
	case document.SectionEducation:
		var entries []*Node
		for _, e := range v.doc.Education {
			entries = append(entries, El("div", Style{"margin-bottom": "10px"},
				Txt("h3", e.Degree, Style{"font-size": "13px", "font-weight": "700", "margin": "0"}),
				optional("div", e.School, Style{"font-size": "12px", "color": "#6b7280"}),
				optional("div", dateRange(e.StartDate, e.EndDate), Style{"font-size": "11px", "color": v.theme.Primary}),
			).Keyed(entryKey(e.ID)))
		}
		return section(key, nil, title, entries...)
	case document.SectionSkills:
		return section(key, nil, title, pills(nonBlank(v.doc.Skills), Style{
			"padding":          "3px 10px",
			"border-radius":    "999px",
			"font-size":        "11px",
			"background-color": tint(v.theme.Primary, "1A"),
			"color":            v.theme.Accent,
		}))
	case document.SectionLanguages:
		var rows []*Node
		for _, l := range v.doc.Languages {
			rows = append(rows, El("div", Style{"display": "flex", "justify-content": "space-between", "align-items": "center", "margin-bottom": "6px"},
				Txt("span", l.Language, Style{"font-size": "12px", "font-weight": "600"}),
				dots(l.Proficiency, v.theme.Primary, "#e5e7eb"),
			).Keyed(entryKey(l.ID)))
		}
		return section(key, nil, title, rows...)
	case document.SectionAchievements:
		var entries []*Node
		for _, a := range v.doc.Achievements {
			entries = append(entries, El("div", Style{"margin-bottom": "10px"},
				Txt("h3", a.Title, Style{"font-size": "12px", "font-weight": "700", "margin": "0"}),
				prose(a.Description, Style{"font-size": "11px", "margin": "2px 0 0 0", "color": "#6b7280"}),
			).Keyed(entryKey(a.ID)))
		}
		return section(key, nil, title, entries...)
	case document.SectionCourses:
		return section(key, nil, title, bullets(nonBlank(v.doc.Courses),
			Style{"margin": "0", "padding-left": "16px", "font-size": "12px"},
			Style{"margin-bottom": "4px"}))
	case document.SectionInterests:
		return section(key, nil, title, pills(nonBlank(v.doc.Interests), Style{
			"padding":       "3px 10px",
			"border-radius": "6px",
			"font-size":     "11px",
			"border":        "1px solid " + tint(v.theme.Primary, "4D"),
		}))
	}
	return nil
}

func joinNonBlank(sep string, parts ...string) string {
	return strings.Join(nonBlank(parts), sep)
}
