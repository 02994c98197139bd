package render

import (
	"strings"

	"resume-studio/internal/document"
)

// Elegant is a serif main/sidebar template with a tinted sidebar.
type Elegant struct{}

var elegantLayout = mainSidebar("62%", "38%")

func (Elegant) Name() document.Template { return document.TemplateElegant }

func (Elegant) Layout() Layout { return elegantLayout }

func (Elegant) Render(doc document.Document, labels Labels) *Tree {
	v := elegantView{doc: doc, labels: labels, theme: ResolveTheme(doc.Theme, emeraldPalette)}
	fixed := map[Region][]*Node{
		RegionMain:    {v.header(), v.summary()},
		RegionSidebar: {v.avatar(), v.contacts()},
	}
	placed := Dispatch(elegantLayout, doc.SectionOrder, v.section)
	styles := map[Region]Style{
		RegionMain:    {"padding": "48px 36px 48px 48px", "gap": "28px"},
		RegionSidebar: {"padding": "48px 32px", "gap": "26px", "background-color": tint(v.theme.Primary, "0D")},
	}
	return &Tree{
		Template: document.TemplateElegant,
		Theme:    v.theme,
		Font:     "'Playfair Display', Georgia, serif",
		Columns:  columns(elegantLayout, fixed, placed, styles),
	}
}

type elegantView struct {
	doc    document.Document
	labels Labels
	theme  document.Theme
}

func (v elegantView) heading(title string) *Node {
	return El("div", Style{"margin-bottom": "14px"},
		Txt("h2", title, Style{
			"font-size":   "18px",
			"font-weight": "600",
			"font-style":  "italic",
			"margin":      "0 0 6px 0",
			"color":       v.theme.Accent,
		}),
		El("div", Style{"width": "40px", "height": "1px", "background-color": v.theme.Primary}),
	)
}

func (v elegantView) header() *Node {
	info := v.doc.PersonalInfo
	return El("header", nil,
		Txt("h1", info.FullName, Style{
			"font-size":   "38px",
			"font-weight": "400",
			"margin":      "0",
			"line-height": "1.15",
			"color":       v.theme.Accent,
		}),
		optional("div", strings.ToUpper(info.Role), Style{
			"font-family":    "'Inter', Arial, sans-serif",
			"font-size":      "12px",
			"letter-spacing": "0.25em",
			"margin-top":     "10px",
			"color":          v.theme.Primary,
		}),
	).Keyed("header")
}

func (v elegantView) summary() *Node {
	if !hasSummary(v.doc.PersonalInfo) {
		return nil
	}
	return prose(v.doc.PersonalInfo.Summary, Style{
		"font-size":    "13px",
		"line-height":  "1.7",
		"margin":       "0",
		"padding-left": "16px",
		"border-left":  "2px solid " + tint(v.theme.Primary, "4D"),
	}).Keyed("summary")
}

func (v elegantView) avatar() *Node {
	img := photo(v.doc.PersonalInfo.PhotoURL, "120px", "3px solid "+v.theme.Primary)
	if img == nil {
		return nil
	}
	return El("div", Style{"display": "flex", "justify-content": "center"}, img)
}

func (v elegantView) contacts() *Node {
	values := contactValues(v.doc.PersonalInfo, "email", "phone", "linkedin", "location")
	if len(values) == 0 {
		return nil
	}
	list := El("div", Style{"display": "flex", "flex-direction": "column", "gap": "8px", "font-size": "12px"})
	for i, val := range values {
		list.Children = append(list.Children, Txt("div", val, Style{"word-break": "break-all"}).Keyed(itemKey(i)))
	}
	return El("div", nil, v.heading(v.labels.Contact), list).Keyed("contacts")
}

func (v elegantView) section(key document.SectionKey) *Node {
	title := v.heading(v.labels.Section(key))
	switch key {
	case document.SectionExperience:
		var entries []*Node
		for _, e := range v.doc.Experiences {
			entries = append(entries, El("div", Style{"margin-bottom": "18px"},
				Txt("h3", e.Title, Style{"font-size": "15px", "font-weight": "600", "margin": "0"}),
				El("div", Style{"display": "flex", "justify-content": "space-between", "font-size": "12px", "margin-top": "2px"},
					optional("span", e.Company, Style{"font-style": "italic", "color": v.theme.Primary}),
					optional("span", joinNonBlank(" · ", e.Location, dateRange(e.StartDate, e.EndDate)), Style{"color": "#6b7280"}),
				),
				prose(e.Description, Style{"font-size": "12px", "line-height": "1.6", "margin": "8px 0 0 0"}),
			).Keyed(entryKey(e.ID)))
		}
		return section(key, nil, title, entries...)
	case document.SectionEducation:
		var entries []*Node
		for _, e := range v.doc.Education {
			entries = append(entries, El("div", Style{"margin-bottom": "12px"},
				Txt("h3", e.Degree, Style{"font-size": "14px", "font-weight": "600", "margin": "0"}),
				optional("div", e.School, Style{"font-size": "12px", "font-style": "italic", "color": v.theme.Primary}),
				optional("div", dateRange(e.StartDate, e.EndDate), Style{"font-size": "11px", "color": "#6b7280"}),
			).Keyed(entryKey(e.ID)))
		}
		return section(key, nil, title, entries...)
	case document.SectionSkills:
		return section(key, nil, title, bullets(nonBlank(v.doc.Skills),
			Style{"list-style": "none", "margin": "0", "padding": "0", "font-size": "12px"},
			Style{"padding": "4px 0", "border-bottom": "1px solid " + tint(v.theme.Primary, "1A")}))
	case document.SectionLanguages:
		var rows []*Node
		for _, l := range v.doc.Languages {
			rows = append(rows, El("div", Style{"display": "flex", "justify-content": "space-between", "align-items": "center", "margin-bottom": "8px"},
				Txt("span", l.Language, Style{"font-size": "12px"}),
				dots(l.Proficiency, v.theme.Primary, tint(v.theme.Primary, "33")),
			).Keyed(entryKey(l.ID)))
		}
		return section(key, nil, title, rows...)
	case document.SectionAchievements:
		var entries []*Node
		for _, a := range v.doc.Achievements {
			entries = append(entries, El("div", Style{"margin-bottom": "10px"},
				Txt("h3", a.Title, Style{"font-size": "12px", "font-weight": "600", "margin": "0"}),
				prose(a.Description, Style{"font-size": "11px", "margin": "2px 0 0 0", "color": "#6b7280"}),
			).Keyed(entryKey(a.ID)))
		}
		return section(key, nil, title, entries...)
	case document.SectionCourses:
		return section(key, nil, title, bullets(nonBlank(v.doc.Courses),
			Style{"margin": "0", "padding-left": "16px", "font-size": "12px"},
			Style{"margin-bottom": "4px"}))
	case document.SectionInterests:
		return section(key, nil, title, optional("p", strings.Join(nonBlank(v.doc.Interests), " · "), Style{
			"font-size":  "12px",
			"font-style": "italic",
			"margin":     "0",
		}))
	}
	return nil
}
