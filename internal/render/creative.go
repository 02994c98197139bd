package render

import (
	"strings"

	"resume-studio/internal/document"
)

// Creative is a main/sidebar template with a colored header band and hexagon decoration.
type Creative struct{}

var creativeLayout = mainSidebar("60%", "40%")

func (Creative) Name() document.Template { return document.TemplateCreative }

func (Creative) Layout() Layout { return creativeLayout }

func (Creative) Render(doc document.Document, labels Labels) *Tree {
	v := creativeView{doc: doc, labels: labels, theme: ResolveTheme(doc.Theme, bluePalette)}
	fixed := map[Region][]*Node{
		RegionMain: {v.summary()},
	}
	placed := Dispatch(creativeLayout, doc.SectionOrder, v.section)
	styles := map[Region]Style{
		RegionMain:    {"padding": "36px 28px 36px 40px", "gap": "26px"},
		RegionSidebar: {"padding": "36px 32px 36px 20px", "gap": "24px"},
	}
	return &Tree{
		Template:    document.TemplateCreative,
		Theme:       v.theme,
		Font:        "'Poppins', 'Inter', Arial, sans-serif",
		Header:      v.header(),
		Columns:     columns(creativeLayout, fixed, placed, styles),
		Decorations: []*Node{v.hexagon()},
	}
}

type creativeView struct {
	doc    document.Document
	labels Labels
	theme  document.Theme
}

func (v creativeView) hexagon() *Node {
	return El("div", Style{
		"position":         "absolute",
		"top":              "-60px",
		"right":            "-60px",
		"width":            "240px",
		"height":           "240px",
		"opacity":          "0.12",
		"clip-path":        "polygon(25% 0%, 75% 0%, 100% 50%, 75% 100%, 25% 100%, 0% 50%)",
		"background-color": v.theme.Background,
		"z-index":          "1",
	}).Keyed("decoration:hexagon")
}

func (v creativeView) header() *Node {
	info := v.doc.PersonalInfo
	contacts := El("div", Style{"display": "flex", "flex-wrap": "wrap", "gap": "6px 18px", "font-size": "12px", "margin-top": "14px"})
	for i, val := range contactValues(info, "email", "linkedin", "location") {
		contacts.Children = append(contacts.Children, Txt("span", val, Style{"opacity": "0.9"}).Keyed(itemKey(i)))
	}
	if len(contacts.Children) == 0 {
		contacts = nil
	}
	avatar := photo(info.PhotoURL, "110px", "4px solid "+tint(v.theme.Background, "80"))
	return El("header", Style{
		"position":         "relative",
		"display":          "flex",
		"align-items":      "center",
		"gap":              "28px",
		"padding":          "40px",
		"color":            v.theme.Background,
		"background-color": v.theme.Primary,
	},
		avatar,
		El("div", Style{"position": "relative", "z-index": "2"},
			Txt("h1", info.FullName, Style{"font-size": "34px", "font-weight": "800", "margin": "0"}),
			optional("div", info.Role, Style{"font-size": "16px", "font-weight": "500", "margin-top": "4px", "opacity": "0.9"}),
			contacts.Keyed("contacts"),
		),
	).Keyed("header")
}

func (v creativeView) heading(title string) *Node {
	return El("div", Style{"display": "flex", "align-items": "center", "gap": "10px", "margin-bottom": "12px"},
		El("span", Style{
			"width":            "12px",
			"height":           "12px",
			"clip-path":        "polygon(25% 0%, 75% 0%, 100% 50%, 75% 100%, 25% 100%, 0% 50%)",
			"background-color": v.theme.Primary,
		}),
		Txt("h2", strings.ToUpper(title), Style{
			"font-size":      "14px",
			"font-weight":    "700",
			"letter-spacing": "0.08em",
			"margin":         "0",
			"color":          v.theme.Accent,
		}),
	)
}

func (v creativeView) summary() *Node {
	if !hasSummary(v.doc.PersonalInfo) {
		return nil
	}
	return El("div", Style{
		"padding":          "16px",
		"border-radius":    "12px",
		"background-color": tint(v.theme.Primary, "0D"),
	},
		v.heading(v.labels.Summary),
		prose(v.doc.PersonalInfo.Summary, Style{"font-size": "12px", "line-height": "1.6", "margin": "0"}),
	).Keyed("summary")
}

func (v creativeView) section(key document.SectionKey) *Node {
	title := v.heading(v.labels.Section(key))
	switch key {
	case document.SectionExperience:
		var entries []*Node
		for _, e := range v.doc.Experiences {
			entries = append(entries, El("div", Style{
				"position":      "relative",
				"padding-left":  "18px",
				"margin-bottom": "16px",
				"border-left":   "2px solid " + tint(v.theme.Primary, "4D"),
			},
				El("span", Style{
					"position":         "absolute",
					"left":             "-6px",
					"top":              "4px",
					"width":            "10px",
					"height":           "10px",
					"border-radius":    "50%",
					"background-color": v.theme.Primary,
				}),
				Txt("h3", e.Title, Style{"font-size": "14px", "font-weight": "700", "margin": "0"}),
				optional("div", e.Company, Style{"font-size": "12px", "font-weight": "600", "color": v.theme.Primary}),
				optional("div", joinNonBlank(" | ", dateRange(e.StartDate, e.EndDate), e.Location), Style{"font-size": "11px", "color": "#6b7280"}),
				prose(e.Description, Style{"font-size": "12px", "line-height": "1.55", "margin": "6px 0 0 0"}),
			).Keyed(entryKey(e.ID)))
		}
		return section(key, nil, title, entries...)
	case document.SectionEducation:
		var entries []*Node
		for _, e := range v.doc.Education {
			entries = append(entries, El("div", Style{"margin-bottom": "10px"},
				Txt("h3", e.Degree, Style{"font-size": "13px", "font-weight": "700", "margin": "0"}),
				optional("div", e.School, Style{"font-size": "12px", "color": v.theme.Primary}),
				optional("div", dateRange(e.StartDate, e.EndDate), Style{"font-size": "11px", "color": "#6b7280"}),
			).Keyed(entryKey(e.ID)))
		}
		return section(key, nil, title, entries...)
	case document.SectionSkills:
		return section(key, nil, title, pills(nonBlank(v.doc.Skills), Style{
			"padding":          "4px 12px",
			"border-radius":    "999px",
			"font-size":        "11px",
			"font-weight":      "600",
			"color":            v.theme.Background,
			"background-color": v.theme.Primary,
		}))
	case document.SectionLanguages:
		var rows []*Node
		for _, l := range v.doc.Languages {
			rows = append(rows, El("div", Style{"margin-bottom": "10px"},
				Txt("div", l.Language, Style{"font-size": "12px", "font-weight": "600", "margin-bottom": "4px"}),
				bar(l.Proficiency, v.theme.Primary, tint(v.theme.Primary, "26")),
			).Keyed(entryKey(l.ID)))
		}
		return section(key, nil, title, rows...)
	case document.SectionAchievements:
		var entries []*Node
		for _, a := range v.doc.Achievements {
			entries = append(entries, El("div", Style{
				"padding":          "10px 12px",
				"border-radius":    "8px",
				"margin-bottom":    "8px",
				"background-color": tint(v.theme.Primary, "0D"),
			},
				Txt("h3", a.Title, Style{"font-size": "12px", "font-weight": "700", "margin": "0", "color": v.theme.Accent}),
				prose(a.Description, Style{"font-size": "11px", "margin": "2px 0 0 0"}),
			).Keyed(entryKey(a.ID)))
		}
		return section(key, nil, title, entries...)
	case document.SectionCourses:
		return section(key, nil, title, bullets(nonBlank(v.doc.Courses),
			Style{"margin": "0", "padding-left": "16px", "font-size": "12px"},
			Style{"margin-bottom": "4px"}))
	case document.SectionInterests:
		return section(key, nil, title, pills(nonBlank(v.doc.Interests), Style{
			"padding":       "4px 12px",
			"border-radius": "999px",
			"font-size":     "11px",
			"border":        "1px solid " + v.theme.Primary,
			"color":         v.theme.Primary,
		}))
	}
	return nil
}
