package render

import (
	"regexp"
	"strconv"
	"strings"

	"resume-studio/internal/document"
)

var schemePrefix = regexp.MustCompile(`^https?://`)

// displayLinkedIn strips the URL scheme for display.
func displayLinkedIn(raw string) string {
	return schemePrefix.ReplaceAllString(strings.TrimSpace(raw), "")
}

func nonBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s := strings.TrimSpace(it); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func clampProficiency(p int) int {
	if p < 1 {
		return 1
	}
	if p > 5 {
		return 5
	}
	return p
}

func dateRange(start, end string) string {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	switch {
	case start != "" && end != "":
		return start + " – " + end
	case start != "":
		return start
	default:
		return end
	}
}

// section wraps a heading and body under the section key. It returns nil when body is empty
// so that an empty section contributes no heading and no height.
func section(key document.SectionKey, style Style, heading *Node, body ...*Node) *Node {
	var kept []*Node
	for _, b := range body {
		if b != nil {
			kept = append(kept, b)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	n := El("section", style, heading.Keyed("heading"))
	n.Children = append(n.Children, kept...)
	return n.Keyed("section:" + string(key))
}

// optional returns a text node only when text is non-blank.
func optional(tag, text string, style Style) *Node {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return Txt(tag, text, style)
}

// prose renders multi-line text keeping line breaks.
func prose(text string, style Style) *Node {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	merged := Style{"white-space": "pre-line"}
	for k, v := range style {
		merged[k] = v
	}
	return Txt("p", text, merged)
}

func itemKey(i int) string {
	return "item:" + strconv.Itoa(i)
}

func entryKey(id string) string {
	return "entry:" + id
}

// dots renders proficiency as filled and empty circles out of five.
func dots(proficiency int, on, off string) *Node {
	p := clampProficiency(proficiency)
	row := El("div", Style{"display": "flex", "gap": "4px"})
	for i := 1; i <= 5; i++ {
		color := off
		if i <= p {
			color = on
		}
		row.Children = append(row.Children, El("span", Style{
			"display":          "inline-block",
			"width":            "8px",
			"height":           "8px",
			"border-radius":    "50%",
			"background-color": color,
		}))
	}
	return row.Keyed("proficiency:" + strconv.Itoa(p))
}

// bar renders proficiency as a filled track with width proficiency/5.
func bar(proficiency int, fill, track string) *Node {
	p := clampProficiency(proficiency)
	width := strconv.Itoa(p*20) + "%"
	return El("div", Style{
		"height":           "6px",
		"border-radius":    "3px",
		"background-color": track,
		"overflow":         "hidden",
	}, El("div", Style{"height": "100%", "width": width, "background-color": fill})).
		Keyed("proficiency:" + strconv.Itoa(p))
}

// pills renders each item as a rounded chip.
func pills(items []string, chip Style) *Node {
	if len(items) == 0 {
		return nil
	}
	row := El("div", Style{"display": "flex", "flex-wrap": "wrap", "gap": "6px"})
	for i, it := range items {
		row.Children = append(row.Children, Txt("span", it, chip).Keyed(itemKey(i)))
	}
	return row
}

// bullets renders items as a list.
func bullets(items []string, list, item Style) *Node {
	if len(items) == 0 {
		return nil
	}
	ul := El("ul", list)
	for i, it := range items {
		ul.Children = append(ul.Children, Txt("li", it, item).Keyed(itemKey(i)))
	}
	return ul
}

// contactValues returns the non-empty values among the requested contact fields.
func contactValues(info document.PersonalInfo, fields ...string) []string {
	var out []string
	for _, f := range fields {
		var v string
		switch f {
		case "email":
			v = info.Email
		case "phone":
			v = info.Phone
		case "linkedin":
			v = displayLinkedIn(info.LinkedIn)
		case "location":
			v = info.Location
		}
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func hasSummary(info document.PersonalInfo) bool {
	return strings.TrimSpace(info.Summary) != ""
}

func photo(url string, size string, border string) *Node {
	if strings.TrimSpace(url) == "" {
		return nil
	}
	return El("img", Style{
		"width":         size,
		"height":        size,
		"border-radius": "50%",
		"object-fit":    "cover",
		"border":        border,
	}).Attr("src", url).Attr("alt", "Profile").Keyed("photo")
}
