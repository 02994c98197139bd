package render

import "resume-studio/internal/document"

// ColumnSpec declares one region of a template and its width.
type ColumnSpec struct {
	Region Region
	Width  string
}

// Layout is a template's static column set and section-to-region table.
type Layout struct {
	Columns []ColumnSpec
	Regions map[document.SectionKey]Region
}

// RegionOf returns the region a section key resolves to.
func (l Layout) RegionOf(key document.SectionKey) (Region, bool) {
	r, ok := l.Regions[key]
	return r, ok
}

// singleColumn assigns every section key to one full-width region.
func singleColumn() Layout {
	regions := make(map[document.SectionKey]Region, len(document.SectionKeys))
	for _, k := range document.SectionKeys {
		regions[k] = RegionSingle
	}
	return Layout{
		Columns: []ColumnSpec{{Region: RegionSingle, Width: "100%"}},
		Regions: regions,
	}
}

// mainSidebar puts experience and education in the main column and everything else in the sidebar.
func mainSidebar(mainWidth, sidebarWidth string) Layout {
	regions := make(map[document.SectionKey]Region, len(document.SectionKeys))
	for _, k := range document.SectionKeys {
		regions[k] = RegionSidebar
	}
	regions[document.SectionExperience] = RegionMain
	regions[document.SectionEducation] = RegionMain
	return Layout{
		Columns: []ColumnSpec{
			{Region: RegionMain, Width: mainWidth},
			{Region: RegionSidebar, Width: sidebarWidth},
		},
		Regions: regions,
	}
}

// SectionFunc renders one section, returning nil when the section has nothing to show.
type SectionFunc func(key document.SectionKey) *Node

// Dispatch walks order and places each rendered section into its region.
// Unknown or repeated keys and sections that render nothing are skipped.
func Dispatch(layout Layout, order []string, render SectionFunc) map[Region][]*Node {
	placed := make(map[Region][]*Node, len(layout.Columns))
	seen := make(map[document.SectionKey]struct{}, len(order))
	for _, raw := range order {
		key, ok := document.ParseSectionKey(raw)
		if !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		region, ok := layout.RegionOf(key)
		if !ok {
			continue
		}
		if block := render(key); block != nil {
			placed[region] = append(placed[region], block)
		}
	}
	return placed
}

// columns builds the tree columns: fixed blocks first, then dispatched sections.
func columns(layout Layout, fixed, placed map[Region][]*Node, styles map[Region]Style) []Column {
	out := make([]Column, 0, len(layout.Columns))
	for _, col := range layout.Columns {
		var blocks []*Node
		for _, b := range fixed[col.Region] {
			if b != nil {
				blocks = append(blocks, b)
			}
		}
		blocks = append(blocks, placed[col.Region]...)
		out = append(out, Column{
			Region: col.Region,
			Width:  col.Width,
			Style:  styles[col.Region],
			Blocks: blocks,
		})
	}
	return out
}
