package render

import (
	"strings"

	"resume-studio/internal/document"
)

// Region is a fixed visual area of a template.
type Region string

const (
	RegionSingle  Region = "single"
	RegionMain    Region = "main"
	RegionSidebar Region = "sidebar"
	RegionLeft    Region = "left"
	RegionRight   Region = "right"
)

// Style is a set of CSS declarations.
type Style map[string]string

// Node is one element of the visual tree.
type Node struct {
	Tag      string
	Key      string
	Style    Style
	Attrs    map[string]string
	Text     string
	Children []*Node
}

// El builds an element, dropping nil children.
func El(tag string, style Style, children ...*Node) *Node {
	n := &Node{Tag: tag, Style: style}
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// Txt builds an element holding text.
func Txt(tag, text string, style Style) *Node {
	return &Node{Tag: tag, Text: text, Style: style}
}

// Keyed sets the node key and returns the node.
func (n *Node) Keyed(key string) *Node {
	if n != nil {
		n.Key = key
	}
	return n
}

// Attr sets an attribute and returns the node.
func (n *Node) Attr(name, value string) *Node {
	if n.Attrs == nil {
		n.Attrs = map[string]string{}
	}
	n.Attrs[name] = value
	return n
}

// Find returns the first node in depth-first order with the given key.
func (n *Node) Find(key string) *Node {
	if n == nil {
		return nil
	}
	if n.Key == key {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(key); found != nil {
			return found
		}
	}
	return nil
}

// Keys returns every non-empty key with the given prefix in depth-first order.
func (n *Node) Keys(prefix string) []string {
	var out []string
	var walk func(*Node)
	walk = func(cur *Node) {
		if cur == nil {
			return
		}
		if cur.Key != "" && strings.HasPrefix(cur.Key, prefix) {
			out = append(out, cur.Key)
		}
		for _, c := range cur.Children {
			walk(c)
		}
	}
	walk(n)
	return out
}

// TextContent concatenates the text of the node and its descendants.
func (n *Node) TextContent() string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*Node)
	walk = func(cur *Node) {
		if cur.Text != "" {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(cur.Text)
		}
		for _, c := range cur.Children {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// Column is one region of a rendered tree.
type Column struct {
	Region Region
	Width  string
	Style  Style
	Blocks []*Node
}

// Tree is the output of a template strategy.
type Tree struct {
	Template document.Template
	Theme    document.Theme
	Font     string
	// Header spans every column when set.
	Header      *Node
	Columns     []Column
	Decorations []*Node
}

// Column returns the column for region r, or nil.
func (t *Tree) Column(r Region) *Column {
	for i := range t.Columns {
		if t.Columns[i].Region == r {
			return &t.Columns[i]
		}
	}
	return nil
}

// Root flattens the tree into a single element.
func (t *Tree) Root() *Node {
	root := El("div", Style{
		"position":         "relative",
		"font-family":      t.Font,
		"color":            t.Theme.Text,
		"background-color": t.Theme.Background,
		"overflow":         "hidden",
	}).Keyed("tree:" + string(t.Template))
	root.Children = append(root.Children, t.Decorations...)
	if t.Header != nil {
		root.Children = append(root.Children, t.Header)
	}
	row := El("div", Style{"display": "flex", "align-items": "stretch"}).Keyed("columns")
	for _, col := range t.Columns {
		style := Style{
			"width":          col.Width,
			"box-sizing":     "border-box",
			"display":        "flex",
			"flex-direction": "column",
		}
		for k, v := range col.Style {
			style[k] = v
		}
		c := El("div", style, col.Blocks...).Keyed("region:" + string(col.Region))
		row.Children = append(row.Children, c)
	}
	root.Children = append(root.Children, row)
	return root
}
