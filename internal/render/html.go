package render

import (
	"bufio"
	"html"
	"io"
	"sort"
	"strings"
)

var voidTags = map[string]bool{
	"br": true, "hr": true, "img": true, "input": true, "meta": true, "link": true,
}

// WriteHTML serializes n as HTML. Attributes and style declarations are written in sorted
// order so identical trees produce identical bytes.
func WriteHTML(w io.Writer, n *Node) error {
	bw := bufio.NewWriter(w)
	writeNode(bw, n)
	return bw.Flush()
}

// HTML returns the serialized tree root.
func (t *Tree) HTML() string {
	var b strings.Builder
	_ = WriteHTML(&b, t.Root())
	return b.String()
}

func writeNode(w *bufio.Writer, n *Node) {
	if n == nil {
		return
	}
	tag := n.Tag
	if tag == "" {
		tag = "div"
	}
	w.WriteByte('<')
	w.WriteString(tag)
	if n.Key != "" {
		writeAttr(w, "data-key", n.Key)
	}
	for _, name := range sortedKeys(n.Attrs) {
		writeAttr(w, name, n.Attrs[name])
	}
	if css := StyleString(n.Style); css != "" {
		writeAttr(w, "style", css)
	}
	w.WriteByte('>')
	if voidTags[tag] {
		return
	}
	if n.Text != "" {
		w.WriteString(html.EscapeString(n.Text))
	}
	for _, c := range n.Children {
		writeNode(w, c)
	}
	w.WriteString("</")
	w.WriteString(tag)
	w.WriteByte('>')
}

func writeAttr(w *bufio.Writer, name, value string) {
	w.WriteByte(' ')
	w.WriteString(name)
	w.WriteString(`="`)
	w.WriteString(html.EscapeString(value))
	w.WriteByte('"')
}

// StyleString renders declarations as "k: v; k: v" in key order.
func StyleString(s Style) string {
	if len(s) == 0 {
		return ""
	}
	parts := make([]string, 0, len(s))
	for _, k := range sortedKeys(s) {
		if s[k] == "" {
			continue
		}
		parts = append(parts, k+": "+s[k])
	}
	return strings.Join(parts, "; ")
}

func sortedKeys[M ~map[string]string](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
