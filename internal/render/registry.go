package render

import "resume-studio/internal/document"

// Strategy renders a document through one visual template.
// Implementations must be pure: no mutation of the document and no state kept between calls.
type Strategy interface {
	Name() document.Template
	Layout() Layout
	Render(doc document.Document, labels Labels) *Tree
}

// Registry maps template names to strategies. Register is not safe for concurrent use;
// build the registry before serving.
type Registry struct {
	strategies map[document.Template]Strategy
	fallback   document.Template
}

// NewRegistry constructs an empty registry that falls back to the given template.
func NewRegistry(fallback document.Template) *Registry {
	return &Registry{
		strategies: make(map[document.Template]Strategy),
		fallback:   fallback,
	}
}

// DefaultRegistry holds the six built-in templates, falling back to modern.
func DefaultRegistry() *Registry {
	r := NewRegistry(document.TemplateModern)
	r.Register(Modern{})
	r.Register(Classic{})
	r.Register(Minimal{})
	r.Register(Professional{})
	r.Register(Elegant{})
	r.Register(Creative{})
	return r
}

// Register adds or replaces the strategy for its template name.
func (r *Registry) Register(s Strategy) {
	r.strategies[s.Name()] = s
}

// Lookup returns the strategy for t, or the fallback strategy when t is unknown.
func (r *Registry) Lookup(t document.Template) Strategy {
	if s, ok := r.strategies[t]; ok {
		return s
	}
	return r.strategies[r.fallback]
}

// Render renders doc with the strategy selected by doc.Template.
func (r *Registry) Render(doc document.Document, labels Labels) *Tree {
	return r.Lookup(doc.Template).Render(doc, labels)
}
