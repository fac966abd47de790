// Package rendering projects CV records into presentation trees using interchangeable templates.
package rendering

import (
	"golang.org/x/net/html"

	"github.com/jonathan/cv-genie/internal/types"
)

// PreviewID is the element id of the rendered region handed to exporters
const PreviewID = "cv-preview"

// Template identifiers
const (
	TemplateProfessional = "professional"
	TemplateGradient     = "gradient"
	TemplateMinimalist   = "minimalist"
)

// Info describes a template for selection menus.
type Info struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Renderer projects a record into a presentation tree. Implementations are
// pure: the same record always yields the same tree. Sections without
// content must be left out of the tree entirely.
type Renderer interface {
	Info() Info
	Project(r types.Record) *html.Node
	Stylesheet() string
}

// Registry maps template identifiers to renderers. Lookups of an unknown
// identifier resolve to the default renderer.
type Registry struct {
	renderers map[string]Renderer
	order     []string
	defaultID string
}

// NewRegistry builds a registry whose first renderer is the default.
func NewRegistry(def Renderer, others ...Renderer) (*Registry, error) {
	if def == nil {
		return nil, &TemplateError{Message: "default renderer is required"}
	}

	reg := &Registry{
		renderers: make(map[string]Renderer),
		defaultID: def.Info().ID,
	}
	for _, r := range append([]Renderer{def}, others...) {
		id := r.Info().ID
		if id == "" {
			return nil, &TemplateError{Message: "renderer has empty id"}
		}
		if _, exists := reg.renderers[id]; exists {
			return nil, &TemplateError{TemplateID: id, Message: "registered twice"}
		}
		reg.renderers[id] = r
		reg.order = append(reg.order, id)
	}
	return reg, nil
}

// DefaultRegistry returns the built-in templates with "professional" as default.
func DefaultRegistry() *Registry {
	reg, err := NewRegistry(Professional(), Gradient(), Minimalist())
	if err != nil {
		// The built-in set is static; an error here is a programming mistake
		panic(err)
	}
	return reg
}

// DefaultID returns the identifier used for unknown lookups.
func (g *Registry) DefaultID() string {
	return g.defaultID
}

// Has reports whether id names a registered template.
func (g *Registry) Has(id string) bool {
	_, ok := g.renderers[id]
	return ok
}

// Resolve returns the renderer for id, or the default renderer.
func (g *Registry) Resolve(id string) Renderer {
	if r, ok := g.renderers[id]; ok {
		return r
	}
	return g.renderers[g.defaultID]
}

// ResolveID returns id when registered, otherwise the default id.
func (g *Registry) ResolveID(id string) string {
	return g.Resolve(id).Info().ID
}

// Templates lists the registered templates in registration order.
func (g *Registry) Templates() []Info {
	out := make([]Info, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.renderers[id].Info())
	}
	return out
}

// Render projects r with the template named id and wraps the result in the
// preview region:
//
//	<div id="cv-preview" data-template="professional">...</div>
//
// Unknown ids render with the default template, so the output for an
// unknown id is identical to the output for the default id.
func (g *Registry) Render(r types.Record, id string) *html.Node {
	renderer := g.Resolve(id)
	region := el("div", "cv-preview", renderer.Project(r))
	withAttr(region, "id", PreviewID)
	withAttr(region, "data-template", renderer.Info().ID)
	return region
}
