package suggest

import (
	"maps"
	"slices"
	"strings"

	"github.com/bastiangx/hprompt/internal/utils"
	"github.com/bastiangx/hprompt/pkg/session"
)

// Candidate is a completion before ranking. Name is its identity.
type Candidate struct {
	Name string
	Desc string
}

const (
	maxValueDisplay = 16
	keepValueRunes  = 13
)

// generator produces the candidates of a context from the tables and the live session.
type generator struct {
	ctx    *session.Context
	tables *Tables
}

func (g *generator) generate(m Match) []Candidate {
	switch m.Kind {
	case KindRootCommands:
		out := generic(keys(g.tables.RootCommands), nil, descFrom(g.tables.RootCommands))
		out = append(out, g.actions()...)
		return append(out, g.concatMutations()...)
	case KindHeaderValues:
		return g.headerValues(m.Header)
	case KindPreview:
		return append(g.actions(), g.concatMutations()...)
	case KindConcatMutations:
		return g.concatMutations()
	case KindExistingBodyParams:
		params := g.ctx.BodyParams.Clone()
		params.Update(g.ctx.BodyJSONParams)
		return generic(params.Keys(), params, descText("Body parameter"))
	case KindExistingQuerystringParams:
		qs := g.ctx.QuerystringParams
		return generic(qs.Keys(), qs, descText("Querystring parameter"))
	case KindExistingHeaderNames:
		return generic(g.ctx.Headers.Keys(), g.ctx.Headers, descFrom(g.tables.HeaderNames))
	case KindExistingOptionNames:
		return generic(g.ctx.Options.Keys(), g.ctx.Options, descFrom(g.tables.OptionDescs()))
	case KindURLPaths:
		return g.urlPaths(m.Path)
	default:
		return nil
	}
}

func (g *generator) actions() []Candidate {
	return generic(keys(g.tables.Actions), nil, descFrom(g.tables.Actions))
}

func (g *generator) headerValues(header string) []Candidate {
	values := g.tables.HeaderValues[header]
	out := make([]Candidate, 0, len(values))
	for _, v := range values {
		out = append(out, Candidate{Name: v, Desc: header})
	}
	return out
}

func (g *generator) concatMutations() []Candidate {
	body, qs := g.ctx.BodyParams, g.ctx.QuerystringParams
	out := generic(body.Keys(), body, descText("Body parameter"))
	out = append(out, generic(qs.Keys(), qs, descText("Querystring parameter"))...)
	out = append(out, generic(keys(g.tables.HeaderNames), g.ctx.Headers, descFrom(g.tables.HeaderNames))...)
	return append(out, generic(keys(g.tables.Options), g.ctx.Options, descFrom(g.tables.OptionDescs()))...)
}

// urlPaths lists the directories under the current path with override applied.
// An absolute override starts from the root, a relative one is appended; the
// last, partially typed segment is dropped either way.
func (g *generator) urlPaths(override string) []Candidate {
	path := g.ctx.PathSegments()
	if override != "" {
		if strings.HasPrefix(override, "/") {
			path = nil
		}
		parts := strings.Split(override, "/")
		path = append(path, parts[:len(parts)-1]...)
	}

	var names []string
	for _, node := range g.ctx.Root.Ls(path...) {
		if node.IsDir() {
			names = append(names, node.Name)
		}
	}
	return generic(names, nil, descText("Endpoint"))
}

// generic sorts names and describes each one. Names present in values get
// their current value appended, or "(on)" for flags.
func generic(names []string, values *session.Params, desc func(string) string) []Candidate {
	names = slices.Clone(names)
	slices.Sort(names)

	out := make([]Candidate, 0, len(names))
	for _, name := range names {
		d := desc(name)
		if values != nil {
			if v, ok := values.Get(name); ok {
				if v.IsFlag() {
					d += " (on)"
				} else {
					d += " (=" + utils.Truncate(v.String(), maxValueDisplay, keepValueRunes) + ")"
				}
			}
		}
		out = append(out, Candidate{Name: name, Desc: d})
	}
	return out
}

func descText(s string) func(string) string {
	return func(string) string { return s }
}

// descFrom looks names up in table, unknown names get an empty description.
func descFrom(table map[string]string) func(string) string {
	return func(name string) string { return table[name] }
}

func keys[V any](m map[string]V) []string {
	return slices.Collect(maps.Keys(m))
}
