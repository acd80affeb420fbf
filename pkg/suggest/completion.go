package suggest

import (
	"iter"

	"github.com/bastiangx/hprompt/internal/utils"
	"github.com/bastiangx/hprompt/pkg/session"
	"github.com/charmbracelet/log"
	orderedmap "github.com/pb33f/ordered-map/v2"
)

// Completion is a ranked suggestion. StartPosition is the negative rune length
// of the partial word it replaces.
type Completion struct {
	Text          string
	StartPosition int
	DisplayMeta   string
}

// Completer turns the text before the cursor into ranked completions, reading
// the live session on every call.
type Completer struct {
	ctx    *session.Context
	tables *Tables
	gen    generator
}

// NewCompleter creates a completer over ctx. A nil tables uses DefaultTables.
func NewCompleter(ctx *session.Context, tables *Tables) *Completer {
	if tables == nil {
		tables = DefaultTables()
	}
	return &Completer{
		ctx:    ctx,
		tables: tables,
		gen:    generator{ctx: ctx, tables: tables},
	}
}

// Tables returns the reference tables the completer draws from.
func (c *Completer) Tables() *Tables {
	return c.tables
}

// Complete returns the completions for text. The sequence is computed when
// iterated; a failure inside a pass is logged and yields nothing.
func (c *Completer) Complete(text string) iter.Seq[Completion] {
	return func(yield func(Completion) bool) {
		for _, comp := range c.pass(text) {
			if !yield(comp) {
				return
			}
		}
	}
}

// Suggest collects up to limit completions. A limit of zero or less returns all.
func (c *Completer) Suggest(text string, limit int) []Completion {
	var out []Completion
	for comp := range c.Complete(text) {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, comp)
	}
	return out
}

func (c *Completer) pass(text string) (out []Completion) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("Completion failed for %q: %v", text, r)
			out = nil
		}
	}()

	m, ok := Classify(text)
	if !ok {
		return nil
	}
	log.Debugf("Classified %q as %s, word %q", text, m.Kind, m.Word)

	candidates := dedupe(c.gen.generate(m))
	if len(candidates) == 0 {
		return nil
	}

	start := -utils.RuneLen(m.Word)
	for _, r := range rank(m.Word, candidates) {
		out = append(out, Completion{
			Text:          r.Name,
			StartPosition: start,
			DisplayMeta:   r.Desc,
		})
	}
	return out
}

// dedupe collapses candidates sharing a name: the first occurrence keeps its
// position, the last one supplies the description.
func dedupe(candidates []Candidate) []Candidate {
	seen := orderedmap.New[string, string](len(candidates))
	for _, c := range candidates {
		seen.Set(c.Name, c.Desc)
	}
	out := make([]Candidate, 0, seen.Len())
	for name, desc := range seen.FromOldest() {
		out = append(out, Candidate{Name: name, Desc: desc})
	}
	return out
}
