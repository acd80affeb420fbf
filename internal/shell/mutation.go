package shell

import (
	"fmt"
	"strings"

	"github.com/bastiangx/hprompt/pkg/session"
	"github.com/bastiangx/hprompt/pkg/suggest"
)

// MutationKind tells which part of the request a mutation sets.
type MutationKind uint8

const (
	MutHeader MutationKind = iota
	MutQuery
	MutBody
	MutBodyJSON
	MutOption
)

// Mutation is one parsed request fragment such as name=John or Accept:text/html.
type Mutation struct {
	Kind  MutationKind
	Key   string
	Value session.Value
}

var separators = []struct {
	op   string
	kind MutationKind
}{
	// longer operators first so ":=" wins over ":" at the same offset
	{":=", MutBodyJSON},
	{"==", MutQuery},
	{"=", MutBody},
	{":", MutHeader},
}

// parseItem parses a key/value mutation. The earliest separator in the word wins.
func parseItem(word string) (Mutation, bool) {
	best := -1
	var found Mutation
	for _, sep := range separators {
		i := strings.Index(word, sep.op)
		if i <= 0 {
			continue
		}
		if best < 0 || i < best {
			best = i
			found = Mutation{
				Kind:  sep.kind,
				Key:   word[:i],
				Value: session.Text(word[i+len(sep.op):]),
			}
		}
	}
	return found, best > 0
}

// ParseMutations parses words into mutations. Options that take a value accept
// it either as --opt=value or as the following word.
func ParseMutations(words []string, tables *suggest.Tables) ([]Mutation, error) {
	var muts []Mutation
	for i := 0; i < len(words); i++ {
		w := words[i]
		if strings.HasPrefix(w, "--") {
			name, value, hasValue := strings.Cut(w, "=")
			switch {
			case hasValue:
				muts = append(muts, Mutation{Kind: MutOption, Key: name, Value: session.Text(value)})
			case tables.IsValueOption(name):
				if i+1 >= len(words) {
					return nil, fmt.Errorf("option %s requires a value", name)
				}
				i++
				muts = append(muts, Mutation{Kind: MutOption, Key: name, Value: session.Text(words[i])})
			default:
				muts = append(muts, Mutation{Kind: MutOption, Key: name, Value: session.Flag})
			}
			continue
		}
		m, ok := parseItem(w)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, w)
		}
		muts = append(muts, m)
	}
	return muts, nil
}

// ApplyAll stores every mutation on ctx. A querystring key repeated within
// muts keeps all of its values; the first occurrence replaces what ctx held.
func ApplyAll(ctx *session.Context, muts []Mutation) {
	seen := make(map[string]bool)
	for _, m := range muts {
		if m.Kind == MutQuery && seen[m.Key] {
			ctx.QuerystringParams.Add(m.Key, m.Value.String())
			continue
		}
		if m.Kind == MutQuery {
			seen[m.Key] = true
		}
		m.Apply(ctx)
	}
}

// Apply stores the mutation on ctx.
func (m Mutation) Apply(ctx *session.Context) {
	switch m.Kind {
	case MutHeader:
		ctx.Headers.Set(m.Key, m.Value)
	case MutQuery:
		ctx.QuerystringParams.Set(m.Key, m.Value)
	case MutBody:
		ctx.BodyParams.Set(m.Key, m.Value)
	case MutBodyJSON:
		ctx.BodyJSONParams.Set(m.Key, m.Value)
	case MutOption:
		ctx.Options.Set(m.Key, m.Value)
	}
}
