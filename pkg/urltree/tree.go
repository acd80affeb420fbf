// Package urltree keeps the virtual URL hierarchy the shell navigates with cd and ls.
// Nodes live in a patricia trie keyed by their slash-terminated path.
package urltree

import (
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Kind tells whether a node is a path that can be entered or a leaf.
type Kind uint8

const (
	Leaf Kind = iota
	Dir
)

// Node is a direct child returned by Ls.
type Node struct {
	Name string
	Kind Kind
}

// IsDir reports whether the node can be entered with cd.
func (n Node) IsDir() bool {
	return n.Kind == Dir
}

// Tree is an in-memory URL tree. The zero value is not usable, call New.
type Tree struct {
	trie  *patricia.Trie
	nodes int
}

// New creates an empty tree holding only the root.
func New() *Tree {
	return &Tree{trie: patricia.NewTrie()}
}

// key builds the trie key of a node. Every segment is slash-terminated so a
// subtree walk never crosses into a sibling sharing a name prefix.
func key(segments []string) patricia.Prefix {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s)
		b.WriteByte('/')
	}
	return patricia.Prefix(b.String())
}

// AddPath inserts every node of segments. Intermediate nodes are directories,
// the last one gets kind. An existing leaf may be upgraded to a directory but a
// directory is never downgraded.
func (t *Tree) AddPath(segments []string, kind Kind) {
	clean := Resolve(nil, segments)
	for i := range clean {
		k := kind
		if i < len(clean)-1 {
			k = Dir
		}
		t.set(clean[:i+1], k)
	}
}

func (t *Tree) set(segments []string, kind Kind) {
	p := key(segments)
	if item := t.trie.Get(p); item != nil {
		if existing, ok := item.(Kind); ok && existing == Dir {
			return
		}
		t.trie.Set(p, kind)
		return
	}
	t.trie.Insert(p, kind)
	t.nodes++
}

// Ls lists the direct children of the node at segments, sorted by name.
// Unknown paths list nothing.
func (t *Tree) Ls(segments ...string) []Node {
	path := Resolve(nil, segments)
	prefix := key(path)

	var children []Node
	err := t.trie.VisitSubtree(prefix, func(p patricia.Prefix, item patricia.Item) error {
		rest := strings.TrimSuffix(string(p[len(prefix):]), "/")
		if rest == "" {
			return nil
		}
		if strings.Contains(rest, "/") {
			return patricia.SkipSubtree
		}
		kind, ok := item.(Kind)
		if !ok {
			log.Errorf("Unknown item type: %T for node %s", item, p)
			return nil
		}
		children = append(children, Node{Name: rest, Kind: kind})
		return patricia.SkipSubtree
	})
	if err != nil {
		log.Errorf("Error visiting url tree: %v", err)
		return nil
	}

	sort.Slice(children, func(i, j int) bool {
		return children[i].Name < children[j].Name
	})
	return children
}

// Len returns the number of nodes, not counting the root.
func (t *Tree) Len() int {
	return t.nodes
}

// Resolve applies segments to base the way a shell applies a relative path:
// empty and "." segments are skipped, ".." drops the last segment and never
// goes above the root.
func Resolve(base []string, segments []string) []string {
	out := make([]string, 0, len(base)+len(segments))
	out = append(out, base...)
	for _, s := range segments {
		switch s {
		case "", ".":
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		default:
			out = append(out, s)
		}
	}
	return out
}
