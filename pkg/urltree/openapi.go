package urltree

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNoPaths is returned when a document declares no paths to seed the tree with.
var ErrNoPaths = errors.New("openapi document has no paths")

type openAPIDocument struct {
	OpenAPI string               `yaml:"openapi"`
	Swagger string               `yaml:"swagger"`
	Paths   map[string]yaml.Node `yaml:"paths"`
}

// LoadOpenAPI reads an OpenAPI (or Swagger 2) document, YAML or JSON, and adds
// every declared path to the tree. Templated segments such as {id} are kept
// verbatim. It returns the number of paths added.
func (t *Tree) LoadOpenAPI(r io.Reader) (int, error) {
	var doc openAPIDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return 0, fmt.Errorf("decode openapi document: %w", err)
	}
	if len(doc.Paths) == 0 {
		return 0, ErrNoPaths
	}

	paths := make([]string, 0, len(doc.Paths))
	for p := range doc.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	added := 0
	for _, p := range paths {
		segments := SplitPath(p)
		if len(segments) == 0 {
			continue
		}
		t.AddPath(segments, Dir)
		added++
	}
	return added, nil
}

// SplitPath splits a URL path on slashes, dropping empty segments.
func SplitPath(path string) []string {
	var out []string
	for s := range strings.SplitSeq(path, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
