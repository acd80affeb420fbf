package suggest

import (
	"regexp"

	"github.com/bastiangx/hprompt/internal/utils"
)

// Kind is the grammatical context of the cursor.
type Kind uint8

const (
	KindNone Kind = iota
	KindHeaderValues
	KindConcatMutations
	KindPreview
	KindExistingBodyParams
	KindExistingHeaderNames
	KindExistingOptionNames
	KindExistingQuerystringParams
	KindURLPaths
	KindRootCommands
)

var kindNames = [...]string{
	KindNone:                      "none",
	KindHeaderValues:              "header_values",
	KindConcatMutations:           "concat_mutations",
	KindPreview:                   "preview",
	KindExistingBodyParams:        "existing_body_params",
	KindExistingHeaderNames:       "existing_header_names",
	KindExistingOptionNames:       "existing_option_names",
	KindExistingQuerystringParams: "existing_querystring_params",
	KindURLPaths:                  "urlpaths",
	KindRootCommands:              "root_commands",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Match is the classified context of one completion request.
type Match struct {
	Kind Kind
	// Header is the header name typed before the colon (KindHeaderValues).
	Header string
	// Path is the path typed after ls or cd (KindURLPaths).
	Path string
	// Word is the partial word the completion replaces.
	Word string
}

type rule struct {
	pattern *regexp.Regexp
	kind    Kind
}

// Tried in order, the first pattern found anywhere in the text wins.
var rules = []rule{
	{regexp.MustCompile(`((?:[^\s'"\\=:]|(?:\\.))+):((?:[^\s'"\\]|(?:\\.))*)$`), KindHeaderValues},
	{regexp.MustCompile(`(get|head|post|put|patch|delete|connect)\s+`), KindConcatMutations},
	{regexp.MustCompile(`(httpie|curl)\s+`), KindPreview},
	{regexp.MustCompile(`rm\s+\-b\s+`), KindExistingBodyParams},
	{regexp.MustCompile(`rm\s+\-h\s+`), KindExistingHeaderNames},
	{regexp.MustCompile(`rm\s+\-o\s+`), KindExistingOptionNames},
	{regexp.MustCompile(`rm\s+\-q\s+`), KindExistingQuerystringParams},
	// full path and its last segment: "/foo/bar" => "/foo/bar", "bar"
	{regexp.MustCompile(`(ls|cd)\s+(/?(?:[^/]+/)*([^/]*)/?)$`), KindURLPaths},
	{regexp.MustCompile(`^\s*[^\s]*$`), KindRootCommands},
}

// Classify returns the context of text, the input typed before the cursor.
// It reports false when no rule matches.
func Classify(text string) (Match, bool) {
	for _, r := range rules {
		groups := r.pattern.FindStringSubmatch(text)
		if groups == nil {
			continue
		}
		groups = groups[1:]

		m := Match{Kind: r.kind}
		if len(groups) > 1 {
			m.Word = groups[len(groups)-1]
		} else {
			m.Word = utils.LastWord(text)
		}
		switch r.kind {
		case KindHeaderValues:
			m.Header = groups[0]
		case KindURLPaths:
			m.Path = groups[1]
		}
		return m, true
	}
	return Match{}, false
}
