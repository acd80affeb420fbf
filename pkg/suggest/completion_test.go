package suggest

import (
	"reflect"
	"strings"
	"testing"

	"github.com/bastiangx/hprompt/pkg/session"
	"github.com/bastiangx/hprompt/pkg/urltree"
	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.FatalLevel)
}

func newTestCompleter() (*Completer, *session.Context) {
	ctx := session.New("http://localhost/things")
	ctx.BodyParams.SetText("name", "Jane Doe")
	return NewCompleter(ctx, nil), ctx
}

func texts(comps []Completion) []string {
	out := make([]string, 0, len(comps))
	for _, c := range comps {
		out = append(out, c.Text)
	}
	return out
}

func find(comps []Completion, text string) (Completion, bool) {
	for _, c := range comps {
		if c.Text == text {
			return c, true
		}
	}
	return Completion{}, false
}

func TestCompleteBodyParamAfterVerb(t *testing.T) {
	c, _ := newTestCompleter()
	comps := c.Suggest("post na", 0)
	if len(comps) == 0 {
		t.Fatal("expected suggestions")
	}
	first := comps[0]
	if first.Text != "name" {
		t.Errorf("expected 'name' first, got '%s' (all: %v)", first.Text, texts(comps))
	}
	if first.StartPosition != -2 {
		t.Errorf("expected start position -2, got %d", first.StartPosition)
	}
	if !strings.HasSuffix(first.DisplayMeta, "(=Jane Doe)") {
		t.Errorf("expected meta ending '(=Jane Doe)', got '%s'", first.DisplayMeta)
	}
}

func TestCompleteValueTruncation(t *testing.T) {
	testCases := []struct {
		description string
		value       string
		expected    string
	}{
		{"short value", "abc", "Body parameter (=abc)"},
		{"exactly sixteen", "abcdefghijklmnop", "Body parameter (=abcdefghijklmnop)"},
		{"seventeen", "abcdefghijklmnopq", "Body parameter (=abcdefghijklm...)"},
		{"multibyte", strings.Repeat("é", 20), "Body parameter (=" + strings.Repeat("é", 13) + "...)"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			ctx := session.New("http://localhost")
			ctx.BodyParams.SetText("token", tc.value)
			comp, ok := find(NewCompleter(ctx, nil).Suggest("post tok", 0), "token")
			if !ok {
				t.Fatal("expected token to be suggested")
			}
			if comp.DisplayMeta != tc.expected {
				t.Errorf("expected '%s', got '%s'", tc.expected, comp.DisplayMeta)
			}
		})
	}
}

func TestCompleteFlagOption(t *testing.T) {
	c, ctx := newTestCompleter()
	ctx.Options.Set("--form", session.Flag)
	ctx.Options.SetText("--style", "monokai")

	comps := c.Suggest("post --", 0)
	form, ok := find(comps, "--form")
	if !ok || !strings.HasSuffix(form.DisplayMeta, " (on)") {
		t.Errorf("expected --form marked (on), got %+v", form)
	}
	style, ok := find(comps, "--style")
	if !ok || !strings.HasSuffix(style.DisplayMeta, " (=monokai)") {
		t.Errorf("expected --style showing its value, got %+v", style)
	}
	if verbose, _ := find(comps, "--verbose"); strings.Contains(verbose.DisplayMeta, "(") {
		t.Errorf("unset option should carry only its purpose, got '%s'", verbose.DisplayMeta)
	}
}

func TestCompleteRootCommands(t *testing.T) {
	c, _ := newTestCompleter()

	comps := c.Suggest("Auth", 0)
	if len(comps) == 0 || comps[0].Text != "Authorization" {
		t.Errorf("expected Authorization first, got %v", texts(comps))
	}

	all := c.Suggest("", 0)
	for _, expected := range []string{"cd", "get", "name", "Accept", "--form"} {
		if _, ok := find(all, expected); !ok {
			t.Errorf("root commands should include '%s'", expected)
		}
	}
	got := texts(all)
	sorted := append([]string(nil), got...)
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1] > sorted[i] {
			t.Fatalf("empty word should keep lexicographic order, got %v", got)
		}
	}
}

func TestCompleteHeaderValues(t *testing.T) {
	c, _ := newTestCompleter()

	testCases := []struct {
		description string
		input       string
		expected    []string
	}{
		{"all values in table order", "Connection:", []string{"close", "keep-alive", "upgrade"}},
		{"filtered", "Connection:k", []string{"keep-alive"}},
		{"unknown header", "X-Foo:", nil},
		{"after verb", "get Pragma:", []string{"no-cache"}},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			comps := c.Suggest(tc.input, 0)
			got := texts(comps)
			if len(got) == 0 && len(tc.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Input '%s': expected %v, got %v", tc.input, tc.expected, got)
			}
			for _, comp := range comps {
				if comp.DisplayMeta == "" {
					t.Errorf("Input '%s': value '%s' should be described by its header", tc.input, comp.Text)
				}
			}
		})
	}
}

func TestCompleteExistingNames(t *testing.T) {
	c, ctx := newTestCompleter()
	ctx.Headers.SetText("Authorization", "ApiKey 1234")
	ctx.Headers.SetText("Accept", "text/html")
	ctx.QuerystringParams.SetText("page", "2")
	ctx.QuerystringParams.SetText("limit", "10")
	ctx.BodyJSONParams.SetText("tags", "[1, 2]")
	ctx.Options.Set("--form", session.Flag)

	testCases := []struct {
		description string
		input       string
		expected    []string
	}{
		{"headers only", "rm -h ", []string{"Accept", "Authorization"}},
		{"querystring", "rm -q ", []string{"limit", "page"}},
		{"body merges json", "rm -b ", []string{"name", "tags"}},
		{"options", "rm -o ", []string{"--form"}},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			got := texts(c.Suggest(tc.input, 0))
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Input '%s': expected %v, got %v", tc.input, tc.expected, got)
			}
		})
	}

	accept, _ := find(c.Suggest("rm -h ", 0), "Accept")
	if accept.DisplayMeta != "Acceptable response media type (=text/html)" {
		t.Errorf("unexpected Accept meta '%s'", accept.DisplayMeta)
	}
}

func TestCompleteURLPaths(t *testing.T) {
	ctx := session.New("http://localhost/api")
	ctx.Root.AddPath([]string{"api", "users", "{id}"}, urltree.Dir)
	ctx.Root.AddPath([]string{"api", "apps"}, urltree.Dir)
	ctx.Root.AddPath([]string{"api", "readme"}, urltree.Leaf)
	ctx.Root.AddPath([]string{"health"}, urltree.Dir)
	c := NewCompleter(ctx, nil)

	testCases := []struct {
		description string
		input       string
		expected    []string
	}{
		{"relative to current path", "cd ", []string{"apps", "users"}},
		{"leaves excluded", "ls ", []string{"apps", "users"}},
		{"partial segment", "cd u", []string{"users"}},
		{"relative append", "cd users/", []string{"{id}"}},
		{"absolute resets", "cd /", []string{"api", "health"}},
		{"absolute nested", "cd /api/a", []string{"apps"}},
		{"parent", "cd ../", []string{"api", "health"}},
		{"unknown path", "cd nope/", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			comps := c.Suggest(tc.input, 0)
			got := texts(comps)
			if len(got) == 0 && len(tc.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Input '%s': expected %v, got %v", tc.input, tc.expected, got)
			}
			for _, comp := range comps {
				if comp.DisplayMeta != "Endpoint" {
					t.Errorf("Input '%s': expected meta Endpoint, got '%s'", tc.input, comp.DisplayMeta)
				}
			}
		})
	}
}

func TestCompleteUnparseableURL(t *testing.T) {
	ctx := session.New("http://[::1")
	ctx.Root.AddPath([]string{"top"}, urltree.Dir)
	got := texts(NewCompleter(ctx, nil).Suggest("cd ", 0))
	if !reflect.DeepEqual(got, []string{"top"}) {
		t.Errorf("expected root listing, got %v", got)
	}
}

func TestCompleteSpecialCharacters(t *testing.T) {
	ctx := session.New("http://localhost")
	ctx.BodyParams.SetText("a.b", "1")
	ctx.BodyParams.SetText("axb", "2")
	c := NewCompleter(ctx, nil)

	if got := texts(c.Suggest("rm -b a.b", 0)); !reflect.DeepEqual(got, []string{"a.b"}) {
		t.Errorf("dot should be literal, got %v", got)
	}
	for _, input := range []string{"rm -b (", "rm -b [a-", "rm -b \\", "post *+?"} {
		if got := c.Suggest(input, 0); len(got) != 0 {
			t.Errorf("Input '%s': expected nothing, got %v", input, texts(got))
		}
	}
}

func TestCompleteNoMatch(t *testing.T) {
	c, _ := newTestCompleter()
	if got := c.Suggest("foo bar", 0); len(got) != 0 {
		t.Errorf("expected no suggestions, got %v", texts(got))
	}
}

func TestCompleteDeterministic(t *testing.T) {
	c, ctx := newTestCompleter()
	ctx.Headers.SetText("Accept", "text/html")
	for _, input := range []string{"", "post a", "rm -h ", "Accept:t", "cd "} {
		first := c.Suggest(input, 0)
		second := c.Suggest(input, 0)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("Input '%s': results differ between calls", input)
		}
	}
}

func TestCompleteReadsLiveSession(t *testing.T) {
	c, ctx := newTestCompleter()
	if _, ok := find(c.Suggest("rm -q ", 0), "page"); ok {
		t.Fatal("page should not be suggested before it is set")
	}
	ctx.QuerystringParams.SetText("page", "2")
	if _, ok := find(c.Suggest("rm -q ", 0), "page"); !ok {
		t.Error("page should be suggested once set")
	}
}

func TestCompleteRecoversFromPanic(t *testing.T) {
	c := NewCompleter(nil, nil)
	if got := c.Suggest("post ", 0); got != nil {
		t.Errorf("expected no suggestions after a failed pass, got %v", texts(got))
	}
}

func TestSuggestLimit(t *testing.T) {
	c, _ := newTestCompleter()
	if got := c.Suggest("", 3); len(got) != 3 {
		t.Errorf("expected 3 suggestions, got %d", len(got))
	}
}

func TestCompleteStopsEarly(t *testing.T) {
	c, _ := newTestCompleter()
	n := 0
	for range c.Complete("") {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("expected iteration to stop at 2, got %d", n)
	}
}

func TestDedupe(t *testing.T) {
	got := dedupe([]Candidate{
		{Name: "a", Desc: "first"},
		{Name: "b", Desc: "b"},
		{Name: "a", Desc: "last"},
	})
	expected := []Candidate{{Name: "a", Desc: "last"}, {Name: "b", Desc: "b"}}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestWithHeaderValues(t *testing.T) {
	tables := DefaultTables().WithHeaderValues(map[string][]string{
		"Connection": {"keep-alive", "Upgrade"},
		"X-Env":      {"prod", "dev"},
	})
	if got := tables.HeaderValues["Connection"]; !reflect.DeepEqual(got, []string{"Upgrade", "close", "keep-alive", "upgrade"}) {
		t.Errorf("merged Connection values: got %v", got)
	}
	if got := tables.HeaderValues["X-Env"]; !reflect.DeepEqual(got, []string{"dev", "prod"}) {
		t.Errorf("X-Env values: got %v", got)
	}
	if _, ok := tables.HeaderNames["X-Env"]; !ok {
		t.Error("configured header should become a known header name")
	}
	if _, ok := DefaultTables().HeaderValues["X-Env"]; ok {
		t.Error("DefaultTables should return a fresh copy")
	}
}

func BenchmarkComplete(b *testing.B) {
	ctx := session.New("http://localhost/api")
	for _, seg := range []string{"users", "apps", "orders", "items", "health"} {
		ctx.Root.AddPath([]string{"api", seg}, urltree.Dir)
	}
	ctx.Headers.SetText("Accept", "application/json")
	ctx.BodyParams.SetText("name", "Jane Doe")
	c := NewCompleter(ctx, nil)
	inputs := []string{"", "po", "post na", "post --f", "Accept:ap", "cd u", "rm -h "}

	b.ReportAllocs()
	for i := 0; b.Loop(); i++ {
		for range c.Complete(inputs[i%len(inputs)]) {
		}
	}
}
