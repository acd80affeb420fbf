package session

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strings"
)

var unsafeShellChars = regexp.MustCompile(`[^\w@%+=:,./-]`)

// ShellQuote quotes s for a POSIX shell when it contains anything outside the
// safe set.
func ShellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !unsafeShellChars.MatchString(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

// HTTPieArgs builds the argument list HTTPie would be invoked with:
// options, METHOD, URL, query items, body items, raw JSON items and headers.
// Each group is sorted by key.
func (c *Context) HTTPieArgs(method string) []string {
	var args []string
	for _, k := range c.Options.SortedKeys() {
		v, _ := c.Options.Get(k)
		args = append(args, k)
		if !v.IsFlag() {
			args = append(args, v.String())
		}
	}
	if method != "" {
		args = append(args, strings.ToUpper(method))
	}
	args = append(args, c.URL)
	return append(args, c.itemArgs()...)
}

func (c *Context) itemArgs() []string {
	var args []string
	for _, items := range c.itemsByKey() {
		args = append(args, items...)
	}
	return args
}

// itemsByKey returns one entry per key holding its items, one per value.
func (c *Context) itemsByKey() [][]string {
	var out [][]string
	groups := []struct {
		params *Params
		sep    string
	}{
		{c.QuerystringParams, "=="},
		{c.BodyParams, "="},
		{c.BodyJSONParams, ":="},
		{c.Headers, ":"},
	}
	for _, g := range groups {
		for _, k := range g.params.SortedKeys() {
			v, _ := g.params.Get(k)
			var items []string
			for _, item := range v.Values() {
				items = append(items, k+g.sep+item)
			}
			out = append(out, items)
		}
	}
	return out
}

func (c *Context) optionArgs() []string {
	var args []string
	for _, k := range c.Options.SortedKeys() {
		v, _ := c.Options.Get(k)
		if v.IsFlag() {
			args = append(args, k)
		} else {
			args = append(args, k+"="+v.String())
		}
	}
	return args
}

// FormatHTTPie renders the session as a single http command line.
func (c *Context) FormatHTTPie(method string) string {
	parts := []string{"http"}
	parts = append(parts, c.optionArgs()...)
	if method != "" {
		parts = append(parts, strings.ToUpper(method))
	}
	parts = append(parts, c.URL)
	parts = append(parts, c.itemArgs()...)
	return joinQuoted(parts)
}

// FormatPrompt renders the session as shell commands that recreate it.
// Values of a repeated key share a line so that replaying it keeps them all.
func (c *Context) FormatPrompt() string {
	var b strings.Builder
	for _, opt := range c.optionArgs() {
		b.WriteString(ShellQuote(opt))
		b.WriteByte('\n')
	}
	b.WriteString("cd " + ShellQuote(c.URL) + "\n")
	for _, items := range c.itemsByKey() {
		b.WriteString(joinQuoted(items))
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatCurl renders the session as a single curl command line.
func (c *Context) FormatCurl(method string) string {
	method = strings.ToUpper(method)
	if method == "" {
		method = "GET"
	}
	parts := []string{"curl"}
	if method != "GET" {
		parts = append(parts, "-X", method)
	}
	if v, ok := c.Options.Get("--verify"); ok && strings.EqualFold(v.String(), "no") {
		parts = append(parts, "-k")
	}
	if c.Options.Has("--follow") {
		parts = append(parts, "-L")
	}

	target := c.URL
	if c.QuerystringParams.Len() > 0 {
		q := url.Values{}
		for _, k := range c.QuerystringParams.SortedKeys() {
			v, _ := c.QuerystringParams.Get(k)
			for _, item := range v.Values() {
				q.Add(k, item)
			}
		}
		target += "?" + q.Encode()
	}
	parts = append(parts, target)

	for _, k := range c.Headers.SortedKeys() {
		v, _ := c.Headers.Get(k)
		parts = append(parts, "-H", k+": "+v.String())
	}

	if c.BodyParams.Len() > 0 || c.BodyJSONParams.Len() > 0 {
		if c.Options.Has("--form") {
			for _, k := range c.BodyParams.SortedKeys() {
				v, _ := c.BodyParams.Get(k)
				parts = append(parts, "--data-urlencode", k+"="+v.String())
			}
		} else {
			parts = append(parts, "-H", "Content-Type: application/json", "--data", c.jsonBody())
		}
	}
	return joinQuoted(parts)
}

// jsonBody merges string body params and raw JSON params into one object.
// Raw values that are not valid JSON are sent as strings.
func (c *Context) jsonBody() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	write := func(k string, raw []byte) {
		if !first {
			b.WriteString(", ")
		}
		first = false
		key, _ := json.Marshal(k)
		b.Write(key)
		b.WriteString(": ")
		b.Write(raw)
	}
	for _, k := range c.BodyParams.SortedKeys() {
		v, _ := c.BodyParams.Get(k)
		raw, _ := json.Marshal(v.String())
		write(k, raw)
	}
	for _, k := range c.BodyJSONParams.SortedKeys() {
		v, _ := c.BodyJSONParams.Get(k)
		raw := []byte(v.String())
		if !json.Valid(raw) {
			raw, _ = json.Marshal(v.String())
		}
		write(k, raw)
	}
	b.WriteByte('}')
	return b.String()
}

func joinQuoted(parts []string) string {
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = ShellQuote(p)
	}
	return strings.Join(quoted, " ")
}
