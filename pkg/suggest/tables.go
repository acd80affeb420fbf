package suggest

import (
	"maps"
	"slices"
)

// Option is an HTTPie option the shell knows about. Flag options take no value.
type Option struct {
	Name string
	Desc string
	Flag bool
}

// Tables holds the static reference data completions are drawn from.
// Built once at start and read-only afterwards.
type Tables struct {
	RootCommands map[string]string
	Actions      map[string]string
	Options      map[string]Option
	HeaderNames  map[string]string
	// HeaderValues lists the enumerated values of a header, sorted.
	HeaderValues map[string][]string
}

var rootCommands = map[string]string{
	"cd":     "Change URL/path",
	"clear":  "Clear console screen",
	"curl":   "Preview curl command",
	"env":    "Print environment",
	"exec":   "Clear and load environment from a file",
	"exit":   "Exit hprompt",
	"help":   "List commands, actions, and options",
	"httpie": "Preview HTTPie command",
	"ls":     "List available endpoints",
	"rm":     "Remove options or parameters",
	"source": "Load environment from a file",
}

var actions = map[string]string{
	"delete": "DELETE request",
	"get":    "GET request",
	"head":   "HEAD request",
	"patch":  "PATCH request",
	"post":   "POST request",
	"put":    "PUT request",
}

var options = []Option{
	{"--auth", "Username and password for authentication", false},
	{"--auth-type", "The authentication mechanism to be used", false},
	{"--body", "Print only the response body", true},
	{"--cert", "Client side SSL certificate", false},
	{"--cert-key", "Private key for the client side SSL certificate", false},
	{"--check-status", "Exit with an error on 3xx, 4xx and 5xx responses", true},
	{"--continue", "Resume an interrupted download", true},
	{"--download", "Download the body to a file", true},
	{"--follow", "Follow 30x Location redirects", true},
	{"--form", "Serialize data items as form fields", true},
	{"--headers", "Print only the response headers", true},
	{"--ignore-stdin", "Do not attempt to read stdin", true},
	{"--json", "Serialize data items as a JSON object", true},
	{"--max-redirects", "Maximum number of redirects to follow", false},
	{"--offline", "Build the request and print it without sending", true},
	{"--output", "Save output to a file", false},
	{"--pretty", "Control the processing of console outputs", false},
	{"--print", "String specifying what the output should contain", false},
	{"--proxy", "String mapping protocol to the URL of the proxy", false},
	{"--session", "Create, or reuse and update a session", false},
	{"--session-read-only", "Create or read a session without updating it", false},
	{"--stream", "Always stream the output by line", true},
	{"--style", "Output coloring style", false},
	{"--timeout", "The connection timeout of the request in seconds", false},
	{"--verbose", "Print the whole request as well as the response", true},
	{"--verify", "Set to \"no\" to skip checking the host's SSL certificate", false},
}

var headerNames = map[string]string{
	"Accept":              "Acceptable response media type",
	"Accept-Charset":      "Acceptable response charsets",
	"Accept-Encoding":     "Acceptable response content codings",
	"Accept-Language":     "Preferred natural languages in response",
	"Authorization":       "Authentication credentials",
	"Cache-Control":       "Directives for caches",
	"Connection":          "Connection options",
	"Content-Encoding":    "Content codings applied to the body",
	"Content-Length":      "Request body length",
	"Content-MD5":         "Base64 MD5 digest of the body",
	"Content-Type":        "Request body media type",
	"Cookie":              "Previously set cookies",
	"Date":                "Date and time the request was sent",
	"Expect":              "Expected server behaviors",
	"Forwarded":           "Proxy information",
	"From":                "Email of the user making the request",
	"Host":                "Target host and port",
	"If-Match":            "Request only if the entity tag matches",
	"If-Modified-Since":   "Request only if modified since a date",
	"If-None-Match":       "Request only if no entity tag matches",
	"If-Range":            "Range request condition",
	"If-Unmodified-Since": "Request only if not modified since a date",
	"Max-Forwards":        "Maximum number of proxy forwards",
	"Origin":              "Origin of a cross-origin request",
	"Pragma":              "Implementation-specific directives",
	"Proxy-Authorization": "Credentials for the proxy",
	"Range":               "Request only part of an entity",
	"Referer":             "Address of the previous page",
	"TE":                  "Acceptable transfer codings",
	"Upgrade":             "Protocols to switch to",
	"User-Agent":          "User agent string",
	"Via":                 "Intermediate proxies",
	"Warning":             "Possible problems with the message",
}

var mediaTypes = []string{
	"application/javascript",
	"application/json",
	"application/octet-stream",
	"application/pdf",
	"application/x-www-form-urlencoded",
	"application/xml",
	"application/zip",
	"image/gif",
	"image/jpeg",
	"image/png",
	"multipart/form-data",
	"text/css",
	"text/csv",
	"text/html",
	"text/plain",
	"text/xml",
}

var headerValues = map[string][]string{
	"Accept":          mediaTypes,
	"Accept-Charset":  {"iso-8859-1", "utf-16", "utf-8"},
	"Accept-Encoding": {"br", "compress", "deflate", "gzip", "identity"},
	"Cache-Control": {
		"max-age=0", "max-stale", "min-fresh", "no-cache", "no-store",
		"no-transform", "only-if-cached",
	},
	"Connection":       {"close", "keep-alive", "upgrade"},
	"Content-Encoding": {"br", "compress", "deflate", "gzip", "identity"},
	"Content-Type":     mediaTypes,
	"Expect":           {"100-continue"},
	"Pragma":           {"no-cache"},
	"TE":               {"compress", "deflate", "gzip", "trailers"},
}

// DefaultTables returns a fresh copy of the built-in tables.
func DefaultTables() *Tables {
	t := &Tables{
		RootCommands: maps.Clone(rootCommands),
		Actions:      maps.Clone(actions),
		Options:      make(map[string]Option, len(options)),
		HeaderNames:  maps.Clone(headerNames),
		HeaderValues: make(map[string][]string, len(headerValues)),
	}
	for _, o := range options {
		t.Options[o.Name] = o
	}
	for k, v := range headerValues {
		t.HeaderValues[k] = slices.Clone(v)
	}
	return t
}

// WithHeaderValues merges extra enumerated values into the header table.
// Unknown headers become known header names. Values stay sorted and unique.
func (t *Tables) WithHeaderValues(extra map[string][]string) *Tables {
	for name, values := range extra {
		merged := append(slices.Clone(t.HeaderValues[name]), values...)
		slices.Sort(merged)
		t.HeaderValues[name] = slices.Compact(merged)
		if _, ok := t.HeaderNames[name]; !ok {
			t.HeaderNames[name] = "Custom header"
		}
	}
	return t
}

// OptionDescs maps option names to their descriptions.
func (t *Tables) OptionDescs() map[string]string {
	out := make(map[string]string, len(t.Options))
	for name, o := range t.Options {
		out[name] = o.Desc
	}
	return out
}

// IsFlagOption reports whether name is a known option that takes no value.
func (t *Tables) IsFlagOption(name string) bool {
	o, ok := t.Options[name]
	return ok && o.Flag
}

// IsValueOption reports whether name is a known option that takes a value.
func (t *Tables) IsValueOption(name string) bool {
	o, ok := t.Options[name]
	return ok && !o.Flag
}
