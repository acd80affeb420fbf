// Package session holds the request state the shell accumulates across commands:
// the current URL, headers, query string, body and HTTPie options, plus the
// virtual URL tree used for navigation.
package session

import (
	"net/url"
	"strings"

	"github.com/bastiangx/hprompt/pkg/urltree"
)

// Context is the mutable session state. It has a single owner and is not safe
// for concurrent use.
type Context struct {
	URL               string
	Headers           *Params
	QuerystringParams *Params
	BodyParams        *Params
	BodyJSONParams    *Params
	Options           *Params
	Root              *urltree.Tree
}

// New creates a session for rawURL with an empty URL tree.
func New(rawURL string) *Context {
	return &Context{
		URL:               strings.TrimRight(rawURL, "/"),
		Headers:           NewParams(),
		QuerystringParams: NewParams(),
		BodyParams:        NewParams(),
		BodyJSONParams:    NewParams(),
		Options:           NewParams(),
		Root:              urltree.New(),
	}
}

// Copy returns a copy with independent mappings sharing the same URL tree.
func (c *Context) Copy() *Context {
	return &Context{
		URL:               c.URL,
		Headers:           c.Headers.Clone(),
		QuerystringParams: c.QuerystringParams.Clone(),
		BodyParams:        c.BodyParams.Clone(),
		BodyJSONParams:    c.BodyJSONParams.Clone(),
		Options:           c.Options.Clone(),
		Root:              c.Root,
	}
}

// Update replaces the URL with other's and merges every mapping.
func (c *Context) Update(other *Context) {
	if other.URL != "" {
		c.URL = other.URL
	}
	c.Headers.Update(other.Headers)
	c.QuerystringParams.Update(other.QuerystringParams)
	c.BodyParams.Update(other.BodyParams)
	c.BodyJSONParams.Update(other.BodyJSONParams)
	c.Options.Update(other.Options)
}

// Reset drops every mapping, keeping the URL and the tree.
func (c *Context) Reset() {
	c.Headers.Clear()
	c.QuerystringParams.Clear()
	c.BodyParams.Clear()
	c.BodyJSONParams.Clear()
	c.Options.Clear()
}

// PathSegments returns the path of the current URL split into segments.
// An unparseable URL yields the root.
func (c *Context) PathSegments() []string {
	u, err := url.Parse(c.URL)
	if err != nil {
		return nil
	}
	return urltree.SplitPath(u.Path)
}

// SetPath replaces the path of the current URL, keeping scheme and host.
func (c *Context) SetPath(segments []string) {
	u, err := url.Parse(c.URL)
	if err != nil {
		return
	}
	u.Path = "/" + strings.Join(segments, "/")
	u.RawPath = ""
	c.URL = strings.TrimRight(u.String(), "/")
}
