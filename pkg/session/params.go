package session

import (
	"slices"
	"strings"

	orderedmap "github.com/pb33f/ordered-map/v2"
)

// Value is a parameter value. A Flag value marks an option that is present
// without an argument, such as --form. Querystring params may hold several
// values for the same key.
type Value struct {
	values []string
	flag   bool
}

// Flag is the "present, no value" marker used for boolean options.
var Flag = Value{flag: true}

// Text wraps a plain string value.
func Text(s string) Value {
	return Value{values: []string{s}}
}

// List wraps one or more values stored under a single key.
func List(values ...string) Value {
	return Value{values: slices.Clone(values)}
}

// IsFlag reports whether v is the Flag marker.
func (v Value) IsFlag() bool {
	return v.flag
}

// Values returns every value in insertion order. Flag has none.
func (v Value) Values() []string {
	return slices.Clone(v.values)
}

// Append returns v with s added after the existing values.
func (v Value) Append(s string) Value {
	if v.flag {
		return Text(s)
	}
	return Value{values: append(slices.Clip(v.values), s)}
}

func (v Value) String() string {
	return strings.Join(v.values, ", ")
}

// Params is an ordered mapping of unique keys to values. Keys keep the
// position of their first insertion, overwrites only change the value.
type Params struct {
	m *orderedmap.OrderedMap[string, Value]
}

// NewParams creates an empty mapping.
func NewParams() *Params {
	return &Params{m: orderedmap.New[string, Value]()}
}

// Set stores v under key.
func (p *Params) Set(key string, v Value) {
	p.m.Set(key, v)
}

// SetText stores a plain string under key.
func (p *Params) SetText(key, value string) {
	p.m.Set(key, Text(value))
}

// Add appends value to key, keeping the values already stored there.
func (p *Params) Add(key, value string) {
	if old, ok := p.m.Get(key); ok {
		p.m.Set(key, old.Append(value))
		return
	}
	p.m.Set(key, Text(value))
}

// Get returns the value stored under key.
func (p *Params) Get(key string) (Value, bool) {
	return p.m.Get(key)
}

// Has reports whether key is present.
func (p *Params) Has(key string) bool {
	_, ok := p.m.Get(key)
	return ok
}

// Delete removes key, returning whether it was present.
func (p *Params) Delete(key string) bool {
	_, ok := p.m.Delete(key)
	return ok
}

// Len returns the number of keys.
func (p *Params) Len() int {
	return p.m.Len()
}

// Keys returns the keys in insertion order.
func (p *Params) Keys() []string {
	keys := make([]string, 0, p.m.Len())
	for pair := p.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// SortedKeys returns the keys in lexicographic order.
func (p *Params) SortedKeys() []string {
	keys := p.Keys()
	slices.Sort(keys)
	return keys
}

// Update overwrites values of existing keys in place and appends new keys
// in the order they appear in other.
func (p *Params) Update(other *Params) {
	if other == nil {
		return
	}
	for pair := other.m.Oldest(); pair != nil; pair = pair.Next() {
		p.m.Set(pair.Key, pair.Value)
	}
}

// Clone returns an independent copy.
func (p *Params) Clone() *Params {
	c := NewParams()
	c.Update(p)
	return c
}

// Clear removes every key.
func (p *Params) Clear() {
	p.m = orderedmap.New[string, Value]()
}

// Map returns the mapping as a plain map of strings; flags map to "".
func (p *Params) Map() map[string]string {
	out := make(map[string]string, p.m.Len())
	for pair := p.m.Oldest(); pair != nil; pair = pair.Next() {
		out[pair.Key] = pair.Value.String()
	}
	return out
}
