// Package element defines the value objects the wikitext parser constructs:
// templates, parser functions, and wikilinks, together with their ordered
// parameter collections and wikitext serialization.
package element

import (
	"strconv"
	"strings"
)

// Param is a single template or function parameter.
type Param struct {
	// Key is the trimmed parameter name. Positional parameters carry
	// their 1-based index rendered as a string.
	Key string

	// Value is the parameter value. For parsed parameters this is the raw
	// value text; embedded markup is preserved verbatim.
	Value string

	// Unnamed marks a positional parameter written without "key=".
	Unnamed bool

	// text is the raw source slice between pipes, kept for byte-exact
	// serialization. Cleared whenever the parameter is mutated.
	text string
}

// Text returns the wikitext rendering of the parameter without its leading
// pipe. Unmutated parsed parameters reproduce their source bytes.
func (p *Param) Text() string {
	if p.text != "" {
		return p.text
	}
	if p.Unnamed {
		return p.Value
	}
	return p.Key + "=" + p.Value
}

// Params is an ordered-but-keyed parameter collection. Iteration follows
// insertion order; lookup is by trimmed key. Hierarchies declare groups of
// keys that alias one another, so that setting a named form overrides its
// positional twin instead of adding a duplicate.
type Params struct {
	order       []string
	byKey       map[string]*Param
	hierarchies [][]string
}

// NewParams creates an empty collection with the given alias hierarchies.
func NewParams(hierarchies ...[]string) *Params {
	return &Params{
		byKey:       make(map[string]*Param),
		hierarchies: hierarchies,
	}
}

// Hierarchies returns the alias groups this collection was created with.
func (ps *Params) Hierarchies() [][]string { return ps.hierarchies }

// Len returns the number of parameters.
func (ps *Params) Len() int { return len(ps.order) }

// Keys returns the keys in insertion order.
func (ps *Params) Keys() []string {
	out := make([]string, len(ps.order))
	copy(out, ps.order)
	return out
}

// Get returns the parameter for key, or nil.
func (ps *Params) Get(key string) *Param {
	return ps.byKey[strings.TrimSpace(key)]
}

// Has reports whether key is present.
func (ps *Params) Has(key string) bool { return ps.Get(key) != nil }

// All returns the parameters in insertion order.
func (ps *Params) All() []*Param {
	out := make([]*Param, 0, len(ps.order))
	for _, k := range ps.order {
		out = append(out, ps.byKey[k])
	}
	return out
}

// aliasOf returns the key already present that belongs to the same
// hierarchy group as key, or "".
func (ps *Params) aliasOf(key string) string {
	for _, group := range ps.hierarchies {
		inGroup := false
		for _, k := range group {
			if k == key {
				inGroup = true
				break
			}
		}
		if !inGroup {
			continue
		}
		for _, k := range group {
			if k != key && ps.byKey[k] != nil {
				return k
			}
		}
	}
	return ""
}

// Set adds or replaces the parameter for key. If an alias of key is already
// present (per the hierarchies), the alias entry is replaced in place, so
// for example setting "user" overrides an earlier "1".
func (ps *Params) Set(key, value string) {
	key = strings.TrimSpace(key)

	if existing := ps.byKey[key]; existing != nil {
		existing.Value = value
		existing.Unnamed = false
		existing.text = ""
		return
	}

	if alias := ps.aliasOf(key); alias != "" {
		p := ps.byKey[alias]
		delete(ps.byKey, alias)
		p.Key = key
		p.Value = value
		p.Unnamed = false
		p.text = ""
		ps.byKey[key] = p
		for i, k := range ps.order {
			if k == alias {
				ps.order[i] = key
				break
			}
		}
		return
	}

	p := &Param{Key: key, Value: value}
	ps.byKey[key] = p
	ps.order = append(ps.order, key)
}

// Add appends a positional parameter, assigning the next free numeric key.
func (ps *Params) Add(value string) *Param {
	n := 1
	for ps.byKey[strconv.Itoa(n)] != nil {
		n++
	}
	key := strconv.Itoa(n)
	p := &Param{Key: key, Value: value, Unnamed: true}
	ps.byKey[key] = p
	ps.order = append(ps.order, key)
	return p
}

// Delete removes the parameter for key, reporting whether it was present.
func (ps *Params) Delete(key string) bool {
	key = strings.TrimSpace(key)
	if ps.byKey[key] == nil {
		return false
	}
	delete(ps.byKey, key)
	for i, k := range ps.order {
		if k == key {
			ps.order = append(ps.order[:i], ps.order[i+1:]...)
			break
		}
	}
	return true
}

// addParsed records a parameter recovered by the parser, keeping its raw
// source text for byte-exact serialization. Duplicate keys follow wiki
// semantics: the later occurrence wins but keeps the original position.
func (ps *Params) addParsed(key, value, raw string, unnamed bool) *Param {
	key = strings.TrimSpace(key)
	if existing := ps.byKey[key]; existing != nil {
		existing.Value = value
		existing.Unnamed = unnamed
		existing.text = raw
		return existing
	}
	p := &Param{Key: key, Value: value, Unnamed: unnamed, text: raw}
	ps.byKey[key] = p
	ps.order = append(ps.order, key)
	return p
}

// AddParsed is the parser's entry point for recording a recovered
// parameter verbatim.
func (ps *Params) AddParsed(key, value, raw string, unnamed bool) *Param {
	return ps.addParsed(key, value, raw, unnamed)
}
