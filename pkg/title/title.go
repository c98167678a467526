// Package title parses, validates, and normalizes wiki page titles.
//
// A Title is an immutable value: namespace ID, db-key form of the base
// title, optional fragment, and optional interwiki prefix. The namespace
// prefix, leading colon, and fragment are factored out of the base title
// during parsing and never reappear in it.
package title

import "strings"

// Title is a parsed, canonical page title.
type Title struct {
	namespace      int
	dbkey          string
	fragment       string
	interwiki      string
	localInterwiki bool
	colon          bool

	names namespaceNamer
}

// namespaceNamer supplies display names for namespace IDs when rendering
// a title back to text.
type namespaceNamer interface {
	NamespaceName(id int) (string, bool)
}

// Namespace returns the namespace ID.
func (t *Title) Namespace() int { return t.namespace }

// DBKey returns the base title in db-key form (underscores for spaces),
// without namespace prefix, leading colon, or fragment.
func (t *Title) DBKey() string { return t.dbkey }

// Text returns the base title in display form (spaces for underscores).
func (t *Title) Text() string { return strings.ReplaceAll(t.dbkey, "_", " ") }

// Fragment returns the fragment (the part after '#'), or "".
func (t *Title) Fragment() string { return t.fragment }

// Interwiki returns the interwiki prefix, or "".
func (t *Title) Interwiki() string { return t.interwiki }

// IsLocalInterwiki reports whether a local interwiki prefix was absorbed
// while parsing this title.
func (t *Title) IsLocalInterwiki() bool { return t.localInterwiki }

// HadLeadingColon reports whether the source text carried an escaping
// leading colon (forcing main-namespace interpretation).
func (t *Title) HadLeadingColon() bool { return t.colon }

// IsExternal reports whether the title points at another wiki.
func (t *Title) IsExternal() bool { return t.interwiki != "" }

// IsSpecial reports whether the title is in the Special namespace.
func (t *Title) IsSpecial() bool { return t.namespace == -1 }

// namespacePrefix returns "Name:" for the title's namespace, or "" for main.
func (t *Title) namespacePrefix() string {
	if t.namespace == 0 || t.names == nil {
		return ""
	}
	name, ok := t.names.NamespaceName(t.namespace)
	if !ok || name == "" {
		return ""
	}
	return name + ":"
}

// PrefixedDBKey returns the canonical prefixed db-key, including the
// interwiki prefix when present. This is the string equality is defined on.
func (t *Title) PrefixedDBKey() string {
	var b strings.Builder
	if t.interwiki != "" {
		b.WriteString(t.interwiki)
		b.WriteByte(':')
	}
	b.WriteString(strings.ReplaceAll(t.namespacePrefix(), " ", "_"))
	b.WriteString(t.dbkey)
	return b.String()
}

// PrefixedText returns the display form of the prefixed title.
func (t *Title) PrefixedText() string {
	var b strings.Builder
	if t.interwiki != "" {
		b.WriteString(t.interwiki)
		b.WriteByte(':')
	}
	b.WriteString(t.namespacePrefix())
	b.WriteString(t.Text())
	return b.String()
}

// String returns the display form including the fragment, suitable for
// re-embedding in wikitext.
func (t *Title) String() string {
	s := t.PrefixedText()
	if t.fragment != "" {
		s += "#" + t.fragment
	}
	return s
}

// Equal reports whether two titles refer to the same page, ignoring
// fragments.
func (t *Title) Equal(other *Title) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.PrefixedDBKey() == other.PrefixedDBKey()
}

// EqualIncludingFragment reports whether two titles are equal including
// their fragments.
func (t *Title) EqualIncludingFragment(other *Title) bool {
	return t.Equal(other) && t.fragment == other.fragment
}
