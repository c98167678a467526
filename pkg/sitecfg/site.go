// Package sitecfg holds the site-level configuration a wikitext parser needs:
// namespace tables, interwiki prefixes, magic words, the valid-tag registry,
// and the first-letter case remapping table. A Site is built once and treated
// as immutable for the lifetime of every parser that holds it.
package sitecfg

import (
	"fmt"
	"strings"
	"sync"
)

// Site is the resolved, lookup-ready form of a site configuration.
type Site struct {
	// Namespaces lists every namespace the site defines.
	Namespaces []Namespace

	// Interwikis lists every interwiki prefix the site recognizes.
	Interwikis []Interwiki

	// MagicWords lists the site's magic-word records. Only records flagged
	// as function hooks participate in parser-function classification.
	MagicWords []MagicWord

	// CaseOverrides maps a lowercase character to the uppercase form the
	// wiki platform uses where it diverges from naive case conversion.
	CaseOverrides map[string]string

	// SkipTags is the default list of tag names whose content must not be
	// interpreted as markup.
	SkipTags []string

	// CapitalLinks reports whether the first letter of a title is
	// automatically capitalized (true on most wikis).
	CapitalLinks bool

	// byName maps normalized namespace names and aliases to IDs.
	byName map[string]int
	// byID maps namespace IDs to their canonical record.
	byID map[int]*Namespace
	// byPrefix maps interwiki prefixes to their record.
	byPrefix map[string]*Interwiki

	matcherOnce sync.Once
	matcher     *FunctionMatcher
	matcherErr  error
}

// Build finalizes a Site by constructing its lookup indexes.
// It must be called once after the table fields are populated and before
// any lookup method is used. Build reports duplicate namespace names and
// duplicate interwiki prefixes as errors.
func (s *Site) Build() error {
	s.byName = make(map[string]int)
	s.byID = make(map[int]*Namespace)
	s.byPrefix = make(map[string]*Interwiki)

	for i := range s.Namespaces {
		ns := &s.Namespaces[i]
		if _, ok := s.byID[ns.ID]; ok {
			return fmt.Errorf("sitecfg: duplicate namespace id %d", ns.ID)
		}
		s.byID[ns.ID] = ns
		for _, name := range append([]string{ns.Name}, ns.Aliases...) {
			key := normalizeKey(name)
			if prev, ok := s.byName[key]; ok && prev != ns.ID {
				return fmt.Errorf("sitecfg: namespace name %q maps to both %d and %d", name, prev, ns.ID)
			}
			s.byName[key] = ns.ID
		}
	}

	for i := range s.Interwikis {
		iw := &s.Interwikis[i]
		key := normalizeKey(iw.Prefix)
		if _, ok := s.byPrefix[key]; ok {
			return fmt.Errorf("sitecfg: duplicate interwiki prefix %q", iw.Prefix)
		}
		s.byPrefix[key] = iw
	}

	return nil
}

// normalizeKey lowercases a namespace or interwiki name and folds
// underscores to spaces, the canonical lookup form.
func normalizeKey(name string) string {
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.TrimSpace(name)
	return strings.ToLower(name)
}

// NamespaceID resolves a namespace name or alias to its ID.
func (s *Site) NamespaceID(name string) (int, bool) {
	id, ok := s.byName[normalizeKey(name)]
	return id, ok
}

// NamespaceName returns the canonical display name for a namespace ID.
func (s *Site) NamespaceName(id int) (string, bool) {
	ns, ok := s.byID[id]
	if !ok {
		return "", false
	}
	return ns.Name, true
}

// Namespace returns the namespace record for an ID.
func (s *Site) Namespace(id int) (*Namespace, bool) {
	ns, ok := s.byID[id]
	return ns, ok
}

// Interwiki resolves an interwiki prefix.
func (s *Site) Interwiki(prefix string) (*Interwiki, bool) {
	iw, ok := s.byPrefix[normalizeKey(prefix)]
	return iw, ok
}

// Matcher returns the compiled parser-function matcher for this site.
// The matcher is built once from the magic-word table and cached; it is a
// pure function of the table, so repeated calls return the same matcher.
func (s *Site) Matcher() (*FunctionMatcher, error) {
	s.matcherOnce.Do(func() {
		s.matcher, s.matcherErr = NewFunctionMatcher(s.MagicWords)
	})
	return s.matcher, s.matcherErr
}
