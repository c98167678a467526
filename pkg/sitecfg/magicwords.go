package sitecfg

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MagicWord is a single magic-word record as supplied by the site.
type MagicWord struct {
	Name          string   `yaml:"name"`
	Aliases       []string `yaml:"aliases,omitempty"`
	CaseSensitive bool     `yaml:"caseSensitive,omitempty"`

	// FunctionHook marks words that act as parser functions. Words without
	// the flag (plain variables like PAGENAME) never match as functions.
	FunctionHook bool `yaml:"functionHook,omitempty"`
}

// bareHookable lists the magic words that are legal parser-function hooks
// without the leading '#'. Everything else requires the hash.
var bareHookable = map[string]bool{
	"int": true, "msg": true, "msgnw": true, "raw": true,
	"subst": true, "safesubst": true,
	"ns": true, "nse": true,
	"localurl": true, "localurle": true,
	"fullurl": true, "fullurle": true,
	"canonicalurl": true, "canonicalurle": true,
	"filepath": true, "urlencode": true, "anchorencode": true,
	"lc": true, "lcfirst": true, "uc": true, "ucfirst": true,
	"formatnum": true, "grammar": true, "gender": true, "plural": true,
	"bidi": true, "padleft": true, "padright": true,
	"language": true, "displaytitle": true, "defaultsort": true,
	"pagesincategory": true, "pagesize": true,
	"protectionlevel": true, "protectionexpiry": true,
	"namespacee": true, "namespacenumber": true,
	"talkspace": true, "talkspacee": true,
	"subjectspace": true, "subjectspacee": true,
	"pagename": true, "pagenamee": true,
	"fullpagename": true, "fullpagenamee": true,
	"subpagename": true, "subpagenamee": true,
	"rootpagename": true, "rootpagenamee": true,
	"basepagename": true, "basepagenamee": true,
	"talkpagename": true, "talkpagenamee": true,
	"subjectpagename": true, "subjectpagenamee": true,
	"revisionid": true, "revisionday": true, "revisionday2": true,
	"revisionmonth": true, "revisionmonth1": true, "revisionyear": true,
	"revisiontimestamp": true, "revisionuser": true, "cascadingsources": true,
	"numberofpages": true, "numberofusers": true, "numberofactiveusers": true,
	"numberofarticles": true, "numberoffiles": true, "numberofadmins": true,
	"numberofedits": true,
}

// FunctionMatch is the result of matching a template title against the
// parser-function table.
type FunctionMatch struct {
	// Canonical is the canonical hook spelling including the trailing
	// colon, e.g. "#if:" or "formatnum:".
	Canonical string

	// Matched is the literal prefix of the title that matched, including
	// the colon.
	Matched string

	// Remainder is the text after the colon: the function's first argument.
	Remainder string
}

// FunctionMatcher classifies template titles as parser-function invocations.
// It is built once from the magic-word table; building is deterministic, so
// the same table always yields identical classification behavior.
type FunctionMatcher struct {
	entries []functionPattern
}

type functionPattern struct {
	canonical string
	re        *regexp.Regexp
}

// NewFunctionMatcher compiles a matcher from the given magic-word records.
// Records not flagged as function hooks are ignored.
func NewFunctionMatcher(words []MagicWord) (*FunctionMatcher, error) {
	m := &FunctionMatcher{}
	for _, w := range words {
		if !w.FunctionHook {
			continue
		}
		canonical := canonicalHook(w.Name)
		for _, alias := range append([]string{w.Name}, w.Aliases...) {
			pat, err := hookPattern(alias, w.CaseSensitive)
			if err != nil {
				return nil, fmt.Errorf("sitecfg: magic word %q: %w", w.Name, err)
			}
			m.entries = append(m.entries, functionPattern{canonical: canonical, re: pat})
		}
	}
	return m, nil
}

// canonicalHook returns the canonical invocation form of a hook name:
// hash-prefixed unless the name is legal bare, always with a trailing colon.
func canonicalHook(name string) string {
	base := strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(name, "#"), ":"))
	if bareHookable[base] {
		return base + ":"
	}
	return "#" + base + ":"
}

// hookPattern compiles the recognition pattern for one hook alias. The hash
// is optional for bare-hookable names and required otherwise; the first
// letter matches case-insensitively even for case-sensitive words; a colon
// must follow (appended to the alias if absent).
func hookPattern(alias string, caseSensitive bool) (*regexp.Regexp, error) {
	base := strings.TrimSuffix(strings.TrimPrefix(alias, "#"), ":")
	if base == "" {
		return nil, fmt.Errorf("empty hook alias %q", alias)
	}

	hash := `#`
	if bareHookable[strings.ToLower(base)] {
		hash = `#?`
	}

	var namePat string
	if caseSensitive {
		first, size := utf8.DecodeRuneInString(base)
		rest := base[size:]
		lower, upper := unicode.ToLower(first), unicode.ToUpper(first)
		if lower == upper {
			namePat = regexp.QuoteMeta(base)
		} else {
			namePat = "[" + regexp.QuoteMeta(string(upper)) + regexp.QuoteMeta(string(lower)) + "]" + regexp.QuoteMeta(rest)
		}
	} else {
		namePat = `(?i:` + regexp.QuoteMeta(base) + `)`
	}

	return regexp.Compile(`^` + hash + namePat + `[ \t]*:`)
}

// Match tests a trimmed template title against the table. Patterns are
// tried in table order; the first hit wins.
func (m *FunctionMatcher) Match(title string) (*FunctionMatch, bool) {
	for _, e := range m.entries {
		loc := e.re.FindStringIndex(title)
		if loc == nil {
			continue
		}
		return &FunctionMatch{
			Canonical: e.canonical,
			Matched:   title[:loc[1]],
			Remainder: title[loc[1]:],
		}, true
	}
	return nil, false
}
