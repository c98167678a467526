// Package langdetect suggests language identifiers for syntaxhighlight and
// source tag bodies. It uses go-enry to classify the code, so a document
// healer can fill in a missing lang attribute.
package langdetect

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/gowikitext/pkg/wikitext"
)

// Fallback is returned when no language can be determined.
const Fallback = "text"

// classifier candidates, the languages commonly pasted into wiki pages.
var candidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript", "Ruby", "Rust",
	"Java", "C", "C++", "PHP", "Lua", "SQL", "JSON", "YAML", "XML",
	"HTML", "CSS",
}

// pattern shortcuts tried before the statistical classifier; each is a
// highly indicative marker for one language.
var patterns = []struct {
	lang  string
	match func(content []byte) bool
}{
	{"go", func(c []byte) bool {
		return bytes.HasPrefix(bytes.TrimSpace(c), []byte("package "))
	}},
	{"python", func(c []byte) bool {
		return bytes.Contains(c, []byte("def ")) && bytes.Contains(c, []byte("):")) ||
			bytes.Contains(c, []byte("__main__"))
	}},
	{"json", func(c []byte) bool {
		t := bytes.TrimSpace(c)
		return (bytes.HasPrefix(t, []byte("{")) || bytes.HasPrefix(t, []byte("["))) &&
			bytes.Contains(t, []byte(`"`))
	}},
	{"sql", func(c []byte) bool {
		t := strings.ToUpper(string(bytes.TrimSpace(c)))
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(t, kw) {
				return true
			}
		}
		return false
	}},
	{"rust", func(c []byte) bool {
		return bytes.Contains(c, []byte("fn main()")) || bytes.Contains(c, []byte("println!"))
	}},
	{"javascript", func(c []byte) bool {
		return bytes.Contains(c, []byte("console.log")) ||
			bytes.Contains(c, []byte("=>")) && bytes.Contains(c, []byte("const "))
	}},
	{"php", func(c []byte) bool {
		return bytes.Contains(c, []byte("<?php"))
	}},
}

// Detect returns the language identifier for a code snippet, or Fallback
// when nothing safe can be determined.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return Fallback
	}

	// A shebang is the most reliable signal.
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	for _, p := range patterns {
		if p.match(content) {
			return p.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		return normalize(lang)
	}
	return Fallback
}

var langAttr = regexp.MustCompile(`\blang\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s/>]+))`)

// TagLang extracts the lang attribute from a syntaxhighlight or source tag,
// or "" when the tag has none.
func TagLang(t *wikitext.Tag) string {
	m := langAttr.FindStringSubmatch(t.Start)
	if m == nil {
		return ""
	}
	for _, g := range m[1:] {
		if g != "" {
			return g
		}
	}
	return ""
}

// Suggest returns the language for a highlighting tag: the declared lang
// attribute when present, otherwise a detection over the tag body.
// detected reports whether the value came from detection.
func Suggest(t *wikitext.Tag) (lang string, detected bool) {
	if l := TagLang(t); l != "" {
		return l, false
	}
	if t.Content == nil {
		return Fallback, true
	}
	return Detect([]byte(*t.Content)), true
}

// normalize converts go-enry language names to lowercase identifiers the
// highlighter understands.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
