package wikitext

import (
	"regexp"
	"strings"

	"github.com/yaklabco/gowikitext/pkg/sitecfg"
)

// Parameter is one {{{name|default}}} construct. The unlabelled form has a
// nil Default.
type Parameter struct {
	// Key is the trimmed parameter name.
	Key string

	// Default is the text after the first pipe, nil when no pipe is present.
	Default *string

	// Text is the construct's full source slice.
	Text string

	// StartIndex and EndIndex bound the construct.
	StartIndex int
	EndIndex   int

	// NestLevel counts enclosing parameter constructs.
	NestLevel int

	// Skip marks parameters lying inside a no-parse region.
	Skip bool
}

var parameterSeed = regexp.MustCompile(`(?s)\{\{\{.*?\}\}\}`)

// ScanParameters recovers every triple-brace parameter in text, including
// ones nested inside another parameter's default.
func ScanParameters(text string, tags []*Tag, skipNames []string) []*Parameter {
	if tags == nil {
		tags = ScanTags(text, skipNames)
	}
	if skipNames == nil {
		skipNames = sitecfg.DefaultSkipTags()
	}
	skips := buildSkipRanges(tags, skipNames)

	params := scanParametersAt(text, 0, len(text), 0)
	for _, p := range params {
		p.Skip = skips.containsStrict(p.StartIndex, p.EndIndex)
	}
	return params
}

// scanParametersAt scans text[from:to]. Offsets in the result are absolute.
func scanParametersAt(text string, from, to, nestLevel int) []*Parameter {
	var params []*Parameter
	pos := from
	for pos < to {
		loc := parameterSeed.FindStringIndex(text[pos:to])
		if loc == nil {
			break
		}
		s, e := pos+loc[0], pos+loc[1]

		// The lazy match stops at the first "}}}", which may belong to a
		// nested construct; repair by consuming the trailing brace run
		// until the candidate balances.
		deficit := strings.Count(text[s:e], "{") - strings.Count(text[s:e], "}")
		for deficit > 0 && e < to && text[e] == '}' {
			e++
			deficit--
		}

		params = append(params, newParameter(text, s, e, nestLevel))
		if inner := text[s+3 : e-3]; strings.Contains(inner, "{{{") {
			params = append(params, scanParametersAt(text, s+3, e-3, nestLevel+1)...)
		}
		pos = e
	}
	return params
}

func newParameter(text string, s, e, nestLevel int) *Parameter {
	inner := text[s+3 : e-3]
	p := &Parameter{
		Text:       text[s:e],
		StartIndex: s,
		EndIndex:   e,
		NestLevel:  nestLevel,
	}
	if pipe := strings.IndexByte(inner, '|'); pipe >= 0 {
		def := inner[pipe+1:]
		p.Key = strings.TrimSpace(inner[:pipe])
		p.Default = &def
	} else {
		p.Key = strings.TrimSpace(inner)
	}
	return p
}
