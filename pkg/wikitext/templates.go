package wikitext

import (
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/gowikitext/pkg/element"
	"github.com/yaklabco/gowikitext/pkg/sitecfg"
	"github.com/yaklabco/gowikitext/pkg/title"
)

// TemplateKind discriminates the three parses a {{...}} construct can take.
type TemplateKind int

const (
	// KindTemplate is a normal template invocation with a resolvable title.
	KindTemplate TemplateKind = iota

	// KindParserFunction is a magic-word invocation such as {{#if:...}}.
	KindParserFunction

	// KindRawTemplate wraps a construct whose title slot cannot be parsed.
	KindRawTemplate
)

// TemplateCall is one parsed {{...}} construct tied back to the buffer.
// Exactly one of Template, Function, Raw is non-nil, per Kind.
type TemplateCall struct {
	Kind     TemplateKind
	Template *element.Template
	Function *element.ParserFunction
	Raw      *element.RawTemplate

	// Text is the construct's full source slice.
	Text string

	// StartIndex and EndIndex bound the construct.
	StartIndex int
	EndIndex   int

	// NestLevel counts enclosing template constructs.
	NestLevel int

	// Skip marks constructs lying inside a no-parse region.
	Skip bool
}

// Stringify renders the construct as wikitext.
func (c *TemplateCall) Stringify(opts element.FormatOptions) string {
	switch c.Kind {
	case KindParserFunction:
		return c.Function.Stringify(opts)
	case KindRawTemplate:
		return c.Raw.Stringify(opts)
	default:
		return c.Template.Stringify(opts)
	}
}

func (c *TemplateCall) String() string { return c.Stringify(element.FormatOptions{}) }

// ParamList returns the construct's parameter collection, or nil for
// parser functions (their arguments are positional only).
func (c *TemplateCall) ParamList() *element.Params {
	switch c.Kind {
	case KindRawTemplate:
		return c.Raw.Params
	case KindTemplate:
		return c.Template.Params
	default:
		return nil
	}
}

// slot accumulates one pipe-delimited component of a template body. full
// holds the component verbatim; clean holds only the characters seen at
// capture depth outside covered ranges, which for the title component is
// the resolvable title text.
type slot struct {
	full  strings.Builder
	clean strings.Builder

	// eq is the offset in full of the key/value separator, -1 if none.
	eq int
}

func newSlot() *slot { return &slot{eq: -1} }

// templateScanner carries the cross-construct context a template scan
// needs: covered ranges, gallery pipe offsets, the parser-function table,
// and the title resolver.
type templateScanner struct {
	im           indexMap
	galleryPipes map[int]bool
	matcher      *sitecfg.FunctionMatcher
	resolver     *title.Resolver
}

// galleryPipeOffsets collects the absolute offsets of pipe characters
// inside gallery tag bodies. Such pipes separate image captions, not
// template parameters.
func galleryPipeOffsets(tags []*Tag) map[int]bool {
	pipes := make(map[int]bool)
	for _, t := range tags {
		if t.Name != "gallery" || t.Content == nil {
			continue
		}
		base := t.StartIndex + len(t.Start)
		for i, c := range *t.Content {
			if c == '|' {
				pipes[base+i] = true
			}
		}
	}
	return pipes
}

// scan walks text[from:] with an explicit brace-depth counter. Depth 2 is
// capture depth: pipes split components and the first bare = in a
// non-title component splits key from value. Deeper braces are accumulated
// verbatim and resolved by the per-construct inner rescan. A {{ with no
// matching close is dropped.
func (ts *templateScanner) scan(text string, nestLevel, from int) []*TemplateCall {
	var out []*TemplateCall

	depth := 0
	var start int
	var slots []*slot
	cur := func() *slot { return slots[len(slots)-1] }

	i := from
	for i < len(text) {
		if e, ok := ts.im[i]; ok {
			if depth >= 2 {
				cur().full.WriteString(e.text)
			}
			if nestLevel == 0 {
				if inner := e.text[e.innerStart:e.innerEnd]; strings.Contains(inner, "{{") && strings.Contains(inner, "}}") {
					padded, innerFrom := e.paddedInner(i)
					out = append(out, ts.scan(padded, nestLevel, innerFrom)...)
				}
			}
			i += len(e.text)
			continue
		}

		opening := strings.HasPrefix(text[i:], "{{")
		closing := strings.HasPrefix(text[i:], "}}")
		switch {
		case opening && depth == 0:
			depth = 2
			start = i
			slots = []*slot{newSlot()}
			i += 2

		case opening:
			// Not yet known to be a separate construct; accumulate raw.
			depth += 2
			cur().full.WriteString("{{")
			i += 2

		case closing && depth > 2:
			depth -= 2
			cur().full.WriteString("}}")
			i += 2

		case closing && depth == 2:
			i += 2
			out = append(out, ts.finish(text, start, i, slots, nestLevel)...)
			depth = 0
			slots = nil

		case depth == 2 && text[i] == '|' && !ts.galleryPipes[i]:
			slots = append(slots, newSlot())
			i++

		case depth == 2 && text[i] == '=' && len(slots) > 1 && cur().eq < 0:
			cur().eq = cur().full.Len()
			cur().full.WriteByte('=')
			i++

		case depth >= 2:
			cur().full.WriteByte(text[i])
			if depth == 2 {
				cur().clean.WriteByte(text[i])
			}
			i++

		default:
			i++
		}
	}
	return out
}

// finish classifies a completed capture. The tie-break order is fixed:
// parser-function first, template second, raw fallback last.
func (ts *templateScanner) finish(text string, start, end int, slots []*slot, nestLevel int) []*TemplateCall {
	call := &TemplateCall{
		Text:       text[start:end],
		StartIndex: start,
		EndIndex:   end,
		NestLevel:  nestLevel,
	}

	rawTitle := slots[0].full.String()
	cleanTitle := strings.TrimSpace(slots[0].clean.String())

	if fn := ts.asFunction(rawTitle, slots); fn != nil {
		call.Kind = KindParserFunction
		call.Function = fn
	} else if tpl := ts.asTemplate(cleanTitle, rawTitle, slots); tpl != nil {
		call.Kind = KindTemplate
		call.Template = tpl
	} else {
		call.Kind = KindRawTemplate
		call.Raw = &element.RawTemplate{Title: rawTitle, Params: slotParams(slots)}
	}

	out := []*TemplateCall{call}
	if inner := text[start+2 : end-2]; strings.Contains(inner, "{{") {
		padded := strings.Repeat("\x01", start+2) + inner
		out = append(out, ts.scan(padded, nestLevel+1, start+2)...)
	}
	return out
}

// asFunction matches the raw title slot against the parser-function table.
// The matched remainder is the function's first argument; later components
// become the remaining arguments verbatim.
func (ts *templateScanner) asFunction(rawTitle string, slots []*slot) *element.ParserFunction {
	trimmed := strings.TrimLeft(rawTitle, " \t\n")
	m, ok := ts.matcher.Match(trimmed)
	if !ok {
		return nil
	}
	lead := rawTitle[:len(rawTitle)-len(trimmed)]
	args := []string{m.Remainder}
	for _, s := range slots[1:] {
		args = append(args, s.full.String())
	}
	return &element.ParserFunction{
		Hook:    m.Canonical,
		RawHook: lead + m.Matched,
		Args:    args,
	}
}

var transclusionModifiers = []string{"subst:", "safesubst:"}

// asTemplate resolves the clean title in the Template namespace, honoring
// a transclusion modifier prefix.
func (ts *templateScanner) asTemplate(cleanTitle, rawTitle string, slots []*slot) *element.Template {
	modifier := ""
	for _, mod := range transclusionModifiers {
		if len(cleanTitle) >= len(mod) && strings.EqualFold(cleanTitle[:len(mod)], mod) {
			modifier = cleanTitle[:len(mod)]
			cleanTitle = cleanTitle[len(mod):]
			break
		}
	}
	t, ok := ts.resolver.TryParse(cleanTitle, title.WithDefaultNamespace(sitecfg.NSTemplate))
	if !ok {
		return nil
	}
	return &element.Template{
		Title:    t,
		RawTitle: rawTitle,
		Modifier: modifier,
		Params:   slotParams(slots),
	}
}

// slotParams converts the non-title components into an ordered parameter
// collection, numbering positional parameters from 1.
func slotParams(slots []*slot) *element.Params {
	params := element.NewParams()
	positional := 0
	for _, s := range slots[1:] {
		full := s.full.String()
		if s.eq >= 0 {
			params.AddParsed(full[:s.eq], full[s.eq+1:], full, false)
		} else {
			positional++
			params.AddParsed(strconv.Itoa(positional), full, full, true)
		}
	}
	return params
}

// sortCalls orders a scan result by position, outer constructs first.
func sortCalls(calls []*TemplateCall) {
	sort.SliceStable(calls, func(i, j int) bool {
		if calls[i].StartIndex != calls[j].StartIndex {
			return calls[i].StartIndex < calls[j].StartIndex
		}
		return calls[i].EndIndex > calls[j].EndIndex
	})
}
