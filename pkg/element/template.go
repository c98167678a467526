package element

import (
	"sort"
	"strings"

	"github.com/yaklabco/gowikitext/pkg/sitecfg"
	"github.com/yaklabco/gowikitext/pkg/title"
)

// FormatOptions controls wikitext serialization of constructs.
type FormatOptions struct {
	// CanonicalTitle renders the resolved, canonical title instead of the
	// raw spelling recovered from the source.
	CanonicalTitle bool

	// SortParams, when non-nil, orders parameters with the given
	// comparison instead of insertion order.
	SortParams func(a, b *Param) bool

	// BreakBefore, when non-nil, inserts a newline before each parameter
	// for which it returns true.
	BreakBefore func(p *Param) bool
}

// Template is a double-brace template invocation.
type Template struct {
	// Title is the resolved template title.
	Title *title.Title

	// RawTitle is the title slot exactly as written, including surrounding
	// whitespace and embedded markup. Empty for freshly built templates.
	RawTitle string

	// Modifier is a transclusion modifier such as "subst:" as written
	// before the title, or "".
	Modifier string

	// Params holds the ordered parameters.
	Params *Params
}

// NewTemplate creates a fresh template for the given title.
func NewTemplate(t *title.Title, hierarchies ...[]string) *Template {
	return &Template{Title: t, Params: NewParams(hierarchies...)}
}

// canonicalTemplateTitle renders a template title the way it is invoked:
// the Template namespace is implicit, the main namespace needs an escaping
// colon, and everything else keeps its prefix.
func canonicalTemplateTitle(t *title.Title) string {
	if t == nil {
		return ""
	}
	switch t.Namespace() {
	case sitecfg.NSTemplate:
		return t.Text()
	case sitecfg.NSMain:
		if t.IsExternal() {
			return t.PrefixedText()
		}
		return ":" + t.Text()
	default:
		return t.PrefixedText()
	}
}

// titleSlot picks the raw or canonical title per the options.
func (t *Template) titleSlot(opts FormatOptions) string {
	if !opts.CanonicalTitle && t.RawTitle != "" {
		return t.RawTitle
	}
	return t.Modifier + canonicalTemplateTitle(t.Title)
}

// renderParams serializes a parameter list honoring the options.
func renderParams(b *strings.Builder, params []*Param, opts FormatOptions) {
	if opts.SortParams != nil {
		sorted := make([]*Param, len(params))
		copy(sorted, params)
		sort.SliceStable(sorted, func(i, j int) bool {
			return opts.SortParams(sorted[i], sorted[j])
		})
		params = sorted
	}
	for _, p := range params {
		if opts.BreakBefore != nil && opts.BreakBefore(p) {
			b.WriteByte('\n')
		}
		b.WriteByte('|')
		b.WriteString(p.Text())
	}
}

// Stringify renders the template as wikitext. With zero options an
// unmutated parsed template reproduces its source bytes.
func (t *Template) Stringify(opts FormatOptions) string {
	var b strings.Builder
	b.WriteString("{{")
	b.WriteString(t.titleSlot(opts))
	renderParams(&b, t.Params.All(), opts)
	b.WriteString("}}")
	return b.String()
}

// String renders the template with default options.
func (t *Template) String() string { return t.Stringify(FormatOptions{}) }

// RawTemplate is a double-brace construct whose title could not be parsed.
// The literal title text is preserved losslessly.
type RawTemplate struct {
	// Title is the unparsable title slot exactly as written.
	Title string

	// Params holds the ordered parameters.
	Params *Params
}

// NewRawTemplate creates a raw template wrapping a literal title string.
func NewRawTemplate(rawTitle string) *RawTemplate {
	return &RawTemplate{Title: rawTitle, Params: NewParams()}
}

// Stringify renders the raw template as wikitext.
func (t *RawTemplate) Stringify(opts FormatOptions) string {
	var b strings.Builder
	b.WriteString("{{")
	b.WriteString(t.Title)
	renderParams(&b, t.Params.All(), opts)
	b.WriteString("}}")
	return b.String()
}

// String renders the raw template with default options.
func (t *RawTemplate) String() string { return t.Stringify(FormatOptions{}) }

// ParserFunction is a double-brace parser-function invocation such as
// {{#if:...|...}}.
type ParserFunction struct {
	// Hook is the canonical hook including the trailing colon, e.g. "#if:".
	Hook string

	// RawHook is the hook exactly as written, including any colon spacing
	// and case variance. Empty for freshly built functions.
	RawHook string

	// Args are the ordered arguments. The first argument is the text
	// following the hook's colon.
	Args []string
}

// NewParserFunction creates a fresh parser function for a canonical hook.
func NewParserFunction(hook string, args ...string) *ParserFunction {
	return &ParserFunction{Hook: hook, Args: args}
}

// Stringify renders the function as wikitext.
func (f *ParserFunction) Stringify(opts FormatOptions) string {
	hook := f.Hook
	if !opts.CanonicalTitle && f.RawHook != "" {
		hook = f.RawHook
	}
	var b strings.Builder
	b.WriteString("{{")
	b.WriteString(hook)
	for i, arg := range f.Args {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(arg)
	}
	b.WriteString("}}")
	return b.String()
}

// String renders the function with default options.
func (f *ParserFunction) String() string { return f.Stringify(FormatOptions{}) }
