package element

// Stringifiable is implemented by every construct that can render itself
// back to wikitext.
type Stringifiable interface {
	Stringify(opts FormatOptions) string
	String() string
}

// ParamBearing is implemented by constructs that carry an ordered keyed
// parameter collection.
type ParamBearing interface {
	ParamList() *Params
}

// ParamList implements ParamBearing.
func (t *Template) ParamList() *Params { return t.Params }

// ParamList implements ParamBearing.
func (t *RawTemplate) ParamList() *Params { return t.Params }

var (
	_ Stringifiable = (*Template)(nil)
	_ Stringifiable = (*RawTemplate)(nil)
	_ Stringifiable = (*ParserFunction)(nil)
	_ Stringifiable = (*Wikilink)(nil)
	_ Stringifiable = (*FileWikilink)(nil)
	_ Stringifiable = (*RawWikilink)(nil)

	_ ParamBearing = (*Template)(nil)
	_ ParamBearing = (*RawTemplate)(nil)
)
