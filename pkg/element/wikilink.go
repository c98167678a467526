package element

import (
	"strings"

	"github.com/yaklabco/gowikitext/pkg/sitecfg"
	"github.com/yaklabco/gowikitext/pkg/title"
)

// canonicalLinkTitle renders a link title the way it is written in a link:
// file and category links in their direct form need no escaping colon; a
// fresh title used as a plain link target renders prefixed.
func canonicalLinkTitle(t *title.Title, escape bool) string {
	if t == nil {
		return ""
	}
	s := t.PrefixedText()
	if t.Fragment() != "" {
		s += "#" + t.Fragment()
	}
	if escape || t.HadLeadingColon() {
		s = ":" + s
	}
	return s
}

// Wikilink is a double-bracket link to a page, with optional display text.
type Wikilink struct {
	// Title is the resolved link target.
	Title *title.Title

	// RawTitle is the title part exactly as written. Empty for freshly
	// built links.
	RawTitle string

	// Display is the text after the pipe, or nil when the link has none.
	Display *string
}

// NewWikilink creates a fresh link to the given title.
func NewWikilink(t *title.Title) *Wikilink {
	return &Wikilink{Title: t}
}

// SetDisplay sets the display text. An empty string is a legal display
// (the "pipe trick" form); use ClearDisplay to remove it.
func (w *Wikilink) SetDisplay(text string) {
	w.Display = &text
}

// ClearDisplay removes the display text.
func (w *Wikilink) ClearDisplay() { w.Display = nil }

// titleSlot picks the raw or canonical title per the options.
func (w *Wikilink) titleSlot(opts FormatOptions) string {
	if !opts.CanonicalTitle && w.RawTitle != "" {
		return w.RawTitle
	}
	// A category or file link needs an escaping colon to render as a
	// plain link rather than take its namespace-specific effect.
	escape := w.Title != nil &&
		(w.Title.Namespace() == sitecfg.NSFile || w.Title.Namespace() == sitecfg.NSCategory)
	return canonicalLinkTitle(w.Title, escape)
}

// Stringify renders the link as wikitext.
func (w *Wikilink) Stringify(opts FormatOptions) string {
	var b strings.Builder
	b.WriteString("[[")
	b.WriteString(w.titleSlot(opts))
	if w.Display != nil {
		b.WriteByte('|')
		b.WriteString(*w.Display)
	}
	b.WriteString("]]")
	return b.String()
}

// String renders the link with default options.
func (w *Wikilink) String() string { return w.Stringify(FormatOptions{}) }

// FileWikilink is a double-bracket link into the File namespace. Its
// right-hand side is an ordered parameter list (thumb, sizes, alignment,
// caption), not display text.
type FileWikilink struct {
	// Title is the resolved file title.
	Title *title.Title

	// RawTitle is the title part exactly as written.
	RawTitle string

	// Params are the raw file parameters in source order.
	Params []string
}

// NewFileWikilink creates a fresh file link.
func NewFileWikilink(t *title.Title, params ...string) *FileWikilink {
	return &FileWikilink{Title: t, Params: params}
}

// Stringify renders the file link as wikitext.
func (w *FileWikilink) Stringify(opts FormatOptions) string {
	var b strings.Builder
	b.WriteString("[[")
	if !opts.CanonicalTitle && w.RawTitle != "" {
		b.WriteString(w.RawTitle)
	} else {
		b.WriteString(canonicalLinkTitle(w.Title, false))
	}
	for _, p := range w.Params {
		b.WriteByte('|')
		b.WriteString(p)
	}
	b.WriteString("]]")
	return b.String()
}

// String renders the file link with default options.
func (w *FileWikilink) String() string { return w.Stringify(FormatOptions{}) }

// RawWikilink is a double-bracket construct whose title could not be
// resolved. The literal text is preserved losslessly.
type RawWikilink struct {
	// Title is the unparsable title part exactly as written.
	Title string

	// Display is the text after the pipe, or nil.
	Display *string
}

// Stringify renders the raw link as wikitext.
func (w *RawWikilink) Stringify(FormatOptions) string {
	var b strings.Builder
	b.WriteString("[[")
	b.WriteString(w.Title)
	if w.Display != nil {
		b.WriteByte('|')
		b.WriteString(*w.Display)
	}
	b.WriteString("]]")
	return b.String()
}

// String renders the raw link with default options.
func (w *RawWikilink) String() string { return w.Stringify(FormatOptions{}) }
