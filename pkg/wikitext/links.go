package wikitext

import (
	"strings"

	"github.com/yaklabco/gowikitext/pkg/element"
	"github.com/yaklabco/gowikitext/pkg/sitecfg"
	"github.com/yaklabco/gowikitext/pkg/title"
)

// WikilinkKind discriminates the three parses a [[...]] construct can take.
type WikilinkKind int

const (
	// KindWikilink is a normal link with a resolvable title.
	KindWikilink WikilinkKind = iota

	// KindFileWikilink is a direct link into the File namespace; its right
	// side is a parameter list, not display text.
	KindFileWikilink

	// KindRawWikilink wraps a construct whose title cannot be resolved.
	KindRawWikilink
)

// Link is one parsed [[...]] construct tied back to the buffer. Exactly
// one of Wikilink, File, Raw is non-nil, per Kind.
type Link struct {
	Kind     WikilinkKind
	Wikilink *element.Wikilink
	File     *element.FileWikilink
	Raw      *element.RawWikilink

	// Text is the construct's full source slice.
	Text string

	// StartIndex and EndIndex bound the construct.
	StartIndex int
	EndIndex   int

	// Skip marks links lying inside a no-parse region.
	Skip bool
}

// Stringify renders the link as wikitext.
func (l *Link) Stringify(opts element.FormatOptions) string {
	switch l.Kind {
	case KindFileWikilink:
		return l.File.Stringify(opts)
	case KindRawWikilink:
		return l.Raw.Stringify(opts)
	default:
		return l.Wikilink.Stringify(opts)
	}
}

func (l *Link) String() string { return l.Stringify(element.FormatOptions{}) }

// Title returns the resolved target, nil for raw links.
func (l *Link) Title() *title.Title {
	switch l.Kind {
	case KindFileWikilink:
		return l.File.Title
	case KindRawWikilink:
		return nil
	default:
		return l.Wikilink.Title
	}
}

// finalizeLinks validates the tentative titles of a fuzzy scan and
// classifies each link. The index map must already cover templates, so
// that pipes inside a template argument do not split file parameters.
func finalizeLinks(fuzzy []*fuzzyLink, im indexMap, resolver *title.Resolver, skips skipRanges) []*Link {
	links := make([]*Link, 0, len(fuzzy))
	for _, f := range fuzzy {
		l := &Link{
			Text:       f.text,
			StartIndex: f.startIndex,
			EndIndex:   f.endIndex,
			Skip:       skips.containsStrict(f.startIndex, f.endIndex),
		}

		t, ok := resolver.TryParse(strings.TrimSpace(f.title))
		switch {
		case !ok:
			l.Kind = KindRawWikilink
			l.Raw = &element.RawWikilink{Title: f.rawTitle, Display: f.right}

		case t.Namespace() == sitecfg.NSFile && !t.HadLeadingColon() && !t.IsExternal():
			l.Kind = KindFileWikilink
			l.File = &element.FileWikilink{
				Title:    t,
				RawTitle: f.rawTitle,
				Params:   fileParams(f, im),
			}

		default:
			l.Kind = KindWikilink
			l.Wikilink = &element.Wikilink{
				Title:    t,
				RawTitle: f.rawTitle,
				Display:  f.right,
			}
		}
		links = append(links, l)
	}
	return links
}

// fileParams splits a file link's right tail on pipes that are not inside
// a covered range.
func fileParams(f *fuzzyLink, im indexMap) []string {
	if f.right == nil {
		return nil
	}
	base := f.startIndex + 2 + len(f.rawTitle) + 1
	return im.coveredSplit(*f.right, base, '|')
}
