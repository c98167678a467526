package wikitext

import (
	"sort"
	"strings"
)

// fuzzyLink is a tentatively parsed [[...]] range: boundaries and a raw
// title/right split, with the title not yet validated. It feeds both the
// wikilink finalizer and the template scanner (pipes inside a link must not
// be read as template-parameter separators).
type fuzzyLink struct {
	// title is the left side with index-map-covered ranges excluded.
	title string

	// rawTitle is the left side verbatim.
	rawTitle string

	// right is the text after the first pipe, nil when no pipe is present.
	right *string

	text       string
	startIndex int
	endIndex   int
	skip       bool
}

// scanFuzzyLinks scans text[from:] for [[...]] ranges. An opening [[ seen
// while a link is already open restarts the link there; an opening with no
// close by end of text is dropped. Ranges covered by im are stepped over
// verbatim, recursing into their inner text when it holds both markers.
func scanFuzzyLinks(text string, im indexMap, from int) []*fuzzyLink {
	var links []*fuzzyLink

	var inLink, sealed bool
	var start int
	var title, rawTitle, right strings.Builder

	i := from
	for i < len(text) {
		if e, ok := im[i]; ok {
			if inLink {
				if sealed {
					right.WriteString(e.text)
				} else {
					rawTitle.WriteString(e.text)
				}
			}
			if inner := e.text[e.innerStart:e.innerEnd]; strings.Contains(inner, "[[") && strings.Contains(inner, "]]") {
				padded, innerFrom := e.paddedInner(i)
				links = append(links, scanFuzzyLinks(padded, im, innerFrom)...)
			}
			i += len(e.text)
			continue
		}

		if strings.HasPrefix(text[i:], "[[") {
			inLink, sealed = true, false
			start = i
			title.Reset()
			rawTitle.Reset()
			right.Reset()
			i += 2
			continue
		}

		if inLink && strings.HasPrefix(text[i:], "]]") {
			i += 2
			l := &fuzzyLink{
				title:      title.String(),
				rawTitle:   rawTitle.String(),
				text:       text[start:i],
				startIndex: start,
				endIndex:   i,
			}
			if sealed {
				r := right.String()
				l.right = &r
			}
			links = append(links, l)
			inLink = false
			continue
		}

		if inLink {
			switch {
			case text[i] == '|' && !sealed:
				sealed = true
			case sealed:
				right.WriteByte(text[i])
			default:
				title.WriteByte(text[i])
				rawTitle.WriteByte(text[i])
			}
		}
		i++
	}

	sort.SliceStable(links, func(i, j int) bool {
		if links[i].startIndex != links[j].startIndex {
			return links[i].startIndex < links[j].startIndex
		}
		return links[i].endIndex > links[j].endIndex
	})
	return links
}
