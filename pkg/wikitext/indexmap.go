package wikitext

import "strings"

type entryKind int

const (
	entrySkipTag entryKind = iota
	entryParameter
	entryWikilink
	entryTemplate
)

// indexEntry describes one already-recognized range the character scanners
// must step over verbatim. Inner bounds delimit the sub-text that nested
// constructs may still be discovered in.
type indexEntry struct {
	text       string
	kind       entryKind
	innerStart int
	innerEnd   int
}

// indexMap keys indexEntry records by their absolute start offset. Scanners
// consult it at every position and jump len(text) bytes when an entry
// starts there.
type indexMap map[int]indexEntry

func (im indexMap) add(start int, e indexEntry) {
	if prev, ok := im[start]; ok && len(prev.text) >= len(e.text) {
		return // keep the wider range
	}
	im[start] = e
}

// coveredSplit splits s on sep, treating any index-map range intersecting
// [base, base+len(s)) as opaque: separators inside such a range do not
// split. base is s's absolute offset in the buffer.
func (im indexMap) coveredSplit(s string, base int, sep byte) []string {
	var parts []string
	begin := 0
	for i := 0; i < len(s); {
		if e, ok := im[base+i]; ok {
			i += len(e.text)
			continue
		}
		if s[i] == sep {
			parts = append(parts, s[begin:i])
			begin = i + 1
		}
		i++
	}
	return append(parts, s[begin:])
}

// paddedInner returns entry's inner sub-text positioned at its absolute
// offset by prefixing sentinel bytes, so that a recursive scan over the
// result yields globally correct offsets. start is the entry's absolute
// start in the buffer. The sentinel never occurs in wikitext markup.
func (e indexEntry) paddedInner(start int) (padded string, from int) {
	from = start + e.innerStart
	if e.innerEnd <= e.innerStart {
		return "", from
	}
	return strings.Repeat("\x01", from) + e.text[e.innerStart:e.innerEnd], from
}

// buildIndexMap seeds the map from a buffer's skip regions and parameters,
// the two range kinds every higher scanner must honor. Parameters at every
// nest level are included: their absolute offsets stay valid keys under the
// sentinel-padded recursion, and a nested parameter left out would be
// misread as a brace-imbalanced template by the recursive scan.
func buildIndexMap(text string, tags []*Tag, params []*Parameter, skipNames []string) indexMap {
	im := make(indexMap)

	names := make(map[string]bool, len(skipNames))
	for _, n := range skipNames {
		names[n] = true
	}
	skips := buildSkipRanges(tags, skipNames)
	for _, t := range tags {
		if !names[t.Name] || skips.containsStrict(t.StartIndex, t.EndIndex) {
			continue
		}
		e := indexEntry{text: t.Text, kind: entrySkipTag}
		if t.Content != nil {
			e.innerStart = len(t.Start)
			e.innerEnd = len(t.Text) - len(t.End)
		}
		im.add(t.StartIndex, e)
	}

	for _, p := range params {
		if p.Skip {
			continue
		}
		im.add(p.StartIndex, indexEntry{
			text:       p.Text,
			kind:       entryParameter,
			innerStart: 3,
			innerEnd:   len(p.Text) - 3,
		})
	}
	return im
}
