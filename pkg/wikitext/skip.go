// Package wikitext implements the structural wikitext parser: single-pass
// character scanners for tags, sections, parameters, templates, and
// wikilinks over a mutable document buffer, plus the modification protocol
// that keeps parsed positions consistent across edits.
//
// All positions are zero-based byte offsets into the current buffer,
// half-open [start, end). Every offset is invalidated when the buffer is
// replaced.
package wikitext

import "sort"

// skipRange is one region of the buffer in which markup must not be
// interpreted, derived from a skip tag's full extent.
type skipRange struct {
	start, end int
}

// skipRanges is an ordered set of maximal skip regions.
type skipRanges []skipRange

// buildSkipRanges derives the skip regions from a tag scan: the tags whose
// name is on the skip list, reduced to maximal ranges (a skip tag nested
// inside another skip region adds nothing).
func buildSkipRanges(tags []*Tag, skipNames []string) skipRanges {
	names := make(map[string]bool, len(skipNames))
	for _, n := range skipNames {
		names[n] = true
	}

	var all []skipRange
	for _, t := range tags {
		if names[t.Name] {
			all = append(all, skipRange{start: t.StartIndex, end: t.EndIndex})
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].start != all[j].start {
			return all[i].start < all[j].start
		}
		return all[i].end > all[j].end
	})

	var maximal skipRanges
	for _, r := range all {
		if n := len(maximal); n > 0 && r.end <= maximal[n-1].end {
			continue // nested inside the previous range
		}
		maximal = append(maximal, r)
	}
	return maximal
}

// covers reports whether offset lies inside any skip region.
func (s skipRanges) covers(offset int) bool {
	for _, r := range s {
		if offset < r.start {
			return false
		}
		if offset < r.end {
			return true
		}
	}
	return false
}

// containsStrict reports whether some skip region strictly contains
// [start, end): the region begins before start and ends after end. A skip
// tag is not considered contained in its own range.
func (s skipRanges) containsStrict(start, end int) bool {
	for _, r := range s {
		if r.start < start && end < r.end {
			return true
		}
	}
	return false
}
