package wikitext

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBatchMismatch reports a batch callback returning a replacement slice
// whose length differs from the element count. This is a caller bug, never
// a data problem.
var ErrBatchMismatch = errors.New("wikitext: batch replacement count does not match element count")

// errSplice marks an internal splice invariant violation.
var errSplice = errors.New("wikitext: splice range out of bounds")

// Replace wraps a replacement string for a modify callback. Returning nil
// from a callback leaves the element's source unchanged.
func Replace(s string) *string { return &s }

// positioned is implemented by every construct the modify protocol can
// splice and reindex.
type positioned interface {
	bounds() (start, end int)
	setBounds(start, end int)
}

func (t *Tag) bounds() (int, int) { return t.StartIndex, t.EndIndex }
func (t *Tag) setBounds(s, e int) { t.StartIndex, t.EndIndex = s, e }

func (s *Section) bounds() (int, int) { return s.StartIndex, s.EndIndex }
func (s *Section) setBounds(b, e int) { s.StartIndex, s.EndIndex = b, e }

func (p *Parameter) bounds() (int, int) { return p.StartIndex, p.EndIndex }
func (p *Parameter) setBounds(s, e int) { p.StartIndex, p.EndIndex = s, e }

func (c *TemplateCall) bounds() (int, int) { return c.StartIndex, c.EndIndex }
func (c *TemplateCall) setBounds(s, e int) { c.StartIndex, c.EndIndex = s, e }

func (l *Link) bounds() (int, int) { return l.StartIndex, l.EndIndex }
func (l *Link) setBounds(s, e int) { l.StartIndex, l.EndIndex = s, e }

// splice applies per-element replacements left-to-right against the live
// buffer, reindexing the remaining elements after each edit, then commits
// the result, which invalidates every parse cache.
//
// After an edit of [s, e) with length delta d, an element starting at or
// after e shifts wholly by d; an element straddling e shifts its end only;
// an element entirely before or inside the edited range keeps its bounds.
func splice[T positioned](d *Document, elems []T, repl []*string) error {
	if len(repl) != len(elems) {
		return fmt.Errorf("%w: %d replacements for %d elements", ErrBatchMismatch, len(repl), len(elems))
	}

	buf := d.text
	for i, r := range repl {
		if r == nil {
			continue
		}
		s, e := elems[i].bounds()
		if s < 0 || e < s || e > len(buf) {
			return fmt.Errorf("%w: [%d, %d) in %d bytes", errSplice, s, e, len(buf))
		}
		if *r == "" {
			e = consumeBlankLine(buf, s, e)
		}
		buf = buf[:s] + *r + buf[e:]
		delta := len(*r) - (e - s)
		if delta == 0 {
			continue
		}
		for _, other := range elems[i+1:] {
			os, oe := other.bounds()
			switch {
			case os >= e:
				other.setBounds(os+delta, oe+delta)
			case oe > e:
				other.setBounds(os, oe+delta)
			}
		}
	}
	d.SetText(buf)
	return nil
}

// consumeBlankLine widens an empty-string replacement of [s, e) so the
// deletion does not leave a blank line behind: when everything from line
// start to s is horizontal whitespace and everything from e to the next
// newline is too, the edit swallows that trailing run and the newline.
func consumeBlankLine(buf string, s, e int) int {
	lineStart := strings.LastIndexByte(buf[:s], '\n') + 1
	for i := lineStart; i < s; i++ {
		if buf[i] != ' ' && buf[i] != '\t' {
			return e
		}
	}
	j := e
	for j < len(buf) && (buf[j] == ' ' || buf[j] == '\t') {
		j++
	}
	if j < len(buf) && buf[j] == '\n' {
		return j + 1
	}
	return e
}

// runPerElement drives the per-element calling convention: the callback
// runs once per construct before any edit is applied, returning a
// replacement or nil for no change.
func runPerElement[T positioned](d *Document, elems []T, fn func(T) (*string, error)) error {
	repl := make([]*string, len(elems))
	for i, el := range elems {
		r, err := fn(el)
		if err != nil {
			return fmt.Errorf("wikitext: modify callback: %w", err)
		}
		repl[i] = r
	}
	return splice(d, elems, repl)
}

// runBatch drives the whole-batch calling convention: the callback sees
// every construct at once and must return exactly one replacement slot per
// element.
func runBatch[T positioned](d *Document, elems []T, fn func([]T) ([]*string, error)) error {
	repl, err := fn(elems)
	if err != nil {
		return fmt.Errorf("wikitext: modify callback: %w", err)
	}
	return splice(d, elems, repl)
}

// ModifyTags rewrites tags through fn and commits the result.
func (d *Document) ModifyTags(fn func(*Tag) (*string, error)) error {
	return runPerElement(d, d.Tags(), fn)
}

// ModifyTagsBatch rewrites tags with the whole-batch convention.
func (d *Document) ModifyTagsBatch(fn func([]*Tag) ([]*string, error)) error {
	return runBatch(d, d.Tags(), fn)
}

// ModifySections rewrites sections through fn and commits the result.
// Sections overlap by construction (a parent contains its subsections), so
// a callback should generally edit either parents or leaves, not both.
func (d *Document) ModifySections(fn func(*Section) (*string, error)) error {
	return runPerElement(d, d.Sections(), fn)
}

// ModifySectionsBatch rewrites sections with the whole-batch convention.
func (d *Document) ModifySectionsBatch(fn func([]*Section) ([]*string, error)) error {
	return runBatch(d, d.Sections(), fn)
}

// ModifyParameters rewrites triple-brace parameters through fn and commits
// the result.
func (d *Document) ModifyParameters(fn func(*Parameter) (*string, error)) error {
	return runPerElement(d, d.Parameters(), fn)
}

// ModifyParametersBatch rewrites parameters with the whole-batch convention.
func (d *Document) ModifyParametersBatch(fn func([]*Parameter) ([]*string, error)) error {
	return runBatch(d, d.Parameters(), fn)
}

// ModifyTemplates rewrites double-brace constructs through fn and commits
// the result. The callback may mutate the construct through its setters
// and return Replace(c.String()) to serialize the mutation back.
func (d *Document) ModifyTemplates(fn func(*TemplateCall) (*string, error)) error {
	return runPerElement(d, d.Templates(), fn)
}

// ModifyTemplatesBatch rewrites double-brace constructs with the
// whole-batch convention.
func (d *Document) ModifyTemplatesBatch(fn func([]*TemplateCall) ([]*string, error)) error {
	return runBatch(d, d.Templates(), fn)
}

// ModifyLinks rewrites wikilinks through fn and commits the result.
func (d *Document) ModifyLinks(fn func(*Link) (*string, error)) error {
	return runPerElement(d, d.Links(), fn)
}

// ModifyLinksBatch rewrites wikilinks with the whole-batch convention.
func (d *Document) ModifyLinksBatch(fn func([]*Link) ([]*string, error)) error {
	return runBatch(d, d.Links(), fn)
}
