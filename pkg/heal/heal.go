// Package heal turns healable analysis findings into text edits and
// applies them to a document buffer.
package heal

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gowikitext/pkg/analysis"
)

// Edit is a single replacement of buffer bytes [Start, End) with NewText.
// An insertion has Start == End.
type Edit struct {
	Start   int
	End     int
	NewText string
}

// Plan is the set of edits derived from a report's healable findings.
type Plan struct {
	// Edits to apply, in derivation order.
	Edits []Edit

	// Healed are the findings the plan repairs.
	Healed []analysis.Finding

	// Skipped are healable findings no edit could be derived for.
	Skipped []analysis.Finding
}

// Empty reports whether the plan has nothing to apply.
func (p *Plan) Empty() bool { return len(p.Edits) == 0 }

// PlanFindings derives repair edits for the healable findings over text.
//
// Findings are walked in reverse document order: unclosed constructs all
// insert their closer at the same end-of-scope offset, and the innermost
// construct (the later finding) must close first.
func PlanFindings(text string, findings []analysis.Finding) *Plan {
	plan := &Plan{}
	for i := len(findings) - 1; i >= 0; i-- {
		f := findings[i]
		if !f.Healable {
			continue
		}
		edit, ok := editFor(text, f)
		if !ok {
			plan.Skipped = append(plan.Skipped, f)
			continue
		}
		plan.Edits = append(plan.Edits, edit)
		plan.Healed = append(plan.Healed, f)
	}
	return plan
}

// editFor builds the repair edit for one finding.
func editFor(text string, f analysis.Finding) (Edit, bool) {
	switch f.Check {
	case analysis.CheckUnclosedTag:
		if f.Suggestion == "" {
			return Edit{}, false
		}
		return Edit{Start: f.EndIndex, End: f.EndIndex, NewText: f.Suggestion}, true

	case analysis.CheckUnclosedComment:
		return Edit{Start: f.EndIndex, End: f.EndIndex, NewText: "-->"}, true

	case analysis.CheckMissingLang:
		if f.Suggestion == "" {
			return Edit{}, false
		}
		at, ok := langInsertOffset(text, f.StartIndex, f.EndIndex)
		if !ok {
			return Edit{}, false
		}
		return Edit{Start: at, End: at, NewText: fmt.Sprintf(" lang=%q", f.Suggestion)}, true

	default:
		return Edit{}, false
	}
}

// langInsertOffset finds where a lang attribute goes inside a highlighting
// tag's start tag: just before the closing '>', or before the '/' of a
// self-closing tag.
func langInsertOffset(text string, start, end int) (int, bool) {
	if start < 0 || end > len(text) || start >= end {
		return 0, false
	}
	rel := strings.IndexByte(text[start:end], '>')
	if rel < 0 {
		return 0, false
	}
	at := start + rel
	if at > start && text[at-1] == '/' {
		at--
	}
	return at, true
}
