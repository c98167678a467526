// Package analysis computes a structural health report for a parsed
// wikitext document: construct counts plus findings such as unclosed tags,
// unparsable constructs, and highlighting tags without a language.
package analysis

import "time"

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// Check identifies one kind of finding.
type Check string

const (
	// CheckUnclosedTag flags tags whose end tag was synthesized.
	CheckUnclosedTag Check = "unclosed-tag"

	// CheckUnclosedComment flags comments running to end of buffer.
	CheckUnclosedComment Check = "unclosed-comment"

	// CheckRawTemplate flags double-brace constructs with an unparsable
	// title.
	CheckRawTemplate Check = "raw-template"

	// CheckRawWikilink flags double-bracket constructs with an
	// unresolvable title.
	CheckRawWikilink Check = "raw-wikilink"

	// CheckMissingLang flags highlighting tags without a lang attribute.
	CheckMissingLang Check = "missing-lang"

	// CheckHeadingJump flags a section nested more than one level below
	// its parent.
	CheckHeadingJump Check = "heading-jump"

	// CheckDuplicateSection flags repeated section titles.
	CheckDuplicateSection Check = "duplicate-section"
)

// Severity string constants used in reports.
const (
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Finding is a single reported observation tied to a buffer range.
type Finding struct {
	Check      Check  `json:"check"`
	Severity   string `json:"severity"`
	Message    string `json:"message"`
	StartIndex int    `json:"startIndex"`
	EndIndex   int    `json:"endIndex"`
	Line       int    `json:"line"`
	Suggestion string `json:"suggestion,omitempty"`

	// Healable marks findings the heal command can repair.
	Healable bool `json:"healable"`
}

// CheckAnalysis aggregates findings of one check.
type CheckAnalysis struct {
	Check    Check  `json:"check"`
	Severity string `json:"severity"`
	Count    int    `json:"count"`
	Healable bool   `json:"healable"`
}

// Totals holds aggregate statistics over the document.
type Totals struct {
	Bytes           int `json:"bytes"`
	Tags            int `json:"tags"`
	Sections        int `json:"sections"`
	Parameters      int `json:"parameters"`
	Templates       int `json:"templates"`
	ParserFunctions int `json:"parserFunctions"`
	Wikilinks       int `json:"wikilinks"`
	FileLinks       int `json:"fileLinks"`

	Findings int `json:"findings"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
	Healable int `json:"healable"`
}

// Report contains pre-computed views of a document analysis, consumed by
// all renderers.
type Report struct {
	Findings []Finding       `json:"findings,omitempty"`
	ByCheck  []CheckAnalysis `json:"byCheck,omitempty"`
	Totals   Totals          `json:"summary"`

	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}
