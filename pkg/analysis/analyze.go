package analysis

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/yaklabco/gowikitext/pkg/langdetect"
	"github.com/yaklabco/gowikitext/pkg/wikitext"
)

// highlightTags are the tags whose body is source code.
var highlightTags = map[string]bool{"syntaxhighlight": true, "source": true}

// Analyze computes a Report for the document in a single pass over each
// construct cache.
func Analyze(d *wikitext.Document, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}
	if d == nil {
		return report
	}

	report.Totals.Bytes = d.Len()
	var findings []Finding
	findings = append(findings, tagFindings(d, &report.Totals)...)
	findings = append(findings, sectionFindings(d, &report.Totals)...)
	findings = append(findings, templateFindings(d, &report.Totals)...)
	findings = append(findings, linkFindings(d, &report.Totals)...)
	report.Totals.Parameters = len(d.Parameters())

	for i := range findings {
		findings[i].Line = lineAt(d.Text(), findings[i].StartIndex)
	}
	slices.SortStableFunc(findings, func(a, b Finding) int {
		return cmp.Compare(a.StartIndex, b.StartIndex)
	})

	for _, f := range findings {
		report.Totals.Findings++
		switch f.Severity {
		case SeverityWarning:
			report.Totals.Warnings++
		case SeverityInfo:
			report.Totals.Infos++
		}
		if f.Healable {
			report.Totals.Healable++
		}
	}

	if opts.IncludeFindings {
		report.Findings = findings
	}
	if opts.IncludeByCheck {
		report.ByCheck = buildByCheck(findings, opts)
	}
	return report
}

func tagFindings(d *wikitext.Document, totals *Totals) []Finding {
	var findings []Finding
	for _, t := range d.Tags() {
		totals.Tags++
		if t.Skip {
			continue
		}
		switch {
		case t.Name == wikitext.CommentName && t.Unclosed:
			findings = append(findings, Finding{
				Check:      CheckUnclosedComment,
				Severity:   SeverityWarning,
				Message:    "comment runs to end of document",
				StartIndex: t.StartIndex,
				EndIndex:   t.EndIndex,
				Healable:   true,
			})
		case t.Unclosed:
			findings = append(findings, Finding{
				Check:      CheckUnclosedTag,
				Severity:   SeverityWarning,
				Message:    fmt.Sprintf("unclosed <%s> tag", t.Name),
				StartIndex: t.StartIndex,
				EndIndex:   t.EndIndex,
				Suggestion: t.End,
				Healable:   true,
			})
		case highlightTags[t.Name] && langdetect.TagLang(t) == "":
			lang, _ := langdetect.Suggest(t)
			findings = append(findings, Finding{
				Check:      CheckMissingLang,
				Severity:   SeverityInfo,
				Message:    fmt.Sprintf("<%s> tag without a lang attribute", t.Name),
				StartIndex: t.StartIndex,
				EndIndex:   t.EndIndex,
				Suggestion: lang,
				Healable:   true,
			})
		}
	}
	return findings
}

func sectionFindings(d *wikitext.Document, totals *Totals) []Finding {
	var findings []Finding
	seen := make(map[string]bool)
	prevLevel := 0
	for _, s := range d.Sections() {
		totals.Sections++
		if s.Index == 0 {
			prevLevel = s.Level
			continue
		}
		if s.Level > prevLevel+1 {
			findings = append(findings, Finding{
				Check:      CheckHeadingJump,
				Severity:   SeverityInfo,
				Message:    fmt.Sprintf("heading %q jumps from level %d to %d", s.Title, prevLevel, s.Level),
				StartIndex: s.StartIndex,
				EndIndex:   s.StartIndex + len(s.Heading),
			})
		}
		prevLevel = s.Level

		key := strings.ToLower(s.Title)
		if key != "" && seen[key] {
			findings = append(findings, Finding{
				Check:      CheckDuplicateSection,
				Severity:   SeverityInfo,
				Message:    fmt.Sprintf("duplicate section title %q", s.Title),
				StartIndex: s.StartIndex,
				EndIndex:   s.StartIndex + len(s.Heading),
			})
		}
		seen[key] = true
	}
	return findings
}

func templateFindings(d *wikitext.Document, totals *Totals) []Finding {
	var findings []Finding
	for _, c := range d.Templates() {
		switch c.Kind {
		case wikitext.KindParserFunction:
			totals.ParserFunctions++
		default:
			totals.Templates++
		}
		if c.Kind == wikitext.KindRawTemplate && !c.Skip {
			findings = append(findings, Finding{
				Check:      CheckRawTemplate,
				Severity:   SeverityWarning,
				Message:    fmt.Sprintf("template title %q cannot be parsed", c.Raw.Title),
				StartIndex: c.StartIndex,
				EndIndex:   c.EndIndex,
			})
		}
	}
	return findings
}

func linkFindings(d *wikitext.Document, totals *Totals) []Finding {
	var findings []Finding
	for _, l := range d.Links() {
		switch l.Kind {
		case wikitext.KindFileWikilink:
			totals.FileLinks++
		default:
			totals.Wikilinks++
		}
		if l.Kind == wikitext.KindRawWikilink && !l.Skip {
			findings = append(findings, Finding{
				Check:      CheckRawWikilink,
				Severity:   SeverityWarning,
				Message:    fmt.Sprintf("link target %q cannot be resolved", l.Raw.Title),
				StartIndex: l.StartIndex,
				EndIndex:   l.EndIndex,
			})
		}
	}
	return findings
}

// lineAt returns the 1-based line number of a byte offset.
func lineAt(text string, offset int) int {
	if offset > len(text) {
		offset = len(text)
	}
	return 1 + strings.Count(text[:offset], "\n")
}

func buildByCheck(findings []Finding, opts Options) []CheckAnalysis {
	byCheck := make(map[Check]*CheckAnalysis)
	for _, f := range findings {
		ca, ok := byCheck[f.Check]
		if !ok {
			ca = &CheckAnalysis{Check: f.Check, Severity: f.Severity}
			byCheck[f.Check] = ca
		}
		ca.Count++
		if f.Healable {
			ca.Healable = true
		}
	}

	result := make([]CheckAnalysis, 0, len(byCheck))
	for _, ca := range byCheck {
		result = append(result, *ca)
	}
	slices.SortFunc(result, func(left, right CheckAnalysis) int {
		switch opts.SortBy {
		case SortByAlpha:
			return cmp.Compare(left.Check, right.Check)
		case SortBySeverity:
			if left.Severity != right.Severity {
				// warnings sort before infos
				return cmp.Compare(right.Severity, left.Severity)
			}
			return cmp.Compare(right.Count, left.Count)
		default:
			result := cmp.Compare(left.Count, right.Count)
			if opts.SortDesc {
				result = -result
			}
			if result == 0 {
				result = cmp.Compare(left.Check, right.Check)
			}
			return result
		}
	})
	return result
}
