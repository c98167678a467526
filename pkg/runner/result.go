package runner

import "github.com/yaklabco/gowikitext/pkg/analysis"

// PageResult is what a Processor produces for one page file.
type PageResult struct {
	// Report is the page's analysis report.
	Report *analysis.Report

	// Healed is the number of findings repaired in this page.
	Healed int

	// Written reports whether the page file was rewritten.
	Written bool

	// Skipped reports a page left untouched, e.g. because it changed on
	// disk between read and write.
	Skipped bool
}

// PageOutcome pairs a PageResult with its resolved path.
type PageOutcome struct {
	// Path is the page file that was processed.
	Path string

	// Result is nil when the page could not be processed.
	Result *PageResult

	// Error is set if the page could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of pages found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of pages successfully processed.
	FilesProcessed int

	// FilesSkipped is the number of pages skipped.
	FilesSkipped int

	// FilesErrored is the number of pages that encountered errors.
	FilesErrored int

	// FindingsTotal is the total number of findings across all pages.
	FindingsTotal int

	// FindingsHealable is the number of findings the heal command can
	// repair.
	FindingsHealable int

	// FindingsBySeverity maps severity strings to counts.
	FindingsBySeverity map[string]int

	// FilesWithFindings is the number of pages with at least one finding.
	FilesWithFindings int

	// FilesModified is the number of pages rewritten by healing.
	FilesModified int

	// FindingsHealed is the total number of findings repaired.
	FindingsHealed int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed page, ordered
	// deterministically by path.
	Files []PageOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasWarnings reports whether any warning-severity findings occurred.
func (r *Result) HasWarnings() bool {
	if r == nil {
		return false
	}
	return r.Stats.FindingsBySeverity[analysis.SeverityWarning] > 0
}

// HasFindings reports whether any findings were found.
func (r *Result) HasFindings() bool {
	if r == nil {
		return false
	}
	return r.Stats.FindingsTotal > 0
}

func newStats() Stats {
	return Stats{
		FindingsBySeverity: make(map[string]int),
	}
}

// accumulate updates the result with a page outcome.
func (r *Result) accumulate(outcome PageOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Result == nil {
		return
	}

	r.Stats.FilesProcessed++
	if outcome.Result.Skipped {
		r.Stats.FilesSkipped++
	}
	if outcome.Result.Written {
		r.Stats.FilesModified++
	}
	r.Stats.FindingsHealed += outcome.Result.Healed

	report := outcome.Result.Report
	if report == nil {
		return
	}

	r.Stats.FindingsTotal += report.Totals.Findings
	r.Stats.FindingsHealable += report.Totals.Healable
	if report.Totals.Findings > 0 {
		r.Stats.FilesWithFindings++
	}
	r.Stats.FindingsBySeverity[analysis.SeverityWarning] += report.Totals.Warnings
	r.Stats.FindingsBySeverity[analysis.SeverityInfo] += report.Totals.Infos
}
