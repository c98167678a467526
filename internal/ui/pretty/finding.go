package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gowikitext/pkg/analysis"
)

// FormatFinding formats a single analysis finding for terminal output.
// When sourceLine is non-empty it is rendered below the finding with a
// caret at the 1-based column where the flagged range begins.
func (s *Styles) FormatFinding(path string, finding analysis.Finding, sourceLine string, column int) string {
	var builder strings.Builder

	// Location: path:line
	location := fmt.Sprintf("%s:%d",
		s.FilePath.Render(path),
		finding.Line,
	)

	severity := s.FormatSeverity(finding.Severity)
	checkDisplay := s.CheckID.Render("(" + string(finding.Check) + ")")

	// Main line: location  severity  message  (check)
	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		severity,
		s.Message.Render(finding.Message),
		checkDisplay,
	))

	if sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, column))
	}

	if finding.Suggestion != "" {
		builder.WriteString("    " + s.Dim.Render("Suggestion:") + " " +
			s.Suggestion.Render(finding.Suggestion) + "\n")
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(severity string) string {
	switch severity {
	case analysis.SeverityWarning:
		return s.Warning.Render("warning")
	case analysis.SeverityInfo:
		return s.Info.Render("info")
	default:
		return severity
	}
}

// FormatSourceContext formats a source line with a caret under the given
// 1-based column.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	// Indent to align with finding output
	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 && column <= len(line) {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a page header for grouped output.
func (s *Styles) FormatFileHeader(path string, findingCount int) string {
	header := s.FilePath.Render(path)
	if findingCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d findings)", findingCount))
	}
	return header
}
