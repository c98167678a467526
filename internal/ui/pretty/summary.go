package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gowikitext/pkg/analysis"
)

const (
	summaryDividerWidth = 40
	wordFinding         = "finding"
	wordFindings        = "findings"
)

// FormatSummaryOneLine formats analysis totals as a single line.
// Example: "4 findings (2 warnings, 2 info), 3 healable".
func (s *Styles) FormatSummaryOneLine(totals analysis.Totals) string {
	if totals.Findings == 0 {
		return s.Success.Render("No findings") +
			s.Dim.Render(fmt.Sprintf(" (%d bytes scanned)", totals.Bytes)) + "\n"
	}

	var parts []string

	word := wordFindings
	if totals.Findings == 1 {
		word = wordFinding
	}

	var severityParts []string
	if totals.Warnings > 0 {
		severityParts = append(severityParts, s.Warning.Render(fmt.Sprintf("%d warnings", totals.Warnings)))
	}
	if totals.Infos > 0 {
		severityParts = append(severityParts, s.Info.Render(fmt.Sprintf("%d info", totals.Infos)))
	}

	if len(severityParts) > 0 {
		parts = append(parts, fmt.Sprintf("%d %s (%s)", totals.Findings, word, strings.Join(severityParts, ", ")))
	} else {
		parts = append(parts, fmt.Sprintf("%d %s", totals.Findings, word))
	}

	if totals.Healable > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d healable", totals.Healable)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats analysis totals as a summary block.
func (s *Styles) FormatSummary(totals analysis.Totals) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	// Construct counts
	builder.WriteString("  Bytes scanned:     " +
		s.SummaryValue.Render(strconv.Itoa(totals.Bytes)) + "\n")
	builder.WriteString("  Tags:              " +
		s.SummaryValue.Render(strconv.Itoa(totals.Tags)) + "\n")
	builder.WriteString("  Sections:          " +
		s.SummaryValue.Render(strconv.Itoa(totals.Sections)) + "\n")
	builder.WriteString("  Parameters:        " +
		s.SummaryValue.Render(strconv.Itoa(totals.Parameters)) + "\n")
	builder.WriteString("  Templates:         " +
		s.SummaryValue.Render(strconv.Itoa(totals.Templates)) + "\n")
	builder.WriteString("  Parser functions:  " +
		s.SummaryValue.Render(strconv.Itoa(totals.ParserFunctions)) + "\n")
	builder.WriteString("  Wikilinks:         " +
		s.SummaryValue.Render(strconv.Itoa(totals.Wikilinks)) + "\n")
	builder.WriteString("  File links:        " +
		s.SummaryValue.Render(strconv.Itoa(totals.FileLinks)) + "\n")

	builder.WriteString("\n")

	// Findings by severity
	builder.WriteString("  Total findings:    " +
		s.SummaryValue.Render(strconv.Itoa(totals.Findings)) + "\n")

	if totals.Warnings > 0 {
		builder.WriteString("    Warnings:        " +
			s.Warning.Render(strconv.Itoa(totals.Warnings)) + "\n")
	}
	if totals.Infos > 0 {
		builder.WriteString("    Info:            " +
			s.Info.Render(strconv.Itoa(totals.Infos)) + "\n")
	}
	if totals.Healable > 0 {
		builder.WriteString("    Healable:        " +
			s.Success.Render(strconv.Itoa(totals.Healable)) + "\n")
	}

	builder.WriteString("\n")

	// Overall status
	switch {
	case totals.Warnings > 0:
		builder.WriteString(s.Warning.Render("Analysis completed with warnings"))
	case totals.Findings > 0:
		builder.WriteString(s.Info.Render("Analysis completed with findings"))
	default:
		builder.WriteString(s.Success.Render("Document is clean"))
	}
	builder.WriteString("\n")

	return builder.String()
}
