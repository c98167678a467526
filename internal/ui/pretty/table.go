package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/gowikitext/pkg/analysis"
)

// Table formatting constants.
const (
	healableSymbol      = "+"
	tablePadding        = 2
	tableColumnCount    = 5 // FILE, LINE, MESSAGE, CHECK, HEALABLE
	perFileColumnCount  = 4 // LINE, MESSAGE, CHECK, HEALABLE (no FILE column)
	healableColumnWidth = 3 // width for healable indicator column
	minFileWidth        = 20
	minLineWidth        = 6
	minMessageWidth     = 35
	minCheckWidth       = 12
	heavySeparator      = "="
	lightSeparator      = "-"
	defaultTermWidth    = 100
)

// TableRow represents a single row in the findings table.
type TableRow struct {
	File     string
	Line     string
	Message  string
	Check    string
	Severity string
	Healable bool
}

// FindingToTableRow converts an analysis finding to a table row.
func FindingToTableRow(path string, finding analysis.Finding) TableRow {
	return TableRow{
		File:     path,
		Line:     fmt.Sprintf("%d", finding.Line),
		Message:  finding.Message,
		Check:    string(finding.Check),
		Severity: finding.Severity,
		Healable: finding.Healable,
	}
}

// TableFormatter formats findings as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

// FormatTable formats findings from several pages as one styled table,
// grouped by page with light separators between groups.
func (t *TableFormatter) FormatTable(groups [][]TableRow) string {
	if len(groups) == 0 {
		return ""
	}

	colWidths := t.calculateColumnWidths(groups)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(colWidths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(colWidths, heavySeparator))
	builder.WriteString("\n")

	isFirstGroup := true
	for _, group := range groups {
		if !isFirstGroup {
			builder.WriteString(t.formatSeparator(colWidths, lightSeparator))
			builder.WriteString("\n")
		}
		isFirstGroup = false

		for _, row := range group {
			builder.WriteString(t.formatRow(row, colWidths))
			builder.WriteString("\n")
		}
	}

	builder.WriteString(t.formatSeparator(colWidths, heavySeparator))
	builder.WriteString("\n")

	builder.WriteString(t.formatLegend())
	builder.WriteString("\n")

	return builder.String()
}

// FormatFileTable formats a single page's findings as a standalone table.
// The FILE column is omitted since the path is shown in the page header.
func (t *TableFormatter) FormatFileTable(path string, findings []analysis.Finding) string {
	if len(findings) == 0 {
		return ""
	}

	rows := make([]TableRow, 0, len(findings))
	for _, finding := range findings {
		rows = append(rows, FindingToTableRow(path, finding))
	}

	colWidths := t.calculateColumnWidthsForRows(rows)

	var builder strings.Builder

	builder.WriteString(t.formatPerFileHeader(colWidths))
	builder.WriteString("\n")
	builder.WriteString(t.formatPerFileSeparator(colWidths, heavySeparator))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatPerFileRow(row, colWidths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatPerFileSeparator(colWidths, heavySeparator))
	builder.WriteString("\n")

	builder.WriteString(t.formatFileSummary(rows))
	builder.WriteString("\n")

	return builder.String()
}

type perFileColumnWidths struct {
	line    int
	message int
	check   int
}

// calculateColumnWidthsForRows calculates widths for per-page tables.
func (t *TableFormatter) calculateColumnWidthsForRows(rows []TableRow) perFileColumnWidths {
	widths := perFileColumnWidths{
		line:    minLineWidth,
		message: minMessageWidth,
		check:   minCheckWidth,
	}

	for _, row := range rows {
		if len(row.Line) > widths.line {
			widths.line = len(row.Line)
		}
		if len(row.Message) > widths.message {
			widths.message = len(row.Message)
		}
		if len(row.Check) > widths.check {
			widths.check = len(row.Check)
		}
	}

	// Constrain to terminal width; the message column absorbs the excess.
	totalWidth := widths.line + widths.message + widths.check + (tablePadding * perFileColumnCount) + healableColumnWidth
	if totalWidth > t.termWidth {
		excess := totalWidth - t.termWidth
		widths.message = max(minMessageWidth, widths.message-excess)
	}

	return widths
}

// formatPerFileHeader formats the header for per-page tables.
func (t *TableFormatter) formatPerFileHeader(widths perFileColumnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %-*s   ",
		widths.line, "LINE",
		widths.message, "MESSAGE",
		widths.check, "CHECK",
	)
	return t.styles.TableHeader.Render(header)
}

// formatPerFileSeparator formats a separator line for per-page tables.
func (t *TableFormatter) formatPerFileSeparator(widths perFileColumnWidths, char string) string {
	totalWidth := widths.line + widths.message + widths.check + (tablePadding * perFileColumnCount) + healableColumnWidth
	sep := strings.Repeat(char, totalWidth)
	return t.styles.TableSeparator.Render(sep)
}

// formatPerFileRow formats a single row in the per-page table.
func (t *TableFormatter) formatPerFileRow(row TableRow, widths perFileColumnWidths) string {
	line := truncateString(row.Line, widths.line)
	message := truncateString(row.Message, widths.message)
	check := truncateString(row.Check, widths.check)

	healable := " "
	if row.Healable {
		healable = t.styles.TableHealable.Render(healableSymbol)
	}

	content := fmt.Sprintf(" %-*s  %-*s  %-*s  %s",
		widths.line, line,
		widths.message, message,
		widths.check, check,
		healable,
	)

	rowStyle := t.getRowStyle(row.Severity)
	return rowStyle.Render(content)
}

// formatFileSummary formats a summary line for a single page.
func (t *TableFormatter) formatFileSummary(rows []TableRow) string {
	var warnings, infos, healable int

	for _, row := range rows {
		switch row.Severity {
		case analysis.SeverityWarning:
			warnings++
		case analysis.SeverityInfo:
			infos++
		}
		if row.Healable {
			healable++
		}
	}

	var parts []string
	if warnings > 0 {
		parts = append(parts, t.styles.Warning.Render(fmt.Sprintf("%d warnings", warnings)))
	}
	if infos > 0 {
		parts = append(parts, t.styles.Info.Render(fmt.Sprintf("%d info", infos)))
	}
	if healable > 0 {
		parts = append(parts, t.styles.TableHealable.Render(fmt.Sprintf("%d healable", healable)))
	}

	return " " + strings.Join(parts, " | ")
}

type columnWidths struct {
	file    int
	line    int
	message int
	check   int
}

// calculateColumnWidths determines optimal column widths based on content.
func (t *TableFormatter) calculateColumnWidths(groups [][]TableRow) columnWidths {
	widths := columnWidths{
		file:    minFileWidth,
		line:    minLineWidth,
		message: minMessageWidth,
		check:   minCheckWidth,
	}

	for _, group := range groups {
		for _, row := range group {
			if len(row.File) > widths.file {
				widths.file = len(row.File)
			}
			if len(row.Line) > widths.line {
				widths.line = len(row.Line)
			}
			if len(row.Message) > widths.message {
				widths.message = len(row.Message)
			}
			if len(row.Check) > widths.check {
				widths.check = len(row.Check)
			}
		}
	}

	// Constrain to terminal width
	totalWidth := t.calculateTotalWidth(widths)
	if totalWidth > t.termWidth {
		// Reduce message width first
		excess := totalWidth - t.termWidth
		widths.message = max(minMessageWidth, widths.message-excess)

		// If still too wide, reduce file width
		totalWidth = t.calculateTotalWidth(widths)
		if totalWidth > t.termWidth {
			excess = totalWidth - t.termWidth
			widths.file = max(minFileWidth, widths.file-excess)
		}
	}

	return widths
}

// formatHeader formats the table header row.
func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s   ",
		widths.file, "FILE",
		widths.line, "LINE",
		widths.message, "MESSAGE",
		widths.check, "CHECK",
	)
	return t.styles.TableHeader.Render(header)
}

// calculateTotalWidth calculates the total table width from column widths.
func (t *TableFormatter) calculateTotalWidth(widths columnWidths) int {
	return widths.file + widths.line + widths.message + widths.check +
		(tablePadding * tableColumnCount) + healableColumnWidth
}

// formatSeparator formats a separator line.
func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	totalWidth := t.calculateTotalWidth(widths)
	sep := strings.Repeat(char, totalWidth)
	return t.styles.TableSeparator.Render(sep)
}

// formatRow formats a single table row with severity-based styling.
func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	file := truncateFilePath(row.File, widths.file)
	line := truncateString(row.Line, widths.line)
	message := truncateString(row.Message, widths.message)
	check := truncateString(row.Check, widths.check)

	healable := " "
	if row.Healable {
		healable = t.styles.TableHealable.Render(healableSymbol)
	}

	content := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s  %s",
		widths.file, file,
		widths.line, line,
		widths.message, message,
		widths.check, check,
		healable,
	)

	rowStyle := t.getRowStyle(row.Severity)
	return rowStyle.Render(content)
}

// getRowStyle returns the appropriate style for a severity level.
func (t *TableFormatter) getRowStyle(severity string) lipgloss.Style {
	switch severity {
	case analysis.SeverityWarning:
		return t.styles.TableWarnRow
	case analysis.SeverityInfo:
		return t.styles.TableInfoRow
	default:
		return lipgloss.NewStyle()
	}
}

// formatLegend formats the legend explaining the table symbols and colors.
func (t *TableFormatter) formatLegend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(
			fmt.Sprintf(" Legend: W = warning | I = info | %s = healable", healableSymbol),
		)
	}

	warnSample := t.styles.TableWarnRow.Render(" warning ")
	infoSample := t.styles.TableInfoRow.Render(" info ")
	healableSample := t.styles.TableHealable.Render(healableSymbol)

	return t.styles.TableLegend.Render(
		fmt.Sprintf(" Legend: %s = warning  %s = info  %s = healable",
			warnSample, infoSample, healableSample),
	)
}

// FormatTableSummary formats a summary line for table output.
func (t *TableFormatter) FormatTableSummary(totals analysis.Totals, duration string) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("%d bytes scanned", totals.Bytes))

	if totals.Warnings > 0 {
		parts = append(parts, t.styles.Warning.Render(fmt.Sprintf("%d warnings", totals.Warnings)))
	}

	if totals.Infos > 0 {
		parts = append(parts, t.styles.Info.Render(fmt.Sprintf("%d info", totals.Infos)))
	}

	if totals.Healable > 0 {
		parts = append(parts, t.styles.TableHealable.Render(fmt.Sprintf("%d healable", totals.Healable)))
	}

	if duration != "" {
		parts = append(parts, t.styles.Dim.Render(duration))
	}

	return " " + strings.Join(parts, " | ")
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
