package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gowikitext/internal/ui/pretty"
	"github.com/yaklabco/gowikitext/pkg/analysis"
)

func TestFormatSummary_Basic(t *testing.T) {
	styles := pretty.NewStyles(false)

	totals := analysis.Totals{
		Bytes:     2048,
		Tags:      4,
		Sections:  3,
		Templates: 7,
		Wikilinks: 12,
		Findings:  5,
		Warnings:  2,
		Infos:     3,
		Healable:  2,
	}

	result := styles.FormatSummary(totals)

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Bytes scanned:")
	assert.Contains(t, result, "2048")
	assert.Contains(t, result, "Templates:")
	assert.Contains(t, result, "Total findings:")
	assert.Contains(t, result, "Warnings:")
	assert.Contains(t, result, "Healable:")
}

func TestFormatSummary_Clean(t *testing.T) {
	styles := pretty.NewStyles(false)

	totals := analysis.Totals{Bytes: 100, Sections: 1}

	result := styles.FormatSummary(totals)

	assert.Contains(t, result, "Document is clean")
	assert.NotContains(t, result, "Warnings:")
}

func TestFormatSummary_WithWarnings(t *testing.T) {
	styles := pretty.NewStyles(false)

	totals := analysis.Totals{Findings: 2, Warnings: 2}

	result := styles.FormatSummary(totals)

	assert.Contains(t, result, "Analysis completed with warnings")
}

func TestFormatSummary_InfoOnly(t *testing.T) {
	styles := pretty.NewStyles(false)

	totals := analysis.Totals{Findings: 1, Infos: 1}

	result := styles.FormatSummary(totals)

	assert.Contains(t, result, "Analysis completed with findings")
}

func TestFormatSummaryOneLine_NoFindings(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummaryOneLine(analysis.Totals{Bytes: 512})

	assert.Contains(t, result, "No findings")
	assert.Contains(t, result, "512 bytes")
}

func TestFormatSummaryOneLine_Breakdown(t *testing.T) {
	styles := pretty.NewStyles(false)

	totals := analysis.Totals{Findings: 4, Warnings: 2, Infos: 2, Healable: 3}

	result := styles.FormatSummaryOneLine(totals)

	assert.Contains(t, result, "4 findings")
	assert.Contains(t, result, "2 warnings")
	assert.Contains(t, result, "2 info")
	assert.Contains(t, result, "3 healable")
}

func TestFormatSummaryOneLine_SingularFinding(t *testing.T) {
	styles := pretty.NewStyles(false)

	totals := analysis.Totals{Findings: 1, Warnings: 1}

	result := styles.FormatSummaryOneLine(totals)

	assert.Contains(t, result, "1 finding (")
}
