package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gowikitext/internal/ui/pretty"
	"github.com/yaklabco/gowikitext/pkg/analysis"
)

func TestFormatFinding_Basic(t *testing.T) {
	styles := pretty.NewStyles(false)

	finding := analysis.Finding{
		Check:    analysis.CheckUnclosedTag,
		Severity: analysis.SeverityWarning,
		Message:  "unclosed <div> tag",
		Line:     3,
	}

	result := styles.FormatFinding("pages/Main_Page.wiki", finding, "", 0)

	assert.Contains(t, result, "pages/Main_Page.wiki:3")
	assert.Contains(t, result, "warning")
	assert.Contains(t, result, "unclosed <div> tag")
	assert.Contains(t, result, "(unclosed-tag)")
	assert.NotContains(t, result, "Suggestion:")
}

func TestFormatFinding_WithSuggestion(t *testing.T) {
	styles := pretty.NewStyles(false)

	finding := analysis.Finding{
		Check:      analysis.CheckMissingLang,
		Severity:   analysis.SeverityInfo,
		Message:    "<source> tag without a lang attribute",
		Line:       1,
		Suggestion: "python",
	}

	result := styles.FormatFinding("page.wiki", finding, "", 0)

	assert.Contains(t, result, "Suggestion:")
	assert.Contains(t, result, "python")
}

func TestFormatFinding_WithSourceContext(t *testing.T) {
	styles := pretty.NewStyles(false)

	finding := analysis.Finding{
		Check:    analysis.CheckRawTemplate,
		Severity: analysis.SeverityWarning,
		Message:  `template title "<x" cannot be parsed`,
		Line:     1,
	}

	result := styles.FormatFinding("page.wiki", finding, "text {{<x}} more", 6)

	assert.Contains(t, result, "text {{<x}} more")
	assert.Contains(t, result, "^")
}

func TestFormatSeverity(t *testing.T) {
	styles := pretty.NewStyles(false)

	assert.Equal(t, "warning", styles.FormatSeverity(analysis.SeverityWarning))
	assert.Equal(t, "info", styles.FormatSeverity(analysis.SeverityInfo))
	assert.Equal(t, "custom", styles.FormatSeverity("custom"))
}

func TestFormatFileHeader(t *testing.T) {
	styles := pretty.NewStyles(false)

	withCount := styles.FormatFileHeader("page.wiki", 3)
	assert.Contains(t, withCount, "page.wiki")
	assert.Contains(t, withCount, "(3 findings)")

	clean := styles.FormatFileHeader("page.wiki", 0)
	assert.Equal(t, "page.wiki", clean)
}
