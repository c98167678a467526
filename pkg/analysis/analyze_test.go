package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gowikitext/pkg/wikitext"
)

func analyzeText(t *testing.T, text string, opts Options) *Report {
	t.Helper()
	d, err := wikitext.New(text)
	require.NoError(t, err)
	return Analyze(d, opts)
}

func findingsOf(r *Report, check Check) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Check == check {
			out = append(out, f)
		}
	}
	return out
}

func TestAnalyze_NilDocument(t *testing.T) {
	t.Parallel()

	report := Analyze(nil, DefaultOptions())

	require.NotNil(t, report)
	assert.Equal(t, ReportVersion, report.Version)
	assert.Equal(t, 0, report.Totals.Findings)
}

func TestAnalyze_CleanDocument(t *testing.T) {
	t.Parallel()

	report := analyzeText(t, "== A ==\n{{foo|x}} and [[Bar]]\n", DefaultOptions())

	assert.Empty(t, report.Findings)
	assert.Equal(t, 2, report.Totals.Sections)
	assert.Equal(t, 1, report.Totals.Templates)
	assert.Equal(t, 1, report.Totals.Wikilinks)
	assert.Equal(t, 0, report.Totals.Findings)
}

func TestAnalyze_UnclosedTag(t *testing.T) {
	t.Parallel()

	report := analyzeText(t, "text <div>dangling", DefaultOptions())

	found := findingsOf(report, CheckUnclosedTag)
	require.Len(t, found, 1)
	f := found[0]
	assert.Equal(t, SeverityWarning, f.Severity)
	assert.Equal(t, "</div>", f.Suggestion)
	assert.True(t, f.Healable)
	assert.Equal(t, 1, report.Totals.Warnings)
	assert.Equal(t, 1, report.Totals.Healable)
}

func TestAnalyze_RawConstructs(t *testing.T) {
	t.Parallel()

	report := analyzeText(t, "{{<x|1}} [[{{p}}]]", DefaultOptions())

	assert.Len(t, findingsOf(report, CheckRawTemplate), 1)
	assert.Len(t, findingsOf(report, CheckRawWikilink), 1)
}

func TestAnalyze_MissingLang(t *testing.T) {
	t.Parallel()

	report := analyzeText(t, "<syntaxhighlight>package main\nfunc main() {}\n</syntaxhighlight>", DefaultOptions())

	found := findingsOf(report, CheckMissingLang)
	require.Len(t, found, 1)
	assert.Equal(t, "go", found[0].Suggestion)
	assert.True(t, found[0].Healable)
}

func TestAnalyze_DeclaredLangNotFlagged(t *testing.T) {
	t.Parallel()

	report := analyzeText(t, `<syntaxhighlight lang="go">package main</syntaxhighlight>`, DefaultOptions())
	assert.Empty(t, findingsOf(report, CheckMissingLang))
}

func TestAnalyze_HeadingJump(t *testing.T) {
	t.Parallel()

	report := analyzeText(t, "== A ==\n==== B ====\n", DefaultOptions())

	found := findingsOf(report, CheckHeadingJump)
	require.Len(t, found, 1)
	assert.Equal(t, 2, found[0].Line)
}

func TestAnalyze_DuplicateSection(t *testing.T) {
	t.Parallel()

	report := analyzeText(t, "== A ==\nx\n== a ==\ny\n", DefaultOptions())
	assert.Len(t, findingsOf(report, CheckDuplicateSection), 1)
}

func TestAnalyze_SkipRegionSuppressed(t *testing.T) {
	t.Parallel()

	report := analyzeText(t, "<nowiki>{{<x}}</nowiki>", DefaultOptions())
	assert.Empty(t, findingsOf(report, CheckRawTemplate))
}

func TestAnalyze_ByCheckSorting(t *testing.T) {
	t.Parallel()

	text := "<div>a<span>b\n{{<x|1}}"
	opts := DefaultOptions()
	opts.SortBy = SortByCount

	report := analyzeText(t, text, opts)

	require.NotEmpty(t, report.ByCheck)
	assert.Equal(t, CheckUnclosedTag, report.ByCheck[0].Check)
	assert.Equal(t, 2, report.ByCheck[0].Count)
}

func TestAnalyze_ExcludesViews(t *testing.T) {
	t.Parallel()

	report := analyzeText(t, "<div>a", Options{})

	assert.Nil(t, report.Findings)
	assert.Nil(t, report.ByCheck)
	assert.Equal(t, 1, report.Totals.Findings, "totals are always computed")
}
