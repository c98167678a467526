package heal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gowikitext/pkg/analysis"
	"github.com/yaklabco/gowikitext/pkg/heal"
	"github.com/yaklabco/gowikitext/pkg/wikitext"
)

// analyzeFindings parses text and returns its findings.
func analyzeFindings(t *testing.T, text string) []analysis.Finding {
	t.Helper()
	d, err := wikitext.New(text)
	require.NoError(t, err)
	return analysis.Analyze(d, analysis.DefaultOptions()).Findings
}

func healText(t *testing.T, text string) string {
	t.Helper()
	plan := heal.PlanFindings(text, analyzeFindings(t, text))
	healed, err := heal.Apply(text, plan.Edits)
	require.NoError(t, err)
	return healed
}

func TestPlanFindings_UnclosedTag(t *testing.T) {
	t.Parallel()

	text := "before <div>dangling"
	plan := heal.PlanFindings(text, analyzeFindings(t, text))

	require.Len(t, plan.Edits, 1)
	assert.Equal(t, heal.Edit{Start: len(text), End: len(text), NewText: "</div>"}, plan.Edits[0])
	require.Len(t, plan.Healed, 1)
	assert.Equal(t, analysis.CheckUnclosedTag, plan.Healed[0].Check)
	assert.Empty(t, plan.Skipped)
}

func TestApply_ClosesNestedTagsInnermostFirst(t *testing.T) {
	t.Parallel()

	text := "<div>outer <span>inner"
	healed := healText(t, text)

	assert.Equal(t, "<div>outer <span>inner</span></div>", healed)
}

func TestApply_UnclosedComment(t *testing.T) {
	t.Parallel()

	text := "text <!-- never closed"
	healed := healText(t, text)

	assert.Equal(t, "text <!-- never closed-->", healed)
}

func TestApply_MissingLang(t *testing.T) {
	t.Parallel()

	text := "<syntaxhighlight>package main\n</syntaxhighlight>\n"
	healed := healText(t, text)

	assert.Equal(t, "<syntaxhighlight lang=\"go\">package main\n</syntaxhighlight>\n", healed)
}

func TestApply_HealedDocumentIsClean(t *testing.T) {
	t.Parallel()

	text := "== Code ==\n<source>SELECT 1;</source>\n<div>open\n"
	healed := healText(t, text)

	for _, f := range analyzeFindings(t, healed) {
		assert.False(t, f.Healable, "healed document still has healable finding %s", f.Check)
	}
}

func TestPlanFindings_IgnoresUnhealable(t *testing.T) {
	t.Parallel()

	// A raw template is reported but cannot be repaired automatically.
	text := "{{<bad|1}}"
	plan := heal.PlanFindings(text, analyzeFindings(t, text))

	assert.True(t, plan.Empty())
	assert.Empty(t, plan.Skipped)
}

func TestApply_NoEdits(t *testing.T) {
	t.Parallel()

	out, err := heal.Apply("unchanged", nil)
	require.NoError(t, err)
	assert.Equal(t, "unchanged", out)
}

func TestApply_OutOfRangeEdit(t *testing.T) {
	t.Parallel()

	_, err := heal.Apply("short", []heal.Edit{{Start: 0, End: 99}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestApply_OverlappingEdits(t *testing.T) {
	t.Parallel()

	_, err := heal.Apply("0123456789", []heal.Edit{
		{Start: 0, End: 5, NewText: "a"},
		{Start: 3, End: 8, NewText: "b"},
	})
	require.Error(t, err)

	var conflict *heal.ConflictError
	require.ErrorAs(t, err, &conflict)
}
