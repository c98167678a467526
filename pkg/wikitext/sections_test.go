package wikitext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanSections_HeadingTree(t *testing.T) {
	t.Parallel()

	input := "== Foo ==\n=== Bar ===\ntext\n== Baz =="
	sections := ScanSections(input, nil, nil)

	require.Len(t, sections, 4)

	top := sections[0]
	assert.Equal(t, 1, top.Level)
	assert.Equal(t, 0, top.Index)
	assert.Equal(t, "", top.Heading)
	assert.Equal(t, 0, top.StartIndex)
	assert.Equal(t, strings.Index(input, "== Foo =="), top.EndIndex)

	foo := sections[1]
	assert.Equal(t, "Foo", foo.Title)
	assert.Equal(t, 2, foo.Level)
	assert.Equal(t, 1, foo.Index)

	bar := sections[2]
	assert.Equal(t, "Bar", bar.Title)
	assert.Equal(t, 3, bar.Level)
	assert.Equal(t, 2, bar.Index)

	baz := sections[3]
	assert.Equal(t, "Baz", baz.Title)
	assert.Equal(t, 2, baz.Level)
	assert.Equal(t, 3, baz.Index)

	// Bar nests inside Foo and its content runs exactly to Baz.
	assert.Equal(t, baz.StartIndex, bar.EndIndex)
	assert.Equal(t, baz.StartIndex, foo.EndIndex)
	assert.Greater(t, bar.StartIndex, foo.StartIndex)
	assert.Equal(t, len(input), baz.EndIndex)
}

func TestScanSections_ClosureLaw(t *testing.T) {
	t.Parallel()

	input := "a\n= A =\n== B ==\n=== C ===\n== D ==\n= E =\nf\n"
	sections := ScanSections(input, nil, nil)

	for i, s1 := range sections {
		for _, s2 := range sections[i+1:] {
			if s2.Level <= s1.Level {
				assert.LessOrEqual(t, s1.EndIndex, s2.StartIndex,
					"%q must close before %q starts", s1.Title, s2.Title)
			} else {
				assert.GreaterOrEqual(t, s1.EndIndex, s2.EndIndex,
					"%q must contain %q", s1.Title, s2.Title)
			}
		}
	}
}

func TestScanSections_LevelOverflow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		level int
		title string
	}{
		{name: "balanced", input: "=== Foo ===", level: 3, title: "Foo"},
		{name: "right overflow", input: "== Foo ===", level: 2, title: "Foo ="},
		{name: "left overflow", input: "=== Foo ==", level: 2, title: "= Foo"},
		{name: "beyond six", input: "======= Foo =======", level: 6, title: "= Foo ="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sections := ScanSections(tt.input, nil, nil)
			require.Len(t, sections, 2)
			assert.Equal(t, tt.level, sections[1].Level)
			assert.Equal(t, tt.title, sections[1].Title)
		})
	}
}

func TestScanSections_RejectsTrailingText(t *testing.T) {
	t.Parallel()

	sections := ScanSections("== Foo == bar\n", nil, nil)
	require.Len(t, sections, 1)
	assert.Equal(t, 1, sections[0].Level)
}

func TestScanSections_AllowsTrailingComment(t *testing.T) {
	t.Parallel()

	input := "== Foo ==<!-- anchor -->\ntext"
	sections := ScanSections(input, nil, nil)

	require.Len(t, sections, 2)
	assert.Equal(t, "Foo", sections[1].Title)
	assert.Equal(t, 2, sections[1].Level)
}

func TestScanSections_HTMLHeadings(t *testing.T) {
	t.Parallel()

	input := "intro\n<h2>Foo</h2>\nbody\n== Bar ==\n"
	sections := ScanSections(input, nil, nil)

	require.Len(t, sections, 3)
	assert.Equal(t, "Foo", sections[1].Title)
	assert.Equal(t, 2, sections[1].Level)
	assert.Equal(t, "<h2>Foo</h2>", sections[1].Heading)
	assert.Equal(t, "Bar", sections[2].Title)
}

func TestScanSections_SkipRegionExcluded(t *testing.T) {
	t.Parallel()

	input := "<nowiki>\n== Foo ==\n</nowiki>\n== Bar ==\n"
	sections := ScanSections(input, nil, nil)

	require.Len(t, sections, 2)
	assert.Equal(t, "Bar", sections[1].Title)
}

func TestScanSections_EmptyBuffer(t *testing.T) {
	t.Parallel()

	sections := ScanSections("", nil, nil)

	require.Len(t, sections, 1)
	assert.Equal(t, 0, sections[0].StartIndex)
	assert.Equal(t, 0, sections[0].EndIndex)
	assert.Equal(t, 1, sections[0].Level)
}
