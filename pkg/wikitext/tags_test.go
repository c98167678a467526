package wikitext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanTags_ClosedPair(t *testing.T) {
	t.Parallel()

	tags := ScanTags("a<ref>b</ref>c", nil)

	require.Len(t, tags, 1)
	tag := tags[0]
	assert.Equal(t, "ref", tag.Name)
	assert.Equal(t, "<ref>", tag.Start)
	assert.Equal(t, "</ref>", tag.End)
	require.NotNil(t, tag.Content)
	assert.Equal(t, "b", *tag.Content)
	assert.Equal(t, 1, tag.StartIndex)
	assert.Equal(t, 13, tag.EndIndex)
	assert.False(t, tag.Unclosed)
	assert.False(t, tag.Void)
}

func TestScanTags_MismatchedNesting(t *testing.T) {
	t.Parallel()

	input := "<span>a<div><del>b</span><span>c"
	tags := ScanTags(input, nil)

	require.Len(t, tags, 4)

	span1 := tags[0]
	assert.Equal(t, "span", span1.Name)
	assert.Equal(t, 0, span1.StartIndex)
	assert.Equal(t, 25, span1.EndIndex)
	assert.False(t, span1.Unclosed)

	div := tags[1]
	assert.Equal(t, "div", div.Name)
	assert.True(t, div.Unclosed)
	assert.Equal(t, 7, div.StartIndex)
	assert.Equal(t, 18, div.EndIndex)
	assert.Equal(t, "</div>", div.End)

	del := tags[2]
	assert.Equal(t, "del", del.Name)
	assert.True(t, del.Unclosed)
	assert.Equal(t, 12, del.StartIndex)
	assert.Equal(t, 18, del.EndIndex)
	require.NotNil(t, del.Content)
	assert.Equal(t, "b", *del.Content)

	span2 := tags[3]
	assert.Equal(t, "span", span2.Name)
	assert.True(t, span2.Unclosed)
	assert.Equal(t, 25, span2.StartIndex)
	assert.Equal(t, len(input), span2.EndIndex)
}

func TestScanTags_NestLevels(t *testing.T) {
	t.Parallel()

	tags := ScanTags("<div><span>x</span></div>", nil)

	require.Len(t, tags, 2)
	assert.Equal(t, "div", tags[0].Name)
	assert.Equal(t, 0, tags[0].NestLevel)
	assert.Equal(t, "span", tags[1].Name)
	assert.Equal(t, 1, tags[1].NestLevel)
}

func TestScanTags_VoidAndSelfClosing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		tag   string
		void  bool
	}{
		{name: "br", input: "a<br>b", tag: "br", void: true},
		{name: "end tag form of br", input: "a</br>b", tag: "br", void: true},
		{name: "self-closed br", input: "a<br/>b", tag: "br", void: true},
		{name: "hr", input: "<hr>", tag: "hr", void: true},
		{name: "self-closed extension tag", input: "<references/>", tag: "references", void: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tags := ScanTags(tt.input, nil)
			require.Len(t, tags, 1)
			assert.Equal(t, tt.tag, tags[0].Name)
			assert.Equal(t, tt.void, tags[0].Void)
			assert.False(t, tags[0].Unclosed)
		})
	}
}

func TestScanTags_Comments(t *testing.T) {
	t.Parallel()

	tags := ScanTags("a<!-- note -->b", nil)

	require.Len(t, tags, 1)
	assert.Equal(t, CommentName, tags[0].Name)
	require.NotNil(t, tags[0].Content)
	assert.Equal(t, " note ", *tags[0].Content)
	assert.Equal(t, "<!-- note -->", tags[0].Text)
	assert.False(t, tags[0].Unclosed)
}

func TestScanTags_UnclosedComment(t *testing.T) {
	t.Parallel()

	input := "a<!-- runs off"
	tags := ScanTags(input, nil)

	require.Len(t, tags, 1)
	assert.Equal(t, CommentName, tags[0].Name)
	assert.True(t, tags[0].Unclosed)
	assert.Equal(t, len(input), tags[0].EndIndex)
	require.NotNil(t, tags[0].Content)
	assert.Equal(t, " runs off", *tags[0].Content)
}

func TestScanTags_SkipFlag(t *testing.T) {
	t.Parallel()

	tags := ScanTags("<nowiki><ref>x</ref></nowiki>", nil)

	require.Len(t, tags, 2)
	assert.Equal(t, "nowiki", tags[0].Name)
	assert.False(t, tags[0].Skip, "a skip tag is not inside its own range")
	assert.Equal(t, "ref", tags[1].Name)
	assert.True(t, tags[1].Skip)
}

func TestScanTags_CommentInsideSkipTag(t *testing.T) {
	t.Parallel()

	// Comment scanning is not suppressed inside another skip tag: the
	// end tag swallowed by the comment does not close the nowiki, which
	// runs to the later closer instead. Best-effort behavior, pinned here.
	input := "<nowiki>x <!-- </nowiki> --> y</nowiki>"
	tags := ScanTags(input, nil)

	require.Len(t, tags, 2)
	nowiki := tags[0]
	assert.Equal(t, "nowiki", nowiki.Name)
	assert.Equal(t, input, nowiki.Text)
	assert.False(t, nowiki.Skip)

	comment := tags[1]
	assert.Equal(t, CommentName, comment.Name)
	assert.Equal(t, "<!-- </nowiki> -->", comment.Text)
	assert.True(t, comment.Skip, "the comment lies inside the nowiki range")
}

func TestScanTags_CustomSkipNames(t *testing.T) {
	t.Parallel()

	input := "<poem><ref>x</ref></poem>"

	tags := ScanTags(input, nil)
	require.Len(t, tags, 2)
	assert.False(t, tags[1].Skip)

	tags = ScanTags(input, []string{"poem"})
	require.Len(t, tags, 2)
	assert.True(t, tags[1].Skip)
}

func TestScanTags_StrayEndTag(t *testing.T) {
	t.Parallel()

	tags := ScanTags("a</div>b", nil)
	assert.Empty(t, tags)
}

func TestScanTags_AttributesPreserved(t *testing.T) {
	t.Parallel()

	tags := ScanTags(`<ref name="a">x</ref>`, nil)

	require.Len(t, tags, 1)
	assert.Equal(t, `<ref name="a">`, tags[0].Start)
	assert.Equal(t, "ref", tags[0].Name)
}
