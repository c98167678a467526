package wikitext

import (
	"regexp"
	"sort"
	"strings"

	"github.com/yaklabco/gowikitext/pkg/sitecfg"
)

// Section is one heading-delimited region of the buffer. A synthetic top
// section (level 1, index 0, empty heading) always covers everything
// before the first real heading.
type Section struct {
	// Heading is the literal heading source, empty for the top section.
	Heading string

	// Title is the trimmed heading text.
	Title string

	// Level runs 1..6.
	Level int

	// Index is the section's position in document order, top section first.
	Index int

	// StartIndex and EndIndex bound the section including its heading.
	// A section closes at the next heading of level <= its own.
	StartIndex int
	EndIndex   int

	// Text is the section's full source slice.
	Text string
}

var headingLine = regexp.MustCompile(`^(={1,6})(.+?)(={1,6})[ \t]*$`)

var htmlHeadingLevels = map[string]int{
	"h1": 1, "h2": 2, "h3": 3, "h4": 4, "h5": 5, "h6": 6,
}

// ScanSections merges HTML heading tags and =wiki= heading lines into an
// index-ordered section list with computed extents. Pass the buffer's tag
// scan so it is not recomputed; nil triggers a fresh scan.
func ScanSections(text string, tags []*Tag, skipNames []string) []*Section {
	if tags == nil {
		tags = ScanTags(text, skipNames)
	}
	if skipNames == nil {
		skipNames = sitecfg.DefaultSkipTags()
	}
	skips := buildSkipRanges(tags, skipNames)

	var sections []*Section
	for _, t := range tags {
		level, ok := htmlHeadingLevels[t.Name]
		if !ok || t.Skip || skips.covers(t.StartIndex) {
			continue
		}
		title := ""
		if t.Content != nil {
			title = strings.TrimSpace(*t.Content)
		}
		sections = append(sections, &Section{
			Heading:    t.Text,
			Title:      title,
			Level:      level,
			StartIndex: t.StartIndex,
			EndIndex:   t.EndIndex,
		})
	}
	sections = append(sections, scanHeadingLines(text, tags, skips)...)

	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].StartIndex < sections[j].StartIndex
	})

	firstHeading := len(text)
	if len(sections) > 0 {
		firstHeading = sections[0].StartIndex
	}
	top := &Section{Level: 1, StartIndex: 0, EndIndex: firstHeading}
	sections = append([]*Section{top}, sections...)

	// A section runs until the next heading that is at or above its level.
	for i, s := range sections {
		s.Index = i
		if i == 0 {
			continue
		}
		s.EndIndex = len(text)
		for _, next := range sections[i+1:] {
			if next.Level <= s.Level {
				s.EndIndex = next.StartIndex
				break
			}
		}
	}
	for _, s := range sections {
		s.Text = text[s.StartIndex:s.EndIndex]
	}
	return sections
}

// scanHeadingLines finds line-anchored =...= headings. Comments on a
// heading line are blanked before matching, so a trailing comment does not
// disqualify the line and a level overflow folds back into the title.
func scanHeadingLines(text string, tags []*Tag, skips skipRanges) []*Section {
	var sections []*Section
	lineStart := 0
	for lineStart <= len(text) {
		lineEnd := len(text)
		if nl := strings.IndexByte(text[lineStart:], '\n'); nl >= 0 {
			lineEnd = lineStart + nl
		}

		line := text[lineStart:lineEnd]
		if len(line) > 0 && line[0] == '=' && !skips.covers(lineStart) {
			if s := matchHeadingLine(blankComments(line, lineStart, tags), lineStart); s != nil {
				s.Heading = line
				sections = append(sections, s)
			}
		}

		if lineEnd == len(text) {
			break
		}
		lineStart = lineEnd + 1
	}
	return sections
}

// blankComments replaces any comment-tag characters inside the line with
// spaces of equal length, preserving offsets.
func blankComments(line string, lineStart int, tags []*Tag) string {
	var buf []byte
	for _, t := range tags {
		if t.Name != CommentName {
			continue
		}
		s, e := t.StartIndex-lineStart, t.EndIndex-lineStart
		if e <= 0 || s >= len(line) {
			continue
		}
		if buf == nil {
			buf = []byte(line)
		}
		for i := max(s, 0); i < min(e, len(line)); i++ {
			buf[i] = ' '
		}
	}
	if buf == nil {
		return line
	}
	return string(buf)
}

func matchHeadingLine(line string, lineStart int) *Section {
	m := headingLine.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	level := min(len(m[1]), len(m[3]))
	title := m[2]
	if len(m[1]) > level {
		title = strings.Repeat("=", len(m[1])-level) + title
	}
	if len(m[3]) > level {
		title += strings.Repeat("=", len(m[3])-level)
	}
	return &Section{
		Title:      strings.TrimSpace(title),
		Level:      level,
		StartIndex: lineStart,
		EndIndex:   lineStart + len(line),
	}
}
