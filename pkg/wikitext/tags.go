package wikitext

import (
	"regexp"
	"sort"
	"strings"

	"github.com/yaklabco/gowikitext/pkg/sitecfg"
)

// CommentName is the sentinel tag name for HTML comments, distinct from
// any real tag name.
const CommentName = "!--"

// Tag is one HTML or extension tag recovered from the buffer.
type Tag struct {
	// Name is the lowercased tag name, or CommentName for comments.
	Name string

	// Start is the literal start-tag text, including attributes.
	Start string

	// End is the literal end-tag text. For unclosed tags it holds the
	// synthesized closing tag; for void and self-closed tags it is empty.
	End string

	// Content is the text between start and end tag. Nil only for void
	// tags, which cannot have content.
	Content *string

	// Text is the tag's full source slice, buffer[StartIndex:EndIndex].
	Text string

	// StartIndex and EndIndex bound the tag's full extent.
	StartIndex int
	EndIndex   int

	// NestLevel is the number of open tags enclosing this one.
	NestLevel int

	// Void marks intrinsically void elements (br, hr, wbr, ...).
	Void bool

	// Unclosed marks tags whose end tag was synthesized.
	Unclosed bool

	// SelfClosing marks tags written in <name/> form.
	SelfClosing bool

	// Skip marks tags lying inside a no-parse region.
	Skip bool
}

// voidTags are the elements that never take content.
var voidTags = map[string]bool{
	"br": true, "hr": true, "wbr": true, "link": true, "meta": true,
}

// tagLexeme matches any syntactically tag-shaped lexeme: validity of the
// name is not consulted during scanning.
var tagLexeme = regexp.MustCompile(`<(/?)([a-zA-Z][a-zA-Z0-9]*)((?:\s[^>]*?)?)(/?)>|<!--`)

// openTag tracks one entry on the scanner's stack of unmatched start tags.
type openTag struct {
	name        string
	lexeme      string
	startIndex  int
	lexemeEnd   int
	selfClosing bool
	nestLevel   int
}

// asUnclosed converts a dangling start tag into a synthetic unclosed Tag
// whose content runs to end.
func (o *openTag) asUnclosed(text string, end int) *Tag {
	content := text[o.lexemeEnd:end]
	return &Tag{
		Name:        o.name,
		Start:       o.lexeme,
		End:         "</" + o.name + ">",
		Content:     &content,
		Text:        text[o.startIndex:end],
		StartIndex:  o.startIndex,
		EndIndex:    end,
		NestLevel:   o.nestLevel,
		Unclosed:    true,
		SelfClosing: o.selfClosing,
	}
}

// ScanTags recovers every tag in text in a single forward pass, tolerating
// unclosed and mismatched tags. Skip flags are computed against skipNames
// (pass nil for the default list).
func ScanTags(text string, skipNames []string) []*Tag {
	if skipNames == nil {
		skipNames = sitecfg.DefaultSkipTags()
	}

	var tags []*Tag
	var stack []*openTag

	pos := 0
	for pos < len(text) {
		loc := tagLexeme.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		abs := func(i int) int {
			if loc[i] < 0 {
				return -1
			}
			return pos + loc[i]
		}
		lexStart, lexEnd := abs(0), abs(1)

		// Comment lexeme: only the "<!--" alternative has no name group.
		if abs(4) < 0 {
			tags = append(tags, scanComment(text, lexStart, len(stack)))
			pos = tags[len(tags)-1].EndIndex
			continue
		}

		closing := loc[3] > loc[2]
		name := strings.ToLower(text[abs(4):abs(5)])
		selfClosed := loc[9] > loc[8]
		lexeme := text[lexStart:lexEnd]

		// Host-platform convention: an end-tag form of br is the void
		// element itself.
		if closing && name == "br" {
			closing = false
		}

		switch {
		case !closing && voidTags[name]:
			tags = append(tags, &Tag{
				Name:        name,
				Start:       lexeme,
				Text:        lexeme,
				StartIndex:  lexStart,
				EndIndex:    lexEnd,
				NestLevel:   len(stack),
				Void:        true,
				SelfClosing: selfClosed,
			})

		case !closing && selfClosed && sitecfg.TagTierOf(name) == sitecfg.TierExtension:
			// Pseudo-void: an extension tag in self-closing form is
			// complete on its own.
			content := ""
			tags = append(tags, &Tag{
				Name:        name,
				Start:       lexeme,
				Content:     &content,
				Text:        lexeme,
				StartIndex:  lexStart,
				EndIndex:    lexEnd,
				NestLevel:   len(stack),
				SelfClosing: true,
			})

		case !closing:
			stack = append(stack, &openTag{
				name:        name,
				lexeme:      lexeme,
				startIndex:  lexStart,
				lexemeEnd:   lexEnd,
				selfClosing: selfClosed,
				nestLevel:   len(stack),
			})

		default:
			// Pop-match by name, not strictly LIFO: unmatched opens
			// above the match are forcibly closed here.
			match := -1
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i].name == name {
					match = i
					break
				}
			}
			if match < 0 {
				break // stray end tag, left as plain text
			}
			for i := len(stack) - 1; i > match; i-- {
				tags = append(tags, stack[i].asUnclosed(text, lexStart))
			}
			o := stack[match]
			content := text[o.lexemeEnd:lexStart]
			tags = append(tags, &Tag{
				Name:        o.name,
				Start:       o.lexeme,
				End:         lexeme,
				Content:     &content,
				Text:        text[o.startIndex:lexEnd],
				StartIndex:  o.startIndex,
				EndIndex:    lexEnd,
				NestLevel:   o.nestLevel,
				SelfClosing: o.selfClosing,
			})
			stack = stack[:match]
		}

		pos = lexEnd
	}

	// Anything still open is closed synthetically at end of buffer.
	for i := len(stack) - 1; i >= 0; i-- {
		tags = append(tags, stack[i].asUnclosed(text, len(text)))
	}

	sort.SliceStable(tags, func(i, j int) bool {
		if tags[i].StartIndex != tags[j].StartIndex {
			return tags[i].StartIndex < tags[j].StartIndex
		}
		return tags[i].EndIndex > tags[j].EndIndex
	})

	skips := buildSkipRanges(tags, skipNames)
	for _, t := range tags {
		t.Skip = skips.containsStrict(t.StartIndex, t.EndIndex)
	}

	return tags
}

// scanComment consumes a comment starting at start, synthesizing the
// closer when the comment runs past end of buffer.
func scanComment(text string, start, nestLevel int) *Tag {
	end := strings.Index(text[start+4:], "-->")
	if end < 0 {
		content := text[start+4:]
		return &Tag{
			Name:       CommentName,
			Start:      "<!--",
			End:        "-->",
			Content:    &content,
			Text:       text[start:],
			StartIndex: start,
			EndIndex:   len(text),
			NestLevel:  nestLevel,
			Unclosed:   true,
		}
	}
	close := start + 4 + end
	content := text[start+4 : close]
	return &Tag{
		Name:       CommentName,
		Start:      "<!--",
		End:        "-->",
		Content:    &content,
		Text:       text[start : close+3],
		StartIndex: start,
		EndIndex:   close + 3,
		NestLevel:  nestLevel,
	}
}
