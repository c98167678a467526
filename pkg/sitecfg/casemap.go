package sitecfg

import "unicode"

// defaultCaseOverrides maps characters whose platform first-letter
// uppercasing differs from naive Unicode case conversion. The keys and
// values are single-rune strings. Derived from the PHP/ICU divergence table
// MediaWiki ships; characters not listed fall through to unicode.ToUpper.
var defaultCaseOverrides = map[string]string{
	"ß": "ß", // no single-character uppercase form on the platform
	"ŉ": "ŉ",
	"ǅ": "ǅ", // titlecase digraphs stay titlecase
	"ǈ": "ǈ",
	"ǋ": "ǋ",
	"ǲ": "ǲ",
	"ΐ": "ΐ",
	"ΰ": "ΰ",
	"ẖ": "ẖ",
	"ẗ": "ẗ",
	"ẘ": "ẘ",
	"ẙ": "ẙ",
	"ẚ": "ẚ",
	"ὐ": "ὐ",
	"ι": "Ι",
}

// UpperFirst uppercases the first character of s using the site's override
// table, falling back to Unicode simple uppercasing. The rest of the string
// is untouched.
func (s *Site) UpperFirst(text string) string {
	if text == "" {
		return text
	}
	runes := []rune(text)
	first := string(runes[0])
	if mapped, ok := s.CaseOverrides[first]; ok {
		return mapped + string(runes[1:])
	}
	return string(unicode.ToUpper(runes[0])) + string(runes[1:])
}
