package sitecfg

// TagTier distinguishes the two classes of legal wiki tags.
type TagTier int

// Tag tiers.
const (
	// TierUnknown means the name is not a legal wiki tag.
	TierUnknown TagTier = iota
	// TierHTML covers HTML elements permitted in wiki markup.
	TierHTML
	// TierExtension covers MediaWiki extension tags.
	TierExtension
)

// htmlTags lists HTML elements permitted in wiki markup.
var htmlTags = map[string]bool{
	"abbr": true, "b": true, "bdi": true, "bdo": true, "big": true,
	"blockquote": true, "br": true, "caption": true, "center": true,
	"cite": true, "code": true, "data": true, "dd": true, "del": true,
	"dfn": true, "div": true, "dl": true, "dt": true, "em": true,
	"font": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "hr": true, "i": true, "ins": true,
	"kbd": true, "li": true, "link": true, "mark": true, "meta": true,
	"ol": true, "p": true, "q": true, "rb": true, "rp": true, "rt": true,
	"rtc": true, "ruby": true, "s": true, "samp": true, "small": true,
	"span": true, "strike": true, "strong": true, "sub": true, "sup": true,
	"table": true, "td": true, "th": true, "time": true, "tr": true,
	"tt": true, "u": true, "ul": true, "var": true, "wbr": true,
}

// extensionTags lists MediaWiki extension tags.
var extensionTags = map[string]bool{
	"categorytree": true, "ce": true, "charinsert": true, "chem": true,
	"gallery": true, "graph": true, "hiero": true, "imagemap": true,
	"includeonly": true, "indicator": true, "inputbox": true,
	"langconvert": true, "mapframe": true, "maplink": true, "math": true,
	"noinclude": true, "nowiki": true, "onlyinclude": true, "poem": true,
	"pre": true, "ref": true, "references": true, "score": true,
	"section": true, "source": true, "syntaxhighlight": true,
	"templatedata": true, "templatestyles": true, "timeline": true,
}

// TagTierOf reports which tier, if any, a tag name belongs to.
// Names are matched case-insensitively by the caller's prior lowercasing;
// this function expects a lowercase name.
func TagTierOf(name string) TagTier {
	switch {
	case extensionTags[name]:
		return TierExtension
	case htmlTags[name]:
		return TierHTML
	default:
		return TierUnknown
	}
}

// IsValidTag reports whether name is a legal wiki tag in either tier.
// The registry is a public query only; tag scanning accepts any
// syntactically tag-shaped lexeme regardless of validity.
func IsValidTag(name string) bool {
	return TagTierOf(name) != TierUnknown
}

// DefaultSkipTags is the default list of tag names whose content is never
// interpreted as markup. The comment pseudo-tag uses the sentinel name "!--".
func DefaultSkipTags() []string {
	return []string{"!--", "nowiki", "pre", "syntaxhighlight", "source", "math"}
}
