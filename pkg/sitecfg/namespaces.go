package sitecfg

// Well-known namespace IDs. These match the conventional MediaWiki numbering
// and are stable across sites; only the display names vary.
const (
	NSMedia         = -2
	NSSpecial       = -1
	NSMain          = 0
	NSTalk          = 1
	NSUser          = 2
	NSUserTalk      = 3
	NSProject       = 4
	NSProjectTalk   = 5
	NSFile          = 6
	NSFileTalk      = 7
	NSMediaWiki     = 8
	NSMediaWikiTalk = 9
	NSTemplate      = 10
	NSTemplateTalk  = 11
	NSHelp          = 12
	NSHelpTalk      = 13
	NSCategory      = 14
	NSCategoryTalk  = 15
)

// Namespace describes a single namespace: its numeric ID, canonical name,
// accepted aliases, and whether titles in it are fully case-sensitive.
type Namespace struct {
	ID            int      `yaml:"id"`
	Name          string   `yaml:"name"`
	Aliases       []string `yaml:"aliases,omitempty"`
	CaseSensitive bool     `yaml:"caseSensitive,omitempty"`
}

// IsTalk reports whether the namespace is a talk namespace.
func (n Namespace) IsTalk() bool {
	return n.ID > 0 && n.ID%2 == 1
}
