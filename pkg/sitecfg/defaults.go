package sitecfg

// Default returns a Site mirroring a standard English-language MediaWiki
// installation. It is suitable for parsing most wikitext without fetching
// live site metadata.
func Default() *Site {
	s := &Site{
		Namespaces: []Namespace{
			{ID: NSMedia, Name: "Media"},
			{ID: NSSpecial, Name: "Special"},
			{ID: NSMain, Name: ""},
			{ID: NSTalk, Name: "Talk"},
			{ID: NSUser, Name: "User"},
			{ID: NSUserTalk, Name: "User talk"},
			{ID: NSProject, Name: "Project", Aliases: []string{"WP", "Wikipedia"}},
			{ID: NSProjectTalk, Name: "Project talk", Aliases: []string{"WT", "Wikipedia talk"}},
			{ID: NSFile, Name: "File", Aliases: []string{"Image"}},
			{ID: NSFileTalk, Name: "File talk", Aliases: []string{"Image talk"}},
			{ID: NSMediaWiki, Name: "MediaWiki"},
			{ID: NSMediaWikiTalk, Name: "MediaWiki talk"},
			{ID: NSTemplate, Name: "Template", Aliases: []string{"T"}},
			{ID: NSTemplateTalk, Name: "Template talk"},
			{ID: NSHelp, Name: "Help"},
			{ID: NSHelpTalk, Name: "Help talk"},
			{ID: NSCategory, Name: "Category", Aliases: []string{"CAT"}},
			{ID: NSCategoryTalk, Name: "Category talk"},
		},
		Interwikis: []Interwiki{
			{Prefix: "en", Local: true},
			{Prefix: "de"},
			{Prefix: "es"},
			{Prefix: "fr"},
			{Prefix: "it"},
			{Prefix: "ja"},
			{Prefix: "nl"},
			{Prefix: "pl"},
			{Prefix: "pt"},
			{Prefix: "ru"},
			{Prefix: "sv"},
			{Prefix: "zh"},
			{Prefix: "commons"},
			{Prefix: "meta", Transcludable: true},
			{Prefix: "mw"},
			{Prefix: "wikt"},
			{Prefix: "wiktionary"},
			{Prefix: "w", Local: true},
			{Prefix: "wikipedia", Local: true},
			{Prefix: "s"},
			{Prefix: "q"},
			{Prefix: "b"},
			{Prefix: "d"},
			{Prefix: "v"},
			{Prefix: "species"},
			{Prefix: "incubator"},
			{Prefix: "phab"},
			{Prefix: "gerrit"},
		},
		MagicWords:    defaultMagicWords(),
		CaseOverrides: defaultCaseOverrides,
		SkipTags:      DefaultSkipTags(),
		CapitalLinks:  true,
	}
	// The built-in tables are statically consistent.
	if err := s.Build(); err != nil {
		panic(err)
	}
	return s
}

// defaultMagicWords returns the built-in magic-word table: the core parser
// functions plus the common page-name variables (the latter are not hooks
// and classify as plain templates).
func defaultMagicWords() []MagicWord {
	return []MagicWord{
		{Name: "if", FunctionHook: true},
		{Name: "ifeq", FunctionHook: true},
		{Name: "ifexist", FunctionHook: true},
		{Name: "ifexpr", FunctionHook: true},
		{Name: "iferror", FunctionHook: true},
		{Name: "switch", FunctionHook: true},
		{Name: "expr", FunctionHook: true},
		{Name: "rel2abs", FunctionHook: true},
		{Name: "titleparts", FunctionHook: true},
		{Name: "time", CaseSensitive: true, FunctionHook: true},
		{Name: "timel", CaseSensitive: true, FunctionHook: true},
		{Name: "dateformat", Aliases: []string{"formatdate"}, FunctionHook: true},
		{Name: "invoke", CaseSensitive: true, FunctionHook: true},
		{Name: "babel", FunctionHook: true},
		{Name: "categorytree", FunctionHook: true},
		{Name: "coordinates", FunctionHook: true},
		{Name: "language", FunctionHook: true},
		{Name: "lst", Aliases: []string{"section"}, FunctionHook: true},
		{Name: "lsth", Aliases: []string{"section-h"}, FunctionHook: true},
		{Name: "lstx", Aliases: []string{"section-x"}, FunctionHook: true},
		{Name: "property", FunctionHook: true},
		{Name: "statements", FunctionHook: true},
		{Name: "target", FunctionHook: true},
		{Name: "int", FunctionHook: true},
		{Name: "ns", FunctionHook: true},
		{Name: "nse", FunctionHook: true},
		{Name: "localurl", FunctionHook: true},
		{Name: "localurle", FunctionHook: true},
		{Name: "fullurl", FunctionHook: true},
		{Name: "fullurle", FunctionHook: true},
		{Name: "canonicalurl", FunctionHook: true},
		{Name: "canonicalurle", FunctionHook: true},
		{Name: "filepath", FunctionHook: true},
		{Name: "urlencode", FunctionHook: true},
		{Name: "anchorencode", FunctionHook: true},
		{Name: "lc", FunctionHook: true},
		{Name: "lcfirst", FunctionHook: true},
		{Name: "uc", FunctionHook: true},
		{Name: "ucfirst", FunctionHook: true},
		{Name: "formatnum", FunctionHook: true},
		{Name: "grammar", FunctionHook: true},
		{Name: "gender", FunctionHook: true},
		{Name: "plural", FunctionHook: true},
		{Name: "bidi", FunctionHook: true},
		{Name: "padleft", FunctionHook: true},
		{Name: "padright", FunctionHook: true},
		{Name: "pagesincategory", Aliases: []string{"pagesincat"}, FunctionHook: true},
		{Name: "pagesize", FunctionHook: true},
		{Name: "protectionlevel", FunctionHook: true},
		{Name: "protectionexpiry", FunctionHook: true},
		{Name: "pagename", FunctionHook: true},
		{Name: "pagenamee", FunctionHook: true},
		{Name: "fullpagename", FunctionHook: true},
		{Name: "fullpagenamee", FunctionHook: true},
		{Name: "subpagename", FunctionHook: true},
		{Name: "basepagename", FunctionHook: true},
		{Name: "rootpagename", FunctionHook: true},
		{Name: "talkpagename", FunctionHook: true},
		{Name: "subjectpagename", FunctionHook: true},
		{Name: "namespacee", FunctionHook: true},
		{Name: "namespacenumber", FunctionHook: true},
		{Name: "talkspace", FunctionHook: true},
		{Name: "subjectspace", FunctionHook: true},
		{Name: "revisionid", FunctionHook: true},
		{Name: "revisionuser", FunctionHook: true},
		{Name: "revisiontimestamp", FunctionHook: true},
		{Name: "numberofpages", FunctionHook: true},
		{Name: "numberofusers", FunctionHook: true},
		{Name: "numberofarticles", FunctionHook: true},
		{Name: "numberoffiles", FunctionHook: true},
		{Name: "numberofedits", FunctionHook: true},

		// Variables: recorded for completeness, never matched as hooks.
		{Name: "CURRENTYEAR", CaseSensitive: true},
		{Name: "CURRENTMONTH", CaseSensitive: true},
		{Name: "CURRENTDAY", CaseSensitive: true},
		{Name: "PAGENAME", CaseSensitive: true},
		{Name: "FULLPAGENAME", CaseSensitive: true},
		{Name: "NAMESPACE", CaseSensitive: true},
		{Name: "SITENAME", CaseSensitive: true},
	}
}
