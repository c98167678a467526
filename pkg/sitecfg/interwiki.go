package sitecfg

// Interwiki describes a single interwiki prefix entry.
type Interwiki struct {
	// Prefix is the prefix as written before the colon, e.g. "commons".
	Prefix string `yaml:"prefix"`

	// Local marks a prefix that refers to this same wiki (for example the
	// wiki's own language code). A local prefix is absorbed during title
	// resolution rather than kept on the resulting title.
	Local bool `yaml:"local,omitempty"`

	// Transcludable reports whether templates can be transcluded across
	// this prefix. The parser records it but does not act on it.
	Transcludable bool `yaml:"transcludable,omitempty"`
}
