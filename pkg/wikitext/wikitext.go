package wikitext

import (
	"fmt"

	"github.com/yaklabco/gowikitext/pkg/sitecfg"
	"github.com/yaklabco/gowikitext/pkg/title"
)

// Document owns a mutable wikitext buffer and lazily computed parse
// results per construct kind. Results are cached until the buffer is
// replaced, which invalidates every cache at once.
//
// A Document is not safe for concurrent use.
type Document struct {
	text      string
	site      *sitecfg.Site
	resolver  *title.Resolver
	registry  title.Registry
	matcher   *sitecfg.FunctionMatcher
	skipNames []string

	tags       []*Tag
	sections   []*Section
	parameters []*Parameter
	templates  []*TemplateCall
	links      []*Link

	tagsOK       bool
	sectionsOK   bool
	parametersOK bool
	templatesOK  bool
	linksOK      bool
}

// Option configures a Document at construction.
type Option func(*Document)

// WithSite sets the site configuration the document parses against.
// Default is sitecfg.Default().
func WithSite(site *sitecfg.Site) Option {
	return func(d *Document) { d.site = site }
}

// WithSkipTags overrides the tag names that delimit no-parse regions.
func WithSkipTags(names ...string) Option {
	return func(d *Document) { d.skipNames = names }
}

// WithRegistry sets the title-existence registry exposed through
// Registry. Default is an empty in-memory registry.
func WithRegistry(r title.Registry) Option {
	return func(d *Document) { d.registry = r }
}

// New creates a document over text.
func New(text string, opts ...Option) (*Document, error) {
	d := &Document{text: text}
	for _, opt := range opts {
		opt(d)
	}
	if d.site == nil {
		d.site = sitecfg.Default()
	}
	if d.skipNames == nil {
		d.skipNames = sitecfg.DefaultSkipTags()
	}
	if d.registry == nil {
		d.registry = title.NewMemoryRegistry()
	}
	d.resolver = title.NewResolver(d.site)

	matcher, err := d.site.Matcher()
	if err != nil {
		return nil, fmt.Errorf("wikitext: building parser-function table: %w", err)
	}
	d.matcher = matcher
	return d, nil
}

// Text returns the current buffer.
func (d *Document) Text() string { return d.text }

// Len returns the buffer length in bytes.
func (d *Document) Len() int { return len(d.text) }

// SetText replaces the buffer and invalidates all cached parse results.
func (d *Document) SetText(text string) {
	d.text = text
	d.tags, d.sections, d.parameters, d.templates, d.links = nil, nil, nil, nil, nil
	d.tagsOK, d.sectionsOK, d.parametersOK, d.templatesOK, d.linksOK = false, false, false, false, false
}

// Site returns the site configuration.
func (d *Document) Site() *sitecfg.Site { return d.site }

// Resolver returns the document's title resolver.
func (d *Document) Resolver() *title.Resolver { return d.resolver }

// Registry returns the title-existence registry.
func (d *Document) Registry() title.Registry { return d.registry }

// Tags returns the buffer's tags, scanning on first access.
func (d *Document) Tags() []*Tag {
	if !d.tagsOK {
		d.tags = ScanTags(d.text, d.skipNames)
		d.tagsOK = true
	}
	return d.tags
}

// Sections returns the buffer's sections, scanning on first access.
func (d *Document) Sections() []*Section {
	if !d.sectionsOK {
		d.sections = ScanSections(d.text, d.Tags(), d.skipNames)
		d.sectionsOK = true
	}
	return d.sections
}

// Parameters returns the buffer's triple-brace parameters, scanning on
// first access.
func (d *Document) Parameters() []*Parameter {
	if !d.parametersOK {
		d.parameters = ScanParameters(d.text, d.Tags(), d.skipNames)
		d.parametersOK = true
	}
	return d.parameters
}

// skips derives the buffer's no-parse regions from the tag cache.
func (d *Document) skips() skipRanges {
	return buildSkipRanges(d.Tags(), d.skipNames)
}

// baseIndexMap covers skip regions and top-level parameters, the ranges
// every higher scanner steps over.
func (d *Document) baseIndexMap() indexMap {
	return buildIndexMap(d.text, d.Tags(), d.Parameters(), d.skipNames)
}

// Templates returns the buffer's double-brace constructs, scanning on
// first access. Wikilink ranges are covered during the scan so that pipes
// inside a link are not read as parameter separators.
func (d *Document) Templates() []*TemplateCall {
	if d.templatesOK {
		return d.templates
	}

	im := d.baseIndexMap()
	for _, f := range scanFuzzyLinks(d.text, im, 0) {
		im.add(f.startIndex, indexEntry{
			text:       f.text,
			kind:       entryWikilink,
			innerStart: 2,
			innerEnd:   len(f.text) - 2,
		})
	}

	ts := &templateScanner{
		im:           im,
		galleryPipes: galleryPipeOffsets(d.Tags()),
		matcher:      d.matcher,
		resolver:     d.resolver,
	}
	calls := ts.scan(d.text, 0, 0)
	sortCalls(calls)

	skips := d.skips()
	for _, c := range calls {
		c.Skip = skips.containsStrict(c.StartIndex, c.EndIndex)
	}
	d.templates = calls
	d.templatesOK = true
	return d.templates
}

// Links returns the buffer's wikilinks, scanning on first access. The
// fuzzy scan feeding the finalizer runs with template ranges covered, so
// a pipe inside a template argument cannot split a file parameter.
func (d *Document) Links() []*Link {
	if d.linksOK {
		return d.links
	}

	im := d.baseIndexMap()
	for _, c := range d.Templates() {
		im.add(c.StartIndex, indexEntry{
			text:       c.Text,
			kind:       entryTemplate,
			innerStart: 2,
			innerEnd:   len(c.Text) - 2,
		})
	}

	fuzzy := scanFuzzyLinks(d.text, im, 0)
	d.links = finalizeLinks(fuzzy, im, d.resolver, d.skips())
	d.linksOK = true
	return d.links
}
