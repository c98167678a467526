package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gowikitext/internal/logging"
	"github.com/yaklabco/gowikitext/pkg/config"
	"github.com/yaklabco/gowikitext/pkg/element"
	"github.com/yaklabco/gowikitext/pkg/fsutil"
	"github.com/yaklabco/gowikitext/pkg/wikitext"
)

// inspectKinds are the construct categories inspect knows how to dump.
var inspectKinds = []string{"tags", "sections", "templates", "links", "parameters"}

type inspectFlags struct {
	format   string
	kinds    []string
	site     string
	registry string
	skipTags []string
}

func newInspectCommand() *cobra.Command {
	flags := &inspectFlags{}

	cmd := &cobra.Command{
		Use:   "inspect [flags] <path>...",
		Short: "Dump the constructs of wikitext pages",
		Long: `Parse wikitext pages and list the constructs found in each: tags,
sections, templates and parser functions, wikilinks, and triple-brace
parameters, with their byte offsets.

Constructs inside no-parse regions (nowiki, pre, comments, and any
configured skip tags) are reported with skip=true.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "text",
		"output format (text, json)")
	cmd.Flags().StringSliceVarP(&flags.kinds, "kind", "k", nil,
		fmt.Sprintf("construct kinds to list (%s; default all)", strings.Join(inspectKinds, ", ")))
	cmd.Flags().StringVar(&flags.site, "site", "",
		"path to a site configuration YAML file")
	cmd.Flags().StringVar(&flags.registry, "registry", "",
		"path to a page-existence registry database")
	cmd.Flags().StringSliceVar(&flags.skipTags, "skip-tag", nil,
		"additional tag names treated as no-parse regions")

	return cmd
}

// pageInspection is one page's construct dump, shaped for JSON output.
type pageInspection struct {
	Path       string          `json:"path"`
	Tags       []tagInspection `json:"tags,omitempty"`
	Sections   []sectionInfo   `json:"sections,omitempty"`
	Templates  []templateInfo  `json:"templates,omitempty"`
	Links      []linkInfo      `json:"links,omitempty"`
	Parameters []parameterInfo `json:"parameters,omitempty"`
	Counts     map[string]int  `json:"counts"`
	Error      string          `json:"error,omitempty"`
}

type tagInspection struct {
	Name        string `json:"name"`
	Start       int    `json:"start"`
	End         int    `json:"end"`
	SelfClosing bool   `json:"selfClosing,omitempty"`
	Unclosed    bool   `json:"unclosed,omitempty"`
	Skip        bool   `json:"skip,omitempty"`
}

type sectionInfo struct {
	Title string `json:"title"`
	Level int    `json:"level"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

type templateInfo struct {
	Kind  string `json:"kind"`
	Name  string `json:"name"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Skip  bool   `json:"skip,omitempty"`
}

type linkInfo struct {
	Kind   string `json:"kind"`
	Target string `json:"target"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Skip   bool   `json:"skip,omitempty"`
}

type parameterInfo struct {
	Key     string `json:"key"`
	Default string `json:"default,omitempty"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Skip    bool   `json:"skip,omitempty"`
}

func runInspect(cmd *cobra.Command, args []string, flags *inspectFlags) error {
	kinds, err := resolveInspectKinds(flags.kinds)
	if err != nil {
		return err
	}

	cfg, err := loadConfiguration(cmd, inspectCLIConfig(flags))
	if err != nil {
		return err
	}

	env, err := newPageEnvironment(cfg)
	if err != nil {
		return err
	}
	defer env.Close()

	ctx := cmd.Context()
	var pages []pageInspection
	var failed int
	for _, path := range args {
		page := pageInspection{Path: displayPath(path)}
		content, _, err := fsutil.ReadFile(ctx, path)
		if err == nil {
			var doc *wikitext.Document
			doc, err = env.newDocument(string(content))
			if err == nil {
				inspectPage(&page, doc, kinds)
			}
		}
		if err != nil {
			page.Error = err.Error()
			failed++
		}
		pages = append(pages, page)
	}

	if flags.format == formatJSON {
		if err := outputInspectJSON(pages); err != nil {
			return err
		}
	} else {
		outputInspectText(pages)
	}

	if failed > 0 {
		return fmt.Errorf("failed to inspect %d page(s)", failed)
	}
	return nil
}

// inspectCLIConfig maps inspect flags onto a config overlay.
func inspectCLIConfig(flags *inspectFlags) *config.Config {
	cfg := &config.Config{}
	cfg.Site = flags.site
	cfg.Registry = flags.registry
	if flags.skipTags != nil {
		cfg.SkipTags = flags.skipTags
	}
	return cfg
}

func resolveInspectKinds(requested []string) (map[string]bool, error) {
	kinds := make(map[string]bool, len(inspectKinds))
	if len(requested) == 0 {
		for _, k := range inspectKinds {
			kinds[k] = true
		}
		return kinds, nil
	}
	known := make(map[string]bool, len(inspectKinds))
	for _, k := range inspectKinds {
		known[k] = true
	}
	for _, k := range requested {
		k = strings.ToLower(strings.TrimSpace(k))
		if !known[k] {
			return nil, fmt.Errorf("unknown construct kind %q (valid: %s)",
				k, strings.Join(inspectKinds, ", "))
		}
		kinds[k] = true
	}
	return kinds, nil
}

func inspectPage(page *pageInspection, doc *wikitext.Document, kinds map[string]bool) {
	page.Counts = make(map[string]int)

	if kinds["tags"] {
		for _, t := range doc.Tags() {
			page.Tags = append(page.Tags, tagInspection{
				Name:        t.Name,
				Start:       t.StartIndex,
				End:         t.EndIndex,
				SelfClosing: t.SelfClosing,
				Unclosed:    t.Unclosed,
				Skip:        t.Skip,
			})
		}
		page.Counts["tags"] = len(page.Tags)
	}

	if kinds["sections"] {
		for _, s := range doc.Sections() {
			page.Sections = append(page.Sections, sectionInfo{
				Title: s.Title,
				Level: s.Level,
				Start: s.StartIndex,
				End:   s.EndIndex,
			})
		}
		page.Counts["sections"] = len(page.Sections)
	}

	if kinds["templates"] {
		for _, c := range doc.Templates() {
			page.Templates = append(page.Templates, templateInfo{
				Kind:  templateKindName(c),
				Name:  templateName(c),
				Start: c.StartIndex,
				End:   c.EndIndex,
				Skip:  c.Skip,
			})
		}
		page.Counts["templates"] = len(page.Templates)
	}

	if kinds["links"] {
		for _, l := range doc.Links() {
			page.Links = append(page.Links, linkInfo{
				Kind:   linkKindName(l),
				Target: linkTarget(l),
				Start:  l.StartIndex,
				End:    l.EndIndex,
				Skip:   l.Skip,
			})
		}
		page.Counts["links"] = len(page.Links)
	}

	if kinds["parameters"] {
		for _, p := range doc.Parameters() {
			info := parameterInfo{
				Key:   p.Key,
				Start: p.StartIndex,
				End:   p.EndIndex,
				Skip:  p.Skip,
			}
			if p.Default != nil {
				info.Default = *p.Default
			}
			page.Parameters = append(page.Parameters, info)
		}
		page.Counts["parameters"] = len(page.Parameters)
	}
}

func templateKindName(c *wikitext.TemplateCall) string {
	switch c.Kind {
	case wikitext.KindParserFunction:
		return "parser-function"
	case wikitext.KindRawTemplate:
		return "raw"
	default:
		return "template"
	}
}

func templateName(c *wikitext.TemplateCall) string {
	switch c.Kind {
	case wikitext.KindParserFunction:
		return c.Function.Hook
	case wikitext.KindRawTemplate:
		return c.Raw.Title
	default:
		if c.Template.Title != nil {
			return c.Template.Title.PrefixedText()
		}
		return c.Template.RawTitle
	}
}

func linkKindName(l *wikitext.Link) string {
	switch l.Kind {
	case wikitext.KindFileWikilink:
		return "file"
	case wikitext.KindRawWikilink:
		return "raw"
	default:
		return "wikilink"
	}
}

func linkTarget(l *wikitext.Link) string {
	switch l.Kind {
	case wikitext.KindFileWikilink:
		return fileLinkTarget(l.File)
	case wikitext.KindRawWikilink:
		return l.Raw.Title
	default:
		if l.Wikilink.Title != nil {
			return l.Wikilink.Title.PrefixedText()
		}
		return l.Wikilink.RawTitle
	}
}

func fileLinkTarget(f *element.FileWikilink) string {
	if f.Title != nil {
		return f.Title.PrefixedText()
	}
	return f.RawTitle
}

func outputInspectText(pages []pageInspection) {
	logger := logging.NewInteractive()

	for _, page := range pages {
		if page.Error != "" {
			logger.Error(page.Path, logging.FieldError, page.Error)
			continue
		}

		logger.Info(page.Path,
			logging.FieldTags, page.Counts["tags"],
			logging.FieldSections, page.Counts["sections"],
			logging.FieldTemplates, page.Counts["templates"],
			logging.FieldWikilinks, page.Counts["links"],
			logging.FieldParameters, page.Counts["parameters"])

		for _, t := range page.Tags {
			keyvals := []any{"start", t.Start, "end", t.End}
			if t.SelfClosing {
				keyvals = append(keyvals, "selfClosing", true)
			}
			if t.Unclosed {
				keyvals = append(keyvals, "unclosed", true)
			}
			if t.Skip {
				keyvals = append(keyvals, "skip", true)
			}
			logger.Info("tag <"+t.Name+">", keyvals...)
		}
		for _, s := range page.Sections {
			logger.Info(fmt.Sprintf("section h%d %q", s.Level, s.Title),
				"start", s.Start, "end", s.End)
		}
		for _, t := range page.Templates {
			keyvals := []any{"start", t.Start, "end", t.End}
			if t.Skip {
				keyvals = append(keyvals, "skip", true)
			}
			logger.Info(fmt.Sprintf("%s %q", t.Kind, t.Name), keyvals...)
		}
		for _, l := range page.Links {
			keyvals := []any{"start", l.Start, "end", l.End}
			if l.Skip {
				keyvals = append(keyvals, "skip", true)
			}
			logger.Info(fmt.Sprintf("%s link %q", l.Kind, l.Target), keyvals...)
		}
		for _, p := range page.Parameters {
			keyvals := []any{"start", p.Start, "end", p.End}
			if p.Default != "" {
				keyvals = append(keyvals, "default", p.Default)
			}
			if p.Skip {
				keyvals = append(keyvals, "skip", true)
			}
			logger.Info(fmt.Sprintf("parameter {{{%s}}}", p.Key), keyvals...)
		}
	}
}

func outputInspectJSON(pages []pageInspection) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(pages)
}
