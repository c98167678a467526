package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/gowikitext/internal/configloader"
	"github.com/yaklabco/gowikitext/internal/logging"
	"github.com/yaklabco/gowikitext/pkg/analysis"
	"github.com/yaklabco/gowikitext/pkg/config"
	"github.com/yaklabco/gowikitext/pkg/existstore"
	"github.com/yaklabco/gowikitext/pkg/sitecfg"
	"github.com/yaklabco/gowikitext/pkg/title"
	"github.com/yaklabco/gowikitext/pkg/wikitext"
)

// loadConfiguration resolves the effective config for a command, merging
// files, environment, and the CLI overlay.
func loadConfiguration(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	logger := logging.Default()
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	return loadResult.Config, nil
}

// pageEnvironment holds the parse setup shared by every page of a run.
type pageEnvironment struct {
	site     *sitecfg.Site
	skipTags []string
	registry title.Registry
	store    *existstore.Store
}

// newPageEnvironment builds the parse environment from config: the site
// definition, skip tags, and the page-existence registry.
func newPageEnvironment(cfg *config.Config) (*pageEnvironment, error) {
	env := &pageEnvironment{skipTags: cfg.SkipTags}

	if cfg.Site != "" {
		data, err := os.ReadFile(cfg.Site)
		if err != nil {
			return nil, fmt.Errorf("read site definition %s: %w", cfg.Site, err)
		}
		site, err := sitecfg.FromYAML(data)
		if err != nil {
			return nil, fmt.Errorf("parse site definition %s: %w", cfg.Site, err)
		}
		env.site = site
	} else {
		env.site = sitecfg.Default()
	}

	if cfg.Registry != "" {
		store, err := existstore.Open(cfg.Registry)
		if err != nil {
			return nil, fmt.Errorf("open registry %s: %w", cfg.Registry, err)
		}
		env.store = store
		env.registry = store
	}

	return env, nil
}

// Close releases the registry store, if one was opened.
func (e *pageEnvironment) Close() error {
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}

// newDocument parses content with the environment's settings.
func (e *pageEnvironment) newDocument(content string) (*wikitext.Document, error) {
	opts := []wikitext.Option{wikitext.WithSite(e.site)}
	if len(e.skipTags) > 0 {
		opts = append(opts, wikitext.WithSkipTags(e.skipTags...))
	}
	if e.registry != nil {
		opts = append(opts, wikitext.WithRegistry(e.registry))
	}
	return wikitext.New(content, opts...)
}

// filterReport applies per-check config to a report: disabled checks drop
// out, severity overrides apply, and the totals and by-check views are
// recomputed. Construct counts are untouched.
func filterReport(report *analysis.Report, cfg *config.Config) *analysis.Report {
	filtered := *report
	filtered.Findings = nil

	for _, f := range report.Findings {
		name := string(f.Check)
		if !cfg.CheckEnabled(name) {
			continue
		}
		if cc, ok := cfg.Checks[name]; ok && cc.Severity != nil {
			f.Severity = *cc.Severity
		}
		filtered.Findings = append(filtered.Findings, f)
	}

	filtered.Totals.Findings = 0
	filtered.Totals.Warnings = 0
	filtered.Totals.Infos = 0
	filtered.Totals.Healable = 0
	byCheck := make(map[analysis.Check]*analysis.CheckAnalysis)
	for _, f := range filtered.Findings {
		filtered.Totals.Findings++
		switch f.Severity {
		case analysis.SeverityWarning:
			filtered.Totals.Warnings++
		case analysis.SeverityInfo:
			filtered.Totals.Infos++
		}
		if f.Healable {
			filtered.Totals.Healable++
		}

		ca, ok := byCheck[f.Check]
		if !ok {
			ca = &analysis.CheckAnalysis{Check: f.Check, Severity: f.Severity}
			byCheck[f.Check] = ca
		}
		ca.Count++
		if f.Healable {
			ca.Healable = true
		}
	}

	filtered.ByCheck = nil
	for _, ca := range byCheck {
		filtered.ByCheck = append(filtered.ByCheck, *ca)
	}
	slices.SortFunc(filtered.ByCheck, func(a, b analysis.CheckAnalysis) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(string(a.Check), string(b.Check))
	})

	return &filtered
}

// sourceContext extracts the source line and 1-based column for a finding.
func sourceContext(content string, f analysis.Finding) (line string, column int) {
	offset := f.StartIndex
	if offset < 0 || offset > len(content) {
		return "", 0
	}
	lineStart := strings.LastIndexByte(content[:offset], '\n') + 1
	lineEnd := strings.IndexByte(content[offset:], '\n')
	if lineEnd < 0 {
		lineEnd = len(content)
	} else {
		lineEnd += offset
	}
	return content[lineStart:lineEnd], offset - lineStart + 1
}

// terminalWidth returns the width of the terminal attached to stdout, or
// zero when stdout is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}
