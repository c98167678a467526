package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gowikitext/internal/logging"
	"github.com/yaklabco/gowikitext/internal/ui/pretty"
	"github.com/yaklabco/gowikitext/pkg/analysis"
	"github.com/yaklabco/gowikitext/pkg/config"
	"github.com/yaklabco/gowikitext/pkg/fsutil"
	"github.com/yaklabco/gowikitext/pkg/runner"
)

// ErrFindingsFound is returned when analysis reports findings; it carries
// no message of its own, only the non-zero exit code.
var ErrFindingsFound = errors.New("findings found")

type analyzeFlags struct {
	format    string
	site      string
	registry  string
	skipTags  []string
	ignore    []string
	enable    []string
	disable   []string
	strict    bool
	noContext bool
	jobs      int
}

func newAnalyzeCommand() *cobra.Command {
	flags := &analyzeFlags{}

	cmd := &cobra.Command{
		Use:   "analyze [paths...]",
		Short: "Analyze wikitext pages for structural problems",
		Long:  analyzeLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, flags)
		},
	}

	addAnalyzeFlags(cmd, flags)

	return cmd
}

const analyzeLongDescription = `Analyze wikitext pages for structural problems.

By default, analyzes all .wiki, .wikitext, and .mediawiki files in the
current directory and subdirectories. Specify paths to analyze specific
files or directories.

Examples:
  gowikitext analyze                   # Analyze current directory
  gowikitext analyze articles/         # Analyze a directory
  gowikitext analyze Main_Page.wiki    # Analyze a single page
  gowikitext analyze --format json     # Output as JSON for CI
  gowikitext analyze --strict          # Treat info findings as failures`

func addAnalyzeFlags(cmd *cobra.Command, flags *analyzeFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, table, json, summary")
	cmd.Flags().StringVar(&flags.site, "site", "", "path to a site definition YAML file")
	cmd.Flags().StringVar(&flags.registry, "registry", "",
		"path to a SQLite page-existence store")
	cmd.Flags().StringSliceVar(&flags.skipTags, "skip-tag", nil,
		"tag names whose content is excluded from parsing")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "check names to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "check names to disable")
	cmd.Flags().BoolVar(&flags.strict, "strict", false,
		"treat info findings as failures for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false,
		"hide source line context in output")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
}

// analyzeCLIConfig maps analyze flags onto a config overlay.
func analyzeCLIConfig(flags *analyzeFlags) *config.Config {
	return &config.Config{
		Site:          flags.site,
		Registry:      flags.registry,
		SkipTags:      flags.skipTags,
		Ignore:        flags.ignore,
		EnableChecks:  flags.enable,
		DisableChecks: flags.disable,
		Format:        config.OutputFormat(flags.format),
	}
}

// pageText retains per-page content and filtered reports for rendering
// after the concurrent run completes.
type pageText struct {
	mu      sync.Mutex
	content map[string]string
}

func (p *pageText) put(path, content string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.content[path] = content
}

func (p *pageText) get(path string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.content[path]
}

func runAnalyze(cmd *cobra.Command, args []string, flags *analyzeFlags) error {
	logger := logging.Default()
	start := time.Now()

	cfg, err := loadConfiguration(cmd, analyzeCLIConfig(flags))
	if err != nil {
		return err
	}

	env, err := newPageEnvironment(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := env.Close(); closeErr != nil {
			logger.Warn("closing registry", logging.FieldError, closeErr)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	texts := &pageText{content: make(map[string]string)}
	proc := runner.ProcessorFunc(func(pageCtx context.Context, path string) (*runner.PageResult, error) {
		content, _, err := fsutil.ReadFile(pageCtx, path)
		if err != nil {
			return nil, err
		}
		doc, err := env.newDocument(string(content))
		if err != nil {
			return nil, err
		}
		report := filterReport(analysis.Analyze(doc, analysis.DefaultOptions()), cfg)
		texts.put(path, string(content))
		return &runner.PageResult{Report: report}, nil
	})

	result, err := runner.New(proc).Run(ctx, runner.Options{
		Paths:        args,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         flags.jobs,
	})
	if err != nil {
		return errors.Join(errors.New("analysis run failed"), err)
	}

	logger.Debug("analysis complete",
		logging.FieldFiles, result.Stats.FilesDiscovered,
		logging.FieldFindings, result.Stats.FindingsTotal,
	)

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	out := cmd.OutOrStdout()
	if err := renderResult(out, result, texts, cfg.Format, colorMode, !flags.noContext, time.Since(start)); err != nil {
		return fmt.Errorf("render results: %w", err)
	}

	for _, file := range result.Files {
		if file.Error != nil {
			logger.Error("page failed", logging.FieldPath, file.Path, logging.FieldError, file.Error)
		}
	}
	if result.Stats.FilesErrored > 0 {
		return fmt.Errorf("%d pages could not be processed", result.Stats.FilesErrored)
	}

	if ExitCodeFromResult(result, flags.strict) != ExitSuccess {
		return ErrFindingsFound
	}
	return nil
}

// aggregateTotals sums per-page totals into one run-wide view.
func aggregateTotals(result *runner.Result) analysis.Totals {
	var agg analysis.Totals
	for _, file := range result.Files {
		if file.Result == nil || file.Result.Report == nil {
			continue
		}
		t := file.Result.Report.Totals
		agg.Bytes += t.Bytes
		agg.Tags += t.Tags
		agg.Sections += t.Sections
		agg.Parameters += t.Parameters
		agg.Templates += t.Templates
		agg.ParserFunctions += t.ParserFunctions
		agg.Wikilinks += t.Wikilinks
		agg.FileLinks += t.FileLinks
		agg.Findings += t.Findings
		agg.Warnings += t.Warnings
		agg.Infos += t.Infos
		agg.Healable += t.Healable
	}
	return agg
}

// displayPath shortens an absolute path to be relative to the working
// directory when possible.
func displayPath(path string) string {
	wd, err := filepath.Abs(".")
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func renderResult(
	out io.Writer,
	result *runner.Result,
	texts *pageText,
	format config.OutputFormat,
	colorMode string,
	showContext bool,
	elapsed time.Duration,
) error {
	colorEnabled := pretty.IsColorEnabled(colorMode, out)
	styles := pretty.NewStyles(colorEnabled)

	switch format {
	case config.FormatJSON:
		return renderJSON(out, result)
	case config.FormatTable:
		renderTable(out, result, styles, colorEnabled, elapsed)
	case config.FormatSummary:
		fmt.Fprintln(out, styles.FormatSummary(aggregateTotals(result)))
	default:
		renderText(out, result, texts, styles, showContext)
	}
	return nil
}

func renderText(
	out io.Writer,
	result *runner.Result,
	texts *pageText,
	styles *pretty.Styles,
	showContext bool,
) {
	for _, file := range result.Files {
		if file.Result == nil || file.Result.Report == nil {
			continue
		}
		report := file.Result.Report
		if len(report.Findings) == 0 {
			continue
		}

		path := displayPath(file.Path)
		content := texts.get(file.Path)
		fmt.Fprintln(out, styles.FormatFileHeader(path, len(report.Findings)))
		for _, f := range report.Findings {
			line, column := "", 0
			if showContext {
				line, column = sourceContext(content, f)
			}
			fmt.Fprintln(out, styles.FormatFinding(path, f, line, column))
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, styles.FormatSummaryOneLine(aggregateTotals(result)))
}

func renderTable(
	out io.Writer,
	result *runner.Result,
	styles *pretty.Styles,
	colorEnabled bool,
	elapsed time.Duration,
) {
	formatter := pretty.NewTableFormatter(styles, colorEnabled, terminalWidth())

	var groups [][]pretty.TableRow
	for _, file := range result.Files {
		if file.Result == nil || file.Result.Report == nil {
			continue
		}
		report := file.Result.Report
		if len(report.Findings) == 0 {
			continue
		}
		rows := make([]pretty.TableRow, 0, len(report.Findings))
		for _, f := range report.Findings {
			rows = append(rows, pretty.FindingToTableRow(displayPath(file.Path), f))
		}
		groups = append(groups, rows)
	}

	if len(groups) > 0 {
		fmt.Fprint(out, formatter.FormatTable(groups))
	}
	fmt.Fprintln(out, formatter.FormatTableSummary(aggregateTotals(result), elapsed.Round(time.Millisecond).String()))
}

// pageReportJSON is the per-page element of the JSON rendering.
type pageReportJSON struct {
	Path   string           `json:"path"`
	Report *analysis.Report `json:"report,omitempty"`
	Error  string           `json:"error,omitempty"`
}

type runReportJSON struct {
	Version string           `json:"version"`
	Pages   []pageReportJSON `json:"pages"`
	Summary analysis.Totals  `json:"summary"`
}

func renderJSON(out io.Writer, result *runner.Result) error {
	doc := runReportJSON{
		Version: analysis.ReportVersion,
		Pages:   make([]pageReportJSON, 0, len(result.Files)),
		Summary: aggregateTotals(result),
	}
	for _, file := range result.Files {
		page := pageReportJSON{Path: displayPath(file.Path)}
		if file.Error != nil {
			page.Error = file.Error.Error()
		} else if file.Result != nil {
			page.Report = file.Result.Report
		}
		doc.Pages = append(doc.Pages, page)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
