package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gowikitext/internal/logging"
	"github.com/yaklabco/gowikitext/pkg/analysis"
	"github.com/yaklabco/gowikitext/pkg/config"
	"github.com/yaklabco/gowikitext/pkg/fsutil"
	"github.com/yaklabco/gowikitext/pkg/heal"
	"github.com/yaklabco/gowikitext/pkg/runner"
)

type healFlags struct {
	dryRun    bool
	noBackups bool
	site      string
	registry  string
	skipTags  []string
	ignore    []string
	enable    []string
	disable   []string
	jobs      int
}

func newHealCommand() *cobra.Command {
	flags := &healFlags{}

	cmd := &cobra.Command{
		Use:   "heal [paths...]",
		Short: "Repair healable problems in wikitext pages",
		Long:  healLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHeal(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false,
		"show repairs without writing files")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false,
		"disable backup creation before rewriting")
	cmd.Flags().StringVar(&flags.site, "site", "", "path to a site definition YAML file")
	cmd.Flags().StringVar(&flags.registry, "registry", "",
		"path to a SQLite page-existence store")
	cmd.Flags().StringSliceVar(&flags.skipTags, "skip-tag", nil,
		"tag names whose content is excluded from parsing")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "check names to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "check names to disable")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")

	return cmd
}

const healLongDescription = `Repair healable problems in wikitext pages in place.

Healable problems are unclosed tags and comments, which get their missing
closer appended, and syntax highlighting tags without a lang attribute,
which get one suggested from their body.

Files are rewritten atomically. A sidecar backup (.gowikitext.bak) is
created before the first rewrite unless backups are disabled. Pages that
change on disk between read and write are skipped.

Examples:
  gowikitext heal                    # Heal current directory
  gowikitext heal --dry-run          # Show repairs without applying
  gowikitext heal --no-backups drafts/`

func healCLIConfig(flags *healFlags) *config.Config {
	return &config.Config{
		Site:          flags.site,
		Registry:      flags.registry,
		SkipTags:      flags.skipTags,
		Ignore:        flags.ignore,
		EnableChecks:  flags.enable,
		DisableChecks: flags.disable,
		DryRun:        flags.dryRun,
		NoBackups:     flags.noBackups,
	}
}

func runHeal(cmd *cobra.Command, args []string, flags *healFlags) error {
	logger := logging.Default()

	cfg, err := loadConfiguration(cmd, healCLIConfig(flags))
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

	backups := fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	proc := runner.ProcessorFunc(func(pageCtx context.Context, path string) (*runner.PageResult, error) {
		return healPage(pageCtx, path, env, cfg, backups)
	})

	result, err := runner.New(proc).Run(ctx, runner.Options{
		Paths:        args,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         flags.jobs,
	})
	if err != nil {
		return errors.Join(errors.New("heal run failed"), err)
	}

	reportHealOutcome(logger, result, cfg.DryRun)

	for _, file := range result.Files {
		if file.Error != nil {
			logger.Error("page failed", logging.FieldPath, file.Path, logging.FieldError, file.Error)
		}
	}
	if result.Stats.FilesErrored > 0 {
		return fmt.Errorf("%d pages could not be processed", result.Stats.FilesErrored)
	}
	return nil
}

// healPage reads, repairs, and (outside dry-run) atomically rewrites one
// page. Pages that change on disk between read and write are skipped.
func healPage(
	ctx context.Context,
	path string,
	env *pageEnvironment,
	cfg *config.Config,
	backups fsutil.BackupConfig,
) (*runner.PageResult, error) {
	logger := logging.Default()

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	doc, err := env.newDocument(string(content))
	if err != nil {
		return nil, err
	}
	report := filterReport(analysis.Analyze(doc, analysis.DefaultOptions()), cfg)

	plan := heal.PlanFindings(string(content), report.Findings)
	for _, skipped := range plan.Skipped {
		logger.Warn("cannot repair finding",
			logging.FieldPath, path,
			logging.FieldCheck, string(skipped.Check),
			logging.FieldLine, skipped.Line,
		)
	}
	if plan.Empty() {
		return &runner.PageResult{Report: report}, nil
	}

	healed, err := heal.Apply(string(content), plan.Edits)
	if err != nil {
		return nil, fmt.Errorf("heal %s: %w", path, err)
	}

	if cfg.DryRun {
		for _, f := range plan.Healed {
			logger.Info("would repair",
				logging.FieldPath, path,
				logging.FieldCheck, string(f.Check),
				logging.FieldLine, f.Line,
			)
		}
		return &runner.PageResult{Report: report, Healed: len(plan.Healed)}, nil
	}

	modified, err := fsutil.CheckModified(ctx, info)
	if err != nil {
		return nil, err
	}
	if modified {
		logger.Warn("page changed during run, skipping", logging.FieldPath, path)
		return &runner.PageResult{Report: report, Skipped: true}, nil
	}

	if _, err := fsutil.CreateBackup(ctx, path, backups); err != nil {
		return nil, fmt.Errorf("backup %s: %w", path, err)
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, path, []byte(healed), info.Mode)
	if err != nil {
		return nil, err
	}

	return &runner.PageResult{
		Report:  report,
		Healed:  len(plan.Healed),
		Written: written,
	}, nil
}

func reportHealOutcome(logger *log.Logger, result *runner.Result, dryRun bool) {
	switch {
	case dryRun:
		logger.Info("dry run complete",
			logging.FieldFiles, result.Stats.FilesProcessed,
			logging.FieldHealable, result.Stats.FindingsHealed,
		)
	case result.Stats.FindingsHealed == 0:
		logger.Info("nothing to heal",
			logging.FieldFiles, result.Stats.FilesProcessed,
		)
	default:
		logger.Info("heal complete",
			logging.FieldFiles, result.Stats.FilesProcessed,
			logging.FieldHealed, result.Stats.FindingsHealed,
			"modified", result.Stats.FilesModified,
		)
	}
	if result.Stats.FilesSkipped > 0 {
		logger.Warn("pages skipped", logging.FieldFiles, result.Stats.FilesSkipped)
	}
}
