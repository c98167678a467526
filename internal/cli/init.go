package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gowikitext/internal/configloader"
	"github.com/yaklabco/gowikitext/internal/logging"
	"github.com/yaklabco/gowikitext/pkg/config"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new gowikitext configuration file",
		Long: `Create a new .gowikitext.yml configuration file in the current directory
with sensible defaults. The file can be customized to enable/disable checks,
change severities, point at a site configuration, and configure backups.

Examples:
  gowikitext init                    Create minimal .gowikitext.yml
  gowikitext init --full             Create full config with all checks documented
  gowikitext init --output custom.yml  Write to a custom file path`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with all checks documented")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .gowikitext.yml)")

	return cmd
}

func runInit(flags *initFlags) error {
	logger := logging.NewInteractive()

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".gowikitext.yml"
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if flags.force {
		if _, err := os.Stat(absPath); err == nil {
			logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
		}
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{Full: flags.full})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := configloader.WriteConfig(absPath, content, flags.force); err != nil {
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)

	if flags.full {
		logger.Info("full template includes all checks with documentation")
	}

	logger.Info("customize your configuration by editing the file")
	logger.Info("run 'gowikitext checks' to see all available checks")

	return nil
}
