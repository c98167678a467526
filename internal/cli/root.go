// Package cli provides the Cobra command structure for gowikitext.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gowikitext/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root gowikitext command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "gowikitext",
		Short: "A wikitext parser, inspector, and document healer",
		Long: `gowikitext parses MediaWiki wikitext into its constructs: tags, sections,
template calls, parser functions, wikilinks, and triple-brace parameters.

It reports structural problems such as unclosed tags, unparsable templates,
and highlighting blocks without a language attribute, and can heal many of
them in place while ensuring safety through dry-run mode, conflict
detection, and optional backups.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newInspectCommand())
	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newHealCommand())
	rootCmd.AddCommand(newChecksCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
