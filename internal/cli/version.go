package cli

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gowikitext/internal/logging"
	"github.com/yaklabco/gowikitext/pkg/sitecfg"
)

func newVersionCommand(info BuildInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print the version, commit hash, and build date of gowikitext, along
with the size of the built-in site definition used when --site is not given.`,
		Run: func(_ *cobra.Command, _ []string) {
			logger := log.NewWithOptions(os.Stdout, log.Options{
				ReportTimestamp: false,
				ReportCaller:    false,
			})
			logger.SetLevel(log.InfoLevel)

			logger.Info("gowikitext",
				logging.FieldVersion, info.Version,
				logging.FieldCommit, info.Commit,
				logging.FieldBuilt, info.Date,
			)

			site := sitecfg.Default()
			logger.Info("built-in site tables",
				"namespaces", len(site.Namespaces),
				"interwikis", len(site.Interwikis),
				"magic_words", len(site.MagicWords),
				logging.FieldSkipTags, len(site.SkipTags),
			)
		},
	}

	return cmd
}
