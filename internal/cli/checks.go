package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gowikitext/internal/logging"
	"github.com/yaklabco/gowikitext/pkg/analysis"
	"github.com/yaklabco/gowikitext/pkg/config"
)

const formatJSON = "json"

// builtinChecks describes every analysis check, in report order.
var builtinChecks = []config.CheckInfo{
	{
		Name:        string(analysis.CheckUnclosedTag),
		Description: "Tag whose end tag had to be synthesized",
		Severity:    config.SeverityWarning,
		Healable:    true,
	},
	{
		Name:        string(analysis.CheckUnclosedComment),
		Description: "HTML comment running to the end of the document",
		Severity:    config.SeverityWarning,
		Healable:    true,
	},
	{
		Name:        string(analysis.CheckRawTemplate),
		Description: "Double-brace construct whose title cannot be parsed",
		Severity:    config.SeverityWarning,
	},
	{
		Name:        string(analysis.CheckRawWikilink),
		Description: "Double-bracket construct whose target cannot be resolved",
		Severity:    config.SeverityWarning,
	},
	{
		Name:        string(analysis.CheckMissingLang),
		Description: "Syntax highlighting tag without a lang attribute",
		Severity:    config.SeverityInfo,
		Healable:    true,
	},
	{
		Name:        string(analysis.CheckHeadingJump),
		Description: "Heading nested more than one level below its parent",
		Severity:    config.SeverityInfo,
	},
	{
		Name:        string(analysis.CheckDuplicateSection),
		Description: "Repeated section title",
		Severity:    config.SeverityInfo,
	},
}

//nolint:gochecknoinits // Wires check metadata into config template generation.
func init() {
	config.DefaultCheckInfoProvider = func() []config.CheckInfo {
		infos := make([]config.CheckInfo, len(builtinChecks))
		copy(infos, builtinChecks)
		return infos
	}
}

type checksFlags struct {
	format string
}

// checkJSON represents a check in JSON output.
type checkJSON struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Healable    bool   `json:"healable"`
}

func newChecksCommand() *cobra.Command {
	flags := &checksFlags{}

	cmd := &cobra.Command{
		Use:   "checks",
		Short: "List available analysis checks",
		Long: `List all available analysis checks with their names, descriptions,
default severity, and whether the heal command can repair them.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if flags.format == formatJSON {
				return outputChecksJSON(builtinChecks)
			}

			logger := logging.NewInteractive()
			logger.Info("available checks")

			for _, check := range builtinChecks {
				healable := "-"
				if check.Healable {
					healable = "yes"
				}
				logger.Info(check.Name,
					logging.FieldSeverity, string(check.Severity),
					logging.FieldHealable, healable,
					"description", check.Description,
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")

	return cmd
}

// outputChecksJSON outputs checks as a JSON array.
func outputChecksJSON(checks []config.CheckInfo) error {
	infos := make([]checkJSON, 0, len(checks))
	for _, check := range checks {
		infos = append(infos, checkJSON{
			Name:        check.Name,
			Description: check.Description,
			Severity:    string(check.Severity),
			Healable:    check.Healable,
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding checks: %w", err)
	}
	return nil
}
