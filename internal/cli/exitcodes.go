package cli

import (
	"github.com/yaklabco/gowikitext/pkg/analysis"
	"github.com/yaklabco/gowikitext/pkg/runner"
)

// Exit codes for gowikitext.
const (
	// ExitSuccess indicates successful execution with no findings.
	ExitSuccess = 0

	// ExitWarnings indicates analysis completed but found warnings.
	ExitWarnings = 1

	// ExitInfos indicates analysis found only info findings (strict mode).
	ExitInfos = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code based on a run result and
// strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	warnings := result.Stats.FindingsBySeverity[analysis.SeverityWarning]
	infos := result.Stats.FindingsBySeverity[analysis.SeverityInfo]

	if warnings > 0 {
		return ExitWarnings
	}
	if strict && infos > 0 {
		return ExitInfos
	}
	return ExitSuccess
}
