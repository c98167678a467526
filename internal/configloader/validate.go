package configloader

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yaklabco/gowikitext/pkg/analysis"
	"github.com/yaklabco/gowikitext/pkg/config"
)

// ValidationError describes a single problem found in a configuration.
type ValidationError struct {
	// Field is the configuration field that failed validation.
	Field string

	// Value is the offending value.
	Value string

	// Message describes what is wrong.
	Message string

	// FilePath is the config file the value came from, if known.
	FilePath string

	// Line is the line number within FilePath, if known (0 means unknown).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var sb strings.Builder
	if e.FilePath != "" {
		sb.WriteString(e.FilePath)
		if e.Line > 0 {
			fmt.Fprintf(&sb, ":%d", e.Line)
		}
		sb.WriteString(": ")
	}
	fmt.Fprintf(&sb, "%s: %s", e.Field, e.Message)
	if e.Value != "" {
		fmt.Fprintf(&sb, " (got %q)", e.Value)
	}
	return sb.String()
}

// ValidationResult collects the errors and warnings from validating a config.
type ValidationResult struct {
	Errors   []*ValidationError
	Warnings []*ValidationError
}

// Valid returns true when no errors were found. Warnings do not make a
// config invalid.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true when any warnings were found.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all errors followed by all warnings, formatted.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	knownSeverities = map[string]bool{
		analysis.SeverityWarning: true,
		analysis.SeverityInfo:    true,
	}

	knownFormats = map[config.OutputFormat]bool{
		config.FormatText:    true,
		config.FormatTable:   true,
		config.FormatJSON:    true,
		config.FormatSummary: true,
	}

	knownColorModes = map[string]bool{
		"auto":   true,
		"always": true,
		"never":  true,
	}

	knownBackupModes = map[string]bool{
		"sidecar": true,
		"none":    true,
	}

	knownChecks = map[string]bool{
		string(analysis.CheckUnclosedTag):      true,
		string(analysis.CheckUnclosedComment):  true,
		string(analysis.CheckRawTemplate):      true,
		string(analysis.CheckRawWikilink):      true,
		string(analysis.CheckMissingLang):      true,
		string(analysis.CheckHeadingJump):      true,
		string(analysis.CheckDuplicateSection): true,
	}
)

// Validate checks a merged config for invalid values. filePath, when
// non-empty, is attached to each finding for error reporting.
func Validate(cfg *config.Config, filePath string) *ValidationResult {
	result := &ValidationResult{}

	if cfg == nil {
		result.Errors = append(result.Errors, &ValidationError{
			Field:    "config",
			Message:  "configuration is nil",
			FilePath: filePath,
		})
		return result
	}

	if cfg.Format != "" && !knownFormats[cfg.Format] {
		result.Errors = append(result.Errors, &ValidationError{
			Field:    "format",
			Value:    string(cfg.Format),
			Message:  "unknown output format, expected one of: text, table, json, summary",
			FilePath: filePath,
		})
	}

	if cfg.Color != "" && !knownColorModes[cfg.Color] {
		result.Errors = append(result.Errors, &ValidationError{
			Field:    "color",
			Value:    cfg.Color,
			Message:  "unknown color mode, expected one of: auto, always, never",
			FilePath: filePath,
		})
	}

	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		result.Errors = append(result.Errors, &ValidationError{
			Field:    "backups.mode",
			Value:    cfg.Backups.Mode,
			Message:  "unknown backup mode, expected one of: sidecar, none",
			FilePath: filePath,
		})
	}

	validateChecks(cfg, filePath, result)
	validateCheckLists(cfg, filePath, result)
	validateIgnorePatterns(cfg, filePath, result)

	return result
}

func validateChecks(cfg *config.Config, filePath string, result *ValidationResult) {
	names := make([]string, 0, len(cfg.Checks))
	for name := range cfg.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		check := cfg.Checks[name]

		if !knownChecks[name] {
			result.Warnings = append(result.Warnings, &ValidationError{
				Field:    "checks." + name,
				Value:    name,
				Message:  "unknown check name",
				FilePath: filePath,
			})
		}

		if check.Severity != nil && !knownSeverities[*check.Severity] {
			result.Errors = append(result.Errors, &ValidationError{
				Field:    "checks." + name + ".severity",
				Value:    *check.Severity,
				Message:  "unknown severity, expected one of: warning, info",
				FilePath: filePath,
			})
		}
	}
}

func validateCheckLists(cfg *config.Config, filePath string, result *ValidationResult) {
	for _, name := range cfg.EnableChecks {
		if !knownChecks[name] {
			result.Warnings = append(result.Warnings, &ValidationError{
				Field:    "enable",
				Value:    name,
				Message:  "unknown check name",
				FilePath: filePath,
			})
		}
	}
	for _, name := range cfg.DisableChecks {
		if !knownChecks[name] {
			result.Warnings = append(result.Warnings, &ValidationError{
				Field:    "disable",
				Value:    name,
				Message:  "unknown check name",
				FilePath: filePath,
			})
		}
	}
}

func validateIgnorePatterns(cfg *config.Config, filePath string, result *ValidationResult) {
	for _, pattern := range cfg.Ignore {
		if _, err := filepath.Match(pattern, "probe"); err != nil {
			result.Errors = append(result.Errors, &ValidationError{
				Field:    "ignore",
				Value:    pattern,
				Message:  "invalid glob pattern",
				FilePath: filePath,
			})
		}
	}
}
