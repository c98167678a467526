// Package config defines core configuration types for gowikitext.
// These types are pure data structures with no dependency on the loader.
package config

// Severity represents the severity level of an analysis finding.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// CheckConfig holds per-check configuration options.
type CheckConfig struct {
	Enabled  *bool   `yaml:"enabled"`
	Severity *string `yaml:"severity"`
}

// BackupsConfig controls backup behavior when healing files.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mode    string `yaml:"mode"` // "sidecar" or "none"
}

// OutputFormat specifies the output format for analysis results.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatSummary OutputFormat = "summary"
)

// Config is the root configuration structure for gowikitext.
type Config struct {
	// Site is the path to a site definition YAML file. Empty means the
	// built-in defaults (standard MediaWiki namespaces, tags, and
	// parser functions).
	Site string `yaml:"site"`

	// SkipTags overrides the tag names whose content is excluded from
	// parsing. Empty means the site's default skip set.
	SkipTags []string `yaml:"skip_tags"`

	// Registry is the path to a SQLite page-existence store. Empty means
	// an in-memory registry.
	Registry string `yaml:"registry"`

	// Checks contains per-check configuration keyed by check name.
	Checks map[string]CheckConfig `yaml:"checks"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore"`

	// Backups configures backup behavior when healing.
	Backups BackupsConfig `yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// DryRun shows what would be healed without writing files.
	DryRun bool `yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Color is the color mode: "auto", "always", or "never".
	Color string `yaml:"-"`

	// LogLevel is the logging level.
	LogLevel string `yaml:"-"`

	// EnableChecks contains check names to explicitly enable.
	EnableChecks []string `yaml:"-"`

	// DisableChecks contains check names to explicitly disable.
	DisableChecks []string `yaml:"-"`

	// NoBackups disables backup creation when healing.
	NoBackups bool `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Checks: make(map[string]CheckConfig),
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		Format:   FormatText,
		Color:    "auto",
		LogLevel: "info",
	}
}

// CheckEnabled reports whether findings of the named check should be
// reported. Explicit CLI enable/disable lists take precedence over the
// per-check config; checks are on by default.
func (c *Config) CheckEnabled(name string) bool {
	for _, disabled := range c.DisableChecks {
		if disabled == name {
			return false
		}
	}
	for _, enabled := range c.EnableChecks {
		if enabled == name {
			return true
		}
	}
	if cc, ok := c.Checks[name]; ok && cc.Enabled != nil {
		return *cc.Enabled
	}
	return true
}
