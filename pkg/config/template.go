package config

import (
	"bytes"
	"fmt"
	"sort"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes every check with its documentation.
	// If false, generates a minimal template.
	Full bool

	// IncludeChecks is a list of check names to include.
	// If empty, all checks are included.
	IncludeChecks []string
}

// CheckInfo contains check metadata for template generation.
type CheckInfo struct {
	Name        string
	Description string
	Severity    Severity
	Healable    bool
}

// CheckInfoProvider is a function that returns check information.
// This decouples template generation from the analysis package.
type CheckInfoProvider func() []CheckInfo

// DefaultCheckInfoProvider is set by the cli package during init.
//
//nolint:gochecknoglobals // Intentional extension point for check info.
var DefaultCheckInfoProvider CheckInfoProvider

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Full {
		return generateFullTemplate(opts)
	}
	return generateMinimalTemplate()
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(`# gowikitext configuration
# See: https://github.com/yaklabco/gowikitext

# Site definition file (empty = built-in MediaWiki defaults)
# site: site.yaml

# Tags whose content is excluded from parsing
# skip_tags:
#   - nowiki
#   - pre

# SQLite page-existence store (empty = in-memory)
# registry: pages.db

# File patterns to ignore (glob patterns)
# ignore:
#   - "archive/**"

# Check-specific configuration
# checks:
#   unclosed-tag:
#     enabled: true
#   heading-jump:
#     enabled: false
`)

	return buf.Bytes(), nil
}

// generateFullTemplate creates a full template with all checks documented.
func generateFullTemplate(opts TemplateOptions) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(`# gowikitext configuration - Full Template
# See: https://github.com/yaklabco/gowikitext
#
# This template includes all available checks with their default settings.
# Uncomment and modify settings as needed.

# Site definition file (empty = built-in MediaWiki defaults)
site: ""

# SQLite page-existence store (empty = in-memory)
registry: ""

# Backup configuration for healing
backups:
  enabled: true
  mode: sidecar

# File patterns to ignore (glob patterns)
ignore:
  - ".git/**"

# Check-specific configuration
checks:
`)

	checks := getCheckInfos()

	if len(opts.IncludeChecks) > 0 {
		includeSet := make(map[string]bool)
		for _, name := range opts.IncludeChecks {
			includeSet[name] = true
		}
		filtered := make([]CheckInfo, 0)
		for _, c := range checks {
			if includeSet[c.Name] {
				filtered = append(filtered, c)
			}
		}
		checks = filtered
	}

	sort.Slice(checks, func(i, j int) bool {
		return checks[i].Name < checks[j].Name
	})

	for _, check := range checks {
		buf.WriteString(fmt.Sprintf("\n  # %s\n", check.Description))
		if check.Healable {
			buf.WriteString("  # Healable: yes\n")
		}
		buf.WriteString(fmt.Sprintf("  %s:\n", check.Name))
		buf.WriteString("    enabled: true\n")
		buf.WriteString(fmt.Sprintf("    severity: %s\n", check.Severity))
	}

	return buf.Bytes(), nil
}

// getCheckInfos returns check information from the provider, or an empty
// slice when none is registered.
func getCheckInfos() []CheckInfo {
	if DefaultCheckInfoProvider == nil {
		return nil
	}
	return DefaultCheckInfoProvider()
}
