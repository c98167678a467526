package configloader

import (
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/gowikitext/pkg/config"
)

// envPrefix is the prefix for all gowikitext environment variables.
const envPrefix = "GOWIKITEXT_"

// envVarType describes how an environment variable value is parsed.
type envVarType int

const (
	envTypeString envVarType = iota
	envTypeBool
	envTypeStringSlice
)

// envMapping defines how an environment variable maps to a config field.
type envMapping struct {
	// Suffix after the GOWIKITEXT_ prefix.
	suffix string

	// Value type for parsing.
	varType envVarType

	// apply sets the parsed value on the config.
	apply func(cfg *config.Config, value any)
}

// envMappings is the table of supported environment variables.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = []envMapping{
	{
		suffix:  "SITE",
		varType: envTypeString,
		apply: func(cfg *config.Config, v any) {
			cfg.Site = v.(string)
		},
	},
	{
		suffix:  "SKIP_TAGS",
		varType: envTypeStringSlice,
		apply: func(cfg *config.Config, v any) {
			cfg.SkipTags = v.([]string)
		},
	},
	{
		suffix:  "REGISTRY",
		varType: envTypeString,
		apply: func(cfg *config.Config, v any) {
			cfg.Registry = v.(string)
		},
	},
	{
		suffix:  "IGNORE",
		varType: envTypeStringSlice,
		apply: func(cfg *config.Config, v any) {
			cfg.Ignore = v.([]string)
		},
	},
	{
		suffix:  "DRY_RUN",
		varType: envTypeBool,
		apply: func(cfg *config.Config, v any) {
			cfg.DryRun = v.(bool)
		},
	},
	{
		suffix:  "FORMAT",
		varType: envTypeString,
		apply: func(cfg *config.Config, v any) {
			cfg.Format = config.OutputFormat(v.(string))
		},
	},
	{
		suffix:  "COLOR",
		varType: envTypeString,
		apply: func(cfg *config.Config, v any) {
			cfg.Color = v.(string)
		},
	},
	{
		suffix:  "LOG_LEVEL",
		varType: envTypeString,
		apply: func(cfg *config.Config, v any) {
			cfg.LogLevel = v.(string)
		},
	},
	{
		suffix:  "BACKUPS_ENABLED",
		varType: envTypeBool,
		apply: func(cfg *config.Config, v any) {
			cfg.Backups.Enabled = v.(bool)
		},
	},
	{
		suffix:  "BACKUPS_MODE",
		varType: envTypeString,
		apply: func(cfg *config.Config, v any) {
			cfg.Backups.Mode = v.(string)
		},
	},
	{
		suffix:  "NO_BACKUPS",
		varType: envTypeBool,
		apply: func(cfg *config.Config, v any) {
			cfg.NoBackups = v.(bool)
		},
	},
}

// LoadFromEnv builds a config overlay from GOWIKITEXT_* environment
// variables. Unset variables leave the corresponding fields at their zero
// value, which the merge step treats as "not provided".
func LoadFromEnv() *config.Config {
	cfg := &config.Config{}

	for _, m := range envMappings {
		raw, ok := os.LookupEnv(envPrefix + m.suffix)
		if !ok {
			continue
		}

		switch m.varType {
		case envTypeString:
			if raw != "" {
				m.apply(cfg, raw)
			}
		case envTypeBool:
			if b, err := strconv.ParseBool(raw); err == nil {
				m.apply(cfg, b)
			}
		case envTypeStringSlice:
			if values := splitEnvList(raw); len(values) > 0 {
				m.apply(cfg, values)
			}
		}
	}

	return cfg
}

// splitEnvList splits a comma-separated environment value into trimmed,
// non-empty elements.
func splitEnvList(raw string) []string {
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
