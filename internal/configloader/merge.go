package configloader

import (
	"github.com/yaklabco/gowikitext/pkg/config"
)

// Merge overlays src onto dst. Non-zero scalar fields in src replace the
// corresponding dst fields; booleans merge true-only (a false in src never
// clears a true in dst, since false is indistinguishable from "not set");
// slices replace wholesale when non-nil; check settings merge per check.
func Merge(dst, src *config.Config) {
	if dst == nil || src == nil {
		return
	}

	if src.Site != "" {
		dst.Site = src.Site
	}
	if src.Registry != "" {
		dst.Registry = src.Registry
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.Color != "" {
		dst.Color = src.Color
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}

	if src.DryRun {
		dst.DryRun = true
	}
	if src.NoBackups {
		dst.NoBackups = true
	}

	if src.Backups.Mode != "" {
		dst.Backups.Mode = src.Backups.Mode
		dst.Backups.Enabled = src.Backups.Enabled
	}

	if src.SkipTags != nil {
		dst.SkipTags = append([]string(nil), src.SkipTags...)
	}
	if src.Ignore != nil {
		dst.Ignore = append([]string(nil), src.Ignore...)
	}
	if src.EnableChecks != nil {
		dst.EnableChecks = append([]string(nil), src.EnableChecks...)
	}
	if src.DisableChecks != nil {
		dst.DisableChecks = append([]string(nil), src.DisableChecks...)
	}

	mergeChecks(dst, src)
}

// mergeChecks merges per-check settings from src into dst. Each check's
// enabled flag and severity are merged independently, so a later config can
// change a check's severity without disturbing its enabled state.
func mergeChecks(dst, src *config.Config) {
	if len(src.Checks) == 0 {
		return
	}

	if dst.Checks == nil {
		dst.Checks = make(map[string]config.CheckConfig, len(src.Checks))
	}

	for name, srcCheck := range src.Checks {
		dstCheck := dst.Checks[name]
		mergeCheckConfig(&dstCheck, srcCheck)
		dst.Checks[name] = dstCheck
	}
}

func mergeCheckConfig(dst *config.CheckConfig, src config.CheckConfig) {
	if src.Enabled != nil {
		enabled := *src.Enabled
		dst.Enabled = &enabled
	}
	if src.Severity != nil {
		severity := *src.Severity
		dst.Severity = &severity
	}
}

// MergeAll merges configs in order of increasing precedence onto a fresh
// default config. Later configs win.
func MergeAll(configs ...*config.Config) *config.Config {
	result := config.NewConfig()
	for _, cfg := range configs {
		if cfg != nil {
			Merge(result, cfg)
		}
	}
	return result
}
