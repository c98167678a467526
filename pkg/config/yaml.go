package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration to YAML format.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the configuration with a header comment.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	yamlBytes, err := c.ToYAML()
	if err != nil {
		return nil, err
	}

	if header == "" {
		return yamlBytes, nil
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(yamlBytes)

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if cfg.Checks == nil {
		cfg.Checks = make(map[string]CheckConfig)
	}

	return cfg, nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := &Config{
		Site:      c.Site,
		Registry:  c.Registry,
		Backups:   c.Backups,
		DryRun:    c.DryRun,
		Format:    c.Format,
		Color:     c.Color,
		LogLevel:  c.LogLevel,
		NoBackups: c.NoBackups,
	}

	if c.SkipTags != nil {
		clone.SkipTags = make([]string, len(c.SkipTags))
		copy(clone.SkipTags, c.SkipTags)
	}
	if c.Ignore != nil {
		clone.Ignore = make([]string, len(c.Ignore))
		copy(clone.Ignore, c.Ignore)
	}
	if c.EnableChecks != nil {
		clone.EnableChecks = make([]string, len(c.EnableChecks))
		copy(clone.EnableChecks, c.EnableChecks)
	}
	if c.DisableChecks != nil {
		clone.DisableChecks = make([]string, len(c.DisableChecks))
		copy(clone.DisableChecks, c.DisableChecks)
	}

	if c.Checks != nil {
		clone.Checks = make(map[string]CheckConfig, len(c.Checks))
		for k, v := range c.Checks {
			clone.Checks[k] = v.clone()
		}
	}

	return clone
}

// clone creates a deep copy of a CheckConfig.
func (cc CheckConfig) clone() CheckConfig {
	clone := CheckConfig{}

	if cc.Enabled != nil {
		enabled := *cc.Enabled
		clone.Enabled = &enabled
	}

	if cc.Severity != nil {
		severity := *cc.Severity
		clone.Severity = &severity
	}

	return clone
}
