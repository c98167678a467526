package sitecfg

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// fileForm is the YAML wire shape of a site configuration. Lookup indexes
// and the compiled function matcher are rebuilt on load, never serialized.
type fileForm struct {
	Namespaces    []Namespace       `yaml:"namespaces"`
	Interwikis    []Interwiki       `yaml:"interwikis,omitempty"`
	MagicWords    []MagicWord       `yaml:"magicWords,omitempty"`
	CaseOverrides map[string]string `yaml:"caseOverrides,omitempty"`
	SkipTags      []string          `yaml:"skipTags,omitempty"`
	CapitalLinks  *bool             `yaml:"capitalLinks,omitempty"`
}

// FromYAML parses a site configuration from YAML bytes and builds its
// lookup indexes. Fields omitted in the document fall back to the built-in
// defaults so partial overrides stay usable.
func FromYAML(data []byte) (*Site, error) {
	var ff fileForm
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("parse site config: %w", err)
	}

	def := Default()
	s := &Site{
		Namespaces:    ff.Namespaces,
		Interwikis:    ff.Interwikis,
		MagicWords:    ff.MagicWords,
		CaseOverrides: ff.CaseOverrides,
		SkipTags:      ff.SkipTags,
		CapitalLinks:  true,
	}
	if len(s.Namespaces) == 0 {
		s.Namespaces = def.Namespaces
	}
	if len(s.Interwikis) == 0 {
		s.Interwikis = def.Interwikis
	}
	if len(s.MagicWords) == 0 {
		s.MagicWords = def.MagicWords
	}
	if len(s.CaseOverrides) == 0 {
		s.CaseOverrides = def.CaseOverrides
	}
	if len(s.SkipTags) == 0 {
		s.SkipTags = def.SkipTags
	}
	if ff.CapitalLinks != nil {
		s.CapitalLinks = *ff.CapitalLinks
	}

	if err := s.Build(); err != nil {
		return nil, err
	}
	return s, nil
}

// ToYAML serializes the site configuration to YAML.
func (s *Site) ToYAML() ([]byte, error) {
	if s == nil {
		return nil, nil
	}

	capital := s.CapitalLinks
	ff := fileForm{
		Namespaces:    s.Namespaces,
		Interwikis:    s.Interwikis,
		MagicWords:    s.MagicWords,
		CaseOverrides: s.CaseOverrides,
		SkipTags:      s.SkipTags,
		CapitalLinks:  &capital,
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(ff); err != nil {
		return nil, fmt.Errorf("encode site config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}
