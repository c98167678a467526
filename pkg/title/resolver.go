package title

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/yaklabco/gowikitext/pkg/sitecfg"
)

// Parse failure reasons. Errors returned by Resolver.Parse wrap one of
// these sentinels.
var (
	ErrEmptyTitle       = errors.New("empty title")
	ErrIllegalCharacter = errors.New("title contains an illegal character")
	ErrRelativePath     = errors.New("title is a relative path component")
	ErrTooLong          = errors.New("title exceeds the maximum byte length")
	ErrBadNamespace     = errors.New("namespace prefix with empty title")
)

// maxTitleBytes is the byte-length ceiling for a db-key. Special-namespace
// titles are exempt.
const maxTitleBytes = 255

// bidiControls strips Unicode bidirectional control characters.
var bidiControls = strings.NewReplacer(
	"‎", "", "‏", "",
	"‪", "", "‫", "", "‬", "", "‭", "", "‮", "",
)

// joinRuns collapses whitespace and underscore runs to the single join
// character used in db-keys.
var joinRuns = regexp.MustCompile(`[\s_\x{00A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}]+`)

// illegalChars matches characters a db-key may never contain: raw control
// characters, percent-encoding sequences, and HTML-entity-like runs.
var illegalChars = regexp.MustCompile(`[\x00-\x1F\x7F]|%[0-9A-Fa-f]{2}|&[A-Za-z0-9\x{0080}-\x{10FFFF}]+;`)

// reservedChars are markup-significant characters excluded from titles.
const reservedChars = "<>[]{}|"

// Resolver parses raw title strings against one site's tables. A Resolver
// is immutable after construction and safe for concurrent use.
type Resolver struct {
	site *sitecfg.Site
}

// NewResolver creates a Resolver bound to the given site configuration.
func NewResolver(site *sitecfg.Site) *Resolver {
	return &Resolver{site: site}
}

// ParseOption adjusts a single Parse call.
type ParseOption func(*parseConfig)

type parseConfig struct {
	defaultNS int
}

// WithDefaultNamespace sets the namespace assumed when the text carries no
// namespace prefix. Defaults to the main namespace.
func WithDefaultNamespace(ns int) ParseOption {
	return func(c *parseConfig) { c.defaultNS = ns }
}

// Parse parses and validates a raw title string, returning the canonical
// Title or an error describing the first validation failure.
func (r *Resolver) Parse(text string, opts ...ParseOption) (*Title, error) {
	cfg := parseConfig{defaultNS: sitecfg.NSMain}
	for _, opt := range opts {
		opt(&cfg)
	}

	original := text

	// Character normalization: strip bidi controls, collapse whitespace
	// runs to the join character, trim boundary joins.
	text = bidiControls.Replace(text)
	text = joinRuns.ReplaceAllString(text, "_")
	text = strings.Trim(text, "_")

	t := &Title{namespace: cfg.defaultNS, names: r.site}

	// A single leading colon forces main-namespace interpretation.
	if strings.HasPrefix(text, ":") {
		t.colon = true
		t.namespace = sitecfg.NSMain
		text = strings.Trim(text[1:], "_")
	}

	text = r.resolvePrefixes(text, t)

	// Factor out the fragment.
	if idx := strings.Index(text, "#"); idx >= 0 {
		t.fragment = strings.Trim(strings.ReplaceAll(text[idx+1:], "_", " "), " ")
		text = strings.Trim(text[:idx], "_")
	}

	if err := validateDBKey(text, t); err != nil {
		return nil, fmt.Errorf("parse title %q: %w", original, err)
	}

	// First-letter capitalization is namespace-dependent and skipped for
	// remote titles, whose casing rules are unknown.
	if text != "" && t.interwiki == "" && r.site.CapitalLinks {
		if ns, ok := r.site.Namespace(t.namespace); !ok || !ns.CaseSensitive {
			text = r.site.UpperFirst(text)
		}
	}

	t.dbkey = text
	return t, nil
}

// TryParse is the non-throwing variant of Parse: it reports failure as a
// false second return instead of an error.
func (r *Resolver) TryParse(text string, opts ...ParseOption) (*Title, bool) {
	t, err := r.Parse(text, opts...)
	if err != nil {
		return nil, false
	}
	return t, true
}

// resolvePrefixes consumes namespace and interwiki prefixes from the left
// of text, updating t, and returns the remaining bare title.
//
// Precedence: each left segment is tried first as a namespace name, then as
// an interwiki prefix. An interwiki prefix resets the namespace to main
// (the remote namespace table is unknown); a namespace prefix found after
// an interwiki re-scopes the title; a local interwiki prefix is absorbed.
func (r *Resolver) resolvePrefixes(text string, t *Title) string {
	sawInterwiki := false
	for {
		idx := strings.Index(text, ":")
		if idx < 0 {
			return text
		}
		left := strings.Trim(text[:idx], "_")
		rest := strings.TrimLeft(text[idx+1:], "_")

		if id, ok := r.site.NamespaceID(left); ok && left != "" {
			t.namespace = id
			return rest
		}

		iw, ok := r.site.Interwiki(left)
		if !ok || sawInterwiki {
			return text
		}
		t.namespace = sitecfg.NSMain
		if iw.Local {
			// Self-referential prefix: absorbed, not kept.
			t.localInterwiki = true
		} else {
			t.interwiki = strings.ToLower(strings.ReplaceAll(iw.Prefix, "_", " "))
			sawInterwiki = true
		}
		text = rest
	}
}

// validateDBKey applies the character blacklist, relative-path, emptiness,
// and length rules to the bare title.
func validateDBKey(key string, t *Title) error {
	if key == "" {
		if t.interwiki != "" || t.fragment != "" {
			return nil // interwiki main page or fragment-only reference
		}
		if t.namespace != sitecfg.NSMain {
			return ErrBadNamespace
		}
		return ErrEmptyTitle
	}

	if loc := illegalChars.FindString(key); loc != "" {
		return fmt.Errorf("%w: %q", ErrIllegalCharacter, loc)
	}
	if strings.ContainsAny(key, reservedChars) {
		return fmt.Errorf("%w: %q", ErrIllegalCharacter, key)
	}
	if strings.Contains(key, "~~~") {
		return fmt.Errorf("%w: signature sequence", ErrIllegalCharacter)
	}

	if key == "." || key == ".." ||
		strings.HasPrefix(key, "./") || strings.HasPrefix(key, "../") ||
		strings.Contains(key, "/./") || strings.Contains(key, "/../") ||
		strings.HasSuffix(key, "/.") || strings.HasSuffix(key, "/..") {
		return ErrRelativePath
	}

	if len(key) > maxTitleBytes && t.namespace != sitecfg.NSSpecial {
		return fmt.Errorf("%w: %d bytes", ErrTooLong, len(key))
	}

	return nil
}
