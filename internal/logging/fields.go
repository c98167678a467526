package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldSite     = "site"
	FieldSkipTags = "skip_tags"
	FieldRegistry = "registry"
	FieldDryRun   = "dry_run"

	// Document statistics fields.
	FieldBytes           = "bytes"
	FieldTags            = "tags"
	FieldSections        = "sections"
	FieldParameters      = "parameters"
	FieldTemplates       = "templates"
	FieldParserFunctions = "parser_functions"
	FieldWikilinks       = "wikilinks"
	FieldFileLinks       = "file_links"

	// Analysis fields.
	FieldCheck    = "check"
	FieldFindings = "findings"
	FieldWarnings = "warnings"
	FieldHealable = "healable"
	FieldHealed   = "healed"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Element fields.
	FieldName     = "name"
	FieldTitle    = "title"
	FieldSeverity = "severity"
	FieldLine     = "line"
)
