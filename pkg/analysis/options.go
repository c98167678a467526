package analysis

// SortField specifies how to sort the by-check view.
type SortField string

const (
	// SortByCount sorts by finding count (descending by default).
	SortByCount SortField = "count"
	// SortByAlpha sorts alphabetically by check name.
	SortByAlpha SortField = "alpha"
	// SortBySeverity sorts warnings before infos.
	SortBySeverity SortField = "severity"
)

// IsValid reports whether the sort field is one of the known values.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha, SortBySeverity:
		return true
	default:
		return false
	}
}

// Options configures Analyze.
type Options struct {
	// IncludeFindings includes the flat findings list.
	IncludeFindings bool

	// IncludeByCheck includes the per-check aggregation.
	IncludeByCheck bool

	// SortBy specifies how to sort ByCheck.
	SortBy SortField

	// SortDesc sorts in descending order (highest first).
	SortDesc bool
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		IncludeFindings: true,
		IncludeByCheck:  true,
		SortBy:          SortByCount,
		SortDesc:        true,
	}
}
