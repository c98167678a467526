package heal

import (
	"fmt"
	"sort"
	"strings"
)

// ConflictError reports two edits claiming overlapping byte ranges.
type ConflictError struct {
	First  Edit
	Second Edit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("heal: overlapping edits [%d:%d) and [%d:%d)",
		e.First.Start, e.First.End, e.Second.Start, e.Second.End)
}

// Apply validates and applies edits to content, returning the healed text.
// Edits are sorted stably by position first, so equal-offset insertions keep
// their derivation order.
func Apply(content string, edits []Edit) (string, error) {
	if len(edits) == 0 {
		return content, nil
	}

	prepared, err := prepare(edits, len(content))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	delta := 0
	for _, e := range prepared {
		delta += len(e.NewText) - (e.End - e.Start)
	}
	b.Grow(len(content) + delta)

	cursor := 0
	for _, e := range prepared {
		b.WriteString(content[cursor:e.Start])
		b.WriteString(e.NewText)
		cursor = e.End
	}
	b.WriteString(content[cursor:])
	return b.String(), nil
}

// prepare bounds-checks, sorts, and rejects overlapping edits.
func prepare(edits []Edit, contentLen int) ([]Edit, error) {
	for _, e := range edits {
		if e.Start < 0 || e.End < e.Start || e.End > contentLen {
			return nil, fmt.Errorf("heal: edit [%d:%d) out of range for %d bytes",
				e.Start, e.End, contentLen)
		}
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Start < sorted[i-1].End {
			return nil, &ConflictError{First: sorted[i-1], Second: sorted[i]}
		}
	}
	return sorted, nil
}
