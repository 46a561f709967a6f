package diag

import (
	"fmt"
	"sort"
	"strings"
)

// FormatShort renders diagnostics into a stable, single-line-per-entry
// representation intended for CLI output and golden files. The docName
// prefixes every line so output from multiple documents stays attributable.
func FormatShort(docName string, diags []Diagnostic, includeNotes bool) string {
	if len(diags) == 0 {
		return ""
	}

	sorted := make([]Diagnostic, len(diags))
	copy(sorted, diags)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := sorted[i], sorted[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})

	var sb strings.Builder
	for _, d := range sorted {
		loc := docName
		if d.Path != "" {
			loc += ":" + d.Path
		}
		fmt.Fprintf(&sb, "%s: %s [%s] %s\n", loc, d.Severity, d.Code.ID(), d.Message)
		if includeNotes {
			for _, n := range d.Notes {
				if n.Path != "" {
					fmt.Fprintf(&sb, "  note (%s): %s\n", n.Path, n.Msg)
				} else {
					fmt.Fprintf(&sb, "  note: %s\n", n.Msg)
				}
			}
		}
	}
	return sb.String()
}
