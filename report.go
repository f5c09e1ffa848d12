package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/soong-tools/bp2build-progress/graph"
)

const reportAttribution = "bp2build-progress (github.com/soong-tools/bp2build-progress)"

// writeReport renders the blocking analysis as the multi-section text
// report. Presentation only: every ordering comes from the analysis.
func writeReport(w io.Writer, an *graph.Analysis, converted map[string]bool, module string, ignoredKinds []string, now time.Time) {
	fmt.Fprintf(w, "# bp2build progress report for: %s\n\n", module)
	fmt.Fprintf(w, "Ignored module types: %s\n\n", strings.Join(ignoredKinds, ", "))
	fmt.Fprintf(w, "# Transitive dependency closure:\n")

	for _, count := range an.Counts() {
		fmt.Fprintf(w, "\n%d unconverted deps remaining:\n", count)
		for _, e := range an.BlockedByCount[count] {
			fmt.Fprintf(w, "  %s [%s] [%s]: %s\n",
				e.Module.Name, e.Module.Kind, e.Module.Dirname,
				strings.Join(e.Unconverted, ", "))
		}
	}

	fmt.Fprintf(w, "\n# Unconverted deps of %s:\n\n", module)
	for _, b := range an.RankedUnconverted() {
		fmt.Fprintf(w, "%s: blocking %d modules\n", b.Name, b.Count)
	}

	fmt.Fprintf(w, "\nDirs with unconverted modules:\n\n%s\n", strings.Join(an.SortedBlockedDirs(), "\n"))

	fmt.Fprintf(w, "\n# Converted modules:\n\n%s\n", strings.Join(sortedNames(converted), "\n"))

	fmt.Fprintf(w, "\nGenerated by: %s\n", reportAttribution)
	fmt.Fprintf(w, "Generated at: %s\n", now.Format("2006-01-02T15:04:05 -0700"))
}

func sortedNames(set map[string]bool) []string {
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
