package graph

import "sort"

// Entry is one unconverted module together with its unconverted direct
// dependencies (sorted).
type Entry struct {
	Module      Module
	Unconverted []string
}

// Blocker is an unconverted dependency and the number of distinct
// unconverted modules it directly blocks.
type Blocker struct {
	Name  string
	Count int
}

// Analysis is the blocking classification of one (Adjacency,
// converted-set) pair. It is recomputed fresh each run and holds no
// state beyond the three accumulators.
type Analysis struct {
	// BlockedByCount buckets unconverted modules by how many of their
	// direct deps remain unconverted. Entries within a bucket are
	// ordered by module name.
	BlockedByCount map[int][]Entry
	// ReverseBlocked counts, per unconverted dependency name, the
	// distinct unconverted modules directly depending on it.
	ReverseBlocked map[string]int
	// BlockedDirs is the set of directories containing at least one
	// unconverted module.
	BlockedDirs map[string]bool
}

// Analyze classifies every module of adj that is not already in the
// converted set. Converted modules are skipped entirely: their own
// dependency lists are not examined and contribute nothing.
func Analyze(adj Adjacency, converted map[string]bool) *Analysis {
	a := &Analysis{
		BlockedByCount: make(map[int][]Entry),
		ReverseBlocked: make(map[string]int),
		BlockedDirs:    make(map[string]bool),
	}
	for _, m := range adj.Modules() {
		if converted[m.Name] {
			continue
		}
		unconverted := []string{}
		for _, dep := range adj.SortedDeps(m) {
			if !converted[dep] {
				unconverted = append(unconverted, dep)
			}
		}
		for _, dep := range unconverted {
			a.ReverseBlocked[dep]++
		}
		n := len(unconverted)
		a.BlockedByCount[n] = append(a.BlockedByCount[n], Entry{Module: m, Unconverted: unconverted})
		a.BlockedDirs[m.Dirname] = true
	}
	return a
}

// Counts returns the BlockedByCount bucket keys in ascending order.
func (a *Analysis) Counts() []int {
	counts := make([]int, 0, len(a.BlockedByCount))
	for c := range a.BlockedByCount {
		counts = append(counts, c)
	}
	sort.Ints(counts)
	return counts
}

// RankedUnconverted returns the unconverted dependencies ordered by
// how many modules they block, descending; ties break on ascending
// name so the ranking is a total order.
func (a *Analysis) RankedUnconverted() []Blocker {
	ranked := make([]Blocker, 0, len(a.ReverseBlocked))
	for name, count := range a.ReverseBlocked {
		ranked = append(ranked, Blocker{Name: name, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Name < ranked[j].Name
	})
	return ranked
}

// SortedBlockedDirs returns the blocked directories sorted.
func (a *Analysis) SortedBlockedDirs() []string {
	dirs := make([]string, 0, len(a.BlockedDirs))
	for d := range a.BlockedDirs {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return dirs
}
