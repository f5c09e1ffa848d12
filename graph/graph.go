// Package graph holds the canonical build-module model: the normalized
// module record, the dependency adjacency built from either raw graph
// format, and the blocking analysis over it.
package graph

import "sort"

// Module describes one build module surviving normalization.
type Module struct {
	Name    string // Module name, unique within one graph dump
	Kind    string // Build rule type (e.g. cc_library)
	Dirname string // Directory of the module's build file declaration
}

// Adjacency maps each surviving module to the set of its direct
// dependency names. Values are names rather than records so a
// dependency can be mentioned without its own record surviving the
// filter. Invariants: no self-edges, no edges to filtered names.
type Adjacency map[Module]map[string]bool

// Parser normalizes one raw graph dump format into an Adjacency.
type Parser interface {
	Parse(raw []byte) (Adjacency, error)
}

// Modules returns the graph's modules sorted by name (then kind and
// dirname so the order is total even on odd inputs).
func (a Adjacency) Modules() []Module {
	mods := make([]Module, 0, len(a))
	for m := range a {
		mods = append(mods, m)
	}
	sort.Slice(mods, func(i, j int) bool {
		if mods[i].Name != mods[j].Name {
			return mods[i].Name < mods[j].Name
		}
		if mods[i].Kind != mods[j].Kind {
			return mods[i].Kind < mods[j].Kind
		}
		return mods[i].Dirname < mods[j].Dirname
	})
	return mods
}

// SortedDeps returns m's dependency names in sorted order.
func (a Adjacency) SortedDeps(m Module) []string {
	deps := make([]string, 0, len(a[m]))
	for d := range a[m] {
		deps = append(deps, d)
	}
	sort.Strings(deps)
	return deps
}
