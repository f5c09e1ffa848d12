package graph

import (
	"encoding/json"
	"fmt"
	"path"
)

// jsonModule mirrors one entry of the soong json-module-graph dump.
// Each variant of a module is a separate entry sharing the same Name.
type jsonModule struct {
	Name       string
	Type       string
	Blueprint  string
	Deps       []jsonDep
	Variations map[string]string
}

type jsonDep struct {
	Name string
}

func (m *jsonModule) osVariation() string {
	return m.Variations["os"]
}

// JSONParser normalizes the json-module-graph dump (format used by
// query.sh fullTransitiveDeps) into an Adjacency.
type JSONParser struct {
	Filter *Filter
}

func (p *JSONParser) Parse(raw []byte) (Adjacency, error) {
	var mods []jsonModule
	if err := json.Unmarshal(raw, &mods); err != nil {
		return nil, fmt.Errorf("decoding json module graph: %w", err)
	}

	// Pass 1: names excluded by kind, and the record for each
	// surviving name.
	ignored := make(map[string]bool)
	infos := make(map[string]Module)
	for i := range mods {
		m := &mods[i]
		if m.Name == "" || m.Type == "" || m.Blueprint == "" {
			return nil, fmt.Errorf("module graph entry %d missing Name, Type or Blueprint", i)
		}
		if p.Filter.IgnoredKind(m.Type) {
			ignored[m.Name] = true
			continue
		}
		infos[m.Name] = Module{
			Name:    m.Name,
			Kind:    m.Type,
			Dirname: path.Dir(m.Blueprint),
		}
	}

	// Pass 2: names that survive as nodes, i.e. have at least one
	// non-windows, non-ignored entry. Edges to anything else are
	// dropped so filtered modules stay invisible in both directions.
	surviving := make(map[string]bool)
	for i := range mods {
		m := &mods[i]
		if ignored[m.Name] || p.Filter.IgnoredOS(m.osVariation()) {
			continue
		}
		surviving[m.Name] = true
	}

	adj := make(Adjacency)
	for i := range mods {
		m := &mods[i]
		if ignored[m.Name] || p.Filter.IgnoredOS(m.osVariation()) {
			continue
		}
		info := infos[m.Name]
		if adj[info] == nil {
			adj[info] = make(map[string]bool)
		}
		for _, dep := range m.Deps {
			if dep.Name == m.Name || !surviving[dep.Name] {
				continue
			}
			adj[info][dep.Name] = true
		}
	}
	return adj, nil
}
