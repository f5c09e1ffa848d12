package graph

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// The queryview XML dump encodes each module variant as a <rule>
// element whose name attribute is a variant-qualified Bazel label
// ("//dir:name--variant"). The logical module name and the variant
// are carried by generic attribute children; <rule-input> children
// are the dependency edges, also variant-qualified.
type xmlQuery struct {
	Rules []xmlRule `xml:"rule"`
}

type xmlRule struct {
	Class    string    `xml:"class,attr"`
	Name     string    `xml:"name,attr"`
	Children []xmlElem `xml:",any"`
}

type xmlElem struct {
	XMLName xml.Name
	Name    string `xml:"name,attr"`
	Value   string `xml:"value,attr"`
}

// QueryviewParser normalizes the Bazel queryview XML dump into an
// Adjacency, resolving variant-qualified identifiers to logical module
// names the same way for nodes and edges.
type QueryviewParser struct {
	Filter *Filter
}

func (p *QueryviewParser) Parse(raw []byte) (Adjacency, error) {
	var doc xmlQuery
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding queryview xml: %w", err)
	}

	// Pass 1: resolve qualified ids to logical names, record module
	// info per logical name, and mark excluded qualified ids
	// (ignored kinds and windows variants).
	excluded := make(map[string]bool)
	nameOf := make(map[string]string) // qualified id -> logical name
	infos := make(map[string]Module)
	for _, rule := range doc.Rules {
		if rule.Name == "" {
			return nil, fmt.Errorf("queryview rule of class %q missing name attribute", rule.Class)
		}
		for _, attr := range rule.Children {
			switch attr.Name {
			case "soong_module_name":
				if p.Filter.IgnoredKind(rule.Class) {
					excluded[rule.Name] = true
					continue
				}
				if _, ok := nameOf[rule.Name]; !ok {
					nameOf[rule.Name] = attr.Value
				}
				if _, ok := infos[attr.Value]; !ok {
					infos[attr.Value] = Module{
						Name:    attr.Value,
						Kind:    rule.Class,
						Dirname: labelToDir(rule.Name),
					}
				}
			case "soong_module_variant":
				if p.Filter.IgnoredOS(attr.Value) {
					excluded[rule.Name] = true
				}
			}
		}
	}

	// Pass 2: edges. Inputs that are excluded or never resolve to a
	// module (source files, rules without a soong name) are dropped.
	adj := make(Adjacency)
	for _, rule := range doc.Rules {
		if excluded[rule.Name] {
			continue
		}
		name, ok := nameOf[rule.Name]
		if !ok {
			continue
		}
		info := infos[name]
		if adj[info] == nil {
			adj[info] = make(map[string]bool)
		}
		for _, in := range rule.Children {
			if in.XMLName.Local != "rule-input" {
				continue
			}
			if excluded[in.Name] {
				continue
			}
			depName, ok := nameOf[in.Name]
			if !ok || depName == name {
				continue
			}
			adj[info][depName] = true
		}
	}
	return adj, nil
}

// labelToDir extracts the package directory from a Bazel label,
// "//system/core/adbd:adbd--variant" -> "system/core/adbd".
func labelToDir(label string) string {
	dir, _, _ := strings.Cut(label, ":")
	return strings.TrimPrefix(dir, "//")
}
