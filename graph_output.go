package main

import (
	"fmt"
	"io"

	"github.com/soong-tools/bp2build-progress/graph"
)

// Frontier colors: a node blocked by unconverted deps vs. a node that
// is itself the only remaining work on its path.
const (
	blockedColor = "tomato"
	readyColor   = "yellow"
)

// writeDotGraph emits a DOT digraph of the unconverted frontier:
// converted modules are never rendered as nodes, and edges to
// converted dependencies are omitted. Nodes and edges are emitted in
// sorted order so the output is reproducible.
func writeDotGraph(w io.Writer, adj graph.Adjacency, converted map[string]bool) {
	fmt.Fprintln(w, "digraph mygraph {")
	fmt.Fprintln(w, "  node [shape=box];")
	fmt.Fprintln(w)

	for _, m := range adj.Modules() {
		if converted[m.Name] {
			continue
		}
		color := readyColor
		for dep := range adj[m] {
			if !converted[dep] {
				color = blockedColor
				break
			}
		}
		fmt.Fprintf(w, "  \"%s\" [label=\"%s\\n%s\" color=black, style=filled, fillcolor=%s]\n",
			m.Name, m.Name, m.Kind, color)
		for _, dep := range adj.SortedDeps(m) {
			if converted[dep] {
				continue
			}
			fmt.Fprintf(w, "  \"%s\" -> \"%s\"\n", m.Name, dep)
		}
	}

	fmt.Fprintln(w, "}")
}
