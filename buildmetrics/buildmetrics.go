// buildmetrics prints a human-readable runtime breakdown of the last
// build from its metrics protobuf. The proto to JSON conversion is
// delegated to printproto; this tool nests the timed events by their
// dotted descriptions and totals the top-level phases.
//
// Usage:
//
//	buildmetrics [metrics_file]
//
// The metrics file defaults to out/soong_build_metrics.pb.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"fortio.org/cli"
	"fortio.org/log"
)

const defaultMetricsFile = "out/soong_build_metrics.pb"

var protoFlag = flag.String("proto", "build/soong/ui/metrics/metrics_proto/metrics.proto",
	"Path to the metrics proto definition passed to printproto")

// buildEvents mirrors the printproto JSON dump of SoongBuildMetrics:
// a flat event list, each with a dotted description and a wall time.
type buildEvents struct {
	Events []struct {
		Description string `json:"description"`
		RealTime    int64  `json:"real_time"` // nanoseconds
	} `json:"events"`
}

// eventNode is one level of the nested runtime breakdown. Children
// keep insertion order so the output follows the build's event order.
type eventNode struct {
	seconds  float64
	children map[string]*eventNode
	order    []string
}

func newEventNode() *eventNode {
	return &eventNode{children: make(map[string]*eventNode)}
}

func (n *eventNode) child(name string) *eventNode {
	if c, ok := n.children[name]; ok {
		return c
	}
	c := newEventNode()
	n.children[name] = c
	n.order = append(n.order, name)
	return c
}

// addEvent attributes realTime to the node named by the dotted
// description, creating intermediate levels as needed:
// "alpha.bravo.charlie" lands three levels deep.
func (n *eventNode) addEvent(description string, realTimeNs int64) {
	node := n
	for _, part := range strings.Split(description, ".") {
		node = node.child(part)
	}
	node.seconds = float64(realTimeNs) / 1e9
}

// totalSeconds sums the durations of the top-level phases.
func (n *eventNode) totalSeconds() float64 {
	total := 0.0
	for _, name := range n.order {
		total += n.children[name].seconds
	}
	return total
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'g', -1, 64) + "s"
}

// writeTree prints the breakdown, one tab of indent per nesting level.
func writeTree(w io.Writer, n *eventNode, indent string) {
	for _, name := range n.order {
		c := n.children[name]
		fmt.Fprintf(w, "%s%s: %s\n", indent, name, formatSeconds(c.seconds))
		writeTree(w, c, indent+"\t")
	}
}

// dumpMetrics converts the metrics protobuf to JSON via printproto.
func dumpMetrics(metricsFile string) ([]byte, error) {
	args := []string{
		"--proto2", "--raw_protocol_buffer",
		"--json", "--json_accuracy_loss_reaction=ignore",
		"--message=soong_build_metrics.SoongBuildMetrics",
		"--multiline",
		"--proto=" + *protoFlag,
		metricsFile,
	}
	log.LogVf("Running printproto %s", strings.Join(args, " "))
	out, err := exec.Command("printproto", args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			log.Errf("printproto failed, stderr:\n%s", exitErr.Stderr)
		}
		return nil, fmt.Errorf("running printproto: %w", err)
	}
	return out, nil
}

func main() {
	cli.ArgsHelp = "[metrics_file]\ndefaults to " + defaultMetricsFile
	cli.MinArgs = 0
	cli.MaxArgs = 1
	cli.Main()

	metricsFile := defaultMetricsFile
	if flag.NArg() > 0 {
		metricsFile = flag.Arg(0)
	}
	if _, err := os.Stat(metricsFile); err != nil {
		log.Fatalf("%s not found. Did you run a build?", metricsFile)
	}

	raw, err := dumpMetrics(metricsFile)
	if err != nil {
		log.Fatalf("Failed to dump metrics: %v", err)
	}
	var events buildEvents
	if err := json.Unmarshal(raw, &events); err != nil {
		log.Fatalf("Failed to parse printproto output: %v", err)
	}

	root := newEventNode()
	for _, ev := range events.Events {
		root.addEvent(ev.Description, ev.RealTime)
	}
	writeTree(os.Stdout, root, "")
	fmt.Printf("Total: %g\n", root.totalSeconds())
}
