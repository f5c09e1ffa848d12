// bp2build-progress tracks migration of soong modules to the bazel
// backend: it dumps the module dependency graph, classifies every
// module in a root module's transitive closure by its unconverted
// dependencies, and prints either a progress report or a DOT graph of
// the remaining work.
//
// Usage:
//
//	bp2build-progress report adbd
//	bp2build-progress graph adbd > graph.in && dot -Tpng -o graph.png graph.in
package main

import (
	"flag"
	"os"
	"time"

	"fortio.org/cli"
	"fortio.org/log"

	"github.com/soong-tools/bp2build-progress/graph"
)

var (
	useQueryview = flag.Bool("use-queryview", false,
		"Use the bazel queryview XML dump instead of the json module graph")
	ignoreConfigFlag = flag.String("ignore-config", "",
		"YAML file listing extra module types to ignore (ignored_module_types)")
	useCacheFlag = flag.Bool("cache", false,
		"Cache raw build/query output between runs")
	clearCacheFlag = flag.Bool("clear-cache", false,
		"Clear the invocation cache before running")
	srcRootFlag = flag.String("src-root", defaultSrcRoot(),
		"Root of the Android source tree (defaults to $ANDROID_BUILD_TOP)")
)

func defaultSrcRoot() string {
	if top := os.Getenv("ANDROID_BUILD_TOP"); top != "" {
		return top
	}
	return "."
}

func main() {
	cli.ArgsHelp = "mode module\nmode is 'report' or 'graph', module is the soong module to analyze"
	cli.MinArgs = 2
	cli.MaxArgs = 2
	cli.Main()

	mode := flag.Arg(0)
	module := flag.Arg(1)
	// Fail on a bad mode before any (slow) graph work happens.
	if mode != "graph" && mode != "report" {
		log.Fatalf("Unknown mode %q (want 'report' or 'graph')", mode)
	}

	filter := graph.NewFilter()
	if *ignoreConfigFlag != "" {
		if err := filter.LoadConfig(*ignoreConfigFlag); err != nil {
			log.Fatalf("Failed to load ignore config: %v", err)
		}
	}

	var cache *invocationCache
	if *useCacheFlag || *clearCacheFlag {
		var err error
		cache, err = openInvocationCache()
		if err != nil {
			log.Fatalf("Failed to initialize cache: %v", err)
		}
		if *clearCacheFlag {
			if err := cache.clear(); err != nil {
				log.Fatalf("Failed to clear cache: %v", err)
			}
		}
		if !*useCacheFlag {
			cache = nil
		}
	}

	src := &soongSource{srcRoot: *srcRootFlag, cache: cache}
	raw, err := src.rawGraph(module, *useQueryview)
	if err != nil {
		log.Fatalf("Failed to obtain module graph: %v", err)
	}
	converted, err := src.convertedModules()
	if err != nil {
		log.Fatalf("Failed to read converted modules: %v", err)
	}
	log.Infof("Loaded %d converted module names", len(converted))

	var parser graph.Parser = &graph.JSONParser{Filter: filter}
	if *useQueryview {
		parser = &graph.QueryviewParser{Filter: filter}
	}
	adj, err := parser.Parse(raw)
	if err != nil {
		log.Fatalf("Failed to parse module graph: %v", err)
	}
	log.Infof("Module graph normalized: %d modules", len(adj))

	switch mode {
	case "graph":
		writeDotGraph(os.Stdout, adj, converted)
	case "report":
		writeReport(os.Stdout, graph.Analyze(adj, converted), converted,
			module, filter.IgnoredKinds(), time.Now())
	}
}
