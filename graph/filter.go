package graph

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Module kinds omitted from the report and graph. Presence here does
// not mean the kind never needs converting, only that tracking it adds
// noise rather than signal (defaults and prebuilt wrappers mostly).
var defaultIgnoredKinds = []string{
	"license_kind",
	"license",

	"cc_defaults",
	"cc_prebuilt_object",
	"cc_prebuilt_library_headers",
	"cc_prebuilt_library_shared",
	"cc_prebuilt_library_static",
	"cc_prebuilt_library",

	"ndk_prebuilt_static_stl",
	"ndk_library",
}

// Filter is the single exclusion predicate shared by both raw-graph
// parsers: module kinds on the ignore list and windows-only variants
// are dropped entirely, in both node and edge position.
type Filter struct {
	ignoredKinds map[string]bool
}

// NewFilter returns a Filter with the built-in ignored kinds.
func NewFilter() *Filter {
	f := &Filter{ignoredKinds: make(map[string]bool, len(defaultIgnoredKinds))}
	for _, k := range defaultIgnoredKinds {
		f.ignoredKinds[k] = true
	}
	return f
}

type ignoreConfig struct {
	IgnoredModuleTypes []string `yaml:"ignored_module_types"`
}

// LoadConfig extends the ignored-kind set from a YAML file listing
// module types under ignored_module_types.
func (f *Filter) LoadConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading ignore config: %w", err)
	}
	var cfg ignoreConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parsing ignore config %s: %w", path, err)
	}
	for _, k := range cfg.IgnoredModuleTypes {
		f.ignoredKinds[k] = true
	}
	return nil
}

// IgnoredKind reports whether modules of this kind are excluded.
func (f *Filter) IgnoredKind(kind string) bool {
	return f.ignoredKinds[kind]
}

// IgnoredOS reports whether a variant (the json "os" variation value or
// the queryview variant string, e.g. "windows_x86_64") is excluded.
func (f *Filter) IgnoredOS(variant string) bool {
	return strings.HasPrefix(variant, "windows")
}

// IgnoredKinds returns the effective ignored kinds, sorted, for the
// report header.
func (f *Filter) IgnoredKinds() []string {
	kinds := make([]string, 0, len(f.ignoredKinds))
	for k := range f.ignoredKinds {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
