package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"fortio.org/log"
)

const convertedModulesPath = "out/soong/soong_injection/metrics/converted_modules.txt"

// soongSource owns every slow external invocation: building the module
// graph dump, querying it for the transitive closure of one module,
// and reading the converted-module ledger. All failures are fatal to
// the caller; a build that did not complete cannot yield a graph worth
// analyzing.
type soongSource struct {
	srcRoot string
	cache   *invocationCache // nil when caching is disabled
}

// command runs an external command from the source tree root and
// returns its stdout, logging stderr on failure.
func (s *soongSource) command(name string, extraEnv []string, args ...string) ([]byte, error) {
	log.Infof("Running %s %s (in %s)", name, strings.Join(args, " "), s.srcRoot)
	cmd := exec.Command(name, args...)
	cmd.Dir = s.srcRoot
	cmd.Env = append(os.Environ(), extraEnv...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			log.Errf("%s failed, stderr:\n%s", name, exitErr.Stderr)
		}
		return nil, fmt.Errorf("running %s: %w", name, err)
	}
	return out, nil
}

// buildGraphDump runs soong to (re)generate the module graph artifacts
// for the requested format. Slow: this is a partial build.
func (s *soongSource) buildGraphDump(useQueryview bool) error {
	target := "json-module-graph"
	if useQueryview {
		target = "queryview"
	}
	// aosp_arm is the canonical product for conversion tracking.
	env := []string{
		"TARGET_PRODUCT=aosp_arm",
		"TARGET_BUILD_VARIANT=userdebug",
	}
	_, err := s.command("build/soong/soong_ui.bash", env,
		"--make-mode", "--skip-soong-tests", "bp2build", target)
	return err
}

// rawGraph returns the raw transitive-dependency dump for module, in
// queryview XML or json-module-graph form. With caching enabled, a hit
// skips both the build and the query.
func (s *soongSource) rawGraph(module string, useQueryview bool) ([]byte, error) {
	format := "json"
	if useQueryview {
		format = "queryview"
	}
	var key string
	if s.cache != nil {
		key = s.cache.key("rawGraph", format, module)
		if out, hit := s.cache.read(key); hit {
			log.Infof("Cache hit for %s graph of %s", format, module)
			return out, nil
		}
		log.Infof("Cache miss for %s graph of %s, invoking build", format, module)
	}

	if err := s.buildGraphDump(useQueryview); err != nil {
		return nil, err
	}

	var out []byte
	var err error
	if useQueryview {
		query := fmt.Sprintf(`deps(attr("soong_module_name", "^%s$", //...))`, module)
		out, err = s.command("tools/bazel", nil,
			"query", "--config=queryview", "--output=xml", query)
	} else {
		out, err = s.command("build/bazel/json_module_graph/query.sh", nil,
			"fullTransitiveDeps", "out/soong/module-graph.json", module)
	}
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.write(key, out)
	}
	return out, nil
}

// convertedModules reads the migration ledger written by bp2build.
func (s *soongSource) convertedModules() (map[string]bool, error) {
	path := filepath.Join(s.srcRoot, convertedModulesPath)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading converted module ledger: %w", err)
	}
	return parseConvertedLedger(data), nil
}

// parseConvertedLedger parses the ledger: one module name per line,
// lines starting with '#' are comments, blank lines are skipped.
func parseConvertedLedger(data []byte) map[string]bool {
	converted := make(map[string]bool)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		converted[name] = true
	}
	return converted
}
