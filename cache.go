package main

import (
	"crypto/sha1"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fortio.org/log"
)

// cachedInvocation is the cached raw output of one external command.
type cachedInvocation struct {
	Output []byte
}

// invocationCache stores raw collaborator output (build/query dumps)
// as sha1-keyed JSON files under the user cache dir. It never caches
// derived analysis, only the slow external invocations.
type invocationCache struct {
	dir string
}

// openInvocationCache sets up the cache directory.
func openInvocationCache() (*invocationCache, error) {
	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user cache directory: %w", err)
	}
	dir := filepath.Join(userCacheDir, "bp2build-progress")
	log.LogVf("Using cache directory: %s", dir)
	return &invocationCache{dir: dir}, os.MkdirAll(dir, 0o755)
}

// clear removes the cache directory.
func (c *invocationCache) clear() error {
	if c.dir == "" {
		return errors.New("cache directory not initialized")
	}
	log.Infof("Clearing cache directory: %s", c.dir)
	return os.RemoveAll(c.dir)
}

// key generates the cache filename for the given invocation parts.
func (c *invocationCache) key(parts ...string) string {
	h := sha1.New()
	for _, p := range parts {
		io.WriteString(h, p)
		io.WriteString(h, "|") // Separator
	}
	return filepath.Join(c.dir, fmt.Sprintf("%x.json", h.Sum(nil)))
}

// read returns the cached output for key, if present. Unreadable or
// corrupt cache entries are treated as misses, not errors.
func (c *invocationCache) read(key string) ([]byte, bool) {
	data, err := os.ReadFile(key)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warnf("Error reading cache file %s, ignoring cache: %v", key, err)
		}
		return nil, false
	}
	var cached cachedInvocation
	if err := json.Unmarshal(data, &cached); err != nil {
		log.Warnf("Error unmarshaling cache file %s, ignoring cache: %v", key, err)
		return nil, false
	}
	return cached.Output, true
}

// write stores output under key. Cache write failures are logged but
// never fail the run.
func (c *invocationCache) write(key string, output []byte) {
	data, err := json.Marshal(cachedInvocation{Output: output})
	if err != nil {
		log.Errf("Error marshaling data for cache key %s: %v", key, err)
		return
	}
	if err := os.WriteFile(key, data, 0o644); err != nil {
		log.Errf("Error writing cache file %s: %v", key, err)
		return
	}
	log.LogVf("Cache write: %s", key)
}
