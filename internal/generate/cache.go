package generate

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-json-experiment/json"
)

// SchemaVersion is bumped when the cache format changes. A mismatch forces
// a full regeneration, ensuring binary upgrades don't produce stale
// outputs. Adapted from internal/buildcache.Cache, generalized from
// tsgonest's "did anything emit" incremental-compile cache to "did the
// OpenAPI document or config change" for this generator.
const SchemaVersion = 1

// Cache records what was true when generation last ran successfully.
type Cache struct {
	V          int    `json:"v"`
	ConfigHash string `json:"configHash"`
	InputHash  string `json:"inputHash"`
	Output     string `json:"output"`
}

// CachePath returns the cache file path alongside the generated output:
// "client.go" -> "client.go.genclient-cache".
func CachePath(output string) string {
	dir := filepath.Dir(output)
	base := filepath.Base(output)
	return filepath.Join(dir, base+".genclient-cache")
}

// Load reads and parses a cache file from disk. Returns nil on any
// error — callers treat nil as "cache miss" and regenerate.
func Load(path string) *Cache {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var c Cache
	if err := json.Unmarshal(data, &c); err != nil {
		return nil
	}
	return &c
}

// Save writes the cache to disk atomically (write to temp, rename).
func Save(path string, cache *Cache) error {
	data, err := json.Marshal(cache)
	if err != nil {
		return fmt.Errorf("marshaling cache: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing cache temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming cache file: %w", err)
	}
	return nil
}

// IsValid reports whether cache still matches the current config/input
// hashes and the output file is still present on disk.
func (c *Cache) IsValid(configHash, inputHash string) bool {
	if c == nil {
		return false
	}
	if c.V != SchemaVersion || c.ConfigHash != configHash || c.InputHash != inputHash {
		return false
	}
	if _, err := os.Stat(c.Output); err != nil {
		return false
	}
	return true
}

// HashFile computes the SHA-256 hex digest of a file's contents. Returns
// empty string if the file doesn't exist or can't be read.
func HashFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// New creates a Cache recording the current config/input hashes for output.
func New(configHash, inputHash, output string) *Cache {
	return &Cache{V: SchemaVersion, ConfigHash: configHash, InputHash: inputHash, Output: output}
}
