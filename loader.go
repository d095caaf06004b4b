package envcheck

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
)

// EnvFileNames lists the conventional env files, in the order they are loaded.
var EnvFileNames = []string{
	".env",
	".env.local",
	".env.development",
	".env.development.local",
	".env.production",
	".env.production.local",
	".env.staging",
	".env.staging.local",
	".env.test",
	".env.test.local",
}

// ResolveEnvFile returns path unchanged when absolute, otherwise joined to dir.
func ResolveEnvFile(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// LoadEnvFile merges the KEY=VALUE pairs of path into store.
// Keys already set in store are never overwritten, so the first definition wins.
// A missing file is not an error and loads nothing.
// Returns the keys that were written, sorted.
func LoadEnvFile(store Store, path string) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat env file %s: %w", path, err)
	}

	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("parse env file %s: %w", path, err)
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	loaded := make([]string, 0, len(keys))
	for _, key := range keys {
		if _, exists := store.Lookup(key); exists {
			continue
		}
		if err := store.Set(key, values[key]); err != nil {
			return loaded, fmt.Errorf("set %s from %s: %w", key, path, err)
		}
		loaded = append(loaded, key)
	}

	return loaded, nil
}

// DetectEnvFiles returns the entries of EnvFileNames that exist in dir.
func DetectEnvFiles(dir string) []string {
	found := make([]string, 0)
	for _, name := range EnvFileNames {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil || info.IsDir() {
			continue
		}
		found = append(found, name)
	}
	return found
}

// LoadEnvFiles loads every env file detected in dir into store, in EnvFileNames order.
// Earlier files take precedence over later ones.
func LoadEnvFiles(store Store, dir string) (*Provenance, error) {
	prov := &Provenance{}
	for _, name := range DetectEnvFiles(dir) {
		loaded, err := LoadEnvFile(store, filepath.Join(dir, name))
		if err != nil {
			return prov, err
		}
		for _, key := range loaded {
			prov.add(key, fileSource(name))
		}
	}
	return prov, nil
}

func fileSource(path string) string {
	return "file:" + filepath.Base(path)
}
