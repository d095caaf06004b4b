package sourceenv

import (
	"os"
	"sort"
	"strings"

	"github.com/Azhovan/envcheck"
	"github.com/Azhovan/envcheck/internal/normalize"
)

// Options configures environment variable store behavior.
type Options struct {
	// Prefix is prepended to every name before it is looked up or set.
	// Empty = names are used as-is.
	Prefix string
}

type envStore struct {
	opts Options
}

// New creates a store backed by the process environment.
func New(opts Options) envcheck.Store {
	return &envStore{opts: opts}
}

// Lookup reads the prefixed variable from the process environment.
func (e *envStore) Lookup(name string) (string, bool) {
	return os.LookupEnv(normalize.ApplyPrefix(e.opts.Prefix, name))
}

// Set writes the prefixed variable to the process environment.
func (e *envStore) Set(name, value string) error {
	return os.Setenv(normalize.ApplyPrefix(e.opts.Prefix, name), value)
}

// Names returns the unprefixed names of every variable under the prefix, sorted.
func Names(opts Options) []string {
	names := make([]string, 0)
	for _, env := range os.Environ() {
		key, _, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(key, opts.Prefix) {
			continue
		}
		key = key[len(opts.Prefix):]
		if key == "" {
			continue
		}
		names = append(names, key)
	}
	sort.Strings(names)
	return names
}

// MapStore is an in-memory store.
type MapStore struct {
	vars map[string]string
}

// NewMap creates a MapStore holding a copy of vars.
func NewMap(vars map[string]string) *MapStore {
	m := &MapStore{vars: make(map[string]string, len(vars))}
	for k, v := range vars {
		m.vars[k] = v
	}
	return m
}

// Lookup returns the value of name and whether it is set.
func (m *MapStore) Lookup(name string) (string, bool) {
	v, ok := m.vars[name]
	return v, ok
}

// Set assigns value to name.
func (m *MapStore) Set(name, value string) error {
	m.vars[name] = value
	return nil
}

// Unset removes name.
func (m *MapStore) Unset(name string) {
	delete(m.vars, name)
}

// Vars returns a copy of the stored variables.
func (m *MapStore) Vars() map[string]string {
	out := make(map[string]string, len(m.vars))
	for k, v := range m.vars {
		out[k] = v
	}
	return out
}
