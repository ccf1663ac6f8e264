package checker

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"ifcore/internal/model"
)

// EntryPrefix is the naming convention every registered check function must
// follow. Checker manifests may only bind entry points carrying this prefix.
const EntryPrefix = "check_"

// CheckFunc is one compliance check. It receives the model handle and the
// full parameter bag; it must ignore parameters it does not recognize and
// must not mutate the model. It returns its findings or an error.
type CheckFunc func(ctx context.Context, m *model.Model, params Params) ([]Result, error)

var (
	registry = make(map[string]CheckFunc)
	mu       sync.RWMutex
)

// Register adds a check function under its entry-point name. It panics on a
// duplicate name, a name without the check_ prefix, or a nil function, since
// all registrations happen from init and a bad one is a programming error.
func Register(name string, fn CheckFunc) {
	mu.Lock()
	defer mu.Unlock()
	if !strings.HasPrefix(name, EntryPrefix) {
		panic(fmt.Sprintf("check function %q must be named with prefix %q", name, EntryPrefix))
	}
	if fn == nil {
		panic(fmt.Sprintf("check function %q is nil", name))
	}
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("check function %q already registered", name))
	}
	registry[name] = fn
}

// Lookup resolves an entry-point name to its check function.
func Lookup(name string) (CheckFunc, bool) {
	mu.RLock()
	defer mu.RUnlock()
	fn, ok := registry[name]
	return fn, ok
}

// Names lists all registered entry points, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
