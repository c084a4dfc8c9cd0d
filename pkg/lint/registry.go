package lint

import (
	"cmp"
	"slices"
	"sync"
)

// Registry holds all registered checks.
type Registry struct {
	mu      sync.RWMutex
	byID    map[string]Check
	byName  map[string]Check
	aliases map[string]string // alias -> canonical ID
}

// NewRegistry creates an empty check registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:    make(map[string]Check),
		byName:  make(map[string]Check),
		aliases: make(map[string]string),
	}
}

// Register adds a check to the registry.
// If a check with the same ID already exists, it is replaced.
func (r *Registry) Register(check Check) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[check.ID()] = check
	r.byName[check.Name()] = check
}

// RegisterAlias maps an alias to a canonical check ID
// (e.g., "caption" -> "TEX004").
func (r *Registry) RegisterAlias(alias, checkID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[alias] = checkID
}

// Get retrieves a check by ID or name.
// It tries ID first, then falls back to name lookup.
func (r *Registry) Get(key string) (Check, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Try ID first
	if check, ok := r.byID[key]; ok {
		return check, true
	}
	// Fall back to name
	if check, ok := r.byName[key]; ok {
		return check, true
	}
	return nil, false
}

// GetByID retrieves a check by its ID only.
func (r *Registry) GetByID(id string) (Check, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	check, ok := r.byID[id]
	return check, ok
}

// GetByName retrieves a check by its name only.
func (r *Registry) GetByName(name string) (Check, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	check, ok := r.byName[name]
	return check, ok
}

// Resolve returns the canonical ID and check for a given key.
// The key can be a check ID, name, or alias.
// Returns (id, check, found).
func (r *Registry) Resolve(key string) (string, Check, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Try ID first
	if check, ok := r.byID[key]; ok {
		return check.ID(), check, true
	}
	// Try name
	if check, ok := r.byName[key]; ok {
		return check.ID(), check, true
	}
	// Try alias
	if targetID, ok := r.aliases[key]; ok {
		if check, ok := r.byID[targetID]; ok {
			return check.ID(), check, true
		}
	}
	return "", nil, false
}

// Checks returns all registered checks sorted by ID.
func (r *Registry) Checks() []Check {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Check, 0, len(r.byID))
	for _, check := range r.byID {
		result = append(result, check)
	}

	slices.SortFunc(result, func(a, b Check) int {
		return cmp.Compare(a.ID(), b.ID())
	})

	return result
}

// IDs returns all registered check IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.byID))
	for id := range r.byID {
		result = append(result, id)
	}

	slices.Sort(result)
	return result
}

// DefaultRegistry is the global registry for built-in checks.
// The rules package registers into it during init().
//
//nolint:gochecknoglobals // Global registry is intentional for check registration
var DefaultRegistry = NewRegistry()
