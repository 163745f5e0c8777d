package sizing

import (
	"sort"
	"strings"
	"sync"

	"github.com/matzehuels/boxfit/pkg/errors"
)

// Canonical names of the built-in handlers.
const (
	NameFill        = "fill"
	NameFixedWidth  = "fixedWidth"
	NameFixedHeight = "fixedHeight"
	NameSemifixed   = "semifixed"
	NameContain     = "contain"
	NameCenter      = "center"
)

// DefaultName is the handler a resizer uses when none is configured.
const DefaultName = NameCenter

// Info describes a registered handler.
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	// RatioBased marks handlers that divide by the target size and
	// therefore need a non-zero target to produce finite output.
	RatioBased bool `json:"ratio_based"`
}

type entry struct {
	info    Info
	handler Handler
}

// Registry maps names to handlers. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// NewBuiltinRegistry returns a registry holding the six built-in handlers.
func NewBuiltinRegistry() *Registry {
	r := NewRegistry()
	for _, b := range builtins {
		if err := r.Register(b.info, b.handler); err != nil {
			panic(err)
		}
	}
	return r
}

// Default is the process-wide registry used by [Lookup] and [Names].
var Default = NewBuiltinRegistry()

var builtins = []entry{
	{Info{Name: NameFill, Description: "stretch to the available area (scale 1)"}, Fill},
	{Info{Name: NameFixedWidth, Description: "fill the available area, scale by width", RatioBased: true}, FixedWidth},
	{Info{Name: NameFixedHeight, Description: "fill the available area, scale by height", RatioBased: true}, FixedHeight},
	{Info{Name: NameSemifixed, Description: "fixedWidth or fixedHeight, by the constraining axis", RatioBased: true}, Semifixed},
	{Info{Name: NameContain, Description: "fit preserving aspect ratio, centered", RatioBased: true}, Contain},
	{Info{Name: NameCenter, Description: "keep intrinsic size, centered (scale 1)"}, Center},
}

func key(name string) string { return strings.ToLower(strings.TrimSpace(name)) }

// Register adds a handler under info.Name. Names are case-insensitive;
// registering an empty or already-used name fails with INVALID_SIZING.
func (r *Registry) Register(info Info, h Handler) error {
	k := key(info.Name)
	if k == "" {
		return errors.New(errors.ErrCodeInvalidSizing, "sizing name cannot be empty")
	}
	if h == nil {
		return errors.New(errors.ErrCodeInvalidSizing, "sizing %q has no handler", info.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[k]; exists {
		return errors.New(errors.ErrCodeInvalidSizing, "sizing %q already registered", info.Name)
	}
	r.entries[k] = entry{info: info, handler: h}
	return nil
}

// Lookup returns the handler registered under name.
func (r *Registry) Lookup(name string) (Handler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[key(name)]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidSizing, "unknown sizing %q (available: %s)",
			name, strings.Join(r.namesLocked(), ", "))
	}
	return e.handler, nil
}

// Info returns the metadata registered under name.
func (r *Registry) Info(name string) (Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[key(name)]
	return e.info, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

// Infos returns metadata for every registered handler, sorted by name.
func (r *Registry) Infos() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]Info, 0, len(r.entries))
	for _, e := range r.entries {
		infos = append(infos, e.info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		names = append(names, e.info.Name)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves name in the [Default] registry.
func Lookup(name string) (Handler, error) { return Default.Lookup(name) }

// Names lists the [Default] registry.
func Names() []string { return Default.Names() }
