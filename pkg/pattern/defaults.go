package pattern

import (
	"embed"
	"fmt"
	"sync"
)

//go:embed catalogs/*.yaml
var catalogFS embed.FS

// Mode names a chemistry program whose output format ships with a default
// catalog.
type Mode string

const (
	ModeORCA Mode = "orca"
	ModeGPAW Mode = "gpaw"
	ModeVASP Mode = "vasp"
)

var (
	defaultsOnce sync.Once
	defaults     map[Mode]*Catalog
	defaultsErr  error
)

func loadDefaults() {
	defaults = make(map[Mode]*Catalog, 3)
	for _, mode := range []Mode{ModeORCA, ModeGPAW, ModeVASP} {
		data, err := catalogFS.ReadFile("catalogs/" + string(mode) + ".yaml")
		if err != nil {
			defaultsErr = fmt.Errorf("embedded catalog for %s: %w", mode, err)
			return
		}
		c, err := Parse(data)
		if err != nil {
			defaultsErr = fmt.Errorf("embedded catalog for %s: %w", mode, err)
			return
		}
		defaults[mode] = c
	}
}

// Default returns a deep copy of the built-in catalog for the given mode.
// Callers may freely extend the copy with their own patterns.
func Default(mode Mode) (*Catalog, error) {
	defaultsOnce.Do(loadDefaults)
	if defaultsErr != nil {
		return nil, defaultsErr
	}
	c, ok := defaults[mode]
	if !ok {
		return nil, fmt.Errorf("no default catalog for mode %q (want %q, %q or %q)",
			mode, ModeORCA, ModeGPAW, ModeVASP)
	}
	return c.Clone(), nil
}
