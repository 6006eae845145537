package chipset

import (
	"fmt"
	"slices"
)

var registry = map[string]*Desc{}

func init() {
	for _, d := range []*Desc{aladdin, aladdin3, mxic307, mic471, w8375x} {
		registry[d.Name] = d
	}
}

// Lookup returns the chipset registered under name.
func Lookup(name string) (*Desc, error) {
	d, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown chipset %q", name)
	}
	return d, nil
}

// Names returns the names of all chipsets, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
