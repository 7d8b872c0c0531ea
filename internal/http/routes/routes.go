// Package routes mounts the resource route groups onto the API.
package routes

import (
	"fmt"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// Group is a set of endpoints living under one path prefix.
type Group interface {
	Prefix() string
	Register(api huma.API)
}

// Mount validates every prefix and then registers all groups. Nothing is
// registered when prefix validation fails. A group that panics while
// registering, e.g. on a duplicate schema or operation, is reported as an
// error; groups registered before it stay registered.
func Mount(api huma.API, groups ...Group) error {
	seen := make([]string, 0, len(groups))
	for _, g := range groups {
		prefix := g.Prefix()
		if err := validatePrefix(prefix); err != nil {
			return err
		}
		for _, other := range seen {
			if overlaps(prefix, other) {
				return fmt.Errorf("route prefix %q collides with %q", prefix, other)
			}
		}
		seen = append(seen, prefix)
	}

	for _, g := range groups {
		if err := register(api, g); err != nil {
			return err
		}
	}
	return nil
}

func register(api huma.API, g Group) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("register %s: %v", g.Prefix(), r)
		}
	}()
	g.Register(api)
	return nil
}

func validatePrefix(prefix string) error {
	switch {
	case !strings.HasPrefix(prefix, "/"):
		return fmt.Errorf("route prefix %q must start with /", prefix)
	case prefix == "/":
		return fmt.Errorf("route prefix %q would shadow the root", prefix)
	case strings.HasSuffix(prefix, "/"):
		return fmt.Errorf("route prefix %q must not end with /", prefix)
	}
	return nil
}

// overlaps reports whether a equals b or one nests inside the other.
func overlaps(a, b string) bool {
	return a == b || strings.HasPrefix(a, b+"/") || strings.HasPrefix(b, a+"/")
}
