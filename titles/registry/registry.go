// Package registry maps (title, build) pairs to their converters.
package registry

import (
	"fmt"

	"github.com/joshuapare/blfkit/pkg/types"
	"github.com/joshuapare/blfkit/titles"
	"github.com/joshuapare/blfkit/titles/halo3"
	"github.com/joshuapare/blfkit/titles/haloreach"
)

type entry struct {
	key titles.Key
	new func(titles.Options) titles.Converter
}

var entries = []entry{
	{halo3.ReleaseKey, func(o titles.Options) titles.Converter { return halo3.NewRelease(o) }},
	{halo3.DeltaKey, func(o titles.Options) titles.Converter { return halo3.NewDelta(o) }},
	{haloreach.ReleaseKey, func(o titles.Options) titles.Converter { return haloreach.NewRelease(o) }},
	{haloreach.BetaKey, func(o titles.Options) titles.Converter { return haloreach.NewBeta(o) }},
}

// Lookup returns the converter registered for title and build. Both must
// match exactly.
func Lookup(title, build string, opts titles.Options) (titles.Converter, bool) {
	for _, e := range entries {
		if e.key.Title == title && e.key.Build == build {
			return e.new(opts), true
		}
	}
	return nil, false
}

// Get is Lookup returning an error wrapping types.ErrUnknownTitle.
func Get(title, build string, opts titles.Options) (titles.Converter, error) {
	c, ok := Lookup(title, build, opts)
	if !ok {
		return nil, fmt.Errorf("%q build %q: %w", title, build, types.ErrUnknownTitle)
	}
	return c, nil
}

// All returns every registered key in registration order.
func All() []titles.Key {
	keys := make([]titles.Key, len(entries))
	for i, e := range entries {
		keys[i] = e.key
	}
	return keys
}
