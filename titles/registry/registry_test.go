package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/blfkit/pkg/types"
	"github.com/joshuapare/blfkit/titles"
)

func TestLookup(t *testing.T) {
	for _, k := range All() {
		c, ok := Lookup(k.Title, k.Build, titles.Options{})
		require.True(t, ok, k.String())
		assert.Equal(t, k, c.Key())
	}
}

func TestLookupIsExact(t *testing.T) {
	_, ok := Lookup("Halo 3", "12070", titles.Options{})
	assert.False(t, ok)
	_, ok = Lookup("halo 3", "12070.08.09.05.2031.halo3_ship", titles.Options{})
	assert.False(t, ok)

	_, err := Get("Halo 2", "", titles.Options{})
	require.ErrorIs(t, err, types.ErrUnknownTitle)
	assert.True(t, types.IsKind(err, types.ErrKindDomain))
}

func TestAll(t *testing.T) {
	keys := All()
	require.Len(t, keys, 4)
	assert.Equal(t, "Halo 3", keys[0].Title)
	assert.Equal(t, "Halo: Reach", keys[3].Title)

	// callers cannot mutate the table
	keys[0].Title = "changed"
	assert.Equal(t, "Halo 3", All()[0].Title)
}
