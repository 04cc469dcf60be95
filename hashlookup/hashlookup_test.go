package hashlookup

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type mapFactory map[string]Algorithm

func (m mapFactory) Lookup(name string) (Algorithm, bool) {
	a, ok := m[name]

	return a, ok
}

func TestFindReturnsFirstMatch(t *testing.T) {
	first := mapFactory{"sha256": "first-sha256"}
	second := mapFactory{"sha256": "second-sha256", "blake2b": "second-blake2b"}

	got, ok := Find("sha256", first, second)
	require.True(t, ok)
	require.Equal(t, Algorithm("first-sha256"), got)

	got, ok = Find("blake2b", first, second)
	require.True(t, ok)
	require.Equal(t, Algorithm("second-blake2b"), got)
}

func TestFindNoMatch(t *testing.T) {
	got, ok := Find("unknown", mapFactory{"sha256": "x"})
	require.False(t, ok)
	require.Nil(t, got)
}

func TestFindSkipsNilFactories(t *testing.T) {
	got, ok := Find("sha256", nil, mapFactory{"sha256": "x"})
	require.True(t, ok)
	require.Equal(t, Algorithm("x"), got)
}
