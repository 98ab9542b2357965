package sets

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetBasics(t *testing.T) {
	s := New("b", "a")
	s.Add("c")
	require.True(t, s.Has("a"))
	require.False(t, s.Has("z"))
	require.Equal(t, 3, s.Len())
	require.Equal(t, []string{"a", "b", "c"}, s.Sorted())

	c := s.Clone()
	c.Add("d")
	require.False(t, s.Has("d"))
}

func TestMissing(t *testing.T) {
	discovered := New("x/1", "x/2", "y/1")
	represented := New("x/1", "y/1", "z/9")
	require.Equal(t, []string{"x/2"}, discovered.Missing(represented))
	require.Empty(t, represented.Missing(represented))
}
