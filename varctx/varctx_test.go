package varctx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAndSameValueBothBitsIsEmpty(t *testing.T) {
	c := New()
	c.AddValue("east", false, Include, AND)
	c.AddValue("east", false, Exclude, AND)
	require.True(t, c.IsEmpty(), "= x AND != x must be empty")
}

func TestOrSameValueBothBitsIsAll(t *testing.T) {
	c := New()
	c.AddValue("east", false, Include, OR)
	c.AddValue("east", false, Exclude, OR)
	require.True(t, c.IsAll(), "= x OR != x must be universal")
}

func TestDistinctKeysDoNotCollapse(t *testing.T) {
	c := New()
	c.AddValue("east", false, Include, AND)
	c.AddValue("west", false, Include, AND)
	require.False(t, c.IsEmpty())
	require.Len(t, c.Values(), 2)
}

func TestValuesAndWildsAreIndependent(t *testing.T) {
	c := New()
	c.AddValue("east", false, Include, OR)
	c.AddValue("%-east", true, Include, OR)
	require.Len(t, c.Values(), 1)
	require.Len(t, c.Wilds(), 1)
}

func TestCompare(t *testing.T) {
	a := New()
	b := New()
	a.AddValue("east", false, Include, OR)
	b.AddValue("east", false, Include, OR)
	require.True(t, a.Compare(b))

	b.AddValue("west", false, Include, OR)
	require.False(t, a.Compare(b))
}
