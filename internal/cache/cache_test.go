package cache_test

import (
	"testing"
	"time"

	"synapse/internal/cache"

	"github.com/stretchr/testify/require"
)

func TestSetGet(t *testing.T) {
	c := cache.New[string](time.Minute, 0)
	defer c.Stop()

	c.Set("a", "alpha")
	v, ok := c.Get("a")
	require.True(t, ok)
	require.Equal(t, "alpha", v)

	_, ok = c.Get("missing")
	require.False(t, ok)
}

func TestExpiry(t *testing.T) {
	c := cache.New[int](10*time.Millisecond, 0)
	defer c.Stop()

	c.Set("n", 42)
	v, ok := c.Get("n")
	require.True(t, ok)
	require.Equal(t, 42, v)

	time.Sleep(20 * time.Millisecond)
	_, ok = c.Get("n")
	require.False(t, ok)
}

func TestSetTTL_Override(t *testing.T) {
	c := cache.New[string](10*time.Millisecond, 0)
	defer c.Stop()

	c.SetTTL("long", "keep", time.Minute)
	time.Sleep(20 * time.Millisecond)

	v, ok := c.Get("long")
	require.True(t, ok)
	require.Equal(t, "keep", v)
}

func TestDeleteAndLen(t *testing.T) {
	c := cache.New[string](time.Minute, 0)
	defer c.Stop()

	c.Set("a", "1")
	c.Set("b", "2")
	require.Equal(t, 2, c.Len())

	c.Delete("a")
	require.Equal(t, 1, c.Len())

	_, ok := c.Get("a")
	require.False(t, ok)
}

func TestJanitor_RemovesExpired(t *testing.T) {
	c := cache.New[string](5*time.Millisecond, 10*time.Millisecond)
	defer c.Stop()

	c.Set("a", "1")
	c.Set("b", "2")

	require.Eventually(t, func() bool {
		return c.Len() == 0
	}, time.Second, 5*time.Millisecond)
}

func TestStructValues(t *testing.T) {
	type snapshot struct {
		Name  string
		Count int
	}
	c := cache.New[snapshot](time.Minute, 0)
	defer c.Stop()

	c.Set("s", snapshot{Name: "trends", Count: 7})
	v, ok := c.Get("s")
	require.True(t, ok)
	require.Equal(t, 7, v.Count)
}
