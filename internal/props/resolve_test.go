package props

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDelegatesToParent(t *testing.T) {
	p := New()
	require.NoError(t, p.Set("y", 5))

	c := New()
	require.NoError(t, c.SetParent(p))

	v, ok := c.Get("y")
	assert.True(t, ok)
	assert.Equal(t, 5, v)
	assert.True(t, c.Has("y"))
}

func TestOwnValueShadowsParent(t *testing.T) {
	p := New()
	require.NoError(t, p.Set("x", "parent"))

	c := New()
	require.NoError(t, c.SetParent(p))
	require.NoError(t, c.Set("x", "child"))

	v, _ := c.Get("x")
	assert.Equal(t, "child", v)
	v, _ = p.Get("x")
	assert.Equal(t, "parent", v)
}

func TestTombstoneShadowsAncestorChain(t *testing.T) {
	p := New()
	require.NoError(t, p.Set("x", 1))

	c := New()
	require.NoError(t, c.SetParent(p))
	require.NoError(t, c.Delete("x"))

	_, ok := c.Get("x")
	assert.False(t, ok)
	assert.False(t, c.Has("x"))

	// The parent is untouched.
	v, ok := p.Get("x")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestTombstoneShadowsAcrossThreeLevels(t *testing.T) {
	root := New()
	require.NoError(t, root.Set("k", "root"))
	mid := New()
	require.NoError(t, mid.SetParent(root))
	require.NoError(t, mid.Delete("k"))
	leaf := New()
	require.NoError(t, leaf.SetParent(mid))

	// mid's tombstone stops the walk before it ever reaches root.
	assert.False(t, leaf.Has("k"))
	_, ok := leaf.Get("k")
	assert.False(t, ok)
}

func TestSetAfterDeleteRestoresVisibility(t *testing.T) {
	p := New()
	require.NoError(t, p.Set("n", "old"))
	c := New()
	require.NoError(t, c.SetParent(p))

	require.NoError(t, c.Set("n", "v1"))
	require.NoError(t, c.Delete("n"))
	require.NoError(t, c.Set("n", "v2"))

	v, ok := c.Get("n")
	assert.True(t, ok)
	assert.Equal(t, "v2", v)
	assert.Equal(t, map[string]any{"n": "v2"}, c.All(true))
}

func TestGetMissReturnsNotOK(t *testing.T) {
	s := New()
	_, ok := s.Get("absent")
	assert.False(t, ok)
	assert.False(t, s.Has("absent"))
}

func TestAllOwnOnly(t *testing.T) {
	p := New()
	require.NoError(t, p.Set("inherited", 1))

	c := New()
	require.NoError(t, c.SetParent(p))
	require.NoError(t, c.Set("own", 2))
	require.NoError(t, c.Delete("gone"))

	// Own snapshot: no parent values, tombstones invisible.
	assert.Equal(t, map[string]any{"own": 2}, c.All(false))

	// And it is a snapshot - mutating it does not touch the store.
	view := c.All(false)
	view["own"] = 99
	v, _ := c.Get("own")
	assert.Equal(t, 2, v)
}

func TestAllResolvedOverlaysAndSuppresses(t *testing.T) {
	p := New()
	require.NoError(t, p.Set("a", 1))
	require.NoError(t, p.Set("shared", "parent"))

	c := New()
	require.NoError(t, c.SetParent(p))
	require.NoError(t, c.Set("b", 2))
	require.NoError(t, c.Set("shared", "child"))
	require.NoError(t, c.Delete("a"))

	assert.Equal(t, map[string]any{"b": 2, "shared": "child"}, c.All(true))
}

func TestAllResolvedWithoutParent(t *testing.T) {
	s := New()
	require.NoError(t, s.Set("k", "v"))
	assert.Equal(t, s.All(false), s.All(true))
}

func TestAllResolvedThreeLevels(t *testing.T) {
	root := New()
	require.NoError(t, root.Set("a", "root"))
	require.NoError(t, root.Set("b", "root"))
	require.NoError(t, root.Set("c", "root"))

	mid := New()
	require.NoError(t, mid.SetParent(root))
	require.NoError(t, mid.Set("b", "mid"))
	require.NoError(t, mid.Delete("c"))

	leaf := New()
	require.NoError(t, leaf.SetParent(mid))
	require.NoError(t, leaf.Set("d", "leaf"))

	assert.Equal(t, map[string]any{
		"a": "root",
		"b": "mid",
		"d": "leaf",
	}, leaf.All(true))
}

// A tombstone only shadows on the instance that holds it: a sibling
// sharing the same parent still inherits the name.
func TestSiblingsDoNotShareTombstones(t *testing.T) {
	p := New()
	require.NoError(t, p.Set("x", 1))

	c1 := New()
	require.NoError(t, c1.SetParent(p))
	require.NoError(t, c1.Delete("x"))

	c2 := New()
	require.NoError(t, c2.SetParent(p))

	assert.False(t, c1.Has("x"))
	assert.True(t, c2.Has("x"))
}

func TestConcurrentReadsDuringFreeze(t *testing.T) {
	p := New()
	require.NoError(t, p.Set("k", "v"))
	s := New()
	require.NoError(t, s.SetParent(p))
	require.NoError(t, s.Set("own", 1))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				// Reads must see fully-pre-freeze or fully-post-freeze
				// state; either way the values are stable.
				v, ok := s.Get("k")
				assert.True(t, ok)
				assert.Equal(t, "v", v)
				_ = s.All(true)
				_ = s.Frozen()
			}
		}()
	}
	s.Freeze()
	wg.Wait()

	assert.True(t, s.Frozen())
	assert.True(t, IsFrozenError(s.Set("own", 2)))
}
