// Package testutil provides shared helpers for strata tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/strata/internal/props"
)

// Layer describes one node of a test delegation chain.
type Layer struct {
	// Name labels the store (props.WithLabel).
	Name string

	// Props are set on the store in unspecified order.
	Props map[string]any

	// Deleted names are tombstoned after Props are set.
	Deleted []string

	// Frozen freezes the store once the whole chain is wired.
	Frozen bool
}

// BuildChain constructs a delegation chain root-first: each layer's
// parent is the previous one. Freezing happens after all parents are
// wired so that frozen layers can still be linked. Returns the stores in
// declaration order (root first).
func BuildChain(t *testing.T, layers ...Layer) []*props.Store {
	t.Helper()

	stores := make([]*props.Store, len(layers))
	for i, l := range layers {
		s := props.New(props.WithLabel(l.Name))
		for k, v := range l.Props {
			require.NoError(t, s.Set(k, v))
		}
		for _, name := range l.Deleted {
			require.NoError(t, s.Delete(name))
		}
		if i > 0 {
			require.NoError(t, s.SetParent(stores[i-1]))
		}
		stores[i] = s
	}
	for i, l := range layers {
		if l.Frozen {
			stores[i].Freeze()
		}
	}
	return stores
}
