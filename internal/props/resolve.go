package props

// Get resolves name through the delegation chain:
//  1. Own value wins.
//  2. Own tombstone is a hard shadow - the walk stops without consulting
//     the parent.
//  3. Otherwise the parent resolves the name.
//
// The second return value is false when name resolves to nothing anywhere
// in the chain. Get never fails: cycle edges are refused at SetParent
// time, and a visited set guards the walk against edges raced in from
// other goroutines (the walk stops at a revisit and reports a miss).
func (s *Store) Get(name string) (any, bool) {
	var visited map[*Store]struct{}
	for cur := s; cur != nil; {
		cur.mu.RLock()
		if v, ok := cur.props[name]; ok {
			cur.mu.RUnlock()
			return v, true
		}
		if _, dead := cur.deleted[name]; dead {
			cur.mu.RUnlock()
			return nil, false
		}
		next := cur.parent
		cur.mu.RUnlock()

		if next == nil {
			return nil, false
		}
		if visited == nil {
			visited = map[*Store]struct{}{s: {}}
		}
		if _, seen := visited[next]; seen {
			return nil, false
		}
		visited[next] = struct{}{}
		cur = next
	}
	return nil, false
}

// Has reports whether name resolves to a value, with the same branch
// order as Get: own value, own tombstone (never consult the parent),
// parent chain.
func (s *Store) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// All returns a snapshot of the store's visible properties.
//
// With includeParent false it is a shallow copy of this instance's own
// properties only - parent values and tombstones beyond this instance do
// not affect it.
//
// With includeParent true it is the fully resolved view: the parent's
// resolved view, overlaid with this instance's own properties (own
// entries win on name collision), minus every name tombstoned on this
// instance. The exclusion is name-keyed: a tombstone suppresses the
// inherited name no matter what value it carried. Without a parent the
// resolved view degenerates to the own-properties snapshot.
func (s *Store) All(includeParent bool) map[string]any {
	if !includeParent {
		s.mu.RLock()
		defer s.mu.RUnlock()
		out := make(map[string]any, len(s.props))
		for k, v := range s.props {
			out[k] = v
		}
		return out
	}

	// Snapshot each node leaf-to-root, then fold root-to-leaf: overlay a
	// node's own entries, then strip its tombstones. Per-node snapshots
	// mean no two instance locks are ever held at once.
	type layer struct {
		props   map[string]any
		deleted map[string]struct{}
	}
	var chain []layer
	visited := map[*Store]struct{}{}
	for cur := s; cur != nil; {
		if _, seen := visited[cur]; seen {
			break
		}
		visited[cur] = struct{}{}

		cur.mu.RLock()
		l := layer{
			props:   make(map[string]any, len(cur.props)),
			deleted: make(map[string]struct{}, len(cur.deleted)),
		}
		for k, v := range cur.props {
			l.props[k] = v
		}
		for k := range cur.deleted {
			l.deleted[k] = struct{}{}
		}
		next := cur.parent
		cur.mu.RUnlock()

		chain = append(chain, l)
		cur = next
	}

	out := make(map[string]any)
	for i := len(chain) - 1; i >= 0; i-- {
		for k, v := range chain[i].props {
			out[k] = v
		}
		for k := range chain[i].deleted {
			delete(out, k)
		}
	}
	return out
}
