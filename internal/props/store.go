package props

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Store is one node in a delegation chain.
//
// A Store starts empty, unfrozen and parentless. It is mutated via Set,
// Import, Delete and SetParent until Freeze is called, after which it is
// read-only for the rest of its lifetime.
//
// The zero value is not usable; construct with New.
type Store struct {
	mu sync.RWMutex

	// id and label are fixed at construction and never change, so they
	// are readable without the lock.
	id    string
	label string

	props   map[string]any
	deleted map[string]struct{}
	parent  *Store
	frozen  bool

	report ReportFunc
}

// Option configures a Store at construction time.
type Option func(*Store)

// WithLabel attaches a human-readable name used in failure messages and
// diagnostics. Layer documents label stores with their layer name.
func WithLabel(label string) Option {
	return func(s *Store) { s.label = label }
}

// WithReporter replaces the failure policy. The default is Collect.
func WithReporter(report ReportFunc) Option {
	return func(s *Store) { s.report = report }
}

// New creates an empty, unfrozen, parentless Store.
func New(opts ...Option) *Store {
	s := &Store{
		id:      newStoreID(),
		props:   make(map[string]any),
		deleted: make(map[string]struct{}),
		report:  Collect,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.report == nil {
		s.report = Collect
	}
	return s
}

// newStoreID generates a unique instance identifier.
// Uses github.com/google/uuid for RFC 4122 compliant UUIDs; v7 keeps IDs
// time-ordered, which makes diagnostic output stable to eyeball.
func newStoreID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// ID returns the unique instance identifier.
func (s *Store) ID() string { return s.id }

// Label returns the human-readable name, or "" if none was set.
func (s *Store) Label() string { return s.label }

// describe names the store for failure messages.
// Callers may hold s.mu; touches only immutable fields.
func (s *Store) describe() string {
	if s.label != "" {
		return fmt.Sprintf("%q", s.label)
	}
	return s.id
}

// Set stores value under name and clears any tombstone for name.
// Fails through the failure policy with CodeFrozen if the store is frozen;
// the store is left untouched in that case.
func (s *Store) Set(name string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frozen {
		return s.report(CodeFrozen, fmt.Sprintf("cannot set %q: store %s is frozen", name, s.describe()))
	}
	s.props[name] = value
	delete(s.deleted, name)
	return nil
}

// Delete removes name from the store's own properties and records a
// tombstone for it. The tombstone shadows name anywhere in the ancestor
// chain: lookups on this store never see an inherited value for name
// again unless a later Set restores it.
//
// Delete is idempotent. Fails with CodeFrozen if the store is frozen.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frozen {
		return s.report(CodeFrozen, fmt.Sprintf("cannot delete %q: store %s is frozen", name, s.describe()))
	}
	delete(s.props, name)
	s.deleted[name] = struct{}{}
	return nil
}

// SetParent replaces the delegation parent. The parent is not owned: it
// may be shared by several children and must outlive any child still
// resolving through it. Passing nil detaches the store from its chain.
//
// Fails with CodeFrozen if the store is frozen, and with
// CodeCyclicDelegation if parent's chain already contains this store -
// accepting such an edge would make Get/Has/All unbounded. The cycle walk
// inspects the chain as it exists at call time; concurrent SetParent calls
// on distinct stores can each pass the walk and close a loop between them,
// which the resolver's visited-set backstop keeps bounded.
func (s *Store) SetParent(parent *Store) error {
	if s.Frozen() {
		return s.report(CodeFrozen, fmt.Sprintf("cannot set parent of frozen store %s", s.describe()))
	}
	// The walk takes each ancestor's read lock, so it must run before
	// s.mu is held: two stores adopting each other concurrently would
	// otherwise block on each other's write lock forever.
	if path, cyclic := s.delegationCycle(parent); cyclic {
		return s.report(CodeCyclicDelegation,
			fmt.Sprintf("store %s may not delegate to %s: chain loops back (%s)", s.describe(), parent.describe(), path))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	// Freeze may have landed since the unlocked guard check.
	if s.frozen {
		return s.report(CodeFrozen, fmt.Sprintf("cannot set parent of frozen store %s", s.describe()))
	}
	s.parent = parent
	return nil
}

// delegationCycle walks candidate's existing chain looking for s.
// Returns the would-be cycle path for diagnostics. Called without s.mu
// held; each step locks only the node being read.
func (s *Store) delegationCycle(candidate *Store) (string, bool) {
	path := ""
	for p := candidate; p != nil; {
		if path == "" {
			path = p.describe()
		} else {
			path += " -> " + p.describe()
		}
		if p == s {
			return path, true
		}
		p = p.Parent()
	}
	return "", false
}

// Freeze permanently locks the store against mutation. Idempotent; always
// succeeds; returns the receiver so construction code can freeze in the
// same expression that builds the chain.
func (s *Store) Freeze() *Store {
	s.mu.Lock()
	s.frozen = true
	s.mu.Unlock()
	return s
}

// Frozen reports whether Freeze has been called.
func (s *Store) Frozen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frozen
}

// Parent returns the current delegation parent, or nil.
func (s *Store) Parent() *Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.parent
}

// HasParent reports whether a delegation parent is set.
func (s *Store) HasParent() bool {
	return s.Parent() != nil
}
