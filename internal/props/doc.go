// Package props implements the strata property store: a hierarchical
// key/value node that can delegate lookups to a parent node, tombstone
// individual names, and be permanently frozen against mutation.
//
// DELEGATION MODEL:
//
// Each Store optionally references a parent Store, forming a singly-linked
// delegation chain. A node knows only its parent, never its children, and
// does not own the parent: several children may share one parent, and the
// parent must outlive any child still resolving through it.
//
// Lookup walks the chain with prototype-style semantics:
//  1. Own value wins.
//  2. Own tombstone is a hard shadow - resolution stops, the parent is
//     never consulted for that name.
//  3. Otherwise the parent resolves the name.
//
// Deletion is therefore first-class state, distinct from "absent": a
// tombstoned name stays invisible even when an ancestor defines it.
//
// FREEZE:
//
// Freeze is monotonic and permanent. Once frozen, every mutator (Set,
// Import, Delete, SetParent) fails through the configured failure policy
// and leaves the store untouched; reads keep working for the lifetime of
// the instance.
//
// CONCURRENCY:
//
// Every instance carries its own RWMutex. Mutators take the write lock so
// that the properties map and the tombstone set change atomically with
// respect to readers. Chain resolution never holds two instance locks at
// once: the walk releases each node's lock before moving to its parent, so
// a child read racing a parent mutation is governed by the parent's own
// lock and no global lock discipline is needed.
package props
