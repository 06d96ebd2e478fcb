// Package layerdoc loads declarative layer documents and builds them into
// property-store delegation chains.
//
// A layer document lists named layers; each layer may name another layer
// as its delegation parent, carry initial properties, tombstone names and
// be frozen once built. Documents are written in YAML or CUE - the two
// formats share one schema and one validation pass.
//
// Building happens in three phases so that declaration order never
// matters: all stores are created first, then parents are wired, then
// frozen layers are frozen. Wiring goes through props.SetParent, so a
// document that declares a delegation loop is rejected with the store's
// own cycle diagnostics attached.
package layerdoc
