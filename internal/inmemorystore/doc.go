// Package inmemorystore provides an ephemeral, thread-safe, in-memory
// implementation of the countstore.Store interface.
//
// # Characteristics
//
//   - **Ephemeral:** lives as long as the engine's loaded pattern
//   - **Thread-Safe:** uses sync.Map, so concurrent readers do not contend
//   - **Fast Lookups:** O(1) average case Get and Put
//
// Rows are written once and read many times by later rows' propagation,
// which is the access pattern sync.Map is built for.
package inmemorystore
