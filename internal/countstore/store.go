// Package countstore defines the cache contract used by the count
// propagator to remember each row's starting and ending running counts.
//
// # Scope
//
// A store holds counts for exactly one loaded pattern. The engine calls
// Reset whenever a different pattern is loaded, so implementations never
// need to key entries by pattern.
//
// # Lifecycle
//
//  1. Created empty when an engine is built.
//  2. Filled row by row as rows are resolved, usually in increasing order.
//  3. Reset wholesale on pattern switch.
//
// Values written for a row never change while the pattern is unchanged, so a
// Put that overwrites an existing row stores an identical value.
//
// # Typical Implementation
//
// See internal/inmemorystore for the sync.Map based implementation. Tests
// can substitute their own Store to observe or pre-seed the cache.
package countstore

// Counts are the running counts at the start and end of one row.
type Counts struct {
	Starting int
	Ending   int
}

// Net is the change the row makes to the running count.
func (c Counts) Net() int {
	return c.Ending - c.Starting
}

// Store caches per-row counts.
//
// Thread-safety: implementations must tolerate concurrent calls; the engine
// serialises its own access but callers may share a store between engines
// that load the same pattern.
type Store interface {
	// Get returns the cached counts for row and whether they were present.
	Get(row int) (Counts, bool)

	// Put records the counts for row.
	Put(row int, c Counts)

	// Reset drops every cached row.
	Reset()

	// Len is the number of cached rows.
	Len() int
}
