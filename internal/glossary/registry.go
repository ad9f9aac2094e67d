// Package glossary provides the registry that maps a stitch token code to
// its cost. Lookups never fail: codes missing from the pattern's glossary
// resolve to model.NeutralEntry so running-count arithmetic stays defined.
// Every fallback is counted and logged once per code.
package glossary

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/nyantoasty/stitchgrid/internal/ctxlog"
	"github.com/nyantoasty/stitchgrid/internal/model"
)

// ErrUnknownToken is returned by Resolve in strict mode.
var ErrUnknownToken = errors.New("glossary: unknown token code")

// Registry is an immutable token table plus a tally of unknown lookups.
type Registry struct {
	entries map[string]model.GlossaryEntry
	logger  *slog.Logger

	mu      sync.Mutex
	unknown map[string]int
}

// New copies entries into a new Registry. A nil logger discards output.
func New(entries map[string]model.GlossaryEntry, logger *slog.Logger) *Registry {
	r := &Registry{
		entries: make(map[string]model.GlossaryEntry, len(entries)),
		logger:  ctxlog.OrDiscard(logger),
		unknown: make(map[string]int),
	}
	for code, e := range entries {
		if e.Consumed < 0 || e.Produced < 0 {
			panic(fmt.Sprintf("glossary: entry %q has negative cost", code))
		}
		r.entries[code] = e
	}
	return r
}

// Lookup returns the entry for code and whether the glossary defines it.
func (r *Registry) Lookup(code string) (model.GlossaryEntry, bool) {
	e, ok := r.entries[code]
	return e, ok
}

// Get returns the entry for code, falling back to model.NeutralEntry.
func (r *Registry) Get(code string) model.GlossaryEntry {
	if e, ok := r.entries[code]; ok {
		return e
	}
	r.recordUnknown(code)
	return model.NeutralEntry
}

// Resolve is Get with an explicit policy: when strict is set an unknown code
// is an error instead of a neutral fallback.
func (r *Registry) Resolve(code string, strict bool) (model.GlossaryEntry, error) {
	if e, ok := r.entries[code]; ok {
		return e, nil
	}
	if strict {
		return model.GlossaryEntry{}, fmt.Errorf("%w: %q", ErrUnknownToken, code)
	}
	r.recordUnknown(code)
	return model.NeutralEntry, nil
}

// Net is the running-count change of one application of code.
func (r *Registry) Net(code string) int {
	return r.Get(code).Net()
}

// Width is the number of stitches one application of code leaves on the needle.
func (r *Registry) Width(code string) int {
	return r.Get(code).Produced
}

func (r *Registry) recordUnknown(code string) {
	r.mu.Lock()
	r.unknown[code]++
	first := r.unknown[code] == 1
	r.mu.Unlock()
	if first {
		r.logger.Warn("Unknown token code, using neutral cost.", "token", code, "consumed", model.NeutralEntry.Consumed, "produced", model.NeutralEntry.Produced)
	}
}

// Unknown returns how many times each unknown code was looked up.
func (r *Registry) Unknown() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]int, len(r.unknown))
	for k, v := range r.unknown {
		out[k] = v
	}
	return out
}

// Codes returns the defined token codes in sorted order.
func (r *Registry) Codes() []string {
	codes := make([]string, 0, len(r.entries))
	for code := range r.entries {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Len is the number of defined codes.
func (r *Registry) Len() int {
	return len(r.entries)
}
