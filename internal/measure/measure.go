// Package measure collects lightweight run-time instrumentation for the
// enumeration engine: step counters (heap pushes/pops, visited-set hits)
// and coarse timings (construction, hill-climb, full generator runs).
//
// Adapted from the teacher's measureutil/prof pair: prof.Track recorded
// timed entries under a label and measureutil.SnapshotAndReset drained a
// global counter map. Here the two are merged into one small package and
// repurposed from signing-scheme instrumentation to search-engine
// instrumentation, with an explicit Run type instead of a single global so
// that concurrent Isos (see spec.md §5) don't share counters.
package measure

import (
	"sync"
	"sync/atomic"
	"time"
)

// Run accumulates counters and timings for one enumeration (one Marginal,
// MarginalTrek, or generator instance). The zero value is ready to use.
type Run struct {
	mu      sync.Mutex
	counts  map[string]*uint64
	entries []Entry
}

// Entry is a single timed event, as produced by Track.
type Entry struct {
	Label string
	Dur   time.Duration
}

// Incr adds delta to the named counter (created on first use).
func (r *Run) Incr(label string, delta uint64) {
	r.mu.Lock()
	if r.counts == nil {
		r.counts = make(map[string]*uint64)
	}
	c, ok := r.counts[label]
	if !ok {
		c = new(uint64)
		r.counts[label] = c
	}
	r.mu.Unlock()
	atomic.AddUint64(c, delta)
}

// Track records the elapsed time since start under name. Typical use:
//
//	defer run.Track(time.Now(), "hillclimb")
func (r *Run) Track(start time.Time, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Label: name, Dur: time.Since(start)})
}

// Counters returns a snapshot of all counters and resets them to zero.
func (r *Run) Counters() map[string]uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]uint64, len(r.counts))
	for k, v := range r.counts {
		out[k] = atomic.SwapUint64(v, 0)
	}
	return out
}

// Timings returns the collected timing entries and clears them.
func (r *Run) Timings() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	r.entries = nil
	return out
}
