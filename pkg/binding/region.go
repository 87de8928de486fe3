package binding

import (
	"sort"

	"github.com/brisk-gui/brisk/pkg/dispatch"
)

// Kind describes the lifetime and threading behavior of a connection.
type Kind int

const (
	// OneWay propagates source changes to the destination.
	OneWay Kind = iota
	// TwoWay is one direction of a bidirectional pair sharing a handle.
	TwoWay
	// OneTime disconnects itself after the first invocation.
	OneTime
	// Immediate always runs inline, bypassing scheduler hand-off.
	Immediate
)

// entry is a single observer relation, keyed by source address within the
// owning region.
type entry struct {
	id      Handle
	src     Address
	dest    Address
	kind    Kind
	handler func()
	// queue marshals handler execution when the notifying goroutine is not
	// its owner. Resolved at connect time from the endpoint regions.
	queue      *dispatch.Queue
	destRegion *region
	counter    uint64
	srcDesc    string
	destDesc   string
}

// region is a registered contiguous byte range owning a set of entries.
type region struct {
	addr  Address
	queue *dispatch.Queue
	// entries sorted by source Min; insertion order preserved within ties.
	entries []*entry
	// changed is set whenever the entry list mutates during a notify pass,
	// forcing the pass to restart its iteration over this region.
	changed bool
}

// insert adds an entry keeping the source-address sort order.
func (r *region) insert(e *entry) {
	i := sort.Search(len(r.entries), func(i int) bool {
		return r.entries[i].src.Min > e.src.Min
	})
	r.entries = append(r.entries, nil)
	copy(r.entries[i+1:], r.entries[i:])
	r.entries[i] = e
	r.changed = true
}

// removeIf deletes entries matching the predicate, preserving order.
// Returns the number removed.
func (r *region) removeIf(match func(*entry) bool) int {
	kept := r.entries[:0]
	removed := 0
	for _, e := range r.entries {
		if match(e) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	if removed > 0 {
		// Zero the tail so dropped entries don't linger.
		for i := len(kept); i < len(r.entries); i++ {
			r.entries[i] = nil
		}
		r.entries = kept
		r.changed = true
	}
	return removed
}
