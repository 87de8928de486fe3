// Package binding implements the process-wide observer graph that propagates
// change notifications between registered byte ranges, across goroutines and
// scopes, with cycle suppression and scheduler hand-off.
//
// Storage is identified by an [Address], a half-open synthetic byte range.
// Contiguous ranges are registered as regions, optionally with a
// [dispatch.Queue] that marshals handler execution onto the owning
// goroutine. Connections observe a source range and update a destination
// range; [Registry.Notify] walks every connection whose source intersects
// the notified range.
//
// Scheduler hand-off keys on the destination: a connection runs on the
// destination region's queue (falling back to the source region's queue when
// the destination has none), because the handler writes destination-owned
// state and that state's owner decides the thread. Immediate connections
// never hand off.
//
// Most callers do not touch addresses directly: [Value] wraps a region, a
// stored value and typed connect helpers.
package binding

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/brisk-gui/brisk/pkg/dispatch"
	"github.com/brisk-gui/brisk/pkg/errors"
)

// Handle identifies a connection. Bidirectional connections share one
// handle across both directions.
type Handle uint64

// Registry is the process-wide observer graph. Use [Instance] for the
// shared singleton; separate instances exist only in tests.
type Registry struct {
	mu      sync.Mutex
	regions []*region // sorted by addr.Min
	// stack holds the entries currently executing in (possibly nested)
	// notify passes. An entry already on the stack is never re-entered.
	stack  []*entry
	epoch  atomic.Uint64
	nextID atomic.Uint64
}

var (
	instance   *Registry
	instanceMu sync.Mutex
)

// Initialize creates the shared registry and registers the static region
// used for constants and process-wide values. Idempotent.
func Initialize() *Registry {
	instanceMu.Lock()
	defer instanceMu.Unlock()
	if instance == nil {
		instance = NewRegistry()
	}
	return instance
}

// Shutdown drops the shared registry. All handles become invalid.
func Shutdown() {
	instanceMu.Lock()
	instance = nil
	instanceMu.Unlock()
}

// Instance returns the shared registry, initializing it on first use.
func Instance() *Registry {
	instanceMu.Lock()
	r := instance
	instanceMu.Unlock()
	if r != nil {
		return r
	}
	return Initialize()
}

// NewRegistry creates an isolated registry with its own static region.
func NewRegistry() *Registry {
	r := &Registry{}
	r.RegisterRegion(Address{Min: staticArenaMin, Max: staticArenaMax}, nil)
	return r
}

// RegisterRegion registers a contiguous byte range. The optional queue
// marshals handler execution for connections whose endpoints resolve to
// this region. Overlapping an existing region is a programmer error.
func (r *Registry) RegisterRegion(addr Address, queue *dispatch.Queue) {
	if addr.Size() == 0 {
		errors.Programmer("binding.RegisterRegion", "empty range [%#x,%#x)", addr.Min, addr.Max)
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, reg := range r.regions {
		if reg.addr.Intersects(addr) {
			errors.Programmer("binding.RegisterRegion",
				"range [%#x,%#x) overlaps registered region [%#x,%#x)",
				addr.Min, addr.Max, reg.addr.Min, reg.addr.Max)
			return
		}
	}
	i := sort.Search(len(r.regions), func(i int) bool {
		return r.regions[i].addr.Min > addr.Min
	})
	r.regions = append(r.regions, nil)
	copy(r.regions[i+1:], r.regions[i:])
	r.regions[i] = &region{addr: addr, queue: queue}
}

// UnregisterRegion removes the region containing addr along with every
// connection sourced in it, plus every connection in other regions whose
// destination points into it (indirect-dependency sweep).
func (r *Registry) UnregisterRegion(addr Address) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed *region
	for i, reg := range r.regions {
		if reg.addr.Contains(addr) {
			removed = reg
			r.regions = append(r.regions[:i], r.regions[i+1:]...)
			break
		}
	}
	if removed == nil {
		return
	}
	for _, reg := range r.regions {
		reg.removeIf(func(e *entry) bool {
			return e.destRegion == removed
		})
	}
}

// lookupRegion finds the greatest region whose Min <= addr.Min and returns
// it iff addr lies entirely within it. Must hold r.mu.
func (r *Registry) lookupRegion(addr Address) *region {
	i := sort.Search(len(r.regions), func(i int) bool {
		return r.regions[i].addr.Min > addr.Min
	})
	if i == 0 {
		return nil
	}
	reg := r.regions[i-1]
	if addr.Max <= reg.addr.Max {
		return reg
	}
	return nil
}

// connect registers a raw entry. The handler reads the source and writes
// the destination; typed wrappers build it. Returns 0 when either endpoint
// lies in no registered region.
func (r *Registry) connect(id Handle, src, dest Address, kind Kind, srcDesc, destDesc string, handler func()) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	srcRegion := r.lookupRegion(src)
	if srcRegion == nil {
		errors.Programmer("binding.Connect", "source [%#x,%#x) lies in no registered region", src.Min, src.Max)
		return 0
	}
	destRegion := r.lookupRegion(dest)
	if destRegion == nil {
		errors.Programmer("binding.Connect", "destination [%#x,%#x) lies in no registered region", dest.Min, dest.Max)
		return 0
	}
	// Handlers land on the destination's scheduler so that background
	// notifications update UI-owned state on the UI goroutine. Fall back to
	// the source's scheduler when the destination has none.
	queue := destRegion.queue
	if queue == nil {
		queue = srcRegion.queue
	}
	if kind == Immediate {
		queue = nil
	}
	srcRegion.insert(&entry{
		id:         id,
		src:        src,
		dest:       dest,
		kind:       kind,
		handler:    handler,
		queue:      queue,
		destRegion: destRegion,
		srcDesc:    srcDesc,
		destDesc:   destDesc,
	})
	return id
}

// newHandle allocates a fresh connection handle.
func (r *Registry) newHandle() Handle {
	return Handle(r.nextID.Add(1))
}

// Notify runs every connection whose source intersects addr. The pass
// stamps each entry with a fresh epoch so that restarts (after the entry
// list mutates under a handler) skip work already done, and skips entries
// already executing on the notify stack so that cycles terminate.
//
// The registry lock is released around handler execution. Handlers whose
// queue is owned by another goroutine are enqueued there instead of running
// inline.
func (r *Registry) Notify(addr Address) {
	epoch := r.epoch.Add(1)
	r.mu.Lock()
	for ri := 0; ri < len(r.regions); ri++ {
		reg := r.regions[ri]
		if !reg.addr.Intersects(addr) {
			continue
		}
		reg.changed = false
		for ei := 0; ei < len(reg.entries); ei++ {
			e := reg.entries[ei]
			if !e.src.Intersects(addr) || e.counter == epoch || r.onStack(e) {
				continue
			}
			e.counter = epoch
			r.stack = append(r.stack, e)
			handler := e.handler
			queue := e.queue
			r.mu.Unlock()
			if queue != nil && !queue.IsCurrent() {
				queue.Dispatch(handler, dispatch.ModeIfOnThread)
			} else {
				runHandler(handler)
			}
			r.mu.Lock()
			r.stack = r.stack[:len(r.stack)-1]
			if reg.changed {
				// Restart this region; the epoch stamp skips entries that
				// already ran. A removed region simply ends the scan.
				reg.changed = false
				ei = -1
			}
		}
	}
	r.mu.Unlock()
}

// onStack reports whether the entry is currently executing. Must hold r.mu.
func (r *Registry) onStack(e *entry) bool {
	for _, active := range r.stack {
		if active == e {
			return true
		}
	}
	return false
}

// runHandler invokes a connection handler, reporting and suppressing any
// panic. The epoch still advances when a handler fails.
func runHandler(handler func()) {
	defer errors.Recover("binding.Notify")
	handler()
}

// Disconnect removes every connection with the given handle across all
// regions. Both directions of a bidirectional pair share one handle.
func (r *Registry) Disconnect(h Handle) {
	if h == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, reg := range r.regions {
		reg.removeIf(func(e *entry) bool { return e.id == h })
	}
}

// DisconnectSource removes every connection whose source lies in the range.
func (r *Registry) DisconnectSource(addr Address) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, reg := range r.regions {
		if !reg.addr.Intersects(addr) {
			continue
		}
		reg.removeIf(func(e *entry) bool { return addr.Contains(e.src) })
	}
}

// DisconnectTarget removes every connection whose destination lies in the
// range.
func (r *Registry) DisconnectTarget(addr Address) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, reg := range r.regions {
		reg.removeIf(func(e *entry) bool { return addr.Contains(e.dest) })
	}
}

// ConnectionCount reports the number of live connections. Test helper.
func (r *Registry) ConnectionCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, reg := range r.regions {
		total += len(reg.entries)
	}
	return total
}
