package binding

import "sync/atomic"

// Address identifies observable storage as a half-open byte range [Min, Max).
// Addresses are pure keys into the registry's region map; they never alias
// Go memory. Two addresses are equal iff the ranges coincide.
type Address struct {
	Min uint64
	Max uint64
}

// Size returns the byte length of the range.
func (a Address) Size() uint64 {
	return a.Max - a.Min
}

// IsZero reports whether the address is the zero range.
func (a Address) IsZero() bool {
	return a.Min == 0 && a.Max == 0
}

// Intersects reports whether two ranges overlap.
func (a Address) Intersects(b Address) bool {
	return a.Min < b.Max && b.Min < a.Max
}

// Contains reports whether b lies entirely within a.
func (a Address) Contains(b Address) bool {
	return b.Min >= a.Min && b.Max <= a.Max
}

// Slice returns the sub-range [offset, offset+size) within a.
func (a Address) Slice(offset, size uint64) Address {
	return Address{Min: a.Min + offset, Max: a.Min + offset + size}
}

// Synthetic address space. The low 4 GiB is reserved for caller-chosen
// ranges; the static arena and dynamic allocations live above it.
const (
	staticArenaMin = uint64(1) << 32
	staticArenaMax = uint64(1) << 33
	dynamicBase    = uint64(1) << 33
)

var (
	dynamicNext atomic.Uint64
	staticNext  atomic.Uint64
)

func init() {
	dynamicNext.Store(dynamicBase)
	staticNext.Store(staticArenaMin)
}

// AllocateAddress carves a fresh range from the dynamic address space.
// Callers that register their own region (values, widget trees) use this to
// obtain a range guaranteed not to collide with any other allocation.
func AllocateAddress(size uint64) Address {
	if size == 0 {
		size = 1
	}
	min := dynamicNext.Add(size) - size
	return Address{Min: min, Max: min + size}
}

// allocateStatic carves a range from the static arena. The static region is
// registered by Initialize and spans the whole arena.
func allocateStatic(size uint64) Address {
	if size == 0 {
		size = 1
	}
	min := staticNext.Add(size) - size
	return Address{Min: min, Max: min + size}
}
