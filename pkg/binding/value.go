package binding

import (
	"sync"

	"github.com/brisk-gui/brisk/pkg/dispatch"
)

// valueSlot is the synthetic footprint of one Value in the address space.
const valueSlot = 16

// Value is an observable cell. Each value owns a registered region; Set
// stores and notifies in one step. Values created with [NewValueOn] marshal
// connected handlers onto the given queue.
type Value[T any] struct {
	reg    *Registry
	addr   Address
	mu     sync.Mutex
	val    T
	closed bool
}

// NewValue creates an observable cell in the shared registry without a
// scheduler: connected handlers run inline on the notifying goroutine.
func NewValue[T any](initial T) *Value[T] {
	return newValue(Instance(), nil, initial)
}

// NewValueOn creates an observable cell whose connected handlers are
// marshalled onto queue when notified from another goroutine.
func NewValueOn[T any](queue *dispatch.Queue, initial T) *Value[T] {
	return newValue(Instance(), queue, initial)
}

// NewValueIn creates an observable cell in a specific registry. Test hook.
func NewValueIn[T any](reg *Registry, initial T) *Value[T] {
	return newValue(reg, nil, initial)
}

func newValue[T any](reg *Registry, queue *dispatch.Queue, initial T) *Value[T] {
	addr := AllocateAddress(valueSlot)
	reg.RegisterRegion(addr, queue)
	return &Value[T]{reg: reg, addr: addr, val: initial}
}

// Address returns the cell's registered range.
func (v *Value[T]) Address() Address {
	return v.addr
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.val
}

// Set stores a new value and notifies observers.
func (v *Value[T]) Set(value T) {
	v.mu.Lock()
	v.val = value
	closed := v.closed
	v.mu.Unlock()
	if !closed {
		v.reg.Notify(v.addr)
	}
}

// SetSilent stores a new value without notifying observers.
func (v *Value[T]) SetSilent(value T) {
	v.mu.Lock()
	v.val = value
	v.mu.Unlock()
}

// Notify re-fires observers without changing the value.
func (v *Value[T]) Notify() {
	v.reg.Notify(v.addr)
}

// Close unregisters the cell's region, removing every connection sourced in
// it and every connection targeting it.
func (v *Value[T]) Close() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	v.mu.Unlock()
	v.reg.UnregisterRegion(v.addr)
}

// Getter returns the cell's source expression.
func (v *Value[T]) Getter() Getter[T] {
	return Getter[T]{Addr: v.addr, Get: v.Get, Desc: "value"}
}

// Setter returns the cell's destination expression. The write is silent;
// the registry notifies the destination range itself.
func (v *Value[T]) Setter() Setter[T] {
	return Setter[T]{Addr: v.addr, Set: v.SetSilent, Desc: "value"}
}

// Accessor returns both directions for bidirectional connections.
func (v *Value[T]) Accessor() Accessor[T] {
	return Accessor[T]{Addr: v.addr, Get: v.Get, Set: v.SetSilent, Desc: "value"}
}

// Bind connects dst to follow src one-way within src's registry.
func Bind[T any](dst, src *Value[T]) Handle {
	return Connect(src.reg, dst.Setter(), src.Getter())
}

// BindBidir connects two cells bidirectionally under one handle.
func BindBidir[T any](a, b *Value[T]) Handle {
	return ConnectBidir(a.reg, a.Accessor(), b.Accessor())
}

// Observe invokes callback with the current value on every notification of
// the cell.
func (v *Value[T]) Observe(callback func(T)) Handle {
	return Listen(v.reg, v.Getter(), callback)
}

// Constant returns a source expression in the static region holding a fixed
// value. Useful as the source side of one-time connections.
func Constant[T any](value T) Getter[T] {
	addr := allocateStatic(valueSlot)
	return Getter[T]{Addr: addr, Get: func() T { return value }, Desc: "constant"}
}
