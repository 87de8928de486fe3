package binding

// Getter is a source expression: an address plus a value reader.
type Getter[T any] struct {
	Addr Address
	Get  func() T
	Desc string
}

// Setter is a destination expression: an address plus a value writer.
type Setter[T any] struct {
	Addr Address
	Set  func(T)
	Desc string
}

// Accessor combines both directions for bidirectional connections.
type Accessor[T any] struct {
	Addr Address
	Get  func() T
	Set  func(T)
	Desc string
}

// Getter returns the read half of the accessor.
func (a Accessor[T]) Getter() Getter[T] {
	return Getter[T]{Addr: a.Addr, Get: a.Get, Desc: a.Desc}
}

// Setter returns the write half of the accessor.
func (a Accessor[T]) Setter() Setter[T] {
	return Setter[T]{Addr: a.Addr, Set: a.Set, Desc: a.Desc}
}

// Connect registers a one-way connection: after Notify on the source range,
// the destination is updated with the source's current value and the
// destination range is notified in turn.
func Connect[T any](r *Registry, dest Setter[T], src Getter[T]) Handle {
	id := r.newHandle()
	return r.connect(id, src.Addr, dest.Addr, OneWay, src.Desc, dest.Desc, func() {
		dest.Set(src.Get())
		r.Notify(dest.Addr)
	})
}

// ConnectImmediate is Connect without scheduler hand-off: the handler runs
// inline on whichever goroutine fires the notification.
func ConnectImmediate[T any](r *Registry, dest Setter[T], src Getter[T]) Handle {
	id := r.newHandle()
	return r.connect(id, src.Addr, dest.Addr, Immediate, src.Desc, dest.Desc, func() {
		dest.Set(src.Get())
		r.Notify(dest.Addr)
	})
}

// ConnectBidir registers connections in both directions sharing one handle.
// The notify stack keeps a change on either side from echoing forever.
func ConnectBidir[T any](r *Registry, a, b Accessor[T]) Handle {
	id := r.newHandle()
	r.connect(id, a.Addr, b.Addr, TwoWay, a.Desc, b.Desc, func() {
		b.Set(a.Get())
		r.Notify(b.Addr)
	})
	r.connect(id, b.Addr, a.Addr, TwoWay, b.Desc, a.Desc, func() {
		a.Set(b.Get())
		r.Notify(a.Addr)
	})
	return id
}

// ConnectOneTime registers a connection that disconnects itself after its
// first invocation.
func ConnectOneTime[T any](r *Registry, dest Setter[T], src Getter[T]) Handle {
	id := r.newHandle()
	return r.connect(id, src.Addr, dest.Addr, OneTime, src.Desc, dest.Desc, func() {
		dest.Set(src.Get())
		r.Disconnect(id)
		r.Notify(dest.Addr)
	})
}

// Listen invokes the callback with the source's current value on every
// notification. The connection's destination is the static region; it lives
// until explicitly disconnected or the source region is unregistered.
func Listen[T any](r *Registry, src Getter[T], callback func(T)) Handle {
	return ListenIn(r, src, Address{Min: staticArenaMin, Max: staticArenaMin + 1}, callback)
}

// ListenIn is Listen with an explicit owner address: unregistering the
// owner's region removes the connection.
func ListenIn[T any](r *Registry, src Getter[T], owner Address, callback func(T)) Handle {
	id := r.newHandle()
	return r.connect(id, src.Addr, owner, OneWay, src.Desc, "listener", func() {
		callback(src.Get())
	})
}
