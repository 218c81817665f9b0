package core

import "sync"

// Notifier broadcasts void change notifications to registered listeners.
// It is thread-safe and satisfies [Listenable].
type Notifier struct {
	mu        sync.Mutex
	listeners []*notifierEntry
	nextID    int
}

type notifierEntry struct {
	id int
	fn func()
}

// NewNotifier creates a Notifier with no listeners.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// AddListener registers fn and returns an unsubscribe function.
// Unsubscribing is idempotent.
func (n *Notifier) AddListener(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.nextID++
	entry := &notifierEntry{id: n.nextID, fn: fn}
	n.listeners = append(n.listeners, entry)

	removed := false
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if removed {
			return
		}
		removed = true
		for i, e := range n.listeners {
			if e.id == entry.id {
				e.fn = nil
				n.listeners = append(n.listeners[:i], n.listeners[i+1:]...)
				return
			}
		}
	}
}

// Notify invokes every registered listener in registration order.
func (n *Notifier) Notify() {
	n.mu.Lock()
	targets := make([]*notifierEntry, len(n.listeners))
	copy(targets, n.listeners)
	n.mu.Unlock()

	for _, e := range targets {
		n.mu.Lock()
		fn := e.fn
		n.mu.Unlock()
		if fn != nil {
			fn()
		}
	}
}

// ListenerCount returns the number of registered listeners.
func (n *Notifier) ListenerCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.listeners)
}

// Observable holds a value and notifies listeners when it changes.
// It is thread-safe and can be shared across goroutines.
type Observable[T any] struct {
	mu        sync.Mutex
	value     T
	equal     func(a, b T) bool
	listeners []*observableEntry[T]
	nextID    int
}

type observableEntry[T any] struct {
	id int
	fn func(T)
}

// NewObservable creates an Observable with an initial value.
// Every Set notifies listeners.
func NewObservable[T any](initial T) *Observable[T] {
	return &Observable[T]{value: initial}
}

// NewObservableWithEquality creates an Observable that skips notification
// when equal reports the new value as equal to the current one.
func NewObservableWithEquality[T any](initial T, equal func(a, b T) bool) *Observable[T] {
	return &Observable[T]{value: initial, equal: equal}
}

// Value returns the current value.
func (o *Observable[T]) Value() T {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value
}

// Set replaces the value and notifies listeners. With an equality function
// configured, equal values do not notify.
func (o *Observable[T]) Set(value T) {
	o.mu.Lock()
	if o.equal != nil && o.equal(o.value, value) {
		o.mu.Unlock()
		return
	}
	o.value = value
	targets := make([]*observableEntry[T], len(o.listeners))
	copy(targets, o.listeners)
	o.mu.Unlock()

	for _, e := range targets {
		o.mu.Lock()
		fn := e.fn
		o.mu.Unlock()
		if fn != nil {
			fn(value)
		}
	}
}

// AddListener registers fn and returns an unsubscribe function.
func (o *Observable[T]) AddListener(fn func(T)) func() {
	if fn == nil {
		return func() {}
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.nextID++
	entry := &observableEntry[T]{id: o.nextID, fn: fn}
	o.listeners = append(o.listeners, entry)

	removed := false
	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		if removed {
			return
		}
		removed = true
		for i, e := range o.listeners {
			if e.id == entry.id {
				e.fn = nil
				o.listeners = append(o.listeners[:i], o.listeners[i+1:]...)
				return
			}
		}
	}
}

// ListenerCount returns the number of registered listeners.
func (o *Observable[T]) ListenerCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.listeners)
}
