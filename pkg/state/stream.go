package state

import "sync"

// MapStream is a mutable, observable flat key-value store.
//
// A MapStream is shared: many subscribers may hold the same stream handle and
// its lifetime normally exceeds any single subscriber's. The listener
// registry is mutex-guarded; mutations and callback delivery are synchronous
// and expected to run on the UI thread.
type MapStream struct {
	mu        sync.Mutex
	values    map[string]any
	listeners []*listener
	nextID    int
	seq       uint64
}

// listener is one registered callback with its optional key filter.
type listener struct {
	id   int
	fn   func(Update)
	keys map[string]struct{} // nil means all keys are relevant
}

func (l *listener) matches(u Update) bool {
	if l.keys == nil {
		return true
	}
	for _, k := range u.Keys {
		if _, ok := l.keys[k]; ok {
			return true
		}
	}
	return false
}

// Subscription is a live registration of a callback with a MapStream.
type Subscription struct {
	stream *MapStream
	id     int
}

// Cancel deregisters the subscription's callback. Cancel is idempotent and
// synchronous: once it returns, the callback is never invoked again.
func (s *Subscription) Cancel() {
	if s == nil || s.stream == nil {
		return
	}
	s.stream.removeListener(s.id)
	s.stream = nil
}

// NewMapStream creates an empty MapStream.
func NewMapStream() *MapStream {
	return &MapStream{values: make(map[string]any)}
}

// NewMapStreamFrom creates a MapStream seeded with a copy of initial.
func NewMapStreamFrom(initial map[string]any) *MapStream {
	values := make(map[string]any, len(initial))
	for k, v := range initial {
		values[k] = v
	}
	return &MapStream{values: values}
}

// Listen registers fn to be invoked for every update touching one of the
// given keys. With no keys, every update is delivered. The callback runs
// synchronously on the mutating goroutine, in listener registration order.
func (m *MapStream) Listen(fn func(Update), keys ...string) *Subscription {
	if fn == nil {
		return &Subscription{}
	}

	var filter map[string]struct{}
	if len(keys) > 0 {
		filter = make(map[string]struct{}, len(keys))
		for _, k := range keys {
			filter[k] = struct{}{}
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	l := &listener{id: m.nextID, fn: fn, keys: filter}
	m.listeners = append(m.listeners, l)
	return &Subscription{stream: m, id: l.id}
}

// ListenerCount returns the number of live subscriptions.
func (m *MapStream) ListenerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.listeners)
}

// Get returns the value for key and whether it is present.
func (m *MapStream) Get(key string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

// Len returns the number of keys in the store.
func (m *MapStream) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.values)
}

// Keys returns the store's keys in unspecified order.
func (m *MapStream) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	return keys
}

// Snapshot returns a copy of the store's current contents.
func (m *MapStream) Snapshot() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := make(map[string]any, len(m.values))
	for k, v := range m.values {
		snapshot[k] = v
	}
	return snapshot
}

// Set stores value under key and emits one update. Setting a key to the
// value it already holds still emits; suppressing duplicate-content updates
// is the subscriber's decision, not the store's.
func (m *MapStream) Set(key string, value any) {
	m.mu.Lock()
	m.values[key] = value
	u := m.nextUpdateLocked([]string{key}, map[string]any{key: value})
	m.mu.Unlock()
	m.emit(u)
}

// SetAll stores every entry of kv and emits one update covering all of them.
// An empty map is a no-op.
func (m *MapStream) SetAll(kv map[string]any) {
	if len(kv) == 0 {
		return
	}
	keys := make([]string, 0, len(kv))
	values := make(map[string]any, len(kv))

	m.mu.Lock()
	for k, v := range kv {
		m.values[k] = v
		keys = append(keys, k)
		values[k] = v
	}
	u := m.nextUpdateLocked(keys, values)
	m.mu.Unlock()
	m.emit(u)
}

// Delete removes key from the store and emits one update with no value for
// the key. Deleting an absent key is a no-op.
func (m *MapStream) Delete(key string) {
	m.mu.Lock()
	if _, ok := m.values[key]; !ok {
		m.mu.Unlock()
		return
	}
	delete(m.values, key)
	u := m.nextUpdateLocked([]string{key}, map[string]any{})
	m.mu.Unlock()
	m.emit(u)
}

// Clear removes every key and emits one update touching all of them.
// Clearing an empty store is a no-op.
func (m *MapStream) Clear() {
	m.mu.Lock()
	if len(m.values) == 0 {
		m.mu.Unlock()
		return
	}
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	m.values = make(map[string]any)
	u := m.nextUpdateLocked(keys, map[string]any{})
	m.mu.Unlock()
	m.emit(u)
}

// nextUpdateLocked assembles the next Update. Caller holds m.mu.
func (m *MapStream) nextUpdateLocked(keys []string, values map[string]any) Update {
	m.seq++
	return Update{Keys: keys, Values: values, Seq: m.seq}
}

// emit delivers u to every matching listener in registration order. The
// cancelled check runs per listener, immediately before invocation, so a
// callback that cancels a later subscription prevents its delivery.
func (m *MapStream) emit(u Update) {
	m.mu.Lock()
	targets := make([]*listener, 0, len(m.listeners))
	for _, l := range m.listeners {
		if l.matches(u) {
			targets = append(targets, l)
		}
	}
	m.mu.Unlock()

	for _, l := range targets {
		m.mu.Lock()
		fn := l.fn
		m.mu.Unlock()
		if fn != nil {
			fn(u)
		}
	}
}

// removeListener drops the listener with the given id, if still registered.
func (m *MapStream) removeListener(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, l := range m.listeners {
		if l.id == id {
			l.fn = nil
			m.listeners = append(m.listeners[:i], m.listeners[i+1:]...)
			return
		}
	}
}
