package binding

import (
	stderrors "errors"

	"github.com/go-drift/mapstream/pkg/errors"
	"github.com/go-drift/mapstream/pkg/state"
)

// Sentinel errors wrapped by the structured errors this package returns.
// Match with errors.Is.
var (
	// ErrNilStore reports a nil store handle at construction.
	ErrNilStore = stderrors.New("nil store")
	// ErrNilHost reports a nil host at mount.
	ErrNilHost = stderrors.New("nil host")
	// ErrDuplicateStore reports the same store registered twice.
	ErrDuplicateStore = stderrors.New("store registered twice")
	// ErrAlreadyMounted reports a second Mount on the same binder.
	ErrAlreadyMounted = stderrors.New("binder already mounted")
	// ErrNotMounted reports Unmount on a binder that is not mounted.
	ErrNotMounted = stderrors.New("binder not mounted")
	// ErrTornDown reports Mount on a binder that was already unmounted.
	// Binders are single-use.
	ErrTornDown = stderrors.New("binder torn down")
)

// Host is the widget-side contract a Binder mounts against. It is satisfied
// by *core.StatefulElement.
type Host interface {
	// MarkNeedsBuild schedules a rebuild of the hosting widget.
	MarkNeedsBuild()
	// Mounted reports whether the host is still live.
	Mounted() bool
}

// Registration pairs a store handle with an optional key filter.
// Empty Keys means every update of the store is relevant.
type Registration struct {
	Store *state.MapStream
	Keys  []string
}

// Binder bridges one or more map streams to a host's rebuild trigger.
//
// The registration set is fixed at construction. Mount and Unmount are each
// called exactly once, in that order, by the hosting lifecycle; Bind does
// this wiring automatically for StateBase-embedding states.
//
// Binder is not thread-safe: like the rest of the framework it lives on the
// UI thread.
type Binder struct {
	// ShouldRebuild decides whether an update triggers a rebuild. Nil means
	// every relevant update rebuilds. The hook must be a pure decision
	// function: it may read the update, the store, and LastUpdate, but must
	// not mutate anything.
	ShouldRebuild func(u state.Update, store *state.MapStream) bool

	regs    []Registration
	subs    []*state.Subscription
	prev    map[*state.MapStream]state.Update
	host    Host
	mounted bool
	torn    bool
}

// New creates a Binder for a single store, optionally restricted to keys.
// A nil store is an invalid-argument error.
func New(store *state.MapStream, keys ...string) (*Binder, error) {
	if store == nil {
		return nil, invalidArgument("binding.New", ErrNilStore)
	}
	return &Binder{
		regs: []Registration{{Store: store, Keys: cloneKeys(keys)}},
		prev: make(map[*state.MapStream]state.Update),
	}, nil
}

// NewMulti creates a Binder over several store registrations. Registering
// the same store twice or a nil store is an invalid-argument error. An empty
// registration list is allowed and yields a binder that never rebuilds.
func NewMulti(regs []Registration) (*Binder, error) {
	seen := make(map[*state.MapStream]struct{}, len(regs))
	copied := make([]Registration, 0, len(regs))
	for _, reg := range regs {
		if reg.Store == nil {
			return nil, invalidArgument("binding.NewMulti", ErrNilStore)
		}
		if _, dup := seen[reg.Store]; dup {
			return nil, invalidArgument("binding.NewMulti", ErrDuplicateStore)
		}
		seen[reg.Store] = struct{}{}
		copied = append(copied, Registration{Store: reg.Store, Keys: cloneKeys(reg.Keys)})
	}
	return &Binder{
		regs: copied,
		prev: make(map[*state.MapStream]state.Update),
	}, nil
}

// Registrations returns a copy of the binder's registration set.
func (b *Binder) Registrations() []Registration {
	out := make([]Registration, len(b.regs))
	for i, reg := range b.regs {
		out[i] = Registration{Store: reg.Store, Keys: cloneKeys(reg.Keys)}
	}
	return out
}

// Mounted reports whether the binder currently holds live subscriptions.
func (b *Binder) Mounted() bool {
	return b.mounted
}

// SubscriptionCount returns the number of live subscriptions.
func (b *Binder) SubscriptionCount() int {
	return len(b.subs)
}

// LastUpdate returns the most recently observed update for the store, for
// use by the ShouldRebuild hook. The reference is recorded after each
// delivered update, including ones the hook declined to rebuild for.
func (b *Binder) LastUpdate(store *state.MapStream) (state.Update, bool) {
	u, ok := b.prev[store]
	return u, ok
}

// Mount opens one subscription per registration against host. It must be
// called exactly once; a second Mount, or a Mount after Unmount, is a
// lifecycle error.
func (b *Binder) Mount(host Host) error {
	if host == nil {
		return invalidArgument("binding.Mount", ErrNilHost)
	}
	if b.torn {
		return lifecycleError("binding.Mount", ErrTornDown)
	}
	if b.mounted {
		return lifecycleError("binding.Mount", ErrAlreadyMounted)
	}
	b.host = host
	b.mounted = true
	for _, reg := range b.regs {
		store := reg.Store
		sub := store.Listen(func(u state.Update) {
			b.handleUpdate(store, u)
		}, reg.Keys...)
		b.subs = append(b.subs, sub)
	}
	return nil
}

// Unmount cancels every live subscription. Cancellation is synchronous:
// once Unmount returns, no callback has any further effect. The binder is
// terminal afterwards and cannot be mounted again.
func (b *Binder) Unmount() error {
	if !b.mounted {
		return lifecycleError("binding.Unmount", ErrNotMounted)
	}
	// Flip the guard before cancelling so a callback delivered mid-teardown
	// is dropped.
	b.mounted = false
	b.torn = true
	for _, sub := range b.subs {
		sub.Cancel()
	}
	b.subs = nil
	b.host = nil
	return nil
}

// handleUpdate is the per-store subscription callback.
func (b *Binder) handleUpdate(store *state.MapStream, u state.Update) {
	// Second line of defense behind subscription cancellation: a callback
	// arriving after teardown started is dropped without effect.
	if !b.mounted || b.host == nil || !b.host.Mounted() {
		return
	}
	rebuild := true
	if b.ShouldRebuild != nil {
		rebuild = b.ShouldRebuild(u, store)
	}
	if rebuild {
		b.host.MarkNeedsBuild()
	}
	// Recorded regardless of the hook's answer.
	b.prev[store] = u
}

func cloneKeys(keys []string) []string {
	if len(keys) == 0 {
		return nil
	}
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

func invalidArgument(op string, err error) error {
	return &errors.StreamError{Op: op, Kind: errors.KindInvalidArgument, Err: err}
}

func lifecycleError(op string, err error) error {
	return &errors.StreamError{Op: op, Kind: errors.KindLifecycle, Err: err}
}
