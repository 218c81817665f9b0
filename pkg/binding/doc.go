// Package binding connects map-stream subscriptions to a widget's rebuild
// trigger.
//
// A Binder holds a fixed set of store registrations (a store handle plus an
// optional key filter each), established at construction. Mount opens one
// subscription per registration against a Host: anything that can report
// whether it is still mounted and accept a rebuild request. Unmount cancels
// every subscription synchronously; afterwards no callback has any effect.
//
// Between Mount and Unmount, each relevant store update runs through the
// binder's callback: a mounted guard, then the ShouldRebuild decision hook
// (nil means always rebuild), then a rebuild request on the host. The update
// is recorded as the store's previous-update reference regardless of the
// hook's answer, so a hook can compare the current update against
// [Binder.LastUpdate] to suppress duplicate-content rebuilds.
//
// The lifecycle is linear and terminal: unmounted → mounted → unmounted,
// each transition exactly once. Mounting twice, unmounting before mounting,
// or mounting a binder that was already torn down fails fast with a
// lifecycle error. A callback that races teardown is the one tolerated
// exception: it is dropped silently, because delivery timing belongs to the
// store, not to this layer.
//
// Bind wires a Binder into a state's lifecycle in one call:
//
//	func (s *counterState) InitState() {
//	    s.binder, _ = binding.New(s.stream, "count")
//	    binding.Bind(&s.StateBase, s.binder)
//	}
package binding
