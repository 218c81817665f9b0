// Package state provides the observable key-value store behind map-stream
// bindings.
//
// MapStream holds a flat map of string keys to values and notifies
// subscribers synchronously when the map mutates. Subscribers register a
// callback with Listen, optionally restricted to a subset of keys, and
// receive an Update describing each relevant mutation.
//
// # Delivery Model
//
// Updates are whole-update notifications, not structural diffs: each mutating
// call (Set, SetAll, Delete, Clear) emits exactly one Update to every
// matching listener, in listener registration order, before the call returns.
// There is no queueing, coalescing, or cross-store ordering guarantee.
//
// The listener registry is guarded by a mutex because a MapStream is shared
// across arbitrarily many subscribers, but mutations and callback delivery
// follow the framework's single-threaded cooperative model: mutate from the
// UI thread, or hand the mutation to the host's dispatcher first.
//
// # Subscriptions
//
// Listen returns a Subscription. Cancel is idempotent and synchronous: once
// it returns, the callback is never invoked again.
//
//	sub := stream.Listen(func(u state.Update) {
//	    // react to changed keys in u.Keys
//	}, "user", "session")
//	defer sub.Cancel()
package state
