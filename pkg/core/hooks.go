package core

import "github.com/go-drift/mapstream/pkg/state"

// UseController creates a controller and registers it for automatic disposal.
// The controller will be disposed when the state is disposed.
//
// Example:
//
//	func (s *myState) InitState() {
//	    s.session = core.UseController(s, func() *SessionController {
//	        return NewSessionController()
//	    })
//	}
func UseController[C Disposable](s stateBase, create func() C) C {
	base := s.state()
	controller := create()
	base.OnDispose(func() {
		controller.Dispose()
	})
	return controller
}

// UseListenable subscribes to a listenable and triggers rebuilds.
// The subscription is automatically cleaned up when the state is disposed.
//
// Example:
//
//	func (s *myState) InitState() {
//	    core.UseListenable(s, s.controller)
//	}
func UseListenable(s stateBase, listenable Listenable) {
	base := s.state()
	unsub := listenable.AddListener(func() {
		base.SetState(nil)
	})
	base.OnDispose(unsub)
}

// UseObservable subscribes to an observable and triggers rebuilds when it
// changes. Call this once in InitState(), not in Build(). The subscription
// is automatically cleaned up when the state is disposed.
//
//	func (s *myState) InitState() {
//	    s.counter = core.NewObservable(0)
//	    core.UseObservable(s, s.counter)
//	}
func UseObservable[T any](s stateBase, obs *Observable[T]) {
	base := s.state()
	unsub := obs.AddListener(func(T) {
		base.SetState(nil)
	})
	base.OnDispose(unsub)
}

// UseStream subscribes a state to a map stream and triggers a rebuild on
// every update touching one of the given keys (all keys when none are
// given). The subscription is cancelled when the state is disposed.
//
// For conditional rebuilds or multi-store registration, compose a
// binding.Binder instead.
//
//	func (s *myState) InitState() {
//	    core.UseStream(s, s.stream, "count")
//	}
func UseStream(s stateBase, stream *state.MapStream, keys ...string) {
	base := s.state()
	sub := stream.Listen(func(state.Update) {
		base.SetState(nil)
	}, keys...)
	base.OnDispose(sub.Cancel)
}
