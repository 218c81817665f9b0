package binding

import "github.com/go-drift/mapstream/pkg/core"

// Bind mounts a Binder against a state's element and registers Unmount as a
// disposer, so the binder follows the state's lifecycle exactly once in each
// direction. Call it from InitState:
//
//	func (s *myState) InitState() {
//	    s.binder, _ = binding.New(s.stream, "count")
//	    binding.Bind(&s.StateBase, s.binder)
//	}
func Bind(s *core.StateBase, b *Binder) error {
	if err := b.Mount(stateHost{s}); err != nil {
		return err
	}
	s.OnDispose(func() {
		// The state owns the binder's lifetime here, so teardown order is
		// guaranteed and the error is unreachable.
		_ = b.Unmount()
	})
	return nil
}

// stateHost adapts a StateBase to the Host contract.
type stateHost struct {
	s *core.StateBase
}

func (h stateHost) MarkNeedsBuild() {
	h.s.SetState(nil)
}

func (h stateHost) Mounted() bool {
	if h.s.IsDisposed() {
		return false
	}
	element := h.s.Element()
	// A detached state (no element) counts as mounted so binders can be
	// exercised without a widget tree.
	return element == nil || element.Mounted()
}
