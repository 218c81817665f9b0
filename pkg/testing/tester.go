package testing

import (
	"errors"
	"testing"

	"github.com/go-drift/mapstream/pkg/core"
)

// ErrSettleTimeout is returned when PumpAndSettle exceeds its frame budget.
var ErrSettleTimeout = errors.New("PumpAndSettle: framework did not settle")

// Tester provides isolated widget testing. It drives the same build phases
// as a live host but owns its element tree and dispatch queue, so tests
// control exactly when rebuilds flush.
type Tester struct {
	buildOwner *core.BuildOwner
	root       core.Element
	dispatches []func()
}

// NewTester creates a tester. Call Cleanup() when done, or use
// NewTesterWithT() instead.
func NewTester() *Tester {
	return &Tester{
		buildOwner: core.NewBuildOwner(),
	}
}

// NewTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewTesterWithT(t *testing.T) *Tester {
	tester := NewTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup unmounts the tree. Must be called if not using NewTesterWithT.
func (t *Tester) Cleanup() {
	if t.root != nil {
		t.root.Unmount()
		t.root = nil
	}
}

// PumpWidget mounts (or remounts) a widget and runs one frame.
func (t *Tester) PumpWidget(widget core.Widget) {
	if t.root != nil {
		t.root.Unmount()
		t.root = nil
	}
	t.root = core.MountRoot(widget, t.buildOwner)
	t.Pump()
}

// Pump runs a single frame cycle: drains the dispatch queue and flushes
// dirty elements.
func (t *Tester) Pump() {
	dispatches := t.dispatches
	t.dispatches = nil
	for _, fn := range dispatches {
		fn()
	}
	t.buildOwner.FlushBuild()
}

// PumpAndSettle runs frames until no work remains, up to maxFrames.
// Returns ErrSettleTimeout if the framework does not settle.
func (t *Tester) PumpAndSettle(maxFrames int) error {
	for i := 0; i < maxFrames; i++ {
		t.Pump()
		if !t.needsWork() {
			return nil
		}
	}
	return ErrSettleTimeout
}

func (t *Tester) needsWork() bool {
	return t.buildOwner.NeedsWork() || len(t.dispatches) > 0
}

// Dispatch queues a callback for the next frame, mirroring a host
// dispatcher.
func (t *Tester) Dispatch(fn func()) {
	t.dispatches = append(t.dispatches, fn)
}

// BuildOwner returns the tester's build owner.
func (t *Tester) BuildOwner() *core.BuildOwner {
	return t.buildOwner
}

// RootElement returns the root element of the mounted tree.
func (t *Tester) RootElement() core.Element {
	return t.root
}

// Find evaluates a finder against the current element tree.
func (t *Tester) Find(finder Finder) FinderResult {
	if t.root == nil {
		return FinderResult{finder: finder}
	}
	return FinderResult{
		elements: finder.Evaluate(t.root),
		finder:   finder,
	}
}
