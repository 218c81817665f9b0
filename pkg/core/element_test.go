package core

import (
	"reflect"
	"testing"

	"github.com/go-drift/mapstream/pkg/errors"
)

// testStatelessWidget is a simple stateless widget for testing.
type testStatelessWidget struct {
	StatelessBase
	buildFn func(BuildContext) Widget
}

func (w testStatelessWidget) Build(ctx BuildContext) Widget {
	if w.buildFn != nil {
		return w.buildFn(ctx)
	}
	return nil
}

// testStatefulWidget is a simple stateful widget for testing.
type testStatefulWidget struct {
	StatefulBase
	createStateFn func() State
}

func (w testStatefulWidget) CreateState() State {
	if w.createStateFn != nil {
		return w.createStateFn()
	}
	return &testState{}
}

type testState struct {
	StateBase
	inits      int
	builds     int
	didChanges int
	buildFn    func(BuildContext) Widget
}

func (s *testState) InitState() {
	s.inits++
}

func (s *testState) Build(ctx BuildContext) Widget {
	s.builds++
	if s.buildFn != nil {
		return s.buildFn(ctx)
	}
	return nil
}

func (s *testState) DidChangeDependencies() {
	s.didChanges++
}

// testErrorHandler captures build errors for testing.
type testErrorHandler struct {
	errors.LogHandler
	buildErrors []*errors.BuildError
}

func (h *testErrorHandler) HandleBuildError(err *errors.BuildError) {
	h.buildErrors = append(h.buildErrors, err)
}

func TestMountRoot_BuildsTree(t *testing.T) {
	owner := NewBuildOwner()
	var built int
	widget := testStatelessWidget{
		buildFn: func(ctx BuildContext) Widget {
			built++
			return nil
		},
	}

	root := MountRoot(widget, owner)

	if root == nil {
		t.Fatal("MountRoot returned nil")
	}
	if built != 1 {
		t.Errorf("expected exactly one build on mount, got %d", built)
	}
	if !root.Mounted() {
		t.Error("root should be mounted")
	}
}

func TestStatefulElement_Lifecycle(t *testing.T) {
	owner := NewBuildOwner()
	s := &testState{}
	widget := testStatefulWidget{createStateFn: func() State { return s }}

	root := MountRoot(widget, owner)

	if s.inits != 1 {
		t.Errorf("InitState should run once, got %d", s.inits)
	}
	if s.builds != 1 {
		t.Errorf("expected one build on mount, got %d", s.builds)
	}
	if s.Element() == nil {
		t.Fatal("state should have its element set before InitState")
	}

	root.Unmount()

	if root.Mounted() {
		t.Error("root should be unmounted")
	}
	if !s.IsDisposed() {
		t.Error("state should be disposed on unmount")
	}
}

func TestSetState_SchedulesRebuild(t *testing.T) {
	owner := NewBuildOwner()
	s := &testState{}
	widget := testStatefulWidget{createStateFn: func() State { return s }}
	MountRoot(widget, owner)

	s.SetState(nil)
	owner.FlushBuild()

	if s.builds != 2 {
		t.Errorf("expected rebuild after SetState, got %d builds", s.builds)
	}
}

func TestMarkNeedsBuild_Deduplicates(t *testing.T) {
	owner := NewBuildOwner()
	s := &testState{}
	widget := testStatefulWidget{createStateFn: func() State { return s }}
	root := MountRoot(widget, owner)

	root.MarkNeedsBuild()
	root.MarkNeedsBuild()
	root.MarkNeedsBuild()
	owner.FlushBuild()

	if s.builds != 2 {
		t.Errorf("redundant MarkNeedsBuild calls should coalesce, got %d builds", s.builds)
	}
}

func TestFlushBuild_SkipsUnmounted(t *testing.T) {
	owner := NewBuildOwner()
	s := &testState{}
	widget := testStatefulWidget{createStateFn: func() State { return s }}
	root := MountRoot(widget, owner)

	root.MarkNeedsBuild()
	root.Unmount()
	owner.FlushBuild()

	if s.builds != 1 {
		t.Errorf("unmounted elements must not rebuild, got %d builds", s.builds)
	}
}

func TestBuildOwner_OnNeedsFrame(t *testing.T) {
	owner := NewBuildOwner()
	var frames int
	owner.OnNeedsFrame = func() { frames++ }

	s := &testState{}
	widget := testStatefulWidget{createStateFn: func() State { return s }}
	root := MountRoot(widget, owner)

	root.MarkNeedsBuild()
	root.MarkNeedsBuild() // already dirty, no second signal

	if frames != 1 {
		t.Errorf("expected one frame request, got %d", frames)
	}
}

func TestSafeBuild_PanicReportsError(t *testing.T) {
	handler := &testErrorHandler{}
	errors.SetHandler(handler)
	defer errors.SetHandler(nil)

	owner := NewBuildOwner()
	widget := testStatelessWidget{
		buildFn: func(ctx BuildContext) Widget {
			panic("test panic in build")
		},
	}

	root := MountRoot(widget, owner)

	if len(handler.buildErrors) != 1 {
		t.Fatalf("expected 1 build error, got %d", len(handler.buildErrors))
	}
	err := handler.buildErrors[0]
	if err.Recovered != "test panic in build" {
		t.Errorf("unexpected panic value: %v", err.Recovered)
	}
	if err.Widget == "" {
		t.Error("expected widget type to be recorded")
	}
	if err.StackTrace == "" {
		t.Error("expected a stack trace in debug mode")
	}
	if root == nil || !root.Mounted() {
		t.Error("a build panic must not tear down the element")
	}
}

func TestUpdateChild_ReusesSameType(t *testing.T) {
	owner := NewBuildOwner()
	s := &testState{}
	inner := testStatefulWidget{createStateFn: func() State { return s }}

	var child Widget = inner
	outer := testStatelessWidget{
		buildFn: func(ctx BuildContext) Widget { return child },
	}
	root := MountRoot(outer, owner)

	// Same widget type across a rebuild: the element and state survive.
	root.MarkNeedsBuild()
	owner.FlushBuild()

	if s.inits != 1 {
		t.Errorf("same-type update must reuse state, got %d inits", s.inits)
	}

	// Different widget type: the old element unmounts.
	child = testStatelessWidget{}
	root.MarkNeedsBuild()
	owner.FlushBuild()

	if !s.IsDisposed() {
		t.Error("replaced subtree should dispose its state")
	}
}

type testScope struct {
	InheritedBase
	value  int
	child  Widget
	notify bool
}

func (w testScope) ChildWidget() Widget { return w.child }

func (w testScope) UpdateShouldNotify(old InheritedWidget) bool {
	return w.notify
}

func TestInheritedElement_NotifiesDependents(t *testing.T) {
	owner := NewBuildOwner()
	s := &testState{}
	s.buildFn = func(ctx BuildContext) Widget {
		ctx.DependOnInherited(reflect.TypeOf(testScope{}))
		return nil
	}
	dependent := testStatefulWidget{createStateFn: func() State { return s }}

	root := MountRoot(testScope{value: 1, child: dependent, notify: true}, owner)

	root.Update(testScope{value: 2, child: dependent, notify: true})
	owner.FlushBuild()

	if s.didChanges != 1 {
		t.Errorf("dependent should see one dependency change, got %d", s.didChanges)
	}
	if s.builds != 2 {
		t.Errorf("dependent should rebuild, got %d builds", s.builds)
	}
}

func TestInheritedElement_UpdateShouldNotifyGate(t *testing.T) {
	owner := NewBuildOwner()
	s := &testState{}
	s.buildFn = func(ctx BuildContext) Widget {
		ctx.DependOnInherited(reflect.TypeOf(testScope{}))
		return nil
	}
	dependent := testStatefulWidget{createStateFn: func() State { return s }}

	root := MountRoot(testScope{value: 1, child: dependent, notify: false}, owner)

	root.Update(testScope{value: 2, child: dependent, notify: false})
	owner.FlushBuild()

	if s.didChanges != 0 {
		t.Errorf("gated update must not notify dependents, got %d", s.didChanges)
	}
}

func TestDependOnInherited_ReturnsWidget(t *testing.T) {
	owner := NewBuildOwner()
	var got any
	probe := testStatelessWidget{
		buildFn: func(ctx BuildContext) Widget {
			got = ctx.DependOnInherited(reflect.TypeOf(testScope{}))
			return nil
		},
	}

	MountRoot(testScope{value: 7, child: probe, notify: true}, owner)

	scope, ok := got.(testScope)
	if !ok || scope.value != 7 {
		t.Errorf("expected the enclosing scope widget, got %v", got)
	}
}
