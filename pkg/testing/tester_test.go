package testing

import (
	"fmt"
	"testing"

	"github.com/go-drift/mapstream/pkg/core"
	"github.com/go-drift/mapstream/pkg/state"
	"github.com/go-drift/mapstream/pkg/widgets"
)

func TestPumpWidget_MountsTree(t *testing.T) {
	tester := NewTesterWithT(t)

	tester.PumpWidget(widgets.Text{Content: "hello"})

	if tester.RootElement() == nil {
		t.Fatal("expected a root element")
	}
	if !tester.Find(ByText("hello")).Exists() {
		t.Error("expected to find the mounted text")
	}
}

func TestPumpWidget_ReplacesTree(t *testing.T) {
	tester := NewTesterWithT(t)

	tester.PumpWidget(widgets.Text{Content: "first"})
	first := tester.RootElement()

	tester.PumpWidget(widgets.Text{Content: "second"})

	if first.Mounted() {
		t.Error("previous root should be unmounted")
	}
	if !tester.Find(ByText("second")).Exists() {
		t.Error("expected the replacement tree")
	}
}

func TestDispatch_RunsOnNextPump(t *testing.T) {
	tester := NewTesterWithT(t)
	store := state.NewMapStreamFrom(map[string]any{"count": 0})

	tester.PumpWidget(widgets.MapStreamBuilder{
		Store: store,
		Builder: func(ctx core.BuildContext) core.Widget {
			count, _ := store.Get("count")
			return widgets.Text{Content: fmt.Sprint(count)}
		},
	})

	tester.Dispatch(func() { store.Set("count", 1) })

	if tester.Find(ByText("1")).Exists() {
		t.Fatal("dispatch must not run before Pump")
	}
	tester.Pump()
	if !tester.Find(ByText("1")).Exists() {
		t.Error("dispatch should run during Pump")
	}
}

func TestPumpAndSettle_Settles(t *testing.T) {
	tester := NewTesterWithT(t)
	tester.PumpWidget(widgets.Text{Content: "static"})

	if err := tester.PumpAndSettle(10); err != nil {
		t.Errorf("static tree should settle: %v", err)
	}
}

func TestPumpAndSettle_Timeout(t *testing.T) {
	tester := NewTesterWithT(t)
	tester.PumpWidget(widgets.Text{Content: "busy"})

	// A dispatch that re-queues itself never lets the frame loop settle.
	var requeue func()
	requeue = func() { tester.Dispatch(requeue) }
	tester.Dispatch(requeue)

	if err := tester.PumpAndSettle(5); err != ErrSettleTimeout {
		t.Errorf("expected ErrSettleTimeout, got %v", err)
	}
}

func TestFinders(t *testing.T) {
	tester := NewTesterWithT(t)
	store := state.NewMapStream()

	tester.PumpWidget(widgets.MapStreamBuilder{
		Store: store,
		Builder: func(ctx core.BuildContext) core.Widget {
			return widgets.Text{Content: "leaf"}
		},
	})

	if got := tester.Find(ByType(widgets.Text{})).Count(); got != 1 {
		t.Errorf("ByType: expected 1 match, got %d", got)
	}
	if got := tester.Find(ByText("missing")).Count(); got != 0 {
		t.Errorf("ByText: expected 0 matches, got %d", got)
	}
	if tester.Find(ByText("missing")).FirstOrNil() != nil {
		t.Error("FirstOrNil should return nil for no matches")
	}

	found := tester.Find(ByPredicate("any text", func(w core.Widget) bool {
		_, ok := w.(widgets.Text)
		return ok
	}))
	if !found.Exists() {
		t.Error("ByPredicate should match the text leaf")
	}
	if text, ok := found.Widget().(widgets.Text); !ok || text.Content != "leaf" {
		t.Errorf("unexpected widget: %v", found.Widget())
	}
}
