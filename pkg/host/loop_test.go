package host

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-drift/mapstream/pkg/core"
	"github.com/go-drift/mapstream/pkg/state"
	"github.com/go-drift/mapstream/pkg/widgets"
)

func TestLoop_RunAndStop(t *testing.T) {
	loop := NewLoop()
	go loop.Run(widgets.Text{Content: "hello"})

	loop.Stop()
	select {
	case <-loop.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not shut down")
	}
}

func TestLoop_DispatchesOntoLoopGoroutine(t *testing.T) {
	store := state.NewMapStream()
	var builds atomic.Int64

	loop := NewLoop()
	go loop.Run(widgets.MapStreamBuilder{
		Store: store,
		Keys:  []string{"count"},
		Builder: func(ctx core.BuildContext) core.Widget {
			builds.Add(1)
			return nil
		},
	})
	defer func() {
		loop.Stop()
		<-loop.Done()
	}()

	loop.Dispatch(func() { store.Set("count", 1) })

	deadline := time.After(5 * time.Second)
	for builds.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("expected a rebuild, got %d builds", builds.Load())
		case <-time.After(time.Millisecond):
		}
	}
}

func TestLoop_StopUnmountsTree(t *testing.T) {
	store := state.NewMapStream()
	loop := NewLoop()
	mounted := make(chan struct{})

	go loop.Run(widgets.MapStreamBuilder{
		Store: store,
		Builder: func(ctx core.BuildContext) core.Widget {
			select {
			case <-mounted:
			default:
				close(mounted)
			}
			return nil
		},
	})

	<-mounted
	loop.Stop()
	<-loop.Done()

	if store.ListenerCount() != 0 {
		t.Errorf("shutdown should cancel subscriptions, got %d", store.ListenerCount())
	}
}

func TestLoop_StopIdempotent(t *testing.T) {
	loop := NewLoop()
	go loop.Run(widgets.Text{Content: "x"})

	loop.Stop()
	loop.Stop()
	<-loop.Done()
}

func TestLoop_PanicInDispatchDoesNotKillLoop(t *testing.T) {
	loop := NewLoop()
	go loop.Run(widgets.Text{Content: "x"})
	defer func() {
		loop.Stop()
		<-loop.Done()
	}()

	loop.Dispatch(func() { panic("bad callback") })

	ran := make(chan struct{})
	loop.Dispatch(func() { close(ran) })

	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("loop should survive a panicking dispatch")
	}
}
