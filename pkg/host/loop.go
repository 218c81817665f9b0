// Package host provides a minimal run loop for driving a widget tree
// without an embedding framework. Store updates may arrive on any
// goroutine; Dispatch marshals work onto the loop goroutine, and build
// scheduling wakes the loop on demand.
package host

import (
	"sync"

	"github.com/go-drift/mapstream/pkg/core"
	"github.com/go-drift/mapstream/pkg/errors"
)

// Loop owns a build owner and processes frames on demand. All element
// lifecycle work happens on the goroutine that called Run; other
// goroutines interact with the tree only through Dispatch.
type Loop struct {
	buildOwner *core.BuildOwner
	root       core.Element

	dispatchMu    sync.Mutex
	dispatchQueue []func()

	wake     chan struct{}
	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewLoop creates a stopped loop. Call Run to start processing frames.
func NewLoop() *Loop {
	l := &Loop{
		buildOwner: core.NewBuildOwner(),
		wake:       make(chan struct{}, 1),
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	l.buildOwner.OnNeedsFrame = l.requestFrame
	return l
}

// BuildOwner returns the loop's build owner.
func (l *Loop) BuildOwner() *core.BuildOwner {
	return l.buildOwner
}

// Dispatch queues a callback for the next frame. Safe to call from any
// goroutine; this is the only safe way to mutate loop-owned state from
// outside the loop.
func (l *Loop) Dispatch(callback func()) {
	if callback == nil {
		return
	}
	l.dispatchMu.Lock()
	l.dispatchQueue = append(l.dispatchQueue, callback)
	l.dispatchMu.Unlock()
	l.requestFrame()
}

// requestFrame wakes the loop. The channel is buffered so redundant
// requests coalesce into one frame.
func (l *Loop) requestFrame() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *Loop) drainDispatchQueue() []func() {
	l.dispatchMu.Lock()
	callbacks := l.dispatchQueue
	l.dispatchQueue = nil
	l.dispatchMu.Unlock()
	return callbacks
}

// Run mounts root and processes frames until Stop is called. The calling
// goroutine becomes the loop goroutine and blocks until shutdown, at
// which point the tree is unmounted.
func (l *Loop) Run(root core.Widget) {
	defer close(l.done)

	l.root = core.MountRoot(root, l.buildOwner)
	l.frame()

	for {
		select {
		case <-l.quit:
			if l.root != nil {
				l.root.Unmount()
				l.root = nil
			}
			return
		case <-l.wake:
			l.frame()
		}
	}
}

// frame drains pending dispatches and flushes dirty elements. Dispatch
// callbacks run under panic recovery so one bad callback cannot take
// down the loop.
func (l *Loop) frame() {
	for _, callback := range l.drainDispatchQueue() {
		l.runCallback(callback)
	}
	l.buildOwner.FlushBuild()
}

func (l *Loop) runCallback(callback func()) {
	defer errors.Recover("host.Loop.frame")
	callback()
}

// Stop shuts the loop down. Idempotent; safe to call from any goroutine.
// Use Done to wait for the tree to unmount.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.quit)
	})
}

// Done is closed once Run has unmounted the tree and returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
