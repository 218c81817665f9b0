// Package core provides the widget and element framework the binding layer
// runs against.
//
// This package defines the foundational types for a declarative, headless
// widget tree: Widget, Element, State, and BuildContext. Widgets describe
// what the tree should look like; elements manage lifecycle and identity and
// translate state changes into scheduled rebuilds. There is no layout or
// paint phase: a frame is a flush of dirty elements.
//
// # Core Types
//
// Widget is an immutable description of part of the UI. Widgets are
// lightweight configuration objects that can be created frequently without
// performance concerns.
//
// Element is the instantiation of a Widget at a particular location in the
// tree. Elements manage the lifecycle and identity of widgets: Mount is
// invoked exactly once, Unmount is invoked exactly once and is terminal.
//
// # Stateful Widgets
//
// For widgets that need mutable state, embed StateBase in your state struct:
//
//	type myState struct {
//	    core.StateBase
//	    count int
//	}
//
//	func (s *myState) InitState() {
//	    // Initialize state here
//	}
//
//	func (s *myState) Build(ctx core.BuildContext) core.Widget {
//	    return widgets.Text{Content: fmt.Sprintf("Count: %d", s.count)}
//	}
//
// # Hooks
//
// UseController, UseListenable, UseObservable, and UseStream manage
// resources and subscriptions with automatic cleanup on disposal. UseStream
// is the unconditional form of map-stream binding; package binding provides
// the full Binder with key filters, multi-store registration, and rebuild
// decision hooks.
//
// # Constructor Conventions
//
// Controllers and services use NewX() constructors returning pointers.
// Widgets are immutable configuration and use struct literals.
package core
