package core

import "reflect"

// Widget is an immutable description of part of the UI. Widgets are
// lightweight configuration objects that can be created frequently without
// performance concerns.
type Widget interface {
	// CreateElement instantiates the element that manages this widget's
	// position in the tree.
	CreateElement() Element
	// Key identifies the widget across rebuilds. Nil means no key.
	Key() any
}

// StatelessWidget describes UI purely as a function of its configuration.
type StatelessWidget interface {
	Widget
	Build(ctx BuildContext) Widget
}

// StatefulWidget owns mutable state, held in a State created per mount.
type StatefulWidget interface {
	Widget
	CreateState() State
}

// InheritedWidget propagates a value down the tree and notifies dependent
// descendants when the value changes.
type InheritedWidget interface {
	Widget
	// ChildWidget returns the subtree below this widget.
	ChildWidget() Widget
	// UpdateShouldNotify reports whether dependents must be notified after
	// the widget was replaced by a new configuration.
	UpdateShouldNotify(old InheritedWidget) bool
}

// State holds mutable state for a StatefulWidget across rebuilds.
// Embed StateBase to get default implementations of everything but Build.
type State interface {
	// InitState is called exactly once, after the state is attached to its
	// element and before the first build.
	InitState()
	// Build describes the subtree for the current state.
	Build(ctx BuildContext) Widget
	// Dispose releases resources. Called exactly once, on unmount.
	Dispose()
	// DidChangeDependencies is called when an inherited dependency changes.
	DidChangeDependencies()
	// DidUpdateWidget is called when the widget configuration is swapped.
	DidUpdateWidget(old StatefulWidget)
}

// Element is the instantiation of a Widget at a particular location in the
// tree. Elements manage lifecycle and identity.
type Element interface {
	Widget() Widget
	Depth() int
	Mount(parent Element, slot any)
	Update(newWidget Widget)
	Unmount()
	RebuildIfNeeded()
	MarkNeedsBuild()
	// Mounted reports whether the element is live: true between Mount
	// returning and Unmount starting.
	Mounted() bool
	VisitChildren(visitor func(Element) bool)
}

// BuildContext is the interface widgets build against. Elements implement it.
type BuildContext interface {
	Widget() Widget
	// DependOnInherited registers a dependency on the nearest ancestor
	// InheritedWidget of the given type and returns it, or nil.
	DependOnInherited(inheritedType reflect.Type) any
	// FindAncestor walks up the tree and returns the first element matching
	// the predicate, or nil.
	FindAncestor(predicate func(Element) bool) Element
}

// Listenable is anything broadcasting void change notifications.
// AddListener returns an unsubscribe function.
type Listenable interface {
	AddListener(fn func()) func()
}

// Disposable is anything holding resources released by Dispose.
type Disposable interface {
	Dispose()
}
