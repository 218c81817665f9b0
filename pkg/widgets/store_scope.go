package widgets

import (
	"reflect"

	"github.com/go-drift/mapstream/pkg/core"
	"github.com/go-drift/mapstream/pkg/state"
)

// StoreScope provides a map stream to every descendant widget. Descendants
// read it with StoreOf and are rebuilt when the scope's store handle is
// replaced.
//
// StoreScope shares a handle; it does not observe the store's contents. Use
// MapStreamBuilder or a binding.Binder to rebuild on updates.
type StoreScope struct {
	core.InheritedBase

	Store *state.MapStream
	Child core.Widget
}

func (s StoreScope) ChildWidget() core.Widget {
	return s.Child
}

func (s StoreScope) UpdateShouldNotify(old core.InheritedWidget) bool {
	return s.Store != old.(StoreScope).Store
}

var storeScopeType = reflect.TypeOf(StoreScope{})

// StoreOf returns the store provided by the nearest enclosing StoreScope,
// registering the calling widget as a dependent. Returns nil when there is
// no StoreScope ancestor.
func StoreOf(ctx core.BuildContext) *state.MapStream {
	if scope, ok := ctx.DependOnInherited(storeScopeType).(StoreScope); ok {
		return scope.Store
	}
	return nil
}
