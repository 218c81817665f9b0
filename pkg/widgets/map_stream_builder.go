package widgets

import (
	"github.com/go-drift/mapstream/pkg/binding"
	"github.com/go-drift/mapstream/pkg/core"
	"github.com/go-drift/mapstream/pkg/errors"
	"github.com/go-drift/mapstream/pkg/state"
)

// MapStreamBuilder rebuilds a subtree from an anonymous build callback
// whenever a relevant store update arrives.
//
//	widgets.MapStreamBuilder{
//	    Store: stream,
//	    Keys:  []string{"count"},
//	    Builder: func(ctx core.BuildContext) core.Widget {
//	        count, _ := stream.Get("count")
//	        return widgets.Text{Content: fmt.Sprint(count)}
//	    },
//	}
//
// The store and key filter are fixed at first mount for the life of the
// element; swapping the Store field across rebuilds does not rebind. The
// Builder is invoked verbatim on mount and on every triggered rebuild, with
// no caching or memoization, and must not mutate the store.
type MapStreamBuilder struct {
	core.StatefulBase

	// Store is the observed map stream. Required.
	Store *state.MapStream
	// Keys optionally restricts relevance to updates touching these keys.
	Keys []string
	// Builder produces the subtree from the current store state. Required.
	Builder func(ctx core.BuildContext) core.Widget
	// ShouldRebuild optionally gates rebuilds per update. Nil rebuilds on
	// every relevant update.
	ShouldRebuild func(u state.Update, store *state.MapStream) bool
}

func (w MapStreamBuilder) CreateState() core.State {
	return &mapStreamBuilderState{}
}

type mapStreamBuilderState struct {
	core.StateBase
	binder *binding.Binder
}

func (s *mapStreamBuilderState) InitState() {
	w := s.Element().Widget().(MapStreamBuilder)

	binder, err := binding.New(w.Store, w.Keys...)
	if err != nil {
		errors.Report(&errors.StreamError{
			Op:   "widgets.MapStreamBuilder",
			Kind: errors.KindInvalidArgument,
			Err:  err,
		})
		return
	}
	binder.ShouldRebuild = w.ShouldRebuild
	s.binder = binder

	if err := binding.Bind(&s.StateBase, binder); err != nil {
		errors.Report(&errors.StreamError{
			Op:   "widgets.MapStreamBuilder",
			Kind: errors.KindSubscription,
			Err:  err,
		})
	}
}

func (s *mapStreamBuilderState) Build(ctx core.BuildContext) core.Widget {
	w := s.Element().Widget().(MapStreamBuilder)
	if w.Builder == nil {
		return nil
	}
	return w.Builder(ctx)
}
