package testing

import (
	"fmt"
	"reflect"

	"github.com/go-drift/mapstream/pkg/core"
	"github.com/go-drift/mapstream/pkg/widgets"
)

// Finder locates elements in the widget tree.
type Finder interface {
	// Evaluate returns all matching elements under root (depth-first
	// pre-order).
	Evaluate(root core.Element) []core.Element
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	elements []core.Element
	finder   Finder
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() core.Element {
	if len(r.elements) == 0 {
		desc := "unknown"
		if r.finder != nil {
			desc = r.finder.Description()
		}
		panic(fmt.Sprintf("Finder found no elements: %s", desc))
	}
	return r.elements[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() core.Element {
	if len(r.elements) == 0 {
		return nil
	}
	return r.elements[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) core.Element {
	if index < 0 || index >= len(r.elements) {
		desc := "unknown"
		if r.finder != nil {
			desc = r.finder.Description()
		}
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.elements), desc))
	}
	return r.elements[index]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []core.Element {
	return r.elements
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.elements)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.elements) > 0
}

// Widget returns the widget of the first matched element. Panics if no
// matches.
func (r FinderResult) Widget() core.Widget {
	return r.First().Widget()
}

// --- Concrete finders ---

// typeFinder matches elements whose widget is of the specified type.
type typeFinder struct {
	widgetType reflect.Type
}

// ByType returns a finder matching widgets with the same type as sample.
//
//	tester.Find(streamtest.ByType(widgets.Text{}))
func ByType(sample core.Widget) Finder {
	return typeFinder{widgetType: reflect.TypeOf(sample)}
}

func (f typeFinder) Evaluate(root core.Element) []core.Element {
	return collect(root, func(e core.Element) bool {
		return reflect.TypeOf(e.Widget()) == f.widgetType
	})
}

func (f typeFinder) Description() string {
	return fmt.Sprintf("widget of type %v", f.widgetType)
}

// textFinder matches Text widgets with exact content.
type textFinder struct {
	content string
}

// ByText returns a finder matching widgets.Text elements with the given
// content.
func ByText(content string) Finder {
	return textFinder{content: content}
}

func (f textFinder) Evaluate(root core.Element) []core.Element {
	return collect(root, func(e core.Element) bool {
		text, ok := e.Widget().(widgets.Text)
		return ok && text.Content == f.content
	})
}

func (f textFinder) Description() string {
	return fmt.Sprintf("Text with content %q", f.content)
}

// predicateFinder matches elements whose widget satisfies a predicate.
type predicateFinder struct {
	predicate   func(core.Widget) bool
	description string
}

// ByPredicate returns a finder matching widgets for which predicate returns
// true.
func ByPredicate(description string, predicate func(core.Widget) bool) Finder {
	return predicateFinder{predicate: predicate, description: description}
}

func (f predicateFinder) Evaluate(root core.Element) []core.Element {
	return collect(root, func(e core.Element) bool {
		return f.predicate(e.Widget())
	})
}

func (f predicateFinder) Description() string {
	return f.description
}

// collect gathers elements matching the predicate, depth-first pre-order.
func collect(root core.Element, match func(core.Element) bool) []core.Element {
	var found []core.Element
	var walk func(core.Element)
	walk = func(e core.Element) {
		if match(e) {
			found = append(found, e)
		}
		e.VisitChildren(func(child core.Element) bool {
			walk(child)
			return true
		})
	}
	walk(root)
	return found
}
