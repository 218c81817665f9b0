// Package widgets provides the declarative surface of the binding layer.
//
// MapStreamBuilder attaches store-driven rebuilding to an anonymous build
// callback, so a usage site does not need its own widget and state types.
// StoreScope provides a store handle to an entire subtree via the inherited
// widget protocol, and Text is a minimal leaf for building testable trees.
package widgets
