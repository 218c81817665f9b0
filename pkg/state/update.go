package state

import "reflect"

// Update is an immutable record describing a single store mutation.
// It is passed to listener callbacks and to rebuild decision hooks.
type Update struct {
	// Keys lists the keys touched by the mutation, in no particular order.
	Keys []string
	// Values holds the new value for each touched key. A touched key absent
	// from Values was removed from the store.
	Values map[string]any
	// Seq is the store's monotonic sequence number for this mutation.
	// The zero value never occurs in a delivered Update.
	Seq uint64
}

// Touches reports whether the update changed any of the given keys.
// An empty key set matches every update.
func (u Update) Touches(keys ...string) bool {
	if len(keys) == 0 {
		return true
	}
	for _, k := range keys {
		for _, changed := range u.Keys {
			if k == changed {
				return true
			}
		}
	}
	return false
}

// Removed reports whether the update removed the given key from the store.
func (u Update) Removed(key string) bool {
	if !u.Touches(key) {
		return false
	}
	_, ok := u.Values[key]
	return !ok
}

// SameContent reports whether two updates describe the same mutation content,
// ignoring sequence numbers. Useful for decision hooks that suppress
// duplicate-content rebuilds.
func (u Update) SameContent(other Update) bool {
	if len(u.Keys) != len(other.Keys) || len(u.Values) != len(other.Values) {
		return false
	}
	seen := make(map[string]struct{}, len(u.Keys))
	for _, k := range u.Keys {
		seen[k] = struct{}{}
	}
	for _, k := range other.Keys {
		if _, ok := seen[k]; !ok {
			return false
		}
	}
	return reflect.DeepEqual(u.Values, other.Values)
}
