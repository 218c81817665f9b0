package state_test

import (
	"fmt"

	"github.com/go-drift/mapstream/pkg/state"
)

// This example shows the basic observe-mutate cycle of a MapStream.
func ExampleMapStream() {
	stream := state.NewMapStream()

	sub := stream.Listen(func(u state.Update) {
		fmt.Printf("changed: %v\n", u.Keys)
	})

	stream.Set("count", 1)

	value, _ := stream.Get("count")
	fmt.Printf("count: %v\n", value)

	sub.Cancel()

	// Output:
	// changed: [count]
	// count: 1
}

// This example shows key-filtered listening: only updates touching the
// filter's keys are delivered.
func ExampleMapStream_Listen() {
	stream := state.NewMapStream()

	sub := stream.Listen(func(u state.Update) {
		fmt.Printf("session changed: %v\n", u.Values["session"])
	}, "session")

	stream.Set("unrelated", 1) // filtered out
	stream.Set("session", "abc123")

	sub.Cancel()

	// Output:
	// session changed: abc123
}
