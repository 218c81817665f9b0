// Package testing provides a headless harness for exercising widget trees
// and map-stream bindings in unit tests.
//
// Tester mounts a widget tree against a private BuildOwner and drives frames
// with Pump: each frame drains the dispatch queue and flushes dirty
// elements. Finders locate elements in the mounted tree, Scenario loads
// YAML-scripted store mutations from testdata, and Snapshot compares the
// element tree against JSON golden files.
//
//	tester := streamtest.NewTesterWithT(t)
//	tester.PumpWidget(widgets.MapStreamBuilder{Store: stream, Builder: build})
//	stream.Set("count", 1)
//	tester.Pump()
//	got := tester.Find(streamtest.ByType(widgets.Text{})).First()
package testing
