package core

// DebugMode controls whether debug information is surfaced by error
// handling. When true, reported build errors include stack traces.
var DebugMode = true

// SetDebugMode enables or disables debug mode for the framework.
func SetDebugMode(debug bool) {
	DebugMode = debug
}
