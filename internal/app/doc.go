// Package app wires application dependencies for the CLI.
//
// It loads Config, builds the byte store, envelope codec, secure store and
// the vault, alert and stopwatch services, exposing them via the Wire struct.
// App adds the screen state the two hold gestures drive.
package app
