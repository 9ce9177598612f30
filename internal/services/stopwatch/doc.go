// Package stopwatch is the visible face of the application: a plain
// start/stop timer with centisecond display.
package stopwatch
