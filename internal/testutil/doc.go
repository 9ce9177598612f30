// Package testutil provides deterministic time sources for tests: a manual
// wall clock and a manually stepped animation-frame scheduler.
package testutil
