// Package gesture implements hold-to-confirm: a press must be sustained for a
// fixed duration before its action fires.
//
// One parameterised state machine (Hold) serves both buttons of the app:
//   - NewUnlock: the stopwatch's start button; a full hold opens safe mode, a
//     tap starts the stopwatch
//   - NewPanic: the safe-mode panic button; a full hold dispatches the alert
//
// Sampling is driven by a Frames scheduler in the style of an animation loop,
// so progress is recomputed from the clock on every frame rather than counted
// from ticks.
package gesture
