// Package badge implements the badge controller and its display sessions.
//
// A Controller owns at most one Session at a time. Each session is tracked
// by its own goroutine, which opens the window through a Backend, waits for
// a close request or for the window to go away, and then clears the
// controller's handle so a new session can start. Native window work never
// happens on the caller's goroutine; close requests travel over channels.
package badge
