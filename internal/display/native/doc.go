// Package native implements the GTK4 badge backend.
//
// GTK is single-threaded: every GTK call must happen on the thread that
// initialized it. The backend starts one GTK main loop on a dedicated,
// locked OS thread the first time a window is opened, and all window
// construction and destruction is scheduled onto it with glib.IdleAdd.
// On Wayland compositors that support it, the badge is a layer-shell
// surface on the overlay layer anchored to the top-left corner.
package native
