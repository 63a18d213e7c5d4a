// Package display holds the backend-independent parts of badge display:
// window placement, display errors, and a headless backend for machines
// without a display server. The GTK4 backend lives in display/native.
package display
