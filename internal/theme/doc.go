// Package theme renders the GTK stylesheet that draws a badge.
// The border is plain GTK CSS on a frame widget that fills the window,
// so no custom drawing code is needed.
package theme
