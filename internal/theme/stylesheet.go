package theme

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/screenbadge/internal/config"
)

// FrameClass is the CSS class of the widget that carries the border.
const FrameClass = "badge-frame"

// ClassPrefix prefixes every per-session window class.
const ClassPrefix = "screenbadge-"

type badgeVars struct {
	Class       string
	Color       string
	Thickness   int
	InnerWidth  int
	InnerHeight int
}

// SessionClass returns the window CSS class for a session.
// The class scopes the stylesheet to one window so badges with
// different colors can coexist in one process.
func SessionClass(sessionID string) string {
	return ClassPrefix + SanitizeClassName(sessionID)
}

// Render returns the stylesheet for a badge window carrying class.
// The frame's min size excludes the border so the outer size of the
// frame equals the configured width and height.
func Render(class string, cfg config.BadgeConfig) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", fmt.Errorf("cannot render badge stylesheet: %w", err)
	}
	class = SanitizeClassName(class)
	if class == "" {
		return "", fmt.Errorf("cannot render badge stylesheet: empty class")
	}

	vars := badgeVars{
		Class:       class,
		Color:       cfg.Color,
		Thickness:   cfg.Thickness,
		InnerWidth:  cfg.Width - 2*cfg.Thickness,
		InnerHeight: cfg.Height - 2*cfg.Thickness,
	}

	var b strings.Builder
	if err := badgeTemplate.Execute(&b, vars); err != nil {
		return "", fmt.Errorf("cannot render badge stylesheet: %w", err)
	}
	return b.String(), nil
}

// SanitizeClassName converts a string to a valid CSS class name.
// Replaces spaces and special characters with hyphens, lowercases.
func SanitizeClassName(name string) string {
	var result strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			result.WriteRune(r)
			prevHyphen = false
		case r == '-' || r == '_' || r == ' ' || r == '.' || r == '/':
			if !prevHyphen && result.Len() > 0 {
				result.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimSuffix(result.String(), "-")
}
