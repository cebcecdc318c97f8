package models

import "fmt"

// Category groups activities for display and aggregation.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

func (c *Category) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("category name cannot be empty")
	}
	if c.Icon != "" {
		if _, ok := categoryIcons[c.Icon]; !ok {
			return fmt.Errorf("unknown category icon: %s", c.Icon)
		}
	}
	return nil
}

// categoryIcons maps icon identifiers to renderable glyphs. A flat lookup
// table, not name-based dispatch.
var categoryIcons = map[string]string{
	"work":     "💼",
	"home":     "🏠",
	"health":   "💪",
	"study":    "📚",
	"errand":   "🛒",
	"social":   "👥",
	"finance":  "💰",
	"travel":   "✈️",
	"hobby":    "🎨",
	"misc":     "📌",
}

// ResolveIcon returns the glyph for an icon identifier, falling back to a
// neutral marker for unknown or empty identifiers.
func ResolveIcon(icon string) string {
	if g, ok := categoryIcons[icon]; ok {
		return g
	}
	return "•"
}

// IconNames returns the identifiers accepted by ResolveIcon.
func IconNames() []string {
	names := make([]string, 0, len(categoryIcons))
	for name := range categoryIcons {
		names = append(names, name)
	}
	return names
}
