package model

import "math/rand/v2"

// Palette is the fixed set of tile colors new items draw from.
var Palette = []string{
	"#8b5cf6", "#6366f1", "#3b82f6", "#0ea5e9", "#06b6d4",
	"#14b8a6", "#10b981", "#22c55e", "#84cc16", "#eab308",
	"#f59e0b", "#f97316", "#ef4444", "#ec4899", "#d946ef",
}

// RandomColor picks a color from Palette.
func RandomColor() string {
	return Palette[rand.IntN(len(Palette))]
}

// AccentColor is a selectable UI accent.
type AccentColor struct {
	ID    string
	Color string
}

// AccentColors lists the selectable accents.
var AccentColors = []AccentColor{
	{"red", "#ef4444"}, {"orange", "#f97316"}, {"amber", "#f59e0b"},
	{"yellow", "#eab308"}, {"lime", "#84cc16"}, {"green", "#22c55e"},
	{"emerald", "#10b981"}, {"teal", "#14b8a6"}, {"cyan", "#06b6d4"},
	{"sky", "#0ea5e9"}, {"blue", "#3b82f6"}, {"indigo", "#6366f1"},
	{"violet", "#8b5cf6"}, {"purple", "#a855f7"}, {"fuchsia", "#d946ef"},
	{"pink", "#ec4899"}, {"rose", "#f43f5e"}, {"slate", "#64748b"},
}
