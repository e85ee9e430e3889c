package tui

import "strings"

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "r")
	Desc string // Short description (e.g., "move", "restore")
}

// renderHints renders hints in horizontal format for the bottom bar: "j/k:move r:restore"
func (a App) renderHints(hints []Hint) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, " ")
}

// renderHintsInline renders hints in inline format for modals: "y confirm  n cancel"
func (a App) renderHintsInline(hints []Hint) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + " " + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, "  ")
}

// contextualHints lists the keys that do something on the current row.
func (a App) contextualHints() []Hint {
	hints := []Hint{{Key: "j/k", Desc: "move"}}

	if row, ok := a.currentRow(); ok {
		if row.Kind == RowGroup {
			hints = append(hints, Hint{Key: "r", Desc: "restore day"})
		} else {
			hints = append(hints,
				Hint{Key: "r", Desc: "restore"},
				Hint{Key: "d", Desc: "delete forever"},
			)
		}
		hints = append(hints,
			Hint{Key: "R", Desc: "restore all"},
			Hint{Key: "D", Desc: "empty"},
		)
	}

	return append(hints,
		Hint{Key: "t", Desc: "toggle trash"},
		Hint{Key: "q", Desc: "quit"},
	)
}
