package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Panel PanelConfig
	Modal ModalConfig
	Text  TextConfig
}

// PanelConfig holds trash panel dimension configuration.
type PanelConfig struct {
	// HeightReduction is subtracted from terminal height for the item list.
	// Accounts for: app padding (1) + header (2) + panel borders (2) + help bar (2) = 7
	HeightReduction int

	// MinHeight is the minimum list height.
	MinHeight int

	// ContentPadding is subtracted from terminal width for row rendering.
	// Accounts for app padding, panel border and padding on each side.
	ContentPadding int

	// MinWidth is the narrowest row the panel will render.
	MinWidth int
}

// ModalConfig holds confirm dialog configuration.
type ModalConfig struct {
	// DefaultWidthPercent is the modal width as percentage of terminal width.
	DefaultWidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Panel: PanelConfig{
			HeightReduction: 7,
			MinHeight:       3,
			ContentPadding:  8,
			MinWidth:        30,
		},
		Modal: ModalConfig{
			DefaultWidthPercent: 40,
			MinWidth:            40,
			MaxWidth:            70,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
