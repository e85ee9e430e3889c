package layout

// CalculateListHeight computes how many rows fit in the trash list.
// Returns at least MinHeight.
func CalculateListHeight(terminalHeight int, cfg PanelConfig) int {
	return max(terminalHeight-cfg.HeightReduction, cfg.MinHeight)
}

// CalculateRowWidth computes the width available for one row.
func CalculateRowWidth(terminalWidth int, cfg PanelConfig) int {
	return max(terminalWidth-cfg.ContentPadding, cfg.MinWidth)
}

// CalculateViewportOffset calculates the scroll offset needed to keep the
// selected row visible within the viewport.
func CalculateViewportOffset(selected, total, viewportHeight int) int {
	if total <= viewportHeight {
		return 0
	}

	// Keep selection roughly centered, but clamp to valid range
	offset := selected - viewportHeight/2
	offset = max(offset, 0)
	return min(offset, total-viewportHeight)
}
