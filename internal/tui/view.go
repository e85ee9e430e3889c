package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/tabzero/internal/model"
	"github.com/nikbrunner/tabzero/internal/tui/layout"
)

// renderView creates the panel, or the confirm dialog when one is open.
func (a App) renderView() string {
	if a.mode != ModeNormal {
		return a.styles.App.Render(a.renderModal())
	}

	sections := []string{
		a.renderHeader(),
		a.styles.Panel.Render(a.renderList()),
		a.renderHelpBar(),
	}
	return a.styles.App.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (a App) renderHeader() string {
	settings := a.trash.Settings()
	items := len(a.trash.Items())

	stats := fmt.Sprintf("%d %s · kept %d days", items, plural(items, "item"), settings.RetentionDays)
	if !settings.Enabled {
		stats += " · disabled"
	}
	return a.styles.Title.Render("Trash") + "  " + a.styles.Stats.Render(stats)
}

func (a App) renderList() string {
	width := layout.CalculateRowWidth(a.width, a.layoutConfig.Panel)

	if len(a.rows) == 0 {
		return a.styles.Empty.Render(layout.PadRight("Trash is empty", width, a.layoutConfig.Text))
	}

	height := layout.CalculateListHeight(a.height, a.layoutConfig.Panel)
	offset := layout.CalculateViewportOffset(a.cursor, len(a.rows), height)
	end := min(offset+height, len(a.rows))

	lines := make([]string, 0, end-offset)
	for i := offset; i < end; i++ {
		lines = append(lines, a.renderRow(a.rows[i], i == a.cursor, width))
	}
	return strings.Join(lines, "\n")
}

func (a App) renderRow(row Row, selected bool, width int) string {
	var text string
	if row.Kind == RowGroup {
		text = layout.PadRight(fmt.Sprintf("%s (%d)", row.Group.Label, len(row.Group.Items)), width-1, a.layoutConfig.Text)
		if selected {
			return a.styles.ItemSelected.Render(text)
		}
		return a.styles.Group.Render(text)
	}

	item := row.Item
	days := a.trash.RemainingDays(item)
	remaining := fmt.Sprintf("%dd left", days)
	kind := string(item.Type)
	if item.Type == model.TrashCategory && len(item.RelatedBookmarks) > 0 {
		kind = fmt.Sprintf("category +%d", len(item.RelatedBookmarks))
	}

	// padding, indent, title, gap, kind, gap, remaining
	titleWidth := max(width-1-2-len(kind)-2-len(remaining)-2, 1)
	title := layout.PadRight(item.Title(), titleWidth, a.layoutConfig.Text)

	if selected {
		return a.styles.ItemSelected.Render("  " + title + "  " + kind + "  " + remaining)
	}

	remainingStyle := a.styles.Remaining
	if days <= 1 {
		remainingStyle = a.styles.Expiring
	}
	return a.styles.Item.Render("  "+title) + "  " + a.styles.Kind.Render(kind) + "  " + remainingStyle.Render(remaining)
}

func (a App) renderModal() string {
	var content strings.Builder

	switch a.mode {
	case ModeConfirmPurge:
		title := ""
		if item, ok := a.trash.Item(a.pendingID); ok {
			title = item.Title()
		}
		content.WriteString(fmt.Sprintf("Delete %q forever?\n\n", title))
	case ModeConfirmClear:
		n := len(a.trash.Items())
		content.WriteString(fmt.Sprintf("Empty trash (%d %s)?\n\n", n, plural(n, "item")))
	}

	content.WriteString(a.styles.Stats.Render("This action cannot be undone.") + "\n\n")
	content.WriteString(a.renderHintsInline([]Hint{
		{Key: "y", Desc: "confirm"},
		{Key: "n", Desc: "cancel"},
	}))

	width := layout.CalculateModalWidth(a.width, a.layoutConfig.Modal)
	return a.styles.Modal.Width(width).Render(content.String())
}

func (a App) renderHelpBar() string {
	var lines []string
	if a.messageText != "" {
		lines = append(lines, a.renderMessageLine())
	} else {
		lines = append(lines, "")
	}
	lines = append(lines, a.renderHints(a.contextualHints()))
	return strings.Join(lines, "\n")
}

// renderMessageLine renders the styled message with prefix icon based on type.
func (a App) renderMessageLine() string {
	switch a.messageType {
	case MessageError:
		return a.styles.Error.Render("✗ " + a.messageText)
	case MessageWarning:
		return a.styles.Warning.Render("⚠ " + a.messageText)
	case MessageSuccess:
		return a.styles.Success.Render("✓ " + a.messageText)
	default:
		return a.styles.Info.Render(a.messageText)
	}
}
