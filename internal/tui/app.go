// Package tui is the interactive trash panel: deleted bookmarks and
// categories grouped by day, with restore and permanent delete.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/tabzero/internal/model"
	"github.com/nikbrunner/tabzero/internal/store"
	"github.com/nikbrunner/tabzero/internal/tui/layout"
)

// App is the bubbletea model for the trash panel.
type App struct {
	bookmarks    *store.BookmarkStore
	trash        *store.TrashStore
	now          func() time.Time
	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig

	rows   []Row
	cursor int
	mode   Mode

	// Item awaiting purge confirmation.
	pendingID string

	messageText string
	messageType MessageType

	// For gg command
	lastKeyWasG bool

	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Bookmarks    *store.BookmarkStore
	Trash        *store.TrashStore
	Now          func() time.Time     // optional, defaults to time.Now
	Keys         *KeyMap              // optional, uses default if nil
	Styles       *Styles              // optional, uses default if nil
	LayoutConfig *layout.LayoutConfig // optional, uses default if nil
}

// NewApp creates a new App. Opening the panel sweeps expired items.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutCfg := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutCfg = *params.LayoutConfig
	}

	now := params.Now
	if now == nil {
		now = time.Now
	}

	app := App{
		bookmarks:    params.Bookmarks,
		trash:        params.Trash,
		now:          now,
		keys:         keys,
		styles:       styles,
		layoutConfig: layoutCfg,
		width:        80,
		height:       24,
	}

	if n := app.trash.CleanExpiredItems(); n > 0 {
		app.setMessage(MessageInfo, fmt.Sprintf("Removed %d expired %s", n, plural(n, "item")))
	}
	app.refreshRows()
	return app
}

// WithDimensions returns a copy of the app sized to width x height.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// refreshRows rebuilds the rows from the trash store and clamps the cursor.
func (a *App) refreshRows() {
	a.rows = buildRows(store.GroupByDay(a.trash.Items(), a.now()))
	if a.cursor >= len(a.rows) {
		a.cursor = max(len(a.rows)-1, 0)
	}
}

func (a *App) setMessage(typ MessageType, text string) {
	a.messageType = typ
	a.messageText = text
}

// Cursor returns the current cursor position.
func (a App) Cursor() int {
	return a.cursor
}

// Rows returns the current list rows.
func (a App) Rows() []Row {
	return a.rows
}

// Mode returns the current mode.
func (a App) Mode() Mode {
	return a.mode
}

// Message returns the status line text.
func (a App) Message() string {
	return a.messageText
}

func (a App) currentRow() (Row, bool) {
	if a.cursor < 0 || a.cursor >= len(a.rows) {
		return Row{}, false
	}
	return a.rows[a.cursor], true
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		switch a.mode {
		case ModeConfirmPurge, ModeConfirmClear:
			return a.updateConfirm(msg)
		default:
			return a.updateNormal(msg)
		}
	}

	return a, nil
}

func (a App) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Confirm):
		if a.mode == ModeConfirmPurge {
			title := ""
			if item, ok := a.trash.Item(a.pendingID); ok {
				title = item.Title()
			}
			a.trash.RemoveFromTrash(a.pendingID)
			a.setMessage(MessageSuccess, fmt.Sprintf("Deleted %q forever", title))
		} else {
			n := len(a.trash.Items())
			a.trash.ClearTrash()
			a.setMessage(MessageSuccess, fmt.Sprintf("Emptied trash (%d %s)", n, plural(n, "item")))
		}
		a.mode = ModeNormal
		a.pendingID = ""
		a.refreshRows()

	case key.Matches(msg, a.keys.Cancel):
		a.mode = ModeNormal
		a.pendingID = ""
	}
	return a, nil
}

func (a App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.cursor = 0
			a.lastKeyWasG = false
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		if a.cursor < len(a.rows)-1 {
			a.cursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Bottom):
		if len(a.rows) > 0 {
			a.cursor = len(a.rows) - 1
		}

	case key.Matches(msg, a.keys.Restore):
		a.restoreCurrent()

	case key.Matches(msg, a.keys.Purge):
		row, ok := a.currentRow()
		switch {
		case !ok:
		case row.Kind == RowGroup:
			a.setMessage(MessageWarning, "Select an item to delete")
		default:
			a.pendingID = row.Item.ID
			a.mode = ModeConfirmPurge
		}

	case key.Matches(msg, a.keys.RestoreAll):
		if n := store.RestoreAll(a.bookmarks, a.trash); n > 0 {
			a.setMessage(MessageSuccess, fmt.Sprintf("Restored %d %s", n, plural(n, "item")))
		}
		a.refreshRows()

	case key.Matches(msg, a.keys.Clear):
		if len(a.trash.Items()) > 0 {
			a.mode = ModeConfirmClear
		}

	case key.Matches(msg, a.keys.ToggleTrash):
		enabled := !a.trash.Settings().Enabled
		a.trash.UpdateSettings(model.TrashSettingsPatch{Enabled: &enabled})
		if enabled {
			a.setMessage(MessageInfo, "Trash enabled")
		} else {
			a.setMessage(MessageWarning, "Trash disabled: deletions are permanent")
		}
	}

	return a, nil
}

func (a *App) restoreCurrent() {
	row, ok := a.currentRow()
	if !ok {
		return
	}

	if row.Kind == RowGroup {
		n := store.RestoreGroup(a.bookmarks, a.trash, row.Group)
		a.setMessage(MessageSuccess, fmt.Sprintf("Restored %d %s from %s", n, plural(n, "item"), row.Group.Label))
	} else if store.Restore(a.bookmarks, a.trash, row.Item.ID) {
		a.setMessage(MessageSuccess, fmt.Sprintf("Restored %q", row.Item.Title()))
	}
	a.refreshRows()
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
