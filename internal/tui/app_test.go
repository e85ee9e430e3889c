package tui_test

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/tabzero/internal/model"
	"github.com/nikbrunner/tabzero/internal/storage"
	"github.com/nikbrunner/tabzero/internal/store"
	"github.com/nikbrunner/tabzero/internal/tui"
	"github.com/nikbrunner/tabzero/internal/tui/layout"
)

var now = time.Date(2026, 3, 14, 15, 0, 0, 0, time.Local)

func ts(t time.Time) model.Timestamp { return model.NewTimestamp(t) }

type fixture struct {
	bookmarks *store.BookmarkStore
	trash     *store.TrashStore
}

// newFixture fills the trash with two items deleted today, one deleted
// yesterday and one long expired.
func newFixture(t *testing.T) fixture {
	t.Helper()
	clock := func() time.Time { return now }
	p := store.Params{Storage: storage.NewMemoryStorage(), Now: clock}

	bs := store.NewBookmarkStore(p)
	bs.ReplaceAll(model.Snapshot{Bookmarks: []model.Bookmark{}, Categories: []model.Category{}})
	trash := store.NewTrashStore(p)

	dev := model.Category{ID: "dev", Name: "Dev", Order: 1}
	related := []model.Bookmark{{ID: "b3", Title: "Rust", URL: "https://rust-lang.org", CategoryID: "dev"}}

	trash.AddToTrash(model.NewBookmarkTrashItem(model.Bookmark{ID: "b0", Title: "Ancient", URL: "https://old.example"}, ts(now.AddDate(0, 0, -30))))
	trash.AddToTrash(model.NewBookmarkTrashItem(model.Bookmark{ID: "b2", Title: "HN", URL: "https://news.ycombinator.com"}, ts(now.AddDate(0, 0, -1))))
	trash.AddToTrash(model.NewCategoryTrashItem(dev, related, ts(now.Add(-2*time.Hour))))
	trash.AddToTrash(model.NewBookmarkTrashItem(model.Bookmark{ID: "b1", Title: "Go", URL: "https://go.dev"}, ts(now.Add(-time.Hour))))

	return fixture{bookmarks: bs, trash: trash}
}

func (f fixture) app() tui.App {
	return tui.NewApp(tui.AppParams{
		Bookmarks: f.bookmarks,
		Trash:     f.trash,
		Now:       func() time.Time { return now },
	}).WithDimensions(80, 24)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(app tui.App, msgs ...tea.Msg) tui.App {
	for _, msg := range msgs {
		updated, _ := app.Update(msg)
		app = updated.(tui.App)
	}
	return app
}

func rowTitles(app tui.App) []string {
	var out []string
	for _, r := range app.Rows() {
		out = append(out, r.Title())
	}
	return out
}

func TestApp_OpenSweepsExpiredAndGroupsByDay(t *testing.T) {
	f := newFixture(t)
	app := f.app()

	assert.Equal(t, len(f.trash.Items()), 3)
	assert.Check(t, is.Contains(app.Message(), "Removed 1 expired item"))
	assert.DeepEqual(t, rowTitles(app), []string{"Today", "Go", "Dev", "Yesterday", "HN"})
	assert.Equal(t, app.Rows()[0].Kind, tui.RowGroup)
	assert.Equal(t, app.Rows()[1].Kind, tui.RowItem)
}

func TestApp_Navigation(t *testing.T) {
	app := newFixture(t).app()

	app = send(app, keyRunes("j"), keyRunes("j"))
	assert.Equal(t, app.Cursor(), 2)

	app = send(app, keyRunes("G"))
	assert.Equal(t, app.Cursor(), 4)

	app = send(app, keyRunes("j"))
	assert.Equal(t, app.Cursor(), 4, "j at bottom stays")

	app = send(app, keyRunes("g"), keyRunes("g"))
	assert.Equal(t, app.Cursor(), 0)

	app = send(app, keyRunes("k"))
	assert.Equal(t, app.Cursor(), 0, "k at top stays")
}

func TestApp_RestoreItem(t *testing.T) {
	f := newFixture(t)
	app := send(f.app(), keyRunes("j"), keyRunes("r"))

	_, ok := f.bookmarks.BookmarkByID("b1")
	assert.Assert(t, ok)
	assert.Equal(t, len(f.trash.Items()), 2)
	assert.Check(t, is.Contains(app.Message(), `Restored "Go"`))
	assert.DeepEqual(t, rowTitles(app), []string{"Today", "Dev", "Yesterday", "HN"})
}

func TestApp_RestoreCategoryBringsBookmarks(t *testing.T) {
	f := newFixture(t)
	send(f.app(), keyRunes("j"), keyRunes("j"), tea.KeyMsg{Type: tea.KeyEnter})

	_, ok := f.bookmarks.CategoryByID("dev")
	assert.Assert(t, ok)
	b, ok := f.bookmarks.BookmarkByID("b3")
	assert.Assert(t, ok)
	assert.Equal(t, b.CategoryID, "dev")
}

func TestApp_RestoreDayGroup(t *testing.T) {
	f := newFixture(t)
	app := send(f.app(), keyRunes("r"))

	assert.Equal(t, len(f.trash.Items()), 1)
	assert.Check(t, is.Contains(app.Message(), "Restored 2 items from Today"))
	assert.DeepEqual(t, rowTitles(app), []string{"Yesterday", "HN"})
}

func TestApp_PurgeAsksFirst(t *testing.T) {
	f := newFixture(t)
	app := send(f.app(), keyRunes("j"), keyRunes("d"))

	assert.Equal(t, app.Mode(), tui.ModeConfirmPurge)
	assert.Check(t, is.Contains(layout.StripANSI(app.View()), `Delete "Go" forever?`))

	app = send(app, keyRunes("n"))
	assert.Equal(t, app.Mode(), tui.ModeNormal)
	assert.Equal(t, len(f.trash.Items()), 3)

	app = send(app, keyRunes("d"), keyRunes("y"))
	assert.Equal(t, app.Mode(), tui.ModeNormal)
	assert.Equal(t, len(f.trash.Items()), 2)
	_, ok := f.bookmarks.BookmarkByID("b1")
	assert.Assert(t, !ok, "purged item must not come back")
}

func TestApp_PurgeOnGroupRowWarns(t *testing.T) {
	app := send(newFixture(t).app(), keyRunes("d"))

	assert.Equal(t, app.Mode(), tui.ModeNormal)
	assert.Check(t, is.Contains(app.Message(), "Select an item"))
}

func TestApp_RestoreAll(t *testing.T) {
	f := newFixture(t)
	app := send(f.app(), keyRunes("R"))

	assert.Equal(t, len(f.trash.Items()), 0)
	assert.Equal(t, len(f.bookmarks.Bookmarks()), 3)
	assert.Check(t, is.Len(app.Rows(), 0))
	assert.Check(t, is.Contains(layout.StripANSI(app.View()), "Trash is empty"))
}

func TestApp_ClearTrash(t *testing.T) {
	f := newFixture(t)
	app := send(f.app(), keyRunes("D"))
	assert.Equal(t, app.Mode(), tui.ModeConfirmClear)

	app = send(app, keyRunes("y"))

	assert.Equal(t, len(f.trash.Items()), 0)
	assert.Equal(t, len(f.bookmarks.Bookmarks()), 0)
	assert.Check(t, is.Contains(app.Message(), "Emptied trash (3 items)"))
}

func TestApp_ClearOnEmptyTrashDoesNothing(t *testing.T) {
	f := newFixture(t)
	f.trash.ClearTrash()

	app := send(f.app(), keyRunes("D"))

	assert.Equal(t, app.Mode(), tui.ModeNormal)
}

func TestApp_ToggleTrash(t *testing.T) {
	f := newFixture(t)
	app := send(f.app(), keyRunes("t"))

	assert.Assert(t, !f.trash.Settings().Enabled)
	assert.Check(t, is.Contains(layout.StripANSI(app.View()), "disabled"))

	send(app, keyRunes("t"))
	assert.Assert(t, f.trash.Settings().Enabled)
}

func TestApp_Quit(t *testing.T) {
	_, cmd := newFixture(t).app().Update(keyRunes("q"))
	assert.Assert(t, cmd != nil)
}

func TestView_ListsGroupsAndRemainingDays(t *testing.T) {
	view := layout.StripANSI(newFixture(t).app().View())

	for _, want := range []string{
		"Trash",
		"3 items · kept 15 days",
		"Today (2)",
		"Yesterday (1)",
		"category +1",
		"15d left",
		"14d left",
	} {
		assert.Check(t, is.Contains(view, want))
	}
}

func TestView_NarrowTerminalTruncatesTitles(t *testing.T) {
	f := newFixture(t)
	f.trash.AddToTrash(model.NewBookmarkTrashItem(
		model.Bookmark{ID: "long", Title: strings.Repeat("Very long bookmark title ", 10)},
		ts(now),
	))
	f.trash.AddToTrash(model.NewBookmarkTrashItem(
		model.Bookmark{ID: "wide", Title: strings.Repeat("开发工具书签", 10)},
		ts(now),
	))

	view := f.app().WithDimensions(50, 24).View()

	assert.Check(t, is.Contains(layout.StripANSI(view), "..."))
	assert.Check(t, is.Contains(view, "开发"))
	rows := 0
	for _, line := range strings.Split(view, "\n") {
		if strings.Contains(line, "left") {
			rows++
			assert.Check(t, lipgloss.Width(line) <= 50, "row too wide: %q", line)
		}
	}
	assert.Check(t, rows >= 2)
}
