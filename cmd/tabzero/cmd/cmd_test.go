package cmd_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
	"gotest.tools/v3/fs"

	"github.com/nikbrunner/tabzero/cmd/tabzero/cmd"
	"github.com/nikbrunner/tabzero/internal/model"
	"github.com/nikbrunner/tabzero/internal/storage"
	"github.com/nikbrunner/tabzero/internal/store"
)

type env struct {
	t       *testing.T
	dataDir string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TABZERO_CONFIG_PATH", "")
	homedir.DisableCache = true
	color.NoColor = true
	t.Cleanup(func() { homedir.DisableCache = false })
	t.Chdir(t.TempDir())
	return &env{t: t, dataDir: t.TempDir()}
}

func (e *env) run(args ...string) (string, error) {
	e.t.Helper()
	root := cmd.NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--data-dir", e.dataDir, "--storage", "json", "--log-level", "error"}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (e *env) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run(args...)
	assert.NilError(e.t, err, "tabzero %s", strings.Join(args, " "))
	return out
}

func (e *env) params() store.Params {
	return store.Params{Storage: storage.NewJSONStorage(e.dataDir)}
}

func (e *env) bookmarks() *store.BookmarkStore   { return store.NewBookmarkStore(e.params()) }
func (e *env) quickLinks() *store.QuickLinkStore { return store.NewQuickLinkStore(e.params()) }
func (e *env) trash() *store.TrashStore          { return store.NewTrashStore(e.params()) }

func (e *env) bookmarkByTitle(title string) model.Bookmark {
	e.t.Helper()
	for _, b := range e.bookmarks().Bookmarks() {
		if b.Title == title {
			return b
		}
	}
	e.t.Fatalf("no bookmark titled %q", title)
	return model.Bookmark{}
}

func titles(bs []model.Bookmark) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.Title
	}
	return out
}

func TestList_SeedsOnFirstRun(t *testing.T) {
	e := newEnv(t)

	out := e.mustRun("list")
	assert.Check(t, is.Contains(out, "Gmail"))
	assert.Check(t, is.Contains(out, "Frequent"))

	// A second run must not seed again.
	e.mustRun("list")
	assert.Equal(t, len(e.bookmarks().Bookmarks()), 3)
}

func TestAdd_UsesCategoryAndDomainTitle(t *testing.T) {
	e := newEnv(t)
	e.mustRun("categories", "add", "Reading")

	out := e.mustRun("add", "go.dev", "--category", "reading")
	assert.Check(t, is.Contains(out, "Added go.dev"))

	b := e.bookmarkByTitle("go.dev")
	assert.Equal(t, b.URL, "https://go.dev")
	c, ok := e.bookmarks().CategoryByID(b.CategoryID)
	assert.Assert(t, ok)
	assert.Equal(t, c.Name, "Reading")
}

func TestAdd_UnknownCategory(t *testing.T) {
	e := newEnv(t)
	_, err := e.run("add", "go.dev", "--category", "nope")
	assert.ErrorContains(t, err, `category "nope" not found`)
}

func TestCategories_AllIsReserved(t *testing.T) {
	e := newEnv(t)
	_, err := e.run("categories", "add", "All")
	assert.ErrorContains(t, err, "reserved")
}

func TestDelete_MovesToTrashAndRestores(t *testing.T) {
	e := newEnv(t)
	e.mustRun("list")
	gmail := e.bookmarkByTitle("Gmail")

	out := e.mustRun("delete", gmail.ID)
	assert.Check(t, is.Contains(out, "Moved bookmark to trash"))
	assert.Equal(t, len(e.bookmarks().Bookmarks()), 2)

	items := e.trash().Items()
	assert.Assert(t, is.Len(items, 1))

	out = e.mustRun("trash", "list")
	assert.Check(t, is.Contains(out, "Today (1)"))
	assert.Check(t, is.Contains(out, "Gmail"))
	assert.Check(t, is.Contains(out, "15d"))

	e.mustRun("trash", "restore", items[0].ID)
	assert.Equal(t, e.bookmarkByTitle("Gmail").ID, gmail.ID)
	assert.Check(t, is.Len(e.trash().Items(), 0))
}

func TestDelete_TrashDisabledIsPermanent(t *testing.T) {
	e := newEnv(t)
	e.mustRun("trash", "config", "--enabled", "off")
	gmail := e.bookmarkByTitle("Gmail")

	out := e.mustRun("delete", gmail.ID)
	assert.Check(t, is.Contains(out, "permanently"))
	assert.Check(t, is.Len(e.trash().Items(), 0))
}

func TestDelete_Missing(t *testing.T) {
	e := newEnv(t)
	_, err := e.run("delete", "missing")
	assert.ErrorContains(t, err, `bookmark "missing" not found`)
}

func TestCategoriesDelete_TakesBookmarksAlong(t *testing.T) {
	e := newEnv(t)

	out := e.mustRun("categories", "delete", "Frequent")
	assert.Check(t, is.Contains(out, "3 bookmark(s) removed"))
	assert.Check(t, is.Len(e.bookmarks().Bookmarks(), 0))

	items := e.trash().Items()
	assert.Assert(t, is.Len(items, 1))
	assert.Check(t, is.Len(items[0].RelatedBookmarks, 3))

	e.mustRun("trash", "restore", "--all")
	assert.Check(t, is.Len(e.bookmarks().Bookmarks(), 3))
}

func TestTrash_PurgeAndEmpty(t *testing.T) {
	e := newEnv(t)
	e.mustRun("list")
	e.mustRun("delete", e.bookmarkByTitle("Gmail").ID)
	e.mustRun("delete", e.bookmarkByTitle("YouTube").ID)

	items := e.trash().Items()
	assert.Assert(t, is.Len(items, 2))

	e.mustRun("trash", "purge", items[0].ID)
	assert.Check(t, is.Len(e.trash().Items(), 1))

	e.mustRun("trash", "empty")
	assert.Check(t, is.Len(e.trash().Items(), 0))
}

func TestTrashSettings(t *testing.T) {
	e := newEnv(t)

	out := e.mustRun("trash", "config", "--retention", "30", "--categories", "off")
	assert.Check(t, is.Contains(out, "30 days"))

	s := e.trash().Settings()
	assert.Check(t, s.Enabled)
	assert.Check(t, s.RecycleBookmarks)
	assert.Check(t, !s.RecycleCategories)

	_, err := e.run("trash", "config", "--enabled", "maybe")
	assert.ErrorContains(t, err, "want on or off")
}

func TestTrashSettings_RejectsNonPositiveRetention(t *testing.T) {
	e := newEnv(t)
	e.mustRun("trash", "config", "--retention", "30")

	for _, days := range []string{"0", "-3"} {
		_, err := e.run("trash", "config", "--retention="+days)
		assert.ErrorContains(t, err, "at least 1 day", days)
	}
	assert.Equal(t, e.trash().Settings().RetentionDays, 30)
}

func TestMove_ReordersVisibleBookmarks(t *testing.T) {
	e := newEnv(t)

	out := e.mustRun("move", "1", "3")
	assert.Check(t, is.Contains(out, "reordered"))
	assert.DeepEqual(t, titles(e.bookmarks().Bookmarks()), []string{"Gmail", "YouTube", "Chrome Web Store"})

	_, err := e.run("move", "1", "9")
	assert.ErrorContains(t, err, "out of range")
}

func TestAssign_Recategorizes(t *testing.T) {
	e := newEnv(t)
	e.mustRun("categories", "add", "Video")
	yt := e.bookmarkByTitle("YouTube")

	out := e.mustRun("assign", yt.ID, "Video")
	assert.Check(t, is.Contains(out, "recategorized"))

	e.mustRun("categories", "use", "Video")
	assert.DeepEqual(t, titles(e.bookmarks().VisibleBookmarks()), []string{"YouTube"})
}

func TestCategoriesMove(t *testing.T) {
	e := newEnv(t)
	e.mustRun("categories", "add", "Video")

	e.mustRun("categories", "move", "2", "1")
	var names []string
	for _, c := range e.bookmarks().Categories() {
		names = append(names, c.Name)
	}
	assert.DeepEqual(t, names, []string{"Video", "Frequent"})
}

func TestVisit_CountsWithoutOpening(t *testing.T) {
	e := newEnv(t)
	e.mustRun("list")
	yt := e.bookmarkByTitle("YouTube")

	out := e.mustRun("visit", yt.ID, "--no-open")
	assert.Equal(t, strings.TrimSpace(out), yt.URL)

	got := e.bookmarkByTitle("YouTube")
	assert.Equal(t, got.VisitCount, yt.VisitCount+1)
	assert.Check(t, got.LastVisitedAt != nil)

	out = e.mustRun("recent")
	assert.Check(t, is.Contains(out, "YouTube"))
}

func TestQuickLinks_AddDedupePinMove(t *testing.T) {
	e := newEnv(t)

	out := e.mustRun("quicklinks", "add", "go.dev", "--title", "Go")
	assert.Check(t, is.Contains(out, "Added quick link Go"))

	out = e.mustRun("quicklinks", "add", "https://go.dev")
	assert.Check(t, is.Contains(out, "Already in quick links"))

	e.mustRun("quicklinks", "pin", e.bookmarkByTitle("Gmail").ID)
	links := e.quickLinks().QuickLinks()
	assert.Assert(t, is.Len(links, 2))
	assert.Equal(t, links[1].Title, "Gmail")

	e.mustRun("quicklinks", "move", "2", "1")
	links = e.quickLinks().QuickLinks()
	assert.Equal(t, links[0].Title, "Gmail")

	e.mustRun("quicklinks", "delete", links[0].ID)
	assert.Check(t, is.Len(e.quickLinks().QuickLinks(), 1))
}

func TestImportExport_RoundTrip(t *testing.T) {
	e := newEnv(t)
	dir := fs.NewDir(t, "import", fs.WithFile("bookmarks.yaml", `
- Developer:
    - Github:
        - href: https://github.com/
    - Go:
        - href: https://go.dev/
`))

	out := e.mustRun("import", dir.Join("bookmarks.yaml"))
	assert.Check(t, is.Contains(out, "Imported 2 bookmark(s) in 1 category"))
	assert.DeepEqual(t, titles(e.bookmarks().Bookmarks()), []string{"Github", "Go"})

	path := filepath.Join(dir.Path(), "out", "export.json")
	e.mustRun("export", path, "--format", "json")

	data, err := os.ReadFile(path)
	assert.NilError(t, err)
	snap, err := model.DecodeSnapshot(data)
	assert.NilError(t, err)
	assert.DeepEqual(t, titles(snap.Bookmarks), []string{"Github", "Go"})

	out = e.mustRun("export", "-")
	assert.Check(t, is.Contains(out, "<!DOCTYPE NETSCAPE-Bookmark-file-1>"))
	assert.Check(t, is.Contains(out, "https://go.dev/"))
}

func TestImport_UnsupportedType(t *testing.T) {
	e := newEnv(t)
	dir := fs.NewDir(t, "import", fs.WithFile("bookmarks.txt", "nope"))
	_, err := e.run("import", dir.Join("bookmarks.txt"))
	assert.ErrorContains(t, err, "unsupported file type")
}

func TestSync_NotConfigured(t *testing.T) {
	e := newEnv(t)
	_, err := e.run("sync", "upload")
	assert.ErrorContains(t, err, "sync is not configured")
}

func TestSearch_ListAndWeb(t *testing.T) {
	e := newEnv(t)

	out := e.mustRun("search", "--list", "gmail")
	assert.Check(t, is.Contains(out, "Gmail"))
	assert.Check(t, !strings.Contains(out, "YouTube"))

	out = e.mustRun("search", "--no-open", "--engine", "github", "bubble", "tea")
	assert.Equal(t, strings.TrimSpace(out), "https://github.com/search?q=bubble+tea")

	out = e.mustRun("history")
	assert.Check(t, is.Contains(out, "bubble tea"))

	e.mustRun("history", "clear")
	out = e.mustRun("history")
	assert.Check(t, is.Contains(out, "No search history"))
}

func TestSearch_SingleMatchOpensAndCounts(t *testing.T) {
	e := newEnv(t)
	e.mustRun("list")
	before := e.bookmarkByTitle("YouTube").VisitCount

	out := e.mustRun("search", "--no-open", "youtube")
	assert.Equal(t, strings.TrimSpace(out), "https://www.youtube.com/")
	assert.Equal(t, e.bookmarkByTitle("YouTube").VisitCount, before+1)
}

func TestWallpaper_ShowsDefault(t *testing.T) {
	e := newEnv(t)
	out := e.mustRun("wallpaper")
	assert.Equal(t, strings.TrimSpace(out), "/wallpapers/dark-default.jpg")
}

func TestRoot_UnknownStorage(t *testing.T) {
	e := newEnv(t)
	root := cmd.NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--data-dir", e.dataDir, "--storage", "floppy", "list"})
	err := root.ExecuteContext(context.Background())
	assert.ErrorContains(t, err, "floppy")
}

func TestCheck_PrunesDeadLinks(t *testing.T) {
	e := newEnv(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/gone" {
			w.WriteHeader(http.StatusGone)
		}
	}))
	t.Cleanup(srv.Close)

	e.mustRun("import", writeYAML(t, srv.URL))
	e.mustRun("quicklinks", "add", srv.URL+"/gone", "--title", "Old")

	out := e.mustRun("check", "--prune")
	assert.Check(t, is.Contains(out, "dead"))
	assert.Check(t, is.Contains(out, "Pruned 2 dead link(s)"))

	assert.DeepEqual(t, titles(e.bookmarks().Bookmarks()), []string{"Live"})
	assert.Check(t, is.Len(e.quickLinks().QuickLinks(), 0))
	assert.Check(t, is.Len(e.trash().Items(), 1))
}

func writeYAML(t *testing.T, base string) string {
	t.Helper()
	dir := fs.NewDir(t, "check", fs.WithFile("links.yaml", `
- Links:
    - Live:
        - href: `+base+`/live
    - Dead:
        - href: `+base+`/gone
`))
	return dir.Join("links.yaml")
}
