package cmd

import (
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/nikbrunner/tabzero/internal/model"
)

var (
	bold  = color.New(color.Bold)
	faint = color.New(color.Faint)
	green = color.New(color.FgGreen)
	warn  = color.New(color.FgYellow)
)

func newTable(headers ...any) *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	if len(headers) > 0 {
		cells := make([]any, len(headers))
		for i, h := range headers {
			cells[i] = bold.Sprint(h)
		}
		tbl.AddRow(cells...)
	}
	return tbl
}

func printBookmarks(w io.Writer, bookmarks []model.Bookmark, categories []model.Category) {
	if len(bookmarks) == 0 {
		_, _ = fmt.Fprintln(w, faint.Sprint("No bookmarks"))
		return
	}

	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	tbl := newTable("#", "ID", "TITLE", "URL", "CATEGORY", "VISITS")
	for i, b := range bookmarks {
		tbl.AddRow(i+1, b.ID, b.Title, b.URL, names[b.CategoryID], b.VisitCount)
	}
	_, _ = fmt.Fprintln(w, tbl)
}

func printQuickLinks(w io.Writer, links []model.QuickLink) {
	if len(links) == 0 {
		_, _ = fmt.Fprintln(w, faint.Sprint("No quick links"))
		return
	}
	tbl := newTable("#", "ID", "TITLE", "URL")
	for i, l := range links {
		tbl.AddRow(i+1, l.ID, l.Title, l.URL)
	}
	_, _ = fmt.Fprintln(w, tbl)
}

func success(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, green.Sprintf(format, args...))
}

func warning(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, warn.Sprintf(format, args...))
}

// position parses a 1-based list position into an index.
func position(arg string, n int) (int, error) {
	pos, err := strconv.Atoi(arg)
	if err != nil || pos < 1 || pos > n {
		return 0, fmt.Errorf("position %q out of range 1..%d", arg, n)
	}
	return pos - 1, nil
}

// openURL opens a URL in the default browser.
func openURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("cannot open urls on %s", runtime.GOOS)
	}
	return cmd.Start()
}
