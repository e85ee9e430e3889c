// Package exporter writes the bookmarks snapshot in formats other tools
// and the importer read back.
package exporter

import (
	"fmt"
	"html"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"

	"github.com/nikbrunner/tabzero/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/tabzero-export-YYYY-MM-DD.<ext>
func DefaultExportPath(ext string) (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("tabzero-export-%s.%s", time.Now().Format("2006-01-02"), ext)
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML exports the snapshot to Netscape bookmark HTML format.
// Each category becomes a folder. Bookmarks whose category is gone are
// written outside any folder.
func ExportHTML(snap model.Snapshot) string {
	var b strings.Builder

	// Header
	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	known := make(map[string]bool, len(snap.Categories))
	for _, c := range snap.Categories {
		if c.IsAll() {
			continue
		}
		known[c.ID] = true

		fmt.Fprintf(&b, "    <DT><H3>%s</H3>\n", html.EscapeString(c.Name))
		b.WriteString("    <DL><p>\n")
		for _, bm := range snap.Bookmarks {
			if bm.CategoryID == c.ID {
				writeBookmark(&b, bm, 2)
			}
		}
		b.WriteString("    </DL><p>\n")
	}

	for _, bm := range snap.Bookmarks {
		if !known[bm.CategoryID] {
			writeBookmark(&b, bm, 1)
		}
	}

	// Footer
	b.WriteString("</DL><p>\n")

	return b.String()
}

func writeBookmark(b *strings.Builder, bm model.Bookmark, indent int) {
	fmt.Fprintf(b,
		"%s<DT><A HREF=\"%s\" ADD_DATE=\"%d\">%s</A>\n",
		strings.Repeat("    ", indent),
		html.EscapeString(bm.URL),
		bm.CreatedAt.Time().Unix(),
		html.EscapeString(bm.Title),
	)
}
