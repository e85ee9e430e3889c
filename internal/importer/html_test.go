package importer_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nikbrunner/tabzero/internal/importer"
	"github.com/nikbrunner/tabzero/internal/model"
)

// categoryOf returns the name of the category a bookmark title landed in.
func categoryOf(t *testing.T, snap model.Snapshot, title string) string {
	t.Helper()
	for _, b := range snap.Bookmarks {
		if b.Title != title {
			continue
		}
		for _, c := range snap.Categories {
			if c.ID == b.CategoryID {
				return c.Name
			}
		}
		t.Fatalf("bookmark %q has dangling category %q", title, b.CategoryID)
	}
	t.Fatalf("bookmark %q not found", title)
	return ""
}

func TestParseHTML_SingleBookmark(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
    <DT><A HREF="https://example.com" ADD_DATE="1234567890">Example Site</A>
</DL><p>`

	snap, err := importer.ParseHTML(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(snap.Bookmarks) != 1 {
		t.Fatalf("expected 1 bookmark, got %d", len(snap.Bookmarks))
	}

	b := snap.Bookmarks[0]
	if b.Title != "Example Site" {
		t.Errorf("expected title 'Example Site', got %q", b.Title)
	}
	if b.URL != "https://example.com" {
		t.Errorf("expected URL 'https://example.com', got %q", b.URL)
	}
	if b.ID == "" {
		t.Error("expected non-empty ID")
	}
	if b.Color != importer.ImportedColor {
		t.Errorf("expected imported color, got %q", b.Color)
	}
	if got := categoryOf(t, snap, "Example Site"); got != model.UncategorizedName {
		t.Errorf("expected root link in %q, got %q", model.UncategorizedName, got)
	}
}

func TestParseHTML_NestedFolders(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><H3 ADD_DATE="1234567890">Development</H3>
    <DL><p>
        <DT><H3 ADD_DATE="1234567890">React</H3>
        <DL><p>
            <DT><A HREF="https://react.dev" ADD_DATE="1234567890">React Docs</A>
        </DL><p>
        <DT><A HREF="https://github.com" ADD_DATE="1234567890">GitHub</A>
    </DL><p>
    <DT><A HREF="https://google.com" ADD_DATE="1234567890">Google</A>
</DL><p>`

	snap, err := importer.ParseHTML(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		title    string
		category string
	}{
		{"React Docs", "React"},
		{"GitHub", "Development"},
		{"Google", model.UncategorizedName},
	}
	for _, tt := range tests {
		if got := categoryOf(t, snap, tt.title); got != tt.category {
			t.Errorf("%s: expected category %q, got %q", tt.title, tt.category, got)
		}
	}

	// Categories in order of first link, numbered from 100.
	wantNames := []string{"React", "Development", model.UncategorizedName}
	if len(snap.Categories) != len(wantNames) {
		t.Fatalf("expected %d categories, got %d", len(wantNames), len(snap.Categories))
	}
	for i, c := range snap.Categories {
		if c.Name != wantNames[i] {
			t.Errorf("category %d: expected %q, got %q", i, wantNames[i], c.Name)
		}
		if c.Order != 100+i {
			t.Errorf("category %q: expected order %d, got %d", c.Name, 100+i, c.Order)
		}
	}
}

func TestParseHTML_EmptyFolderHasNoCategory(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><H3>Empty</H3>
    <DL><p>
    </DL><p>
</DL><p>`

	snap, err := importer.ParseHTML(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(snap.Categories) != 0 || len(snap.Bookmarks) != 0 {
		t.Errorf("expected empty snapshot, got %d categories, %d bookmarks",
			len(snap.Categories), len(snap.Bookmarks))
	}
}

func TestParseHTML_MissingList(t *testing.T) {
	html := `<!DOCTYPE html><html><body><p>Not a bookmark file</p></body></html>`

	_, err := importer.ParseHTML(strings.NewReader(html))
	if !errors.Is(err, importer.ErrNoBookmarkList) {
		t.Errorf("expected ErrNoBookmarkList, got %v", err)
	}
}

func TestParseHTML_Timestamps(t *testing.T) {
	// 1234567890 = Fri Feb 13 2009 23:31:30 UTC
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><A HREF="https://example.com" ADD_DATE="1234567890">Test</A>
    <DT><A HREF="https://example.org" ADD_DATE="garbage">No date</A>
</DL><p>`

	before := time.Now()
	snap, err := importer.ParseHTML(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(snap.Bookmarks) != 2 {
		t.Fatalf("expected 2 bookmarks, got %d", len(snap.Bookmarks))
	}

	expected := model.NewTimestamp(time.Unix(1234567890, 0))
	if snap.Bookmarks[0].CreatedAt != expected {
		t.Errorf("expected CreatedAt %v, got %v", expected, snap.Bookmarks[0].CreatedAt)
	}
	if snap.Bookmarks[1].CreatedAt < model.NewTimestamp(before) {
		t.Errorf("expected import time for unparseable date, got %v", snap.Bookmarks[1].CreatedAt)
	}
}

func TestParseHTML_MissingHref(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><A ADD_DATE="1234567890">No URL</A>
    <DT><A HREF="https://valid.com" ADD_DATE="1234567890"></A>
</DL><p>`

	snap, err := importer.ParseHTML(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Should skip bookmark without HREF, keep valid one
	if len(snap.Bookmarks) != 1 {
		t.Fatalf("expected 1 bookmark (skip missing href), got %d", len(snap.Bookmarks))
	}

	if snap.Bookmarks[0].Title != "https://valid.com" {
		t.Errorf("expected URL as fallback title, got %q", snap.Bookmarks[0].Title)
	}
}
