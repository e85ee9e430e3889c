// Package importer turns bookmark files from other tools into a
// model.Snapshot that replaces the dashboard's bookmarks.
package importer

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nikbrunner/tabzero/internal/model"
	"golang.org/x/net/html"
)

// ErrNoBookmarkList means the HTML has no <DL> bookmark list.
var ErrNoBookmarkList = errors.New("no bookmark list (DL) found")

const (
	// firstCategoryOrder keeps imported categories after hand-made ones.
	firstCategoryOrder = 100
	// ImportedColor is the tile color of imported bookmarks.
	ImportedColor = "#808080"
	// untitledFolder names folders whose header is empty.
	untitledFolder = "Imported Folder"
)

// ParseHTML parses a Netscape bookmark file (what browsers export).
//
// Every folder becomes a category named after the folder itself, nested
// folders included. Links outside any folder land in "Uncategorized".
// Folders without links produce no category.
func ParseHTML(r io.Reader) (model.Snapshot, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return model.Snapshot{}, err
	}

	top := findElement(doc, "dl")
	if top == nil {
		return model.Snapshot{}, ErrNoBookmarkList
	}

	b := newSnapshotBuilder(time.Now())

	// Stack of folder names, empty = outside any folder.
	var folderStack []string
	var pendingFolder *string // folder waiting to be pushed on next DL

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				name := getTextContent(n)
				if name == "" {
					name = untitledFolder
				}
				pendingFolder = &name
				return

			case "a":
				href := getAttr(n, "href")
				if href == "" {
					return
				}

				title := getTextContent(n)
				if title == "" {
					title = href
				}

				category := model.UncategorizedName
				if len(folderStack) > 0 {
					category = folderStack[len(folderStack)-1]
				}

				b.add(category, title, href, getAttr(n, "icon_uri"), parseAddDate(getAttr(n, "add_date")))
				return

			case "dl":
				pushed := false
				if pendingFolder != nil {
					folderStack = append(folderStack, *pendingFolder)
					pendingFolder = nil
					pushed = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushed {
					folderStack = folderStack[:len(folderStack)-1]
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(top)
	return b.snapshot(), nil
}

// parseAddDate reads an ADD_DATE attribute in unix seconds.
func parseAddDate(v string) *time.Time {
	if v == "" {
		return nil
	}
	ts, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil
	}
	t := time.Unix(ts, 0)
	return &t
}

// findElement returns the first element named tag, depth first.
func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, tag) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, key) {
			return attr.Val
		}
	}
	return ""
}
