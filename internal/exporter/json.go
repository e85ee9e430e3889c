package exporter

import (
	"encoding/json"
	"io"

	"github.com/nikbrunner/tabzero/internal/model"
)

// ExportJSON writes the snapshot as indented JSON that ParseJSON and the
// sync download both accept.
func ExportJSON(w io.Writer, snap model.Snapshot) error {
	if snap.Bookmarks == nil {
		snap.Bookmarks = []model.Bookmark{}
	}
	if snap.Categories == nil {
		snap.Categories = []model.Category{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}
