package importer

import (
	"fmt"
	"io"

	"github.com/nikbrunner/tabzero/internal/model"
)

// ErrInvalidSnapshot is returned for JSON whose bookmarks or categories
// are not arrays.
var ErrInvalidSnapshot = model.ErrInvalidSnapshot

// ParseJSON reads a native snapshot ({bookmarks, categories}), such as a
// JSON export or a sync payload.
func ParseJSON(r io.Reader) (model.Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	return model.DecodeSnapshot(data)
}
