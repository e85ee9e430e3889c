// Package remote backs up the bookmarks snapshot to a single named blob
// on a remote store and restores it from there. The last upload wins;
// there is no merging.
package remote

import (
	"context"
	"errors"

	"github.com/nikbrunner/tabzero/internal/model"
)

const (
	// BlobName is the remote file the snapshot lives in.
	BlobName = "TabZero_bookmarks.json"
	// PayloadVersion tags the payload format.
	PayloadVersion = "1.0"
	// DefaultDevice identifies uploads when no device name is configured.
	DefaultDevice = "tabzero-cli"
)

var (
	ErrSyncInProgress  = errors.New("sync already in progress")
	ErrRemoteNotFound  = errors.New("no backup found on remote")
	ErrInvalidSnapshot = model.ErrInvalidSnapshot
)

// BlobStore is a remote key/value store of whole files.
type BlobStore interface {
	// Put overwrites the blob.
	Put(ctx context.Context, name string, data []byte) error
	// Get returns the blob, or ErrRemoteNotFound.
	Get(ctx context.Context, name string) ([]byte, error)
	// Exists reports whether the blob is present.
	Exists(ctx context.Context, name string) (bool, error)
}

// Payload is the uploaded document.
type Payload struct {
	Bookmarks  []model.Bookmark `json:"bookmarks"`
	Categories []model.Category `json:"categories"`
	Version    string           `json:"version"`
	UpdatedAt  model.Timestamp  `json:"updatedAt"`
	Device     string           `json:"device"`
}
