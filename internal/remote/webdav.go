package remote

import (
	"context"
	"fmt"
	"time"

	"github.com/studio-b12/gowebdav"
)

// WebDAVConfig locates a WebDAV collection.
type WebDAVConfig struct {
	URL      string
	Username string
	Password string
	Timeout  time.Duration
}

// WebDAVStore keeps blobs as files in a WebDAV collection.
type WebDAVStore struct {
	client *gowebdav.Client
}

// NewWebDAVStore creates a store for cfg. No request is made until the
// first operation.
func NewWebDAVStore(cfg WebDAVConfig) (*WebDAVStore, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("webdav: url is required")
	}
	client := gowebdav.NewClient(cfg.URL, cfg.Username, cfg.Password)
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	return &WebDAVStore{client: client}, nil
}

func (w *WebDAVStore) Put(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return w.client.Write("/"+name, data, 0644)
}

func (w *WebDAVStore) Get(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := w.client.Read("/" + name)
	if err != nil {
		if gowebdav.IsErrNotFound(err) {
			return nil, ErrRemoteNotFound
		}
		return nil, err
	}
	return data, nil
}

func (w *WebDAVStore) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if _, err := w.client.Stat("/" + name); err != nil {
		if gowebdav.IsErrNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
