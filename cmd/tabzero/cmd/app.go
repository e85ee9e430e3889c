package cmd

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/tabzero/internal/config"
	"github.com/nikbrunner/tabzero/internal/logger"
	"github.com/nikbrunner/tabzero/internal/remote"
	"github.com/nikbrunner/tabzero/internal/storage"
	"github.com/nikbrunner/tabzero/internal/store"
)

var errSyncNotConfigured = errors.New("sync is not configured: set sync.backend to webdav or redis")

// app holds the opened stores for one command run.
type app struct {
	cfg     *config.Config
	log     logger.Logger
	storage storage.Storage

	bookmarks  *store.BookmarkStore
	quickLinks *store.QuickLinkStore
	trash      *store.TrashStore
	settings   *store.SettingsStore
	history    *store.SearchHistoryStore
}

func newApp(cfg *config.Config, log logger.Logger) (*app, error) {
	st, err := storage.Open(cfg.Storage, cfg.DataDir)
	if err != nil {
		return nil, err
	}

	p := store.Params{Storage: st, Logger: log}
	a := &app{
		cfg:        cfg,
		log:        log,
		storage:    st,
		bookmarks:  store.NewBookmarkStore(p),
		quickLinks: store.NewQuickLinkStore(p),
		trash:      store.NewTrashStore(p),
		settings:   store.NewSettingsStore(p),
		history:    store.NewSearchHistoryStore(p),
	}

	// Seed and migrate the way the dashboard does on first paint.
	a.bookmarks.InitializeWithMockData()
	a.quickLinks.InitializeWithMockData()

	log.Debug("opened stores",
		logger.String("storage", cfg.Storage),
		logger.String("dir", cfg.DataDir),
	)
	return a, nil
}

// Close releases the storage backend.
func (a *app) Close() error {
	_ = a.log.Sync()
	if c, ok := a.storage.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// blobStore connects to the configured sync backend.
func (a *app) blobStore(ctx context.Context) (remote.BlobStore, func(), error) {
	switch a.cfg.Sync.Backend {
	case config.SyncWebDAV:
		ws, err := remote.NewWebDAVStore(a.cfg.Sync.WebDAV)
		if err != nil {
			return nil, nil, err
		}
		return ws, func() {}, nil
	case config.SyncRedis:
		rs, err := remote.NewRedisStore(ctx, a.cfg.Sync.Redis)
		if err != nil {
			return nil, nil, err
		}
		return rs, func() { _ = rs.Close() }, nil
	default:
		return nil, nil, errSyncNotConfigured
	}
}

type appKey struct{}

func withApp(ctx context.Context, a *app) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, appKey{}, a)
}

// appFrom returns the app opened by the root command.
func appFrom(cmd *cobra.Command) *app {
	return cmd.Context().Value(appKey{}).(*app)
}
