package wallpaper_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gotest.tools/v3/assert"

	"github.com/nikbrunner/tabzero/internal/model"
	"github.com/nikbrunner/tabzero/internal/storage"
	"github.com/nikbrunner/tabzero/internal/store"
	"github.com/nikbrunner/tabzero/internal/wallpaper"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ok.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte{0xff, 0xd8, 0xff, 0xd9})
	})
	mux.HandleFunc("/page", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html></html>"))
	})
	mux.HandleFunc("/slow.jpg", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newSettings() *store.SettingsStore {
	return store.NewSettingsStore(store.Params{Storage: storage.NewMemoryStorage()})
}

func TestPreload(t *testing.T) {
	srv := newServer(t)
	l := wallpaper.NewLoader(wallpaper.Params{Timeout: 200 * time.Millisecond})

	tests := []struct {
		name string
		path string
		want error
	}{
		{"image", "/ok.jpg", nil},
		{"not an image", "/page", wallpaper.ErrLoadFailed},
		{"missing", "/missing.jpg", wallpaper.ErrLoadFailed},
		{"too slow", "/slow.jpg", wallpaper.ErrLoadTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := l.Preload(context.Background(), srv.URL+tt.path)
			if tt.want == nil {
				assert.NilError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPreload_InvalidURL(t *testing.T) {
	err := wallpaper.NewLoader(wallpaper.Params{}).Preload(context.Background(), "://bad")
	assert.ErrorIs(t, err, wallpaper.ErrLoadFailed)
}

func TestSwitch_AppliesOnlyOnSuccess(t *testing.T) {
	srv := newServer(t)
	l := wallpaper.NewLoader(wallpaper.Params{Timeout: 200 * time.Millisecond})
	settings := newSettings()

	err := l.Switch(context.Background(), settings, srv.URL+"/page")
	assert.ErrorIs(t, err, wallpaper.ErrLoadFailed)
	assert.Equal(t, settings.Settings().RandomWallpaperImage, "")

	assert.NilError(t, l.Switch(context.Background(), settings, srv.URL+"/ok.jpg"))
	assert.Equal(t, settings.Settings().RandomWallpaperImage, srv.URL+"/ok.jpg")
	assert.Equal(t, settings.Settings().ActiveWallpaper(), srv.URL+"/ok.jpg")
}

func TestSwitch_RejectsOverlap(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		w.Header().Set("Content-Type", "image/png")
	}))
	defer srv.Close()

	l := wallpaper.NewLoader(wallpaper.Params{})
	settings := newSettings()

	done := make(chan error, 1)
	go func() { done <- l.Switch(context.Background(), settings, srv.URL) }()
	<-entered

	assert.ErrorIs(t, l.Switch(context.Background(), settings, srv.URL), wallpaper.ErrBusy)

	close(release)
	assert.NilError(t, <-done)
}

func TestApply_FollowsTheme(t *testing.T) {
	s := model.DefaultSettings()
	wallpaper.Apply(&s, "dark.jpg")
	assert.Equal(t, s.RandomWallpaperImage, "dark.jpg")

	s.ThemeMode = model.ThemeLight
	wallpaper.Apply(&s, "light.jpg")
	assert.Equal(t, s.RandomWallpaperImageLight, "light.jpg")
	assert.Equal(t, s.RandomWallpaperImage, "dark.jpg")
	assert.Equal(t, s.ActiveWallpaper(), "light.jpg")
}
