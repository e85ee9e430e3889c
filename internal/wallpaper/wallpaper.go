// Package wallpaper switches the dashboard background to a new image
// once it has been fully loaded.
package wallpaper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/nikbrunner/tabzero/internal/logger"
	"github.com/nikbrunner/tabzero/internal/model"
	"github.com/nikbrunner/tabzero/internal/store"
)

// LoadTimeout bounds a single preload.
const LoadTimeout = 15 * time.Second

// maxImageBytes caps how much of a response is read.
const maxImageBytes = 32 << 20

var (
	ErrLoadTimeout = errors.New("image load timeout")
	ErrLoadFailed  = errors.New("image load failed")
	ErrBusy        = errors.New("wallpaper switch already in progress")
)

// Params configures a Loader.
type Params struct {
	// Client defaults to a client that follows at most 10 redirects.
	Client *http.Client
	// Timeout defaults to LoadTimeout.
	Timeout time.Duration
	Logger  logger.Logger
}

// Loader preloads wallpaper images and applies them to settings.
type Loader struct {
	client  *http.Client
	timeout time.Duration
	log     logger.Logger
	busy    atomic.Bool
}

// NewLoader creates a Loader.
func NewLoader(p Params) *Loader {
	client := p.Client
	if client == nil {
		client = &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		}
	}
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = LoadTimeout
	}
	log := p.Logger
	if log == nil {
		log = logger.NewNop()
	}
	return &Loader{client: client, timeout: timeout, log: log}
}

// Preload downloads the image at url completely. It fails with
// ErrLoadTimeout when the load outlives the timeout and with
// ErrLoadFailed when the response is not an image.
func (l *Loader) Preload(ctx context.Context, url string) error {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return l.classify(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s", ErrLoadFailed, http.StatusText(resp.StatusCode))
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		return fmt.Errorf("%w: content type %q", ErrLoadFailed, ct)
	}

	if _, err := io.Copy(io.Discard, io.LimitReader(resp.Body, maxImageBytes)); err != nil {
		return l.classify(ctx, err)
	}
	return nil
}

func (l *Loader) classify(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ErrLoadTimeout
	}
	return fmt.Errorf("%w: %v", ErrLoadFailed, err)
}

// Switch preloads url and, only if that succeeds, makes it the random
// wallpaper for the current theme. Overlapping calls fail with ErrBusy.
func (l *Loader) Switch(ctx context.Context, settings *store.SettingsStore, url string) error {
	if !l.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer l.busy.Store(false)

	if err := l.Preload(ctx, url); err != nil {
		l.log.Warn("wallpaper not applied", logger.String("url", url), logger.Error(err))
		return err
	}

	settings.Update(func(s *model.Settings) { Apply(s, url) })
	l.log.Info("wallpaper applied", logger.String("url", url))
	return nil
}

// Apply sets url as the random wallpaper of the active theme.
func Apply(s *model.Settings, url string) {
	if s.ThemeMode == model.ThemeLight {
		s.RandomWallpaperImageLight = url
		return
	}
	s.RandomWallpaperImage = url
}
