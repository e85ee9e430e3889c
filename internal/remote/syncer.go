package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/nikbrunner/tabzero/internal/logger"
	"github.com/nikbrunner/tabzero/internal/model"
)

// Local is the side of the bookmark store a sync needs.
type Local interface {
	Snapshot() model.Snapshot
	ReplaceAll(model.Snapshot)
}

// Params configures a Syncer.
type Params struct {
	Blobs  BlobStore
	Local  Local
	Device string
	Logger logger.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Result summarises a finished upload or download.
type Result struct {
	Bookmarks  int
	Categories int
	UpdatedAt  model.Timestamp
	Device     string
}

// Syncer uploads and downloads the bookmarks snapshot. Only one
// operation runs at a time; overlapping calls fail with ErrSyncInProgress.
type Syncer struct {
	blobs  BlobStore
	local  Local
	device string
	log    logger.Logger
	now    func() time.Time
	busy   atomic.Bool
}

// NewSyncer creates a Syncer.
func NewSyncer(p Params) *Syncer {
	device := p.Device
	if device == "" {
		device = DefaultDevice
	}
	log := p.Logger
	if log == nil {
		log = logger.NewNop()
	}
	now := p.Now
	if now == nil {
		now = time.Now
	}
	return &Syncer{blobs: p.Blobs, local: p.Local, device: device, log: log, now: now}
}

// Syncing reports whether an upload or download is running.
func (s *Syncer) Syncing() bool {
	return s.busy.Load()
}

func (s *Syncer) acquire() error {
	if !s.busy.CompareAndSwap(false, true) {
		return ErrSyncInProgress
	}
	return nil
}

// Upload overwrites the remote blob with the local snapshot.
func (s *Syncer) Upload(ctx context.Context) (Result, error) {
	if err := s.acquire(); err != nil {
		return Result{}, err
	}
	defer s.busy.Store(false)

	snap := s.local.Snapshot()
	payload := Payload{
		Bookmarks:  snap.Bookmarks,
		Categories: snap.Categories,
		Version:    PayloadVersion,
		UpdatedAt:  model.NewTimestamp(s.now()),
		Device:     s.device,
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return Result{}, fmt.Errorf("encode payload: %w", err)
	}

	if err := s.blobs.Put(ctx, BlobName, data); err != nil {
		s.log.Error("upload failed", logger.String("blob", BlobName), logger.Error(err))
		return Result{}, fmt.Errorf("upload %s: %w", BlobName, err)
	}

	s.log.Info("uploaded snapshot",
		logger.String("blob", BlobName),
		logger.Int("bookmarks", len(snap.Bookmarks)),
		logger.Int("categories", len(snap.Categories)),
	)
	return Result{
		Bookmarks:  len(snap.Bookmarks),
		Categories: len(snap.Categories),
		UpdatedAt:  payload.UpdatedAt,
		Device:     payload.Device,
	}, nil
}

// Download fetches the remote blob and replaces the local snapshot with
// it. Local state is untouched unless the whole download succeeds.
func (s *Syncer) Download(ctx context.Context) (Result, error) {
	if err := s.acquire(); err != nil {
		return Result{}, err
	}
	defer s.busy.Store(false)

	exists, err := s.blobs.Exists(ctx, BlobName)
	if err != nil {
		s.log.Error("download failed", logger.String("blob", BlobName), logger.Error(err))
		return Result{}, fmt.Errorf("check %s: %w", BlobName, err)
	}
	if !exists {
		return Result{}, ErrRemoteNotFound
	}

	data, err := s.blobs.Get(ctx, BlobName)
	if err != nil {
		s.log.Error("download failed", logger.String("blob", BlobName), logger.Error(err))
		return Result{}, fmt.Errorf("download %s: %w", BlobName, err)
	}

	snap, err := model.DecodeSnapshot(data)
	if err != nil {
		s.log.Warn("remote snapshot rejected", logger.String("blob", BlobName), logger.Error(err))
		return Result{}, err
	}

	// Metadata is informational; older payloads may lack it.
	var meta struct {
		UpdatedAt model.Timestamp `json:"updatedAt"`
		Device    string          `json:"device"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		s.log.Debug("ignoring unreadable snapshot metadata", logger.String("blob", BlobName), logger.Error(err))
		meta.UpdatedAt, meta.Device = 0, ""
	}

	s.local.ReplaceAll(snap)

	s.log.Info("restored snapshot",
		logger.String("blob", BlobName),
		logger.String("device", meta.Device),
		logger.Int("bookmarks", len(snap.Bookmarks)),
	)
	return Result{
		Bookmarks:  len(snap.Bookmarks),
		Categories: len(snap.Categories),
		UpdatedAt:  meta.UpdatedAt,
		Device:     meta.Device,
	}, nil
}
