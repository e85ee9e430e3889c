// Package store holds the dashboard's in-memory collections. Each store
// owns one named record and writes it back through storage.Storage on
// every mutation. Mutations never return errors: unknown ids are no-ops
// and persistence failures are logged.
package store

import (
	"sync"
	"time"

	"github.com/nikbrunner/tabzero/internal/logger"
	"github.com/nikbrunner/tabzero/internal/model"
	"github.com/nikbrunner/tabzero/internal/storage"
)

// Params holds the dependencies shared by all stores.
type Params struct {
	Storage storage.Storage
	Logger  logger.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// base carries the persistence plumbing embedded by each store.
type base struct {
	mu     sync.RWMutex
	record string
	st     storage.Storage
	log    logger.Logger
	clock  func() time.Time

	// frozen is set when an unreadable record could not be moved aside.
	// persist then refuses to write over it.
	frozen bool
}

func newBase(record string, p Params) base {
	st := p.Storage
	if st == nil {
		st = storage.NewMemoryStorage()
	}
	log := p.Logger
	if log == nil {
		log = logger.NewNop()
	}
	clock := p.Now
	if clock == nil {
		clock = time.Now
	}
	return base{record: record, st: st, log: log, clock: clock}
}

func (b *base) now() model.Timestamp {
	return model.NewTimestamp(b.clock())
}

// load decodes the record into v and reports whether it existed.
// A broken record is set aside and treated as missing.
func (b *base) load(v any) bool {
	found, err := b.st.Load(b.record, v)
	if err != nil {
		b.log.Warn("failed to load record",
			logger.String("record", b.record),
			logger.Error(err),
		)
		b.setAside()
		return false
	}
	return found
}

// setAside quarantines the stored record so the next persist cannot
// destroy it.
func (b *base) setAside() {
	if err := b.st.Quarantine(b.record); err != nil {
		b.log.Error("failed to set aside unreadable record, changes will not be saved",
			logger.String("record", b.record),
			logger.Error(err),
		)
		b.frozen = true
		return
	}
	b.log.Warn("moved unreadable record aside",
		logger.String("record", b.record),
		logger.String("copy", storage.CorruptName(b.record)),
	)
}

// persist writes v under the store's record. Callers hold the lock.
func (b *base) persist(v any) {
	if b.frozen {
		b.log.Warn("record not saved", logger.String("record", b.record))
		return
	}
	if err := b.st.Save(b.record, v); err != nil {
		b.log.Warn("failed to persist record",
			logger.String("record", b.record),
			logger.Error(err),
		)
	}
}

// indexOf returns the position of the first element whose id matches, or -1.
func indexOf[T any](items []T, id string, idFn func(T) string) int {
	for i := range items {
		if idFn(items[i]) == id {
			return i
		}
	}
	return -1
}

func bookmarkID(b model.Bookmark) string   { return b.ID }
func categoryID(c model.Category) string   { return c.ID }
func quickLinkID(l model.QuickLink) string { return l.ID }
func trashID(t model.TrashItem) string     { return t.ID }
