package store

import (
	"github.com/nikbrunner/tabzero/internal/logger"
	"github.com/nikbrunner/tabzero/internal/model"
	"github.com/nikbrunner/tabzero/internal/storage"
)

type quickLinksRecord struct {
	QuickLinks      []model.QuickLink `json:"quickLinks"`
	IsInitialized   bool              `json:"isInitialized"`
	MockDataVersion int               `json:"mockDataVersion"`
}

// QuickLinkStore owns the quick link strip.
type QuickLinkStore struct {
	base
	rec quickLinksRecord
}

// NewQuickLinkStore loads the quick links record from p.Storage.
func NewQuickLinkStore(p Params) *QuickLinkStore {
	s := &QuickLinkStore{base: newBase(storage.QuickLinksRecord, p)}

	rec := quickLinksRecord{MockDataVersion: latestSeed(quickLinkSeeds)}
	if !s.load(&rec) {
		rec = quickLinksRecord{MockDataVersion: latestSeed(quickLinkSeeds)}
	}
	if rec.QuickLinks == nil {
		rec.QuickLinks = []model.QuickLink{}
	}
	s.rec = rec
	return s
}

// AddQuickLink appends l.
func (s *QuickLinkStore) AddQuickLink(l model.QuickLink) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rec.QuickLinks = append(s.rec.QuickLinks, l)
	s.persist(s.rec)
}

// UpdateQuickLink merges patch into the link with the given id.
func (s *QuickLinkStore) UpdateQuickLink(id string, patch model.QuickLinkPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.rec.QuickLinks, id, quickLinkID)
	if i < 0 {
		return
	}
	patch.Apply(&s.rec.QuickLinks[i])
	s.persist(s.rec)
}

// DeleteQuickLink removes the link with the given id.
func (s *QuickLinkStore) DeleteQuickLink(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.rec.QuickLinks, id, quickLinkID)
	if i < 0 {
		return
	}
	s.rec.QuickLinks = append(s.rec.QuickLinks[:i:i], s.rec.QuickLinks[i+1:]...)
	s.persist(s.rec)
}

// ReorderQuickLinks replaces the list with links as given.
func (s *QuickLinkStore) ReorderQuickLinks(links []model.QuickLink) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rec.QuickLinks = append([]model.QuickLink{}, links...)
	s.persist(s.rec)
}

// InitializeWithMockData follows the same seed policy as the bookmark
// store, against its own version counter.
func (s *QuickLinkStore) InitializeWithMockData() {
	s.mu.Lock()
	defer s.mu.Unlock()

	fresh := !s.rec.IsInitialized && len(s.rec.QuickLinks) == 0
	steps := pendingSeeds(quickLinkSeeds, s.rec.MockDataVersion, fresh)
	if len(steps) == 0 {
		return
	}

	now := s.now()
	for _, step := range steps {
		step.apply(&s.rec, now)
	}
	s.rec.IsInitialized = true
	s.rec.MockDataVersion = latestSeed(quickLinkSeeds)

	s.log.Info("seeded sample quick links", logger.Int("version", s.rec.MockDataVersion))
	s.persist(s.rec)
}

// QuickLinks returns a copy of the links in stored order.
func (s *QuickLinkStore) QuickLinks() []model.QuickLink {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.QuickLink{}, s.rec.QuickLinks...)
}

// QuickLinkByID finds a link by ID.
func (s *QuickLinkStore) QuickLinkByID(id string) (model.QuickLink, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := indexOf(s.rec.QuickLinks, id, quickLinkID)
	if i < 0 {
		return model.QuickLink{}, false
	}
	return s.rec.QuickLinks[i], true
}

// HasURL reports whether a link with exactly this URL exists.
func (s *QuickLinkStore) HasURL(url string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, l := range s.rec.QuickLinks {
		if l.URL == url {
			return true
		}
	}
	return false
}
