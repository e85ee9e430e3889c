package store

import (
	"slices"

	"github.com/nikbrunner/tabzero/internal/model"
	"github.com/nikbrunner/tabzero/internal/storage"
)

// SettingsStore owns the dashboard settings.
type SettingsStore struct {
	base
	settings model.Settings
}

// NewSettingsStore loads the settings record over the defaults, so
// fields missing from an older record keep their default value.
func NewSettingsStore(p Params) *SettingsStore {
	s := &SettingsStore{base: newBase(storage.SettingsRecord, p)}

	settings := model.DefaultSettings()
	if !s.load(&settings) {
		settings = model.DefaultSettings()
	}
	if settings.EnabledSearchEngines == nil {
		settings.EnabledSearchEngines = model.DefaultSettings().EnabledSearchEngines
	}
	if settings.CustomSearchEngines == nil {
		settings.CustomSearchEngines = []model.SearchEngine{}
	}
	s.settings = settings
	return s
}

// Settings returns a copy of the current settings.
func (s *SettingsStore) Settings() model.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSettings(s.settings)
}

// Update applies fn to a copy of the settings and persists the result.
func (s *SettingsStore) Update(fn func(*model.Settings)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneSettings(s.settings)
	fn(&next)
	s.settings = next
	s.persist(s.settings)
}

// Reset restores the defaults.
func (s *SettingsStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = model.DefaultSettings()
	s.persist(s.settings)
}

func cloneSettings(in model.Settings) model.Settings {
	out := in
	out.EnabledSearchEngines = slices.Clone(in.EnabledSearchEngines)
	out.CustomSearchEngines = slices.Clone(in.CustomSearchEngines)
	return out
}
