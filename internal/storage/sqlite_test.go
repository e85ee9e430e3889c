package storage_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/nikbrunner/tabzero/internal/model"
	"github.com/nikbrunner/tabzero/internal/storage"
)

func TestSQLiteStorage_CreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "tabzero.db")

	s, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("failed to create storage with nested dir: %v", err)
	}
	defer s.Close()

	if err := s.Save(storage.SettingsRecord, model.DefaultSettings()); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
}

func TestSQLiteStorage_MigratesToCurrentVersion(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "tabzero.db")

	s, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}

	version, err := s.SchemaVersion()
	if err != nil {
		t.Fatalf("failed to read schema version: %v", err)
	}
	if version != 2 {
		t.Errorf("expected schema version 2, got %d", version)
	}
	s.Close()

	// Reopening must not re-run migrations.
	s, err = storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("failed to reopen storage: %v", err)
	}
	defer s.Close()
}

func TestSQLiteStorage_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "tabzero.db")

	s, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	settings := model.TrashSettings{Enabled: false, RetentionDays: 30}
	if err := s.Save(storage.TrashRecord, settings); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	s.Close()

	s, err = storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("failed to reopen storage: %v", err)
	}
	defer s.Close()

	var loaded model.TrashSettings
	found, err := s.Load(storage.TrashRecord, &loaded)
	if err != nil || !found {
		t.Fatalf("expected record after reopen, found=%v err=%v", found, err)
	}
	if loaded.RetentionDays != 30 || loaded.Enabled {
		t.Errorf("unexpected settings: %+v", loaded)
	}

	updatedAt, err := s.UpdatedAt(storage.TrashRecord)
	if err != nil {
		t.Fatalf("failed to read updated_at: %v", err)
	}
	if time.Since(updatedAt) > time.Minute {
		t.Errorf("expected recent updated_at, got %v", updatedAt)
	}
}
