package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/desertthunder/scx/internal/shared"
)

// exercisePreferenceStore runs the behavior every backend shares.
func exercisePreferenceStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("Default When Missing", func(t *testing.T) {
		v, err := s.GetPreference(ctx, "alice", "missing", "fallback")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if v != "fallback" {
			t.Errorf("expected fallback, got %q", v)
		}
	})

	t.Run("Set and Get", func(t *testing.T) {
		if err := s.SetPreference(ctx, "alice", "soundcloud_accesstoken", "tok"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		v, err := s.GetPreference(ctx, "alice", "soundcloud_accesstoken", "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if v != "tok" {
			t.Errorf("expected tok, got %q", v)
		}
	})

	t.Run("Empty Value Overrides Default", func(t *testing.T) {
		if err := s.SetPreference(ctx, "alice", "soundcloud_accesstoken", ""); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		v, _ := s.GetPreference(ctx, "alice", "soundcloud_accesstoken", "fallback")
		if v != "" {
			t.Errorf("expected empty value, got %q", v)
		}
	})

	t.Run("Scoped Per User", func(t *testing.T) {
		s.SetPreference(ctx, "bob", "k", "b")
		v, _ := s.GetPreference(ctx, "carol", "k", "none")
		if v != "none" {
			t.Errorf("expected other users unaffected, got %q", v)
		}
	})

	t.Run("Missing User", func(t *testing.T) {
		if err := s.SetPreference(ctx, "", "k", "v"); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestMemoryStore(t *testing.T) {
	exercisePreferenceStore(t, NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	t.Run("Open", func(t *testing.T) {
		s, err := OpenSQLiteStore(shared.DatabaseConfig{
			Path:         filepath.Join(t.TempDir(), "data", "scx.db"),
			MaxOpenConns: 1,
			MaxIdleConns: 1,
		})
		if err != nil {
			t.Fatalf("failed to open store: %v", err)
		}
		defer s.Close()

		exercisePreferenceStore(t, s)
	})

	t.Run("Shared Database Stays Open", func(t *testing.T) {
		db, err := shared.OpenDatabase(shared.DatabaseConfig{Path: ":memory:", MaxOpenConns: 1, MaxIdleConns: 1})
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		s := NewSQLiteStore(db)
		if err := s.Close(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := db.Ping(); err != nil {
			t.Errorf("expected database to remain open, got %v", err)
		}
	})

	t.Run("Query Failure", func(t *testing.T) {
		db, err := shared.OpenDatabase(shared.DatabaseConfig{Path: ":memory:", MaxOpenConns: 1, MaxIdleConns: 1})
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		s := NewSQLiteStore(db)
		db.Close()

		if _, err := s.GetPreference(context.Background(), "alice", "k", "def"); err == nil {
			t.Error("expected error from closed database")
		}
	})
}
