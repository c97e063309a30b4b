package store

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "settings.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteDefaults(t *testing.T) {
	s := openTestDB(t)

	best, err := s.BestScore()
	if err != nil {
		t.Fatalf("BestScore: %v", err)
	}
	if best != 0 {
		t.Errorf("best = %d on fresh db, want 0", best)
	}

	muted, err := s.Muted()
	if err != nil {
		t.Fatalf("Muted: %v", err)
	}
	if muted {
		t.Error("muted = true on fresh db, want false")
	}
}

func TestSQLitePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.db")

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := s.SetBestScore(57); err != nil {
		t.Fatalf("SetBestScore: %v", err)
	}
	if err := s.SetMuted(true); err != nil {
		t.Fatalf("SetMuted: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	if best, _ := s.BestScore(); best != 57 {
		t.Errorf("best = %d after reopen, want 57", best)
	}
	if muted, _ := s.Muted(); !muted {
		t.Error("muted lost across reopen")
	}
}

func TestSQLiteOverwritesBestScore(t *testing.T) {
	s := openTestDB(t)
	for _, score := range []int{10, 25, 3} {
		if err := s.SetBestScore(score); err != nil {
			t.Fatalf("SetBestScore(%d): %v", score, err)
		}
		if best, _ := s.BestScore(); best != score {
			t.Fatalf("best = %d, want %d", best, score)
		}
	}
}

func TestSQLiteMalformedValuesFallBackToDefaults(t *testing.T) {
	s := openTestDB(t)

	for _, value := range []string{"banana", "", "-4", "1.5"} {
		if err := s.set(keyBestScore, value); err != nil {
			t.Fatalf("set: %v", err)
		}
		best, err := s.BestScore()
		if err != nil {
			t.Fatalf("BestScore with value %q: %v", value, err)
		}
		if best != 0 {
			t.Errorf("best = %d for stored %q, want 0", best, value)
		}
	}

	// Anything but "1" means unmuted.
	for _, value := range []string{"0", "true", "yes", ""} {
		if err := s.set(keyMuted, value); err != nil {
			t.Fatalf("set: %v", err)
		}
		muted, err := s.Muted()
		if err != nil {
			t.Fatalf("Muted with value %q: %v", value, err)
		}
		if muted {
			t.Errorf("muted = true for stored %q, want false", value)
		}
	}
	if err := s.set(keyMuted, "1"); err != nil {
		t.Fatal(err)
	}
	if muted, _ := s.Muted(); !muted {
		t.Error(`muted = false for stored "1", want true`)
	}
}

func TestMemoryZeroValue(t *testing.T) {
	var m Memory
	if best, _ := m.BestScore(); best != 0 {
		t.Errorf("best = %d, want 0", best)
	}
	if err := m.SetBestScore(9); err != nil {
		t.Fatal(err)
	}
	if err := m.SetMuted(true); err != nil {
		t.Fatal(err)
	}
	if best, _ := m.BestScore(); best != 9 {
		t.Errorf("best = %d, want 9", best)
	}
	if muted, _ := m.Muted(); !muted {
		t.Error("muted not stored")
	}
}
