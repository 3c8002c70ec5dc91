package game

import (
	"path/filepath"
	"testing"
)

func TestRunStore_SaveAndQueryRoundTrip(t *testing.T) {
	store, err := NewRunStore(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	if err := store.SaveRun("mira", "meadow", 900, 15.0, true); err != nil {
		t.Fatalf("save run: %v", err)
	}
	if err := store.SaveRun("toad", "meadow", 300, 5.0, true); err != nil {
		t.Fatalf("save run: %v", err)
	}
	if err := store.SaveRun("mira", "caverns", 120, 2.0, false); err != nil {
		t.Fatalf("save run: %v", err)
	}

	count, err := store.GetTotalRunCount()
	if err != nil {
		t.Fatalf("count runs: %v", err)
	}
	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}

	runs, err := store.GetRecentRuns(10, 0)
	if err != nil {
		t.Fatalf("query runs: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("got %d runs, want 3", len(runs))
	}

	// Completed runs sort first, fastest first.
	if !runs[0].Completed || runs[0].PlayerName != "toad" {
		t.Fatalf("first run = %+v, want toad's completed run", runs[0])
	}
	if runs[2].Completed {
		t.Fatalf("last run = %+v, want the abandoned one", runs[2])
	}
	if runs[0].Ticks != 300 {
		t.Fatalf("ticks = %d, want 300", runs[0].Ticks)
	}
}

func TestRunStore_PaginationLimits(t *testing.T) {
	store, err := NewRunStore(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	for i := 0; i < 5; i++ {
		if err := store.SaveRun("p", "meadow", uint64(i*60), float64(i), true); err != nil {
			t.Fatalf("save run: %v", err)
		}
	}

	page, err := store.GetRecentRuns(2, 2)
	if err != nil {
		t.Fatalf("query page: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("page size = %d, want 2", len(page))
	}
}
