package history

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreRecordAndRecent(t *testing.T) {
	s := openTestStore(t)

	id1, err := s.Record(111, true, 50*time.Millisecond, 3)
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if id1 == "" {
		t.Fatal("expected a non-empty run id")
	}

	id2, err := s.Record(222, false, 10*time.Millisecond, 0)
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if id1 == id2 {
		t.Fatal("expected distinct run ids")
	}

	runs, err := s.Recent(10)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Recent returned %d runs, want 2", len(runs))
	}
	// newest first
	if runs[0].Seed != 222 || runs[1].Seed != 111 {
		t.Errorf("seeds in order = [%d, %d], want [222, 111]", runs[0].Seed, runs[1].Seed)
	}
	if runs[0].Accepted {
		t.Error("run for seed 222 should be recorded as not accepted")
	}
	if !runs[1].Accepted {
		t.Error("run for seed 111 should be recorded as accepted")
	}
	if runs[1].BacktrackCount != 3 {
		t.Errorf("BacktrackCount = %d, want 3", runs[1].BacktrackCount)
	}
}

func TestStoreRecentLimitsResults(t *testing.T) {
	s := openTestStore(t)
	for i := 0; i < 5; i++ {
		if _, err := s.Record(uint32(i), true, time.Millisecond, 0); err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
	}
	runs, err := s.Recent(2)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Recent(2) returned %d runs, want 2", len(runs))
	}
}

func TestAcceptedRate(t *testing.T) {
	runs := []Run{{Accepted: true}, {Accepted: true}, {Accepted: false}, {Accepted: true}}
	if got := AcceptedRate(runs); got != 0.75 {
		t.Errorf("AcceptedRate = %v, want 0.75", got)
	}
	if got := AcceptedRate(nil); got != 0 {
		t.Errorf("AcceptedRate(nil) = %v, want 0", got)
	}
}
