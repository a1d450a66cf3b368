package store

import (
	"testing"
	"time"

	"github.com/gainerwatch/backend/internal/models"
)

func snap(symbol string, price float64, ts time.Time) models.Snapshot {
	return models.Snapshot{
		Symbol:    symbol,
		Name:      symbol + " Inc.",
		Price:     price,
		Timestamp: ts,
	}
}

func TestRecordKeepsAscendingOrder(t *testing.T) {
	s := NewHistoryStore(0)
	base := time.Now()

	s.Record(snap("ABC", 100, base))
	s.Record(snap("ABC", 105, base.Add(time.Hour)))
	s.Record(snap("ABC", 110, base.Add(2*time.Hour)))

	history := s.HistoryFor("ABC")
	if len(history) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(history))
	}
	for i := 1; i < len(history); i++ {
		if history[i].Timestamp.Before(history[i-1].Timestamp) {
			t.Fatalf("history not ascending at index %d", i)
		}
	}
}

func TestRecordDropsInvalidSnapshots(t *testing.T) {
	s := NewHistoryStore(0)
	now := time.Now()

	s.Record(snap("", 100, now))
	s.Record(snap("ZERO", 0, now))
	s.Record(snap("NEG", -5, now))

	if got := s.Len(); got != 0 {
		t.Fatalf("expected no symbols tracked, got %d", got)
	}
}

func TestRecordAllowsDuplicateTimestamps(t *testing.T) {
	s := NewHistoryStore(0)
	now := time.Now()

	s.Record(snap("ABC", 100, now))
	s.Record(snap("ABC", 100, now))

	if got := len(s.HistoryFor("ABC")); got != 2 {
		t.Fatalf("expected 2 entries for duplicate captures, got %d", got)
	}
}

func TestPruneDropsEntriesAtOrPastRetention(t *testing.T) {
	s := NewHistoryStore(7 * 24 * time.Hour)
	now := time.Now()

	s.Record(snap("OLD", 50, now.Add(-8*24*time.Hour)))
	s.Record(snap("EDGE", 60, now.Add(-7*24*time.Hour))) // exactly at the boundary
	s.Record(snap("KEEP", 70, now.Add(-6*24*time.Hour)))

	s.Prune(now)

	if got := len(s.HistoryFor("OLD")); got != 0 {
		t.Fatalf("8-day-old entry should be pruned, got %d entries", got)
	}
	if got := len(s.HistoryFor("EDGE")); got != 0 {
		t.Fatalf("entry exactly at the retention boundary should be pruned, got %d entries", got)
	}
	if got := len(s.HistoryFor("KEEP")); got != 1 {
		t.Fatalf("6-day-old entry should survive, got %d entries", got)
	}
}

func TestIngestRecordsBatchAndPrunes(t *testing.T) {
	s := NewHistoryStore(7 * 24 * time.Hour)
	now := time.Now()

	s.Record(snap("ABC", 90, now.Add(-8*24*time.Hour)))

	s.Ingest([]models.Snapshot{
		snap("ABC", 100, now),
		snap("DEF", 20, now),
		{Symbol: "", Price: 10, Timestamp: now}, // dropped
	}, now)

	abc := s.HistoryFor("ABC")
	if len(abc) != 1 || abc[0].Price != 100 {
		t.Fatalf("expected only the fresh ABC entry after ingest, got %+v", abc)
	}
	if got := len(s.HistoryFor("DEF")); got != 1 {
		t.Fatalf("expected DEF to be recorded, got %d entries", got)
	}
}

func TestHistoryForUnknownSymbol(t *testing.T) {
	s := NewHistoryStore(0)
	history := s.HistoryFor("NOPE")
	if history == nil || len(history) != 0 {
		t.Fatalf("expected empty non-nil history, got %v", history)
	}
}

func TestEntriesPreserveInsertionOrder(t *testing.T) {
	s := NewHistoryStore(0)
	now := time.Now()

	for _, sym := range []string{"ZZZ", "AAA", "MMM"} {
		s.Record(snap(sym, 10, now))
	}
	// Re-recording must not change first-seen order
	s.Record(snap("AAA", 11, now.Add(time.Minute)))

	entries := s.Entries()
	want := []string{"ZZZ", "AAA", "MMM"}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, e := range entries {
		if e.Symbol != want[i] {
			t.Fatalf("entry %d: expected %s, got %s", i, want[i], e.Symbol)
		}
	}
}

func TestEntriesSkipFullyPrunedSymbols(t *testing.T) {
	s := NewHistoryStore(7 * 24 * time.Hour)
	now := time.Now()

	s.Record(snap("GONE", 10, now.Add(-9*24*time.Hour)))
	s.Record(snap("HERE", 20, now))
	s.Prune(now)

	entries := s.Entries()
	if len(entries) != 1 || entries[0].Symbol != "HERE" {
		t.Fatalf("expected only HERE to remain, got %+v", entries)
	}
}
