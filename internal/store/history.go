/**
 * @description
 * In-memory rolling history of stock snapshots, keyed by symbol.
 * Single owner of all retained market history for the process lifetime;
 * nothing is persisted across restarts.
 *
 * @notes
 * - Symbol iteration order is the order symbols were first recorded, so
 *   downstream rankings break ties deterministically.
 * - Ingest applies a whole batch plus the prune pass under one write lock:
 *   readers observe either the pre-cycle or the fully post-cycle state.
 */

package store

import (
	"sync"
	"time"

	"github.com/gainerwatch/backend/internal/models"
)

// DefaultRetention is how long snapshots are kept before pruning.
const DefaultRetention = 7 * 24 * time.Hour

// HistoryStore holds a time-ordered snapshot sequence per symbol.
type HistoryStore struct {
	mu        sync.RWMutex
	retention time.Duration
	history   map[string][]models.Snapshot
	symbols   []string // insertion order of first appearance
}

// NewHistoryStore creates an empty store. A non-positive retention falls
// back to DefaultRetention.
func NewHistoryStore(retention time.Duration) *HistoryStore {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &HistoryStore{
		retention: retention,
		history:   make(map[string][]models.Snapshot),
	}
}

// Record appends one snapshot to its symbol's sequence, creating the
// sequence if absent. Snapshots without a symbol or a positive price are
// dropped silently. Duplicate timestamps append distinct entries.
func (s *HistoryStore) Record(snap models.Snapshot) {
	if !snap.Valid() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.recordLocked(snap)
}

// Ingest records a whole batch and then prunes entries older than the
// retention window, atomically with respect to readers.
func (s *HistoryStore) Ingest(batch []models.Snapshot, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, snap := range batch {
		if !snap.Valid() {
			continue
		}
		s.recordLocked(snap)
	}
	s.pruneLocked(now)
}

// Prune removes, for every symbol, entries at or past the retention
// boundary relative to now. Emptied sequences stay in the map but report
// no history.
func (s *HistoryStore) Prune(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked(now)
}

// HistoryFor returns a copy of the retained sequence for one symbol,
// ascending by timestamp. Unknown symbols yield an empty slice.
func (s *HistoryStore) HistoryFor(symbol string) []models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.history[symbol]
	out := make([]models.Snapshot, len(entries))
	copy(out, entries)
	return out
}

// SymbolEntry pairs a symbol with its retained history.
type SymbolEntry struct {
	Symbol  string
	History []models.Snapshot
}

// Entries returns a consistent copy of every non-empty sequence, in
// symbol insertion order, taken under a single read lock so a full gain
// computation sees one coherent state.
func (s *HistoryStore) Entries() []SymbolEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]SymbolEntry, 0, len(s.symbols))
	for _, symbol := range s.symbols {
		entries := s.history[symbol]
		if len(entries) == 0 {
			continue
		}
		hist := make([]models.Snapshot, len(entries))
		copy(hist, entries)
		out = append(out, SymbolEntry{Symbol: symbol, History: hist})
	}
	return out
}

// Len returns the number of tracked symbols, including ones whose
// history has been fully pruned.
func (s *HistoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.symbols)
}

func (s *HistoryStore) recordLocked(snap models.Snapshot) {
	if _, seen := s.history[snap.Symbol]; !seen {
		s.symbols = append(s.symbols, snap.Symbol)
	}
	s.history[snap.Symbol] = append(s.history[snap.Symbol], snap)
}

func (s *HistoryStore) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.retention)

	for symbol, entries := range s.history {
		// Sequences are appended in capture order, so the survivors are a
		// suffix; find the first entry past the cutoff.
		keepFrom := len(entries)
		for i, snap := range entries {
			if snap.Timestamp.After(cutoff) {
				keepFrom = i
				break
			}
		}
		if keepFrom == 0 {
			continue
		}
		s.history[symbol] = append([]models.Snapshot(nil), entries[keepFrom:]...)
	}
}
