/**
 * @description
 * Service layer for gainer data.
 * Orchestrates the hourly update cycle: fetch the gainers table, roll it
 * into the in-memory history, cache the latest batch in Redis, derive the
 * 3-day ranking, and evaluate alerts.
 *
 * @dependencies
 * - backend/internal/store
 * - backend/internal/models
 * - github.com/redis/go-redis/v9
 *
 * @notes
 * - Fetch failures are never fatal: a failed scrape degrades to an empty
 *   batch and the cycle continues.
 * - Redis only caches the latest batch and carries the triggered-alert
 *   pub/sub channel; the history itself is in-memory only.
 */

package services

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/gainerwatch/backend/internal/logger"
	"github.com/gainerwatch/backend/internal/models"
	"github.com/gainerwatch/backend/internal/store"
	"github.com/redis/go-redis/v9"
)

const (
	CacheKeyTodayGainers = "gainers:today"
	CacheTTL             = time.Hour

	AlertChannel = "alerts:triggered"

	DefaultLookback = 3 * 24 * time.Hour
)

// SnapshotSource produces one normalized batch of top-gainer snapshots.
// Implemented by the yahoo client; stubbed in tests.
type SnapshotSource interface {
	TopGainers(ctx context.Context) ([]models.Snapshot, error)
}

// GainerService owns the latest fetched batch and derives the 3-day
// ranking from the history store.
type GainerService struct {
	Store  *store.HistoryStore
	Redis  *redis.Client
	Source SnapshotSource
	Alerts *AlertService

	lookback time.Duration

	mu     sync.RWMutex
	latest []models.Snapshot
}

// NewGainerService wires the service. A non-positive lookback falls back
// to DefaultLookback.
func NewGainerService(hs *store.HistoryStore, rdb *redis.Client, source SnapshotSource, alerts *AlertService, lookback time.Duration) *GainerService {
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	return &GainerService{
		Store:    hs,
		Redis:    rdb,
		Source:   source,
		Alerts:   alerts,
		lookback: lookback,
	}
}

// Warmup runs the startup fetch-and-record pass so history and the
// latest batch exist before the first scheduled cycle. No pruning, no
// alert evaluation.
func (s *GainerService) Warmup(ctx context.Context) {
	batch, err := s.Source.TopGainers(ctx)
	if err != nil {
		logger.Error("GainerService: warmup fetch failed: %v", err)
		return
	}

	for _, snap := range batch {
		s.Store.Record(snap)
	}
	s.setLatest(ctx, batch)
	logger.Info("GainerService: warmed up with %d stocks", len(batch))
}

// RunCycle executes one full update cycle and returns the alerts it
// triggered. A fetch failure is logged and treated as an empty batch.
func (s *GainerService) RunCycle(ctx context.Context) []models.TriggeredAlert {
	now := time.Now()

	batch, err := s.Source.TopGainers(ctx)
	if err != nil {
		logger.Error("GainerService: fetch failed, continuing with empty batch: %v", err)
		batch = nil
	} else {
		s.setLatest(ctx, batch)
	}

	s.Store.Ingest(batch, now)

	gains := s.ThreeDayGains(now)
	triggered := s.Alerts.Evaluate(gains)

	for _, t := range triggered {
		logger.Info("Alert triggered: %s", t.Message)
		s.publishAlert(ctx, t)
	}

	logger.Info("GainerService: cycle done (%d stocks fetched, %d ranked, %d alerts)",
		len(batch), len(gains), len(triggered))
	return triggered
}

// TodayGainers returns the most recent fetched batch. When the process
// has no batch yet it tries the Redis cache, then falls back to an
// on-demand fetch.
func (s *GainerService) TodayGainers(ctx context.Context) []models.Snapshot {
	s.mu.RLock()
	latest := s.latest
	s.mu.RUnlock()

	if len(latest) > 0 {
		return latest
	}

	if cached := s.cachedToday(ctx); len(cached) > 0 {
		return cached
	}

	batch, err := s.Source.TopGainers(ctx)
	if err != nil {
		logger.Error("GainerService: on-demand fetch failed: %v", err)
		return nil
	}
	s.setLatest(ctx, batch)
	return batch
}

// ThreeDayGains derives the gain ranking from the retained history,
// descending by gain. Per symbol the baseline is the FIRST entry,
// scanning oldest to newest, already at least the lookback old; symbols
// with no qualifying baseline are excluded. A zero-price baseline also
// excludes the symbol so no Inf/NaN can reach comparisons or JSON.
func (s *GainerService) ThreeDayGains(now time.Time) []models.GainRecord {
	cutoff := now.Add(-s.lookback)

	var records []models.GainRecord
	for _, entry := range s.Store.Entries() {
		latest := entry.History[len(entry.History)-1]

		var old *models.Snapshot
		for i := range entry.History {
			if !entry.History[i].Timestamp.After(cutoff) {
				old = &entry.History[i]
				break
			}
		}
		if old == nil || old.Price == 0 {
			continue
		}

		gain := (latest.Price - old.Price) / old.Price * 100

		records = append(records, models.GainRecord{
			Symbol:       entry.Symbol,
			Name:         latest.Name,
			CurrentPrice: latest.Price,
			OldPrice:     old.Price,
			Gain3Day:     strconv.FormatFloat(gain, 'f', 2, 64),
			TodayChange:  latest.ChangePercent,
			Volume:       latest.Volume,
			MarketCap:    latest.MarketCap,
		})
	}

	// Stable sort keeps symbol insertion order on equal gains.
	sort.SliceStable(records, func(i, j int) bool {
		gi, _ := strconv.ParseFloat(records[i].Gain3Day, 64)
		gj, _ := strconv.ParseFloat(records[j].Gain3Day, 64)
		return gi > gj
	})
	return records
}

// SymbolHistory returns the full retained history for one symbol, oldest
// first. Unknown symbols yield an empty slice.
func (s *GainerService) SymbolHistory(symbol string) []models.Snapshot {
	return s.Store.HistoryFor(symbol)
}

// setLatest swaps the in-memory batch and refreshes the Redis cache.
func (s *GainerService) setLatest(ctx context.Context, batch []models.Snapshot) {
	s.mu.Lock()
	s.latest = batch
	s.mu.Unlock()

	if s.Redis == nil {
		return
	}
	data, err := json.Marshal(batch)
	if err != nil {
		logger.Error("GainerService: failed to marshal batch for cache: %v", err)
		return
	}
	if err := s.Redis.Set(ctx, CacheKeyTodayGainers, data, CacheTTL).Err(); err != nil {
		logger.Error("GainerService: failed to set today cache: %v", err)
	}
}

func (s *GainerService) cachedToday(ctx context.Context) []models.Snapshot {
	if s.Redis == nil {
		return nil
	}
	val, err := s.Redis.Get(ctx, CacheKeyTodayGainers).Result()
	if err != nil {
		return nil
	}
	var batch []models.Snapshot
	if err := json.Unmarshal([]byte(val), &batch); err != nil {
		return nil
	}
	return batch
}

func (s *GainerService) publishAlert(ctx context.Context, t models.TriggeredAlert) {
	if s.Redis == nil {
		return
	}
	payload, err := json.Marshal(t)
	if err != nil {
		logger.Error("GainerService: failed to marshal triggered alert: %v", err)
		return
	}
	if err := s.Redis.Publish(ctx, AlertChannel, payload).Err(); err != nil {
		logger.Error("GainerService: failed to publish triggered alert: %v", err)
	}
}
