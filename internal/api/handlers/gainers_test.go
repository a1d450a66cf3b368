package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gainerwatch/backend/internal/models"
	"github.com/gainerwatch/backend/internal/services"
	"github.com/gainerwatch/backend/internal/store"
	"github.com/gofiber/fiber/v2"
)

type fixedSource struct {
	batch []models.Snapshot
}

func (s *fixedSource) TopGainers(ctx context.Context) ([]models.Snapshot, error) {
	return s.batch, nil
}

func testSnapshot(symbol string, price float64, ts time.Time) models.Snapshot {
	return models.Snapshot{Symbol: symbol, Name: symbol + " Inc.", Price: price, Timestamp: ts}
}

// newGainerApp wires a service over an empty history and the given
// source; Redis is nil since these endpoints degrade gracefully without it.
func newGainerApp(source services.SnapshotSource) (*fiber.App, *services.GainerService) {
	hs := store.NewHistoryStore(7 * 24 * time.Hour)
	svc := services.NewGainerService(hs, nil, source, services.NewAlertService(), 3*24*time.Hour)

	gainerHandler := NewGainerHandler(svc)
	stockHandler := NewStockHandler(svc)

	app := fiber.New()
	app.Get("/api/gainers/today", gainerHandler.GetTodayGainers)
	app.Get("/api/gainers/3day", gainerHandler.GetThreeDayGainers)
	app.Get("/api/stock/:symbol", stockHandler.GetHistory)
	return app, svc
}

func getJSON(t *testing.T, url string, out interface{}) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func TestGetTodayGainersLimitsToTwentyFive(t *testing.T) {
	now := time.Now()
	var batch []models.Snapshot
	for i := 0; i < 30; i++ {
		batch = append(batch, testSnapshot(fmt.Sprintf("S%02d", i), 10, now))
	}

	app, _ := newGainerApp(&fixedSource{batch: batch})
	srv := newTestServer(t, app)
	defer srv.Close()

	var got struct {
		Success bool              `json:"success"`
		Data    []models.Snapshot `json:"data"`
	}
	getJSON(t, srv.URL+"/api/gainers/today", &got)

	if !got.Success || len(got.Data) != 25 {
		t.Fatalf("expected 25 snapshots, got %d (success=%v)", len(got.Data), got.Success)
	}
	if got.Data[0].Symbol != "S00" {
		t.Fatalf("expected the head of the batch first, got %s", got.Data[0].Symbol)
	}
}

func TestGetThreeDayGainersSortedEnvelope(t *testing.T) {
	app, svc := newGainerApp(&fixedSource{})
	now := time.Now()
	old := now.Add(-4 * 24 * time.Hour)

	svc.Store.Record(testSnapshot("AAA", 100, old))
	svc.Store.Record(testSnapshot("BBB", 100, old))
	svc.Store.Record(testSnapshot("AAA", 110, now))
	svc.Store.Record(testSnapshot("BBB", 150, now))

	srv := newTestServer(t, app)
	defer srv.Close()

	var got struct {
		Success bool                `json:"success"`
		Data    []models.GainRecord `json:"data"`
	}
	getJSON(t, srv.URL+"/api/gainers/3day", &got)

	if !got.Success || len(got.Data) != 2 {
		t.Fatalf("expected 2 ranked records, got %+v", got)
	}
	if got.Data[0].Symbol != "BBB" || got.Data[0].Gain3Day != "50.00" {
		t.Fatalf("expected BBB at 50.00 first, got %+v", got.Data[0])
	}
	if got.Data[1].Symbol != "AAA" || got.Data[1].Gain3Day != "10.00" {
		t.Fatalf("expected AAA at 10.00 second, got %+v", got.Data[1])
	}
}

func TestGetStockHistory(t *testing.T) {
	app, svc := newGainerApp(&fixedSource{})
	now := time.Now()

	svc.Store.Record(testSnapshot("ABC", 100, now.Add(-time.Hour)))
	svc.Store.Record(testSnapshot("ABC", 105, now))

	srv := newTestServer(t, app)
	defer srv.Close()

	var got struct {
		Success bool              `json:"success"`
		Data    []models.Snapshot `json:"data"`
	}
	getJSON(t, srv.URL+"/api/stock/ABC", &got)
	if len(got.Data) != 2 || got.Data[0].Price != 100 {
		t.Fatalf("expected the full ABC history oldest first, got %+v", got.Data)
	}

	// Unknown symbols report an empty list, not an error
	getJSON(t, srv.URL+"/api/stock/NOPE", &got)
	if got.Data == nil || len(got.Data) != 0 {
		t.Fatalf("expected empty history for unknown symbol, got %+v", got.Data)
	}
}
