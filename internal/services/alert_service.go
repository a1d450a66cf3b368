/**
 * @description
 * Alert Service: registry of user-defined threshold alerts plus the
 * evaluator that matches them against freshly computed gain records.
 *
 * @dependencies
 * - backend/internal/models
 *
 * @notes
 * - Alerts live in memory for the process lifetime only.
 * - Evaluation keeps no trigger state: the same rule re-fires on every
 *   cycle while the data still matches.
 */

package services

import (
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/gainerwatch/backend/internal/models"
)

// AlertService owns the alert registry and evaluates it each cycle.
type AlertService struct {
	mu     sync.RWMutex
	alerts []models.Alert
	lastID int64
}

// NewAlertService creates an empty registry.
func NewAlertService() *AlertService {
	return &AlertService{}
}

// Add validates and registers a new alert, returning it with a fresh
// creation-ordered id.
func (s *AlertService) Add(alertType string, threshold float64, symbol string) (models.Alert, error) {
	switch alertType {
	case models.AlertTypeGainThreshold, models.AlertTypeSpecificStock:
	default:
		return models.Alert{}, fmt.Errorf("unknown alert type %q (want %q or %q)",
			alertType, models.AlertTypeGainThreshold, models.AlertTypeSpecificStock)
	}
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return models.Alert{}, fmt.Errorf("threshold must be a finite number")
	}
	if alertType == models.AlertTypeSpecificStock && symbol == "" {
		return models.Alert{}, fmt.Errorf("symbol is required for %s alerts", models.AlertTypeSpecificStock)
	}
	if alertType == models.AlertTypeGainThreshold {
		symbol = ""
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	alert := models.Alert{
		ID:        s.nextIDLocked(),
		Type:      alertType,
		Threshold: threshold,
		Symbol:    symbol,
		CreatedAt: time.Now(),
	}
	s.alerts = append(s.alerts, alert)
	return alert, nil
}

// Remove deletes the alert with the given id. Removing an unknown id is
// a no-op, not an error.
func (s *AlertService) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.alerts[:0]
	for _, a := range s.alerts {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	s.alerts = kept
}

// List returns all registered alerts in creation order.
func (s *AlertService) List() []models.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Alert, len(s.alerts))
	copy(out, s.alerts)
	return out
}

// Evaluate matches the current registry against the given gain records.
// A gain_threshold alert fires once per qualifying symbol; a
// specific_stock alert fires for its symbol only. Thresholds compare
// against the parsed display value of the gain.
func (s *AlertService) Evaluate(gains []models.GainRecord) []models.TriggeredAlert {
	alerts := s.List()

	var triggered []models.TriggeredAlert
	for _, alert := range alerts {
		for _, stock := range gains {
			gain, err := strconv.ParseFloat(stock.Gain3Day, 64)
			if err != nil {
				continue
			}

			switch alert.Type {
			case models.AlertTypeGainThreshold:
				if gain >= alert.Threshold {
					triggered = append(triggered, models.TriggeredAlert{
						AlertID: alert.ID,
						Symbol:  stock.Symbol,
						Message: fmt.Sprintf("%s gained %s%% in 3 days (threshold: %g%%)",
							stock.Symbol, stock.Gain3Day, alert.Threshold),
						Stock: stock,
					})
				}
			case models.AlertTypeSpecificStock:
				if stock.Symbol == alert.Symbol && gain >= alert.Threshold {
					triggered = append(triggered, models.TriggeredAlert{
						AlertID: alert.ID,
						Symbol:  stock.Symbol,
						Message: fmt.Sprintf("%s alert triggered: %s%% gain", stock.Symbol, stock.Gain3Day),
						Stock:   stock,
					})
				}
			}
		}
	}
	return triggered
}

// nextIDLocked returns a unique id that still sorts by creation order
// when two alerts land on the same nanosecond.
func (s *AlertService) nextIDLocked() string {
	id := time.Now().UnixNano()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}
