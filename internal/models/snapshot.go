/**
 * @description
 * Market snapshot and derived gain-record models.
 * JSON field names match the public API payloads.
 */

package models

import "time"

// Snapshot is one normalized observation of a stock taken from the
// gainers table. Volume and MarketCap stay as opaque display strings,
// exactly as the source renders them.
type Snapshot struct {
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"changePercent"`
	Volume        string    `json:"volume"`
	MarketCap     string    `json:"marketCap"`
	Timestamp     time.Time `json:"timestamp"`
}

// Valid reports whether the snapshot may be recorded: it needs a symbol
// and a positive price.
func (s Snapshot) Valid() bool {
	return s.Symbol != "" && s.Price > 0
}

// GainRecord is the derived multi-day performance of one symbol. It is
// recomputed from history on every query and never stored.
//
// Gain3Day carries the display precision ("30.00"); threshold
// comparisons parse it back to a float so they operate on exactly the
// value shown to users.
type GainRecord struct {
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	CurrentPrice float64 `json:"currentPrice"`
	OldPrice     float64 `json:"oldPrice"`
	Gain3Day     string  `json:"gain3Day"`
	TodayChange  float64 `json:"todayChange"`
	Volume       string  `json:"volume"`
	MarketCap    string  `json:"marketCap"`
}
