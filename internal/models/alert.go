/**
 * @description
 * Alert rule and triggered-alert models.
 *
 * @notes
 * - Alert ids are creation-ordered strings (stringified nanosecond
 *   timestamps), so listing order and id order agree.
 */

package models

import "time"

// Alert types recognized by the registry
const (
	AlertTypeGainThreshold = "gain_threshold" // fires for any symbol at or above the threshold
	AlertTypeSpecificStock = "specific_stock" // fires for one symbol at or above the threshold
)

// Alert is a standing user-defined rule matched against freshly
// computed gain records each cycle.
type Alert struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Threshold float64   `json:"threshold"`
	Symbol    string    `json:"symbol,omitempty"` // set iff Type is specific_stock
	CreatedAt time.Time `json:"createdAt"`
}

// TriggeredAlert is an ephemeral match between an alert and a gain
// record. Produced fresh on every evaluation; never stored, so the same
// rule re-fires every cycle while the gain holds.
type TriggeredAlert struct {
	AlertID string     `json:"alertId"`
	Symbol  string     `json:"symbol"`
	Message string     `json:"message"`
	Stock   GainRecord `json:"stock"`
}
