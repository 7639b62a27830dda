// Package queue defines the stock-event payloads exchanged over the message
// broker and the background consumer that records them.
package queue

// Actions carried by StockEvent.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// StockEvent is published whenever an item or manufacturer is mutated. It
// carries enough information for downstream consumers to audit or notify
// without querying the primary database.
type StockEvent struct {
	Entity     string `json:"entity"` // "item" or "manufacturer"
	Action     string `json:"action"` // created, updated, deleted
	EntityID   uint64 `json:"entity_id"`
	Name       string `json:"name,omitempty"`
	Actor      string `json:"actor"` // username of the authenticated caller
	OccurredAt string `json:"occurred_at"`
}
