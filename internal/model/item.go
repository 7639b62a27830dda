package model

import "time"

// Item represents a catalogued product as stored in the `items` table.
// ManufacturerID is nullable: items may exist without a supplier, and
// deleting a supplier nulls the reference. Unit is a short display code
// such as "pcs" or "kg" and carries no conversion semantics.
type Item struct {
	ID            uint64    `json:"id"`
	Code          *string   `json:"code"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	BuyingPrice   float64   `json:"buying_price"`
	SellingPrice  float64   `json:"selling_price"`
	Unit          string    `json:"unit"`
	ManufacturerID *uint64  `json:"manufacturer_id"`
	CreatedAt     time.Time `json:"created_at"`

	// Manufacturer carries the joined supplier name and badge color in
	// listings; nil when the item has no supplier.
	Manufacturer *ItemManufacturer `json:"manufacturer,omitempty"`

	// ProfitPercent is derived, never persisted.
	ProfitPercent float64 `json:"profit_percent"`
}

// ItemManufacturer is the slice of a manufacturer row joined into item
// listings for display.
type ItemManufacturer struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Profit returns the profit margin in percent for the given buying and
// selling prices. A zero buying price yields 0 to avoid division by zero.
func Profit(buy, sell float64) float64 {
	if buy == 0 {
		return 0
	}
	return (sell - buy) / buy * 100
}
