package models

import "github.com/shopspring/decimal"

// Item split modes.
const (
	// SplitWhole shares the whole item among its assigned friends.
	SplitWhole = "whole"
	// SplitUnits assigns each unit of the item separately.
	SplitUnits = "units"
)

// Receipt represents a purchase to be split among friends.
type Receipt struct {
	// ID is the unique identifier for the receipt (UUID format).
	ID string `db:"id"`

	// OwnerID is the user who recorded (and paid) the receipt.
	OwnerID string `db:"owner_id"`

	// Title is the human-readable name. Generated from participants when empty.
	Title string `db:"title"`

	// Total is the grand total printed on the receipt.
	Total decimal.Decimal `db:"total"`

	// TaxType is "percentage" or "amount".
	TaxType string `db:"tax_type"`

	// TaxValue is the rate (for percentage) or currency amount (for amount).
	TaxValue decimal.Decimal `db:"tax_value"`

	// Tip is the absolute tip amount.
	Tip decimal.Decimal `db:"tip"`

	// TipsIncludedInTotal reports whether Total already contains Tip.
	TipsIncludedInTotal bool `db:"tips_included"`

	// FriendIDs are the participants, in display order.
	FriendIDs []string `db:"-"`

	// Items are the line items on the receipt.
	Items []Item `db:"-"`

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64 `db:"created_at"`
	UpdatedAt int64 `db:"updated_at"`
}

// Item represents a single line item on a receipt.
type Item struct {
	// ID is the unique identifier for the item (UUID format).
	ID string `db:"id"`

	// Name is the description printed on the receipt (e.g., "Pad Thai").
	Name string `db:"name"`

	// Price is the price of one unit.
	Price decimal.Decimal `db:"price"`

	// Quantity is the number of units, at least 1.
	Quantity int `db:"quantity"`

	// SplitMode is SplitWhole or SplitUnits.
	SplitMode string `db:"split_mode"`

	// Assignments say who covers the item (SplitWhole: a single entry) or
	// each unit (SplitUnits: one entry per assigned unit).
	Assignments []Assignment `db:"-"`
}

// LineTotal is the price of all units.
func (i Item) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Assignment attributes an item, or one unit of it, to friends.
type Assignment struct {
	// Unit is the zero-based unit index. Ignored for SplitWhole items.
	Unit int

	// FriendIDs are the friends covering this portion.
	FriendIDs []string
}

// ReceiptSummary is a lightweight listing entry.
type ReceiptSummary struct {
	ID               string          `db:"id"`
	Title            string          `db:"title"`
	Total            decimal.Decimal `db:"total"`
	ParticipantCount int             `db:"participant_count"`
	CreatedAt        int64           `db:"created_at"`
}
