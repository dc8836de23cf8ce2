package models

import "github.com/shopspring/decimal"

// Payment records money a friend handed over for their share of a receipt.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string `db:"id"`

	// ReceiptID is the receipt being paid for.
	ReceiptID string `db:"receipt_id"`

	// FriendID is the friend who paid.
	FriendID string `db:"friend_id"`

	// AmountPaid is the cash handed over. It may exceed what was owed.
	AmountPaid decimal.Decimal `db:"amount_paid"`

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64 `db:"created_at"`
}
