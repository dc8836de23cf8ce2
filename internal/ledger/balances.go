// Package ledger aggregates allocations and payments into per-friend balances.
package ledger

import "github.com/shopspring/decimal"

// Share is what one friend owes on one receipt.
type Share struct {
	FriendID    string
	Name        string
	AmountToPay decimal.Decimal
}

// ReceiptAllocation represents a reconciled receipt with its per-friend shares.
type ReceiptAllocation struct {
	ReceiptID string
	Shares    []Share
}

// PaymentForBalance represents a payment with the minimal information needed
// for balance calculations.
type PaymentForBalance struct {
	ReceiptID string
	FriendID  string
	Amount    decimal.Decimal
}

// FriendBalance is one friend's position across receipts.
type FriendBalance struct {
	FriendID    string
	Name        string
	Owed        decimal.Decimal
	Paid        decimal.Decimal
	Outstanding decimal.Decimal // Owed - Paid; negative when overpaid
}

// CalculateBalances aggregates owed and paid amounts per friend.
//
// Algorithm:
// - For each receipt: every share adds to the friend's owed total
// - For each payment on one of those receipts: adds to the friend's paid total
// - Outstanding = owed - paid
//
// Payments against receipts not in the list are ignored, so a receipt that was
// left out (e.g. it does not reconcile) contributes neither side. Balances are
// returned in first-seen order.
func CalculateBalances(receipts []ReceiptAllocation, payments []PaymentForBalance) []FriendBalance {
	var order []string
	balances := make(map[string]*FriendBalance)
	included := make(map[string]bool, len(receipts))

	balanceFor := func(friendID string) *FriendBalance {
		if b, ok := balances[friendID]; ok {
			return b
		}
		b := &FriendBalance{FriendID: friendID}
		balances[friendID] = b
		order = append(order, friendID)
		return b
	}

	for _, r := range receipts {
		included[r.ReceiptID] = true
		for _, share := range r.Shares {
			b := balanceFor(share.FriendID)
			if b.Name == "" {
				b.Name = share.Name
			}
			b.Owed = b.Owed.Add(share.AmountToPay)
		}
	}

	for _, p := range payments {
		if !included[p.ReceiptID] {
			continue
		}
		b := balanceFor(p.FriendID)
		b.Paid = b.Paid.Add(p.Amount)
	}

	result := make([]FriendBalance, len(order))
	for i, id := range order {
		b := balances[id]
		b.Outstanding = b.Owed.Sub(b.Paid)
		result[i] = *b
	}
	return result
}
