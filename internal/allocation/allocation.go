// Package allocation computes what each friend owes on a receipt.
//
// The engine is a pure function over a Snapshot: it holds no state, does no
// I/O and is safe to call concurrently with distinct snapshots.
package allocation

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrUnknownFriend is returned when a line allocation names a friend that is
// not one of the snapshot's participants. It indicates a broken snapshot, not
// a business outcome.
var ErrUnknownFriend = errors.New("line allocation references a friend that is not a participant")

var (
	hundred = decimal.NewFromInt(100)
	// roundingNoise is the gap accepted without any adjustment.
	roundingNoise = decimal.New(1, -2)
	// tolerance is the largest gap absorbed by the last friend.
	tolerance = decimal.NewFromInt(3)
)

// Friend identifies a participant on a receipt.
type Friend struct {
	ID   string
	Name string
}

// LineAllocation is one indivisible portion of an item's price.
// Every friend listed is charged the full Amount.
type LineAllocation struct {
	Amount    decimal.Decimal
	FriendIDs []string
}

// Snapshot is the immutable view of a receipt the engine works on.
type Snapshot struct {
	// Total is the grand total printed on the receipt.
	Total decimal.Decimal

	// Tax describes how tax is expressed on the receipt.
	// A nil Tax is treated as no tax.
	Tax TaxSpec

	// Tip is the absolute tip amount.
	Tip decimal.Decimal

	// TipsIncludedInTotal reports whether Total already contains Tip.
	TipsIncludedInTotal bool

	// Participants are all friends on the receipt, in display order.
	// Tip is divided among all of them, even those without items.
	Participants []Friend

	// Lines are the item portions, in receipt order.
	Lines []LineAllocation
}

// FriendAllocation is one friend's final amount.
type FriendAllocation struct {
	FriendID    string
	Name        string
	AmountToPay decimal.Decimal // rounded to 2 places
}

// Mismatch describes a receipt whose items do not add up to its total.
type Mismatch struct {
	CalculatedTotal decimal.Decimal
	ExpectedTotal   decimal.Decimal
	Difference      decimal.Decimal
	Tolerance       decimal.Decimal
}

// String renders the mismatch for logs and error messages.
func (m *Mismatch) String() string {
	return fmt.Sprintf("calculated total %s differs from expected %s by %s (tolerance %s)",
		m.CalculatedTotal.StringFixed(2), m.ExpectedTotal.StringFixed(2),
		m.Difference.StringFixed(2), m.Tolerance.StringFixed(2))
}

// Outcome is the result of Allocate: either Allocations or a Mismatch.
type Outcome struct {
	Allocations []FriendAllocation
	Mismatch    *Mismatch
}

// OK reports whether the receipt reconciled.
func (o Outcome) OK() bool {
	return o.Mismatch == nil
}

// Allocate computes each participant's amount to pay.
//
// Algorithm:
//   - each friend on a line is charged the full line amount
//   - tax is applied as a rate to each friend's item subtotal; a flat tax is
//     first converted to a rate against the receipt's pre-tax subtotal
//   - the taxed amounts are reconciled against the pre-tip total: gaps up to
//     one cent are ignored, gaps up to the tolerance go to the last friend,
//     larger gaps are reported as a Mismatch
//   - tip is split evenly among all participants
//   - amounts are rounded half away from zero to 2 places
//
// Results are ordered by first appearance in Lines, followed by the
// remaining participants in participant order.
func Allocate(s Snapshot) (Outcome, error) {
	names := make(map[string]string, len(s.Participants))
	for _, p := range s.Participants {
		names[p.ID] = p.Name
	}

	// Accumulate item subtotals in first-seen order
	var order []string
	subtotals := make(map[string]decimal.Decimal)
	for i, line := range s.Lines {
		seen := make(map[string]bool, len(line.FriendIDs))
		for _, id := range line.FriendIDs {
			if _, ok := names[id]; !ok {
				return Outcome{}, fmt.Errorf("%w: line %d, friend %q", ErrUnknownFriend, i, id)
			}
			if seen[id] {
				continue
			}
			seen[id] = true

			if _, exists := subtotals[id]; !exists {
				order = append(order, id)
			}
			subtotals[id] = subtotals[id].Add(line.Amount)
		}
	}

	// Apply the same tax rate to everyone
	rate := effectivePercentage(s)
	multiplier := decimal.NewFromInt(1).Add(rate.Div(hundred))

	amounts := make(map[string]decimal.Decimal, len(s.Participants))
	calculated := decimal.Zero
	for _, id := range order {
		amount := subtotals[id].Mul(multiplier)
		amounts[id] = amount
		calculated = calculated.Add(amount)
	}

	expected := s.Total
	if s.TipsIncludedInTotal {
		expected = expected.Sub(s.Tip)
	}
	diff := expected.Sub(calculated)

	switch {
	case diff.Abs().LessThanOrEqual(roundingNoise):
	case diff.Abs().LessThanOrEqual(tolerance):
		if len(order) > 0 {
			last := order[len(order)-1]
			amounts[last] = amounts[last].Add(diff)
		}
	default:
		return Outcome{Mismatch: &Mismatch{
			CalculatedTotal: calculated.Round(2),
			ExpectedTotal:   expected.Round(2),
			Difference:      diff.Round(2),
			Tolerance:       tolerance,
		}}, nil
	}

	// Participants without items still share the tip
	for _, p := range s.Participants {
		if _, exists := amounts[p.ID]; !exists {
			amounts[p.ID] = decimal.Zero
			order = append(order, p.ID)
		}
	}

	if len(order) > 0 && !s.Tip.IsZero() {
		share := s.Tip.Div(decimal.NewFromInt(int64(len(order))))
		for _, id := range order {
			amounts[id] = amounts[id].Add(share)
		}
	}

	results := make([]FriendAllocation, len(order))
	for i, id := range order {
		results[i] = FriendAllocation{
			FriendID:    id,
			Name:        names[id],
			AmountToPay: amounts[id].Round(2),
		}
	}

	return Outcome{Allocations: results}, nil
}
