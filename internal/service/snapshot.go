package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billsplit/internal/allocation"
	"github.com/mmynk/billsplit/internal/models"
)

// ErrInvalidReceipt is returned when a receipt cannot be turned into a
// consistent allocation snapshot.
var ErrInvalidReceipt = errors.New("invalid receipt")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidReceipt, fmt.Sprintf(format, args...))
}

// BuildSnapshot converts a receipt into the engine's input.
// friends is the owner's friend list and is used to resolve participant names.
//
// A whole item becomes one line of price*quantity divided by the number of
// assigned friends, shared by all of them. A units item becomes one line per
// assigned unit at the unit price. Unassigned items contribute nothing.
func BuildSnapshot(receipt *models.Receipt, friends []*models.Friend) (allocation.Snapshot, error) {
	if receipt.Total.IsNegative() {
		return allocation.Snapshot{}, invalid("total must not be negative")
	}
	if receipt.Tip.IsNegative() {
		return allocation.Snapshot{}, invalid("tip must not be negative")
	}
	if receipt.TaxValue.IsNegative() {
		return allocation.Snapshot{}, invalid("tax must not be negative")
	}
	tax, err := allocation.ParseTaxSpec(receipt.TaxType, receipt.TaxValue)
	if err != nil {
		return allocation.Snapshot{}, fmt.Errorf("%w: %w", ErrInvalidReceipt, err)
	}

	known := make(map[string]*models.Friend, len(friends))
	for _, f := range friends {
		known[f.ID] = f
	}

	participants := make([]allocation.Friend, 0, len(receipt.FriendIDs))
	onReceipt := make(map[string]bool, len(receipt.FriendIDs))
	for _, id := range receipt.FriendIDs {
		f, ok := known[id]
		if !ok {
			return allocation.Snapshot{}, invalid("unknown friend %q", id)
		}
		if onReceipt[id] {
			return allocation.Snapshot{}, invalid("friend %q listed twice", id)
		}
		onReceipt[id] = true
		participants = append(participants, allocation.Friend{ID: f.ID, Name: f.Name})
	}

	var lines []allocation.LineAllocation
	for i, item := range receipt.Items {
		if item.Price.IsNegative() {
			return allocation.Snapshot{}, invalid("item %d: price must not be negative", i)
		}
		if item.Quantity < 1 {
			return allocation.Snapshot{}, invalid("item %d: quantity must be at least 1", i)
		}
		for _, a := range item.Assignments {
			assigned := make(map[string]bool, len(a.FriendIDs))
			for _, id := range a.FriendIDs {
				if !onReceipt[id] {
					return allocation.Snapshot{}, invalid("item %d: friend %q is not on the receipt", i, id)
				}
				if assigned[id] {
					return allocation.Snapshot{}, invalid("item %d: friend %q assigned twice", i, id)
				}
				assigned[id] = true
			}
		}

		switch item.SplitMode {
		case models.SplitWhole:
			if len(item.Assignments) > 1 {
				return allocation.Snapshot{}, invalid("item %d: whole item takes a single assignment", i)
			}
			if len(item.Assignments) == 0 || len(item.Assignments[0].FriendIDs) == 0 {
				continue
			}
			friendIDs := item.Assignments[0].FriendIDs
			lines = append(lines, allocation.LineAllocation{
				Amount:    item.LineTotal().Div(decimal.NewFromInt(int64(len(friendIDs)))),
				FriendIDs: friendIDs,
			})

		case models.SplitUnits:
			units := make(map[int]bool, len(item.Assignments))
			for _, a := range item.Assignments {
				if a.Unit < 0 || a.Unit >= item.Quantity {
					return allocation.Snapshot{}, invalid("item %d: unit %d out of range", i, a.Unit)
				}
				if units[a.Unit] {
					return allocation.Snapshot{}, invalid("item %d: unit %d assigned twice", i, a.Unit)
				}
				units[a.Unit] = true
				if len(a.FriendIDs) == 0 {
					continue
				}
				lines = append(lines, allocation.LineAllocation{
					Amount:    item.Price,
					FriendIDs: a.FriendIDs,
				})
			}

		default:
			return allocation.Snapshot{}, invalid("item %d: unknown split mode %q", i, item.SplitMode)
		}
	}

	return allocation.Snapshot{
		Total:               receipt.Total,
		Tax:                 tax,
		Tip:                 receipt.Tip,
		TipsIncludedInTotal: receipt.TipsIncludedInTotal,
		Participants:        participants,
		Lines:               lines,
	}, nil
}
