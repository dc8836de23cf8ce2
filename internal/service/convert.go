package service

import (
	"github.com/mmynk/billsplit/internal/allocation"
	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/pkg/api"
)

// receiptFromInput builds a receipt model from the editable RPC fields.
// Item IDs from the client are dropped; the store assigns fresh ones.
func receiptFromInput(ownerID string, in api.ReceiptInput) *models.Receipt {
	items := make([]models.Item, len(in.Items))
	for i, item := range in.Items {
		assignments := make([]models.Assignment, len(item.Assignments))
		for j, a := range item.Assignments {
			assignments[j] = models.Assignment{Unit: a.Unit, FriendIDs: a.FriendIDs}
		}
		items[i] = models.Item{
			Name:        item.Name,
			Price:       item.Price,
			Quantity:    item.Quantity,
			SplitMode:   item.SplitMode,
			Assignments: assignments,
		}
	}

	taxType := in.TaxType
	if taxType == "" {
		taxType = allocation.TaxTypePercentage
	}

	return &models.Receipt{
		OwnerID:             ownerID,
		Title:               in.Title,
		Total:               in.Total,
		TaxType:             taxType,
		TaxValue:            in.TaxValue,
		Tip:                 in.Tip,
		TipsIncludedInTotal: in.TipsIncludedInTotal,
		FriendIDs:           in.FriendIDs,
		Items:               items,
	}
}

func toAPIReceipt(r *models.Receipt) *api.Receipt {
	items := make([]api.Item, len(r.Items))
	for i, item := range r.Items {
		assignments := make([]api.Assignment, len(item.Assignments))
		for j, a := range item.Assignments {
			assignments[j] = api.Assignment{Unit: a.Unit, FriendIDs: a.FriendIDs}
		}
		items[i] = api.Item{
			ID:          item.ID,
			Name:        item.Name,
			Price:       item.Price,
			Quantity:    item.Quantity,
			SplitMode:   item.SplitMode,
			Assignments: assignments,
		}
	}

	return &api.Receipt{
		ID: r.ID,
		ReceiptInput: api.ReceiptInput{
			Title:               r.Title,
			Total:               r.Total,
			TaxType:             r.TaxType,
			TaxValue:            r.TaxValue,
			Tip:                 r.Tip,
			TipsIncludedInTotal: r.TipsIncludedInTotal,
			FriendIDs:           r.FriendIDs,
			Items:               items,
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func toAPIAllocations(allocs []allocation.FriendAllocation) []*api.FriendAllocation {
	out := make([]*api.FriendAllocation, len(allocs))
	for i, a := range allocs {
		out[i] = &api.FriendAllocation{
			FriendID:    a.FriendID,
			Name:        a.Name,
			AmountToPay: a.AmountToPay,
		}
	}
	return out
}

func toAPIMismatch(m *allocation.Mismatch) *api.Mismatch {
	return &api.Mismatch{
		CalculatedTotal: m.CalculatedTotal,
		ExpectedTotal:   m.ExpectedTotal,
		Difference:      m.Difference,
		Tolerance:       m.Tolerance,
	}
}

func toAPIOutcome(o allocation.Outcome) *api.AllocationOutcome {
	if !o.OK() {
		return &api.AllocationOutcome{Mismatch: toAPIMismatch(o.Mismatch)}
	}
	return &api.AllocationOutcome{OK: true, Allocations: toAPIAllocations(o.Allocations)}
}

func toAPIFriend(f *models.Friend) *api.Friend {
	return &api.Friend{
		ID:        f.ID,
		Name:      f.Name,
		IsSelf:    f.IsSelf(),
		CreatedAt: f.CreatedAt,
	}
}

func toAPIPayment(p *models.Payment) *api.Payment {
	return &api.Payment{
		ID:         p.ID,
		ReceiptID:  p.ReceiptID,
		FriendID:   p.FriendID,
		AmountPaid: p.AmountPaid,
		CreatedAt:  p.CreatedAt,
	}
}

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}
