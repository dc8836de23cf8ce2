package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/billsplit/internal/allocation"
	"github.com/mmynk/billsplit/internal/ledger"
	"github.com/mmynk/billsplit/internal/metrics"
	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/internal/storage"
	"github.com/mmynk/billsplit/pkg/api"
	"github.com/mmynk/billsplit/pkg/api/apiconnect"
)

var _ apiconnect.ReceiptServiceHandler = (*ReceiptService)(nil)

// ReceiptService implements the ReceiptService RPC interface.
type ReceiptService struct {
	store   storage.Store
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewReceiptService creates a new ReceiptService. m may be nil.
func NewReceiptService(store storage.Store, m *metrics.Metrics, logger *slog.Logger) *ReceiptService {
	return &ReceiptService{
		store:   store,
		metrics: m,
		logger:  logger,
	}
}

// snapshot validates the receipt against the owner's friends.
func (s *ReceiptService) snapshot(ctx context.Context, receipt *models.Receipt) (allocation.Snapshot, error) {
	friends, err := s.store.ListFriends(ctx, receipt.OwnerID)
	if err != nil {
		return allocation.Snapshot{}, connect.NewError(connect.CodeInternal, err)
	}

	snap, err := BuildSnapshot(receipt, friends)
	if err != nil {
		return allocation.Snapshot{}, connect.NewError(connect.CodeInvalidArgument, err)
	}
	return snap, nil
}

// allocate runs the engine and records the outcome.
func (s *ReceiptService) allocate(snap allocation.Snapshot) (allocation.Outcome, error) {
	outcome, err := allocation.Allocate(snap)
	if err != nil {
		// Unreachable for snapshots from BuildSnapshot
		s.metrics.ObserveAllocation(metrics.OutcomeError)
		return allocation.Outcome{}, connect.NewError(connect.CodeInternal, err)
	}

	if !outcome.OK() {
		s.metrics.ObserveAllocation(metrics.OutcomeMismatch)
		s.logger.Debug("Allocation mismatch", "mismatch", outcome.Mismatch.String())
		return outcome, nil
	}
	s.metrics.ObserveAllocation(metrics.OutcomeOK)
	return outcome, nil
}

// ownedReceipt loads a receipt and checks that userID owns it.
func (s *ReceiptService) ownedReceipt(ctx context.Context, userID, receiptID string) (*models.Receipt, error) {
	if receiptID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("receipt_id required"))
	}

	receipt, err := s.store.GetReceipt(ctx, receiptID)
	if err != nil {
		return nil, storageError(err)
	}
	if receipt.OwnerID != userID {
		return nil, connect.NewError(connect.CodePermissionDenied, fmt.Errorf("you do not own receipt %s", receiptID))
	}
	return receipt, nil
}

// CreateReceipt validates and stores a receipt, returning its allocation.
// A receipt that does not reconcile is still saved; the outcome says so.
func (s *ReceiptService) CreateReceipt(ctx context.Context, req *connect.Request[api.CreateReceiptRequest]) (*connect.Response[api.CreateReceiptResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	receipt := receiptFromInput(userID, req.Msg.ReceiptInput)
	snap, err := s.snapshot(ctx, receipt)
	if err != nil {
		return nil, err
	}

	if err := s.store.CreateReceipt(ctx, receipt); err != nil {
		return nil, storageError(err)
	}
	s.logger.Info("Receipt created", "receipt_id", receipt.ID, "user_id", userID, "items", len(receipt.Items))

	outcome, err := s.allocate(snap)
	if err != nil {
		return nil, err
	}

	return connect.NewResponse(&api.CreateReceiptResponse{
		ReceiptID: receipt.ID,
		Title:     receipt.Title,
		Outcome:   toAPIOutcome(outcome),
	}), nil
}

// GetReceipt returns a receipt with its allocation outcome and payments.
func (s *ReceiptService) GetReceipt(ctx context.Context, req *connect.Request[api.GetReceiptRequest]) (*connect.Response[api.GetReceiptResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	receipt, err := s.ownedReceipt(ctx, userID, req.Msg.ReceiptID)
	if err != nil {
		return nil, err
	}

	snap, err := s.snapshot(ctx, receipt)
	if err != nil {
		return nil, err
	}
	outcome, err := s.allocate(snap)
	if err != nil {
		return nil, err
	}

	payments, err := s.store.ListPaymentsByReceipt(ctx, receipt.ID)
	if err != nil {
		return nil, storageError(err)
	}
	apiPayments := make([]*api.Payment, len(payments))
	for i, p := range payments {
		apiPayments[i] = toAPIPayment(p)
	}

	return connect.NewResponse(&api.GetReceiptResponse{
		Receipt:  toAPIReceipt(receipt),
		Outcome:  toAPIOutcome(outcome),
		Payments: apiPayments,
	}), nil
}

// UpdateReceipt replaces a receipt's contents and returns the new allocation.
func (s *ReceiptService) UpdateReceipt(ctx context.Context, req *connect.Request[api.UpdateReceiptRequest]) (*connect.Response[api.UpdateReceiptResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.ownedReceipt(ctx, userID, req.Msg.ReceiptID); err != nil {
		return nil, err
	}

	receipt := receiptFromInput(userID, req.Msg.ReceiptInput)
	receipt.ID = req.Msg.ReceiptID
	snap, err := s.snapshot(ctx, receipt)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateReceipt(ctx, receipt); err != nil {
		return nil, storageError(err)
	}
	s.logger.Info("Receipt updated", "receipt_id", receipt.ID, "user_id", userID)

	outcome, err := s.allocate(snap)
	if err != nil {
		return nil, err
	}

	return connect.NewResponse(&api.UpdateReceiptResponse{
		Outcome: toAPIOutcome(outcome),
	}), nil
}

// DeleteReceipt deletes a receipt and its payments.
func (s *ReceiptService) DeleteReceipt(ctx context.Context, req *connect.Request[api.DeleteReceiptRequest]) (*connect.Response[api.DeleteReceiptResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.ownedReceipt(ctx, userID, req.Msg.ReceiptID); err != nil {
		return nil, err
	}

	if err := s.store.DeleteReceipt(ctx, req.Msg.ReceiptID); err != nil {
		return nil, storageError(err)
	}
	s.logger.Info("Receipt deleted", "receipt_id", req.Msg.ReceiptID, "user_id", userID)

	return connect.NewResponse(&api.DeleteReceiptResponse{}), nil
}

// ListReceipts returns the caller's receipts, newest first.
func (s *ReceiptService) ListReceipts(ctx context.Context, req *connect.Request[api.ListReceiptsRequest]) (*connect.Response[api.ListReceiptsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	summaries, err := s.store.ListReceipts(ctx, userID)
	if err != nil {
		return nil, storageError(err)
	}

	receipts := make([]*api.ReceiptSummary, len(summaries))
	for i, r := range summaries {
		receipts[i] = &api.ReceiptSummary{
			ID:               r.ID,
			Title:            r.Title,
			Total:            r.Total,
			ParticipantCount: r.ParticipantCount,
			CreatedAt:        r.CreatedAt,
		}
	}

	return connect.NewResponse(&api.ListReceiptsResponse{Receipts: receipts}), nil
}

// CalculateAllocations returns what each friend owes on a stored receipt.
// A receipt that does not reconcile fails with CodeInvalidArgument and the
// mismatch figures as an error detail.
func (s *ReceiptService) CalculateAllocations(ctx context.Context, req *connect.Request[api.CalculateAllocationsRequest]) (*connect.Response[api.CalculateAllocationsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	receipt, err := s.ownedReceipt(ctx, userID, req.Msg.ReceiptID)
	if err != nil {
		return nil, err
	}

	snap, err := s.snapshot(ctx, receipt)
	if err != nil {
		return nil, err
	}
	outcome, err := s.allocate(snap)
	if err != nil {
		return nil, err
	}
	if !outcome.OK() {
		return nil, mismatchError(outcome.Mismatch)
	}

	return connect.NewResponse(&api.CalculateAllocationsResponse{
		Allocations: toAPIAllocations(outcome.Allocations),
	}), nil
}

// PreviewAllocations runs the allocation on an unsaved receipt.
func (s *ReceiptService) PreviewAllocations(ctx context.Context, req *connect.Request[api.PreviewAllocationsRequest]) (*connect.Response[api.PreviewAllocationsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	snap, err := s.snapshot(ctx, receiptFromInput(userID, req.Msg.ReceiptInput))
	if err != nil {
		return nil, err
	}
	outcome, err := s.allocate(snap)
	if err != nil {
		return nil, err
	}

	return connect.NewResponse(&api.PreviewAllocationsResponse{
		Outcome: toAPIOutcome(outcome),
	}), nil
}

// RecordPayment stores a payment and returns the change due against what the
// friend still owed before it.
func (s *ReceiptService) RecordPayment(ctx context.Context, req *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	if !req.Msg.AmountPaid.IsPositive() {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("amount_paid must be positive"))
	}

	receipt, err := s.ownedReceipt(ctx, userID, req.Msg.ReceiptID)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(receipt.FriendIDs, req.Msg.FriendID) {
		return nil, connect.NewError(connect.CodeInvalidArgument,
			fmt.Errorf("friend %s is not on receipt %s", req.Msg.FriendID, receipt.ID))
	}

	snap, err := s.snapshot(ctx, receipt)
	if err != nil {
		return nil, err
	}
	outcome, err := s.allocate(snap)
	if err != nil {
		return nil, err
	}
	if !outcome.OK() {
		return nil, mismatchError(outcome.Mismatch)
	}

	amountToPay := decimal.Zero
	for _, a := range outcome.Allocations {
		if a.FriendID == req.Msg.FriendID {
			amountToPay = a.AmountToPay
			break
		}
	}

	payment := &models.Payment{
		ReceiptID:  receipt.ID,
		FriendID:   req.Msg.FriendID,
		AmountPaid: req.Msg.AmountPaid,
	}
	previouslyPaid, err := s.store.AddPayment(ctx, payment)
	if err != nil {
		return nil, storageError(err)
	}
	s.logger.Info("Payment recorded",
		"receipt_id", receipt.ID,
		"friend_id", payment.FriendID,
		"amount_paid", payment.AmountPaid.StringFixed(2),
	)

	change := allocation.CalculateChange(amountToPay.Sub(previouslyPaid), payment.AmountPaid)

	return connect.NewResponse(&api.RecordPaymentResponse{
		Payment:        toAPIPayment(payment),
		AmountToPay:    amountToPay,
		PreviouslyPaid: previouslyPaid,
		Change: &api.Change{
			Change:                change.Amount,
			IsInsufficientPayment: change.IsInsufficientPayment,
		},
	}), nil
}

// CalculateChange compares an amount paid with an amount owed.
func (s *ReceiptService) CalculateChange(ctx context.Context, req *connect.Request[api.CalculateChangeRequest]) (*connect.Response[api.CalculateChangeResponse], error) {
	change := allocation.CalculateChange(req.Msg.AmountToPay, req.Msg.AmountPaid)
	return connect.NewResponse(&api.CalculateChangeResponse{
		Change: &api.Change{
			Change:                change.Amount,
			IsInsufficientPayment: change.IsInsufficientPayment,
		},
	}), nil
}

// ListBalances totals what each friend owes and has paid across the caller's
// receipts. The caller's own friend record is left out. Receipts that do not
// reconcile are skipped and counted.
func (s *ReceiptService) ListBalances(ctx context.Context, req *connect.Request[api.ListBalancesRequest]) (*connect.Response[api.ListBalancesResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	friends, err := s.store.ListFriends(ctx, userID)
	if err != nil {
		return nil, storageError(err)
	}
	byID := make(map[string]*models.Friend, len(friends))
	for _, f := range friends {
		byID[f.ID] = f
	}
	isSelf := func(friendID string) bool {
		f, ok := byID[friendID]
		return ok && f.IsSelf()
	}

	summaries, err := s.store.ListReceipts(ctx, userID)
	if err != nil {
		return nil, storageError(err)
	}

	var (
		receipts []ledger.ReceiptAllocation
		skipped  int
	)
	for _, summary := range summaries {
		receipt, err := s.store.GetReceipt(ctx, summary.ID)
		if err != nil {
			return nil, storageError(err)
		}

		snap, err := BuildSnapshot(receipt, friends)
		if err != nil {
			s.logger.Warn("Skipping receipt in balances", "receipt_id", receipt.ID, "error", err)
			skipped++
			continue
		}
		outcome, err := s.allocate(snap)
		if err != nil {
			return nil, err
		}
		if !outcome.OK() {
			s.logger.Warn("Skipping receipt in balances", "receipt_id", receipt.ID, "mismatch", outcome.Mismatch.String())
			skipped++
			continue
		}

		ra := ledger.ReceiptAllocation{ReceiptID: receipt.ID}
		for _, a := range outcome.Allocations {
			if isSelf(a.FriendID) {
				continue
			}
			ra.Shares = append(ra.Shares, ledger.Share{
				FriendID:    a.FriendID,
				Name:        a.Name,
				AmountToPay: a.AmountToPay,
			})
		}
		receipts = append(receipts, ra)
	}

	payments, err := s.store.ListPaymentsByOwner(ctx, userID)
	if err != nil {
		return nil, storageError(err)
	}
	var forBalance []ledger.PaymentForBalance
	for _, p := range payments {
		if isSelf(p.FriendID) {
			continue
		}
		forBalance = append(forBalance, ledger.PaymentForBalance{
			ReceiptID: p.ReceiptID,
			FriendID:  p.FriendID,
			Amount:    p.AmountPaid,
		})
	}

	balances := ledger.CalculateBalances(receipts, forBalance)
	out := make([]*api.FriendBalance, len(balances))
	for i, b := range balances {
		name := b.Name
		if f, ok := byID[b.FriendID]; ok && name == "" {
			name = f.Name
		}
		out[i] = &api.FriendBalance{
			FriendID:    b.FriendID,
			Name:        name,
			Owed:        b.Owed,
			Paid:        b.Paid,
			Outstanding: b.Outstanding,
		}
	}

	return connect.NewResponse(&api.ListBalancesResponse{
		Balances:        out,
		SkippedReceipts: skipped,
	}), nil
}

