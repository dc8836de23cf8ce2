package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/billsplit/internal/models"
)

const paymentColumns = `id, receipt_id, friend_id, amount_paid, created_at`

// CreatePayment persists a new payment.
func (s *SQLiteStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == 0 {
		payment.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payments (`+paymentColumns+`) VALUES (?, ?, ?, ?, ?)`,
		payment.ID, payment.ReceiptID, payment.FriendID, payment.AmountPaid, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	return nil
}

// AddPayment persists a new payment and returns what the same friend had
// already paid on the receipt. The read and the insert share a transaction.
func (s *SQLiteStore) AddPayment(ctx context.Context, payment *models.Payment) (decimal.Decimal, error) {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == 0 {
		payment.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Amounts are TEXT, so they are summed here rather than with SUM()
	var amounts []decimal.Decimal
	err = tx.SelectContext(ctx, &amounts,
		`SELECT amount_paid FROM payments WHERE receipt_id = ? AND friend_id = ?`,
		payment.ReceiptID, payment.FriendID,
	)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read earlier payments: %w", err)
	}
	previouslyPaid := decimal.Zero
	for _, a := range amounts {
		previouslyPaid = previouslyPaid.Add(a)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO payments (`+paymentColumns+`) VALUES (?, ?, ?, ?, ?)`,
		payment.ID, payment.ReceiptID, payment.FriendID, payment.AmountPaid, payment.CreatedAt,
	)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to insert payment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return decimal.Zero, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return previouslyPaid, nil
}

// ListPaymentsByReceipt retrieves all payments for a receipt, oldest first.
func (s *SQLiteStore) ListPaymentsByReceipt(ctx context.Context, receiptID string) ([]*models.Payment, error) {
	var payments []*models.Payment
	err := s.db.SelectContext(ctx, &payments,
		`SELECT `+paymentColumns+` FROM payments WHERE receipt_id = ? ORDER BY created_at, rowid`,
		receiptID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments by receipt: %w", err)
	}
	return payments, nil
}

// ListPaymentsByOwner retrieves payments on all of the owner's receipts.
func (s *SQLiteStore) ListPaymentsByOwner(ctx context.Context, ownerID string) ([]*models.Payment, error) {
	var payments []*models.Payment
	err := s.db.SelectContext(ctx, &payments,
		`SELECT p.id, p.receipt_id, p.friend_id, p.amount_paid, p.created_at
		 FROM payments p JOIN receipts r ON r.id = p.receipt_id
		 WHERE r.owner_id = ?
		 ORDER BY p.created_at, p.rowid`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments by owner: %w", err)
	}
	return payments, nil
}
