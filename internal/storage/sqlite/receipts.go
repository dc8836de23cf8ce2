package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/internal/storage"
)

const receiptColumns = `id, owner_id, title, total, tax_type, tax_value, tip, tips_included, created_at, updated_at`

// assignmentRow is one friend on one item unit.
type assignmentRow struct {
	ItemID   string `db:"item_id"`
	Unit     int    `db:"unit"`
	FriendID string `db:"friend_id"`
}

// CreateReceipt persists a new receipt with its participants and items.
func (s *SQLiteStore) CreateReceipt(ctx context.Context, receipt *models.Receipt) error {
	now := time.Now()
	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}
	if receipt.CreatedAt == 0 {
		receipt.CreatedAt = now.Unix()
	}
	receipt.UpdatedAt = receipt.CreatedAt

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if receipt.Title == "" {
		names, err := friendNames(ctx, tx, receipt.FriendIDs)
		if err != nil {
			return err
		}
		receipt.Title = generateTitle(names, now)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO receipts (`+receiptColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		receipt.ID, receipt.OwnerID, receipt.Title, receipt.Total, receipt.TaxType, receipt.TaxValue,
		receipt.Tip, receipt.TipsIncludedInTotal, receipt.CreatedAt, receipt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert receipt: %w", err)
	}

	if err := insertReceiptChildren(ctx, tx, receipt); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateReceipt replaces the receipt's fields, participants and items.
func (s *SQLiteStore) UpdateReceipt(ctx context.Context, receipt *models.Receipt) error {
	now := time.Now()
	receipt.UpdatedAt = now.Unix()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if receipt.Title == "" {
		names, err := friendNames(ctx, tx, receipt.FriendIDs)
		if err != nil {
			return err
		}
		receipt.Title = generateTitle(names, now)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE receipts
		 SET title = ?, total = ?, tax_type = ?, tax_value = ?, tip = ?, tips_included = ?, updated_at = ?
		 WHERE id = ?`,
		receipt.Title, receipt.Total, receipt.TaxType, receipt.TaxValue, receipt.Tip,
		receipt.TipsIncludedInTotal, receipt.UpdatedAt, receipt.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update receipt: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	} else if n == 0 {
		return fmt.Errorf("receipt %s: %w", receipt.ID, storage.ErrNotFound)
	}

	// Item assignments go with their items through ON DELETE CASCADE
	if _, err := tx.ExecContext(ctx, "DELETE FROM items WHERE receipt_id = ?", receipt.ID); err != nil {
		return fmt.Errorf("failed to clear items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM receipt_friends WHERE receipt_id = ?", receipt.ID); err != nil {
		return fmt.Errorf("failed to clear participants: %w", err)
	}

	if err := insertReceiptChildren(ctx, tx, receipt); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// insertReceiptChildren writes participants, items and item assignments.
func insertReceiptChildren(ctx context.Context, tx *sqlx.Tx, receipt *models.Receipt) error {
	for pos, friendID := range receipt.FriendIDs {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO receipt_friends (receipt_id, friend_id, position) VALUES (?, ?, ?)",
			receipt.ID, friendID, pos,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	for pos := range receipt.Items {
		item := &receipt.Items[pos]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO items (id, receipt_id, position, name, price, quantity, split_mode)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			item.ID, receipt.ID, pos, item.Name, item.Price, item.Quantity, item.SplitMode,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}

		for _, a := range item.Assignments {
			for fpos, friendID := range a.FriendIDs {
				_, err := tx.ExecContext(ctx,
					"INSERT INTO item_assignments (item_id, unit, friend_id, position) VALUES (?, ?, ?, ?)",
					item.ID, a.Unit, friendID, fpos,
				)
				if err != nil {
					return fmt.Errorf("failed to insert item assignment: %w", err)
				}
			}
		}
	}
	return nil
}

// GetReceipt retrieves a receipt by ID, including participants, items and assignments.
func (s *SQLiteStore) GetReceipt(ctx context.Context, receiptID string) (*models.Receipt, error) {
	receipt := &models.Receipt{}
	err := s.db.GetContext(ctx, receipt,
		`SELECT `+receiptColumns+` FROM receipts WHERE id = ?`, receiptID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("receipt %s: %w", receiptID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}

	if err := s.db.SelectContext(ctx, &receipt.FriendIDs,
		"SELECT friend_id FROM receipt_friends WHERE receipt_id = ? ORDER BY position",
		receiptID,
	); err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}

	if err := s.db.SelectContext(ctx, &receipt.Items,
		"SELECT id, name, price, quantity, split_mode FROM items WHERE receipt_id = ? ORDER BY position",
		receiptID,
	); err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}

	var rows []assignmentRow
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT a.item_id, a.unit, a.friend_id
		 FROM item_assignments a JOIN items i ON i.id = a.item_id
		 WHERE i.receipt_id = ?
		 ORDER BY i.position, a.unit, a.position`,
		receiptID,
	); err != nil {
		return nil, fmt.Errorf("failed to get item assignments: %w", err)
	}

	// Rows arrive grouped by item then unit
	index := make(map[string]int, len(receipt.Items))
	for i, item := range receipt.Items {
		index[item.ID] = i
	}
	for _, row := range rows {
		item := &receipt.Items[index[row.ItemID]]
		n := len(item.Assignments)
		if n == 0 || item.Assignments[n-1].Unit != row.Unit {
			item.Assignments = append(item.Assignments, models.Assignment{Unit: row.Unit})
			n++
		}
		item.Assignments[n-1].FriendIDs = append(item.Assignments[n-1].FriendIDs, row.FriendID)
	}

	return receipt, nil
}

// DeleteReceipt removes a receipt. Items, assignments and payments cascade.
func (s *SQLiteStore) DeleteReceipt(ctx context.Context, receiptID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM receipts WHERE id = ?", receiptID)
	if err != nil {
		return fmt.Errorf("failed to delete receipt: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("receipt %s: %w", receiptID, storage.ErrNotFound)
	}
	return nil
}

// ListReceipts returns summaries of the owner's receipts, newest first.
func (s *SQLiteStore) ListReceipts(ctx context.Context, ownerID string) ([]*models.ReceiptSummary, error) {
	var summaries []*models.ReceiptSummary
	err := s.db.SelectContext(ctx, &summaries,
		`SELECT r.id, r.title, r.total, r.created_at,
		        (SELECT COUNT(*) FROM receipt_friends rf WHERE rf.receipt_id = r.id) AS participant_count
		 FROM receipts r
		 WHERE r.owner_id = ?
		 ORDER BY r.created_at DESC, r.id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	return summaries, nil
}

// friendNames resolves friend IDs to names, preserving order.
// Unknown IDs are skipped.
func friendNames(ctx context.Context, q sqlx.QueryerContext, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In("SELECT id, name FROM friends WHERE id IN (?)", ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build friend query: %w", err)
	}

	var rows []struct {
		ID   string `db:"id"`
		Name string `db:"name"`
	}
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get friend names: %w", err)
	}

	byID := make(map[string]string, len(rows))
	for _, r := range rows {
		byID[r.ID] = r.Name
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := byID[id]; ok {
			names = append(names, name)
		}
	}
	return names, nil
}
