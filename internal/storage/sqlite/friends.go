package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/internal/storage"
)

// CreateFriend persists a new friend.
func (s *SQLiteStore) CreateFriend(ctx context.Context, friend *models.Friend) error {
	if friend.ID == "" {
		friend.ID = uuid.New().String()
	}
	if friend.CreatedAt == 0 {
		friend.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO friends (id, owner_id, user_id, name, created_at) VALUES (?, ?, ?, ?, ?)",
		friend.ID, friend.OwnerID, friend.UserID, friend.Name, friend.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert friend: %w", err)
	}
	return nil
}

// GetFriend retrieves a friend by ID.
func (s *SQLiteStore) GetFriend(ctx context.Context, friendID string) (*models.Friend, error) {
	friend := &models.Friend{}
	err := s.db.GetContext(ctx, friend,
		"SELECT id, owner_id, user_id, name, created_at FROM friends WHERE id = ?",
		friendID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("friend %s: %w", friendID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get friend: %w", err)
	}
	return friend, nil
}

// ListFriends returns the owner's friends, oldest first.
func (s *SQLiteStore) ListFriends(ctx context.Context, ownerID string) ([]*models.Friend, error) {
	var friends []*models.Friend
	err := s.db.SelectContext(ctx, &friends,
		`SELECT id, owner_id, user_id, name, created_at
		 FROM friends WHERE owner_id = ?
		 ORDER BY created_at, rowid`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	return friends, nil
}

// DeleteFriend removes a friend that no receipt or payment references.
func (s *SQLiteStore) DeleteFriend(ctx context.Context, friendID string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var refs int
	err = tx.GetContext(ctx, &refs,
		`SELECT (SELECT COUNT(*) FROM receipt_friends WHERE friend_id = ?)
		      + (SELECT COUNT(*) FROM item_assignments WHERE friend_id = ?)
		      + (SELECT COUNT(*) FROM payments WHERE friend_id = ?)`,
		friendID, friendID, friendID,
	)
	if err != nil {
		return fmt.Errorf("failed to check friend references: %w", err)
	}
	if refs > 0 {
		return fmt.Errorf("friend %s: %w", friendID, storage.ErrFriendInUse)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM friends WHERE id = ?", friendID)
	if err != nil {
		return fmt.Errorf("failed to delete friend: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("friend %s: %w", friendID, storage.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
