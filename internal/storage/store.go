// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billsplit/internal/models"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrFriendInUse is returned when deleting a friend that is still on a
	// receipt or has recorded payments.
	ErrFriendInUse = errors.New("friend is still referenced by receipts or payments")

	// ErrEmailTaken is returned when creating a user with an existing email.
	ErrEmailTaken = errors.New("email already registered")
)

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// FriendStore persists each user's friend list.
type FriendStore interface {
	// CreateFriend persists a new friend. ID and CreatedAt are assigned when empty.
	CreateFriend(ctx context.Context, friend *models.Friend) error

	GetFriend(ctx context.Context, friendID string) (*models.Friend, error)

	// ListFriends returns the owner's friends, oldest first.
	ListFriends(ctx context.Context, ownerID string) ([]*models.Friend, error)

	// DeleteFriend removes a friend. Returns ErrFriendInUse while the friend
	// participates in a receipt.
	DeleteFriend(ctx context.Context, friendID string) error
}

// ReceiptStore persists receipts together with their items and assignments.
type ReceiptStore interface {
	// CreateReceipt persists a new receipt.
	// The receipt and item IDs are populated by the store.
	CreateReceipt(ctx context.Context, receipt *models.Receipt) error

	// GetReceipt retrieves a fully hydrated receipt.
	// Returns ErrNotFound if the receipt does not exist.
	GetReceipt(ctx context.Context, receiptID string) (*models.Receipt, error)

	// UpdateReceipt replaces a receipt's fields, participants and items.
	// Returns ErrNotFound if the receipt does not exist.
	UpdateReceipt(ctx context.Context, receipt *models.Receipt) error

	// DeleteReceipt removes a receipt and everything attached to it.
	DeleteReceipt(ctx context.Context, receiptID string) error

	// ListReceipts returns summaries of the owner's receipts, newest first.
	ListReceipts(ctx context.Context, ownerID string) ([]*models.ReceiptSummary, error)
}

// PaymentStore persists payments made against receipts.
type PaymentStore interface {
	CreatePayment(ctx context.Context, payment *models.Payment) error
	// AddPayment creates the payment and returns the sum of the friend's
	// earlier payments on the same receipt, read atomically with the insert.
	AddPayment(ctx context.Context, payment *models.Payment) (previouslyPaid decimal.Decimal, err error)
	ListPaymentsByReceipt(ctx context.Context, receiptID string) ([]*models.Payment, error)

	// ListPaymentsByOwner returns payments on every receipt the owner holds.
	ListPaymentsByOwner(ctx context.Context, ownerID string) ([]*models.Payment, error)
}

// Store defines the full storage surface used by the services.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	UserStore
	FriendStore
	ReceiptStore
	PaymentStore

	// Close releases any resources held by the store.
	Close() error
}
