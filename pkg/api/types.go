// Package api defines the billsplit.v1 RPC messages.
//
// Messages are plain structs encoded as JSON. Money fields are decimals
// and travel as strings ("12.50").
package api

import "github.com/shopspring/decimal"

// User is a registered account.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	CreatedAt   int64  `json:"createdAt"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	User         *User  `json:"user"`
	Token        string `json:"token"`
	SelfFriendID string `json:"selfFriendId"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
	// SelfFriendID is the friend record that represents the caller on receipts.
	SelfFriendID string `json:"selfFriendId"`
}

// Friend is someone the caller splits receipts with.
type Friend struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsSelf    bool   `json:"isSelf"`
	CreatedAt int64  `json:"createdAt"`
}

type CreateFriendRequest struct {
	Name string `json:"name"`
}

type CreateFriendResponse struct {
	Friend *Friend `json:"friend"`
}

type ListFriendsRequest struct{}

type ListFriendsResponse struct {
	Friends []*Friend `json:"friends"`
}

type DeleteFriendRequest struct {
	FriendID string `json:"friendId"`
}

type DeleteFriendResponse struct{}

// Assignment puts friends on a whole item, or on one unit of it.
type Assignment struct {
	Unit      int      `json:"unit"`
	FriendIDs []string `json:"friendIds"`
}

// Item is a receipt line. Price is per unit.
type Item struct {
	ID          string          `json:"id,omitempty"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	SplitMode   string          `json:"splitMode"` // "whole" or "units"
	Assignments []Assignment    `json:"assignments"`
}

// ReceiptInput is the editable part of a receipt.
type ReceiptInput struct {
	Title               string          `json:"title"`
	Total               decimal.Decimal `json:"total"`
	TaxType             string          `json:"taxType"` // "percentage" or "amount"
	TaxValue            decimal.Decimal `json:"taxValue"`
	Tip                 decimal.Decimal `json:"tip"`
	TipsIncludedInTotal bool            `json:"tipsIncludedInTotal"`
	FriendIDs           []string        `json:"friendIds"`
	Items               []Item          `json:"items"`
}

// Receipt is a stored receipt.
type Receipt struct {
	ID string `json:"id"`
	ReceiptInput
	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`
}

type ReceiptSummary struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	Total            decimal.Decimal `json:"total"`
	ParticipantCount int             `json:"participantCount"`
	CreatedAt        int64           `json:"createdAt"`
}

// FriendAllocation is what one friend owes on a receipt.
type FriendAllocation struct {
	FriendID    string          `json:"friendId"`
	Name        string          `json:"name"`
	AmountToPay decimal.Decimal `json:"amountToPay"`
}

// Mismatch explains why a receipt does not reconcile.
type Mismatch struct {
	CalculatedTotal decimal.Decimal `json:"calculatedTotal"`
	ExpectedTotal   decimal.Decimal `json:"expectedTotal"`
	Difference      decimal.Decimal `json:"difference"`
	Tolerance       decimal.Decimal `json:"tolerance"`
}

// AllocationOutcome carries either Allocations (OK) or a Mismatch.
type AllocationOutcome struct {
	OK          bool                `json:"ok"`
	Allocations []*FriendAllocation `json:"allocations,omitempty"`
	Mismatch    *Mismatch           `json:"mismatch,omitempty"`
}

type CreateReceiptRequest struct {
	ReceiptInput
}

type CreateReceiptResponse struct {
	ReceiptID string             `json:"receiptId"`
	Title     string             `json:"title"`
	Outcome   *AllocationOutcome `json:"outcome"`
}

type GetReceiptRequest struct {
	ReceiptID string `json:"receiptId"`
}

type GetReceiptResponse struct {
	Receipt  *Receipt           `json:"receipt"`
	Outcome  *AllocationOutcome `json:"outcome"`
	Payments []*Payment         `json:"payments"`
}

type UpdateReceiptRequest struct {
	ReceiptID string `json:"receiptId"`
	ReceiptInput
}

type UpdateReceiptResponse struct {
	Outcome *AllocationOutcome `json:"outcome"`
}

type DeleteReceiptRequest struct {
	ReceiptID string `json:"receiptId"`
}

type DeleteReceiptResponse struct{}

type ListReceiptsRequest struct{}

type ListReceiptsResponse struct {
	Receipts []*ReceiptSummary `json:"receipts"`
}

type CalculateAllocationsRequest struct {
	ReceiptID string `json:"receiptId"`
}

type CalculateAllocationsResponse struct {
	Allocations []*FriendAllocation `json:"allocations"`
}

// PreviewAllocationsRequest runs the allocation on an unsaved receipt.
type PreviewAllocationsRequest struct {
	ReceiptInput
}

type PreviewAllocationsResponse struct {
	Outcome *AllocationOutcome `json:"outcome"`
}

// Payment is money a friend handed over for a receipt.
type Payment struct {
	ID         string          `json:"id"`
	ReceiptID  string          `json:"receiptId"`
	FriendID   string          `json:"friendId"`
	AmountPaid decimal.Decimal `json:"amountPaid"`
	CreatedAt  int64           `json:"createdAt"`
}

type RecordPaymentRequest struct {
	ReceiptID  string          `json:"receiptId"`
	FriendID   string          `json:"friendId"`
	AmountPaid decimal.Decimal `json:"amountPaid"`
}

type RecordPaymentResponse struct {
	Payment *Payment `json:"payment"`
	// AmountToPay is the friend's allocation on the receipt.
	AmountToPay decimal.Decimal `json:"amountToPay"`
	// PreviouslyPaid is the sum of the friend's earlier payments.
	PreviouslyPaid decimal.Decimal `json:"previouslyPaid"`
	Change         *Change         `json:"change"`
}

type CalculateChangeRequest struct {
	AmountToPay decimal.Decimal `json:"amountToPay"`
	AmountPaid  decimal.Decimal `json:"amountPaid"`
}

type CalculateChangeResponse struct {
	Change *Change `json:"change"`
}

// Change is paid minus owed; negative when the payment falls short.
type Change struct {
	Change                decimal.Decimal `json:"change"`
	IsInsufficientPayment bool            `json:"isInsufficientPayment"`
}

// FriendBalance totals one friend across all of the caller's receipts.
type FriendBalance struct {
	FriendID    string          `json:"friendId"`
	Name        string          `json:"name"`
	Owed        decimal.Decimal `json:"owed"`
	Paid        decimal.Decimal `json:"paid"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

type ListBalancesRequest struct{}

type ListBalancesResponse struct {
	Balances []*FriendBalance `json:"balances"`
	// SkippedReceipts counts receipts left out because they do not reconcile.
	SkippedReceipts int `json:"skippedReceipts"`
}
