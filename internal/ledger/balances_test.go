package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculateBalances(t *testing.T) {
	receipts := []ReceiptAllocation{
		{
			ReceiptID: "r1",
			Shares: []Share{
				{FriendID: "alice", Name: "Alice", AmountToPay: d("12.50")},
				{FriendID: "bob", Name: "Bob", AmountToPay: d("7.25")},
			},
		},
		{
			ReceiptID: "r2",
			Shares: []Share{
				{FriendID: "bob", Name: "Bob", AmountToPay: d("3.00")},
				{FriendID: "charlie", Name: "Charlie", AmountToPay: d("9.99")},
			},
		},
	}
	payments := []PaymentForBalance{
		{ReceiptID: "r1", FriendID: "alice", Amount: d("20.00")},
		{ReceiptID: "r2", FriendID: "bob", Amount: d("3.00")},
		{ReceiptID: "r1", FriendID: "bob", Amount: d("5.00")},
	}

	balances := CalculateBalances(receipts, payments)
	require.Len(t, balances, 3)

	assert.Equal(t, "alice", balances[0].FriendID)
	assert.Equal(t, "Alice", balances[0].Name)
	assert.True(t, balances[0].Owed.Equal(d("12.50")))
	assert.True(t, balances[0].Paid.Equal(d("20.00")))
	assert.True(t, balances[0].Outstanding.Equal(d("-7.50")), "overpayment shows as negative")

	assert.Equal(t, "bob", balances[1].FriendID)
	assert.True(t, balances[1].Owed.Equal(d("10.25")))
	assert.True(t, balances[1].Paid.Equal(d("8.00")))
	assert.True(t, balances[1].Outstanding.Equal(d("2.25")))

	assert.Equal(t, "charlie", balances[2].FriendID)
	assert.True(t, balances[2].Paid.IsZero())
	assert.True(t, balances[2].Outstanding.Equal(d("9.99")))
}

func TestCalculateBalances_IgnoresPaymentsOnExcludedReceipts(t *testing.T) {
	receipts := []ReceiptAllocation{
		{ReceiptID: "r1", Shares: []Share{{FriendID: "alice", Name: "Alice", AmountToPay: d("10")}}},
	}
	payments := []PaymentForBalance{
		{ReceiptID: "r1", FriendID: "alice", Amount: d("4")},
		{ReceiptID: "skipped", FriendID: "alice", Amount: d("100")},
		{ReceiptID: "skipped", FriendID: "dave", Amount: d("50")},
	}

	balances := CalculateBalances(receipts, payments)
	require.Len(t, balances, 1)
	assert.True(t, balances[0].Paid.Equal(d("4")))
	assert.True(t, balances[0].Outstanding.Equal(d("6")))
}

func TestCalculateBalances_PaymentOnlyFriend(t *testing.T) {
	receipts := []ReceiptAllocation{
		{ReceiptID: "r1", Shares: []Share{{FriendID: "alice", Name: "Alice", AmountToPay: d("10")}}},
	}
	payments := []PaymentForBalance{
		{ReceiptID: "r1", FriendID: "bob", Amount: d("2")},
	}

	balances := CalculateBalances(receipts, payments)
	require.Len(t, balances, 2)
	assert.Equal(t, "bob", balances[1].FriendID)
	assert.Empty(t, balances[1].Name)
	assert.True(t, balances[1].Outstanding.Equal(d("-2")))
}

func TestCalculateBalances_Empty(t *testing.T) {
	assert.Empty(t, CalculateBalances(nil, nil))
}
