package allocation

import "github.com/shopspring/decimal"

// Change is the result of settling an amount owed with a payment.
type Change struct {
	// Amount is paid minus owed. Negative when the payment falls short.
	Amount                decimal.Decimal
	IsInsufficientPayment bool
}

// CalculateChange compares a payment with the amount owed. It never fails.
func CalculateChange(amountToPay, amountPaid decimal.Decimal) Change {
	return Change{
		Amount:                amountPaid.Sub(amountToPay),
		IsInsufficientPayment: amountPaid.LessThan(amountToPay),
	}
}
