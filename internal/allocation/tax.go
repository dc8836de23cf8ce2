package allocation

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Tax type names as stored and sent over the wire.
const (
	TaxTypePercentage = "percentage"
	TaxTypeAmount     = "amount"
)

// ErrUnknownTaxType is returned by ParseTaxSpec for unsupported type names.
var ErrUnknownTaxType = errors.New("unknown tax type")

// TaxSpec is either a FlatAmount or a Percentage.
type TaxSpec interface {
	// percentage returns the tax rate, in percent, for the snapshot.
	percentage(s Snapshot) decimal.Decimal
}

// FlatAmount is tax printed on the receipt as a currency amount.
type FlatAmount struct {
	Amount decimal.Decimal
}

// Percentage is tax expressed as a rate, e.g. 8.875 for 8.875%.
type Percentage struct {
	Rate decimal.Decimal
}

func (p Percentage) percentage(Snapshot) decimal.Decimal {
	return p.Rate
}

// percentage converts the flat amount to a rate against the pre-tax subtotal
// so that tax is shared in proportion to what each friend ordered.
func (f FlatAmount) percentage(s Snapshot) decimal.Decimal {
	subtotal := s.Total.Sub(f.Amount)
	if s.TipsIncludedInTotal {
		subtotal = subtotal.Sub(s.Tip)
	}
	if !subtotal.IsPositive() {
		return decimal.Zero
	}
	return f.Amount.Div(subtotal).Mul(hundred)
}

func effectivePercentage(s Snapshot) decimal.Decimal {
	if s.Tax == nil {
		return decimal.Zero
	}
	return s.Tax.percentage(s)
}

// ParseTaxSpec builds a TaxSpec from its stored type name and value.
func ParseTaxSpec(taxType string, value decimal.Decimal) (TaxSpec, error) {
	switch taxType {
	case TaxTypePercentage:
		return Percentage{Rate: value}, nil
	case TaxTypeAmount:
		return FlatAmount{Amount: value}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTaxType, taxType)
	}
}
