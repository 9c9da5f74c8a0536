package pricing

import "github.com/shopspring/decimal"

// Item describes a line item used for totals calculation.
type Item struct {
	Qty       int
	UnitPrice Money
}

// Totals aggregates computed cart components. All fields are full precision;
// call Rounded before handing the figures to an order document.
type Totals struct {
	Subtotal Money
	VAT      Money
	Shipping Money
	Total    Money
}

// Compute calculates cart totals given the provided inputs.
func Compute(items []Item, vatRate decimal.Decimal, shipping Money) Totals {
	var subtotal Money
	for _, it := range items {
		if it.Qty <= 0 {
			continue
		}
		subtotal = subtotal.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Qty))))
	}
	if shipping.IsNegative() {
		shipping = decimal.Zero
	}
	vat := subtotal.Mul(vatRate)
	return Totals{
		Subtotal: subtotal,
		VAT:      vat,
		Shipping: shipping,
		Total:    subtotal.Add(vat).Add(shipping),
	}
}

// Rounded returns the totals at minor-unit precision for presentation.
func (t Totals) Rounded() Totals {
	return Totals{
		Subtotal: Present(t.Subtotal),
		VAT:      Present(t.VAT),
		Shipping: Present(t.Shipping),
		Total:    Present(t.Total),
	}
}
