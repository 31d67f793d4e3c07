package pricing

import "github.com/shopspring/decimal"

// Pricing rules applied to every cart and order summary.
const (
	// TaxRate is the flat tax applied to the items subtotal.
	TaxRate = "0.10"
	// FreeShippingThreshold is the items subtotal above which shipping is free.
	// The comparison is strict: a subtotal of exactly 100 still pays shipping.
	FreeShippingThreshold = 100
	// FlatShippingFee is charged whenever the free-shipping threshold is not exceeded.
	FlatShippingFee = 10
)

var (
	taxRate           = decimal.RequireFromString(TaxRate)
	shippingThreshold = decimal.NewFromInt(FreeShippingThreshold)
	flatShipping      = decimal.NewFromInt(FlatShippingFee)
)

// Line is the minimal view of a cart line the calculator needs.
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// Totals holds the four derived monetary fields of a cart or order.
type Totals struct {
	ItemsTotal decimal.Decimal `json:"items_total"`
	Tax        decimal.Decimal `json:"tax"`
	Shipping   decimal.Decimal `json:"shipping"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// Calculate derives totals from the given lines. It is pure and deterministic:
// the items subtotal is kept unrounded, tax is rounded half-up to 2 decimals,
// and shipping is either free or the flat fee.
func Calculate(lines []Line) Totals {
	itemsTotal := decimal.Zero
	for _, line := range lines {
		itemsTotal = itemsTotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	tax := itemsTotal.Mul(taxRate).Round(2)

	shipping := flatShipping
	if itemsTotal.GreaterThan(shippingThreshold) {
		shipping = decimal.Zero
	}

	return Totals{
		ItemsTotal: itemsTotal,
		Tax:        tax,
		Shipping:   shipping,
		GrandTotal: itemsTotal.Add(tax).Add(shipping),
	}
}

// Zero returns the all-zero totals of a freshly initialized or cleared cart.
// Note this is not Calculate(nil): recomputing an empty line list would charge
// the flat shipping fee, while a cart that was never populated (or was
// explicitly cleared) reports zero for every derived field.
func Zero() Totals {
	return Totals{
		ItemsTotal: decimal.Zero,
		Tax:        decimal.Zero,
		Shipping:   decimal.Zero,
		GrandTotal: decimal.Zero,
	}
}
