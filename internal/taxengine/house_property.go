package taxengine

import "github.com/shopspring/decimal"

// LetOutNetIncome computes income from a let-out property: net annual value
// less the 30% standard deduction and loan interest. The result is negative
// when interest exceeds the post-deduction value.
func LetOutNetIncome(d RentalDetails) decimal.Decimal {
	nav := nonNegative(d.AnnualValue).Sub(nonNegative(d.MunicipalTaxes))
	standard := zero
	if nav.IsPositive() {
		standard = nav.Mul(HousePropertyStdDeductRate)
	}
	return nav.Sub(standard).Sub(nonNegative(d.InterestOnLoan))
}

// HousePropertyNetIncome sums the net income of every let-out property.
// Self-occupied properties have no annual value; their loan interest is a
// home-loan-interest deduction claim instead.
func HousePropertyNetIncome(properties []RentalDetails) decimal.Decimal {
	net := zero
	for _, p := range properties {
		if p.PropertyType != PropertyLetOut {
			continue
		}
		net = net.Add(LetOutNetIncome(p))
	}
	return net
}

// ClampHousePropertyLoss applies the set-off floor to a signed net property
// income and returns the loss that may be set off, as a positive amount.
func ClampHousePropertyLoss(net decimal.Decimal) (decimal.Decimal, bool) {
	if !net.IsNegative() {
		return zero, false
	}
	return clampTo(net.Neg(), LimitHousePropertyLoss)
}
