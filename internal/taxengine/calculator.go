package taxengine

import "github.com/shopspring/decimal"

// FlatRateGains are the capital-gain buckets taxed outside the slabs.
type FlatRateGains struct {
	Stcg              decimal.Decimal `json:"stcg"`
	LtcgEquityTaxable decimal.Decimal `json:"ltcg_equity_taxable"`
	LtcgOther         decimal.Decimal `json:"ltcg_other"`
}

// Total is the income taxed at flat rates.
func (g FlatRateGains) Total() decimal.Decimal {
	return g.Stcg.Add(g.LtcgEquityTaxable).Add(g.LtcgOther)
}

// SlabLine shows how much income fell into a slab and the tax on it.
type SlabLine struct {
	LowerBound    decimal.Decimal  `json:"lower_bound"`
	UpperBound    *decimal.Decimal `json:"upper_bound"`
	Rate          decimal.Decimal  `json:"rate"`
	TaxableAmount decimal.Decimal  `json:"taxable_amount"`
	Tax           decimal.Decimal  `json:"tax"`
}

// TaxBreakdown is the output of the calculator. Only TotalTax is rounded.
type TaxBreakdown struct {
	BaseTax      decimal.Decimal `json:"base_tax"`
	FlatRateTax  decimal.Decimal `json:"flat_rate_tax"`
	Rebate       decimal.Decimal `json:"rebate"`
	Surcharge    decimal.Decimal `json:"surcharge"`
	Cess         decimal.Decimal `json:"cess"`
	TotalTax     decimal.Decimal `json:"total_tax"`
	SlabsApplied []SlabLine      `json:"slabs_applied"`
}

// SlabTax applies ordered, non-overlapping slabs to income.
func SlabTax(income decimal.Decimal, slabs []Slab) (decimal.Decimal, []SlabLine) {
	tax := zero
	lines := make([]SlabLine, 0, len(slabs))
	for _, s := range slabs {
		top := income
		if s.UpperBound != nil {
			top = decimal.Min(income, *s.UpperBound)
		}
		portion := nonNegative(top.Sub(s.LowerBound))
		if portion.IsZero() {
			continue
		}
		slabTax := portion.Mul(s.Rate)
		tax = tax.Add(slabTax)
		lines = append(lines, SlabLine{
			LowerBound:    s.LowerBound,
			UpperBound:    s.UpperBound,
			Rate:          s.Rate,
			TaxableAmount: portion,
			Tax:           slabTax,
		})
	}
	return tax, lines
}

// FlatRateTax taxes each gain bucket at its statutory rate. The rates are the
// same in both regimes.
func FlatRateTax(g FlatRateGains) decimal.Decimal {
	return g.Stcg.Mul(RateSTCGEquity).
		Add(g.LtcgEquityTaxable.Mul(RateLTCGEquity)).
		Add(g.LtcgOther.Mul(RateLTCGOther))
}

// ComputeTax runs the calculator without optional statutory extras: slab tax
// plus flat-rate tax plus cess, rounded to the rupee at the end.
func ComputeTax(taxableOrdinaryIncome decimal.Decimal, gains FlatRateGains, schedule TaxRegimeSchedule) TaxBreakdown {
	return computeTax(taxableOrdinaryIncome, gains, schedule, Options{})
}

func computeTax(income decimal.Decimal, gains FlatRateGains, schedule TaxRegimeSchedule, opts Options) TaxBreakdown {
	income = nonNegative(income)
	base, lines := SlabTax(income, schedule.Slabs)
	flat := FlatRateTax(gains)
	totalIncome := income.Add(gains.Total())

	rebate := zero
	if opts.ApplyRebate87A && totalIncome.LessThanOrEqual(schedule.Rebate.IncomeLimit) {
		// Tax on equity LTCG under 112A is not eligible for the rebate.
		eligible := base.Add(flat).Sub(gains.LtcgEquityTaxable.Mul(RateLTCGEquity))
		rebate = decimal.Min(nonNegative(eligible), schedule.Rebate.MaxRebate)
	}
	afterRebate := base.Add(flat).Sub(rebate)

	surcharge := zero
	if opts.ApplySurcharge {
		surcharge = afterRebate.Mul(SurchargeRate(totalIncome))
	}

	cess := afterRebate.Add(surcharge).Mul(schedule.CessRate)
	total := afterRebate.Add(surcharge).Add(cess).Round(0)

	return TaxBreakdown{
		BaseTax:      base,
		FlatRateTax:  flat,
		Rebate:       rebate,
		Surcharge:    surcharge,
		Cess:         cess,
		TotalTax:     total,
		SlabsApplied: lines,
	}
}
