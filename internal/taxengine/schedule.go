package taxengine

import "github.com/shopspring/decimal"

// Regime is one of the two mutually exclusive tax schemes.
type Regime string

const (
	RegimeOld Regime = "OLD"
	RegimeNew Regime = "NEW"
)

// AgeCategory selects the age-dependent old-regime slabs.
type AgeCategory string

const (
	AgeBelow60     AgeCategory = "below60"
	AgeSenior      AgeCategory = "senior"
	AgeSuperSenior AgeCategory = "superSenior"
)

// Slab is one band of a progressive schedule. A nil UpperBound is open ended.
type Slab struct {
	LowerBound decimal.Decimal  `json:"lower_bound"`
	UpperBound *decimal.Decimal `json:"upper_bound"`
	Rate       decimal.Decimal  `json:"rate"`
}

// Rebate describes the section 87A rebate of a regime.
type Rebate struct {
	IncomeLimit decimal.Decimal `json:"income_limit"`
	MaxRebate   decimal.Decimal `json:"max_rebate"`
}

// TaxRegimeSchedule is the constant data of a regime.
type TaxRegimeSchedule struct {
	Regime            Regime          `json:"regime"`
	Name              string          `json:"name"`
	Slabs             []Slab          `json:"slabs"`
	StandardDeduction decimal.Decimal `json:"standard_deduction"`
	CessRate          decimal.Decimal `json:"cess_rate"`
	Rebate            Rebate          `json:"rebate"`
}

// SurchargeSlab applies Rate to the tax of anyone whose total income exceeds
// Above.
type SurchargeSlab struct {
	Above decimal.Decimal
	Rate  decimal.Decimal
}

func slab(lower, upper int64, rate string) Slab {
	s := Slab{LowerBound: decimal.NewFromInt(lower), Rate: decimal.RequireFromString(rate)}
	if upper >= 0 {
		u := decimal.NewFromInt(upper)
		s.UpperBound = &u
	}
	return s
}

const open = -1

var (
	oldRegime = TaxRegimeSchedule{
		Regime: RegimeOld,
		Name:   "Old regime",
		Slabs: []Slab{
			slab(0, 250000, "0"),
			slab(250000, 500000, "0.05"),
			slab(500000, 1000000, "0.20"),
			slab(1000000, open, "0.30"),
		},
		StandardDeduction: StandardDeduction,
		CessRate:          CessRate,
		Rebate:            Rebate{IncomeLimit: decimal.NewFromInt(500000), MaxRebate: decimal.NewFromInt(12500)},
	}

	oldRegimeSenior = TaxRegimeSchedule{
		Regime: RegimeOld,
		Name:   "Old regime (senior citizen)",
		Slabs: []Slab{
			slab(0, 300000, "0"),
			slab(300000, 500000, "0.05"),
			slab(500000, 1000000, "0.20"),
			slab(1000000, open, "0.30"),
		},
		StandardDeduction: StandardDeduction,
		CessRate:          CessRate,
		Rebate:            Rebate{IncomeLimit: decimal.NewFromInt(500000), MaxRebate: decimal.NewFromInt(12500)},
	}

	oldRegimeSuperSenior = TaxRegimeSchedule{
		Regime: RegimeOld,
		Name:   "Old regime (super senior citizen)",
		Slabs: []Slab{
			slab(0, 500000, "0"),
			slab(500000, 1000000, "0.20"),
			slab(1000000, open, "0.30"),
		},
		StandardDeduction: StandardDeduction,
		CessRate:          CessRate,
		Rebate:            Rebate{IncomeLimit: decimal.NewFromInt(500000), MaxRebate: decimal.NewFromInt(12500)},
	}

	newRegime = TaxRegimeSchedule{
		Regime: RegimeNew,
		Name:   "New regime",
		Slabs: []Slab{
			slab(0, 300000, "0"),
			slab(300000, 600000, "0.05"),
			slab(600000, 900000, "0.10"),
			slab(900000, 1200000, "0.15"),
			slab(1200000, 1500000, "0.20"),
			slab(1500000, open, "0.30"),
		},
		StandardDeduction: StandardDeduction,
		CessRate:          CessRate,
		Rebate:            Rebate{IncomeLimit: decimal.NewFromInt(700000), MaxRebate: decimal.NewFromInt(25000)},
	}

	surchargeSlabs = []SurchargeSlab{
		{Above: decimal.NewFromInt(50000000), Rate: decimal.RequireFromString("0.37")},
		{Above: decimal.NewFromInt(20000000), Rate: decimal.RequireFromString("0.25")},
		{Above: decimal.NewFromInt(10000000), Rate: decimal.RequireFromString("0.15")},
		{Above: decimal.NewFromInt(5000000), Rate: decimal.RequireFromString("0.10")},
	}
)

// OldRegime returns the standard old-regime schedule.
func OldRegime() TaxRegimeSchedule { return oldRegime.clone() }

// NewRegime returns the new-regime schedule.
func NewRegime() TaxRegimeSchedule { return newRegime.clone() }

// ScheduleFor picks the schedule of regime. Age only matters for the old
// regime and only when ageBased is set.
func ScheduleFor(regime Regime, age AgeCategory, ageBased bool) TaxRegimeSchedule {
	if regime == RegimeNew {
		return NewRegime()
	}
	if !ageBased {
		return OldRegime()
	}
	switch age {
	case AgeSuperSenior:
		return oldRegimeSuperSenior.clone()
	case AgeSenior:
		return oldRegimeSenior.clone()
	default:
		return OldRegime()
	}
}

// SurchargeRate returns the surcharge rate for a total income.
func SurchargeRate(totalIncome decimal.Decimal) decimal.Decimal {
	for _, s := range surchargeSlabs {
		if totalIncome.GreaterThan(s.Above) {
			return s.Rate
		}
	}
	return zero
}

// clone copies the slab slice so callers cannot alter the shared tables.
func (s TaxRegimeSchedule) clone() TaxRegimeSchedule {
	s.Slabs = append([]Slab(nil), s.Slabs...)
	return s
}
