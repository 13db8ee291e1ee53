package taxengine

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Options switches on statutory extras. The zero value computes slab tax,
// flat-rate tax and cess only.
type Options struct {
	ApplyRebate87A bool
	ApplySurcharge bool
	AgeBasedSlabs  bool
}

// Engine runs the comparison with a fixed set of options. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	opts Options
}

func NewEngine(opts Options) *Engine {
	return &Engine{opts: opts}
}

var defaultEngine = NewEngine(Options{})

// Options returns the switches the engine was built with.
func (e *Engine) Options() Options { return e.opts }

// TaxpayerProfile carries the per-filing facts that are not income records.
type TaxpayerProfile struct {
	AgeCategory AgeCategory
	// TaxesPaid is TDS plus advance tax. Nil means the figure is unknown.
	TaxesPaid *decimal.Decimal
}

// FilingInput is everything the engine needs for one filing.
type FilingInput struct {
	Income       []IncomeRecord
	Deductions   []DeductionClaim
	Transactions []CapitalGainTransaction
	Taxpayer     TaxpayerProfile
}

type TaxComputationResult struct {
	Regime            Regime          `json:"regime"`
	GrossTotalIncome  decimal.Decimal `json:"gross_total_income"`
	TotalDeductions   decimal.Decimal `json:"total_deductions"`
	TaxableIncome     decimal.Decimal `json:"taxable_income"`
	FlatRateIncome    decimal.Decimal `json:"flat_rate_income"`
	BaseTax           decimal.Decimal `json:"base_tax"`
	FlatRateTax       decimal.Decimal `json:"flat_rate_tax"`
	Rebate            decimal.Decimal `json:"rebate"`
	Surcharge         decimal.Decimal `json:"surcharge"`
	Cess              decimal.Decimal `json:"cess"`
	TotalTaxLiability decimal.Decimal `json:"total_tax_liability"`
	TaxesPaid         decimal.Decimal `json:"taxes_paid"`
	IsRefund          bool            `json:"is_refund"`
	// RefundOrPayable is positive for a refund and negative for tax payable.
	RefundOrPayable decimal.Decimal `json:"refund_or_payable"`
	SlabsApplied    []SlabLine      `json:"slabs_applied"`
}

type RegimeComparison struct {
	OldRegimeResult   TaxComputationResult `json:"old_regime_result"`
	NewRegimeResult   TaxComputationResult `json:"new_regime_result"`
	RecommendedRegime Regime               `json:"recommended_regime"`
	SavingsAmount     decimal.Decimal      `json:"savings_amount"`
	Income            IncomeSummary        `json:"income"`
	Deductions        DeductionSummary     `json:"deductions"`
	CapitalGains      CapitalGainsSummary  `json:"capital_gains"`
	Warnings          []Warning            `json:"warnings"`
}

// Compare runs the default engine.
func Compare(in FilingInput) (RegimeComparison, error) {
	return defaultEngine.Compare(in)
}

// ComputeTax runs the calculator with the engine's options.
func (e *Engine) ComputeTax(taxableOrdinaryIncome decimal.Decimal, gains FlatRateGains, schedule TaxRegimeSchedule) TaxBreakdown {
	return computeTax(taxableOrdinaryIncome, gains, schedule, e.opts)
}

// Compare computes the filing under both regimes and recommends the one with
// the strictly lower liability, NEW on a tie. Any structural failure in the
// inputs aborts before tax is computed.
func (e *Engine) Compare(in FilingInput) (RegimeComparison, error) {
	income, claims := ResolveDerivedIncome(in.Income, in.Deductions)

	incomeSummary, incomeErr := Aggregate(income)
	deductionSummary, deductionErr := ValidateDeductions(claims)
	gainsSummary, gainsErr := ClassifyCapitalGains(in.Transactions)
	if err := errors.Join(incomeErr, deductionErr, gainsErr); err != nil {
		return RegimeComparison{}, err
	}

	warnings := make([]Warning, 0, len(deductionSummary.Warnings)+len(gainsSummary.Warnings)+2)
	warnings = append(warnings, deductionSummary.Warnings...)
	warnings = append(warnings, gainsSummary.Warnings...)

	// Capital gains are taxed through the flat-rate buckets, not the slabs.
	recordedGains := incomeSummary.Total(CategoryCapitalGains)
	ordinary := nonNegative(incomeSummary.GrossTotalIncome.Sub(recordedGains))
	gains := gainsSummary.FlatRateGains()
	if recordedGains.IsPositive() && len(in.Transactions) == 0 {
		gains.Stcg = gains.Stcg.Add(recordedGains)
		warnings = append(warnings, Warning{
			Code:    WarnCapitalGainsWithoutTransactions,
			Message: fmt.Sprintf("capital gains of %s have no transactions and are taxed as short term", recordedGains.StringFixed(2)),
		})
	}

	paid := zero
	if in.Taxpayer.TaxesPaid != nil {
		paid = nonNegative(*in.Taxpayer.TaxesPaid)
	} else {
		warnings = append(warnings, Warning{
			Code:    WarnMissingTDSData,
			Message: "no TDS or advance tax figure supplied, treated as 0",
		})
	}

	base := regimeInput{
		gross:    incomeSummary.GrossTotalIncome,
		ordinary: ordinary,
		gains:    gains,
		paid:     paid,
		age:      in.Taxpayer.AgeCategory,
	}
	oldResult := e.computeRegime(RegimeOld, base, deductionSummary.AllowedTotal)
	newResult := e.computeRegime(RegimeNew, base, zero)

	recommended := RegimeNew
	if oldResult.TotalTaxLiability.LessThan(newResult.TotalTaxLiability) {
		recommended = RegimeOld
	}

	return RegimeComparison{
		OldRegimeResult:   oldResult,
		NewRegimeResult:   newResult,
		RecommendedRegime: recommended,
		SavingsAmount:     oldResult.TotalTaxLiability.Sub(newResult.TotalTaxLiability).Abs(),
		Income:            incomeSummary,
		Deductions:        deductionSummary,
		CapitalGains:      gainsSummary,
		Warnings:          warnings,
	}, nil
}

type regimeInput struct {
	gross    decimal.Decimal
	ordinary decimal.Decimal
	gains    FlatRateGains
	paid     decimal.Decimal
	age      AgeCategory
}

func (e *Engine) computeRegime(regime Regime, in regimeInput, allowed decimal.Decimal) TaxComputationResult {
	schedule := ScheduleFor(regime, in.age, e.opts.AgeBasedSlabs)
	deductions := schedule.StandardDeduction.Add(allowed)
	taxable := nonNegative(in.ordinary.Sub(deductions))
	breakdown := e.ComputeTax(taxable, in.gains, schedule)
	refund := in.paid.Sub(breakdown.TotalTax)

	return TaxComputationResult{
		Regime:            regime,
		GrossTotalIncome:  in.gross,
		TotalDeductions:   deductions,
		TaxableIncome:     taxable,
		FlatRateIncome:    in.gains.Total(),
		BaseTax:           breakdown.BaseTax,
		FlatRateTax:       breakdown.FlatRateTax,
		Rebate:            breakdown.Rebate,
		Surcharge:         breakdown.Surcharge,
		Cess:              breakdown.Cess,
		TotalTaxLiability: breakdown.TotalTax,
		TaxesPaid:         in.paid,
		IsRefund:          refund.IsPositive(),
		RefundOrPayable:   refund,
		SlabsApplied:      breakdown.SlabsApplied,
	}
}

// ResolveDerivedIncome fills in amounts the taxpayer left for the engine to
// work out. A presumptive business record with a zero amount gets its deemed
// income. Zero-amount let-out rental records and let-out loan interest claims
// are netted into one house property figure: a gain is carried on the first
// such record, a loss becomes a single house-property-loss claim. Absorbed
// interest claims stay in place with a zero amount.
// The inputs are not modified.
func ResolveDerivedIncome(records []IncomeRecord, claims []DeductionClaim) ([]IncomeRecord, []DeductionClaim) {
	outRecords := make([]IncomeRecord, len(records))
	outClaims := make([]DeductionClaim, len(claims), len(claims)+1)
	copy(outClaims, claims)

	var (
		properties []RentalDetails
		carrier    = -1
		lossID     string
	)
	for i, r := range records {
		outRecords[i] = r
		if !r.Amount.IsZero() {
			continue
		}
		switch d := r.Details.(type) {
		case BusinessDetails:
			if d.Presumptive && r.Category == CategoryBusiness {
				outRecords[i].Amount = PresumptiveIncome(d)
			}
		case RentalDetails:
			if d.PropertyType != PropertyLetOut || r.Category != CategoryRental {
				continue
			}
			properties = append(properties, d)
			if carrier < 0 {
				carrier = i
				lossID = r.ID
			}
		}
	}

	net := HousePropertyNetIncome(properties)
	for i, c := range claims {
		if !isLetOutInterest(c) || c.Amount.IsNegative() {
			continue
		}
		net = net.Sub(c.Amount)
		outClaims[i].Amount = zero
		if lossID == "" {
			lossID = c.ID
		}
	}
	if !net.IsNegative() {
		if carrier >= 0 {
			outRecords[carrier].Amount = net
		}
		return outRecords, outClaims
	}
	outClaims = append(outClaims, DeductionClaim{
		ID:      lossID,
		Section: SectionHousePropertyLoss,
		Amount:  net.Neg(),
		Flags:   DeductionFlags{PropertyType: PropertyLetOut},
	})
	return outRecords, outClaims
}
