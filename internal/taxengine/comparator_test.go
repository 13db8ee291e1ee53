package taxengine

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CompareSuite struct {
	suite.Suite
	input FilingInput
}

func TestCompare(t *testing.T) {
	suite.Run(t, new(CompareSuite))
}

func (s *CompareSuite) SetupTest() {
	s.input = FilingInput{
		Income: []IncomeRecord{
			{ID: "salary", Category: CategorySalary, Amount: dec("1000000"), Details: SalaryDetails{EmployerName: "Acme"}},
		},
		Deductions: []DeductionClaim{
			{ID: "ppf", Section: Section80C, Amount: dec("150000")},
		},
	}
}

func (s *CompareSuite) TestTaxableIncomePerRegime() {
	result, err := Compare(s.input)
	s.Require().NoError(err)

	old, nw := result.OldRegimeResult, result.NewRegimeResult
	assertDecimal(s.T(), "1000000", old.GrossTotalIncome)
	assertDecimal(s.T(), "200000", old.TotalDeductions)
	assertDecimal(s.T(), "800000", old.TaxableIncome)
	assertDecimal(s.T(), "75400", old.TotalTaxLiability)

	assertDecimal(s.T(), "50000", nw.TotalDeductions)
	assertDecimal(s.T(), "950000", nw.TaxableIncome)
	assertDecimal(s.T(), "54600", nw.TotalTaxLiability)

	s.Equal(RegimeNew, result.RecommendedRegime)
	assertDecimal(s.T(), "20800", result.SavingsAmount)
}

func (s *CompareSuite) TestOldRegimeWinsWithLargeDeductions() {
	s.input.Deductions = append(s.input.Deductions,
		DeductionClaim{Section: Section80CCD1B, Amount: dec("50000")},
		DeductionClaim{Section: Section80D, Amount: dec("25000")},
		DeductionClaim{Section: SectionHomeLoanInterest, Amount: dec("200000"), Flags: DeductionFlags{PropertyID: "home"}},
	)

	result, err := Compare(s.input)
	s.Require().NoError(err)

	assertDecimal(s.T(), "525000", result.OldRegimeResult.TaxableIncome)
	assertDecimal(s.T(), "18200", result.OldRegimeResult.TotalTaxLiability)
	s.Equal(RegimeOld, result.RecommendedRegime)
	assertDecimal(s.T(), "36400", result.SavingsAmount)
}

func (s *CompareSuite) TestTieRecommendsNew() {
	s.input.Income = []IncomeRecord{{Category: CategorySalary, Amount: dec("200000")}}
	s.input.Deductions = nil

	result, err := Compare(s.input)
	s.Require().NoError(err)

	s.True(result.OldRegimeResult.TotalTaxLiability.IsZero())
	s.True(result.NewRegimeResult.TotalTaxLiability.IsZero())
	s.Equal(RegimeNew, result.RecommendedRegime)
	s.True(result.SavingsAmount.IsZero())
}

func (s *CompareSuite) TestMissingTaxesPaid() {
	result, err := Compare(s.input)
	s.Require().NoError(err)

	codes := lo.Map(result.Warnings, func(w Warning, _ int) WarningCode { return w.Code })
	s.Contains(codes, WarnMissingTDSData)
	s.True(result.NewRegimeResult.TaxesPaid.IsZero())
	s.False(result.NewRegimeResult.IsRefund)
	assertDecimal(s.T(), "-54600", result.NewRegimeResult.RefundOrPayable)
}

func (s *CompareSuite) TestRefund() {
	s.input.Taxpayer.TaxesPaid = lo.ToPtr(dec("80000"))

	result, err := Compare(s.input)
	s.Require().NoError(err)

	s.True(result.OldRegimeResult.IsRefund)
	assertDecimal(s.T(), "4600", result.OldRegimeResult.RefundOrPayable)
	assertDecimal(s.T(), "25400", result.NewRegimeResult.RefundOrPayable)
	s.NotContains(lo.Map(result.Warnings, func(w Warning, _ int) WarningCode { return w.Code }), WarnMissingTDSData)
}

func (s *CompareSuite) TestDeterministic() {
	s.input.Transactions = []CapitalGainTransaction{{
		ID: "tx", AssetType: AssetProperty, PurchaseDate: date("2015-01-01"), SaleDate: date("2023-01-01"),
		PurchaseAmount: dec("1000000"), SaleAmount: dec("1500000"),
	}}

	first, err := Compare(s.input)
	s.Require().NoError(err)
	second, err := Compare(s.input)
	s.Require().NoError(err)

	a, err := json.Marshal(first)
	s.Require().NoError(err)
	b, err := json.Marshal(second)
	s.Require().NoError(err)
	s.Equal(string(a), string(b))
}

func (s *CompareSuite) TestCapitalGainsTaxedAtFlatRates() {
	s.input.Income = append(s.input.Income, IncomeRecord{ID: "cg", Category: CategoryCapitalGains, Amount: dec("150000")})
	s.input.Transactions = []CapitalGainTransaction{{
		ID: "infy", AssetType: AssetEquity, PurchaseDate: date("2020-01-01"), SaleDate: date("2021-06-01"),
		PurchaseAmount: dec("100000"), SaleAmount: dec("250000"),
	}}

	result, err := Compare(s.input)
	s.Require().NoError(err)

	// The capital gains record stays out of slab income.
	assertDecimal(s.T(), "800000", result.OldRegimeResult.TaxableIncome)
	assertDecimal(s.T(), "50000", result.OldRegimeResult.FlatRateIncome)
	assertDecimal(s.T(), "5000", result.OldRegimeResult.FlatRateTax)
	assertDecimal(s.T(), "5000", result.NewRegimeResult.FlatRateTax)
	// (72500 + 5000) * 1.04
	assertDecimal(s.T(), "80600", result.OldRegimeResult.TotalTaxLiability)
}

func (s *CompareSuite) TestCapitalGainsWithoutTransactions() {
	s.input.Income = []IncomeRecord{{ID: "cg", Category: CategoryCapitalGains, Amount: dec("100000")}}
	s.input.Deductions = nil

	result, err := Compare(s.input)
	s.Require().NoError(err)

	assertDecimal(s.T(), "0", result.OldRegimeResult.TaxableIncome)
	assertDecimal(s.T(), "15600", result.OldRegimeResult.TotalTaxLiability)
	assertDecimal(s.T(), "15600", result.NewRegimeResult.TotalTaxLiability)
	codes := lo.Map(result.Warnings, func(w Warning, _ int) WarningCode { return w.Code })
	s.Contains(codes, WarnCapitalGainsWithoutTransactions)
}

func (s *CompareSuite) TestStructuralFailureAbortsComparison() {
	s.input.Income = append(s.input.Income, IncomeRecord{ID: "bad", Category: CategoryOther, Amount: dec("-1")})
	s.input.Transactions = []CapitalGainTransaction{{
		ID: "inverted", AssetType: AssetEquity, PurchaseDate: date("2022-01-01"), SaleDate: date("2021-01-01"),
	}}

	result, err := Compare(s.input)
	s.Require().Error(err)
	s.ErrorIs(err, ErrInvalidIncomeAmount)
	s.ErrorIs(err, ErrInvalidDateOrder)
	s.Empty(result.RecommendedRegime)
}

func (s *CompareSuite) TestDerivedIncome() {
	s.input.Income = []IncomeRecord{
		{ID: "shop", Category: CategoryBusiness, Details: BusinessDetails{
			Presumptive: true, PresumptiveSection: Section44ADA, GrossReceipts: dec("1000000"),
		}},
		{ID: "flat", Category: CategoryRental, Details: RentalDetails{
			PropertyID: "flat", PropertyType: PropertyLetOut,
			AnnualValue: dec("100000"), MunicipalTaxes: dec("10000"), InterestOnLoan: dec("300000"),
		}},
	}
	s.input.Deductions = nil

	result, err := Compare(s.input)
	s.Require().NoError(err)

	assertDecimal(s.T(), "500000", result.Income.Total(CategoryBusiness))
	assertDecimal(s.T(), "200000", result.Deductions.PerSection[SectionHousePropertyLoss])
	assertDecimal(s.T(), "250000", result.OldRegimeResult.TotalDeductions)
}

func (s *CompareSuite) TestHousePropertyLossIsNettedBeforeFloor() {
	s.input.Income = []IncomeRecord{
		{ID: "salary", Category: CategorySalary, Amount: dec("1500000")},
		// 200000 less 30% less 40000 interest: +100000
		{ID: "a", Category: CategoryRental, Details: RentalDetails{
			PropertyID: "a", PropertyType: PropertyLetOut,
			AnnualValue: dec("200000"), InterestOnLoan: dec("40000"),
		}},
		{ID: "b", Category: CategoryRental, Details: RentalDetails{
			PropertyID: "b", PropertyType: PropertyLetOut, InterestOnLoan: dec("350000"),
		}},
	}
	s.input.Deductions = nil

	result, err := Compare(s.input)
	s.Require().NoError(err)

	old := result.OldRegimeResult
	assertDecimal(s.T(), "1500000", old.GrossTotalIncome)
	assertDecimal(s.T(), "200000", result.Deductions.PerSection[SectionHousePropertyLoss])
	assertDecimal(s.T(), "250000", old.TotalDeductions)
	assertDecimal(s.T(), "1250000", old.TaxableIncome)
	assertDecimal(s.T(), "1450000", result.NewRegimeResult.TaxableIncome)

	warning, ok := lo.Find(result.Warnings, func(w Warning) bool { return w.Code == WarnLimitExceeded })
	s.Require().True(ok)
	s.Equal(string(SectionHousePropertyLoss), warning.Section)
	s.Require().NotNil(warning.Claimed)
	assertDecimal(s.T(), "250000", *warning.Claimed)
}

func (s *CompareSuite) TestLetOutInterestClaimReducesRentalIncome() {
	s.input.Income = append(s.input.Income, IncomeRecord{ID: "a", Category: CategoryRental, Details: RentalDetails{
		PropertyID: "a", PropertyType: PropertyLetOut, AnnualValue: dec("200000"), InterestOnLoan: dec("40000"),
	}})
	s.input.Deductions = append(s.input.Deductions, DeductionClaim{
		ID: "loan", Section: SectionHomeLoanInterest, Amount: dec("30000"),
		Flags: DeductionFlags{PropertyID: "a", PropertyType: PropertyLetOut},
	})

	result, err := Compare(s.input)
	s.Require().NoError(err)

	assertDecimal(s.T(), "70000", result.Income.Total(CategoryRental))
	assertDecimal(s.T(), "1070000", result.OldRegimeResult.GrossTotalIncome)
	assertDecimal(s.T(), "0", result.Deductions.PerSection[SectionHousePropertyLoss])
	assertDecimal(s.T(), "200000", result.OldRegimeResult.TotalDeductions)
}

func TestResolveDerivedIncome_SingleLossClaim(t *testing.T) {
	records := []IncomeRecord{
		{ID: "a", Category: CategoryRental, Details: RentalDetails{PropertyType: PropertyLetOut, InterestOnLoan: dec("120000")}},
		{ID: "b", Category: CategoryRental, Details: RentalDetails{PropertyType: PropertyLetOut, InterestOnLoan: dec("130000")}},
	}
	claims := []DeductionClaim{
		{ID: "ppf", Section: Section80C, Amount: dec("1000")},
		{ID: "loan", Section: SectionHomeLoanInterest, Amount: dec("5000"), Flags: DeductionFlags{PropertyType: PropertyLetOut}},
	}

	out, derived := ResolveDerivedIncome(records, claims)

	assertDecimal(t, "0", out[0].Amount)
	assertDecimal(t, "0", out[1].Amount)
	require.Len(t, derived, 3)
	assertDecimal(t, "1000", derived[0].Amount)
	assertDecimal(t, "0", derived[1].Amount)
	assertDecimal(t, "5000", claims[1].Amount)
	assert.Equal(t, SectionHousePropertyLoss, derived[2].Section)
	assert.Equal(t, "a", derived[2].ID)
	assertDecimal(t, "255000", derived[2].Amount)
}

func TestResolveDerivedIncome_DoesNotModifyInput(t *testing.T) {
	records := []IncomeRecord{{ID: "b", Category: CategoryBusiness, Details: BusinessDetails{
		Presumptive: true, PresumptiveSection: Section44AD, GrossReceipts: dec("100000"),
	}}}

	out, claims := ResolveDerivedIncome(records, nil)

	assert.True(t, records[0].Amount.IsZero())
	assertDecimal(t, "8000", out[0].Amount)
	assert.Empty(t, claims)
}

func TestEngine_ConcurrentUse(t *testing.T) {
	e := NewEngine(Options{ApplyRebate87A: true, ApplySurcharge: true})
	in := FilingInput{Income: []IncomeRecord{{Category: CategorySalary, Amount: dec("1250000")}}}

	want, err := e.Compare(in)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := e.Compare(in)
			assert.NoError(t, err)
			assert.True(t, want.NewRegimeResult.TotalTaxLiability.Equal(got.NewRegimeResult.TotalTaxLiability))
		}()
	}
	wg.Wait()
}
