package taxengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_Empty(t *testing.T) {
	summary, err := Aggregate(nil)
	require.NoError(t, err)

	assertDecimal(t, "0", summary.GrossTotalIncome)
	for _, c := range Categories {
		assertDecimal(t, "0", summary.Total(c), c)
	}
}

func TestAggregate_SumsPerCategory(t *testing.T) {
	records := []IncomeRecord{
		{ID: "s1", Category: CategorySalary, Amount: dec("600000"), Details: SalaryDetails{EmployerName: "Acme"}},
		{ID: "s2", Category: CategorySalary, Amount: dec("400000")},
		{ID: "i1", Category: CategoryInterest, Amount: dec("12000.50"), Details: InterestDetails{Source: "savings"}},
		{ID: "o1", Category: CategoryOther, Amount: dec("0")},
	}

	summary, err := Aggregate(records)
	require.NoError(t, err)

	assertDecimal(t, "1000000", summary.Total(CategorySalary))
	assertDecimal(t, "12000.50", summary.Total(CategoryInterest))
	assertDecimal(t, "0", summary.Total(CategoryBusiness))
	assertDecimal(t, "1012000.50", summary.GrossTotalIncome)
}

func TestAggregate_OrderIndependent(t *testing.T) {
	a := IncomeRecord{ID: "a", Category: CategorySalary, Amount: dec("100")}
	b := IncomeRecord{ID: "b", Category: CategoryRental, Amount: dec("250")}

	first, err := Aggregate([]IncomeRecord{a, b})
	require.NoError(t, err)
	second, err := Aggregate([]IncomeRecord{b, a})
	require.NoError(t, err)

	assert.True(t, first.GrossTotalIncome.Equal(second.GrossTotalIncome))
}

func TestAggregate_StructuralFailures(t *testing.T) {
	tests := []struct {
		name   string
		record IncomeRecord
		want   error
	}{
		{"negative amount", IncomeRecord{ID: "x", Category: CategorySalary, Amount: dec("-1")}, ErrInvalidIncomeAmount},
		{"unknown category", IncomeRecord{ID: "x", Category: "lottery", Amount: dec("1")}, ErrUnknownCategory},
		{"details mismatch", IncomeRecord{ID: "x", Category: CategorySalary, Amount: dec("1"), Details: RentalDetails{}}, ErrMetadataMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Aggregate([]IncomeRecord{tt.record})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, IsStructural(err))

			var recErr *RecordError
			require.ErrorAs(t, err, &recErr)
			assert.Equal(t, "x", recErr.RecordID)
			assert.Equal(t, 0, recErr.Index)
		})
	}
}

func TestAggregate_ReportsEveryBadRecord(t *testing.T) {
	records := []IncomeRecord{
		{ID: "ok", Category: CategorySalary, Amount: dec("10")},
		{ID: "neg", Category: CategorySalary, Amount: dec("-10")},
		{ID: "bad", Category: "unknown", Amount: dec("10")},
	}

	_, err := Aggregate(records)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidIncomeAmount)
	assert.ErrorIs(t, err, ErrUnknownCategory)
	assert.Contains(t, err.Error(), "record 1 (neg)")
	assert.Contains(t, err.Error(), "record 2 (bad)")
}

func TestParseAmount(t *testing.T) {
	d, err := ParseAmount("")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	d, err = ParseAmount("150000.75")
	require.NoError(t, err)
	assertDecimal(t, "150000.75", d)

	_, err = ParseAmount("abc")
	assert.ErrorIs(t, err, ErrInvalidIncomeAmount)

	_, err = ParseAmount("-5")
	assert.ErrorIs(t, err, ErrInvalidIncomeAmount)
}

func TestPresumptiveIncome(t *testing.T) {
	t.Run("44AD splits digital and cash receipts", func(t *testing.T) {
		got := PresumptiveIncome(BusinessDetails{
			Presumptive:        true,
			PresumptiveSection: Section44AD,
			GrossReceipts:      dec("1000000"),
			DigitalReceipts:    dec("400000"),
		})
		// 400000 * 6% + 600000 * 8%
		assertDecimal(t, "72000", got)
	})

	t.Run("44ADA deems half of receipts", func(t *testing.T) {
		got := PresumptiveIncome(BusinessDetails{
			Presumptive:        true,
			PresumptiveSection: Section44ADA,
			GrossReceipts:      dec("1000000"),
		})
		assertDecimal(t, "500000", got)
	})

	t.Run("digital receipts cannot exceed gross", func(t *testing.T) {
		got := PresumptiveIncome(BusinessDetails{
			PresumptiveSection: Section44AD,
			GrossReceipts:      dec("100000"),
			DigitalReceipts:    dec("500000"),
		})
		assertDecimal(t, "6000", got)
	})
}

func TestHousePropertyNetIncome(t *testing.T) {
	letOut := RentalDetails{
		PropertyID:     "flat-1",
		PropertyType:   PropertyLetOut,
		AnnualValue:    dec("100000"),
		MunicipalTaxes: dec("10000"),
		InterestOnLoan: dec("300000"),
	}
	// NAV 90000, less 30% = 63000, less interest 300000.
	assertDecimal(t, "-237000", LetOutNetIncome(letOut))

	selfOccupied := RentalDetails{PropertyType: PropertySelfOccupied, InterestOnLoan: dec("150000")}
	assertDecimal(t, "-237000", HousePropertyNetIncome([]RentalDetails{letOut, selfOccupied}))

	loss, clamped := ClampHousePropertyLoss(dec("-237000"))
	assert.True(t, clamped)
	assertDecimal(t, "200000", loss)

	loss, clamped = ClampHousePropertyLoss(dec("5000"))
	assert.False(t, clamped)
	assert.True(t, loss.IsZero())
}
