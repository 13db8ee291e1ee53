package taxengine

import (
	"errors"

	"github.com/shopspring/decimal"
)

// IncomeCategory is the head of income a record belongs to.
type IncomeCategory string

const (
	CategorySalary       IncomeCategory = "salary"
	CategoryBusiness     IncomeCategory = "business"
	CategoryRental       IncomeCategory = "rental"
	CategoryInterest     IncomeCategory = "interest"
	CategoryCapitalGains IncomeCategory = "capitalGains"
	CategoryOther        IncomeCategory = "other"
)

// Categories lists every income category in reporting order.
var Categories = []IncomeCategory{
	CategorySalary,
	CategoryBusiness,
	CategoryRental,
	CategoryInterest,
	CategoryCapitalGains,
	CategoryOther,
}

// Valid reports whether c is a known category.
func (c IncomeCategory) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// IncomeDetails carries the category-specific part of an income record.
// Exactly one variant exists per category.
type IncomeDetails interface {
	Category() IncomeCategory
}

type SalaryDetails struct {
	EmployerName    string          `json:"employer_name,omitempty"`
	ProfessionalTax decimal.Decimal `json:"professional_tax"`
}

func (SalaryDetails) Category() IncomeCategory { return CategorySalary }

// PresumptiveSection names the presumptive taxation scheme of a business.
type PresumptiveSection string

const (
	Section44AD  PresumptiveSection = "44AD"
	Section44ADA PresumptiveSection = "44ADA"
)

type BusinessDetails struct {
	Presumptive        bool               `json:"presumptive"`
	PresumptiveSection PresumptiveSection `json:"presumptive_section,omitempty"`
	GrossReceipts      decimal.Decimal    `json:"gross_receipts"`
	// DigitalReceipts is the share of GrossReceipts received through banking
	// channels, eligible for the lower 44AD rate.
	DigitalReceipts decimal.Decimal `json:"digital_receipts"`
}

func (BusinessDetails) Category() IncomeCategory { return CategoryBusiness }

// PropertyType distinguishes self-occupied from let-out house property.
type PropertyType string

const (
	PropertySelfOccupied PropertyType = "self-occupied"
	PropertyLetOut       PropertyType = "let-out"
)

type RentalDetails struct {
	PropertyID     string          `json:"property_id,omitempty"`
	PropertyType   PropertyType    `json:"property_type"`
	AnnualValue    decimal.Decimal `json:"annual_value"`
	MunicipalTaxes decimal.Decimal `json:"municipal_taxes"`
	InterestOnLoan decimal.Decimal `json:"interest_on_loan"`
}

func (RentalDetails) Category() IncomeCategory { return CategoryRental }

type InterestDetails struct {
	Source string `json:"source,omitempty"` // savings, deposit, bond
}

func (InterestDetails) Category() IncomeCategory { return CategoryInterest }

type CapitalGainsDetails struct {
	Note string `json:"note,omitempty"`
}

func (CapitalGainsDetails) Category() IncomeCategory { return CategoryCapitalGains }

type OtherDetails struct {
	Description string `json:"description,omitempty"`
}

func (OtherDetails) Category() IncomeCategory { return CategoryOther }

// IncomeRecord is one submitted income entry. Records are never edited in
// place; a new version replaces the old one.
type IncomeRecord struct {
	ID       string
	Category IncomeCategory
	Amount   decimal.Decimal
	Details  IncomeDetails
}

// IncomeSummary is the output of Aggregate.
type IncomeSummary struct {
	ByCategory       map[IncomeCategory]decimal.Decimal `json:"by_category"`
	GrossTotalIncome decimal.Decimal                    `json:"gross_total_income"`
}

// Total returns the category total, zero when the category has no records.
func (s IncomeSummary) Total(c IncomeCategory) decimal.Decimal {
	if v, ok := s.ByCategory[c]; ok {
		return v
	}
	return zero
}

// Aggregate sums income records per category and into a gross total. Every
// invalid record is reported; no totals are returned when any record fails.
func Aggregate(records []IncomeRecord) (IncomeSummary, error) {
	byCategory := make(map[IncomeCategory]decimal.Decimal, len(Categories))
	for _, c := range Categories {
		byCategory[c] = zero
	}

	var errs []error
	for i, r := range records {
		if err := checkIncomeRecord(i, r); err != nil {
			errs = append(errs, err)
			continue
		}
		byCategory[r.Category] = byCategory[r.Category].Add(r.Amount)
	}
	if err := errors.Join(errs...); err != nil {
		return IncomeSummary{}, err
	}

	gross := zero
	for _, c := range Categories {
		gross = gross.Add(byCategory[c])
	}

	return IncomeSummary{ByCategory: byCategory, GrossTotalIncome: nonNegative(gross)}, nil
}

func checkIncomeRecord(i int, r IncomeRecord) error {
	if !r.Category.Valid() {
		return recordErrorf(ErrUnknownCategory, i, r.ID, "%q", r.Category)
	}
	if r.Amount.IsNegative() {
		return recordErrorf(ErrInvalidIncomeAmount, i, r.ID, "%s is negative", r.Amount.String())
	}
	if r.Details != nil && r.Details.Category() != r.Category {
		return recordErrorf(ErrMetadataMismatch, i, r.ID, "record is %s, details are %s", r.Category, r.Details.Category())
	}
	return nil
}

// PresumptiveIncome returns the deemed income of a presumptive business:
// 50% of receipts under 44ADA, 8% under 44AD with 6% on digital receipts.
func PresumptiveIncome(d BusinessDetails) decimal.Decimal {
	receipts := nonNegative(d.GrossReceipts)
	switch d.PresumptiveSection {
	case Section44ADA:
		return receipts.Mul(PresumptiveRateProfessional)
	default:
		digital := decimal.Min(nonNegative(d.DigitalReceipts), receipts)
		cash := receipts.Sub(digital)
		return digital.Mul(PresumptiveRateBusinessDigital).Add(cash.Mul(PresumptiveRateBusiness))
	}
}
