package service

import (
	"encoding/json"
	"fmt"

	"itrfiling/internal/model"
	"itrfiling/internal/taxengine"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// decodeDetails turns the stored JSON payload into the details variant of the
// category. Empty payloads carry no details.
func decodeDetails(category taxengine.IncomeCategory, raw []byte) (taxengine.IncomeDetails, error) {
	if len(raw) == 0 || string(raw) == "null" || string(raw) == "{}" {
		return nil, nil
	}
	switch category {
	case taxengine.CategorySalary:
		return decodeAs[taxengine.SalaryDetails](raw)
	case taxengine.CategoryBusiness:
		return decodeAs[taxengine.BusinessDetails](raw)
	case taxengine.CategoryRental:
		return decodeAs[taxengine.RentalDetails](raw)
	case taxengine.CategoryInterest:
		return decodeAs[taxengine.InterestDetails](raw)
	case taxengine.CategoryCapitalGains:
		return decodeAs[taxengine.CapitalGainsDetails](raw)
	case taxengine.CategoryOther:
		return decodeAs[taxengine.OtherDetails](raw)
	}
	return nil, fmt.Errorf("%w: %q", taxengine.ErrUnknownCategory, category)
}

func decodeAs[T taxengine.IncomeDetails](raw []byte) (taxengine.IncomeDetails, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: invalid details: %v", ErrInvalidInput, err)
	}
	return v, nil
}

func toEngineIncome(r model.IncomeRecord) (taxengine.IncomeRecord, error) {
	category := taxengine.IncomeCategory(r.Category)
	details, err := decodeDetails(category, []byte(r.Details))
	if err != nil {
		return taxengine.IncomeRecord{}, err
	}
	return taxengine.IncomeRecord{
		ID:       r.ID.String(),
		Category: category,
		Amount:   r.Amount,
		Details:  details,
	}, nil
}

func toEngineDeduction(c model.DeductionClaim) taxengine.DeductionClaim {
	return taxengine.DeductionClaim{
		ID:      c.ID.String(),
		Section: taxengine.Section(c.Section),
		Amount:  c.Amount,
		Flags: taxengine.DeductionFlags{
			IsSeniorCitizen:  c.IsSeniorCitizen,
			Beneficiary:      taxengine.Beneficiary(c.Beneficiary),
			PropertyType:     taxengine.PropertyType(c.PropertyType),
			PropertyID:       c.PropertyID,
			PaymentMode:      taxengine.PaymentMode(c.PaymentMode),
			SevereDisability: c.SevereDisability,
		},
	}
}

func toEngineTransaction(t model.CapitalGainTransaction) taxengine.CapitalGainTransaction {
	return taxengine.CapitalGainTransaction{
		ID:               t.ID.String(),
		AssetType:        taxengine.AssetType(t.AssetType),
		PurchaseDate:     t.PurchaseDate,
		SaleDate:         t.SaleDate,
		PurchaseAmount:   t.PurchaseAmount,
		SaleAmount:       t.SaleAmount,
		Expenses:         t.Expenses,
		IndexedCost:      t.IndexedCost,
		ExemptionClaimed: t.ExemptionClaimed,
		ExemptionSection: taxengine.ExemptionSection(t.ExemptionSection),
	}
}

// taxesPaid adds advance tax to the TDS of every active income record. It is
// nil only when neither figure was reported at all.
func taxesPaid(advance *decimal.Decimal, records []model.IncomeRecord) *decimal.Decimal {
	reported := lo.Filter(records, func(r model.IncomeRecord, _ int) bool { return r.TDS != nil })
	if advance == nil && len(reported) == 0 {
		return nil
	}
	total := lo.FromPtrOr(advance, decimal.Zero)
	for _, r := range reported {
		total = total.Add(*r.TDS)
	}
	return &total
}

// buildFilingInput assembles the engine input for a stored filing.
func buildFilingInput(
	filing model.Filing,
	income []model.IncomeRecord,
	deductions []model.DeductionClaim,
	transactions []model.CapitalGainTransaction,
) (taxengine.FilingInput, error) {
	records := make([]taxengine.IncomeRecord, 0, len(income))
	for _, r := range income {
		rec, err := toEngineIncome(r)
		if err != nil {
			return taxengine.FilingInput{}, fmt.Errorf("income record %s: %w", r.ID, err)
		}
		records = append(records, rec)
	}

	return taxengine.FilingInput{
		Income:       records,
		Deductions:   lo.Map(deductions, func(c model.DeductionClaim, _ int) taxengine.DeductionClaim { return toEngineDeduction(c) }),
		Transactions: lo.Map(transactions, func(t model.CapitalGainTransaction, _ int) taxengine.CapitalGainTransaction { return toEngineTransaction(t) }),
		Taxpayer: taxengine.TaxpayerProfile{
			AgeCategory: taxengine.AgeCategory(filing.AgeCategory),
			TaxesPaid:   taxesPaid(filing.AdvanceTaxPaid, income),
		},
	}, nil
}
