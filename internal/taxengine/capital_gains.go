package taxengine

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AssetType is the class of a disposed capital asset.
type AssetType string

const (
	AssetEquity           AssetType = "equity"
	AssetEquityMutualFund AssetType = "equityMutualFund"
	AssetDebtMutualFund   AssetType = "debtMutualFund"
	AssetProperty         AssetType = "property"
	AssetGold             AssetType = "gold"
	AssetBonds            AssetType = "bonds"
	AssetOther            AssetType = "other"
)

// AssetTypes lists every asset type.
var AssetTypes = []AssetType{
	AssetEquity,
	AssetEquityMutualFund,
	AssetDebtMutualFund,
	AssetProperty,
	AssetGold,
	AssetBonds,
	AssetOther,
}

// Valid reports whether a is a known asset type.
func (a AssetType) Valid() bool {
	for _, known := range AssetTypes {
		if a == known {
			return true
		}
	}
	return false
}

// IsEquity reports whether gains on a are taxed under the equity rules.
func (a AssetType) IsEquity() bool {
	return a == AssetEquity || a == AssetEquityMutualFund
}

// LongTermThreshold is the holding period in months from which a gain on a
// is long term.
func (a AssetType) LongTermThreshold() int {
	switch a {
	case AssetEquity, AssetEquityMutualFund:
		return HoldingThresholdEquity
	case AssetProperty:
		return HoldingThresholdProperty
	default:
		return HoldingThresholdDebt
	}
}

// requiresIndexation marks asset types whose long-term cost is normally
// indexed.
func (a AssetType) requiresIndexation() bool {
	return a == AssetProperty || a == AssetDebtMutualFund
}

// GainType is STCG or LTCG.
type GainType string

const (
	GainShortTerm GainType = "STCG"
	GainLongTerm  GainType = "LTCG"
)

// ExemptionSection names the reinvestment exemption claimed on a gain.
type ExemptionSection string

const (
	Exemption54   ExemptionSection = "54"
	Exemption54EC ExemptionSection = "54EC"
	Exemption54F  ExemptionSection = "54F"
)

// CapitalGainTransaction is one disposal of a capital asset.
type CapitalGainTransaction struct {
	ID               string
	AssetType        AssetType
	PurchaseDate     time.Time
	SaleDate         time.Time
	PurchaseAmount   decimal.Decimal
	SaleAmount       decimal.Decimal
	Expenses         decimal.Decimal
	IndexedCost      *decimal.Decimal
	ExemptionClaimed decimal.Decimal
	ExemptionSection ExemptionSection
}

// HoldingPeriodMonths counts whole calendar months between purchase and sale;
// the day of month is ignored.
func HoldingPeriodMonths(purchase, sale time.Time) int {
	return (sale.Year()*12 + int(sale.Month())) - (purchase.Year()*12 + int(purchase.Month()))
}

// ClassifyGainType returns the gain type for a holding of months on asset.
func ClassifyGainType(asset AssetType, months int) GainType {
	if months >= asset.LongTermThreshold() {
		return GainLongTerm
	}
	return GainShortTerm
}

// ClassifiedTransaction is the per-transaction outcome of classification.
type ClassifiedTransaction struct {
	ID                  string          `json:"id"`
	AssetType           AssetType       `json:"asset_type"`
	HoldingPeriodMonths int             `json:"holding_period_months"`
	GainType            GainType        `json:"gain_type"`
	CostBasis           decimal.Decimal `json:"cost_basis"`
	GrossGain           decimal.Decimal `json:"gross_gain"`
	NetGain             decimal.Decimal `json:"net_gain"`
}

// CapitalGainsSummary holds rate-ready subtotals. No tax is applied here.
type CapitalGainsSummary struct {
	Stcg              decimal.Decimal         `json:"stcg"`
	LtcgEquity        decimal.Decimal         `json:"ltcg_equity"`
	LtcgEquityExempt  decimal.Decimal         `json:"ltcg_equity_exempt"`
	LtcgEquityTaxable decimal.Decimal         `json:"ltcg_equity_taxable"`
	LtcgOther         decimal.Decimal         `json:"ltcg_other"`
	TotalTaxableGain  decimal.Decimal         `json:"total_taxable_gain"`
	Transactions      []ClassifiedTransaction `json:"transactions"`
	Warnings          []Warning               `json:"warnings"`
}

// FlatRateGains returns the buckets the calculator taxes at flat rates.
func (s CapitalGainsSummary) FlatRateGains() FlatRateGains {
	return FlatRateGains{
		Stcg:              s.Stcg,
		LtcgEquityTaxable: s.LtcgEquityTaxable,
		LtcgOther:         s.LtcgOther,
	}
}

// ClassifyTransaction derives holding period, gain type and net gain for a
// single transaction. The warning is set when an indexed cost was expected
// but missing.
func ClassifyTransaction(tx CapitalGainTransaction) (ClassifiedTransaction, *Warning, error) {
	return classifyAt(0, tx)
}

type namedAmount struct {
	name  string
	value decimal.Decimal
}

func classifyAt(i int, tx CapitalGainTransaction) (ClassifiedTransaction, *Warning, error) {
	if !tx.AssetType.Valid() {
		return ClassifiedTransaction{}, nil, recordErrorf(ErrUnknownAssetType, i, tx.ID, "%q", tx.AssetType)
	}
	if tx.PurchaseDate.After(tx.SaleDate) {
		return ClassifiedTransaction{}, nil, recordErrorf(ErrInvalidDateOrder, i, tx.ID, "bought %s, sold %s",
			tx.PurchaseDate.Format("2006-01-02"), tx.SaleDate.Format("2006-01-02"))
	}
	amounts := []namedAmount{
		{"purchase amount", tx.PurchaseAmount},
		{"sale amount", tx.SaleAmount},
		{"expenses", tx.Expenses},
		{"exemption claimed", tx.ExemptionClaimed},
	}
	if tx.IndexedCost != nil {
		amounts = append(amounts, namedAmount{"indexed cost", *tx.IndexedCost})
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			return ClassifiedTransaction{}, nil, recordErrorf(ErrInvalidTransactionAmount, i, tx.ID, "%s %s is negative", a.name, a.value.String())
		}
	}

	months := HoldingPeriodMonths(tx.PurchaseDate, tx.SaleDate)
	gainType := ClassifyGainType(tx.AssetType, months)

	cost := tx.PurchaseAmount
	var warning *Warning
	if gainType == GainLongTerm && tx.AssetType.requiresIndexation() {
		if tx.IndexedCost != nil {
			cost = *tx.IndexedCost
		} else {
			warning = &Warning{
				Code:     WarnIndexedCostMissing,
				RecordID: tx.ID,
				Message:  fmt.Sprintf("no indexed cost for long-term %s sale, purchase amount used as cost", tx.AssetType),
			}
		}
	}

	gross := tx.SaleAmount.Sub(cost).Sub(tx.Expenses)
	return ClassifiedTransaction{
		ID:                  tx.ID,
		AssetType:           tx.AssetType,
		HoldingPeriodMonths: months,
		GainType:            gainType,
		CostBasis:           cost,
		GrossGain:           gross,
		NetGain:             nonNegative(gross.Sub(tx.ExemptionClaimed)),
	}, warning, nil
}

// ClassifyCapitalGains classifies every transaction and nets the category
// subtotals, applying the equity LTCG exemption.
func ClassifyCapitalGains(txs []CapitalGainTransaction) (CapitalGainsSummary, error) {
	summary := CapitalGainsSummary{
		Stcg:         zero,
		LtcgEquity:   zero,
		LtcgOther:    zero,
		Transactions: make([]ClassifiedTransaction, 0, len(txs)),
		Warnings:     []Warning{},
	}

	var errs []error
	for i, tx := range txs {
		classified, warning, err := classifyAt(i, tx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if warning != nil {
			summary.Warnings = append(summary.Warnings, *warning)
		}
		summary.Transactions = append(summary.Transactions, classified)

		switch {
		case classified.GainType == GainShortTerm:
			summary.Stcg = summary.Stcg.Add(classified.NetGain)
		case tx.AssetType.IsEquity():
			summary.LtcgEquity = summary.LtcgEquity.Add(classified.NetGain)
		default:
			summary.LtcgOther = summary.LtcgOther.Add(classified.NetGain)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return CapitalGainsSummary{}, err
	}

	summary.LtcgEquityExempt = decimal.Min(summary.LtcgEquity, LTCGEquityExemption)
	summary.LtcgEquityTaxable = nonNegative(summary.LtcgEquity.Sub(LTCGEquityExemption))
	summary.TotalTaxableGain = summary.Stcg.Add(summary.LtcgEquityTaxable).Add(summary.LtcgOther)
	return summary, nil
}
