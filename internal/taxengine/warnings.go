package taxengine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// WarningCode classifies a non-fatal finding.
type WarningCode string

const (
	WarnLimitExceeded                   WarningCode = "LIMIT_EXCEEDED"
	WarnIndexedCostMissing              WarningCode = "INDEXED_COST_MISSING"
	WarnMissingTDSData                  WarningCode = "MISSING_TDS_DATA"
	WarnCashDonationDisallowed          WarningCode = "CASH_DONATION_DISALLOWED"
	WarnCapitalGainsWithoutTransactions WarningCode = "CAPITAL_GAINS_WITHOUT_TRANSACTIONS"
)

// Warning is surfaced to the caller alongside a successful result.
type Warning struct {
	Code     WarningCode      `json:"code"`
	Section  string           `json:"section,omitempty"`
	RecordID string           `json:"record_id,omitempty"`
	Claimed  *decimal.Decimal `json:"claimed,omitempty"`
	Capped   *decimal.Decimal `json:"capped,omitempty"`
	Message  string           `json:"message"`
}

func limitExceeded(section string, claimed, capped decimal.Decimal) Warning {
	return Warning{
		Code:    WarnLimitExceeded,
		Section: section,
		Claimed: &claimed,
		Capped:  &capped,
		Message: fmt.Sprintf("%s claim of %s exceeds the limit, %s allowed", section, claimed.StringFixed(2), capped.StringFixed(2)),
	}
}
