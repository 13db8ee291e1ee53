package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CapitalGainTransaction is a single disposal. HoldingPeriodMonths and
// GainType are derived and rewritten on every save.
type CapitalGainTransaction struct {
	ID                  uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FilingID            uuid.UUID        `gorm:"type:uuid;not null;index" json:"filing_id"`
	AssetType           string           `gorm:"type:varchar(20);not null;index" json:"asset_type"`
	PurchaseDate        time.Time        `gorm:"type:date;not null" json:"purchase_date"`
	SaleDate            time.Time        `gorm:"type:date;not null" json:"sale_date"`
	PurchaseAmount      decimal.Decimal  `gorm:"type:decimal(15,2);not null" json:"purchase_amount"`
	SaleAmount          decimal.Decimal  `gorm:"type:decimal(15,2);not null" json:"sale_amount"`
	Expenses            decimal.Decimal  `gorm:"type:decimal(15,2);not null;default:0" json:"expenses"`
	IndexedCost         *decimal.Decimal `gorm:"type:decimal(15,2)" json:"indexed_cost"`
	ExemptionClaimed    decimal.Decimal  `gorm:"type:decimal(15,2);not null;default:0" json:"exemption_claimed"`
	ExemptionSection    string           `gorm:"type:varchar(10)" json:"exemption_section"`
	HoldingPeriodMonths int              `gorm:"not null" json:"holding_period_months"`
	GainType            string           `gorm:"type:varchar(4);not null" json:"gain_type"` // STCG or LTCG
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}
