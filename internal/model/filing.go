package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Filing groups every record of one taxpayer's return for one financial year.
type Filing struct {
	ID             uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TaxpayerRef    string           `gorm:"type:varchar(20);not null;index" json:"taxpayer_ref"`  // PAN or internal reference
	FinancialYear  string           `gorm:"type:varchar(9);not null;index" json:"financial_year"` // e.g. 2024-25
	AgeCategory    string           `gorm:"type:varchar(20);not null;default:'below60'" json:"age_category"`
	AdvanceTaxPaid *decimal.Decimal `gorm:"type:decimal(15,2)" json:"advance_tax_paid"` // Nullable = not reported
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}
