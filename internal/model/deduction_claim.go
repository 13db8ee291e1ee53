package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeductionClaim stores a claimed amount under a Chapter VI-A section together
// with the flags its cap depends on.
type DeductionClaim struct {
	ID               uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FilingID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"filing_id"`
	Section          string          `gorm:"type:varchar(30);not null;index" json:"section"`
	Amount           decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	IsSeniorCitizen  bool            `gorm:"not null;default:false" json:"is_senior_citizen"`
	Beneficiary      string          `gorm:"type:varchar(10)" json:"beneficiary"`
	PropertyType     string          `gorm:"type:varchar(20)" json:"property_type"`
	PropertyID       string          `gorm:"type:varchar(50)" json:"property_id"`
	PaymentMode      string          `gorm:"type:varchar(10)" json:"payment_mode"`
	SevereDisability bool            `gorm:"not null;default:false" json:"severe_disability"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
