package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IncomeRecord is one version of an income entry. Editing a record inserts a
// new version with the same LineageID and marks the previous one superseded.
type IncomeRecord struct {
	ID         uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FilingID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"filing_id"`
	LineageID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"lineage_id"`
	Version    int              `gorm:"not null;default:1" json:"version"`
	Superseded bool             `gorm:"not null;default:false;index" json:"superseded"`
	Category   string           `gorm:"type:varchar(20);not null;index" json:"category"`
	Amount     decimal.Decimal  `gorm:"type:decimal(15,2);not null" json:"amount"`
	TDS        *decimal.Decimal `gorm:"type:decimal(15,2)" json:"tds"` // Nullable = not reported
	Details    string           `gorm:"type:jsonb" json:"details"`     // Category-specific payload
	CreatedAt  time.Time        `gorm:"index" json:"created_at"`
}
