package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateFiling      = "CREATE_FILING"
	ActionUpdateFiling      = "UPDATE_FILING"
	ActionDeleteFiling      = "DELETE_FILING"
	ActionAddIncome         = "ADD_INCOME"
	ActionReplaceIncome     = "REPLACE_INCOME"
	ActionDeleteIncome      = "DELETE_INCOME"
	ActionAddDeduction      = "ADD_DEDUCTION"
	ActionUpdateDeduction   = "UPDATE_DEDUCTION"
	ActionDeleteDeduction   = "DELETE_DEDUCTION"
	ActionAddCapitalGain    = "ADD_CAPITAL_GAIN"
	ActionUpdateCapitalGain = "UPDATE_CAPITAL_GAIN"
	ActionDeleteCapitalGain = "DELETE_CAPITAL_GAIN"
	ActionCompareRegimes    = "COMPARE_REGIMES"
)

// AuditLog tracks what changed on a filing and when
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FilingID   *uuid.UUID `gorm:"type:uuid;index" json:"filing_id"` // Nullable for what-if computations
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    string     `gorm:"type:jsonb" json:"details"` // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
