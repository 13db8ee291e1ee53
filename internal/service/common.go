package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"itrfiling/internal/model"
	"itrfiling/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrFilingNotFound        = errors.New("filing not found")
	ErrIncomeNotFound        = errors.New("income record not found")
	ErrDeductionNotFound     = errors.New("deduction claim not found")
	ErrTransactionNotFound   = errors.New("capital gain transaction not found")
	ErrIncomeVersionConflict = errors.New("income record has already been replaced")
)

const dateLayout = "2006-01-02"

func parseID(kind, id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s id: %v", ErrInvalidInput, kind, err)
	}
	return parsed, nil
}

func parseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid %s date format (expected YYYY-MM-DD): %v", ErrInvalidInput, field, err)
	}
	return t, nil
}

// parseOptionalAmount maps an absent field to nil and anything else through
// parse.
func parseOptionalAmount(s *string, parse func(string) (decimal.Decimal, error)) (*decimal.Decimal, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := parse(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func formatOptional(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.StringFixed(2)
	return &s
}

// loadFiling maps a missing row to ErrFilingNotFound.
func loadFiling(ctx context.Context, repo repository.FilingRepository, id uuid.UUID) (*model.Filing, error) {
	filing, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFilingNotFound
		}
		return nil, fmt.Errorf("failed to fetch filing: %w", err)
	}
	return filing, nil
}

func newAuditLog(filingID uuid.UUID, action, entityID, entityName string, details interface{}) *model.AuditLog {
	detailsJSON, _ := json.Marshal(details)
	fid := filingID
	return &model.AuditLog{
		FilingID:   &fid,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(detailsJSON),
	}
}

// writeAuditLog is best-effort; the operation it records has already
// succeeded.
func writeAuditLog(ctx context.Context, repo repository.AuditRepository, entry *model.AuditLog) {
	if err := repo.Log(ctx, entry); err != nil {
		log.Printf("failed to write audit log %s for %s: %v", entry.Action, entry.EntityID, err)
	}
}
