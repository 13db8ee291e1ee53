package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"itrfiling/internal/model"
	"itrfiling/internal/repository"
	"itrfiling/internal/taxengine"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type IncomeRequest struct {
	Category string          `json:"category" binding:"required,oneof=salary business rental interest capitalGains other"`
	Amount   string          `json:"amount" binding:"required"` // Decimal string, e.g. "1200000.00"
	TDS      *string         `json:"tds"`                       // Omitted = not reported
	Details  json.RawMessage `json:"details" swaggertype:"object"`
}

type IncomeResponse struct {
	ID        string          `json:"id"`
	LineageID string          `json:"lineage_id"`
	Version   int             `json:"version"`
	Category  string          `json:"category"`
	Amount    string          `json:"amount"`
	TDS       *string         `json:"tds"`
	Details   json.RawMessage `json:"details,omitempty" swaggertype:"object"`
	CreatedAt string          `json:"created_at"`
}

// --- Interface ---

type IncomeService interface {
	ListIncome(ctx context.Context, filingID string) ([]IncomeResponse, error)
	AddIncome(ctx context.Context, filingID string, req IncomeRequest) (IncomeResponse, error)
	// ReplaceIncome stores a new version of a record; the old one is kept
	// as history.
	ReplaceIncome(ctx context.Context, filingID, id string, req IncomeRequest) (IncomeResponse, error)
	DeleteIncome(ctx context.Context, filingID, id string) error
	GetIncomeHistory(ctx context.Context, filingID, id string) ([]IncomeResponse, error)
}

type incomeService struct {
	filingRepo repository.FilingRepository
	incomeRepo repository.IncomeRepository
	auditRepo  repository.AuditRepository
	txManager  repository.TransactionManager
	notifier   ChangeNotifier
}

func NewIncomeService(
	filingRepo repository.FilingRepository,
	incomeRepo repository.IncomeRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	notifier ChangeNotifier,
) IncomeService {
	return &incomeService{
		filingRepo: filingRepo,
		incomeRepo: incomeRepo,
		auditRepo:  auditRepo,
		txManager:  txManager,
		notifier:   notifier,
	}
}

// --- Implementation ---

func (s *incomeService) ListIncome(ctx context.Context, filingID string) ([]IncomeResponse, error) {
	fid, err := parseID("filing", filingID)
	if err != nil {
		return nil, err
	}
	if _, err := loadFiling(ctx, s.filingRepo, fid); err != nil {
		return nil, err
	}

	records, err := s.incomeRepo.ListActive(ctx, fid)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch income records: %w", err)
	}

	res := make([]IncomeResponse, 0, len(records))
	for _, r := range records {
		res = append(res, toIncomeResponse(r))
	}
	return res, nil
}

func (s *incomeService) AddIncome(ctx context.Context, filingID string, req IncomeRequest) (IncomeResponse, error) {
	fid, err := parseID("filing", filingID)
	if err != nil {
		return IncomeResponse{}, err
	}
	if _, err := loadFiling(ctx, s.filingRepo, fid); err != nil {
		return IncomeResponse{}, err
	}

	record, err := buildIncomeRecord(req)
	if err != nil {
		return IncomeResponse{}, err
	}
	record.FilingID = fid
	record.LineageID = uuid.New()
	record.Version = 1

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.incomeRepo.Create(txCtx, &record); err != nil {
			return fmt.Errorf("failed to create income record: %w", err)
		}
		audit := newAuditLog(fid, model.ActionAddIncome, record.ID.String(), record.Category+" "+record.Amount.StringFixed(2), req)
		if err := s.auditRepo.Log(txCtx, audit); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return IncomeResponse{}, err
	}

	s.notifier.FilingChanged(ctx, fid)
	return toIncomeResponse(record), nil
}

func (s *incomeService) ReplaceIncome(ctx context.Context, filingID, id string, req IncomeRequest) (IncomeResponse, error) {
	fid, current, err := s.findRecord(ctx, filingID, id)
	if err != nil {
		return IncomeResponse{}, err
	}
	if current.Superseded {
		return IncomeResponse{}, ErrIncomeVersionConflict
	}

	next, err := buildIncomeRecord(req)
	if err != nil {
		return IncomeResponse{}, err
	}
	next.FilingID = fid
	next.LineageID = current.LineageID
	next.Version = current.Version + 1

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.incomeRepo.MarkSuperseded(txCtx, current.ID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrIncomeVersionConflict
			}
			return fmt.Errorf("failed to supersede income record: %w", err)
		}
		if err := s.incomeRepo.Create(txCtx, &next); err != nil {
			return fmt.Errorf("failed to create income record: %w", err)
		}
		audit := newAuditLog(fid, model.ActionReplaceIncome, next.ID.String(), fmt.Sprintf("%s v%d", next.Category, next.Version), map[string]interface{}{
			"replaces": current.ID.String(),
			"request":  req,
		})
		if err := s.auditRepo.Log(txCtx, audit); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return IncomeResponse{}, err
	}

	s.notifier.FilingChanged(ctx, fid)
	return toIncomeResponse(next), nil
}

// DeleteIncome removes the record together with its earlier versions.
func (s *incomeService) DeleteIncome(ctx context.Context, filingID, id string) error {
	fid, current, err := s.findRecord(ctx, filingID, id)
	if err != nil {
		return err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.incomeRepo.DeleteLineage(txCtx, current.LineageID); err != nil {
			return fmt.Errorf("failed to delete income record: %w", err)
		}
		audit := newAuditLog(fid, model.ActionDeleteIncome, id, current.Category, map[string]bool{"deleted": true})
		if err := s.auditRepo.Log(txCtx, audit); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.notifier.FilingChanged(ctx, fid)
	return nil
}

func (s *incomeService) GetIncomeHistory(ctx context.Context, filingID, id string) ([]IncomeResponse, error) {
	_, current, err := s.findRecord(ctx, filingID, id)
	if err != nil {
		return nil, err
	}

	versions, err := s.incomeRepo.ListHistory(ctx, current.LineageID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch income history: %w", err)
	}

	res := make([]IncomeResponse, 0, len(versions))
	for _, v := range versions {
		res = append(res, toIncomeResponse(v))
	}
	return res, nil
}

// --- Helpers ---

func (s *incomeService) findRecord(ctx context.Context, filingID, id string) (uuid.UUID, *model.IncomeRecord, error) {
	fid, err := parseID("filing", filingID)
	if err != nil {
		return uuid.Nil, nil, err
	}
	rid, err := parseID("income", id)
	if err != nil {
		return uuid.Nil, nil, err
	}

	record, err := s.incomeRepo.FindByID(ctx, rid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, nil, ErrIncomeNotFound
		}
		return uuid.Nil, nil, fmt.Errorf("failed to fetch income record: %w", err)
	}
	if record.FilingID != fid {
		return uuid.Nil, nil, ErrIncomeNotFound
	}
	return fid, record, nil
}

// buildIncomeRecord parses and validates a request through the aggregator so
// a record the engine would reject is never stored.
func buildIncomeRecord(req IncomeRequest) (model.IncomeRecord, error) {
	amount, err := taxengine.ParseAmount(req.Amount)
	if err != nil {
		return model.IncomeRecord{}, err
	}
	tds, err := parseOptionalAmount(req.TDS, taxengine.ParseAmount)
	if err != nil {
		return model.IncomeRecord{}, err
	}

	category := taxengine.IncomeCategory(req.Category)
	details, err := decodeDetails(category, req.Details)
	if err != nil {
		return model.IncomeRecord{}, err
	}
	if _, err := taxengine.Aggregate([]taxengine.IncomeRecord{{Category: category, Amount: amount, Details: details}}); err != nil {
		return model.IncomeRecord{}, err
	}

	stored := "{}"
	if details != nil {
		raw, err := json.Marshal(details)
		if err != nil {
			return model.IncomeRecord{}, fmt.Errorf("failed to encode details: %w", err)
		}
		stored = string(raw)
	}

	return model.IncomeRecord{
		Category: req.Category,
		Amount:   amount,
		TDS:      tds,
		Details:  stored,
	}, nil
}

func toIncomeResponse(r model.IncomeRecord) IncomeResponse {
	resp := IncomeResponse{
		ID:        r.ID.String(),
		LineageID: r.LineageID.String(),
		Version:   r.Version,
		Category:  r.Category,
		Amount:    r.Amount.StringFixed(2),
		TDS:       formatOptional(r.TDS),
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
	if r.Details != "" && r.Details != "{}" {
		resp.Details = json.RawMessage(r.Details)
	}
	return resp
}
