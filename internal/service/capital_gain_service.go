package service

import (
	"context"
	"errors"
	"fmt"

	"itrfiling/internal/model"
	"itrfiling/internal/repository"
	"itrfiling/internal/taxengine"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type CapitalGainRequest struct {
	AssetType        string  `json:"asset_type" binding:"required,oneof=equity equityMutualFund debtMutualFund property gold bonds other"`
	PurchaseDate     string  `json:"purchase_date" binding:"required"` // YYYY-MM-DD
	SaleDate         string  `json:"sale_date" binding:"required"`     // YYYY-MM-DD
	PurchaseAmount   string  `json:"purchase_amount" binding:"required"`
	SaleAmount       string  `json:"sale_amount" binding:"required"`
	Expenses         string  `json:"expenses"`
	IndexedCost      *string `json:"indexed_cost"` // Omitted = not indexed
	ExemptionClaimed string  `json:"exemption_claimed"`
	ExemptionSection string  `json:"exemption_section" binding:"omitempty,oneof=54 54EC 54F"`
}

type CapitalGainResponse struct {
	ID                  string  `json:"id"`
	AssetType           string  `json:"asset_type"`
	PurchaseDate        string  `json:"purchase_date"`
	SaleDate            string  `json:"sale_date"`
	PurchaseAmount      string  `json:"purchase_amount"`
	SaleAmount          string  `json:"sale_amount"`
	Expenses            string  `json:"expenses"`
	IndexedCost         *string `json:"indexed_cost"`
	ExemptionClaimed    string  `json:"exemption_claimed"`
	ExemptionSection    string  `json:"exemption_section,omitempty"`
	HoldingPeriodMonths int     `json:"holding_period_months"`
	GainType            string  `json:"gain_type"`
}

// --- Interface ---

type CapitalGainService interface {
	ListTransactions(ctx context.Context, filingID string) ([]CapitalGainResponse, error)
	AddTransaction(ctx context.Context, filingID string, req CapitalGainRequest) (CapitalGainResponse, error)
	UpdateTransaction(ctx context.Context, filingID, id string, req CapitalGainRequest) (CapitalGainResponse, error)
	DeleteTransaction(ctx context.Context, filingID, id string) error
}

type capitalGainService struct {
	filingRepo      repository.FilingRepository
	capitalGainRepo repository.CapitalGainRepository
	auditRepo       repository.AuditRepository
	txManager       repository.TransactionManager
	notifier        ChangeNotifier
}

func NewCapitalGainService(
	filingRepo repository.FilingRepository,
	capitalGainRepo repository.CapitalGainRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	notifier ChangeNotifier,
) CapitalGainService {
	return &capitalGainService{
		filingRepo:      filingRepo,
		capitalGainRepo: capitalGainRepo,
		auditRepo:       auditRepo,
		txManager:       txManager,
		notifier:        notifier,
	}
}

// --- Implementation ---

func (s *capitalGainService) ListTransactions(ctx context.Context, filingID string) ([]CapitalGainResponse, error) {
	fid, err := parseID("filing", filingID)
	if err != nil {
		return nil, err
	}
	if _, err := loadFiling(ctx, s.filingRepo, fid); err != nil {
		return nil, err
	}

	txs, err := s.capitalGainRepo.ListByFiling(ctx, fid)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch capital gain transactions: %w", err)
	}
	return lo.Map(txs, func(t model.CapitalGainTransaction, _ int) CapitalGainResponse { return toCapitalGainResponse(t) }), nil
}

func (s *capitalGainService) AddTransaction(ctx context.Context, filingID string, req CapitalGainRequest) (CapitalGainResponse, error) {
	fid, err := parseID("filing", filingID)
	if err != nil {
		return CapitalGainResponse{}, err
	}
	if _, err := loadFiling(ctx, s.filingRepo, fid); err != nil {
		return CapitalGainResponse{}, err
	}

	tx, err := buildCapitalGain(req)
	if err != nil {
		return CapitalGainResponse{}, err
	}
	tx.FilingID = fid

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.capitalGainRepo.Create(txCtx, &tx); err != nil {
			return fmt.Errorf("failed to create capital gain transaction: %w", err)
		}
		audit := newAuditLog(fid, model.ActionAddCapitalGain, tx.ID.String(), tx.AssetType+" "+tx.GainType, req)
		if err := s.auditRepo.Log(txCtx, audit); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return CapitalGainResponse{}, err
	}

	s.notifier.FilingChanged(ctx, fid)
	return toCapitalGainResponse(tx), nil
}

// UpdateTransaction replaces every input field and recomputes the derived
// holding period and gain type.
func (s *capitalGainService) UpdateTransaction(ctx context.Context, filingID, id string, req CapitalGainRequest) (CapitalGainResponse, error) {
	fid, current, err := s.findTransaction(ctx, filingID, id)
	if err != nil {
		return CapitalGainResponse{}, err
	}

	updated, err := buildCapitalGain(req)
	if err != nil {
		return CapitalGainResponse{}, err
	}
	updated.ID = current.ID
	updated.FilingID = current.FilingID
	updated.CreatedAt = current.CreatedAt

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.capitalGainRepo.Update(txCtx, &updated); err != nil {
			return fmt.Errorf("failed to update capital gain transaction: %w", err)
		}
		audit := newAuditLog(fid, model.ActionUpdateCapitalGain, id, updated.AssetType+" "+updated.GainType, req)
		if err := s.auditRepo.Log(txCtx, audit); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return CapitalGainResponse{}, err
	}

	s.notifier.FilingChanged(ctx, fid)
	return toCapitalGainResponse(updated), nil
}

func (s *capitalGainService) DeleteTransaction(ctx context.Context, filingID, id string) error {
	fid, current, err := s.findTransaction(ctx, filingID, id)
	if err != nil {
		return err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.capitalGainRepo.Delete(txCtx, current.ID); err != nil {
			return fmt.Errorf("failed to delete capital gain transaction: %w", err)
		}
		audit := newAuditLog(fid, model.ActionDeleteCapitalGain, id, current.AssetType, map[string]bool{"deleted": true})
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

// --- Helpers ---

func (s *capitalGainService) findTransaction(ctx context.Context, filingID, id string) (uuid.UUID, *model.CapitalGainTransaction, error) {
	fid, err := parseID("filing", filingID)
	if err != nil {
		return uuid.Nil, nil, err
	}
	tid, err := parseID("capital gain", id)
	if err != nil {
		return uuid.Nil, nil, err
	}

	tx, err := s.capitalGainRepo.FindByID(ctx, tid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, nil, ErrTransactionNotFound
		}
		return uuid.Nil, nil, fmt.Errorf("failed to fetch capital gain transaction: %w", err)
	}
	if tx.FilingID != fid {
		return uuid.Nil, nil, ErrTransactionNotFound
	}
	return fid, tx, nil
}

// buildCapitalGain parses a request and derives holding period and gain type
// through the classifier, which also rejects inverted dates and negative
// amounts.
func buildCapitalGain(req CapitalGainRequest) (model.CapitalGainTransaction, error) {
	parse := func(s string) (decimal.Decimal, error) {
		d, err := taxengine.ParseAmount(s)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %v", taxengine.ErrInvalidTransactionAmount, err)
		}
		return d, nil
	}

	purchaseDate, err := parseDate("purchase", req.PurchaseDate)
	if err != nil {
		return model.CapitalGainTransaction{}, err
	}
	saleDate, err := parseDate("sale", req.SaleDate)
	if err != nil {
		return model.CapitalGainTransaction{}, err
	}

	tx := model.CapitalGainTransaction{
		AssetType:        req.AssetType,
		PurchaseDate:     purchaseDate,
		SaleDate:         saleDate,
		ExemptionSection: req.ExemptionSection,
	}
	for _, f := range []struct {
		dst *decimal.Decimal
		src string
	}{
		{&tx.PurchaseAmount, req.PurchaseAmount},
		{&tx.SaleAmount, req.SaleAmount},
		{&tx.Expenses, req.Expenses},
		{&tx.ExemptionClaimed, req.ExemptionClaimed},
	} {
		if *f.dst, err = parse(f.src); err != nil {
			return model.CapitalGainTransaction{}, err
		}
	}
	if tx.IndexedCost, err = parseOptionalAmount(req.IndexedCost, parse); err != nil {
		return model.CapitalGainTransaction{}, err
	}

	classified, _, err := taxengine.ClassifyTransaction(toEngineTransaction(tx))
	if err != nil {
		return model.CapitalGainTransaction{}, err
	}
	tx.HoldingPeriodMonths = classified.HoldingPeriodMonths
	tx.GainType = string(classified.GainType)
	return tx, nil
}

func toCapitalGainResponse(t model.CapitalGainTransaction) CapitalGainResponse {
	return CapitalGainResponse{
		ID:                  t.ID.String(),
		AssetType:           t.AssetType,
		PurchaseDate:        t.PurchaseDate.Format(dateLayout),
		SaleDate:            t.SaleDate.Format(dateLayout),
		PurchaseAmount:      t.PurchaseAmount.StringFixed(2),
		SaleAmount:          t.SaleAmount.StringFixed(2),
		Expenses:            t.Expenses.StringFixed(2),
		IndexedCost:         formatOptional(t.IndexedCost),
		ExemptionClaimed:    t.ExemptionClaimed.StringFixed(2),
		ExemptionSection:    t.ExemptionSection,
		HoldingPeriodMonths: t.HoldingPeriodMonths,
		GainType:            t.GainType,
	}
}
