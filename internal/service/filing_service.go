package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"itrfiling/internal/model"
	"itrfiling/internal/repository"
	"itrfiling/internal/taxengine"

	"github.com/google/uuid"
)

// --- DTOs ---

type CreateFilingRequest struct {
	TaxpayerRef    string  `json:"taxpayer_ref" binding:"required,max=20"`
	FinancialYear  string  `json:"financial_year" binding:"required,len=7"` // e.g. 2024-25
	AgeCategory    string  `json:"age_category" binding:"omitempty,oneof=below60 senior superSenior"`
	AdvanceTaxPaid *string `json:"advance_tax_paid"` // Decimal string, omitted = not reported
}

type UpdateFilingRequest struct {
	AgeCategory    string  `json:"age_category" binding:"omitempty,oneof=below60 senior superSenior"`
	AdvanceTaxPaid *string `json:"advance_tax_paid"`
}

type FilingResponse struct {
	ID             string  `json:"id"`
	TaxpayerRef    string  `json:"taxpayer_ref"`
	FinancialYear  string  `json:"financial_year"`
	AgeCategory    string  `json:"age_category"`
	AdvanceTaxPaid *string `json:"advance_tax_paid"`
	CreatedAt      string  `json:"created_at"`
}

type ComparisonResponse struct {
	FilingID   string `json:"filing_id,omitempty"`
	ComputedAt string `json:"computed_at"`
	taxengine.RegimeComparison
}

// Websocket payload
type FilingEvent struct {
	Event    string      `json:"event"`
	FilingID string      `json:"filing_id"`
	Data     interface{} `json:"data,omitempty"`
	Error    string      `json:"error,omitempty"`
}

const (
	EventComparisonUpdated = "comparison.updated"
	EventComparisonInvalid = "comparison.invalid"
)

// EventPublisher delivers a payload to the subscribers of one filing.
type EventPublisher interface {
	Publish(filingID string, payload []byte)
}

// ChangeNotifier is told after every committed edit to a filing.
type ChangeNotifier interface {
	FilingChanged(ctx context.Context, filingID uuid.UUID)
}

// --- Interface ---

type FilingService interface {
	ChangeNotifier
	CreateFiling(ctx context.Context, req CreateFilingRequest) (FilingResponse, error)
	UpdateFiling(ctx context.Context, id string, req UpdateFilingRequest) (FilingResponse, error)
	GetFiling(ctx context.Context, id string) (FilingResponse, error)
	ListFilings(ctx context.Context, page, limit int) ([]FilingResponse, int64, error)
	DeleteFiling(ctx context.Context, id string) error
	CompareRegimes(ctx context.Context, id string) (ComparisonResponse, error)
}

type filingService struct {
	filingRepo      repository.FilingRepository
	incomeRepo      repository.IncomeRepository
	deductionRepo   repository.DeductionRepository
	capitalGainRepo repository.CapitalGainRepository
	auditRepo       repository.AuditRepository
	txManager       repository.TransactionManager
	engine          *taxengine.Engine
	publisher       EventPublisher
	now             func() time.Time
}

func NewFilingService(
	filingRepo repository.FilingRepository,
	incomeRepo repository.IncomeRepository,
	deductionRepo repository.DeductionRepository,
	capitalGainRepo repository.CapitalGainRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	engine *taxengine.Engine,
	publisher EventPublisher,
) FilingService {
	return &filingService{
		filingRepo:      filingRepo,
		incomeRepo:      incomeRepo,
		deductionRepo:   deductionRepo,
		capitalGainRepo: capitalGainRepo,
		auditRepo:       auditRepo,
		txManager:       txManager,
		engine:          engine,
		publisher:       publisher,
		now:             time.Now,
	}
}

// --- Implementation ---

func (s *filingService) CreateFiling(ctx context.Context, req CreateFilingRequest) (FilingResponse, error) {
	advance, err := parseOptionalAmount(req.AdvanceTaxPaid, taxengine.ParseAmount)
	if err != nil {
		return FilingResponse{}, err
	}

	filing := model.Filing{
		TaxpayerRef:    req.TaxpayerRef,
		FinancialYear:  req.FinancialYear,
		AgeCategory:    ageCategoryOrDefault(req.AgeCategory),
		AdvanceTaxPaid: advance,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.filingRepo.Create(txCtx, &filing); err != nil {
			return fmt.Errorf("failed to create filing: %w", err)
		}
		audit := newAuditLog(filing.ID, model.ActionCreateFiling, filing.ID.String(), filing.TaxpayerRef+" "+filing.FinancialYear, req)
		if err := s.auditRepo.Log(txCtx, audit); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return FilingResponse{}, err
	}

	return toFilingResponse(filing), nil
}

func (s *filingService) UpdateFiling(ctx context.Context, id string, req UpdateFilingRequest) (FilingResponse, error) {
	filingID, err := parseID("filing", id)
	if err != nil {
		return FilingResponse{}, err
	}
	filing, err := loadFiling(ctx, s.filingRepo, filingID)
	if err != nil {
		return FilingResponse{}, err
	}

	advance, err := parseOptionalAmount(req.AdvanceTaxPaid, taxengine.ParseAmount)
	if err != nil {
		return FilingResponse{}, err
	}
	if req.AgeCategory != "" {
		filing.AgeCategory = req.AgeCategory
	}
	filing.AdvanceTaxPaid = advance

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.filingRepo.Update(txCtx, filing); err != nil {
			return fmt.Errorf("failed to update filing: %w", err)
		}
		audit := newAuditLog(filing.ID, model.ActionUpdateFiling, filing.ID.String(), filing.TaxpayerRef+" "+filing.FinancialYear, req)
		if err := s.auditRepo.Log(txCtx, audit); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return FilingResponse{}, err
	}

	s.FilingChanged(ctx, filing.ID)
	return toFilingResponse(*filing), nil
}

func (s *filingService) GetFiling(ctx context.Context, id string) (FilingResponse, error) {
	filingID, err := parseID("filing", id)
	if err != nil {
		return FilingResponse{}, err
	}
	filing, err := loadFiling(ctx, s.filingRepo, filingID)
	if err != nil {
		return FilingResponse{}, err
	}
	return toFilingResponse(*filing), nil
}

func (s *filingService) ListFilings(ctx context.Context, page, limit int) ([]FilingResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	filings, total, err := s.filingRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch filings: %w", err)
	}

	res := make([]FilingResponse, 0, len(filings))
	for _, f := range filings {
		res = append(res, toFilingResponse(f))
	}
	return res, total, nil
}

func (s *filingService) DeleteFiling(ctx context.Context, id string) error {
	filingID, err := parseID("filing", id)
	if err != nil {
		return err
	}
	filing, err := loadFiling(ctx, s.filingRepo, filingID)
	if err != nil {
		return err
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.filingRepo.Delete(txCtx, filingID); err != nil {
			return fmt.Errorf("failed to delete filing: %w", err)
		}
		audit := newAuditLog(filingID, model.ActionDeleteFiling, id, filing.TaxpayerRef+" "+filing.FinancialYear, map[string]bool{"deleted": true})
		if err := s.auditRepo.Log(txCtx, audit); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		return nil
	})
}

// CompareRegimes recomputes the filing from its stored records, records the
// outcome in the audit log and pushes it to subscribers.
func (s *filingService) CompareRegimes(ctx context.Context, id string) (ComparisonResponse, error) {
	filingID, err := parseID("filing", id)
	if err != nil {
		return ComparisonResponse{}, err
	}

	res, err := s.compute(ctx, filingID)
	if err != nil {
		return ComparisonResponse{}, err
	}

	writeAuditLog(ctx, s.auditRepo, newAuditLog(filingID, model.ActionCompareRegimes, id, string(res.RecommendedRegime), map[string]string{
		"recommended_regime": string(res.RecommendedRegime),
		"savings_amount":     res.SavingsAmount.StringFixed(2),
		"old_total":          res.OldRegimeResult.TotalTaxLiability.StringFixed(2),
		"new_total":          res.NewRegimeResult.TotalTaxLiability.StringFixed(2),
	}))
	s.publish(FilingEvent{Event: EventComparisonUpdated, FilingID: filingID.String(), Data: res})

	return res, nil
}

// FilingChanged pushes a fresh comparison, or the reason none can be made,
// to the filing's subscribers.
func (s *filingService) FilingChanged(ctx context.Context, filingID uuid.UUID) {
	if s.publisher == nil {
		return
	}
	res, err := s.compute(ctx, filingID)
	if err != nil {
		s.publish(FilingEvent{Event: EventComparisonInvalid, FilingID: filingID.String(), Error: err.Error()})
		return
	}
	s.publish(FilingEvent{Event: EventComparisonUpdated, FilingID: filingID.String(), Data: res})
}

func (s *filingService) compute(ctx context.Context, filingID uuid.UUID) (ComparisonResponse, error) {
	filing, err := loadFiling(ctx, s.filingRepo, filingID)
	if err != nil {
		return ComparisonResponse{}, err
	}

	income, err := s.incomeRepo.ListActive(ctx, filingID)
	if err != nil {
		return ComparisonResponse{}, fmt.Errorf("failed to fetch income records: %w", err)
	}
	deductions, err := s.deductionRepo.ListByFiling(ctx, filingID)
	if err != nil {
		return ComparisonResponse{}, fmt.Errorf("failed to fetch deduction claims: %w", err)
	}
	transactions, err := s.capitalGainRepo.ListByFiling(ctx, filingID)
	if err != nil {
		return ComparisonResponse{}, fmt.Errorf("failed to fetch capital gain transactions: %w", err)
	}

	input, err := buildFilingInput(*filing, income, deductions, transactions)
	if err != nil {
		return ComparisonResponse{}, err
	}
	comparison, err := s.engine.Compare(input)
	if err != nil {
		return ComparisonResponse{}, fmt.Errorf("failed to compare regimes: %w", err)
	}

	return ComparisonResponse{
		FilingID:         filingID.String(),
		ComputedAt:       s.now().UTC().Format(time.RFC3339),
		RegimeComparison: comparison,
	}, nil
}

func (s *filingService) publish(event FilingEvent) {
	if s.publisher == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to encode %s event for filing %s: %v", event.Event, event.FilingID, err)
		return
	}
	s.publisher.Publish(event.FilingID, payload)
}

// --- Helpers ---

func ageCategoryOrDefault(age string) string {
	if age == "" {
		return string(taxengine.AgeBelow60)
	}
	return age
}

func toFilingResponse(f model.Filing) FilingResponse {
	return FilingResponse{
		ID:             f.ID.String(),
		TaxpayerRef:    f.TaxpayerRef,
		FinancialYear:  f.FinancialYear,
		AgeCategory:    f.AgeCategory,
		AdvanceTaxPaid: formatOptional(f.AdvanceTaxPaid),
		CreatedAt:      f.CreatedAt.Format(time.RFC3339),
	}
}
