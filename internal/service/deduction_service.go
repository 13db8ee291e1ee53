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
	"gorm.io/gorm"
)

// --- DTOs ---

type DeductionRequest struct {
	Section          string `json:"section" binding:"required"`
	Amount           string `json:"amount" binding:"required"` // Decimal string
	IsSeniorCitizen  bool   `json:"is_senior_citizen"`
	Beneficiary      string `json:"beneficiary" binding:"omitempty,oneof=self parents"`
	PropertyType     string `json:"property_type" binding:"omitempty,oneof=self-occupied let-out"`
	PropertyID       string `json:"property_id"`
	PaymentMode      string `json:"payment_mode" binding:"omitempty,oneof=cash non-cash"`
	SevereDisability bool   `json:"severe_disability"`
}

type DeductionResponse struct {
	ID               string `json:"id"`
	Section          string `json:"section"`
	Amount           string `json:"amount"`
	IsSeniorCitizen  bool   `json:"is_senior_citizen"`
	Beneficiary      string `json:"beneficiary,omitempty"`
	PropertyType     string `json:"property_type,omitempty"`
	PropertyID       string `json:"property_id,omitempty"`
	PaymentMode      string `json:"payment_mode,omitempty"`
	SevereDisability bool   `json:"severe_disability"`
}

// DeductionListResponse pairs the stored claims with what the validator
// would allow for them.
type DeductionListResponse struct {
	Claims  []DeductionResponse        `json:"claims"`
	Summary taxengine.DeductionSummary `json:"summary"`
}

// --- Interface ---

type DeductionService interface {
	ListDeductions(ctx context.Context, filingID string) (DeductionListResponse, error)
	AddDeduction(ctx context.Context, filingID string, req DeductionRequest) (DeductionResponse, error)
	UpdateDeduction(ctx context.Context, filingID, id string, req DeductionRequest) (DeductionResponse, error)
	DeleteDeduction(ctx context.Context, filingID, id string) error
}

type deductionService struct {
	filingRepo    repository.FilingRepository
	deductionRepo repository.DeductionRepository
	auditRepo     repository.AuditRepository
	txManager     repository.TransactionManager
	notifier      ChangeNotifier
}

func NewDeductionService(
	filingRepo repository.FilingRepository,
	deductionRepo repository.DeductionRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	notifier ChangeNotifier,
) DeductionService {
	return &deductionService{
		filingRepo:    filingRepo,
		deductionRepo: deductionRepo,
		auditRepo:     auditRepo,
		txManager:     txManager,
		notifier:      notifier,
	}
}

// --- Implementation ---

func (s *deductionService) ListDeductions(ctx context.Context, filingID string) (DeductionListResponse, error) {
	fid, err := parseID("filing", filingID)
	if err != nil {
		return DeductionListResponse{}, err
	}
	if _, err := loadFiling(ctx, s.filingRepo, fid); err != nil {
		return DeductionListResponse{}, err
	}

	claims, err := s.deductionRepo.ListByFiling(ctx, fid)
	if err != nil {
		return DeductionListResponse{}, fmt.Errorf("failed to fetch deduction claims: %w", err)
	}

	summary, err := taxengine.ValidateDeductions(lo.Map(claims, func(c model.DeductionClaim, _ int) taxengine.DeductionClaim {
		return toEngineDeduction(c)
	}))
	if err != nil {
		return DeductionListResponse{}, fmt.Errorf("failed to validate deduction claims: %w", err)
	}

	return DeductionListResponse{
		Claims:  lo.Map(claims, func(c model.DeductionClaim, _ int) DeductionResponse { return toDeductionResponse(c) }),
		Summary: summary,
	}, nil
}

func (s *deductionService) AddDeduction(ctx context.Context, filingID string, req DeductionRequest) (DeductionResponse, error) {
	fid, err := parseID("filing", filingID)
	if err != nil {
		return DeductionResponse{}, err
	}
	if _, err := loadFiling(ctx, s.filingRepo, fid); err != nil {
		return DeductionResponse{}, err
	}

	claim, err := buildDeductionClaim(req)
	if err != nil {
		return DeductionResponse{}, err
	}
	claim.FilingID = fid

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.checkClaimSet(txCtx, fid, claim); err != nil {
			return err
		}
		if err := s.deductionRepo.Create(txCtx, &claim); err != nil {
			return fmt.Errorf("failed to create deduction claim: %w", err)
		}
		audit := newAuditLog(fid, model.ActionAddDeduction, claim.ID.String(), claim.Section+" "+claim.Amount.StringFixed(2), req)
		if err := s.auditRepo.Log(txCtx, audit); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return DeductionResponse{}, err
	}

	s.notifier.FilingChanged(ctx, fid)
	return toDeductionResponse(claim), nil
}

func (s *deductionService) UpdateDeduction(ctx context.Context, filingID, id string, req DeductionRequest) (DeductionResponse, error) {
	fid, current, err := s.findClaim(ctx, filingID, id)
	if err != nil {
		return DeductionResponse{}, err
	}

	updated, err := buildDeductionClaim(req)
	if err != nil {
		return DeductionResponse{}, err
	}
	updated.ID = current.ID
	updated.FilingID = current.FilingID
	updated.CreatedAt = current.CreatedAt

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.checkClaimSet(txCtx, fid, updated); err != nil {
			return err
		}
		if err := s.deductionRepo.Update(txCtx, &updated); err != nil {
			return fmt.Errorf("failed to update deduction claim: %w", err)
		}
		audit := newAuditLog(fid, model.ActionUpdateDeduction, id, updated.Section+" "+updated.Amount.StringFixed(2), req)
		if err := s.auditRepo.Log(txCtx, audit); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return DeductionResponse{}, err
	}

	s.notifier.FilingChanged(ctx, fid)
	return toDeductionResponse(updated), nil
}

func (s *deductionService) DeleteDeduction(ctx context.Context, filingID, id string) error {
	fid, current, err := s.findClaim(ctx, filingID, id)
	if err != nil {
		return err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.deductionRepo.Delete(txCtx, current.ID); err != nil {
			return fmt.Errorf("failed to delete deduction claim: %w", err)
		}
		audit := newAuditLog(fid, model.ActionDeleteDeduction, id, current.Section, map[string]bool{"deleted": true})
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

// checkClaimSet runs the validator over the filing's claims with candidate
// added or replaced, so structural rules spanning several claims (the
// self-occupied property count) hold for what is stored.
func (s *deductionService) checkClaimSet(ctx context.Context, filingID uuid.UUID, candidate model.DeductionClaim) error {
	existing, err := s.deductionRepo.ListByFiling(ctx, filingID)
	if err != nil {
		return fmt.Errorf("failed to fetch deduction claims: %w", err)
	}

	set := lo.Reject(existing, func(c model.DeductionClaim, _ int) bool {
		return candidate.ID != uuid.Nil && c.ID == candidate.ID
	})
	set = append(set, candidate)

	_, err = taxengine.ValidateDeductions(lo.Map(set, func(c model.DeductionClaim, _ int) taxengine.DeductionClaim {
		return toEngineDeduction(c)
	}))
	return err
}

func (s *deductionService) findClaim(ctx context.Context, filingID, id string) (uuid.UUID, *model.DeductionClaim, error) {
	fid, err := parseID("filing", filingID)
	if err != nil {
		return uuid.Nil, nil, err
	}
	cid, err := parseID("deduction", id)
	if err != nil {
		return uuid.Nil, nil, err
	}

	claim, err := s.deductionRepo.FindByID(ctx, cid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, nil, ErrDeductionNotFound
		}
		return uuid.Nil, nil, fmt.Errorf("failed to fetch deduction claim: %w", err)
	}
	if claim.FilingID != fid {
		return uuid.Nil, nil, ErrDeductionNotFound
	}
	return fid, claim, nil
}

func buildDeductionClaim(req DeductionRequest) (model.DeductionClaim, error) {
	section := taxengine.Section(req.Section)
	if !section.Valid() {
		return model.DeductionClaim{}, fmt.Errorf("%w: %q", taxengine.ErrUnknownSection, req.Section)
	}
	amount, err := taxengine.ParseAmount(req.Amount)
	if err != nil {
		return model.DeductionClaim{}, fmt.Errorf("%w: %v", taxengine.ErrInvalidDeductionAmount, err)
	}

	return model.DeductionClaim{
		Section:          req.Section,
		Amount:           amount,
		IsSeniorCitizen:  req.IsSeniorCitizen,
		Beneficiary:      req.Beneficiary,
		PropertyType:     req.PropertyType,
		PropertyID:       req.PropertyID,
		PaymentMode:      req.PaymentMode,
		SevereDisability: req.SevereDisability,
	}, nil
}

func toDeductionResponse(c model.DeductionClaim) DeductionResponse {
	return DeductionResponse{
		ID:               c.ID.String(),
		Section:          c.Section,
		Amount:           c.Amount.StringFixed(2),
		IsSeniorCitizen:  c.IsSeniorCitizen,
		Beneficiary:      c.Beneficiary,
		PropertyType:     c.PropertyType,
		PropertyID:       c.PropertyID,
		PaymentMode:      c.PaymentMode,
		SevereDisability: c.SevereDisability,
	}
}
