package service

import (
	"context"
	"fmt"
	"time"

	"itrfiling/internal/model"
	"itrfiling/internal/taxengine"

	"github.com/google/uuid"
)

// --- DTOs ---

// CompareRequest carries a whole filing inline for what-if computation.
// Nothing in it is stored.
type CompareRequest struct {
	AgeCategory  string               `json:"age_category" binding:"omitempty,oneof=below60 senior superSenior"`
	TaxesPaid    *string              `json:"taxes_paid"` // Omitted = not reported
	Income       []IncomeRequest      `json:"income" binding:"dive"`
	Deductions   []DeductionRequest   `json:"deductions" binding:"dive"`
	CapitalGains []CapitalGainRequest `json:"capital_gains" binding:"dive"`
}

type SchedulesResponse struct {
	Options taxengine.Options             `json:"options"`
	Old     taxengine.TaxRegimeSchedule   `json:"old"`
	New     taxengine.TaxRegimeSchedule   `json:"new"`
	Senior  []taxengine.TaxRegimeSchedule `json:"old_age_based,omitempty"`
}

// --- Interface ---

type TaxService interface {
	Compare(ctx context.Context, req CompareRequest) (ComparisonResponse, error)
	Schedules(ctx context.Context) SchedulesResponse
}

type taxService struct {
	engine *taxengine.Engine
	now    func() time.Time
}

func NewTaxService(engine *taxengine.Engine) TaxService {
	return &taxService{engine: engine, now: time.Now}
}

// --- Implementation ---

func (s *taxService) Compare(ctx context.Context, req CompareRequest) (ComparisonResponse, error) {
	if err := ctx.Err(); err != nil {
		return ComparisonResponse{}, err
	}

	advance, err := parseOptionalAmount(req.TaxesPaid, taxengine.ParseAmount)
	if err != nil {
		return ComparisonResponse{}, err
	}
	filing := model.Filing{AgeCategory: ageCategoryOrDefault(req.AgeCategory), AdvanceTaxPaid: advance}

	// Request position stands in for the record id so errors point at the
	// offending entry.
	income := make([]model.IncomeRecord, 0, len(req.Income))
	for i, r := range req.Income {
		rec, err := buildIncomeRecord(r)
		if err != nil {
			return ComparisonResponse{}, fmt.Errorf("income[%d]: %w", i, err)
		}
		rec.ID = positionalID(1, i)
		income = append(income, rec)
	}
	deductions := make([]model.DeductionClaim, 0, len(req.Deductions))
	for i, d := range req.Deductions {
		claim, err := buildDeductionClaim(d)
		if err != nil {
			return ComparisonResponse{}, fmt.Errorf("deductions[%d]: %w", i, err)
		}
		claim.ID = positionalID(2, i)
		deductions = append(deductions, claim)
	}
	transactions := make([]model.CapitalGainTransaction, 0, len(req.CapitalGains))
	for i, t := range req.CapitalGains {
		tx, err := buildCapitalGain(t)
		if err != nil {
			return ComparisonResponse{}, fmt.Errorf("capital_gains[%d]: %w", i, err)
		}
		tx.ID = positionalID(3, i)
		transactions = append(transactions, tx)
	}

	input, err := buildFilingInput(filing, income, deductions, transactions)
	if err != nil {
		return ComparisonResponse{}, err
	}
	comparison, err := s.engine.Compare(input)
	if err != nil {
		return ComparisonResponse{}, fmt.Errorf("failed to compare regimes: %w", err)
	}

	return ComparisonResponse{
		ComputedAt:       s.now().UTC().Format(time.RFC3339),
		RegimeComparison: comparison,
	}, nil
}

func (s *taxService) Schedules(_ context.Context) SchedulesResponse {
	opts := s.engine.Options()
	res := SchedulesResponse{
		Options: opts,
		Old:     taxengine.OldRegime(),
		New:     taxengine.NewRegime(),
	}
	if opts.AgeBasedSlabs {
		res.Senior = []taxengine.TaxRegimeSchedule{
			taxengine.ScheduleFor(taxengine.RegimeOld, taxengine.AgeSenior, true),
			taxengine.ScheduleFor(taxengine.RegimeOld, taxengine.AgeSuperSenior, true),
		}
	}
	return res
}

// positionalID gives inline entries stable ids: the group in the first byte,
// the index in the last four.
func positionalID(group byte, index int) uuid.UUID {
	var id uuid.UUID
	id[0] = group
	id[12] = byte(index >> 24)
	id[13] = byte(index >> 16)
	id[14] = byte(index >> 8)
	id[15] = byte(index)
	return id
}
