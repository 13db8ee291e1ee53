package service

import (
	"context"
	"encoding/json"
	"testing"

	"itrfiling/internal/model"
	"itrfiling/internal/taxengine"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type incomeFixture struct {
	filingID string
	repo     *fakeIncomeRepo
	audit    *fakeAuditRepo
	notifier *fakeNotifier
	service  IncomeService
}

func newIncomeFixture(t *testing.T) *incomeFixture {
	t.Helper()
	filings := newFakeFilingRepo()
	filing := model.Filing{TaxpayerRef: "ABCDE1234F", FinancialYear: "2024-25", AgeCategory: "below60"}
	require.NoError(t, filings.Create(context.Background(), &filing))

	f := &incomeFixture{
		filingID: filing.ID.String(),
		repo:     &fakeIncomeRepo{},
		audit:    &fakeAuditRepo{},
		notifier: &fakeNotifier{},
	}
	f.service = NewIncomeService(filings, f.repo, f.audit, &fakeTxManager{}, f.notifier)
	return f
}

func TestAddIncome(t *testing.T) {
	ctx := context.Background()
	f := newIncomeFixture(t)

	res, err := f.service.AddIncome(ctx, f.filingID, IncomeRequest{
		Category: "salary",
		Amount:   "1200000.50",
		TDS:      lo.ToPtr("90000"),
		Details:  json.RawMessage(`{"employer_name":"Acme","professional_tax":"2500"}`),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Version)
	assert.Equal(t, "1200000.50", res.Amount)
	assert.Equal(t, "90000.00", *res.TDS)
	assert.JSONEq(t, `{"employer_name":"Acme","professional_tax":"2500"}`, string(res.Details))
	assert.NotEqual(t, uuid.Nil.String(), res.LineageID)

	assert.Equal(t, []string{model.ActionAddIncome}, f.audit.actions())
	assert.Len(t, f.notifier.changed, 1)
}

func TestAddIncome_Rejected(t *testing.T) {
	ctx := context.Background()
	f := newIncomeFixture(t)

	tests := []struct {
		name    string
		filing  string
		req     IncomeRequest
		wantErr error
	}{
		{"negative amount", f.filingID, IncomeRequest{Category: "salary", Amount: "-5"}, taxengine.ErrInvalidIncomeAmount},
		{"malformed amount", f.filingID, IncomeRequest{Category: "salary", Amount: "12,000"}, taxengine.ErrInvalidIncomeAmount},
		{"negative tds", f.filingID, IncomeRequest{Category: "salary", Amount: "5", TDS: lo.ToPtr("-1")}, taxengine.ErrInvalidIncomeAmount},
		{"unknown category", f.filingID, IncomeRequest{Category: "lottery", Amount: "5"}, taxengine.ErrUnknownCategory},
		{"details not json object", f.filingID, IncomeRequest{Category: "rental", Amount: "5", Details: json.RawMessage(`[1]`)}, ErrInvalidInput},
		{"unknown filing", uuid.NewString(), IncomeRequest{Category: "salary", Amount: "5"}, ErrFilingNotFound},
		{"bad filing id", "nope", IncomeRequest{Category: "salary", Amount: "5"}, ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.AddIncome(ctx, tt.filing, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Empty(t, f.repo.rows)
	assert.Empty(t, f.notifier.changed)
}

func TestReplaceIncome_KeepsHistory(t *testing.T) {
	ctx := context.Background()
	f := newIncomeFixture(t)

	first, err := f.service.AddIncome(ctx, f.filingID, IncomeRequest{Category: "interest", Amount: "8000"})
	require.NoError(t, err)

	second, err := f.service.ReplaceIncome(ctx, f.filingID, first.ID, IncomeRequest{Category: "interest", Amount: "9500"})
	require.NoError(t, err)
	assert.Equal(t, 2, second.Version)
	assert.Equal(t, first.LineageID, second.LineageID)

	active, err := f.service.ListIncome(ctx, f.filingID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "9500.00", active[0].Amount)

	history, err := f.service.GetIncomeHistory(ctx, f.filingID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, lo.Map(history, func(r IncomeResponse, _ int) int { return r.Version }))

	_, err = f.service.ReplaceIncome(ctx, f.filingID, first.ID, IncomeRequest{Category: "interest", Amount: "1"})
	assert.ErrorIs(t, err, ErrIncomeVersionConflict)

	assert.Equal(t, []string{model.ActionAddIncome, model.ActionReplaceIncome}, f.audit.actions())
}

func TestReplaceIncome_InvalidKeepsCurrentVersion(t *testing.T) {
	ctx := context.Background()
	f := newIncomeFixture(t)

	first, err := f.service.AddIncome(ctx, f.filingID, IncomeRequest{Category: "other", Amount: "100"})
	require.NoError(t, err)

	_, err = f.service.ReplaceIncome(ctx, f.filingID, first.ID, IncomeRequest{Category: "other", Amount: "-100"})
	assert.ErrorIs(t, err, taxengine.ErrInvalidIncomeAmount)

	active, err := f.service.ListIncome(ctx, f.filingID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, first.ID, active[0].ID)
}

func TestDeleteIncome_RemovesLineage(t *testing.T) {
	ctx := context.Background()
	f := newIncomeFixture(t)

	first, err := f.service.AddIncome(ctx, f.filingID, IncomeRequest{Category: "other", Amount: "100"})
	require.NoError(t, err)
	second, err := f.service.ReplaceIncome(ctx, f.filingID, first.ID, IncomeRequest{Category: "other", Amount: "200"})
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteIncome(ctx, f.filingID, second.ID))
	assert.Empty(t, f.repo.rows)

	err = f.service.DeleteIncome(ctx, f.filingID, second.ID)
	assert.ErrorIs(t, err, ErrIncomeNotFound)
}

func TestIncome_OtherFilingIsNotFound(t *testing.T) {
	ctx := context.Background()
	f := newIncomeFixture(t)

	rec, err := f.service.AddIncome(ctx, f.filingID, IncomeRequest{Category: "other", Amount: "100"})
	require.NoError(t, err)

	_, err = f.service.GetIncomeHistory(ctx, uuid.NewString(), rec.ID)
	assert.ErrorIs(t, err, ErrIncomeNotFound)
}
