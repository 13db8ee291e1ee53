package service

import (
	"context"
	"testing"

	"itrfiling/internal/model"
	"itrfiling/internal/taxengine"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeductionService(t *testing.T) (DeductionService, string, *fakeDeductionRepo, *fakeNotifier) {
	t.Helper()
	filings := newFakeFilingRepo()
	filing := model.Filing{TaxpayerRef: "ABCDE1234F", FinancialYear: "2024-25", AgeCategory: "below60"}
	require.NoError(t, filings.Create(context.Background(), &filing))

	repo := &fakeDeductionRepo{}
	notifier := &fakeNotifier{}
	return NewDeductionService(filings, repo, &fakeAuditRepo{}, &fakeTxManager{}, notifier), filing.ID.String(), repo, notifier
}

func TestListDeductions_Summary(t *testing.T) {
	ctx := context.Background()
	svc, filingID, _, _ := newDeductionService(t)

	_, err := svc.AddDeduction(ctx, filingID, DeductionRequest{Section: "80C", Amount: "120000"})
	require.NoError(t, err)
	_, err = svc.AddDeduction(ctx, filingID, DeductionRequest{Section: "80C", Amount: "80000"})
	require.NoError(t, err)
	_, err = svc.AddDeduction(ctx, filingID, DeductionRequest{Section: "80D", Amount: "20000", Beneficiary: "self"})
	require.NoError(t, err)

	res, err := svc.ListDeductions(ctx, filingID)
	require.NoError(t, err)

	assert.Len(t, res.Claims, 3)
	assert.Equal(t, "170000", res.Summary.AllowedTotal.String())
	assert.Equal(t, "150000", res.Summary.PerSection[taxengine.Section80C].String())
	require.Len(t, res.Summary.Warnings, 1)
	assert.Equal(t, taxengine.WarnLimitExceeded, res.Summary.Warnings[0].Code)
}

func TestAddDeduction_ThirdSelfOccupiedPropertyRejected(t *testing.T) {
	ctx := context.Background()
	svc, filingID, repo, notifier := newDeductionService(t)

	for _, property := range []string{"flat-a", "flat-b"} {
		_, err := svc.AddDeduction(ctx, filingID, DeductionRequest{
			Section:      "home-loan-interest",
			Amount:       "150000",
			PropertyType: "self-occupied",
			PropertyID:   property,
		})
		require.NoError(t, err)
	}

	_, err := svc.AddDeduction(ctx, filingID, DeductionRequest{
		Section:      "home-loan-interest",
		Amount:       "10000",
		PropertyType: "self-occupied",
		PropertyID:   "flat-c",
	})
	assert.ErrorIs(t, err, taxengine.ErrTooManySelfOccupiedProperties)
	assert.True(t, taxengine.IsStructural(err))
	assert.Len(t, repo.rows, 2)
	assert.Len(t, notifier.changed, 2)

	// A second claim on a known property is fine.
	_, err = svc.AddDeduction(ctx, filingID, DeductionRequest{
		Section:      "home-loan-interest",
		Amount:       "10000",
		PropertyType: "self-occupied",
		PropertyID:   "flat-a",
	})
	assert.NoError(t, err)
}

func TestUpdateDeduction_ReplacesClaimInSet(t *testing.T) {
	ctx := context.Background()
	svc, filingID, repo, _ := newDeductionService(t)

	a, err := svc.AddDeduction(ctx, filingID, DeductionRequest{Section: "home-loan-interest", Amount: "1", PropertyID: "a"})
	require.NoError(t, err)
	_, err = svc.AddDeduction(ctx, filingID, DeductionRequest{Section: "home-loan-interest", Amount: "1", PropertyID: "b"})
	require.NoError(t, err)

	// Moving claim a to a third property keeps the count at two.
	updated, err := svc.UpdateDeduction(ctx, filingID, a.ID, DeductionRequest{Section: "home-loan-interest", Amount: "5000", PropertyID: "c"})
	require.NoError(t, err)
	assert.Equal(t, a.ID, updated.ID)
	assert.Equal(t, "5000.00", updated.Amount)
	assert.Equal(t, "c", repo.rows[0].PropertyID)
}

func TestDeduction_Errors(t *testing.T) {
	ctx := context.Background()
	svc, filingID, _, _ := newDeductionService(t)

	_, err := svc.AddDeduction(ctx, filingID, DeductionRequest{Section: "80Z", Amount: "1"})
	assert.ErrorIs(t, err, taxengine.ErrUnknownSection)

	_, err = svc.AddDeduction(ctx, filingID, DeductionRequest{Section: "80C", Amount: "-1"})
	assert.ErrorIs(t, err, taxengine.ErrInvalidDeductionAmount)

	_, err = svc.UpdateDeduction(ctx, filingID, uuid.NewString(), DeductionRequest{Section: "80C", Amount: "1"})
	assert.ErrorIs(t, err, ErrDeductionNotFound)

	err = svc.DeleteDeduction(ctx, filingID, "bad")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteDeduction(t *testing.T) {
	ctx := context.Background()
	svc, filingID, repo, notifier := newDeductionService(t)

	claim, err := svc.AddDeduction(ctx, filingID, DeductionRequest{Section: "80E", Amount: "40000"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteDeduction(ctx, filingID, claim.ID))
	assert.Empty(t, repo.rows)
	assert.Len(t, notifier.changed, 2)
}
