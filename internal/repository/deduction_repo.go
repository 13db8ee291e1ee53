package repository

import (
	"context"

	"itrfiling/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeductionRepository interface {
	Create(ctx context.Context, claim *model.DeductionClaim) error
	Update(ctx context.Context, claim *model.DeductionClaim) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.DeductionClaim, error)
	ListByFiling(ctx context.Context, filingID uuid.UUID) ([]model.DeductionClaim, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type deductionRepository struct {
	db *gorm.DB
}

func NewDeductionRepository(db *gorm.DB) DeductionRepository {
	return &deductionRepository{db: db}
}

func (r *deductionRepository) Create(ctx context.Context, claim *model.DeductionClaim) error {
	return GetDB(ctx, r.db).Create(claim).Error
}

func (r *deductionRepository) Update(ctx context.Context, claim *model.DeductionClaim) error {
	return GetDB(ctx, r.db).Save(claim).Error
}

func (r *deductionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.DeductionClaim, error) {
	var claim model.DeductionClaim
	if err := GetDB(ctx, r.db).First(&claim, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &claim, nil
}

func (r *deductionRepository) ListByFiling(ctx context.Context, filingID uuid.UUID) ([]model.DeductionClaim, error) {
	var claims []model.DeductionClaim
	err := GetDB(ctx, r.db).Where("filing_id = ?", filingID).Order("created_at asc, id asc").Find(&claims).Error
	return claims, err
}

func (r *deductionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.DeductionClaim{}).Error
}
