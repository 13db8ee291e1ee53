package repository

import (
	"context"

	"itrfiling/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CapitalGainRepository interface {
	Create(ctx context.Context, tx *model.CapitalGainTransaction) error
	Update(ctx context.Context, tx *model.CapitalGainTransaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CapitalGainTransaction, error)
	ListByFiling(ctx context.Context, filingID uuid.UUID) ([]model.CapitalGainTransaction, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type capitalGainRepository struct {
	db *gorm.DB
}

func NewCapitalGainRepository(db *gorm.DB) CapitalGainRepository {
	return &capitalGainRepository{db: db}
}

func (r *capitalGainRepository) Create(ctx context.Context, tx *model.CapitalGainTransaction) error {
	return GetDB(ctx, r.db).Create(tx).Error
}

func (r *capitalGainRepository) Update(ctx context.Context, tx *model.CapitalGainTransaction) error {
	return GetDB(ctx, r.db).Save(tx).Error
}

func (r *capitalGainRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.CapitalGainTransaction, error) {
	var tx model.CapitalGainTransaction
	if err := GetDB(ctx, r.db).First(&tx, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *capitalGainRepository) ListByFiling(ctx context.Context, filingID uuid.UUID) ([]model.CapitalGainTransaction, error) {
	var txs []model.CapitalGainTransaction
	err := GetDB(ctx, r.db).Where("filing_id = ?", filingID).Order("sale_date asc, id asc").Find(&txs).Error
	return txs, err
}

func (r *capitalGainRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.CapitalGainTransaction{}).Error
}
