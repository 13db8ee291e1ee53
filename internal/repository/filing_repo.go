package repository

import (
	"context"

	"itrfiling/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FilingRepository interface {
	Create(ctx context.Context, filing *model.Filing) error
	Update(ctx context.Context, filing *model.Filing) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Filing, error)
	List(ctx context.Context, page, limit int) ([]model.Filing, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type filingRepository struct {
	db *gorm.DB
}

func NewFilingRepository(db *gorm.DB) FilingRepository {
	return &filingRepository{db: db}
}

func (r *filingRepository) Create(ctx context.Context, filing *model.Filing) error {
	return GetDB(ctx, r.db).Create(filing).Error
}

func (r *filingRepository) Update(ctx context.Context, filing *model.Filing) error {
	return GetDB(ctx, r.db).Save(filing).Error
}

func (r *filingRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Filing, error) {
	var filing model.Filing
	if err := GetDB(ctx, r.db).First(&filing, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &filing, nil
}

func (r *filingRepository) List(ctx context.Context, page, limit int) ([]model.Filing, int64, error) {
	var filings []model.Filing
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Filing{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Order("created_at desc").Offset(offset(page, limit)).Limit(limit).Find(&filings).Error; err != nil {
		return nil, 0, err
	}

	return filings, total, nil
}

// Delete removes the filing and every record that belongs to it.
func (r *filingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	for _, child := range []interface{}{&model.IncomeRecord{}, &model.DeductionClaim{}, &model.CapitalGainTransaction{}} {
		if err := db.Where("filing_id = ?", id).Delete(child).Error; err != nil {
			return err
		}
	}
	return db.Where("id = ?", id).Delete(&model.Filing{}).Error
}
