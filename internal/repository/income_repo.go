package repository

import (
	"context"

	"itrfiling/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IncomeRepository interface {
	Create(ctx context.Context, record *model.IncomeRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.IncomeRecord, error)
	// ListActive returns the current version of every record of a filing.
	ListActive(ctx context.Context, filingID uuid.UUID) ([]model.IncomeRecord, error)
	ListHistory(ctx context.Context, lineageID uuid.UUID) ([]model.IncomeRecord, error)
	MarkSuperseded(ctx context.Context, id uuid.UUID) error
	DeleteLineage(ctx context.Context, lineageID uuid.UUID) error
}

type incomeRepository struct {
	db *gorm.DB
}

func NewIncomeRepository(db *gorm.DB) IncomeRepository {
	return &incomeRepository{db: db}
}

func (r *incomeRepository) Create(ctx context.Context, record *model.IncomeRecord) error {
	return GetDB(ctx, r.db).Create(record).Error
}

func (r *incomeRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.IncomeRecord, error) {
	var record model.IncomeRecord
	if err := GetDB(ctx, r.db).First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *incomeRepository) ListActive(ctx context.Context, filingID uuid.UUID) ([]model.IncomeRecord, error) {
	var records []model.IncomeRecord
	err := GetDB(ctx, r.db).
		Where("filing_id = ? AND superseded = ?", filingID, false).
		Order("created_at asc, id asc").
		Find(&records).Error
	return records, err
}

func (r *incomeRepository) ListHistory(ctx context.Context, lineageID uuid.UUID) ([]model.IncomeRecord, error) {
	var records []model.IncomeRecord
	err := GetDB(ctx, r.db).Where("lineage_id = ?", lineageID).Order("version asc").Find(&records).Error
	return records, err
}

func (r *incomeRepository) MarkSuperseded(ctx context.Context, id uuid.UUID) error {
	res := GetDB(ctx, r.db).Model(&model.IncomeRecord{}).
		Where("id = ? AND superseded = ?", id, false).
		Update("superseded", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Someone else replaced it first.
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *incomeRepository) DeleteLineage(ctx context.Context, lineageID uuid.UUID) error {
	return GetDB(ctx, r.db).Where("lineage_id = ?", lineageID).Delete(&model.IncomeRecord{}).Error
}
