package repository

import (
	"context"

	"transio/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DriverRepository interface {
	Create(ctx context.Context, driver *model.Driver) error
	Update(ctx context.Context, driver *model.Driver) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Driver, error)
	List(ctx context.Context, status model.DriverStatus, search string, page, limit int) ([]model.Driver, int64, error)
	AddSalaryPayment(ctx context.Context, payment *model.SalaryPayment) error
}

type driverRepository struct {
	db *gorm.DB
}

func NewDriverRepository(db *gorm.DB) DriverRepository {
	return &driverRepository{db: db}
}

func (r *driverRepository) Create(ctx context.Context, driver *model.Driver) error {
	return GetDB(ctx, r.db).Create(driver).Error
}

func (r *driverRepository) Update(ctx context.Context, driver *model.Driver) error {
	return GetDB(ctx, r.db).Save(driver).Error
}

func (r *driverRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Driver{}).Error
}

func (r *driverRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Driver, error) {
	var driver model.Driver
	err := GetDB(ctx, r.db).
		Preload("SalaryPayments", func(db *gorm.DB) *gorm.DB { return db.Order("data DESC") }).
		Preload("Documents").
		First(&driver, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &driver, nil
}

func (r *driverRepository) List(ctx context.Context, status model.DriverStatus, search string, page, limit int) ([]model.Driver, int64, error) {
	var drivers []model.Driver
	var total int64

	db := GetDB(ctx, r.db)
	query := db.Model(&model.Driver{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if search != "" {
		query = query.Where("nume ILIKE ? OR telefon ILIKE ? OR email ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	fetchQuery := db.Model(&model.Driver{}).
		Preload("SalaryPayments", func(db *gorm.DB) *gorm.DB { return db.Order("data DESC") }).
		Preload("Documents")
	if status != "" {
		fetchQuery = fetchQuery.Where("status = ?", status)
	}
	if search != "" {
		fetchQuery = fetchQuery.Where("nume ILIKE ? OR telefon ILIKE ? OR email ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := fetchQuery.Order("created_at DESC").Offset(offset).Limit(limit).Find(&drivers).Error; err != nil {
		return nil, 0, err
	}

	return drivers, total, nil
}

func (r *driverRepository) AddSalaryPayment(ctx context.Context, payment *model.SalaryPayment) error {
	return GetDB(ctx, r.db).Create(payment).Error
}
