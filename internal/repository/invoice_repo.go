package repository

import (
	"context"
	"time"

	"transio/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvoiceFilter narrows invoice listings; zero values mean "no filter".
type InvoiceFilter struct {
	Status   model.InvoiceStatus
	Numar    string // partial match
	TripID   *uuid.UUID
	DueUntil *time.Time
}

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *model.Invoice) error
	Update(ctx context.Context, invoice *model.Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error)
	FindByNumar(ctx context.Context, numar string) (*model.Invoice, error)
	List(ctx context.Context, filter InvoiceFilter, page, limit int) ([]model.Invoice, int64, error)
	CountByPrefix(ctx context.Context, prefix string) (int64, error)
}

type invoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *model.Invoice) error {
	return GetDB(ctx, r.db).Create(invoice).Error
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *model.Invoice) error {
	return GetDB(ctx, r.db).Save(invoice).Error
}

func (r *invoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Invoice{}).Error
}

func (r *invoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	var invoice model.Invoice
	err := GetDB(ctx, r.db).
		Preload("Trip").
		Preload("Trip.Partner").
		Preload("Documents").
		First(&invoice, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) FindByNumar(ctx context.Context, numar string) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := GetDB(ctx, r.db).First(&invoice, "numar = ?", numar).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (f InvoiceFilter) apply(query *gorm.DB) *gorm.DB {
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.Numar != "" {
		query = query.Where("numar ILIKE ?", "%"+f.Numar+"%")
	}
	if f.TripID != nil {
		query = query.Where("trip_id = ?", *f.TripID)
	}
	if f.DueUntil != nil {
		query = query.Where("data_scadenta <= ?", *f.DueUntil)
	}
	return query
}

func (r *invoiceRepository) List(ctx context.Context, filter InvoiceFilter, page, limit int) ([]model.Invoice, int64, error) {
	var invoices []model.Invoice
	var total int64

	db := GetDB(ctx, r.db)
	if err := filter.apply(db.Model(&model.Invoice{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	fetchQuery := filter.apply(db.Model(&model.Invoice{})).
		Preload("Trip").
		Preload("Trip.Partner").
		Preload("Documents")
	if err := fetchQuery.Order("created_at DESC").Offset(offset).Limit(limit).Find(&invoices).Error; err != nil {
		return nil, 0, err
	}

	return invoices, total, nil
}

func (r *invoiceRepository) CountByPrefix(ctx context.Context, prefix string) (int64, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.Invoice{}).Where("numar LIKE ?", prefix+"%").Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
