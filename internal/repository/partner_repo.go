package repository

import (
	"context"

	"transio/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PartnerRepository interface {
	Create(ctx context.Context, partner *model.Partner) error
	Update(ctx context.Context, partner *model.Partner) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Partner, error)
	List(ctx context.Context, status model.PartnerStatus, bursa, search string, page, limit int) ([]model.Partner, int64, error)
}

type partnerRepository struct {
	db *gorm.DB
}

func NewPartnerRepository(db *gorm.DB) PartnerRepository {
	return &partnerRepository{db: db}
}

func (r *partnerRepository) Create(ctx context.Context, partner *model.Partner) error {
	return GetDB(ctx, r.db).Create(partner).Error
}

func (r *partnerRepository) Update(ctx context.Context, partner *model.Partner) error {
	return GetDB(ctx, r.db).Save(partner).Error
}

func (r *partnerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Partner{}).Error
}

func (r *partnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Partner, error) {
	var partner model.Partner
	if err := GetDB(ctx, r.db).Preload("Contracts").First(&partner, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &partner, nil
}

func (r *partnerRepository) List(ctx context.Context, status model.PartnerStatus, bursa, search string, page, limit int) ([]model.Partner, int64, error) {
	var partners []model.Partner
	var total int64

	db := GetDB(ctx, r.db)
	query := db.Model(&model.Partner{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if bursa != "" {
		query = query.Where("bursa_sursa = ?", bursa)
	}
	if search != "" {
		query = query.Where("nume_firma ILIKE ? OR contact_persoana ILIKE ? OR contact_telefon ILIKE ? OR contact_email ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	fetchQuery := db.Model(&model.Partner{}).Preload("Contracts")
	if status != "" {
		fetchQuery = fetchQuery.Where("status = ?", status)
	}
	if bursa != "" {
		fetchQuery = fetchQuery.Where("bursa_sursa = ?", bursa)
	}
	if search != "" {
		fetchQuery = fetchQuery.Where("nume_firma ILIKE ? OR contact_persoana ILIKE ? OR contact_telefon ILIKE ? OR contact_email ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := fetchQuery.Order("created_at DESC").Offset(offset).Limit(limit).Find(&partners).Error; err != nil {
		return nil, 0, err
	}

	return partners, total, nil
}
