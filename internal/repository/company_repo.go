package repository

import (
	"context"
	"errors"

	"transio/internal/model"

	"gorm.io/gorm"
)

type CompanyRepository interface {
	Get(ctx context.Context) (*model.Company, error)
	Save(ctx context.Context, company *model.Company) error
}

type companyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

// Get returns the single company row, or an empty profile when none was
// saved yet.
func (r *companyRepository) Get(ctx context.Context) (*model.Company, error) {
	var company model.Company
	err := GetDB(ctx, r.db).First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.Company{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) Save(ctx context.Context, company *model.Company) error {
	return GetDB(ctx, r.db).Save(company).Error
}
