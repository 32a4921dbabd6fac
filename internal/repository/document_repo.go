package repository

import (
	"context"

	"transio/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *model.Document) error
	CreateBatch(ctx context.Context, docs []model.Document) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Attach(ctx context.Context, id uuid.UUID, ownerType string, ownerID uuid.UUID) error
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *model.Document) error {
	return GetDB(ctx, r.db).Create(doc).Error
}

func (r *documentRepository) CreateBatch(ctx context.Context, docs []model.Document) error {
	if len(docs) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Create(&docs).Error
}

func (r *documentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	var doc model.Document
	if err := GetDB(ctx, r.db).First(&doc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Document{}).Error
}

// Attach binds an uploaded orphan document to its owning entity.
func (r *documentRepository) Attach(ctx context.Context, id uuid.UUID, ownerType string, ownerID uuid.UUID) error {
	return GetDB(ctx, r.db).Model(&model.Document{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"owner_type": ownerType, "owner_id": ownerID}).Error
}
