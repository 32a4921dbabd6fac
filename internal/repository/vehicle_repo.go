package repository

import (
	"context"

	"transio/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *model.Vehicle) error
	Update(ctx context.Context, vehicle *model.Vehicle) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error)
	FindByPlate(ctx context.Context, plate string) (*model.Vehicle, error)
	List(ctx context.Context, status model.VehicleStatus, search string, page, limit int) ([]model.Vehicle, int64, error)
	AddRepair(ctx context.Context, repair *model.Repair) error
	ListRepairs(ctx context.Context, vehicleID uuid.UUID) ([]model.Repair, error)
}

type vehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *model.Vehicle) error {
	return GetDB(ctx, r.db).Create(vehicle).Error
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *model.Vehicle) error {
	return GetDB(ctx, r.db).Save(vehicle).Error
}

func (r *vehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Vehicle{}).Error
}

func (r *vehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	err := GetDB(ctx, r.db).
		Preload("Repairs", func(db *gorm.DB) *gorm.DB { return db.Order("data DESC") }).
		First(&vehicle, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) FindByPlate(ctx context.Context, plate string) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	if err := GetDB(ctx, r.db).First(&vehicle, "numar_inmatriculare = ?", plate).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) List(ctx context.Context, status model.VehicleStatus, search string, page, limit int) ([]model.Vehicle, int64, error) {
	var vehicles []model.Vehicle
	var total int64

	db := GetDB(ctx, r.db)
	query := db.Model(&model.Vehicle{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if search != "" {
		query = query.Where("numar_inmatriculare ILIKE ? OR marca ILIKE ? OR model ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	fetchQuery := db.Model(&model.Vehicle{}).
		Preload("Repairs", func(db *gorm.DB) *gorm.DB { return db.Order("data DESC") })
	if status != "" {
		fetchQuery = fetchQuery.Where("status = ?", status)
	}
	if search != "" {
		fetchQuery = fetchQuery.Where("numar_inmatriculare ILIKE ? OR marca ILIKE ? OR model ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := fetchQuery.Order("created_at DESC").Offset(offset).Limit(limit).Find(&vehicles).Error; err != nil {
		return nil, 0, err
	}

	return vehicles, total, nil
}

func (r *vehicleRepository) AddRepair(ctx context.Context, repair *model.Repair) error {
	return GetDB(ctx, r.db).Create(repair).Error
}

func (r *vehicleRepository) ListRepairs(ctx context.Context, vehicleID uuid.UUID) ([]model.Repair, error) {
	var repairs []model.Repair
	err := GetDB(ctx, r.db).Where("vehicle_id = ?", vehicleID).Order("data DESC").Find(&repairs).Error
	return repairs, err
}
