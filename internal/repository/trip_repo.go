package repository

import (
	"context"
	"time"

	"transio/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TripFilter narrows trip listings; zero values mean "no filter".
type TripFilter struct {
	Status    model.TripStatus
	DriverID  *uuid.UUID
	VehicleID *uuid.UUID
	PartnerID *uuid.UUID
	Bursa     string
	Search    string // matches load/unload point company or address
	FromDate  *time.Time
	ToDate    *time.Time
}

type TripRepository interface {
	Create(ctx context.Context, trip *model.Trip) error
	Update(ctx context.Context, trip *model.Trip) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Trip, error)
	List(ctx context.Context, filter TripFilter, page, limit int) ([]model.Trip, int64, error)
	ReplacePoints(ctx context.Context, tripID uuid.UUID, points []model.TripPoint) error
	FindWithoutInvoice(ctx context.Context) ([]model.Trip, error)
}

type tripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{db: db}
}

func (r *tripRepository) Create(ctx context.Context, trip *model.Trip) error {
	return GetDB(ctx, r.db).Create(trip).Error
}

func (r *tripRepository) Update(ctx context.Context, trip *model.Trip) error {
	return GetDB(ctx, r.db).Save(trip).Error
}

func (r *tripRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Trip{}).Error
}

func (r *tripRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Trip, error) {
	var trip model.Trip
	err := GetDB(ctx, r.db).
		Preload("Points", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Driver").
		Preload("Vehicle").
		Preload("Partner").
		Preload("Documents").
		First(&trip, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

// applyFilter attaches the WHERE clauses of a TripFilter to a query. Used by
// both the count and the fetch query so they cannot drift apart.
func (f TripFilter) apply(query *gorm.DB) *gorm.DB {
	if f.Status != "" {
		query = query.Where("trips.status = ?", f.Status)
	}
	if f.DriverID != nil {
		query = query.Where("trips.driver_id = ?", *f.DriverID)
	}
	if f.VehicleID != nil {
		query = query.Where("trips.vehicle_id = ?", *f.VehicleID)
	}
	if f.PartnerID != nil {
		query = query.Where("trips.partner_id = ?", *f.PartnerID)
	}
	if f.Bursa != "" {
		query = query.Where("trips.bursa_sursa = ?", f.Bursa)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		query = query.Where(
			"EXISTS (SELECT 1 FROM trip_points tp WHERE tp.trip_id = trips.id AND (tp.firma ILIKE ? OR tp.adresa ILIKE ?))",
			pattern, pattern)
	}
	if f.FromDate != nil {
		query = query.Where("trips.created_at >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		query = query.Where("trips.created_at <= ?", *f.ToDate)
	}
	return query
}

func (r *tripRepository) List(ctx context.Context, filter TripFilter, page, limit int) ([]model.Trip, int64, error) {
	var trips []model.Trip
	var total int64

	db := GetDB(ctx, r.db)
	if err := filter.apply(db.Model(&model.Trip{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	fetchQuery := filter.apply(db.Model(&model.Trip{})).
		Preload("Points", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Driver").
		Preload("Vehicle").
		Preload("Partner").
		Preload("Documents")
	if err := fetchQuery.Order("trips.created_at DESC").Offset(offset).Limit(limit).Find(&trips).Error; err != nil {
		return nil, 0, err
	}

	return trips, total, nil
}

// ReplacePoints swaps the full set of load/unload points of a trip
// (delete-all + re-create, run inside the caller's transaction).
func (r *tripRepository) ReplacePoints(ctx context.Context, tripID uuid.UUID, points []model.TripPoint) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("trip_id = ?", tripID).Delete(&model.TripPoint{}).Error; err != nil {
		return err
	}
	if len(points) == 0 {
		return nil
	}
	return db.Create(&points).Error
}

// FindWithoutInvoice returns finished or paid trips that no invoice references,
// the candidate set for new invoices.
func (r *tripRepository) FindWithoutInvoice(ctx context.Context) ([]model.Trip, error) {
	var trips []model.Trip
	err := GetDB(ctx, r.db).
		Where("trips.status IN ?", []model.TripStatus{model.TripStatusFinished, model.TripStatusPaid}).
		Where("NOT EXISTS (SELECT 1 FROM invoices i WHERE i.trip_id = trips.id AND i.deleted_at IS NULL)").
		Preload("Partner").
		Order("trips.created_at DESC").
		Find(&trips).Error
	return trips, err
}
