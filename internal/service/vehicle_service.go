package service

import (
	"context"
	"fmt"
	"time"

	"transio/internal/model"
	"transio/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type CreateVehicleRequest struct {
	NumarInmatriculare  string     `json:"numarInmatriculare" binding:"required"`
	Marca               string     `json:"marca"`
	Model               string     `json:"model"`
	An                  int        `json:"an"`
	Capacitate          float64    `json:"capacitate"`
	UnitateCapacitate   string     `json:"unitateCapacitate"`
	LungimeMarfa        float64    `json:"lungimeMarfa"`
	LatimeMarfa         float64    `json:"latimeMarfa"`
	InaltimeMarfa       float64    `json:"inaltimeMarfa"`
	KmActuali           int        `json:"kmActuali"`
	UltimulServiceData  *time.Time `json:"ultimulServiceData"`
	UltimulServiceKm    int        `json:"ultimulServiceKm"`
	IntervalServiceKm   int        `json:"intervalServiceKm"`
	IntervalServiceLuni int        `json:"intervalServiceLuni"`
	ExpirareRCA         *time.Time `json:"expirareRCA"`
	ExpirareITP         *time.Time `json:"expirareITP"`
}

type UpdateVehicleRequest struct {
	Marca               *string    `json:"marca"`
	Model               *string    `json:"model"`
	An                  *int       `json:"an"`
	Capacitate          *float64   `json:"capacitate"`
	UnitateCapacitate   *string    `json:"unitateCapacitate"`
	LungimeMarfa        *float64   `json:"lungimeMarfa"`
	LatimeMarfa         *float64   `json:"latimeMarfa"`
	InaltimeMarfa       *float64   `json:"inaltimeMarfa"`
	KmActuali           *int       `json:"kmActuali"`
	UltimulServiceData  *time.Time `json:"ultimulServiceData"`
	UltimulServiceKm    *int       `json:"ultimulServiceKm"`
	IntervalServiceKm   *int       `json:"intervalServiceKm"`
	IntervalServiceLuni *int       `json:"intervalServiceLuni"`
	ExpirareRCA         *time.Time `json:"expirareRCA"`
	ExpirareITP         *time.Time `json:"expirareITP"`
	Status              *string    `json:"status"`
}

type CreateRepairRequest struct {
	Descriere     string    `json:"descriere" binding:"required"`
	Cost          string    `json:"cost" binding:"required"`
	Data          time.Time `json:"data" binding:"required"`
	Furnizor      string    `json:"furnizor"`
	KmLaReparatie int       `json:"kmLaReparatie"`
}

type VehicleResponse struct {
	ID                  string              `json:"id"`
	NumarInmatriculare  string              `json:"numarInmatriculare"`
	Marca               string              `json:"marca"`
	Model               string              `json:"model"`
	An                  int                 `json:"an"`
	Capacitate          float64             `json:"capacitate"`
	UnitateCapacitate   string              `json:"unitateCapacitate"`
	LungimeMarfa        float64             `json:"lungimeMarfa"`
	LatimeMarfa         float64             `json:"latimeMarfa"`
	InaltimeMarfa       float64             `json:"inaltimeMarfa"`
	KmActuali           int                 `json:"kmActuali"`
	UltimulServiceData  *time.Time          `json:"ultimulServiceData"`
	UltimulServiceKm    int                 `json:"ultimulServiceKm"`
	IntervalServiceKm   int                 `json:"intervalServiceKm"`
	IntervalServiceLuni int                 `json:"intervalServiceLuni"`
	ExpirareRCA         *time.Time          `json:"expirareRCA"`
	ExpirareITP         *time.Time          `json:"expirareITP"`
	Status              model.VehicleStatus `json:"status"`
	Reparatii           []model.Repair      `json:"reparatii"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

// --- Interface ---

type VehicleService interface {
	CreateVehicle(ctx context.Context, req CreateVehicleRequest) (VehicleResponse, error)
	UpdateVehicle(ctx context.Context, id string, req UpdateVehicleRequest) (VehicleResponse, error)
	DeleteVehicle(ctx context.Context, id string) error
	GetVehicle(ctx context.Context, id string) (VehicleResponse, error)
	ListVehicles(ctx context.Context, status, search string, page, limit int) ([]VehicleResponse, int64, error)
	AddRepair(ctx context.Context, id string, req CreateRepairRequest) (VehicleResponse, error)
	ListRepairs(ctx context.Context, id string) ([]model.Repair, error)
}

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
}

func NewVehicleService(vehicleRepo repository.VehicleRepository) VehicleService {
	return &vehicleService{vehicleRepo: vehicleRepo}
}

// --- Validation helpers ---

func validateYear(year int) error {
	if year == 0 {
		return nil
	}
	if year < 1990 || year > time.Now().Year()+1 {
		return fmt.Errorf("an must be between 1990 and %d", time.Now().Year()+1)
	}
	return nil
}

// --- CRUD ---

func (s *vehicleService) CreateVehicle(ctx context.Context, req CreateVehicleRequest) (VehicleResponse, error) {
	if err := validateYear(req.An); err != nil {
		return VehicleResponse{}, err
	}
	if req.Capacitate < 0 {
		return VehicleResponse{}, fmt.Errorf("capacitate cannot be negative")
	}
	if _, err := s.vehicleRepo.FindByPlate(ctx, req.NumarInmatriculare); err == nil {
		return VehicleResponse{}, fmt.Errorf("numarInmatriculare already exists")
	}

	unit := req.UnitateCapacitate
	if unit == "" {
		unit = "t"
	}

	vehicle := &model.Vehicle{
		NumarInmatriculare:  req.NumarInmatriculare,
		Marca:               req.Marca,
		Model:               req.Model,
		An:                  req.An,
		Capacitate:          req.Capacitate,
		UnitateCapacitate:   unit,
		LungimeMarfa:        req.LungimeMarfa,
		LatimeMarfa:         req.LatimeMarfa,
		InaltimeMarfa:       req.InaltimeMarfa,
		KmActuali:           req.KmActuali,
		UltimulServiceData:  req.UltimulServiceData,
		UltimulServiceKm:    req.UltimulServiceKm,
		IntervalServiceKm:   req.IntervalServiceKm,
		IntervalServiceLuni: req.IntervalServiceLuni,
		ExpirareRCA:         req.ExpirareRCA,
		ExpirareITP:         req.ExpirareITP,
		Status:              model.VehicleStatusActive,
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return VehicleResponse{}, fmt.Errorf("failed to create vehicle: %w", err)
	}
	return toVehicleResponse(*vehicle), nil
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, id string, req UpdateVehicleRequest) (VehicleResponse, error) {
	vehicle, err := s.findVehicle(ctx, id)
	if err != nil {
		return VehicleResponse{}, err
	}

	if req.Marca != nil {
		vehicle.Marca = *req.Marca
	}
	if req.Model != nil {
		vehicle.Model = *req.Model
	}
	if req.An != nil {
		if err := validateYear(*req.An); err != nil {
			return VehicleResponse{}, err
		}
		vehicle.An = *req.An
	}
	if req.Capacitate != nil {
		if *req.Capacitate < 0 {
			return VehicleResponse{}, fmt.Errorf("capacitate cannot be negative")
		}
		vehicle.Capacitate = *req.Capacitate
	}
	if req.UnitateCapacitate != nil {
		vehicle.UnitateCapacitate = *req.UnitateCapacitate
	}
	if req.LungimeMarfa != nil {
		vehicle.LungimeMarfa = *req.LungimeMarfa
	}
	if req.LatimeMarfa != nil {
		vehicle.LatimeMarfa = *req.LatimeMarfa
	}
	if req.InaltimeMarfa != nil {
		vehicle.InaltimeMarfa = *req.InaltimeMarfa
	}
	if req.KmActuali != nil {
		if *req.KmActuali < vehicle.KmActuali {
			return VehicleResponse{}, fmt.Errorf("kmActuali cannot decrease")
		}
		vehicle.KmActuali = *req.KmActuali
	}
	if req.UltimulServiceData != nil {
		vehicle.UltimulServiceData = req.UltimulServiceData
	}
	if req.UltimulServiceKm != nil {
		vehicle.UltimulServiceKm = *req.UltimulServiceKm
	}
	if req.IntervalServiceKm != nil {
		vehicle.IntervalServiceKm = *req.IntervalServiceKm
	}
	if req.IntervalServiceLuni != nil {
		vehicle.IntervalServiceLuni = *req.IntervalServiceLuni
	}
	if req.ExpirareRCA != nil {
		vehicle.ExpirareRCA = req.ExpirareRCA
	}
	if req.ExpirareITP != nil {
		vehicle.ExpirareITP = req.ExpirareITP
	}
	if req.Status != nil {
		status := model.VehicleStatus(*req.Status)
		if !model.ValidVehicleStatuses[status] {
			return VehicleResponse{}, fmt.Errorf("status must be one of: ACTIV, IN_SERVICE, INACTIV")
		}
		vehicle.Status = status
	}

	vehicle.Repairs = nil
	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return VehicleResponse{}, fmt.Errorf("failed to update vehicle: %w", err)
	}

	updated, err := s.vehicleRepo.FindByID(ctx, vehicle.ID)
	if err != nil {
		return toVehicleResponse(*vehicle), nil
	}
	return toVehicleResponse(*updated), nil
}

func (s *vehicleService) DeleteVehicle(ctx context.Context, id string) error {
	vehicle, err := s.findVehicle(ctx, id)
	if err != nil {
		return err
	}
	return s.vehicleRepo.Delete(ctx, vehicle.ID)
}

func (s *vehicleService) GetVehicle(ctx context.Context, id string) (VehicleResponse, error) {
	vehicle, err := s.findVehicle(ctx, id)
	if err != nil {
		return VehicleResponse{}, err
	}
	return toVehicleResponse(*vehicle), nil
}

func (s *vehicleService) ListVehicles(ctx context.Context, status, search string, page, limit int) ([]VehicleResponse, int64, error) {
	vehicles, total, err := s.vehicleRepo.List(ctx, model.VehicleStatus(status), search, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch vehicles: %w", err)
	}
	res := make([]VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		res = append(res, toVehicleResponse(v))
	}
	return res, total, nil
}

func (s *vehicleService) AddRepair(ctx context.Context, id string, req CreateRepairRequest) (VehicleResponse, error) {
	vehicle, err := s.findVehicle(ctx, id)
	if err != nil {
		return VehicleResponse{}, err
	}
	cost, err := decimal.NewFromString(req.Cost)
	if err != nil {
		return VehicleResponse{}, fmt.Errorf("invalid cost: %w", err)
	}
	if cost.IsNegative() {
		return VehicleResponse{}, fmt.Errorf("cost cannot be negative")
	}

	repair := &model.Repair{
		VehicleID:     vehicle.ID,
		Descriere:     req.Descriere,
		Cost:          cost,
		Data:          req.Data,
		Furnizor:      req.Furnizor,
		KmLaReparatie: req.KmLaReparatie,
	}
	if err := s.vehicleRepo.AddRepair(ctx, repair); err != nil {
		return VehicleResponse{}, fmt.Errorf("failed to add repair: %w", err)
	}

	updated, err := s.vehicleRepo.FindByID(ctx, vehicle.ID)
	if err != nil {
		return VehicleResponse{}, fmt.Errorf("failed to reload vehicle: %w", err)
	}
	return toVehicleResponse(*updated), nil
}

func (s *vehicleService) ListRepairs(ctx context.Context, id string) ([]model.Repair, error) {
	vehicle, err := s.findVehicle(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.vehicleRepo.ListRepairs(ctx, vehicle.ID)
}

// --- Helpers ---

func (s *vehicleService) findVehicle(ctx context.Context, id string) (*model.Vehicle, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid vehicle ID")
	}
	vehicle, err := s.vehicleRepo.FindByID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("vehicle not found: %w", err)
	}
	return vehicle, nil
}

func toVehicleResponse(v model.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:                  v.ID.String(),
		NumarInmatriculare:  v.NumarInmatriculare,
		Marca:               v.Marca,
		Model:               v.Model,
		An:                  v.An,
		Capacitate:          v.Capacitate,
		UnitateCapacitate:   v.UnitateCapacitate,
		LungimeMarfa:        v.LungimeMarfa,
		LatimeMarfa:         v.LatimeMarfa,
		InaltimeMarfa:       v.InaltimeMarfa,
		KmActuali:           v.KmActuali,
		UltimulServiceData:  v.UltimulServiceData,
		UltimulServiceKm:    v.UltimulServiceKm,
		IntervalServiceKm:   v.IntervalServiceKm,
		IntervalServiceLuni: v.IntervalServiceLuni,
		ExpirareRCA:         v.ExpirareRCA,
		ExpirareITP:         v.ExpirareITP,
		Status:              v.Status,
		Reparatii:           v.Repairs,
		CreatedAt:           v.CreatedAt,
		UpdatedAt:           v.UpdatedAt,
	}
}
