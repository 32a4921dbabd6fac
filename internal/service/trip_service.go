package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"transio/internal/model"
	"transio/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Point DTOs ---

type PointPayload struct {
	Firma      string    `json:"firma" binding:"required"`
	Adresa     string    `json:"adresa" binding:"required"`
	Tara       string    `json:"tara"`
	GPS        string    `json:"gps"`
	DataOra    time.Time `json:"dataOra" binding:"required"`
	Marfa      string    `json:"marfa"`      // load points only
	GreutateKg float64   `json:"greutateKg"` // load points only
}

type PointResponse struct {
	ID         uuid.UUID `json:"id"`
	Firma      string    `json:"firma"`
	Adresa     string    `json:"adresa"`
	Tara       string    `json:"tara"`
	GPS        string    `json:"gps"`
	DataOra    time.Time `json:"dataOra"`
	Marfa      string    `json:"marfa,omitempty"`
	GreutateKg float64   `json:"greutateKg,omitempty"`
}

// --- Trip DTOs ---

type CreateTripRequest struct {
	BursaSursa       string         `json:"bursaSursa"`
	PuncteIncarcare  []PointPayload `json:"puncteIncarcare" binding:"required"`
	PuncteDescarcare []PointPayload `json:"puncteDescarcare" binding:"required"`
	SoferID          string         `json:"soferId"`
	VehiculID        string         `json:"vehiculId"`
	PartenerID       string         `json:"partenerId"`
	KmEstimati       float64        `json:"kmEstimati"`
	CostNegociat     string         `json:"costNegociat" binding:"required"`
	ComisionBursa    string         `json:"comisionBursa"`
}

type UpdateTripRequest struct {
	BursaSursa       *string         `json:"bursaSursa"`
	PuncteIncarcare  *[]PointPayload `json:"puncteIncarcare"`
	PuncteDescarcare *[]PointPayload `json:"puncteDescarcare"`
	SoferID          *string         `json:"soferId"`
	VehiculID        *string         `json:"vehiculId"`
	PartenerID       *string         `json:"partenerId"`
	KmEstimati       *float64        `json:"kmEstimati"`
	KmReali          *float64        `json:"kmReali"`
	CostNegociat     *string         `json:"costNegociat"`
	ComisionBursa    *string         `json:"comisionBursa"`
}

type UpdateTripStatusRequest struct {
	Status model.TripStatus `json:"status" binding:"required"`
}

type TripRefResponse struct {
	ID   string `json:"id"`
	Nume string `json:"nume"`
}

type TripResponse struct {
	ID               string           `json:"id"`
	BursaSursa       string           `json:"bursaSursa"`
	Status           model.TripStatus `json:"status"`
	PuncteIncarcare  []PointResponse  `json:"puncteIncarcare"`
	PuncteDescarcare []PointResponse  `json:"puncteDescarcare"`
	SoferID          *string          `json:"soferId"`
	Sofer            *TripRefResponse `json:"sofer,omitempty"`
	VehiculID        *string          `json:"vehiculId"`
	Vehicul          *TripRefResponse `json:"vehicul,omitempty"`
	PartenerID       *string          `json:"partenerId"`
	Partener         *TripRefResponse `json:"partener,omitempty"`
	KmEstimati       float64          `json:"kmEstimati"`
	KmReali          float64          `json:"kmReali"`
	CostNegociat     string           `json:"costNegociat"`
	ComisionBursa    string           `json:"comisionBursa"`
	VenitNet         string           `json:"venitNet"`
	PretPerKm        string           `json:"pretPerKm"`
	Documente        []model.Document `json:"documente"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

type TripListFilter struct {
	Status    string
	SoferID   string
	VehiculID string
	PartnerID string
	Bursa     string
	Search    string
	FromDate  *time.Time
	ToDate    *time.Time
}

// --- Interface ---

type TripService interface {
	CreateTrip(ctx context.Context, actorID string, req CreateTripRequest) (TripResponse, error)
	UpdateTrip(ctx context.Context, actorID, id string, req UpdateTripRequest) (TripResponse, error)
	UpdateStatus(ctx context.Context, actorID, id string, next model.TripStatus) (TripResponse, error)
	DeleteTrip(ctx context.Context, actorID, id string) error
	GetTrip(ctx context.Context, id string) (TripResponse, error)
	ListTrips(ctx context.Context, filter TripListFilter, page, limit int) ([]TripResponse, int64, error)
}

type tripService struct {
	tripRepo    repository.TripRepository
	driverRepo  repository.DriverRepository
	vehicleRepo repository.VehicleRepository
	partnerRepo repository.PartnerRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
}

func NewTripService(
	tripRepo repository.TripRepository,
	driverRepo repository.DriverRepository,
	vehicleRepo repository.VehicleRepository,
	partnerRepo repository.PartnerRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) TripService {
	return &tripService{
		tripRepo:    tripRepo,
		driverRepo:  driverRepo,
		vehicleRepo: vehicleRepo,
		partnerRepo: partnerRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
	}
}

// --- Validation helpers ---

func validatePoints(kind string, points []PointPayload) error {
	if len(points) < model.MinTripPoints {
		return fmt.Errorf("at least %d %s point is required", model.MinTripPoints, kind)
	}
	if len(points) > model.MaxTripPoints {
		return fmt.Errorf("at most %d %s points are allowed", model.MaxTripPoints, kind)
	}
	for i, p := range points {
		if p.Firma == "" {
			return fmt.Errorf("%s[%d]: firma is required", kind, i)
		}
		if p.Adresa == "" {
			return fmt.Errorf("%s[%d]: adresa is required", kind, i)
		}
		if p.DataOra.IsZero() {
			return fmt.Errorf("%s[%d]: dataOra is required", kind, i)
		}
		if kind == "load" && p.GreutateKg <= 0 {
			return fmt.Errorf("%s[%d]: greutateKg must be positive", kind, i)
		}
	}
	return nil
}

func parseMoney(field, raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", field, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s cannot be negative", field)
	}
	return d, nil
}

// parseOptionalRef normalizes a relational field that may be empty (unassigned)
// or a raw id string.
func parseOptionalRef(field, raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	uid, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", field)
	}
	return &uid, nil
}

func toPointModels(tripID uuid.UUID, kind string, payloads []PointPayload) []model.TripPoint {
	points := make([]model.TripPoint, 0, len(payloads))
	for i, p := range payloads {
		point := model.TripPoint{
			TripID:   tripID,
			Kind:     kind,
			Position: i,
			Firma:    p.Firma,
			Adresa:   p.Adresa,
			Tara:     p.Tara,
			GPS:      p.GPS,
			DataOra:  p.DataOra,
		}
		if kind == model.PointKindLoad {
			point.Marfa = p.Marfa
			point.GreutateKg = p.GreutateKg
		}
		points = append(points, point)
	}
	return points
}

// checkReferences verifies that every assigned driver/vehicle/partner exists.
func (s *tripService) checkReferences(ctx context.Context, driverID, vehicleID, partnerID *uuid.UUID) error {
	if driverID != nil {
		if _, err := s.driverRepo.FindByID(ctx, *driverID); err != nil {
			return fmt.Errorf("sofer not found")
		}
	}
	if vehicleID != nil {
		if _, err := s.vehicleRepo.FindByID(ctx, *vehicleID); err != nil {
			return fmt.Errorf("vehicul not found")
		}
	}
	if partnerID != nil {
		if _, err := s.partnerRepo.FindByID(ctx, *partnerID); err != nil {
			return fmt.Errorf("partener not found")
		}
	}
	return nil
}

// --- CRUD ---

func (s *tripService) CreateTrip(ctx context.Context, actorID string, req CreateTripRequest) (TripResponse, error) {
	if err := validatePoints("load", req.PuncteIncarcare); err != nil {
		return TripResponse{}, err
	}
	if err := validatePoints("unload", req.PuncteDescarcare); err != nil {
		return TripResponse{}, err
	}

	cost, err := parseMoney("costNegociat", req.CostNegociat)
	if err != nil {
		return TripResponse{}, err
	}
	commission, err := parseMoney("comisionBursa", req.ComisionBursa)
	if err != nil {
		return TripResponse{}, err
	}
	if commission.GreaterThan(cost) {
		return TripResponse{}, fmt.Errorf("comisionBursa cannot exceed costNegociat")
	}
	if req.KmEstimati < 0 {
		return TripResponse{}, fmt.Errorf("kmEstimati cannot be negative")
	}

	driverID, err := parseOptionalRef("soferId", req.SoferID)
	if err != nil {
		return TripResponse{}, err
	}
	vehicleID, err := parseOptionalRef("vehiculId", req.VehiculID)
	if err != nil {
		return TripResponse{}, err
	}
	partnerID, err := parseOptionalRef("partenerId", req.PartenerID)
	if err != nil {
		return TripResponse{}, err
	}
	if err := s.checkReferences(ctx, driverID, vehicleID, partnerID); err != nil {
		return TripResponse{}, err
	}

	trip := &model.Trip{
		BursaSursa:    req.BursaSursa,
		Status:        model.TripStatusOffer,
		DriverID:      driverID,
		VehicleID:     vehicleID,
		PartnerID:     partnerID,
		KmEstimati:    req.KmEstimati,
		CostNegociat:  cost,
		ComisionBursa: commission,
	}
	trip.Points = append(
		toPointModels(uuid.Nil, model.PointKindLoad, req.PuncteIncarcare),
		toPointModels(uuid.Nil, model.PointKindUnload, req.PuncteDescarcare)...,
	)

	if err := s.tripRepo.Create(ctx, trip); err != nil {
		return TripResponse{}, fmt.Errorf("failed to create trip: %w", err)
	}

	s.audit(ctx, actorID, model.ActionCreateTrip, trip)

	created, err := s.tripRepo.FindByID(ctx, trip.ID)
	if err != nil {
		return toTripResponse(*trip), nil
	}
	return toTripResponse(*created), nil
}

func (s *tripService) UpdateTrip(ctx context.Context, actorID, id string, req UpdateTripRequest) (TripResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return TripResponse{}, fmt.Errorf("invalid trip ID")
	}

	trip, err := s.tripRepo.FindByID(ctx, uid)
	if err != nil {
		return TripResponse{}, fmt.Errorf("trip not found: %w", err)
	}

	if req.BursaSursa != nil {
		trip.BursaSursa = *req.BursaSursa
	}
	if req.KmEstimati != nil {
		if *req.KmEstimati < 0 {
			return TripResponse{}, fmt.Errorf("kmEstimati cannot be negative")
		}
		trip.KmEstimati = *req.KmEstimati
	}
	if req.KmReali != nil {
		if *req.KmReali < 0 {
			return TripResponse{}, fmt.Errorf("kmReali cannot be negative")
		}
		trip.KmReali = *req.KmReali
	}
	if req.CostNegociat != nil {
		cost, err := parseMoney("costNegociat", *req.CostNegociat)
		if err != nil {
			return TripResponse{}, err
		}
		trip.CostNegociat = cost
	}
	if req.ComisionBursa != nil {
		commission, err := parseMoney("comisionBursa", *req.ComisionBursa)
		if err != nil {
			return TripResponse{}, err
		}
		trip.ComisionBursa = commission
	}
	if trip.ComisionBursa.GreaterThan(trip.CostNegociat) {
		return TripResponse{}, fmt.Errorf("comisionBursa cannot exceed costNegociat")
	}

	if req.SoferID != nil {
		driverID, err := parseOptionalRef("soferId", *req.SoferID)
		if err != nil {
			return TripResponse{}, err
		}
		trip.DriverID = driverID
	}
	if req.VehiculID != nil {
		vehicleID, err := parseOptionalRef("vehiculId", *req.VehiculID)
		if err != nil {
			return TripResponse{}, err
		}
		trip.VehicleID = vehicleID
	}
	if req.PartenerID != nil {
		partnerID, err := parseOptionalRef("partenerId", *req.PartenerID)
		if err != nil {
			return TripResponse{}, err
		}
		trip.PartnerID = partnerID
	}
	if err := s.checkReferences(ctx, trip.DriverID, trip.VehicleID, trip.PartnerID); err != nil {
		return TripResponse{}, err
	}

	if req.PuncteIncarcare != nil {
		if err := validatePoints("load", *req.PuncteIncarcare); err != nil {
			return TripResponse{}, err
		}
	}
	if req.PuncteDescarcare != nil {
		if err := validatePoints("unload", *req.PuncteDescarcare); err != nil {
			return TripResponse{}, err
		}
	}

	// Preloaded associations must not be re-saved alongside the row
	trip.Points = nil

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.tripRepo.Update(txCtx, trip); err != nil {
			return fmt.Errorf("failed to update trip: %w", err)
		}
		if req.PuncteIncarcare != nil || req.PuncteDescarcare != nil {
			// Point replacement is all-or-nothing across both kinds: re-read
			// whichever side was not sent so ordering stays intact.
			load := req.PuncteIncarcare
			unload := req.PuncteDescarcare
			if load == nil || unload == nil {
				existing, err := s.tripRepo.FindByID(txCtx, uid)
				if err != nil {
					return err
				}
				current := splitPoints(existing.Points)
				if load == nil {
					payloads := toPointPayloads(current.load)
					load = &payloads
				}
				if unload == nil {
					payloads := toPointPayloads(current.unload)
					unload = &payloads
				}
			}
			points := append(
				toPointModels(uid, model.PointKindLoad, *load),
				toPointModels(uid, model.PointKindUnload, *unload)...,
			)
			if err := s.tripRepo.ReplacePoints(txCtx, uid, points); err != nil {
				return fmt.Errorf("failed to replace points: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return TripResponse{}, err
	}

	s.audit(ctx, actorID, model.ActionUpdateTrip, trip)

	updated, err := s.tripRepo.FindByID(ctx, uid)
	if err != nil {
		return TripResponse{}, fmt.Errorf("failed to reload trip: %w", err)
	}
	return toTripResponse(*updated), nil
}

func (s *tripService) UpdateStatus(ctx context.Context, actorID, id string, next model.TripStatus) (TripResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return TripResponse{}, fmt.Errorf("invalid trip ID")
	}
	if !model.ValidTripStatuses[next] {
		return TripResponse{}, fmt.Errorf("invalid status: %s", next)
	}

	trip, err := s.tripRepo.FindByID(ctx, uid)
	if err != nil {
		return TripResponse{}, fmt.Errorf("trip not found: %w", err)
	}
	if !trip.Status.CanTransitionTo(next) {
		return TripResponse{}, fmt.Errorf("cannot move trip from %s to %s", trip.Status, next)
	}

	trip.Status = next
	trip.Points = nil
	if err := s.tripRepo.Update(ctx, trip); err != nil {
		return TripResponse{}, fmt.Errorf("failed to update status: %w", err)
	}

	s.audit(ctx, actorID, model.ActionUpdateTrip, trip)

	updated, err := s.tripRepo.FindByID(ctx, uid)
	if err != nil {
		return TripResponse{}, fmt.Errorf("failed to reload trip: %w", err)
	}
	return toTripResponse(*updated), nil
}

func (s *tripService) DeleteTrip(ctx context.Context, actorID, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid trip ID")
	}
	trip, err := s.tripRepo.FindByID(ctx, uid)
	if err != nil {
		return fmt.Errorf("trip not found: %w", err)
	}
	if err := s.tripRepo.Delete(ctx, uid); err != nil {
		return err
	}
	s.audit(ctx, actorID, model.ActionDeleteTrip, trip)
	return nil
}

func (s *tripService) GetTrip(ctx context.Context, id string) (TripResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return TripResponse{}, fmt.Errorf("invalid trip ID")
	}
	trip, err := s.tripRepo.FindByID(ctx, uid)
	if err != nil {
		return TripResponse{}, fmt.Errorf("trip not found: %w", err)
	}
	return toTripResponse(*trip), nil
}

func (s *tripService) ListTrips(ctx context.Context, filter TripListFilter, page, limit int) ([]TripResponse, int64, error) {
	repoFilter := repository.TripFilter{
		Bursa:    filter.Bursa,
		Search:   filter.Search,
		FromDate: filter.FromDate,
		ToDate:   filter.ToDate,
	}
	if filter.Status != "" {
		status := model.TripStatus(filter.Status)
		if !model.ValidTripStatuses[status] {
			return nil, 0, fmt.Errorf("invalid status filter: %s", filter.Status)
		}
		repoFilter.Status = status
	}
	var err error
	if repoFilter.DriverID, err = parseOptionalRef("soferId", filter.SoferID); err != nil {
		return nil, 0, err
	}
	if repoFilter.VehicleID, err = parseOptionalRef("vehiculId", filter.VehiculID); err != nil {
		return nil, 0, err
	}
	if repoFilter.PartnerID, err = parseOptionalRef("partenerId", filter.PartnerID); err != nil {
		return nil, 0, err
	}

	trips, total, err := s.tripRepo.List(ctx, repoFilter, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch trips: %w", err)
	}

	res := make([]TripResponse, 0, len(trips))
	for _, t := range trips {
		res = append(res, toTripResponse(t))
	}
	return res, total, nil
}

// --- Audit ---

func (s *tripService) audit(ctx context.Context, actorID, action string, trip *model.Trip) {
	entry := &model.AuditLog{
		Action:   action,
		EntityID: trip.ID.String(),
	}
	if uid, err := uuid.Parse(actorID); err == nil {
		entry.UserID = &uid
	}
	if detail, err := json.Marshal(map[string]interface{}{"status": trip.Status, "bursa": trip.BursaSursa}); err == nil {
		entry.Details = string(detail)
	}
	// Audit trail failures never block the business operation
	_ = s.auditRepo.Log(ctx, entry)
}

// --- Response mappers ---

type pointSplit struct {
	load   []model.TripPoint
	unload []model.TripPoint
}

func splitPoints(points []model.TripPoint) pointSplit {
	var s pointSplit
	for _, p := range points {
		if p.Kind == model.PointKindLoad {
			s.load = append(s.load, p)
		} else {
			s.unload = append(s.unload, p)
		}
	}
	return s
}

func toPointPayloads(points []model.TripPoint) []PointPayload {
	payloads := make([]PointPayload, 0, len(points))
	for _, p := range points {
		payloads = append(payloads, PointPayload{
			Firma:      p.Firma,
			Adresa:     p.Adresa,
			Tara:       p.Tara,
			GPS:        p.GPS,
			DataOra:    p.DataOra,
			Marfa:      p.Marfa,
			GreutateKg: p.GreutateKg,
		})
	}
	return payloads
}

func toPointResponses(points []model.TripPoint) []PointResponse {
	res := make([]PointResponse, 0, len(points))
	for _, p := range points {
		res = append(res, PointResponse{
			ID:         p.ID,
			Firma:      p.Firma,
			Adresa:     p.Adresa,
			Tara:       p.Tara,
			GPS:        p.GPS,
			DataOra:    p.DataOra,
			Marfa:      p.Marfa,
			GreutateKg: p.GreutateKg,
		})
	}
	return res
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func toTripResponse(t model.Trip) TripResponse {
	split := splitPoints(t.Points)

	res := TripResponse{
		ID:               t.ID.String(),
		BursaSursa:       t.BursaSursa,
		Status:           t.Status,
		PuncteIncarcare:  toPointResponses(split.load),
		PuncteDescarcare: toPointResponses(split.unload),
		SoferID:          uuidString(t.DriverID),
		VehiculID:        uuidString(t.VehicleID),
		PartenerID:       uuidString(t.PartnerID),
		KmEstimati:       t.KmEstimati,
		KmReali:          t.KmReali,
		CostNegociat:     t.CostNegociat.StringFixed(2),
		ComisionBursa:    t.ComisionBursa.StringFixed(2),
		VenitNet:         t.VenitNet().StringFixed(2),
		PretPerKm:        t.PretPerKm().StringFixed(4),
		Documente:        t.Documents,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
	if t.Driver != nil {
		res.Sofer = &TripRefResponse{ID: t.Driver.ID.String(), Nume: t.Driver.Nume}
	}
	if t.Vehicle != nil {
		res.Vehicul = &TripRefResponse{ID: t.Vehicle.ID.String(), Nume: t.Vehicle.NumarInmatriculare}
	}
	if t.Partner != nil {
		res.Partener = &TripRefResponse{ID: t.Partner.ID.String(), Nume: t.Partner.NumeFirma}
	}
	return res
}
