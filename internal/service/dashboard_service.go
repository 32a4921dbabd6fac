package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"transio/internal/model"
	"transio/internal/repository"
	"transio/pkg/pagination"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	dashboardCacheKey = "transio:dashboard"
	dashboardCacheTTL = 60 * time.Second

	expiryAlertWindowDays   = 30
	expiryAlertCriticalDays = 7
	invoiceAlertWindowDays  = 7
	invoiceAlertCriticalDays = 3
)

// AlertBroadcaster pushes freshly computed alerts to connected clients.
// The websocket hub implements it.
type AlertBroadcaster interface {
	BroadcastAlerts(alerts []model.Alert)
}

type DashboardService interface {
	// GetDashboard returns the aggregated dashboard view. When refresh is
	// true the cache is bypassed and repopulated.
	GetDashboard(ctx context.Context, refresh bool) (model.DashboardResponse, error)
}

type dashboardService struct {
	tripRepo    repository.TripRepository
	driverRepo  repository.DriverRepository
	vehicleRepo repository.VehicleRepository
	invoiceRepo repository.InvoiceRepository
	cache       *redis.Client // nil disables caching
	broadcaster AlertBroadcaster
	now         func() time.Time
}

func NewDashboardService(
	tripRepo repository.TripRepository,
	driverRepo repository.DriverRepository,
	vehicleRepo repository.VehicleRepository,
	invoiceRepo repository.InvoiceRepository,
	cache *redis.Client,
	broadcaster AlertBroadcaster,
) DashboardService {
	return &dashboardService{
		tripRepo:    tripRepo,
		driverRepo:  driverRepo,
		vehicleRepo: vehicleRepo,
		invoiceRepo: invoiceRepo,
		cache:       cache,
		broadcaster: broadcaster,
		now:         time.Now,
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context, refresh bool) (model.DashboardResponse, error) {
	if s.cache != nil && !refresh {
		raw, err := s.cache.Get(ctx, dashboardCacheKey).Bytes()
		if err == nil {
			var cached model.DashboardResponse
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		}
	}

	trips, drivers, vehicles, invoices, err := s.fetchAll(ctx)
	if err != nil {
		return model.DashboardResponse{}, err
	}

	res := ComputeDashboard(trips, drivers, vehicles, invoices, s.now())

	if s.cache != nil {
		if raw, err := json.Marshal(res); err == nil {
			if err := s.cache.Set(ctx, dashboardCacheKey, raw, dashboardCacheTTL).Err(); err != nil {
				log.Printf("dashboard cache write failed: %v", err)
			}
		}
	}
	if s.broadcaster != nil && len(res.Alerte) > 0 {
		s.broadcaster.BroadcastAlerts(res.Alerte)
	}
	return res, nil
}

// fetchAll loads the four entity collections in parallel. A single failed
// fetch fails the whole aggregation; the dashboard never renders partially.
func (s *dashboardService) fetchAll(ctx context.Context) ([]model.Trip, []model.Driver, []model.Vehicle, []model.Invoice, error) {
	var (
		trips    []model.Trip
		drivers  []model.Driver
		vehicles []model.Vehicle
		invoices []model.Invoice
	)
	bulk := pagination.Bulk()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		trips, _, err = s.tripRepo.List(gctx, repository.TripFilter{}, bulk.Page, bulk.Limit)
		if err != nil {
			return fmt.Errorf("failed to fetch trips: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		drivers, _, err = s.driverRepo.List(gctx, "", "", bulk.Page, bulk.Limit)
		if err != nil {
			return fmt.Errorf("failed to fetch drivers: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		vehicles, _, err = s.vehicleRepo.List(gctx, "", "", bulk.Page, bulk.Limit)
		if err != nil {
			return fmt.Errorf("failed to fetch vehicles: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		invoices, _, err = s.invoiceRepo.List(gctx, repository.InvoiceFilter{}, bulk.Page, bulk.Limit)
		if err != nil {
			return fmt.Errorf("failed to fetch invoices: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, nil, err
	}
	return trips, drivers, vehicles, invoices, nil
}

// ComputeDashboard derives the full dashboard view from already-fetched
// collections. Pure so the aggregation rules stay testable without a DB.
func ComputeDashboard(trips []model.Trip, drivers []model.Driver, vehicles []model.Vehicle, invoices []model.Invoice, now time.Time) model.DashboardResponse {
	res := model.DashboardResponse{
		VenitLunar:  decimal.Zero,
		GeneratedAt: now,
	}

	for _, t := range trips {
		res.CurseTotal++
		if t.Status.IsActive() {
			res.CurseActive++
		}
		if t.Status.IsFinished() {
			res.CurseFinalizate++
		}
		// Km runs over the whole fleet history, revenue only over the
		// current calendar month.
		res.KmTotali += tripKm(t)
		if sameMonth(t.CreatedAt, now) {
			res.VenitLunar = res.VenitLunar.Add(tripRevenue(t))
		}
	}

	res.Vehicule = computeVehiclePacing(trips, vehicles, now)
	res.Soferi = computeDriverPresence(drivers, now)
	res.Alerte = CollectAlerts(drivers, vehicles, invoices, now)
	return res
}

// tripRevenue is the trip's contribution to revenue figures: net of the
// exchange commission when one was recorded, the negotiated cost otherwise.
func tripRevenue(t model.Trip) decimal.Decimal {
	if t.ComisionBursa.IsPositive() {
		return t.VenitNet()
	}
	return t.CostNegociat
}

func computeVehiclePacing(trips []model.Trip, vehicles []model.Vehicle, now time.Time) []model.VehiclePacing {
	perVehicle := make(map[string]decimal.Decimal, len(vehicles))
	for _, t := range trips {
		if t.VehicleID == nil || !t.Status.CountsTowardTarget() || !sameMonth(t.CreatedAt, now) {
			continue
		}
		key := t.VehicleID.String()
		perVehicle[key] = perVehicle[key].Add(tripRevenue(t))
	}

	day := int64(now.Day())
	daysInMonth := int64(time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day())
	prorated := model.MonthlyVehicleTarget.
		Mul(decimal.NewFromInt(day)).
		Div(decimal.NewFromInt(daysInMonth))

	pacing := make([]model.VehiclePacing, 0, len(vehicles))
	for _, v := range vehicles {
		revenue := perVehicle[v.ID.String()]
		percent := int(revenue.Div(model.MonthlyVehicleTarget).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
		pacing = append(pacing, model.VehiclePacing{
			VehicleID:          v.ID.String(),
			NumarInmatriculare: v.NumarInmatriculare,
			VenitLunar:         revenue,
			Target:             model.MonthlyVehicleTarget,
			TargetProRata:      prorated.Round(2),
			PercentRealized:    percent,
			InGrafic:           revenue.GreaterThanOrEqual(prorated),
		})
	}
	return pacing
}

func computeDriverPresence(drivers []model.Driver, now time.Time) []model.DriverPresence {
	presence := make([]model.DriverPresence, 0, len(drivers))
	for _, d := range drivers {
		since := d.LocationSince()
		days := int(now.Sub(since).Hours() / 24)
		if days < 0 {
			days = 0
		}
		weeks := days / 7
		presence = append(presence, model.DriverPresence{
			DriverID:  d.ID.String(),
			Nume:      d.Nume,
			Locatie:   d.Location(),
			DinData:   since,
			Zile:      days,
			Saptamani: weeks,
			Afisare:   formatPresence(days, weeks),
		})
	}
	return presence
}

func formatPresence(days, weeks int) string {
	if weeks > 0 {
		return fmt.Sprintf("%d zile (%d săptămâni)", days, weeks)
	}
	if days == 1 {
		return "1 zi"
	}
	return fmt.Sprintf("%d zile", days)
}

// CollectAlerts scans drivers, vehicles and invoices for approaching
// expiry and due dates. Alert ids are stable across reloads so clients can
// dedupe pushed notifications.
func CollectAlerts(drivers []model.Driver, vehicles []model.Vehicle, invoices []model.Invoice, now time.Time) []model.Alert {
	var alerts []model.Alert

	for _, d := range drivers {
		if a, ok := expiryAlert(model.AlertKindLicense, d.ID.String(), d.Nume, "Permisul de conducere", d.ExpirarePermis, now); ok {
			alerts = append(alerts, a)
		}
		if a, ok := expiryAlert(model.AlertKindCertificate, d.ID.String(), d.Nume, "Atestatul profesional", d.ExpirareAtestat, now); ok {
			alerts = append(alerts, a)
		}
	}
	for _, v := range vehicles {
		if a, ok := expiryAlert(model.AlertKindInsurance, v.ID.String(), v.NumarInmatriculare, "Polița RCA", v.ExpirareRCA, now); ok {
			alerts = append(alerts, a)
		}
		if a, ok := expiryAlert(model.AlertKindRoadworthiness, v.ID.String(), v.NumarInmatriculare, "Inspecția ITP", v.ExpirareITP, now); ok {
			alerts = append(alerts, a)
		}
	}
	for _, inv := range invoices {
		if !inv.Status.IsOutstanding() {
			continue
		}
		days := daysUntil(inv.DataScadenta, now)
		if days < 0 || days > invoiceAlertWindowDays {
			continue
		}
		severity := model.AlertSeverityWarning
		if days <= invoiceAlertCriticalDays {
			severity = model.AlertSeverityError
		}
		alerts = append(alerts, model.Alert{
			ID:         fmt.Sprintf("%s-%s", model.AlertKindInvoiceDue, inv.ID),
			Kind:       model.AlertKindInvoiceDue,
			Severity:   severity,
			EntityID:   inv.ID.String(),
			EntityName: inv.Numar,
			Message:    fmt.Sprintf("Factura %s scade în %d zile", inv.Numar, days),
			Date:       inv.DataScadenta,
			ZileRamase: days,
		})
	}
	return alerts
}

func expiryAlert(kind, entityID, entityName, label string, expiry *time.Time, now time.Time) (model.Alert, bool) {
	if expiry == nil {
		return model.Alert{}, false
	}
	days := daysUntil(*expiry, now)
	if days < 0 || days > expiryAlertWindowDays {
		return model.Alert{}, false
	}
	severity := model.AlertSeverityWarning
	if days <= expiryAlertCriticalDays {
		severity = model.AlertSeverityError
	}
	return model.Alert{
		ID:         fmt.Sprintf("%s-%s", kind, entityID),
		Kind:       kind,
		Severity:   severity,
		EntityID:   entityID,
		EntityName: entityName,
		Message:    fmt.Sprintf("%s pentru %s expiră în %d zile", label, entityName, days),
		Date:       *expiry,
		ZileRamase: days,
	}, true
}

func daysUntil(date, now time.Time) int {
	return int(date.Sub(now).Hours() / 24)
}

func sameMonth(t, ref time.Time) bool {
	return t.Year() == ref.Year() && t.Month() == ref.Month()
}
