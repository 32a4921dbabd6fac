package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"transio/internal/model"
	"transio/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func TestComputeDashboardCountersAndRevenue(t *testing.T) {
	now := time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)

	trips := []model.Trip{
		{
			Status:        model.TripStatusInProgress,
			KmEstimati:    1128,
			CostNegociat:  mustDecimal(t, "2500"),
			ComisionBursa: mustDecimal(t, "150"),
			CreatedAt:     now,
		},
		{
			Status:       model.TripStatusFinished,
			KmReali:      800,
			KmEstimati:   750,
			CostNegociat: mustDecimal(t, "1600"),
			CreatedAt:    now,
		},
		{
			// Previous month: km counts, revenue does not.
			Status:       model.TripStatusPaid,
			KmReali:      500,
			CostNegociat: mustDecimal(t, "1000"),
			CreatedAt:    lastMonth,
		},
	}

	res := ComputeDashboard(trips, nil, nil, nil, now)

	if res.CurseTotal != 3 {
		t.Fatalf("total trips: got %d want 3", res.CurseTotal)
	}
	if res.CurseActive != 1 {
		t.Fatalf("active trips: got %d want 1", res.CurseActive)
	}
	if res.CurseFinalizate != 2 {
		t.Fatalf("finished trips: got %d want 2", res.CurseFinalizate)
	}
	// KmReali when recorded, KmEstimati otherwise, over all trips.
	if res.KmTotali != 1128+800+500 {
		t.Fatalf("km total: got %v want %v", res.KmTotali, 1128+800+500)
	}
	// Current month only: (2500-150) + 1600.
	if !res.VenitLunar.Equal(mustDecimal(t, "3950")) {
		t.Fatalf("monthly revenue: got %s want 3950", res.VenitLunar)
	}
}

func TestTripRevenueFallsBackToNegotiatedCost(t *testing.T) {
	withCommission := model.Trip{
		CostNegociat:  mustDecimal(t, "2500"),
		ComisionBursa: mustDecimal(t, "150"),
	}
	if got := tripRevenue(withCommission); !got.Equal(mustDecimal(t, "2350")) {
		t.Fatalf("revenue with commission: got %s want 2350", got)
	}

	withoutCommission := model.Trip{CostNegociat: mustDecimal(t, "1800")}
	if got := tripRevenue(withoutCommission); !got.Equal(mustDecimal(t, "1800")) {
		t.Fatalf("revenue without commission: got %s want 1800", got)
	}
}

func TestVehiclePacingProratedTarget(t *testing.T) {
	// Day 20 of a 30-day month: prorated target is 10000.
	now := time.Date(2025, 6, 20, 8, 0, 0, 0, time.UTC)
	vehicleID := uuid.New()

	trips := []model.Trip{
		{
			Status:       model.TripStatusFinished,
			VehicleID:    &vehicleID,
			CostNegociat: mustDecimal(t, "7000"),
			CreatedAt:    now,
		},
		{
			Status:       model.TripStatusInProgress,
			VehicleID:    &vehicleID,
			CostNegociat: mustDecimal(t, "5000"),
			CreatedAt:    now,
		},
		{
			// Offers never count toward the target.
			Status:       model.TripStatusOffer,
			VehicleID:    &vehicleID,
			CostNegociat: mustDecimal(t, "9999"),
			CreatedAt:    now,
		},
	}
	vehicles := []model.Vehicle{{ID: vehicleID, NumarInmatriculare: "B-01-TRS"}}

	pacing := computeVehiclePacing(trips, vehicles, now)
	if len(pacing) != 1 {
		t.Fatalf("pacing rows: got %d want 1", len(pacing))
	}
	p := pacing[0]
	if !p.VenitLunar.Equal(mustDecimal(t, "12000")) {
		t.Fatalf("vehicle revenue: got %s want 12000", p.VenitLunar)
	}
	if p.PercentRealized != 80 {
		t.Fatalf("percent realized: got %d want 80", p.PercentRealized)
	}
	if !p.TargetProRata.Equal(mustDecimal(t, "10000")) {
		t.Fatalf("prorated target: got %s want 10000", p.TargetProRata)
	}
	if !p.InGrafic {
		t.Fatalf("12000 >= 10000 should be on track")
	}
}

func TestVehiclePacingBehindSchedule(t *testing.T) {
	now := time.Date(2025, 6, 20, 8, 0, 0, 0, time.UTC)
	vehicleID := uuid.New()

	trips := []model.Trip{{
		Status:       model.TripStatusFinished,
		VehicleID:    &vehicleID,
		CostNegociat: mustDecimal(t, "9000"),
		CreatedAt:    now,
	}}
	vehicles := []model.Vehicle{{ID: vehicleID, NumarInmatriculare: "B-02-TRS"}}

	pacing := computeVehiclePacing(trips, vehicles, now)
	if pacing[0].InGrafic {
		t.Fatalf("9000 < 10000 should be behind schedule")
	}
	if pacing[0].PercentRealized != 60 {
		t.Fatalf("percent realized: got %d want 60", pacing[0].PercentRealized)
	}
}

func TestDriverPresenceDaysAndDisplay(t *testing.T) {
	now := time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)

	sixteenDaysAgo := now.AddDate(0, 0, -16)
	threeDaysAgo := now.AddDate(0, 0, -3)
	oneDayAgo := now.AddDate(0, 0, -1)
	future := now.Add(6 * time.Hour)

	drivers := []model.Driver{
		{Nume: "Ion", LocatieCurenta: model.LocationAbroad, UltimaIesireDinRO: &sixteenDaysAgo},
		{Nume: "Vasile", LocatieCurenta: model.LocationRomania, UltimaIntrareInRO: &threeDaysAgo},
		{Nume: "Mihai", LocatieCurenta: model.LocationRomania, UltimaIntrareInRO: &oneDayAgo},
		{Nume: "Radu", LocatieCurenta: model.LocationRomania, UltimaIntrareInRO: &future},
	}

	presence := computeDriverPresence(drivers, now)

	if presence[0].Zile != 16 || presence[0].Saptamani != 2 {
		t.Fatalf("Ion: got %d days %d weeks, want 16/2", presence[0].Zile, presence[0].Saptamani)
	}
	if presence[0].Afisare != "16 zile (2 săptămâni)" {
		t.Fatalf("Ion display: got %q", presence[0].Afisare)
	}
	if presence[1].Afisare != "3 zile" {
		t.Fatalf("Vasile display: got %q", presence[1].Afisare)
	}
	if presence[2].Afisare != "1 zi" {
		t.Fatalf("Mihai display: got %q", presence[2].Afisare)
	}
	// Future reference timestamps clamp to zero days.
	if presence[3].Zile != 0 {
		t.Fatalf("Radu days: got %d want 0", presence[3].Zile)
	}
	if presence[3].Afisare != "0 zile" {
		t.Fatalf("Radu display: got %q", presence[3].Afisare)
	}
}

func TestCollectAlertsExpiryWindows(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	in5 := now.AddDate(0, 0, 5)
	in20 := now.AddDate(0, 0, 20)
	in40 := now.AddDate(0, 0, 40)
	past := now.AddDate(0, 0, -2)

	driverID := uuid.New()
	drivers := []model.Driver{{
		ID:              driverID,
		Nume:            "Ion",
		ExpirarePermis:  &in5,
		ExpirareAtestat: &in20,
	}}
	vehicleID := uuid.New()
	vehicles := []model.Vehicle{{
		ID:                 vehicleID,
		NumarInmatriculare: "B-01-TRS",
		ExpirareRCA:        &in40,
		ExpirareITP:        &past,
	}}

	alerts := CollectAlerts(drivers, vehicles, nil, now)

	// 40-day RCA and already-expired ITP fall outside the window.
	if len(alerts) != 2 {
		t.Fatalf("alerts: got %d want 2", len(alerts))
	}
	if alerts[0].Kind != model.AlertKindLicense || alerts[0].Severity != model.AlertSeverityError {
		t.Fatalf("5-day license alert should be error, got %s/%s", alerts[0].Kind, alerts[0].Severity)
	}
	if alerts[0].ID != "permis-"+driverID.String() {
		t.Fatalf("alert id: got %q", alerts[0].ID)
	}
	if alerts[0].ZileRamase != 5 {
		t.Fatalf("remaining days: got %d want 5", alerts[0].ZileRamase)
	}
	if alerts[1].Kind != model.AlertKindCertificate || alerts[1].Severity != model.AlertSeverityWarning {
		t.Fatalf("20-day certificate alert should be warning, got %s/%s", alerts[1].Kind, alerts[1].Severity)
	}
}

func TestCollectAlertsInvoiceDue(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	invoices := []model.Invoice{
		{ID: uuid.New(), Numar: "TRF-202506-0001", Status: model.InvoiceStatusIssued, DataScadenta: now.AddDate(0, 0, 2)},
		{ID: uuid.New(), Numar: "TRF-202506-0002", Status: model.InvoiceStatusSent, DataScadenta: now.AddDate(0, 0, 6)},
		{ID: uuid.New(), Numar: "TRF-202506-0003", Status: model.InvoiceStatusIssued, DataScadenta: now.AddDate(0, 0, 10)},
		{ID: uuid.New(), Numar: "TRF-202506-0004", Status: model.InvoiceStatusPaid, DataScadenta: now.AddDate(0, 0, 2)},
	}

	alerts := CollectAlerts(nil, nil, invoices, now)

	if len(alerts) != 2 {
		t.Fatalf("alerts: got %d want 2", len(alerts))
	}
	if alerts[0].Severity != model.AlertSeverityError {
		t.Fatalf("2-day invoice alert should be error, got %s", alerts[0].Severity)
	}
	if alerts[1].Severity != model.AlertSeverityWarning {
		t.Fatalf("6-day invoice alert should be warning, got %s", alerts[1].Severity)
	}
}

// --- GetDashboard error policy ---

type stubTripRepo struct {
	trips []model.Trip
	trip  *model.Trip
	err   error
}

func (s *stubTripRepo) Create(ctx context.Context, trip *model.Trip) error { return nil }
func (s *stubTripRepo) Update(ctx context.Context, trip *model.Trip) error {
	s.trip = trip
	return nil
}
func (s *stubTripRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (s *stubTripRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Trip, error) {
	if s.trip != nil {
		found := *s.trip
		return &found, nil
	}
	return nil, errors.New("not found")
}
func (s *stubTripRepo) List(ctx context.Context, filter repository.TripFilter, page, limit int) ([]model.Trip, int64, error) {
	return s.trips, int64(len(s.trips)), s.err
}
func (s *stubTripRepo) ReplacePoints(ctx context.Context, tripID uuid.UUID, points []model.TripPoint) error {
	return nil
}
func (s *stubTripRepo) FindWithoutInvoice(ctx context.Context) ([]model.Trip, error) {
	return nil, nil
}

type stubDriverRepo struct {
	drivers []model.Driver
	err     error
}

func (s *stubDriverRepo) Create(ctx context.Context, driver *model.Driver) error { return nil }
func (s *stubDriverRepo) Update(ctx context.Context, driver *model.Driver) error { return nil }
func (s *stubDriverRepo) Delete(ctx context.Context, id uuid.UUID) error         { return nil }
func (s *stubDriverRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Driver, error) {
	return nil, errors.New("not found")
}
func (s *stubDriverRepo) List(ctx context.Context, status model.DriverStatus, search string, page, limit int) ([]model.Driver, int64, error) {
	return s.drivers, int64(len(s.drivers)), s.err
}
func (s *stubDriverRepo) AddSalaryPayment(ctx context.Context, payment *model.SalaryPayment) error {
	return nil
}

type stubVehicleRepo struct {
	vehicles []model.Vehicle
	err      error
}

func (s *stubVehicleRepo) Create(ctx context.Context, vehicle *model.Vehicle) error { return nil }
func (s *stubVehicleRepo) Update(ctx context.Context, vehicle *model.Vehicle) error { return nil }
func (s *stubVehicleRepo) Delete(ctx context.Context, id uuid.UUID) error           { return nil }
func (s *stubVehicleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	return nil, errors.New("not found")
}
func (s *stubVehicleRepo) FindByPlate(ctx context.Context, plate string) (*model.Vehicle, error) {
	return nil, errors.New("not found")
}
func (s *stubVehicleRepo) List(ctx context.Context, status model.VehicleStatus, search string, page, limit int) ([]model.Vehicle, int64, error) {
	return s.vehicles, int64(len(s.vehicles)), s.err
}
func (s *stubVehicleRepo) AddRepair(ctx context.Context, repair *model.Repair) error { return nil }
func (s *stubVehicleRepo) ListRepairs(ctx context.Context, vehicleID uuid.UUID) ([]model.Repair, error) {
	return nil, nil
}

type stubInvoiceRepo struct {
	invoices []model.Invoice
	invoice  *model.Invoice
	err      error
}

func (s *stubInvoiceRepo) Create(ctx context.Context, invoice *model.Invoice) error { return nil }
func (s *stubInvoiceRepo) Update(ctx context.Context, invoice *model.Invoice) error {
	s.invoice = invoice
	return nil
}
func (s *stubInvoiceRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (s *stubInvoiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	if s.invoice != nil {
		found := *s.invoice
		return &found, nil
	}
	return nil, errors.New("not found")
}
func (s *stubInvoiceRepo) FindByNumar(ctx context.Context, numar string) (*model.Invoice, error) {
	return nil, errors.New("not found")
}
func (s *stubInvoiceRepo) List(ctx context.Context, filter repository.InvoiceFilter, page, limit int) ([]model.Invoice, int64, error) {
	return s.invoices, int64(len(s.invoices)), s.err
}
func (s *stubInvoiceRepo) CountByPrefix(ctx context.Context, prefix string) (int64, error) {
	return int64(len(s.invoices)), nil
}

func TestGetDashboardAbortsWhenAnyFetchFails(t *testing.T) {
	svc := NewDashboardService(
		&stubTripRepo{},
		&stubDriverRepo{err: errors.New("db down")},
		&stubVehicleRepo{},
		&stubInvoiceRepo{},
		nil,
		nil,
	)

	if _, err := svc.GetDashboard(context.Background(), false); err == nil {
		t.Fatalf("expected aggregation to fail when a fetch fails")
	}
}

func TestGetDashboardWithoutCache(t *testing.T) {
	now := time.Now()
	svc := NewDashboardService(
		&stubTripRepo{trips: []model.Trip{{Status: model.TripStatusInProgress, CostNegociat: mustDecimal(t, "100"), CreatedAt: now}}},
		&stubDriverRepo{},
		&stubVehicleRepo{},
		&stubInvoiceRepo{},
		nil,
		nil,
	)

	res, err := svc.GetDashboard(context.Background(), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.CurseActive != 1 {
		t.Fatalf("active trips: got %d want 1", res.CurseActive)
	}
}
