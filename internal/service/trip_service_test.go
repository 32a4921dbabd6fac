package service

import (
	"context"
	"testing"
	"time"

	"transio/internal/model"

	"github.com/google/uuid"
)

func validPoints(n int) []PointPayload {
	points := make([]PointPayload, 0, n)
	for i := 0; i < n; i++ {
		points = append(points, PointPayload{
			Firma:      "SC Marfa SRL",
			Adresa:     "Str. Depoului 1, Arad",
			DataOra:    time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC),
			GreutateKg: 1000,
		})
	}
	return points
}

func TestValidatePointsBounds(t *testing.T) {
	if err := validatePoints("load", nil); err == nil {
		t.Fatalf("empty point list should be rejected")
	}
	if err := validatePoints("load", validPoints(6)); err == nil {
		t.Fatalf("6 points should exceed the maximum")
	}
	if err := validatePoints("load", validPoints(5)); err != nil {
		t.Fatalf("5 points should be accepted: %v", err)
	}
}

func TestValidatePointsRequiredFields(t *testing.T) {
	missingFirma := validPoints(1)
	missingFirma[0].Firma = ""
	if err := validatePoints("load", missingFirma); err == nil {
		t.Fatalf("missing firma should be rejected")
	}

	missingDate := validPoints(1)
	missingDate[0].DataOra = time.Time{}
	if err := validatePoints("unload", missingDate); err == nil {
		t.Fatalf("zero dataOra should be rejected")
	}
}

func TestValidatePointsWeightOnlyOnLoad(t *testing.T) {
	noWeight := validPoints(1)
	noWeight[0].GreutateKg = 0
	if err := validatePoints("load", noWeight); err == nil {
		t.Fatalf("load point without weight should be rejected")
	}
	if err := validatePoints("unload", noWeight); err != nil {
		t.Fatalf("unload point needs no weight: %v", err)
	}
}

func TestParseMoney(t *testing.T) {
	d, err := parseMoney("costNegociat", "2500.50")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.StringFixed(2) != "2500.50" {
		t.Fatalf("got %s want 2500.50", d.StringFixed(2))
	}

	if d, err := parseMoney("comisionBursa", ""); err != nil || !d.IsZero() {
		t.Fatalf("empty amount should default to zero, got %s err %v", d, err)
	}
	if _, err := parseMoney("costNegociat", "-10"); err == nil {
		t.Fatalf("negative amount should be rejected")
	}
	if _, err := parseMoney("costNegociat", "abc"); err == nil {
		t.Fatalf("non-numeric amount should be rejected")
	}
}

func TestParseOptionalRef(t *testing.T) {
	if ref, err := parseOptionalRef("soferId", ""); err != nil || ref != nil {
		t.Fatalf("empty ref should mean unassigned, got %v err %v", ref, err)
	}

	id := uuid.New()
	ref, err := parseOptionalRef("soferId", id.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref == nil || *ref != id {
		t.Fatalf("got %v want %s", ref, id)
	}

	if _, err := parseOptionalRef("soferId", "not-a-uuid"); err == nil {
		t.Fatalf("malformed ref should be rejected")
	}
}

type stubPartnerRepo struct{}

func (s *stubPartnerRepo) Create(ctx context.Context, partner *model.Partner) error { return nil }
func (s *stubPartnerRepo) Update(ctx context.Context, partner *model.Partner) error { return nil }
func (s *stubPartnerRepo) Delete(ctx context.Context, id uuid.UUID) error           { return nil }
func (s *stubPartnerRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Partner, error) {
	return &model.Partner{ID: id}, nil
}
func (s *stubPartnerRepo) List(ctx context.Context, status model.PartnerStatus, bursa, search string, page, limit int) ([]model.Partner, int64, error) {
	return nil, 0, nil
}

type stubAuditRepo struct {
	entries []model.AuditLog
}

func (s *stubAuditRepo) Log(ctx context.Context, entry *model.AuditLog) error {
	s.entries = append(s.entries, *entry)
	return nil
}
func (s *stubAuditRepo) List(ctx context.Context, page, limit int) ([]model.AuditLog, int64, error) {
	return s.entries, int64(len(s.entries)), nil
}

type stubTxManager struct{}

func (s *stubTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

func newTripServiceForTest(repo *stubTripRepo) TripService {
	return NewTripService(repo, &stubDriverRepo{}, &stubVehicleRepo{}, &stubPartnerRepo{}, &stubAuditRepo{}, &stubTxManager{})
}

func TestUpdateStatusFollowsLifecycle(t *testing.T) {
	tripID := uuid.New()
	repo := &stubTripRepo{trip: &model.Trip{ID: tripID, Status: model.TripStatusOffer}}
	svc := newTripServiceForTest(repo)

	res, err := svc.UpdateStatus(context.Background(), "", tripID.String(), model.TripStatusAccepted)
	if err != nil {
		t.Fatalf("offer to accepted should be allowed: %v", err)
	}
	if res.Status != model.TripStatusAccepted {
		t.Fatalf("status after transition: got %s want %s", res.Status, model.TripStatusAccepted)
	}
}

func TestUpdateStatusRejectsSkippedStates(t *testing.T) {
	tripID := uuid.New()
	repo := &stubTripRepo{trip: &model.Trip{ID: tripID, Status: model.TripStatusOffer}}
	svc := newTripServiceForTest(repo)

	if _, err := svc.UpdateStatus(context.Background(), "", tripID.String(), model.TripStatusPaid); err == nil {
		t.Fatalf("offer straight to paid should be rejected")
	}
}

func TestUpdateStatusRejectsLeavingTerminalStates(t *testing.T) {
	tripID := uuid.New()
	repo := &stubTripRepo{trip: &model.Trip{ID: tripID, Status: model.TripStatusCancelled}}
	svc := newTripServiceForTest(repo)

	if _, err := svc.UpdateStatus(context.Background(), "", tripID.String(), model.TripStatusOffer); err == nil {
		t.Fatalf("cancelled is terminal, no transition out should be allowed")
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	tripID := uuid.New()
	repo := &stubTripRepo{trip: &model.Trip{ID: tripID, Status: model.TripStatusOffer}}
	svc := newTripServiceForTest(repo)

	if _, err := svc.UpdateStatus(context.Background(), "", tripID.String(), model.TripStatus("LIVRATA")); err == nil {
		t.Fatalf("unknown status should be rejected")
	}
}

func TestCreateTripRoundTrip(t *testing.T) {
	svc := newTripServiceForTest(&stubTripRepo{})

	load := []PointPayload{
		{Firma: "SC Incarcare SRL", Adresa: "Str. Garii 1, Arad", Tara: "RO", GPS: "46.18,21.31", DataOra: time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC), Marfa: "paleti", GreutateKg: 12000},
		{Firma: "Depozit Vest", Adresa: "Zona Ind. 4, Oradea", DataOra: time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC), Marfa: "cutii", GreutateKg: 3000},
	}
	unload := []PointPayload{
		{Firma: "Lager GmbH", Adresa: "Hafenstr. 9, Hamburg", Tara: "DE", DataOra: time.Date(2025, 6, 12, 9, 0, 0, 0, time.UTC)},
	}

	res, err := svc.CreateTrip(context.Background(), "", CreateTripRequest{
		BursaSursa:       "Timocom",
		PuncteIncarcare:  load,
		PuncteDescarcare: unload,
		KmEstimati:       1200,
		CostNegociat:     "2500",
		ComisionBursa:    "150",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Status != model.TripStatusOffer {
		t.Fatalf("new trips start as offers, got %s", res.Status)
	}
	if len(res.PuncteIncarcare) != 2 || len(res.PuncteDescarcare) != 1 {
		t.Fatalf("points: got %d load %d unload", len(res.PuncteIncarcare), len(res.PuncteDescarcare))
	}
	got := res.PuncteIncarcare[0]
	want := load[0]
	if got.Firma != want.Firma || got.Adresa != want.Adresa || got.Tara != want.Tara ||
		got.GPS != want.GPS || !got.DataOra.Equal(want.DataOra) || got.Marfa != want.Marfa || got.GreutateKg != want.GreutateKg {
		t.Fatalf("load point did not survive the round trip: got %+v want %+v", got, want)
	}
	if res.PuncteDescarcare[0].GreutateKg != 0 {
		t.Fatalf("unload points carry no cargo weight, got %v", res.PuncteDescarcare[0].GreutateKg)
	}
	if res.VenitNet != "2350.00" {
		t.Fatalf("net revenue: got %s want 2350.00", res.VenitNet)
	}
}

func TestCreateTripRejectsCommissionAboveCost(t *testing.T) {
	svc := newTripServiceForTest(&stubTripRepo{})
	_, err := svc.CreateTrip(context.Background(), "", CreateTripRequest{
		PuncteIncarcare:  validPoints(1),
		PuncteDescarcare: validPoints(1),
		CostNegociat:     "100",
		ComisionBursa:    "200",
	})
	if err == nil {
		t.Fatalf("commission above cost should be rejected")
	}
}

func TestTripResponseDerivedFigures(t *testing.T) {
	trip := model.Trip{
		ID:            uuid.New(),
		Status:        model.TripStatusInProgress,
		KmEstimati:    1200,
		CostNegociat:  mustDecimal(t, "2500"),
		ComisionBursa: mustDecimal(t, "150"),
	}

	res := toTripResponse(trip)
	if res.VenitNet != "2350.00" {
		t.Fatalf("net revenue: got %s want 2350.00", res.VenitNet)
	}
	if res.PretPerKm != "2.0833" {
		t.Fatalf("price per km: got %s want 2.0833", res.PretPerKm)
	}
	if res.CostNegociat != "2500.00" {
		t.Fatalf("negotiated cost: got %s want 2500.00", res.CostNegociat)
	}
}

func TestTripResponseZeroKmEstimate(t *testing.T) {
	trip := model.Trip{ID: uuid.New(), CostNegociat: mustDecimal(t, "900")}
	if res := toTripResponse(trip); res.PretPerKm != "0.0000" {
		t.Fatalf("no km estimate should yield zero price per km, got %s", res.PretPerKm)
	}
}
