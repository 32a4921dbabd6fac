package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"transio/internal/model"

	"github.com/google/uuid"
)

func TestMonthlyRevenueBucketsByMonth(t *testing.T) {
	jan := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	otherYear := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	repo := &stubTripRepo{trips: []model.Trip{
		{Status: model.TripStatusPaid, CostNegociat: mustDecimal(t, "1000"), KmReali: 400, CreatedAt: jan},
		{Status: model.TripStatusFinished, CostNegociat: mustDecimal(t, "2000"), ComisionBursa: mustDecimal(t, "100"), KmEstimati: 600, CreatedAt: mar},
		{Status: model.TripStatusOffer, CostNegociat: mustDecimal(t, "9999"), CreatedAt: mar},
		{Status: model.TripStatusPaid, CostNegociat: mustDecimal(t, "5000"), CreatedAt: otherYear},
	}}
	svc := NewReportService(repo, &stubVehicleRepo{}, &stubInvoiceRepo{})

	rows, err := svc.MonthlyRevenue(context.Background(), 2025)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 12 {
		t.Fatalf("rows: got %d want 12", len(rows))
	}
	if rows[0].Curse != 1 || rows[0].Venit != "1000.00" || rows[0].Km != 400 {
		t.Fatalf("january: got %+v", rows[0])
	}
	// Offers are excluded, commission is deducted.
	if rows[2].Curse != 1 || rows[2].Venit != "1900.00" || rows[2].Km != 600 {
		t.Fatalf("march: got %+v", rows[2])
	}
	if rows[1].Curse != 0 || rows[1].Venit != "0.00" {
		t.Fatalf("february should be empty: got %+v", rows[1])
	}
}

func TestDriverPerformanceGroupsAndSorts(t *testing.T) {
	anaID := uuid.New()
	bogdanID := uuid.New()
	now := time.Now()

	repo := &stubTripRepo{trips: []model.Trip{
		{Status: model.TripStatusPaid, DriverID: &bogdanID, Driver: &model.Driver{ID: bogdanID, Nume: "Bogdan"}, CostNegociat: mustDecimal(t, "1000"), KmReali: 500, CreatedAt: now},
		{Status: model.TripStatusPaid, DriverID: &anaID, Driver: &model.Driver{ID: anaID, Nume: "Ana"}, CostNegociat: mustDecimal(t, "2000"), KmReali: 800, CreatedAt: now},
		{Status: model.TripStatusPaid, DriverID: &anaID, Driver: &model.Driver{ID: anaID, Nume: "Ana"}, CostNegociat: mustDecimal(t, "1000"), KmReali: 200, CreatedAt: now},
		{Status: model.TripStatusPaid, CostNegociat: mustDecimal(t, "700"), CreatedAt: now},
	}}
	svc := NewReportService(repo, &stubVehicleRepo{}, &stubInvoiceRepo{})

	rows, err := svc.DriverPerformance(context.Background(), ReportParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Unassigned trips are skipped, names sort alphabetically.
	if len(rows) != 2 {
		t.Fatalf("rows: got %d want 2", len(rows))
	}
	if rows[0].Nume != "Ana" || rows[0].Curse != 2 || rows[0].Km != 1000 || rows[0].Venit != "3000.00" {
		t.Fatalf("ana: got %+v", rows[0])
	}
	if rows[0].VenitPerKm != "3.00" {
		t.Fatalf("ana revenue per km: got %s want 3.00", rows[0].VenitPerKm)
	}
	if rows[1].Nume != "Bogdan" || rows[1].Curse != 1 {
		t.Fatalf("bogdan: got %+v", rows[1])
	}
}

func TestPartnerDebtsOnlyUnpaid(t *testing.T) {
	partnerID := uuid.New()
	partner := &model.Partner{ID: partnerID, NumeFirma: "Cargo Vest SRL"}

	repo := &stubInvoiceRepo{invoices: []model.Invoice{
		{Status: model.InvoiceStatusIssued, Suma: mustDecimal(t, "1000"), Trip: &model.Trip{Partner: partner}},
		{Status: model.InvoiceStatusOverdue, Suma: mustDecimal(t, "500"), Trip: &model.Trip{Partner: partner}},
		{Status: model.InvoiceStatusPaid, Suma: mustDecimal(t, "9000"), Trip: &model.Trip{Partner: partner}},
		{Status: model.InvoiceStatusIssued, Suma: mustDecimal(t, "100")},
	}}
	svc := NewReportService(&stubTripRepo{}, &stubVehicleRepo{}, repo)

	rows, err := svc.PartnerDebts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows: got %d want 1", len(rows))
	}
	if rows[0].NumeFirma != "Cargo Vest SRL" || rows[0].Facturi != 2 || rows[0].SumaNeincasata != "1500.00" {
		t.Fatalf("debt row: got %+v", rows[0])
	}
}

func TestRepairCostsDateRange(t *testing.T) {
	vehicleID := uuid.New()
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	repo := &stubVehicleRepo{vehicles: []model.Vehicle{{
		ID:                 vehicleID,
		NumarInmatriculare: "B-01-TRS",
		Repairs: []model.Repair{
			{Data: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), Cost: mustDecimal(t, "300")},
			{Data: time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC), Cost: mustDecimal(t, "700")},
		},
	}}}
	svc := NewReportService(&stubTripRepo{}, repo, &stubInvoiceRepo{})

	rows, err := svc.RepairCosts(context.Background(), ReportParams{FromDate: &from, ToDate: &to})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows[0].Reparatii != 1 || rows[0].CostTotal != "300.00" {
		t.Fatalf("repair row: got %+v", rows[0])
	}
}

func TestExportCSV(t *testing.T) {
	repo := &stubTripRepo{trips: []model.Trip{{
		Status:       model.TripStatusPaid,
		CostNegociat: mustDecimal(t, "1000"),
		KmReali:      400,
		CreatedAt:    time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
	}}}
	svc := NewReportService(repo, &stubVehicleRepo{}, &stubInvoiceRepo{})

	file, err := svc.Export(context.Background(), ReportMonthlyRevenue, "csv", ReportParams{Year: 2025})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if file.ContentType != "text/csv; charset=utf-8" {
		t.Fatalf("content type: got %q", file.ContentType)
	}
	if !strings.HasSuffix(file.Name, ".csv") {
		t.Fatalf("filename: got %q", file.Name)
	}
	if len(file.Data) == 0 {
		t.Fatalf("empty export body")
	}
}

func TestExportUnknownReport(t *testing.T) {
	svc := NewReportService(&stubTripRepo{}, &stubVehicleRepo{}, &stubInvoiceRepo{})
	if _, err := svc.Export(context.Background(), "necunoscut", "csv", ReportParams{}); err == nil {
		t.Fatalf("unknown report should be rejected")
	}
}

func TestTripKmPrefersRecorded(t *testing.T) {
	if got := tripKm(model.Trip{KmReali: 800, KmEstimati: 750}); got != 800 {
		t.Fatalf("recorded km should win, got %v", got)
	}
	if got := tripKm(model.Trip{KmEstimati: 750}); got != 750 {
		t.Fatalf("estimate fallback, got %v", got)
	}
}
