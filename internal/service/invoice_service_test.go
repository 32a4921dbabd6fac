package service

import (
	"context"
	"testing"
	"time"

	"transio/internal/model"

	"github.com/google/uuid"
)

func TestComputeInvoiceStatistics(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	future := now.AddDate(0, 0, 10)
	past := now.AddDate(0, 0, -5)

	invoices := []model.Invoice{
		{Status: model.InvoiceStatusIssued, Suma: mustDecimal(t, "1000"), DataScadenta: future},
		{Status: model.InvoiceStatusSent, Suma: mustDecimal(t, "2000"), DataScadenta: past},
		{Status: model.InvoiceStatusPaid, Suma: mustDecimal(t, "3000"), DataScadenta: past},
		{Status: model.InvoiceStatusOverdue, Suma: mustDecimal(t, "500"), DataScadenta: past},
		{Status: model.InvoiceStatusCancelled, Suma: mustDecimal(t, "9000"), DataScadenta: future},
	}

	stats := ComputeInvoiceStatistics(invoices, now)

	if stats.Total != 5 {
		t.Fatalf("total: got %d want 5", stats.Total)
	}
	if stats.PerStatus[string(model.InvoiceStatusIssued)] != 1 || stats.PerStatus[string(model.InvoiceStatusCancelled)] != 1 {
		t.Fatalf("per-status counts wrong: %v", stats.PerStatus)
	}
	// Cancelled invoices never count toward totals.
	if !stats.SumaTotala.Equal(mustDecimal(t, "6500")) {
		t.Fatalf("total amount: got %s want 6500", stats.SumaTotala)
	}
	// Issued + sent + overdue are uncollected.
	if !stats.SumaNeincasata.Equal(mustDecimal(t, "3500")) {
		t.Fatalf("uncollected amount: got %s want 3500", stats.SumaNeincasata)
	}
	// Overdue status plus the sent invoice past its due date.
	if stats.Restante != 2 {
		t.Fatalf("overdue count: got %d want 2", stats.Restante)
	}
}

func TestComputeInvoiceStatisticsEmpty(t *testing.T) {
	stats := ComputeInvoiceStatistics(nil, time.Now())
	if stats.Total != 0 || !stats.SumaTotala.IsZero() || !stats.SumaNeincasata.IsZero() {
		t.Fatalf("empty input should yield zeroed stats: %+v", stats)
	}
}

func TestGenerateNumberSequencesWithinMonth(t *testing.T) {
	repo := &stubInvoiceRepo{invoices: make([]model.Invoice, 7)}
	svc := &invoiceService{invoiceRepo: repo, now: time.Now}

	issued := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	numar, err := svc.generateNumber(context.Background(), issued)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if numar != "TRF-202506-0008" {
		t.Fatalf("invoice number: got %q want TRF-202506-0008", numar)
	}
}

func TestGenerateNumberStartsFreshMonth(t *testing.T) {
	repo := &stubInvoiceRepo{}
	svc := &invoiceService{invoiceRepo: repo, now: time.Now}

	issued := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	numar, err := svc.generateNumber(context.Background(), issued)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if numar != "TRF-202507-0001" {
		t.Fatalf("invoice number: got %q want TRF-202507-0001", numar)
	}
}

func TestInvoiceStatusTransitions(t *testing.T) {
	invoiceID := uuid.New()
	repo := &stubInvoiceRepo{invoice: &model.Invoice{
		ID:     invoiceID,
		Numar:  "TRF-202506-0001",
		Suma:   mustDecimal(t, "1000"),
		Status: model.InvoiceStatusIssued,
	}}
	svc := NewInvoiceService(repo, &stubTripRepo{}, &stubAuditRepo{})

	res, err := svc.UpdateStatus(context.Background(), "", invoiceID.String(), model.InvoiceStatusSent)
	if err != nil {
		t.Fatalf("issued to sent should be allowed: %v", err)
	}
	if res.Status != model.InvoiceStatusSent {
		t.Fatalf("status: got %s want %s", res.Status, model.InvoiceStatusSent)
	}

	// Paid is terminal.
	repo.invoice.Status = model.InvoiceStatusPaid
	if _, err := svc.UpdateStatus(context.Background(), "", invoiceID.String(), model.InvoiceStatusIssued); err == nil {
		t.Fatalf("paid is terminal, no transition out should be allowed")
	}
}

func TestUpdateInvoiceRejectsClosedInvoices(t *testing.T) {
	invoiceID := uuid.New()
	repo := &stubInvoiceRepo{invoice: &model.Invoice{
		ID:     invoiceID,
		Status: model.InvoiceStatusPaid,
		Suma:   mustDecimal(t, "1000"),
	}}
	svc := NewInvoiceService(repo, &stubTripRepo{}, &stubAuditRepo{})

	suma := "2000"
	if _, err := svc.UpdateInvoice(context.Background(), "", invoiceID.String(), UpdateInvoiceRequest{Suma: &suma}); err == nil {
		t.Fatalf("paid invoices should not be editable")
	}
}
