package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"transio/internal/middleware"
	"transio/internal/model"
	"transio/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type stubInvoiceService struct {
	invoice *model.Invoice
}

func (s *stubInvoiceService) CreateInvoice(ctx context.Context, actorID string, req service.CreateInvoiceRequest) (service.InvoiceResponse, error) {
	return service.InvoiceResponse{}, nil
}

func (s *stubInvoiceService) UpdateInvoice(ctx context.Context, actorID, id string, req service.UpdateInvoiceRequest) (service.InvoiceResponse, error) {
	return service.InvoiceResponse{}, nil
}

func (s *stubInvoiceService) UpdateStatus(ctx context.Context, actorID, id string, next model.InvoiceStatus) (service.InvoiceResponse, error) {
	return service.InvoiceResponse{}, nil
}

func (s *stubInvoiceService) DeleteInvoice(ctx context.Context, actorID, id string) error {
	return nil
}

func (s *stubInvoiceService) GetInvoice(ctx context.Context, id string) (service.InvoiceResponse, error) {
	return service.InvoiceResponse{}, nil
}

func (s *stubInvoiceService) GetInvoiceModel(ctx context.Context, id string) (*model.Invoice, error) {
	return s.invoice, nil
}

func (s *stubInvoiceService) ListInvoices(ctx context.Context, filter service.InvoiceListFilter, page, limit int) ([]service.InvoiceResponse, int64, error) {
	return nil, 0, nil
}

func (s *stubInvoiceService) AvailableTrips(ctx context.Context) ([]service.AvailableTripResponse, error) {
	return nil, nil
}

func (s *stubInvoiceService) Statistics(ctx context.Context) (model.InvoiceStatistics, error) {
	return model.InvoiceStatistics{}, nil
}

type stubSettingsService struct{}

func (s *stubSettingsService) GetCompany(ctx context.Context) (*model.Company, error) {
	return &model.Company{NumeFirma: "Transio SRL"}, nil
}

func (s *stubSettingsService) UpdateCompany(ctx context.Context, req service.UpdateCompanyRequest) (*model.Company, error) {
	return nil, nil
}

func (s *stubSettingsService) Backup(ctx context.Context) (*model.Backup, error) { return nil, nil }

func (s *stubSettingsService) Restore(ctx context.Context, actorID string, backup *model.Backup) error {
	return nil
}

func invoiceAuthToken(t *testing.T) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  uuid.NewString(),
		"role": model.RoleAdmin,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(middleware.GetJWTSecret())
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func newInvoiceTestRouter(invoices service.InvoiceService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewInvoiceHandler(invoices, &stubSettingsService{}).RegisterRoutes(r.Group(""))
	return r
}

func TestListInvoicesDisablesCaching(t *testing.T) {
	r := newInvoiceTestRouter(&stubInvoiceService{})

	req := httptest.NewRequest("GET", "/api/facturi", nil)
	req.Header.Set("Authorization", "Bearer "+invoiceAuthToken(t))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d want %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}
	if got := w.Header().Get("Cache-Control"); got != "no-store" {
		t.Fatalf("cache-control: got %q want %q", got, "no-store")
	}
}

func TestExportRouteServesPDF(t *testing.T) {
	invoice := &model.Invoice{
		ID:           uuid.New(),
		Numar:        "TRF-202506-0001",
		TripID:       uuid.New(),
		Suma:         decimal.NewFromInt(1500),
		Moneda:       "EUR",
		DataEmitere:  time.Now(),
		DataScadenta: time.Now().AddDate(0, 0, 30),
		Status:       model.InvoiceStatusIssued,
	}
	r := newInvoiceTestRouter(&stubInvoiceService{invoice: invoice})

	for _, path := range []string{
		"/api/facturi/" + invoice.ID.String() + "/export",
		"/api/facturi/" + invoice.ID.String() + "/pdf",
	} {
		req := httptest.NewRequest("GET", path, nil)
		req.Header.Set("Authorization", "Bearer "+invoiceAuthToken(t))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("%s status: got %d want %d, body %s", path, w.Code, http.StatusOK, w.Body.String())
		}
		if got := w.Header().Get("Content-Type"); got != "application/pdf" {
			t.Fatalf("%s content type: got %q want %q", path, got, "application/pdf")
		}
	}
}
