package service

import (
	"context"
	"fmt"
	"time"

	"transio/internal/model"
	"transio/internal/repository"
	"transio/pkg/pagination"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type CreateInvoiceRequest struct {
	Numar        string    `json:"numar"` // optional, generated when empty
	CursaID      string    `json:"cursaId" binding:"required"`
	Suma         string    `json:"suma" binding:"required"`
	Moneda       string    `json:"moneda"`
	DataEmitere  time.Time `json:"dataEmitere" binding:"required"`
	DataScadenta time.Time `json:"dataScadenta" binding:"required"`
}

type UpdateInvoiceRequest struct {
	Suma         *string    `json:"suma"`
	Moneda       *string    `json:"moneda"`
	DataEmitere  *time.Time `json:"dataEmitere"`
	DataScadenta *time.Time `json:"dataScadenta"`
}

type InvoiceListFilter struct {
	Status string
	Numar  string
	Cursa  string
}

type InvoiceResponse struct {
	ID           string              `json:"id"`
	Numar        string              `json:"numar"`
	CursaID      string              `json:"cursaId"`
	Partener     *TripRefResponse    `json:"partener,omitempty"`
	Suma         string              `json:"suma"`
	Moneda       string              `json:"moneda"`
	DataEmitere  time.Time           `json:"dataEmitere"`
	DataScadenta time.Time           `json:"dataScadenta"`
	Status       model.InvoiceStatus `json:"status"`
	Documente    []model.Document    `json:"documente"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// AvailableTripResponse is a trimmed trip view for the invoice form's
// "finished trips without an invoice" picker.
type AvailableTripResponse struct {
	ID         string           `json:"id"`
	Status     model.TripStatus `json:"status"`
	Partener   *TripRefResponse `json:"partener,omitempty"`
	VenitNet   string           `json:"venitNet"`
	CreatedAt  time.Time        `json:"created_at"`
}

// --- Interface ---

type InvoiceService interface {
	CreateInvoice(ctx context.Context, actorID string, req CreateInvoiceRequest) (InvoiceResponse, error)
	UpdateInvoice(ctx context.Context, actorID, id string, req UpdateInvoiceRequest) (InvoiceResponse, error)
	UpdateStatus(ctx context.Context, actorID, id string, next model.InvoiceStatus) (InvoiceResponse, error)
	DeleteInvoice(ctx context.Context, actorID, id string) error
	GetInvoice(ctx context.Context, id string) (InvoiceResponse, error)
	GetInvoiceModel(ctx context.Context, id string) (*model.Invoice, error)
	ListInvoices(ctx context.Context, filter InvoiceListFilter, page, limit int) ([]InvoiceResponse, int64, error)
	AvailableTrips(ctx context.Context) ([]AvailableTripResponse, error)
	Statistics(ctx context.Context) (model.InvoiceStatistics, error)
}

type invoiceService struct {
	invoiceRepo repository.InvoiceRepository
	tripRepo    repository.TripRepository
	auditRepo   repository.AuditRepository
	now         func() time.Time
}

func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	tripRepo repository.TripRepository,
	auditRepo repository.AuditRepository,
) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		tripRepo:    tripRepo,
		auditRepo:   auditRepo,
		now:         time.Now,
	}
}

// --- Implementation ---

func (s *invoiceService) CreateInvoice(ctx context.Context, actorID string, req CreateInvoiceRequest) (InvoiceResponse, error) {
	suma, err := decimal.NewFromString(req.Suma)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invalid suma: %w", err)
	}
	if !suma.IsPositive() {
		return InvoiceResponse{}, fmt.Errorf("suma must be positive")
	}
	if req.DataScadenta.Before(req.DataEmitere) {
		return InvoiceResponse{}, fmt.Errorf("dataScadenta cannot precede dataEmitere")
	}

	tripID, err := uuid.Parse(req.CursaID)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invalid cursaId")
	}
	if _, err := s.tripRepo.FindByID(ctx, tripID); err != nil {
		return InvoiceResponse{}, fmt.Errorf("cursa not found")
	}

	numar := req.Numar
	if numar == "" {
		numar, err = s.generateNumber(ctx, req.DataEmitere)
		if err != nil {
			return InvoiceResponse{}, err
		}
	} else if _, err := s.invoiceRepo.FindByNumar(ctx, numar); err == nil {
		return InvoiceResponse{}, fmt.Errorf("numar already exists")
	}

	currency := req.Moneda
	if currency == "" {
		currency = "EUR"
	}

	invoice := &model.Invoice{
		Numar:        numar,
		TripID:       tripID,
		Suma:         suma,
		Moneda:       currency,
		DataEmitere:  req.DataEmitere,
		DataScadenta: req.DataScadenta,
		Status:       model.InvoiceStatusIssued,
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return InvoiceResponse{}, fmt.Errorf("failed to create invoice: %w", err)
	}

	s.audit(ctx, actorID, model.ActionCreateInvoice, invoice)

	created, err := s.invoiceRepo.FindByID(ctx, invoice.ID)
	if err != nil {
		return toInvoiceResponse(*invoice), nil
	}
	return toInvoiceResponse(*created), nil
}

// generateNumber builds the next invoice number "TRF-YYYYMM-NNNN" within
// the issue month.
func (s *invoiceService) generateNumber(ctx context.Context, issued time.Time) (string, error) {
	prefix := fmt.Sprintf("TRF-%s-", issued.Format("200601"))
	count, err := s.invoiceRepo.CountByPrefix(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("failed to generate invoice number: %w", err)
	}
	return fmt.Sprintf("%s%04d", prefix, count+1), nil
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, actorID, id string, req UpdateInvoiceRequest) (InvoiceResponse, error) {
	invoice, err := s.findInvoice(ctx, id)
	if err != nil {
		return InvoiceResponse{}, err
	}
	if invoice.Status == model.InvoiceStatusPaid || invoice.Status == model.InvoiceStatusCancelled {
		return InvoiceResponse{}, fmt.Errorf("cannot edit a %s invoice", invoice.Status)
	}

	if req.Suma != nil {
		suma, err := decimal.NewFromString(*req.Suma)
		if err != nil {
			return InvoiceResponse{}, fmt.Errorf("invalid suma: %w", err)
		}
		if !suma.IsPositive() {
			return InvoiceResponse{}, fmt.Errorf("suma must be positive")
		}
		invoice.Suma = suma
	}
	if req.Moneda != nil {
		invoice.Moneda = *req.Moneda
	}
	if req.DataEmitere != nil {
		invoice.DataEmitere = *req.DataEmitere
	}
	if req.DataScadenta != nil {
		invoice.DataScadenta = *req.DataScadenta
	}
	if invoice.DataScadenta.Before(invoice.DataEmitere) {
		return InvoiceResponse{}, fmt.Errorf("dataScadenta cannot precede dataEmitere")
	}

	invoice.Trip = nil
	invoice.Documents = nil
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return InvoiceResponse{}, fmt.Errorf("failed to update invoice: %w", err)
	}

	s.audit(ctx, actorID, model.ActionUpdateInvoice, invoice)

	updated, err := s.invoiceRepo.FindByID(ctx, invoice.ID)
	if err != nil {
		return toInvoiceResponse(*invoice), nil
	}
	return toInvoiceResponse(*updated), nil
}

func (s *invoiceService) UpdateStatus(ctx context.Context, actorID, id string, next model.InvoiceStatus) (InvoiceResponse, error) {
	if !model.ValidInvoiceStatuses[next] {
		return InvoiceResponse{}, fmt.Errorf("invalid status: %s", next)
	}
	invoice, err := s.findInvoice(ctx, id)
	if err != nil {
		return InvoiceResponse{}, err
	}
	if !invoice.Status.CanTransitionTo(next) {
		return InvoiceResponse{}, fmt.Errorf("cannot move invoice from %s to %s", invoice.Status, next)
	}

	invoice.Status = next
	invoice.Trip = nil
	invoice.Documents = nil
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return InvoiceResponse{}, fmt.Errorf("failed to update status: %w", err)
	}

	s.audit(ctx, actorID, model.ActionUpdateInvoice, invoice)

	updated, err := s.invoiceRepo.FindByID(ctx, invoice.ID)
	if err != nil {
		return toInvoiceResponse(*invoice), nil
	}
	return toInvoiceResponse(*updated), nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, actorID, id string) error {
	invoice, err := s.findInvoice(ctx, id)
	if err != nil {
		return err
	}
	if err := s.invoiceRepo.Delete(ctx, invoice.ID); err != nil {
		return err
	}
	s.audit(ctx, actorID, model.ActionDeleteInvoice, invoice)
	return nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (InvoiceResponse, error) {
	invoice, err := s.findInvoice(ctx, id)
	if err != nil {
		return InvoiceResponse{}, err
	}
	return toInvoiceResponse(*invoice), nil
}

// GetInvoiceModel exposes the full model for export rendering.
func (s *invoiceService) GetInvoiceModel(ctx context.Context, id string) (*model.Invoice, error) {
	return s.findInvoice(ctx, id)
}

func (s *invoiceService) ListInvoices(ctx context.Context, filter InvoiceListFilter, page, limit int) ([]InvoiceResponse, int64, error) {
	repoFilter := repository.InvoiceFilter{Numar: filter.Numar}
	if filter.Status != "" {
		status := model.InvoiceStatus(filter.Status)
		if !model.ValidInvoiceStatuses[status] {
			return nil, 0, fmt.Errorf("invalid status filter: %s", filter.Status)
		}
		repoFilter.Status = status
	}
	if filter.Cursa != "" {
		tripID, err := uuid.Parse(filter.Cursa)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid cursaId filter")
		}
		repoFilter.TripID = &tripID
	}

	invoices, total, err := s.invoiceRepo.List(ctx, repoFilter, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch invoices: %w", err)
	}

	res := make([]InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		res = append(res, toInvoiceResponse(inv))
	}
	return res, total, nil
}

func (s *invoiceService) AvailableTrips(ctx context.Context) ([]AvailableTripResponse, error) {
	trips, err := s.tripRepo.FindWithoutInvoice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch available trips: %w", err)
	}
	res := make([]AvailableTripResponse, 0, len(trips))
	for _, t := range trips {
		item := AvailableTripResponse{
			ID:        t.ID.String(),
			Status:    t.Status,
			VenitNet:  t.VenitNet().StringFixed(2),
			CreatedAt: t.CreatedAt,
		}
		if t.Partner != nil {
			item.Partener = &TripRefResponse{ID: t.Partner.ID.String(), Nume: t.Partner.NumeFirma}
		}
		res = append(res, item)
	}
	return res, nil
}

// Statistics aggregates the invoice list the same way the invoices screen
// shows it: counts per status, total billed and total outstanding.
func (s *invoiceService) Statistics(ctx context.Context) (model.InvoiceStatistics, error) {
	bulk := pagination.Bulk()
	invoices, _, err := s.invoiceRepo.List(ctx, repository.InvoiceFilter{}, bulk.Page, bulk.Limit)
	if err != nil {
		return model.InvoiceStatistics{}, fmt.Errorf("failed to fetch invoices: %w", err)
	}
	return ComputeInvoiceStatistics(invoices, s.now()), nil
}

// ComputeInvoiceStatistics rolls up an already-fetched invoice collection.
// An outstanding invoice whose due date has passed counts as overdue even if
// nobody flipped its status yet.
func ComputeInvoiceStatistics(invoices []model.Invoice, now time.Time) model.InvoiceStatistics {
	stats := model.InvoiceStatistics{
		PerStatus:      make(map[string]int),
		SumaTotala:     decimal.Zero,
		SumaNeincasata: decimal.Zero,
	}
	for _, inv := range invoices {
		stats.Total++
		stats.PerStatus[string(inv.Status)]++
		if inv.Status != model.InvoiceStatusCancelled {
			stats.SumaTotala = stats.SumaTotala.Add(inv.Suma)
		}
		if inv.Status.IsUnpaid() {
			stats.SumaNeincasata = stats.SumaNeincasata.Add(inv.Suma)
		}
		if inv.Status == model.InvoiceStatusOverdue ||
			(inv.Status.IsOutstanding() && inv.DataScadenta.Before(now)) {
			stats.Restante++
		}
	}
	return stats
}

// --- Helpers ---

func (s *invoiceService) findInvoice(ctx context.Context, id string) (*model.Invoice, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid invoice ID")
	}
	invoice, err := s.invoiceRepo.FindByID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("invoice not found: %w", err)
	}
	return invoice, nil
}

func (s *invoiceService) audit(ctx context.Context, actorID, action string, invoice *model.Invoice) {
	entry := &model.AuditLog{
		Action:     action,
		EntityID:   invoice.ID.String(),
		EntityName: invoice.Numar,
	}
	if uid, err := uuid.Parse(actorID); err == nil {
		entry.UserID = &uid
	}
	_ = s.auditRepo.Log(ctx, entry)
}

func toInvoiceResponse(inv model.Invoice) InvoiceResponse {
	res := InvoiceResponse{
		ID:           inv.ID.String(),
		Numar:        inv.Numar,
		CursaID:      inv.TripID.String(),
		Suma:         inv.Suma.StringFixed(2),
		Moneda:       inv.Moneda,
		DataEmitere:  inv.DataEmitere,
		DataScadenta: inv.DataScadenta,
		Status:       inv.Status,
		Documente:    inv.Documents,
		CreatedAt:    inv.CreatedAt,
		UpdatedAt:    inv.UpdatedAt,
	}
	if inv.Trip != nil && inv.Trip.Partner != nil {
		res.Partener = &TripRefResponse{ID: inv.Trip.Partner.ID.String(), Nume: inv.Trip.Partner.NumeFirma}
	}
	return res
}
