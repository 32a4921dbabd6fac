package service

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"transio/internal/model"
	"transio/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type CreatePartnerRequest struct {
	NumeFirma       string `json:"numeFirma" binding:"required"`
	CUI             string `json:"cui"`
	ContactPersoana string `json:"contactPersoana"`
	ContactTelefon  string `json:"contactTelefon"`
	ContactEmail    string `json:"contactEmail"`
	TermenPlataZile int    `json:"termenPlataZile"`
	TermenPlataTip  string `json:"termenPlataTip"`
	MonedaPreferata string `json:"monedaPreferata"`
	BursaSursa      string `json:"bursaSursa"`
	Rating          int    `json:"rating"`
}

type UpdatePartnerRequest struct {
	NumeFirma       *string `json:"numeFirma"`
	CUI             *string `json:"cui"`
	ContactPersoana *string `json:"contactPersoana"`
	ContactTelefon  *string `json:"contactTelefon"`
	ContactEmail    *string `json:"contactEmail"`
	TermenPlataZile *int    `json:"termenPlataZile"`
	TermenPlataTip  *string `json:"termenPlataTip"`
	MonedaPreferata *string `json:"monedaPreferata"`
	BursaSursa      *string `json:"bursaSursa"`
	Rating          *int    `json:"rating"`
	Status          *string `json:"status"`
}

type PartnerResponse struct {
	ID              string              `json:"id"`
	NumeFirma       string              `json:"numeFirma"`
	CUI             string              `json:"cui"`
	ContactPersoana string              `json:"contactPersoana"`
	ContactTelefon  string              `json:"contactTelefon"`
	ContactEmail    string              `json:"contactEmail"`
	TermenPlataZile int                 `json:"termenPlataZile"`
	TermenPlataTip  string              `json:"termenPlataTip"`
	MonedaPreferata string              `json:"monedaPreferata"`
	BursaSursa      string              `json:"bursaSursa"`
	Rating          int                 `json:"rating"`
	Status          model.PartnerStatus `json:"status"`
	Contracte       []model.Document    `json:"contracte"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// --- Interface ---

type PartnerService interface {
	CreatePartner(ctx context.Context, req CreatePartnerRequest) (PartnerResponse, error)
	UpdatePartner(ctx context.Context, id string, req UpdatePartnerRequest) (PartnerResponse, error)
	DeletePartner(ctx context.Context, id string) error
	GetPartner(ctx context.Context, id string) (PartnerResponse, error)
	ListPartners(ctx context.Context, status, bursa, search string, page, limit int) ([]PartnerResponse, int64, error)
}

type partnerService struct {
	partnerRepo repository.PartnerRepository
}

func NewPartnerService(partnerRepo repository.PartnerRepository) PartnerService {
	return &partnerService{partnerRepo: partnerRepo}
}

// --- Validation helpers ---

var validPaymentTermTypes = map[string]bool{
	model.PaymentTermFromInvoice:  true,
	model.PaymentTermFromDelivery: true,
}

func validatePartnerFields(rating, termDays int, termType, email string) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	if termDays < 0 || termDays > 120 {
		return fmt.Errorf("termenPlataZile must be between 0 and 120")
	}
	if termType != "" && !validPaymentTermTypes[termType] {
		return fmt.Errorf("termenPlataTip must be one of: DE_LA_FACTURARE, DE_LA_LIVRARE")
	}
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return fmt.Errorf("invalid email format")
		}
	}
	return nil
}

// --- CRUD ---

func (s *partnerService) CreatePartner(ctx context.Context, req CreatePartnerRequest) (PartnerResponse, error) {
	if req.Rating == 0 {
		req.Rating = 3
	}
	if req.TermenPlataZile == 0 {
		req.TermenPlataZile = 30
	}
	if err := validatePartnerFields(req.Rating, req.TermenPlataZile, req.TermenPlataTip, req.ContactEmail); err != nil {
		return PartnerResponse{}, err
	}

	termType := req.TermenPlataTip
	if termType == "" {
		termType = model.PaymentTermFromInvoice
	}
	currency := req.MonedaPreferata
	if currency == "" {
		currency = "EUR"
	}

	partner := &model.Partner{
		NumeFirma:       req.NumeFirma,
		CUI:             req.CUI,
		ContactPersoana: req.ContactPersoana,
		ContactTelefon:  req.ContactTelefon,
		ContactEmail:    req.ContactEmail,
		TermenPlataZile: req.TermenPlataZile,
		TermenPlataTip:  termType,
		MonedaPreferata: currency,
		BursaSursa:      req.BursaSursa,
		Rating:          req.Rating,
		Status:          model.PartnerStatusActive,
	}

	if err := s.partnerRepo.Create(ctx, partner); err != nil {
		return PartnerResponse{}, fmt.Errorf("failed to create partner: %w", err)
	}
	return toPartnerResponse(*partner), nil
}

func (s *partnerService) UpdatePartner(ctx context.Context, id string, req UpdatePartnerRequest) (PartnerResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return PartnerResponse{}, fmt.Errorf("invalid partner ID")
	}

	partner, err := s.partnerRepo.FindByID(ctx, uid)
	if err != nil {
		return PartnerResponse{}, fmt.Errorf("partner not found: %w", err)
	}

	if req.NumeFirma != nil {
		if *req.NumeFirma == "" {
			return PartnerResponse{}, fmt.Errorf("numeFirma cannot be empty")
		}
		partner.NumeFirma = *req.NumeFirma
	}
	if req.CUI != nil {
		partner.CUI = *req.CUI
	}
	if req.ContactPersoana != nil {
		partner.ContactPersoana = *req.ContactPersoana
	}
	if req.ContactTelefon != nil {
		partner.ContactTelefon = *req.ContactTelefon
	}
	if req.ContactEmail != nil {
		if *req.ContactEmail != "" {
			if _, err := mail.ParseAddress(*req.ContactEmail); err != nil {
				return PartnerResponse{}, fmt.Errorf("invalid email format")
			}
		}
		partner.ContactEmail = *req.ContactEmail
	}
	if req.TermenPlataZile != nil {
		partner.TermenPlataZile = *req.TermenPlataZile
	}
	if req.TermenPlataTip != nil {
		partner.TermenPlataTip = *req.TermenPlataTip
	}
	if req.MonedaPreferata != nil {
		partner.MonedaPreferata = *req.MonedaPreferata
	}
	if req.BursaSursa != nil {
		partner.BursaSursa = *req.BursaSursa
	}
	if req.Rating != nil {
		partner.Rating = *req.Rating
	}
	if req.Status != nil {
		status := model.PartnerStatus(*req.Status)
		if status != model.PartnerStatusActive && status != model.PartnerStatusInactive {
			return PartnerResponse{}, fmt.Errorf("status must be ACTIV or INACTIV")
		}
		partner.Status = status
	}

	if err := validatePartnerFields(partner.Rating, partner.TermenPlataZile, partner.TermenPlataTip, ""); err != nil {
		return PartnerResponse{}, err
	}

	partner.Contracts = nil
	if err := s.partnerRepo.Update(ctx, partner); err != nil {
		return PartnerResponse{}, fmt.Errorf("failed to update partner: %w", err)
	}

	updated, err := s.partnerRepo.FindByID(ctx, uid)
	if err != nil {
		return toPartnerResponse(*partner), nil
	}
	return toPartnerResponse(*updated), nil
}

func (s *partnerService) DeletePartner(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid partner ID")
	}
	return s.partnerRepo.Delete(ctx, uid)
}

func (s *partnerService) GetPartner(ctx context.Context, id string) (PartnerResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return PartnerResponse{}, fmt.Errorf("invalid partner ID")
	}
	partner, err := s.partnerRepo.FindByID(ctx, uid)
	if err != nil {
		return PartnerResponse{}, fmt.Errorf("partner not found: %w", err)
	}
	return toPartnerResponse(*partner), nil
}

func (s *partnerService) ListPartners(ctx context.Context, status, bursa, search string, page, limit int) ([]PartnerResponse, int64, error) {
	partners, total, err := s.partnerRepo.List(ctx, model.PartnerStatus(status), bursa, search, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch partners: %w", err)
	}
	res := make([]PartnerResponse, 0, len(partners))
	for _, p := range partners {
		res = append(res, toPartnerResponse(p))
	}
	return res, total, nil
}

// --- Response mappers ---

func toPartnerResponse(p model.Partner) PartnerResponse {
	return PartnerResponse{
		ID:              p.ID.String(),
		NumeFirma:       p.NumeFirma,
		CUI:             p.CUI,
		ContactPersoana: p.ContactPersoana,
		ContactTelefon:  p.ContactTelefon,
		ContactEmail:    p.ContactEmail,
		TermenPlataZile: p.TermenPlataZile,
		TermenPlataTip:  p.TermenPlataTip,
		MonedaPreferata: p.MonedaPreferata,
		BursaSursa:      p.BursaSursa,
		Rating:          p.Rating,
		Status:          p.Status,
		Contracte:       p.Contracts,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
