package service

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"transio/internal/model"
	"transio/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type CreateDriverRequest struct {
	Nume            string     `json:"nume" binding:"required"`
	Telefon         string     `json:"telefon" binding:"required"`
	Email           string     `json:"email"`
	ExpirarePermis  *time.Time `json:"expirarePermis"`
	ExpirareAtestat *time.Time `json:"expirareAtestat"`
	SalariuFix      string     `json:"salariuFix"`
	SalariuVariabil string     `json:"salariuVariabil"`
}

type UpdateDriverRequest struct {
	Nume            *string    `json:"nume"`
	Telefon         *string    `json:"telefon"`
	Email           *string    `json:"email"`
	ExpirarePermis  *time.Time `json:"expirarePermis"`
	ExpirareAtestat *time.Time `json:"expirareAtestat"`
	SalariuFix      *string    `json:"salariuFix"`
	SalariuVariabil *string    `json:"salariuVariabil"`
	Status          *string    `json:"status"`
}

type SalaryPaymentRequest struct {
	Suma string    `json:"suma" binding:"required"`
	Data time.Time `json:"data" binding:"required"`
	Nota string    `json:"nota"`
}

type DriverResponse struct {
	ID                string                `json:"id"`
	Nume              string                `json:"nume"`
	Telefon           string                `json:"telefon"`
	Email             string                `json:"email"`
	ExpirarePermis    *time.Time            `json:"expirarePermis"`
	ExpirareAtestat   *time.Time            `json:"expirareAtestat"`
	SalariuFix        string                `json:"salariuFix"`
	SalariuVariabil   string                `json:"salariuVariabil"`
	Status            model.DriverStatus    `json:"status"`
	LocatieCurenta    model.DriverLocation  `json:"locatieCurenta"`
	UltimaIesireDinRO *time.Time            `json:"ultimaIesireDinRO"`
	UltimaIntrareInRO *time.Time            `json:"ultimaIntrareinRO"`
	PlatiSalariu      []model.SalaryPayment `json:"platiSalariu"`
	Documente         []model.Document      `json:"documente"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
}

// --- Interface ---

type DriverService interface {
	CreateDriver(ctx context.Context, req CreateDriverRequest) (DriverResponse, error)
	UpdateDriver(ctx context.Context, id string, req UpdateDriverRequest) (DriverResponse, error)
	DeleteDriver(ctx context.Context, id string) error
	GetDriver(ctx context.Context, id string) (DriverResponse, error)
	ListDrivers(ctx context.Context, status, search string, page, limit int) ([]DriverResponse, int64, error)
	MarkExitRO(ctx context.Context, id string, at time.Time) (DriverResponse, error)
	MarkEntryRO(ctx context.Context, id string, at time.Time) (DriverResponse, error)
	AddSalaryPayment(ctx context.Context, id string, req SalaryPaymentRequest) (DriverResponse, error)
}

type driverService struct {
	driverRepo repository.DriverRepository
}

func NewDriverService(driverRepo repository.DriverRepository) DriverService {
	return &driverService{driverRepo: driverRepo}
}

// --- Implementation ---

func (s *driverService) CreateDriver(ctx context.Context, req CreateDriverRequest) (DriverResponse, error) {
	if req.Email != "" {
		if _, err := mail.ParseAddress(req.Email); err != nil {
			return DriverResponse{}, fmt.Errorf("invalid email format")
		}
	}
	fix, err := parseMoney("salariuFix", req.SalariuFix)
	if err != nil {
		return DriverResponse{}, err
	}
	variabil, err := parseMoney("salariuVariabil", req.SalariuVariabil)
	if err != nil {
		return DriverResponse{}, err
	}

	driver := &model.Driver{
		Nume:            req.Nume,
		Telefon:         req.Telefon,
		Email:           req.Email,
		ExpirarePermis:  req.ExpirarePermis,
		ExpirareAtestat: req.ExpirareAtestat,
		SalariuFix:      fix,
		SalariuVariabil: variabil,
		Status:          model.DriverStatusActive,
		LocatieCurenta:  model.LocationRomania,
	}

	if err := s.driverRepo.Create(ctx, driver); err != nil {
		return DriverResponse{}, fmt.Errorf("failed to create driver: %w", err)
	}
	return toDriverResponse(*driver), nil
}

func (s *driverService) UpdateDriver(ctx context.Context, id string, req UpdateDriverRequest) (DriverResponse, error) {
	driver, err := s.findDriver(ctx, id)
	if err != nil {
		return DriverResponse{}, err
	}

	if req.Nume != nil {
		if *req.Nume == "" {
			return DriverResponse{}, fmt.Errorf("nume cannot be empty")
		}
		driver.Nume = *req.Nume
	}
	if req.Telefon != nil {
		if *req.Telefon == "" {
			return DriverResponse{}, fmt.Errorf("telefon cannot be empty")
		}
		driver.Telefon = *req.Telefon
	}
	if req.Email != nil {
		if *req.Email != "" {
			if _, err := mail.ParseAddress(*req.Email); err != nil {
				return DriverResponse{}, fmt.Errorf("invalid email format")
			}
		}
		driver.Email = *req.Email
	}
	if req.ExpirarePermis != nil {
		driver.ExpirarePermis = req.ExpirarePermis
	}
	if req.ExpirareAtestat != nil {
		driver.ExpirareAtestat = req.ExpirareAtestat
	}
	if req.SalariuFix != nil {
		fix, err := parseMoney("salariuFix", *req.SalariuFix)
		if err != nil {
			return DriverResponse{}, err
		}
		driver.SalariuFix = fix
	}
	if req.SalariuVariabil != nil {
		variabil, err := parseMoney("salariuVariabil", *req.SalariuVariabil)
		if err != nil {
			return DriverResponse{}, err
		}
		driver.SalariuVariabil = variabil
	}
	if req.Status != nil {
		status := model.DriverStatus(*req.Status)
		if status != model.DriverStatusActive && status != model.DriverStatusInactive {
			return DriverResponse{}, fmt.Errorf("status must be ACTIV or INACTIV")
		}
		driver.Status = status
	}

	driver.SalaryPayments = nil
	driver.Documents = nil
	if err := s.driverRepo.Update(ctx, driver); err != nil {
		return DriverResponse{}, fmt.Errorf("failed to update driver: %w", err)
	}

	updated, err := s.driverRepo.FindByID(ctx, driver.ID)
	if err != nil {
		return toDriverResponse(*driver), nil
	}
	return toDriverResponse(*updated), nil
}

func (s *driverService) DeleteDriver(ctx context.Context, id string) error {
	driver, err := s.findDriver(ctx, id)
	if err != nil {
		return err
	}
	return s.driverRepo.Delete(ctx, driver.ID)
}

func (s *driverService) GetDriver(ctx context.Context, id string) (DriverResponse, error) {
	driver, err := s.findDriver(ctx, id)
	if err != nil {
		return DriverResponse{}, err
	}
	return toDriverResponse(*driver), nil
}

func (s *driverService) ListDrivers(ctx context.Context, status, search string, page, limit int) ([]DriverResponse, int64, error) {
	drivers, total, err := s.driverRepo.List(ctx, model.DriverStatus(status), search, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch drivers: %w", err)
	}
	res := make([]DriverResponse, 0, len(drivers))
	for _, d := range drivers {
		res = append(res, toDriverResponse(d))
	}
	return res, total, nil
}

// MarkExitRO records a border crossing out of Romania: the driver becomes
// "strain" and the exit timestamp restarts the days-abroad counter.
func (s *driverService) MarkExitRO(ctx context.Context, id string, at time.Time) (DriverResponse, error) {
	driver, err := s.findDriver(ctx, id)
	if err != nil {
		return DriverResponse{}, err
	}
	if at.IsZero() {
		at = time.Now()
	}
	driver.LocatieCurenta = model.LocationAbroad
	driver.UltimaIesireDinRO = &at
	driver.SalaryPayments = nil
	driver.Documents = nil
	if err := s.driverRepo.Update(ctx, driver); err != nil {
		return DriverResponse{}, fmt.Errorf("failed to mark exit: %w", err)
	}
	return toDriverResponse(*driver), nil
}

// MarkEntryRO records a border crossing back into Romania.
func (s *driverService) MarkEntryRO(ctx context.Context, id string, at time.Time) (DriverResponse, error) {
	driver, err := s.findDriver(ctx, id)
	if err != nil {
		return DriverResponse{}, err
	}
	if at.IsZero() {
		at = time.Now()
	}
	driver.LocatieCurenta = model.LocationRomania
	driver.UltimaIntrareInRO = &at
	driver.SalaryPayments = nil
	driver.Documents = nil
	if err := s.driverRepo.Update(ctx, driver); err != nil {
		return DriverResponse{}, fmt.Errorf("failed to mark entry: %w", err)
	}
	return toDriverResponse(*driver), nil
}

func (s *driverService) AddSalaryPayment(ctx context.Context, id string, req SalaryPaymentRequest) (DriverResponse, error) {
	driver, err := s.findDriver(ctx, id)
	if err != nil {
		return DriverResponse{}, err
	}
	suma, err := decimal.NewFromString(req.Suma)
	if err != nil {
		return DriverResponse{}, fmt.Errorf("invalid suma: %w", err)
	}
	if !suma.IsPositive() {
		return DriverResponse{}, fmt.Errorf("suma must be positive")
	}

	payment := &model.SalaryPayment{
		DriverID: driver.ID,
		Suma:     suma,
		Data:     req.Data,
		Nota:     req.Nota,
	}
	if err := s.driverRepo.AddSalaryPayment(ctx, payment); err != nil {
		return DriverResponse{}, fmt.Errorf("failed to add salary payment: %w", err)
	}

	updated, err := s.driverRepo.FindByID(ctx, driver.ID)
	if err != nil {
		return DriverResponse{}, fmt.Errorf("failed to reload driver: %w", err)
	}
	return toDriverResponse(*updated), nil
}

// --- Helpers ---

func (s *driverService) findDriver(ctx context.Context, id string) (*model.Driver, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid driver ID")
	}
	driver, err := s.driverRepo.FindByID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("driver not found: %w", err)
	}
	return driver, nil
}

func toDriverResponse(d model.Driver) DriverResponse {
	return DriverResponse{
		ID:                d.ID.String(),
		Nume:              d.Nume,
		Telefon:           d.Telefon,
		Email:             d.Email,
		ExpirarePermis:    d.ExpirarePermis,
		ExpirareAtestat:   d.ExpirareAtestat,
		SalariuFix:        d.SalariuFix.StringFixed(2),
		SalariuVariabil:   d.SalariuVariabil.StringFixed(2),
		Status:            d.Status,
		LocatieCurenta:    d.Location(),
		UltimaIesireDinRO: d.UltimaIesireDinRO,
		UltimaIntrareInRO: d.UltimaIntrareInRO,
		PlatiSalariu:      d.SalaryPayments,
		Documente:         d.Documents,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}
