package service

import (
	"context"
	"fmt"
	"time"

	"transio/internal/model"
	"transio/internal/repository"

	"github.com/google/uuid"
)

type UpdateCompanyRequest struct {
	NumeFirma  string `json:"numeFirma" binding:"required"`
	CUI        string `json:"cui"`
	RegCom     string `json:"regCom"`
	Adresa     string `json:"adresa"`
	Telefon    string `json:"telefon"`
	Email      string `json:"email"`
	ContBancar string `json:"contBancar"`
	Banca      string `json:"banca"`
}

// SettingsService covers the firma profile and the backup/restore cycle.
type SettingsService interface {
	GetCompany(ctx context.Context) (*model.Company, error)
	UpdateCompany(ctx context.Context, req UpdateCompanyRequest) (*model.Company, error)
	Backup(ctx context.Context) (*model.Backup, error)
	Restore(ctx context.Context, actorID string, backup *model.Backup) error
}

type settingsService struct {
	companyRepo repository.CompanyRepository
	backupRepo  repository.BackupRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
	now         func() time.Time
}

func NewSettingsService(
	companyRepo repository.CompanyRepository,
	backupRepo repository.BackupRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) SettingsService {
	return &settingsService{
		companyRepo: companyRepo,
		backupRepo:  backupRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
		now:         time.Now,
	}
}

func (s *settingsService) GetCompany(ctx context.Context) (*model.Company, error) {
	return s.companyRepo.Get(ctx)
}

func (s *settingsService) UpdateCompany(ctx context.Context, req UpdateCompanyRequest) (*model.Company, error) {
	company, err := s.companyRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load company profile: %w", err)
	}

	company.NumeFirma = req.NumeFirma
	company.CUI = req.CUI
	company.RegCom = req.RegCom
	company.Adresa = req.Adresa
	company.Telefon = req.Telefon
	company.Email = req.Email
	company.ContBancar = req.ContBancar
	company.Banca = req.Banca

	if err := s.companyRepo.Save(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to save company profile: %w", err)
	}
	return company, nil
}

func (s *settingsService) Backup(ctx context.Context) (*model.Backup, error) {
	backup, err := s.backupRepo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build backup: %w", err)
	}
	backup.ExportedAt = s.now()
	return backup, nil
}

// Restore replaces the whole domain dataset with the uploaded snapshot in a
// single transaction.
func (s *settingsService) Restore(ctx context.Context, actorID string, backup *model.Backup) error {
	if backup == nil {
		return fmt.Errorf("empty backup payload")
	}
	if backup.Version != model.BackupVersion {
		return fmt.Errorf("unsupported backup version %d", backup.Version)
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		return s.backupRepo.Restore(txCtx, backup)
	})
	if err != nil {
		return fmt.Errorf("failed to restore backup: %w", err)
	}

	entry := &model.AuditLog{
		Action:     model.ActionRestoreBackup,
		EntityID:   "backup",
		EntityName: backup.ExportedAt.Format("2006-01-02"),
	}
	if uid, err := uuid.Parse(actorID); err == nil {
		entry.UserID = &uid
	}
	_ = s.auditRepo.Log(ctx, entry)
	return nil
}
