package repository

import (
	"context"
	"errors"
	"fmt"

	"transio/internal/model"

	"gorm.io/gorm"
)

// BackupRepository reads and replaces the whole domain dataset. Restore is
// expected to run inside a TransactionManager transaction so a half-applied
// snapshot never becomes visible.
type BackupRepository interface {
	Snapshot(ctx context.Context) (*model.Backup, error)
	Restore(ctx context.Context, backup *model.Backup) error
}

type backupRepository struct {
	db *gorm.DB
}

func NewBackupRepository(db *gorm.DB) BackupRepository {
	return &backupRepository{db: db}
}

func (r *backupRepository) Snapshot(ctx context.Context) (*model.Backup, error) {
	db := GetDB(ctx, r.db)
	backup := &model.Backup{Version: model.BackupVersion}

	var company model.Company
	if err := db.First(&company).Error; err == nil {
		backup.Firma = &company
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("snapshot company: %w", err)
	}

	if err := db.Find(&backup.Parteneri).Error; err != nil {
		return nil, fmt.Errorf("snapshot partners: %w", err)
	}
	// Documents are dumped once in Documente; no per-owner preload here or
	// restore would insert them twice.
	if err := db.Preload("SalaryPayments").Find(&backup.Soferi).Error; err != nil {
		return nil, fmt.Errorf("snapshot drivers: %w", err)
	}
	if err := db.Preload("Repairs").Find(&backup.Vehicule).Error; err != nil {
		return nil, fmt.Errorf("snapshot vehicles: %w", err)
	}
	if err := db.Preload("Points").Find(&backup.Curse).Error; err != nil {
		return nil, fmt.Errorf("snapshot trips: %w", err)
	}
	if err := db.Find(&backup.Facturi).Error; err != nil {
		return nil, fmt.Errorf("snapshot invoices: %w", err)
	}
	if err := db.Find(&backup.Documente).Error; err != nil {
		return nil, fmt.Errorf("snapshot documents: %w", err)
	}
	return backup, nil
}

// Restore wipes the domain tables and reinserts the snapshot. Deletion runs
// child-first so foreign keys never dangle mid-restore.
func (r *backupRepository) Restore(ctx context.Context, backup *model.Backup) error {
	db := GetDB(ctx, r.db)

	wipeOrder := []interface{}{
		&model.Document{},
		&model.Invoice{},
		&model.TripPoint{},
		&model.Trip{},
		&model.Repair{},
		&model.SalaryPayment{},
		&model.Driver{},
		&model.Vehicle{},
		&model.Partner{},
		&model.Company{},
	}
	for _, target := range wipeOrder {
		if err := db.Unscoped().Where("1 = 1").Delete(target).Error; err != nil {
			return fmt.Errorf("wipe %T: %w", target, err)
		}
	}

	if backup.Firma != nil {
		if err := db.Create(backup.Firma).Error; err != nil {
			return fmt.Errorf("restore company: %w", err)
		}
	}
	if len(backup.Parteneri) > 0 {
		if err := db.Create(&backup.Parteneri).Error; err != nil {
			return fmt.Errorf("restore partners: %w", err)
		}
	}
	if len(backup.Soferi) > 0 {
		if err := db.Create(&backup.Soferi).Error; err != nil {
			return fmt.Errorf("restore drivers: %w", err)
		}
	}
	if len(backup.Vehicule) > 0 {
		if err := db.Create(&backup.Vehicule).Error; err != nil {
			return fmt.Errorf("restore vehicles: %w", err)
		}
	}
	if len(backup.Curse) > 0 {
		if err := db.Create(&backup.Curse).Error; err != nil {
			return fmt.Errorf("restore trips: %w", err)
		}
	}
	if len(backup.Facturi) > 0 {
		if err := db.Create(&backup.Facturi).Error; err != nil {
			return fmt.Errorf("restore invoices: %w", err)
		}
	}
	if len(backup.Documente) > 0 {
		if err := db.Create(&backup.Documente).Error; err != nil {
			return fmt.Errorf("restore documents: %w", err)
		}
	}
	return nil
}
