package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VehicleStatus enum constants
type VehicleStatus string

const (
	VehicleStatusActive    VehicleStatus = "ACTIV"
	VehicleStatusInService VehicleStatus = "IN_SERVICE"
	VehicleStatusInactive  VehicleStatus = "INACTIV"
)

// Vehicle represents a vehicul: registration, cargo capacity, service
// tracking and the insurance/roadworthiness expiries that feed alerts.
type Vehicle struct {
	ID                 uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	NumarInmatriculare string          `gorm:"type:varchar(20);uniqueIndex;not null" json:"numarInmatriculare"`
	Marca              string          `gorm:"type:varchar(100)" json:"marca"`
	Model              string          `gorm:"type:varchar(100)" json:"model"`
	An                 int             `gorm:"not null;default:0" json:"an"`
	Capacitate         float64         `gorm:"not null;default:0" json:"capacitate"`
	UnitateCapacitate  string          `gorm:"type:varchar(20);default:'t'" json:"unitateCapacitate"`
	LungimeMarfa       float64         `gorm:"default:0" json:"lungimeMarfa"` // cargo space, meters
	LatimeMarfa        float64         `gorm:"default:0" json:"latimeMarfa"`
	InaltimeMarfa      float64         `gorm:"default:0" json:"inaltimeMarfa"`
	KmActuali          int             `gorm:"not null;default:0" json:"kmActuali"`
	UltimulServiceData *time.Time      `json:"ultimulServiceData"`
	UltimulServiceKm   int             `gorm:"default:0" json:"ultimulServiceKm"`
	IntervalServiceKm  int             `gorm:"default:0" json:"intervalServiceKm"`
	IntervalServiceLuni int            `gorm:"default:0" json:"intervalServiceLuni"`
	ExpirareRCA        *time.Time      `json:"expirareRCA"` // insurance expiry
	ExpirareITP        *time.Time      `json:"expirareITP"` // roadworthiness expiry
	Status             VehicleStatus   `gorm:"type:varchar(20);not null;default:'ACTIV';index" json:"status"`
	Repairs            []Repair        `gorm:"foreignKey:VehicleID;constraint:OnDelete:CASCADE" json:"reparatii"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	DeletedAt          gorm.DeletedAt  `gorm:"index" json:"-"`
}

// Repair is one entry in a vehicle's repair history.
type Repair struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VehicleID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"vehiculId"`
	Descriere   string          `gorm:"type:text;not null" json:"descriere"`
	Cost        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"cost"`
	Data        time.Time       `gorm:"not null" json:"data"`
	Furnizor    string          `gorm:"type:varchar(255)" json:"furnizor"`
	KmLaReparatie int           `gorm:"default:0" json:"kmLaReparatie"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ValidVehicleStatuses maps every accepted status value for input validation.
var ValidVehicleStatuses = map[VehicleStatus]bool{
	VehicleStatusActive:    true,
	VehicleStatusInService: true,
	VehicleStatusInactive:  true,
}
