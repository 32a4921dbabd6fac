package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DriverStatus enum constants
type DriverStatus string

const (
	DriverStatusActive   DriverStatus = "ACTIV"
	DriverStatusInactive DriverStatus = "INACTIV"
)

// DriverLocation is the driver's current country bucket used for
// time-abroad tracking on the dashboard.
type DriverLocation string

const (
	LocationRomania DriverLocation = "romania"
	LocationAbroad  DriverLocation = "strain"
)

// Driver represents a sofer: contact data, document expiries, salary terms
// and the border-crossing timestamps that drive days-in-location tracking.
type Driver struct {
	ID               uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Nume             string          `gorm:"type:varchar(255);not null" json:"nume"`
	Telefon          string          `gorm:"type:varchar(50);not null" json:"telefon"`
	Email            string          `gorm:"type:varchar(255)" json:"email"`
	ExpirarePermis   *time.Time      `json:"expirarePermis"`  // driving license expiry
	ExpirareAtestat  *time.Time      `json:"expirareAtestat"` // professional certificate expiry
	SalariuFix       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"salariuFix"`
	SalariuVariabil  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"salariuVariabil"`
	Status           DriverStatus    `gorm:"type:varchar(20);not null;default:'ACTIV';index" json:"status"`
	LocatieCurenta   DriverLocation  `gorm:"type:varchar(20);not null;default:'romania'" json:"locatieCurenta"`
	UltimaIesireDinRO *time.Time     `json:"ultimaIesireDinRO"`
	UltimaIntrareInRO *time.Time     `json:"ultimaIntrareinRO"`
	SalaryPayments   []SalaryPayment `gorm:"foreignKey:DriverID;constraint:OnDelete:CASCADE" json:"platiSalariu"`
	Documents        []Document      `gorm:"polymorphic:Owner;polymorphicValue:DRIVER" json:"documente"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"-"`
}

// SalaryPayment is one entry in a driver's salary payment history.
type SalaryPayment struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DriverID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"soferId"`
	Suma      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"suma"`
	Data      time.Time       `gorm:"not null" json:"data"`
	Nota      string          `gorm:"type:text" json:"nota"`
	CreatedAt time.Time       `json:"created_at"`
}

// Location returns the driver's current location, defaulting to Romania when
// the record predates location tracking.
func (d *Driver) Location() DriverLocation {
	if d.LocatieCurenta == LocationAbroad {
		return LocationAbroad
	}
	return LocationRomania
}

// LocationSince returns the reference timestamp for days-in-location:
// last entry into RO while home, last exit while abroad, record creation
// when neither was recorded.
func (d *Driver) LocationSince() time.Time {
	switch d.Location() {
	case LocationAbroad:
		if d.UltimaIesireDinRO != nil {
			return *d.UltimaIesireDinRO
		}
	case LocationRomania:
		if d.UltimaIntrareInRO != nil {
			return *d.UltimaIntrareInRO
		}
	}
	return d.CreatedAt
}
