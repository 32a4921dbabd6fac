package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PartnerStatus enum constants
type PartnerStatus string

const (
	PartnerStatusActive   PartnerStatus = "ACTIV"
	PartnerStatusInactive PartnerStatus = "INACTIV"
)

// PaymentTermType enum constants
const (
	PaymentTermFromInvoice  = "DE_LA_FACTURARE"
	PaymentTermFromDelivery = "DE_LA_LIVRARE"
)

// Partner represents a partener: a customer sourced from a freight exchange
// or a direct relationship, with its payment terms and rating.
type Partner struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	NumeFirma       string         `gorm:"type:varchar(255);not null" json:"numeFirma"`
	CUI             string         `gorm:"type:varchar(50)" json:"cui"`
	ContactPersoana string         `gorm:"type:varchar(255)" json:"contactPersoana"`
	ContactTelefon  string         `gorm:"type:varchar(50)" json:"contactTelefon"`
	ContactEmail    string         `gorm:"type:varchar(255)" json:"contactEmail"`
	TermenPlataZile int            `gorm:"not null;default:30" json:"termenPlataZile"`
	TermenPlataTip  string         `gorm:"type:varchar(30);default:'DE_LA_FACTURARE'" json:"termenPlataTip"`
	MonedaPreferata string         `gorm:"type:varchar(10);default:'EUR'" json:"monedaPreferata"`
	BursaSursa      string         `gorm:"type:varchar(100)" json:"bursaSursa"`
	Rating          int            `gorm:"not null;default:3" json:"rating"` // 1..5
	Status          PartnerStatus  `gorm:"type:varchar(20);not null;default:'ACTIV';index" json:"status"`
	Contracts       []Document     `gorm:"polymorphic:Owner;polymorphicValue:PARTNER" json:"contracte"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
