package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvoiceStatus is the closed set of lifecycle states for a factura.
type InvoiceStatus string

const (
	InvoiceStatusIssued    InvoiceStatus = "EMISA"
	InvoiceStatusSent      InvoiceStatus = "TRIMISA"
	InvoiceStatusPaid      InvoiceStatus = "PLATITA"
	InvoiceStatusOverdue   InvoiceStatus = "RESTANTA"
	InvoiceStatusCancelled InvoiceStatus = "ANULATA"
)

// Invoice represents a factura linked to a finished trip.
type Invoice struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Numar        string          `gorm:"type:varchar(30);uniqueIndex;not null" json:"numar"`
	TripID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"cursaId"`
	Trip         *Trip           `gorm:"foreignKey:TripID" json:"cursa,omitempty"`
	Suma         decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"suma"`
	Moneda       string          `gorm:"type:varchar(10);not null;default:'EUR'" json:"moneda"`
	DataEmitere  time.Time       `gorm:"not null" json:"dataEmitere"`
	DataScadenta time.Time       `gorm:"not null;index" json:"dataScadenta"`
	Status       InvoiceStatus   `gorm:"type:varchar(20);not null;default:'EMISA';index" json:"status"`
	Documents    []Document      `gorm:"polymorphic:Owner;polymorphicValue:INVOICE" json:"documente"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

// IsOutstanding reports whether the invoice still awaits payment and should
// participate in due-date alerting.
func (s InvoiceStatus) IsOutstanding() bool {
	return s == InvoiceStatusIssued || s == InvoiceStatusSent
}

// IsUnpaid reports whether the invoice counts as partner debt.
func (s InvoiceStatus) IsUnpaid() bool {
	switch s {
	case InvoiceStatusIssued, InvoiceStatusSent, InvoiceStatusOverdue:
		return true
	case InvoiceStatusPaid, InvoiceStatusCancelled:
		return false
	}
	return false
}

// ValidInvoiceStatuses maps every accepted status value for input validation.
var ValidInvoiceStatuses = map[InvoiceStatus]bool{
	InvoiceStatusIssued:    true,
	InvoiceStatusSent:      true,
	InvoiceStatusPaid:      true,
	InvoiceStatusOverdue:   true,
	InvoiceStatusCancelled: true,
}

// invoiceTransitions encodes the allowed status moves. Overdue is reachable
// from any outstanding state; Cancelled from anything unpaid.
var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceStatusIssued:    {InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled},
	InvoiceStatusSent:      {InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled},
	InvoiceStatusOverdue:   {InvoiceStatusPaid, InvoiceStatusCancelled},
	InvoiceStatusPaid:      {},
	InvoiceStatusCancelled: {},
}

// CanTransitionTo reports whether moving from s to next is a legal status step.
func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	for _, allowed := range invoiceTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
