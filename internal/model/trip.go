package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TripStatus is the closed set of lifecycle states for a trip (cursa).
type TripStatus string

const (
	TripStatusOffer      TripStatus = "OFERTA"
	TripStatusAccepted   TripStatus = "ACCEPTATA"
	TripStatusInProgress TripStatus = "IN_DESFASURARE"
	TripStatusFinished   TripStatus = "FINALIZATA"
	TripStatusPaid       TripStatus = "PLATITA"
	TripStatusCancelled  TripStatus = "ANULATA"
)

// TripPoint kinds
const (
	PointKindLoad   = "INCARCARE"
	PointKindUnload = "DESCARCARE"
)

// Trip bounds on repeatable point sections
const (
	MinTripPoints = 1
	MaxTripPoints = 5
)

// Trip represents a single transport job (cursa) with its load/unload points,
// assigned resources and negotiated cost. VenitNet and PretPerKm are derived
// at read time, never stored.
type Trip struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BursaSursa    string          `gorm:"type:varchar(100)" json:"bursaSursa"` // freight exchange, e.g. Timocom
	Status        TripStatus      `gorm:"type:varchar(20);not null;default:'OFERTA';index" json:"status"`
	Points        []TripPoint     `gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE" json:"-"`
	DriverID      *uuid.UUID      `gorm:"type:uuid;index" json:"soferId"`
	Driver        *Driver         `gorm:"foreignKey:DriverID" json:"sofer,omitempty"`
	VehicleID     *uuid.UUID      `gorm:"type:uuid;index" json:"vehiculId"`
	Vehicle       *Vehicle        `gorm:"foreignKey:VehicleID" json:"vehicul,omitempty"`
	PartnerID     *uuid.UUID      `gorm:"type:uuid;index" json:"partenerId"`
	Partner       *Partner        `gorm:"foreignKey:PartnerID" json:"partener,omitempty"`
	KmEstimati    float64         `gorm:"not null;default:0" json:"kmEstimati"`
	KmReali       float64         `gorm:"not null;default:0" json:"kmReali"`
	CostNegociat  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"costNegociat"`
	ComisionBursa decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"comisionBursa"`
	Documents     []Document      `gorm:"polymorphic:Owner;polymorphicValue:TRIP" json:"documente"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TripPoint is one load or unload stop. Cargo fields are only meaningful on
// load points; unload points carry the same shape minus cargo data.
type TripPoint struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TripID    uuid.UUID `gorm:"type:uuid;not null;index" json:"tripId"`
	Kind      string    `gorm:"type:varchar(20);not null" json:"kind"` // INCARCARE, DESCARCARE
	Position  int       `gorm:"not null;default:0" json:"position"`
	Firma     string    `gorm:"type:varchar(255);not null" json:"firma"`
	Adresa    string    `gorm:"type:text;not null" json:"adresa"`
	Tara      string    `gorm:"type:varchar(100)" json:"tara"`
	GPS       string    `gorm:"type:varchar(100)" json:"gps"`
	DataOra   time.Time `gorm:"not null" json:"dataOra"`
	Marfa     string    `gorm:"type:text" json:"marfa,omitempty"`      // cargo description, load only
	GreutateKg float64  `gorm:"default:0" json:"greutateKg,omitempty"` // load only
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VenitNet is the net revenue of the trip: negotiated cost minus exchange commission.
func (t *Trip) VenitNet() decimal.Decimal {
	return t.CostNegociat.Sub(t.ComisionBursa)
}

// PretPerKm is the negotiated cost per estimated km; zero when no estimate exists.
func (t *Trip) PretPerKm() decimal.Decimal {
	if t.KmEstimati <= 0 {
		return decimal.Zero
	}
	return t.CostNegociat.Div(decimal.NewFromFloat(t.KmEstimati))
}

// IsActive reports whether the trip counts as in-flight on the dashboard.
func (s TripStatus) IsActive() bool {
	return s == TripStatusInProgress || s == TripStatusAccepted
}

// IsFinished reports whether the trip counts as completed on the dashboard.
func (s TripStatus) IsFinished() bool {
	return s == TripStatusFinished || s == TripStatusPaid
}

// CountsTowardTarget reports whether the trip's revenue counts toward a
// vehicle's monthly target.
func (s TripStatus) CountsTowardTarget() bool {
	switch s {
	case TripStatusAccepted, TripStatusInProgress, TripStatusFinished, TripStatusPaid:
		return true
	case TripStatusOffer, TripStatusCancelled:
		return false
	}
	return false
}

// ValidTripStatuses maps every accepted status value for input validation.
var ValidTripStatuses = map[TripStatus]bool{
	TripStatusOffer:      true,
	TripStatusAccepted:   true,
	TripStatusInProgress: true,
	TripStatusFinished:   true,
	TripStatusPaid:       true,
	TripStatusCancelled:  true,
}

// tripTransitions encodes the allowed forward moves of the trip lifecycle.
// Cancelled is reachable from every non-terminal state.
var tripTransitions = map[TripStatus][]TripStatus{
	TripStatusOffer:      {TripStatusAccepted, TripStatusCancelled},
	TripStatusAccepted:   {TripStatusInProgress, TripStatusCancelled},
	TripStatusInProgress: {TripStatusFinished, TripStatusCancelled},
	TripStatusFinished:   {TripStatusPaid, TripStatusCancelled},
	TripStatusPaid:       {},
	TripStatusCancelled:  {},
}

// CanTransitionTo reports whether moving from s to next is a legal lifecycle step.
func (s TripStatus) CanTransitionTo(next TripStatus) bool {
	for _, allowed := range tripTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
