package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyVehicleTarget is the fixed revenue target per vehicle per calendar month.
var MonthlyVehicleTarget = decimal.NewFromInt(15000)

// Alert severities
const (
	AlertSeverityError   = "error"
	AlertSeverityWarning = "warning"
)

// Alert kinds, used as the prefix of the stable alert id "{kind}-{entityId}".
const (
	AlertKindLicense       = "permis"
	AlertKindCertificate   = "atestat"
	AlertKindInsurance     = "rca"
	AlertKindRoadworthiness = "itp"
	AlertKindInvoiceDue    = "factura"
)

// DashboardResponse is the single view-model the dashboard screen renders:
// counters, per-entity breakdowns and expiry alerts.
type DashboardResponse struct {
	VenitLunar     decimal.Decimal   `json:"venitLunar"`
	KmTotali       float64           `json:"kmTotali"`
	CurseActive    int               `json:"curseActive"`
	CurseFinalizate int              `json:"curseFinalizate"`
	CurseTotal     int               `json:"curseTotal"`
	Vehicule       []VehiclePacing   `json:"vehicule"`
	Soferi         []DriverPresence  `json:"soferi"`
	Alerte         []Alert           `json:"alerte"`
	GeneratedAt    time.Time         `json:"generatedAt"`
}

// VehiclePacing tracks one vehicle's revenue against the monthly target.
type VehiclePacing struct {
	VehicleID          string          `json:"vehiculId"`
	NumarInmatriculare string          `json:"numarInmatriculare"`
	VenitLunar         decimal.Decimal `json:"venitLunar"`
	Target             decimal.Decimal `json:"target"`
	TargetProRata      decimal.Decimal `json:"targetProRata"`
	PercentRealized    int             `json:"percentRealizat"`
	InGrafic           bool            `json:"inGrafic"`
}

// DriverPresence tracks how long a driver has been in the current location.
type DriverPresence struct {
	DriverID       string         `json:"soferId"`
	Nume           string         `json:"nume"`
	Locatie        DriverLocation `json:"locatie"`
	DinData        time.Time      `json:"dinData"`
	Zile           int            `json:"zile"`
	Saptamani      int            `json:"saptamani"`
	Afisare        string         `json:"afisare"` // e.g. "16 zile (2 săptămâni)"
}

// Alert is an expiry or due-date warning surfaced on the dashboard.
type Alert struct {
	ID         string    `json:"id"` // "{kind}-{entityId}", stable across reloads
	Kind       string    `json:"kind"`
	Severity   string    `json:"severity"`
	EntityID   string    `json:"entityId"`
	EntityName string    `json:"entityName"`
	Message    string    `json:"message"`
	Date       time.Time `json:"date"` // the triggering expiry/due date
	ZileRamase int       `json:"zileRamase"`
}

// InvoiceStatistics is the /facturi/statistici rollup.
type InvoiceStatistics struct {
	Total          int             `json:"total"`
	PerStatus      map[string]int  `json:"perStatus"`
	SumaTotala     decimal.Decimal `json:"sumaTotala"`
	SumaNeincasata decimal.Decimal `json:"sumaNeincasata"` // outstanding + overdue
	Restante       int             `json:"restante"`
}
