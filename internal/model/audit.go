package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateTrip    = "CREATE_CURSA"
	ActionUpdateTrip    = "UPDATE_CURSA"
	ActionDeleteTrip    = "DELETE_CURSA"
	ActionCreateDriver  = "CREATE_SOFER"
	ActionUpdateDriver  = "UPDATE_SOFER"
	ActionDeleteDriver  = "DELETE_SOFER"
	ActionCreateVehicle = "CREATE_VEHICUL"
	ActionUpdateVehicle = "UPDATE_VEHICUL"
	ActionDeleteVehicle = "DELETE_VEHICUL"
	ActionCreatePartner = "CREATE_PARTENER"
	ActionUpdatePartner = "UPDATE_PARTENER"
	ActionDeletePartner = "DELETE_PARTENER"
	ActionCreateInvoice = "CREATE_FACTURA"
	ActionUpdateInvoice = "UPDATE_FACTURA"
	ActionDeleteInvoice = "DELETE_FACTURA"
	ActionRestoreBackup = "RESTORE_BACKUP"
)

// AuditLog tracks Who, What, and When for critical system changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // Human readable name
	Details    string     `gorm:"type:jsonb" json:"details"`                      // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
