package model

import (
	"time"

	"github.com/google/uuid"
)

// Company is the single-row firma profile edited under settings.
type Company struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	NumeFirma   string    `gorm:"type:varchar(255);not null" json:"numeFirma"`
	CUI         string    `gorm:"type:varchar(50)" json:"cui"`
	RegCom      string    `gorm:"type:varchar(50)" json:"regCom"`
	Adresa      string    `gorm:"type:text" json:"adresa"`
	Telefon     string    `gorm:"type:varchar(50)" json:"telefon"`
	Email       string    `gorm:"type:varchar(255)" json:"email"`
	ContBancar  string    `gorm:"type:varchar(100)" json:"contBancar"`
	Banca       string    `gorm:"type:varchar(255)" json:"banca"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
