package model

import (
	"time"

	"github.com/google/uuid"
)

// Document owner kinds (polymorphic association targets)
const (
	OwnerKindTrip    = "TRIP"
	OwnerKindDriver  = "DRIVER"
	OwnerKindPartner = "PARTNER"
	OwnerKindInvoice = "INVOICE"
)

// Document categories: general attachments vs partner contracts. The category
// decides the storage subdirectory.
const (
	DocCategoryDocument = "documents"
	DocCategoryContract = "contracts"
)

// Upload constraints
const (
	MaxUploadBytes = 30 << 20 // 30 MB per file
	MaxUploadBatch = 10
)

// AllowedUploadMIMEs is the closed set of accepted content types:
// PDF, Word, Excel, JPEG, PNG.
var AllowedUploadMIMEs = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"image/jpeg": true,
	"image/png":  true,
}

// Document is an uploaded file attached to a trip, driver, partner or invoice.
// The file itself lives on disk under the configured upload root; this row
// records where and what it is.
type Document struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OwnerID    *uuid.UUID `gorm:"type:uuid;index" json:"ownerId"`
	OwnerType  string     `gorm:"type:varchar(20);index" json:"ownerType"`
	Categorie  string     `gorm:"type:varchar(20);not null;default:'documents'" json:"categorie"`
	NumeFisier string     `gorm:"type:varchar(255);not null" json:"numeFisier"` // original filename
	Path       string     `gorm:"type:text;not null" json:"-"`                  // stored path, never exposed
	MimeType   string     `gorm:"type:varchar(100);not null" json:"mimeType"`
	Marime     int64      `gorm:"not null;default:0" json:"marime"` // bytes
	CreatedAt  time.Time  `json:"created_at"`
}
