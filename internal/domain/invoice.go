package domain

import (
	"time"

	"github.com/google/uuid"
)

// Invoice is an uploaded document evidencing a payment period. The file
// itself is opaque: only metadata lives here, the bytes sit in storage.
type Invoice struct {
	ID         uuid.UUID   `json:"id" db:"id"`
	CompanyID  uuid.UUID   `json:"company_id" db:"company_id"`
	Type       PaymentType `json:"type" db:"type"`
	Period     string      `json:"period" db:"period"`
	FileName   string      `json:"file_name" db:"file_name"`
	FileURL    string      `json:"file_url" db:"file_url"`
	FileSize   *int64      `json:"file_size" db:"file_size"`
	UploadedAt time.Time   `json:"uploaded_at" db:"uploaded_at"`
}

// InvoiceFilter narrows invoice listings. Zero values mean "no filter".
type InvoiceFilter struct {
	CompanyID *uuid.UUID
	Period    string
}
