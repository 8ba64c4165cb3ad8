package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Company represents a tenant organization renting space in the building.
// RentDueDay is capped at 28 so the due day exists in every month.
type Company struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	Name         string          `json:"name" db:"name"`
	Floor        *string         `json:"floor" db:"floor"`
	Unit         *string         `json:"unit" db:"unit"`
	ContactName  *string         `json:"contact_name" db:"contact_name"`
	ContactPhone *string         `json:"contact_phone" db:"contact_phone"`
	ContactEmail *string         `json:"contact_email" db:"contact_email"`
	RentAmount   decimal.Decimal `json:"rent_amount" db:"rent_amount"`
	RentDueDay   int             `json:"rent_due_day" db:"rent_due_day"`
	IsActive     bool            `json:"is_active" db:"is_active"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

// DTOs for requests and responses

type CreateCompanyRequest struct {
	Name         string          `json:"name" validate:"required"`
	Floor        *string         `json:"floor"`
	Unit         *string         `json:"unit"`
	ContactName  *string         `json:"contact_name"`
	ContactPhone *string         `json:"contact_phone"`
	ContactEmail *string         `json:"contact_email" validate:"omitempty,email"`
	RentAmount   decimal.Decimal `json:"rent_amount" validate:"required"`
	RentDueDay   int             `json:"rent_due_day" validate:"required,min=1,max=28"`

	// Optional tenant account created alongside the company.
	UserEmail    string `json:"user_email" validate:"omitempty,email"`
	UserPassword string `json:"user_password" validate:"omitempty,min=6"`
}

type UpdateCompanyRequest struct {
	Name         string          `json:"name" validate:"required"`
	Floor        *string         `json:"floor"`
	Unit         *string         `json:"unit"`
	ContactName  *string         `json:"contact_name"`
	ContactPhone *string         `json:"contact_phone"`
	ContactEmail *string         `json:"contact_email" validate:"omitempty,email"`
	RentAmount   decimal.Decimal `json:"rent_amount" validate:"required"`
	RentDueDay   int             `json:"rent_due_day" validate:"required,min=1,max=28"`
}

type CreateCompanyResponse struct {
	Company *Company     `json:"company"`
	User    *UserAccount `json:"user,omitempty"`
}

// CompanyWithPayments is the listing row used when the caller asks for
// payments inline, so overview cards can show each company's standing
// without a request per company.
type CompanyWithPayments struct {
	*Company
	Payments []*Payment `json:"payments"`
}

// CompanyDetail is the company page payload: the company plus everything
// it owns.
type CompanyDetail struct {
	Company  *Company       `json:"company"`
	Payments []*Payment     `json:"payments"`
	Invoices []*Invoice     `json:"invoices"`
	Users    []*UserAccount `json:"users"`
}
