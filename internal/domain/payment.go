package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus is the lifecycle status of a payment obligation.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusOverdue PaymentStatus = "OVERDUE"

	// PaymentStatusPartial is part of the wire vocabulary but no operation
	// produces it: only full settlement is supported.
	PaymentStatusPartial PaymentStatus = "PARTIAL"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusOverdue, PaymentStatusPartial:
		return true
	}
	return false
}

// PaymentType classifies what a payment obligation is for.
type PaymentType string

const (
	PaymentTypeRent        PaymentType = "RENT"
	PaymentTypeElectricity PaymentType = "ELECTRICITY"
	PaymentTypeWater       PaymentType = "WATER"
	PaymentTypeDues        PaymentType = "DUES"
	PaymentTypeOther       PaymentType = "OTHER"
)

func (t PaymentType) Valid() bool {
	switch t {
	case PaymentTypeRent, PaymentTypeElectricity, PaymentTypeWater, PaymentTypeDues, PaymentTypeOther:
		return true
	}
	return false
}

// Label returns the display name for a payment type. The mapping is total:
// unknown values fall back to the raw string.
func (t PaymentType) Label() string {
	switch t {
	case PaymentTypeRent:
		return "Rent"
	case PaymentTypeElectricity:
		return "Electricity"
	case PaymentTypeWater:
		return "Water"
	case PaymentTypeDues:
		return "Dues"
	case PaymentTypeOther:
		return "Other"
	}
	return string(t)
}

// Payment is one obligation instance for one company, one period, one type.
// PaidDate and PaidAmount are set exactly when Status is PAID.
type Payment struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	CompanyID   uuid.UUID        `json:"company_id" db:"company_id"`
	Type        PaymentType      `json:"type" db:"type"`
	Amount      decimal.Decimal  `json:"amount" db:"amount"`
	DueDate     time.Time        `json:"due_date" db:"due_date"`
	PaidDate    *time.Time       `json:"paid_date" db:"paid_date"`
	PaidAmount  *decimal.Decimal `json:"paid_amount" db:"paid_amount"`
	Status      PaymentStatus    `json:"status" db:"status"`
	Period      string           `json:"period" db:"period"`
	Description *string          `json:"description" db:"description"`
	ReceiptURL  *string          `json:"receipt_url" db:"receipt_url"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at" db:"updated_at"`
}

// EffectiveStatus derives the payment's current status against a reference
// instant. PAID is terminal and never re-derived. A still-open payment is
// OVERDUE once the reference calendar date is strictly past the due date;
// the due date itself is the last on-time day. Pure and idempotent: the
// caller decides whether to persist the result.
func (p *Payment) EffectiveStatus(now time.Time) PaymentStatus {
	if p.Status == PaymentStatusPaid {
		return PaymentStatusPaid
	}

	due := truncateToDay(p.DueDate)
	today := truncateToDay(now)

	if due.Before(today) {
		return PaymentStatusOverdue
	}
	return PaymentStatusPending
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DTOs for requests and responses

type CreatePaymentRequest struct {
	CompanyID   string          `json:"company_id" validate:"required,uuid4"`
	Type        PaymentType     `json:"type" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	DueDate     time.Time       `json:"due_date" validate:"required"`
	Period      string          `json:"period" validate:"required"`
	Description *string         `json:"description"`
}

// SettlePaymentRequest carries optional settlement metadata. CardTail is the
// masked last digits of the instrument used, never the full number.
type SettlePaymentRequest struct {
	ReceiptURL *string `json:"receipt_url"`
	CardTail   string  `json:"card_tail" validate:"omitempty,len=4,numeric"`
}

// PaymentFilter narrows payment listings. Zero values mean "no filter".
type PaymentFilter struct {
	CompanyID *uuid.UUID
	Status    PaymentStatus
	Type      PaymentType
}
