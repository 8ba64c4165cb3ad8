package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/akmanlar/rentroll/internal/domain"
)

// CompanyRepository defines the interface for company data operations
type CompanyRepository interface {
	// Create creates a new company
	Create(ctx context.Context, company *domain.Company) error

	// GetByID retrieves a company by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error)

	// List retrieves companies ordered by name, optionally only active ones
	List(ctx context.Context, activeOnly bool) ([]*domain.Company, error)

	// Count counts companies, optionally only active ones
	Count(ctx context.Context, activeOnly bool) (int, error)

	// Update updates a company's editable fields
	Update(ctx context.Context, company *domain.Company) error

	// Deactivate sets is_active to false
	Deactivate(ctx context.Context, id uuid.UUID, updatedAt time.Time) error

	// Delete hard-deletes a company; payments and invoices cascade
	Delete(ctx context.Context, id uuid.UUID) error
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	// Create creates a new payment record
	Create(ctx context.Context, payment *domain.Payment) error

	// GetByID retrieves a payment by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error)

	// List retrieves payments matching the filter, newest due date first
	List(ctx context.Context, filter domain.PaymentFilter) ([]*domain.Payment, error)

	// Settle applies the one-way transition to PAID. The update is
	// conditional on the row not already being PAID, so concurrent
	// settlement attempts cannot double-apply. Returns rows affected.
	Settle(ctx context.Context, id uuid.UUID, paidDate time.Time, receiptURL *string) (int64, error)

	// MarkOverdue flips stored PENDING rows past their due date to OVERDUE.
	// Returns the number of rows updated.
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)

	// ExistsForPeriod reports whether a payment already exists for the
	// company+type+period combination
	ExistsForPeriod(ctx context.Context, companyID uuid.UUID, paymentType domain.PaymentType, period string) (bool, error)

	// RecentPaid retrieves the most recently settled payments
	RecentPaid(ctx context.Context, limit int) ([]*domain.Payment, error)
}

// InvoiceRepository defines the interface for invoice metadata operations
type InvoiceRepository interface {
	// Create creates a new invoice record
	Create(ctx context.Context, invoice *domain.Invoice) error

	// GetByID retrieves an invoice by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)

	// List retrieves invoices matching the filter, newest upload first
	List(ctx context.Context, filter domain.InvoiceFilter) ([]*domain.Invoice, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *domain.User) error

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// ListByCompany retrieves the account projections linked to a company
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*domain.UserAccount, error)
}
