package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/akmanlar/rentroll/internal/domain"
)

type invoiceRepository struct {
	db *sqlx.DB
}

func NewInvoiceRepository(db *sqlx.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

const invoiceColumns = `id, company_id, type, period, file_name, file_url, file_size, uploaded_at`

func (r *invoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	query := `
		INSERT INTO invoices (id, company_id, type, period, file_name, file_url, file_size, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		invoice.ID,
		invoice.CompanyID,
		invoice.Type,
		invoice.Period,
		invoice.FileName,
		invoice.FileURL,
		invoice.FileSize,
		invoice.UploadedAt,
	)

	return err
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`

	var invoice domain.Invoice
	err := r.db.GetContext(ctx, &invoice, query, id)
	if err != nil {
		return nil, err
	}

	return &invoice, nil
}

func (r *invoiceRepository) List(ctx context.Context, filter domain.InvoiceFilter) ([]*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE 1=1`
	args := make([]interface{}, 0, 2)

	if filter.CompanyID != nil {
		args = append(args, *filter.CompanyID)
		query += ` AND company_id = $1`
	}
	if filter.Period != "" {
		args = append(args, filter.Period)
		if len(args) == 1 {
			query += ` AND period = $1`
		} else {
			query += ` AND period = $2`
		}
	}

	query += ` ORDER BY uploaded_at DESC`

	var invoices []*domain.Invoice
	err := r.db.SelectContext(ctx, &invoices, query, args...)
	if err != nil {
		return nil, err
	}

	return invoices, nil
}
