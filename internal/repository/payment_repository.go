package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/akmanlar/rentroll/internal/domain"
)

type paymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `id, company_id, type, amount, due_date, paid_date, paid_amount,
	status, period, description, receipt_url, created_at, updated_at`

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (id, company_id, type, amount, due_date, paid_date, paid_amount,
			status, period, description, receipt_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.ExecContext(ctx, query,
		payment.ID,
		payment.CompanyID,
		payment.Type,
		payment.Amount,
		payment.DueDate,
		payment.PaidDate,
		payment.PaidAmount,
		payment.Status,
		payment.Period,
		payment.Description,
		payment.ReceiptURL,
		payment.CreatedAt,
		payment.UpdatedAt,
	)

	return err
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	var payment domain.Payment
	err := r.db.GetContext(ctx, &payment, query, id)
	if err != nil {
		return nil, err
	}

	return &payment, nil
}

func (r *paymentRepository) List(ctx context.Context, filter domain.PaymentFilter) ([]*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE 1=1`
	args := make([]interface{}, 0, 3)

	if filter.CompanyID != nil {
		args = append(args, *filter.CompanyID)
		query += ` AND company_id = $` + strconv.Itoa(len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += ` AND type = $` + strconv.Itoa(len(args))
	}

	query += ` ORDER BY due_date DESC, created_at DESC`

	var payments []*domain.Payment
	err := r.db.SelectContext(ctx, &payments, query, args...)
	if err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *paymentRepository) Settle(ctx context.Context, id uuid.UUID, paidDate time.Time, receiptURL *string) (int64, error) {
	// The status guard makes the check-and-write atomic: a concurrent
	// settle on the same row matches zero rows instead of re-applying.
	query := `
		UPDATE payments
		SET status = $2, paid_date = $3, paid_amount = amount,
			receipt_url = COALESCE($4, receipt_url), updated_at = $3
		WHERE id = $1 AND status <> $2
	`

	result, err := r.db.ExecContext(ctx, query,
		id,
		domain.PaymentStatusPaid,
		paidDate,
		receiptURL,
	)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (r *paymentRepository) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	query := `
		UPDATE payments
		SET status = $1, updated_at = $2
		WHERE status = $3 AND due_date < $4
	`

	cutoff := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)

	result, err := r.db.ExecContext(ctx, query,
		domain.PaymentStatusOverdue,
		asOf,
		domain.PaymentStatusPending,
		cutoff,
	)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (r *paymentRepository) ExistsForPeriod(ctx context.Context, companyID uuid.UUID, paymentType domain.PaymentType, period string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM payments WHERE company_id = $1 AND type = $2 AND period = $3)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, companyID, paymentType, period)
	return exists, err
}

func (r *paymentRepository) RecentPaid(ctx context.Context, limit int) ([]*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments
		WHERE status = $1
		ORDER BY paid_date DESC
		LIMIT $2`

	var payments []*domain.Payment
	err := r.db.SelectContext(ctx, &payments, query, domain.PaymentStatusPaid, limit)
	if err != nil {
		return nil, err
	}

	return payments, nil
}
