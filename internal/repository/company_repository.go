package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/akmanlar/rentroll/internal/domain"
)

type companyRepository struct {
	db *sqlx.DB
}

func NewCompanyRepository(db *sqlx.DB) CompanyRepository {
	return &companyRepository{db: db}
}

const companyColumns = `id, name, floor, unit, contact_name, contact_phone, contact_email,
	rent_amount, rent_due_day, is_active, created_at, updated_at`

func (r *companyRepository) Create(ctx context.Context, company *domain.Company) error {
	query := `
		INSERT INTO companies (id, name, floor, unit, contact_name, contact_phone, contact_email,
			rent_amount, rent_due_day, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.ExecContext(ctx, query,
		company.ID,
		company.Name,
		company.Floor,
		company.Unit,
		company.ContactName,
		company.ContactPhone,
		company.ContactEmail,
		company.RentAmount,
		company.RentDueDay,
		company.IsActive,
		company.CreatedAt,
		company.UpdatedAt,
	)

	return err
}

func (r *companyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`

	var company domain.Company
	err := r.db.GetContext(ctx, &company, query, id)
	if err != nil {
		return nil, err
	}

	return &company, nil
}

func (r *companyRepository) List(ctx context.Context, activeOnly bool) ([]*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies`
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY name`

	var companies []*domain.Company
	err := r.db.SelectContext(ctx, &companies, query)
	if err != nil {
		return nil, err
	}

	return companies, nil
}

func (r *companyRepository) Count(ctx context.Context, activeOnly bool) (int, error) {
	query := `SELECT COUNT(*) FROM companies`
	if activeOnly {
		query += ` WHERE is_active = true`
	}

	var count int
	err := r.db.GetContext(ctx, &count, query)
	return count, err
}

func (r *companyRepository) Update(ctx context.Context, company *domain.Company) error {
	query := `
		UPDATE companies
		SET name = $2, floor = $3, unit = $4, contact_name = $5, contact_phone = $6,
			contact_email = $7, rent_amount = $8, rent_due_day = $9, updated_at = $10
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		company.ID,
		company.Name,
		company.Floor,
		company.Unit,
		company.ContactName,
		company.ContactPhone,
		company.ContactEmail,
		company.RentAmount,
		company.RentDueDay,
		company.UpdatedAt,
	)

	return err
}

func (r *companyRepository) Deactivate(ctx context.Context, id uuid.UUID, updatedAt time.Time) error {
	query := `UPDATE companies SET is_active = false, updated_at = $2 WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id, updatedAt)
	return err
}

func (r *companyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// payments, invoices and tenant users reference companies with
	// ON DELETE CASCADE
	query := `DELETE FROM companies WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
