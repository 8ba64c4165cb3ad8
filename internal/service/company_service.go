package service

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/akmanlar/rentroll/internal/domain"
	"github.com/akmanlar/rentroll/internal/repository"
	customError "github.com/akmanlar/rentroll/pkg/errors"
)

type CompanyService struct {
	companyRepo repository.CompanyRepository
	paymentRepo repository.PaymentRepository
	invoiceRepo repository.InvoiceRepository
	userRepo    repository.UserRepository
	redis       *redis.Client
	bcryptCost  int
	now         func() time.Time
}

func NewCompanyService(
	companyRepo repository.CompanyRepository,
	paymentRepo repository.PaymentRepository,
	invoiceRepo repository.InvoiceRepository,
	userRepo repository.UserRepository,
	redisClient *redis.Client,
	bcryptCost int,
) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
		userRepo:    userRepo,
		redis:       redisClient,
		bcryptCost:  bcryptCost,
		now:         time.Now,
	}
}

// CreateCompany creates a company and, when credentials are supplied, a
// linked TENANT account in one go.
func (s *CompanyService) CreateCompany(ctx context.Context, request *domain.CreateCompanyRequest) (*domain.CreateCompanyResponse, error) {
	if request.RentAmount.IsNegative() {
		return nil, customError.WrapValidation("rent_amount must not be negative")
	}
	if request.RentDueDay < 1 || request.RentDueDay > 28 {
		return nil, customError.WrapValidation("rent_due_day must be between 1 and 28")
	}

	if request.UserEmail != "" {
		existing, err := s.userRepo.GetByEmail(ctx, request.UserEmail)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapDatabaseError(err)
		}
		if existing != nil {
			return nil, customError.WrapEmailAlreadyExists(request.UserEmail)
		}
	}

	now := s.now()
	company := &domain.Company{
		ID:           uuid.New(),
		Name:         request.Name,
		Floor:        request.Floor,
		Unit:         request.Unit,
		ContactName:  request.ContactName,
		ContactPhone: request.ContactPhone,
		ContactEmail: request.ContactEmail,
		RentAmount:   request.RentAmount,
		RentDueDay:   request.RentDueDay,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	response := &domain.CreateCompanyResponse{Company: company}

	if request.UserEmail != "" && request.UserPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(request.UserPassword), s.bcryptCost)
		if err != nil {
			return nil, customError.NewBusinessError(customError.ErrCodeValidation, "could not hash password", err)
		}

		name := request.Name
		if request.ContactName != nil && *request.ContactName != "" {
			name = *request.ContactName
		}

		user := &domain.User{
			ID:           uuid.New(),
			Email:        request.UserEmail,
			PasswordHash: string(hash),
			Name:         name,
			Role:         domain.RoleTenant,
			CompanyID:    &company.ID,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, customError.WrapDatabaseError(err)
		}

		response.User = &domain.UserAccount{ID: user.ID, Email: user.Email, Name: user.Name}
	}

	s.invalidateDashboard(ctx)
	return response, nil
}

// GetCompany returns the company with its payments, invoices and linked
// accounts. Payment statuses are derived against the current time.
func (s *CompanyService) GetCompany(ctx context.Context, id uuid.UUID) (*domain.CompanyDetail, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapCompanyNotFound(id.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	payments, err := s.paymentRepo.List(ctx, domain.PaymentFilter{CompanyID: &id})
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	invoices, err := s.invoiceRepo.List(ctx, domain.InvoiceFilter{CompanyID: &id})
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	users, err := s.userRepo.ListByCompany(ctx, id)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &domain.CompanyDetail{
		Company:  company,
		Payments: domain.DeriveAll(payments, s.now()),
		Invoices: invoices,
		Users:    users,
	}, nil
}

// ListCompanies lists active companies ordered by name.
func (s *CompanyService) ListCompanies(ctx context.Context) ([]*domain.Company, error) {
	companies, err := s.companyRepo.List(ctx, true)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return companies, nil
}

// ListCompaniesWithPayments lists active companies with their payments
// attached, statuses derived against the current time. One payment query
// serves the whole listing.
func (s *CompanyService) ListCompaniesWithPayments(ctx context.Context) ([]*domain.CompanyWithPayments, error) {
	companies, err := s.companyRepo.List(ctx, true)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	payments, err := s.paymentRepo.List(ctx, domain.PaymentFilter{})
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	derived := domain.DeriveAll(payments, s.now())
	byCompany := make(map[uuid.UUID][]*domain.Payment, len(companies))
	for _, p := range derived {
		byCompany[p.CompanyID] = append(byCompany[p.CompanyID], p)
	}

	result := make([]*domain.CompanyWithPayments, 0, len(companies))
	for _, company := range companies {
		payments := byCompany[company.ID]
		if payments == nil {
			payments = []*domain.Payment{}
		}
		result = append(result, &domain.CompanyWithPayments{Company: company, Payments: payments})
	}
	return result, nil
}

// UpdateCompany replaces the company's editable fields.
func (s *CompanyService) UpdateCompany(ctx context.Context, id uuid.UUID, request *domain.UpdateCompanyRequest) (*domain.Company, error) {
	if request.RentAmount.IsNegative() {
		return nil, customError.WrapValidation("rent_amount must not be negative")
	}
	if request.RentDueDay < 1 || request.RentDueDay > 28 {
		return nil, customError.WrapValidation("rent_due_day must be between 1 and 28")
	}

	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapCompanyNotFound(id.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	company.Name = request.Name
	company.Floor = request.Floor
	company.Unit = request.Unit
	company.ContactName = request.ContactName
	company.ContactPhone = request.ContactPhone
	company.ContactEmail = request.ContactEmail
	company.RentAmount = request.RentAmount
	company.RentDueDay = request.RentDueDay
	company.UpdatedAt = s.now()

	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.invalidateDashboard(ctx)
	return company, nil
}

// DeactivateCompany soft-deactivates a company so it drops out of active
// listings while its payment history stays queryable.
func (s *CompanyService) DeactivateCompany(ctx context.Context, id uuid.UUID) error {
	if _, err := s.companyRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customError.WrapCompanyNotFound(id.String())
		}
		return customError.WrapDatabaseError(err)
	}

	if err := s.companyRepo.Deactivate(ctx, id, s.now()); err != nil {
		return customError.WrapDatabaseError(err)
	}

	s.invalidateDashboard(ctx)
	return nil
}

// DeleteCompany hard-deletes a company; its payments, invoices and tenant
// accounts cascade away with it.
func (s *CompanyService) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	if _, err := s.companyRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customError.WrapCompanyNotFound(id.String())
		}
		return customError.WrapDatabaseError(err)
	}

	if err := s.companyRepo.Delete(ctx, id); err != nil {
		return customError.WrapDatabaseError(err)
	}

	s.invalidateDashboard(ctx)
	return nil
}

func (s *CompanyService) invalidateDashboard(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, dashboardCacheKey).Err(); err != nil {
		log.Printf("failed to invalidate dashboard cache: %v", err)
	}
}
