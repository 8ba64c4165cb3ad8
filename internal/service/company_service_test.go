package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/akmanlar/rentroll/internal/domain"
	customError "github.com/akmanlar/rentroll/pkg/errors"
	"github.com/akmanlar/rentroll/tests/mocks"
)

type companyDeps struct {
	companyRepo *mocks.MockCompanyRepository
	paymentRepo *mocks.MockPaymentRepository
	invoiceRepo *mocks.MockInvoiceRepository
	userRepo    *mocks.MockUserRepository
}

func newCompanyService(t *testing.T) (*CompanyService, *companyDeps) {
	t.Helper()
	deps := &companyDeps{
		companyRepo: &mocks.MockCompanyRepository{},
		paymentRepo: &mocks.MockPaymentRepository{},
		invoiceRepo: &mocks.MockInvoiceRepository{},
		userRepo:    &mocks.MockUserRepository{},
	}
	// MinCost keeps the hashing in tests cheap
	svc := NewCompanyService(deps.companyRepo, deps.paymentRepo, deps.invoiceRepo, deps.userRepo, nil, bcrypt.MinCost)
	return svc, deps
}

func TestCreateCompany_WithTenantUser(t *testing.T) {
	svc, deps := newCompanyService(t)

	deps.userRepo.On("GetByEmail", mock.Anything, "elif@yazilim.com").Return(nil, sql.ErrNoRows)
	deps.companyRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Company) bool {
		return c.Name == "Yazilim Studyosu" && c.IsActive && c.RentDueDay == 5
	})).Return(nil)
	deps.userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Role == domain.RoleTenant && u.CompanyID != nil && u.Email == "elif@yazilim.com"
	})).Return(nil)

	contactName := "Elif Demir"
	result, err := svc.CreateCompany(context.Background(), &domain.CreateCompanyRequest{
		Name:         "Yazilim Studyosu",
		ContactName:  &contactName,
		RentAmount:   decimal.NewFromInt(7500),
		RentDueDay:   5,
		UserEmail:    "elif@yazilim.com",
		UserPassword: "demo123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Yazilim Studyosu", result.Company.Name)
	if assert.NotNil(t, result.User) {
		assert.Equal(t, "Elif Demir", result.User.Name)
	}

	deps.companyRepo.AssertExpectations(t)
	deps.userRepo.AssertExpectations(t)
}

func TestCreateCompany_EmailTaken(t *testing.T) {
	svc, deps := newCompanyService(t)

	existing := &domain.User{ID: uuid.New(), Email: "elif@yazilim.com"}
	deps.userRepo.On("GetByEmail", mock.Anything, "elif@yazilim.com").Return(existing, nil)

	_, err := svc.CreateCompany(context.Background(), &domain.CreateCompanyRequest{
		Name:         "Yazilim Studyosu",
		RentAmount:   decimal.NewFromInt(7500),
		RentDueDay:   5,
		UserEmail:    "elif@yazilim.com",
		UserPassword: "demo123",
	})

	assert.ErrorIs(t, err, customError.ErrEmailAlreadyExists)
	deps.companyRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateCompany_Validation(t *testing.T) {
	svc, _ := newCompanyService(t)

	tests := []struct {
		name       string
		rentAmount decimal.Decimal
		rentDueDay int
	}{
		{"negative rent", decimal.NewFromInt(-1), 1},
		{"due day zero", decimal.NewFromInt(8000), 0},
		{"due day past cap", decimal.NewFromInt(8000), 29},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateCompany(context.Background(), &domain.CreateCompanyRequest{
				Name:       "Teknoloji A.S.",
				RentAmount: tt.rentAmount,
				RentDueDay: tt.rentDueDay,
			})
			assert.ErrorIs(t, err, customError.ErrValidation)
		})
	}
}

func TestGetCompany_DerivesPaymentStatuses(t *testing.T) {
	svc, deps := newCompanyService(t)
	now := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	id := uuid.New()
	company := &domain.Company{ID: id, Name: "Hukuk Burosu", RentAmount: decimal.NewFromInt(9000), RentDueDay: 1}
	payments := []*domain.Payment{
		{CompanyID: id, Amount: decimal.NewFromInt(9000), Status: domain.PaymentStatusPending, DueDate: now.AddDate(0, 0, -14)},
	}

	deps.companyRepo.On("GetByID", mock.Anything, id).Return(company, nil)
	deps.paymentRepo.On("List", mock.Anything, mock.Anything).Return(payments, nil)
	deps.invoiceRepo.On("List", mock.Anything, mock.Anything).Return([]*domain.Invoice{}, nil)
	deps.userRepo.On("ListByCompany", mock.Anything, id).Return([]*domain.UserAccount{}, nil)

	detail, err := svc.GetCompany(context.Background(), id)

	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusOverdue, detail.Payments[0].Status)
}

func TestDeleteCompany_NotFound(t *testing.T) {
	svc, deps := newCompanyService(t)

	id := uuid.New()
	deps.companyRepo.On("GetByID", mock.Anything, id).Return(nil, sql.ErrNoRows)

	err := svc.DeleteCompany(context.Background(), id)

	assert.ErrorIs(t, err, customError.ErrCompanyNotFound)
	deps.companyRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeactivateCompany(t *testing.T) {
	svc, deps := newCompanyService(t)
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	id := uuid.New()
	company := &domain.Company{ID: id, Name: "Medya Ajansi", IsActive: true}
	deps.companyRepo.On("GetByID", mock.Anything, id).Return(company, nil)
	deps.companyRepo.On("Deactivate", mock.Anything, id, now).Return(nil)

	err := svc.DeactivateCompany(context.Background(), id)

	assert.NoError(t, err)
	deps.companyRepo.AssertExpectations(t)
}

func TestUpdateCompany_StampsServiceClock(t *testing.T) {
	svc, deps := newCompanyService(t)
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	id := uuid.New()
	company := &domain.Company{ID: id, Name: "Medya Ajansi", RentAmount: decimal.NewFromInt(5000), RentDueDay: 1, IsActive: true}
	deps.companyRepo.On("GetByID", mock.Anything, id).Return(company, nil)
	deps.companyRepo.On("Update", mock.Anything, mock.MatchedBy(func(c *domain.Company) bool {
		return c.UpdatedAt.Equal(now)
	})).Return(nil)

	updated, err := svc.UpdateCompany(context.Background(), id, &domain.UpdateCompanyRequest{
		Name:       "Medya Ajansi",
		RentAmount: decimal.NewFromInt(5500),
		RentDueDay: 1,
	})

	assert.NoError(t, err)
	assert.True(t, updated.UpdatedAt.Equal(now))
	deps.companyRepo.AssertExpectations(t)
}

func TestListCompaniesWithPayments(t *testing.T) {
	svc, deps := newCompanyService(t)
	now := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	companyA := &domain.Company{ID: uuid.New(), Name: "Teknoloji A.S.", RentAmount: decimal.NewFromInt(25000), RentDueDay: 1, IsActive: true}
	companyB := &domain.Company{ID: uuid.New(), Name: "Sigorta Acentesi", RentAmount: decimal.NewFromInt(6000), RentDueDay: 10, IsActive: true}

	payments := []*domain.Payment{
		{CompanyID: companyA.ID, Amount: decimal.NewFromInt(25000), Status: domain.PaymentStatusPending, DueDate: now.AddDate(0, 0, -14)},
		{CompanyID: companyA.ID, Amount: decimal.NewFromInt(500), Status: domain.PaymentStatusPaid, DueDate: now.AddDate(0, 0, -14)},
	}

	deps.companyRepo.On("List", mock.Anything, true).Return([]*domain.Company{companyA, companyB}, nil)
	deps.paymentRepo.On("List", mock.Anything, domain.PaymentFilter{}).Return(payments, nil)

	result, err := svc.ListCompaniesWithPayments(context.Background())

	assert.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Len(t, result[0].Payments, 2)
	assert.Equal(t, domain.PaymentStatusOverdue, result[0].Payments[0].Status)
	assert.NotNil(t, result[1].Payments)
	assert.Empty(t, result[1].Payments)
}
