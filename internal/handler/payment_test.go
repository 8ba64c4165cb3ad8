package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/akmanlar/rentroll/internal/domain"
	"github.com/akmanlar/rentroll/internal/service"
	"github.com/akmanlar/rentroll/tests/mocks"
)

type paymentTestEnv struct {
	router      *mux.Router
	paymentRepo *mocks.MockPaymentRepository
	companyRepo *mocks.MockCompanyRepository
	userRepo    *mocks.MockUserRepository
	auth        *service.AuthService
}

func newPaymentTestEnv(t *testing.T) *paymentTestEnv {
	t.Helper()

	env := &paymentTestEnv{
		paymentRepo: &mocks.MockPaymentRepository{},
		companyRepo: &mocks.MockCompanyRepository{},
		userRepo:    &mocks.MockUserRepository{},
	}

	env.auth = service.NewAuthService(env.userRepo, "test-secret", time.Hour)
	paymentService := service.NewPaymentService(env.paymentRepo, env.companyRepo, nil)
	paymentHandler := NewPaymentHandler(paymentService)

	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(AuthMiddleware(env.auth))
	api.HandleFunc("/payments", paymentHandler.List).Methods("GET")
	api.HandleFunc("/payments", RequireAdmin(paymentHandler.Create)).Methods("POST")
	api.HandleFunc("/payments/{id}", paymentHandler.Get).Methods("GET")
	api.HandleFunc("/payments/{id}/pay", paymentHandler.Settle).Methods("PUT")
	env.router = router

	return env
}

func (env *paymentTestEnv) token(t *testing.T, role domain.UserRole, companyID *uuid.UUID) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("demo123"), bcrypt.MinCost)
	assert.NoError(t, err)

	user := &domain.User{
		ID:           uuid.New(),
		Email:        string(role) + "@akmanlar.com",
		PasswordHash: string(hash),
		Name:         "Test User",
		Role:         role,
		CompanyID:    companyID,
		IsActive:     true,
	}
	env.userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil).Once()

	result, err := env.auth.Login(context.Background(), &domain.LoginRequest{
		Email:    user.Email,
		Password: "demo123",
	})
	assert.NoError(t, err)
	return result.Token
}

func TestPaymentHandler_Settle(t *testing.T) {
	env := newPaymentTestEnv(t)
	token := env.token(t, domain.RoleAdmin, nil)

	id := uuid.New()
	payment := &domain.Payment{
		ID:      id,
		Amount:  decimal.NewFromInt(8000),
		DueDate: time.Now().AddDate(0, 0, -10),
		Status:  domain.PaymentStatusPending,
	}

	env.paymentRepo.On("GetByID", mock.Anything, id).Return(payment, nil)
	env.paymentRepo.On("Settle", mock.Anything, id, mock.Anything, (*string)(nil)).Return(int64(1), nil)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/payments/"+id.String()+"/pay", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool           `json:"success"`
		Data    domain.Payment `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, domain.PaymentStatusPaid, body.Data.Status)
	if assert.NotNil(t, body.Data.PaidAmount) {
		assert.True(t, body.Data.PaidAmount.Equal(payment.Amount))
	}
}

func TestPaymentHandler_Settle_AlreadyPaid(t *testing.T) {
	env := newPaymentTestEnv(t)
	token := env.token(t, domain.RoleAdmin, nil)

	id := uuid.New()
	paidDate := time.Now().AddDate(0, 0, -3)
	amount := decimal.NewFromInt(8000)
	payment := &domain.Payment{
		ID:         id,
		Amount:     amount,
		Status:     domain.PaymentStatusPaid,
		PaidDate:   &paidDate,
		PaidAmount: &amount,
	}

	env.paymentRepo.On("GetByID", mock.Anything, id).Return(payment, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/payments/"+id.String()+"/pay", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	env.paymentRepo.AssertNotCalled(t, "Settle", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentHandler_List_TenantScoped(t *testing.T) {
	env := newPaymentTestEnv(t)
	companyID := uuid.New()
	token := env.token(t, domain.RoleTenant, &companyID)

	env.paymentRepo.On("List", mock.Anything, mock.MatchedBy(func(f domain.PaymentFilter) bool {
		return f.CompanyID != nil && *f.CompanyID == companyID
	})).Return([]*domain.Payment{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	env.paymentRepo.AssertExpectations(t)
}

func TestPaymentHandler_List_TenantCrossCompanyForbidden(t *testing.T) {
	env := newPaymentTestEnv(t)
	companyID := uuid.New()
	token := env.token(t, domain.RoleTenant, &companyID)

	other := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments?companyId="+other.String(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	env.paymentRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestPaymentHandler_Create_TenantForbidden(t *testing.T) {
	env := newPaymentTestEnv(t)
	companyID := uuid.New()
	token := env.token(t, domain.RoleTenant, &companyID)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPaymentHandler_MissingToken(t *testing.T) {
	env := newPaymentTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments", nil)
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
