package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/akmanlar/rentroll/internal/domain"
	customError "github.com/akmanlar/rentroll/pkg/errors"
	"github.com/akmanlar/rentroll/tests/mocks"
)

func tenantUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)

	companyID := uuid.New()
	return &domain.User{
		ID:           uuid.New(),
		Email:        "ahmet@teknoloji.com",
		PasswordHash: string(hash),
		Name:         "Ahmet Yilmaz",
		Role:         domain.RoleTenant,
		CompanyID:    &companyID,
		IsActive:     true,
	}
}

func TestLogin_Success(t *testing.T) {
	userRepo := &mocks.MockUserRepository{}
	svc := NewAuthService(userRepo, "test-secret", time.Hour)

	user := tenantUser(t, "demo123")
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	result, err := svc.Login(context.Background(), &domain.LoginRequest{
		Email:    user.Email,
		Password: "demo123",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, domain.RoleTenant, result.Role)
	assert.Equal(t, user.CompanyID, result.CompanyID)

	// Token round-trips through the parser with the tenant scope intact
	claims, err := svc.ParseToken(result.Token)
	assert.NoError(t, err)
	assert.Equal(t, domain.RoleTenant, claims.Role)

	scopedCompany, err := claims.TenantCompanyID()
	assert.NoError(t, err)
	assert.Equal(t, *user.CompanyID, scopedCompany)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := &mocks.MockUserRepository{}
	svc := NewAuthService(userRepo, "test-secret", time.Hour)

	user := tenantUser(t, "demo123")
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	_, err := svc.Login(context.Background(), &domain.LoginRequest{
		Email:    user.Email,
		Password: "wrong",
	})

	assert.ErrorIs(t, err, customError.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	userRepo := &mocks.MockUserRepository{}
	svc := NewAuthService(userRepo, "test-secret", time.Hour)

	userRepo.On("GetByEmail", mock.Anything, "nobody@akmanlar.com").Return(nil, sql.ErrNoRows)

	_, err := svc.Login(context.Background(), &domain.LoginRequest{
		Email:    "nobody@akmanlar.com",
		Password: "demo123",
	})

	// Same error as a wrong password so the endpoint leaks nothing
	assert.ErrorIs(t, err, customError.ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	userRepo := &mocks.MockUserRepository{}
	svc := NewAuthService(userRepo, "test-secret", time.Hour)

	user := tenantUser(t, "demo123")
	user.IsActive = false
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	_, err := svc.Login(context.Background(), &domain.LoginRequest{
		Email:    user.Email,
		Password: "demo123",
	})

	assert.ErrorIs(t, err, customError.ErrInvalidCredentials)
}

func TestParseToken_WrongSecret(t *testing.T) {
	userRepo := &mocks.MockUserRepository{}
	issuer := NewAuthService(userRepo, "secret-a", time.Hour)
	verifier := NewAuthService(userRepo, "secret-b", time.Hour)

	user := tenantUser(t, "demo123")
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	result, err := issuer.Login(context.Background(), &domain.LoginRequest{
		Email:    user.Email,
		Password: "demo123",
	})
	assert.NoError(t, err)

	_, err = verifier.ParseToken(result.Token)
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	userRepo := &mocks.MockUserRepository{}
	svc := NewAuthService(userRepo, "test-secret", time.Hour)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	user := tenantUser(t, "demo123")
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	result, err := svc.Login(context.Background(), &domain.LoginRequest{
		Email:    user.Email,
		Password: "demo123",
	})
	assert.NoError(t, err)

	// Issued two hours ago with a one hour TTL
	_, err = svc.ParseToken(result.Token)
	assert.Error(t, err)
}
