package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserRole determines what a principal may do: admins manage everything,
// tenants see only their linked company.
type UserRole string

const (
	RoleAdmin  UserRole = "ADMIN"
	RoleTenant UserRole = "TENANT"
)

// User is an authentication principal. TENANT users carry the company they
// belong to; ADMIN users have no company link.
type User struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Name         string     `json:"name" db:"name"`
	Role         UserRole   `json:"role" db:"role"`
	CompanyID    *uuid.UUID `json:"company_id" db:"company_id"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// UserAccount is the safe projection of a User for API responses.
type UserAccount struct {
	ID    uuid.UUID `json:"id" db:"id"`
	Email string    `json:"email" db:"email"`
	Name  string    `json:"name" db:"name"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	UserID    uuid.UUID  `json:"user_id"`
	Name      string     `json:"name"`
	Role      UserRole   `json:"role"`
	CompanyID *uuid.UUID `json:"company_id,omitempty"`
}
