package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/akmanlar/rentroll/internal/domain"
	"github.com/akmanlar/rentroll/internal/repository"
	customError "github.com/akmanlar/rentroll/pkg/errors"
	"github.com/akmanlar/rentroll/pkg/utils"
)

// dashboardCacheKey is shared by every write path that must keep aggregate
// queries fresh.
const dashboardCacheKey = "dashboard:stats"

type PaymentService struct {
	paymentRepo repository.PaymentRepository
	companyRepo repository.CompanyRepository
	redis       *redis.Client
	now         func() time.Time
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	companyRepo repository.CompanyRepository,
	redisClient *redis.Client,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		companyRepo: companyRepo,
		redis:       redisClient,
		now:         time.Now,
	}
}

// CreatePayment schedules a new obligation in PENDING status.
func (s *PaymentService) CreatePayment(ctx context.Context, request *domain.CreatePaymentRequest) (*domain.Payment, error) {
	companyID, err := uuid.Parse(request.CompanyID)
	if err != nil {
		return nil, customError.WrapValidation("company_id must be a valid UUID")
	}

	if !request.Type.Valid() {
		return nil, customError.WrapValidation(fmt.Sprintf("unknown payment type %q", request.Type))
	}
	if request.Amount.IsNegative() {
		return nil, customError.WrapValidation("amount must not be negative")
	}
	if !utils.ValidPeriod(request.Period) {
		return nil, customError.WrapValidation("period must be formatted as YYYY-MM")
	}

	if _, err := s.companyRepo.GetByID(ctx, companyID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapCompanyNotFound(request.CompanyID)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	now := s.now()
	payment := &domain.Payment{
		ID:          uuid.New(),
		CompanyID:   companyID,
		Type:        request.Type,
		Amount:      request.Amount,
		DueDate:     request.DueDate,
		Status:      domain.PaymentStatusPending,
		Period:      request.Period,
		Description: request.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.invalidateDashboard(ctx)
	return payment, nil
}

// GetPayment returns a payment with its status derived against the current
// time. The stored row is not modified.
func (s *PaymentService) GetPayment(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapPaymentNotFound(id.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	payment.Status = payment.EffectiveStatus(s.now())
	return payment, nil
}

// ListPayments returns payments matching the filter with derived statuses.
func (s *PaymentService) ListPayments(ctx context.Context, filter domain.PaymentFilter) ([]*domain.Payment, error) {
	payments, err := s.paymentRepo.List(ctx, filter)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return domain.DeriveAll(payments, s.now()), nil
}

// SettlePayment applies the one-way transition to PAID: paid date is the
// settlement instant, paid amount is the full outstanding amount. A second
// settlement attempt is an error, never a silent no-op.
func (s *PaymentService) SettlePayment(ctx context.Context, id uuid.UUID, request *domain.SettlePaymentRequest) (*domain.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapPaymentNotFound(id.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	if payment.Status == domain.PaymentStatusPaid {
		return nil, customError.WrapPaymentAlreadySettled(id.String())
	}

	paidDate := s.now()
	var receiptURL *string
	if request != nil {
		receiptURL = request.ReceiptURL
	}

	rows, err := s.paymentRepo.Settle(ctx, id, paidDate, receiptURL)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if rows == 0 {
		// Lost a race against a concurrent settle.
		return nil, customError.WrapPaymentAlreadySettled(id.String())
	}

	if request != nil && request.CardTail != "" {
		log.Printf("payment %s settled with card ending %s", id, request.CardTail)
	}

	payment.Status = domain.PaymentStatusPaid
	payment.PaidDate = &paidDate
	amount := payment.Amount
	payment.PaidAmount = &amount
	if receiptURL != nil {
		payment.ReceiptURL = receiptURL
	}

	s.invalidateDashboard(ctx)
	return payment, nil
}

// ReconcileOverdue persists the derived OVERDUE status for PENDING rows past
// their due date. The stored status is a denormalization of the derivation
// rule; this pass keeps it in sync for consumers reading raw rows.
func (s *PaymentService) ReconcileOverdue(ctx context.Context) (int64, error) {
	rows, err := s.paymentRepo.MarkOverdue(ctx, s.now())
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	if rows > 0 {
		s.invalidateDashboard(ctx)
	}
	return rows, nil
}

// GenerateMonthlyRent creates the current period's RENT obligation for every
// active company that does not have one yet. Safe to re-run within a month.
func (s *PaymentService) GenerateMonthlyRent(ctx context.Context) (int, error) {
	companies, err := s.companyRepo.List(ctx, true)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	now := s.now()
	period := utils.FormatPeriod(now)
	created := 0

	for _, company := range companies {
		exists, err := s.paymentRepo.ExistsForPeriod(ctx, company.ID, domain.PaymentTypeRent, period)
		if err != nil {
			return created, customError.WrapDatabaseError(err)
		}
		if exists {
			continue
		}

		description := fmt.Sprintf("%s rent for period %s", domain.PaymentTypeRent.Label(), period)
		payment := &domain.Payment{
			ID:          uuid.New(),
			CompanyID:   company.ID,
			Type:        domain.PaymentTypeRent,
			Amount:      company.RentAmount,
			DueDate:     utils.DueDateInMonth(now, company.RentDueDay),
			Status:      domain.PaymentStatusPending,
			Period:      period,
			Description: &description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return created, customError.WrapDatabaseError(err)
		}
		created++
	}

	if created > 0 {
		s.invalidateDashboard(ctx)
	}
	return created, nil
}

// Outstanding returns the combined PENDING+OVERDUE debt for one company.
func (s *PaymentService) Outstanding(ctx context.Context, companyID uuid.UUID) (decimal.Decimal, error) {
	payments, err := s.paymentRepo.List(ctx, domain.PaymentFilter{CompanyID: &companyID})
	if err != nil {
		return decimal.Zero, customError.WrapDatabaseError(err)
	}

	rollup := domain.RollupPayments(domain.DeriveAll(payments, s.now()))
	return rollup.Outstanding, nil
}

func (s *PaymentService) invalidateDashboard(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, dashboardCacheKey).Err(); err != nil {
		log.Printf("failed to invalidate dashboard cache: %v", err)
	}
}
