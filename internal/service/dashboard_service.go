package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/akmanlar/rentroll/internal/domain"
	"github.com/akmanlar/rentroll/internal/repository"
	customError "github.com/akmanlar/rentroll/pkg/errors"
)

const recentPaymentsLimit = 5

type DashboardService struct {
	companyRepo repository.CompanyRepository
	paymentRepo repository.PaymentRepository
	redis       *redis.Client
	cacheTTL    time.Duration
	now         func() time.Time
}

func NewDashboardService(
	companyRepo repository.CompanyRepository,
	paymentRepo repository.PaymentRepository,
	redisClient *redis.Client,
	cacheTTL time.Duration,
) *DashboardService {
	return &DashboardService{
		companyRepo: companyRepo,
		paymentRepo: paymentRepo,
		redis:       redisClient,
		cacheTTL:    cacheTTL,
		now:         time.Now,
	}
}

// GetStats builds the admin dashboard payload: system-wide payment rollup,
// recent settlements and per-company summaries. Results are cached briefly;
// every write path deletes the cache key, so settled payments show up in the
// very next read.
func (s *DashboardService) GetStats(ctx context.Context) (*domain.DashboardStats, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	totalCompanies, err := s.companyRepo.Count(ctx, false)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	activeCompanies, err := s.companyRepo.Count(ctx, true)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	payments, err := s.paymentRepo.List(ctx, domain.PaymentFilter{})
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	now := s.now()
	derived := domain.DeriveAll(payments, now)
	rollup := domain.RollupPayments(derived)

	recent, err := s.paymentRepo.RecentPaid(ctx, recentPaymentsLimit)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	companies, err := s.companyRepo.List(ctx, true)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	byCompany := make(map[string][]*domain.Payment, len(companies))
	for _, p := range derived {
		key := p.CompanyID.String()
		byCompany[key] = append(byCompany[key], p)
	}

	summaries := make([]domain.CompanySummary, 0, len(companies))
	for _, company := range companies {
		summaries = append(summaries, domain.SummarizeCompany(company, byCompany[company.ID.String()]))
	}

	stats := &domain.DashboardStats{
		TotalCompanies:   totalCompanies,
		ActiveCompanies:  activeCompanies,
		TotalPaid:        rollup.Paid.Count,
		TotalPending:     rollup.Pending.Count,
		TotalOverdue:     rollup.Overdue.Count,
		PaidAmount:       rollup.Paid.Sum,
		PendingAmount:    rollup.Pending.Sum,
		OverdueAmount:    rollup.Overdue.Sum,
		Outstanding:      rollup.Outstanding,
		RecentPayments:   recent,
		CompanySummaries: summaries,
	}

	s.toCache(ctx, stats)
	return stats, nil
}

func (s *DashboardService) fromCache(ctx context.Context) *domain.DashboardStats {
	if s.redis == nil || s.cacheTTL <= 0 {
		return nil
	}

	raw, err := s.redis.Get(ctx, dashboardCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("dashboard cache read failed: %v", customError.WrapCacheError(err))
		}
		return nil
	}

	var stats domain.DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		log.Printf("discarding unreadable dashboard cache entry: %v", err)
		return nil
	}
	return &stats
}

func (s *DashboardService) toCache(ctx context.Context, stats *domain.DashboardStats) {
	if s.redis == nil || s.cacheTTL <= 0 {
		return
	}

	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}

	if err := s.redis.Set(ctx, dashboardCacheKey, raw, s.cacheTTL).Err(); err != nil {
		log.Printf("failed to cache dashboard stats: %v", err)
	}
}
