package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/akmanlar/rentroll/internal/config"
	"github.com/akmanlar/rentroll/internal/domain"
	"github.com/akmanlar/rentroll/internal/repository"
	"github.com/akmanlar/rentroll/pkg/utils"
)

type seedCompany struct {
	name, floor, unit, contactName, contactPhone, contactEmail string
	rentAmount                                                 int64
	rentDueDay                                                 int
}

var companies = []seedCompany{
	{"Teknoloji A.S.", "3", "301", "Ahmet Yilmaz", "0532 111 2233", "ahmet@teknoloji.com", 8000, 1},
	{"Danismanlik Ltd.", "2", "205", "Mehmet Kaya", "0533 222 3344", "mehmet@danismanlik.com", 6500, 5},
	{"Yazilim Studyosu", "4", "402", "Elif Demir", "0534 333 4455", "elif@yazilim.com", 7500, 1},
	{"Muhendislik Ofisi", "1", "101", "Can Ozturk", "0535 444 5566", "can@muhendislik.com", 5500, 10},
	{"Hukuk Burosu", "5", "501", "Zeynep Aksoy", "0536 555 6677", "zeynep@hukuk.com", 9000, 1},
	{"Mimarlik Atolyesi", "3", "305", "Burak Sahin", "0537 666 7788", "burak@mimarlik.com", 6000, 15},
	{"Finans Grubu", "6", "601", "Selin Yildiz", "0538 777 8899", "selin@finans.com", 10000, 1},
	{"Medya Ajansi", "2", "202", "Kaan Arslan", "0539 888 9900", "kaan@medya.com", 5000, 1},
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	companyRepo := repository.NewCompanyRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	userRepo := repository.NewUserRepository(db)

	ctx := context.Background()
	now := time.Now()

	hash, err := bcrypt.GenerateFromPassword([]byte("demo123"), cfg.Auth.BcryptCost)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	admin := &domain.User{
		ID:           uuid.New(),
		Email:        "admin@akmanlar.com",
		PasswordHash: string(hash),
		Name:         "Building Manager",
		Role:         domain.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}
	log.Printf("Created admin user %s", admin.Email)

	for _, sc := range companies {
		company := &domain.Company{
			ID:           uuid.New(),
			Name:         sc.name,
			Floor:        ptr(sc.floor),
			Unit:         ptr(sc.unit),
			ContactName:  ptr(sc.contactName),
			ContactPhone: ptr(sc.contactPhone),
			ContactEmail: ptr(sc.contactEmail),
			RentAmount:   decimal.NewFromInt(sc.rentAmount),
			RentDueDay:   sc.rentDueDay,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := companyRepo.Create(ctx, company); err != nil {
			log.Fatalf("Failed to create company %s: %v", sc.name, err)
		}
		log.Printf("Created company %s", company.Name)

		tenant := &domain.User{
			ID:           uuid.New(),
			Email:        sc.contactEmail,
			PasswordHash: string(hash),
			Name:         sc.contactName,
			Role:         domain.RoleTenant,
			CompanyID:    &company.ID,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(ctx, tenant); err != nil {
			log.Fatalf("Failed to create tenant user for %s: %v", sc.name, err)
		}

		if err := seedPayments(ctx, paymentRepo, company, now); err != nil {
			log.Fatalf("Failed to seed payments for %s: %v", sc.name, err)
		}
	}

	log.Println("Seed complete")
}

// seedPayments creates three months of rent, electricity and water
// obligations per company, with past months mostly settled.
func seedPayments(ctx context.Context, repo repository.PaymentRepository, company *domain.Company, now time.Time) error {
	for i := 0; i < 3; i++ {
		anchor := now.AddDate(0, -i, 0)
		dueDate := utils.DueDateInMonth(anchor, company.RentDueDay)
		period := utils.FormatPeriod(anchor)

		status := domain.PaymentStatusPending
		var paidDate *time.Time
		var paidAmount *decimal.Decimal

		pastMonth := i > 0
		dueDayPassed := i == 0 && now.Day() > company.RentDueDay
		if pastMonth || dueDayPassed {
			if rand.Float64() > 0.25 {
				status = domain.PaymentStatusPaid
				settled := dueDate.AddDate(0, 0, rand.Intn(5))
				paidDate = &settled
				amount := company.RentAmount
				paidAmount = &amount
			} else {
				status = domain.PaymentStatusOverdue
			}
		}

		rent := &domain.Payment{
			ID:          uuid.New(),
			CompanyID:   company.ID,
			Type:        domain.PaymentTypeRent,
			Amount:      company.RentAmount,
			DueDate:     dueDate,
			PaidDate:    paidDate,
			PaidAmount:  paidAmount,
			Status:      status,
			Period:      period,
			Description: ptr(fmt.Sprintf("Rent for period %s", period)),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := repo.Create(ctx, rent); err != nil {
			return err
		}

		for _, utility := range []struct {
			paymentType  domain.PaymentType
			base, jitter int
			dueDay       int
		}{
			{domain.PaymentTypeElectricity, 300, 400, 15},
			{domain.PaymentTypeWater, 80, 120, 20},
		} {
			amount := decimal.NewFromInt(int64(utility.base + rand.Intn(utility.jitter)))

			utilityStatus := domain.PaymentStatusPending
			var utilityPaidDate *time.Time
			var utilityPaidAmount *decimal.Decimal
			if pastMonth {
				utilityStatus = domain.PaymentStatusPaid
				settled := utils.DueDateInMonth(anchor, utility.dueDay)
				utilityPaidDate = &settled
				utilityPaidAmount = &amount
			}

			payment := &domain.Payment{
				ID:          uuid.New(),
				CompanyID:   company.ID,
				Type:        utility.paymentType,
				Amount:      amount,
				DueDate:     utils.DueDateInMonth(anchor, utility.dueDay),
				PaidDate:    utilityPaidDate,
				PaidAmount:  utilityPaidAmount,
				Status:      utilityStatus,
				Period:      period,
				Description: ptr(fmt.Sprintf("%s bill for period %s", utility.paymentType.Label(), period)),
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := repo.Create(ctx, payment); err != nil {
				return err
			}
		}
	}

	return nil
}

func ptr(s string) *string {
	return &s
}
