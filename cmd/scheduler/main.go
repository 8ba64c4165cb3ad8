package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/akmanlar/rentroll/internal/config"
	"github.com/akmanlar/rentroll/internal/repository"
	"github.com/akmanlar/rentroll/internal/service"
)

func main() {
	log.Println("Starting rentroll scheduler...")

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

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	paymentRepo := repository.NewPaymentRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	paymentService := service.NewPaymentService(paymentRepo, companyRepo, redisClient)

	location, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		log.Fatalf("Invalid scheduler timezone: %v", err)
	}

	c := cron.New(cron.WithSeconds(), cron.WithLocation(location))
	setupCronJobs(c, paymentService)

	c.Start()
	log.Println("Scheduler started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down scheduler...")
	c.Stop()
	log.Println("Scheduler stopped")
}

func setupCronJobs(c *cron.Cron, payments *service.PaymentService) {
	// Daily reconciliation: persist the derived OVERDUE status for pending
	// rows past their due date (runs at midnight)
	_, err := c.AddFunc("0 0 0 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		rows, err := payments.ReconcileOverdue(ctx)
		if err != nil {
			log.Printf("Overdue reconciliation failed: %v", err)
			return
		}
		log.Printf("Overdue reconciliation marked %d payments", rows)
	})
	if err != nil {
		log.Printf("Error scheduling overdue reconciliation job: %v", err)
	}

	// Monthly rent generation: schedule the new period's rent obligation
	// for every active company (runs on the 1st at 06:00)
	_, err = c.AddFunc("0 0 6 1 * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		created, err := payments.GenerateMonthlyRent(ctx)
		if err != nil {
			log.Printf("Monthly rent generation failed: %v", err)
			return
		}
		log.Printf("Monthly rent generation created %d payments", created)
	})
	if err != nil {
		log.Printf("Error scheduling monthly rent generation job: %v", err)
	}

	log.Println("Cron jobs scheduled successfully")
}
