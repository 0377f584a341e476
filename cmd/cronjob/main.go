package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"saralevents-backend/internal/config"
	"saralevents-backend/internal/jobs"
	"saralevents-backend/internal/logger"
	"saralevents-backend/internal/repository/postgres"
	"saralevents-backend/internal/scheduler"
	"saralevents-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'retry-wallet-credits', 'audit-wallet-ledgers', 'report-stale-escrow', 'all')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting SaralEvents Settlement Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Services
	emailSvc := service.NewSendGridEmailService(
		cfg.SendGrid.APIKey,
		cfg.SendGrid.FromEmail,
		cfg.SendGrid.FromName,
		cfg.SendGrid.OperatorEmail,
	)

	reconciliationSvc := service.NewReconciliationService(
		store.ReconciliationRepository,
		store.WalletRepository,
		store.EscrowRepository,
		emailSvc,
		cfg.Settlement.ReconciliationMaxAttempts,
	)

	walletSvc := service.NewWalletService(store.WalletRepository)

	jobServices := &jobs.Services{
		Reconciliation: reconciliationSvc,
		Wallet:         walletSvc,
		Email:          emailSvc,
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(db, store, jobServices, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	cronScheduler.Stop()
}

func runJobOnce(jobRunner *jobs.JobRunner, job string) {
	switch job {
	case "retry-wallet-credits":
		jobRunner.RetryWalletCredits()
	case "audit-wallet-ledgers":
		jobRunner.AuditWalletLedgers()
	case "report-stale-escrow":
		jobRunner.ReportStaleEscrow()
	case "all":
		jobRunner.RunAll()
	default:
		logger.Error("Unknown job name", "job", job)
	}
}
