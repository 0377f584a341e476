package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	httpapi "saralevents-backend/internal/api/http"
	"saralevents-backend/internal/config"
	"saralevents-backend/internal/logger"
	"saralevents-backend/internal/repository/postgres"
	"saralevents-backend/internal/security"
	"saralevents-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting SaralEvents Settlement Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
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

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)

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

	settlementSvc := service.NewSettlementService(
		store.BookingRepository,
		store.MilestoneRepository,
		store.EscrowRepository,
		store.RefundRepository,
		store.WalletRepository,
		reconciliationSvc,
		cfg.SettlementRates(),
	)

	walletSvc := service.NewWalletService(store.WalletRepository)
	authSvc := service.NewAuthService(cfg.Admin.Email, cfg.Admin.PasswordHash, tokenManager)

	// Initialize Router
	router := httpapi.NewRouter(tokenManager, authSvc, settlementSvc, walletSvc)

	addr := cfg.GetServerAddress()
	logger.Info("Settlement API listening", "address", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Error("Server stopped", "error", err)
		log.Fatalf("Server stopped: %v", err)
	}
}
