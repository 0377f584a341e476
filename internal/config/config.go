package config

import (
	"fmt"
	"os"

	"saralevents-backend/internal/policy"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	SendGrid   SendGridConfig   `yaml:"sendgrid"`
	JWT        JWTConfig        `yaml:"jwt"`
	Admin      AdminConfig      `yaml:"admin"`
	Log        LogConfig        `yaml:"log"`
	Settlement SettlementConfig `yaml:"settlement"`
	Scheduler  SchedulerConfig  `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// SendGridConfig contains operator-alert email settings
type SendGridConfig struct {
	APIKey        string `yaml:"api_key"`
	FromEmail     string `yaml:"from_email"`
	FromName      string `yaml:"from_name"`
	OperatorEmail string `yaml:"operator_email"` // settlement alerts go here
}

// JWTConfig contains admin token settings
type JWTConfig struct {
	Secret            string `yaml:"secret"`
	AccessTokenExpiry int    `yaml:"access_token_expiry_minutes"`
}

// AdminConfig contains the dashboard admin credentials. Admin-user CRUD
// lives in a separate system; settlement only needs one verifiable login.
type AdminConfig struct {
	Email        string `yaml:"email"`
	PasswordHash string `yaml:"password_hash"` // bcrypt
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SettlementConfig contains the named split rates. Zero values fall back to
// the policy defaults so a config file only overrides what it names.
type SettlementConfig struct {
	CommissionRate        float64 `yaml:"commission_rate"`
	CompletionVendorShare float64 `yaml:"completion_vendor_share"`
	RefundCompanyShare    float64 `yaml:"refund_company_share"`
	RefundVendorShare     float64 `yaml:"refund_vendor_share"`
	AdvancePercent        float64 `yaml:"advance_percent"`
	ArrivalPercent        float64 `yaml:"arrival_percent"`
	CompletionPercent     float64 `yaml:"completion_percent"`

	ReconciliationMaxAttempts int `yaml:"reconciliation_max_attempts"`
	StaleEscrowHours          int `yaml:"stale_escrow_hours"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	RetryWalletCredits string `yaml:"retry_wallet_credits"`
	AuditWalletLedgers string `yaml:"audit_wallet_ledgers"`
	ReportStaleEscrow  string `yaml:"report_stale_escrow"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Override with environment variables if present
	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// SendGrid
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.SendGrid.APIKey = val
	}
	if val := os.Getenv("SENDGRID_FROM_EMAIL"); val != "" {
		c.SendGrid.FromEmail = val
	}
	if val := os.Getenv("OPERATOR_EMAIL"); val != "" {
		c.SendGrid.OperatorEmail = val
	}

	// JWT / admin
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}
	if val := os.Getenv("ADMIN_EMAIL"); val != "" {
		c.Admin.Email = val
	}
	if val := os.Getenv("ADMIN_PASSWORD_HASH"); val != "" {
		c.Admin.PasswordHash = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Set defaults for log if not configured
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	// Database validation
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	// JWT validation
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	if c.JWT.AccessTokenExpiry == 0 {
		c.JWT.AccessTokenExpiry = 60
	}

	// Admin validation
	if c.Admin.Email == "" {
		return fmt.Errorf("admin email is required")
	}
	if c.Admin.PasswordHash == "" {
		return fmt.Errorf("admin password hash is required")
	}

	// Settlement defaults and consistency
	c.applySettlementDefaults()
	if err := c.SettlementRates().Validate(); err != nil {
		return fmt.Errorf("settlement rates: %w", err)
	}
	if c.Settlement.ReconciliationMaxAttempts == 0 {
		c.Settlement.ReconciliationMaxAttempts = 5
	}
	if c.Settlement.StaleEscrowHours == 0 {
		c.Settlement.StaleEscrowHours = 24
	}

	// Scheduler defaults
	if c.Scheduler.RetryWalletCredits == "" {
		c.Scheduler.RetryWalletCredits = "0 */15 * * * *" // every 15 minutes
	}
	if c.Scheduler.AuditWalletLedgers == "" {
		c.Scheduler.AuditWalletLedgers = "0 0 2 * * *" // 2 AM UTC
	}
	if c.Scheduler.ReportStaleEscrow == "" {
		c.Scheduler.ReportStaleEscrow = "0 0 3 * * *" // 3 AM UTC
	}

	return nil
}

func (c *Config) applySettlementDefaults() {
	s := &c.Settlement
	if s.CommissionRate == 0 {
		s.CommissionRate = policy.DefaultCommissionRate
	}
	if s.CompletionVendorShare == 0 {
		s.CompletionVendorShare = policy.DefaultCompletionVendorShare
	}
	if s.RefundCompanyShare == 0 {
		s.RefundCompanyShare = policy.DefaultRefundCompanyShare
	}
	if s.RefundVendorShare == 0 {
		s.RefundVendorShare = policy.DefaultRefundVendorShare
	}
	if s.AdvancePercent == 0 {
		s.AdvancePercent = policy.DefaultAdvancePercent
	}
	if s.ArrivalPercent == 0 {
		s.ArrivalPercent = policy.DefaultArrivalPercent
	}
	if s.CompletionPercent == 0 {
		s.CompletionPercent = policy.DefaultCompletionPercent
	}
}

// SettlementRates returns the configured split rates as a policy.Rates
func (c *Config) SettlementRates() policy.Rates {
	return policy.Rates{
		CommissionRate:        c.Settlement.CommissionRate,
		CompletionVendorShare: c.Settlement.CompletionVendorShare,
		RefundCompanyShare:    c.Settlement.RefundCompanyShare,
		RefundVendorShare:     c.Settlement.RefundVendorShare,
		AdvancePercent:        c.Settlement.AdvancePercent,
		ArrivalPercent:        c.Settlement.ArrivalPercent,
		CompletionPercent:     c.Settlement.CompletionPercent,
	}
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
