package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode      string
	Port         string
	FrontendURL  string
	Database     DatabaseConfig
	JWT          JWTConfig
	Cookie       CookieConfig
	Loan         LoanConfig
	Contribution ContributionConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	RefreshSecret    string
	AccessTokenMins  int
	RefreshTokenDays int
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// LoanConfig holds loan engine configuration
type LoanConfig struct {
	// MaxAmount is the maximum principal in currency units (KSh)
	MaxAmount float64
	// MonthlyInterestRate is the reducing-balance rate per month, as a
	// percentage (10 means 10%)
	MonthlyInterestRate float64
	// DefaultDurationMonths applies when an application omits the duration
	DefaultDurationMonths int
	// MinQualifyingPayments is how many paid contributions are required
	// within the eligibility window
	MinQualifyingPayments int
	// EligibilityWindowMonths is the trailing window for qualifying payments
	EligibilityWindowMonths int
	// StrictGuarantorCheck enables member/guarantor existence validation.
	// Off by default: the group historically trusted its operators.
	StrictGuarantorCheck bool
}

// ContributionConfig holds monthly contribution settings
type ContributionConfig struct {
	// MonthlyAmount is the expected contribution per member (KSh)
	MonthlyAmount float64
	// DeadlineDay is the day of month contributions fall due
	DeadlineDay int
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode:      appMode,
		Port:         getEnv("PORT", "5000"),
		FrontendURL:  getEnv("FRONTEND_URL", "http://localhost:3000"),
		Database:     loadDatabaseConfig(appMode),
		JWT:          loadJWTConfig(appMode),
		Cookie:       loadCookieConfig(appMode),
		Loan:         loadLoanConfig(),
		Contribution: loadContributionConfig(),
	}

	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "the_team_db"),
	}
}

func loadJWTConfig(mode string) JWTConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	accessMins, _ := strconv.Atoi(getEnv("ACCESS_TOKEN_MINUTES", "15"))
	refreshDays, _ := strconv.Atoi(getEnv("REFRESH_TOKEN_DAYS", "7"))

	return JWTConfig{
		Secret:           getEnv(prefix+"JWT_SECRET", "default_secret"),
		RefreshSecret:    getEnv(prefix+"JWT_REFRESH_SECRET", "default_refresh_secret"),
		AccessTokenMins:  accessMins,
		RefreshTokenDays: refreshDays,
	}
}

func loadCookieConfig(mode string) CookieConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	secure, _ := strconv.ParseBool(getEnv(prefix+"COOKIE_SECURE", "false"))

	return CookieConfig{
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

func loadLoanConfig() LoanConfig {
	maxAmount, _ := strconv.ParseFloat(getEnv("LOAN_MAX_AMOUNT", "50000"), 64)
	rate, _ := strconv.ParseFloat(getEnv("LOAN_MONTHLY_INTEREST_RATE", "10"), 64)
	duration, _ := strconv.Atoi(getEnv("LOAN_DEFAULT_DURATION_MONTHS", "3"))
	minPayments, _ := strconv.Atoi(getEnv("LOAN_MIN_QUALIFYING_PAYMENTS", "3"))
	window, _ := strconv.Atoi(getEnv("LOAN_ELIGIBILITY_WINDOW_MONTHS", "3"))
	strict, _ := strconv.ParseBool(getEnv("LOAN_STRICT_GUARANTOR_CHECK", "false"))

	return LoanConfig{
		MaxAmount:               maxAmount,
		MonthlyInterestRate:     rate,
		DefaultDurationMonths:   duration,
		MinQualifyingPayments:   minPayments,
		EligibilityWindowMonths: window,
		StrictGuarantorCheck:    strict,
	}
}

func loadContributionConfig() ContributionConfig {
	amount, _ := strconv.ParseFloat(getEnv("CONTRIBUTION_MONTHLY_AMOUNT", "600"), 64)
	deadlineDay, _ := strconv.Atoi(getEnv("CONTRIBUTION_DEADLINE_DAY", "10"))

	return ContributionConfig{
		MonthlyAmount: amount,
		DeadlineDay:   deadlineDay,
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://chamalink.co.ke"
	}
	return origins
}
