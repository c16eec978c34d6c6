package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"marketplace/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv      string
	HTTPPort    string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSslMode   string
	LogLevel    string
	JournalPath string

	DepositPercent  decimal.Decimal
	ProgressPercent decimal.Decimal
	DepositDueDays  int
	NegotiationTTL  time.Duration
	SweepSchedule   string
}

var defaults = map[string]any{
	"APP_ENV":               "",
	"HTTP_PORT":             "8080",
	"DB_PORT":               "5432",
	"DB_SSLMODE":            "disable",
	"LOG_LEVEL":             "info",
	"JOURNAL_PATH":          "",
	"DEPOSIT_PERCENT":       "30",
	"PROGRESS_PERCENT":      "0",
	"DEPOSIT_DUE_DAYS":      7,
	"NEGOTIATION_TTL_HOURS": 72,
	"SWEEP_SCHEDULE":        "@every 1m",
}

// LoadConfig reads .env.<APP_ENV> and .env when present, then the process
// environment. Variables already set in the environment win over the files.
func LoadConfig() (Config, error) {
	if env := os.Getenv("APP_ENV"); env != "" {
		if err := loadEnvFile(".env." + env); err != nil {
			return Config{}, err
		}
	}
	if err := loadEnvFile(".env"); err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	depositPercent, err := decimal.NewFromString(v.GetString("DEPOSIT_PERCENT"))
	if err != nil {
		return Config{}, errs.NewValueIsInvalidErrorWithCause("DEPOSIT_PERCENT", err)
	}
	progressPercent, err := decimal.NewFromString(v.GetString("PROGRESS_PERCENT"))
	if err != nil {
		return Config{}, errs.NewValueIsInvalidErrorWithCause("PROGRESS_PERCENT", err)
	}

	return Config{
		AppEnv:          v.GetString("APP_ENV"),
		HTTPPort:        v.GetString("HTTP_PORT"),
		DBHost:          v.GetString("DB_HOST"),
		DBPort:          v.GetString("DB_PORT"),
		DBUser:          v.GetString("DB_USER"),
		DBPassword:      v.GetString("DB_PASSWORD"),
		DBName:          v.GetString("DB_NAME"),
		DBSslMode:       v.GetString("DB_SSLMODE"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		JournalPath:     v.GetString("JOURNAL_PATH"),
		DepositPercent:  depositPercent,
		ProgressPercent: progressPercent,
		DepositDueDays:  v.GetInt("DEPOSIT_DUE_DAYS"),
		NegotiationTTL:  time.Duration(v.GetInt("NEGOTIATION_TTL_HOURS")) * time.Hour,
		SweepSchedule:   v.GetString("SWEEP_SCHEDULE"),
	}, nil
}

func loadEnvFile(name string) error {
	err := godotenv.Load(name)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading %s: %w", name, err)
}

func (c Config) Validate() error {
	var errList []error
	for _, required := range [][2]string{
		{"HTTP_PORT", c.HTTPPort},
		{"DB_HOST", c.DBHost},
		{"DB_USER", c.DBUser},
		{"DB_NAME", c.DBName},
	} {
		if required[1] == "" {
			errList = append(errList, errs.NewValueIsRequiredError(required[0]))
		}
	}

	hundred := decimal.NewFromInt(100)
	if c.DepositPercent.IsNegative() || c.DepositPercent.GreaterThan(hundred) {
		errList = append(errList, errs.NewValueIsOutOfRangeError("DEPOSIT_PERCENT", c.DepositPercent.String(), 0, 100))
	}
	if c.ProgressPercent.IsNegative() || c.DepositPercent.Add(c.ProgressPercent).GreaterThan(hundred) {
		errList = append(errList, errs.NewValueIsOutOfRangeError("PROGRESS_PERCENT", c.ProgressPercent.String(), 0,
			hundred.Sub(c.DepositPercent).String()))
	}
	if c.DepositDueDays <= 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("DEPOSIT_DUE_DAYS", c.DepositDueDays, 1, "unbounded"))
	}
	if c.NegotiationTTL <= 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("NEGOTIATION_TTL_HOURS", c.NegotiationTTL.Hours(), 1,
			"unbounded"))
	}
	if c.SweepSchedule == "" {
		errList = append(errList, errs.NewValueIsRequiredError("SWEEP_SCHEDULE"))
	}
	return errors.Join(errList...)
}

// DSN is the postgres connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
