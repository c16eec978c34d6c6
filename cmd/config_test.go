package cmd

import (
	"log/slog"
	"testing"
	"time"

	"marketplace/internal/adapters/out/badgerjournal"
	"marketplace/internal/adapters/out/postgres/storetest"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		HTTPPort:        "8080",
		DBHost:          "localhost",
		DBPort:          "5432",
		DBUser:          "marketplace",
		DBName:          "marketplace",
		DBSslMode:       "disable",
		DepositPercent:  decimal.NewFromInt(30),
		ProgressPercent: decimal.Zero,
		DepositDueDays:  7,
		NegotiationTTL:  72 * time.Hour,
		SweepSchedule:   "@every 1m",
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_NAME", "orders")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.True(t, decimal.NewFromInt(30).Equal(cfg.DepositPercent))
	assert.True(t, cfg.ProgressPercent.IsZero())
	assert.Equal(t, 7, cfg.DepositDueDays)
	assert.Equal(t, 72*time.Hour, cfg.NegotiationTTL)
	assert.Equal(t, "@every 1m", cfg.SweepSchedule)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DEPOSIT_PERCENT", "40")
	t.Setenv("PROGRESS_PERCENT", "20.5")
	t.Setenv("NEGOTIATION_TTL_HOURS", "24")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(40).Equal(cfg.DepositPercent))
	assert.True(t, decimal.RequireFromString("20.5").Equal(cfg.ProgressPercent))
	assert.Equal(t, 24*time.Hour, cfg.NegotiationTTL)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoadConfig_BadPercent(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DEPOSIT_PERCENT", "thirty")

	_, err := LoadConfig()
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"missing db host", func(c *Config) { c.DBHost = "" }, errs.ErrValueIsRequired},
		{"deposit above hundred", func(c *Config) { c.DepositPercent = decimal.NewFromInt(101) }, errs.ErrValueIsOutOfRange},
		{"deposit plus progress above hundred", func(c *Config) {
			c.DepositPercent = decimal.NewFromInt(60)
			c.ProgressPercent = decimal.NewFromInt(50)
		}, errs.ErrValueIsOutOfRange},
		{"zero due days", func(c *Config) { c.DepositDueDays = 0 }, errs.ErrValueIsOutOfRange},
		{"zero ttl", func(c *Config) { c.NegotiationTTL = 0 }, errs.ErrValueIsOutOfRange},
		{"no schedule", func(c *Config) { c.SweepSchedule = "" }, errs.ErrValueIsRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}

	assert.NoError(t, validConfig().Validate())
}

func TestConfig_DSN(t *testing.T) {
	cfg := validConfig()
	cfg.DBPassword = "secret"
	assert.Equal(t, "host=localhost port=5432 user=marketplace password=secret dbname=marketplace sslmode=disable",
		cfg.DSN())
}

func TestCompositionRoot_WiresServerAndJobs(t *testing.T) {
	db := storetest.Open(t)
	journal, err := badgerjournal.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = journal.Close() })

	root, err := NewCompositionRoot(validConfig(), db, journal, slog.Default())
	require.NoError(t, err)

	assert.NotNil(t, root.CreateHTTPServer())
	expired, overdue, err := root.CreateJobManager().RunAllOnce(t.Context())
	require.NoError(t, err)
	assert.Zero(t, expired)
	assert.Zero(t, overdue)
}

func TestNewCompositionRoot_RejectsBadPolicy(t *testing.T) {
	cfg := validConfig()
	cfg.DepositDueDays = 0

	_, err := NewCompositionRoot(cfg, nil, nil, slog.Default())
	require.Error(t, err)
}
