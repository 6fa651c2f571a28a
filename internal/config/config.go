package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
	Order    OrderConfig
	Summary  SummaryConfig
	Ledger   LedgerConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type LogConfig struct {
	Level string
}

type OrderConfig struct {
	// MaxAllocAttempts bounds both the candidate draws inside code
	// allocation and the re-allocation cycles after a duplicate insert.
	MaxAllocAttempts int
}

// RevenueSource selects what a summary reports as total revenue: the sum of
// the classified buckets, or the per-order stored totals. A single summary
// call never mixes the two.
const (
	RevenueSourceBuckets = "buckets"
	RevenueSourceOrders  = "orders"
)

type SummaryConfig struct {
	Statuses      []string
	RevenueSource string
	CronSpec      string
}

type LedgerConfig struct {
	WebhookURL string
	QueueSize  int
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 3306)
	viper.SetDefault("DB_USER", "krua")
	viper.SetDefault("DB_PASSWORD", "secret")
	viper.SetDefault("DB_NAME", "krua")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("ORDER_MAX_ALLOC_ATTEMPTS", 5)
	viper.SetDefault("SUMMARY_STATUSES", "Completed")
	viper.SetDefault("SUMMARY_REVENUE_SOURCE", RevenueSourceBuckets)
	viper.SetDefault("SUMMARY_CRON_SPEC", "")
	viper.SetDefault("LEDGER_WEBHOOK_URL", "")
	viper.SetDefault("LEDGER_QUEUE_SIZE", 64)

	connMaxLifetime, err := time.ParseDuration(viper.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, fmt.Errorf("parsing DB_CONN_MAX_LIFETIME: %w", err)
	}

	maxAllocAttempts := viper.GetInt("ORDER_MAX_ALLOC_ATTEMPTS")
	if maxAllocAttempts < 1 {
		return nil, fmt.Errorf("ORDER_MAX_ALLOC_ATTEMPTS must be at least 1, got %d", maxAllocAttempts)
	}

	revenueSource := viper.GetString("SUMMARY_REVENUE_SOURCE")
	if revenueSource != RevenueSourceBuckets && revenueSource != RevenueSourceOrders {
		return nil, fmt.Errorf("SUMMARY_REVENUE_SOURCE must be %q or %q, got %q",
			RevenueSourceBuckets, RevenueSourceOrders, revenueSource)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Name:            viper.GetString("DB_NAME"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Order: OrderConfig{
			MaxAllocAttempts: maxAllocAttempts,
		},
		Summary: SummaryConfig{
			Statuses:      splitList(viper.GetString("SUMMARY_STATUSES")),
			RevenueSource: revenueSource,
			CronSpec:      viper.GetString("SUMMARY_CRON_SPEC"),
		},
		Ledger: LedgerConfig{
			WebhookURL: viper.GetString("LEDGER_WEBHOOK_URL"),
			QueueSize:  viper.GetInt("LEDGER_QUEUE_SIZE"),
		},
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
