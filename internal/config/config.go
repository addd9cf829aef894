package config

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// AuctionConfig controls bid intake and weekly settlement.
type AuctionConfig struct {
	Timezone        string
	Location        *time.Location
	MinBid          int64
	WinnersPerGroup int
	// CutoffBeforeWeekStart is how long before the target week's Monday 00:00 bidding closes.
	CutoffBeforeWeekStart time.Duration
	BatchSize             int
	LockTTL               time.Duration
}

type LedgerConfig struct {
	MaxRetries          int
	RetryInterval       time.Duration
	LowBalanceThreshold int64
}

type ChargeConfig struct {
	BonusRate decimal.Decimal
	QuoteFee  int64
}

type SubscriptionConfig struct {
	Plans      []string
	PeriodDays int
}

type SchedulerConfig struct {
	Enabled    bool
	Spec       string
	RunOnStart bool
	Timeout    time.Duration
}

type HTTPConfig struct {
	Port           string
	RateLimitRPS   float64
	RateLimitBurst int
}

type LogConfig struct {
	Level  string
	Format string
}

// Config aggregates every section the server and CLI need.
type Config struct {
	Auction      AuctionConfig
	Ledger       LedgerConfig
	Charge       ChargeConfig
	Subscription SubscriptionConfig
	Scheduler    SchedulerConfig
	HTTP         HTTPConfig
	Log          LogConfig
}

var envBindings = map[string]string{
	"database.host":                    "DATABASE_HOST",
	"database.port":                    "DATABASE_PORT",
	"database.user":                    "DATABASE_USER",
	"database.password":                "DATABASE_PASSWORD",
	"database.name":                    "DATABASE_NAME",
	"database.ssl_mode":                "DATABASE_SSL_MODE",
	"redis.host":                       "REDIS_HOST",
	"redis.port":                       "REDIS_PORT",
	"redis.password":                   "REDIS_PASSWORD",
	"redis.db":                         "REDIS_DB",
	"jwt.secret_key":                   "JWT_SECRET_KEY",
	"jwt.expiry_hours":                 "JWT_EXPIRY_HOURS",
	"auction.timezone":                 "AUCTION_TIMEZONE",
	"auction.min_bid":                  "AUCTION_MIN_BID",
	"auction.winners_per_group":        "AUCTION_WINNERS_PER_GROUP",
	"auction.cutoff_before_week_start": "AUCTION_CUTOFF_BEFORE_WEEK_START",
	"auction.batch_size":               "AUCTION_BATCH_SIZE",
	"auction.lock_ttl":                 "AUCTION_LOCK_TTL",
	"ledger.max_retries":               "LEDGER_MAX_RETRIES",
	"ledger.retry_interval":            "LEDGER_RETRY_INTERVAL",
	"ledger.low_balance_threshold":     "LEDGER_LOW_BALANCE_THRESHOLD",
	"quote.fee":                        "QUOTE_FEE",
	"charge.bonus_rate":                "CHARGE_BONUS_RATE",
	"subscription.plans":               "SUBSCRIPTION_PLANS",
	"subscription.period_days":         "SUBSCRIPTION_PERIOD_DAYS",
	"scheduler.enabled":                "SCHEDULER_ENABLED",
	"scheduler.spec":                   "SCHEDULER_SPEC",
	"scheduler.run_on_start":           "SCHEDULER_RUN_ON_START",
	"scheduler.timeout":                "SCHEDULER_TIMEOUT",
	"http.port":                        "PORT",
	"http.rate_limit_rps":              "HTTP_RATE_LIMIT_RPS",
	"http.rate_limit_burst":            "HTTP_RATE_LIMIT_BURST",
	"log.level":                        "LOG_LEVEL",
	"log.format":                       "LOG_FORMAT",
}

// Init reads the optional .env file and binds environment variables.
func Init(file string) error {
	if file != "" {
		viper.SetConfigFile(file)
	}
	viper.AutomaticEnv()

	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if file != "" {
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("jwt.expiry_hours", 24)

	viper.SetDefault("auction.timezone", "Asia/Seoul")
	viper.SetDefault("auction.min_bid", 10000)
	viper.SetDefault("auction.winners_per_group", 5)
	viper.SetDefault("auction.cutoff_before_week_start", 2*time.Hour)
	viper.SetDefault("auction.batch_size", 400)
	viper.SetDefault("auction.lock_ttl", 45*time.Minute)

	viper.SetDefault("ledger.max_retries", 3)
	viper.SetDefault("ledger.retry_interval", 50*time.Millisecond)
	viper.SetDefault("ledger.low_balance_threshold", 10000)

	viper.SetDefault("quote.fee", 1000)
	viper.SetDefault("charge.bonus_rate", "0")

	viper.SetDefault("subscription.plans", []string{"basic", "premium"})
	viper.SetDefault("subscription.period_days", 30)

	viper.SetDefault("scheduler.enabled", true)
	viper.SetDefault("scheduler.spec", "0 0 * * 1")
	viper.SetDefault("scheduler.run_on_start", false)
	viper.SetDefault("scheduler.timeout", 30*time.Minute)

	viper.SetDefault("http.port", "8080")
	viper.SetDefault("http.rate_limit_rps", 20)
	viper.SetDefault("http.rate_limit_burst", 40)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "json")
}

// Load builds a Config from viper, applying defaults for every unset key.
func Load() (*Config, error) {
	setDefaults()

	loc, err := time.LoadLocation(viper.GetString("auction.timezone"))
	if err != nil {
		return nil, fmt.Errorf("auction.timezone: %w", err)
	}

	bonus, err := decimal.NewFromString(viper.GetString("charge.bonus_rate"))
	if err != nil {
		return nil, fmt.Errorf("charge.bonus_rate: %w", err)
	}
	if bonus.IsNegative() {
		return nil, fmt.Errorf("charge.bonus_rate must not be negative")
	}

	cfg := &Config{
		Auction: AuctionConfig{
			Timezone:              viper.GetString("auction.timezone"),
			Location:              loc,
			MinBid:                viper.GetInt64("auction.min_bid"),
			WinnersPerGroup:       viper.GetInt("auction.winners_per_group"),
			CutoffBeforeWeekStart: viper.GetDuration("auction.cutoff_before_week_start"),
			BatchSize:             viper.GetInt("auction.batch_size"),
			LockTTL:               viper.GetDuration("auction.lock_ttl"),
		},
		Ledger: LedgerConfig{
			MaxRetries:          viper.GetInt("ledger.max_retries"),
			RetryInterval:       viper.GetDuration("ledger.retry_interval"),
			LowBalanceThreshold: viper.GetInt64("ledger.low_balance_threshold"),
		},
		Charge: ChargeConfig{
			BonusRate: bonus,
			QuoteFee:  viper.GetInt64("quote.fee"),
		},
		Subscription: SubscriptionConfig{
			Plans:      viper.GetStringSlice("subscription.plans"),
			PeriodDays: viper.GetInt("subscription.period_days"),
		},
		Scheduler: SchedulerConfig{
			Enabled:    viper.GetBool("scheduler.enabled"),
			Spec:       viper.GetString("scheduler.spec"),
			RunOnStart: viper.GetBool("scheduler.run_on_start"),
			Timeout:    viper.GetDuration("scheduler.timeout"),
		},
		HTTP: HTTPConfig{
			Port:           viper.GetString("http.port"),
			RateLimitRPS:   viper.GetFloat64("http.rate_limit_rps"),
			RateLimitBurst: viper.GetInt("http.rate_limit_burst"),
		},
		Log: LogConfig{
			Level:  viper.GetString("log.level"),
			Format: viper.GetString("log.format"),
		},
	}

	if cfg.Auction.WinnersPerGroup <= 0 {
		return nil, fmt.Errorf("auction.winners_per_group must be positive")
	}
	if cfg.Auction.BatchSize <= 0 {
		return nil, fmt.Errorf("auction.batch_size must be positive")
	}
	// A run may last up to the scheduler timeout; the lock must outlive it.
	if cfg.Auction.LockTTL < cfg.Scheduler.Timeout {
		return nil, fmt.Errorf("auction.lock_ttl (%s) must not be shorter than scheduler.timeout (%s)", cfg.Auction.LockTTL, cfg.Scheduler.Timeout)
	}
	return cfg, nil
}
