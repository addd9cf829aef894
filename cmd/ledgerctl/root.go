package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-redis/redis/v8"
	"github.com/partnerhub/backend/internal/config"
	"github.com/partnerhub/backend/internal/database"
	"github.com/partnerhub/backend/internal/logging"
	"github.com/partnerhub/backend/internal/services"
	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "ledgerctl",
	Short: "Operate the partner ledger and ad auction",
	Long: `ledgerctl runs operator tasks against the partner points database:
manual settlement of an auction week, balance reconciliation, account
opening and development token issuance.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(configFile); err != nil {
			return err
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return logging.Init(cfg.Log.Level, cfg.Log.Format)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a .env config file")
}

// backend holds the services a command needs, connected from the loaded config.
type backend struct {
	db         *sql.DB
	redis      *redis.Client
	ledger     *services.LedgerService
	settlement *services.SettlementService
}

func connect(ctx context.Context) (*backend, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	db, err := database.Open(ctx, database.GetConfig())
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	rdb := database.InitRedis(ctx)
	notifier := services.NewNotificationService(rdb)
	ledger := services.NewLedgerService(db, cfg.Ledger, notifier)
	return &backend{
		db:         db,
		redis:      rdb,
		ledger:     ledger,
		settlement: services.NewSettlementService(db, ledger, notifier, rdb, cfg.Auction),
	}, nil
}

func (b *backend) Close() {
	if b.redis != nil {
		b.redis.Close()
	}
	b.db.Close()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
