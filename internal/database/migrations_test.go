package database

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFilesArePaired(t *testing.T) {
	names, err := fs.Glob(migrationFS, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, name := range names {
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Errorf("unexpected migration file %s", name)
		}
	}
	assert.Equal(t, ups, downs)
}

func TestInitMigrationDefinesSchema(t *testing.T) {
	raw, err := migrationFS.ReadFile("migrations/0001_init.up.sql")
	require.NoError(t, err)
	sql := string(raw)

	for _, table := range []string{"partners", "partner_balances", "ledger_entries", "ad_bids", "ad_placements", "notifications", "settlement_runs"} {
		assert.Contains(t, sql, "CREATE TABLE IF NOT EXISTS "+table+" ")
	}
	assert.Contains(t, sql, "CHECK (cash_points >= 0)")
	assert.Contains(t, sql, "UNIQUE (partner_id, idempotency_key)")
	assert.Contains(t, sql, "UNIQUE (week_key, category, region_key, rank)")
}

func TestGetConfigDefaults(t *testing.T) {
	cfg := GetConfig()
	assert.Equal(t, "partnerhub", cfg.Name)
	assert.Contains(t, cfg.DSN(), "dbname=partnerhub")
	assert.Contains(t, cfg.DSN(), "sslmode=disable")
}
