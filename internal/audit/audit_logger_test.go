package audit

import (
	"errors"
	"testing"
	"time"

	"github.com/partnerhub/backend/internal/models"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	base, hook := test.NewNullLogger()
	logger := NewLoggerWith(base)

	t.Run("ledger entry", func(t *testing.T) {
		hook.Reset()
		logger.LogLedgerEntry(&models.LedgerEntry{
			ID:          "e1",
			PartnerID:   "p1",
			Type:        models.EntryRefund,
			DeltaPoints: 15000,
			DeltaCash:   15000,
			CashAfter:   15000,
			BidID:       "b1",
			CreatedAt:   time.Now(),
		})

		entry := hook.LastEntry()
		require.NotNil(t, entry)
		assert.Equal(t, true, entry.Data["audit"])
		assert.Equal(t, "refund", entry.Data["event_type"])
		assert.Equal(t, "p1", entry.Data["partner_id"])
		assert.Equal(t, int64(15000), entry.Data["amount"])
	})

	t.Run("error", func(t *testing.T) {
		hook.Reset()
		logger.LogError("p1", "b1", errors.New("boom"))

		entry := hook.LastEntry()
		require.NotNil(t, entry)
		assert.Equal(t, "FAILED", entry.Data["status"])
		assert.Equal(t, map[string]string{"error": "boom"}, entry.Data["details"])
	})

	t.Run("settlement", func(t *testing.T) {
		hook.Reset()
		logger.LogSettlement(&models.SettlementRun{ID: "r1", WeekKey: "2026-10-19", Status: models.SettlementCompleted, WonCount: 5})

		entry := hook.LastEntry()
		require.NotNil(t, entry)
		assert.Equal(t, "WEEKLY_SETTLEMENT", entry.Data["event_type"])
		assert.Equal(t, "completed", entry.Data["status"])
	})
}
