package services

import (
	"context"
	"database/sql/driver"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/partnerhub/backend/internal/config"
	"github.com/partnerhub/backend/internal/models"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

var balanceColumns = []string{"partner_id", "cash_points", "cash_points_service", "bid_tickets_general", "bid_tickets_service", "version", "updated_at"}

var entryColumns = []string{"id", "partner_id", "entry_type", "delta_points", "delta_cash", "delta_cash_service",
	"delta_tickets_general", "delta_tickets_service", "cash_after", "cash_service_after",
	"tickets_general_after", "tickets_service_after", "order_id", "bid_id", "request_id", "created_at"}

const (
	lockBalanceSQL   = `SELECT (.+) FROM partner_balances WHERE partner_id = \$1 FOR UPDATE`
	entryByKeySQL    = `SELECT (.+) FROM ledger_entries WHERE partner_id = \$1 AND idempotency_key = \$2`
	insertEntrySQL   = `INSERT INTO ledger_entries`
	updateBalanceSQL = `UPDATE partner_balances SET cash_points = \$1, cash_points_service = \$2, bid_tickets_general = \$3, bid_tickets_service = \$4, version = version \+ 1, updated_at = \$5 WHERE partner_id = \$6 AND version = \$7`
	insertNoticeSQL  = `INSERT INTO notifications (.+) ON CONFLICT \(id\) DO NOTHING`
)

func newTestLedger(t *testing.T, cfg config.LedgerConfig, notifier *NotificationService) (*LedgerService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	if cfg.RetryInterval == 0 {
		cfg.RetryInterval = time.Millisecond
	}
	ledger := NewLedgerService(db, cfg, notifier)
	ledger.now = func() time.Time { return fixedNow }
	seq := 0
	ledger.newID = func() string {
		seq++
		return fmt.Sprintf("entry-%d", seq)
	}
	return ledger, mock
}

type pools struct {
	cash, service, general, tickets int64
}

func expectLockBalance(mock sqlmock.Sqlmock, partnerID string, p pools, version int) {
	mock.ExpectQuery(lockBalanceSQL).
		WithArgs(partnerID).
		WillReturnRows(sqlmock.NewRows(balanceColumns).
			AddRow(partnerID, p.cash, p.service, p.general, p.tickets, version, fixedNow))
}

func expectNoEntryForKey(mock sqlmock.Sqlmock, partnerID, key string) {
	mock.ExpectQuery(entryByKeySQL).
		WithArgs(partnerID, key).
		WillReturnRows(sqlmock.NewRows(entryColumns))
}

func expectEntryForKey(mock sqlmock.Sqlmock, partnerID, key string, e models.LedgerEntry) {
	mock.ExpectQuery(entryByKeySQL).
		WithArgs(partnerID, key).
		WillReturnRows(sqlmock.NewRows(entryColumns).AddRow(entryRow(e)...))
}

func entryRow(e models.LedgerEntry) []driver.Value {
	return []driver.Value{e.ID, e.PartnerID, string(e.Type), e.DeltaPoints, e.DeltaCash, e.DeltaCashService,
		e.DeltaTicketsGeneral, e.DeltaTicketsService, e.CashAfter, e.CashServiceAfter,
		e.TicketsGeneralAfter, e.TicketsServiceAfter, e.OrderID, e.BidID, e.RequestID, e.CreatedAt}
}

// expectInsertEntry matches the ledger insert; delta and after are in pool order.
func expectInsertEntry(mock sqlmock.Sqlmock, partnerID string, entryType models.LedgerEntryType, delta, after pools, corr models.Correlation, key string) {
	total := delta.cash + delta.service + delta.general + delta.tickets
	mock.ExpectExec(insertEntrySQL).
		WithArgs(sqlmock.AnyArg(), partnerID, entryType, total,
			delta.cash, delta.service, delta.general, delta.tickets,
			after.cash, after.service, after.general, after.tickets,
			corr.OrderID, corr.BidID, corr.RequestID, key, fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

func expectUpdateBalance(mock sqlmock.Sqlmock, partnerID string, after pools, version int) {
	mock.ExpectExec(updateBalanceSQL).
		WithArgs(after.cash, after.service, after.general, after.tickets, fixedNow, partnerID, version).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

func testCtx() context.Context {
	return context.Background()
}

var bidColumns = []string{"id", "partner_id", "category", "region", "region_detail", "region_key", "amount", "week_key",
	"week_start", "week_end", "status", "result_rank", "refund_amount", "refunded_at", "settled_at", "created_at"}

func bidRow(b models.AdBid) []driver.Value {
	var rank, refundedAt, settledAt driver.Value
	if b.ResultRank != nil {
		rank = int64(*b.ResultRank)
	}
	if b.RefundedAt != nil {
		refundedAt = *b.RefundedAt
	}
	if b.SettledAt != nil {
		settledAt = *b.SettledAt
	}
	return []driver.Value{b.ID, b.PartnerID, b.Category, b.Region, b.RegionDetail, b.RegionKey, b.Amount, b.WeekKey,
		b.WeekStart, b.WeekEnd, string(b.Status), rank, b.RefundAmount, refundedAt, settledAt, b.CreatedAt}
}
