package services

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/partnerhub/backend/internal/config"
	"github.com/partnerhub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerService_Credit(t *testing.T) {
	t.Run("credits a single pool", func(t *testing.T) {
		ledger, mock := newTestLedger(t, config.LedgerConfig{}, nil)
		corr := models.Correlation{OrderID: "order-1"}
		key := "order:order-1"

		mock.ExpectBegin()
		expectLockBalance(mock, "p1", pools{cash: 100, service: 50}, 3)
		expectNoEntryForKey(mock, "p1", key)
		expectInsertEntry(mock, "p1", models.EntryCreditChargeCash, pools{cash: 5000}, pools{cash: 5100, service: 50}, corr, key)
		expectUpdateBalance(mock, "p1", pools{cash: 5100, service: 50}, 3)
		mock.ExpectCommit()

		receipt, err := ledger.Credit(testCtx(), "p1", models.PoolCash, 5000, models.EntryCreditChargeCash, corr)
		require.NoError(t, err)
		assert.True(t, receipt.Applied)
		assert.Equal(t, int64(5000), receipt.Entry.DeltaPoints)
		assert.Equal(t, int64(5100), receipt.Entry.CashAfter)
		assert.Equal(t, int64(50), receipt.Entry.CashServiceAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ticket pool", func(t *testing.T) {
		ledger, mock := newTestLedger(t, config.LedgerConfig{}, nil)

		mock.ExpectBegin()
		expectLockBalance(mock, "p1", pools{general: 1, tickets: 2}, 1)
		expectInsertEntry(mock, "p1", models.EntryCreditCharge, pools{tickets: 3}, pools{general: 1, tickets: 5}, models.Correlation{}, "")
		expectUpdateBalance(mock, "p1", pools{general: 1, tickets: 5}, 1)
		mock.ExpectCommit()

		receipt, err := ledger.Credit(testCtx(), "p1", models.PoolTicketsService, 3, models.EntryCreditCharge, models.Correlation{})
		require.NoError(t, err)
		assert.Equal(t, int64(5), receipt.Entry.TicketsServiceAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("replayed order is a no-op", func(t *testing.T) {
		ledger, mock := newTestLedger(t, config.LedgerConfig{}, nil)
		corr := models.Correlation{OrderID: "order-1"}
		key := "order:order-1"
		original := models.LedgerEntry{
			ID: "entry-original", PartnerID: "p1", Type: models.EntryCreditChargeCash,
			DeltaPoints: 5000, DeltaCash: 5000, CashAfter: 5100, OrderID: "order-1", CreatedAt: fixedNow,
		}

		mock.ExpectBegin()
		expectLockBalance(mock, "p1", pools{cash: 5100}, 4)
		expectEntryForKey(mock, "p1", key, original)
		mock.ExpectCommit()

		receipt, err := ledger.Credit(testCtx(), "p1", models.PoolCash, 5000, models.EntryCreditChargeCash, corr)
		require.NoError(t, err)
		assert.False(t, receipt.Applied)
		assert.Equal(t, "entry-original", receipt.Entry.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects bad input without touching the database", func(t *testing.T) {
		ledger, mock := newTestLedger(t, config.LedgerConfig{}, nil)

		_, err := ledger.Credit(testCtx(), "p1", models.PoolCash, 0, models.EntryCreditChargeCash, models.Correlation{})
		assert.ErrorIs(t, err, ErrInvalidArgument)

		_, err = ledger.Credit(testCtx(), "p1", models.Pool("gold"), 10, models.EntryCreditChargeCash, models.Correlation{})
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown partner", func(t *testing.T) {
		ledger, mock := newTestLedger(t, config.LedgerConfig{}, nil)

		mock.ExpectBegin()
		mock.ExpectQuery(lockBalanceSQL).WithArgs("ghost").WillReturnRows(sqlmock.NewRows(balanceColumns))
		mock.ExpectRollback()

		_, err := ledger.Credit(testCtx(), "ghost", models.PoolCash, 10, models.EntryCreditChargeCash, models.Correlation{})
		assert.ErrorIs(t, err, ErrPartnerNotFound)
		assert.Equal(t, CodeNotFound, CodeOf(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLedgerService_DebitWithPriority(t *testing.T) {
	tests := []struct {
		name   string
		before pools
		amount int64
		delta  pools
		after  pools
	}{
		{"general covers everything", pools{cash: 5000, service: 5000}, 3000, pools{cash: -3000}, pools{cash: 2000, service: 5000}},
		{"general drained first", pools{cash: 3000, service: 5000}, 4000, pools{cash: -3000, service: -1000}, pools{cash: 0, service: 4000}},
		{"service only", pools{cash: 0, service: 5000}, 5000, pools{service: -5000}, pools{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger, mock := newTestLedger(t, config.LedgerConfig{}, nil)
			corr := models.Correlation{RequestID: "req-1"}
			key := "request:req-1"

			mock.ExpectBegin()
			expectLockBalance(mock, "p1", tt.before, 7)
			expectNoEntryForKey(mock, "p1", key)
			expectInsertEntry(mock, "p1", models.EntryDebitQuote, tt.delta, tt.after, corr, key)
			expectUpdateBalance(mock, "p1", tt.after, 7)
			mock.ExpectCommit()

			receipt, err := ledger.DebitWithPriority(testCtx(), "p1", tt.amount, models.EntryDebitQuote, corr)
			require.NoError(t, err)
			assert.Equal(t, -tt.amount, receipt.Entry.DeltaPoints)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}

	t.Run("insufficient combined balance leaves pools untouched", func(t *testing.T) {
		ledger, mock := newTestLedger(t, config.LedgerConfig{}, nil)

		mock.ExpectBegin()
		expectLockBalance(mock, "p1", pools{cash: 1000, service: 500}, 2)
		mock.ExpectRollback()

		_, err := ledger.DebitWithPriority(testCtx(), "p1", 2000, models.EntryDebitQuote, models.Correlation{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInsufficientBalance)

		var ibe *InsufficientBalanceError
		require.True(t, errors.As(err, &ibe))
		assert.Equal(t, int64(1500), ibe.Available)
		assert.Equal(t, int64(2000), ibe.Requested)
		assert.Equal(t, "insufficient-balance", ReasonOf(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("version conflict is retried", func(t *testing.T) {
		ledger, mock := newTestLedger(t, config.LedgerConfig{MaxRetries: 2}, nil)

		mock.ExpectBegin()
		expectLockBalance(mock, "p1", pools{cash: 5000}, 1)
		expectInsertEntry(mock, "p1", models.EntryDebitQuote, pools{cash: -1000}, pools{cash: 4000}, models.Correlation{}, "")
		mock.ExpectExec(updateBalanceSQL).
			WithArgs(int64(4000), int64(0), int64(0), int64(0), fixedNow, "p1", 1).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		mock.ExpectBegin()
		expectLockBalance(mock, "p1", pools{cash: 4500}, 2)
		expectInsertEntry(mock, "p1", models.EntryDebitQuote, pools{cash: -1000}, pools{cash: 3500}, models.Correlation{}, "")
		expectUpdateBalance(mock, "p1", pools{cash: 3500}, 2)
		mock.ExpectCommit()

		receipt, err := ledger.DebitWithPriority(testCtx(), "p1", 1000, models.EntryDebitQuote, models.Correlation{})
		require.NoError(t, err)
		assert.Equal(t, int64(3500), receipt.Entry.CashAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("low balance crossing records a notification", func(t *testing.T) {
		ledger, mock := newTestLedger(t, config.LedgerConfig{LowBalanceThreshold: 10000}, NewNotificationService(nil))

		mock.ExpectBegin()
		expectLockBalance(mock, "p1", pools{cash: 12000}, 1)
		expectInsertEntry(mock, "p1", models.EntryDebitQuote, pools{cash: -5000}, pools{cash: 7000}, models.Correlation{}, "")
		expectUpdateBalance(mock, "p1", pools{cash: 7000}, 1)
		mock.ExpectExec(insertNoticeSQL).
			WithArgs(NotificationID(models.NotifyLowBalance, "entry-1"), "p1", models.NotifyLowBalance, sqlmock.AnyArg(), fixedNow).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		receipt, err := ledger.DebitWithPriority(testCtx(), "p1", 5000, models.EntryDebitQuote, models.Correlation{})
		require.NoError(t, err)
		assert.Equal(t, []string{NotificationID(models.NotifyLowBalance, "entry-1")}, receipt.Notices)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLedgerService_DebitTickets(t *testing.T) {
	t.Run("spends general tickets", func(t *testing.T) {
		ledger, mock := newTestLedger(t, config.LedgerConfig{}, nil)
		corr := models.Correlation{RequestID: "req-9"}
		key := "request:req-9"

		mock.ExpectBegin()
		expectLockBalance(mock, "p1", pools{cash: 10, general: 2}, 1)
		expectNoEntryForKey(mock, "p1", key)
		expectInsertEntry(mock, "p1", models.EntryDebitTicketPoints, pools{general: -1}, pools{cash: 10, general: 1}, corr, key)
		expectUpdateBalance(mock, "p1", pools{cash: 10, general: 1}, 1)
		mock.ExpectCommit()

		receipt, err := ledger.DebitTickets(testCtx(), "p1", models.PoolTicketsGeneral, 1, models.EntryDebitTicketPoints, corr)
		require.NoError(t, err)
		assert.Equal(t, int64(1), receipt.Entry.TicketsGeneralAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no tickets left", func(t *testing.T) {
		ledger, mock := newTestLedger(t, config.LedgerConfig{}, nil)

		mock.ExpectBegin()
		expectLockBalance(mock, "p1", pools{cash: 100000}, 1)
		mock.ExpectRollback()

		_, err := ledger.DebitTickets(testCtx(), "p1", models.PoolTicketsGeneral, 1, models.EntryDebitTicketPoints, models.Correlation{})
		assert.ErrorIs(t, err, ErrInsufficientBalance)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cash pool rejected", func(t *testing.T) {
		ledger, _ := newTestLedger(t, config.LedgerConfig{}, nil)

		_, err := ledger.DebitTickets(testCtx(), "p1", models.PoolCash, 1, models.EntryDebitTicketPoints, models.Correlation{})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestLedgerService_ReserveAndRefund(t *testing.T) {
	t.Run("reserve escrows with priority", func(t *testing.T) {
		ledger, mock := newTestLedger(t, config.LedgerConfig{}, nil)
		corr := models.Correlation{BidID: "bid-1"}

		mock.ExpectBegin()
		expectLockBalance(mock, "p1", pools{cash: 10000, service: 10000}, 1)
		expectNoEntryForKey(mock, "p1", "bid-1:reserve")
		expectInsertEntry(mock, "p1", models.EntryBidReserve, pools{cash: -10000, service: -5000}, pools{service: 5000}, corr, "bid-1:reserve")
		expectUpdateBalance(mock, "p1", pools{service: 5000}, 1)
		mock.ExpectCommit()

		receipt, err := ledger.Reserve(testCtx(), "p1", 15000, "bid-1")
		require.NoError(t, err)
		assert.Equal(t, "bid-1", receipt.Entry.BidID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("refund credits general cash", func(t *testing.T) {
		ledger, mock := newTestLedger(t, config.LedgerConfig{}, nil)
		corr := models.Correlation{BidID: "bid-1"}

		mock.ExpectBegin()
		expectLockBalance(mock, "p1", pools{service: 5000}, 2)
		expectNoEntryForKey(mock, "p1", "bid-1:refund")
		expectInsertEntry(mock, "p1", models.EntryRefund, pools{cash: 15000}, pools{cash: 15000, service: 5000}, corr, "bid-1:refund")
		expectUpdateBalance(mock, "p1", pools{cash: 15000, service: 5000}, 2)
		mock.ExpectCommit()

		receipt, err := ledger.Refund(testCtx(), "p1", 15000, "bid-1")
		require.NoError(t, err)
		assert.True(t, receipt.Applied)
		assert.Equal(t, int64(15000), receipt.Entry.CashAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("second refund of the same bid is a no-op", func(t *testing.T) {
		ledger, mock := newTestLedger(t, config.LedgerConfig{}, nil)
		first := models.LedgerEntry{
			ID: "entry-first", PartnerID: "p1", Type: models.EntryRefund,
			DeltaPoints: 15000, DeltaCash: 15000, CashAfter: 15000, BidID: "bid-1", CreatedAt: fixedNow.Add(-time.Hour),
		}

		mock.ExpectBegin()
		expectLockBalance(mock, "p1", pools{cash: 15000}, 3)
		expectEntryForKey(mock, "p1", "bid-1:refund", first)
		mock.ExpectCommit()

		receipt, err := ledger.Refund(testCtx(), "p1", 15000, "bid-1")
		require.NoError(t, err)
		assert.False(t, receipt.Applied)
		assert.Equal(t, "entry-first", receipt.Entry.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("refund requires a bid", func(t *testing.T) {
		ledger, _ := newTestLedger(t, config.LedgerConfig{}, nil)

		_, err := ledger.Refund(testCtx(), "p1", 100, "")
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestLedgerService_OpenAccount(t *testing.T) {
	ledger, mock := newTestLedger(t, config.LedgerConfig{}, nil)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO partners (.+) ON CONFLICT \(partner_id\) DO NOTHING`).
		WithArgs("p1", models.SubscriptionNone, fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO partner_balances (.+) ON CONFLICT \(partner_id\) DO NOTHING`).
		WithArgs("p1", fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, ledger.OpenAccount(testCtx(), "p1"))
	assert.ErrorIs(t, ledger.OpenAccount(testCtx(), ""), ErrInvalidArgument)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerService_Reconcile(t *testing.T) {
	sumsSQL := `SELECT COALESCE\(SUM\(delta_cash\), 0\)(.+) FROM ledger_entries WHERE partner_id = \$1`
	getBalanceSQL := `SELECT (.+) FROM partner_balances WHERE partner_id = \$1`

	t.Run("consistent", func(t *testing.T) {
		ledger, mock := newTestLedger(t, config.LedgerConfig{}, nil)

		mock.ExpectQuery(getBalanceSQL).WithArgs("p1").
			WillReturnRows(sqlmock.NewRows(balanceColumns).AddRow("p1", 2000, 4000, 1, 0, 9, fixedNow))
		mock.ExpectQuery(sumsSQL).WithArgs("p1").
			WillReturnRows(sqlmock.NewRows([]string{"cash", "service", "general", "tickets", "count"}).AddRow(2000, 4000, 1, 0, 8))

		report, err := ledger.Reconcile(testCtx(), "p1")
		require.NoError(t, err)
		assert.True(t, report.Consistent)
		assert.Equal(t, int64(8), report.EntryCount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("drift detected", func(t *testing.T) {
		ledger, mock := newTestLedger(t, config.LedgerConfig{}, nil)

		mock.ExpectQuery(getBalanceSQL).WithArgs("p1").
			WillReturnRows(sqlmock.NewRows(balanceColumns).AddRow("p1", 2500, 4000, 1, 0, 9, fixedNow))
		mock.ExpectQuery(sumsSQL).WithArgs("p1").
			WillReturnRows(sqlmock.NewRows([]string{"cash", "service", "general", "tickets", "count"}).AddRow(2000, 4000, 1, 0, 8))

		report, err := ledger.Reconcile(testCtx(), "p1")
		require.NoError(t, err)
		assert.False(t, report.Consistent)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLedgerService_ListEntries(t *testing.T) {
	ledger, mock := newTestLedger(t, config.LedgerConfig{}, nil)
	e := models.LedgerEntry{
		ID: "e1", PartnerID: "p1", Type: models.EntryBidReserve,
		DeltaPoints: -10000, DeltaCash: -10000, BidID: "bid-1", CreatedAt: fixedNow,
	}

	mock.ExpectQuery(`SELECT (.+) FROM ledger_entries WHERE partner_id = \$1 ORDER BY created_at DESC, id DESC LIMIT \$2 OFFSET \$3`).
		WithArgs("p1", 50, 0).
		WillReturnRows(sqlmock.NewRows(entryColumns).AddRow(entryRow(e)...))

	entries, err := ledger.ListEntries(testCtx(), "p1", 0, -5)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.EntryBidReserve, entries[0].Type)
	assert.Equal(t, "bid-1", entries[0].BidID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
