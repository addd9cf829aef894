package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/partnerhub/backend/internal/audit"
	"github.com/partnerhub/backend/internal/config"
	"github.com/partnerhub/backend/internal/metrics"
	"github.com/partnerhub/backend/internal/models"
	"github.com/sirupsen/logrus"
)

const ledgerEntryColumns = `id, partner_id, entry_type, delta_points, delta_cash, delta_cash_service,
	delta_tickets_general, delta_tickets_service, cash_after, cash_service_after,
	tickets_general_after, tickets_service_after, order_id, bid_id, request_id, created_at`

// Receipt is the outcome of one balance operation. Applied is false when an
// idempotency key matched an earlier entry and nothing was mutated.
type Receipt struct {
	Entry   *models.LedgerEntry
	Applied bool
	Notices []string
}

// LedgerService owns every mutation of partner balances. Each operation runs
// in one transaction holding the partner's balance row lock, appends exactly
// one ledger entry and bumps the row version.
type LedgerService struct {
	db       *sql.DB
	dbx      *sqlx.DB
	cfg      config.LedgerConfig
	notifier *NotificationService
	audit    *audit.Logger
	log      *logrus.Entry
	now      func() time.Time
	newID    func() string
}

func NewLedgerService(db *sql.DB, cfg config.LedgerConfig, notifier *NotificationService) *LedgerService {
	return &LedgerService{
		db:       db,
		dbx:      sqlx.NewDb(db, "postgres"),
		cfg:      cfg,
		notifier: notifier,
		audit:    audit.NewLogger(),
		log:      logrus.WithField("component", "ledger"),
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
}

type mutation struct {
	partnerID      string
	entryType      models.LedgerEntryType
	corr           models.Correlation
	idempotencyKey string
	plan           func(bal *models.PartnerBalance) (models.Deltas, error)
	// matches reports whether an earlier entry under the same key records
	// the same operation. Nil accepts any earlier entry.
	matches func(e *models.LedgerEntry) bool
}

// OpenAccount creates the partner row and its zero balance. Opening an existing account is a no-op.
func (s *LedgerService) OpenAccount(ctx context.Context, partnerID string) error {
	if partnerID == "" {
		return invalidArgument("partnerId", "is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := s.now()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO partners (partner_id, subscription_status, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (partner_id) DO NOTHING`,
		partnerID, models.SubscriptionNone, now); err != nil {
		return fmt.Errorf("OpenAccount: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO partner_balances (partner_id, cash_points, cash_points_service, bid_tickets_general, bid_tickets_service, version, updated_at)
		VALUES ($1, 0, 0, 0, 0, 1, $2)
		ON CONFLICT (partner_id) DO NOTHING`,
		partnerID, now); err != nil {
		return fmt.Errorf("OpenAccount: %w", err)
	}

	return tx.Commit()
}

// Credit adds amount to a single pool.
func (s *LedgerService) Credit(ctx context.Context, partnerID string, pool models.Pool, amount int64, entryType models.LedgerEntryType, corr models.Correlation) (*Receipt, error) {
	if !pool.Valid() {
		return nil, invalidArgument("pool", fmt.Sprintf("unknown pool %q", pool))
	}
	if amount <= 0 {
		return nil, invalidArgument("amount", "must be positive")
	}

	return s.run(ctx, mutation{
		partnerID:      partnerID,
		entryType:      entryType,
		corr:           corr,
		idempotencyKey: idempotencyKey(corr),
		plan: func(*models.PartnerBalance) (models.Deltas, error) {
			return models.DeltaFor(pool, amount), nil
		},
		matches: func(e *models.LedgerEntry) bool {
			return e.Type == entryType && e.Deltas() == models.DeltaFor(pool, amount)
		},
	})
}

// DebitWithPriority takes amount from cashPoints first and the remainder from
// cashPointsService. It never partially succeeds.
func (s *LedgerService) DebitWithPriority(ctx context.Context, partnerID string, amount int64, entryType models.LedgerEntryType, corr models.Correlation) (*Receipt, error) {
	if amount <= 0 {
		return nil, invalidArgument("amount", "must be positive")
	}
	m := s.priorityDebit(partnerID, amount, entryType, corr, idempotencyKey(corr))
	m.matches = func(e *models.LedgerEntry) bool {
		return e.Type == entryType && e.DeltaPoints == -amount
	}
	return s.run(ctx, m)
}

// DebitTickets spends bid tickets from one ticket pool.
func (s *LedgerService) DebitTickets(ctx context.Context, partnerID string, pool models.Pool, amount int64, entryType models.LedgerEntryType, corr models.Correlation) (*Receipt, error) {
	if !pool.IsTicket() {
		return nil, invalidArgument("pool", "must be a bid ticket pool")
	}
	if amount <= 0 {
		return nil, invalidArgument("amount", "must be positive")
	}

	return s.run(ctx, mutation{
		partnerID:      partnerID,
		entryType:      entryType,
		corr:           corr,
		idempotencyKey: idempotencyKey(corr),
		plan: func(bal *models.PartnerBalance) (models.Deltas, error) {
			if bal.Get(pool) < amount {
				return models.Deltas{}, &InsufficientBalanceError{PartnerID: bal.PartnerID, Available: bal.Get(pool), Requested: amount}
			}
			return models.DeltaFor(pool, -amount), nil
		},
		matches: func(e *models.LedgerEntry) bool {
			return e.Type == entryType && e.Deltas() == models.DeltaFor(pool, -amount)
		},
	})
}

// Reserve escrows a bid amount. Escrow is an immediate priority debit.
func (s *LedgerService) Reserve(ctx context.Context, partnerID string, amount int64, bidID string) (*Receipt, error) {
	var receipt *Receipt
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		receipt, err = s.ReserveTx(ctx, tx, partnerID, amount, bidID)
		return err
	})
	if err != nil {
		metrics.RecordLedgerOperation(string(models.EntryBidReserve), "error")
		return nil, fmt.Errorf("Reserve: %w", err)
	}
	s.finish(ctx, receipt)
	return receipt, nil
}

// ReserveTx is Reserve inside a caller-owned transaction.
func (s *LedgerService) ReserveTx(ctx context.Context, tx *sql.Tx, partnerID string, amount int64, bidID string) (*Receipt, error) {
	if amount <= 0 {
		return nil, invalidArgument("amount", "must be positive")
	}
	if bidID == "" {
		return nil, invalidArgument("bidId", "is required")
	}
	corr := models.Correlation{BidID: bidID}
	return s.apply(ctx, tx, s.priorityDebit(partnerID, amount, models.EntryBidReserve, corr, bidID+":reserve"))
}

// Refund returns a lost bid's amount to cashPoints. A bid is refunded at most once.
func (s *LedgerService) Refund(ctx context.Context, partnerID string, amount int64, bidID string) (*Receipt, error) {
	var receipt *Receipt
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		receipt, err = s.RefundTx(ctx, tx, partnerID, amount, bidID)
		return err
	})
	if err != nil {
		metrics.RecordLedgerOperation(string(models.EntryRefund), "error")
		return nil, fmt.Errorf("Refund: %w", err)
	}
	s.finish(ctx, receipt)
	return receipt, nil
}

// RefundTx is Refund inside a caller-owned transaction.
func (s *LedgerService) RefundTx(ctx context.Context, tx *sql.Tx, partnerID string, amount int64, bidID string) (*Receipt, error) {
	if amount <= 0 {
		return nil, invalidArgument("amount", "must be positive")
	}
	if bidID == "" {
		return nil, invalidArgument("bidId", "is required")
	}
	return s.apply(ctx, tx, mutation{
		partnerID:      partnerID,
		entryType:      models.EntryRefund,
		corr:           models.Correlation{BidID: bidID},
		idempotencyKey: bidID + ":refund",
		plan: func(*models.PartnerBalance) (models.Deltas, error) {
			return models.Deltas{Cash: amount}, nil
		},
	})
}

func (s *LedgerService) GetBalance(ctx context.Context, partnerID string) (*models.PartnerBalance, error) {
	var bal models.PartnerBalance
	err := s.db.QueryRowContext(ctx, `
		SELECT partner_id, cash_points, cash_points_service, bid_tickets_general, bid_tickets_service, version, updated_at
		FROM partner_balances
		WHERE partner_id = $1`, partnerID).Scan(
		&bal.PartnerID, &bal.CashPoints, &bal.CashPointsService,
		&bal.BidTickets.General, &bal.BidTickets.Service, &bal.Version, &bal.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPartnerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetBalance: %w", err)
	}
	return &bal, nil
}

// ListEntries returns a partner's ledger newest first.
func (s *LedgerService) ListEntries(ctx context.Context, partnerID string, limit, offset int) ([]models.LedgerEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	entries := []models.LedgerEntry{}
	err := s.dbx.SelectContext(ctx, &entries, `
		SELECT `+ledgerEntryColumns+`
		FROM ledger_entries
		WHERE partner_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`, partnerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ListEntries: %w", err)
	}
	return entries, nil
}

// Reconcile checks that the stored balance equals the sum of every ledger delta.
func (s *LedgerService) Reconcile(ctx context.Context, partnerID string) (*models.ReconciliationReport, error) {
	bal, err := s.GetBalance(ctx, partnerID)
	if err != nil {
		return nil, err
	}

	report := &models.ReconciliationReport{PartnerID: partnerID, Stored: *bal, CheckedAt: s.now()}
	err = s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(delta_cash), 0), COALESCE(SUM(delta_cash_service), 0),
		       COALESCE(SUM(delta_tickets_general), 0), COALESCE(SUM(delta_tickets_service), 0), COUNT(*)
		FROM ledger_entries
		WHERE partner_id = $1`, partnerID).Scan(
		&report.Ledger.Cash, &report.Ledger.CashService,
		&report.Ledger.TicketsGeneral, &report.Ledger.TicketsService, &report.EntryCount)
	if err != nil {
		return nil, fmt.Errorf("Reconcile: %w", err)
	}

	report.Consistent = report.Ledger == models.Deltas{
		Cash:           bal.CashPoints,
		CashService:    bal.CashPointsService,
		TicketsGeneral: bal.BidTickets.General,
		TicketsService: bal.BidTickets.Service,
	}
	if !report.Consistent {
		s.log.WithFields(logrus.Fields{"partner_id": partnerID, "stored": bal, "ledger": report.Ledger}).
			Error("balance does not reconcile with ledger")
	}
	return report, nil
}

func (s *LedgerService) priorityDebit(partnerID string, amount int64, entryType models.LedgerEntryType, corr models.Correlation, key string) mutation {
	return mutation{
		partnerID:      partnerID,
		entryType:      entryType,
		corr:           corr,
		idempotencyKey: key,
		plan: func(bal *models.PartnerBalance) (models.Deltas, error) {
			if bal.SpendableCash() < amount {
				return models.Deltas{}, &InsufficientBalanceError{PartnerID: bal.PartnerID, Available: bal.SpendableCash(), Requested: amount}
			}
			fromGeneral := min(bal.CashPoints, amount)
			return models.Deltas{Cash: -fromGeneral, CashService: -(amount - fromGeneral)}, nil
		},
	}
}

func (s *LedgerService) run(ctx context.Context, m mutation) (*Receipt, error) {
	var receipt *Receipt
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		receipt, err = s.apply(ctx, tx, m)
		return err
	})
	if err != nil {
		metrics.RecordLedgerOperation(string(m.entryType), "error")
		return nil, fmt.Errorf("%s: %w", m.entryType, err)
	}
	s.finish(ctx, receipt)
	return receipt, nil
}

// finish runs the post-commit side effects of a receipt.
func (s *LedgerService) finish(ctx context.Context, receipt *Receipt) {
	if !receipt.Applied {
		metrics.RecordLedgerOperation(string(receipt.Entry.Type), "replayed")
		return
	}
	metrics.RecordLedgerOperation(string(receipt.Entry.Type), "ok")
	s.audit.LogLedgerEntry(receipt.Entry)
	if s.notifier != nil && len(receipt.Notices) > 0 {
		s.notifier.Publish(ctx, receipt.Notices...)
	}
}

// inTx runs fn in a transaction, retrying lock conflicts with exponential backoff.
func (s *LedgerService) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	attempt := func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		defer tx.Rollback()

		if err := fn(tx); err != nil {
			return retryable(err)
		}
		return retryable(tx.Commit())
	}

	policy := backoff.NewExponentialBackOff()
	if s.cfg.RetryInterval > 0 {
		policy.InitialInterval = s.cfg.RetryInterval
	}
	retries := s.cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return backoff.Retry(attempt, backoff.WithContext(backoff.WithMaxRetries(policy, uint64(retries)), ctx))
}

// retryable marks everything except lock conflicts as permanent.
func retryable(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrConcurrentModification) {
		return err
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return err
		case "23505": // unique_violation: a concurrent writer used the same idempotency key
			return err
		}
	}
	return backoff.Permanent(err)
}

// apply performs one mutation against a locked balance row inside tx.
func (s *LedgerService) apply(ctx context.Context, tx *sql.Tx, m mutation) (*Receipt, error) {
	bal, err := s.lockBalance(ctx, tx, m.partnerID)
	if err != nil {
		return nil, err
	}

	if m.idempotencyKey != "" {
		existing, err := s.entryByKey(ctx, tx, bal.PartnerID, m.idempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			if m.matches != nil && !m.matches(existing) {
				return nil, invalidArgument(keyField(m.corr), "was already used with a different amount or pool")
			}
			return &Receipt{Entry: existing, Applied: false}, nil
		}
	}

	deltas, err := m.plan(bal)
	if err != nil {
		return nil, err
	}

	next := bal.Apply(deltas)
	if next.Negative() {
		return nil, &InsufficientBalanceError{PartnerID: bal.PartnerID, Available: bal.SpendableCash(), Requested: -deltas.Total()}
	}

	entry := &models.LedgerEntry{
		ID:                  s.newID(),
		PartnerID:           bal.PartnerID,
		Type:                m.entryType,
		DeltaPoints:         deltas.Total(),
		DeltaCash:           deltas.Cash,
		DeltaCashService:    deltas.CashService,
		DeltaTicketsGeneral: deltas.TicketsGeneral,
		DeltaTicketsService: deltas.TicketsService,
		CashAfter:           next.CashPoints,
		CashServiceAfter:    next.CashPointsService,
		TicketsGeneralAfter: next.BidTickets.General,
		TicketsServiceAfter: next.BidTickets.Service,
		OrderID:             m.corr.OrderID,
		BidID:               m.corr.BidID,
		RequestID:           m.corr.RequestID,
		CreatedAt:           s.now(),
	}

	if err := s.createLedgerEntry(ctx, tx, entry, m.idempotencyKey); err != nil {
		return nil, err
	}
	if err := s.updateBalance(ctx, tx, next, bal.Version); err != nil {
		return nil, err
	}

	receipt := &Receipt{Entry: entry, Applied: true}
	if s.notifier != nil && s.crossedLowBalance(*bal, next) {
		n := lowBalanceNotification(entry, s.cfg.LowBalanceThreshold)
		recorded, err := s.notifier.RecordTx(ctx, tx, n)
		if err != nil {
			return nil, err
		}
		if recorded {
			receipt.Notices = append(receipt.Notices, n.ID)
		}
	}
	return receipt, nil
}

func (s *LedgerService) crossedLowBalance(before, after models.PartnerBalance) bool {
	threshold := s.cfg.LowBalanceThreshold
	return threshold > 0 && before.SpendableCash() >= threshold && after.SpendableCash() < threshold
}

func (s *LedgerService) lockBalance(ctx context.Context, tx *sql.Tx, partnerID string) (*models.PartnerBalance, error) {
	var bal models.PartnerBalance
	err := tx.QueryRowContext(ctx, `
		SELECT partner_id, cash_points, cash_points_service, bid_tickets_general, bid_tickets_service, version, updated_at
		FROM partner_balances
		WHERE partner_id = $1
		FOR UPDATE`, partnerID).Scan(
		&bal.PartnerID, &bal.CashPoints, &bal.CashPointsService,
		&bal.BidTickets.General, &bal.BidTickets.Service, &bal.Version, &bal.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPartnerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &bal, nil
}

// entryByKey looks up an earlier entry of the same partner. Keys are only
// unique per partner: a customer request is quoted by many partners.
func (s *LedgerService) entryByKey(ctx context.Context, tx *sql.Tx, partnerID, key string) (*models.LedgerEntry, error) {
	var e models.LedgerEntry
	err := tx.QueryRowContext(ctx, `
		SELECT `+ledgerEntryColumns+`
		FROM ledger_entries
		WHERE partner_id = $1 AND idempotency_key = $2`, partnerID, key).Scan(
		&e.ID, &e.PartnerID, &e.Type, &e.DeltaPoints, &e.DeltaCash, &e.DeltaCashService,
		&e.DeltaTicketsGeneral, &e.DeltaTicketsService, &e.CashAfter, &e.CashServiceAfter,
		&e.TicketsGeneralAfter, &e.TicketsServiceAfter, &e.OrderID, &e.BidID, &e.RequestID, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *LedgerService) createLedgerEntry(ctx context.Context, tx *sql.Tx, e *models.LedgerEntry, key string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO ledger_entries (id, partner_id, entry_type, delta_points, delta_cash, delta_cash_service,
			delta_tickets_general, delta_tickets_service, cash_after, cash_service_after,
			tickets_general_after, tickets_service_after, order_id, bid_id, request_id, idempotency_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NULLIF($16, ''), $17)`,
		e.ID, e.PartnerID, e.Type, e.DeltaPoints, e.DeltaCash, e.DeltaCashService,
		e.DeltaTicketsGeneral, e.DeltaTicketsService, e.CashAfter, e.CashServiceAfter,
		e.TicketsGeneralAfter, e.TicketsServiceAfter, e.OrderID, e.BidID, e.RequestID, key, e.CreatedAt)
	return err
}

func (s *LedgerService) updateBalance(ctx context.Context, tx *sql.Tx, next models.PartnerBalance, version int) error {
	result, err := tx.ExecContext(ctx, `
		UPDATE partner_balances
		SET cash_points = $1, cash_points_service = $2, bid_tickets_general = $3, bid_tickets_service = $4,
			version = version + 1, updated_at = $5
		WHERE partner_id = $6 AND version = $7`,
		next.CashPoints, next.CashPointsService, next.BidTickets.General, next.BidTickets.Service,
		s.now(), next.PartnerID, version)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrConcurrentModification
	}
	return nil
}

// idempotencyKey derives a key from the business reference of a mutation.
// Mutations without one are never deduplicated.
// idempotencyKey does not include the entry type: an order or request pays
// for one thing, whatever pool it was first charged to.
func idempotencyKey(corr models.Correlation) string {
	switch {
	case corr.OrderID != "":
		return "order:" + corr.OrderID
	case corr.RequestID != "":
		return "request:" + corr.RequestID
	}
	return ""
}

func keyField(corr models.Correlation) string {
	if corr.OrderID != "" {
		return "orderId"
	}
	if corr.RequestID != "" {
		return "requestId"
	}
	return "bidId"
}
