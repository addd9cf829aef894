package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/partnerhub/backend/internal/audit"
	"github.com/partnerhub/backend/internal/config"
	"github.com/partnerhub/backend/internal/metrics"
	"github.com/partnerhub/backend/internal/models"
	"github.com/sirupsen/logrus"
)

var placementNamespace = uuid.MustParse("b8e0f5a2-1c7d-4e39-9a6b-53d2c4f1e870")

// PlacementID is deterministic so re-running settlement never duplicates a slot.
func PlacementID(weekKey, category, regionKey string, rank int) string {
	return uuid.NewSHA1(placementNamespace, []byte(fmt.Sprintf("%s|%s|%s|%d", weekKey, category, regionKey, rank))).String()
}

// releaseLockSrc deletes the key only while it still holds this run's token.
const releaseLockSrc = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`

var releaseLock = redis.NewScript(releaseLockSrc)

type chunkResult struct {
	won, lost, late int
	refunded        int64
	refunds         []*Receipt
	notices         []string
}

// SettlementService closes a week's auction: it ranks pending bids per
// (category, region), places winners, refunds losers and forfeits late bids.
type SettlementService struct {
	db       *sqlx.DB
	ledger   *LedgerService
	notifier *NotificationService
	redis    *redis.Client
	calendar AuctionCalendar
	cfg      config.AuctionConfig
	audit    *audit.Logger
	log      *logrus.Entry
	now      func() time.Time
	newID    func() string
}

func NewSettlementService(db *sql.DB, ledger *LedgerService, notifier *NotificationService, redisClient *redis.Client, cfg config.AuctionConfig) *SettlementService {
	return &SettlementService{
		db:       sqlx.NewDb(db, "postgres"),
		ledger:   ledger,
		notifier: notifier,
		redis:    redisClient,
		calendar: NewAuctionCalendar(cfg.Location, cfg.CutoffBeforeWeekStart),
		cfg:      cfg,
		audit:    audit.NewLogger(),
		log:      logrus.WithField("component", "settlement"),
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
}

// SettleCurrentWeek settles the week that contains now; at Monday 00:00 that is the week just starting.
func (s *SettlementService) SettleCurrentWeek(ctx context.Context) (*models.SettlementRun, error) {
	return s.SettleWeek(ctx, s.calendar.CurrentWeek(s.now()).Key)
}

// SettleWeek is idempotent: bids already settled are left alone and a week
// without pending bids is a no-op that writes nothing.
func (s *SettlementService) SettleWeek(ctx context.Context, weekKey string) (*models.SettlementRun, error) {
	week, err := s.calendar.WeekByKey(weekKey)
	if err != nil {
		return nil, err
	}

	started := s.now()
	run := &models.SettlementRun{ID: s.newID(), WeekKey: week.Key, Status: models.SettlementRunning, StartedAt: started}
	log := s.log.WithFields(logrus.Fields{"week_key": week.Key, "run_id": run.ID})

	release, err := s.acquireLock(ctx, week.Key, run.ID)
	if err != nil {
		return nil, err
	}
	defer release()

	var pending int
	if err := s.db.GetContext(ctx, &pending, `
		SELECT COUNT(*) FROM ad_bids WHERE week_key = $1 AND status = $2`,
		week.Key, models.BidPending); err != nil {
		return nil, fmt.Errorf("SettleWeek: count pending: %w", err)
	}
	if pending == 0 {
		log.Info("no pending bids, nothing to settle")
		run.Status = models.SettlementNoop
		run.CompletedAt = &started
		return run, nil
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO settlement_runs (id, week_key, status, started_at)
		VALUES ($1, $2, $3, $4)`,
		run.ID, run.WeekKey, run.Status, run.StartedAt); err != nil {
		return nil, fmt.Errorf("SettleWeek: record run: %w", err)
	}

	bids := []models.AdBid{}
	if err := s.db.SelectContext(ctx, &bids, `
		SELECT `+adBidColumns+`
		FROM ad_bids
		WHERE week_key = $1`, week.Key); err != nil {
		run.Status = models.SettlementFailed
		run.Error = "failed to load bids"
		s.finishRun(ctx, run, started)
		return run, fmt.Errorf("SettleWeek: load bids: %w", err)
	}

	plan := PlanSettlement(bids, s.cfg.WinnersPerGroup, week.Cutoff)
	chunks := chunkOutcomes(plan, s.cfg.BatchSize)
	log.WithFields(logrus.Fields{"pending": pending, "outcomes": len(plan), "chunks": len(chunks)}).Info("settling week")

	var notices []string
	for i, chunk := range chunks {
		if ctx.Err() != nil {
			run.FailedChunks += len(chunks) - i
			break
		}
		res, err := s.applyChunk(ctx, week, chunk)
		if err != nil {
			// Bids in the chunk stay pending for the next run.
			run.FailedChunks++
			log.WithError(err).WithField("chunk", i).Error("settlement chunk failed")
			continue
		}
		run.WonCount += res.won
		run.LostCount += res.lost
		run.LateCount += res.late
		run.RefundedPoints += res.refunded
		notices = append(notices, res.notices...)
		for _, receipt := range res.refunds {
			s.ledger.finish(ctx, receipt)
		}
	}

	run.Status = models.SettlementCompleted
	if run.FailedChunks > 0 {
		run.Status = models.SettlementFailed
		run.Error = fmt.Sprintf("%d of %d chunks failed", run.FailedChunks, len(chunks))
	}
	s.finishRun(ctx, run, started)

	metrics.RecordSettledBids(string(models.BidWon), run.WonCount)
	metrics.RecordSettledBids(string(models.BidLost), run.LostCount)
	metrics.RecordSettledBids(string(models.BidLate), run.LateCount)
	if s.notifier != nil {
		s.notifier.Publish(ctx, notices...)
	}
	return run, nil
}

func (s *SettlementService) finishRun(ctx context.Context, run *models.SettlementRun, started time.Time) {
	completed := s.now()
	run.CompletedAt = &completed

	_, err := s.db.ExecContext(ctx, `
		UPDATE settlement_runs
		SET status = $2, won_count = $3, lost_count = $4, late_count = $5, refunded_points = $6,
			failed_chunks = $7, error = $8, completed_at = $9
		WHERE id = $1`,
		run.ID, run.Status, run.WonCount, run.LostCount, run.LateCount, run.RefundedPoints,
		run.FailedChunks, run.Error, completed)
	if err != nil {
		s.log.WithError(err).WithField("run_id", run.ID).Error("failed to record settlement run")
	}

	metrics.RecordSettlement(string(run.Status), completed.Sub(started))
	s.audit.LogSettlement(run)
}

// applyChunk writes one chunk of outcomes in a single transaction.
func (s *SettlementService) applyChunk(ctx context.Context, week AuctionWeek, chunk []Outcome) (*chunkResult, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res := &chunkResult{}
	settledAt := s.now()
	for _, o := range chunk {
		var err error
		switch o.Status {
		case models.BidWon:
			err = s.settleWon(ctx, tx, week, o, settledAt, res)
		case models.BidLost:
			err = s.settleLost(ctx, tx, o, settledAt, res)
		case models.BidLate:
			err = s.settleLate(ctx, tx, o, settledAt, res)
		}
		if err != nil {
			return nil, fmt.Errorf("bid %s: %w", o.Bid.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *SettlementService) settleWon(ctx context.Context, tx *sqlx.Tx, week AuctionWeek, o Outcome, settledAt time.Time, res *chunkResult) error {
	result, err := tx.ExecContext(ctx, `
		UPDATE ad_bids
		SET status = $2, result_rank = $3, settled_at = $4
		WHERE id = $1 AND status = $5`,
		o.Bid.ID, models.BidWon, o.Rank, settledAt, models.BidPending)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err != nil || n == 0 {
		return err
	}

	group := bidGroup(o.Bid)
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO ad_placements (id, week_key, category, region_key, rank, bid_id, partner_id, amount, week_start, week_end, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO NOTHING`,
		PlacementID(week.Key, group.category, group.regionKey, o.Rank), week.Key, group.category, group.regionKey,
		o.Rank, o.Bid.ID, o.Bid.PartnerID, o.Bid.Amount, week.Start, week.End, settledAt); err != nil {
		return err
	}

	res.won++
	return s.notify(ctx, tx, models.NotifyAuctionWon, o, settledAt, res)
}

func (s *SettlementService) settleLost(ctx context.Context, tx *sqlx.Tx, o Outcome, settledAt time.Time, res *chunkResult) error {
	receipt, err := s.ledger.RefundTx(ctx, tx.Tx, o.Bid.PartnerID, o.Bid.Amount, o.Bid.ID)
	if err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE ad_bids
		SET status = $2, refund_amount = $3, refunded_at = $4, settled_at = $5
		WHERE id = $1 AND status = $6`,
		o.Bid.ID, models.BidLost, o.Bid.Amount, receipt.Entry.CreatedAt, settledAt, models.BidPending)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if receipt.Applied {
			return fmt.Errorf("refund issued for bid that is no longer pending")
		}
		return nil
	}

	res.lost++
	if receipt.Applied {
		res.refunded += o.Bid.Amount
		res.refunds = append(res.refunds, receipt)
	}
	return s.notify(ctx, tx, models.NotifyAuctionLost, o, settledAt, res)
}

func (s *SettlementService) settleLate(ctx context.Context, tx *sqlx.Tx, o Outcome, settledAt time.Time, res *chunkResult) error {
	result, err := tx.ExecContext(ctx, `
		UPDATE ad_bids
		SET status = $2, settled_at = $3
		WHERE id = $1 AND status = $4`,
		o.Bid.ID, models.BidLate, settledAt, models.BidPending)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err != nil || n == 0 {
		return err
	}

	res.late++
	return s.notify(ctx, tx, models.NotifyAuctionLate, o, settledAt, res)
}

func (s *SettlementService) notify(ctx context.Context, tx *sqlx.Tx, kind models.NotificationKind, o Outcome, at time.Time, res *chunkResult) error {
	if s.notifier == nil {
		return nil
	}
	payload := map[string]any{
		"bidId":     o.Bid.ID,
		"weekKey":   o.Bid.WeekKey,
		"category":  o.Bid.Category,
		"regionKey": bidGroup(o.Bid).regionKey,
		"amount":    o.Bid.Amount,
	}
	if o.Rank > 0 {
		payload["rank"] = o.Rank
	}
	n := newNotification(kind, o.Bid.PartnerID, o.Bid.ID, payload, at)
	recorded, err := s.notifier.RecordTx(ctx, tx, n)
	if err != nil {
		return err
	}
	if recorded {
		res.notices = append(res.notices, n.ID)
	}
	return nil
}

// acquireLock keeps two runs for the same week from overlapping. Without
// Redis the run proceeds unlocked; conditional updates keep it correct.
func (s *SettlementService) acquireLock(ctx context.Context, weekKey, token string) (func(), error) {
	if s.redis == nil {
		return func() {}, nil
	}

	key := "settlement:lock:" + weekKey
	ok, err := s.redis.SetNX(ctx, key, token, s.cfg.LockTTL).Result()
	if err != nil {
		s.log.WithError(err).Warn("settlement lock unavailable, continuing without it")
		return func() {}, nil
	}
	if !ok {
		return nil, ErrSettlementInProgress
	}

	return func() {
		released, err := releaseLock.Eval(context.Background(), s.redis, []string{key}, token).Int64()
		if err != nil {
			s.log.WithError(err).WithField("key", key).Warn("failed to release settlement lock")
			return
		}
		if released == 0 {
			s.log.WithField("key", key).Warn("settlement lock expired before release")
		}
	}, nil
}

// ListRuns returns the most recent settlement runs.
func (s *SettlementService) ListRuns(ctx context.Context, limit int) ([]models.SettlementRun, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	runs := []models.SettlementRun{}
	err := s.db.SelectContext(ctx, &runs, `
		SELECT id, week_key, status, won_count, lost_count, late_count, refunded_points, failed_chunks, error, started_at, completed_at
		FROM settlement_runs
		ORDER BY started_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("ListRuns: %w", err)
	}
	return runs, nil
}
