package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/partnerhub/backend/internal/audit"
	"github.com/partnerhub/backend/internal/config"
	"github.com/partnerhub/backend/internal/metrics"
	"github.com/partnerhub/backend/internal/models"
	"github.com/sirupsen/logrus"
)

const adBidColumns = `id, partner_id, category, region, region_detail, region_key, amount, week_key,
	week_start, week_end, status, result_rank, refund_amount, refunded_at, settled_at, created_at`

type SubmitBidRequest struct {
	Category     string `json:"category"`
	Region       string `json:"region"`
	RegionDetail string `json:"regionDetail,omitempty"`
	Amount       int64  `json:"amount"`
}

// BidService accepts bids for next week's ad slots and escrows their amount.
type BidService struct {
	db       *sql.DB
	dbx      *sqlx.DB
	ledger   *LedgerService
	calendar AuctionCalendar
	cfg      config.AuctionConfig
	audit    *audit.Logger
	log      *logrus.Entry
	now      func() time.Time
	newID    func() string
}

func NewBidService(db *sql.DB, ledger *LedgerService, cfg config.AuctionConfig) *BidService {
	return &BidService{
		db:       db,
		dbx:      sqlx.NewDb(db, "postgres"),
		ledger:   ledger,
		calendar: NewAuctionCalendar(cfg.Location, cfg.CutoffBeforeWeekStart),
		cfg:      cfg,
		audit:    audit.NewLogger(),
		log:      logrus.WithField("component", "bids"),
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
}

// SubmitBid validates a bid, reserves its amount and stores it as pending for
// the next auction week. Reservation and insert commit together or not at all.
func (s *BidService) SubmitBid(ctx context.Context, callerID, partnerID string, req SubmitBidRequest) (*models.AdBid, error) {
	bid, err := s.submit(ctx, callerID, partnerID, req)
	if err != nil {
		metrics.RecordBidSubmission(string(CodeOf(err)))
		if CodeOf(err) == CodeInternal {
			s.log.WithError(err).WithField("partner_id", partnerID).Error("bid intake failed")
		}
		return nil, err
	}
	metrics.RecordBidSubmission("accepted")
	return bid, nil
}

func (s *BidService) submit(ctx context.Context, callerID, partnerID string, req SubmitBidRequest) (*models.AdBid, error) {
	if err := Authorize(callerID, partnerID); err != nil {
		return nil, err
	}

	category := strings.TrimSpace(req.Category)
	region := strings.TrimSpace(req.Region)
	regionDetail := strings.TrimSpace(req.RegionDetail)
	if category == "" {
		return nil, invalidArgument("category", "is required")
	}
	if region == "" {
		return nil, invalidArgument("region", "is required")
	}
	if strings.Contains(region, "/") {
		return nil, invalidArgument("region", "must not contain '/'")
	}
	if req.Amount < s.cfg.MinBid {
		return nil, invalidArgument("amount", fmt.Sprintf("must be at least %d", s.cfg.MinBid))
	}

	now := s.now()
	week := s.calendar.NextWeek(now)
	if !now.Before(week.Cutoff) {
		return nil, ErrBiddingClosed
	}

	bid := &models.AdBid{
		ID:           s.newID(),
		PartnerID:    partnerID,
		Category:     category,
		Region:       region,
		RegionDetail: regionDetail,
		RegionKey:    models.RegionKey(region, regionDetail),
		Amount:       req.Amount,
		WeekKey:      week.Key,
		WeekStart:    week.Start,
		WeekEnd:      week.End,
		Status:       models.BidPending,
		CreatedAt:    now,
	}

	var receipt *Receipt
	err := s.ledger.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		receipt, err = s.ledger.ReserveTx(ctx, tx, partnerID, bid.Amount, bid.ID)
		if err != nil {
			return err
		}
		return s.insertBid(ctx, tx, bid)
	})
	if err != nil {
		return nil, fmt.Errorf("SubmitBid: %w", err)
	}

	s.ledger.finish(ctx, receipt)
	s.audit.LogBid(bid)
	s.log.WithFields(logrus.Fields{
		"bid_id":     bid.ID,
		"partner_id": partnerID,
		"week_key":   bid.WeekKey,
		"amount":     bid.Amount,
	}).Info("bid accepted")
	return bid, nil
}

func (s *BidService) insertBid(ctx context.Context, tx *sql.Tx, bid *models.AdBid) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO ad_bids (id, partner_id, category, region, region_detail, region_key, amount,
			week_key, week_start, week_end, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		bid.ID, bid.PartnerID, bid.Category, bid.Region, bid.RegionDetail, bid.RegionKey, bid.Amount,
		bid.WeekKey, bid.WeekStart, bid.WeekEnd, bid.Status, bid.CreatedAt)
	return err
}

// ListBids returns the caller's bids, optionally restricted to one week.
func (s *BidService) ListBids(ctx context.Context, callerID, partnerID, weekKey string) ([]models.AdBid, error) {
	if err := Authorize(callerID, partnerID); err != nil {
		return nil, err
	}

	bids := []models.AdBid{}
	query := `SELECT ` + adBidColumns + ` FROM ad_bids WHERE partner_id = $1`
	args := []any{partnerID}
	if weekKey != "" {
		if _, err := s.calendar.WeekByKey(weekKey); err != nil {
			return nil, err
		}
		query += ` AND week_key = $2`
		args = append(args, weekKey)
	}
	query += ` ORDER BY created_at DESC`

	if err := s.dbx.SelectContext(ctx, &bids, query, args...); err != nil {
		return nil, fmt.Errorf("ListBids: %w", err)
	}
	return bids, nil
}

// ListPlacements returns a week's won slots in rank order, optionally for one group.
func (s *BidService) ListPlacements(ctx context.Context, weekKey, category, regionKey string) ([]models.AdPlacement, error) {
	if _, err := s.calendar.WeekByKey(weekKey); err != nil {
		return nil, err
	}

	placements := []models.AdPlacement{}
	err := s.dbx.SelectContext(ctx, &placements, `
		SELECT id, week_key, category, region_key, rank, bid_id, partner_id, amount, week_start, week_end, created_at
		FROM ad_placements
		WHERE week_key = $1
		  AND ($2 = '' OR category = $2)
		  AND ($3 = '' OR region_key = $3)
		ORDER BY category, region_key, rank`, weekKey, category, regionKey)
	if err != nil {
		return nil, fmt.Errorf("ListPlacements: %w", err)
	}
	return placements, nil
}
