package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/partnerhub/backend/internal/config"
	"github.com/partnerhub/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type CashChargeRequest struct {
	OrderID string `json:"orderId" validate:"required,max=128"`
	Amount  int64  `json:"amount" validate:"required,gt=0"`
	Pool    string `json:"pool" validate:"required,oneof=general service"`
}

type TicketChargeRequest struct {
	OrderID string `json:"orderId" validate:"required,max=128"`
	Count   int64  `json:"count" validate:"required,gt=0"`
	Pool    string `json:"pool" validate:"required,oneof=general service"`
}

type StartSubscriptionRequest struct {
	Plan string `json:"plan" validate:"required"`
}

// SubscriptionService handles paid top-ups and the partner subscription lifecycle.
// Top-ups always go through LedgerService.Credit.
type SubscriptionService struct {
	db        *sql.DB
	ledger    *LedgerService
	cfg       config.SubscriptionConfig
	charge    config.ChargeConfig
	validator *ValidationHelper
	log       *logrus.Entry
	now       func() time.Time
}

func NewSubscriptionService(db *sql.DB, ledger *LedgerService, cfg config.SubscriptionConfig, charge config.ChargeConfig) *SubscriptionService {
	return &SubscriptionService{
		db:        db,
		ledger:    ledger,
		cfg:       cfg,
		charge:    charge,
		validator: NewValidationHelper(),
		log:       logrus.WithField("component", "subscriptions"),
		now:       time.Now,
	}
}

// PointsForCash converts a paid cash amount into points, rounding the bonus down.
func PointsForCash(cash int64, bonusRate decimal.Decimal) int64 {
	return decimal.NewFromInt(cash).Mul(decimal.NewFromInt(1).Add(bonusRate)).Floor().IntPart()
}

func (s *SubscriptionService) ChargeCash(ctx context.Context, callerID, partnerID string, req CashChargeRequest) (*models.LedgerEntry, error) {
	if err := Authorize(callerID, partnerID); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateStruct(&req); err != nil {
		return nil, err
	}

	pool, entryType := models.PoolCash, models.EntryCreditChargeCash
	if req.Pool == "service" {
		pool, entryType = models.PoolCashService, models.EntryCreditChargeCashService
	}

	points := PointsForCash(req.Amount, s.charge.BonusRate)
	receipt, err := s.ledger.Credit(ctx, partnerID, pool, points, entryType, models.Correlation{OrderID: req.OrderID})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"partner_id": partnerID,
		"order_id":   req.OrderID,
		"cash":       req.Amount,
		"points":     points,
		"applied":    receipt.Applied,
	}).Info("cash charge credited")
	return receipt.Entry, nil
}

func (s *SubscriptionService) ChargeTickets(ctx context.Context, callerID, partnerID string, req TicketChargeRequest) (*models.LedgerEntry, error) {
	if err := Authorize(callerID, partnerID); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateStruct(&req); err != nil {
		return nil, err
	}

	pool := models.PoolTicketsGeneral
	if req.Pool == "service" {
		pool = models.PoolTicketsService
	}

	receipt, err := s.ledger.Credit(ctx, partnerID, pool, req.Count, models.EntryCreditCharge, models.Correlation{OrderID: req.OrderID})
	if err != nil {
		return nil, err
	}
	return receipt.Entry, nil
}

func (s *SubscriptionService) Get(ctx context.Context, callerID, partnerID string) (*models.Partner, error) {
	if err := Authorize(callerID, partnerID); err != nil {
		return nil, err
	}

	p, err := scanPartner(s.db.QueryRowContext(ctx, `
		SELECT partner_id, subscription_status, subscription_plan, subscription_end_date, created_at, updated_at
		FROM partners
		WHERE partner_id = $1`, partnerID))
	if err != nil {
		return nil, fmt.Errorf("GetSubscription: %w", err)
	}
	return p, nil
}

// Start activates plan for one period from now.
func (s *SubscriptionService) Start(ctx context.Context, callerID, partnerID string, req StartSubscriptionRequest) (*models.Partner, error) {
	if err := Authorize(callerID, partnerID); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateStruct(&req); err != nil {
		return nil, err
	}
	if !slices.Contains(s.cfg.Plans, req.Plan) {
		return nil, invalidArgument("plan", fmt.Sprintf("unknown plan %q", req.Plan))
	}

	now := s.now()
	end := now.AddDate(0, 0, s.periodDays())
	p, err := scanPartner(s.db.QueryRowContext(ctx, `
		UPDATE partners
		SET subscription_status = $2, subscription_plan = $3, subscription_end_date = $4, updated_at = $5
		WHERE partner_id = $1
		RETURNING partner_id, subscription_status, subscription_plan, subscription_end_date, created_at, updated_at`,
		partnerID, models.SubscriptionActive, req.Plan, end, now))
	if err != nil {
		return nil, fmt.Errorf("StartSubscription: %w", err)
	}

	s.log.WithFields(logrus.Fields{"partner_id": partnerID, "plan": req.Plan, "ends": end}).Info("subscription started")
	return p, nil
}

// Cancel marks an active subscription cancelled. Nothing is refunded and the end date is kept.
func (s *SubscriptionService) Cancel(ctx context.Context, callerID, partnerID string) (*models.Partner, error) {
	if err := Authorize(callerID, partnerID); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	current, err := scanPartner(tx.QueryRowContext(ctx, `
		SELECT partner_id, subscription_status, subscription_plan, subscription_end_date, created_at, updated_at
		FROM partners
		WHERE partner_id = $1
		FOR UPDATE`, partnerID))
	if err != nil {
		return nil, fmt.Errorf("CancelSubscription: %w", err)
	}
	if current.SubscriptionStatus != models.SubscriptionActive {
		return nil, ErrSubscriptionNotActive
	}

	now := s.now()
	if _, err := tx.ExecContext(ctx, `
		UPDATE partners
		SET subscription_status = $2, updated_at = $3
		WHERE partner_id = $1`,
		partnerID, models.SubscriptionCancelled, now); err != nil {
		return nil, fmt.Errorf("CancelSubscription: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	current.SubscriptionStatus = models.SubscriptionCancelled
	current.UpdatedAt = now
	s.log.WithField("partner_id", partnerID).Info("subscription cancelled")
	return current, nil
}

func (s *SubscriptionService) periodDays() int {
	if s.cfg.PeriodDays > 0 {
		return s.cfg.PeriodDays
	}
	return 30
}

func scanPartner(row *sql.Row) (*models.Partner, error) {
	var p models.Partner
	var plan sql.NullString
	var end sql.NullTime
	err := row.Scan(&p.ID, &p.SubscriptionStatus, &plan, &end, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPartnerNotFound
	}
	if err != nil {
		return nil, err
	}
	p.SubscriptionPlan = plan.String
	if end.Valid {
		p.SubscriptionEndDate = &end.Time
	}
	return &p, nil
}
