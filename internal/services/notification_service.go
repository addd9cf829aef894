package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/partnerhub/backend/internal/models"
	"github.com/sirupsen/logrus"
)

const NotificationQueue = "notification_queue"

var notificationNamespace = uuid.MustParse("6f1c2a4e-93d5-4c1b-8a57-2f0e1d6b9c34")

// Execer is satisfied by *sql.Tx, *sqlx.Tx and *sql.DB.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// NotificationService writes outbox rows and hands their ids to the delivery queue.
type NotificationService struct {
	redis *redis.Client
	log   *logrus.Entry
}

func NewNotificationService(redisClient *redis.Client) *NotificationService {
	return &NotificationService{
		redis: redisClient,
		log:   logrus.WithField("component", "notifications"),
	}
}

// NotificationID is stable for a (kind, reference) pair so retried writes collapse.
func NotificationID(kind models.NotificationKind, reference string) string {
	return uuid.NewSHA1(notificationNamespace, []byte(string(kind)+":"+reference)).String()
}

func newNotification(kind models.NotificationKind, partnerID, reference string, payload any, at time.Time) models.Notification {
	body, _ := json.Marshal(payload)
	return models.Notification{
		ID:        NotificationID(kind, reference),
		PartnerID: partnerID,
		Kind:      kind,
		Payload:   string(body),
		CreatedAt: at,
	}
}

func lowBalanceNotification(entry *models.LedgerEntry, threshold int64) models.Notification {
	return newNotification(models.NotifyLowBalance, entry.PartnerID, entry.ID, map[string]any{
		"cashPoints":        entry.CashAfter,
		"cashPointsService": entry.CashServiceAfter,
		"threshold":         threshold,
	}, entry.CreatedAt)
}

// RecordTx inserts n unless a row with the same id exists. It reports whether a row was written.
func (n *NotificationService) RecordTx(ctx context.Context, tx Execer, notif models.Notification) (bool, error) {
	result, err := tx.ExecContext(ctx, `
		INSERT INTO notifications (id, partner_id, kind, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING`,
		notif.ID, notif.PartnerID, notif.Kind, notif.Payload, notif.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("record notification: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

// Publish queues notification ids for delivery. Rows stay in the outbox when Redis is unavailable.
func (n *NotificationService) Publish(ctx context.Context, ids ...string) {
	if n.redis == nil || len(ids) == 0 {
		return
	}
	values := make([]interface{}, len(ids))
	for i, id := range ids {
		values[i] = id
	}
	if err := n.redis.RPush(ctx, NotificationQueue, values...).Err(); err != nil {
		n.log.WithError(err).WithField("count", len(ids)).Warn("failed to queue notifications")
	}
}
