package audit

import (
	"time"

	"github.com/partnerhub/backend/internal/models"
	"github.com/sirupsen/logrus"
)

type Event struct {
	Timestamp time.Time `json:"timestamp"`
	EventType string    `json:"event_type"`
	PartnerID string    `json:"partner_id,omitempty"`
	Reference string    `json:"reference,omitempty"`
	Amount    int64     `json:"amount"`
	Status    string    `json:"status"`
	Details   any       `json:"details,omitempty"`
}

// Logger writes one structured line per balance mutation or settlement outcome.
type Logger struct {
	log *logrus.Entry
}

func NewLogger() *Logger {
	return &Logger{log: logrus.WithField("audit", true)}
}

// NewLoggerWith is used where the caller owns the logrus instance.
func NewLoggerWith(l *logrus.Logger) *Logger {
	return &Logger{log: l.WithField("audit", true)}
}

func (a *Logger) LogLedgerEntry(entry *models.LedgerEntry) {
	a.write(Event{
		Timestamp: entry.CreatedAt,
		EventType: string(entry.Type),
		PartnerID: entry.PartnerID,
		Reference: entry.ID,
		Amount:    entry.DeltaPoints,
		Status:    "SUCCESS",
		Details: map[string]any{
			"deltas":        entry.Deltas(),
			"balance_after": entry.BalanceAfter(),
			"order_id":      entry.OrderID,
			"bid_id":        entry.BidID,
			"request_id":    entry.RequestID,
		},
	})
}

func (a *Logger) LogBid(bid *models.AdBid) {
	a.write(Event{
		Timestamp: bid.CreatedAt,
		EventType: "AD_BID_" + string(bid.Status),
		PartnerID: bid.PartnerID,
		Reference: bid.ID,
		Amount:    bid.Amount,
		Status:    "SUCCESS",
		Details: map[string]any{
			"week_key":   bid.WeekKey,
			"category":   bid.Category,
			"region_key": bid.RegionKey,
			"rank":       bid.ResultRank,
		},
	})
}

func (a *Logger) LogSettlement(run *models.SettlementRun) {
	a.write(Event{
		Timestamp: time.Now(),
		EventType: "WEEKLY_SETTLEMENT",
		Reference: run.ID,
		Amount:    run.RefundedPoints,
		Status:    string(run.Status),
		Details: map[string]any{
			"week_key":      run.WeekKey,
			"won":           run.WonCount,
			"lost":          run.LostCount,
			"late":          run.LateCount,
			"failed_chunks": run.FailedChunks,
		},
	})
}

func (a *Logger) LogError(partnerID, reference string, err error) {
	a.write(Event{
		Timestamp: time.Now(),
		EventType: "ERROR",
		PartnerID: partnerID,
		Reference: reference,
		Status:    "FAILED",
		Details:   map[string]string{"error": err.Error()},
	})
}

func (a *Logger) write(event Event) {
	a.log.WithFields(logrus.Fields{
		"event_type": event.EventType,
		"partner_id": event.PartnerID,
		"reference":  event.Reference,
		"amount":     event.Amount,
		"status":     event.Status,
		"details":    event.Details,
		"at":         event.Timestamp,
	}).Info("audit")
}
