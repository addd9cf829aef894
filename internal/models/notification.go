package models

import (
	"time"
)

type NotificationKind string

const (
	NotifyAuctionWon  NotificationKind = "auction_won"
	NotifyAuctionLost NotificationKind = "auction_lost"
	NotifyAuctionLate NotificationKind = "auction_late"
	NotifyLowBalance  NotificationKind = "low_balance"
)

// Notification is an outbox record consumed by the delivery worker.
type Notification struct {
	ID        string           `json:"id" db:"id"`
	PartnerID string           `json:"partnerId" db:"partner_id"`
	Kind      NotificationKind `json:"kind" db:"kind"`
	Payload   string           `json:"payload" db:"payload"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
}
