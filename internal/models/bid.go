package models

import (
	"time"
)

type BidStatus string

const (
	BidPending BidStatus = "pending"
	BidWon     BidStatus = "won"
	BidLost    BidStatus = "lost"
	BidLate    BidStatus = "late"
)

type AdBid struct {
	ID           string     `json:"id" db:"id"`
	PartnerID    string     `json:"partnerId" db:"partner_id"`
	Category     string     `json:"category" db:"category"`
	Region       string     `json:"region" db:"region"`
	RegionDetail string     `json:"regionDetail,omitempty" db:"region_detail"`
	RegionKey    string     `json:"regionKey" db:"region_key"`
	Amount       int64      `json:"amount" db:"amount"`
	WeekKey      string     `json:"weekKey" db:"week_key"`
	WeekStart    time.Time  `json:"weekStart" db:"week_start"`
	WeekEnd      time.Time  `json:"weekEnd" db:"week_end"`
	Status       BidStatus  `json:"status" db:"status"`
	ResultRank   *int       `json:"resultRank,omitempty" db:"result_rank"`
	RefundAmount int64      `json:"refundAmount" db:"refund_amount"`
	RefundedAt   *time.Time `json:"refundedAt,omitempty" db:"refunded_at"`
	SettledAt    *time.Time `json:"settledAt,omitempty" db:"settled_at"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
}

// RegionKey is "region/detail" when a finer detail is given, otherwise the
// region. Details are only unique within their region.
func RegionKey(region, regionDetail string) string {
	if regionDetail != "" {
		return region + "/" + regionDetail
	}
	return region
}

// AdPlacement is a won ad slot for one week.
type AdPlacement struct {
	ID        string    `json:"id" db:"id"`
	WeekKey   string    `json:"weekKey" db:"week_key"`
	Category  string    `json:"category" db:"category"`
	RegionKey string    `json:"regionKey" db:"region_key"`
	Rank      int       `json:"rank" db:"rank"`
	BidID     string    `json:"bidId" db:"bid_id"`
	PartnerID string    `json:"partnerId" db:"partner_id"`
	Amount    int64     `json:"amount" db:"amount"`
	WeekStart time.Time `json:"weekStart" db:"week_start"`
	WeekEnd   time.Time `json:"weekEnd" db:"week_end"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
