package models

import (
	"time"
)

// Pool names one of the four independent balances a partner holds.
type Pool string

const (
	PoolCash           Pool = "cash_points"
	PoolCashService    Pool = "cash_points_service"
	PoolTicketsGeneral Pool = "bid_tickets_general"
	PoolTicketsService Pool = "bid_tickets_service"
)

func (p Pool) Valid() bool {
	switch p {
	case PoolCash, PoolCashService, PoolTicketsGeneral, PoolTicketsService:
		return true
	}
	return false
}

func (p Pool) IsTicket() bool {
	return p == PoolTicketsGeneral || p == PoolTicketsService
}

type BidTickets struct {
	General int64 `json:"general"`
	Service int64 `json:"service"`
}

type PartnerBalance struct {
	PartnerID         string     `json:"partnerId" db:"partner_id"`
	CashPoints        int64      `json:"cashPoints" db:"cash_points"`
	CashPointsService int64      `json:"cashPointsService" db:"cash_points_service"`
	BidTickets        BidTickets `json:"bidTickets"`
	Version           int        `json:"-" db:"version"` // for optimistic locking
	UpdatedAt         time.Time  `json:"updatedAt" db:"updated_at"`
}

// Deltas is the signed change a single mutation applies to each pool.
type Deltas struct {
	Cash           int64 `json:"cashPoints"`
	CashService    int64 `json:"cashPointsService"`
	TicketsGeneral int64 `json:"bidTicketsGeneral"`
	TicketsService int64 `json:"bidTicketsService"`
}

func (d Deltas) Total() int64 {
	return d.Cash + d.CashService + d.TicketsGeneral + d.TicketsService
}

func (d Deltas) IsZero() bool {
	return d == Deltas{}
}

// DeltaFor returns a Deltas with amount placed on the given pool.
func DeltaFor(pool Pool, amount int64) Deltas {
	switch pool {
	case PoolCash:
		return Deltas{Cash: amount}
	case PoolCashService:
		return Deltas{CashService: amount}
	case PoolTicketsGeneral:
		return Deltas{TicketsGeneral: amount}
	case PoolTicketsService:
		return Deltas{TicketsService: amount}
	}
	return Deltas{}
}

func (b PartnerBalance) Apply(d Deltas) PartnerBalance {
	b.CashPoints += d.Cash
	b.CashPointsService += d.CashService
	b.BidTickets.General += d.TicketsGeneral
	b.BidTickets.Service += d.TicketsService
	return b
}

func (b PartnerBalance) Negative() bool {
	return b.CashPoints < 0 || b.CashPointsService < 0 || b.BidTickets.General < 0 || b.BidTickets.Service < 0
}

func (b PartnerBalance) Get(pool Pool) int64 {
	switch pool {
	case PoolCash:
		return b.CashPoints
	case PoolCashService:
		return b.CashPointsService
	case PoolTicketsGeneral:
		return b.BidTickets.General
	case PoolTicketsService:
		return b.BidTickets.Service
	}
	return 0
}

// SpendableCash is what debit-with-priority can draw from.
func (b PartnerBalance) SpendableCash() int64 {
	return b.CashPoints + b.CashPointsService
}
