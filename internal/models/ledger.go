package models

import (
	"time"
)

type LedgerEntryType string

const (
	EntryCreditCharge            LedgerEntryType = "credit_charge"
	EntryCreditChargeCash        LedgerEntryType = "credit_charge_cash"
	EntryCreditChargeCashService LedgerEntryType = "credit_charge_cash_service"
	EntryDebitQuote              LedgerEntryType = "debit_quote"
	EntryDebitTicketPoints       LedgerEntryType = "debit_ticket_points"
	EntryBidReserve              LedgerEntryType = "bid_reserve"
	EntryRefund                  LedgerEntryType = "refund"
)

// Correlation ties a ledger entry back to the business object that caused it.
type Correlation struct {
	OrderID   string `json:"orderId,omitempty"`
	BidID     string `json:"bidId,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// LedgerEntry is an immutable record of one balance mutation. Entries are
// never updated or deleted.
type LedgerEntry struct {
	ID                  string          `json:"id" db:"id"`
	PartnerID           string          `json:"partnerId" db:"partner_id"`
	Type                LedgerEntryType `json:"type" db:"entry_type" enums:"credit_charge,credit_charge_cash,credit_charge_cash_service,debit_quote,debit_ticket_points,bid_reserve,refund"`
	DeltaPoints         int64           `json:"deltaPoints" db:"delta_points"`
	DeltaCash           int64           `json:"deltaCashPoints" db:"delta_cash"`
	DeltaCashService    int64           `json:"deltaCashPointsService" db:"delta_cash_service"`
	DeltaTicketsGeneral int64           `json:"deltaBidTicketsGeneral" db:"delta_tickets_general"`
	DeltaTicketsService int64           `json:"deltaBidTicketsService" db:"delta_tickets_service"`
	CashAfter           int64           `json:"cashPointsAfter" db:"cash_after"`
	CashServiceAfter    int64           `json:"cashPointsServiceAfter" db:"cash_service_after"`
	TicketsGeneralAfter int64           `json:"bidTicketsGeneralAfter" db:"tickets_general_after"`
	TicketsServiceAfter int64           `json:"bidTicketsServiceAfter" db:"tickets_service_after"`
	OrderID             string          `json:"orderId,omitempty" db:"order_id"`
	BidID               string          `json:"bidId,omitempty" db:"bid_id"`
	RequestID           string          `json:"requestId,omitempty" db:"request_id"`
	CreatedAt           time.Time       `json:"createdAt" db:"created_at"`
}

func (e *LedgerEntry) Deltas() Deltas {
	return Deltas{
		Cash:           e.DeltaCash,
		CashService:    e.DeltaCashService,
		TicketsGeneral: e.DeltaTicketsGeneral,
		TicketsService: e.DeltaTicketsService,
	}
}

func (e *LedgerEntry) BalanceAfter() PartnerBalance {
	return PartnerBalance{
		PartnerID:         e.PartnerID,
		CashPoints:        e.CashAfter,
		CashPointsService: e.CashServiceAfter,
		BidTickets: BidTickets{
			General: e.TicketsGeneralAfter,
			Service: e.TicketsServiceAfter,
		},
	}
}

// ReconciliationReport compares the stored balance with the sum of ledger deltas.
type ReconciliationReport struct {
	PartnerID  string         `json:"partnerId"`
	Stored     PartnerBalance `json:"stored"`
	Ledger     Deltas         `json:"ledger"`
	EntryCount int64          `json:"entryCount"`
	Consistent bool           `json:"consistent"`
	CheckedAt  time.Time      `json:"checkedAt"`
}
