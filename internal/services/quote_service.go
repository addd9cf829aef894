package services

import (
	"context"
	"strings"

	"github.com/partnerhub/backend/internal/config"
	"github.com/partnerhub/backend/internal/models"
)

const (
	PayWithPoints = "points"
	PayWithTicket = "ticket"
)

// QuoteService charges the fee for submitting a quote to a customer request.
type QuoteService struct {
	ledger *LedgerService
	fee    int64
}

func NewQuoteService(ledger *LedgerService, charge config.ChargeConfig) *QuoteService {
	return &QuoteService{ledger: ledger, fee: charge.QuoteFee}
}

// ChargeQuoteFee debits the quote fee once per request. An insufficient
// balance surfaces as failed-precondition so the caller can prompt a top-up.
func (s *QuoteService) ChargeQuoteFee(ctx context.Context, callerID, partnerID, requestID, payWith string) (*models.LedgerEntry, error) {
	if err := Authorize(callerID, partnerID); err != nil {
		return nil, err
	}
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return nil, invalidArgument("requestId", "is required")
	}

	corr := models.Correlation{RequestID: requestID}
	var (
		receipt *Receipt
		err     error
	)
	switch payWith {
	case "", PayWithPoints:
		receipt, err = s.ledger.DebitWithPriority(ctx, partnerID, s.fee, models.EntryDebitQuote, corr)
	case PayWithTicket:
		receipt, err = s.ledger.DebitTickets(ctx, partnerID, models.PoolTicketsGeneral, 1, models.EntryDebitTicketPoints, corr)
	default:
		return nil, invalidArgument("payWith", "must be points or ticket")
	}
	if err != nil {
		return nil, err
	}
	return receipt.Entry, nil
}
