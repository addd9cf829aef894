package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/partnerhub/backend/internal/middleware"
	"github.com/partnerhub/backend/internal/models"
	"github.com/partnerhub/backend/internal/services"
)

type LedgerReader interface {
	GetBalance(ctx context.Context, partnerID string) (*models.PartnerBalance, error)
	ListEntries(ctx context.Context, partnerID string, limit, offset int) ([]models.LedgerEntry, error)
}

type Charger interface {
	ChargeCash(ctx context.Context, callerID, partnerID string, req services.CashChargeRequest) (*models.LedgerEntry, error)
	ChargeTickets(ctx context.Context, callerID, partnerID string, req services.TicketChargeRequest) (*models.LedgerEntry, error)
}

type QuoteCharger interface {
	ChargeQuoteFee(ctx context.Context, callerID, partnerID, requestID, payWith string) (*models.LedgerEntry, error)
}

// QuoteFeeRequest selects how the quote fee is paid
// @Description Quote fee payment method
type QuoteFeeRequest struct {
	PayWith string `json:"payWith,omitempty" example:"points"` // points (default) or ticket
}

// AccountHandler serves balance, ledger history, top-ups and quote fees.
type AccountHandler struct {
	ledger LedgerReader
	charge Charger
	quotes QuoteCharger
}

func NewAccountHandler(ledger LedgerReader, charge Charger, quotes QuoteCharger) *AccountHandler {
	return &AccountHandler{ledger: ledger, charge: charge, quotes: quotes}
}

// GetBalance returns the partner's four point pools
// @Summary Get balance
// @Tags Account
// @Produce json
// @Security BearerAuth
// @Param partnerId path string true "Partner ID"
// @Success 200 {object} models.PartnerBalance
// @Failure 403 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /partners/{partnerId}/balance [get]
func (h *AccountHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	partnerID := chi.URLParam(r, "partnerId")
	if err := services.Authorize(middleware.PartnerIDFromContext(r.Context()), partnerID); err != nil {
		services.WriteError(w, err)
		return
	}

	bal, err := h.ledger.GetBalance(r.Context(), partnerID)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bal)
}

// ListEntries returns the partner's ledger newest first
// @Summary List ledger entries
// @Tags Account
// @Produce json
// @Security BearerAuth
// @Param partnerId path string true "Partner ID"
// @Param limit query int false "Page size (max 200)"
// @Param offset query int false "Offset"
// @Success 200 {array} models.LedgerEntry
// @Failure 400 {object} services.ErrorResponse
// @Failure 403 {object} services.ErrorResponse
// @Router /partners/{partnerId}/ledger [get]
func (h *AccountHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	partnerID := chi.URLParam(r, "partnerId")
	if err := services.Authorize(middleware.PartnerIDFromContext(r.Context()), partnerID); err != nil {
		services.WriteError(w, err)
		return
	}

	limit, err := queryInt(r, "limit", 50)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		services.WriteError(w, err)
		return
	}

	entries, err := h.ledger.ListEntries(r.Context(), partnerID, limit, offset)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// ChargeCash credits points bought with cash
// @Summary Top up points
// @Tags Account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param partnerId path string true "Partner ID"
// @Param request body services.CashChargeRequest true "Paid order"
// @Success 201 {object} models.LedgerEntry
// @Failure 400 {object} services.ErrorResponse
// @Failure 403 {object} services.ErrorResponse
// @Router /partners/{partnerId}/charges/cash [post]
func (h *AccountHandler) ChargeCash(w http.ResponseWriter, r *http.Request) {
	var req services.CashChargeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	entry, err := h.charge.ChargeCash(r.Context(), middleware.PartnerIDFromContext(r.Context()), chi.URLParam(r, "partnerId"), req)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// ChargeTickets credits bid tickets
// @Summary Buy bid tickets
// @Tags Account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param partnerId path string true "Partner ID"
// @Param request body services.TicketChargeRequest true "Paid order"
// @Success 201 {object} models.LedgerEntry
// @Failure 400 {object} services.ErrorResponse
// @Failure 403 {object} services.ErrorResponse
// @Router /partners/{partnerId}/charges/tickets [post]
func (h *AccountHandler) ChargeTickets(w http.ResponseWriter, r *http.Request) {
	var req services.TicketChargeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	entry, err := h.charge.ChargeTickets(r.Context(), middleware.PartnerIDFromContext(r.Context()), chi.URLParam(r, "partnerId"), req)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// ChargeQuoteFee pays the fee for quoting a customer request
// @Summary Pay quote fee
// @Tags Account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param partnerId path string true "Partner ID"
// @Param requestId path string true "Customer request ID"
// @Param request body QuoteFeeRequest false "Payment method"
// @Success 201 {object} models.LedgerEntry
// @Failure 400 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse "insufficient-balance"
// @Router /partners/{partnerId}/quotes/{requestId}/fee [post]
func (h *AccountHandler) ChargeQuoteFee(w http.ResponseWriter, r *http.Request) {
	var req QuoteFeeRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}

	entry, err := h.quotes.ChargeQuoteFee(r.Context(), middleware.PartnerIDFromContext(r.Context()),
		chi.URLParam(r, "partnerId"), chi.URLParam(r, "requestId"), req.PayWith)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}
