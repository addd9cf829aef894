package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/partnerhub/backend/internal/middleware"
	"github.com/partnerhub/backend/internal/models"
	"github.com/partnerhub/backend/internal/services"
)

type BidService interface {
	SubmitBid(ctx context.Context, callerID, partnerID string, req services.SubmitBidRequest) (*models.AdBid, error)
	ListBids(ctx context.Context, callerID, partnerID, weekKey string) ([]models.AdBid, error)
	ListPlacements(ctx context.Context, weekKey, category, regionKey string) ([]models.AdPlacement, error)
}

type BidHandler struct {
	service BidService
}

func NewBidHandler(service BidService) *BidHandler {
	return &BidHandler{service: service}
}

// SubmitBid places a bid for next week's ad slot
// @Summary Submit ad bid
// @Description Reserve points and place a pending bid for the next auction week
// @Tags Bids
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param partnerId path string true "Partner ID"
// @Param request body services.SubmitBidRequest true "Bid"
// @Success 201 {object} models.AdBid
// @Failure 400 {object} services.ErrorResponse
// @Failure 401 {object} services.ErrorResponse
// @Failure 403 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse "insufficient-balance or bidding-closed"
// @Router /partners/{partnerId}/bids [post]
func (h *BidHandler) SubmitBid(w http.ResponseWriter, r *http.Request) {
	var req services.SubmitBidRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	bid, err := h.service.SubmitBid(r.Context(), middleware.PartnerIDFromContext(r.Context()), chi.URLParam(r, "partnerId"), req)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, bid)
}

// ListBids lists a partner's bids
// @Summary List bids
// @Tags Bids
// @Produce json
// @Security BearerAuth
// @Param partnerId path string true "Partner ID"
// @Param weekKey query string false "Monday of the auction week (YYYY-MM-DD)"
// @Success 200 {array} models.AdBid
// @Failure 400 {object} services.ErrorResponse
// @Failure 403 {object} services.ErrorResponse
// @Router /partners/{partnerId}/bids [get]
func (h *BidHandler) ListBids(w http.ResponseWriter, r *http.Request) {
	bids, err := h.service.ListBids(r.Context(), middleware.PartnerIDFromContext(r.Context()),
		chi.URLParam(r, "partnerId"), r.URL.Query().Get("weekKey"))
	if err != nil {
		services.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bids)
}

// ListPlacements lists the won ad slots of a week
// @Summary List placements
// @Tags Bids
// @Produce json
// @Security BearerAuth
// @Param weekKey query string true "Monday of the auction week (YYYY-MM-DD)"
// @Param category query string false "Category"
// @Param region query string false "Region"
// @Param regionDetail query string false "Region detail"
// @Success 200 {array} models.AdPlacement
// @Failure 400 {object} services.ErrorResponse
// @Router /placements [get]
func (h *BidHandler) ListPlacements(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	placements, err := h.service.ListPlacements(r.Context(), q.Get("weekKey"), q.Get("category"),
		models.RegionKey(q.Get("region"), q.Get("regionDetail")))
	if err != nil {
		services.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, placements)
}
