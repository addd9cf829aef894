package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/partnerhub/backend/internal/middleware"
	"github.com/partnerhub/backend/internal/models"
	"github.com/partnerhub/backend/internal/services"
)

type SubscriptionService interface {
	Get(ctx context.Context, callerID, partnerID string) (*models.Partner, error)
	Start(ctx context.Context, callerID, partnerID string, req services.StartSubscriptionRequest) (*models.Partner, error)
	Cancel(ctx context.Context, callerID, partnerID string) (*models.Partner, error)
}

type SubscriptionHandler struct {
	service SubscriptionService
}

func NewSubscriptionHandler(service SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

// Get returns the partner's subscription
// @Summary Get subscription
// @Tags Subscription
// @Produce json
// @Security BearerAuth
// @Param partnerId path string true "Partner ID"
// @Success 200 {object} models.Partner
// @Failure 403 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /partners/{partnerId}/subscription [get]
func (h *SubscriptionHandler) Get(w http.ResponseWriter, r *http.Request) {
	partner, err := h.service.Get(r.Context(), middleware.PartnerIDFromContext(r.Context()), chi.URLParam(r, "partnerId"))
	if err != nil {
		services.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, partner)
}

// Start activates a subscription plan
// @Summary Start subscription
// @Tags Subscription
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param partnerId path string true "Partner ID"
// @Param request body services.StartSubscriptionRequest true "Plan"
// @Success 200 {object} models.Partner
// @Failure 400 {object} services.ErrorResponse
// @Failure 403 {object} services.ErrorResponse
// @Router /partners/{partnerId}/subscription [post]
func (h *SubscriptionHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req services.StartSubscriptionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	partner, err := h.service.Start(r.Context(), middleware.PartnerIDFromContext(r.Context()), chi.URLParam(r, "partnerId"), req)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, partner)
}

// Cancel ends an active subscription
// @Summary Cancel subscription
// @Tags Subscription
// @Produce json
// @Security BearerAuth
// @Param partnerId path string true "Partner ID"
// @Success 200 {object} models.Partner
// @Failure 403 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse "subscription-not-active"
// @Router /partners/{partnerId}/subscription [delete]
func (h *SubscriptionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	partner, err := h.service.Cancel(r.Context(), middleware.PartnerIDFromContext(r.Context()), chi.URLParam(r, "partnerId"))
	if err != nil {
		services.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, partner)
}
