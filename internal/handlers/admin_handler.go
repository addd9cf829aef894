package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/partnerhub/backend/internal/models"
	"github.com/partnerhub/backend/internal/services"
)

type AccountAdmin interface {
	OpenAccount(ctx context.Context, partnerID string) error
	Reconcile(ctx context.Context, partnerID string) (*models.ReconciliationReport, error)
}

type Settler interface {
	SettleWeek(ctx context.Context, weekKey string) (*models.SettlementRun, error)
	ListRuns(ctx context.Context, limit int) ([]models.SettlementRun, error)
}

// OpenAccountRequest registers a partner
// @Description Partner registration
type OpenAccountRequest struct {
	PartnerID string `json:"partnerId" example:"partner-123"` // Partner ID
}

// AdminHandler exposes operator endpoints. Routes are mounted behind RequireRole(admin).
type AdminHandler struct {
	accounts AccountAdmin
	settler  Settler
}

func NewAdminHandler(accounts AccountAdmin, settler Settler) *AdminHandler {
	return &AdminHandler{accounts: accounts, settler: settler}
}

// OpenAccount creates a partner with an empty balance
// @Summary Open partner account
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body OpenAccountRequest true "Partner"
// @Success 201 {object} OpenAccountRequest
// @Failure 400 {object} services.ErrorResponse
// @Failure 403 {object} services.ErrorResponse
// @Router /admin/partners [post]
func (h *AdminHandler) OpenAccount(w http.ResponseWriter, r *http.Request) {
	var req OpenAccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.PartnerID = strings.TrimSpace(req.PartnerID)

	if err := h.accounts.OpenAccount(r.Context(), req.PartnerID); err != nil {
		services.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

// SettleWeek runs settlement for one auction week
// @Summary Settle auction week
// @Description Settles every pending bid of the week. Re-running resumes where a failed run stopped.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param weekKey path string true "Monday of the auction week (YYYY-MM-DD)"
// @Success 200 {object} models.SettlementRun
// @Failure 400 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse "settlement-in-progress"
// @Router /admin/settlements/{weekKey} [post]
func (h *AdminHandler) SettleWeek(w http.ResponseWriter, r *http.Request) {
	run, err := h.settler.SettleWeek(r.Context(), chi.URLParam(r, "weekKey"))
	if err != nil {
		services.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// ListRuns lists recent settlement runs
// @Summary List settlement runs
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Success 200 {array} models.SettlementRun
// @Router /admin/settlements [get]
func (h *AdminHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 20)
	if err != nil {
		services.WriteError(w, err)
		return
	}

	runs, err := h.settler.ListRuns(r.Context(), limit)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

// Reconcile compares a stored balance with its ledger
// @Summary Reconcile partner balance
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param partnerId path string true "Partner ID"
// @Success 200 {object} models.ReconciliationReport
// @Failure 404 {object} services.ErrorResponse
// @Router /admin/partners/{partnerId}/reconciliation [get]
func (h *AdminHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	report, err := h.accounts.Reconcile(r.Context(), chi.URLParam(r, "partnerId"))
	if err != nil {
		services.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
