package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/WanderLanka/wanderlanka-web-app-sub001/pkg/httputil"
	"github.com/WanderLanka/wanderlanka-web-app-sub001/planner"
)

// PlanningHandler serves the trip-planning panel.
type PlanningHandler struct {
	planner *planner.Planner
	logger  *slog.Logger
}

// NewPlanningHandler creates the planning handler.
func NewPlanningHandler(p *planner.Planner, logger *slog.Logger) *PlanningHandler {
	return &PlanningHandler{planner: p, logger: logger}
}

// planView is the planning panel's state: the four buckets plus the derived
// aggregates rendered in the header badge.
type planView struct {
	Plan        planner.Plan `json:"plan"`
	ItemCount   int          `json:"itemCount"`
	TotalAmount float64      `json:"totalAmount"`
}

// GetPlan handles GET /planning.
func (h *PlanningHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: planView{
		Plan:        h.planner.Snapshot(),
		ItemCount:   h.planner.ItemCount(),
		TotalAmount: h.planner.TotalAmount(),
	}})
}

// GetSummary handles GET /planning/summary, the checkout-style view.
func (h *PlanningHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.planner.PaymentSummary()})
}

// AddItem handles POST /planning/{bucket}/items.
func (h *PlanningHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	bucket := planner.Bucket(chi.URLParam(r, "bucket"))

	var item planner.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := h.planner.Add(r.Context(), bucket, item); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: planView{
		Plan:        h.planner.Snapshot(),
		ItemCount:   h.planner.ItemCount(),
		TotalAmount: h.planner.TotalAmount(),
	}})
}

// RemoveItem handles DELETE /planning/{bucket}/items/{itemId}. Every entry
// with the id goes; removing an absent id is a no-op, not an error.
func (h *PlanningHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	bucket := planner.Bucket(chi.URLParam(r, "bucket"))
	itemID := chi.URLParam(r, "itemId")

	removed, err := h.planner.Remove(r.Context(), bucket, itemID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"removed":   removed,
		"itemCount": h.planner.ItemCount(),
	}})
}

// Clear handles DELETE /planning: all buckets emptied, persisted entry erased.
func (h *PlanningHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.planner.Clear(r.Context()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"itemCount": 0,
	}})
}
