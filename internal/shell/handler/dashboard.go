package handler

import (
	"log/slog"
	"net/http"
	"sort"

	"github.com/WanderLanka/wanderlanka-web-app-sub001/api"
	"github.com/WanderLanka/wanderlanka-web-app-sub001/pkg/httputil"
)

// DashboardHandler serves the role-specific dashboard views. Each view
// fetches its lists through the API client and derives its statistics
// locally; the backend stays a plain CRUD collaborator.
type DashboardHandler struct {
	api    *api.Client
	logger *slog.Logger
}

// NewDashboardHandler creates the dashboard handler.
func NewDashboardHandler(apiClient *api.Client, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{api: apiClient, logger: logger}
}

// bookingStats are the derived aggregates shown on every dashboard header.
type bookingStats struct {
	Total      int            `json:"total"`
	ByStatus   map[string]int `json:"byStatus"`
	TotalSpent float64        `json:"totalSpent"`
}

func deriveBookingStats(bookings []api.Booking) bookingStats {
	stats := bookingStats{ByStatus: make(map[string]int)}
	for _, b := range bookings {
		stats.Total++
		stats.ByStatus[b.Status]++
		if b.Status != api.BookingCancelled {
			stats.TotalSpent += b.TotalAmount
		}
	}
	return stats
}

// Traveler handles GET /dashboard/traveler: the traveler's bookings, newest
// first, with derived aggregates.
func (h *DashboardHandler) Traveler(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.api.Bookings(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})

	payments, err := h.api.Payments(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"bookings": bookings,
		"payments": payments,
		"stats":    deriveBookingStats(bookings),
	}})
}

// Accommodation handles GET /dashboard/accommodation: the provider's
// properties and booking aggregates.
func (h *DashboardHandler) Accommodation(w http.ResponseWriter, r *http.Request) {
	hotels, err := h.api.Hotels(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	bookings, err := h.api.Bookings(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	stats := deriveBookingStats(bookings)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"hotels":   hotels,
		"bookings": bookings,
		"stats":    stats,
		"revenue":  stats.TotalSpent,
	}})
}

// Transport handles GET /dashboard/transport: fleet, drivers, and booking
// aggregates.
func (h *DashboardHandler) Transport(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.api.Vehicles(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	drivers, err := h.api.Drivers(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	bookings, err := h.api.Bookings(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	available := 0
	for _, v := range vehicles {
		if v.Available {
			available++
		}
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"vehicles":          vehicles,
		"availableVehicles": available,
		"drivers":           drivers,
		"stats":             deriveBookingStats(bookings),
	}})
}

// Admin handles GET /dashboard/admin: pending provider applications and
// open complaints.
func (h *DashboardHandler) Admin(w http.ResponseWriter, r *http.Request) {
	requests, err := h.api.AccountRequests(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	complaints, err := h.api.Complaints(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	pending := 0
	for _, req := range requests {
		if req.Status == "pending" {
			pending++
		}
	}
	openComplaints := 0
	for _, c := range complaints {
		if c.Status != "resolved" {
			openComplaints++
		}
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"accountRequests": requests,
		"pendingRequests": pending,
		"complaints":      complaints,
		"openComplaints":  openComplaints,
	}})
}
