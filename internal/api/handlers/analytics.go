package handlers

import (
	"net/http"
	"time"

	"github.com/jmolenaar/Expense-Ledger-Backend/internal/api/request"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/api/response"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/model"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/service"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/validation"
)

// AnalyticsHandler exposes the derived read-only views to the presentation
// layer. Reads return the latest published snapshot; setting the filter only
// schedules a debounced recompute, so a read immediately after a filter
// change may still serve the previous revision. Clients poll the revision
// number to detect the refresh.
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler with the provided service dependency.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// Snapshot handles GET requests for the full derived-view snapshot.
//
// Endpoint: GET /api/analytics/snapshot
// Response: 200 OK with Snapshot (revision 0 before the first recompute)
func (h *AnalyticsHandler) Snapshot(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.analyticsService.Snapshot())
}

// FilteredTransactions handles GET requests for the filtered transaction view.
//
// Endpoint: GET /api/analytics/transactions
// Response: 200 OK with array of Transaction
func (h *AnalyticsHandler) FilteredTransactions(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.analyticsService.Snapshot().FilteredTransactions)
}

// CategoryBreakdown handles GET requests for the per-category expense breakdown.
//
// Endpoint: GET /api/analytics/category-breakdown
// Response: 200 OK with array of CategoryBreakdownEntry
func (h *AnalyticsHandler) CategoryBreakdown(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.analyticsService.Snapshot().CategoryBreakdown)
}

// TopMerchants handles GET requests for the per-merchant expense breakdown.
//
// Endpoint: GET /api/analytics/top-merchants
// Response: 200 OK with array of MerchantSummary
func (h *AnalyticsHandler) TopMerchants(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.analyticsService.Snapshot().TopMerchants)
}

// DailySpendingResponse pairs the gap-filled series with its average.
type DailySpendingResponse struct {
	Series  []model.DailySpendingEntry `json:"series"`
	Average float64                    `json:"average"`
}

// DailySpending handles GET requests for the gap-filled daily spending series.
//
// Endpoint: GET /api/analytics/daily-spending
// Response: 200 OK with DailySpendingResponse
func (h *AnalyticsHandler) DailySpending(w http.ResponseWriter, _ *http.Request) {
	snapshot := h.analyticsService.Snapshot()
	response.RespondJSON(w, http.StatusOK, DailySpendingResponse{
		Series:  snapshot.DailySpending,
		Average: snapshot.AverageDailySpending,
	})
}

// MonthComparison handles GET requests for the month-over-month comparison.
//
// Endpoint: GET /api/analytics/month-comparison
// Response: 200 OK with MonthComparison
func (h *AnalyticsHandler) MonthComparison(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.analyticsService.Snapshot().MonthComparison)
}

// SetFilter handles PUT requests to replace the active filter predicate.
// The recompute it triggers is debounced; the response carries the filter
// as accepted, not a fresh snapshot.
//
// Endpoint: PUT /api/analytics/filter
// Request Body: SetFilterRequest (all dimensions optional)
// Response: 202 Accepted with the accepted TransactionFilter
// Error: 400 Bad Request if validation fails
func (h *AnalyticsHandler) SetFilter(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SetFilterRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSetFilter(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	filter := toFilter(req)
	h.analyticsService.SetFilter(filter)

	response.RespondJSON(w, http.StatusAccepted, filter)
}

// Recompute handles POST requests to force an immediate recompute, skipping
// the debounce. Intended for internal tooling; protected by the API key
// middleware.
//
// Endpoint: POST /api/analytics/recompute
// Response: 200 OK with the fresh Snapshot
// Error: 500 Internal Server Error if the recompute fails
func (h *AnalyticsHandler) Recompute(w http.ResponseWriter, r *http.Request) {
	if err := h.analyticsService.Recompute(r.Context()); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "recompute failed", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, h.analyticsService.Snapshot())
}

func toFilter(req request.SetFilterRequest) model.TransactionFilter {
	filter := model.TransactionFilter{
		CategoryIDs: req.CategoryIDs,
		Types:       req.Types,
		AccountIDs:  req.AccountIDs,
		MinAmount:   req.MinAmount,
		MaxAmount:   req.MaxAmount,
		SearchText:  req.SearchText,
	}

	// Dates were validated upstream; parse failures leave the bound unset.
	if req.StartDate != "" {
		filter.StartDate, _ = time.Parse("2006-01-02", req.StartDate)
	}
	if req.EndDate != "" {
		filter.EndDate, _ = time.Parse("2006-01-02", req.EndDate)
	}

	return filter
}
