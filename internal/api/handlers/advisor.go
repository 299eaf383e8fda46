package handlers

import (
	"log"
	"net/http"

	"github.com/jmolenaar/Expense-Ledger-Backend/internal/api/request"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/api/response"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/service"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/validation"
)

// AdvisorHandler handles HTTP requests for category suggestions and
// correction feedback.
type AdvisorHandler struct {
	advisorService *service.AdvisorService
}

// NewAdvisorHandler creates a new AdvisorHandler with the provided service dependency.
func NewAdvisorHandler(advisorService *service.AdvisorService) *AdvisorHandler {
	return &AdvisorHandler{
		advisorService: advisorService,
	}
}

// Suggest handles GET requests for a category suggestion.
//
// Endpoint: GET /api/advisor/suggest?description=...&merchant=...
// Response: 200 OK with CategorySuggestion (empty categoryId when the
// advisor has no opinion)
// Error: 400 Bad Request when description is missing
func (h *AdvisorHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	description := r.URL.Query().Get("description")
	merchant := r.URL.Query().Get("merchant")

	if description == "" && merchant == "" {
		response.RespondError(w, http.StatusBadRequest, "description or merchant is required", "")
		return
	}

	suggestion, err := h.advisorService.SuggestCategory(description, merchant)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to suggest category", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, suggestion)
}

// Feedback handles POST requests recording a category correction. The
// operation is fire-and-forget: storage errors are logged, never surfaced.
//
// Endpoint: POST /api/advisor/feedback
// Request Body: AdvisorFeedbackRequest (description, merchant, categoryId)
// Response: 202 Accepted
// Error: 400 Bad Request if the body is invalid
func (h *AdvisorHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.AdvisorFeedbackRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUUID(req.CategoryID); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	if err := h.advisorService.LearnFromCorrection(r.Context(), req.Description, req.Merchant, req.CategoryID); err != nil {
		log.Printf("advisor feedback not recorded: %v", err)
	}

	response.RespondJSON(w, http.StatusAccepted, nil)
}
