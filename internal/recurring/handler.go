package recurring

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/warikanhq/warikan/internal/payment/split"
	"github.com/warikanhq/warikan/pkg/response"
	"github.com/warikanhq/warikan/pkg/validation"
)

// Handler handles HTTP requests for recurring rule operations
type Handler struct {
	service *Service
}

// NewHandler creates a new recurring rule handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for recurring rule endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}

// Create handles POST /recurring-rules
//
//	@Summary	Create a recurring rule
//	@Tags		recurring-rules
//	@Accept		json
//	@Produce	json
//	@Param		request	body		CreateRuleRequest	true	"Rule"
//	@Success	201		{object}	response.APIResponse{data=RuleResponse}
//	@Router		/recurring-rules [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validation.Struct(&req); err != nil {
		response.ValidationFailed(w, err.Error())
		return
	}

	rule, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrAmountRequired), errors.Is(err, split.ErrUnknownSplitType):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to create recurring rule")
		}
		return
	}

	response.JSON(w, http.StatusCreated, rule.ToResponse())
}

// List handles GET /recurring-rules?group_id=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(r.URL.Query().Get("group_id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "group_id query parameter required")
		return
	}

	rules, err := h.service.ListByGroupID(r.Context(), groupID)
	if err != nil {
		response.InternalError(w, "Failed to list recurring rules")
		return
	}

	ruleResponses := make([]*RuleResponse, len(rules))
	for i, rule := range rules {
		ruleResponses[i] = rule.ToResponse()
	}

	response.JSON(w, http.StatusOK, ruleResponses)
}

// GetByID handles GET /recurring-rules/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid rule ID")
		return
	}

	rule, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrRuleNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get recurring rule")
		return
	}

	response.JSON(w, http.StatusOK, rule.ToResponse())
}

// Update handles PUT /recurring-rules/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid rule ID")
		return
	}

	var req UpdateRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validation.Struct(&req); err != nil {
		response.ValidationFailed(w, err.Error())
		return
	}

	rule, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, ErrRuleNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to update recurring rule")
		return
	}

	response.JSON(w, http.StatusOK, rule.ToResponse())
}

// Delete handles DELETE /recurring-rules/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid rule ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrRuleNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to delete recurring rule")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
