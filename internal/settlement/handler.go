package settlement

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/warikanhq/warikan/pkg/middleware"
	"github.com/warikanhq/warikan/pkg/response"
	"github.com/warikanhq/warikan/pkg/validation"
)

// Handler handles HTTP requests for settlement operations
type Handler struct {
	service *Service
}

// NewHandler creates a new settlement handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for settlement endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateSession)
	r.Get("/", h.ListSessions)
	r.Get("/suggested-period", h.SuggestPeriod)
	r.Get("/consolidated", h.Consolidated)
	r.Get("/{id}", h.GetSession)
	r.Post("/{id}/refresh", h.Refresh)
	r.Put("/{id}/entries/{entryID}", h.ResolveEntry)
	r.Post("/{id}/confirm", h.Confirm)
	r.Post("/{id}/advance", h.Advance)
	r.Get("/{id}/transfers", h.GetTransfers)

	return r
}

// CreateSession handles POST /settlements
//
//	@Summary	Open a draft settlement session for a period
//	@Tags		settlements
//	@Accept		json
//	@Produce	json
//	@Param		request	body		CreateSessionRequest	true	"Session period"
//	@Success	201		{object}	response.APIResponse{data=SessionResponse}
//	@Failure	403		{object}	response.APIResponse
//	@Router		/settlements [post]
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validation.Struct(&req); err != nil {
		response.ValidationFailed(w, err.Error())
		return
	}

	periodStart, err := time.Parse("2006-01-02", req.PeriodStart)
	if err != nil {
		response.BadRequest(w, "Invalid period_start")
		return
	}
	periodEnd, err := time.Parse("2006-01-02", req.PeriodEnd)
	if err != nil {
		response.BadRequest(w, "Invalid period_end")
		return
	}

	session, err := h.service.CreateSession(r.Context(), req.GroupID, userID, periodStart, periodEnd)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotGroupMember):
			response.Forbidden(w, err.Error())
		case errors.Is(err, ErrInvalidPeriod):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to create session")
		}
		return
	}

	response.JSON(w, http.StatusCreated, session.ToResponse())
}

// ListSessions handles GET /settlements?group_id=
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	groupID, err := strconv.ParseInt(r.URL.Query().Get("group_id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "group_id query parameter required")
		return
	}

	sessions, err := h.service.ListSessions(r.Context(), groupID, userID)
	if err != nil {
		if errors.Is(err, ErrNotGroupMember) {
			response.Forbidden(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to list sessions")
		return
	}

	sessionResponses := make([]*SessionResponse, len(sessions))
	for i, s := range sessions {
		sessionResponses[i] = s.ToResponse()
	}

	response.JSON(w, http.StatusOK, sessionResponses)
}

// GetSession handles GET /settlements/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid session ID")
		return
	}

	session, entries, err := h.service.GetSession(r.Context(), id, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrNotGroupMember):
			response.Forbidden(w, err.Error())
		default:
			response.InternalError(w, "Failed to get session")
		}
		return
	}

	entryResponses := make([]*EntryResponse, len(entries))
	for i := range entries {
		entryResponses[i] = entries[i].ToResponse()
	}

	response.JSON(w, http.StatusOK, &SessionDetailResponse{
		Session: session.ToResponse(),
		Entries: entryResponses,
	})
}

// SuggestPeriod handles GET /settlements/suggested-period?group_id=
//
//	@Summary	Suggest the period for the next settlement session
//	@Tags		settlements
//	@Produce	json
//	@Param		group_id	query		int	true	"Group ID"
//	@Success	200			{object}	response.APIResponse{data=PeriodSuggestion}
//	@Router		/settlements/suggested-period [get]
func (h *Handler) SuggestPeriod(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	groupID, err := strconv.ParseInt(r.URL.Query().Get("group_id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "group_id query parameter required")
		return
	}

	suggestion, err := h.service.SuggestPeriod(r.Context(), groupID, userID)
	if err != nil {
		if errors.Is(err, ErrNotGroupMember) {
			response.Forbidden(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to suggest period")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{
		"period_start": suggestion.Start.Format("2006-01-02"),
		"period_end":   suggestion.End.Format("2006-01-02"),
	})
}

// Refresh handles POST /settlements/{id}/refresh
//
//	@Summary	Reconcile a draft session's entries with current source data
//	@Tags		settlements
//	@Produce	json
//	@Param		id	path		int	true	"Session ID"
//	@Success	200	{object}	response.APIResponse{data=RefreshResponse}
//	@Failure	403	{object}	response.APIResponse
//	@Failure	409	{object}	response.APIResponse
//	@Router		/settlements/{id}/refresh [post]
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid session ID")
		return
	}

	added, err := h.service.RefreshEntries(r.Context(), id, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrNotGroupMember):
			response.Forbidden(w, err.Error())
		case errors.Is(err, ErrSessionNotDraft):
			response.Conflict(w, err.Error())
		default:
			response.InternalError(w, "Failed to refresh session")
		}
		return
	}

	response.JSON(w, http.StatusOK, &RefreshResponse{AddedCount: added})
}

// ResolveEntry handles PUT /settlements/{id}/entries/{entryID}
func (h *Handler) ResolveEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid session ID")
		return
	}
	entryID, err := strconv.ParseInt(chi.URLParam(r, "entryID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid entry ID")
		return
	}

	var req ResolveEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validation.Struct(&req); err != nil {
		response.ValidationFailed(w, err.Error())
		return
	}

	entry, err := h.service.ResolveEntry(r.Context(), id, entryID, userID, EntryStatus(req.Status), req.ActualAmount)
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrEntryNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrNotGroupMember):
			response.Forbidden(w, err.Error())
		case errors.Is(err, ErrSessionNotDraft):
			response.Conflict(w, err.Error())
		case errors.Is(err, ErrActualRequired), errors.Is(err, ErrAmountMismatch),
			errors.Is(err, ErrInvalidStatusChange):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to resolve entry")
		}
		return
	}

	response.JSON(w, http.StatusOK, entry.ToResponse())
}

// Confirm handles POST /settlements/{id}/confirm
//
//	@Summary	Confirm a fully resolved draft into net transfers
//	@Tags		settlements
//	@Produce	json
//	@Param		id	path		int	true	"Session ID"
//	@Success	200	{object}	response.APIResponse{data=TransfersResponse}
//	@Failure	409	{object}	response.APIResponse
//	@Router		/settlements/{id}/confirm [post]
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid session ID")
		return
	}

	result, err := h.service.Confirm(r.Context(), id, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrNotGroupMember):
			response.Forbidden(w, err.Error())
		case errors.Is(err, ErrSessionNotDraft), errors.Is(err, ErrEntriesPending):
			response.Conflict(w, err.Error())
		default:
			response.InternalError(w, "Failed to confirm session")
		}
		return
	}

	response.JSON(w, http.StatusOK, &TransfersResponse{
		Transfers: result.Transfers,
		IsZero:    result.IsZero,
	})
}

// Advance handles POST /settlements/{id}/advance
func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid session ID")
		return
	}

	session, err := h.service.Advance(r.Context(), id, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrNotGroupMember):
			response.Forbidden(w, err.Error())
		case errors.Is(err, ErrInvalidStatusChange):
			response.Conflict(w, err.Error())
		default:
			response.InternalError(w, "Failed to advance session")
		}
		return
	}

	response.JSON(w, http.StatusOK, session.ToResponse())
}

// GetTransfers handles GET /settlements/{id}/transfers
func (h *Handler) GetTransfers(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid session ID")
		return
	}

	transfers, err := h.service.GetTransfers(r.Context(), id, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrNotGroupMember):
			response.Forbidden(w, err.Error())
		default:
			response.InternalError(w, "Failed to get transfers")
		}
		return
	}

	response.JSON(w, http.StatusOK, transfers)
}

// Consolidated handles GET /settlements/consolidated?group_id=
//
//	@Summary	Net outstanding transfers across unsettled confirmed sessions
//	@Tags		settlements
//	@Produce	json
//	@Param		group_id	query		int	true	"Group ID"
//	@Success	200			{object}	response.APIResponse{data=TransfersResponse}
//	@Router		/settlements/consolidated [get]
func (h *Handler) Consolidated(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	groupID, err := strconv.ParseInt(r.URL.Query().Get("group_id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "group_id query parameter required")
		return
	}

	result, err := h.service.Consolidated(r.Context(), groupID, userID)
	if err != nil {
		if errors.Is(err, ErrNotGroupMember) {
			response.Forbidden(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to consolidate transfers")
		return
	}

	response.JSON(w, http.StatusOK, &TransfersResponse{
		Transfers: result.Transfers,
		IsZero:    result.IsZero,
	})
}
