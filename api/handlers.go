/*
handlers.go - HTTP API handlers for the leave workflow engine

PURPOSE:
  Exposes the leave engine via REST. Handles HTTP request/response, JSON
  serialization, and delegates to domain logic.

ENDPOINTS:
  Employee:
    POST   /api/employees/{id}/leave-requests         Submit request
    GET    /api/employees/{id}/leave-requests/active  Active requests
    GET    /api/employees/{id}/leave-requests/history Past/rejected requests
    GET    /api/employees/{id}/balances               Per-type balances
    DELETE /api/leave-requests/{id}                   Cancel own request

  HR:
    GET    /api/leave-requests/pending                Approval queue
    POST   /api/leave-requests/{id}/approve           Approve
    POST   /api/leave-requests/{id}/reject            Reject (reason required)
    GET    /api/summary                               Dashboard aggregate

ERROR HANDLING:
  Domain errors map to HTTP status via the leave package predicates:
  - 400: invalid input, invalid range, missing reason, unknown type
  - 404: unknown application id
  - 409: insufficient balance, illegal transition, non-owner cancel
  - 500: store failures

SECURITY NOTE:
  The engine trusts the caller's asserted identity (employee ids and
  decider ids arrive in the path/body). Authentication and role checks
  belong to the collaborator layer in front of this API.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/pulsehr/leave-engine/leave"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Engine  *leave.Engine
	Queries *leave.Queries

	validate *validator.Validate
	log      *zap.Logger
}

// NewHandler creates a handler over the engine and query facade.
func NewHandler(engine *leave.Engine, queries *leave.Queries, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		Engine:   engine,
		Queries:  queries,
		validate: validator.New(),
		log:      log.Named("leave.api"),
	}
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// SubmitRequest handles POST /api/employees/{id}/leave-requests.
func (h *Handler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	var req SubmitLeaveRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "start_date must be YYYY-MM-DD", "invalid_date")
		return
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "end_date must be YYYY-MM-DD", "invalid_date")
		return
	}

	app, err := h.Engine.Submit(r.Context(), leave.SubmitInput{
		EmployeeID:  employeeID,
		Type:        leave.Type(req.Type),
		StartDate:   start,
		EndDate:     end,
		Reason:      req.Reason,
		ContactInfo: req.ContactInfo,
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toApplicationDTO(app))
}

// ListActive handles GET /api/employees/{id}/leave-requests/active.
func (h *Handler) ListActive(w http.ResponseWriter, r *http.Request) {
	apps, err := h.Queries.ListActive(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toApplicationDTOs(apps))
}

// ListHistory handles GET /api/employees/{id}/leave-requests/history.
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	apps, err := h.Queries.ListHistory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toApplicationDTOs(apps))
}

// GetBalances handles GET /api/employees/{id}/balances.
func (h *Handler) GetBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := h.Queries.Balances(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBalanceDTOs(balances))
}

// CancelRequest handles DELETE /api/leave-requests/{id}.
func (h *Handler) CancelRequest(w http.ResponseWriter, r *http.Request) {
	var req CancelRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.Engine.Cancel(r.Context(), chi.URLParam(r, "id"), req.RequestedBy); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// HR HANDLERS
// =============================================================================

// ListPending handles GET /api/leave-requests/pending.
func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	apps, err := h.Queries.ListPendingForApproval(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toApplicationDTOs(apps))
}

// ApproveRequest handles POST /api/leave-requests/{id}/approve.
func (h *Handler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	var req DecisionRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	app, err := h.Engine.Approve(r.Context(), chi.URLParam(r, "id"), req.DecidedBy)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toApplicationDTO(app))
}

// RejectRequest handles POST /api/leave-requests/{id}/reject.
func (h *Handler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	var req RejectionRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	app, err := h.Engine.Reject(r.Context(), chi.URLParam(r, "id"), req.DecidedBy, req.RejectionReason)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toApplicationDTO(app))
}

// GetSummary handles GET /api/summary.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Queries.Summary(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryDTO(summary))
}

// =============================================================================
// HELPERS
// =============================================================================

// decodeAndValidate parses the JSON body into dst and runs struct
// validation. Writes the error response itself and returns false on
// failure.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "invalid_body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "validation_failed")
		return false
	}
	return true
}

func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		status = http.StatusInternalServerError
		code   = "internal_error"
	)
	switch {
	case errors.Is(err, leave.ErrMissingReason):
		status, code = http.StatusBadRequest, "missing_reason"
	case errors.Is(err, leave.ErrInvalidRange):
		status, code = http.StatusBadRequest, "invalid_range"
	case errors.Is(err, leave.ErrUnknownType):
		status, code = http.StatusBadRequest, "unknown_type"
	case errors.Is(err, leave.ErrInsufficientBalance):
		status, code = http.StatusConflict, "insufficient_balance"
	case errors.Is(err, leave.ErrInvalidTransition):
		status, code = http.StatusConflict, "invalid_transition"
	case leave.IsNotFound(err):
		status, code = http.StatusNotFound, "not_found"
	}

	if status == http.StatusInternalServerError {
		h.log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeError(w, status, "internal error", code)
		return
	}

	h.log.Warn("request rejected",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("code", code),
		zap.Error(err),
	)
	writeError(w, status, err.Error(), code)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, code string) {
	writeJSON(w, status, ErrorResponse{Error: msg, Code: code})
}
