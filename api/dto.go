/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Request types carry go-playground/validator tags; handlers run the
  shared validator before touching domain logic. Date strings use the
  ISO form 2006-01-02 and are parsed in handlers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/pulsehr/leave-engine/leave"
)

const dateLayout = "2006-01-02"

// =============================================================================
// REQUEST TYPES
// =============================================================================

// SubmitLeaveRequest is the body for submitting a new leave request.
type SubmitLeaveRequest struct {
	Type        string `json:"type" validate:"required"`
	StartDate   string `json:"start_date" validate:"required"`
	EndDate     string `json:"end_date" validate:"required"`
	Reason      string `json:"reason" validate:"required"`
	ContactInfo string `json:"contact_info,omitempty"`
}

// DecisionRequest is the body for approving a request.
type DecisionRequest struct {
	DecidedBy string `json:"decided_by" validate:"required"`
}

// RejectionRequest is the body for rejecting a request.
type RejectionRequest struct {
	DecidedBy       string `json:"decided_by" validate:"required"`
	RejectionReason string `json:"rejection_reason" validate:"required"`
}

// CancelRequest identifies the employee cancelling their own request.
type CancelRequest struct {
	RequestedBy string `json:"requested_by" validate:"required"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// ApplicationDTO represents a leave application in API responses.
type ApplicationDTO struct {
	ID              string `json:"id"`
	EmployeeID      string `json:"employee_id"`
	Type            string `json:"type"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	Days            int    `json:"days"`
	Reason          string `json:"reason"`
	ContactInfo     string `json:"contact_info,omitempty"`
	Status          string `json:"status"`
	AppliedOn       string `json:"applied_on"`
	DecidedOn       string `json:"decided_on,omitempty"`
	DecidedBy       string `json:"decided_by,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty"`
}

// BalanceDTO represents the projected balance for one leave type.
type BalanceDTO struct {
	Type      string `json:"type"`
	Total     int    `json:"total"`
	Used      int    `json:"used"`
	Pending   int    `json:"pending"`
	Remaining int    `json:"remaining"`
}

// TypeUsageDTO aggregates company-wide usage of one leave type.
type TypeUsageDTO struct {
	Type         string `json:"type"`
	ApprovedDays int    `json:"approved_days"`
	PendingDays  int    `json:"pending_days"`
	Utilization  string `json:"utilization_pct"`
}

// SummaryDTO is the HR dashboard aggregate.
type SummaryDTO struct {
	PendingCount  int            `json:"pending_count"`
	ApprovedCount int            `json:"approved_count"`
	RejectedCount int            `json:"rejected_count"`
	Employees     int            `json:"employees"`
	Usage         []TypeUsageDTO `json:"usage"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toApplicationDTO(app leave.Application) ApplicationDTO {
	dto := ApplicationDTO{
		ID:              app.ID,
		EmployeeID:      app.EmployeeID,
		Type:            string(app.Type),
		StartDate:       app.StartDate.Format(dateLayout),
		EndDate:         app.EndDate.Format(dateLayout),
		Days:            app.Days,
		Reason:          app.Reason,
		ContactInfo:     app.ContactInfo,
		Status:          string(app.Status),
		AppliedOn:       app.AppliedOn.Format(dateLayout),
		DecidedBy:       app.DecidedBy,
		RejectionReason: app.RejectionReason,
	}
	if !app.DecidedOn.IsZero() {
		dto.DecidedOn = app.DecidedOn.Format(dateLayout)
	}
	return dto
}

func toApplicationDTOs(apps []leave.Application) []ApplicationDTO {
	dtos := make([]ApplicationDTO, len(apps))
	for i, app := range apps {
		dtos[i] = toApplicationDTO(app)
	}
	return dtos
}

func toBalanceDTOs(balances map[leave.Type]leave.Balance) []BalanceDTO {
	dtos := make([]BalanceDTO, 0, len(balances))
	for _, typ := range leave.Types() {
		b := balances[typ]
		dtos = append(dtos, BalanceDTO{
			Type:      string(b.Type),
			Total:     b.Total,
			Used:      b.Used,
			Pending:   b.Pending,
			Remaining: b.Remaining,
		})
	}
	return dtos
}

func toSummaryDTO(s leave.Summary) SummaryDTO {
	dto := SummaryDTO{
		PendingCount:  s.PendingCount,
		ApprovedCount: s.ApprovedCount,
		RejectedCount: s.RejectedCount,
		Employees:     s.Employees,
	}
	for _, u := range s.Usage {
		dto.Usage = append(dto.Usage, TypeUsageDTO{
			Type:         string(u.Type),
			ApprovedDays: u.ApprovedDays,
			PendingDays:  u.PendingDays,
			Utilization:  u.Utilization.StringFixed(2),
		})
	}
	return dto
}
