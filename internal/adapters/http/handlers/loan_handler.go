package handlers

import (
	"errors"
	"strconv"
	"time"

	"chamalink/internal/core/domain"
	"chamalink/internal/core/services"
	"chamalink/internal/pkg/pagination"
	"chamalink/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LoanHandler handles loan endpoints
type LoanHandler struct {
	loanService *services.LoanService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *services.LoanService) *LoanHandler {
	return &LoanHandler{
		loanService: loanService,
	}
}

// List lists all loans
// @Summary List loans
// @Description List loans newest-first with display status and days remaining
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /loans [get]
func (h *LoanHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	result, err := h.loanService.List(c.Context(), &services.ListInput{
		Page:  params.Page,
		Limit: params.Limit,
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to retrieve loans")
	}

	return response.Success(c, "Loans retrieved successfully", result)
}

// My lists the authenticated member's loans
// @Summary List my loans
// @Description List loans belonging to the authenticated member
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /loans/my [get]
func (h *LoanHandler) My(c *fiber.Ctx) error {
	memberID, ok := c.Locals("memberID").(uint)
	if !ok || memberID == 0 {
		return response.Forbidden(c, "No member record linked to this account")
	}

	loans, err := h.loanService.ListByMember(c.Context(), memberID)
	if err != nil {
		return response.InternalServerError(c, "Failed to retrieve loans")
	}

	return response.SuccessList(c, "Loans retrieved successfully", loans, len(loans))
}

// Get returns one loan
// @Summary Get loan
// @Description Get a loan with member, guarantor and display status
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id} [get]
func (h *LoanHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	loan, err := h.loanService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrLoanNotFound) {
			return response.NotFound(c, "Loan not found")
		}
		return response.InternalServerError(c, "Failed to retrieve loan")
	}

	return response.Success(c, "Loan retrieved successfully", loan)
}

// ApplyRequest represents a loan application request body
type ApplyRequest struct {
	MemberID       uint    `json:"member_id"`
	Amount         float64 `json:"amount"`
	DurationMonths int     `json:"duration_months,omitempty"`
	GuarantorID    *uint   `json:"guarantor_id,omitempty"`
	Notes          string  `json:"notes,omitempty"`
}

// Apply submits a loan application
// @Summary Apply for loan
// @Description Apply for a loan; requires three paid contributions in the last three months
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ApplyRequest true "Application data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/apply [post]
func (h *LoanHandler) Apply(c *fiber.Ctx) error {
	var req ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.MemberID == 0 {
		return response.BadRequest(c, "Member ID is required")
	}

	userID, _ := c.Locals("userID").(uint)

	input := &services.ApplyInput{
		MemberID:       req.MemberID,
		Amount:         req.Amount,
		DurationMonths: req.DurationMonths,
		GuarantorID:    req.GuarantorID,
		Notes:          req.Notes,
	}

	loan, err := h.loanService.Apply(c.Context(), input, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAmountExceedsLimit):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrNotEligible):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrApplicantNotFound):
			return response.NotFound(c, "Applicant member not found")
		case errors.Is(err, services.ErrGuarantorNotFound):
			return response.NotFound(c, "Guarantor member not found")
		case errors.Is(err, services.ErrGuarantorIsApplicant):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to submit loan application")
		}
	}

	return response.Created(c, "Loan application submitted successfully", loan.ToResponse(time.Now()))
}

// CalculateRequest represents an amortization calculation request body
type CalculateRequest struct {
	Amount         float64 `json:"amount"`
	DurationMonths int     `json:"duration_months,omitempty"`
}

// Calculate returns a repayment schedule without creating a loan
// @Summary Calculate amortization
// @Description Compute a reducing-balance repayment schedule for a prospective loan
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CalculateRequest true "Calculation data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /loans/calculate [post]
func (h *LoanHandler) Calculate(c *fiber.Ctx) error {
	var req CalculateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	schedule, err := h.loanService.CalculateAmortization(req.Amount, req.DurationMonths)
	if err != nil {
		if errors.Is(err, services.ErrInvalidAmount) {
			return response.BadRequest(c, "Amount must be greater than 0 and within the maximum loan amount")
		}
		return response.InternalServerError(c, "Failed to calculate repayment schedule")
	}

	return response.Success(c, "Repayment schedule calculated successfully", schedule)
}

// UpdateStatusRequest represents a loan status change request body
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus moves a loan through its lifecycle
// @Summary Update loan status
// @Description Transition a loan's status (admin only)
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Param body body UpdateStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id}/status [put]
func (h *LoanHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Status == "" {
		return response.BadRequest(c, "Status is required")
	}

	role, _ := c.Locals("role").(string)

	loan, err := h.loanService.UpdateStatus(c.Context(), uint(id), req.Status, domain.Role(role))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLoanNotFound):
			return response.NotFound(c, "Loan not found")
		case errors.Is(err, services.ErrAdminRequired):
			return response.Forbidden(c, "Admin access required")
		case errors.Is(err, services.ErrUnknownLoanStatus):
			return response.BadRequest(c, "Unknown loan status")
		case errors.Is(err, services.ErrInvalidTransition):
			return response.BadRequest(c, "Invalid loan status transition")
		default:
			return response.InternalServerError(c, "Failed to update loan status")
		}
	}

	return response.Success(c, "Loan status updated successfully", loan.ToResponse(time.Now()))
}
