package handlers

import (
	"errors"
	"strconv"

	"chamalink/internal/adapters/persistence/repositories"
	"chamalink/internal/core/services"
	"chamalink/internal/pkg/pagination"
	"chamalink/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles contribution payment endpoints
type PaymentHandler struct {
	paymentService *services.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// List lists payments
// @Summary List payments
// @Description List contribution payments with optional month/year/status/member filters
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param month query string false "Month name filter"
// @Param year query string false "Year filter"
// @Param status query string false "Status filter"
// @Param member_id query int false "Member filter"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /payments [get]
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	filter := repositories.PaymentFilter{
		Month:  c.Query("month"),
		Year:   c.Query("year"),
		Status: c.Query("status"),
	}
	if raw := c.Query("member_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return response.BadRequest(c, "Invalid member ID filter")
		}
		memberID := uint(id)
		filter.MemberID = &memberID
	}

	result, err := h.paymentService.List(c.Context(), filter, params.Page, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to retrieve payments")
	}

	return response.Success(c, "Payments retrieved successfully", result)
}

// Stats returns contribution statistics
// @Summary Payment statistics
// @Description Current month and year contribution statistics
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /payments/stats [get]
func (h *PaymentHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.paymentService.Stats(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to retrieve payment statistics")
	}

	return response.Success(c, "Payment statistics retrieved successfully", stats)
}

// InitiateRequest represents an M-Pesa payment initiation request body
type InitiateRequest struct {
	Phone    string  `json:"phone"`
	Amount   float64 `json:"amount"`
	MemberID uint    `json:"memberId"`
}

// Initiate starts an M-Pesa contribution payment
// @Summary Initiate payment
// @Description Initiate an M-Pesa STK push for a monthly contribution
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body InitiateRequest true "Payment data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /payments/initiate [post]
func (h *PaymentHandler) Initiate(c *fiber.Ctx) error {
	var req InitiateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	userID, _ := c.Locals("userID").(uint)

	input := &services.InitiateInput{
		Phone:    req.Phone,
		Amount:   req.Amount,
		MemberID: req.MemberID,
	}

	result, err := h.paymentService.Initiate(c.Context(), input, userID)
	if err != nil {
		if errors.Is(err, services.ErrPaymentFieldMissing) {
			return response.BadRequest(c, err.Error())
		}
		return response.InternalServerError(c, "Failed to initiate payment")
	}

	return response.Success(c, "Payment initiated successfully", result)
}

// VerifyRequest represents a payment verification request body
type VerifyRequest struct {
	ReceiptNumber string `json:"receiptNumber"`
}

// Verify confirms a pending payment against its receipt
// @Summary Verify payment
// @Description Verify a pending payment using the M-Pesa receipt number
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Param body body VerifyRequest true "Verification data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /payments/verify/{id} [post]
func (h *PaymentHandler) Verify(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid payment ID")
	}

	var req VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.ReceiptNumber == "" {
		return response.BadRequest(c, "Receipt number is required")
	}

	payment, err := h.paymentService.Verify(c.Context(), uint(id), req.ReceiptNumber)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPaymentNotFound):
			return response.NotFound(c, "Payment not found")
		case errors.Is(err, services.ErrReceiptMismatch):
			return response.BadRequest(c, "Payment verification failed")
		default:
			return response.InternalServerError(c, "Failed to verify payment")
		}
	}

	return response.Success(c, "Payment verified successfully", payment.ToResponse())
}
