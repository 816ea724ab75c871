package handlers

import (
	"errors"
	"strconv"

	"chamalink/internal/core/services"
	"chamalink/internal/pkg/pagination"
	"chamalink/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MemberHandler handles member endpoints
type MemberHandler struct {
	memberService *services.MemberService
	loanService   *services.LoanService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *services.MemberService, loanService *services.LoanService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
		loanService:   loanService,
	}
}

// List lists all members
// @Summary List members
// @Description List members with contribution aggregates and current month status
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /members [get]
func (h *MemberHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	result, err := h.memberService.List(c.Context(), params.Page, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to retrieve members")
	}

	return response.Success(c, "Members retrieved successfully", result)
}

// Get returns one member
// @Summary Get member
// @Description Get a member with contribution totals and penalties
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id} [get]
func (h *MemberHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	member, err := h.memberService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to retrieve member")
	}

	return response.Success(c, "Member retrieved successfully", member)
}

// CreateMemberRequest represents create member request body
type CreateMemberRequest struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email,omitempty"`
	JoinedDate string `json:"joined_date,omitempty"`
	Image      string `json:"image,omitempty"`
}

// Create adds a new member
// @Summary Create member
// @Description Add a new member to the group (admin only)
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateMemberRequest true "Member data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /members [post]
func (h *MemberHandler) Create(c *fiber.Ctx) error {
	var req CreateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Name == "" {
		return response.BadRequest(c, "Name is required")
	}
	if req.Phone == "" {
		return response.BadRequest(c, "Phone number is required")
	}

	input := &services.CreateMemberInput{
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		JoinedDate: req.JoinedDate,
		Image:      req.Image,
	}

	member, err := h.memberService.Create(c.Context(), input)
	if err != nil {
		if errors.Is(err, services.ErrMemberPhoneTaken) {
			return response.Conflict(c, "Phone number already registered to a member")
		}
		return response.InternalServerError(c, "Failed to create member")
	}

	return response.Created(c, "Member created successfully", member.ToResponse())
}

// UpdateMemberRequest represents update member request body
type UpdateMemberRequest struct {
	Name   string `json:"name,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Email  string `json:"email,omitempty"`
	Status string `json:"status,omitempty"`
}

// Update updates a member
// @Summary Update member
// @Description Update a member's details (admin only)
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Param body body UpdateMemberRequest true "Member data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id} [put]
func (h *MemberHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	var req UpdateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.UpdateMemberInput{
		Name:   req.Name,
		Phone:  req.Phone,
		Email:  req.Email,
		Status: req.Status,
	}

	member, err := h.memberService.Update(c.Context(), uint(id), input)
	if err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to update member")
	}

	return response.Success(c, "Member updated successfully", member.ToResponse())
}

// Loans lists a member's loans
// @Summary List member loans
// @Description List all loans belonging to a member
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /members/{id}/loans [get]
func (h *MemberHandler) Loans(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	loans, err := h.loanService.ListByMember(c.Context(), uint(id))
	if err != nil {
		return response.InternalServerError(c, "Failed to retrieve member loans")
	}

	return response.SuccessList(c, "Member loans retrieved successfully", loans, len(loans))
}
