package services

import (
	"context"
	"errors"
	"time"

	"chamalink/internal/adapters/persistence/models"
	"chamalink/internal/adapters/persistence/repositories"
	"chamalink/internal/config"
	"chamalink/internal/core/domain"

	"gorm.io/gorm"
)

// Member service errors
var (
	ErrMemberNotFound   = errors.New("member not found")
	ErrMemberPhoneTaken = errors.New("phone number already registered to a member")
)

// MemberService handles membership business logic
type MemberService struct {
	memberRepo  repositories.MemberRepository
	paymentRepo repositories.PaymentRepository
	cfg         *config.Config
	clock       func() time.Time
}

// NewMemberService creates a new member service
func NewMemberService(
	memberRepo repositories.MemberRepository,
	paymentRepo repositories.PaymentRepository,
	cfg *config.Config,
	clock func() time.Time,
) *MemberService {
	if clock == nil {
		clock = time.Now
	}
	return &MemberService{
		memberRepo:  memberRepo,
		paymentRepo: paymentRepo,
		cfg:         cfg,
		clock:       clock,
	}
}

// MemberListOutput represents a member listing
type MemberListOutput struct {
	Members    []*models.MemberResponse `json:"members"`
	Total      int64                    `json:"total"`
	Page       int                      `json:"page"`
	Limit      int                      `json:"limit"`
	TotalPages int                      `json:"total_pages"`
}

// List lists members with their contribution aggregates and the status of
// the current month's contribution
func (s *MemberService) List(ctx context.Context, page, limit int) (*MemberListOutput, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	members, total, err := s.memberRepo.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	month := now.Month().String()
	year := now.Format("2006")

	responses := make([]*models.MemberResponse, 0, len(members))
	for _, member := range members {
		resp := member.ToResponse()

		count, totalPaid, _, err := s.paymentRepo.AggregateByMember(ctx, member.ID)
		if err != nil {
			return nil, err
		}
		resp.PaymentsCount = count
		resp.TotalPaid = totalPaid

		status, err := s.paymentRepo.MonthStatus(ctx, member.ID, month, year)
		if err != nil {
			return nil, err
		}
		resp.CurrentMonthStatus = status

		responses = append(responses, resp)
	}

	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}

	return &MemberListOutput{
		Members:    responses,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// GetByID gets a member with contribution aggregates including penalties
func (s *MemberService) GetByID(ctx context.Context, id uint) (*models.MemberResponse, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	resp := member.ToResponse()
	count, totalPaid, totalPenalties, err := s.paymentRepo.AggregateByMember(ctx, member.ID)
	if err != nil {
		return nil, err
	}
	resp.PaymentsCount = count
	resp.TotalPaid = totalPaid
	resp.TotalPenalties = totalPenalties

	return resp, nil
}

// CreateMemberInput represents create member input
type CreateMemberInput struct {
	Name       string `json:"name" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	Email      string `json:"email,omitempty"`
	JoinedDate string `json:"joined_date,omitempty"`
	Image      string `json:"image,omitempty"`
}

// Create adds a new member. The first contribution deadline is ten days out,
// giving new joiners a grace period before the monthly cycle starts.
func (s *MemberService) Create(ctx context.Context, input *CreateMemberInput) (*models.Member, error) {
	now := s.clock()
	deadline := now.AddDate(0, 0, 10)

	joined := input.JoinedDate
	if joined == "" {
		joined = now.Format("2006-01-02")
	}
	image := input.Image
	if image == "" {
		image = "images/default.jpg"
	}

	member := &models.Member{
		Name:                input.Name,
		Phone:               input.Phone,
		Email:               input.Email,
		Status:              domain.MemberStatusPending,
		JoinedDate:          joined,
		Image:               image,
		NextPaymentDeadline: &deadline,
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrMemberPhoneTaken
		}
		return nil, err
	}

	return member, nil
}

// UpdateMemberInput represents update member input
type UpdateMemberInput struct {
	Name   string `json:"name,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Email  string `json:"email,omitempty"`
	Status string `json:"status,omitempty"`
}

// Update updates a member's details
func (s *MemberService) Update(ctx context.Context, id uint, input *UpdateMemberInput) (*models.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	if input.Name != "" {
		member.Name = input.Name
	}
	if input.Phone != "" {
		member.Phone = input.Phone
	}
	if input.Email != "" {
		member.Email = input.Email
	}
	if input.Status != "" {
		member.Status = input.Status
	}

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}

	return member, nil
}
