package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"chamalink/internal/adapters/persistence/models"
	"chamalink/internal/adapters/persistence/repositories"
	"chamalink/internal/config"
	"chamalink/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment service errors
var (
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrPaymentFieldMissing = errors.New("phone, amount and member_id are required")
	ErrReceiptMismatch     = errors.New("payment verification failed")
)

// PaymentService handles monthly contribution payments. The M-Pesa gateway
// is a simulation stand-in; it has no real protocol behind it.
type PaymentService struct {
	paymentRepo repositories.PaymentRepository
	memberRepo  repositories.MemberRepository
	cfg         *config.Config
	clock       func() time.Time
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	memberRepo repositories.MemberRepository,
	cfg *config.Config,
	clock func() time.Time,
) *PaymentService {
	if clock == nil {
		clock = time.Now
	}
	return &PaymentService{
		paymentRepo: paymentRepo,
		memberRepo:  memberRepo,
		cfg:         cfg,
		clock:       clock,
	}
}

// PaymentListOutput represents a payment listing
type PaymentListOutput struct {
	Payments   []*models.PaymentResponse `json:"payments"`
	Total      int64                     `json:"total"`
	Page       int                       `json:"page"`
	Limit      int                       `json:"limit"`
	TotalPages int                       `json:"total_pages"`
}

// List lists payments matching the filter
func (s *PaymentService) List(ctx context.Context, filter repositories.PaymentFilter, page, limit int) (*PaymentListOutput, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	payments, total, err := s.paymentRepo.List(ctx, filter, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.PaymentResponse, 0, len(payments))
	for _, payment := range payments {
		responses = append(responses, payment.ToResponse())
	}

	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}

	return &PaymentListOutput{
		Payments:   responses,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// StatsOutput represents contribution statistics
type StatsOutput struct {
	Month          string  `json:"month"`
	Year           string  `json:"year"`
	TotalMembers   int64   `json:"total_members"`
	PaidMembers    int64   `json:"paid_members"`
	PendingMembers int64   `json:"pending_members"`
	OverdueMembers int64   `json:"overdue_members"`
	TotalCollected float64 `json:"total_collected"`
	ExpectedTotal  float64 `json:"expected_total"`
	YearlyTotal    float64 `json:"yearly_total"`
	CollectionRate float64 `json:"collection_rate"`
	TotalPenalties float64 `json:"total_penalties"`
}

// Stats aggregates the current month and year contribution figures. The
// expected total is the member count times the configured monthly amount.
func (s *PaymentService) Stats(ctx context.Context) (*StatsOutput, error) {
	now := s.clock()
	month := now.Month().String()
	year := now.Format("2006")

	memberCount, err := s.memberRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	monthly, err := s.paymentRepo.MonthlyStats(ctx, month, year)
	if err != nil {
		return nil, err
	}

	yearly, err := s.paymentRepo.YearlyStats(ctx, year)
	if err != nil {
		return nil, err
	}

	return &StatsOutput{
		Month:          month,
		Year:           year,
		TotalMembers:   memberCount,
		PaidMembers:    monthly.PaidMembers,
		PendingMembers: monthly.PendingMembers,
		OverdueMembers: monthly.OverdueMembers,
		TotalCollected: monthly.TotalCollected,
		ExpectedTotal:  float64(memberCount) * s.cfg.Contribution.MonthlyAmount,
		YearlyTotal:    yearly.YearlyTotal,
		CollectionRate: yearly.CollectionRate,
		TotalPenalties: yearly.TotalPenalties,
	}, nil
}

// InitiateInput represents an M-Pesa payment initiation
type InitiateInput struct {
	Phone    string  `json:"phone" validate:"required"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	MemberID uint    `json:"memberId" validate:"required"`
}

// MpesaResponse mirrors the gateway STK push acknowledgement
type MpesaResponse struct {
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	MerchantRequestID   string `json:"MerchantRequestID"`
	MpesaReceiptNumber  string `json:"MpesaReceiptNumber"`
}

// InitiateOutput represents the initiation result
type InitiateOutput struct {
	PaymentID     uint           `json:"paymentId"`
	ReceiptNo     string         `json:"receipt_no"`
	MpesaResponse *MpesaResponse `json:"mpesaResponse"`
}

// Initiate records a pending contribution for the current month and rolls
// the member's deadline forward. The gateway call is simulated.
func (s *PaymentService) Initiate(ctx context.Context, input *InitiateInput, userID uint) (*InitiateOutput, error) {
	if input.Phone == "" || input.Amount <= 0 || input.MemberID == 0 {
		return nil, ErrPaymentFieldMissing
	}

	member, err := s.memberRepo.GetByID(ctx, input.MemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	mpesa := s.simulateStkPush(normalizePhone(input.Phone), input.Amount)

	now := s.clock()
	// Contributions fall due on the deadline day of the following month
	dueDate := time.Date(now.Year(), now.Month()+1, s.cfg.Contribution.DeadlineDay, 0, 0, 0, 0, now.Location())
	receiptNo := "MPS" + strings.ToUpper(uuid.NewString()[:8])

	payment := &models.Payment{
		MemberID:      member.ID,
		UserID:        &userID,
		Amount:        input.Amount,
		Month:         now.Month().String(),
		Year:          now.Format("2006"),
		DatePaid:      &now,
		DueDate:       &dueDate,
		Status:        domain.PaymentStatusPending,
		ReceiptNo:     receiptNo,
		MpesaCode:     mpesa.MpesaReceiptNumber,
		PaymentMethod: "mpesa",
		Verified:      false,
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	// Roll the member's payment markers forward
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	nextDeadline := today.AddDate(0, 1, 0)
	member.LastPaymentDate = &today
	member.NextPaymentDeadline = &nextDeadline
	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}

	return &InitiateOutput{
		PaymentID:     payment.ID,
		ReceiptNo:     receiptNo,
		MpesaResponse: mpesa,
	}, nil
}

// Verify confirms a payment against its receipt number and marks it paid.
// The gateway verification is a stand-in that always succeeds; the receipt
// number still has to match the recorded one.
func (s *PaymentService) Verify(ctx context.Context, paymentID uint, receiptNumber string) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	if payment.ReceiptNo != receiptNumber {
		return nil, ErrReceiptMismatch
	}

	now := s.clock()
	payment.Status = domain.PaymentStatusPaid
	payment.Verified = true
	payment.VerifiedAt = &now

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	return payment, nil
}

// simulateStkPush fakes the M-Pesa STK push acknowledgement
func (s *PaymentService) simulateStkPush(phone string, amount float64) *MpesaResponse {
	_ = phone
	_ = amount
	now := s.clock().UnixMilli()
	return &MpesaResponse{
		ResponseCode:        "0",
		ResponseDescription: "Success. Request accepted for processing",
		CustomerMessage:     "Success. Request accepted for processing",
		CheckoutRequestID:   fmt.Sprintf("ws_CO_%d", now),
		MerchantRequestID:   fmt.Sprintf("1000-%d", now),
		MpesaReceiptNumber:  "MPS" + strings.ToUpper(uuid.NewString()[:7]),
	}
}

// normalizePhone converts local Kenyan numbers to the 254 prefix format
func normalizePhone(phone string) string {
	switch {
	case strings.HasPrefix(phone, "254"):
		return phone
	case strings.HasPrefix(phone, "0"):
		return "254" + phone[1:]
	default:
		return "254" + phone
	}
}
