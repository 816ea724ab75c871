package services

import (
	"context"
	"errors"
	"time"

	"chamalink/internal/adapters/persistence/models"
	"chamalink/internal/adapters/persistence/repositories"
	"chamalink/internal/config"
	"chamalink/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Loan service errors
var (
	ErrLoanNotFound         = errors.New("loan not found")
	ErrAmountExceedsLimit   = errors.New("loan amount must be positive and within the maximum")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrNotEligible          = errors.New("must have 3 qualifying payments to apply for a loan")
	ErrAdminRequired        = errors.New("admin access required")
	ErrUnknownLoanStatus    = errors.New("unknown loan status")
	ErrInvalidTransition    = errors.New("invalid loan status transition")
	ErrApplicantNotFound    = errors.New("applicant member not found")
	ErrGuarantorNotFound    = errors.New("guarantor member not found")
	ErrGuarantorIsApplicant = errors.New("guarantor must be a different member")
)

// LoanService owns loan eligibility checks, amortization calculation and
// status lifecycle transitions. It reads the payment ledger and reads/writes
// the loan store; members and payments are never mutated from here.
type LoanService struct {
	loanRepo    repositories.LoanRepository
	paymentRepo repositories.PaymentRepository
	memberRepo  repositories.MemberRepository
	cfg         *config.Config
	clock       func() time.Time
}

// NewLoanService creates a new loan service. A nil clock defaults to
// time.Now; tests inject a fixed clock for deterministic date arithmetic.
func NewLoanService(
	loanRepo repositories.LoanRepository,
	paymentRepo repositories.PaymentRepository,
	memberRepo repositories.MemberRepository,
	cfg *config.Config,
	clock func() time.Time,
) *LoanService {
	if clock == nil {
		clock = time.Now
	}
	return &LoanService{
		loanRepo:    loanRepo,
		paymentRepo: paymentRepo,
		memberRepo:  memberRepo,
		cfg:         cfg,
		clock:       clock,
	}
}

// today returns the clock's date truncated to midnight
func (s *LoanService) today() time.Time {
	now := s.clock()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// Eligibility represents an eligibility check result
type Eligibility struct {
	Eligible      bool   `json:"eligible"`
	PaymentsFound int64  `json:"payments_found"`
	Reason        string `json:"reason,omitempty"`
}

// CheckEligibility reports whether a member may apply for a new loan: at
// least MinQualifyingPayments contributions with status paid dated within the
// trailing EligibilityWindowMonths calendar months. This is a count over the
// window, not a consecutive-months check; three payments in the same week
// qualify. No side effects.
func (s *LoanService) CheckEligibility(ctx context.Context, memberID uint) (*Eligibility, error) {
	since := s.today().AddDate(0, -s.cfg.Loan.EligibilityWindowMonths, 0)

	count, err := s.paymentRepo.CountPaidSince(ctx, memberID, since)
	if err != nil {
		return nil, err
	}

	if count < int64(s.cfg.Loan.MinQualifyingPayments) {
		return &Eligibility{
			Eligible:      false,
			PaymentsFound: count,
			Reason:        ErrNotEligible.Error(),
		}, nil
	}

	return &Eligibility{Eligible: true, PaymentsFound: count}, nil
}

// ApplyInput represents a loan application
type ApplyInput struct {
	MemberID       uint    `json:"member_id" validate:"required"`
	Amount         float64 `json:"amount" validate:"required,gt=0"`
	DurationMonths int     `json:"duration_months,omitempty"`
	GuarantorID    *uint   `json:"guarantor_id,omitempty"`
	Notes          string  `json:"notes,omitempty"`
}

// Apply validates a loan application and inserts a pending loan.
//
// Validation order matters: amount limit first, then eligibility; the first
// failure wins. Member and guarantor existence are only checked when
// StrictGuarantorCheck is enabled, preserving the historical lenient
// behavior by default.
//
// The opening remaining_amount is derived from the same reducing-balance
// amortization used by CalculateAmortization, so the two paths always agree
// on the total owed.
func (s *LoanService) Apply(ctx context.Context, input *ApplyInput, userID uint) (*models.Loan, error) {
	if input.Amount <= 0 || input.Amount > s.cfg.Loan.MaxAmount {
		return nil, ErrAmountExceedsLimit
	}

	eligibility, err := s.CheckEligibility(ctx, input.MemberID)
	if err != nil {
		return nil, err
	}
	if !eligibility.Eligible {
		return nil, ErrNotEligible
	}

	if s.cfg.Loan.StrictGuarantorCheck {
		if err := s.validateParties(ctx, input.MemberID, input.GuarantorID); err != nil {
			return nil, err
		}
	}

	duration := input.DurationMonths
	if duration <= 0 {
		duration = s.cfg.Loan.DefaultDurationMonths
	}

	today := s.today()
	// Calendar-month addition with Go's AddDate normalization: Jan 31 plus
	// one month lands on Mar 2/3. Fixed at application time, never
	// recomputed.
	dueDate := today.AddDate(0, duration, 0)

	schedule := s.amortize(decimal.NewFromFloat(input.Amount), duration)

	loan := &models.Loan{
		MemberID:        input.MemberID,
		UserID:          userID,
		Amount:          input.Amount,
		InterestRate:    s.cfg.Loan.MonthlyInterestRate,
		DurationMonths:  duration,
		Status:          string(domain.LoanStatusPending),
		ApplicationDate: today,
		DueDate:         dueDate,
		RemainingAmount: schedule.totalRepayment.InexactFloat64(),
		GuarantorID:     input.GuarantorID,
		Notes:           input.Notes,
	}

	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}

	return loan, nil
}

// validateParties enforces strict-mode applicant/guarantor checks
func (s *LoanService) validateParties(ctx context.Context, memberID uint, guarantorID *uint) error {
	exists, err := s.memberRepo.Exists(ctx, memberID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrApplicantNotFound
	}

	if guarantorID == nil {
		return nil
	}
	if *guarantorID == memberID {
		return ErrGuarantorIsApplicant
	}

	exists, err = s.memberRepo.Exists(ctx, *guarantorID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrGuarantorNotFound
	}
	return nil
}

// ScheduleEntry represents one month of an amortization schedule. Each field
// is rounded to the nearest whole currency unit independently.
type ScheduleEntry struct {
	Month     int   `json:"month"`
	Principal int64 `json:"principal"`
	Interest  int64 `json:"interest"`
	Total     int64 `json:"total"`
	Remaining int64 `json:"remaining"`
}

// AmortizationSchedule represents a full repayment breakdown
type AmortizationSchedule struct {
	Amount                int64           `json:"amount"`
	DurationMonths        int             `json:"duration_months"`
	MonthlyInterestRate   string          `json:"monthly_interest_rate"`
	TotalInterest         int64           `json:"total_interest"`
	TotalRepayment        int64           `json:"total_repayment"`
	AverageMonthlyPayment int64           `json:"average_monthly_payment"`
	MonthlyPayments       []ScheduleEntry `json:"monthly_payments"`
}

// amortizeResult keeps the unrounded totals alongside the displayed schedule
type amortizeResult struct {
	schedule       *AmortizationSchedule
	totalInterest  decimal.Decimal
	totalRepayment decimal.Decimal
}

// CalculateAmortization computes a reducing-balance repayment schedule:
// interest at the fixed monthly rate on the opening balance of each month,
// principal repaid in equal monthly portions. Pure function; no persistence
// access.
//
// Monthly rows and the grand totals are rounded independently, so the sum of
// the rounded rows may drift from the rounded totals by up to one unit per
// month. Both are kept as-is for compatibility with the consumers of the
// original schedule format.
func (s *LoanService) CalculateAmortization(amount float64, durationMonths int) (*AmortizationSchedule, error) {
	if amount <= 0 || amount > s.cfg.Loan.MaxAmount {
		return nil, ErrInvalidAmount
	}

	if durationMonths <= 0 {
		durationMonths = s.cfg.Loan.DefaultDurationMonths
	}

	return s.amortize(decimal.NewFromFloat(amount), durationMonths).schedule, nil
}

func (s *LoanService) amortize(amount decimal.Decimal, months int) *amortizeResult {
	rate := decimal.NewFromFloat(s.cfg.Loan.MonthlyInterestRate).Div(decimal.NewFromInt(100))
	principal := amount.Div(decimal.NewFromInt(int64(months)))

	remaining := amount
	totalInterest := decimal.Zero
	entries := make([]ScheduleEntry, 0, months)

	for month := 1; month <= months; month++ {
		interest := remaining.Mul(rate)
		total := principal.Add(interest)

		entries = append(entries, ScheduleEntry{
			Month:     month,
			Principal: roundUnit(principal),
			Interest:  roundUnit(interest),
			Total:     roundUnit(total),
			Remaining: roundUnit(remaining.Sub(principal)),
		})

		totalInterest = totalInterest.Add(interest)
		remaining = remaining.Sub(principal)
	}

	totalRepayment := amount.Add(totalInterest)

	return &amortizeResult{
		schedule: &AmortizationSchedule{
			Amount:                roundUnit(amount),
			DurationMonths:        months,
			MonthlyInterestRate:   rate.Mul(decimal.NewFromInt(100)).String() + "%",
			TotalInterest:         roundUnit(totalInterest),
			TotalRepayment:        roundUnit(totalRepayment),
			AverageMonthlyPayment: roundUnit(totalRepayment.Div(decimal.NewFromInt(int64(months)))),
			MonthlyPayments:       entries,
		},
		totalInterest:  totalInterest,
		totalRepayment: totalRepayment,
	}
}

// roundUnit rounds to the nearest whole currency unit, halves away from zero
func roundUnit(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

// UpdateStatus moves a loan along its lifecycle. Admin only. Transitions are
// validated against the state machine in the domain package; a same-status
// update is a no-op rather than an error.
//
// approval_date is set once and never reset by a repeated approval;
// disbursement_date is set when the loan becomes active. Dates are never
// cleared: the loan row is the audit trail.
func (s *LoanService) UpdateStatus(ctx context.Context, loanID uint, newStatus string, actorRole domain.Role) (*models.Loan, error) {
	if actorRole != domain.RoleAdmin {
		return nil, ErrAdminRequired
	}

	target, ok := domain.ParseLoanStatus(newStatus)
	if !ok {
		return nil, ErrUnknownLoanStatus
	}

	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}

	current := domain.LoanStatus(loan.Status)
	if !domain.CanTransition(current, target) {
		return nil, ErrInvalidTransition
	}

	now := s.clock()
	switch target {
	case domain.LoanStatusApproved:
		if loan.ApprovalDate == nil {
			loan.ApprovalDate = &now
		}
	case domain.LoanStatusActive:
		if loan.DisbursementDate == nil {
			loan.DisbursementDate = &now
		}
	}

	loan.Status = string(target)

	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, err
	}

	return loan, nil
}

// ListInput represents loan list parameters
type ListInput struct {
	Page  int
	Limit int
}

// ListOutput represents a loan listing with derived display fields
type ListOutput struct {
	Loans      []*models.LoanResponse `json:"loans"`
	Total      int64                  `json:"total"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
}

// List lists loans newest-first with display_status and days_remaining
// derived against the current clock
func (s *LoanService) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = 10
	}
	if input.Limit > 100 {
		input.Limit = 100
	}

	offset := (input.Page - 1) * input.Limit
	loans, total, err := s.loanRepo.List(ctx, offset, input.Limit)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	responses := make([]*models.LoanResponse, 0, len(loans))
	for _, loan := range loans {
		responses = append(responses, loan.ToResponse(now))
	}

	totalPages := int(total) / input.Limit
	if int(total)%input.Limit > 0 {
		totalPages++
	}

	return &ListOutput{
		Loans:      responses,
		Total:      total,
		Page:       input.Page,
		Limit:      input.Limit,
		TotalPages: totalPages,
	}, nil
}

// GetByID gets a loan with derived display fields
func (s *LoanService) GetByID(ctx context.Context, id uint) (*models.LoanResponse, error) {
	loan, err := s.loanRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}
	return loan.ToResponse(s.clock()), nil
}

// ListByMember lists a member's loans with derived display fields
func (s *LoanService) ListByMember(ctx context.Context, memberID uint) ([]*models.LoanResponse, error) {
	loans, err := s.loanRepo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	responses := make([]*models.LoanResponse, 0, len(loans))
	for _, loan := range loans {
		responses = append(responses, loan.ToResponse(now))
	}
	return responses, nil
}
