package services

import (
	"context"
	"testing"
	"time"

	"chamalink/internal/adapters/persistence/models"
	"chamalink/internal/adapters/persistence/repositories"
	"chamalink/internal/config"
	"chamalink/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ============================================================
// In-memory repository fakes
// ============================================================

type fakeLoanRepo struct {
	loans  map[uint]*models.Loan
	nextID uint
}

func newFakeLoanRepo() *fakeLoanRepo {
	return &fakeLoanRepo{loans: make(map[uint]*models.Loan)}
}

func (r *fakeLoanRepo) Create(_ context.Context, loan *models.Loan) error {
	r.nextID++
	loan.ID = r.nextID
	stored := *loan
	r.loans[loan.ID] = &stored
	return nil
}

func (r *fakeLoanRepo) GetByID(_ context.Context, id uint) (*models.Loan, error) {
	loan, ok := r.loans[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	stored := *loan
	return &stored, nil
}

func (r *fakeLoanRepo) Update(_ context.Context, loan *models.Loan) error {
	stored := *loan
	r.loans[loan.ID] = &stored
	return nil
}

func (r *fakeLoanRepo) List(_ context.Context, offset, limit int) ([]*models.Loan, int64, error) {
	var out []*models.Loan
	for _, loan := range r.loans {
		out = append(out, loan)
	}
	return out, int64(len(r.loans)), nil
}

func (r *fakeLoanRepo) ListByMember(_ context.Context, memberID uint) ([]*models.Loan, error) {
	var out []*models.Loan
	for _, loan := range r.loans {
		if loan.MemberID == memberID {
			out = append(out, loan)
		}
	}
	return out, nil
}

func (r *fakeLoanRepo) ListRecent(_ context.Context, limit int) ([]*models.Loan, error) {
	var out []*models.Loan
	for _, loan := range r.loans {
		if len(out) == limit {
			break
		}
		out = append(out, loan)
	}
	return out, nil
}

func (r *fakeLoanRepo) CountActivePastDue(_ context.Context, cutoff time.Time) (int64, error) {
	var count int64
	for _, loan := range r.loans {
		if loan.Status == string(domain.LoanStatusActive) && loan.DueDate.Before(cutoff) {
			count++
		}
	}
	return count, nil
}

func (r *fakeLoanRepo) ActiveStats(_ context.Context) (*repositories.ActiveLoanStats, error) {
	stats := &repositories.ActiveLoanStats{}
	for _, loan := range r.loans {
		if loan.Status == string(domain.LoanStatusApproved) || loan.Status == string(domain.LoanStatusActive) {
			stats.Count++
			stats.TotalAmount += loan.Amount
			stats.Outstanding += loan.RemainingAmount
		}
	}
	return stats, nil
}

// fakePaymentRepo only implements the ledger reads the loan engine uses; the
// write-side methods are never hit from these tests.
type fakePaymentRepo struct {
	paidDates map[uint][]time.Time
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{paidDates: make(map[uint][]time.Time)}
}

func (r *fakePaymentRepo) addPaid(memberID uint, dates ...time.Time) {
	r.paidDates[memberID] = append(r.paidDates[memberID], dates...)
}

func (r *fakePaymentRepo) CountPaidSince(_ context.Context, memberID uint, since time.Time) (int64, error) {
	var count int64
	for _, d := range r.paidDates[memberID] {
		if !d.Before(since) {
			count++
		}
	}
	return count, nil
}

func (r *fakePaymentRepo) Create(_ context.Context, _ *models.Payment) error { return nil }
func (r *fakePaymentRepo) GetByID(_ context.Context, _ uint) (*models.Payment, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *fakePaymentRepo) Update(_ context.Context, _ *models.Payment) error { return nil }
func (r *fakePaymentRepo) List(_ context.Context, _ repositories.PaymentFilter, _, _ int) ([]*models.Payment, int64, error) {
	return nil, 0, nil
}
func (r *fakePaymentRepo) ListRecent(_ context.Context, _ int) ([]*models.Payment, error) {
	return nil, nil
}
func (r *fakePaymentRepo) AggregateByMember(_ context.Context, _ uint) (int64, float64, float64, error) {
	return 0, 0, 0, nil
}
func (r *fakePaymentRepo) MonthStatus(_ context.Context, _ uint, _, _ string) (string, error) {
	return "", nil
}
func (r *fakePaymentRepo) MarkOverdueBefore(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}
func (r *fakePaymentRepo) MonthlyStats(_ context.Context, _, _ string) (*repositories.MonthlyPaymentStats, error) {
	return &repositories.MonthlyPaymentStats{}, nil
}
func (r *fakePaymentRepo) YearlyStats(_ context.Context, _ string) (*repositories.YearlyPaymentStats, error) {
	return &repositories.YearlyPaymentStats{}, nil
}

type fakeMemberRepo struct {
	members map[uint]*models.Member
}

func newFakeMemberRepo(ids ...uint) *fakeMemberRepo {
	r := &fakeMemberRepo{members: make(map[uint]*models.Member)}
	for _, id := range ids {
		r.members[id] = &models.Member{ID: id}
	}
	return r
}

func (r *fakeMemberRepo) Create(_ context.Context, m *models.Member) error { return nil }
func (r *fakeMemberRepo) GetByID(_ context.Context, id uint) (*models.Member, error) {
	m, ok := r.members[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}
func (r *fakeMemberRepo) Update(_ context.Context, _ *models.Member) error { return nil }
func (r *fakeMemberRepo) List(_ context.Context, _, _ int) ([]*models.Member, int64, error) {
	return nil, 0, nil
}
func (r *fakeMemberRepo) Exists(_ context.Context, id uint) (bool, error) {
	_, ok := r.members[id]
	return ok, nil
}
func (r *fakeMemberRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.members)), nil
}
func (r *fakeMemberRepo) CountUpcomingDeadlines(_ context.Context, limit int) ([]*models.Member, error) {
	var out []*models.Member
	for _, m := range r.members {
		if m.NextPaymentDeadline != nil && len(out) < limit {
			out = append(out, m)
		}
	}
	return out, nil
}

// ============================================================
// Test scaffolding
// ============================================================

var testTime = time.Date(2024, time.May, 15, 10, 30, 0, 0, time.UTC)

func testClock() time.Time { return testTime }

func testLoanConfig() *config.Config {
	return &config.Config{
		Loan: config.LoanConfig{
			MaxAmount:               50000,
			MonthlyInterestRate:     10,
			DefaultDurationMonths:   3,
			MinQualifyingPayments:   3,
			EligibilityWindowMonths: 3,
		},
	}
}

type loanFixture struct {
	svc         *LoanService
	loanRepo    *fakeLoanRepo
	paymentRepo *fakePaymentRepo
	memberRepo  *fakeMemberRepo
	cfg         *config.Config
}

func newLoanFixture(t *testing.T) *loanFixture {
	t.Helper()
	f := &loanFixture{
		loanRepo:    newFakeLoanRepo(),
		paymentRepo: newFakePaymentRepo(),
		memberRepo:  newFakeMemberRepo(1, 2, 3),
		cfg:         testLoanConfig(),
	}
	f.svc = NewLoanService(f.loanRepo, f.paymentRepo, f.memberRepo, f.cfg, testClock)
	return f
}

// makeEligible records three paid contributions inside the trailing window
func (f *loanFixture) makeEligible(memberID uint) {
	f.paymentRepo.addPaid(memberID,
		testTime.AddDate(0, 0, -10),
		testTime.AddDate(0, -1, 0),
		testTime.AddDate(0, -2, 0),
	)
}

// ============================================================
// Amortization
// ============================================================

func TestCalculateAmortizationSchedule(t *testing.T) {
	f := newLoanFixture(t)

	schedule, err := f.svc.CalculateAmortization(9000, 3)
	require.NoError(t, err)

	assert.Equal(t, int64(9000), schedule.Amount)
	assert.Equal(t, 3, schedule.DurationMonths)
	assert.Equal(t, "10%", schedule.MonthlyInterestRate)
	assert.Equal(t, int64(1800), schedule.TotalInterest)
	assert.Equal(t, int64(10800), schedule.TotalRepayment)
	assert.Equal(t, int64(3600), schedule.AverageMonthlyPayment)

	require.Len(t, schedule.MonthlyPayments, 3)

	expected := []ScheduleEntry{
		{Month: 1, Principal: 3000, Interest: 900, Total: 3900, Remaining: 6000},
		{Month: 2, Principal: 3000, Interest: 600, Total: 3600, Remaining: 3000},
		{Month: 3, Principal: 3000, Interest: 300, Total: 3300, Remaining: 0},
	}
	assert.Equal(t, expected, schedule.MonthlyPayments)
}

func TestCalculateAmortizationDefaultDuration(t *testing.T) {
	f := newLoanFixture(t)

	schedule, err := f.svc.CalculateAmortization(9000, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, schedule.DurationMonths)
	assert.Len(t, schedule.MonthlyPayments, 3)
}

func TestCalculateAmortizationRejectsBadAmounts(t *testing.T) {
	f := newLoanFixture(t)

	_, err := f.svc.CalculateAmortization(0, 3)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = f.svc.CalculateAmortization(-100, 3)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = f.svc.CalculateAmortization(50001, 3)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = f.svc.CalculateAmortization(50000, 3)
	assert.NoError(t, err)
}

func TestAmortizationRemainingDecreasesToZero(t *testing.T) {
	f := newLoanFixture(t)

	for _, tc := range []struct {
		amount float64
		months int
	}{
		{10000, 3},
		{4999, 6},
		{50000, 12},
		{333.33, 5},
	} {
		schedule, err := f.svc.CalculateAmortization(tc.amount, tc.months)
		require.NoError(t, err)
		require.Len(t, schedule.MonthlyPayments, tc.months)

		prev := schedule.Amount
		var principalSum int64
		for _, entry := range schedule.MonthlyPayments {
			assert.Less(t, entry.Remaining, prev, "remaining must decrease each month")
			assert.GreaterOrEqual(t, entry.Interest, int64(0))
			principalSum += entry.Principal
			prev = entry.Remaining
		}
		assert.Equal(t, int64(0), schedule.MonthlyPayments[tc.months-1].Remaining)

		// per-month rounding can drift by at most one unit per month
		assert.InDelta(t, tc.amount, float64(principalSum), float64(tc.months),
			"rounded principal portions must sum back to the loan amount")
	}
}

func TestAmortizationIsPure(t *testing.T) {
	f := newLoanFixture(t)

	_, err := f.svc.CalculateAmortization(9000, 3)
	require.NoError(t, err)

	assert.Empty(t, f.loanRepo.loans, "calculation must not create loans")
}

// ============================================================
// Eligibility
// ============================================================

func TestCheckEligibilityBoundary(t *testing.T) {
	f := newLoanFixture(t)

	// Two paid contributions in the window: not enough.
	f.paymentRepo.addPaid(1, testTime.AddDate(0, 0, -10), testTime.AddDate(0, -1, 0))

	result, err := f.svc.CheckEligibility(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, result.Eligible)
	assert.Equal(t, int64(2), result.PaymentsFound)
	assert.NotEmpty(t, result.Reason)

	// The third one tips it over.
	f.paymentRepo.addPaid(1, testTime.AddDate(0, -2, 0))

	result, err = f.svc.CheckEligibility(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, result.Eligible)
	assert.Equal(t, int64(3), result.PaymentsFound)
	assert.Empty(t, result.Reason)
}

func TestCheckEligibilityIgnoresPaymentsOutsideWindow(t *testing.T) {
	f := newLoanFixture(t)

	windowStart := time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC)

	f.paymentRepo.addPaid(1,
		windowStart,                   // exactly on the boundary counts
		windowStart.AddDate(0, 0, -1), // one day outside does not
		testTime.AddDate(0, 0, -5),
		testTime.AddDate(0, -1, 0),
	)

	result, err := f.svc.CheckEligibility(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, result.Eligible)
	assert.Equal(t, int64(3), result.PaymentsFound)
}

func TestCheckEligibilityCountsNotConsecutiveMonths(t *testing.T) {
	f := newLoanFixture(t)

	// Three payments inside the same week still qualify.
	f.paymentRepo.addPaid(1,
		testTime.AddDate(0, 0, -3),
		testTime.AddDate(0, 0, -4),
		testTime.AddDate(0, 0, -5),
	)

	result, err := f.svc.CheckEligibility(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, result.Eligible)
}

// ============================================================
// Apply
// ============================================================

func TestApplyValidatesAmountBeforeEligibility(t *testing.T) {
	f := newLoanFixture(t)

	// Member is not eligible, but the amount failure must win.
	_, err := f.svc.Apply(context.Background(), &ApplyInput{MemberID: 1, Amount: 60000}, 10)
	assert.ErrorIs(t, err, ErrAmountExceedsLimit)

	_, err = f.svc.Apply(context.Background(), &ApplyInput{MemberID: 1, Amount: 0}, 10)
	assert.ErrorIs(t, err, ErrAmountExceedsLimit)

	_, err = f.svc.Apply(context.Background(), &ApplyInput{MemberID: 1, Amount: -500}, 10)
	assert.ErrorIs(t, err, ErrAmountExceedsLimit)

	assert.Empty(t, f.loanRepo.loans)
}

func TestApplyRejectsIneligibleMember(t *testing.T) {
	f := newLoanFixture(t)

	f.paymentRepo.addPaid(1, testTime.AddDate(0, 0, -10), testTime.AddDate(0, -1, 0))

	_, err := f.svc.Apply(context.Background(), &ApplyInput{MemberID: 1, Amount: 9000}, 10)
	assert.ErrorIs(t, err, ErrNotEligible)
	assert.Empty(t, f.loanRepo.loans)
}

func TestApplyCreatesPendingLoan(t *testing.T) {
	f := newLoanFixture(t)
	f.makeEligible(1)

	loan, err := f.svc.Apply(context.Background(), &ApplyInput{
		MemberID: 1,
		Amount:   9000,
		Notes:    "school fees",
	}, 10)
	require.NoError(t, err)

	today := time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, string(domain.LoanStatusPending), loan.Status)
	assert.Equal(t, uint(1), loan.MemberID)
	assert.Equal(t, uint(10), loan.UserID)
	assert.Equal(t, 9000.0, loan.Amount)
	assert.Equal(t, 10.0, loan.InterestRate)
	assert.Equal(t, 3, loan.DurationMonths)
	assert.Equal(t, today, loan.ApplicationDate)
	assert.Equal(t, today.AddDate(0, 3, 0), loan.DueDate)
	assert.Nil(t, loan.ApprovalDate)
	assert.Nil(t, loan.DisbursementDate)
	assert.Equal(t, "school fees", loan.Notes)

	// remaining_amount agrees with the amortization engine, not a flat factor
	assert.InDelta(t, 10800.0, loan.RemainingAmount, 0.01)
	assert.NotZero(t, loan.ID)
}

func TestApplyRemainingMatchesSchedule(t *testing.T) {
	f := newLoanFixture(t)
	f.makeEligible(1)

	for _, amount := range []float64{1000, 7777, 45000.50} {
		loan, err := f.svc.Apply(context.Background(), &ApplyInput{MemberID: 1, Amount: amount}, 10)
		require.NoError(t, err)

		schedule, err := f.svc.CalculateAmortization(amount, loan.DurationMonths)
		require.NoError(t, err)

		assert.InDelta(t, float64(schedule.TotalRepayment), loan.RemainingAmount, 1.0,
			"loan remaining must track the schedule total")
	}
}

func TestApplyConcurrentPendingLoansAllowed(t *testing.T) {
	f := newLoanFixture(t)
	f.makeEligible(1)

	first, err := f.svc.Apply(context.Background(), &ApplyInput{MemberID: 1, Amount: 5000}, 10)
	require.NoError(t, err)
	second, err := f.svc.Apply(context.Background(), &ApplyInput{MemberID: 1, Amount: 5000}, 10)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, f.loanRepo.loans, 2)
}

func TestApplyLenientGuarantorByDefault(t *testing.T) {
	f := newLoanFixture(t)
	f.makeEligible(1)

	ghost := uint(999)
	_, err := f.svc.Apply(context.Background(), &ApplyInput{MemberID: 1, Amount: 5000, GuarantorID: &ghost}, 10)
	assert.NoError(t, err, "lenient mode skips guarantor existence checks")
}

func TestApplyStrictGuarantorChecks(t *testing.T) {
	f := newLoanFixture(t)
	f.cfg.Loan.StrictGuarantorCheck = true
	f.makeEligible(1)
	f.makeEligible(999)

	ghost := uint(999)
	_, err := f.svc.Apply(context.Background(), &ApplyInput{MemberID: 1, Amount: 5000, GuarantorID: &ghost}, 10)
	assert.ErrorIs(t, err, ErrGuarantorNotFound)

	self := uint(1)
	_, err = f.svc.Apply(context.Background(), &ApplyInput{MemberID: 1, Amount: 5000, GuarantorID: &self}, 10)
	assert.ErrorIs(t, err, ErrGuarantorIsApplicant)

	_, err = f.svc.Apply(context.Background(), &ApplyInput{MemberID: 999, Amount: 5000}, 10)
	assert.ErrorIs(t, err, ErrApplicantNotFound)

	other := uint(2)
	_, err = f.svc.Apply(context.Background(), &ApplyInput{MemberID: 1, Amount: 5000, GuarantorID: &other}, 10)
	assert.NoError(t, err)
}

// ============================================================
// Status lifecycle
// ============================================================

func (f *loanFixture) seedLoan(t *testing.T, status domain.LoanStatus) *models.Loan {
	t.Helper()
	loan := &models.Loan{
		MemberID:        1,
		UserID:          10,
		Amount:          9000,
		InterestRate:    10,
		DurationMonths:  3,
		Status:          string(status),
		ApplicationDate: testTime.AddDate(0, -1, 0),
		DueDate:         testTime.AddDate(0, 2, 0),
		RemainingAmount: 10800,
	}
	require.NoError(t, f.loanRepo.Create(context.Background(), loan))
	return loan
}

func TestUpdateStatusRequiresAdmin(t *testing.T) {
	f := newLoanFixture(t)
	loan := f.seedLoan(t, domain.LoanStatusPending)

	_, err := f.svc.UpdateStatus(context.Background(), loan.ID, "approved", domain.RoleMember)
	assert.ErrorIs(t, err, ErrAdminRequired)
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	f := newLoanFixture(t)
	loan := f.seedLoan(t, domain.LoanStatusPending)

	_, err := f.svc.UpdateStatus(context.Background(), loan.ID, "overdue", domain.RoleAdmin)
	assert.ErrorIs(t, err, ErrUnknownLoanStatus, "overdue is display-only and never stored")

	_, err = f.svc.UpdateStatus(context.Background(), loan.ID, "bogus", domain.RoleAdmin)
	assert.ErrorIs(t, err, ErrUnknownLoanStatus)
}

func TestUpdateStatusLoanNotFound(t *testing.T) {
	f := newLoanFixture(t)

	_, err := f.svc.UpdateStatus(context.Background(), 42, "approved", domain.RoleAdmin)
	assert.ErrorIs(t, err, ErrLoanNotFound)
}

func TestUpdateStatusTransitionTable(t *testing.T) {
	cases := []struct {
		from    domain.LoanStatus
		to      string
		allowed bool
	}{
		{domain.LoanStatusPending, "approved", true},
		{domain.LoanStatusPending, "rejected", true},
		{domain.LoanStatusPending, "active", false},
		{domain.LoanStatusPending, "completed", false},
		{domain.LoanStatusApproved, "active", true},
		{domain.LoanStatusApproved, "rejected", false},
		{domain.LoanStatusApproved, "completed", false},
		{domain.LoanStatusActive, "completed", true},
		{domain.LoanStatusActive, "defaulted", true},
		{domain.LoanStatusActive, "pending", false},
		{domain.LoanStatusRejected, "approved", false},
		{domain.LoanStatusCompleted, "active", false},
		{domain.LoanStatusDefaulted, "active", false},
		// same-status updates are idempotent no-ops
		{domain.LoanStatusPending, "pending", true},
		{domain.LoanStatusActive, "active", true},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"_to_"+tc.to, func(t *testing.T) {
			f := newLoanFixture(t)
			loan := f.seedLoan(t, tc.from)

			updated, err := f.svc.UpdateStatus(context.Background(), loan.ID, tc.to, domain.RoleAdmin)
			if tc.allowed {
				require.NoError(t, err)
				assert.Equal(t, tc.to, updated.Status)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			}
		})
	}
}

func TestUpdateStatusApprovalDateIdempotent(t *testing.T) {
	f := newLoanFixture(t)
	loan := f.seedLoan(t, domain.LoanStatusPending)

	approved, err := f.svc.UpdateStatus(context.Background(), loan.ID, "approved", domain.RoleAdmin)
	require.NoError(t, err)
	require.NotNil(t, approved.ApprovalDate)
	firstApproval := *approved.ApprovalDate

	// Re-approving must not move the approval date.
	again, err := f.svc.UpdateStatus(context.Background(), loan.ID, "approved", domain.RoleAdmin)
	require.NoError(t, err)
	require.NotNil(t, again.ApprovalDate)
	assert.Equal(t, firstApproval, *again.ApprovalDate)
}

func TestUpdateStatusDatesStickThroughLifecycle(t *testing.T) {
	f := newLoanFixture(t)
	loan := f.seedLoan(t, domain.LoanStatusPending)

	_, err := f.svc.UpdateStatus(context.Background(), loan.ID, "approved", domain.RoleAdmin)
	require.NoError(t, err)

	active, err := f.svc.UpdateStatus(context.Background(), loan.ID, "active", domain.RoleAdmin)
	require.NoError(t, err)
	require.NotNil(t, active.ApprovalDate)
	require.NotNil(t, active.DisbursementDate)

	done, err := f.svc.UpdateStatus(context.Background(), loan.ID, "completed", domain.RoleAdmin)
	require.NoError(t, err)
	assert.NotNil(t, done.ApprovalDate, "approval date must survive completion")
	assert.NotNil(t, done.DisbursementDate, "disbursement date must survive completion")
}

// ============================================================
// Display status
// ============================================================

func TestListDerivesOverdueDisplayStatus(t *testing.T) {
	f := newLoanFixture(t)

	pastDue := f.seedLoan(t, domain.LoanStatusActive)
	pastDue.DueDate = testTime.AddDate(0, 0, -5)
	require.NoError(t, f.loanRepo.Update(context.Background(), pastDue))

	pendingPastDue := f.seedLoan(t, domain.LoanStatusPending)
	pendingPastDue.DueDate = testTime.AddDate(0, 0, -5)
	require.NoError(t, f.loanRepo.Update(context.Background(), pendingPastDue))

	out, err := f.svc.List(context.Background(), &ListInput{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, out.Loans, 2)

	byID := map[uint]*models.LoanResponse{}
	for _, l := range out.Loans {
		byID[l.ID] = l
	}

	assert.Equal(t, domain.LoanStatusOverdue, byID[pastDue.ID].DisplayStatus)
	assert.Equal(t, string(domain.LoanStatusActive), byID[pastDue.ID].Status,
		"stored status stays active; overdue is display-only")
	assert.Equal(t, -5, byID[pastDue.ID].DaysRemaining)

	assert.Equal(t, string(domain.LoanStatusPending), byID[pendingPastDue.ID].DisplayStatus,
		"only active loans show as overdue")
}

func TestGetByIDNotFound(t *testing.T) {
	f := newLoanFixture(t)

	_, err := f.svc.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrLoanNotFound)
}
