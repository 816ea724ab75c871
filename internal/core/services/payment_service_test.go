package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"chamalink/internal/adapters/persistence/models"
	"chamalink/internal/config"
	"chamalink/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memPaymentRepo is a stateful payment store for the write-path tests. The
// read-only aggregate methods come from the embedded fake.
type memPaymentRepo struct {
	*fakePaymentRepo
	payments map[uint]*models.Payment
	nextID   uint
}

func newMemPaymentRepo() *memPaymentRepo {
	return &memPaymentRepo{
		fakePaymentRepo: newFakePaymentRepo(),
		payments:        make(map[uint]*models.Payment),
	}
}

func (r *memPaymentRepo) Create(_ context.Context, p *models.Payment) error {
	r.nextID++
	p.ID = r.nextID
	stored := *p
	r.payments[p.ID] = &stored
	return nil
}

func (r *memPaymentRepo) GetByID(_ context.Context, id uint) (*models.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	stored := *p
	return &stored, nil
}

func (r *memPaymentRepo) Update(_ context.Context, p *models.Payment) error {
	stored := *p
	r.payments[p.ID] = &stored
	return nil
}

func testPaymentConfig() *config.Config {
	return &config.Config{
		Loan: testLoanConfig().Loan,
		Contribution: config.ContributionConfig{
			MonthlyAmount: 600,
			DeadlineDay:   10,
		},
	}
}

type paymentFixture struct {
	svc         *PaymentService
	paymentRepo *memPaymentRepo
	memberRepo  *fakeMemberRepo
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()
	f := &paymentFixture{
		paymentRepo: newMemPaymentRepo(),
		memberRepo:  newFakeMemberRepo(1, 2),
	}
	f.svc = NewPaymentService(f.paymentRepo, f.memberRepo, testPaymentConfig(), testClock)
	return f
}

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"0712345678":   "254712345678",
		"0112345678":   "254112345678",
		"254712345678": "254712345678",
		"712345678":    "254712345678",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizePhone(in))
	}
}

func TestInitiateValidatesInput(t *testing.T) {
	f := newPaymentFixture(t)

	_, err := f.svc.Initiate(context.Background(), &InitiateInput{Amount: 600, MemberID: 1}, 10)
	assert.ErrorIs(t, err, ErrPaymentFieldMissing)

	_, err = f.svc.Initiate(context.Background(), &InitiateInput{Phone: "0712345678", MemberID: 1}, 10)
	assert.ErrorIs(t, err, ErrPaymentFieldMissing)

	_, err = f.svc.Initiate(context.Background(), &InitiateInput{Phone: "0712345678", Amount: 600}, 10)
	assert.ErrorIs(t, err, ErrPaymentFieldMissing)
}

func TestInitiateUnknownMember(t *testing.T) {
	f := newPaymentFixture(t)

	_, err := f.svc.Initiate(context.Background(), &InitiateInput{
		Phone:    "0712345678",
		Amount:   600,
		MemberID: 99,
	}, 10)
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestInitiateRecordsPendingContribution(t *testing.T) {
	f := newPaymentFixture(t)

	out, err := f.svc.Initiate(context.Background(), &InitiateInput{
		Phone:    "0712345678",
		Amount:   600,
		MemberID: 1,
	}, 10)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out.ReceiptNo, "MPS"))
	assert.Len(t, out.ReceiptNo, 11)
	require.NotNil(t, out.MpesaResponse)
	assert.Equal(t, "0", out.MpesaResponse.ResponseCode)

	payment, err := f.paymentRepo.GetByID(context.Background(), out.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPending, payment.Status)
	assert.Equal(t, "May", payment.Month)
	assert.Equal(t, "2024", payment.Year)
	assert.Equal(t, 600.0, payment.Amount)
	assert.Equal(t, "mpesa", payment.PaymentMethod)
	assert.False(t, payment.Verified)
	assert.Equal(t, out.ReceiptNo, payment.ReceiptNo)

	// Due on the deadline day of the following month.
	require.NotNil(t, payment.DueDate)
	assert.Equal(t, time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC), *payment.DueDate)
}

func TestInitiateRollsMemberDeadlineForward(t *testing.T) {
	f := newPaymentFixture(t)

	_, err := f.svc.Initiate(context.Background(), &InitiateInput{
		Phone:    "0712345678",
		Amount:   600,
		MemberID: 1,
	}, 10)
	require.NoError(t, err)

	member, err := f.memberRepo.GetByID(context.Background(), 1)
	require.NoError(t, err)

	today := time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC)
	require.NotNil(t, member.LastPaymentDate)
	require.NotNil(t, member.NextPaymentDeadline)
	assert.Equal(t, today, *member.LastPaymentDate)
	assert.Equal(t, today.AddDate(0, 1, 0), *member.NextPaymentDeadline)
}

func TestVerifyMarksPaymentPaid(t *testing.T) {
	f := newPaymentFixture(t)

	out, err := f.svc.Initiate(context.Background(), &InitiateInput{
		Phone:    "0712345678",
		Amount:   600,
		MemberID: 1,
	}, 10)
	require.NoError(t, err)

	payment, err := f.svc.Verify(context.Background(), out.PaymentID, out.ReceiptNo)
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentStatusPaid, payment.Status)
	assert.True(t, payment.Verified)
	require.NotNil(t, payment.VerifiedAt)
	assert.Equal(t, testTime, *payment.VerifiedAt)
}

func TestVerifyReceiptMismatch(t *testing.T) {
	f := newPaymentFixture(t)

	out, err := f.svc.Initiate(context.Background(), &InitiateInput{
		Phone:    "0712345678",
		Amount:   600,
		MemberID: 1,
	}, 10)
	require.NoError(t, err)

	_, err = f.svc.Verify(context.Background(), out.PaymentID, "MPSWRONG01")
	assert.ErrorIs(t, err, ErrReceiptMismatch)

	// The payment must stay pending after a failed verification.
	stored, err := f.paymentRepo.GetByID(context.Background(), out.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPending, stored.Status)
	assert.False(t, stored.Verified)
}

func TestVerifyUnknownPayment(t *testing.T) {
	f := newPaymentFixture(t)

	_, err := f.svc.Verify(context.Background(), 42, "MPSABCDEF01")
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}
