package repositories

import (
	"context"
	"time"

	"chamalink/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// PasswordResetRepository defines password reset token repository interface
type PasswordResetRepository interface {
	Create(ctx context.Context, reset *models.PasswordReset) error
	GetActiveByTokenHash(ctx context.Context, tokenHash string) (*models.PasswordReset, error)
	MarkUsed(ctx context.Context, id uint) error
}

// MemberRepository defines member repository interface
type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	GetByID(ctx context.Context, id uint) (*models.Member, error)
	Update(ctx context.Context, member *models.Member) error
	List(ctx context.Context, offset, limit int) ([]*models.Member, int64, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountUpcomingDeadlines(ctx context.Context, limit int) ([]*models.Member, error)
}

// PaymentFilter narrows payment listings
type PaymentFilter struct {
	Month    string
	Year     string
	Status   string
	MemberID *uint
}

// PaymentRepository defines payment repository interface (the member ledger).
// The loan engine only reads from it.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id uint) (*models.Payment, error)
	Update(ctx context.Context, payment *models.Payment) error
	List(ctx context.Context, filter PaymentFilter, offset, limit int) ([]*models.Payment, int64, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Payment, error)
	CountPaidSince(ctx context.Context, memberID uint, since time.Time) (int64, error)
	AggregateByMember(ctx context.Context, memberID uint) (count int64, totalPaid, totalPenalties float64, err error)
	MonthStatus(ctx context.Context, memberID uint, month, year string) (string, error)
	MarkOverdueBefore(ctx context.Context, cutoff time.Time) (int64, error)
	MonthlyStats(ctx context.Context, month, year string) (*MonthlyPaymentStats, error)
	YearlyStats(ctx context.Context, year string) (*YearlyPaymentStats, error)
}

// MonthlyPaymentStats aggregates one month's contribution activity
type MonthlyPaymentStats struct {
	PaidMembers    int64
	PendingMembers int64
	OverdueMembers int64
	TotalCollected float64
	TotalPenalties float64
}

// YearlyPaymentStats aggregates a contribution year
type YearlyPaymentStats struct {
	YearlyTotal    float64
	CollectionRate float64
	TotalPenalties float64
}

// ActiveLoanStats aggregates the currently active loan book
type ActiveLoanStats struct {
	Count       int64
	TotalAmount float64
	Outstanding float64
}

// LoanRepository defines loan repository interface. Loans are inserted and
// updated but never deleted.
type LoanRepository interface {
	Create(ctx context.Context, loan *models.Loan) error
	GetByID(ctx context.Context, id uint) (*models.Loan, error)
	Update(ctx context.Context, loan *models.Loan) error
	List(ctx context.Context, offset, limit int) ([]*models.Loan, int64, error)
	ListByMember(ctx context.Context, memberID uint) ([]*models.Loan, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Loan, error)
	CountActivePastDue(ctx context.Context, cutoff time.Time) (int64, error)
	ActiveStats(ctx context.Context) (*ActiveLoanStats, error)
}
