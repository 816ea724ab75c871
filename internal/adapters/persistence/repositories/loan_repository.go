package repositories

import (
	"context"
	"time"

	"chamalink/internal/adapters/persistence/models"
	"chamalink/internal/core/domain"

	"gorm.io/gorm"
)

// loanRepository implements LoanRepository interface
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

// Create creates a new loan
func (r *loanRepository) Create(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Create(loan).Error
}

// GetByID gets a loan by ID with member and guarantor
func (r *loanRepository) GetByID(ctx context.Context, id uint) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).
		Preload("Member").
		Preload("Guarantor").
		First(&loan, id).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// Update updates a loan
func (r *loanRepository) Update(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Save(loan).Error
}

// List lists all loans with pagination, newest applications first
func (r *loanRepository) List(ctx context.Context, offset, limit int) ([]*models.Loan, int64, error) {
	var loans []*models.Loan
	var total int64

	r.db.WithContext(ctx).Model(&models.Loan{}).Count(&total)

	err := r.db.WithContext(ctx).
		Preload("Member").
		Preload("Guarantor").
		Order("application_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&loans).Error

	return loans, total, err
}

// ListByMember lists a member's loans
func (r *loanRepository) ListByMember(ctx context.Context, memberID uint) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Preload("Guarantor").
		Where("member_id = ?", memberID).
		Order("application_date DESC").
		Find(&loans).Error
	return loans, err
}

// ListRecent lists the most recent loan applications
func (r *loanRepository) ListRecent(ctx context.Context, limit int) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Preload("Member").
		Order("application_date DESC").
		Limit(limit).
		Find(&loans).Error
	return loans, err
}

// CountActivePastDue counts active loans whose due date is before the cutoff
func (r *loanRepository) CountActivePastDue(ctx context.Context, cutoff time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Where("status = ?", string(domain.LoanStatusActive)).
		Where("due_date < ?", cutoff).
		Count(&count).Error
	return count, err
}

// ActiveStats aggregates the open loan book (approved and active loans)
func (r *loanRepository) ActiveStats(ctx context.Context) (*ActiveLoanStats, error) {
	stats := &ActiveLoanStats{}
	err := r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Where("status IN ?", []string{string(domain.LoanStatusApproved), string(domain.LoanStatusActive)}).
		Select("COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total_amount, COALESCE(SUM(remaining_amount), 0) AS outstanding").
		Scan(stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
