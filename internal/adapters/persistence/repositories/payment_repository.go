package repositories

import (
	"context"
	"time"

	"chamalink/internal/adapters/persistence/models"
	"chamalink/internal/core/domain"

	"gorm.io/gorm"
)

// paymentRepository implements PaymentRepository interface
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// Create creates a new payment
func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// GetByID gets a payment by ID
func (r *paymentRepository) GetByID(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).Preload("Member").First(&payment, id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// Update updates a payment
func (r *paymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

// List lists payments matching the filter
func (r *paymentRepository) List(ctx context.Context, filter PaymentFilter, offset, limit int) ([]*models.Payment, int64, error) {
	var payments []*models.Payment
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Payment{})
	if filter.Month != "" {
		query = query.Where("month = ?", filter.Month)
	}
	if filter.Year != "" {
		query = query.Where("year = ?", filter.Year)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.MemberID != nil {
		query = query.Where("member_id = ?", *filter.MemberID)
	}

	query.Count(&total)

	err := query.
		Preload("Member").
		Order("date_paid DESC").
		Offset(offset).
		Limit(limit).
		Find(&payments).Error

	return payments, total, err
}

// ListRecent lists the most recent payments
func (r *paymentRepository) ListRecent(ctx context.Context, limit int) ([]*models.Payment, error) {
	var payments []*models.Payment
	err := r.db.WithContext(ctx).
		Preload("Member").
		Order("date_paid DESC").
		Limit(limit).
		Find(&payments).Error
	return payments, err
}

// CountPaidSince counts a member's paid payments dated on or after "since".
// This is the loan eligibility query.
func (r *paymentRepository) CountPaidSince(ctx context.Context, memberID uint, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("member_id = ?", memberID).
		Where("status = ?", domain.PaymentStatusPaid).
		Where("date_paid >= ?", since).
		Count(&count).Error
	return count, err
}

// AggregateByMember returns paid-payment count, total paid and total penalties
// for a member
func (r *paymentRepository) AggregateByMember(ctx context.Context, memberID uint) (int64, float64, float64, error) {
	var result struct {
		Count          int64
		TotalPaid      float64
		TotalPenalties float64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Select(
			"COUNT(CASE WHEN status = ? THEN 1 END) as count,"+
				" COALESCE(SUM(CASE WHEN status = ? THEN amount END), 0) as total_paid,"+
				" COALESCE(SUM(penalty_amount), 0) as total_penalties",
			domain.PaymentStatusPaid, domain.PaymentStatusPaid,
		).
		Where("member_id = ?", memberID).
		Scan(&result).Error
	return result.Count, result.TotalPaid, result.TotalPenalties, err
}

// MonthStatus returns the status of a member's latest payment for a month/year
// label, or empty when none exists
func (r *paymentRepository) MonthStatus(ctx context.Context, memberID uint, month, year string) (string, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).
		Where("member_id = ? AND month = ? AND year = ?", memberID, month, year).
		Order("id DESC").
		First(&payment).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil
		}
		return "", err
	}
	return payment.Status, nil
}

// MonthlyStats aggregates payment counts and the collected amount for one
// month/year label
func (r *paymentRepository) MonthlyStats(ctx context.Context, month, year string) (*MonthlyPaymentStats, error) {
	var stats MonthlyPaymentStats
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Select(
			"COUNT(DISTINCT CASE WHEN status = ? THEN member_id END) as paid_members,"+
				" COUNT(DISTINCT CASE WHEN status = ? THEN member_id END) as pending_members,"+
				" COUNT(DISTINCT CASE WHEN status = ? THEN member_id END) as overdue_members,"+
				" COALESCE(SUM(CASE WHEN status = ? THEN amount END), 0) as total_collected,"+
				" COALESCE(SUM(CASE WHEN status = ? THEN penalty_amount END), 0) as total_penalties",
			domain.PaymentStatusPaid, domain.PaymentStatusPending,
			domain.PaymentStatusOverdue, domain.PaymentStatusPaid,
			domain.PaymentStatusPaid,
		).
		Where("month = ? AND year = ?", month, year).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// YearlyStats aggregates a whole contribution year
func (r *paymentRepository) YearlyStats(ctx context.Context, year string) (*YearlyPaymentStats, error) {
	var stats YearlyPaymentStats
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Select(
			"COALESCE(SUM(amount), 0) as yearly_total,"+
				" COALESCE(AVG(CASE WHEN status = ? THEN 1 ELSE 0 END) * 100, 0) as collection_rate,"+
				" COALESCE(SUM(penalty_amount), 0) as total_penalties",
			domain.PaymentStatusPaid,
		).
		Where("year = ?", year).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// MarkOverdueBefore flips pending payments with a due date before the cutoff
// to overdue, returning the number of rows changed
func (r *paymentRepository) MarkOverdueBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("status = ?", domain.PaymentStatusPending).
		Where("due_date IS NOT NULL AND due_date < ?", cutoff).
		Update("status", domain.PaymentStatusOverdue)
	return result.RowsAffected, result.Error
}
