package models

import (
	"time"

	"chamalink/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Auth Tables
// ============================================================

// User represents the users table
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	MemberID  *uint          `gorm:"uniqueIndex" json:"member_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Phone     string         `gorm:"uniqueIndex;size:20;not null" json:"phone"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:20;default:'member'" json:"role"`
	Status    string         `gorm:"size:20;default:'active'" json:"status"`
	LastLogin *time.Time     `json:"last_login"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	MemberID  *uint     `json:"member_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		MemberID:  u.MemberID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken represents the refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// PasswordReset represents the password_resets table. Only the SHA-256 hash
// of the reset token is stored; the raw token lives in the emailed link.
type PasswordReset struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Email     string     `gorm:"size:255;not null;index" json:"email"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	UsedAt    *time.Time `json:"used_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (PasswordReset) TableName() string {
	return "password_resets"
}

func (pr *PasswordReset) IsUsed() bool {
	return pr.UsedAt != nil
}

func (pr *PasswordReset) IsExpired() bool {
	return time.Now().After(pr.ExpiresAt)
}

// ============================================================
// Membership Tables
// ============================================================

// Member represents the members table
type Member struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	Name                string     `gorm:"size:255;not null" json:"name"`
	Phone               string     `gorm:"size:20;not null;uniqueIndex" json:"phone"`
	Email               string     `gorm:"size:255" json:"email"`
	Status              string     `gorm:"size:50;default:'pending'" json:"status"`
	JoinedDate          string     `gorm:"size:50" json:"joined_date"`
	Image               string     `gorm:"size:255;default:'images/default.jpg'" json:"image"`
	LastPaymentDate     *time.Time `gorm:"type:date" json:"last_payment_date"`
	NextPaymentDeadline *time.Time `gorm:"type:date" json:"next_payment_deadline"`
	CreatedAt           time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Member) TableName() string {
	return "members"
}

// MemberResponse DTO with contribution aggregates
type MemberResponse struct {
	ID                  uint       `json:"id"`
	Name                string     `json:"name"`
	Phone               string     `json:"phone"`
	Email               string     `json:"email"`
	Status              string     `json:"status"`
	JoinedDate          string     `json:"joined_date"`
	Image               string     `json:"image"`
	LastPaymentDate     *time.Time `json:"last_payment_date"`
	NextPaymentDeadline *time.Time `json:"next_payment_deadline"`
	PaymentsCount       int64      `json:"payments_count"`
	TotalPaid           float64    `json:"total_paid"`
	TotalPenalties      float64    `json:"total_penalties,omitempty"`
	CurrentMonthStatus  string     `json:"current_month_status,omitempty"`
}

func (m *Member) ToResponse() *MemberResponse {
	return &MemberResponse{
		ID:                  m.ID,
		Name:                m.Name,
		Phone:               m.Phone,
		Email:               m.Email,
		Status:              m.Status,
		JoinedDate:          m.JoinedDate,
		Image:               m.Image,
		LastPaymentDate:     m.LastPaymentDate,
		NextPaymentDeadline: m.NextPaymentDeadline,
	}
}

// ============================================================
// Contribution Tables
// ============================================================

// Payment represents the payments table (monthly contributions)
type Payment struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	MemberID      uint       `gorm:"not null;index" json:"member_id"`
	UserID        *uint      `json:"user_id"`
	Amount        float64    `gorm:"type:decimal(10,2)" json:"amount"`
	Month         string     `gorm:"size:50" json:"month"`
	Year          string     `gorm:"size:10" json:"year"`
	DatePaid      *time.Time `json:"date_paid"`
	DueDate       *time.Time `gorm:"type:date" json:"due_date"`
	Status        string     `gorm:"size:50;default:'pending';index" json:"status"`
	ReceiptNo     string     `gorm:"size:100" json:"receipt_no"`
	MpesaCode     string     `gorm:"size:100" json:"mpesa_code"`
	PaymentMethod string     `gorm:"size:50" json:"payment_method"`
	PenaltyAmount float64    `gorm:"type:decimal(10,2);default:0" json:"penalty_amount"`
	Verified      bool       `gorm:"default:false" json:"verified"`
	VerifiedAt    *time.Time `json:"verified_at"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

func (Payment) TableName() string {
	return "payments"
}

// PaymentResponse DTO
type PaymentResponse struct {
	ID            uint       `json:"id"`
	MemberID      uint       `json:"member_id"`
	MemberName    string     `json:"member_name,omitempty"`
	MemberPhone   string     `json:"member_phone,omitempty"`
	Amount        float64    `json:"amount"`
	Month         string     `json:"month"`
	Year          string     `json:"year"`
	DatePaid      *time.Time `json:"date_paid"`
	DueDate       *time.Time `json:"due_date"`
	Status        string     `json:"status"`
	ReceiptNo     string     `json:"receipt_no"`
	MpesaCode     string     `json:"mpesa_code,omitempty"`
	PaymentMethod string     `json:"payment_method,omitempty"`
	PenaltyAmount float64    `json:"penalty_amount"`
	Verified      bool       `json:"verified"`
}

func (p *Payment) ToResponse() *PaymentResponse {
	resp := &PaymentResponse{
		ID:            p.ID,
		MemberID:      p.MemberID,
		Amount:        p.Amount,
		Month:         p.Month,
		Year:          p.Year,
		DatePaid:      p.DatePaid,
		DueDate:       p.DueDate,
		Status:        p.Status,
		ReceiptNo:     p.ReceiptNo,
		MpesaCode:     p.MpesaCode,
		PaymentMethod: p.PaymentMethod,
		PenaltyAmount: p.PenaltyAmount,
		Verified:      p.Verified,
	}

	if p.Member != nil {
		resp.MemberName = p.Member.Name
		resp.MemberPhone = p.Member.Phone
	}

	return resp
}

// ============================================================
// Loan Tables
// ============================================================

// Loan represents the loans table. Loan rows are never deleted (audit trail).
type Loan struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	MemberID         uint       `gorm:"not null;index" json:"member_id"`
	UserID           uint       `gorm:"not null" json:"user_id"`
	Amount           float64    `gorm:"type:decimal(15,2);not null" json:"amount"`
	InterestRate     float64    `gorm:"type:decimal(5,2);not null" json:"interest_rate"`
	DurationMonths   int        `gorm:"not null;default:3" json:"duration_months"`
	Status           string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ApplicationDate  time.Time  `gorm:"type:date;not null" json:"application_date"`
	ApprovalDate     *time.Time `json:"approval_date"`
	DisbursementDate *time.Time `json:"disbursement_date"`
	DueDate          time.Time  `gorm:"type:date;not null" json:"due_date"`
	AmountPaid       float64    `gorm:"type:decimal(15,2);default:0" json:"amount_paid"`
	RemainingAmount  float64    `gorm:"type:decimal(15,2)" json:"remaining_amount"`
	PenaltyApplied   float64    `gorm:"type:decimal(15,2);default:0" json:"penalty_applied"`
	GuarantorID      *uint      `json:"guarantor_id"`
	Notes            string     `gorm:"type:text" json:"notes"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Member    *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	Guarantor *Member `gorm:"foreignKey:GuarantorID" json:"guarantor,omitempty"`
}

func (Loan) TableName() string {
	return "loans"
}

// LoanResponse DTO with the derived read-path fields
type LoanResponse struct {
	ID               uint       `json:"id"`
	MemberID         uint       `json:"member_id"`
	MemberName       string     `json:"member_name,omitempty"`
	MemberPhone      string     `json:"member_phone,omitempty"`
	GuarantorID      *uint      `json:"guarantor_id"`
	GuarantorName    string     `json:"guarantor_name,omitempty"`
	Amount           float64    `json:"amount"`
	InterestRate     float64    `json:"interest_rate"`
	DurationMonths   int        `json:"duration_months"`
	Status           string     `json:"status"`
	DisplayStatus    string     `json:"display_status"`
	DaysRemaining    int        `json:"days_remaining"`
	ApplicationDate  time.Time  `json:"application_date"`
	ApprovalDate     *time.Time `json:"approval_date"`
	DisbursementDate *time.Time `json:"disbursement_date"`
	DueDate          time.Time  `json:"due_date"`
	AmountPaid       float64    `json:"amount_paid"`
	RemainingAmount  float64    `json:"remaining_amount"`
	PenaltyApplied   float64    `json:"penalty_applied"`
	Notes            string     `json:"notes,omitempty"`
}

// ToResponse builds the DTO relative to "now". An active loan past its due
// date is displayed as overdue; the stored status is left untouched.
func (l *Loan) ToResponse(now time.Time) *LoanResponse {
	resp := &LoanResponse{
		ID:               l.ID,
		MemberID:         l.MemberID,
		GuarantorID:      l.GuarantorID,
		Amount:           l.Amount,
		InterestRate:     l.InterestRate,
		DurationMonths:   l.DurationMonths,
		Status:           l.Status,
		DisplayStatus:    l.Status,
		DaysRemaining:    daysBetween(now, l.DueDate),
		ApplicationDate:  l.ApplicationDate,
		ApprovalDate:     l.ApprovalDate,
		DisbursementDate: l.DisbursementDate,
		DueDate:          l.DueDate,
		AmountPaid:       l.AmountPaid,
		RemainingAmount:  l.RemainingAmount,
		PenaltyApplied:   l.PenaltyApplied,
		Notes:            l.Notes,
	}

	if l.Status == string(domain.LoanStatusActive) && l.DueDate.Before(truncateToDay(now)) {
		resp.DisplayStatus = domain.LoanStatusOverdue
	}

	if l.Member != nil {
		resp.MemberName = l.Member.Name
		resp.MemberPhone = l.Member.Phone
	}
	if l.Guarantor != nil {
		resp.GuarantorName = l.Guarantor.Name
	}

	return resp
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween returns whole calendar days from now until due (negative when
// past due).
func daysBetween(now, due time.Time) int {
	return int(truncateToDay(due).Sub(truncateToDay(now)).Hours() / 24)
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&PasswordReset{},
		&Member{},
		&Payment{},
		&Loan{},
	)
}
