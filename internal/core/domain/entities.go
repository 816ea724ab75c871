package domain

import "time"

// Role represents user role in the system
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// User represents a user in the domain layer
type User struct {
	ID        uint
	MemberID  *uint
	Name      string
	Email     string
	Phone     string
	Password  string // Hashed
	Role      Role
	Status    string
	LastLogin *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Member represents a savings-group member
type Member struct {
	ID                  uint
	Name                string
	Phone               string
	Email               string
	Status              string
	JoinedDate          string
	LastPaymentDate     *time.Time
	NextPaymentDeadline *time.Time
}

// Member statuses
const (
	MemberStatusActive   = "active"
	MemberStatusInactive = "inactive"
	MemberStatusPending  = "pending"
)

// Payment statuses
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusOverdue = "overdue"
	PaymentStatusFailed  = "failed"
)

// RefreshToken represents a refresh token in the domain
type RefreshToken struct {
	ID        uint
	UserID    uint
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
