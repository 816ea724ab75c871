package services

import (
	"context"
	"fmt"
	"time"

	"chamalink/internal/adapters/persistence/models"
	"chamalink/internal/adapters/persistence/repositories"
	"chamalink/internal/config"
)

// DashboardService aggregates group-wide figures for the admin dashboard
type DashboardService struct {
	memberRepo  repositories.MemberRepository
	paymentRepo repositories.PaymentRepository
	loanRepo    repositories.LoanRepository
	userRepo    repositories.UserRepository
	cfg         *config.Config
	clock       func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	memberRepo repositories.MemberRepository,
	paymentRepo repositories.PaymentRepository,
	loanRepo repositories.LoanRepository,
	userRepo repositories.UserRepository,
	cfg *config.Config,
	clock func() time.Time,
) *DashboardService {
	if clock == nil {
		clock = time.Now
	}
	return &DashboardService{
		memberRepo:  memberRepo,
		paymentRepo: paymentRepo,
		loanRepo:    loanRepo,
		userRepo:    userRepo,
		cfg:         cfg,
		clock:       clock,
	}
}

// MemberStats summarises the membership roll
type MemberStats struct {
	Total  int64 `json:"total"`
	Active int64 `json:"active"`
}

// PaymentOverview summarises the current month's contributions
type PaymentOverview struct {
	ThisMonth      float64 `json:"this_month"`
	TotalCollected float64 `json:"total_collected"`
	Penalties      float64 `json:"penalties"`
}

// LoanOverview summarises the open loan book
type LoanOverview struct {
	Active      int64   `json:"active"`
	TotalAmount float64 `json:"total_amount"`
	Outstanding float64 `json:"outstanding"`
}

// DeadlineCountdown is the time remaining until the next contribution deadline
type DeadlineCountdown struct {
	Date             string `json:"date"`
	DaysRemaining    int    `json:"days_remaining"`
	HoursRemaining   int    `json:"hours_remaining"`
	MinutesRemaining int    `json:"minutes_remaining"`
	IsOverdue        bool   `json:"is_overdue"`
}

// DashboardStats is the admin dashboard summary
type DashboardStats struct {
	Members      MemberStats       `json:"members"`
	Payments     PaymentOverview   `json:"payments"`
	Loans        LoanOverview      `json:"loans"`
	Deadline     DeadlineCountdown `json:"deadline"`
	CurrentMonth int               `json:"current_month"`
	CurrentYear  int               `json:"current_year"`
}

// GetStats returns the dashboard summary figures
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	now := s.clock()

	totalMembers, err := s.memberRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	activeUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	month := now.Format("January")
	year := now.Format("2006")
	monthStats, err := s.paymentRepo.MonthlyStats(ctx, month, year)
	if err != nil {
		return nil, err
	}

	loanStats, err := s.loanRepo.ActiveStats(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		Members: MemberStats{
			Total:  totalMembers,
			Active: activeUsers,
		},
		Payments: PaymentOverview{
			ThisMonth:      monthStats.TotalCollected,
			TotalCollected: monthStats.TotalCollected,
			Penalties:      monthStats.TotalPenalties,
		},
		Loans: LoanOverview{
			Active:      loanStats.Count,
			TotalAmount: loanStats.TotalAmount,
			Outstanding: loanStats.Outstanding,
		},
		Deadline:     s.countdown(now),
		CurrentMonth: int(now.Month()),
		CurrentYear:  now.Year(),
	}, nil
}

// countdown computes the time remaining until the deadline day of the
// current month, rolling into next month once the day has passed.
func (s *DashboardService) countdown(now time.Time) DeadlineCountdown {
	deadline := time.Date(now.Year(), now.Month(), s.cfg.Contribution.DeadlineDay, 0, 0, 0, 0, now.Location())
	if now.Day() > s.cfg.Contribution.DeadlineDay {
		deadline = deadline.AddDate(0, 1, 0)
	}

	diff := deadline.Sub(now)
	days := int(diff.Hours()) / 24
	hours := int(diff.Hours()) % 24
	minutes := int(diff.Minutes()) % 60

	countdown := DeadlineCountdown{
		Date:      deadline.Format("2006-01-02"),
		IsOverdue: diff < 0,
	}
	if days > 0 {
		countdown.DaysRemaining = days
	}
	if hours > 0 {
		countdown.HoursRemaining = hours
	}
	if minutes > 0 {
		countdown.MinutesRemaining = minutes
	}
	return countdown
}

// MemberDeadline is one member's upcoming contribution deadline
type MemberDeadline struct {
	Name                string     `json:"name"`
	Phone               string     `json:"phone"`
	NextPaymentDeadline *time.Time `json:"next_payment_deadline"`
	DaysLeft            int        `json:"days_left"`
	Priority            string     `json:"priority"`
}

// GetDeadlines lists the members with the soonest contribution deadlines.
// Deadlines already past are flagged overdue, those within three days urgent.
func (s *DashboardService) GetDeadlines(ctx context.Context) ([]*MemberDeadline, error) {
	members, err := s.memberRepo.CountUpcomingDeadlines(ctx, 10)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	deadlines := make([]*MemberDeadline, 0, len(members))
	for _, m := range members {
		if m.NextPaymentDeadline == nil {
			continue
		}
		d := *m.NextPaymentDeadline
		due := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, now.Location())
		daysLeft := int(due.Sub(today).Hours() / 24)

		priority := "pending"
		switch {
		case daysLeft < 0:
			priority = "overdue"
		case daysLeft <= 3:
			priority = "urgent"
		}

		deadlines = append(deadlines, &MemberDeadline{
			Name:                m.Name,
			Phone:               m.Phone,
			NextPaymentDeadline: m.NextPaymentDeadline,
			DaysLeft:            daysLeft,
			Priority:            priority,
		})
	}
	return deadlines, nil
}

// RecentActivity carries the latest payments and loan applications
type RecentActivity struct {
	RecentPayments []*models.PaymentResponse `json:"recent_payments"`
	RecentLoans    []*models.LoanResponse    `json:"recent_loans"`
}

// GetActivity returns the most recent payments and loan applications
func (s *DashboardService) GetActivity(ctx context.Context) (*RecentActivity, error) {
	payments, err := s.paymentRepo.ListRecent(ctx, 10)
	if err != nil {
		return nil, fmt.Errorf("recent payments: %w", err)
	}
	loans, err := s.loanRepo.ListRecent(ctx, 10)
	if err != nil {
		return nil, fmt.Errorf("recent loans: %w", err)
	}

	now := s.clock()
	activity := &RecentActivity{
		RecentPayments: make([]*models.PaymentResponse, 0, len(payments)),
		RecentLoans:    make([]*models.LoanResponse, 0, len(loans)),
	}
	for _, p := range payments {
		activity.RecentPayments = append(activity.RecentPayments, p.ToResponse())
	}
	for _, l := range loans {
		activity.RecentLoans = append(activity.RecentLoans, l.ToResponse(now))
	}
	return activity, nil
}
