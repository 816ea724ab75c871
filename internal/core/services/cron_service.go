package services

import (
	"context"
	"log"
	"time"

	"chamalink/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CronService runs the daily contribution sweep. Every morning it marks
// pending contributions whose due date has passed as overdue and reports
// active loans that are past their due date.
type CronService struct {
	cron        *cron.Cron
	paymentRepo repositories.PaymentRepository
	loanRepo    repositories.LoanRepository
	clock       func() time.Time
}

// NewCronService creates a new cron service
func NewCronService(
	paymentRepo repositories.PaymentRepository,
	loanRepo repositories.LoanRepository,
	clock func() time.Time,
) *CronService {
	if clock == nil {
		clock = time.Now
	}
	return &CronService{
		cron:        cron.New(),
		paymentRepo: paymentRepo,
		loanRepo:    loanRepo,
		clock:       clock,
	}
}

// Start registers the daily sweep at 08:30 and starts the scheduler
func (s *CronService) Start() {
	_, err := s.cron.AddFunc("30 8 * * *", s.RunDailySweep)
	if err != nil {
		log.Printf("❌ Failed to register daily sweep: %v", err)
		return
	}
	s.cron.Start()
	log.Println("🚀 CronService started (daily sweep at 08:30)")
}

// Stop stops the scheduler and waits for a running job to finish
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 CronService stopped")
}

// RunDailySweep marks lapsed pending contributions overdue and logs how many
// active loans are past due
func (s *CronService) RunDailySweep() {
	ctx := context.Background()
	now := s.clock()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	marked, err := s.paymentRepo.MarkOverdueBefore(ctx, today)
	if err != nil {
		log.Printf("❌ Daily sweep: failed to mark overdue contributions: %v", err)
	} else if marked > 0 {
		log.Printf("⚠️ Daily sweep: marked %d contribution(s) overdue", marked)
	}

	pastDue, err := s.loanRepo.CountActivePastDue(ctx, today)
	if err != nil {
		log.Printf("❌ Daily sweep: failed to count past-due loans: %v", err)
	} else if pastDue > 0 {
		log.Printf("⚠️ Daily sweep: %d active loan(s) past due date", pastDue)
	}
}
