package config

import (
	"log"
	"time"

	"chamalink/internal/adapters/persistence/models"
	"chamalink/internal/core/domain"
	"chamalink/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}
	if err := s.seedMembers(); err != nil {
		log.Printf("⚠️ Member seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds the default admin user.
// Development/testing only; in production create the admin through a secure
// process.
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", string(domain.RoleAdmin)).Count(&count)
	if count > 0 {
		return nil
	}

	hashedPassword, err := password.Hash("admin123")
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:     "Mark Masila",
		Email:    "masilakisangau@gmail.com",
		Phone:    "0790723609",
		Password: hashedPassword,
		Role:     string(domain.RoleAdmin),
		Status:   "active",
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("🌱 Seeded admin user: %s", admin.Email)
	return nil
}

// seedMembers seeds the founding members plus a sample contribution history
// so loan eligibility can be exercised immediately in development.
func (s *Seeder) seedMembers() error {
	var count int64
	s.db.Model(&models.Member{}).Count(&count)
	if count > 0 {
		return nil
	}

	members := []models.Member{
		{Name: "Mark Masila", Phone: "0790723609", Email: "masilakisangau@gmail.com", Status: "active", JoinedDate: "2023-01-15"},
		{Name: "Michael Kamote", Phone: "0794366274", Email: "michaelkamote2019@gmail.com", Status: "active", JoinedDate: "2023-01-20"},
		{Name: "Lydia Katungi", Phone: "0746792834", Email: "lydiakatungi2001@gmail.com", Status: "active", JoinedDate: "2023-12-15"},
		{Name: "Joel Mwetu", Phone: "0796473760", Email: "joedan926@gmail.com", Status: "active", JoinedDate: "2023-12-15"},
		{Name: "Munyoki Mutua", Phone: "0769083128", Email: "munyokimutua513@gmail.com", Status: "active", JoinedDate: "2023-12-15"},
		{Name: "Mutemwa Willy", Phone: "0718510747", Email: "mutemwawillie@gmail.com", Status: "active", JoinedDate: "2023-12-15"},
		{Name: "Alex Musingi", Phone: "0712584869", Email: "aleckiejnr@gmail.com", Status: "active", JoinedDate: "2026-01-06"},
	}

	for i := range members {
		if err := s.db.Create(&members[i]).Error; err != nil {
			return err
		}
	}

	// Three recent paid contributions for the first member
	amount := AppConfig.Contribution.MonthlyAmount
	now := time.Now()
	for i := 1; i <= 3; i++ {
		paidAt := now.AddDate(0, -i, 0)
		payment := models.Payment{
			MemberID: members[0].ID,
			Amount:   amount,
			Month:    paidAt.Month().String(),
			Year:     paidAt.Format("2006"),
			DatePaid: &paidAt,
			Status:   domain.PaymentStatusPaid,
		}
		if err := s.db.Create(&payment).Error; err != nil {
			return err
		}
	}

	log.Printf("🌱 Seeded %d members with sample contribution history", len(members))
	return nil
}
