package routes

import (
	"time"

	"chamalink/internal/adapters/http/handlers"
	"chamalink/internal/adapters/http/middleware"
	"chamalink/internal/adapters/persistence/repositories"
	"chamalink/internal/config"
	"chamalink/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	passwordResetRepo := repositories.NewPasswordResetRepository(db)
	memberRepo := repositories.NewMemberRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	loanRepo := repositories.NewLoanRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, passwordResetRepo, memberRepo, cfg)
	memberService := services.NewMemberService(memberRepo, paymentRepo, cfg, nil)
	paymentService := services.NewPaymentService(paymentRepo, memberRepo, cfg, nil)
	loanService := services.NewLoanService(loanRepo, paymentRepo, memberRepo, cfg, nil)
	dashboardService := services.NewDashboardService(memberRepo, paymentRepo, loanRepo, userRepo, cfg, nil)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	memberHandler := handlers.NewMemberHandler(memberService, loanService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	loanHandler := handlers.NewLoanHandler(loanService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	// Auth routes (public, stricter rate limit)
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Member routes
	memberRoutes := apiV1.Group("/members")
	memberRoutes.Use(middleware.AuthMiddleware(cfg))
	setupMemberRoutes(memberRoutes, memberHandler)

	// Payment routes
	paymentRoutes := apiV1.Group("/payments")
	paymentRoutes.Use(middleware.AuthMiddleware(cfg))
	setupPaymentRoutes(paymentRoutes, paymentHandler)

	// Loan routes
	loanRoutes := apiV1.Group("/loans")
	loanRoutes.Use(middleware.AuthMiddleware(cfg))
	setupLoanRoutes(loanRoutes, loanHandler)

	// Dashboard routes
	dashboardRoutes := apiV1.Group("/dashboard")
	dashboardRoutes.Use(middleware.AuthMiddleware(cfg))
	dashboardRoutes.Use(middleware.CacheControl(30 * time.Second))
	setupDashboardRoutes(dashboardRoutes, dashboardHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)
	router.Post("/forgot-password", middleware.AuthRateLimiter(), handler.ForgotPassword)
	router.Post("/reset-password", middleware.AuthRateLimiter(), handler.ResetPassword)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
	router.Put("/password", middleware.AuthMiddleware(cfg), handler.ChangePassword)

	// Admin user management
	adminUsers := router.Group("/admin/users", middleware.AuthMiddleware(cfg), middleware.AdminOnly())
	adminUsers.Get("/", handler.ListUsers)
	adminUsers.Patch("/:id/status", handler.UpdateUserStatus)
}

// setupMemberRoutes configures member routes
func setupMemberRoutes(router fiber.Router, handler *handlers.MemberHandler) {
	router.Get("/", handler.List)
	router.Get("/:id", handler.Get)
	router.Get("/:id/loans", handler.Loans)
	router.Post("/", middleware.AdminOnly(), handler.Create)
	router.Put("/:id", middleware.AdminOnly(), handler.Update)
}

// setupPaymentRoutes configures payment routes
func setupPaymentRoutes(router fiber.Router, handler *handlers.PaymentHandler) {
	router.Get("/", handler.List)
	router.Get("/stats", handler.Stats)
	router.Post("/initiate", handler.Initiate)
	router.Post("/verify/:id", handler.Verify)
}

// setupLoanRoutes configures loan routes
func setupLoanRoutes(router fiber.Router, handler *handlers.LoanHandler) {
	router.Get("/", handler.List)
	router.Get("/my", handler.My)
	router.Get("/:id", handler.Get)
	router.Post("/apply", handler.Apply)
	router.Post("/calculate", handler.Calculate)
	router.Put("/:id/status", middleware.AdminOnly(), handler.UpdateStatus)
}

// setupDashboardRoutes configures dashboard routes
func setupDashboardRoutes(router fiber.Router, handler *handlers.DashboardHandler) {
	router.Get("/stats", handler.Stats)
	router.Get("/deadlines", handler.Deadlines)
	router.Get("/activity", handler.Activity)
}
