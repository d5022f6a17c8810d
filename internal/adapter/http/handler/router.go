package handler

import (
	"time"

	"student-rewards-api/internal/adapter/http/middleware"
	redisStore "student-rewards-api/internal/adapter/storage/redis"
	"student-rewards-api/internal/core/ports"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	RewardSvc      ports.RewardService
	CredentialSvc  ports.CredentialService
	EventSvc       ports.EventService
	ReportingSvc   ports.ReportingService
	TokenSvc       ports.TokenService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	AuditSvc       ports.AuditService // nil = audit logging disabled
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Authorization",
			middleware.HeaderWalletAddress, middleware.HeaderUserRole,
		},
		MaxAge: 12 * time.Hour,
	}))

	// Audit logging (after response)
	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	// Health check (verifies ledger + Redis when enabled)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Swagger documentation
	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/spec", SwaggerSpec)
	}

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	walletAuth := middleware.WalletAuth(deps.TokenSvc, deps.Logger)

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/session", rl("auth_session"), authHandler.CreateSession)
	}

	rewardHandler := NewRewardHandler(deps.RewardSvc)
	rewards := v1.Group("/rewards")
	{
		rewards.GET("/balance/:address", rl("rewards"), rewardHandler.GetBalance)
		rewards.GET("/leaderboard", rl("rewards"), rewardHandler.Leaderboard)
		rewards.POST("/issue", walletAuth, middleware.RequireAdmin(), rl("rewards"), rewardHandler.IssueReward)
		rewards.POST("/transfer", walletAuth, rl("transfers"), rewardHandler.Transfer)
	}

	credentialHandler := NewCredentialHandler(deps.CredentialSvc)
	credentials := v1.Group("/credentials")
	{
		credentials.GET("/verify/:id/:address", rl("credentials"), credentialHandler.VerifyCredential)
		credentials.GET("/:address", rl("credentials"), credentialHandler.GetCredentials)
		credentials.POST("/issue", walletAuth, middleware.RequireIssuer(), rl("credentials"), credentialHandler.IssueCredential)
	}

	userHandler := NewUserHandler(deps.EventSvc, deps.ReportingSvc)
	users := v1.Group("/users")
	{
		users.GET("/dashboard", walletAuth, rl("rewards"), userHandler.GetDashboard)
		users.GET("/dashboard/:address", rl("rewards"), userHandler.GetDashboardFor)
		users.GET("/events", rl("events"), userHandler.ListEvents)
		users.GET("/events/:id", rl("events"), userHandler.GetEvent)
		users.POST("/events", walletAuth, middleware.RequireOrganizer(), rl("events"), userHandler.CreateEvent)
		users.POST("/attendance", walletAuth, middleware.RequireOrganizer(), rl("attendance"), userHandler.RecordAttendance)
	}

	return r
}
