package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"coaching-backend/internal/config"
	"coaching-backend/internal/core"
	"coaching-backend/internal/middleware"
)

// Services bundles the core services the routes are built on. Every field
// except Metrics must be set.
type Services struct {
	Users        core.UserService
	Goals        core.GoalService
	Journal      core.JournalService
	Events       core.EventService
	Testimonials core.TestimonialService
	Profiles     core.ProfileService
	Search       core.SearchService
	Billing      core.BillingService
	Support      core.SupportService
	Auth         core.AuthService

	// Metrics serves /metrics when set.
	Metrics http.Handler
}

// SetupRoutes configures all the application routes with their handlers and middleware.
// Global middleware (request id, tracing, metrics, logging, recovery, CORS)
// is applied to the router in main before this is called.
//
// Layout:
//   - /api/v1/auth/*: public, rate limited per client IP
//   - /api/v1/services, /testimonials, /videos, /support/categories: public content
//   - /api/v1/session, /goals, /journal, /events, /profile, /search, /support: Firebase ID token required
//   - /api/v1/billing/*: plans and the Stripe webhook are public, the rest need a token
//   - /health and, when configured, /metrics at the root
func SetupRoutes(
	router *gin.Engine,
	appConfig *config.Config,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
	svc Services,
) {
	// One limiter serves every rate limited group; each group picks its key.
	limiter := middleware.NewRateLimiter(appConfig.RateLimitRPS, appConfig.RateLimitBurst, logger)

	// Instantiate handlers

	sessionHandler := NewSessionHandler(svc.Users, svc.Goals, svc.Auth, logger)
	authHandler := NewAuthHandler(svc.Auth, logger)
	goalHandler := NewGoalHandler(svc.Goals, logger)
	journalHandler := NewJournalHandler(svc.Journal, logger)
	eventHandler := NewEventHandler(svc.Events, logger)
	profileHandler := NewProfileHandler(svc.Profiles, logger)
	searchHandler := NewSearchHandler(svc.Search, logger)
	billingHandler := NewBillingHandler(svc.Billing, logger)
	supportHandler := NewSupportHandler(svc.Support, logger)
	contentHandler := NewContentHandler(svc.Testimonials, logger)

	apiV1 := router.Group("/api/v1")
	{
		// Public: credential exchange is limited per client address.
		authGroup := apiV1.Group("/auth", limiter.Middleware(middleware.KeyByIP))
		{
			authGroup.POST("/signup", authHandler.SignUp)
			authGroup.POST("/signin", authHandler.SignIn)
			authGroup.POST("/oauth", authHandler.OAuth)
			authGroup.POST("/reset-password", sessionHandler.ResetPassword)
		}

		// Public read-only content.
		apiV1.GET("/services", contentHandler.ListServices)
		apiV1.GET("/testimonials", contentHandler.ListTestimonials)
		apiV1.GET("/videos", contentHandler.ListVideos)
		apiV1.GET("/support/categories", supportHandler.Categories)

		// Protected routes: VerifyToken stores the caller's uid in the context.
		authed := apiV1.Group("", authMW.VerifyToken())
		{
			authed.POST("/session", sessionHandler.InitializeSession)

			goals := authed.Group("/goals")
			{
				goals.GET("", goalHandler.ListGoals)
				goals.POST("", goalHandler.AddGoal)
				goals.PUT("/:goalId", goalHandler.UpdateGoal)
				goals.POST("/:goalId/toggle", goalHandler.ToggleCompletion)
			}

			journal := authed.Group("/journal")
			{
				journal.GET("", journalHandler.ListEntries)
				journal.POST("", journalHandler.AddEntry)
			}

			events := authed.Group("/events")
			{
				events.GET("", eventHandler.ListEvents)
				events.GET("/:eventId", eventHandler.GetEvent)
				events.POST("/:eventId/rsvp", eventHandler.RSVP)
			}

			profile := authed.Group("/profile")
			{
				profile.GET("", profileHandler.GetProfile)
				profile.PUT("", profileHandler.UpdateProfile)
				profile.GET("/assessment", profileHandler.GetAssessment)
				profile.POST("/assessment", profileHandler.SubmitAssessment)
			}

			authed.GET("/search", searchHandler.SearchProfiles)
			authed.POST("/support", limiter.Middleware(middleware.KeyByUserOrIP), supportHandler.SendMessage)
		}

		// Billing mixes public and protected routes, so the token check is per route.
		billing := apiV1.Group("/billing")
		{
			billing.GET("/plans", billingHandler.ListPlans)
			billing.POST("/plan", authMW.VerifyToken(), billingHandler.SelectPlan)
			billing.GET("/subscription", authMW.VerifyToken(), billingHandler.GetSubscription)
			billing.POST("/subscriptions", authMW.VerifyToken(), billingHandler.CreateSubscription)
			billing.POST("/checkout-result", authMW.VerifyToken(), billingHandler.CheckoutResult)

			// Public webhook endpoint for Stripe; the signature is checked by the service.
			billing.POST("/webhooks/stripe", billingHandler.HandleStripeWebhook)
		}
	}

	// Health check for load balancers and orchestrators.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Coaching backend is healthy."})
	})
	if svc.Metrics != nil {
		router.GET("/metrics", gin.WrapH(svc.Metrics))
	}

	logger.Info("API routes configured successfully under /api/v1 and /health.")
}
