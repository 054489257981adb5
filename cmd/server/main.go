// Command server runs the coaching backend HTTP API.
//
// Configuration comes from the environment (see internal/config); outside
// release mode a local .env file is loaded first. STORE_BACKEND selects
// Firestore or the in-memory store. Stripe, RabbitMQ, Redis, SMTP and OTLP
// tracing are each enabled only when their variables are set. The process
// stops on SIGINT or SIGTERM after draining in-flight requests.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"coaching-backend/internal/api"
	"coaching-backend/internal/authbackend"
	"coaching-backend/internal/bootstrap"
	"coaching-backend/internal/config"
	"coaching-backend/internal/core"
	"coaching-backend/internal/db"
	"coaching-backend/internal/messagequeue"
	"coaching-backend/internal/middleware"
	"coaching-backend/internal/observability"
	"coaching-backend/internal/payments"
)

func main() {
	// .env is a development convenience; production sets the environment directly.
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: Error loading .env file:", err)
		}
	}

	// --- 1. Load Application Configuration ---
	appConfig, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to load application configuration: %v", err)
	}

	// --- 2. Initialize Logger (Zap) ---
	zapLogger, err := bootstrap.NewLogger(appConfig)
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger.Info("Application configuration loaded successfully.", zap.String("store", appConfig.StoreBackend))

	// --- 3. Tracing ---
	if appConfig.OTLPEndpoint != "" {
		shutdownTracer, err := observability.InitTracer(context.Background(), appConfig.ServiceName, appConfig.OTLPEndpoint)
		if err != nil {
			zapLogger.Warn("Tracing disabled", zap.Error(err))
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = shutdownTracer(ctx)
			}()
			zapLogger.Info("Tracing enabled", zap.String("endpoint", appConfig.OTLPEndpoint))
		}
	}

	// --- 4. Metrics registry ---
	// Only the collectors registered here are exposed on /metrics.
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := observability.NewProm(reg)

	// --- 5. Document store, cache and Firebase Auth ---
	initCtx, cancelInitCtx := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInitCtx()
	backend, err := bootstrap.OpenBackend(initCtx, appConfig, zapLogger)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to open the document store", zap.Error(err))
	}
	defer backend.Close()
	if backend.Auth == nil {
		zapLogger.Fatal("CRITICAL_ERROR: Firebase Auth client is nil after initialization. Application cannot start.")
	}
	// Every repository goes through the instrumented store.
	store := observability.InstrumentStore(backend.Store, prom)
	appCache := bootstrap.OpenCache(initCtx, appConfig, zapLogger)

	// --- 6. Initialize Repositories ---
	userRepo := db.NewUserRepository(store)
	goalRepo := db.NewGoalRepository(store)
	journalRepo := db.NewJournalRepository(store)
	eventRepo := db.NewEventRepository(store)
	testimonialRepo := db.NewTestimonialRepository(store)
	subRepo := db.NewSubscriptionRepository(store)

	// --- 7. Optional external backends ---
	var authBackend core.AuthBackend
	if appConfig.FirebaseWebAPIKey != "" {
		itk, err := authbackend.New(initCtx, appConfig.FirebaseWebAPIKey, appConfig.ClientURL)
		if err != nil {
			zapLogger.Fatal("CRITICAL_ERROR: Failed to create auth backend", zap.Error(err))
		}
		authBackend = itk
	} else {
		zapLogger.Warn("FIREBASE_WEB_API_KEY is not set; /auth endpoints are disabled")
	}

	var processor core.PaymentProcessor
	if appConfig.StripeSecretKey != "" {
		sp, err := payments.NewStripeProcessor(appConfig.StripeSecretKey, appConfig.StripeWebhookSecret)
		if err != nil {
			zapLogger.Fatal("CRITICAL_ERROR: Failed to create Stripe processor", zap.Error(err))
		}
		processor = sp
	} else {
		zapLogger.Warn("STRIPE_SECRET_KEY is not set; checkout is disabled")
	}

	var publisher core.Publisher
	if appConfig.AMQPURL != "" {
		mq, err := messagequeue.NewRabbitMQService(messagequeue.RabbitMQConfig{URL: appConfig.AMQPURL}, zapLogger)
		if err != nil {
			zapLogger.Warn("RabbitMQ unavailable; support messages are sent inline", zap.Error(err))
		} else {
			defer mq.Close()
			publisher = mq
		}
	}

	// --- 8. Initialize Services ---
	userService := core.NewUserService(userRepo)
	services := api.Services{
		Users:        userService,
		Goals:        core.NewGoalService(goalRepo, nil),
		Journal:      core.NewJournalService(journalRepo, nil),
		Events:       core.NewEventService(eventRepo, appCache, appConfig.CacheTTL, nil, zapLogger),
		Testimonials: core.NewTestimonialService(testimonialRepo, appCache, appConfig.CacheTTL, zapLogger),
		Profiles:     core.NewProfileService(userRepo, nil),
		Search:       core.NewSearchService(userRepo),
		Billing:      core.NewBillingService(bootstrap.Plans(appConfig), processor, subRepo, userRepo, nil, zapLogger),
		Support:      core.NewSupportService(publisher, appConfig.SupportQueue, bootstrap.NewSupportDelivery(appConfig, zapLogger), zapLogger),
		Auth:         core.NewAuthService(authBackend, userService, userRepo, nil, zapLogger),
		Metrics:      promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}
	zapLogger.Info("Core services initialized successfully.")

	// --- 9. Setup Gin HTTP Engine ---
	if strings.ToLower(appConfig.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()

	// Order matters: ids and tracing first, then logging, then recovery.
	router.Use(middleware.RequestID())
	router.Use(otelgin.Middleware(appConfig.ServiceName))
	router.Use(prom.GinHandleMiddleware())
	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	router.Use(middleware.CORSMiddleware(appConfig))
	if appConfig.ClientURL == "" {
		zapLogger.Warn("CLIENT_URL is not configured; CORS allows all origins without credentials.")
	}

	api.SetupRoutes(router, appConfig, zapLogger, middleware.NewAuthMiddleware(backend.Auth, zapLogger), services)

	// --- 10. Configure and Start HTTP Server ---
	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	zapLogger.Info("Starting HTTP server...", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))
	// ListenAndServe blocks, so it runs in its own goroutine while main waits for a signal.
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// --- 11. Graceful Shutdown Handling ---
	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quitChannel
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	// Shutdown stops accepting connections and waits up to 10s for active requests.
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	zapLogger.Info("Server exiting gracefully.")
}
