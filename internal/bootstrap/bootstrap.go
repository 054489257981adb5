// Package bootstrap builds the dependencies shared by the server, the
// support worker and the admin CLI from one configuration.
package bootstrap

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"

	"coaching-backend/internal/cache"
	"coaching-backend/internal/config"
	"coaching-backend/internal/core"
	"coaching-backend/internal/db"
	"coaching-backend/internal/firebase"
	"coaching-backend/internal/mailer"
	"coaching-backend/internal/models"
)

// NewLogger returns a JSON production logger when APP_ENV is production and
// a development logger otherwise.
func NewLogger(appConfig *config.Config) (*zap.Logger, error) {
	if appConfig != nil && appConfig.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// Backend is the opened document store and the token verifier that goes
// with it.
type Backend struct {
	Store db.DocumentStore
	Auth  *auth.Client
	close func() error
}

// Close releases the store's client, if any.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// OpenBackend opens the configured store. The memory store still resolves a
// Firebase Auth client so tokens can be verified, e.g. against the auth
// emulator; failure to do so is only logged and Auth stays nil.
func OpenBackend(ctx context.Context, appConfig *config.Config, logger *zap.Logger) (*Backend, error) {
	if appConfig.StoreBackend == config.StoreMemory {
		logger.Warn("Using the in-memory document store; data is lost on restart")
		b := &Backend{Store: db.NewMemoryStore()}
		app, err := firebase.NewApp(ctx, appConfig, logger)
		if err != nil {
			logger.Warn("Firebase Auth unavailable", zap.Error(err))
			return b, nil
		}
		if b.Auth, err = app.Auth(ctx); err != nil {
			logger.Warn("Firebase Auth unavailable", zap.Error(err))
		}
		return b, nil
	}

	if err := db.InitFirestore(ctx, appConfig, logger); err != nil {
		return nil, fmt.Errorf("failed to initialize Firestore: %w", err)
	}
	store, err := db.NewFirestoreStore(db.GetFirestoreClient())
	if err != nil {
		_ = db.CloseFirestore()
		return nil, err
	}
	return &Backend{Store: store, Auth: db.GetFirebaseAuthClient(), close: db.CloseFirestore}, nil
}

// OpenCache connects to Redis when REDIS_ADDR is set and falls back to the
// in-process cache when it is not or when Redis cannot be reached.
func OpenCache(ctx context.Context, appConfig *config.Config, logger *zap.Logger) cache.Cache {
	if appConfig.RedisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     appConfig.RedisAddr,
			Password: appConfig.RedisPassword,
			DB:       appConfig.RedisDB,
			Prefix:   appConfig.ServiceName + ":",
		})
		if err == nil {
			logger.Info("Using Redis cache", zap.String("addr", appConfig.RedisAddr))
			return rc
		}
		logger.Warn("Redis unavailable, using in-memory cache", zap.Error(err))
	}
	return cache.NewMemoryCache(appConfig.CacheTTL)
}

// NewSupportDelivery returns nil when SMTP or the support inbox is not configured.
func NewSupportDelivery(appConfig *config.Config, logger *zap.Logger) *core.SupportDelivery {
	if appConfig.SupportEmail == "" {
		logger.Warn("SUPPORT_EMAIL is not set; support messages cannot be delivered")
		return nil
	}
	m, err := mailer.NewSMTPMailer(mailer.Config{
		Host: appConfig.SMTPHost,
		Port: appConfig.SMTPPort,
		User: appConfig.SMTPUser,
		Pass: appConfig.SMTPPass,
	})
	if err != nil {
		logger.Warn("SMTP mailer unavailable", zap.Error(err))
		return nil
	}
	from := appConfig.SupportSender
	if from == "" {
		from = appConfig.SupportEmail
	}
	return core.NewSupportDelivery(m, appConfig.SupportEmail, from)
}

// Plans builds the plan catalog with the configured Stripe prices.
func Plans(appConfig *config.Config) []models.Plan {
	return models.DefaultPlans(map[models.PlanID]string{
		models.PlanPayPerService: appConfig.StripePricePayPerService,
		models.PlanBasic:         appConfig.StripePriceBasic,
		models.PlanStandard:      appConfig.StripePriceStandard,
		models.PlanPremium:       appConfig.StripePricePremium,
	})
}
