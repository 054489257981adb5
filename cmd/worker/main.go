// Command worker delivers queued support messages to the support inbox.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"coaching-backend/internal/bootstrap"
	"coaching-backend/internal/config"
	"coaching-backend/internal/messagequeue"
	"coaching-backend/internal/observability"
)

// metricsAddr serves /metrics for the worker.
const metricsAddr = ":9091"

func main() {
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: Error loading .env file:", err)
		}
	}

	appConfig, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to load application configuration: %v", err)
	}
	zapLogger, err := bootstrap.NewLogger(appConfig)
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()

	if appConfig.AMQPURL == "" {
		zapLogger.Fatal("CRITICAL_ERROR: AMQP_URL is required for the support worker")
	}
	delivery := bootstrap.NewSupportDelivery(appConfig, zapLogger)
	if delivery == nil {
		zapLogger.Fatal("CRITICAL_ERROR: SMTP and SUPPORT_EMAIL must be configured for the support worker")
	}

	mq, err := messagequeue.NewRabbitMQService(messagequeue.RabbitMQConfig{URL: appConfig.AMQPURL}, zapLogger)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to connect to RabbitMQ", zap.Error(err))
	}
	defer mq.Close()

	reg := prometheus.NewRegistry()
	prom := observability.NewProm(reg)
	metricsServer := &http.Server{
		Addr:              metricsAddr,
		Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Error("Metrics server stopped", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	handler := func(ctx context.Context, body []byte) error {
		if err := delivery.HandleQueued(ctx, body); err != nil {
			prom.SupportResults.WithLabelValues("failed").Inc()
			return err
		}
		prom.SupportResults.WithLabelValues("sent").Inc()
		return nil
	}

	zapLogger.Info("Support worker started", zap.String("queue", appConfig.SupportQueue))
	if err := mq.Consume(ctx, appConfig.SupportQueue, handler); err != nil && !errors.Is(err, context.Canceled) {
		zapLogger.Error("Support worker stopped", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = metricsServer.Shutdown(shutdownCtx)
	zapLogger.Info("Support worker exiting.")
}
