package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/config"
	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/domain"
	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/handler"
	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/infra/cache"
	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/infra/email"
	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/infra/observability"
	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/infra/resilience"
	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/infra/supabase"
	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/service"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
		zap.Duration("session_ttl", cfg.SessionTTL),
		zap.String("billing_epoch", cfg.BillingEpoch),
		zap.String("generate_cron", cfg.GenerateCron),
	)

	if cfg.SupabaseURL == "" {
		logger.Fatal("SUPABASE_URL is required")
	}

	epoch, err := time.Parse("2006-01-02", cfg.BillingEpoch)
	if err != nil {
		logger.Fatal("invalid BILLING_EPOCH", zap.String("value", cfg.BillingEpoch), zap.Error(err))
	}

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "rentledger")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Caches ---
	tenantsCache := cache.New[[]domain.Tenant](cfg.CacheTTL)
	financeCache := cache.New[domain.FinanceTotals](cfg.CacheTTL)

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	cb := resilience.NewCircuitBreaker("supabase")

	// --- Supabase store ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	store := supabase.NewClient(
		httpClient,
		cfg.SupabaseURL,
		cfg.SupabaseAnonKey,
		cfg.SupabaseServiceKey,
		cfg.StorageBucket,
		cb,
		resilienceCfg,
		logger,
	)

	// --- Mailer ---
	mailer := email.NewMailer(email.Config{
		Host:            cfg.SMTPHost,
		Port:            cfg.SMTPPort,
		User:            cfg.SMTPUser,
		Password:        cfg.SMTPPassword,
		From:            cfg.MailFrom,
		AdminRecipients: cfg.MailTo,
	}, logger)
	if mailer.Enabled() {
		logger.Info("email notifications enabled", zap.String("smtp_host", cfg.SMTPHost))
	} else {
		logger.Info("email notifications disabled")
	}

	// --- Services ---
	clock := service.SystemClock{}

	billingSvc := service.NewBillingService(store, store, store, clock, mailer, epoch, metrics, logger)
	tenantsSvc := service.NewTenantsService(store, store, tenantsCache, metrics, logger)
	complianceSvc := service.NewComplianceService(store, store, clock, logger)
	financeSvc := service.NewFinanceService(store, financeCache, metrics, logger)
	calendarSvc := service.NewCalendarService(store, clock, logger)
	staffSvc := service.NewStaffService(store, logger)
	notificationsSvc := service.NewNotificationsService(store, store, store, mailer, clock, metrics, logger)
	authSvc := service.NewAuthService(cfg.JWTSecret, cfg.SessionTTL, cfg.AdminPassword, cfg.ViewerPassword, logger)

	// --- Scheduled backlog generation ---
	// One run at startup catches a service that was down over the turn
	// of the month; the cron entry handles steady state.
	runGenerator := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if _, err := billingSvc.RunBacklogGeneration(ctx, false); err != nil {
			logger.Error("scheduled backlog generation failed", zap.Error(err))
		}
	}
	go runGenerator()

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.GenerateCron, runGenerator); err != nil {
		logger.Fatal("invalid GENERATE_CRON", zap.String("value", cfg.GenerateCron), zap.Error(err))
	}
	if _, err := scheduler.AddFunc(cfg.GenerateCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := notificationsSvc.DispatchEscalationAlerts(ctx); err != nil {
			logger.Error("escalation sweep failed", zap.Error(err))
		}
	}); err != nil {
		logger.Fatal("failed to schedule escalation sweep", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	// --- Router ---
	router := handler.NewRouter(handler.Services{
		Tenants:       tenantsSvc,
		Billing:       billingSvc,
		Compliance:    complianceSvc,
		Finance:       financeSvc,
		Calendar:      calendarSvc,
		Staff:         staffSvc,
		Notifications: notificationsSvc,
		Auth:          authSvc,
	}, store, metrics, logger, cfg.CORSOrigins)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
