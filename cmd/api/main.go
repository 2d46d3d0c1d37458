package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"designhub_backend/internal/adapters"
	"designhub_backend/internal/auth"
	"designhub_backend/internal/chat"
	"designhub_backend/internal/email"
	"designhub_backend/internal/events"
	apphttp "designhub_backend/internal/http"
	"designhub_backend/internal/http/router"
	"designhub_backend/internal/matching"
	"designhub_backend/internal/notification"
	"designhub_backend/internal/notification/sse"
	"designhub_backend/internal/payments"
	"designhub_backend/internal/portfolio"
	"designhub_backend/internal/projects"
	"designhub_backend/internal/reviews"
	"designhub_backend/internal/scheduler"
	"designhub_backend/internal/storage"
	"designhub_backend/internal/users"
	"designhub_backend/migrations"
	"designhub_backend/platform/config"
	"designhub_backend/platform/db"
	"designhub_backend/platform/logger"
	"designhub_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS, ".")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	rdb := initRedis(cfg, log)
	if rdb == nil {
		panic("REDIS_URL is required for OTP storage and attempt limiting")
	}
	defer func() { _ = rdb.Close() }()

	reminderScheduler, closeScheduler := initReminderScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	sender := initEmailSender(cfg, log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// Storage service for portfolio and chat image uploads (MinIO)
	var storageSvc *storage.Service
	if cfg.IsMinIOEnabled() {
		storageSvc, err = storage.New(cfg)
		if err != nil {
			log.Error("failed to initialize storage service", "error", err)
			panic("failed to initialize storage service: " + err.Error())
		}
		ensureBucket(ctx, log, storageSvc, "portfolio-images", cfg.GetMinioBucketPortfolioImages())
		ensureBucket(ctx, log, storageSvc, "chat-attachments", cfg.GetMinioBucketChatAttachments())
		ensureBucket(ctx, log, storageSvc, "profile-pictures", cfg.GetMinioBucketProfilePictures())
		log.Info("storage service initialized",
			"portfolioBucket", cfg.GetMinioBucketPortfolioImages(),
			"chatBucket", cfg.GetMinioBucketChatAttachments(),
			"profileBucket", cfg.GetMinioBucketProfilePictures(),
		)
	} else {
		log.Warn("MINIO_ENDPOINT not configured; presigned uploads disabled")
	}

	// SSE fan-out shared by chat and notifications
	sseService := sse.New(log)
	defer sseService.Close()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	usersModule := users.NewModule(pool, val, log)
	authModule := auth.NewModule(usersModule.Repository(), rdb, sender, eventBus, cfg, val, log)

	userDirectory := adapters.NewUserDirectoryAdapter(usersModule.Repository())
	matchingModule := matching.NewModule(userDirectory, val, log)

	projectsModule := projects.NewModule(pool, eventBus, val, log)
	if reminderScheduler != nil {
		projectsModule.Service().SetReminderScheduler(reminderScheduler)
	}

	projectReader := adapters.NewProjectReaderAdapter(projectsModule.Repository())
	nameReader := adapters.NewUserNameReaderAdapter(usersModule.Repository())
	chatModule := chat.NewModule(pool, projectReader, nameReader, eventBus, sseService, val, log)

	reviewsModule := reviews.NewModule(pool, projectReader, nameReader, eventBus, val, log)

	projectBilling := adapters.NewProjectBillingAdapter(projectsModule.Repository())
	paymentsModule := payments.NewModule(pool, projectBilling, eventBus, val, log)

	portfolioModule := portfolio.NewModule(pool, storageSvc, cfg.GetMinioBucketPortfolioImages(), val, log)

	// Notification module subscribes to domain events and owns SSE routes
	notificationModule := notification.NewModule(pool, sseService, log)
	notificationModule.SetChatSeeder(chatModule.Service())
	notificationModule.RegisterHandlers(eventBus)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Env:      cfg.Env,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			authModule,
			usersModule,
			matchingModule,
			projectsModule,
			chatModule,
			reviewsModule,
			paymentsModule,
			portfolioModule,
			notificationModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		// Let in-flight event handlers finish before the pool closes.
		eventBus.Wait()
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initRedis(cfg config.RedisConfig, log *logger.Logger) *redis.Client {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Error("invalid REDIS_URL", "error", err)
		return nil
	}
	if cfg.GetRedisTLSInsecure() {
		if opt.TLSConfig == nil {
			opt.TLSConfig = &tls.Config{InsecureSkipVerify: true}
		} else {
			opt.TLSConfig.InsecureSkipVerify = true
		}
	}
	return redis.NewClient(opt)
}

func initReminderScheduler(cfg config.SchedulerConfig, log *logger.Logger) (*scheduler.Client, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; review reminders disabled")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize reminder scheduler client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func initEmailSender(cfg *config.Config, log *logger.Logger) email.Sender {
	if !cfg.GetEmailEnabled() {
		log.Warn("email disabled; OTP codes will only be logged")
		return email.NewNoopSender(log)
	}
	return email.NewSMTPSender(cfg)
}

func ensureBucket(ctx context.Context, log *logger.Logger, storageSvc *storage.Service, name, bucket string) {
	if err := withRetry(ctx, log, "ensure "+name+" bucket", 5, 2*time.Second, func() error {
		return storageSvc.EnsureBucketExists(ctx, bucket)
	}); err != nil {
		log.Error("failed to ensure storage bucket exists", "error", err, "bucket", bucket)
		panic("failed to ensure storage bucket exists: " + err.Error())
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
