package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/arklim/game-platform-auth/internal/core/port"
	"github.com/arklim/game-platform-auth/internal/infra/config"
	"github.com/arklim/game-platform-auth/internal/infra/database"
	kafkainfra "github.com/arklim/game-platform-auth/internal/infra/kafka"
	"github.com/arklim/game-platform-auth/internal/infra/logger"
	"github.com/arklim/game-platform-auth/internal/infra/mail"
	redisinfra "github.com/arklim/game-platform-auth/internal/infra/redis"
	"github.com/arklim/game-platform-auth/internal/infra/security"
	"github.com/arklim/game-platform-auth/internal/infra/telemetry"
	"github.com/arklim/game-platform-auth/internal/repository/memory"
	postgresrepo "github.com/arklim/game-platform-auth/internal/repository/postgres"
	redisrepo "github.com/arklim/game-platform-auth/internal/repository/redis"
	"github.com/arklim/game-platform-auth/internal/transport/http/routes"
	"github.com/arklim/game-platform-auth/internal/usecase"
)

// Application owns the wired components and their lifecycles: the Kafka
// consumer that serves the protocol, the producer that answers it, and the
// operational HTTP endpoint.
type Application struct {
	cfg      *config.AppConfig
	engine   *gin.Engine
	logger   *zap.Logger
	pool     *pgxpool.Pool
	redis    *redisinfra.Client
	producer *kafkainfra.Producer
	consumer *kafkainfra.Consumer
	tracer   *telemetry.TracerProvider
}

// New wires the full service from configuration.
func New(ctx context.Context, cfg *config.AppConfig) (*Application, error) {
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	var tracer *telemetry.TracerProvider
	if cfg.Telemetry.OTLPEndpoint != "" {
		tracer, err = telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
		if err != nil {
			return nil, fmt.Errorf("init telemetry: %w", err)
		}
	}

	argonCfg := security.Argon2Config{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  cfg.Argon2.SaltLength,
		KeyLength:   cfg.Argon2.KeyLength,
	}
	if err := security.ConfigureArgon2(argonCfg); err != nil {
		return nil, fmt.Errorf("configure argon2: %w", err)
	}

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres, log)
	if err != nil {
		return nil, fmt.Errorf("init postgres: %w", err)
	}

	var redisClient *redisinfra.Client
	var attempts port.AttemptStore
	switch cfg.Auth.AttemptStore {
	case "redis":
		redisClient, err = redisinfra.NewClient(cfg.Redis, log)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("init redis: %w", err)
		}
		counterTTL := 4 * cfg.Auth.BanDuration
		if counterTTL < time.Minute {
			counterTTL = time.Minute
		}
		attempts = redisrepo.NewAttemptStore(redisClient.Client(), redisrepo.AttemptStoreConfig{
			KeyPrefix:  cfg.Redis.KeyPrefix,
			CounterTTL: counterTTL,
		})
		log.Info("using redis attempt store", zap.String("key_prefix", cfg.Redis.KeyPrefix))
	default:
		attempts = memory.NewAttemptStore()
		log.Info("using in-memory attempt store")
	}

	producer, err := kafkainfra.NewProducer(cfg.Kafka, log)
	if err != nil {
		pool.Close()
		if redisClient != nil {
			_ = redisClient.Close()
		}
		return nil, fmt.Errorf("init kafka producer: %w", err)
	}

	accountRepo := postgresrepo.NewAccountRepository(pool, log)
	verifier := postgresrepo.NewPasswordVerifier(pool, cfg.Auth.MasterKey, log)

	var sender port.EmailSender
	if cfg.Mail.Host == "" {
		log.Warn("mail host not configured, confirmation emails are logged only")
		sender = mail.NewLogSender(log)
	} else {
		sender = mail.NewSMTPSender(cfg.Mail)
	}
	mailer := mail.NewMailer(mail.NewTemplates(cfg.Mail.TemplateDir), sender)

	notifier := kafkainfra.NewNotificationPublisher(producer, cfg.App, log)

	authService := usecase.NewAuthenticationService(verifier, attempts, cfg.Auth.BanThreshold, cfg.Auth.BanDuration, log)
	accountService := usecase.NewAccountService(accountRepo, mailer, notifier, log)

	metrics := telemetry.NewRouterMetrics()
	router := kafkainfra.NewRouter(authService, accountService, producer, cfg.Kafka.TopicPrefix, metrics, log)

	consumer, err := kafkainfra.NewConsumer(cfg.Kafka, router, log)
	if err != nil {
		_ = producer.Close()
		pool.Close()
		if redisClient != nil {
			_ = redisClient.Close()
		}
		return nil, fmt.Errorf("init kafka consumer: %w", err)
	}

	routeDeps := routes.Dependencies{
		Config:   cfg,
		Logger:   log,
		Database: pool,
	}
	if redisClient != nil {
		routeDeps.Cache = redisClient
	}
	engine := routes.Register(routeDeps)

	return &Application{
		cfg:      cfg,
		engine:   engine,
		logger:   log,
		pool:     pool,
		redis:    redisClient,
		producer: producer,
		consumer: consumer,
		tracer:   tracer,
	}, nil
}

// Run serves until the context is canceled, then shuts everything down in
// dependency order.
func (a *Application) Run(ctx context.Context) error {
	defer func() {
		_ = a.logger.Sync()
	}()
	defer a.pool.Close()
	defer func() {
		if a.redis != nil {
			_ = a.redis.Close()
		}
	}()
	defer func() {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("close kafka producer", zap.Error(err))
		}
	}()
	defer func() {
		if a.tracer != nil {
			if err := a.tracer.Shutdown(context.Background()); err != nil {
				a.logger.Error("shutdown tracer", zap.Error(err))
			}
		}
	}()

	consumerErrCh := make(chan error, 1)
	go func() {
		consumerErrCh <- a.consumer.Run(ctx)
	}()
	defer func() {
		if err := a.consumer.Close(); err != nil {
			a.logger.Error("close kafka consumer", zap.Error(err))
		}
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.cfg.App.Host, a.cfg.App.Port),
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	a.logger.Info("starting authentication server",
		zap.String("env", a.cfg.App.Env),
		zap.String("address", srv.Addr),
		zap.Strings("kafka_brokers", a.cfg.Kafka.Brokers),
	)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- fmt.Errorf("run server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	case err := <-serverErrCh:
		return err
	case err := <-consumerErrCh:
		if err != nil {
			return fmt.Errorf("run consumer: %w", err)
		}
		return nil
	}
}
