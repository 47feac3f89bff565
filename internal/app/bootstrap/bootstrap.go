package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	formregistryservice "taskhall/contexts/submission-core/form-registry-service"
	jsonschemaadapter "taskhall/contexts/submission-core/form-registry-service/adapters/jsonschema"
	formmemory "taskhall/contexts/submission-core/form-registry-service/adapters/memory"
	formpostgres "taskhall/contexts/submission-core/form-registry-service/adapters/postgres"
	formredis "taskhall/contexts/submission-core/form-registry-service/adapters/redis"
	formports "taskhall/contexts/submission-core/form-registry-service/ports"
	surveyservice "taskhall/contexts/submission-core/survey-service"
	surveypostgres "taskhall/contexts/submission-core/survey-service/adapters/postgres"
	surveyworkers "taskhall/contexts/submission-core/survey-service/application/workers"
	taskclaimservice "taskhall/contexts/submission-core/task-claim-service"
	taskpostgres "taskhall/contexts/submission-core/task-claim-service/adapters/postgres"
	taskworkers "taskhall/contexts/submission-core/task-claim-service/application/workers"
	contractsv1 "taskhall/contracts/gen/events/v1"
	"taskhall/internal/platform/cache"
	"taskhall/internal/platform/config"
	"taskhall/internal/platform/db"
	"taskhall/internal/platform/httpserver"
	"taskhall/internal/platform/logging"
	"taskhall/internal/platform/messaging"

	"golang.org/x/sync/errgroup"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	redis    *cache.Redis
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres      *db.Postgres
	taskRelay     *taskworkers.OutboxRelay
	surveyRelay   *surveyworkers.OutboxRelay
	notifications NotificationConsumer
	pollInterval  time.Duration
	logger        *slog.Logger
}

// modules is the wired set of contexts shared by both processes.
type modules struct {
	forms   formregistryservice.Module
	surveys surveyservice.Module
	tasks   taskclaimservice.Module
}

func BuildAPI(ctx context.Context) (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat).
		With("service", cfg.ServiceName, "process", "api")
	slog.SetDefault(logger)

	pg, err := connectPostgres(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	rds, err := connectRedis(cfg, logger)
	if err != nil {
		_ = pg.Close()
		return nil, err
	}

	mods, err := buildModules(cfg, pg, rds, nil, logger)
	if err != nil {
		_ = rds.Close()
		_ = pg.Close()
		return nil, err
	}

	if cfg.FormSeedFile != "" {
		published, err := mods.forms.Seeder.LoadFile(ctx, cfg.FormSeedFile)
		if err != nil {
			_ = rds.Close()
			_ = pg.Close()
			return nil, fmt.Errorf("load form seeds: %w", err)
		}
		logger.Info("form seeds loaded",
			"event", "bootstrap_form_seeds_loaded",
			"module", "internal/app/bootstrap",
			"layer", "platform",
			"file", cfg.FormSeedFile,
			"published", published,
		)
	}

	server := httpserver.New(mods.forms, mods.surveys, mods.tasks, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		redis:    rds,
		logger:   logger,
	}, nil
}

func BuildWorker(ctx context.Context) (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat).
		With("service", cfg.ServiceName, "process", "worker")
	slog.SetDefault(logger)

	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}
	pg, err := connectPostgres(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(logger)
	if err != nil {
		_ = pg.Close()
		return nil, err
	}

	mods, err := buildModules(cfg, pg, nil, kafka, logger)
	if err != nil {
		_ = pg.Close()
		return nil, err
	}

	app := &WorkerApp{
		postgres: pg,
		notifications: NotificationConsumer{
			Subscriber:    kafka,
			Topics:        []string{taskworkers.DefaultTopic, surveyworkers.DefaultTopic},
			ConsumerGroup: "taskhall-notifications-cg",
			Logger:        logger,
		},
		pollInterval: cfg.WorkerPollInterval,
		logger:       logger,
	}
	if cfg.EnableTaskOutboxRelay {
		relay := mods.tasks.OutboxRelay
		app.taskRelay = &relay
	}
	if cfg.EnableSurveyOutboxRelay {
		relay := mods.surveys.OutboxRelay
		app.surveyRelay = &relay
	}
	return app, nil
}

// buildModules wires every context against Postgres when pg is set and
// against in-memory stores otherwise. With Postgres, Redis backs the active
// form config cache when configured.
func buildModules(
	cfg config.Config,
	pg *db.Postgres,
	rds *cache.Redis,
	kafka *messaging.Kafka,
	logger *slog.Logger,
) (modules, error) {
	if pg == nil {
		forms := formregistryservice.NewInMemoryModule(nil, logger)
		return modules{
			forms:   forms,
			surveys: surveyservice.NewInMemoryModule(forms.Reader, publisherOrNil(kafka), logger),
			tasks:   taskclaimservice.NewInMemoryModule(nil, forms.Reader, publisherOrNil(kafka), cfg.DailyClaimLimit, logger),
		}, nil
	}

	documents, err := jsonschemaadapter.NewDocumentValidator()
	if err != nil {
		return modules{}, fmt.Errorf("compile form config schema: %w", err)
	}
	var formCache formports.ActiveConfigCache = formmemory.NewStore(nil, logger)
	if rds != nil {
		formCache = formredis.NewActiveConfigCache(rds.Client, logger)
	}
	formRepo := formpostgres.NewRepository(pg.DB, logger)
	forms := formregistryservice.NewModule(formregistryservice.Dependencies{
		Configs:   formRepo,
		Cache:     formCache,
		Documents: documents,
		Clock:     formpostgres.SystemClock{},
		IDs:       formpostgres.UUIDGenerator{},
		CacheTTL:  cfg.FormCacheTTL,
		Logger:    logger,
	})

	surveyRepo := surveypostgres.NewRepository(pg.DB, logger)
	surveyDeps := surveyservice.Dependencies{
		Submissions: surveyRepo,
		Forms:       forms.Reader,
		Outbox:      surveyRepo,
		Clock:       surveypostgres.SystemClock{},
		IDs:         surveypostgres.UUIDGenerator{},
		Topic:       surveyworkers.DefaultTopic,
		Logger:      logger,
	}
	taskRepo := taskpostgres.NewRepository(pg.DB, logger)
	taskDeps := taskclaimservice.Dependencies{
		Tasks:       taskRepo,
		Claims:      taskRepo,
		Submissions: taskRepo,
		Forms:       forms.Reader,
		Outbox:      taskRepo,
		Clock:       taskpostgres.SystemClock{},
		IDs:         taskpostgres.UUIDGenerator{},
		DailyLimit:  cfg.DailyClaimLimit,
		Topic:       taskworkers.DefaultTopic,
		Logger:      logger,
	}
	if kafka != nil {
		surveyDeps.Publisher = kafka
		taskDeps.Publisher = kafka
	}

	return modules{
		forms:   forms,
		surveys: surveyservice.NewModule(surveyDeps),
		tasks:   taskclaimservice.NewModule(taskDeps),
	}, nil
}

type eventPublisher interface {
	Publish(ctx context.Context, topic string, event contractsv1.Envelope) error
}

// publisherOrNil keeps a nil *Kafka from becoming a non-nil interface.
func publisherOrNil(kafka *messaging.Kafka) eventPublisher {
	if kafka == nil {
		return nil
	}
	return kafka
}

func connectPostgres(ctx context.Context, cfg config.Config, logger *slog.Logger) (*db.Postgres, error) {
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		logger.Warn("POSTGRES_DSN not set, using in-memory stores",
			"event", "bootstrap_memory_mode",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		return nil, nil
	}
	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}
	if cfg.AutoMigrate {
		if _, err := db.Migrate(ctx, pg.DB, logger); err != nil {
			_ = pg.Close()
			return nil, err
		}
	}
	return pg, nil
}

func connectRedis(cfg config.Config, logger *slog.Logger) (*cache.Redis, error) {
	if cfg.RedisAddr == "" {
		logger.Info("REDIS_ADDR not set, form config cache is in-process",
			"event", "bootstrap_redis_disabled",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		return nil, nil
	}
	return cache.ConnectRedis(cache.RedisOptions{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

func (a *APIApp) Run(ctx context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start(ctx)
}

func (a *APIApp) Close() error {
	return errors.Join(a.redis.Close(), a.postgres.Close())
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if err := w.notifications.Start(ctx); err != nil {
		return err
	}

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
		"task_relay", w.taskRelay != nil,
		"survey_relay", w.surveyRelay != nil,
	)

	group, groupCtx := errgroup.WithContext(ctx)
	if w.taskRelay != nil {
		relay := w.taskRelay
		group.Go(func() error { return poll(groupCtx, w.pollInterval, relay.RunOnce) })
	}
	if w.surveyRelay != nil {
		relay := w.surveyRelay
		group.Go(func() error { return poll(groupCtx, w.pollInterval, relay.RunOnce) })
	}
	return group.Wait()
}

func (w *WorkerApp) Close() error {
	return w.postgres.Close()
}

// poll runs fn immediately and then on every tick until ctx is done.
func poll(ctx context.Context, interval time.Duration, fn func(context.Context) error) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if err := fn(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
