package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/bimbel-api/api/swagger"
	"github.com/noah-isme/bimbel-api/internal/handler"
	"github.com/noah-isme/bimbel-api/internal/repository"
	"github.com/noah-isme/bimbel-api/internal/repository/memory"
	mongorepo "github.com/noah-isme/bimbel-api/internal/repository/mongo"
	"github.com/noah-isme/bimbel-api/internal/repository/postgres"
	"github.com/noah-isme/bimbel-api/internal/service"
	"github.com/noah-isme/bimbel-api/internal/session"
	"github.com/noah-isme/bimbel-api/pkg/cache"
	"github.com/noah-isme/bimbel-api/pkg/config"
	"github.com/noah-isme/bimbel-api/pkg/database"
	"github.com/noah-isme/bimbel-api/pkg/jobs"
	"github.com/noah-isme/bimbel-api/pkg/logger"
	"github.com/noah-isme/bimbel-api/pkg/password"
)

// @title Bimbel API
// @version 1.0.0
// @description Back office for a tutoring centre
// @BasePath /api/v1
// @schemes http

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

// backend is the storage adapter chosen at start together with its lifecycle hooks.
type backend struct {
	store repository.Store
	sqlDB *sqlx.DB
	ping  pingFunc
	close func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	be, err := openBackend(ctx, cfg, metrics, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to open storage backend", "backend", cfg.Storage.Backend, "error", err)
	}
	defer be.close()

	hasher := password.Bcrypt{}
	if cfg.Storage.Backend == config.BackendMemory || cfg.Storage.SeedFixtures {
		if err := seed(ctx, be.store, hasher, logr); err != nil {
			logr.Sugar().Fatalw("failed to seed fixtures", "error", err)
		}
	}

	kv, purge, err := openSessionKV(cfg, be, metrics, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to open session store", "store", cfg.Session.Store, "error", err)
	}
	if purge != nil {
		purge.Start(ctx)
		defer purge.Stop()
	}
	sessions := session.NewStore(kv, session.Options{
		Secret: cfg.Session.Secret,
		TTL:    cfg.Session.TTL,
		Secure: cfg.Session.SecureCookie,
	})

	var legacy []password.Verifier
	if cfg.Auth.AllowLegacyPasswords {
		logr.Warn("legacy plain credentials are accepted and will be migrated on login")
		legacy = append(legacy, password.Legacy{OnMatch: func() {
			logr.Warn("legacy credential matched, migrating to bcrypt")
		}})
	}
	if cfg.Auth.DebugIdentity {
		logr.Warn("debug identity enabled: requests without a session that send X-Debug-Identity act as admin")
	}

	validate := validator.New()
	authSvc := service.NewAuthService(be.store, password.NewChain(legacy...), validate, logr, service.AuthConfig{
		DebugIdentity: cfg.Auth.DebugIdentity,
	})
	if metrics != nil {
		authSvc.WithLoginRecorder(metrics)
	}
	classSvc := service.NewClassService(be.store, be.store, validate, logr)
	userSvc := service.NewUserService(be.store, hasher, validate, logr)

	checks := map[string]handler.Pinger{"sessions": sessions}
	if be.ping != nil {
		checks["storage"] = be.ping
	}

	handlers := handler.Handlers{
		Auth:         handler.NewAuthHandler(authSvc, sessions, cfg.Session.CookieName, logr),
		Users:        handler.NewUserHandler(userSvc),
		Classes:      handler.NewClassHandler(classSvc),
		Attendance:   handler.NewAttendanceHandler(service.NewAttendanceService(be.store, validate, logr), classSvc, userSvc),
		TestResults:  handler.NewTestResultHandler(service.NewTestResultService(be.store, validate, logr), classSvc, userSvc),
		Finance:      handler.NewFinanceHandler(service.NewFinanceService(be.store, validate, logr), userSvc),
		Events:       handler.NewEventHandler(service.NewEventService(be.store, validate, logr)),
		Publications: handler.NewPublicationHandler(service.NewPublicationService(be.store, validate, logr), userSvc),
		Metrics:      handler.NewMetricsHandler(metrics, checks),
	}

	swagger.BasePath = cfg.APIPrefix
	router := handler.NewRouter(handlers, sessions, authSvc, metrics, logr, handler.RouterOptions{
		APIPrefix:      cfg.APIPrefix,
		CookieName:     cfg.Session.CookieName,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		EnableMetrics:  cfg.Metrics.Enabled,
		EnableDocs:     cfg.Env != config.EnvProduction,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Errorw("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}

func openBackend(ctx context.Context, cfg *config.Config, metrics *service.MetricsService, logr *zap.Logger) (*backend, error) {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if cfg.Database.AutoMigrate {
			if err := database.RunMigrations(db.DB, logr); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
		var opts []postgres.Option
		if metrics != nil {
			opts = append(opts, postgres.WithObserver(metrics))
		}
		return &backend{
			store: postgres.New(db, opts...),
			sqlDB: db,
			ping:  db.PingContext,
			close: func() { _ = db.Close() },
		}, nil

	case config.BackendMongo:
		client, db, err := database.NewMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		var opts []mongorepo.Option
		if metrics != nil {
			opts = append(opts, mongorepo.WithObserver(metrics))
		}
		store := mongorepo.New(db, opts...)
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("ensure mongo indexes: %w", err)
		}
		return &backend{
			store: store,
			ping:  func(ctx context.Context) error { return client.Ping(ctx, nil) },
			close: func() { _ = client.Disconnect(context.Background()) },
		}, nil

	default:
		logr.Warn("using in-memory storage; data is lost on restart")
		return &backend{store: memory.New(), close: func() {}}, nil
	}
}

// openSessionKV returns the session KV and, for stores without native expiry, a purge job.
func openSessionKV(cfg *config.Config, be *backend, metrics *service.MetricsService, logr *zap.Logger) (session.KV, *jobs.Periodic, error) {
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return session.NewRedisKV(client), nil, nil

	case config.SessionStorePostgres:
		if be.sqlDB == nil {
			return nil, nil, errors.New("postgres session store needs the postgres backend")
		}
		kv := session.NewPostgresKV(be.sqlDB)
		purge := jobs.NewPeriodic("session-purge", func(ctx context.Context) error {
			n, err := kv.PurgeExpired(ctx)
			if err != nil {
				return err
			}
			if n > 0 {
				logr.Debug("purged expired sessions", zap.Int64("count", n))
			}
			if metrics != nil {
				metrics.RecordSessionsPurged(n)
			}
			return nil
		}, jobs.PeriodicConfig{Interval: 10 * time.Minute, RunOnStart: true, Logger: logr})
		return kv, purge, nil

	default:
		return session.NewMemoryKV(time.Minute), nil, nil
	}
}

// seed loads the demo dataset into an empty store.
func seed(ctx context.Context, store repository.Store, hasher password.Bcrypt, logr *zap.Logger) error {
	users, err := store.ListUsers(ctx)
	if err != nil {
		return err
	}
	if len(users) > 0 {
		logr.Info("store already holds data, skipping fixtures")
		return nil
	}
	if err := repository.SeedFixtures(ctx, store, hasher.Hash); err != nil {
		return err
	}
	logr.Info("demo fixtures loaded")
	return nil
}
