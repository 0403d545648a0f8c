package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/chores/api/handler"
	"github.com/fastygo/chores/internal/config"
	"github.com/fastygo/chores/internal/infrastructure/monitor"
	mysqlInfra "github.com/fastygo/chores/internal/infrastructure/mysql"
	pgInfra "github.com/fastygo/chores/internal/infrastructure/postgres"
	redisInfra "github.com/fastygo/chores/internal/infrastructure/redis"
	s3Infra "github.com/fastygo/chores/internal/infrastructure/s3"
	"github.com/fastygo/chores/internal/middleware"
	"github.com/fastygo/chores/internal/router"
	"github.com/fastygo/chores/internal/services"
	"github.com/fastygo/chores/internal/services/lifecycle"
	"github.com/fastygo/chores/pkg/httpcontext"
	"github.com/fastygo/chores/pkg/logger"
	"github.com/fastygo/chores/repository"
	"github.com/fastygo/chores/repository/boltdb"
	"github.com/fastygo/chores/repository/memory"
	mysqlRepo "github.com/fastygo/chores/repository/mysql"
	pgRepo "github.com/fastygo/chores/repository/postgres"
	redisRepo "github.com/fastygo/chores/repository/redis"
	s3Repo "github.com/fastygo/chores/repository/s3"
	"github.com/fastygo/chores/usecase/dictation"
	"github.com/fastygo/chores/usecase/notify"
	"github.com/fastygo/chores/usecase/session"
	taskUC "github.com/fastygo/chores/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		App:      cfg.AppName,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	stopSignals := manager.Listen(cancel)
	defer stopSignals()

	blobs, err := openBlobStore(appCtx, cfg, manager, zapLogger)
	if err != nil {
		zapLogger.Fatal("storage unavailable", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}

	store := taskUC.New(blobs, taskUC.SeedSource(cfg.Seed.Path, time.Now, zapLogger), zapLogger)
	store.Load(appCtx)

	mon := monitor.New(blobs, cfg.Storage.Driver, store, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	persistSync := services.NewPersistSync(store, mon, zapLogger, services.SyncConfig{
		Interval: cfg.Sync.Interval,
	})
	persistSync.Start()
	manager.Register("persist_sync", func(ctx context.Context) error {
		persistSync.Stop(ctx)
		return nil
	})

	dict := dictation.NewMock(dictation.MockConfig{
		ListenFor:  cfg.Dictation.ListenFor,
		HoldFor:    cfg.Dictation.HoldFor,
		Transcript: cfg.Dictation.Transcript,
	}, zapLogger)

	app := session.New(store, dict, notify.NewPreviewRenderer(), zapLogger)
	manager.Register("session", func(ctx context.Context) error {
		app.Close()
		return nil
	})

	ctxAdapter := httpcontext.NewAdapter(appCtx, cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		View:   apiHandler.NewViewHandler(app, ctxAdapter, zapLogger),
		Task:   apiHandler.NewTaskHandler(app, ctxAdapter, zapLogger),
		Form:   apiHandler.NewFormHandler(app, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, cfg.JWT.Issuer, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started",
			zap.String("address", cfg.Address()),
			zap.String("driver", cfg.Storage.Driver),
			zap.String("today", app.Today()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Error("server crashed", zap.Error(err))
			cancel()
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}

// openBlobStore connects the configured driver and registers its shutdown hook.
func openBlobStore(ctx context.Context, cfg *config.Config, manager *lifecycle.Manager, zapLogger *zap.Logger) (repository.BlobStore, error) {
	switch cfg.Storage.Driver {
	case config.DriverBolt:
		store, err := boltdb.Open(cfg.Storage.BoltPath, cfg.Storage.BoltBucket)
		if err != nil {
			return nil, err
		}
		manager.Register("boltdb", func(ctx context.Context) error {
			return store.Close()
		})
		zapLogger.Info("opened boltdb store", zap.String("path", cfg.Storage.BoltPath))
		return store, nil

	case config.DriverRedis:
		client, err := redisInfra.NewClient(ctx, cfg.Redis, zapLogger)
		if err != nil {
			return nil, err
		}
		manager.Register("redis", func(ctx context.Context) error {
			return client.Close()
		})
		return redisRepo.NewBlobRepository(client, cfg.Redis.KeyPrefix), nil

	case config.DriverPostgres:
		if err := pgInfra.RunMigrations(cfg.Database, cfg.Migrations, zapLogger); err != nil {
			return nil, fmt.Errorf("migrations: %w", err)
		}
		pool, err := pgInfra.NewPool(ctx, cfg.AppName, cfg.Database, zapLogger)
		if err != nil {
			return nil, err
		}
		manager.Register("postgres", func(ctx context.Context) error {
			pool.Close()
			return nil
		})
		return pgRepo.NewBlobRepository(pool), nil

	case config.DriverMySQL:
		db, err := mysqlInfra.Connect(ctx, cfg.MySQL, zapLogger)
		if err != nil {
			return nil, err
		}
		manager.Register("mysql", func(ctx context.Context) error {
			return db.Close()
		})
		return mysqlRepo.NewBlobRepository(db), nil

	case config.DriverS3:
		client, err := s3Infra.NewClient(ctx, cfg.S3, zapLogger)
		if err != nil {
			return nil, err
		}
		return s3Repo.NewBlobRepository(client, cfg.S3.Bucket, cfg.S3.Prefix), nil

	case config.DriverMemory:
		zapLogger.Warn("memory storage selected, tasks are lost on exit")
		return memory.New(), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
