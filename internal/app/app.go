package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	config "github.com/innovadata/inventario-backend/internal/cfg"
	v1Http "github.com/innovadata/inventario-backend/internal/delivery/v1/http"
	"github.com/innovadata/inventario-backend/internal/infrastructure/kafka"
	minioInfra "github.com/innovadata/inventario-backend/internal/infrastructure/minio"
	pgInfra "github.com/innovadata/inventario-backend/internal/infrastructure/postgres"
	s3Repo "github.com/innovadata/inventario-backend/internal/repository/minio"
	"github.com/innovadata/inventario-backend/internal/repository/pgdb"
	pgdbConv "github.com/innovadata/inventario-backend/internal/repository/pgdb/converter/generated"
	"github.com/innovadata/inventario-backend/internal/repository/redis"
	redisConv "github.com/innovadata/inventario-backend/internal/repository/redis/converter/generated"
	"github.com/innovadata/inventario-backend/internal/usecase"
	"github.com/innovadata/inventario-backend/internal/watch"
	"github.com/innovadata/inventario-backend/pkg/clients"
	"github.com/innovadata/inventario-backend/pkg/closer"
	"github.com/innovadata/inventario-backend/pkg/e"
	"github.com/innovadata/inventario-backend/pkg/logger"
	"github.com/innovadata/inventario-backend/pkg/postgres"
	"github.com/jimlawless/whereami"
)

type App struct {
	cfg    *config.Config
	logger logger.Logger

	db          *postgres.PgDatabase
	redisClient *clients.RedisClient
	producer    *kafka.Producer
	worker      *kafka.OutboxWorker
	listener    *pgInfra.ChangeListener
	hub         *watch.Hub
	imagesInfra *minioInfra.MinioInfrastructure
	httpSrv     *v1Http.Server

	appCtx    context.Context
	appCancel context.CancelFunc
}

// NewApp собирает все зависимости приложения. Ошибка любого внешнего
// ресурса (БД, MinIO, Redis, Kafka) фатальна на старте.
func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	appCtx, appCancel := context.WithCancel(context.Background())

	db, err := initPGDB(log, cfg)
	if err != nil {
		appCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	prConv := pgdbConv.NewProductConverterImpl()
	saleConv := pgdbConv.NewSaleConverterImpl()
	outboxConv := pgdbConv.NewOutboxEventConverterImpl()
	cacheConv := redisConv.NewProductConverterImpl()

	productRepo := pgdb.NewProductRepo(db.Pool, prConv)
	saleRepo := pgdb.NewSaleRepo(db.Pool, saleConv)
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, outboxConv)

	minioClient, err := clients.NewMinIOClient(cfg)
	if err != nil {
		appCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minioCtx, minioCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName); err != nil {
		minioCancel()
		appCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	minioCancel()

	imageRepo := s3Repo.NewImageRepo(minioClient, cfg.Minio)
	imagesInfra := minioInfra.NewMinioInfrastructure(imageRepo, cfg.Minio, log, appCtx)

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		appCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cacheRepo := redis.NewCacheRepo(redisClient, cacheConv, cfg.Redis, log)

	producer, err := kafka.NewProducer(log, cfg.Kafka)
	if err != nil {
		appCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if err := producer.EnsureTopic(10 * time.Second); err != nil {
		log.Warnf("kafka topic check failed, continuing: %v", err)
	}

	worker := kafka.NewOutboxWorker(outboxRepo, log, producer, cfg.Kafka, db.Dsn)
	hub := watch.NewHub(log)
	// Мутации других экземпляров долетают до живых представлений через NOTIFY
	listener := pgInfra.NewChangeListener(db.Dsn, hub, log)

	invUC := usecase.NewInventoryUC(
		productRepo,
		saleRepo,
		outboxRepo,
		db.Pool,
		imagesInfra,
		cacheRepo,
		hub,
		log,
	)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(invUC, hub, cfg.Search.DebounceWindow)

	httpSrv := v1Http.NewServer(r, cfg.Http)

	return &App{
		cfg:         cfg,
		logger:      log,
		db:          db,
		redisClient: redisClient,
		producer:    producer,
		worker:      worker,
		listener:    listener,
		hub:         hub,
		imagesInfra: imagesInfra,
		httpSrv:     httpSrv,
		appCtx:      appCtx,
		appCancel:   appCancel,
	}, nil
}

// Run запускает фоновые воркеры и HTTP-сервер и блокируется до сигнала
// завершения или фатальной ошибки сервера.
func (a *App) Run() error {
	a.worker.Start(a.appCtx)
	a.listener.Start(a.appCtx)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	a.shutdown()

	return appErr
}

// shutdown закрывает ресурсы в порядке, обратном запуску (LIFO).
func (a *App) shutdown() {
	c := closer.NewCloser(2 * time.Second)

	c.Add(func(ctx context.Context) error {
		a.db.Close()
		return nil
	})
	c.Add(func(ctx context.Context) error {
		return a.redisClient.Client.Close()
	})
	c.Add(func(ctx context.Context) error {
		return a.producer.Close()
	})
	c.Add(func(ctx context.Context) error {
		return a.imagesInfra.WaitForCleanup(ctx)
	})
	c.Add(func(ctx context.Context) error {
		a.appCancel()
		a.listener.Stop()
		a.worker.Stop()
		return nil
	})
	c.Add(func(ctx context.Context) error {
		a.hub.Close()
		return nil
	})
	c.Add(func(ctx context.Context) error {
		return a.httpSrv.Stop(ctx)
	})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := c.Close(shutdownCtx); err != nil {
		a.logger.Warnf("shutdown finished with errors: %v", err)
		return
	}

	a.logger.Infof("Application shutdown complete")
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
