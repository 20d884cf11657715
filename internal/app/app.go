package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fsdevblog/geolink/internal/config"
	"github.com/fsdevblog/geolink/internal/controllers"
	"github.com/fsdevblog/geolink/internal/db"
	"github.com/fsdevblog/geolink/internal/logs"
	"github.com/fsdevblog/geolink/internal/metrics"
	"github.com/fsdevblog/geolink/internal/services"
	"github.com/fsdevblog/geolink/internal/sslcert"
)

const (
	initTimeout     = 10 * time.Second
	shutdownTimeout = 10 * time.Second
	readTimeout     = 5 * time.Second
	writeTimeout    = 10 * time.Second
)

type App struct {
	config     config.Config
	dbServices *services.Services
	metrics    *metrics.Metrics
	closers    []func() error
	Logger     *zap.Logger
}

// New собирает приложение: логгер, подключения к хранилищам и сервисы.
//
// Параметры:
//   - conf: проверенная конфигурация
//
// Возвращает:
//   - *App: приложение
//   - error: ошибка подключения к хранилищу
func New(conf config.Config) (*App, error) {
	logger, err := logs.New(logs.WithLevel(conf.LogLevel), logs.WithService("geolink"))
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()

	m := metrics.New()
	dbServices, closers, servicesErr := InitServices(ctx, conf, logger, m)
	if servicesErr != nil {
		return nil, fmt.Errorf("init services: %w", servicesErr)
	}

	return &App{
		config:     conf,
		dbServices: dbServices,
		metrics:    m,
		closers:    closers,
		Logger:     logger,
	}, nil
}

// Must вызывает панику если произошла ошибка.
func Must(a *App, err error) *App {
	if err != nil {
		panic(err)
	}
	return a
}

// Handler http обработчик приложения.
func (a *App) Handler() http.Handler {
	return controllers.SetupRouter(controllers.RouterParams{
		Verifier:    a.dbServices.Verifier,
		LinkInfo:    a.dbServices.Links,
		PingService: a.dbServices.PingService,
		Metrics:     a.metrics.Handler(),
		Logger:      a.Logger,
	})
}

// Run запускает web сервер и ждет сигнала остановки.
func (a *App) Run() error {
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:              a.config.ServerAddress,
		Handler:           a.Handler(),
		ReadHeaderTimeout: readTimeout,
		WriteTimeout:      writeTimeout,
	}

	if a.config.EnableHTTPS {
		generated, certErr := sslcert.New().EnsurePair(a.config.TLSCertPath, a.config.TLSKeyPath, time.Now())
		if certErr != nil {
			return fmt.Errorf("prepare tls certificate: %w", certErr)
		}
		if generated {
			a.Logger.Info("Generated self-signed certificate",
				zap.String("cert", a.config.TLSCertPath), zap.String("key", a.config.TLSKeyPath))
		}
	}

	errChan := make(chan error, 1)
	go func() {
		var err error
		if a.config.EnableHTTPS {
			err = server.ListenAndServeTLS(a.config.TLSCertPath, a.config.TLSKeyPath)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case <-ctx.Done():
		a.Logger.Info("Shutdown command received")
	case serverErr = <-errChan:
		a.Logger.Error("server error", zap.Error(serverErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.Logger.Error("graceful shutdown failed", zap.Error(err))
	}
	return serverErr
}

// Close закрывает подключения к хранилищам.
func (a *App) Close() {
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			a.Logger.Warn("close resource", zap.Error(err))
		}
	}
	a.closers = nil
	_ = a.Logger.Sync()
}

// InitServices создает подключения к хранилищам и возвращает сервисный слой приложения.
// observer может быть nil.
//
// Возвращает:
//   - *services.Services: сервисы
//   - []func() error: функции закрытия подключений
//   - error: ошибка подключения
func InitServices(
	ctx context.Context,
	appConf config.Config,
	logger *zap.Logger,
	observer services.Observer,
) (*services.Services, []func() error, error) {
	dbConn, connErr := db.NewConnectionFactory(ctx, db.FactoryConfig{
		StorageType:  db.StorageType(appConf.DBType),
		PostgresDSN:  &appConf.DatabaseDSN,
		SqliteDBPath: &appConf.SQLitePath,
	})
	if connErr != nil {
		return nil, nil, connErr //nolint:wrapcheck
	}
	closers := []func() error{connCloser(dbConn)}

	opts := services.FactoryOptions{
		StoreTimeout:  appConf.StoreTimeout,
		RecordTimeout: appConf.RecordTimeout,
		Observer:      observer,
	}
	if appConf.RedisAddr != "" {
		rdb, redisErr := db.NewRedisClient(ctx, appConf.RedisAddr)
		if redisErr != nil {
			closeAll(closers)
			return nil, nil, redisErr //nolint:wrapcheck
		}
		opts.Redis = rdb
		closers = append(closers, redisCloser(rdb))
	}

	dbServices, dbServErr := services.Factory(dbConn, services.ServiceType(appConf.DBType), logger, opts)
	if dbServErr != nil {
		closeAll(closers)
		return nil, nil, dbServErr //nolint:wrapcheck
	}
	return dbServices, closers, nil
}

func connCloser(conn any) func() error {
	switch c := conn.(type) {
	case *gorm.DB:
		return func() error {
			sqlDB, err := c.DB()
			if err != nil {
				return fmt.Errorf("get sql.DB: %w", err)
			}
			return sqlDB.Close() //nolint:wrapcheck
		}
	case *pgxpool.Pool:
		return func() error {
			c.Close()
			return nil
		}
	default:
		return func() error { return nil }
	}
}

func redisCloser(rdb *redis.Client) func() error {
	return rdb.Close
}

func closeAll(closers []func() error) {
	for _, closeFn := range closers {
		_ = closeFn()
	}
}
