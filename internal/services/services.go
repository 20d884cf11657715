package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fsdevblog/geolink/internal/db"
	"github.com/fsdevblog/geolink/internal/repositories/memstore"
	"github.com/fsdevblog/geolink/internal/repositories/pg"
	"github.com/fsdevblog/geolink/internal/repositories/redisstats"
	"github.com/fsdevblog/geolink/internal/repositories/sql"
)

type ServiceType string

const (
	ServiceTypeSQLite   ServiceType = "sqlite"
	ServiceTypePostgres ServiceType = "postgres"
	ServiceTypeInMemory ServiceType = "inMemory"
)

// Services набор сервисов приложения поверх выбранного хранилища.
type Services struct {
	Verifier    *AccessVerifier
	Links       *LinkService
	PingService *PingService
}

// FactoryOptions дополнительные настройки фабрики.
type FactoryOptions struct {
	StoreTimeout  time.Duration
	RecordTimeout time.Duration
	Redis         redis.UniversalClient // Необязательный приемник счетчиков исходов
	Observer      Observer
}

type repoSet struct {
	links  LinkStore
	events interface {
		EventRepository
		EventReader
	}
	pinger Pinger
}

// Factory собирает сервисы для заданного типа хранилища.
//
// Параметры:
//   - conn: подключение, полученное из db.NewConnectionFactory
//   - sType: тип хранилища
//   - logger: логгер
//   - opts: таймауты, redis и наблюдатель
//
// Возвращает:
//   - *Services: сервисы
//   - error: тип подключения не соответствует типу хранилища
func Factory(conn any, sType ServiceType, logger *zap.Logger, opts FactoryOptions) (*Services, error) {
	repos, err := buildRepos(conn, sType, logger)
	if err != nil {
		return nil, err
	}

	recorderOpts := []RecorderOption{
		WithSink(string(sType), repos.events),
		WithRecordTimeout(opts.RecordTimeout),
	}
	var linkOpts []LinkServiceOption
	if opts.Redis != nil {
		stats := redisstats.New(opts.Redis)
		recorderOpts = append(recorderOpts, WithSink("redis", stats))
		linkOpts = append(linkOpts, WithStatsReader(stats))
	}
	verifierOpts := []VerifierOption{WithStoreTimeout(opts.StoreTimeout)}
	if opts.Observer != nil {
		recorderOpts = append(recorderOpts, WithRecorderObserver(opts.Observer))
		verifierOpts = append(verifierOpts, WithVerifierObserver(opts.Observer))
	}

	recorder := NewEventRecorder(logger, recorderOpts...)
	return &Services{
		Verifier:    NewAccessVerifier(repos.links, recorder, logger, verifierOpts...),
		Links:       NewLinkService(repos.links, repos.events, logger, linkOpts...),
		PingService: NewPingService(repos.pinger),
	}, nil
}

func buildRepos(conn any, sType ServiceType, logger *zap.Logger) (*repoSet, error) {
	switch sType {
	case ServiceTypeSQLite:
		gormDB, ok := conn.(*gorm.DB)
		if !ok {
			return nil, errors.New("invalid connection type. expected *gorm.DB")
		}
		links := sql.NewLinkRepo(gormDB, logger)
		return &repoSet{links: links, events: sql.NewEventRepo(gormDB, logger), pinger: links}, nil
	case ServiceTypePostgres:
		pool, ok := conn.(*pgxpool.Pool)
		if !ok {
			return nil, errors.New("invalid connection type. expected *pgxpool.Pool")
		}
		links := pg.NewLinkRepo(pool, logger)
		return &repoSet{links: links, events: pg.NewEventRepo(pool, logger), pinger: links}, nil
	case ServiceTypeInMemory:
		store, ok := conn.(*db.MemoryStorage)
		if !ok {
			return nil, errors.New("invalid connection type. expected *db.MemoryStorage")
		}
		return &repoSet{
			links:  memstore.NewLinkRepo(store),
			events: memstore.NewEventRepo(store),
			pinger: store,
		}, nil
	default:
		return nil, fmt.Errorf("unknown service type: %s", sType)
	}
}
