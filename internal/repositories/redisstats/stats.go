// Package redisstats дополнительный приемник событий доступа: счетчики исходов в redis.
//
// Для каждого события увеличиваются поля хэшей
//
//	<prefix>:total                      исход -> количество за все время
//	<prefix>:link:<code>                исход -> количество по ссылке
//	<prefix>:link:<code>:minute:<ts>    исход -> количество по ссылке за минуту (с TTL)
//
// Счетчики нужны для быстрых дашбордов, полный журнал живет в основном хранилище.
package redisstats

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fsdevblog/geolink/internal/models"
	"github.com/fsdevblog/geolink/internal/repositories"
)

const (
	defaultPrefix = "geolink:stats"
	defaultTTL    = 48 * time.Hour
	minuteLayout  = "200601021504"
)

type Store struct {
	rdb    redis.UniversalClient
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = strings.Trim(prefix, ":")
	}
}

// WithTTL время жизни поминутных счетчиков. 0 отключает истечение.
func WithTTL(d time.Duration) Option {
	return func(s *Store) { s.ttl = d }
}

func New(rdb redis.UniversalClient, opts ...Option) *Store {
	s := &Store{
		rdb:    rdb,
		prefix: defaultPrefix,
		ttl:    defaultTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) totalKey() string {
	return s.prefix + ":total"
}

func (s *Store) linkKey(code string) string {
	return s.prefix + ":link:" + code
}

func (s *Store) minuteKey(code string, at time.Time) string {
	return fmt.Sprintf("%s:minute:%s", s.linkKey(code), at.UTC().Format(minuteLayout))
}

// Append реализует приемник событий. Пишет все счетчики одним pipeline.
func (s *Store) Append(ctx context.Context, event *models.AccessEvent) error {
	at := event.OccurredAt
	if at.IsZero() {
		at = time.Now()
	}
	field := string(event.Outcome)

	pipe := s.rdb.Pipeline()
	pipe.HIncrBy(ctx, s.totalKey(), field, 1)
	if code := strings.TrimSpace(event.ShortCode); code != "" {
		pipe.HIncrBy(ctx, s.linkKey(code), field, 1)

		bucket := s.minuteKey(code, at)
		pipe.HIncrBy(ctx, bucket, field, 1)
		if s.ttl > 0 {
			pipe.Expire(ctx, bucket, s.ttl)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: redis stats for %s: %s", repositories.ErrUnavailable, event.ShortCode, err.Error())
	}
	return nil
}

// LinkCounters счетчики исходов по ссылке за все время.
func (s *Store) LinkCounters(ctx context.Context, code string) (map[models.Outcome]int64, error) {
	raw, err := s.rdb.HGetAll(ctx, s.linkKey(code)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: read redis stats for %s: %s", repositories.ErrUnavailable, code, err.Error())
	}
	return parseCounters(raw)
}

// Totals счетчики исходов по всем ссылкам.
func (s *Store) Totals(ctx context.Context) (map[models.Outcome]int64, error) {
	raw, err := s.rdb.HGetAll(ctx, s.totalKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: read redis totals: %s", repositories.ErrUnavailable, err.Error())
	}
	return parseCounters(raw)
}

func parseCounters(raw map[string]string) (map[models.Outcome]int64, error) {
	result := make(map[models.Outcome]int64, len(raw))
	for field, value := range raw {
		var n int64
		if _, err := fmt.Sscan(value, &n); err != nil {
			return nil, fmt.Errorf("%w: counter %s=%q: %s", repositories.ErrUnknown, field, value, err.Error())
		}
		result[models.Outcome(field)] = n
	}
	return result, nil
}
