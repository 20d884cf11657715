package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fsdevblog/geolink/internal/models"
)

const defaultRecordTimeout = 500 * time.Millisecond

type eventSink struct {
	name string
	repo EventRepository
}

// EventRecorder записывает события доступа во все настроенные приемники.
// Запись не зависит от отмены запроса клиентом и ограничена собственным таймаутом.
type EventRecorder struct {
	sinks    []eventSink
	timeout  time.Duration
	logger   *zap.Logger
	observer Observer
}

type RecorderOption func(*EventRecorder)

// WithSink добавляет приемник событий. Порядок записи совпадает с порядком добавления.
func WithSink(name string, repo EventRepository) RecorderOption {
	return func(r *EventRecorder) {
		r.sinks = append(r.sinks, eventSink{name: name, repo: repo})
	}
}

func WithRecordTimeout(d time.Duration) RecorderOption {
	return func(r *EventRecorder) { r.timeout = d }
}

func WithRecorderObserver(o Observer) RecorderOption {
	return func(r *EventRecorder) { r.observer = o }
}

// NewEventRecorder создает регистратор событий.
//
// Параметры:
//   - logger: логгер для ошибок записи
//   - opts: приемники и настройки
//
// Возвращает:
//   - *EventRecorder: регистратор
func NewEventRecorder(logger *zap.Logger, opts ...RecorderOption) *EventRecorder {
	r := &EventRecorder{
		timeout: defaultRecordTimeout,
		logger:  logger.With(zap.String("module", "services/recorder")),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record добавляет событие в каждый приемник. Ошибки логируются и не возвращаются.
func (r *EventRecorder) Record(ctx context.Context, event *models.AccessEvent) {
	ctx = context.WithoutCancel(ctx)
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	for _, sink := range r.sinks {
		if err := sink.repo.Append(ctx, event); err != nil {
			r.logger.Warn("failed to record access event",
				zap.String("sink", sink.name),
				zap.String("event_id", event.ID),
				zap.String("short_code", event.ShortCode),
				zap.String("outcome", string(event.Outcome)),
				zap.Error(err),
			)
			if r.observer != nil {
				r.observer.ObserveRecordFailure(sink.name)
			}
		}
	}
}
