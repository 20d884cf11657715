package services

import (
	"context"
	"time"

	"github.com/fsdevblog/geolink/internal/models"
	"github.com/fsdevblog/geolink/internal/repositories"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock.go -package=mocks

// LinkRepository описывает репозиторий ссылок, нужный для проверки доступа.
type LinkRepository interface {
	// FindByShortCode находит ссылку по короткому коду. Если ссылки нет, возвращает repositories.ErrNotFound.
	FindByShortCode(ctx context.Context, code string) (*models.Link, error)
	// AtomicReserve одним условным обновлением резервирует один доступ по квоте ссылки.
	AtomicReserve(ctx context.Context, linkID uint) (repositories.ReserveResult, error)
}

// LinkStore репозиторий ссылок для управления ими.
type LinkStore interface {
	LinkRepository
	Create(ctx context.Context, link *models.Link) error
	FindByID(ctx context.Context, id uint) (*models.Link, error)
	// SetFlags меняет флаги удаления и бана. nil поля не меняются.
	SetFlags(ctx context.Context, linkID uint, flags repositories.LinkFlags, now time.Time) error
}

// EventRepository приемник событий доступа. Записи только добавляются.
type EventRepository interface {
	Append(ctx context.Context, event *models.AccessEvent) error
}

// EventReader читает журнал событий доступа по ссылке.
type EventReader interface {
	ListByShortCode(ctx context.Context, code string, limit int) ([]models.AccessEvent, error)
}

// StatsReader читает накопленные счетчики исходов.
type StatsReader interface {
	LinkCounters(ctx context.Context, code string) (map[models.Outcome]int64, error)
	Totals(ctx context.Context) (map[models.Outcome]int64, error)
}

// AccessRecorder записывает событие доступа. Ошибок не возвращает.
type AccessRecorder interface {
	Record(ctx context.Context, event *models.AccessEvent)
}

// Observer получает наблюдения о работе проверок, реализуется метриками.
type Observer interface {
	ObserveVerification(outcome models.Outcome, elapsed time.Duration)
	ObserveRecordFailure(sink string)
}
