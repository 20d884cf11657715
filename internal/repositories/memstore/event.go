package memstore

import (
	"context"
	"fmt"
	"slices"

	"github.com/fsdevblog/geolink/internal/db"
	"github.com/fsdevblog/geolink/internal/db/memory"
	"github.com/fsdevblog/geolink/internal/models"
)

const eventKeyPrefix = "event:"

// EventRepo журнал событий доступа в памяти.
type EventRepo struct {
	s *db.MemoryStorage
}

func NewEventRepo(store *db.MemoryStorage) *EventRepo {
	return &EventRepo{s: store}
}

func (e *EventRepo) Append(ctx context.Context, event *models.AccessEvent) error {
	if err := memory.Set(ctx, eventKeyPrefix+event.ID, event, e.s.MStorage); err != nil {
		return fmt.Errorf("append access event %s: %w", event.ID, convertErrorType(err))
	}
	return nil
}

// ListByShortCode последние события по короткому коду, от новых к старым. limit <= 0 без ограничения.
func (e *EventRepo) ListByShortCode(ctx context.Context, code string, limit int) ([]models.AccessEvent, error) {
	events, err := memory.FilterAll[models.AccessEvent](ctx, e.s.MStorage, eventKeyPrefix,
		func(ev models.AccessEvent) bool {
			return ev.ShortCode == code
		})
	if err != nil {
		return nil, fmt.Errorf("list access events for %s: %w", code, convertErrorType(err))
	}
	slices.SortFunc(events, func(a, b models.AccessEvent) int {
		return b.OccurredAt.Compare(a.OccurredAt)
	})
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}
