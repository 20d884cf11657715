package sql

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fsdevblog/geolink/internal/models"
)

// EventRepo журнал событий доступа. Записи только добавляются.
type EventRepo struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewEventRepo(db *gorm.DB, logger *zap.Logger) *EventRepo {
	return &EventRepo{
		db:     db,
		logger: logger.With(zap.String("module", "repository/sql/event")),
	}
}

func (e *EventRepo) Append(ctx context.Context, event *models.AccessEvent) error {
	if err := e.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("append access event %s: %w", event.ID, convertErrorType(err))
	}
	return nil
}

// ListByShortCode последние события по короткому коду, от новых к старым.
func (e *EventRepo) ListByShortCode(ctx context.Context, code string, limit int) ([]models.AccessEvent, error) {
	var events []models.AccessEvent
	err := e.db.WithContext(ctx).
		Where("short_code = ?", code).
		Order("occurred_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("list access events for %s: %w", code, convertErrorType(err))
	}
	return events, nil
}
