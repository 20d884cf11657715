package pg

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/fsdevblog/geolink/internal/models"
)

type EventRepo struct {
	conn   Querier
	logger *zap.Logger
}

func NewEventRepo(conn Querier, logger *zap.Logger) *EventRepo {
	return &EventRepo{
		conn:   conn,
		logger: logger.With(zap.String("module", "repository/pg/event")),
	}
}

func (e *EventRepo) Append(ctx context.Context, event *models.AccessEvent) error {
	const query = `INSERT INTO access_events (id, link_id, short_code, occurred_at, outcome,
latitude, longitude, distance_meters, user_agent, client_ip)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	var linkID *int64
	if event.LinkID != nil {
		id := int64(*event.LinkID)
		linkID = &id
	}
	_, err := e.conn.Exec(ctx, query,
		event.ID, linkID, event.ShortCode, event.OccurredAt, string(event.Outcome),
		event.Latitude, event.Longitude, event.DistanceMeters, event.UserAgent, event.ClientIP,
	)
	if err != nil {
		return fmt.Errorf("append access event %s: %w", event.ID, convertErrType(err))
	}
	return nil
}

// ListByShortCode последние события по короткому коду, от новых к старым. limit <= 0 без ограничения.
func (e *EventRepo) ListByShortCode(ctx context.Context, code string, limit int) ([]models.AccessEvent, error) {
	const query = `SELECT id::text, link_id, short_code, occurred_at, outcome, latitude, longitude,
distance_meters, user_agent, client_ip
FROM access_events WHERE short_code = $1 ORDER BY occurred_at DESC LIMIT NULLIF($2, 0)`

	if limit < 0 {
		limit = 0
	}
	rows, err := e.conn.Query(ctx, query, code, limit)
	if err != nil {
		return nil, fmt.Errorf("list access events for %s: %w", code, convertErrType(err))
	}
	events, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.AccessEvent, error) {
		var (
			ev      models.AccessEvent
			linkID  *int64
			outcome string
		)
		scanErr := row.Scan(&ev.ID, &linkID, &ev.ShortCode, &ev.OccurredAt, &outcome,
			&ev.Latitude, &ev.Longitude, &ev.DistanceMeters, &ev.UserAgent, &ev.ClientIP)
		if linkID != nil {
			id := uint(*linkID) //nolint:gosec
			ev.LinkID = &id
		}
		ev.Outcome = models.Outcome(outcome)
		return ev, scanErr //nolint:wrapcheck
	})
	if err != nil {
		return nil, fmt.Errorf("scan access events for %s: %w", code, convertErrType(err))
	}
	return events, nil
}
