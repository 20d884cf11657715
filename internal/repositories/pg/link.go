package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/fsdevblog/geolink/internal/models"
	"github.com/fsdevblog/geolink/internal/repositories"
)

// Querier подмножество pgxpool.Pool, нужное репозиториям.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

type LinkRepo struct {
	conn   Querier
	logger *zap.Logger
}

func NewLinkRepo(conn Querier, logger *zap.Logger) *LinkRepo {
	return &LinkRepo{
		conn:   conn,
		logger: logger.With(zap.String("module", "repository/pg/link")),
	}
}

const linkColumns = `id, created_at, updated_at, short_code, target_url, title, center_lat, center_lng,
radius_meters, location_name, contact, expires_at, max_access_count, access_count,
is_deleted, deleted_at, is_banned`

func scanLink(row pgx.Row) (*models.Link, error) {
	var (
		link models.Link
		id   int64
	)
	err := row.Scan(
		&id, &link.CreatedAt, &link.UpdatedAt, &link.ShortCode, &link.TargetURL, &link.Title,
		&link.CenterLat, &link.CenterLng, &link.RadiusMeters, &link.LocationName, &link.Contact,
		&link.ExpiresAt, &link.MaxAccessCount, &link.AccessCount,
		&link.IsDeleted, &link.DeletedAt, &link.IsBanned,
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	link.ID = uint(id) //nolint:gosec
	return &link, nil
}

func (l *LinkRepo) Create(ctx context.Context, link *models.Link) error {
	const query = `INSERT INTO links (short_code, target_url, title, center_lat, center_lng, radius_meters,
location_name, contact, expires_at, max_access_count)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id, created_at, updated_at`

	var id int64
	err := l.conn.QueryRow(ctx, query,
		link.ShortCode, link.TargetURL, link.Title, link.CenterLat, link.CenterLng, link.RadiusMeters,
		link.LocationName, link.Contact, link.ExpiresAt, link.MaxAccessCount,
	).Scan(&id, &link.CreatedAt, &link.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create link %s: %w", link.ShortCode, convertErrType(err))
	}
	link.ID = uint(id) //nolint:gosec
	return nil
}

func (l *LinkRepo) FindByShortCode(ctx context.Context, code string) (*models.Link, error) {
	link, err := scanLink(l.conn.QueryRow(ctx, `SELECT `+linkColumns+` FROM links WHERE short_code = $1`, code))
	if err != nil {
		return nil, fmt.Errorf("find link by short code %s: %w", code, convertErrType(err))
	}
	return link, nil
}

func (l *LinkRepo) FindByID(ctx context.Context, id uint) (*models.Link, error) {
	link, err := scanLink(l.conn.QueryRow(ctx, `SELECT `+linkColumns+` FROM links WHERE id = $1`, int64(id)))
	if err != nil {
		return nil, fmt.Errorf("find link by id %d: %w", id, convertErrType(err))
	}
	return link, nil
}

// AtomicReserve один условный UPDATE: строка меняется только пока квота не исчерпана.
func (l *LinkRepo) AtomicReserve(ctx context.Context, linkID uint) (repositories.ReserveResult, error) {
	const query = `UPDATE links SET access_count = access_count + 1, updated_at = now()
WHERE id = $1 AND (max_access_count IS NULL OR access_count < max_access_count)`

	tag, err := l.conn.Exec(ctx, query, int64(linkID))
	if err != nil {
		l.logger.Error("reserve access failed", zap.Uint("linkID", linkID), zap.Error(err))
		return repositories.ReserveExhausted, fmt.Errorf("reserve link %d: %w", linkID, convertErrType(err))
	}
	if tag.RowsAffected() == 0 {
		return repositories.ReserveExhausted, nil
	}
	return repositories.ReserveReserved, nil
}

func (l *LinkRepo) SetFlags(ctx context.Context, linkID uint, flags repositories.LinkFlags, now time.Time) error {
	const query = `UPDATE links SET
    is_deleted = COALESCE($2, is_deleted),
    deleted_at = CASE WHEN $2 IS NULL THEN deleted_at WHEN $2 THEN $4::timestamptz ELSE NULL END,
    is_banned = COALESCE($3, is_banned),
    updated_at = $4
WHERE id = $1`

	tag, err := l.conn.Exec(ctx, query, int64(linkID), flags.IsDeleted, flags.IsBanned, now)
	if err != nil {
		return fmt.Errorf("set flags for link %d: %w", linkID, convertErrType(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set flags for link %d: %w", linkID, repositories.ErrNotFound)
	}
	return nil
}

func (l *LinkRepo) Ping(ctx context.Context) error {
	return l.conn.Ping(ctx) //nolint:wrapcheck
}
