package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPostgresConnection создает новый пул подключений к PostgreSQL.
//
// Параметры:
//   - ctx: контекст выполнения
//   - dsn: строка подключения к базе данных (Data Source Name)
//
// Возвращает:
//   - *pgxpool.Pool: пул подключений к PostgreSQL
//   - error: ошибка создания подключения
func NewPostgresConnection(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolConfig, confErr := pgxpool.ParseConfig(dsn)
	if confErr != nil {
		return nil, fmt.Errorf("failed to parse config: %w", confErr)
	}
	pool, poolErr := pgxpool.NewWithConfig(ctx, poolConfig)
	if poolErr != nil {
		return nil, fmt.Errorf("failed to create pool: %w", poolErr)
	}
	return pool, nil
}

// Схема создается прямо при старте, полноценные миграции живут вне сервиса.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS links (
    id BIGSERIAL PRIMARY KEY,
    created_at timestamp with time zone NOT NULL DEFAULT now(),
    updated_at timestamp with time zone NOT NULL DEFAULT now(),
    short_code VARCHAR(50) NOT NULL,
    target_url VARCHAR(500) NOT NULL,
    title VARCHAR(100),
    center_lat DOUBLE PRECISION NOT NULL,
    center_lng DOUBLE PRECISION NOT NULL,
    radius_meters DOUBLE PRECISION NOT NULL CHECK (radius_meters > 0),
    location_name VARCHAR(255),
    contact VARCHAR(100),
    expires_at timestamp with time zone,
    max_access_count BIGINT CHECK (max_access_count >= 0),
    access_count BIGINT NOT NULL DEFAULT 0 CHECK (access_count >= 0),
    is_deleted BOOLEAN NOT NULL DEFAULT false,
    deleted_at timestamp with time zone,
    is_banned BOOLEAN NOT NULL DEFAULT false
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_links_short_code ON links (short_code);

CREATE TABLE IF NOT EXISTS access_events (
    id UUID PRIMARY KEY,
    link_id BIGINT REFERENCES links (id),
    short_code VARCHAR(50) NOT NULL,
    occurred_at timestamp with time zone NOT NULL,
    outcome VARCHAR(32) NOT NULL,
    latitude DOUBLE PRECISION NOT NULL,
    longitude DOUBLE PRECISION NOT NULL,
    distance_meters DOUBLE PRECISION,
    user_agent TEXT NOT NULL DEFAULT '',
    client_ip VARCHAR(45) NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_access_events_link_id_occurred_at ON access_events (link_id, occurred_at);
`

func simpleMigrateSchema(ctx context.Context, conn *pgxpool.Pool) error {
	_, err := conn.Exec(ctx, schemaSQL)
	return err //nolint:wrapcheck
}
