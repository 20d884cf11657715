// Package pg реализация репозиториев ссылок и событий доступа для PostgreSQL через pgxpool.
//
// Ошибки pgx преобразуются в ошибки уровня репозитория:
//   - pgx.ErrNoRows -> repositories.ErrNotFound
//   - unique_violation (23505) -> repositories.ErrDuplicateKey
//   - ошибки соединения и истекший контекст -> repositories.ErrUnavailable
//   - другие ошибки -> repositories.ErrUnknown
package pg
