// Package sql предоставляет реализацию репозиториев ссылок и событий доступа поверх gorm.
//
// Все методы преобразуют ошибки gorm в общие ошибки уровня репозитория
// с помощью convertErrorType:
//   - gorm.ErrDuplicatedKey -> repositories.ErrDuplicateKey
//   - gorm.ErrRecordNotFound -> repositories.ErrNotFound
//   - истекший или отмененный контекст -> repositories.ErrUnavailable
//   - другие ошибки -> repositories.ErrUnknown
package sql
