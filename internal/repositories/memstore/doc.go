// Package memstore предоставляет реализацию репозиториев ссылок и событий для in-memory хранилища.
//
// Все методы репозитория преобразуют внутренние ошибки хранилища в общие ошибки уровня репозитория
// с помощью convertErrorType:
//   - memory.ErrDuplicateKey -> repositories.ErrDuplicateKey
//   - memory.ErrNotFound -> repositories.ErrNotFound
//   - истекший или отмененный контекст -> repositories.ErrUnavailable
//   - другие ошибки -> repositories.ErrUnknown
//
// Хранилище живет в памяти процесса и подходит только для одного экземпляра сервиса.
package memstore
