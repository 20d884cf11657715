package services

import "errors"

var (
	ErrUnknown        = errors.New("[service]: unknown error")
	ErrRecordNotFound = errors.New("[service]: record not found")
	ErrDuplicateKey   = errors.New("[service]: duplicate key")
	// ErrInvalidCoordinate координата вне допустимого диапазона. Ошибка вызывающей стороны.
	ErrInvalidCoordinate = errors.New("[service]: invalid coordinate")
	// ErrPersistenceUnavailable хранилище недоступно или не ответило вовремя.
	ErrPersistenceUnavailable = errors.New("[service]: persistence unavailable")
	// ErrInvalidLink параметры создаваемой ссылки некорректны.
	ErrInvalidLink = errors.New("[service]: invalid link")
	// ErrStatsDisabled счетчики исходов не подключены.
	ErrStatsDisabled = errors.New("[service]: stats are not configured")
)
