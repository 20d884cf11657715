package repositories

import "errors"

var (
	ErrNotFound     = errors.New("[repository]: record not found")
	ErrDuplicateKey = errors.New("[repository]: duplicate key")
	// ErrUnavailable хранилище недоступно или не ответило вовремя.
	ErrUnavailable = errors.New("[repository]: storage unavailable")
	ErrUnknown     = errors.New("[repository]: unknown error")
)
