package services

import (
	"context"
	"fmt"
	"time"

	"github.com/fsdevblog/geolink/internal/repositories"
)

// QuotaLedger учет квоты доступов. Собственного состояния не держит, счетчик живет в хранилище.
type QuotaLedger struct {
	repo    LinkRepository
	timeout time.Duration
}

// NewQuotaLedger создает учет квоты поверх репозитория ссылок.
//
// Параметры:
//   - repo: репозиторий с атомарным резервированием
//   - timeout: ограничение на обращение к хранилищу, 0 без ограничения
func NewQuotaLedger(repo LinkRepository, timeout time.Duration) *QuotaLedger {
	return &QuotaLedger{repo: repo, timeout: timeout}
}

// TryReserve резервирует один доступ по ссылке.
// Любая ошибка хранилища, включая истечение времени, превращается в ErrPersistenceUnavailable.
//
// Возвращает:
//   - repositories.ReserveResult: ReserveReserved или ReserveExhausted
//   - error: ErrPersistenceUnavailable
func (q *QuotaLedger) TryReserve(ctx context.Context, linkID uint) (repositories.ReserveResult, error) {
	if q.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.timeout)
		defer cancel()
	}

	res, err := q.repo.AtomicReserve(ctx, linkID)
	if err != nil {
		return repositories.ReserveExhausted, fmt.Errorf("%w: reserve link %d: %s", ErrPersistenceUnavailable, linkID, err.Error())
	}
	return res, nil
}
