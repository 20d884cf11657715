package memstore

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/fsdevblog/geolink/internal/db"
	"github.com/fsdevblog/geolink/internal/db/memory"
	"github.com/fsdevblog/geolink/internal/models"
	"github.com/fsdevblog/geolink/internal/repositories"
)

const linkKeyPrefix = "link:"

// LinkRepo репозиторий ссылок в памяти. Ссылки лежат в хранилище по короткому коду,
// соответствие id -> код хранится рядом.
type LinkRepo struct {
	s      *db.MemoryStorage
	mu     sync.RWMutex
	codes  map[uint]string
	nextID uint
}

// NewLinkRepo создает новый экземпляр репозитория ссылок.
//
// Параметры:
//   - store: экземпляр хранилища в памяти
//
// Возвращает:
//   - *LinkRepo: инициализированный репозиторий
func NewLinkRepo(store *db.MemoryStorage) *LinkRepo {
	return &LinkRepo{
		s:     store,
		codes: make(map[uint]string),
	}
}

func linkKey(code string) string {
	return linkKeyPrefix + code
}

// Create сохраняет ссылку и присваивает ей ID, если он не задан.
func (l *LinkRepo) Create(ctx context.Context, link *models.Link) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	candidate := *link
	if candidate.ID == 0 {
		candidate.ID = l.nextID + 1
	}
	if _, taken := l.codes[candidate.ID]; taken {
		return fmt.Errorf("create link id %d: %w", candidate.ID, repositories.ErrDuplicateKey)
	}
	now := time.Now().UTC()
	if candidate.CreatedAt.IsZero() {
		candidate.CreatedAt = now
	}
	candidate.UpdatedAt = now

	if err := memory.Set(ctx, linkKey(candidate.ShortCode), &candidate, l.s.MStorage); err != nil {
		return fmt.Errorf("create link %s: %w", candidate.ShortCode, convertErrorType(err))
	}
	l.codes[candidate.ID] = candidate.ShortCode
	l.nextID = max(l.nextID, candidate.ID)
	*link = candidate
	return nil
}

func (l *LinkRepo) FindByShortCode(ctx context.Context, code string) (*models.Link, error) {
	link, err := memory.Get[models.Link](ctx, linkKey(code), l.s.MStorage)
	if err != nil {
		return nil, fmt.Errorf("find link by short code %s: %w", code, convertErrorType(err))
	}
	return link, nil
}

func (l *LinkRepo) FindByID(ctx context.Context, id uint) (*models.Link, error) {
	code, err := l.codeByID(id)
	if err != nil {
		return nil, err
	}
	return l.FindByShortCode(ctx, code)
}

// AtomicReserve увеличивает счетчик под блокировкой хранилища, проверка квоты и запись
// выполняются как одна операция.
func (l *LinkRepo) AtomicReserve(ctx context.Context, linkID uint) (repositories.ReserveResult, error) {
	code, err := l.codeByID(linkID)
	if err != nil {
		return repositories.ReserveExhausted, err
	}

	now := time.Now().UTC()
	reserved, err := memory.Update[models.Link](ctx, linkKey(code), l.s.MStorage, func(link *models.Link) bool {
		if link.MaxAccessCount != nil && link.AccessCount >= *link.MaxAccessCount {
			return false
		}
		link.AccessCount++
		link.UpdatedAt = now
		return true
	})
	if err != nil {
		return repositories.ReserveExhausted, fmt.Errorf("reserve link %d: %w", linkID, convertErrorType(err))
	}
	if !reserved {
		return repositories.ReserveExhausted, nil
	}
	return repositories.ReserveReserved, nil
}

// SetFlags меняет флаги удаления и бана.
func (l *LinkRepo) SetFlags(ctx context.Context, linkID uint, flags repositories.LinkFlags, now time.Time) error {
	code, err := l.codeByID(linkID)
	if err != nil {
		return err
	}
	_, err = memory.Update[models.Link](ctx, linkKey(code), l.s.MStorage, func(link *models.Link) bool {
		if flags.IsDeleted != nil {
			link.IsDeleted = *flags.IsDeleted
			link.DeletedAt = nil
			if link.IsDeleted {
				deletedAt := now
				link.DeletedAt = &deletedAt
			}
		}
		if flags.IsBanned != nil {
			link.IsBanned = *flags.IsBanned
		}
		link.UpdatedAt = now
		return true
	})
	if err != nil {
		return fmt.Errorf("set flags for link %d: %w", linkID, convertErrorType(err))
	}
	return nil
}

func (l *LinkRepo) codeByID(id uint) (string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	code, ok := l.codes[id]
	if !ok {
		return "", fmt.Errorf("link id %s: %w", strconv.FormatUint(uint64(id), 10), repositories.ErrNotFound)
	}
	return code, nil
}
