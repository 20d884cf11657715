package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// MStorage потокобезопасное key/value хранилище. Значения хранятся в json, поэтому
// наружу всегда отдаются копии и изменить запись в обход хранилища нельзя.
type MStorage struct {
	data map[string][]byte
	m    sync.RWMutex
}

func NewMemStorage() *MStorage {
	return &MStorage{
		data: make(map[string][]byte),
	}
}

func (m *MStorage) Len() int {
	m.m.RLock()
	defer m.m.RUnlock()

	return len(m.data)
}

// SetOptions опции записи.
type SetOptions struct {
	overwrite bool
}

// WithOverwrite разрешает перезапись существующего ключа.
func WithOverwrite() func(*SetOptions) {
	return func(o *SetOptions) {
		o.overwrite = true
	}
}

func Get[T any](ctx context.Context, key string, m *MStorage) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err //nolint:wrapcheck
	}
	m.m.RLock()
	defer m.m.RUnlock()

	val, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return decode[T](key, val)
}

// Set Сохраняет новую пару ключ/значение. Без WithOverwrite ключ обязан быть уникальным,
// иначе вернется ошибка ErrDuplicateKey.
func Set[T any](ctx context.Context, key string, val *T, m *MStorage, opts ...func(*SetOptions)) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}
	var options SetOptions
	for _, opt := range opts {
		opt(&options)
	}

	bytes, err := json.Marshal(val)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal json for object `%+v`", val)
	}

	m.m.Lock()
	defer m.m.Unlock()

	if _, exists := m.data[key]; exists && !options.overwrite {
		return ErrDuplicateKey
	}
	m.data[key] = bytes
	return nil
}

// Update атомарно читает запись, передает ее в fn и сохраняет результат, если fn вернула true.
// На время вызова fn хранилище заблокировано на запись, поэтому fn должна быть быстрой.
//
// Параметры:
//   - ctx: контекст выполнения
//   - key: ключ записи
//   - m: хранилище
//   - fn: функция изменения, возвращает нужно ли сохранять запись
//
// Возвращает:
//   - bool: была ли запись сохранена
//   - error: ErrNotFound или ошибка сериализации
func Update[T any](ctx context.Context, key string, m *MStorage, fn func(val *T) bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err //nolint:wrapcheck
	}
	m.m.Lock()
	defer m.m.Unlock()

	raw, ok := m.data[key]
	if !ok {
		return false, ErrNotFound
	}
	val, err := decode[T](key, raw)
	if err != nil {
		return false, err
	}
	if !fn(val) {
		return false, nil
	}
	bytes, err := json.Marshal(val)
	if err != nil {
		return false, errors.Wrapf(err, "failed to marshal json for object `%+v`", val)
	}
	m.data[key] = bytes
	return true, nil
}

// FilterAll возвращает записи с ключами на prefix, для которых fn вернула true.
func FilterAll[T any](ctx context.Context, m *MStorage, prefix string, fn func(val T) bool) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err //nolint:wrapcheck
	}
	m.m.RLock()
	defer m.m.RUnlock()

	var result = make([]T, 0)
	for key, bytes := range m.data {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		val, err := decode[T](key, bytes)
		if err != nil {
			return nil, err
		}
		if fn(*val) {
			result = append(result, *val)
		}
	}
	return result, nil
}

func decode[T any](key string, raw []byte) (*T, error) {
	var result T
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal json by key `%s`", key)
	}
	return &result, nil
}
