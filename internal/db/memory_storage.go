package db

import (
	"context"

	"github.com/fsdevblog/geolink/internal/db/memory"
)

type MemoryStorage struct {
	*memory.MStorage
}

func NewMemStorage() *MemoryStorage {
	return &MemoryStorage{
		MStorage: memory.NewMemStorage(),
	}
}

// Ping in-memory хранилище доступно всегда.
func (m *MemoryStorage) Ping(_ context.Context) error {
	return nil
}
