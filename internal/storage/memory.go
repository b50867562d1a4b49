package storage

import (
	"fmt"
	"sync"

	"basemint-backend/internal/generator"
)

// MemoryStorage 有界内存缓存，容量满后按写入顺序淘汰最早的条目
type MemoryStorage struct {
	results  map[int64]*generator.GeneratedNFT
	order    []int64
	capacity int
	closed   bool
	mu       sync.RWMutex
}

func NewMemoryStorage(capacity int) (*MemoryStorage, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive, got %d", ErrStorageInit, capacity)
	}
	return &MemoryStorage{
		results:  make(map[int64]*generator.GeneratedNFT, capacity),
		order:    make([]int64, 0, capacity),
		capacity: capacity,
	}, nil
}

func (m *MemoryStorage) Get(tokenID int64) (*generator.GeneratedNFT, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}
	nft, exists := m.results[tokenID]
	if !exists {
		return nil, ErrNotFound
	}
	return nft, nil
}

func (m *MemoryStorage) Put(nft *generator.GeneratedNFT) error {
	if nft == nil || nft.TokenID < 1 || nft.Metadata == nil {
		return ErrInvalidData
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if _, exists := m.results[nft.TokenID]; exists {
		m.results[nft.TokenID] = nft
		return nil
	}

	if len(m.order) >= m.capacity {
		oldest := m.order[0]
		m.order = m.order[1:]
		delete(m.results, oldest)
	}
	m.order = append(m.order, nft.TokenID)
	m.results[nft.TokenID] = nft
	return nil
}

func (m *MemoryStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.results)
}

func (m *MemoryStorage) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.results = nil
	m.order = nil
	return nil
}
