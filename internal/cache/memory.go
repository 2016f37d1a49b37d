package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryBlacklist - TokenBlacklist в памяти процесса, для тестов
// и запуска без Redis
type MemoryBlacklist struct {
	mu     sync.Mutex
	tokens map[string]time.Time
}

func NewMemoryBlacklist() *MemoryBlacklist {
	return &MemoryBlacklist{tokens: make(map[string]time.Time)}
}

func (b *MemoryBlacklist) Add(_ context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens[token] = time.Now().Add(ttl)
	return nil
}

func (b *MemoryBlacklist) Contains(_ context.Context, token string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	exp, ok := b.tokens[token]
	if !ok {
		return false, nil
	}
	if time.Now().After(exp) {
		delete(b.tokens, token)
		return false, nil
	}
	return true, nil
}
