package cache

import (
	"context"
	"sync"
	"time"

	"sica-kitchen/internal/infrastructure/config"
	"sica-kitchen/internal/pkg/common"

	"go.uber.org/zap"
)

// memoryStore 行程內快取後端
type memoryStore struct {
	cfg   *config.CacheConfig
	mu    sync.RWMutex
	store map[string]cacheEntry
	stats cacheStats
	done  chan struct{}
}

// cacheEntry 緩存條目
type cacheEntry struct {
	value       string
	expiresAt   time.Time
	createdAt   time.Time
	lastAccess  time.Time
	accessCount int
}

// cacheStats 緩存統計
type cacheStats struct {
	hits      int64
	misses    int64
	evictions int64
}

func newMemoryStore(cfg *config.CacheConfig) *memoryStore {
	s := &memoryStore{
		cfg:   cfg,
		store: make(map[string]cacheEntry),
		done:  make(chan struct{}),
	}

	// 啟動清理過期緩存的協程
	go s.startCleanup()

	return s
}

// Get 獲取緩存值
func (s *memoryStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.store[key]
	if !exists {
		s.stats.misses++
		return "", common.ErrCacheMiss
	}

	// 檢查是否過期
	if time.Now().After(entry.expiresAt) {
		delete(s.store, key)
		s.stats.evictions++
		s.stats.misses++
		return "", common.ErrCacheMiss
	}

	// 更新訪問統計
	entry.lastAccess = time.Now()
	entry.accessCount++
	s.store[key] = entry
	s.stats.hits++

	return entry.value, nil
}

// Set 設置緩存值
func (s *memoryStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// 檢查緩存大小
	if len(s.store) >= s.cfg.MaxSize {
		// 先清理過期項目，仍然超過就執行 LRU 清理
		if evicted := s.cleanupLocked(); evicted > 0 {
			common.LogDebug("快取清理執行", zap.Int("清理數量", evicted))
		}
		if len(s.store) >= s.cfg.MaxSize {
			s.evictLRULocked()
		}
		if len(s.store) >= s.cfg.MaxSize {
			common.LogWarn("快取已滿", zap.Int("目前容量", len(s.store)))
			return common.ErrCacheFull
		}
	}

	now := time.Now()
	s.store[key] = cacheEntry{
		value:      value,
		expiresAt:  now.Add(s.cfg.TTL),
		createdAt:  now,
		lastAccess: now,
	}

	return nil
}

// Close 關閉快取並停止清理協程
func (s *memoryStore) Close() error {
	close(s.done)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.store = make(map[string]cacheEntry)

	common.LogInfo("快取已關閉",
		zap.Int64("命中次數", s.stats.hits),
		zap.Int64("未命中次數", s.stats.misses),
		zap.Int64("淘汰次數", s.stats.evictions),
	)
	return nil
}

// startCleanup 啟動清理過期緩存的協程
func (s *memoryStore) startCleanup() {
	ticker := time.NewTicker(s.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			s.cleanupLocked()
			s.mu.Unlock()
		case <-s.done:
			return
		}
	}
}

// cleanupLocked 清理過期的緩存，呼叫端需持有鎖
func (s *memoryStore) cleanupLocked() int {
	now := time.Now()
	count := 0

	for key, entry := range s.store {
		if now.After(entry.expiresAt) {
			delete(s.store, key)
			count++
			s.stats.evictions++
		}
	}

	return count
}

// evictLRULocked 淘汰最少訪問的條目，呼叫端需持有鎖
func (s *memoryStore) evictLRULocked() {
	var oldestKey string
	var oldestAccess time.Time
	var lowestAccessCount int

	for key, entry := range s.store {
		if oldestKey == "" ||
			entry.accessCount < lowestAccessCount ||
			(entry.accessCount == lowestAccessCount && entry.lastAccess.Before(oldestAccess)) {
			oldestKey = key
			oldestAccess = entry.lastAccess
			lowestAccessCount = entry.accessCount
		}
	}

	if oldestKey != "" {
		delete(s.store, oldestKey)
		s.stats.evictions++
		common.LogDebug("快取已淘汰(LRU)", zap.String("鍵", oldestKey))
	}
}
