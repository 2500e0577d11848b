package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"sica-kitchen/internal/infrastructure/config"
	"sica-kitchen/internal/pkg/common"

	"go.uber.org/zap"
)

// Store 快取後端介面，記憶體與 redis 各有一個實作
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Manager 快取管理器，以 prompt 雜湊為鍵快取模型回應
type Manager struct {
	config *config.Config
	store  Store
}

// NewManager 創建快取管理器，後端由 cache.backend 設定決定
func NewManager(cfg *config.Config) (*Manager, error) {
	if !cfg.Cache.Enabled {
		common.LogInfo("Cache disabled")
		return nil, nil
	}

	var store Store
	var err error
	switch cfg.Cache.Backend {
	case "redis":
		store, err = newRedisStore(&cfg.Cache)
	default:
		store = newMemoryStore(&cfg.Cache)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache store: %w", err)
	}

	common.LogInfo("快取管理員已初始化",
		zap.String("後端", cfg.Cache.Backend),
		zap.Int("最大容量", cfg.Cache.MaxSize),
		zap.Duration("存活時間", cfg.Cache.TTL),
	)

	return &Manager{
		config: cfg,
		store:  store,
	}, nil
}

// Get 獲取緩存值
func (m *Manager) Get(ctx context.Context, systemPrompt, payload string) (string, error) {
	if m == nil {
		return "", common.ErrCacheDisabled
	}

	key := m.generateKey(systemPrompt, payload)
	value, err := m.store.Get(ctx, key)
	if err != nil {
		common.LogCacheMiss("ai_response", key)
		return "", err
	}

	common.LogCacheHit("ai_response", key)
	return value, nil
}

// Set 設置緩存值
func (m *Manager) Set(ctx context.Context, systemPrompt, payload, value string) error {
	if m == nil {
		return nil
	}

	key := m.generateKey(systemPrompt, payload)
	return m.store.Set(ctx, key, value)
}

// Close 關閉快取管理器
func (m *Manager) Close() error {
	if m == nil {
		return nil
	}
	return m.store.Close()
}

// generateKey 生成緩存鍵
func (m *Manager) generateKey(systemPrompt, payload string) string {
	return fmt.Sprintf("ai:response:%s:%s", hashString(systemPrompt), hashString(payload))
}

// hashString 計算字符串的 SHA-256 哈希值
func hashString(s string) string {
	hash := sha256.Sum256([]byte(s))
	return hex.EncodeToString(hash[:])
}
