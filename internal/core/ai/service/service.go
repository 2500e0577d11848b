package service

import (
	"context"
	"time"

	"sica-kitchen/internal/core/ai"
	"sica-kitchen/internal/core/ai/cache"
	"sica-kitchen/internal/core/ai/openrouter"
	"sica-kitchen/internal/infrastructure/config"
	"sica-kitchen/internal/pkg/common"
)

// Service AI 服務
// 統一對話補全入口，前面掛一層以 prompt 為鍵的回應快取
type Service struct {
	config       *config.Config
	client       *openrouter.Client
	cacheManager *cache.Manager
}

// NewService 創建 AI 服務
func NewService(cfg *config.Config, cacheManager *cache.Manager) *Service {
	return &Service{
		config:       cfg,
		client:       openrouter.NewClient(&cfg.OpenRouter),
		cacheManager: cacheManager,
	}
}

// Complete 統一對外方法
// 空回應由客戶端回報 ErrEmptyAIResponse，這裡不再吞掉
func (s *Service) Complete(ctx context.Context, systemPrompt string, messages []ai.Message) (string, error) {
	payload, err := common.ToJSON(messages)
	if err != nil {
		return "", err
	}

	// 檢查緩存
	if s.config.Cache.Enabled && s.cacheManager != nil {
		if val, err := s.cacheManager.Get(ctx, systemPrompt, payload); err == nil && val != "" {
			return val, nil
		}
	}

	start := time.Now()
	content, err := s.client.Complete(ctx, systemPrompt, messages)
	common.LogAICall(time.Since(start), err, "")
	if err != nil {
		return "", err
	}

	if s.config.Cache.Enabled && s.cacheManager != nil {
		_ = s.cacheManager.Set(ctx, systemPrompt, payload, content)
	}

	return content, nil
}
