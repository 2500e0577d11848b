package openrouter

import (
	"context"
	"fmt"
	"net/http"

	"sica-kitchen/internal/core/ai"
	"sica-kitchen/internal/infrastructure/config"
	"sica-kitchen/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const baseURL = "https://openrouter.ai/api/v1"

// Client OpenRouter 聊天補全客戶端
type Client struct {
	config *config.OpenRouterConfig
	client *resty.Client
}

// NewClient 創建 OpenRouter 客戶端
func NewClient(cfg *config.OpenRouterConfig) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey)).
		SetHeader("HTTP-Referer", "https://sica-kitchen.com").
		SetHeader("X-Title", "SiCa Kitchen")

	return &Client{
		config: cfg,
		client: client,
	}
}

// Complete 以 system prompt 加上對話消息取得補全
// 成功但內容為空視為失敗（ErrEmptyAIResponse），與網路錯誤分開
func (c *Client) Complete(ctx context.Context, systemPrompt string, messages []ai.Message) (string, error) {
	reqMessages := make([]ai.Message, 0, len(messages)+1)
	if systemPrompt != "" {
		reqMessages = append(reqMessages, ai.Message{Role: "system", Content: systemPrompt})
	}
	reqMessages = append(reqMessages, messages...)

	req := map[string]interface{}{
		"model":      c.config.Model,
		"messages":   reqMessages,
		"max_tokens": c.config.MaxTokens,
	}

	common.LogDebug("Sending request to OpenRouter",
		zap.String("model", c.config.Model),
		zap.Int("messages", len(reqMessages)),
	)

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")

	if err != nil {
		return "", fmt.Errorf("failed to send request to OpenRouter: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		common.LogError("OpenRouter returned error status",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("model", c.config.Model),
		)
		return "", fmt.Errorf("OpenRouter API returned status %d: %s", resp.StatusCode(), resp.String())
	}

	// 解析回應
	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Usage ai.Usage `json:"usage"`
	}

	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse OpenRouter response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", common.ErrEmptyAIResponse)
	}

	content := result.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("%w: empty content", common.ErrEmptyAIResponse)
	}

	common.LogDebug("OpenRouter 回應成功",
		zap.String("model", c.config.Model),
		zap.Int("content_length", len(content)),
		zap.Int("total_tokens", result.Usage.TotalTokens),
	)

	return content, nil
}
