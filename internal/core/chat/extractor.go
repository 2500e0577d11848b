package chat

import (
	"context"
	"fmt"
	"strings"

	"sica-kitchen/internal/core/ai"
	"sica-kitchen/internal/pkg/common"

	"go.uber.org/zap"
)

// ExtractorService 食材萃取服務
type ExtractorService struct {
	ai Completer
}

// NewExtractorService 創建食材萃取服務
func NewExtractorService(completer Completer) *ExtractorService {
	return &ExtractorService{ai: completer}
}

// Extract 從自然語言輸入萃取食材名稱列表
// 名稱順序保持模型輸出順序，不重新排序；萃取不到任何食材視為失敗
func (s *ExtractorService) Extract(ctx context.Context, text string) ([]string, error) {
	resp, err := s.ai.Complete(ctx, IngredientExtractorPrompt, ai.UserMessage(text))
	if err != nil {
		return nil, fmt.Errorf("extract ingredients: %w", err)
	}

	var ingredients []string
	for _, part := range strings.Split(resp, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		ingredients = append(ingredients, name)
	}

	if len(ingredients) == 0 {
		return nil, fmt.Errorf("%w: %q", common.ErrEmptyExtraction, resp)
	}

	common.LogDebug("食材萃取完成",
		zap.Int("count", len(ingredients)),
		zap.Strings("ingredients", ingredients),
	)
	return ingredients, nil
}
