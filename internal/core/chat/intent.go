package chat

import (
	"context"
	"fmt"
	"strings"

	"sica-kitchen/internal/core/ai"
	"sica-kitchen/internal/pkg/common"

	"go.uber.org/zap"
)

// Completer 對話補全介面，由 ai/service 實作
type Completer interface {
	Complete(ctx context.Context, systemPrompt string, messages []ai.Message) (string, error)
}

// Intent 使用者意圖
type Intent string

const (
	IntentIngredients  Intent = "ingredients"
	IntentRecipeSearch Intent = "recipe_search"
	IntentOther        Intent = "other"
)

// IntentService 意圖偵測服務
type IntentService struct {
	ai Completer
}

// NewIntentService 創建意圖偵測服務
func NewIntentService(completer Completer) *IntentService {
	return &IntentService{ai: completer}
}

// Classify 將使用者輸入分類為單一意圖標籤
// 底層呼叫失敗不在此層補救，包裝成 ErrClassificationFailed 往上傳
func (s *IntentService) Classify(ctx context.Context, text string) (Intent, error) {
	resp, err := s.ai.Complete(ctx, IntentionDetectorPrompt, ai.UserMessage(text))
	if err != nil {
		return "", fmt.Errorf("%w: %s", common.ErrClassificationFailed, err)
	}

	label := normalizeLabel(resp)

	switch Intent(label) {
	case IntentIngredients, IntentRecipeSearch, IntentOther:
		common.LogDebug("意圖偵測完成", zap.String("intent", label))
		return Intent(label), nil
	default:
		// 模型偏離封閉標籤集時一律走一般對話路徑
		common.LogWarn("意圖標籤不在預期集合內，視為 other",
			zap.String("label", label),
		)
		return IntentOther, nil
	}
}

// normalizeLabel 轉小寫並剝除包圍的引號與空白
func normalizeLabel(raw string) string {
	label := strings.ToLower(strings.TrimSpace(raw))
	label = strings.Trim(label, "\"'`“”‘’ \t\r\n")
	return strings.TrimSpace(label)
}
