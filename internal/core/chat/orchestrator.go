package chat

import (
	"context"
	"sync"

	"sica-kitchen/internal/core/ai"
	"sica-kitchen/internal/core/pricing"
	"sica-kitchen/internal/core/recipe"
	"sica-kitchen/internal/pkg/common"

	"go.uber.org/zap"
)

// RecipeFinder 食譜搜尋介面，由 core/recipe.Finder 實作
type RecipeFinder interface {
	FindRecipe(ctx context.Context, ingredients []string) (*common.Recipe, error)
}

// PriceFetcher 查價介面，由 core/pricing.Fetcher 實作
type PriceFetcher interface {
	FetchPrices(ctx context.Context, ingredients []common.Ingredient) ([]pricing.Quote, error)
}

// ConversationState 單一會話的累積狀態
type ConversationState struct {
	AvailableIngredients []string
	CurrentRecipe        *common.Recipe
	CurrentMissing       []common.Ingredient
}

// Orchestrator 單一會話的對話流程協調器
// 每輪依序執行 意圖→萃取→搜尋→缺料→查價→摘要，任一階段失敗
// 整輪失敗且不動會話狀態；狀態只在整輪成功後一次寫入
type Orchestrator struct {
	mu         sync.Mutex
	sessionID  string
	intent     *IntentService
	extractor  *ExtractorService
	finder     RecipeFinder
	pricer     PriceFetcher
	summarizer *Summarizer
	ai         Completer
	state      ConversationState
}

// NewOrchestrator 創建對話協調器
func NewOrchestrator(sessionID string, intent *IntentService, extractor *ExtractorService, finder RecipeFinder, pricer PriceFetcher, summarizer *Summarizer, completer Completer) *Orchestrator {
	return &Orchestrator{
		sessionID:  sessionID,
		intent:     intent,
		extractor:  extractor,
		finder:     finder,
		pricer:     pricer,
		summarizer: summarizer,
		ai:         completer,
	}
}

// State 回傳目前會話狀態的副本
func (o *Orchestrator) State() ConversationState {
	o.mu.Lock()
	defer o.mu.Unlock()

	state := o.state
	state.AvailableIngredients = append([]string(nil), o.state.AvailableIngredients...)
	state.CurrentMissing = append([]common.Ingredient(nil), o.state.CurrentMissing...)
	return state
}

// ProcessMessage 處理一則使用者訊息並回傳結構化回覆
// 同一會話的訊息一律序列化處理
func (o *Orchestrator) ProcessMessage(ctx context.Context, text string) (*common.ChatbotResponse, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	common.LogStage("intent", o.sessionID)
	intent, err := o.intent.Classify(ctx, text)
	if err != nil {
		return nil, err
	}

	switch intent {
	case IntentIngredients, IntentRecipeSearch:
		return o.runRecipePipeline(ctx, text)
	default:
		return o.runGeneralPath(ctx, text)
	}
}

// runRecipePipeline 食譜流程：萃取→搜尋→缺料→查價→摘要
func (o *Orchestrator) runRecipePipeline(ctx context.Context, text string) (*common.ChatbotResponse, error) {
	common.LogStage("extract", o.sessionID)
	ingredients, err := o.extractor.Extract(ctx, text)
	if err != nil {
		return nil, err
	}

	common.LogStage("find_recipe", o.sessionID, zap.Strings("ingredients", ingredients))
	found, err := o.finder.FindRecipe(ctx, ingredients)
	if err != nil {
		return nil, err
	}

	common.LogStage("resolve_missing", o.sessionID, zap.Int("recipe_id", found.ID))
	missing := recipe.ResolveMissing(found, ingredients)

	common.LogStage("fetch_prices", o.sessionID,
		zap.Strings("missing", common.IngredientNames(missing)))
	quotes, err := o.pricer.FetchPrices(ctx, missing)
	if err != nil {
		return nil, err
	}
	breakdown := pricing.Aggregate(quotes)

	common.LogStage("summarize", o.sessionID)
	message := o.summarizer.Summarize(ctx, found, missing, breakdown.TotalCost, breakdown.ItemCosts)

	// 流程走完才提交狀態，中途失敗不會留下半套狀態
	o.state = ConversationState{
		AvailableIngredients: ingredients,
		CurrentRecipe:        found,
		CurrentMissing:       missing,
	}

	return &common.ChatbotResponse{
		Message: message,
		Data: map[string]interface{}{
			"recipe":              found,
			"missing_ingredients": missing,
			"total_cost":          breakdown.TotalCost,
			"ingredient_costs":    breakdown.ItemCosts,
		},
	}, nil
}

// runGeneralPath 非食譜意圖走一般對話，不更動會話狀態
func (o *Orchestrator) runGeneralPath(ctx context.Context, text string) (*common.ChatbotResponse, error) {
	common.LogStage("general", o.sessionID)

	resp, err := o.ai.Complete(ctx, SicaSystemPrompt, ai.UserMessage(text))
	if err != nil {
		return nil, err
	}

	return &common.ChatbotResponse{
		Message: resp,
		Data:    map[string]interface{}{},
	}, nil
}
