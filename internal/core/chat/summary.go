package chat

import (
	"context"
	"fmt"
	"strings"

	"sica-kitchen/internal/core/ai"
	"sica-kitchen/internal/pkg/common"

	"go.uber.org/zap"
)

// DetailSource 食譜詳情來源介面
type DetailSource interface {
	GetRecipeInformation(ctx context.Context, id int) (*common.RecipeDetail, error)
}

// Summarizer 以 SiCa 人設產生食譜摘要
type Summarizer struct {
	ai      Completer
	details DetailSource
}

// NewSummarizer 創建摘要服務
func NewSummarizer(completer Completer, details DetailSource) *Summarizer {
	return &Summarizer{ai: completer, details: details}
}

// Summarize 產生本輪對話的回覆文字
// 摘要是整條流程唯一允許退化的環節：詳情抓取失敗只記警告，
// 模型呼叫失敗改用固定模板，所以永遠回傳可用的文字
func (s *Summarizer) Summarize(ctx context.Context, recipe *common.Recipe, missing []common.Ingredient, totalCost float64, itemCosts map[string]float64) string {
	var detail *common.RecipeDetail
	if s.details != nil {
		d, err := s.details.GetRecipeInformation(ctx, recipe.ID)
		if err != nil {
			common.LogWarn("食譜詳情取得失敗，摘要改用基本資訊",
				zap.Int("recipe_id", recipe.ID),
				zap.Error(err),
			)
		} else {
			detail = d
		}
	}

	prompt := buildSummaryInput(recipe, detail, missing, totalCost, itemCosts)

	resp, err := s.ai.Complete(ctx, SicaSystemPrompt, ai.UserMessage(prompt))
	if err != nil || strings.TrimSpace(resp) == "" {
		common.LogWarn("摘要生成失敗，改用固定模板",
			zap.Int("recipe_id", recipe.ID),
			zap.Error(err),
		)
		return fallbackSummary(recipe, missing, totalCost, itemCosts)
	}

	return resp
}

// buildSummaryInput 組出給模型的摘要素材
func buildSummaryInput(recipe *common.Recipe, detail *common.RecipeDetail, missing []common.Ingredient, totalCost float64, itemCosts map[string]float64) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Summarize this recipe suggestion for the user.\n\n")
	fmt.Fprintf(&b, "Recipe: %s\n", recipe.Title)

	if detail != nil {
		if detail.ReadyInMinutes > 0 {
			fmt.Fprintf(&b, "Ready in: %d minutes\n", detail.ReadyInMinutes)
		}
		if detail.Servings > 0 {
			fmt.Fprintf(&b, "Servings: %d\n", detail.Servings)
		}
		if detail.SourceURL != "" {
			fmt.Fprintf(&b, "Source: %s\n", detail.SourceURL)
		}
		if detail.Instructions != "" {
			fmt.Fprintf(&b, "\nInstructions:\n%s\n", detail.Instructions)
		}
	}

	if len(missing) > 0 {
		fmt.Fprintf(&b, "\nMissing ingredients to buy:\n%s", common.FormatIngredientList(missing, itemCosts))
		fmt.Fprintf(&b, "Estimated total cost: $%.2f\n", totalCost)
	} else {
		b.WriteString("\nThe user already has every ingredient needed.\n")
	}

	return b.String()
}

// fallbackSummary 模型不可用時的保底回覆
func fallbackSummary(recipe *common.Recipe, missing []common.Ingredient, totalCost float64, itemCosts map[string]float64) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Here's what I found: %s.\n", recipe.Title)

	if len(missing) > 0 {
		b.WriteString("\nYou'll need to pick up:\n")
		b.WriteString(common.FormatIngredientList(missing, itemCosts))
		fmt.Fprintf(&b, "\nEstimated total: $%.2f", totalCost)
	} else {
		b.WriteString("Good news: you already have everything this recipe calls for.")
	}

	return b.String()
}
