package common

import (
	"fmt"
	"strings"
)

// Ingredient 食材（Spoonacular findByIngredients 回傳格式）
type Ingredient struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Amount       float64  `json:"amount"`
	Unit         string   `json:"unit"`
	UnitLong     string   `json:"unitLong,omitempty"`
	UnitShort    string   `json:"unitShort,omitempty"`
	Aisle        string   `json:"aisle,omitempty"`
	Original     string   `json:"original,omitempty"`
	OriginalName string   `json:"originalName,omitempty"`
	Meta         []string `json:"meta,omitempty"`
	Image        string   `json:"image,omitempty"`
}

// Recipe 候選食譜（findByIngredients 回傳格式）
// 取得後不再修改，只在管線中傳遞
type Recipe struct {
	ID                    int          `json:"id"`
	Title                 string       `json:"title"`
	Image                 string       `json:"image,omitempty"`
	ImageType             string       `json:"imageType,omitempty"`
	UsedIngredientCount   int          `json:"usedIngredientCount"`
	MissedIngredientCount int          `json:"missedIngredientCount"`
	MissedIngredients     []Ingredient `json:"missedIngredients"`
	UsedIngredients       []Ingredient `json:"usedIngredients"`
	UnusedIngredients     []Ingredient `json:"unusedIngredients"`
	Likes                 int          `json:"likes,omitempty"`
}

// InstructionStep 單一烹飪步驟
type InstructionStep struct {
	Number int    `json:"number"`
	Step   string `json:"step"`
}

// AnalyzedInstruction 結構化步驟說明
type AnalyzedInstruction struct {
	Name  string            `json:"name"`
	Steps []InstructionStep `json:"steps"`
}

// RecipeDetail 食譜詳細資訊（/recipes/{id}/information）
type RecipeDetail struct {
	ID                   int                   `json:"id"`
	Title                string                `json:"title"`
	Summary              string                `json:"summary,omitempty"`
	Instructions         string                `json:"instructions,omitempty"`
	AnalyzedInstructions []AnalyzedInstruction `json:"analyzedInstructions,omitempty"`
	ReadyInMinutes       int                   `json:"readyInMinutes,omitempty"`
	Servings             int                   `json:"servings,omitempty"`
	SourceURL            string                `json:"sourceUrl,omitempty"`
}

// CostBreakdown 缺少食材的花費統計
// TotalCost 恆等於 ItemCosts 所有值的總和；找不到商品的食材不列入
type CostBreakdown struct {
	TotalCost float64            `json:"total_cost"`
	ItemCosts map[string]float64 `json:"item_costs"`
}

// ChatbotResponse 單輪對話的輸出，一般對話的 Data 為空 map
type ChatbotResponse struct {
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

// IngredientNames 取出食材名稱列表
func IngredientNames(ingredients []Ingredient) []string {
	names := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		names = append(names, ing.Name)
	}
	return names
}

// FormatIngredientList 將缺少的食材與價格格式化為條列字串
func FormatIngredientList(ingredients []Ingredient, itemCosts map[string]float64) string {
	var sb strings.Builder
	for _, ing := range ingredients {
		if cost, ok := itemCosts[ing.Name]; ok {
			sb.WriteString(fmt.Sprintf("- %s: $%.2f\n", ing.Name, cost))
		} else {
			sb.WriteString(fmt.Sprintf("- %s: price unavailable\n", ing.Name))
		}
	}
	return sb.String()
}
