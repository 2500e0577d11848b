package recipe

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"sica-kitchen/internal/pkg/common"

	"go.uber.org/zap"
)

// Source 食譜來源介面，由 infrastructure/spoonacular 實作
type Source interface {
	FindByIngredients(ctx context.Context, ingredients []string, number, ranking int) ([]common.Recipe, error)
	GetRecipeInformation(ctx context.Context, id int) (*common.RecipeDetail, error)
}

// 評分權重：食材使用率 0.4、覆蓋率 0.3、標題命中 0.3，總和為 1
const (
	usageWeight    = 0.4
	coverageWeight = 0.3
	titleWeight    = 0.3
)

// Finder 食譜搜尋與評分服務
type Finder struct {
	source    Source
	batchSize int
	ranking   int
}

// NewFinder 創建食譜搜尋服務
func NewFinder(source Source, batchSize, ranking int) *Finder {
	return &Finder{
		source:    source,
		batchSize: batchSize,
		ranking:   ranking,
	}
}

// FindRecipe 取得一批候選食譜並挑出評分最高者
// 同分時保持來源原始順序（穩定排序）
func (f *Finder) FindRecipe(ctx context.Context, ingredients []string) (*common.Recipe, error) {
	candidates, err := f.source.FindByIngredients(ctx, ingredients, f.batchSize, f.ranking)
	if err != nil {
		return nil, fmt.Errorf("fetch recipe candidates: %w", err)
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: ingredients %v", common.ErrNoRecipesFound, ingredients)
	}

	// 每個候選只評分一次
	type scoredRecipe struct {
		recipe common.Recipe
		score  float64
	}
	ranked := make([]scoredRecipe, len(candidates))
	for i, candidate := range candidates {
		ranked[i] = scoredRecipe{
			recipe: candidate,
			score:  scoreRecipe(candidate, ingredients),
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	best := ranked[0]
	common.LogInfo("已選定食譜",
		zap.Int("recipe_id", best.recipe.ID),
		zap.String("title", best.recipe.Title),
		zap.Float64("score", best.score),
		zap.Int("candidates", len(candidates)),
	)

	return &best.recipe, nil
}

// scoreRecipe 對單一候選食譜評分
//
//	usageScore    對上輸入食材的使用食材數 / 輸入食材數
//	coverageRatio 使用食材數 / (使用 + 缺少)
//	titleBonus    任一輸入食材出現在標題中得 1
//
// usageScore 的分母固定是輸入食材數，一個輸入詞對上多個
// 使用食材時分量可以超過 1，重用食材多的食譜因此得利
func scoreRecipe(r common.Recipe, ingredients []string) float64 {
	inputs := make([]string, len(ingredients))
	for i, ing := range ingredients {
		inputs[i] = strings.ToLower(ing)
	}

	usageScore := 0.0
	if len(inputs) > 0 {
		matched := 0
		for _, used := range r.UsedIngredients {
			name := strings.ToLower(used.Name)
			for _, input := range inputs {
				if strings.Contains(name, input) {
					matched++
					break
				}
			}
		}
		usageScore = float64(matched) / float64(len(inputs))
	}

	coverageRatio := 0.0
	if total := len(r.UsedIngredients) + len(r.MissedIngredients); total > 0 {
		coverageRatio = float64(len(r.UsedIngredients)) / float64(total)
	}

	titleBonus := 0.0
	title := strings.ToLower(r.Title)
	for _, input := range inputs {
		if strings.Contains(title, input) {
			titleBonus = 1.0
			break
		}
	}

	return usageWeight*usageScore + coverageWeight*coverageRatio + titleWeight*titleBonus
}
