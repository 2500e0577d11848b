package recipe

import (
	"strings"

	"sica-kitchen/internal/pkg/common"
)

// ResolveMissing 重新驗證食譜回報的缺少食材
// 來源的缺少食材分類可能過時或不精確，這裡以使用者實際持有的
// 食材（不分大小寫）再過濾一次，順序保持食譜原始列表
func ResolveMissing(recipe *common.Recipe, available []string) []common.Ingredient {
	owned := make(map[string]struct{}, len(available))
	for _, name := range available {
		owned[strings.ToLower(name)] = struct{}{}
	}

	missing := make([]common.Ingredient, 0, len(recipe.MissedIngredients))
	for _, ing := range recipe.MissedIngredients {
		if _, ok := owned[strings.ToLower(ing.Name)]; ok {
			continue
		}
		missing = append(missing, ing)
	}

	return missing
}
