package pricing

import (
	"context"
	"fmt"
	"strings"

	"sica-kitchen/internal/infrastructure/kroger"
	"sica-kitchen/internal/pkg/common"

	"go.uber.org/zap"
)

// ProductSearcher 商品查詢介面，由 infrastructure/kroger 實作
type ProductSearcher interface {
	SearchProduct(ctx context.Context, term string) (*kroger.ProductSearchResponse, error)
}

// Quote 單一食材的查價結果，Name 保留原始食材名稱
type Quote struct {
	Name   string
	Result *kroger.ProductSearchResponse
}

// Fetcher 食材查價服務
type Fetcher struct {
	searcher ProductSearcher
}

// NewFetcher 創建查價服務
func NewFetcher(searcher ProductSearcher) *Fetcher {
	return &Fetcher{searcher: searcher}
}

// FetchPrices 逐一查詢每項食材的商品價格
// 查詢依序進行且結果順序與輸入一致；查無商品不算錯誤，
// 上游真正失敗（認證、逾時）才中止整批查詢
func (f *Fetcher) FetchPrices(ctx context.Context, ingredients []common.Ingredient) ([]Quote, error) {
	quotes := make([]Quote, 0, len(ingredients))

	for _, ing := range ingredients {
		term := CleanIngredientName(ing.Name)
		result, err := f.searcher.SearchProduct(ctx, term)
		if err != nil {
			return nil, fmt.Errorf("search price for %q: %w", ing.Name, err)
		}

		if result == nil || len(result.Data) == 0 {
			common.LogDebug("查無商品", zap.String("ingredient", ing.Name), zap.String("term", term))
		}

		quotes = append(quotes, Quote{Name: ing.Name, Result: result})
	}

	return quotes, nil
}

// 搜尋詞中無助於比對商品的填充詞
var (
	fillerPhrases = []string{"slabs of", "pieces of"}
	fillerWords   = map[string]struct{}{
		"of":    {},
		"fresh": {},
		"whole": {},
	}
)

// CleanIngredientName 將食譜食材名稱整理成適合商品搜尋的關鍵字
// 先截斷註記（*、括號、逗號之後的部分），再移除填充詞並壓縮空白
func CleanIngredientName(name string) string {
	cleaned := strings.ToLower(name)

	for _, sep := range []string{"*", "(", ","} {
		if idx := strings.Index(cleaned, sep); idx >= 0 {
			cleaned = cleaned[:idx]
		}
	}

	for _, phrase := range fillerPhrases {
		cleaned = strings.ReplaceAll(cleaned, phrase, " ")
	}

	var kept []string
	for _, word := range strings.Fields(cleaned) {
		if _, skip := fillerWords[word]; skip {
			continue
		}
		kept = append(kept, word)
	}

	return strings.Join(kept, " ")
}
