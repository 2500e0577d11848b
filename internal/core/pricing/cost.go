package pricing

import (
	"sica-kitchen/internal/pkg/common"

	"go.uber.org/zap"
)

// Aggregate 彙總查價結果成總價與逐項明細
// 只採計第一個商品第一個品項的 regular 價格；查無商品或商品
// 沒有品項的食材不列入明細也不計入總價，總價恆等於明細加總
func Aggregate(quotes []Quote) common.CostBreakdown {
	totalCost := 0.0
	itemCosts := make(map[string]float64, len(quotes))

	for _, quote := range quotes {
		if quote.Result == nil || len(quote.Result.Data) == 0 {
			continue
		}

		product := quote.Result.Data[0]
		if len(product.Items) == 0 {
			continue
		}

		cost := 0.0
		if price := product.Items[0].Price; price != nil {
			cost = price.Regular
		}

		itemCosts[quote.Name] = cost
		totalCost += cost
	}

	common.LogDebug("價格彙總完成",
		zap.Float64("total_cost", totalCost),
		zap.Int("priced_items", len(itemCosts)),
		zap.Int("quotes", len(quotes)),
	)

	return common.CostBreakdown{
		TotalCost: totalCost,
		ItemCosts: itemCosts,
	}
}
