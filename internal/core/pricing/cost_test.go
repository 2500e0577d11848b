package pricing

import (
	"testing"

	"sica-kitchen/internal/infrastructure/kroger"
)

func TestAggregateSumsFirstItemRegularPrice(t *testing.T) {
	quotes := []Quote{
		{Name: "milk", Result: product(3.49)},
		{Name: "eggs", Result: product(2.99)},
	}

	breakdown := Aggregate(quotes)

	if diff := breakdown.TotalCost - 6.48; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected total 6.48, got %v", breakdown.TotalCost)
	}
	if breakdown.ItemCosts["milk"] != 3.49 || breakdown.ItemCosts["eggs"] != 2.99 {
		t.Errorf("unexpected item costs: %v", breakdown.ItemCosts)
	}
}

func TestAggregateExcludesUnpriceable(t *testing.T) {
	quotes := []Quote{
		{Name: "milk", Result: product(3.49)},
		{Name: "saffron", Result: &kroger.ProductSearchResponse{}}, // 查無商品
		{Name: "truffle", Result: &kroger.ProductSearchResponse{ // 商品無品項
			Data: []kroger.Product{{}},
		}},
	}

	breakdown := Aggregate(quotes)

	if breakdown.TotalCost != 3.49 {
		t.Errorf("expected total 3.49, got %v", breakdown.TotalCost)
	}
	if len(breakdown.ItemCosts) != 1 {
		t.Errorf("expected 1 priced item, got %d: %v", len(breakdown.ItemCosts), breakdown.ItemCosts)
	}
	if _, ok := breakdown.ItemCosts["saffron"]; ok {
		t.Error("unpriceable ingredient should not appear in breakdown")
	}
}

func TestAggregateNilPriceCountsAsZero(t *testing.T) {
	quotes := []Quote{
		{Name: "water", Result: &kroger.ProductSearchResponse{
			Data: []kroger.Product{{Items: []kroger.Item{{Price: nil}}}},
		}},
	}

	breakdown := Aggregate(quotes)

	// 有商品有品項但無價格欄位：列入明細但貢獻 0
	if breakdown.TotalCost != 0 {
		t.Errorf("expected total 0, got %v", breakdown.TotalCost)
	}
	if cost, ok := breakdown.ItemCosts["water"]; !ok || cost != 0 {
		t.Errorf("expected water in breakdown at 0, got %v", breakdown.ItemCosts)
	}
}

func TestAggregateTotalMatchesBreakdown(t *testing.T) {
	quotes := []Quote{
		{Name: "a", Result: product(1.25)},
		{Name: "b", Result: product(0.75)},
		{Name: "c", Result: &kroger.ProductSearchResponse{}},
	}

	breakdown := Aggregate(quotes)

	sum := 0.0
	for _, cost := range breakdown.ItemCosts {
		sum += cost
	}
	if breakdown.TotalCost != sum {
		t.Errorf("total %v does not match breakdown sum %v", breakdown.TotalCost, sum)
	}
}
