package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"sica-kitchen/internal/core/ai"
	"sica-kitchen/internal/core/pricing"
	"sica-kitchen/internal/infrastructure/kroger"
	"sica-kitchen/internal/pkg/common"
)

// routedCompleter 按 system prompt 回應或失敗，模擬多角色模型呼叫
type routedCompleter struct {
	responses map[string]string
	failures  map[string]error
}

func (r *routedCompleter) Complete(ctx context.Context, systemPrompt string, messages []ai.Message) (string, error) {
	if err, ok := r.failures[systemPrompt]; ok {
		return "", err
	}
	return r.responses[systemPrompt], nil
}

type stubFinder struct {
	recipe *common.Recipe
	err    error
	gotIng []string
}

func (s *stubFinder) FindRecipe(ctx context.Context, ingredients []string) (*common.Recipe, error) {
	s.gotIng = ingredients
	if s.err != nil {
		return nil, s.err
	}
	return s.recipe, nil
}

type stubPricer struct {
	quotes []pricing.Quote
	err    error
}

func (s *stubPricer) FetchPrices(ctx context.Context, ingredients []common.Ingredient) ([]pricing.Quote, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.quotes, nil
}

type stubDetails struct {
	detail *common.RecipeDetail
	err    error
}

func (s *stubDetails) GetRecipeInformation(ctx context.Context, id int) (*common.RecipeDetail, error) {
	return s.detail, s.err
}

func ing(names ...string) []common.Ingredient {
	out := make([]common.Ingredient, len(names))
	for i, n := range names {
		out[i] = common.Ingredient{Name: n}
	}
	return out
}

func quoteWithPrice(name string, price float64) pricing.Quote {
	return pricing.Quote{
		Name: name,
		Result: &kroger.ProductSearchResponse{
			Data: []kroger.Product{
				{Items: []kroger.Item{{Price: &kroger.Price{Regular: price}}}},
			},
		},
	}
}

func newTestOrchestrator(completer Completer, finder RecipeFinder, pricer PriceFetcher, details DetailSource) *Orchestrator {
	return NewOrchestrator(
		"test-session",
		NewIntentService(completer),
		NewExtractorService(completer),
		finder,
		pricer,
		NewSummarizer(completer, details),
		completer,
	)
}

func TestProcessMessageRecipePipeline(t *testing.T) {
	completer := &routedCompleter{responses: map[string]string{
		IntentionDetectorPrompt:   "ingredients",
		IngredientExtractorPrompt: "chicken, rice",
		SicaSystemPrompt:          "Now we're cooking! Try the Chicken Rice Bowl.",
	}}
	finder := &stubFinder{recipe: &common.Recipe{
		ID:                2,
		Title:             "Chicken Rice Bowl",
		UsedIngredients:   ing("chicken", "rice"),
		MissedIngredients: ing("scallion", "soy sauce"),
	}}
	pricer := &stubPricer{quotes: []pricing.Quote{
		quoteWithPrice("scallion", 1.29),
		quoteWithPrice("soy sauce", 3.99),
	}}

	o := newTestOrchestrator(completer, finder, pricer, &stubDetails{})

	resp, err := o.ProcessMessage(context.Background(), "I have chicken and rice")
	if err != nil {
		t.Fatalf("ProcessMessage returned error: %v", err)
	}

	if !strings.Contains(resp.Message, "Chicken Rice Bowl") {
		t.Errorf("unexpected message: %q", resp.Message)
	}

	// 結構化資料要帶齊四個鍵
	for _, key := range []string{"recipe", "missing_ingredients", "total_cost", "ingredient_costs"} {
		if _, ok := resp.Data[key]; !ok {
			t.Errorf("missing data key %q", key)
		}
	}

	total, ok := resp.Data["total_cost"].(float64)
	if !ok {
		t.Fatalf("total_cost has unexpected type %T", resp.Data["total_cost"])
	}
	if diff := total - 5.28; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected total 5.28, got %v", total)
	}

	// 整輪成功後狀態才提交
	state := o.State()
	if len(state.AvailableIngredients) != 2 || state.AvailableIngredients[0] != "chicken" {
		t.Errorf("available ingredients not committed: %v", state.AvailableIngredients)
	}
	if state.CurrentRecipe == nil || state.CurrentRecipe.ID != 2 {
		t.Errorf("current recipe not committed: %+v", state.CurrentRecipe)
	}
	if len(state.CurrentMissing) != 2 {
		t.Errorf("missing ingredients not committed: %v", state.CurrentMissing)
	}
}

func TestProcessMessageGeneralPath(t *testing.T) {
	completer := &routedCompleter{responses: map[string]string{
		IntentionDetectorPrompt: "other",
		SicaSystemPrompt:        "Store it in an airtight container, obviously.",
	}}

	o := newTestOrchestrator(completer, &stubFinder{}, &stubPricer{}, &stubDetails{})

	resp, err := o.ProcessMessage(context.Background(), "How do I store leftover food?")
	if err != nil {
		t.Fatalf("ProcessMessage returned error: %v", err)
	}
	if resp.Message != "Store it in an airtight container, obviously." {
		t.Errorf("unexpected message: %q", resp.Message)
	}
	if len(resp.Data) != 0 {
		t.Errorf("general path should return empty data, got %v", resp.Data)
	}

	// 一般對話不動會話狀態
	state := o.State()
	if state.CurrentRecipe != nil || len(state.AvailableIngredients) != 0 {
		t.Errorf("general path must not touch state: %+v", state)
	}
}

func TestProcessMessageStageFailureKeepsState(t *testing.T) {
	completer := &routedCompleter{responses: map[string]string{
		IntentionDetectorPrompt:   "recipe_search",
		IngredientExtractorPrompt: "durian",
	}}
	finder := &stubFinder{err: common.ErrNoRecipesFound}

	o := newTestOrchestrator(completer, finder, &stubPricer{}, &stubDetails{})

	_, err := o.ProcessMessage(context.Background(), "what can I make with durian?")
	if !errors.Is(err, common.ErrNoRecipesFound) {
		t.Fatalf("expected ErrNoRecipesFound, got %v", err)
	}

	// 失敗的輪次不得留下半套狀態
	state := o.State()
	if state.CurrentRecipe != nil || len(state.AvailableIngredients) != 0 {
		t.Errorf("failed turn must not commit state: %+v", state)
	}
}

func TestProcessMessageClassificationFailure(t *testing.T) {
	completer := &routedCompleter{failures: map[string]error{
		IntentionDetectorPrompt: errors.New("model unavailable"),
	}}

	o := newTestOrchestrator(completer, &stubFinder{}, &stubPricer{}, &stubDetails{})

	_, err := o.ProcessMessage(context.Background(), "hello")
	if !errors.Is(err, common.ErrClassificationFailed) {
		t.Errorf("expected ErrClassificationFailed, got %v", err)
	}
}

func TestProcessMessageSummaryFallback(t *testing.T) {
	// 摘要模型失敗時管線仍須成功，改用保底模板
	completer := &routedCompleter{
		responses: map[string]string{
			IntentionDetectorPrompt:   "ingredients",
			IngredientExtractorPrompt: "chicken",
		},
		failures: map[string]error{
			SicaSystemPrompt: errors.New("model unavailable"),
		},
	}
	finder := &stubFinder{recipe: &common.Recipe{
		ID:    7,
		Title: "Roast Chicken",
	}}

	o := newTestOrchestrator(completer, finder, &stubPricer{}, &stubDetails{})

	resp, err := o.ProcessMessage(context.Background(), "I have chicken")
	if err != nil {
		t.Fatalf("ProcessMessage returned error: %v", err)
	}
	if !strings.Contains(resp.Message, "Roast Chicken") {
		t.Errorf("fallback summary must include recipe title, got %q", resp.Message)
	}
}
