package recipe

import (
	"context"
	"errors"
	"testing"

	"sica-kitchen/internal/pkg/common"
)

type stubSource struct {
	recipes []common.Recipe
	err     error
	gotN    int
	gotRank int
}

func (s *stubSource) FindByIngredients(ctx context.Context, ingredients []string, number, ranking int) ([]common.Recipe, error) {
	s.gotN = number
	s.gotRank = ranking
	return s.recipes, s.err
}

func (s *stubSource) GetRecipeInformation(ctx context.Context, id int) (*common.RecipeDetail, error) {
	return nil, nil
}

func ing(names ...string) []common.Ingredient {
	out := make([]common.Ingredient, len(names))
	for i, n := range names {
		out[i] = common.Ingredient{Name: n}
	}
	return out
}

func TestFindRecipePicksHighestScore(t *testing.T) {
	// 第二筆標題含輸入食材且覆蓋率較高，應勝出
	source := &stubSource{recipes: []common.Recipe{
		{
			ID:                1,
			Title:             "Mystery Stew",
			UsedIngredients:   ing("beef"),
			MissedIngredients: ing("carrot", "potato", "onion"),
		},
		{
			ID:                2,
			Title:             "Chicken Rice Bowl",
			UsedIngredients:   ing("chicken", "rice"),
			MissedIngredients: ing("scallion"),
		},
	}}

	finder := NewFinder(source, 5, 1)
	got, err := finder.FindRecipe(context.Background(), []string{"chicken", "rice"})
	if err != nil {
		t.Fatalf("FindRecipe returned error: %v", err)
	}
	if got.ID != 2 {
		t.Errorf("expected recipe 2, got %d (%s)", got.ID, got.Title)
	}
	if source.gotN != 5 || source.gotRank != 1 {
		t.Errorf("expected batch 5 ranking 1, got %d/%d", source.gotN, source.gotRank)
	}
}

func TestFindRecipePrefersHeavyIngredientUse(t *testing.T) {
	// 單一輸入詞對上三個使用食材：usage 3/1 = 3，0.4*3 + 0.3*0.5 = 1.35，
	// 要贏過標題命中但只用一個食材的 1.0
	source := &stubSource{recipes: []common.Recipe{
		{
			ID:                1,
			Title:             "Mystery Bake",
			UsedIngredients:   ing("chicken thigh", "chicken stock", "chicken skin"),
			MissedIngredients: ing("flour", "butter", "sage"),
		},
		{
			ID:              2,
			Title:           "Chicken",
			UsedIngredients: ing("chicken"),
		},
	}}

	finder := NewFinder(source, 5, 1)
	got, err := finder.FindRecipe(context.Background(), []string{"chicken"})
	if err != nil {
		t.Fatalf("FindRecipe returned error: %v", err)
	}
	if got.ID != 1 {
		t.Errorf("expected recipe 1, got %d (%s)", got.ID, got.Title)
	}
}

func TestFindRecipeTieKeepsSourceOrder(t *testing.T) {
	// 兩筆內容等價，分數必然相同，穩定排序應保留第一筆
	source := &stubSource{recipes: []common.Recipe{
		{ID: 10, Title: "Tofu Soup A", UsedIngredients: ing("tofu")},
		{ID: 11, Title: "Tofu Soup B", UsedIngredients: ing("tofu")},
	}}

	finder := NewFinder(source, 5, 1)
	got, err := finder.FindRecipe(context.Background(), []string{"tofu"})
	if err != nil {
		t.Fatalf("FindRecipe returned error: %v", err)
	}
	if got.ID != 10 {
		t.Errorf("expected first recipe on tie, got %d", got.ID)
	}
}

func TestFindRecipeEmptyBatch(t *testing.T) {
	source := &stubSource{}

	finder := NewFinder(source, 5, 1)
	_, err := finder.FindRecipe(context.Background(), []string{"durian"})
	if !errors.Is(err, common.ErrNoRecipesFound) {
		t.Errorf("expected ErrNoRecipesFound, got %v", err)
	}
}

func TestFindRecipeSourceError(t *testing.T) {
	wantErr := errors.New("upstream down")
	source := &stubSource{err: wantErr}

	finder := NewFinder(source, 5, 1)
	_, err := finder.FindRecipe(context.Background(), []string{"rice"})
	if !errors.Is(err, wantErr) {
		t.Errorf("expected wrapped source error, got %v", err)
	}
}

func TestScoreRecipe(t *testing.T) {
	tests := []struct {
		name   string
		recipe common.Recipe
		inputs []string
		want   float64
	}{
		{
			name: "full match with title hit",
			recipe: common.Recipe{
				Title:           "Chicken Rice",
				UsedIngredients: ing("chicken breast", "white rice"),
			},
			inputs: []string{"chicken", "rice"},
			// usage 1.0*0.4 + coverage 1.0*0.3 + title 1.0*0.3
			want: 1.0,
		},
		{
			name: "no overlap at all",
			recipe: common.Recipe{
				Title:             "Beef Stew",
				MissedIngredients: ing("beef", "carrot"),
			},
			inputs: []string{"tofu"},
			want:   0.0,
		},
		{
			name: "coverage only",
			recipe: common.Recipe{
				Title:             "Garden Salad",
				UsedIngredients:   ing("lettuce"),
				MissedIngredients: ing("crouton"),
			},
			inputs: []string{"tomato"},
			// coverage 0.5*0.3
			want: 0.15,
		},
		{
			name: "case insensitive matching",
			recipe: common.Recipe{
				Title:           "RICE pudding",
				UsedIngredients: ing("Rice"),
			},
			inputs: []string{"rICe"},
			want:   1.0,
		},
		{
			name: "one input matching several used ingredients",
			recipe: common.Recipe{
				Title:             "Mystery Bake",
				UsedIngredients:   ing("chicken thigh", "chicken stock", "chicken skin"),
				MissedIngredients: ing("flour", "butter", "sage"),
			},
			inputs: []string{"chicken"},
			// usage 3/1 = 3.0，分量超過 1：0.4*3 + 0.3*0.5 + 0
			want: 1.35,
		},
	}

	const epsilon = 1e-9
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoreRecipe(tt.recipe, tt.inputs)
			if diff := got - tt.want; diff > epsilon || diff < -epsilon {
				t.Errorf("scoreRecipe() = %v, want %v", got, tt.want)
			}
		})
	}
}
