package chat

import (
	"context"
	"errors"
	"testing"

	"sica-kitchen/internal/core/ai"
	"sica-kitchen/internal/pkg/common"
)

// stubCompleter 以 system prompt 區分回應的假 AI 服務
type stubCompleter struct {
	responses map[string]string
	err       error
	calls     []string
}

func (s *stubCompleter) Complete(ctx context.Context, systemPrompt string, messages []ai.Message) (string, error) {
	s.calls = append(s.calls, systemPrompt)
	if s.err != nil {
		return "", s.err
	}
	return s.responses[systemPrompt], nil
}

func TestClassifyKnownLabels(t *testing.T) {
	tests := []struct {
		raw  string
		want Intent
	}{
		{"ingredients", IntentIngredients},
		{"recipe_search", IntentRecipeSearch},
		{"other", IntentOther},
		{" Ingredients \n", IntentIngredients},
		{`"recipe_search"`, IntentRecipeSearch},
		{"'other'", IntentOther},
		{"RECIPE_SEARCH", IntentRecipeSearch},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			completer := &stubCompleter{responses: map[string]string{
				IntentionDetectorPrompt: tt.raw,
			}}
			svc := NewIntentService(completer)

			got, err := svc.Classify(context.Background(), "hello")
			if err != nil {
				t.Fatalf("Classify returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestClassifyUnknownLabelFallsBackToOther(t *testing.T) {
	completer := &stubCompleter{responses: map[string]string{
		IntentionDetectorPrompt: "cooking_advice",
	}}
	svc := NewIntentService(completer)

	got, err := svc.Classify(context.Background(), "how hot is a wok?")
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if got != IntentOther {
		t.Errorf("expected other for unknown label, got %q", got)
	}
}

func TestClassifyAIError(t *testing.T) {
	completer := &stubCompleter{err: errors.New("model unavailable")}
	svc := NewIntentService(completer)

	_, err := svc.Classify(context.Background(), "hello")
	if !errors.Is(err, common.ErrClassificationFailed) {
		t.Errorf("expected ErrClassificationFailed, got %v", err)
	}
}
