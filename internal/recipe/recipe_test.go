package recipe

import (
	"context"
	"errors"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

type fakeChat struct {
	reply string
	err   error
	got   openai.ChatCompletionRequest
}

func (f *fakeChat) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.got = req
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: f.reply}}},
	}, nil
}

const twoRecipes = "Here you go:\n```json\n" + `[
  {"name": "Veggie omelette", "ingredients": [{"name": "eggs", "amount": "2"}], "instructions": ["Whisk", "Cook"], "nutrition": {"calories": 320, "protein": 20}, "prep_minutes": 10},
  {"name": "Spinach salad", "nutrition": {"calories": 180}}
]` + "\n```"

func TestSuggestParsesReply(t *testing.T) {
	fake := &fakeChat{reply: twoRecipes}
	s := &OpenAISuggester{client: fake, model: "test-model"}

	recipes, err := s.Suggest(context.Background(), Request{Ingredients: []string{" eggs ", "spinach"}, MaxCalories: 400})
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(recipes) != 2 {
		t.Fatalf("len = %d, want 2", len(recipes))
	}
	if recipes[0].Name != "Veggie omelette" || recipes[0].Nutrition.Calories != 320 || len(recipes[0].Instructions) != 2 {
		t.Errorf("recipes[0] = %+v", recipes[0])
	}
	if recipes[1].Ingredients == nil || recipes[1].Instructions == nil {
		t.Errorf("recipes[1] has nil slices: %+v", recipes[1])
	}

	if fake.got.Model != "test-model" {
		t.Errorf("model = %q, want test-model", fake.got.Model)
	}
	user := fake.got.Messages[1].Content
	if !strings.Contains(user, "eggs, spinach") || !strings.Contains(user, "400 kcal") {
		t.Errorf("user prompt = %q", user)
	}
}

func TestSuggestTruncatesToCount(t *testing.T) {
	s := &OpenAISuggester{client: &fakeChat{reply: twoRecipes}, model: "m"}

	recipes, err := s.Suggest(context.Background(), Request{Ingredients: []string{"eggs"}, Count: 1})
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(recipes) != 1 {
		t.Errorf("len = %d, want 1", len(recipes))
	}
}

func TestSuggestErrors(t *testing.T) {
	tests := []struct {
		name string
		chat *fakeChat
		req  Request
	}{
		{"no ingredients", &fakeChat{reply: twoRecipes}, Request{Ingredients: []string{"  "}}},
		{"bad meal type", &fakeChat{reply: twoRecipes}, Request{Ingredients: []string{"egg"}, MealType: "brunch"}},
		{"api error", &fakeChat{err: errors.New("rate limited")}, Request{Ingredients: []string{"egg"}}},
		{"prose reply", &fakeChat{reply: "Sorry, I can't help."}, Request{Ingredients: []string{"egg"}}},
		{"broken json", &fakeChat{reply: `[{"name": }]`}, Request{Ingredients: []string{"egg"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &OpenAISuggester{client: tt.chat, model: "m"}
			if _, err := s.Suggest(context.Background(), tt.req); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	r, err := Request{Ingredients: []string{"a", "", " b "}, Count: 99}.Normalize()
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(r.Ingredients) != 2 || r.Ingredients[1] != "b" {
		t.Errorf("ingredients = %q", r.Ingredients)
	}
	if r.Count != MaxCount {
		t.Errorf("count = %d, want %d", r.Count, MaxCount)
	}

	_, err = Request{}.Normalize()
	if !errors.Is(err, ErrBadRequest) {
		t.Errorf("err = %v, want ErrBadRequest", err)
	}
}
