package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/joan-ouma/nutrifit-sub000/internal/model"
)

const DefaultModel = openai.GPT4oMini

type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAISuggester asks a chat completion model for recipes as JSON.
type OpenAISuggester struct {
	client chatClient
	model  string
}

// NewOpenAISuggester builds a client for apiKey. baseURL may point at any
// OpenAI-compatible endpoint; empty uses the default.
func NewOpenAISuggester(apiKey, model, baseURL string) *OpenAISuggester {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &OpenAISuggester{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (s *OpenAISuggester) Suggest(ctx context.Context, req Request) ([]Recipe, error) {
	req, err := req.Normalize()
	if err != nil {
		return nil, err
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(req)},
		},
		MaxTokens:   2000,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in completion")
	}

	recipes, err := parseRecipes(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	if len(recipes) > req.Count {
		recipes = recipes[:req.Count]
	}
	return recipes, nil
}

const systemPrompt = `You suggest home-cooking recipes. Reply with only a JSON array. Each element has: name, description, ingredients (array of {name, amount, calories}), instructions (array of strings), nutrition ({calories, protein, carbs, fats, fiber, sugar, sodium}; grams except kcal and mg sodium), prep_minutes.`

func userPrompt(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Suggest %d recipes using: %s.", req.Count, strings.Join(req.Ingredients, ", "))
	if req.MealType != "" {
		fmt.Fprintf(&b, " Meal: %s.", req.MealType)
	}
	if req.MaxCalories > 0 {
		fmt.Fprintf(&b, " At most %.0f kcal per serving.", req.MaxCalories)
	}
	if len(req.Preferences) > 0 {
		fmt.Fprintf(&b, " Preferences: %s.", strings.Join(req.Preferences, ", "))
	}
	return b.String()
}

// parseRecipes decodes the reply, tolerating prose or code fences around
// the JSON array.
func parseRecipes(content string) ([]Recipe, error) {
	start := strings.IndexByte(content, '[')
	end := strings.LastIndexByte(content, ']')
	if start < 0 || end < start {
		return nil, fmt.Errorf("no JSON array in completion")
	}
	var recipes []Recipe
	if err := json.Unmarshal([]byte(content[start:end+1]), &recipes); err != nil {
		return nil, fmt.Errorf("decode recipes: %w", err)
	}
	out := recipes[:0]
	for _, r := range recipes {
		if strings.TrimSpace(r.Name) == "" {
			continue
		}
		if r.Ingredients == nil {
			r.Ingredients = []model.Ingredient{}
		}
		if r.Instructions == nil {
			r.Instructions = []string{}
		}
		out = append(out, r)
	}
	return out, nil
}
