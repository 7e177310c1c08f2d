package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/qa-forum-api/internal/constants"
	"github.com/yukikurage/qa-forum-api/internal/models"
)

// TagSuggester asks an OpenAI chat model which existing tags fit a question.
type TagSuggester struct {
	client *openai.Client
	model  string
}

// NewTagSuggester returns nil when apiKey is empty, which disables suggestions.
func NewTagSuggester(apiKey, model string) *TagSuggester {
	if apiKey == "" {
		return nil
	}
	return NewTagSuggesterWithConfig(openai.DefaultConfig(apiKey), model)
}

// NewTagSuggesterWithConfig allows a custom base URL or HTTP client.
func NewTagSuggesterWithConfig(cfg openai.ClientConfig, model string) *TagSuggester {
	if model == "" {
		model = openai.GPT4o
	}
	return &TagSuggester{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Suggest returns up to MaxSuggestedTags of candidates, in the order the model ranked
// them. Slugs the model invents are dropped.
func (s *TagSuggester) Suggest(ctx context.Context, question *models.Question, candidates []models.Tag) ([]models.Tag, error) {
	if s == nil || s.client == nil {
		return nil, ErrTagSuggesterUnavailable
	}
	if len(candidates) == 0 {
		return []models.Tag{}, nil
	}

	bySlug := make(map[string]models.Tag, len(candidates))
	slugs := make([]string, len(candidates))
	for i, tag := range candidates {
		bySlug[tag.Slug] = tag
		slugs[i] = tag.Slug
	}

	prompt := fmt.Sprintf(`You label questions on a Q&A forum.

Available tags (slugs):
%s

Question title:
%s

Question body:
%s

Reply with a JSON array of at most %d slugs from the list above that best describe the question,
most relevant first, for example ["go", "http"]. Reply with [] if none fit. Return only JSON.`,
		strings.Join(slugs, ", "), question.Title, question.Body, constants.MaxSuggestedTags)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.2,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.Trim(content, "`\n ")

	var picked []string
	if err := json.Unmarshal([]byte(content), &picked); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	suggested := make([]models.Tag, 0, constants.MaxSuggestedTags)
	seen := make(map[string]struct{}, len(picked))
	for _, slug := range picked {
		tag, ok := bySlug[slug]
		if !ok {
			continue
		}
		if _, dup := seen[slug]; dup {
			continue
		}
		seen[slug] = struct{}{}
		suggested = append(suggested, tag)
		if len(suggested) == constants.MaxSuggestedTags {
			break
		}
	}
	return suggested, nil
}
