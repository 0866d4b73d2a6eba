package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAITranslator implements Translator using OpenAI chat completions
type OpenAITranslator struct {
	client *openai.Client
	model  string
}

// NewOpenAITranslator creates a translator backed by gpt-4o-mini
func NewOpenAITranslator(apiKey string) *OpenAITranslator {
	return &OpenAITranslator{
		client: openai.NewClient(apiKey),
		model:  openai.GPT4oMini,
	}
}

// Translate requests a translation preserving tone and register, and
// expects only the translated text back.
func (t *OpenAITranslator) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	systemPrompt := fmt.Sprintf(
		"You are a professional translator. Translate the following text to %s. Maintain the tone, style, and context. Only return the translated text without any additional commentary.",
		targetLanguage,
	)

	resp, err := t.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("translation returned no choices")
	}

	translated := strings.TrimSpace(resp.Choices[0].Message.Content)
	if translated == "" {
		return "", fmt.Errorf("translation returned empty text")
	}

	return translated, nil
}
