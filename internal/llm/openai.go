// Package llm builds the chat model backing answer generation.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"nuriqa/internal/config"
)

// ErrMissingAPIKey is returned when no OpenAI key is configured.
var ErrMissingAPIKey = errors.New("openai api key not configured")

// DefaultModel is used when the config leaves the model empty.
const DefaultModel = "gpt-4o-mini"

// NewChatModel builds an OpenAI chat model. No request is made until the
// model is used.
func NewChatModel(ctx context.Context, cfg config.OpenAIConfig) (model.ToolCallingChatModel, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	modelName := cfg.Model
	if modelName == "" {
		modelName = DefaultModel
	}
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		Model:   modelName,
		APIKey:  cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("init openai chat model: %w", err)
	}
	return chatModel, nil
}
