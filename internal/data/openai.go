package data

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/prithvianilk/my-besto-friendo/internal/biz/domain"
	"github.com/prithvianilk/my-besto-friendo/internal/biz/repo"
)

// completionRepo implements the completion capability on an
// OpenAI-compatible chat API.
type completionRepo struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewCompletionRepo creates the completion repository. baseURL may be
// empty to use the default OpenAI endpoint.
func NewCompletionRepo(apiKey, baseURL, model string, timeout time.Duration) repo.CompletionRepo {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &completionRepo{
		client:  openai.NewClientWithConfig(config),
		model:   model,
		timeout: timeout,
	}
}

// actionPayload is the wire shape the model is asked to produce.
type actionPayload struct {
	Type       *string `json:"type"`
	Commitment *struct {
		CommittedAt     *time.Time `json:"committedAt"`
		Description     string     `json:"description"`
		ToBeCompletedAt *time.Time `json:"toBeCompletedAt"`
	} `json:"commitment"`
	ID *int64 `json:"id"`
}

func (r *completionRepo) Complete(ctx context.Context, prompt string) (*domain.CommitmentAction, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.1, // Low temperature for deterministic extraction
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, nil
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return nil, nil
	}

	var payload actionPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("parse completion response: %w", err)
	}

	// The prompt instructs the model to return null type and commitment
	// when the conversation carries no commitment action.
	if payload.Type == nil && payload.Commitment == nil {
		return nil, nil
	}

	action := &domain.CommitmentAction{ID: payload.ID}
	if payload.Type != nil {
		action.Type = domain.ActionType(strings.ToUpper(strings.TrimSpace(*payload.Type)))
	}
	if payload.Commitment != nil {
		action.Commitment.Description = payload.Commitment.Description
		if payload.Commitment.CommittedAt != nil {
			action.Commitment.CommittedAt = *payload.Commitment.CommittedAt
		}
		if payload.Commitment.ToBeCompletedAt != nil {
			action.Commitment.ToBeCompletedAt = *payload.Commitment.ToBeCompletedAt
		}
	}
	return action, nil
}
