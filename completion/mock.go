package completion

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Mock answers completions locally without calling the upstream API.
type Mock struct {
	model string
}

func NewMock(model string) *Mock {
	if model == "" {
		model = DefaultModel
	}
	return &Mock{model: model}
}

// Reply builds the canned response echoing input.
func (m *Mock) Reply(input string) ChatResponse {
	return ChatResponse{
		ID:     "mock-" + uuid.NewString(),
		Object: "chat.completion",
		Model:  m.model,
		Choices: []Choice{
			{
				Index: 0,
				Message: ChatMessage{
					Role:    "assistant",
					Content: `You said: "` + input + `". This is a mocked response.`,
				},
				FinishReason: "stop",
			},
		},
	}
}

func (m *Mock) Complete(ctx context.Context, input string) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(m.Reply(input))
	if err != nil {
		return nil, fmt.Errorf("encode mock response: %w", err)
	}
	return body, nil
}
