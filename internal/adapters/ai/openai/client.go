package openai

import (
	"context"
	"errors"
	"os"

	goopenai "github.com/sashabaranov/go-openai"

	"pet-ai-context/internal/ports/llm"
)

// Client implementa llm.Client contra la API de OpenAI.
// API key y modelo se leen de env vars.
type Client struct {
	client *goopenai.Client
	model  string
}

// NewClientFromEnv construye el cliente desde env:
// - OPENAI_API_KEY (requerida para llamadas reales)
// - OPENAI_MODEL_CHAT (default gpt-4o-mini)
func NewClientFromEnv() *Client {
	apiKey := os.Getenv("OPENAI_API_KEY")

	model := os.Getenv("OPENAI_MODEL_CHAT")
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &Client{
		client: goopenai.NewClient(apiKey),
		model:  model,
	}
}

// Chat manda el historial al chat completion API y devuelve la respuesta.
func (c *Client) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	if c == nil || c.client == nil {
		return "", errors.New("openai client not initialized")
	}

	oaMsgs := make([]goopenai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		role := m.Role
		switch role {
		case goopenai.ChatMessageRoleSystem, goopenai.ChatMessageRoleUser, goopenai.ChatMessageRoleAssistant:
		default:
			// cualquier rol desconocido se trata como user
			role = goopenai.ChatMessageRoleUser
		}
		oaMsgs = append(oaMsgs, goopenai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	resp, err := c.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    oaMsgs,
		Temperature: 0.2,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
