package llm

import "context"

// Message es un mensaje de chat mínimo.
// Role debe ser "system", "user" o "assistant".
type Message struct {
	Role    string
	Content string
}

// Client es el puerto hacia el backend generativo.
// Chat recibe el historial completo (system prompt + turnos previos + último user).
type Client interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}
