package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pet-ai-context/internal/ports/auth"
)

var (
	ErrTokenEmpty = errors.New("token is empty")
)

// Verifier implementa auth.AuthVerifier contra el servicio de cuentas.
// Se instancia desde main/router cuando ACCOUNTS_BASE_URL está configurado.
type Verifier struct {
	client *Client
}

func NewVerifier(client *Client) *Verifier {
	return &Verifier{client: client}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.client == nil {
		return auth.Claims{}, ErrAccountsNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	claims, err := v.client.VerifyToken(ctx, token)
	if err != nil {
		// El middleware decide si corta o no; acá solo normalizamos.
		return auth.Claims{}, fmt.Errorf("accounts verify failed: %w", err)
	}

	claims.UserID = strings.TrimSpace(claims.UserID)
	if claims.UserID == "" {
		return auth.Claims{}, errors.New("accounts claims missing user id")
	}

	return claims, nil
}
