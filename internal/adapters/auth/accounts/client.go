package accounts

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pet-ai-context/internal/platform/httpclient"
	"pet-ai-context/internal/ports/auth"
)

var (
	ErrAccountsNotConfigured = errors.New("accounts client not configured")
	ErrAccountsUnauthorized  = errors.New("accounts unauthorized")
	ErrAccountsUpstream      = errors.New("accounts upstream error")
)

// Config del cliente del servicio de cuentas.
// BaseURL y APIKey normalmente vendrán de env vars en quien lo instancie.
type Config struct {
	BaseURL string
	APIKey  string

	// Opcional: nombre del header donde se manda la API key.
	// Si está vacío, se usa "X-Api-Key".
	APIKeyHeader string

	Timeout time.Duration
}

type Client struct {
	http         *httpclient.Client
	apiKey       string
	apiKeyHeader string
}

func NewClient(cfg Config) (*Client, error) {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}

	hc, err := httpclient.NewWithBaseURL(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:         hc,
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != "" && c.apiKey != ""
}

// VerifyToken valida un token de sesión contra accounts y trae claims.
func (c *Client) VerifyToken(ctx context.Context, token string) (auth.Claims, error) {
	if !c.IsConfigured() {
		return auth.Claims{}, ErrAccountsNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrAccountsUnauthorized
	}

	var out struct {
		UserID string `json:"user_id"`
		Email  string `json:"email"`
	}

	err := c.http.DoJSON(ctx, http.MethodPost, "/v1/tokens/verify",
		map[string]string{
			c.apiKeyHeader:  c.apiKey,
			"Authorization": "Bearer " + token,
		},
		map[string]string{"token": token},
		&out,
	)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) {
			if httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden {
				return auth.Claims{}, ErrAccountsUnauthorized
			}
			return auth.Claims{}, fmt.Errorf("%w: status=%d", ErrAccountsUpstream, httpErr.StatusCode)
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrAccountsUpstream, err)
	}

	out.UserID = strings.TrimSpace(out.UserID)
	if out.UserID == "" {
		return auth.Claims{}, errors.New("accounts response missing user_id")
	}

	return auth.Claims{
		UserID: out.UserID,
		Email:  strings.TrimSpace(out.Email),
	}, nil
}
