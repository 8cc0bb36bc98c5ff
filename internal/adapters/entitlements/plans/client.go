package plans

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pet-ai-context/internal/platform/httpclient"
)

var (
	ErrPlansNotConfigured = errors.New("plans client not configured")
	ErrPlansUnauthorized  = errors.New("plans unauthorized")
	ErrPlansUpstream      = errors.New("plans upstream error")
)

type Config struct {
	BaseURL string
	APIKey  string

	APIKeyHeader string
	Timeout      time.Duration
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

// SubscriptionResponse es deliberadamente simple.
// Plan esperado: "free" o "premium".
type SubscriptionResponse struct {
	Plan string `json:"plan"`
}

// GetSubscription trae el plan vigente de un usuario.
func (c *Client) GetSubscription(ctx context.Context, userID string) (SubscriptionResponse, error) {
	if !c.IsConfigured() {
		return SubscriptionResponse{}, ErrPlansNotConfigured
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return SubscriptionResponse{}, errors.New("userID required")
	}

	var out SubscriptionResponse
	err := c.http.DoJSON(ctx, http.MethodGet,
		"/v1/subscriptions?user_id="+userID,
		map[string]string{c.apiKeyHeader: c.apiKey},
		nil,
		&out,
	)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) {
			if httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden {
				return SubscriptionResponse{}, ErrPlansUnauthorized
			}
			return SubscriptionResponse{}, fmt.Errorf("%w: status=%d", ErrPlansUpstream, httpErr.StatusCode)
		}
		return SubscriptionResponse{}, fmt.Errorf("%w: %v", ErrPlansUpstream, err)
	}

	return out, nil
}
