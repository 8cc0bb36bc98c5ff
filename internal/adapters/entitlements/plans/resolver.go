package plans

import (
	"context"
	"os"
	"strings"
)

// Resolver decide el entitlement premium de un usuario.
// Si PREMIUM_ALL=true (env), todo usuario es premium (modo dev / fallback).
type Resolver struct {
	client     *Client
	premiumAll bool
}

func NewResolver(client *Client) *Resolver {
	premiumAll := strings.EqualFold(strings.TrimSpace(os.Getenv("PREMIUM_ALL")), "true")
	return &Resolver{
		client:     client,
		premiumAll: premiumAll,
	}
}

// IsPremium responde si userID tiene plan premium.
// Sin cliente configurado preferimos fallar explícito en vez de
// "regalar" premium sin control; el caller degrada a free tier.
func (r *Resolver) IsPremium(ctx context.Context, userID string) (bool, error) {
	if r.premiumAll {
		return true, nil
	}

	if r == nil || r.client == nil || !r.client.IsConfigured() {
		return false, ErrPlansNotConfigured
	}

	resp, err := r.client.GetSubscription(ctx, userID)
	if err != nil {
		return false, err
	}

	return strings.EqualFold(strings.TrimSpace(resp.Plan), "premium"), nil
}
