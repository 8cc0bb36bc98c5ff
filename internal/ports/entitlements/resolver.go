package entitlements

import "context"

// Resolver responde la única pregunta de entitlement que usa el motor de contexto:
// ¿este usuario tiene plan premium?
// La decisión se resuelve UNA vez por request y se pasa como bool a los builders,
// para no repartir chequeos de plan por todos los helpers.
type Resolver interface {
	IsPremium(ctx context.Context, userID string) (bool, error)
}
