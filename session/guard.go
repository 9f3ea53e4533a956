package session

import "context"

// Evaluate is the route-guard decision: the protected subtree renders only
// when a token is present AND the resolved role is in the allowed set.
// Pure function of its inputs; no side effects, no network calls.
func Evaluate(token string, role Role, allowed ...Role) bool {
	if token == "" {
		return false
	}
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

// Guard gates routes on the current vault state. It re-reads the vault on
// every check, so a session evicted mid-navigation is noticed on the next
// route transition. A role changed server-side is not noticed until the
// next login; the backend stays the authoritative check.
type Guard struct {
	vault *Vault
}

// NewGuard creates a route guard over the given vault.
func NewGuard(vault *Vault) *Guard {
	return &Guard{vault: vault}
}

// Allow reports whether the current session may enter a route restricted to
// the allowed roles.
func (g *Guard) Allow(ctx context.Context, allowed ...Role) bool {
	token := g.vault.Token(ctx)
	if token == "" {
		return false
	}
	return Evaluate(token, g.vault.Role(ctx), allowed...)
}
