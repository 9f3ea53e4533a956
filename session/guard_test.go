package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Evaluate Tests
// ============================================================================

func TestEvaluate_NoToken(t *testing.T) {
	assert.False(t, Evaluate("", RoleAdmin, RoleAdmin))
}

func TestEvaluate_RoleInAllowedSet(t *testing.T) {
	assert.True(t, Evaluate("tok", RoleTraveler, RoleTraveler))
	assert.True(t, Evaluate("tok", RoleGuide, RoleTransport, RoleGuide))
}

func TestEvaluate_RoleOutsideAllowedSet(t *testing.T) {
	assert.False(t, Evaluate("tok", RoleTraveler, RoleAdmin))
	assert.False(t, Evaluate("tok", RoleUnknown, RoleAdmin))
}

func TestEvaluate_EmptyAllowedSetDeniesEveryone(t *testing.T) {
	assert.False(t, Evaluate("tok", RoleAdmin))
}

// ============================================================================
// Guard Tests
// ============================================================================

func TestGuard_AdminOnlyRoute(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name  string
		token string
		want  bool
	}{
		{"no token", "", false},
		{"traveler token", unsignedToken(t, map[string]any{"role": "traveler"}), false},
		{"admin token", unsignedToken(t, map[string]any{"role": "admin"}), true},
		{"legacy sysadmin token", unsignedToken(t, map[string]any{"role": "Sysadmin"}), true},
		{"malformed token", "garbage", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			vault, _ := newTestVault(t)
			if tc.token != "" {
				require.NoError(t, vault.Save(ctx, tc.token, "", nil))
			}
			guard := NewGuard(vault)
			assert.Equal(t, tc.want, guard.Allow(ctx, RoleAdmin))
		})
	}
}

func TestGuard_SeesEvictionOnNextCheck(t *testing.T) {
	ctx := context.Background()
	vault, _ := newTestVault(t)
	guard := NewGuard(vault)

	token := unsignedToken(t, map[string]any{"role": "traveler"})
	require.NoError(t, vault.Save(ctx, token, "", nil))
	require.True(t, guard.Allow(ctx, RoleTraveler))

	require.NoError(t, vault.Clear(ctx))
	assert.False(t, guard.Allow(ctx, RoleTraveler))
}

func TestGuard_MultiRoleRoute(t *testing.T) {
	ctx := context.Background()
	vault, _ := newTestVault(t)
	guard := NewGuard(vault)

	token := unsignedToken(t, map[string]any{"role": "guide"})
	require.NoError(t, vault.Save(ctx, token, "", nil))

	assert.True(t, guard.Allow(ctx, RoleTransport, RoleGuide))
	assert.False(t, guard.Allow(ctx, RoleAccommodation))
}
