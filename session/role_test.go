package session

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsignedToken builds a structurally valid JWT with the given claims and an
// empty signature segment. Only the payload matters for role resolution.
func unsignedToken(t *testing.T, claims map[string]any) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + "."
}

// ============================================================================
// DecodeRole Tests
// ============================================================================

func TestDecodeRole_KnownRoles(t *testing.T) {
	for _, role := range ValidRoles() {
		token := unsignedToken(t, map[string]any{"sub": "u1", "role": string(role)})
		assert.Equal(t, role, DecodeRole(token), "role %q", role)
	}
}

func TestDecodeRole_LegacyAliases(t *testing.T) {
	assert.Equal(t, RoleTraveler, DecodeRole(unsignedToken(t, map[string]any{"role": "tourist"})))
	assert.Equal(t, RoleAdmin, DecodeRole(unsignedToken(t, map[string]any{"role": "Sysadmin"})))
	assert.Equal(t, RoleAdmin, DecodeRole(unsignedToken(t, map[string]any{"role": "sysadmin"})))
}

func TestDecodeRole_UnrecognizedRole(t *testing.T) {
	token := unsignedToken(t, map[string]any{"role": "superuser"})
	assert.Equal(t, RoleUnknown, DecodeRole(token))
}

func TestDecodeRole_MissingRoleClaim(t *testing.T) {
	token := unsignedToken(t, map[string]any{"sub": "u1"})
	assert.Equal(t, RoleUnknown, DecodeRole(token))
}

func TestDecodeRole_MalformedToken(t *testing.T) {
	cases := []string{
		"",
		"not-a-jwt",
		"only.two",
		"a.!!!notbase64!!!.c",
		base64.RawURLEncoding.EncodeToString([]byte("{}")) + "..",
	}
	for _, token := range cases {
		assert.Equal(t, RoleUnknown, DecodeRole(token), "token %q", token)
	}
}

func TestDecodeRole_NeverVerifiesSignature(t *testing.T) {
	// A token with garbage in the signature segment still resolves: the
	// client only routes on the claim, the backend authorizes.
	token := unsignedToken(t, map[string]any{"role": "admin"}) + "garbage-signature"
	assert.Equal(t, RoleAdmin, DecodeRole(token))
}

// ============================================================================
// NormalizeRole Tests
// ============================================================================

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, RoleTraveler, NormalizeRole("traveler"))
	assert.Equal(t, RoleTraveler, NormalizeRole("tourist"))
	assert.Equal(t, RoleGuide, NormalizeRole("guide"))
	assert.Equal(t, RoleUnknown, NormalizeRole("TRAVELER"))
	assert.Equal(t, RoleUnknown, NormalizeRole(""))
}
