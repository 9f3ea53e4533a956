package session

import (
	"encoding/json"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the platform role embedded in the access token. It decides which
// dashboard a signed-in account lands on. It is a routing hint only: the
// token's signature is never checked client-side, and the backend remains
// the authorization boundary for every operation.
type Role string

// The closed set of platform roles.
const (
	RoleUnknown       Role = ""
	RoleTraveler      Role = "traveler"
	RoleAccommodation Role = "accommodation"
	RoleTransport     Role = "transport"
	RoleGuide         Role = "guide"
	RoleAdmin         Role = "admin"
)

// roleAliases maps historical role spellings still present in old tokens.
var roleAliases = map[string]Role{
	"tourist":  RoleTraveler,
	"Sysadmin": RoleAdmin,
	"sysadmin": RoleAdmin,
}

// NormalizeRole maps a raw role claim onto the closed role set.
// Unrecognized values yield RoleUnknown.
func NormalizeRole(raw string) Role {
	switch Role(raw) {
	case RoleTraveler, RoleAccommodation, RoleTransport, RoleGuide, RoleAdmin:
		return Role(raw)
	}
	if r, ok := roleAliases[raw]; ok {
		return r
	}
	return RoleUnknown
}

// ValidRoles returns the set of valid platform roles.
func ValidRoles() []Role {
	return []Role{RoleTraveler, RoleAccommodation, RoleTransport, RoleGuide, RoleAdmin}
}

// tokenClaims is the subset of access-token claims the client reads.
type tokenClaims struct {
	Role     string `json:"role"`
	Username string `json:"username"`
	Subject  string `json:"sub"`
}

// DecodeRole extracts the role claim from a bearer token without verifying
// its signature. Any malformed token yields RoleUnknown; this never fails
// hard because a broken token should route to login, not crash the client.
func DecodeRole(token string) Role {
	claims, err := decodeClaims(token)
	if err != nil {
		return RoleUnknown
	}
	return NormalizeRole(claims.Role)
}

// decodeClaims splits the token, base64url-decodes the payload segment, and
// parses the claims. No signature verification is performed.
func decodeClaims(token string) (*tokenClaims, error) {
	parser := jwt.NewParser()
	t, _, err := parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(t.Claims)
	if err != nil {
		return nil, err
	}

	var claims tokenClaims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return nil, err
	}
	return &claims, nil
}
