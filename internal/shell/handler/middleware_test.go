package handler

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WanderLanka/wanderlanka-web-app-sub001/session"
	"github.com/WanderLanka/wanderlanka-web-app-sub001/storage"
)

func newTestGuard(t *testing.T) (*session.Guard, *session.Vault) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	vault := session.NewVault(storage.NewMemoryStore(), log)
	return session.NewGuard(vault), vault
}

func tokenWithRole(role string) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"u1","role":"` + role + `"}`))
	return header + "." + payload + "."
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// ============================================================================
// RequireRoles Tests
// ============================================================================

func TestRequireRoles_SignedOutRedirectsToLogin(t *testing.T) {
	guard, _ := newTestGuard(t)
	h := RequireRoles(guard, session.RoleTraveler)(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/traveler", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, LoginPath, rec.Header().Get("Location"))
}

func TestRequireRoles_WrongRoleRedirectsToLogin(t *testing.T) {
	guard, vault := newTestGuard(t)
	require.NoError(t, vault.Save(context.Background(), tokenWithRole("traveler"), "", nil))

	h := RequireRoles(guard, session.RoleAdmin)(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/admin", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, LoginPath, rec.Header().Get("Location"))
}

func TestRequireRoles_AllowedRolePasses(t *testing.T) {
	guard, vault := newTestGuard(t)
	require.NoError(t, vault.Save(context.Background(), tokenWithRole("guide"), "", nil))

	h := RequireRoles(guard, session.RoleTransport, session.RoleGuide)(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/transport", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoles_MalformedTokenRedirects(t *testing.T) {
	guard, vault := newTestGuard(t)
	require.NoError(t, vault.Save(context.Background(), "garbage-token", "", nil))

	h := RequireRoles(guard, session.ValidRoles()...)(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/chat/conversations", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
}

func TestRequireRoles_EvictionNoticedOnNextRequest(t *testing.T) {
	guard, vault := newTestGuard(t)
	ctx := context.Background()
	require.NoError(t, vault.Save(ctx, tokenWithRole("traveler"), "", nil))

	h := RequireRoles(guard, session.RoleTraveler)(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/planning", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, vault.Clear(ctx))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/planning", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
}

// ============================================================================
// ContentTypeJSON Tests
// ============================================================================

func TestContentTypeJSON_RejectsNonJSONBody(t *testing.T) {
	h := ContentTypeJSON(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/planning/guides/items", io.NopCloser(newBody("id=1")))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.ContentLength = 4

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestContentTypeJSON_AllowsJSONAndEmptyBodies(t *testing.T) {
	h := ContentTypeJSON(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/planning/guides/items", newBody(`{"id":"g1"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/planning", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
