package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/WanderLanka/wanderlanka-web-app-sub001/pkg/errors"
	"github.com/WanderLanka/wanderlanka-web-app-sub001/pkg/validator"
)

// ============================================================================
// Login Tests
// ============================================================================

func TestLogin_PersistsSession(t *testing.T) {
	client, vault := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"t1","refreshToken":"r1","user":{"id":"u1","username":"kasun","role":"traveler"}}`))
	}))

	sess, err := client.Login(context.Background(), LoginInput{Username: "kasun", Password: "secret123"})
	require.NoError(t, err)
	assert.True(t, sess.SignedIn())

	ctx := context.Background()
	assert.Equal(t, "t1", vault.Token(ctx))
	assert.Equal(t, "r1", vault.RefreshToken(ctx))
	require.NotNil(t, vault.User(ctx))
	assert.Equal(t, "traveler", vault.User(ctx).Role)
}

func TestLogin_HandlesNestedDataEnvelope(t *testing.T) {
	client, vault := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"token":"t2","refreshToken":"r2","user":{"id":"u2","username":"amara","role":"guide"}},"message":"welcome"}`))
	}))

	_, err := client.Login(context.Background(), LoginInput{Username: "amara", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "t2", vault.Token(context.Background()))
}

func TestLogin_ValidationFailsBeforeAnyRequest(t *testing.T) {
	requests := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))

	_, err := client.Login(context.Background(), LoginInput{Username: "k", Password: ""})
	require.Error(t, err)

	var valErr *validator.ValidationError
	assert.ErrorAs(t, err, &valErr)
	assert.Zero(t, requests)
}

func TestLogin_BadCredentialsDoNotEvictExistingSession(t *testing.T) {
	client, vault := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid credentials"}`))
	}))
	signIn(t, vault, "traveler")

	_, err := client.Login(context.Background(), LoginInput{Username: "kasun", Password: "wrongpass"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.NotEmpty(t, vault.Token(context.Background()))
}

// ============================================================================
// Register Tests
// ============================================================================

func TestRegister_WithoutTokenLeavesVaultEmpty(t *testing.T) {
	client, vault := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"account created, pending approval"}`))
	}))

	sess, err := client.Register(context.Background(), RegisterInput{
		Username:  "nimal1",
		Email:     "nimal@example.com",
		Password:  "longenough",
		Role:      "guide",
		FirstName: "Nimal",
		LastName:  "Perera",
	})
	require.NoError(t, err)
	assert.False(t, sess.SignedIn())
	assert.Empty(t, vault.Token(context.Background()))
}

func TestRegister_RejectsUnknownRole(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))

	_, err := client.Register(context.Background(), RegisterInput{
		Username:  "nimal1",
		Email:     "nimal@example.com",
		Password:  "longenough",
		Role:      "admin",
		FirstName: "Nimal",
		LastName:  "Perera",
	})
	var valErr *validator.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields(), "Role")
}

// ============================================================================
// Logout Tests
// ============================================================================

func TestLogout_ClearsVault(t *testing.T) {
	client, vault := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	signIn(t, vault, "traveler")

	require.NoError(t, client.Logout(context.Background()))
	assert.Empty(t, vault.Token(context.Background()))
}

func TestLogout_ClearsVaultEvenWhenTokenAlreadyExpired(t *testing.T) {
	client, vault := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	signIn(t, vault, "traveler")

	require.NoError(t, client.Logout(context.Background()))
	assert.Empty(t, vault.Token(context.Background()))
}

func TestLogout_SignedOutIsANoOp(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	assert.NoError(t, client.Logout(context.Background()))
}
