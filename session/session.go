// Package session owns the client-side session: the persisted bearer token,
// refresh token, and user record, plus the role resolver and route guard
// built on top of them. It is the single module through which the rest of
// the client reads or writes session state.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/WanderLanka/wanderlanka-web-app-sub001/storage"
)

// Fixed storage keys. Each field is written separately; there is no
// cross-key transaction, so a crash between writes can leave a token
// without a matching user record. Readers must tolerate that.
const (
	keyToken        = "token"
	keyRefreshToken = "refreshToken"
	keyUser         = "user"
)

// User is the persisted user record written at login.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
}

// Session is a point-in-time snapshot of the vault.
type Session struct {
	Token        string
	RefreshToken string
	User         *User
}

// SignedIn reports whether the snapshot holds a bearer token.
func (s Session) SignedIn() bool {
	return s.Token != ""
}

// Vault stores and retrieves the session in a key-value store. It is the
// only writer of the session keys; everything else goes through it.
type Vault struct {
	store  storage.Store
	logger *slog.Logger
}

// NewVault creates a session vault over the given store.
func NewVault(store storage.Store, logger *slog.Logger) *Vault {
	return &Vault{store: store, logger: logger}
}

// Save writes each present field to its storage key. Empty fields are left
// untouched so a token refresh does not drop the stored user record. The
// token shape is not validated.
func (v *Vault) Save(ctx context.Context, token, refreshToken string, user *User) error {
	if token != "" {
		if err := v.store.Set(ctx, keyToken, []byte(token)); err != nil {
			return err
		}
	}
	if refreshToken != "" {
		if err := v.store.Set(ctx, keyRefreshToken, []byte(refreshToken)); err != nil {
			return err
		}
	}
	if user != nil {
		data, err := json.Marshal(user)
		if err != nil {
			return err
		}
		if err := v.store.Set(ctx, keyUser, data); err != nil {
			return err
		}
	}
	return nil
}

// Token returns the stored bearer token, or "" when signed out.
func (v *Vault) Token(ctx context.Context) string {
	data, err := v.store.Get(ctx, keyToken)
	if err != nil {
		return ""
	}
	return string(data)
}

// RefreshToken returns the stored refresh token, or "".
func (v *Vault) RefreshToken(ctx context.Context) string {
	data, err := v.store.Get(ctx, keyRefreshToken)
	if err != nil {
		return ""
	}
	return string(data)
}

// User returns the stored user record, or nil when absent or unreadable.
// An unreadable record is logged and treated as absent.
func (v *Vault) User(ctx context.Context) *User {
	data, err := v.store.Get(ctx, keyUser)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			v.logger.WarnContext(ctx, "failed to read stored user", slog.String("error", err.Error()))
		}
		return nil
	}

	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		v.logger.WarnContext(ctx, "stored user record is unreadable, treating as absent",
			slog.String("error", err.Error()),
		)
		return nil
	}
	return &u
}

// Session returns a snapshot of the vault.
func (v *Vault) Session(ctx context.Context) Session {
	return Session{
		Token:        v.Token(ctx),
		RefreshToken: v.RefreshToken(ctx),
		User:         v.User(ctx),
	}
}

// Role resolves the role for UI routing from the stored token's claims.
// A missing or malformed token yields RoleUnknown; decode failures are
// logged, never returned.
func (v *Vault) Role(ctx context.Context) Role {
	token := v.Token(ctx)
	if token == "" {
		return RoleUnknown
	}

	role := DecodeRole(token)
	if role == RoleUnknown {
		v.logger.WarnContext(ctx, "could not resolve role from stored token")
	}
	return role
}

// Clear deletes all three session keys. Idempotent.
func (v *Vault) Clear(ctx context.Context) error {
	var firstErr error
	for _, key := range []string{keyToken, keyRefreshToken, keyUser} {
		if err := v.store.Delete(ctx, key); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
