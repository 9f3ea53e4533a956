package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/WanderLanka/wanderlanka-web-app-sub001/pkg/errors"
	"github.com/WanderLanka/wanderlanka-web-app-sub001/pkg/validator"
	"github.com/WanderLanka/wanderlanka-web-app-sub001/session"
)

// LoginInput is the login form payload. Validated client-side before any
// network call.
type LoginInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterInput is the registration form payload.
type RegisterInput struct {
	Username  string `json:"username" validate:"required,alphanum,min=3,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Role      string `json:"role" validate:"required,oneof=traveler accommodation transport guide"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

// authResponse covers the shapes the auth endpoints return: tokens either at
// the top level or nested under data.
type authResponse struct {
	Token        string        `json:"token"`
	RefreshToken string        `json:"refreshToken"`
	User         *session.User `json:"user"`
	Data         *struct {
		Token        string        `json:"token"`
		RefreshToken string        `json:"refreshToken"`
		User         *session.User `json:"user"`
	} `json:"data"`
	Message string `json:"message"`
}

func (r *authResponse) flatten() (token, refresh string, user *session.User) {
	token, refresh, user = r.Token, r.RefreshToken, r.User
	if r.Data != nil {
		if token == "" {
			token = r.Data.Token
		}
		if refresh == "" {
			refresh = r.Data.RefreshToken
		}
		if user == nil {
			user = r.Data.User
		}
	}
	return token, refresh, user
}

// Login authenticates against the backend and persists the returned session
// in the vault. The call is public: a 401 here means bad credentials, not an
// expired session, and must not evict anything.
func (c *Client) Login(ctx context.Context, input LoginInput) (*session.Session, error) {
	if err := validator.Validate(input); err != nil {
		return nil, err
	}

	var resp authResponse
	if err := c.Call(ctx, http.MethodPost, "/auth/login", input, &resp, Public()); err != nil {
		return nil, err
	}

	token, refresh, user := resp.flatten()
	if err := c.vault.Save(ctx, token, refresh, user); err != nil {
		return nil, err
	}

	sess := c.vault.Session(ctx)
	return &sess, nil
}

// Register creates an account and, when the backend returns a token,
// persists the resulting session like a login.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*session.Session, error) {
	if err := validator.Validate(input); err != nil {
		return nil, err
	}

	var resp authResponse
	if err := c.Call(ctx, http.MethodPost, "/auth/register", input, &resp, Public()); err != nil {
		return nil, err
	}

	token, refresh, user := resp.flatten()
	if token != "" {
		if err := c.vault.Save(ctx, token, refresh, user); err != nil {
			return nil, err
		}
	}

	sess := c.vault.Session(ctx)
	return &sess, nil
}

// Profile fetches the signed-in account's profile.
func (c *Client) Profile(ctx context.Context) (*session.User, error) {
	var raw json.RawMessage
	if err := c.Call(ctx, http.MethodGet, "/auth/profile", nil, &raw); err != nil {
		return nil, err
	}

	user, ok := DecodeObject[session.User](raw)
	if !ok {
		return nil, nil
	}
	return &user, nil
}

// Logout tells the backend the session is over, then clears the vault. The
// vault is cleared even when the backend call fails; signing out locally
// must always succeed.
func (c *Client) Logout(ctx context.Context) error {
	callErr := c.Call(ctx, http.MethodPost, "/auth/logout", nil, nil)
	if errors.Is(callErr, apperrors.ErrSessionExpired) {
		// The backend already considered the session dead; that is what
		// logout wanted anyway.
		callErr = nil
	}
	if clearErr := c.vault.Clear(ctx); clearErr != nil {
		return clearErr
	}
	return callErr
}
