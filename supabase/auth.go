package supabase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"clementus360/daily-tracker/config"
	"clementus360/daily-tracker/session"
	"clementus360/daily-tracker/types"

	"github.com/supabase-community/supabase-go"
)

// Auth is the Supabase-backed identity provider. It remembers the active
// access token and hands out clients that act as that user.
type Auth struct {
	cfg  config.Config
	base *supabase.Client

	mu        sync.RWMutex
	token     string
	user      session.User
	listeners session.Listeners
}

func NewAuth(cfg config.Config) (*Auth, error) {
	base, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &Auth{cfg: cfg, base: base}, nil
}

func (a *Auth) CurrentUser() (session.User, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.user, a.token != ""
}

func (a *Auth) OnAuthChange(fn session.AuthListener) func() {
	return a.listeners.Add(fn)
}

func (a *Auth) SignIn(ctx context.Context, creds session.Credentials) (session.User, error) {
	if err := ctx.Err(); err != nil {
		return session.User{}, err
	}
	resp, err := a.base.Auth.SignInWithEmailPassword(creds.Email, creds.Password)
	if err != nil {
		return session.User{}, fmt.Errorf("signing in: %w", errors.Join(types.ErrNotAuthenticated, err))
	}
	return a.Adopt(resp.AccessToken)
}

// Adopt makes an access token obtained elsewhere (an OAuth redirect, the UI's
// own session) the active identity. Adopting the current token is a no-op.
func (a *Auth) Adopt(accessToken string) (session.User, error) {
	user, err := UserFromToken(accessToken, a.cfg.JWTSecret)
	if err != nil {
		return session.User{}, err
	}

	a.mu.Lock()
	if a.token == accessToken {
		a.mu.Unlock()
		return user, nil
	}
	a.token, a.user = accessToken, user
	a.mu.Unlock()

	config.Logger.WithField("user_id", user.ID).Info("Signed in")
	a.listeners.Notify(user, true)
	return user, nil
}

func (a *Auth) SignOut(ctx context.Context) error {
	a.mu.Lock()
	token := a.token
	a.token, a.user = "", session.User{}
	a.mu.Unlock()

	if token == "" {
		return nil
	}
	a.listeners.Notify(session.User{}, false)

	if err := a.base.Auth.WithToken(token).Logout(); err != nil {
		// The local session is gone either way; the token expires on its own.
		config.Logger.Warn("Error signing out remotely:", err)
	}
	return nil
}

// RestClient returns a client acting as the signed-in user.
func (a *Auth) RestClient() (*supabase.Client, error) {
	a.mu.RLock()
	token := a.token
	a.mu.RUnlock()
	if token == "" {
		return nil, types.ErrNotAuthenticated
	}
	return ClientWithToken(a.cfg, token)
}

var _ session.Identity = (*Auth)(nil)
