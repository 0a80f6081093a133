package supabase

import (
	"fmt"
	"net/http"
	"strings"

	"clementus360/daily-tracker/config"
	"clementus360/daily-tracker/types"

	"github.com/supabase-community/supabase-go"
)

// NewClient builds an anonymous client from the configured URL and key.
func NewClient(cfg config.Config) (*supabase.Client, error) {
	if !cfg.RemoteConfigured() {
		return nil, fmt.Errorf("SUPABASE_URL or SUPABASE_KEY is missing")
	}
	client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseKey, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create Supabase client: %w", err)
	}
	return client, nil
}

// ClientWithToken builds a client that acts as the user owning jwtString, so
// row level security applies to every query it issues.
func ClientWithToken(cfg config.Config, jwtString string) (*supabase.Client, error) {
	return supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseKey, &supabase.ClientOptions{
		Headers: map[string]string{
			"Authorization": "Bearer " + jwtString,
		},
	})
}

// TokenFromRequest extracts the bearer token from the Authorization header.
func TokenFromRequest(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", fmt.Errorf("missing Authorization header: %w", types.ErrNotAuthenticated)
	}

	jwtString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if jwtString == "" || jwtString == authHeader {
		return "", fmt.Errorf("invalid Authorization header: %w", types.ErrNotAuthenticated)
	}
	return jwtString, nil
}
