// Package session describes the identity and connectivity collaborators the
// tracker consumes, with simple in-process implementations.
package session

import (
	"context"
	"fmt"
	"sync"

	"clementus360/daily-tracker/types"
	"github.com/google/uuid"
)

type User struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthListener receives the signed-in user, or ok=false after sign-out.
type AuthListener func(user User, ok bool)

// Identity is the external identity provider.
type Identity interface {
	CurrentUser() (User, bool)
	OnAuthChange(fn AuthListener) (unsubscribe func())
	SignIn(ctx context.Context, creds Credentials) (User, error)
	SignOut(ctx context.Context) error
}

// ParseUserID validates a provider user id. Supabase issues UUIDs.
func ParseUserID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("user id %q: %w", id, types.ErrNotAuthenticated)
	}
	return u.String(), nil
}

// Listeners is a small registry of auth listeners, safe for concurrent use.
type Listeners struct {
	mu   sync.Mutex
	next int
	fns  map[int]AuthListener
}

func (l *Listeners) Add(fn AuthListener) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fns == nil {
		l.fns = make(map[int]AuthListener)
	}
	id := l.next
	l.next++
	l.fns[id] = fn
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.fns, id)
	}
}

func (l *Listeners) Notify(user User, ok bool) {
	l.mu.Lock()
	fns := make([]AuthListener, 0, len(l.fns))
	for _, fn := range l.fns {
		fns = append(fns, fn)
	}
	l.mu.Unlock()
	for _, fn := range fns {
		fn(user, ok)
	}
}

// Static is an Identity with no provider behind it. SignIn is refused; a user
// can be set directly, which is what local-only mode and tests use.
type Static struct {
	mu        sync.RWMutex
	user      User
	ok        bool
	listeners Listeners
}

func NewStatic() *Static { return &Static{} }

func (s *Static) CurrentUser() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.ok
}

func (s *Static) OnAuthChange(fn AuthListener) func() {
	return s.listeners.Add(fn)
}

func (s *Static) SignIn(context.Context, Credentials) (User, error) {
	return User{}, fmt.Errorf("no identity provider configured: %w", types.ErrNotAuthenticated)
}

func (s *Static) SignOut(context.Context) error {
	s.SetUser(User{}, false)
	return nil
}

// SetUser replaces the current user and notifies listeners.
func (s *Static) SetUser(user User, ok bool) {
	s.mu.Lock()
	s.user, s.ok = user, ok
	s.mu.Unlock()
	s.listeners.Notify(user, ok)
}
