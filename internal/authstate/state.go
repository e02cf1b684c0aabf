// Package authstate carries the resolved identity of a request: the user, whether they hold
// admin privileges, and whether resolution is still in progress.
package authstate

import (
	"context"
	"sync"

	"github.com/angelmondragon/storefront-admin/internal/users"
)

// Context is the read surface consumers take as a parameter.
type Context interface {
	User() *users.UserDTO
	IsAdmin() bool
	Loading() bool
}

// State is an immutable snapshot satisfying Context.
type State struct {
	user    *users.UserDTO
	isAdmin bool
	loading bool
}

// Pending is the state before identity resolves.
func Pending() State { return State{loading: true} }

// Anonymous is a resolved state without a user.
func Anonymous() State { return State{} }

func Resolved(user *users.UserDTO, isAdmin bool) State {
	if user == nil {
		return Anonymous()
	}
	return State{user: user, isAdmin: isAdmin}
}

func (s State) User() *users.UserDTO { return s.user }
func (s State) IsAdmin() bool        { return s.isAdmin }
func (s State) Loading() bool        { return s.loading }

// Authenticated reports whether a user is present once loading finished.
func Authenticated(c Context) bool {
	return c != nil && !c.Loading() && c.User() != nil
}

// Store holds the current State and notifies subscribers on every Set.
type Store struct {
	mu        sync.Mutex
	state     State
	listeners []func(Context)
}

func NewStore(initial State) *Store {
	return &Store{state: initial}
}

func (s *Store) Current() Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe calls fn with the current state immediately and again after each Set.
func (s *Store) Subscribe(fn func(Context)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	current := s.state
	s.mu.Unlock()
	fn(current)
}

func (s *Store) Set(state State) {
	s.mu.Lock()
	s.state = state
	listeners := append([]func(Context){}, s.listeners...)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(state)
	}
}

type ctxKey struct{}

// WithContext stores c on ctx for handlers downstream of the auth middleware.
func WithContext(ctx context.Context, c Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// FromContext returns the stored auth state, or Anonymous when none was attached.
func FromContext(ctx context.Context) Context {
	if c, ok := ctx.Value(ctxKey{}).(Context); ok && c != nil {
		return c
	}
	return Anonymous()
}
