package api

import (
	"context"

	"github.com/agentstation/eventhub/internal/transport"
	"github.com/agentstation/eventhub/pkg/types"
)

// Auth binds the authentication endpoints.
type Auth struct {
	t *transport.Client
}

// Session is the payload login and signup return.
type Session struct {
	Token string     `json:"token"`
	User  types.User `json:"user"`
}

// Me fetches the current session's user.
func (a *Auth) Me(ctx context.Context) (*types.User, error) {
	var user types.User
	if err := a.t.Get(ctx, "/auth/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a session.
func (a *Auth) Login(ctx context.Context, in types.LoginInput) (*Session, error) {
	var session Session
	if err := a.t.Post(ctx, "/auth/login", in, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Signup creates an account and returns its first session.
func (a *Auth) Signup(ctx context.Context, in types.SignupInput) (*Session, error) {
	var session Session
	if err := a.t.Post(ctx, "/auth/signup", in, &session); err != nil {
		return nil, err
	}
	return &session, nil
}
