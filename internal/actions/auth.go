package actions

import (
	"context"

	"gitwise/internal/api"
	"gitwise/internal/observability"
	"gitwise/internal/store"
)

// Login authenticates and replaces the session identity wholesale.
// Returns false (after an error toast) on any failure.
func (s *Service) Login(ctx context.Context, email, password string) bool {
	logger := observability.NewActionLogger("login")
	logger.LogStart(ctx, map[string]interface{}{"email": email})

	resp, err := s.api.Login(ctx, api.Credentials{Email: email, Password: password})
	if err != nil {
		logger.LogError(ctx, err)
		s.notifier.Error(err.Error())
		return false
	}

	s.api.SetToken(resp.Token)
	s.store.Dispatch(store.SetUser{User: &resp.User, Token: resp.Token})
	s.notifier.Success("Login successful!")
	logger.LogSuccess(ctx, map[string]interface{}{"user_id": resp.User.ID})
	return true
}

// Signup registers a new account. It does not log the user in; the
// backend's token, if any, is discarded and the user logs in explicitly.
func (s *Service) Signup(ctx context.Context, reg api.Registration) bool {
	logger := observability.NewActionLogger("signup")
	logger.LogStart(ctx, map[string]interface{}{"username": reg.Username})

	if _, err := s.api.Register(ctx, reg); err != nil {
		logger.LogError(ctx, err)
		s.notifier.Error(err.Error())
		return false
	}

	s.notifier.Success("Registration successful!")
	logger.LogSuccess(ctx, nil)
	return true
}

// Logout clears the session locally. There is no server call; the
// bearer token is simply forgotten.
func (s *Service) Logout() {
	s.api.ClearToken()
	s.store.Dispatch(store.Logout{})
	s.notifier.Info("Logged out successfully.")
}
