package service

import (
	"context"

	"github.com/rs/zerolog"

	"doccms/internal/model"
	"doccms/internal/repository"
)

// AuthService drives the AccessGate transitions and journals them.
type AuthService interface {
	// SignIn moves the session to SignedIn or returns ErrInvalidCredentials.
	SignIn(ctx context.Context, s *model.Session, username, password string) error

	// SignOut moves the session to SignedOut.
	SignOut(ctx context.Context, s *model.Session)
}

type authService struct {
	gate    *AccessGate
	journal journal
}

// NewAuthService constructs a new AuthService.
func NewAuthService(gate *AccessGate, activity repository.ActivityRepository, log zerolog.Logger) AuthService {
	return &authService{gate: gate, journal: journal{repo: activity, log: log}}
}

func (a *authService) SignIn(ctx context.Context, s *model.Session, username, password string) error {
	if err := a.gate.SignIn(s, username, password); err != nil {
		return err
	}
	a.journal.record(ctx, model.ActionSignedIn, "", username)
	return nil
}

func (a *authService) SignOut(ctx context.Context, s *model.Session) {
	username := s.Username
	a.gate.SignOut(s)
	a.journal.record(ctx, model.ActionSignedOut, "", username)
}
