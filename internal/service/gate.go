package service

import (
	"errors"

	"doccms/internal/model"
)

var (
	// ErrNotAuthorized is returned by every gated operation while signed out.
	ErrNotAuthorized = errors.New("not authorized")
	// ErrInvalidCredentials is returned by SignIn for an unknown user or a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// CredentialStore resolves usernames to password hashes and checks passwords.
type CredentialStore interface {
	Lookup(username string) (hash string, ok bool)
	Verify(password, hash string) bool
}

// AccessGate is the two-state machine guarding mutating operations. The state
// itself lives in the caller's model.Session; a session starts SignedOut.
type AccessGate struct {
	creds CredentialStore
}

// NewAccessGate constructs an AccessGate checking against creds.
func NewAccessGate(creds CredentialStore) *AccessGate {
	return &AccessGate{creds: creds}
}

// SignIn moves s to SignedIn when username is known and password matches its
// hash. On failure s is left untouched.
func (g *AccessGate) SignIn(s *model.Session, username, password string) error {
	hash, ok := g.creds.Lookup(username)
	if !ok || !g.creds.Verify(password, hash) {
		return ErrInvalidCredentials
	}
	s.SignedIn = true
	s.Username = username
	return nil
}

// SignOut moves s back to SignedOut.
func (g *AccessGate) SignOut(s *model.Session) {
	s.SignedIn = false
	s.Username = ""
}

// Authorize returns ErrNotAuthorized unless s is SignedIn.
func (g *AccessGate) Authorize(s *model.Session) error {
	if s == nil || !s.SignedIn {
		return ErrNotAuthorized
	}
	return nil
}
