package service

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/gtd_storefront/internal/utils"
)

// MissingCredentialsMessage is shown when the login form is incomplete.
const MissingCredentialsMessage = "Please enter a username and password!"

// Session is the part of the session store the login flow drives.
type Session interface {
	Login(username string)
	Logout()
}

// AuthService implements the mock login. Any non-empty username and password
// pair is accepted.
type AuthService struct{}

// NewAuthService constructs a new AuthService.
func NewAuthService() *AuthService {
	return &AuthService{}
}

// Login logs session in as username and returns the welcome message.
func (s *AuthService) Login(session Session, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", utils.ErrMissingCredentials
	}
	session.Login(username)
	log.Info().Str("username", username).Msg("Login successful")
	return fmt.Sprintf("Welcome, %s!", username), nil
}

// Logout resets session.
func (s *AuthService) Logout(session Session) {
	session.Logout()
}
