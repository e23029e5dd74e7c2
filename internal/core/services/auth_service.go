package services

import (
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/habitnotes/habitnotes/internal/core/domain"
)

// AuthService guards the API behind a single configured password. The
// plaintext is hashed once at startup and discarded; a successful login
// yields a bearer token.
type AuthService struct {
	passwordHash []byte
	tokens       *TokenService
}

func NewAuthService(apiPassword string, tokens *TokenService) (*AuthService, error) {
	if utf8.RuneCountInString(apiPassword) < 8 {
		return nil, domain.ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(apiPassword), 12)
	if err != nil {
		return nil, err
	}

	return &AuthService{
		passwordHash: hash,
		tokens:       tokens,
	}, nil
}

func (s *AuthService) Login(password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}
	return s.tokens.GenerateToken("api")
}
