package auth

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidCredentials hides whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

type Service struct {
	store  *Store
	secret string
	ttl    time.Duration
}

func NewService(store *Store, secret string, ttl time.Duration) *Service {
	return &Service{store: store, secret: secret, ttl: ttl}
}

func (s *Service) Login(ctx context.Context, email, password string) (string, User, error) {
	user, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", User{}, ErrInvalidCredentials
		}
		return "", User{}, err
	}
	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return "", User{}, ErrInvalidCredentials
	}

	token, err := GenerateToken(s.secret, Claims{UserID: user.ID, Email: user.Email, Role: user.Role}, s.ttl)
	if err != nil {
		return "", User{}, err
	}
	return token, user, nil
}
