package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"dashboard/internal/domain"
	apperrors "dashboard/internal/errors"
)

var ErrInvalidToken = errors.New("invalid token")

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

type AuthService struct {
	users  UserRepository
	secret []byte
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

func NewAuthService(users UserRepository, secret string, ttl time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// Authenticate checks the credentials and returns a signed session token.
// Every failure is an *errors.AuthenticationError.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			s.logger.Info("sign-in for unknown email")
			return "", apperrors.NewAuthenticationError(apperrors.AuthCredentialsSignin, nil)
		}
		s.logger.Error("failed to fetch user", zap.Error(err))
		return "", apperrors.NewAuthenticationError(apperrors.AuthUnknown, err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		s.logger.Info("sign-in with wrong password", zap.String("userId", u.ID))
		return "", apperrors.NewAuthenticationError(apperrors.AuthCredentialsSignin, nil)
	}
	if err != nil {
		s.logger.Error("comparing password hash failed", zap.String("userId", u.ID), zap.Error(err))
		return "", apperrors.NewAuthenticationError(apperrors.AuthUnknown, err)
	}

	token, err := s.issue(u.ID)
	if err != nil {
		s.logger.Error("signing session token failed", zap.Error(err))
		return "", apperrors.NewAuthenticationError(apperrors.AuthUnknown, err)
	}

	s.logger.Info("user signed in", zap.String("userId", u.ID))
	return token, nil
}

func (s *AuthService) issue(userID string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		ID:        uuid.New().String(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify returns the user id carried by a valid token.
func (s *AuthService) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
