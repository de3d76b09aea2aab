package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"portfolio_aggregator/internal/app/port"
	"portfolio_aggregator/internal/domain/entity"
)

// AuthService handles registration, login and bearer-token verification for
// the API layer.
type AuthService struct {
	users    port.UserStore
	secret   []byte
	tokenTTL time.Duration
	logger   *zap.Logger
}

// NewAuthService creates an auth service signing HS256 tokens with the given
// secret.
func NewAuthService(users port.UserStore, secret []byte, tokenTTL time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:    users,
		secret:   secret,
		tokenTTL: tokenTTL,
		logger:   logger.Named("AuthService"),
	}
}

// Register creates a new account. Fails with entity.ErrEmailTaken when the
// email is already registered.
func (s *AuthService) Register(ctx context.Context, email, password string) (entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return entity.User{}, errors.Wrap(err, "failed to hash password")
	}

	user, err := s.users.CreateUser(ctx, entity.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(email),
		PasswordHash: string(hash),
	})
	if err != nil {
		return entity.User{}, err
	}

	s.logger.Info("user registered", zap.String("userId", user.ID.String()))
	return user, nil
}

// Login verifies the credentials and returns a signed bearer token. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindUserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return "", errors.Wrap(err, "failed to look up user")
	}
	if user == nil {
		return "", entity.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", entity.ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}
	return signed, nil
}

// VerifyToken parses a bearer token and returns the user id it carries.
func (s *AuthService) VerifyToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to parse token")
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return uuid.Nil, errors.New("invalid token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "invalid subject claim")
	}
	return userID, nil
}
