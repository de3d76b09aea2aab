package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"portfolio_aggregator/internal/domain/entity"
)

type fakeUserStore struct {
	byEmail map[string]entity.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: make(map[string]entity.User)}
}

func (f *fakeUserStore) CreateUser(_ context.Context, user entity.User) (entity.User, error) {
	if _, ok := f.byEmail[user.Email]; ok {
		return entity.User{}, entity.ErrEmailTaken
	}
	user.CreatedAt = time.Now()
	f.byEmail[user.Email] = user
	return user, nil
}

func (f *fakeUserStore) FindUserByEmail(_ context.Context, email string) (*entity.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func newTestAuthService(store *fakeUserStore) *AuthService {
	return NewAuthService(store, []byte("test-secret"), time.Hour, zap.NewNop())
}

func TestRegisterAndLogin(t *testing.T) {
	auth := newTestAuthService(newFakeUserStore())
	ctx := context.Background()

	user, err := auth.Register(ctx, "Alice@Example.com", "hunter2secret")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email, "emails are stored lowercased")
	assert.NotEqual(t, "hunter2secret", user.PasswordHash)

	token, err := auth.Login(ctx, "alice@example.com", "hunter2secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := auth.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth := newTestAuthService(newFakeUserStore())
	ctx := context.Background()

	_, err := auth.Register(ctx, "alice@example.com", "hunter2secret")
	require.NoError(t, err)

	_, err = auth.Register(ctx, "alice@example.com", "anotherpassword")
	assert.ErrorIs(t, err, entity.ErrEmailTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	auth := newTestAuthService(newFakeUserStore())
	ctx := context.Background()

	_, err := auth.Register(ctx, "alice@example.com", "hunter2secret")
	require.NoError(t, err)

	_, err = auth.Login(ctx, "alice@example.com", "wrongpassword")
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)

	// Unknown email is indistinguishable from a wrong password.
	_, err = auth.Login(ctx, "nobody@example.com", "hunter2secret")
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	auth := newTestAuthService(newFakeUserStore())

	_, err := auth.VerifyToken("not.a.token")
	assert.Error(t, err)
}

func TestVerifyTokenRejectsForeignSecret(t *testing.T) {
	store := newFakeUserStore()
	ctx := context.Background()

	signer := NewAuthService(store, []byte("secret-a"), time.Hour, zap.NewNop())
	_, err := signer.Register(ctx, "alice@example.com", "hunter2secret")
	require.NoError(t, err)
	token, err := signer.Login(ctx, "alice@example.com", "hunter2secret")
	require.NoError(t, err)

	verifier := NewAuthService(store, []byte("secret-b"), time.Hour, zap.NewNop())
	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	store := newFakeUserStore()
	ctx := context.Background()

	auth := NewAuthService(store, []byte("test-secret"), -time.Minute, zap.NewNop())
	_, err := auth.Register(ctx, "alice@example.com", "hunter2secret")
	require.NoError(t, err)
	token, err := auth.Login(ctx, "alice@example.com", "hunter2secret")
	require.NoError(t, err)

	_, err = auth.VerifyToken(token)
	assert.Error(t, err)
}
