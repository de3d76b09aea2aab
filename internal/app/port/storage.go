package port

import (
	"context"

	"github.com/google/uuid"

	"portfolio_aggregator/internal/domain/entity"
)

// WalletStore provides read/write access to a user's registered wallets.
type WalletStore interface {
	// ListWalletsByUser returns the user's wallets ordered by creation time.
	// An unknown user yields an empty slice, not an error.
	ListWalletsByUser(ctx context.Context, userID uuid.UUID) ([]entity.Wallet, error)
	AddWallet(ctx context.Context, wallet entity.Wallet) (entity.Wallet, error)
}

// UserStore provides account persistence for the auth service.
type UserStore interface {
	// CreateUser fails with entity.ErrEmailTaken when the email exists.
	CreateUser(ctx context.Context, user entity.User) (entity.User, error)
	// FindUserByEmail returns nil without error when no user matches.
	FindUserByEmail(ctx context.Context, email string) (*entity.User, error)
}
