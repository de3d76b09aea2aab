// Package walletstore persists users and their registered wallets in
// Postgres. The aggregator makes exactly one read here per aggregation.
package walletstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"portfolio_aggregator/internal/domain/entity"
)

const uniqueViolationCode = "23505"

// Postgres implements port.WalletStore and port.UserStore over a pgx pool.
type Postgres struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgres wraps an existing pool. The caller owns the pool lifecycle.
func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) *Postgres {
	return &Postgres{pool: pool, logger: logger.Named("WalletStore")}
}

// ListWalletsByUser returns the user's wallets ordered by creation time.
func (p *Postgres) ListWalletsByUser(ctx context.Context, userID uuid.UUID) ([]entity.Wallet, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, user_id, chain_id, address, nickname, created_at
		FROM wallets
		WHERE user_id = $1
		ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query wallets")
	}
	defer rows.Close()

	wallets := make([]entity.Wallet, 0)
	for rows.Next() {
		var w entity.Wallet
		if err := rows.Scan(&w.ID, &w.UserID, &w.ChainID, &w.Address, &w.Nickname, &w.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan wallet row")
		}
		wallets = append(wallets, w)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate wallet rows")
	}
	return wallets, nil
}

// AddWallet associates a new wallet address with a user.
func (p *Postgres) AddWallet(ctx context.Context, wallet entity.Wallet) (entity.Wallet, error) {
	row := p.pool.QueryRow(ctx, `
		INSERT INTO wallets (id, user_id, chain_id, address, nickname)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		wallet.ID, wallet.UserID, wallet.ChainID, wallet.Address, wallet.Nickname)
	if err := row.Scan(&wallet.CreatedAt); err != nil {
		return entity.Wallet{}, errors.Wrap(err, "failed to insert wallet")
	}

	p.logger.Info("wallet added",
		zap.String("userId", wallet.UserID.String()),
		zap.String("chainId", wallet.ChainID))
	return wallet, nil
}

// CreateUser inserts a new account, mapping a unique-email violation to
// entity.ErrEmailTaken.
func (p *Postgres) CreateUser(ctx context.Context, user entity.User) (entity.User, error) {
	row := p.pool.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING created_at`,
		user.ID, user.Email, user.PasswordHash)
	if err := row.Scan(&user.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return entity.User{}, entity.ErrEmailTaken
		}
		return entity.User{}, errors.Wrap(err, "failed to insert user")
	}
	return user, nil
}

// FindUserByEmail returns nil without error when no user matches.
func (p *Postgres) FindUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	row := p.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE email = $1`, email)
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to query user")
	}
	return &user, nil
}
