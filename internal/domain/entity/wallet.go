package entity

import (
	"time"

	"github.com/google/uuid"
)

// Wallet is one address on one chain belonging to one user.
type Wallet struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	ChainID   string    `json:"chainId"`
	Address   string    `json:"address"`
	Nickname  *string   `json:"nickname,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// User is an account that owns wallets.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
