package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"portfolio_aggregator/internal/app/port"
	"portfolio_aggregator/internal/domain/entity"
)

// ChainChecker reports whether a chain identifier is configured. Satisfied
// by the connector registry.
type ChainChecker interface {
	Supported(chainID string) bool
}

// WalletHandler serves wallet registration and listing.
type WalletHandler struct {
	wallets port.WalletStore
	chains  ChainChecker
	logger  *zap.Logger
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(wallets port.WalletStore, chains ChainChecker, logger *zap.Logger) *WalletHandler {
	return &WalletHandler{
		wallets: wallets,
		chains:  chains,
		logger:  logger.Named("WalletHandler"),
	}
}

type addWalletRequest struct {
	ChainID  string  `json:"chainId" binding:"required"`
	Address  string  `json:"address" binding:"required"`
	Nickname *string `json:"nickname"`
}

// ListWallets returns the caller's registered wallets.
func (h *WalletHandler) ListWallets(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	wallets, err := h.wallets.ListWalletsByUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list wallets", zap.String("userId", userID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list wallets"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"wallets": wallets})
}

// AddWallet registers a new wallet for the caller. Chains without a registry
// entry are rejected up front so they never reach the aggregation path.
func (h *WalletHandler) AddWallet(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	var req addWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !h.chains.Supported(req.ChainID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": (&entity.UnsupportedChainError{ChainID: req.ChainID}).Error()})
		return
	}

	wallet, err := h.wallets.AddWallet(c.Request.Context(), entity.Wallet{
		ID:       uuid.New(),
		UserID:   userID,
		ChainID:  req.ChainID,
		Address:  req.Address,
		Nickname: req.Nickname,
	})
	if err != nil {
		h.logger.Error("failed to add wallet", zap.String("userId", userID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add wallet"})
		return
	}
	c.JSON(http.StatusCreated, wallet)
}
