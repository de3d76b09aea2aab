package restapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"portfolio_aggregator/internal/domain/entity"
)

type fakeWalletStore struct {
	wallets []entity.Wallet
	added   []entity.Wallet
}

func (f *fakeWalletStore) ListWalletsByUser(_ context.Context, _ uuid.UUID) ([]entity.Wallet, error) {
	return f.wallets, nil
}

func (f *fakeWalletStore) AddWallet(_ context.Context, w entity.Wallet) (entity.Wallet, error) {
	f.added = append(f.added, w)
	return w, nil
}

type fakeChains map[string]bool

func (f fakeChains) Supported(chainID string) bool { return f[chainID] }

func walletTestRouter(store *fakeWalletStore, chains fakeChains, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewWalletHandler(store, chains, zap.NewNop())
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(userIDKey, userID)
		c.Next()
	})
	router.GET("/wallets", handler.ListWallets)
	router.POST("/wallets", handler.AddWallet)
	return router
}

func TestAddWalletRejectsUnsupportedChain(t *testing.T) {
	store := &fakeWalletStore{}
	router := walletTestRouter(store, fakeChains{"ethereum": true}, uuid.New())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/wallets",
		strings.NewReader(`{"chainId":"dogecoin","address":"D123"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "dogecoin")
	assert.Empty(t, store.added, "nothing is persisted for a rejected chain")
}

func TestAddWalletAccepted(t *testing.T) {
	store := &fakeWalletStore{}
	userID := uuid.New()
	router := walletTestRouter(store, fakeChains{"ethereum": true}, userID)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/wallets",
		strings.NewReader(`{"chainId":"ethereum","address":"0xabc","nickname":"main"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, store.added, 1)
	assert.Equal(t, userID, store.added[0].UserID)
	assert.Equal(t, "ethereum", store.added[0].ChainID)
	require.NotNil(t, store.added[0].Nickname)
	assert.Equal(t, "main", *store.added[0].Nickname)
}

func TestAddWalletRejectsMissingFields(t *testing.T) {
	router := walletTestRouter(&fakeWalletStore{}, fakeChains{}, uuid.New())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/wallets", strings.NewReader(`{"chainId":"ethereum"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListWallets(t *testing.T) {
	store := &fakeWalletStore{wallets: []entity.Wallet{
		{ID: uuid.New(), ChainID: "ethereum", Address: "0xabc"},
	}}
	router := walletTestRouter(store, fakeChains{}, uuid.New())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/wallets", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "0xabc")
}
